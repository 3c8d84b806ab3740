package main

import (
	"os"

	"github.com/joho/godotenv"
)

func loadEnvFiles() {
	// Values already set by the runtime (e.g. Docker) win over the files.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return "db/migrations"
}
