package catalog

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationIssue describes a single invalid field in a request body.
type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateStruct runs tag-based validation and returns one issue per
// invalid field, nil when the value is valid.
func ValidateStruct(s interface{}) []ValidationIssue {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var issues []ValidationIssue
	for _, ferr := range err.(validator.ValidationErrors) {
		field := ferr.Field()
		var message string
		switch ferr.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", field, ferr.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, ferr.Param())
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		issues = append(issues, ValidationIssue{
			Field:   strings.ToLower(field[:1]) + field[1:],
			Message: message,
		})
	}
	return issues
}
