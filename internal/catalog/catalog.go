package catalog

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// ErrEmptyTitle is returned when a create request carries no title.
var ErrEmptyTitle = errors.New("book title cannot be empty")

// Publisher represents a publishing house, deduplicated by name.
type Publisher struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Author represents a book author, deduplicated by (last name, first name).
type Author struct {
	ID        int64  `json:"id"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
}

// Book represents a book entity. Publisher and Author are attached when the
// row was loaded with its relations; both references are optional.
type Book struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	PublisherID *int64          `json:"publisher_id,omitempty"`
	AuthorID    *int64          `json:"author_id,omitempty"`
	Publisher   *Publisher      `json:"publisher,omitempty"`
	Author      *Author         `json:"author,omitempty"`
}

// PublisherRef identifies a publisher by its natural key.
type PublisherRef struct {
	Name string `json:"name"`
}

// AuthorRef identifies an author by its natural key.
type AuthorRef struct {
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
}

// CreateBookRequest is the transport shape for creating a single book.
// Publisher and author are resolved by natural key, inserting new rows on
// first reference.
type CreateBookRequest struct {
	Title     string          `json:"title" validate:"required"`
	Price     decimal.Decimal `json:"price"`
	Publisher PublisherRef    `json:"publisher"`
	Author    AuthorRef       `json:"author"`
}

// Query defines filters and ordering for listing books.
type Query struct {
	// Search keeps a book iff title, publisher name, author first name or
	// author last name contains it as a substring.
	Search string
	// SortBy names a column directly on the book row. Unknown names are
	// ignored; no SortBy means store-default order.
	SortBy string
	// SortOrder is descending iff it case-insensitively equals "desc".
	SortOrder string
}
