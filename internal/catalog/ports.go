package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines the contract for catalog data storage.
type Repository interface {
	// CreateBook resolves the publisher and author by natural key and
	// inserts the book, all within a single transaction.
	CreateBook(ctx context.Context, req CreateBookRequest) (Book, error)

	// CreateBooks performs the same resolution for every item and inserts
	// all books in one batch. The whole call is one transaction: a failure
	// on any item leaves no rows behind.
	CreateBooks(ctx context.Context, reqs []CreateBookRequest) ([]Book, error)

	// List returns books with their relations attached, filtered and
	// ordered per the query. No matches yields an empty slice.
	List(ctx context.Context, q Query) ([]Book, error)

	// GetByID returns a book with its relations attached, or ErrNotFound.
	GetByID(ctx context.Context, id int64) (Book, error)

	// ListSortedByPublisher reads the pre-sorted publisher view (flat book
	// rows) and re-attaches publisher and author by per-row lookup.
	ListSortedByPublisher(ctx context.Context) ([]Book, error)

	// ListSortedByAuthor reads the pre-sorted author view likewise.
	ListSortedByAuthor(ctx context.Context) ([]Book, error)

	// TotalPrice sums the price of every book; zero for an empty catalog.
	TotalPrice(ctx context.Context) (decimal.Decimal, error)
}
