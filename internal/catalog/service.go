package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service provides catalog business logic on top of a Repository.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new catalog service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateBook validates and persists a single book. The repository resolves
// publisher and author by natural key inside one transaction.
func (s *Service) CreateBook(ctx context.Context, req CreateBookRequest) (Book, error) {
	if strings.TrimSpace(req.Title) == "" {
		return Book{}, ErrEmptyTitle
	}

	book, err := s.repo.CreateBook(ctx, req)
	if err != nil {
		s.logger.Error("create book failed", zap.String("title", req.Title), zap.Error(err))
		return Book{}, err
	}
	return book, nil
}

// CreateBooks validates every item in order, then persists the batch. The
// first empty title fails the whole batch before any row is written.
func (s *Service) CreateBooks(ctx context.Context, reqs []CreateBookRequest) ([]Book, error) {
	for i, req := range reqs {
		if strings.TrimSpace(req.Title) == "" {
			return nil, fmt.Errorf("book %d: %w", i, ErrEmptyTitle)
		}
	}

	books, err := s.repo.CreateBooks(ctx, reqs)
	if err != nil {
		s.logger.Error("create books failed", zap.Int("count", len(reqs)), zap.Error(err))
		return nil, err
	}
	return books, nil
}

// List returns books matching the query, relations attached.
func (s *Service) List(ctx context.Context, q Query) ([]Book, error) {
	return s.repo.List(ctx, q)
}

// SortedByPublisher returns the catalog ordered by publisher name, author
// last name, author first name, then title. When fromView is set the rows
// come from the pre-sorted database view; otherwise the ordering is computed
// here over the joined rows. Both paths order identically.
func (s *Service) SortedByPublisher(ctx context.Context, fromView bool) ([]Book, error) {
	if fromView {
		return s.repo.ListSortedByPublisher(ctx)
	}
	books, err := s.repo.List(ctx, Query{})
	if err != nil {
		return nil, err
	}
	SortByPublisher(books)
	return books, nil
}

// SortedByAuthor returns the catalog ordered by author last name, author
// first name, then title, from either path like SortedByPublisher.
func (s *Service) SortedByAuthor(ctx context.Context, fromView bool) ([]Book, error) {
	if fromView {
		return s.repo.ListSortedByAuthor(ctx)
	}
	books, err := s.repo.List(ctx, Query{})
	if err != nil {
		return nil, err
	}
	SortByAuthor(books)
	return books, nil
}

// TotalPrice sums the price of all books; zero for an empty catalog.
func (s *Service) TotalPrice(ctx context.Context) (decimal.Decimal, error) {
	return s.repo.TotalPrice(ctx)
}

// Citation formats the book identified by id in the requested style.
// A missing book, or a book without author or publisher, yields a nil
// citation with no error. An unrecognized style yields the fixed
// UnsupportedStyleMessage; that is a normal response, not a failure.
func (s *Service) Citation(ctx context.Context, id int64, style string) (*string, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		s.logger.Error("citation lookup failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	var citation string
	var ok bool
	switch strings.ToLower(style) {
	case "mla":
		citation, ok = MLACitation(book)
	case "chicago":
		citation, ok = ChicagoCitation(book)
	default:
		msg := UnsupportedStyleMessage
		return &msg, nil
	}

	if !ok {
		return nil, nil
	}
	return &citation, nil
}
