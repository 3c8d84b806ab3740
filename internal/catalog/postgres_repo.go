package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// sortColumns whitelists the book columns a caller may sort by. Anything
// else is ignored rather than interpolated into SQL.
var sortColumns = map[string]string{
	"id":    "b.id",
	"title": "b.title",
	"price": "b.price",
}

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const bookJoinSelect = `
	SELECT b.id, b.title, b.price, b.publisher_id, b.author_id,
	       p.name, a.last_name, a.first_name
	FROM books b
	LEFT JOIN publishers p ON p.id = b.publisher_id
	LEFT JOIN authors a ON a.id = b.author_id`

const insertBookSQL = `
	INSERT INTO books (title, price, publisher_id, author_id)
	VALUES ($1, $2, $3, $4)
	RETURNING id`

func (r *PostgresRepo) CreateBook(ctx context.Context, req CreateBookRequest) (Book, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Book{}, fmt.Errorf("begin create book: %w", err)
	}
	defer tx.Rollback(ctx)

	book, err := createBookTx(ctx, tx, req)
	if err != nil {
		return Book{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Book{}, fmt.Errorf("commit create book: %w", err)
	}
	return book, nil
}

func (r *PostgresRepo) CreateBooks(ctx context.Context, reqs []CreateBookRequest) ([]Book, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create books: %w", err)
	}
	defer tx.Rollback(ctx)

	// Resolve every publisher and author first, accumulating the rows to
	// insert, then write all books in one batch.
	books := make([]Book, 0, len(reqs))
	for i, req := range reqs {
		pubID, pub, err := resolvePublisher(ctx, tx, req.Publisher)
		if err != nil {
			return nil, fmt.Errorf("book %d: %w", i, err)
		}
		authID, auth, err := resolveAuthor(ctx, tx, req.Author)
		if err != nil {
			return nil, fmt.Errorf("book %d: %w", i, err)
		}
		books = append(books, Book{
			Title:       req.Title,
			Price:       req.Price,
			PublisherID: pubID,
			AuthorID:    authID,
			Publisher:   pub,
			Author:      auth,
		})
	}

	batch := &pgx.Batch{}
	for _, b := range books {
		batch.Queue(insertBookSQL, b.Title, b.Price, b.PublisherID, b.AuthorID)
	}
	br := tx.SendBatch(ctx, batch)
	for i := range books {
		if err := br.QueryRow().Scan(&books[i].ID); err != nil {
			br.Close()
			return nil, fmt.Errorf("insert book %d: %w", i, err)
		}
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create books: %w", err)
	}
	return books, nil
}

func createBookTx(ctx context.Context, tx pgx.Tx, req CreateBookRequest) (Book, error) {
	pubID, pub, err := resolvePublisher(ctx, tx, req.Publisher)
	if err != nil {
		return Book{}, err
	}
	authID, auth, err := resolveAuthor(ctx, tx, req.Author)
	if err != nil {
		return Book{}, err
	}

	book := Book{
		Title:       req.Title,
		Price:       req.Price,
		PublisherID: pubID,
		AuthorID:    authID,
		Publisher:   pub,
		Author:      auth,
	}
	if err := tx.QueryRow(ctx, insertBookSQL, book.Title, book.Price, book.PublisherID, book.AuthorID).Scan(&book.ID); err != nil {
		return Book{}, fmt.Errorf("insert book: %w", err)
	}
	return book, nil
}

// resolvePublisher finds or creates a publisher by name. The upsert makes
// the check-then-insert atomic: a concurrent insert of the same name cannot
// produce a second row, and an existing row's id comes back unchanged.
func resolvePublisher(ctx context.Context, tx pgx.Tx, ref PublisherRef) (*int64, *Publisher, error) {
	if ref.Name == "" {
		return nil, nil, nil
	}

	const sql = `
		INSERT INTO publishers (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`

	var id int64
	if err := tx.QueryRow(ctx, sql, ref.Name).Scan(&id); err != nil {
		return nil, nil, fmt.Errorf("resolve publisher %q: %w", ref.Name, err)
	}
	return &id, &Publisher{ID: id, Name: ref.Name}, nil
}

// resolveAuthor finds or creates an author by (last name, first name).
func resolveAuthor(ctx context.Context, tx pgx.Tx, ref AuthorRef) (*int64, *Author, error) {
	if ref.LastName == "" && ref.FirstName == "" {
		return nil, nil, nil
	}

	const sql = `
		INSERT INTO authors (last_name, first_name)
		VALUES ($1, $2)
		ON CONFLICT (last_name, first_name) DO UPDATE SET last_name = EXCLUDED.last_name
		RETURNING id`

	var id int64
	if err := tx.QueryRow(ctx, sql, ref.LastName, ref.FirstName).Scan(&id); err != nil {
		return nil, nil, fmt.Errorf("resolve author %q %q: %w", ref.LastName, ref.FirstName, err)
	}
	return &id, &Author{ID: id, LastName: ref.LastName, FirstName: ref.FirstName}, nil
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Book, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if q.Search != "" {
		clauses = append(clauses, fmt.Sprintf(
			"(b.title ILIKE $%d OR p.name ILIKE $%d OR a.first_name ILIKE $%d OR a.last_name ILIKE $%d)",
			argn, argn, argn, argn))
		args = append(args, "%"+q.Search+"%")
		argn++
	}

	sql := bookJoinSelect + " WHERE " + strings.Join(clauses, " AND ")

	if col, ok := sortColumns[q.SortBy]; ok {
		dir := "ASC"
		if strings.EqualFold(q.SortOrder, "desc") {
			dir = "DESC"
		}
		sql += fmt.Sprintf(" ORDER BY %s %s", col, dir)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	return scanJoinedBooks(rows)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	row := r.db.QueryRow(ctx, bookJoinSelect+" WHERE b.id = $1", id)
	book, err := scanJoinedBook(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("get book %d: %w", id, err)
	}
	return book, nil
}

func (r *PostgresRepo) ListSortedByPublisher(ctx context.Context) ([]Book, error) {
	return r.listFromSortedView(ctx, "books_sorted_by_publisher")
}

func (r *PostgresRepo) ListSortedByAuthor(ctx context.Context) ([]Book, error) {
	return r.listFromSortedView(ctx, "books_sorted_by_author")
}

// listFromSortedView reads flat, pre-ordered book rows from one of the
// sorted views and re-attaches publisher and author with a lookup per row,
// preserving the view's ordering.
func (r *PostgresRepo) listFromSortedView(ctx context.Context, view string) ([]Book, error) {
	sql := fmt.Sprintf("SELECT id, title, price, publisher_id, author_id FROM %s", view)

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", view, err)
	}
	defer rows.Close()

	books := []Book{}
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Price, &b.PublisherID, &b.AuthorID); err != nil {
			return nil, fmt.Errorf("scan %s: %w", view, err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range books {
		if books[i].PublisherID != nil {
			pub, err := r.getPublisher(ctx, *books[i].PublisherID)
			if err != nil {
				return nil, err
			}
			books[i].Publisher = pub
		}
		if books[i].AuthorID != nil {
			auth, err := r.getAuthor(ctx, *books[i].AuthorID)
			if err != nil {
				return nil, err
			}
			books[i].Author = auth
		}
	}
	return books, nil
}

func (r *PostgresRepo) getPublisher(ctx context.Context, id int64) (*Publisher, error) {
	var p Publisher
	err := r.db.QueryRow(ctx, "SELECT id, name FROM publishers WHERE id = $1", id).Scan(&p.ID, &p.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get publisher %d: %w", id, err)
	}
	return &p, nil
}

func (r *PostgresRepo) getAuthor(ctx context.Context, id int64) (*Author, error) {
	var a Author
	err := r.db.QueryRow(ctx, "SELECT id, last_name, first_name FROM authors WHERE id = $1", id).Scan(&a.ID, &a.LastName, &a.FirstName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get author %d: %w", id, err)
	}
	return &a, nil
}

func (r *PostgresRepo) TotalPrice(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, "SELECT COALESCE(SUM(price), 0) FROM books").Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total price: %w", err)
	}
	return total, nil
}

func scanJoinedBooks(rows pgx.Rows) ([]Book, error) {
	books := []Book{}
	for rows.Next() {
		book, err := scanJoinedBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

func scanJoinedBook(row pgx.Row) (Book, error) {
	var (
		b         Book
		pubName   *string
		lastName  *string
		firstName *string
	)
	if err := row.Scan(&b.ID, &b.Title, &b.Price, &b.PublisherID, &b.AuthorID,
		&pubName, &lastName, &firstName); err != nil {
		return Book{}, err
	}
	if b.PublisherID != nil && pubName != nil {
		b.Publisher = &Publisher{ID: *b.PublisherID, Name: *pubName}
	}
	if b.AuthorID != nil && lastName != nil && firstName != nil {
		b.Author = &Author{ID: *b.AuthorID, LastName: *lastName, FirstName: *firstName}
	}
	return b, nil
}
