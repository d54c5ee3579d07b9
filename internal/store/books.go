package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/audiologapp/audiolog/internal/domain"
	"github.com/audiologapp/audiolog/internal/errors"
)

// SaveBook gets or creates a book by title and returns its id. Titles are
// the whole identity: a second work with the same title resolves to the
// existing row, and the stored attributes win over the incoming ones.
func (q *Queries) SaveBook(ctx context.Context, b domain.Book) (int64, error) {
	if b.Title == "" {
		return 0, errors.Validation("book title must not be empty")
	}

	var id int64
	err := q.db.QueryRowContext(ctx,
		"SELECT id FROM books WHERE title = ?", b.Title).Scan(&id)
	switch {
	case err == nil:
		q.logger.Debug("existing book", "id", id, "title", b.Title)
		return id, nil
	case err != sql.ErrNoRows:
		return 0, fmt.Errorf("select books: %w", err)
	}

	res, err := q.db.ExecContext(ctx, `
		INSERT INTO books (title, book_pub_date, audio_pub_date, hours, minutes)
		VALUES (?, ?, ?, ?, ?)`,
		b.Title, nullString(b.BookPubDate), nullString(b.AudioPubDate), b.Hours, b.Minutes)
	if err != nil {
		return 0, wrapExecErr(err, "insert books")
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert books: %w", err)
	}
	q.logger.Debug("new book", "id", id, "title", b.Title)
	return id, nil
}

// GetBook returns one book row by id.
func (q *Queries) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	var (
		b            domain.Book
		bookPubDate  sql.NullString
		audioPubDate sql.NullString
	)
	err := q.db.QueryRowContext(ctx, `
		SELECT id, title, book_pub_date, audio_pub_date, hours, minutes
		FROM books WHERE id = ?`, id).
		Scan(&b.ID, &b.Title, &bookPubDate, &audioPubDate, &b.Hours, &b.Minutes)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("book %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("select books: %w", err)
	}
	b.BookPubDate = stringPtr(bookPubDate)
	b.AudioPubDate = stringPtr(audioPubDate)
	return &b, nil
}

// ListBookIDs returns every book id.
func (q *Queries) ListBookIDs(ctx context.Context) ([]int64, error) {
	return q.listIDs(ctx, "SELECT id FROM books")
}
