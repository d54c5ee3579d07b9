package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/audiologapp/audiolog/internal/domain"
)

// NoteDetail is a note row with username, status, and rating joined in.
type NoteDetail struct {
	ID                int64
	Username          string
	Status            *string
	FinishDate        *string
	RatingStars       *int64
	RatingDescription *string
	Comments          *string
}

// SaveNote gets or creates a note by its exact value tuple and returns the
// id. Re-importing identical data finds the existing row; a genuinely new
// listening event differs in at least one field and inserts a new one.
// Notes are append-only: there is no update path.
func (q *Queries) SaveNote(ctx context.Context, n domain.Note) (int64, error) {
	where, args := whereClause([]cond{
		eq("user_id", n.UserID),
		eq("book_id", n.BookID),
		eqInt64("status_id", n.StatusID),
		eqString("finish_date", n.FinishDate),
		eqInt64("rating_id", n.RatingID),
		eqString("comments", n.Comments),
	})

	var id int64
	err := q.db.QueryRowContext(ctx,
		"SELECT id FROM notes "+where, args...).Scan(&id)
	switch {
	case err == nil:
		q.logger.Debug("existing note", "id", id, "book_id", n.BookID)
		return id, nil
	case err != sql.ErrNoRows:
		return 0, fmt.Errorf("select notes: %w", err)
	}

	res, err := q.db.ExecContext(ctx, `
		INSERT INTO notes (user_id, book_id, status_id, finish_date, rating_id, comments)
		VALUES (?, ?, ?, ?, ?, ?)`,
		n.UserID, n.BookID, nullInt64(n.StatusID), nullString(n.FinishDate),
		nullInt64(n.RatingID), nullString(n.Comments))
	if err != nil {
		return 0, wrapExecErr(err, "insert notes")
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert notes: %w", err)
	}
	q.logger.Debug("new note", "id", id, "book_id", n.BookID)
	return id, nil
}

// ListNotesForBook returns a book's notes ordered by note id, which is
// insertion order and so approximates the chronology of reported events.
func (q *Queries) ListNotesForBook(ctx context.Context, bookID int64) ([]NoteDetail, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT
			n.id, u.username, s.name, n.finish_date,
			r.stars, r.description, n.comments
		FROM notes AS n
		INNER JOIN users AS u ON n.user_id = u.id
		LEFT OUTER JOIN statuses AS s ON n.status_id = s.id
		LEFT OUTER JOIN ratings AS r ON n.rating_id = r.id
		WHERE n.book_id = ?
		ORDER BY n.id`, bookID)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var notes []NoteDetail
	for rows.Next() {
		var (
			d          NoteDetail
			status     sql.NullString
			finishDate sql.NullString
			stars      sql.NullInt64
			desc       sql.NullString
			comments   sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.Username, &status, &finishDate, &stars, &desc, &comments); err != nil {
			return nil, fmt.Errorf("scan notes: %w", err)
		}
		d.Status = stringPtr(status)
		d.FinishDate = stringPtr(finishDate)
		d.RatingStars = int64Ptr(stars)
		d.RatingDescription = stringPtr(desc)
		d.Comments = stringPtr(comments)
		notes = append(notes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return notes, nil
}
