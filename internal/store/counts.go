package store

import (
	"context"
	"fmt"
)

// YearCount holds the per-calendar-year acquisition and finish counts.
type YearCount struct {
	Year     string
	Acquired int64
	Finished int64
}

// CountsByYear returns, per year, the number of books acquired and the
// number of finish events. Years are derived from the stored date strings.
func (q *Queries) CountsByYear(ctx context.Context) ([]YearCount, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT x.year, y.books_acquired, x.books_finished
		FROM (
			SELECT
				STRFTIME('%Y', notes.finish_date) AS year,
				COUNT(STRFTIME('%Y', notes.finish_date)) AS books_finished
			FROM notes
			WHERE notes.finish_date IS NOT NULL
			GROUP BY STRFTIME('%Y', notes.finish_date)
		) AS x
		INNER JOIN (
			SELECT
				STRFTIME('%Y', acquisitions.acquisition_date) AS year,
				COUNT(STRFTIME('%Y', acquisitions.acquisition_date)) AS books_acquired
			FROM acquisitions
			GROUP BY STRFTIME('%Y', acquisitions.acquisition_date)
		) AS y ON x.year = y.year
		ORDER BY x.year`)
	if err != nil {
		return nil, fmt.Errorf("query year counts: %w", err)
	}
	defer rows.Close()

	var counts []YearCount
	for rows.Next() {
		var c YearCount
		if err := rows.Scan(&c.Year, &c.Acquired, &c.Finished); err != nil {
			return nil, fmt.Errorf("scan year counts: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return counts, nil
}

// TotalAcquired returns the total number of acquisitions.
func (q *Queries) TotalAcquired(ctx context.Context) (int64, error) {
	return q.countRow(ctx, "SELECT COUNT(acquisition_date) FROM acquisitions")
}

// TotalDistinctFinished returns the number of distinct books finished at
// least once. Rereads count once.
func (q *Queries) TotalDistinctFinished(ctx context.Context) (int64, error) {
	return q.countRow(ctx, `
		SELECT COUNT(DISTINCT books.id)
		FROM books
		INNER JOIN notes ON books.id = notes.book_id
		WHERE notes.finish_date IS NOT NULL`)
}

// TotalUnfinished returns the number of books whose latest state is New or
// Started and which were never finished.
func (q *Queries) TotalUnfinished(ctx context.Context) (int64, error) {
	return q.countRow(ctx, `
		SELECT COUNT(DISTINCT books.id)
		FROM books
		INNER JOIN notes ON books.id = notes.book_id
		INNER JOIN statuses ON notes.status_id = statuses.id
		WHERE statuses.name IN ('New', 'Started')
			AND books.id NOT IN (
				SELECT DISTINCT books.id
				FROM books
				INNER JOIN notes ON books.id = notes.book_id
				INNER JOIN statuses ON notes.status_id = statuses.id
				WHERE statuses.name = 'Finished'
			)`)
}

// TotalFinishEvents returns the total finish events, counting rereads.
func (q *Queries) TotalFinishEvents(ctx context.Context) (int64, error) {
	return q.countRow(ctx,
		"SELECT COUNT(finish_date) FROM notes WHERE finish_date IS NOT NULL")
}

// CountRows returns the row count of one table. Used by ingestion
// idempotence checks and tests; table names come from code, never input.
func (q *Queries) CountRows(ctx context.Context, table string) (int64, error) {
	return q.countRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table))
}

func (q *Queries) countRow(ctx context.Context, query string) (int64, error) {
	var n int64
	if err := q.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count query: %w", err)
	}
	return n, nil
}
