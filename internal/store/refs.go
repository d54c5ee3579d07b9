package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/audiologapp/audiolog/internal/errors"
)

// saveByName gets or creates a row in a (id, name) reference table.
func (q *Queries) saveByName(ctx context.Context, table, name string) (int64, error) {
	if name == "" {
		return 0, errors.Validationf("%s name must not be empty", table)
	}

	var id int64
	err := q.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT id FROM %s WHERE name = ?", table), name).Scan(&id)
	switch {
	case err == nil:
		return id, nil
	case err != sql.ErrNoRows:
		return 0, fmt.Errorf("select %s: %w", table, err)
	}

	res, err := q.db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (name) VALUES (?)", table), name)
	if err != nil {
		return 0, wrapExecErr(err, "insert "+table)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", table, err)
	}
	q.logger.Debug("new reference row", "table", table, "id", id, "name", name)
	return id, nil
}

// SaveVendor gets or creates a vendor by name.
func (q *Queries) SaveVendor(ctx context.Context, name string) (int64, error) {
	return q.saveByName(ctx, "vendors", name)
}

// SaveAcquisitionType gets or creates an acquisition type by canonical name.
func (q *Queries) SaveAcquisitionType(ctx context.Context, name string) (int64, error) {
	return q.saveByName(ctx, "acquisition_types", name)
}

// SaveStatus gets or creates a status by name.
func (q *Queries) SaveStatus(ctx context.Context, name string) (int64, error) {
	return q.saveByName(ctx, "statuses", name)
}

// SaveRating gets or creates a rating by its (stars, description) pair.
func (q *Queries) SaveRating(ctx context.Context, stars int64, description string) (int64, error) {
	if description == "" {
		return 0, errors.Validation("rating description must not be empty")
	}

	var id int64
	err := q.db.QueryRowContext(ctx,
		"SELECT id FROM ratings WHERE stars = ? AND description = ?",
		stars, description).Scan(&id)
	switch {
	case err == nil:
		return id, nil
	case err != sql.ErrNoRows:
		return 0, fmt.Errorf("select ratings: %w", err)
	}

	res, err := q.db.ExecContext(ctx,
		"INSERT INTO ratings (stars, description) VALUES (?, ?)", stars, description)
	if err != nil {
		return 0, wrapExecErr(err, "insert ratings")
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert ratings: %w", err)
	}
	return id, nil
}

// GetRatingIDByStars returns the id of the seeded rating with the given
// star count. CSVs carry only the stars, not the description.
func (q *Queries) GetRatingIDByStars(ctx context.Context, stars int64) (int64, error) {
	var id int64
	err := q.db.QueryRowContext(ctx,
		"SELECT id FROM ratings WHERE stars = ?", stars).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, errors.NotFoundf("no rating with %d stars", stars)
	}
	if err != nil {
		return 0, fmt.Errorf("select ratings: %w", err)
	}
	return id, nil
}
