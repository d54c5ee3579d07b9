package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/audiologapp/audiolog/internal/domain"
	"github.com/audiologapp/audiolog/internal/errors"
)

// AcquisitionDetail is an acquisition row with its reference names joined
// in, as the report consumes it.
type AcquisitionDetail struct {
	ID           int64
	Username     string
	VendorName   string
	Type         string
	Date         string
	Discontinued *string
	Credits      *int64
	PriceCents   *int64
}

// SaveAcquisition gets or creates the acquisition row keyed by
// (user, book, vendor) and returns its id. When a matching row exists its
// other attributes are left untouched, even if the incoming values differ.
func (q *Queries) SaveAcquisition(ctx context.Context, a domain.Acquisition) (int64, error) {
	if a.Date == "" {
		return 0, errors.Validation("acquisition date must not be empty")
	}

	var id int64
	err := q.db.QueryRowContext(ctx, `
		SELECT id FROM acquisitions
		WHERE user_id = ? AND book_id = ? AND vendor_id = ?`,
		a.UserID, a.BookID, a.VendorID).Scan(&id)
	switch {
	case err == nil:
		q.logger.Debug("existing acquisition", "id", id, "book_id", a.BookID)
		return id, nil
	case err != sql.ErrNoRows:
		return 0, fmt.Errorf("select acquisitions: %w", err)
	}

	res, err := q.db.ExecContext(ctx, `
		INSERT INTO acquisitions (
			user_id, book_id, vendor_id, acquisition_type_id,
			acquisition_date, discontinued, credits, price_in_cents
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.UserID, a.BookID, a.VendorID, a.TypeID,
		a.Date, nullString(a.Discontinued), nullInt64(a.Credits), nullInt64(a.PriceCents))
	if err != nil {
		return 0, wrapExecErr(err, "insert acquisitions")
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert acquisitions: %w", err)
	}
	q.logger.Debug("new acquisition", "id", id, "book_id", a.BookID)
	return id, nil
}

// GetAcquisitionForBook returns the acquisition for a book with username,
// vendor, and type names joined in. Returns a not-found error when the book
// has no acquisition.
func (q *Queries) GetAcquisitionForBook(ctx context.Context, bookID int64) (*AcquisitionDetail, error) {
	var (
		d            AcquisitionDetail
		discontinued sql.NullString
		credits      sql.NullInt64
		priceCents   sql.NullInt64
	)
	err := q.db.QueryRowContext(ctx, `
		SELECT
			a.id, u.username, v.name, t.name,
			a.acquisition_date, a.discontinued, a.credits, a.price_in_cents
		FROM acquisitions AS a
		INNER JOIN users AS u ON a.user_id = u.id
		INNER JOIN vendors AS v ON a.vendor_id = v.id
		INNER JOIN acquisition_types AS t ON a.acquisition_type_id = t.id
		WHERE a.book_id = ?`, bookID).
		Scan(&d.ID, &d.Username, &d.VendorName, &d.Type,
			&d.Date, &discontinued, &credits, &priceCents)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("no acquisition for book %d", bookID)
	}
	if err != nil {
		return nil, fmt.Errorf("select acquisitions: %w", err)
	}
	d.Discontinued = stringPtr(discontinued)
	d.Credits = int64Ptr(credits)
	d.PriceCents = int64Ptr(priceCents)
	return &d, nil
}
