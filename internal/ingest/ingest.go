package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/audiologapp/audiolog/internal/domain"
	"github.com/audiologapp/audiolog/internal/store"
	"github.com/audiologapp/audiolog/internal/validation"
)

// Ingestor drives the per-row ingestion pipeline. One Ingestor serves one
// run; it is not safe for concurrent use.
type Ingestor struct {
	store  *store.Store
	valid  *validation.Validator
	logger *slog.Logger
}

// New creates an Ingestor backed by the given store.
func New(s *store.Store, logger *slog.Logger) *Ingestor {
	return &Ingestor{
		store:  s,
		valid:  validation.New(),
		logger: logger,
	}
}

// IngestFile parses the CSV file with the given adapter and loads every row
// for the named user inside a single transaction. Any failure rolls the
// whole file back; with commit false the transaction is rolled back even on
// success. Returns the number of data rows processed.
//
// Re-running the same file against a populated database inserts nothing:
// every resolver along the way is a get-or-create keyed on the natural
// identity of its entity.
func (ing *Ingestor) IngestFile(ctx context.Context, username string, adapter Adapter, csvPath string, commit bool) (int, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = adapter.Columns()

	// Skip the header line.
	if _, err := reader.Read(); err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}

	rows := 0
	err = ing.store.RunInTx(ctx, commit, func(q *store.Queries) error {
		userID, err := q.GetUserID(ctx, username)
		if err != nil {
			return err
		}
		vendorID, err := q.SaveVendor(ctx, adapter.Vendor())
		if err != nil {
			return err
		}

		for {
			record, err := reader.Read()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("read csv row: %w", err)
			}

			row, err := adapter.ParseRow(record)
			if err != nil {
				return err
			}
			if err := ing.valid.Validate(row); err != nil {
				return err
			}
			if err := ing.saveRow(ctx, q, userID, vendorID, row); err != nil {
				return err
			}
			rows++
		}
	})
	if err != nil {
		return 0, err
	}

	ing.logger.Info("ingestion finished",
		"vendor", adapter.Vendor(), "file", csvPath, "rows", rows, "committed", commit)
	return rows, nil
}

// saveRow resolves one canonical row into normalized tables: people first,
// then the book, the junctions, the acquisition, and the note.
func (ing *Ingestor) saveRow(ctx context.Context, q *store.Queries, userID, vendorID int64, row *Row) error {
	authorIDs, err := ing.savePersons(ctx, q, domain.RoleAuthor, row.Authors)
	if err != nil {
		return err
	}
	translatorIDs, err := ing.savePersons(ctx, q, domain.RoleTranslator, row.Translators)
	if err != nil {
		return err
	}
	narratorIDs, err := ing.savePersons(ctx, q, domain.RoleNarrator, row.Narrators)
	if err != nil {
		return err
	}

	bookID, err := q.SaveBook(ctx, domain.Book{
		Title:        row.Title,
		BookPubDate:  row.BookPubDate,
		AudioPubDate: row.AudioPubDate,
		Hours:        row.Hours,
		Minutes:      row.Minutes,
	})
	if err != nil {
		return err
	}

	links := []struct {
		role domain.Role
		ids  []int64
	}{
		{domain.RoleAuthor, authorIDs},
		{domain.RoleTranslator, translatorIDs},
		{domain.RoleNarrator, narratorIDs},
	}
	for _, l := range links {
		for _, personID := range l.ids {
			if err := q.LinkBookPerson(ctx, l.role, bookID, personID); err != nil {
				return err
			}
		}
	}

	typeID, err := q.SaveAcquisitionType(ctx, row.AcquisitionType)
	if err != nil {
		return err
	}
	if _, err := q.SaveAcquisition(ctx, domain.Acquisition{
		UserID:       userID,
		BookID:       bookID,
		VendorID:     vendorID,
		TypeID:       typeID,
		Date:         row.AcquisitionDate,
		Discontinued: row.Discontinued,
		Credits:      row.Credits,
		PriceCents:   row.PriceCents,
	}); err != nil {
		return err
	}

	return ing.saveNote(ctx, q, userID, bookID, row)
}

// saveNote resolves the note's optional references and upserts the note by
// its exact value tuple.
func (ing *Ingestor) saveNote(ctx context.Context, q *store.Queries, userID, bookID int64, row *Row) error {
	var statusID *int64
	if row.Status != nil {
		id, err := q.SaveStatus(ctx, *row.Status)
		if err != nil {
			return err
		}
		statusID = &id
	}

	var ratingID *int64
	if row.RatingStars != nil {
		id, err := q.GetRatingIDByStars(ctx, *row.RatingStars)
		if err != nil {
			return err
		}
		ratingID = &id
	}

	_, err := q.SaveNote(ctx, domain.Note{
		UserID:     userID,
		BookID:     bookID,
		StatusID:   statusID,
		FinishDate: row.FinishDate,
		RatingID:   ratingID,
		Comments:   row.Comments,
	})
	return err
}

// savePersons resolves a list of parsed names to person ids.
func (ing *Ingestor) savePersons(ctx context.Context, q *store.Queries, role domain.Role, names []domain.PersonName) ([]int64, error) {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		id, err := q.SavePerson(ctx, role, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
