package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/audiologapp/audiolog/internal/domain"
	"github.com/audiologapp/audiolog/internal/errors"
	"github.com/audiologapp/audiolog/internal/store"
)

// Aggregator rebuilds nested view objects from the normalized schema.
// Reads are pure queries and may run concurrently with each other, but not
// with an in-progress ingestion transaction.
type Aggregator struct {
	q *store.Queries
}

// New creates an Aggregator reading through the given session handle.
func New(q *store.Queries) *Aggregator {
	return &Aggregator{q: q}
}

// Book assembles the nested view object for one book id.
func (a *Aggregator) Book(ctx context.Context, id int64) (*Book, error) {
	b, err := a.q.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &Book{
		ID:            b.ID,
		Title:         b.Title,
		BookPubDate:   orEmpty(b.BookPubDate),
		AudioPubDate:  orEmpty(b.AudioPubDate),
		Hours:         b.Hours,
		Minutes:       b.Minutes,
		TitleSortKey:  TitleSortKey(b.Title),
		LengthSortKey: 60*b.Hours + b.Minutes,
		Length:        fmt.Sprintf("%d:%02d", b.Hours, b.Minutes),
	}

	if view.Authors, err = a.persons(ctx, domain.RoleAuthor, id); err != nil {
		return nil, err
	}
	if view.Translators, err = a.persons(ctx, domain.RoleTranslator, id); err != nil {
		return nil, err
	}
	if view.Narrators, err = a.persons(ctx, domain.RoleNarrator, id); err != nil {
		return nil, err
	}

	acq, err := a.q.GetAcquisitionForBook(ctx, id)
	switch {
	case err == nil:
		view.Acquisition = &Acquisition{
			ID:           acq.ID,
			Username:     acq.Username,
			VendorName:   acq.VendorName,
			Type:         acq.Type,
			Date:         acq.Date,
			Discontinued: orEmpty(acq.Discontinued),
			Credits:      acq.Credits,
			PriceCents:   acq.PriceCents,
		}
		view.AcquisitionDate = acq.Date
	case !errors.Is(err, errors.ErrNotFound):
		return nil, err
	}

	notes, err := a.q.ListNotesForBook(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		view.Notes = append(view.Notes, Note{
			ID:         n.ID,
			Username:   n.Username,
			Status:     orEmpty(n.Status),
			FinishDate: orEmpty(n.FinishDate),
			Rating:     ratingString(n.RatingStars, n.RatingDescription),
			Comments:   orEmpty(n.Comments),
		})
	}

	// Book-level status, finish date, and rating come from the first note.
	if len(view.Notes) > 0 {
		first := view.Notes[0]
		view.Status = first.Status
		view.FinishDate = first.FinishDate
		view.Rating = first.Rating
	}

	return view, nil
}

// Books returns every book view, sorted by title sort key.
func (a *Aggregator) Books(ctx context.Context) ([]Book, error) {
	ids, err := a.q.ListBookIDs(ctx)
	if err != nil {
		return nil, err
	}

	books := make([]Book, 0, len(ids))
	for _, id := range ids {
		b, err := a.Book(ctx, id)
		if err != nil {
			return nil, err
		}
		books = append(books, *b)
	}
	sort.Slice(books, func(i, j int) bool {
		return books[i].TitleSortKey < books[j].TitleSortKey
	})
	return books, nil
}

// PersonsWithBooks returns every person of one role with their books,
// sorted by person sort key.
func (a *Aggregator) PersonsWithBooks(ctx context.Context, role domain.Role) ([]PersonBooks, error) {
	ids, err := a.q.ListPersonIDs(ctx, role)
	if err != nil {
		return nil, err
	}

	persons := make([]PersonBooks, 0, len(ids))
	for _, id := range ids {
		p, err := a.q.GetPerson(ctx, role, id)
		if err != nil {
			return nil, err
		}
		pb := PersonBooks{Person: personView(*p)}

		bookIDs, err := a.q.ListBookIDsForPerson(ctx, role, id)
		if err != nil {
			return nil, err
		}
		for _, bookID := range bookIDs {
			b, err := a.Book(ctx, bookID)
			if err != nil {
				return nil, err
			}
			pb.Books = append(pb.Books, *b)
		}
		persons = append(persons, pb)
	}
	sort.Slice(persons, func(i, j int) bool {
		return persons[i].SortKey < persons[j].SortKey
	})
	return persons, nil
}

// Summarize computes the per-year counts and grand totals.
func (a *Aggregator) Summarize(ctx context.Context) (*Summary, error) {
	byYear, err := a.q.CountsByYear(ctx)
	if err != nil {
		return nil, err
	}

	s := &Summary{}
	for _, c := range byYear {
		s.CountsByYear = append(s.CountsByYear, YearCount{
			Year:     c.Year,
			Acquired: c.Acquired,
			Finished: c.Finished,
		})
	}

	if s.Totals.Acquired, err = a.q.TotalAcquired(ctx); err != nil {
		return nil, err
	}
	if s.Totals.DistinctFinished, err = a.q.TotalDistinctFinished(ctx); err != nil {
		return nil, err
	}
	if s.Totals.NotFinished, err = a.q.TotalUnfinished(ctx); err != nil {
		return nil, err
	}
	if s.Totals.AllFinished, err = a.q.TotalFinishEvents(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// persons loads one role's persons for a book as display views.
func (a *Aggregator) persons(ctx context.Context, role domain.Role, bookID int64) ([]Person, error) {
	rows, err := a.q.ListPersonsForBook(ctx, role, bookID)
	if err != nil {
		return nil, err
	}
	views := make([]Person, 0, len(rows))
	for _, p := range rows {
		views = append(views, personView(p))
	}
	return views, nil
}

// personView computes the derived name attributes for one person.
func personView(p domain.Person) Person {
	return Person{
		ID:          p.ID,
		Surname:     orEmpty(p.Surname),
		Forename:    p.Forename,
		DisplayName: p.DisplayName(),
		ReverseName: p.ReverseName(),
		SortKey:     p.SortKey(),
	}
}

// TitleSortKey strips a leading "A ", "An ", or "The " token and uppercases
// the remainder.
func TitleSortKey(title string) string {
	switch {
	case strings.HasPrefix(title, "A "):
		title = title[len("A "):]
	case strings.HasPrefix(title, "An "):
		title = title[len("An "):]
	case strings.HasPrefix(title, "The "):
		title = title[len("The "):]
	}
	return strings.ToUpper(title)
}

// ratingString combines stars and description as "<stars> <description>",
// or empty when the note carries no rating.
func ratingString(stars *int64, description *string) string {
	if stars == nil || description == nil {
		return ""
	}
	return fmt.Sprintf("%d %s", *stars, *description)
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
