package report

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/audiologapp/audiolog/internal/domain"
	"github.com/audiologapp/audiolog/internal/store"
)

func TestTitleSortKey(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"The Hobbit", "HOBBIT"},
		{"A Wizard of Earthsea", "WIZARD OF EARTHSEA"},
		{"An Instance of the Fingerpost", "INSTANCE OF THE FINGERPOST"},
		{"Foundation", "FOUNDATION"},
		{"Another Country", "ANOTHER COUNTRY"},
		{"Them", "THEM"},
	}
	for _, tt := range tests {
		if got := TitleSortKey(tt.title); got != tt.want {
			t.Errorf("TitleSortKey(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	s, err := store.Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func strptr(s string) *string { return &s }

func i64ptr(n int64) *int64 { return &n }

// seedCatalog inserts one user, two books with contributors, acquisitions,
// and notes, and returns the two book ids in insertion order.
func seedCatalog(t *testing.T, s *store.Store) (int64, int64) {
	t.Helper()
	ctx := context.Background()
	q := s.Queries

	userID, err := q.CreateUser(ctx, "alice", "alice@example.com", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	vendorID, err := q.SaveVendor(ctx, "audible.com")
	if err != nil {
		t.Fatalf("save vendor: %v", err)
	}
	typeID, err := q.SaveAcquisitionType(ctx, "charge")
	if err != nil {
		t.Fatalf("save acquisition type: %v", err)
	}

	hobbit, err := q.SaveBook(ctx, domain.Book{
		Title: "The Hobbit", BookPubDate: strptr("1937-09-21"), Hours: 11, Minutes: 5,
	})
	if err != nil {
		t.Fatalf("save book: %v", err)
	}
	earthsea, err := q.SaveBook(ctx, domain.Book{
		Title: "A Wizard of Earthsea", Hours: 7, Minutes: 2,
	})
	if err != nil {
		t.Fatalf("save book: %v", err)
	}

	tolkien, err := q.SavePerson(ctx, domain.RoleAuthor, domain.PersonName{Surname: strptr("Tolkien"), Forename: "J.R.R."})
	if err != nil {
		t.Fatalf("save person: %v", err)
	}
	leguin, err := q.SavePerson(ctx, domain.RoleAuthor, domain.PersonName{Surname: strptr("Le Guin"), Forename: "Ursula K."})
	if err != nil {
		t.Fatalf("save person: %v", err)
	}
	serkis, err := q.SavePerson(ctx, domain.RoleNarrator, domain.PersonName{Surname: strptr("Serkis"), Forename: "Andy"})
	if err != nil {
		t.Fatalf("save person: %v", err)
	}
	if err := q.LinkBookPerson(ctx, domain.RoleAuthor, hobbit, tolkien); err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := q.LinkBookPerson(ctx, domain.RoleAuthor, earthsea, leguin); err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := q.LinkBookPerson(ctx, domain.RoleNarrator, hobbit, serkis); err != nil {
		t.Fatalf("link: %v", err)
	}

	if _, err := q.SaveAcquisition(ctx, domain.Acquisition{
		UserID: userID, BookID: hobbit, VendorID: vendorID, TypeID: typeID,
		Date: "2021-03-14", PriceCents: i64ptr(2495),
	}); err != nil {
		t.Fatalf("save acquisition: %v", err)
	}
	if _, err := q.SaveAcquisition(ctx, domain.Acquisition{
		UserID: userID, BookID: earthsea, VendorID: vendorID, TypeID: typeID,
		Date: "2022-07-01",
	}); err != nil {
		t.Fatalf("save acquisition: %v", err)
	}

	finishedID, err := q.SaveStatus(ctx, "Finished")
	if err != nil {
		t.Fatalf("save status: %v", err)
	}
	ratingID, err := q.GetRatingIDByStars(ctx, 5)
	if err != nil {
		t.Fatalf("rating id: %v", err)
	}
	if _, err := q.SaveNote(ctx, domain.Note{
		UserID: userID, BookID: hobbit, StatusID: &finishedID,
		FinishDate: strptr("2021-04-02"), RatingID: &ratingID,
	}); err != nil {
		t.Fatalf("save note: %v", err)
	}
	// A reread the next year.
	if _, err := q.SaveNote(ctx, domain.Note{
		UserID: userID, BookID: hobbit, StatusID: &finishedID,
		FinishDate: strptr("2022-04-02"), RatingID: &ratingID,
	}); err != nil {
		t.Fatalf("save note: %v", err)
	}

	return hobbit, earthsea
}

func TestBookView(t *testing.T) {
	s := newTestStore(t)
	hobbit, _ := seedCatalog(t, s)

	b, err := New(s.Queries).Book(context.Background(), hobbit)
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	if b.TitleSortKey != "HOBBIT" {
		t.Errorf("title sort key = %q, want HOBBIT", b.TitleSortKey)
	}
	if b.LengthSortKey != 665 {
		t.Errorf("length sort key = %d, want 665", b.LengthSortKey)
	}
	if b.Length != "11:05" {
		t.Errorf("length = %q, want 11:05", b.Length)
	}
	if len(b.Authors) != 1 || b.Authors[0].DisplayName != "J.R.R. Tolkien" {
		t.Errorf("authors = %+v", b.Authors)
	}
	if len(b.Narrators) != 1 || b.Narrators[0].ReverseName != "Serkis, Andy" {
		t.Errorf("narrators = %+v", b.Narrators)
	}
	if b.Acquisition == nil || b.Acquisition.VendorName != "audible.com" {
		t.Fatalf("acquisition = %+v", b.Acquisition)
	}
	if b.AcquisitionDate != "2021-03-14" {
		t.Errorf("acquisition date = %q", b.AcquisitionDate)
	}
	if len(b.Notes) != 2 {
		t.Fatalf("notes = %d, want 2", len(b.Notes))
	}
	if b.Rating != "5 excellent" {
		t.Errorf("rating = %q, want %q", b.Rating, "5 excellent")
	}
	if b.Status != "Finished" || b.FinishDate != "2021-04-02" {
		t.Errorf("status %q finish %q from first note", b.Status, b.FinishDate)
	}
}

func TestBookViewWithoutNotes(t *testing.T) {
	s := newTestStore(t)
	_, earthsea := seedCatalog(t, s)

	b, err := New(s.Queries).Book(context.Background(), earthsea)
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if b.Rating != "" || b.Status != "" || b.FinishDate != "" {
		t.Errorf("expected empty note-derived fields, got %q %q %q", b.Rating, b.Status, b.FinishDate)
	}
	if b.Length != "7:02" {
		t.Errorf("length = %q, want 7:02", b.Length)
	}
}

func TestBooksSortedByTitleKey(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)

	books, err := New(s.Queries).Books(context.Background())
	if err != nil {
		t.Fatalf("Books: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("books = %d, want 2", len(books))
	}
	// "The Hobbit" sorts before "A Wizard of Earthsea" once articles drop.
	if books[0].Title != "The Hobbit" || books[1].Title != "A Wizard of Earthsea" {
		t.Errorf("order = %q, %q", books[0].Title, books[1].Title)
	}
}

func TestPersonsWithBooks(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)

	authors, err := New(s.Queries).PersonsWithBooks(context.Background(), domain.RoleAuthor)
	if err != nil {
		t.Fatalf("PersonsWithBooks: %v", err)
	}
	if len(authors) != 2 {
		t.Fatalf("authors = %d, want 2", len(authors))
	}
	// Sorted by surname-first sort key: Le Guin before Tolkien.
	if authors[0].DisplayName != "Ursula K. Le Guin" {
		t.Errorf("first author = %q", authors[0].DisplayName)
	}
	if len(authors[0].Books) != 1 || authors[0].Books[0].Title != "A Wizard of Earthsea" {
		t.Errorf("le guin books = %+v", authors[0].Books)
	}
	if len(authors[1].Books) != 1 || authors[1].Books[0].Title != "The Hobbit" {
		t.Errorf("tolkien books = %+v", authors[1].Books)
	}
}

func TestSummarize(t *testing.T) {
	s := newTestStore(t)
	seedCatalog(t, s)

	sum, err := New(s.Queries).Summarize(context.Background())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if sum.Totals.Acquired != 2 {
		t.Errorf("acquired = %d, want 2", sum.Totals.Acquired)
	}
	if sum.Totals.DistinctFinished != 1 {
		t.Errorf("distinct finished = %d, want 1", sum.Totals.DistinctFinished)
	}
	if sum.Totals.AllFinished != 2 {
		t.Errorf("all finished = %d, want 2", sum.Totals.AllFinished)
	}
	// Earthsea has no note at all, so it is not counted as unfinished.
	if sum.Totals.NotFinished != 0 {
		t.Errorf("not finished = %d, want 0", sum.Totals.NotFinished)
	}

	want := []YearCount{
		{Year: "2021", Acquired: 1, Finished: 1},
		{Year: "2022", Acquired: 1, Finished: 1},
	}
	if len(sum.CountsByYear) != len(want) {
		t.Fatalf("counts by year = %+v", sum.CountsByYear)
	}
	for i, w := range want {
		if sum.CountsByYear[i] != w {
			t.Errorf("year %d = %+v, want %+v", i, sum.CountsByYear[i], w)
		}
	}
}
