// Package report reconstructs nested, display-ready view objects from the
// normalized schema. Everything derived here (sort keys, length strings,
// combined ratings, summary totals) is computed at read time and never
// stored. The HTML renderer consuming these views is an external
// collaborator.
package report

// Person is a display-ready author, narrator, or translator.
type Person struct {
	ID          int64
	Surname     string
	Forename    string
	DisplayName string
	ReverseName string
	SortKey     string
}

// Acquisition is the display-ready acquisition record of a book.
type Acquisition struct {
	ID           int64
	Username     string
	VendorName   string
	Type         string
	Date         string
	Discontinued string
	Credits      *int64
	PriceCents   *int64
}

// Note is one display-ready listening record. Optional fields are rendered
// as empty strings.
type Note struct {
	ID         int64
	Username   string
	Status     string
	FinishDate string
	Rating     string
	Comments   string
}

// Book is the nested view object for one audiobook.
type Book struct {
	ID           int64
	Title        string
	BookPubDate  string
	AudioPubDate string
	Hours        int64
	Minutes      int64

	Authors     []Person
	Translators []Person
	Narrators   []Person
	Acquisition *Acquisition
	Notes       []Note

	// Derived attributes.
	TitleSortKey    string
	LengthSortKey   int64
	Length          string
	Rating          string
	Status          string
	FinishDate      string
	AcquisitionDate string
}

// PersonBooks is a person together with the books they worked on.
type PersonBooks struct {
	Person
	Books []Book
}

// YearCount holds one calendar year's acquisition and finish counts.
type YearCount struct {
	Year     string
	Acquired int64
	Finished int64
}

// Totals holds the catalog-wide summary counts.
type Totals struct {
	// Acquired is the total number of acquisitions.
	Acquired int64
	// DistinctFinished counts each finished book once, rereads ignored.
	DistinctFinished int64
	// NotFinished counts books never finished.
	NotFinished int64
	// AllFinished counts every finish event, rereads included.
	AllFinished int64
}

// Summary is the per-year and grand-total report view.
type Summary struct {
	CountsByYear []YearCount
	Totals       Totals
}
