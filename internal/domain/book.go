package domain

// Book is one audiobook. Identity is the title alone; two distinct works
// sharing a title collide into one row. That limitation is documented and
// accepted, not fixed.
type Book struct {
	ID           int64
	Title        string
	BookPubDate  *string
	AudioPubDate *string
	Hours        int64
	Minutes      int64
}

// Acquisition is one user's record of obtaining one book from one vendor.
// At most one row exists per (user, book, vendor); attributes of an existing
// row are never updated by re-ingestion.
type Acquisition struct {
	ID           int64
	UserID       int64
	BookID       int64
	VendorID     int64
	TypeID       int64
	Date         string
	Discontinued *string
	Credits      *int64
	PriceCents   *int64
}

// Note is one user's listening record for a book. A book may carry several
// notes; a reread is represented as an additional row. Identity is the exact
// value tuple, so re-importing identical data never duplicates a note.
type Note struct {
	ID         int64
	UserID     int64
	BookID     int64
	StatusID   *int64
	FinishDate *string
	RatingID   *int64
	Comments   *string
}

// Rating is one row of the fixed 0-5 star scale seeded at schema creation.
type Rating struct {
	ID          int64
	Stars       int64
	Description string
}

// User owns acquisitions and notes. Authentication happens against the
// stored argon2id hash.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
}
