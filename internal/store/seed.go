package store

import "context"

// Static reference vocabulary seeded at schema creation. Seeding goes
// through the same get-or-create resolvers ingestion uses, so reopening an
// existing database adds nothing.
var (
	seedVendors = []string{"audible.com", "cloudLibrary"}

	seedAcquisitionTypes = []string{
		"vendor credit",
		"charge",
		"no charge",
		"member benefit",
		"podcast",
		"library benefit",
	}

	seedStatuses = []string{"New", "Started", "Finished"}

	seedRatings = []struct {
		stars       int64
		description string
	}{
		{0, "terrible"},
		{1, "poor"},
		{2, "fair"},
		{3, "good"},
		{4, "very good"},
		{5, "excellent"},
	}
)

// seed inserts the static reference rows.
func (s *Store) seed(ctx context.Context) error {
	for _, name := range seedVendors {
		if _, err := s.SaveVendor(ctx, name); err != nil {
			return err
		}
	}
	for _, name := range seedAcquisitionTypes {
		if _, err := s.SaveAcquisitionType(ctx, name); err != nil {
			return err
		}
	}
	for _, name := range seedStatuses {
		if _, err := s.SaveStatus(ctx, name); err != nil {
			return err
		}
	}
	for _, r := range seedRatings {
		if _, err := s.SaveRating(ctx, r.stars, r.description); err != nil {
			return err
		}
	}
	return nil
}
