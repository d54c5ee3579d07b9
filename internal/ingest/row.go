// Package ingest converts vendor CSV exports into normalized catalog rows.
// Each vendor has a fixed positional column layout and its own acquisition
// vocabulary; adapters translate both into one canonical row shape, and the
// orchestrator resolves that shape against the store inside one transaction
// per file.
package ingest

import (
	"strconv"
	"strings"

	"github.com/audiologapp/audiolog/internal/domain"
	"github.com/audiologapp/audiolog/internal/errors"
)

// Row is the canonical ingestion request produced by a vendor adapter.
// Optional CSV fields are nil rather than empty so the NULL-aware identity
// rules downstream see the distinction.
type Row struct {
	Title           string               `validate:"required"`
	Authors         []domain.PersonName  `validate:"min=1"`
	Translators     []domain.PersonName  `validate:"-"`
	Narrators       []domain.PersonName  `validate:"-"`
	BookPubDate     *string              `validate:"-"`
	AudioPubDate    *string              `validate:"-"`
	Hours           int64                `validate:"gte=0"`
	Minutes         int64                `validate:"gte=0,lte=59"`
	AcquisitionDate string               `validate:"required"`
	AcquisitionType string               `validate:"required"`
	Status          *string              `validate:"-"`
	FinishDate      *string              `validate:"-"`
	RatingStars     *int64               `validate:"omitempty,gte=0,lte=5"`
	Credits         *int64               `validate:"-"`
	PriceCents      *int64               `validate:"omitempty,gte=0"`
	Discontinued    *string              `validate:"-"`
	Comments        *string              `validate:"-"`
}

// nameDelimiter separates multiple persons within one CSV field. Names
// themselves use "surname, forename", so the two conventions never mix.
const nameDelimiter = " & "

// parsePersons splits a multi-valued name field and parses each element as
// "surname, forename". A single-name person ("Homer") gets a nil surname.
// An empty field yields no persons.
func parsePersons(field string, role domain.Role) ([]domain.PersonName, error) {
	if field == "" {
		return nil, nil
	}

	parts := strings.Split(field, nameDelimiter)
	names := make([]domain.PersonName, 0, len(parts))
	for _, part := range parts {
		name, err := parsePersonName(part, role)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// parsePersonName parses one "surname, forename" element.
func parsePersonName(s string, role domain.Role) (domain.PersonName, error) {
	pieces := strings.Split(s, ",")
	var name domain.PersonName
	switch len(pieces) {
	case 1:
		name.Forename = strings.TrimSpace(pieces[0])
	case 2:
		surname := strings.TrimSpace(pieces[0])
		if surname != "" {
			name.Surname = &surname
		}
		name.Forename = strings.TrimSpace(pieces[1])
	default:
		return domain.PersonName{}, errors.Validationf(
			"%s name %q formatted incorrectly with too many commas", role, s)
	}
	if name.Forename == "" {
		return domain.PersonName{}, errors.Validationf(
			"the %s's forename in %q must not be empty", role, s)
	}
	return name, nil
}

// convertPrice converts a price string to integer cents by removing literal
// "$" and "." characters and parsing the remainder. An empty price is no
// price (nil), not zero. The conversion assumes exactly two decimal digits;
// a price written with different precision silently converts wrong, which
// matches the historical behavior of the catalog.
func convertPrice(csvPrice string) (*int64, error) {
	if csvPrice == "" {
		return nil, nil
	}

	var digits strings.Builder
	for _, r := range csvPrice {
		if r != '$' && r != '.' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return nil, nil
	}

	cents, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return nil, errors.Validationf("can't convert price %q to cents", csvPrice)
	}
	return &cents, nil
}

// parseOptionalInt parses an optional integer CSV field; empty is nil.
func parseOptionalInt(field, what string) (*int64, error) {
	if field == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
	if err != nil {
		return nil, errors.Validationf("can't parse %s %q", what, field)
	}
	return &n, nil
}

// parseRequiredInt parses a required integer CSV field.
func parseRequiredInt(field, what string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
	if err != nil {
		return 0, errors.Validationf("can't parse %s %q", what, field)
	}
	return n, nil
}

// optionalString converts an empty CSV field to nil.
func optionalString(field string) *string {
	if field == "" {
		return nil
	}
	return &field
}
