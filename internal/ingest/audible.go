package ingest

import (
	"strings"

	"github.com/audiologapp/audiolog/internal/domain"
	"github.com/audiologapp/audiolog/internal/errors"
)

// Audible export column positions.
const (
	audibleColTitle = iota
	audibleColAuthors
	audibleColTranslators
	audibleColNarrators
	audibleColBookPubDate
	audibleColAudioPubDate
	audibleColHours
	audibleColMinutes
	audibleColAcquisitionDate
	audibleColStatus
	audibleColFinishedDate
	audibleColAcquisitionType
	audibleColCredits
	audibleColPrice
	audibleColRating
	audibleColDiscontinued
	audibleColComments

	audibleColumns
)

// audibleAcquisitionTypes maps the vocabulary of the Audible export to the
// canonical acquisition-type set. A raw value outside this map is fatal.
var audibleAcquisitionTypes = map[string]string{
	"Credit":  "vendor credit",
	"Extra":   "charge",
	"Free":    "no charge",
	"Plus":    "member benefit",
	"Podcast": "podcast",
}

type audibleAdapter struct{}

func (audibleAdapter) Vendor() string { return "audible.com" }

func (audibleAdapter) Columns() int { return audibleColumns }

func (audibleAdapter) ParseRow(record []string) (*Row, error) {
	if len(record) != audibleColumns {
		return nil, errors.Validationf(
			"audible row has %d fields, want %d", len(record), audibleColumns)
	}

	authors, err := parsePersons(record[audibleColAuthors], domain.RoleAuthor)
	if err != nil {
		return nil, err
	}
	translators, err := parsePersons(record[audibleColTranslators], domain.RoleTranslator)
	if err != nil {
		return nil, err
	}
	narrators, err := parsePersons(record[audibleColNarrators], domain.RoleNarrator)
	if err != nil {
		return nil, err
	}

	hours, err := parseRequiredInt(record[audibleColHours], "hours")
	if err != nil {
		return nil, err
	}
	minutes, err := parseRequiredInt(record[audibleColMinutes], "minutes")
	if err != nil {
		return nil, err
	}

	rawType := strings.TrimSpace(record[audibleColAcquisitionType])
	acquisitionType, ok := audibleAcquisitionTypes[rawType]
	if !ok {
		return nil, errors.Validationf("acquisition type %q not handled", rawType)
	}

	credits, err := parseOptionalInt(record[audibleColCredits], "credits")
	if err != nil {
		return nil, err
	}
	price, err := convertPrice(record[audibleColPrice])
	if err != nil {
		return nil, err
	}
	rating, err := parseOptionalInt(record[audibleColRating], "rating")
	if err != nil {
		return nil, err
	}

	return &Row{
		Title:           record[audibleColTitle],
		Authors:         authors,
		Translators:     translators,
		Narrators:       narrators,
		BookPubDate:     optionalString(record[audibleColBookPubDate]),
		AudioPubDate:    optionalString(record[audibleColAudioPubDate]),
		Hours:           hours,
		Minutes:         minutes,
		AcquisitionDate: record[audibleColAcquisitionDate],
		AcquisitionType: acquisitionType,
		Status:          optionalString(record[audibleColStatus]),
		FinishDate:      optionalString(record[audibleColFinishedDate]),
		RatingStars:     rating,
		Credits:         credits,
		PriceCents:      price,
		Discontinued:    optionalString(record[audibleColDiscontinued]),
		Comments:        optionalString(record[audibleColComments]),
	}, nil
}
