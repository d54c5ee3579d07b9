package ingest

import (
	"github.com/audiologapp/audiolog/internal/domain"
	"github.com/audiologapp/audiolog/internal/errors"
)

// cloudLibrary export column positions. The export carries no translator,
// acquisition-type, credit, price, or discontinued fields; those default to
// empty, and every acquisition is a library benefit.
const (
	cloudLibraryColTitle = iota
	cloudLibraryColAuthors
	cloudLibraryColNarrators
	cloudLibraryColHours
	cloudLibraryColMinutes
	cloudLibraryColBookPubDate
	cloudLibraryColAudioPubDate
	cloudLibraryColAcquisitionDate
	cloudLibraryColStatus
	cloudLibraryColFinishedDate
	cloudLibraryColRating
	cloudLibraryColComments

	cloudLibraryColumns
)

// cloudLibraryAcquisitionType is the fixed acquisition type of every
// cloudLibrary row.
const cloudLibraryAcquisitionType = "library benefit"

type cloudLibraryAdapter struct{}

func (cloudLibraryAdapter) Vendor() string { return "cloudLibrary" }

func (cloudLibraryAdapter) Columns() int { return cloudLibraryColumns }

func (cloudLibraryAdapter) ParseRow(record []string) (*Row, error) {
	if len(record) != cloudLibraryColumns {
		return nil, errors.Validationf(
			"cloudLibrary row has %d fields, want %d", len(record), cloudLibraryColumns)
	}

	authors, err := parsePersons(record[cloudLibraryColAuthors], domain.RoleAuthor)
	if err != nil {
		return nil, err
	}
	narrators, err := parsePersons(record[cloudLibraryColNarrators], domain.RoleNarrator)
	if err != nil {
		return nil, err
	}

	hours, err := parseRequiredInt(record[cloudLibraryColHours], "hours")
	if err != nil {
		return nil, err
	}
	minutes, err := parseRequiredInt(record[cloudLibraryColMinutes], "minutes")
	if err != nil {
		return nil, err
	}
	rating, err := parseOptionalInt(record[cloudLibraryColRating], "rating")
	if err != nil {
		return nil, err
	}

	return &Row{
		Title:           record[cloudLibraryColTitle],
		Authors:         authors,
		Narrators:       narrators,
		BookPubDate:     optionalString(record[cloudLibraryColBookPubDate]),
		AudioPubDate:    optionalString(record[cloudLibraryColAudioPubDate]),
		Hours:           hours,
		Minutes:         minutes,
		AcquisitionDate: record[cloudLibraryColAcquisitionDate],
		AcquisitionType: cloudLibraryAcquisitionType,
		Status:          optionalString(record[cloudLibraryColStatus]),
		FinishDate:      optionalString(record[cloudLibraryColFinishedDate]),
		RatingStars:     rating,
		Comments:        optionalString(record[cloudLibraryColComments]),
	}, nil
}
