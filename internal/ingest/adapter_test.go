package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audiologapp/audiolog/internal/errors"
)

// audibleRecord builds a valid 17-column Audible record that tests tweak.
func audibleRecord() []string {
	return []string{
		"The Hobbit",            // title
		"Tolkien, J.R.R.",       // authors
		"",                      // translators
		"Serkis, Andy",          // narrators
		"1937-09-21",            // book pub date
		"2020-05-01",            // audio pub date
		"10",                    // hours
		"25",                    // minutes
		"2023-04-05",            // acquisition date
		"Finished",              // status
		"2023-06-01",            // finished date
		"Credit",                // acquisition type
		"1",                     // credits
		"$8.95",                 // price
		"4",                     // rating
		"",                      // discontinued
		"Great narration.",      // comments
	}
}

func TestForVendor(t *testing.T) {
	a, err := ForVendor("audible")
	require.NoError(t, err)
	assert.Equal(t, "audible.com", a.Vendor())

	c, err := ForVendor("cloudLibrary")
	require.NoError(t, err)
	assert.Equal(t, "cloudLibrary", c.Vendor())

	_, err = ForVendor("libro.fm")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestAudibleParseRow(t *testing.T) {
	a, err := ForVendor("audible")
	require.NoError(t, err)

	row, err := a.ParseRow(audibleRecord())
	require.NoError(t, err)

	assert.Equal(t, "The Hobbit", row.Title)
	require.Len(t, row.Authors, 1)
	assert.Equal(t, "J.R.R.", row.Authors[0].Forename)
	assert.Empty(t, row.Translators)
	require.Len(t, row.Narrators, 1)
	assert.Equal(t, int64(10), row.Hours)
	assert.Equal(t, int64(25), row.Minutes)
	assert.Equal(t, "2023-04-05", row.AcquisitionDate)
	assert.Equal(t, "vendor credit", row.AcquisitionType)
	require.NotNil(t, row.Credits)
	assert.Equal(t, int64(1), *row.Credits)
	require.NotNil(t, row.PriceCents)
	assert.Equal(t, int64(895), *row.PriceCents)
	require.NotNil(t, row.RatingStars)
	assert.Equal(t, int64(4), *row.RatingStars)
	assert.Nil(t, row.Discontinued)
	require.NotNil(t, row.Comments)
	assert.Equal(t, "Great narration.", *row.Comments)
}

func TestAudibleVocabulary(t *testing.T) {
	a, _ := ForVendor("audible")
	for raw, want := range map[string]string{
		"Credit":  "vendor credit",
		"Extra":   "charge",
		"Free":    "no charge",
		"Plus":    "member benefit",
		"Podcast": "podcast",
	} {
		rec := audibleRecord()
		rec[audibleColAcquisitionType] = raw
		row, err := a.ParseRow(rec)
		require.NoError(t, err, "type %q", raw)
		assert.Equal(t, want, row.AcquisitionType, "type %q", raw)
	}
}

func TestAudibleUnmappedVocabularyIsFatal(t *testing.T) {
	a, _ := ForVendor("audible")
	rec := audibleRecord()
	rec[audibleColAcquisitionType] = "Gift"
	_, err := a.ParseRow(rec)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
	assert.Contains(t, err.Error(), "not handled")
}

func TestAudibleWrongColumnCount(t *testing.T) {
	a, _ := ForVendor("audible")
	_, err := a.ParseRow(audibleRecord()[:10])
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestCloudLibraryParseRow(t *testing.T) {
	c, err := ForVendor("cloudlibrary")
	require.NoError(t, err)

	row, err := c.ParseRow([]string{
		"Circe",             // title
		"Miller, Madeline",  // authors
		"Morey, Perdita",    // narrators
		"12",                // hours
		"8",                 // minutes
		"2018-04-10",        // book pub date
		"2018-04-10",        // audio pub date
		"2024-03-02",        // acquisition date
		"Started",           // status
		"",                  // finished date
		"",                  // rating
		"",                  // comments
	})
	require.NoError(t, err)

	assert.Equal(t, "Circe", row.Title)
	assert.Equal(t, "library benefit", row.AcquisitionType)
	assert.Empty(t, row.Translators)
	assert.Nil(t, row.Discontinued)
	assert.Nil(t, row.Credits)
	assert.Nil(t, row.PriceCents)
	assert.Nil(t, row.RatingStars)
	assert.Nil(t, row.FinishDate)
	require.NotNil(t, row.Status)
	assert.Equal(t, "Started", *row.Status)
}
