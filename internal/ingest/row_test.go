package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audiologapp/audiolog/internal/domain"
	"github.com/audiologapp/audiolog/internal/errors"
)

func TestConvertPrice(t *testing.T) {
	tests := []struct {
		in   string
		want *int64
	}{
		{"$8.95", i64ptr(895)},
		{"$10.00", i64ptr(1000)},
		{"$0.99", i64ptr(99)},
		{"", nil},
		{"$.", nil},
	}
	for _, tt := range tests {
		got, err := convertPrice(tt.in)
		require.NoError(t, err, "convertPrice(%q)", tt.in)
		if tt.want == nil {
			assert.Nil(t, got, "convertPrice(%q)", tt.in)
		} else {
			require.NotNil(t, got, "convertPrice(%q)", tt.in)
			assert.Equal(t, *tt.want, *got, "convertPrice(%q)", tt.in)
		}
	}
}

func TestConvertPriceMalformed(t *testing.T) {
	_, err := convertPrice("$8.9x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestParsePersonsSurnameForename(t *testing.T) {
	names, err := parsePersons("Tolkien, J.R.R. & Le Guin, Ursula K.", domain.RoleAuthor)
	require.NoError(t, err)
	require.Len(t, names, 2)

	require.NotNil(t, names[0].Surname)
	assert.Equal(t, "Tolkien", *names[0].Surname)
	assert.Equal(t, "J.R.R.", names[0].Forename)

	require.NotNil(t, names[1].Surname)
	assert.Equal(t, "Le Guin", *names[1].Surname)
	assert.Equal(t, "Ursula K.", names[1].Forename)
}

func TestParsePersonsSingleName(t *testing.T) {
	names, err := parsePersons("Homer", domain.RoleAuthor)
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Nil(t, names[0].Surname)
	assert.Equal(t, "Homer", names[0].Forename)
}

func TestParsePersonsEmptyField(t *testing.T) {
	names, err := parsePersons("", domain.RoleNarrator)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestParsePersonsTooManyCommas(t *testing.T) {
	_, err := parsePersons("One, Two, Three", domain.RoleTranslator)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
	assert.Contains(t, err.Error(), "too many commas")
}

func TestParsePersonsEmptyForename(t *testing.T) {
	_, err := parsePersons("Tolkien, ", domain.RoleAuthor)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func i64ptr(n int64) *int64 { return &n }
