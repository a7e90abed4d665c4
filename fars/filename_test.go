package fars

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	assert.Equal(t, "accident_2013.csv.bz2", Filename(2013))
	assert.Equal(t, "accident_1999.csv.bz2", Filename(1999))
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"plain integer", "2013", 2013, false},
		{"integer-valued float", "2013.0", 2013, false},
		{"surrounding whitespace", " 2014 ", 2014, false},
		{"fractional", "2013.5", 0, true},
		{"non-numeric", "twenty-thirteen", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseYear(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStateCode(t *testing.T) {
	code, err := ParseStateCode("48")
	require.NoError(t, err)
	assert.Equal(t, 48, code)

	_, err = ParseStateCode("TX")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
