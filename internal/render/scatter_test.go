package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marioles/courserafars/internal/domain"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func located(lon, lat float64) domain.AccidentRecord {
	return domain.AccidentRecord{State: 1, Month: 1, Lon: &lon, Lat: &lat}
}

func TestStateScatter_WritesPNG(t *testing.T) {
	var buf bytes.Buffer
	records := []domain.AccidentRecord{
		located(-86.5, 33.1),
		located(-86.9, 33.4),
		located(-87.2, 32.8),
	}

	err := StateScatter(&buf, records, "State 1 accidents, 2013", DefaultOptions())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature), "output should be PNG-encoded")
}

func TestStateScatter_SinglePoint(t *testing.T) {
	var buf bytes.Buffer

	err := StateScatter(&buf, []domain.AccidentRecord{located(-86.5, 33.1)}, "one point", DefaultOptions())
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}

func TestStateScatter_NoLocatedRecords(t *testing.T) {
	var buf bytes.Buffer
	records := []domain.AccidentRecord{{State: 1, Month: 1}}

	err := StateScatter(&buf, records, "empty", DefaultOptions())
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestPad(t *testing.T) {
	tests := []struct {
		name           string
		lo, hi         float64
		wantLo, wantHi float64
	}{
		{"regular range", 0, 100, -2, 102},
		{"degenerate range", 5, 5, 4.5, 5.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := pad(tt.lo, tt.hi)
			assert.InDelta(t, tt.wantLo, lo, 1e-9)
			assert.InDelta(t, tt.wantHi, hi, 1e-9)
		})
	}
}
