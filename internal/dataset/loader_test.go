package dataset

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marioles/courserafars/internal/observability"
	"github.com/marioles/courserafars/internal/shared/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFileLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteAccidentFile(t, dir, 2013, []testutil.AccidentRow{
		{State: 1, Month: 1, Lon: -86.5, Lat: 33.1},
		{State: 48, Month: 2, Lon: -98.44, Lat: 31.02},
	})

	loader := NewFileLoader(discardLogger(), observability.NewMetricsForTesting())
	df, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, df.Nrow())
	assert.Equal(t, []string{"STATE", "ST_CASE", "MONTH", "LONGITUD", "LATITUDE"}, df.Names())
}

func TestFileLoader_PlainCSV(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WritePlainAccidentFile(t, dir, "accident_2013.csv", []testutil.AccidentRow{
		{State: 6, Month: 4, Lon: -120.1, Lat: 36.5},
	})

	loader := NewFileLoader(discardLogger(), observability.NewMetricsForTesting())
	df, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, df.Nrow())
}

func TestFileLoader_MissingFile(t *testing.T) {
	loader := NewFileLoader(discardLogger(), observability.NewMetricsForTesting())

	_, err := loader.Load(filepath.Join(t.TempDir(), "accident_1999.csv.bz2"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFileLoader_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.csv")
	writeFile(t, path, "STATE,MONTH\n1,1\n")

	loader := NewFileLoader(discardLogger(), observability.NewMetricsForTesting())
	_, err := loader.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
}

func TestFileLoader_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteAccidentFile(t, dir, 2014, []testutil.AccidentRow{
		{State: 1, Month: 1, Lon: -86.5, Lat: 33.1},
	})

	loader := NewFileLoader(discardLogger(), observability.NewMetricsForTesting())
	first, err := loader.Load(path)
	require.NoError(t, err)
	second, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, first.Records(), second.Records())
}
