package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/stretchr/testify/require"
)

// AccidentHeader is the column set shared by all generated fixture files.
const AccidentHeader = "STATE,ST_CASE,MONTH,LONGITUD,LATITUDE"

// AccidentRow is one fixture row in AccidentHeader order. ST_CASE is
// assigned sequentially.
type AccidentRow struct {
	State int
	Month int
	Lon   float64
	Lat   float64
}

// AccidentCSV renders fixture rows as CSV text with a header line.
func AccidentCSV(rows []AccidentRow) string {
	var sb strings.Builder
	sb.WriteString(AccidentHeader + "\n")
	for i, r := range rows {
		fmt.Fprintf(&sb, "%d,%d,%d,%g,%g\n", r.State, i+1, r.Month, r.Lon, r.Lat)
	}
	return sb.String()
}

// WriteAccidentFile writes a bz2-compressed accident CSV for year into dir
// and returns its path. The Go standard library can only read bz2, so the
// fixtures are compressed with dsnet/compress.
func WriteAccidentFile(t *testing.T, dir string, year int, rows []AccidentRow) string {
	t.Helper()

	path := filepath.Join(dir, fmt.Sprintf("accident_%d.csv.bz2", year))
	f, err := os.Create(path)
	require.NoError(t, err)

	w, err := bzip2.NewWriter(f, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	require.NoError(t, err)
	_, err = w.Write([]byte(AccidentCSV(rows)))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	return path
}

// WritePlainAccidentFile writes an uncompressed accident CSV into dir.
func WritePlainAccidentFile(t *testing.T, dir string, name string, rows []AccidentRow) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(AccidentCSV(rows)), 0o644))
	return path
}
