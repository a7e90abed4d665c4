package dataset

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marioles/courserafars/internal/observability"
	"github.com/marioles/courserafars/internal/shared/testutil"
)

// --- mock for cache tests ---

type countingLoader struct {
	calls int
}

func (m *countingLoader) Load(_ string) (dataframe.DataFrame, error) {
	m.calls++
	return dataframe.LoadRecords([][]string{
		{"STATE", "MONTH", "LONGITUD", "LATITUDE"},
		{"1", "1", "-86.5", "33.1"},
	}), nil
}

// --- CachedLoader tests ---

func TestCachedLoader_Hit(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteAccidentFile(t, dir, 2013, []testutil.AccidentRow{
		{State: 1, Month: 1, Lon: -86.5, Lat: 33.1},
	})

	inner := &countingLoader{}
	cached := NewCachedLoader(inner, 4, observability.NewMetricsForTesting())

	first, err := cached.Load(path)
	require.NoError(t, err)
	second, err := cached.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls, "unchanged file should be parsed once")
	assert.Equal(t, first.Records(), second.Records())
}

func TestCachedLoader_ReloadOnChange(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteAccidentFile(t, dir, 2013, []testutil.AccidentRow{
		{State: 1, Month: 1, Lon: -86.5, Lat: 33.1},
	})

	inner := &countingLoader{}
	cached := NewCachedLoader(inner, 4, observability.NewMetricsForTesting())

	_, err := cached.Load(path)
	require.NoError(t, err)

	// Rewrite with an extra row; the size change invalidates the key.
	testutil.WriteAccidentFile(t, dir, 2013, []testutil.AccidentRow{
		{State: 1, Month: 1, Lon: -86.5, Lat: 33.1},
		{State: 1, Month: 2, Lon: -86.6, Lat: 33.2},
	})

	_, err = cached.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedLoader_Eviction(t *testing.T) {
	dir := t.TempDir()
	pathA := testutil.WriteAccidentFile(t, dir, 2013, []testutil.AccidentRow{
		{State: 1, Month: 1, Lon: -86.5, Lat: 33.1},
	})
	pathB := testutil.WriteAccidentFile(t, dir, 2014, []testutil.AccidentRow{
		{State: 1, Month: 2, Lon: -86.6, Lat: 33.2},
	})

	inner := &countingLoader{}
	cached := NewCachedLoader(inner, 1, observability.NewMetricsForTesting())

	_, err := cached.Load(pathA)
	require.NoError(t, err)
	_, err = cached.Load(pathB) // evicts A
	require.NoError(t, err)
	_, err = cached.Load(pathA)
	require.NoError(t, err)

	assert.Equal(t, 3, inner.calls)
}

func TestCachedLoader_MissingFilePassesThrough(t *testing.T) {
	loader := NewFileLoader(discardLogger(), observability.NewMetricsForTesting())
	cached := NewCachedLoader(loader, 4, observability.NewMetricsForTesting())

	_, err := cached.Load(t.TempDir() + "/accident_1999.csv.bz2")
	require.Error(t, err)
}
