// Package dataset reads yearly FARS accident files into dataframes.
package dataset

import (
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/marioles/courserafars/internal/observability"
)

// requiredColumns must be present in every yearly accident file.
var requiredColumns = []string{"STATE", "MONTH", "LONGITUD", "LATITUDE"}

// Loader reads one accident file into a dataframe.
type Loader interface {
	Load(path string) (dataframe.DataFrame, error)
}

// FileLoader parses bz2-compressed (or plain) accident CSV files.
type FileLoader struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewFileLoader creates a FileLoader with the given observability.
func NewFileLoader(logger *slog.Logger, metrics *observability.Metrics) *FileLoader {
	return &FileLoader{logger: logger, metrics: metrics}
}

// Load reads the file at path into a dataframe whose column names come
// from the CSV header, with STATE, MONTH, LONGITUD and LATITUDE typed.
// A missing path yields an error wrapping fs.ErrNotExist.
func (l *FileLoader) Load(path string) (dataframe.DataFrame, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		l.metrics.LoadFailures.Inc()
		if errors.Is(err, fs.ErrNotExist) {
			return dataframe.DataFrame{}, fmt.Errorf("accident file %q: %w", path, fs.ErrNotExist)
		}
		return dataframe.DataFrame{}, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		r = bzip2.NewReader(f)
	}

	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.WithTypes(map[string]series.Type{
			"STATE":    series.Int,
			"MONTH":    series.Int,
			"LONGITUD": series.Float,
			"LATITUDE": series.Float,
		}),
	)
	if df.Err != nil {
		l.metrics.LoadFailures.Inc()
		return dataframe.DataFrame{}, fmt.Errorf("parse %q: %w", path, df.Err)
	}
	if err := checkColumns(df); err != nil {
		l.metrics.LoadFailures.Inc()
		return dataframe.DataFrame{}, fmt.Errorf("parse %q: %w", path, err)
	}

	l.metrics.FilesLoaded.Inc()
	l.metrics.RecordsLoaded.Add(float64(df.Nrow()))
	l.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	l.logger.Debug("accident file loaded", "path", path, "rows", df.Nrow(), "cols", df.Ncol())

	return df, nil
}

func checkColumns(df dataframe.DataFrame) error {
	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}
	for _, want := range requiredColumns {
		if !present[want] {
			return fmt.Errorf("missing required column %s", want)
		}
	}
	return nil
}
