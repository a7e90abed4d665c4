// Package fars loads yearly FARS traffic-accident records from
// bz2-compressed CSV files, aggregates monthly counts across years, and
// renders per-state scatter maps of accident locations.
//
// File layout follows the FARS export convention: one file per year named
// accident_<year>.csv.bz2, resolved against the configured data directory.
package fars

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/plot/vg"

	"github.com/marioles/courserafars/internal/config"
	"github.com/marioles/courserafars/internal/dataset"
	"github.com/marioles/courserafars/internal/domain"
	"github.com/marioles/courserafars/internal/observability"
	"github.com/marioles/courserafars/internal/render"
)

// Service owns the dataset loader, logging, and metrics for all accident
// data operations. Each call is a single-pass, stateless transformation;
// nothing outlives the call besides the read-through dataset cache.
type Service struct {
	loader  dataset.Loader
	logger  *slog.Logger
	metrics *observability.Metrics
	dataDir string
	plot    render.Options
}

// New wires a Service from the environment (see internal/config for the
// recognized variables) and registers its metrics with the default
// Prometheus registry.
func New() (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	return newService(cfg, logger, observability.NewMetrics()), nil
}

func newService(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Service {
	loader := dataset.NewCachedLoader(
		dataset.NewFileLoader(logger, metrics),
		cfg.CacheSize,
		metrics,
	)
	return &Service{
		loader:  loader,
		logger:  logger,
		metrics: metrics,
		dataDir: cfg.DataDir,
		plot: render.Options{
			Width:  vg.Length(cfg.PlotWidthInch) * vg.Inch,
			Height: vg.Length(cfg.PlotHeightInch) * vg.Inch,
		},
	}
}

// ReadFile parses one accident CSV(.bz2) file into a dataframe whose
// column names come from the header row. A missing path fails with
// ErrMissingFile. Re-reads of an unchanged file return equal content.
func (s *Service) ReadFile(path string) (dataframe.DataFrame, error) {
	df, err := s.loader.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %w", ErrMissingFile, err)
		}
		return dataframe.DataFrame{}, err
	}
	return df, nil
}

// YearFailure records why one requested year could not be loaded.
type YearFailure struct {
	Year int
	Err  error
}

// YearTables is the result of a multi-year read. Tables is index-aligned
// with Years; a nil entry marks a year that failed to load, with the cause
// recorded in Failures.
type YearTables struct {
	Years    []int
	Tables   []*dataframe.DataFrame
	Failures []YearFailure
}

// ReadYears loads each requested year, adds a constant year column, and
// projects to the (MONTH, year) pair. A failing year is downgraded to one
// warning and a Failures entry; the remaining years are unaffected.
func (s *Service) ReadYears(years []int) YearTables {
	result := YearTables{
		Years:  years,
		Tables: make([]*dataframe.DataFrame, len(years)),
	}
	for i, year := range years {
		df, err := s.readYear(year)
		if err != nil {
			s.logger.Warn("invalid year, skipping", "year", year, "error", err)
			result.Failures = append(result.Failures, YearFailure{Year: year, Err: err})
			continue
		}
		result.Tables[i] = &df
	}
	return result
}

func (s *Service) readYear(year int) (dataframe.DataFrame, error) {
	df, err := s.ReadFile(filepath.Join(s.dataDir, Filename(year)))
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	yearCol := make([]int, df.Nrow())
	for i := range yearCol {
		yearCol[i] = year
	}
	df = df.Mutate(series.New(yearCol, series.Int, domain.YearColumn))
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("add year column: %w", df.Err)
	}

	out := df.Select([]string{domain.MonthColumn, domain.YearColumn})
	if out.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("project year %d: %w", year, out.Err)
	}
	return out, nil
}

// Summary is a wide month-by-year accident count table.
type Summary struct {
	Table       dataframe.DataFrame
	Failures    []YearFailure
	GeneratedAt time.Time
}

// SummarizeYears counts accidents per (year, month) across the requested
// years and pivots the counts into a month-by-year table: months ascending
// down the rows, distinct loaded years ascending across the columns, and
// NaN for combinations with no observations. Years that fail to load are
// reported in Failures and excluded from the table; a summary over zero
// loaded rows carries an empty table and a nil error.
func (s *Service) SummarizeYears(years []int) (Summary, error) {
	read := s.ReadYears(years)

	var combined dataframe.DataFrame
	loaded := false
	for _, tbl := range read.Tables {
		if tbl == nil {
			continue
		}
		if !loaded {
			combined = *tbl
			loaded = true
			continue
		}
		combined = combined.RBind(*tbl)
		if combined.Err != nil {
			return Summary{}, fmt.Errorf("combine yearly tables: %w", combined.Err)
		}
	}

	if !loaded {
		return Summary{
			Table:       domain.EmptySummary(),
			Failures:    read.Failures,
			GeneratedAt: domain.Now(),
		}, nil
	}

	table, err := domain.BuildMonthlySummary(combined)
	if err != nil {
		return Summary{}, err
	}
	s.metrics.SummariesBuilt.Inc()

	return Summary{
		Table:       table,
		Failures:    read.Failures,
		GeneratedAt: domain.Now(),
	}, nil
}

// MapState draws every located accident for one state and year as a point
// on a base map scaled to the valid coordinate extent, PNG-encoded to w.
// A state code absent from the year's STATE column fails with
// ErrInvalidState. A state with zero rows, or rows whose coordinates are
// all sentinels, logs a notice and writes nothing.
func (s *Service) MapState(stateCode, year int, w io.Writer) error {
	df, err := s.ReadFile(filepath.Join(s.dataDir, Filename(year)))
	if err != nil {
		return err
	}

	if !hasState(df, stateCode) {
		return fmt.Errorf("%w: %d", ErrInvalidState, stateCode)
	}

	sub := df.Filter(dataframe.F{Colname: "STATE", Comparator: series.Eq, Comparando: stateCode})
	if sub.Err != nil {
		return fmt.Errorf("filter state %d: %w", stateCode, sub.Err)
	}
	if sub.Nrow() == 0 {
		// Unreachable while hasState and Filter agree on STATE matching;
		// guards the filter contract rather than an expected input.
		s.logger.Info("no accidents to plot", "state", stateCode, "year", year)
		return nil
	}

	records, err := domain.RecordsFromFrame(sub)
	if err != nil {
		return err
	}
	located := make([]domain.AccidentRecord, 0, len(records))
	for _, rec := range records {
		if rec.HasLocation() {
			located = append(located, rec)
		}
	}
	if len(located) == 0 {
		s.logger.Info("no located accidents to plot", "state", stateCode, "year", year)
		return nil
	}

	title := fmt.Sprintf("State %d accidents, %d", stateCode, year)
	if err := render.StateScatter(w, located, title, s.plot); err != nil {
		return err
	}
	s.metrics.PlotsRendered.Inc()
	s.logger.Info("state map rendered", "state", stateCode, "year", year, "points", len(located))
	return nil
}

func hasState(df dataframe.DataFrame, code int) bool {
	col := df.Col("STATE")
	if col.Err != nil {
		return false
	}
	want := strconv.Itoa(code)
	for _, v := range col.Records() {
		if v == want {
			return true
		}
	}
	return false
}
