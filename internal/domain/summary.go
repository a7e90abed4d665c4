package domain

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names of the long (month, year) projection that summaries are
// built from. MONTH keeps its source-file spelling; year is synthesized.
const (
	MonthColumn = "MONTH"
	YearColumn  = "year"
)

// EmptySummary returns a summary table with the month column and no rows.
func EmptySummary() dataframe.DataFrame {
	return dataframe.New(series.New([]int{}, series.Int, MonthColumn))
}

// BuildMonthlySummary counts rows of a long (MONTH, year) frame per
// (year, month) group and pivots the counts into a wide table: one row per
// month present in the data, ascending, and one column per distinct year,
// ascending. Cells with no observations are NaN, not zero.
func BuildMonthlySummary(combined dataframe.DataFrame) (dataframe.DataFrame, error) {
	if combined.Nrow() == 0 {
		return EmptySummary(), nil
	}

	groups := combined.GroupBy(YearColumn, MonthColumn)
	if groups.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("group monthly counts: %w", groups.Err)
	}
	counts := groups.Aggregation(
		[]dataframe.AggregationType{dataframe.Aggregation_COUNT},
		[]string{MonthColumn},
	)
	if counts.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("count monthly groups: %w", counts.Err)
	}

	years, err := intColumn(counts, YearColumn)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	months, err := intColumn(counts, MonthColumn)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	tallies, err := floatColumn(counts, MonthColumn+"_COUNT")
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	type cell struct{ year, month int }
	byCell := make(map[cell]int, len(years))
	yearSet := make(map[int]bool)
	monthSet := make(map[int]bool)
	for i := range years {
		byCell[cell{years[i], months[i]}] = int(tallies[i])
		yearSet[years[i]] = true
		monthSet[months[i]] = true
	}

	distinctYears := sortedKeys(yearSet)
	distinctMonths := sortedKeys(monthSet)

	cols := make([]series.Series, 0, len(distinctYears)+1)
	cols = append(cols, series.New(distinctMonths, series.Int, MonthColumn))
	for _, year := range distinctYears {
		vals := make([]string, len(distinctMonths))
		for i, month := range distinctMonths {
			if n, ok := byCell[cell{year, month}]; ok {
				vals[i] = strconv.Itoa(n)
			} else {
				vals[i] = "NaN"
			}
		}
		cols = append(cols, series.New(vals, series.Int, strconv.Itoa(year)))
	}

	table := dataframe.New(cols...)
	if table.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("assemble summary table: %w", table.Err)
	}
	return table, nil
}

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
