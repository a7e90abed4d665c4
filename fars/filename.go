package fars

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Filename returns the expected file name for one year of accident data,
// e.g. Filename(2013) == "accident_2013.csv.bz2".
func Filename(year int) string {
	return fmt.Sprintf("accident_%d.csv.bz2", year)
}

// ParseYear converts loosely-typed year input to an integer at the API
// boundary. Integer-valued floats such as "2013.0" are accepted; anything
// non-numeric or fractional fails with ErrInvalidInput.
func ParseYear(v string) (int, error) {
	return parseInteger("year", v)
}

// ParseStateCode is ParseYear for state codes.
func ParseStateCode(v string) (int, error) {
	return parseInteger("state code", v)
}

func parseInteger(kind, v string) (int, error) {
	s := strings.TrimSpace(v)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidInput, kind, v)
	}
	return int(f), nil
}
