// Package domain models FARS yearly accident report data.
//
// # Data Source
//
// Accident records come from the NHTSA Fatality Analysis Reporting System
// (FARS) yearly exports, pre-downloaded as bz2-compressed CSV files named
// accident_<year>.csv.bz2. Each row is one reported incident.
//
// # FARS Data Conventions
//
// Column encoding (the subset this package consumes):
//
//	STATE    — integer code for the administrative region, following the
//	           FARS state numbering (e.g. 1 = Alabama, 48 = Texas).
//	MONTH    — calendar month of the incident, 1-12.
//	LONGITUD — decimal degrees, negative west of the meridian.
//	LATITUDE — decimal degrees, negative south of the equator.
//
// Coordinate sentinels:
//
//	FARS encodes unreported coordinates with out-of-range sentinels rather
//	than empty cells:
//
//	  LONGITUD >= 900  → longitude not reported
//	  LATITUDE  >  90  → latitude not reported
//
//	(The export encodes unknown coordinates with 999.9999-family codes,
//	which fall past the physical coordinate range; only values past the
//	bounds above are treated as absent.) Sentinels are converted to nil
//	optional fields once, at decode time, so consumers never re-check them.
//
// # Summary Tables
//
// Monthly summaries are wide month-by-year tables: one row per month
// present in the data (ascending), one column per distinct year
// (ascending) after the leading MONTH column. A (year, month) pair with no
// observations is NaN, not zero — zero would claim an observed count.
package domain
