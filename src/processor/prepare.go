// prepare.go
package processor

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"AirQualityEurope/src/utils"
)

// requiredColumns are the logical fields the pipeline cannot run without.
var requiredColumns = []string{"city", "country", "date", "european_aqi", "latitude", "longitude"}

// dateFormats are tried in order when coercing the date column.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
	"2006/01/02 15:04:05",
	"02/01/2006",
	"02-01-2006",
}

var numberRe = regexp.MustCompile(`^[0-9.]+$`)

// SchemaError reports required columns missing after normalization.
// This is a fatal, user-visible condition and is never retried.
type SchemaError struct {
	Missing []string // sorted
	Present []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %v (columns found: %v)", e.Missing, e.Present)
}

// Prepare turns a normalized table into a clean one: it verifies the
// required column set, coerces dates and numerics (unparseable values
// become absent), derives country_name per row, and drops every row still
// missing a required field. The returned frame is new; the input is left
// untouched. country_name can never cause a drop since absent country
// cells resolve to the CountryUnknown sentinel.
func Prepare(normalized dataframe.DataFrame) (dataframe.DataFrame, error) {
	present := normalized.Names()
	var missing []string
	for _, col := range requiredColumns {
		if !utils.HasColumn(normalized, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return dataframe.DataFrame{}, &SchemaError{Missing: missing, Present: present}
	}

	df := normalized.Copy()
	df = df.Mutate(coerceDates(df.Col("date")))
	for _, col := range []string{"latitude", "longitude", "european_aqi"} {
		df = df.Mutate(coerceFloats(df.Col(col), col))
	}
	df = df.Mutate(deriveCountryNames(df.Col("country")))

	return dropIncomplete(df), nil
}

// coerceDates rewrites the date column as canonical "2006-01-02" strings,
// with the empty string marking an unparseable (absent) date.
func coerceDates(col series.Series) series.Series {
	out := make([]string, col.Len())
	for i := 0; i < col.Len(); i++ {
		e := col.Elem(i)
		if e.IsNA() {
			continue
		}
		out[i] = parseDate(strings.TrimSpace(e.String()))
	}
	return series.New(out, series.String, "date")
}

func parseDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	if numberRe.MatchString(s) {
		if t, ok := excelSerialToTime(s); ok {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// excelSerialToTime converts an Excel serial day number (days since
// 1899-12-30, fractional part is time of day) to a time.Time.
func excelSerialToTime(s string) (time.Time, bool) {
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil || serial <= 0 {
		return time.Time{}, false
	}
	base := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	days := int(serial)
	fraction := serial - float64(days)
	t := base.AddDate(0, 0, days).
		Add(time.Duration(86400*fraction*1e9) * time.Nanosecond)
	return t, true
}

// coerceFloats rewrites a column as a Float series with NaN marking
// unparseable cells, so "absent" stays distinguishable from zero.
func coerceFloats(col series.Series, name string) series.Series {
	out := make([]float64, col.Len())
	for i := 0; i < col.Len(); i++ {
		e := col.Elem(i)
		if e.IsNA() {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(e.String()), 64)
		if err != nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = v
	}
	return series.New(out, series.Float, name)
}

// deriveCountryNames resolves each country cell into a display name.
// Absent cells get the CountryUnknown sentinel instead of being dropped.
func deriveCountryNames(col series.Series) series.Series {
	out := make([]string, col.Len())
	for i := 0; i < col.Len(); i++ {
		e := col.Elem(i)
		if e.IsNA() {
			out[i] = CountryUnknown
			continue
		}
		out[i] = CountryName(e.String())
	}
	return series.New(out, series.String, "country_name")
}

// dropIncomplete keeps only rows with a parsed date, non-empty city and
// country, and numeric latitude/longitude/european_aqi.
func dropIncomplete(df dataframe.DataFrame) dataframe.DataFrame {
	dates := df.Col("date")
	cities := df.Col("city")
	countries := df.Col("country")
	lats := df.Col("latitude")
	lons := df.Col("longitude")
	aqis := df.Col("european_aqi")

	keep := make([]int, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		if dates.Elem(i).String() == "" {
			continue
		}
		if stringAbsent(cities, i) || stringAbsent(countries, i) {
			continue
		}
		if math.IsNaN(lats.Elem(i).Float()) ||
			math.IsNaN(lons.Elem(i).Float()) ||
			math.IsNaN(aqis.Elem(i).Float()) {
			continue
		}
		keep = append(keep, i)
	}
	return df.Subset(keep)
}

func stringAbsent(col series.Series, i int) bool {
	e := col.Elem(i)
	return e.IsNA() || strings.TrimSpace(e.String()) == ""
}
