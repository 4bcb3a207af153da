// aggregate.go
package processor

import (
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"AirQualityEurope/src/utils"
)

// Point is one city's mean EAQI for one day, the unit rendered as a map
// marker by the frontend.
type Point struct {
	City        string  `json:"city"`
	Country     string  `json:"country"`
	CountryName string  `json:"country_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	EuropeanAQI float64 `json:"european_aqi"`
	Label       string  `json:"label"`
	Color       string  `json:"color"`
}

// Summary holds the dashboard KPIs for the current selection.
type Summary struct {
	Date      string  `json:"date"`
	Cities    int     `json:"cities"`
	Countries int     `json:"countries"`
	MeanAQI   float64 `json:"mean_aqi"`
}

// Dates returns the sorted distinct dates present in a clean table.
func Dates(clean dataframe.DataFrame) []string {
	if clean.Nrow() == 0 {
		return nil
	}
	return sortedUnique(clean.Col("date").Records())
}

// DefaultDate is the day selected when the caller names none: the most
// recent date present.
func DefaultDate(dates []string) string {
	if len(dates) == 0 {
		return ""
	}
	return dates[len(dates)-1]
}

// CountryOptions returns the sorted distinct country display names present
// in a (typically day-restricted) clean table.
func CountryOptions(clean dataframe.DataFrame) []string {
	if clean.Nrow() == 0 {
		return nil
	}
	return sortedUnique(clean.Col("country_name").Records())
}

// FilterDay restricts a clean table to one date and, when countries is
// non-empty, to rows whose country_name is in the set.
func FilterDay(clean dataframe.DataFrame, date string, countries []string) dataframe.DataFrame {
	out := clean.Filter(dataframe.F{Colname: "date", Comparator: series.Eq, Comparando: date})
	if len(countries) > 0 && out.Nrow() > 0 {
		out = out.Filter(dataframe.F{Colname: "country_name", Comparator: series.In, Comparando: countries})
	}
	return out
}

// CityMeans aggregates a day-restricted clean table into one row per
// (city, country, country_name, latitude, longitude) with european_aqi set
// to the group's arithmetic mean, plus derived label and color columns.
// The grouping key fixes the coordinates, so no coordinate averaging takes
// place. Row order is the grouping order and carries no meaning.
func CityMeans(day dataframe.DataFrame) dataframe.DataFrame {
	if day.Nrow() == 0 {
		return emptyPoints()
	}

	groups := day.GroupBy("city", "country", "country_name", "latitude", "longitude")
	agg := groups.Aggregation(
		[]dataframe.AggregationType{dataframe.Aggregation_MEAN},
		[]string{"european_aqi"},
	)
	if agg.Err != nil {
		return emptyPoints()
	}
	agg = agg.Rename("european_aqi", "european_aqi_MEAN")

	means := agg.Col("european_aqi").Float()
	labels := make([]string, len(means))
	colors := make([]string, len(means))
	for i, v := range means {
		valid := !math.IsNaN(v)
		labels[i] = TierLabel(v, valid)
		colors[i] = TierColor(v, valid)
	}
	agg = agg.Mutate(series.New(labels, series.String, "label"))
	agg = agg.Mutate(series.New(colors, series.String, "color"))
	return agg
}

// ToPoints converts an aggregated table into renderable points.
func ToPoints(points dataframe.DataFrame) []Point {
	out := make([]Point, 0, points.Nrow())
	for i := 0; i < points.Nrow(); i++ {
		out = append(out, Point{
			City:        points.Col("city").Elem(i).String(),
			Country:     points.Col("country").Elem(i).String(),
			CountryName: points.Col("country_name").Elem(i).String(),
			Latitude:    points.Col("latitude").Elem(i).Float(),
			Longitude:   points.Col("longitude").Elem(i).Float(),
			EuropeanAQI: points.Col("european_aqi").Elem(i).Float(),
			Label:       points.Col("label").Elem(i).String(),
			Color:       points.Col("color").Elem(i).String(),
		})
	}
	return out
}

// Summarize computes the KPI block for an aggregated point table.
// MeanAQI is 0.0 when the selection is empty.
func Summarize(points dataframe.DataFrame, date string) Summary {
	s := Summary{Date: date}
	if points.Nrow() == 0 {
		return s
	}

	s.Cities = len(sortedUnique(points.Col("city").Records()))
	s.Countries = len(sortedUnique(points.Col("country").Records()))

	var sum float64
	var n int
	for _, v := range points.Col("european_aqi").Float() {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n > 0 {
		s.MeanAQI = sum / float64(n)
	}
	return s
}

func sortedUnique(records []string) []string {
	var out []string
	for _, r := range records {
		if !utils.Contains(out, r) {
			out = append(out, r)
		}
	}
	sort.Strings(out)
	return out
}

func emptyPoints() dataframe.DataFrame {
	return dataframe.New(
		series.New([]string{}, series.String, "city"),
		series.New([]string{}, series.String, "country"),
		series.New([]string{}, series.String, "country_name"),
		series.New([]float64{}, series.Float, "latitude"),
		series.New([]float64{}, series.Float, "longitude"),
		series.New([]float64{}, series.Float, "european_aqi"),
		series.New([]string{}, series.String, "label"),
		series.New([]string{}, series.String, "color"),
	)
}
