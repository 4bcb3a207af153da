// Command gendata writes a sample air_quality_history.xlsx for local runs
// and demos. A few rows are deliberately dirty to exercise the cleaner.
package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"AirQualityEurope/src/datasource/file"
)

func main() {
	dir := flag.String("dir", "./data", "output directory")
	name := flag.String("name", "air_quality_history.xlsx", "output file name")
	flag.Parse()

	df := sampleFrame()
	out := filepath.Join(*dir, *name)
	if err := file.WriteXLSX(df, out); err != nil {
		log.Fatal("write sample dataset: ", err)
	}
	log.Printf("sample dataset written to %s (%d rows)", out, df.Nrow())
}

func sampleFrame() dataframe.DataFrame {
	type row struct {
		city, country, date string
		lat, lon, aqi       string
	}

	rows := []row{
		{"Paris", "FR", "2024-01-01", "48.8566", "2.3522", "38"},
		{"Paris", "FR", "2024-01-01", "48.8566", "2.3522", "44"},
		{"Lyon", "FR", "2024-01-01", "45.7640", "4.8357", "30"},
		{"Lyon", "FR", "2024-01-01", "45.7640", "4.8357", "50"},
		{"Berlin", "DE", "2024-01-01", "52.5200", "13.4050", "55"},
		{"Madrid", "ES", "2024-01-01", "40.4168", "-3.7038", "92"},
		{"Warsaw", "PL", "2024-01-01", "52.2297", "21.0122", "81"},
		{"Oslo", "NO", "2024-01-01", "59.9139", "10.7522", "12"},
		{"Paris", "FR", "2024-01-02", "48.8566", "2.3522", "61"},
		{"Lyon", "FR", "2024-01-02", "45.7640", "4.8357", "47"},
		{"Berlin", "DE", "2024-01-02", "52.5200", "13.4050", "40"},
		{"Madrid", "ES", "2024-01-02", "40.4168", "-3.7038", "85"},
		{"Kyiv", "UA", "2024-01-02", "50.4501", "30.5234", "73"},
		{"Tbilisi", "GE", "2024-01-02", "41.7151", "44.8271", "66"},

		// Dirty rows the cleaner must drop.
		{"Ghost", "FR", "2024-01-02", "N/A", "2.0", "40"},
		{"Nodate", "DE", "not-a-date", "50.0", "8.0", "40"},
		{"", "IT", "2024-01-02", "41.9", "12.5", "40"},
		{"Noaqi", "SE", "2024-01-02", "59.3", "18.1", "unknown"},
	}

	n := len(rows)
	cities := make([]string, n)
	countries := make([]string, n)
	dates := make([]string, n)
	lats := make([]string, n)
	lons := make([]string, n)
	aqis := make([]string, n)
	for i, r := range rows {
		cities[i] = r.city
		countries[i] = r.country
		dates[i] = r.date
		lats[i] = r.lat
		lons[i] = r.lon
		aqis[i] = r.aqi
	}

	return dataframe.New(
		series.New(cities, series.String, "city"),
		series.New(countries, series.String, "country"),
		series.New(dates, series.String, "date"),
		series.New(lats, series.String, "latitude"),
		series.New(lons, series.String, "longitude"),
		series.New(aqis, series.String, "european_aqi"),
	)
}
