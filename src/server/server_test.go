// server_test.go
package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AirQualityEurope/src/datasource/file"
	"AirQualityEurope/src/processor"
	"AirQualityEurope/src/storage"
)

func newTestServer(t *testing.T, df *dataframe.DataFrame) *Server {
	t.Helper()

	dir := t.TempDir()
	dataPath := filepath.Join(dir, "air_quality_history.xlsx")
	if df != nil {
		require.NoError(t, file.WriteXLSX(*df, dataPath))
	}

	logger, err := storage.NewLogger(filepath.Join(dir, "test.log"))
	require.NoError(t, err)
	t.Cleanup(func() { logger.Close() })

	return NewServer(":0", dataPath, file.NewLoader(""), logger)
}

func testData() dataframe.DataFrame {
	return dataframe.New(
		series.New([]string{"Lyon", "Lyon", "Berlin", "Paris"}, series.String, "city"),
		series.New([]string{"FR", "FR", "DE", "FR"}, series.String, "country"),
		series.New([]string{"2024-01-01", "2024-01-01", "2024-01-01", "2024-01-02"}, series.String, "date"),
		series.New([]string{"45.76", "45.76", "52.52", "48.85"}, series.String, "latitude"),
		series.New([]string{"4.83", "4.83", "13.40", "2.35"}, series.String, "longitude"),
		series.New([]string{"30", "50", "90", "61"}, series.String, "european_aqi"),
	)
}

func doRequest(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	rec := doRequest(t, newTestServer(t, nil), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestDates(t *testing.T) {
	df := testData()
	rec := doRequest(t, newTestServer(t, &df), "/api/dates")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Dates   []string `json:"dates"`
		Default string   `json:"default"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, body.Dates)
	assert.Equal(t, "2024-01-02", body.Default)
}

func TestPointsDefaultsToLatestDay(t *testing.T) {
	df := testData()
	rec := doRequest(t, newTestServer(t, &df), "/api/points")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Date   string            `json:"date"`
		Points []processor.Point `json:"points"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2024-01-02", body.Date)
	require.Len(t, body.Points, 1)
	assert.Equal(t, "Paris", body.Points[0].City)
	assert.Equal(t, processor.LabelMedium, body.Points[0].Label)
}

func TestPointsWithDateAndCountryFilter(t *testing.T) {
	df := testData()
	s := newTestServer(t, &df)

	rec := doRequest(t, s, "/api/points?date=2024-01-01")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Points []processor.Point `json:"points"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Points, 2)
	// Worst air first.
	assert.Equal(t, "Berlin", body.Points[0].City)
	assert.Equal(t, "Lyon", body.Points[1].City)
	assert.InDelta(t, 40.0, body.Points[1].EuropeanAQI, 1e-6)

	rec = doRequest(t, s, "/api/points?date=2024-01-01&countries=France")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Points, 1)
	assert.Equal(t, "Lyon", body.Points[0].City)
}

func TestSummary(t *testing.T) {
	df := testData()
	rec := doRequest(t, newTestServer(t, &df), "/api/summary?date=2024-01-01")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Summary processor.Summary `json:"summary"`
		Count   int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2024-01-01", body.Summary.Date)
	assert.Equal(t, 2, body.Summary.Cities)
	assert.Equal(t, 2, body.Summary.Countries)
	assert.InDelta(t, 65.0, body.Summary.MeanAQI, 1e-6)
	assert.Equal(t, 2, body.Count)
}

func TestMissingFileGives503(t *testing.T) {
	rec := doRequest(t, newTestServer(t, nil), "/api/points")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "not found")
}

func TestSchemaErrorGives422(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"Paris"}, series.String, "city"),
		series.New([]string{"42"}, series.String, "european_aqi"),
	)
	rec := doRequest(t, newTestServer(t, &df), "/api/points")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Missing []string `json:"missing"`
		Present []string `json:"present"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"country", "date", "latitude", "longitude"}, body.Missing)
	assert.Contains(t, body.Present, "city")
}

func TestBadDateGives400(t *testing.T) {
	df := testData()
	rec := doRequest(t, newTestServer(t, &df), "/api/points?date=january")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "YYYY-MM-DD")
}

func TestUnknownMethodRejected(t *testing.T) {
	s := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/points", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
