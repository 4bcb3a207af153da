// server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"

	"AirQualityEurope/src/datasource/file"
	"AirQualityEurope/src/processor"
	"AirQualityEurope/src/storage"
)

// Server exposes the aggregated point table and summary KPIs as a JSON API
// for the map frontend, plus a live log stream.
type Server struct {
	httpServer *http.Server
	loader     *file.Loader
	dataPath   string
	logger     *storage.Logger
}

func NewServer(addr, dataPath string, loader *file.Loader, logger *storage.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:        addr,
			Handler:     mux,
			ReadTimeout: 10 * time.Second,
			IdleTimeout: 60 * time.Second,
		},
		loader:   loader,
		dataPath: dataPath,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/dates", s.handleDates)
	mux.HandleFunc("GET /api/points", s.handlePoints)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /logs", s.handleLogs)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server listening on " + s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains connections within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying mux, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleDates(w http.ResponseWriter, r *http.Request) {
	clean, ok := s.loadClean(w)
	if !ok {
		return
	}

	dates := processor.Dates(clean)
	writeJSON(w, http.StatusOK, map[string]any{
		"dates":   dates,
		"default": processor.DefaultDate(dates),
	})
}

func (s *Server) handlePoints(w http.ResponseWriter, r *http.Request) {
	points, date, ok := s.selectPoints(w, r)
	if !ok {
		return
	}

	// Worst air first, like the dashboard's data table.
	points = points.Arrange(dataframe.RevSort("european_aqi"))

	writeJSON(w, http.StatusOK, map[string]any{
		"date":   date,
		"points": processor.ToPoints(points),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	points, date, ok := s.selectPoints(w, r)
	if !ok {
		return
	}

	summary := processor.Summarize(points, date)
	writeJSON(w, http.StatusOK, map[string]any{
		"summary": summary,
		"count":   points.Nrow(),
	})
}

// handleLogs streams log entries as chunked plain text until the client
// disconnects.
func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	logChan := s.logger.Subscribe()
	for {
		select {
		case msg := <-logChan:
			if _, err := fmt.Fprint(w, msg); err != nil {
				return
			}
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		case <-r.Context().Done():
			return
		}
	}
}

// selectPoints runs the pipeline for the request's date/country selection.
// The date defaults to the most recent one present.
func (s *Server) selectPoints(w http.ResponseWriter, r *http.Request) (dataframe.DataFrame, string, bool) {
	clean, ok := s.loadClean(w)
	if !ok {
		return dataframe.DataFrame{}, "", false
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = processor.DefaultDate(processor.Dates(clean))
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return dataframe.DataFrame{}, "", false
	}

	var countries []string
	if raw := r.URL.Query().Get("countries"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				countries = append(countries, c)
			}
		}
	}

	day := processor.FilterDay(clean, date, countries)
	return processor.CityMeans(day), date, true
}

// loadClean loads the memoized raw table and runs the cleaner, mapping the
// two fatal error surfaces to HTTP statuses.
func (s *Server) loadClean(w http.ResponseWriter) (dataframe.DataFrame, bool) {
	raw, err := s.loader.Load(s.dataPath)
	if err != nil {
		var missing *file.FileMissingError
		if errors.As(err, &missing) {
			s.logger.Error(missing.Error())
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": missing.Error()})
			return dataframe.DataFrame{}, false
		}
		s.logger.Error("load data: " + err.Error())
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return dataframe.DataFrame{}, false
	}

	clean, err := processor.Prepare(raw)
	if err != nil {
		var schema *processor.SchemaError
		if errors.As(err, &schema) {
			s.logger.Error(schema.Error())
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":   schema.Error(),
				"missing": schema.Missing,
				"present": schema.Present,
			})
			return dataframe.DataFrame{}, false
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return dataframe.DataFrame{}, false
	}
	return clean, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
