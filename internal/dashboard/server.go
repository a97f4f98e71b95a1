// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dashboard serves persisted analysis results over HTTP: the
// raw results JSON, the aggregated entity view, the run history, and a
// minimal HTML table. It reads the results file on every request, so a
// new workflow run shows up without a restart.
package dashboard

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/hashicorp/go-hclog"

	"github.com/pdiddy/fieldscope/internal/report"
	"github.com/pdiddy/fieldscope/internal/store"
	"github.com/pdiddy/fieldscope/pkg/types"
)

// Server renders persisted workflow results. Runs is optional; without
// a store the /api/runs endpoint reports 404.
type Server struct {
	cfg    types.DashboardConfig
	runs   *store.Store
	logger hclog.Logger
}

// New builds a dashboard server. A nil logger falls back to the
// default hclog logger.
func New(cfg types.DashboardConfig, runs *store.Store, logger hclog.Logger) *Server {
	if logger == nil {
		logger = hclog.Default().Named("dashboard")
	}
	return &Server{cfg: cfg, runs: runs, logger: logger}
}

// Handler returns the HTTP routing for the dashboard.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/api/results", s.handleResults)
	r.Get("/api/entities", s.handleEntities)
	r.Get("/api/runs", s.handleRuns)
	r.Get("/", s.handleIndex)
	return r
}

// ListenAndServe blocks serving the dashboard on cfg.Addr.
func (s *Server) ListenAndServe() error {
	s.logger.Info("dashboard listening", "addr", s.cfg.Addr, "results", s.cfg.ResultsFile)
	return http.ListenAndServe(s.cfg.Addr, s.Handler())
}

func (s *Server) loadResults(w http.ResponseWriter) (types.SentimentResults, bool) {
	res, err := report.LoadResults(s.cfg.ResultsFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.Error(w, "results file not found; run the analyze workflow first", http.StatusNotFound)
		} else {
			s.logger.Error("loading results", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return types.SentimentResults{}, false
	}
	return res, true
}

func (s *Server) handleResults(w http.ResponseWriter, _ *http.Request) {
	res, ok := s.loadResults(w)
	if !ok {
		return
	}
	writeJSON(w, res)
}

func (s *Server) handleEntities(w http.ResponseWriter, _ *http.Request) {
	res, ok := s.loadResults(w)
	if !ok {
		return
	}
	writeJSON(w, report.Aggregate(res))
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		http.Error(w, "run history not available", http.StatusNotFound)
		return
	}
	runs, err := s.runs.ListRuns(r.Context(), 50)
	if err != nil {
		s.logger.Error("listing runs", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, runs)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Field Reports Analysis</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.4em 0.8em; text-align: left; }
.negative { background: #ffebee; }
.positive { background: #e8f5e8; }
.mixed { background: #fff8e1; }
</style>
</head>
<body>
<h1>Field Reports Analysis</h1>
<p>Document set: {{.DocumentSetID}} &mdash; {{.DocumentCount}} documents, {{len .Entities}} entities</p>
<table>
<tr><th>Entity</th><th>Type</th><th>Sentiment</th><th>Mentions</th></tr>
{{range .Entities}}<tr class="{{.Sentiment}}"><td>{{.Name}}</td><td>{{.Type}}</td><td>{{.Sentiment}}</td><td>{{.MentionCount}}</td></tr>
{{end}}</table>
</body>
</html>
`))

type indexData struct {
	DocumentSetID string
	DocumentCount int
	Entities      []types.EntitySummary
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	res, ok := s.loadResults(w)
	if !ok {
		return
	}
	data := indexData{
		DocumentSetID: res.DocumentSetID,
		DocumentCount: len(res.Documents),
		Entities:      report.Aggregate(res),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Error("rendering index", "error", err)
	}
}
