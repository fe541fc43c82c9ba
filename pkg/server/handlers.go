package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/WSG23/optimal-build-sub004/pkg/citations"
	"github.com/WSG23/optimal-build-sub004/pkg/convert"
	"github.com/WSG23/optimal-build-sub004/pkg/overlay"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/ast"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/catalog"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/engine"
)

// validateResponse is the POST /v1/validate/{slug} payload.
type validateResponse struct {
	Report      *engine.Report            `json:"report"`
	Citations   []citations.RuleCitations `json:"citations,omitempty"`
	References  []ast.Citation            `json:"references,omitempty"`
	Suggestions []overlay.Suggestion      `json:"suggestions,omitempty"`
}

type errorResponse struct {
	Error  string `json:"error"`
	RuleID string `json:"rule_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListPacks(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.List(r.Context())
	if err != nil {
		s.internalError(w, err)
		return
	}
	if s.collector != nil {
		s.collector.SetPackCount(len(infos))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"packs": infos})
}

func (s *Server) handleGetPack(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	pack, err := s.store.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, catalog.ErrPackNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pack)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
		return
	}

	graph, err := convert.GraphFromGeoJSON(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	pack, err := s.store.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, catalog.ErrPackNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		s.internalError(w, err)
		return
	}

	start := time.Now()
	report, err := s.evaluator.Evaluate(graph, pack)
	if err != nil {
		var configErr *engine.ConfigError
		if errors.As(err, &configErr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:  configErr.Error(),
				RuleID: configErr.RuleID,
			})
			return
		}
		s.internalError(w, err)
		return
	}

	s.recordMetrics(report, time.Since(start))

	ruleCitations := citations.ForReport(report, pack)
	writeJSON(w, http.StatusOK, validateResponse{
		Report:      report,
		Citations:   ruleCitations,
		References:  citations.Flatten(ruleCitations),
		Suggestions: overlay.FromReport(report),
	})
}

func (s *Server) recordMetrics(report *engine.Report, duration time.Duration) {
	if s.collector == nil {
		return
	}
	s.collector.RecordEvaluation(report.PackSlug, report.Passed(), duration)
	for _, result := range report.Results {
		s.collector.RecordViolations(report.PackSlug, result.RuleID, len(result.Violations))
		if result.Err != nil {
			s.collector.RecordSkippedRule(report.PackSlug)
		}
	}
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Error("internal error", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
