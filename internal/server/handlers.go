package server

import (
	"net/http"
	"time"

	"github.com/rupeeworks/folio/internal/common"
	"github.com/rupeeworks/folio/internal/models"
	"github.com/rupeeworks/folio/internal/services/analysis"
)

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"services": map[string]string{
			"portfolio_analyzer": analysis.ModelVersion,
		},
	})
}

// handleVersion handles GET /api/version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.Version,
		"build":   common.Build,
		"commit":  common.GitCommit,
	})
}

// handleAnalyzePortfolio handles POST /api/analyze/portfolio.
// Structural validation happens here; everything past decoding is the
// engine's silent-degrade territory and always yields a response.
func (s *Server) handleAnalyzePortfolio(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.AnalysisRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if len(req.Holdings) == 0 {
		WriteError(w, http.StatusBadRequest, "At least one holding is required")
		return
	}

	if req.RequestID == "" {
		req.RequestID = w.Header().Get("X-Correlation-ID")
	}

	start := time.Now()
	resp, err := s.app.Analysis.AnalyzePortfolio(r.Context(), &req)
	if err != nil {
		s.logger.Error().Err(err).Str("request_id", req.RequestID).Msg("Portfolio analysis failed")
		WriteError(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		return
	}
	resp.LatencyMS = float64(time.Since(start).Microseconds()) / 1000

	WriteJSON(w, http.StatusOK, resp)
}
