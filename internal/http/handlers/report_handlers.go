package handlers

import (
	"bytes"
	"net/http"

	"github.com/rogerio-castellano/catalog-validator/internal/auth"
	"github.com/rogerio-castellano/catalog-validator/internal/checker"
	"github.com/rogerio-castellano/catalog-validator/internal/logging"
	"github.com/rogerio-castellano/catalog-validator/internal/report"
	"github.com/spf13/cast"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthHandler godoc
// @Summary Liveness probe
// @Tags health
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// GetReportHandler godoc
// @Summary Run a catalog check
// @Description Fetches the catalog, validates every product and returns the report
// @Tags report
// @Produce plain,json,yaml
// @Param format query string false "Report format (text|json|yaml)"
// @Param summary query bool false "Append the per-rule table to text reports"
// @Success 200 {object} report.Document
// @Failure 400 {string} string "Invalid format"
// @Failure 502 {object} ErrorResponse
// @Router /report [get]
// @Security BearerAuth
func GetReportHandler(w http.ResponseWriter, r *http.Request) {
	logger := logging.New("handlers")
	q := r.URL.Query()

	format, err := report.ParseFormat(q.Get("format"))
	if err != nil {
		http.Error(w, "invalid format", http.StatusBadRequest)
		return
	}

	summary := reportSummary
	if s := q.Get("summary"); s != "" {
		summary = cast.ToBool(s)
	}

	rep := &report.Reporter{Title: reportTitle, Format: format, Summary: summary}
	c := checker.New(catalogSource, rep)

	var buf bytes.Buffer
	result, err := c.Run(r.Context(), &buf)
	w.Header().Set("X-Run-ID", result.RunID.String())
	if err != nil {
		logger.Warn("report run failed", "run_id", result.RunID,
			"subject", auth.SubjectFromContext(r.Context()), "error", err)
		if err := writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: checker.Diagnostic(err)}); err != nil {
			logger.Error("failed to write error response", "error", err)
		}
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error("failed to write report", "run_id", result.RunID, "error", err)
	}
}
