package http

import (
	"net/http"

	applog "smartbudget/internal/log"
	"smartbudget/internal/report"
)

// handleDashboard returns the aggregated summary for the requested range.
// An unrecognized or missing ?range= resolves to Month to Date.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := userIDFrom(ctx)
	rangeLabel := r.URL.Query().Get("range")

	summary, err := s.dashboard.Summary(ctx, userID, rangeLabel)
	if err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Dashboard summary failed",
			applog.FieldUserID, userID, applog.FieldRange, rangeLabel,
			applog.FieldError, err)
		writeError(w, http.StatusBadGateway, "failed to load records")
		return
	}

	writeJSON(w, http.StatusOK, buildSummaryView(summary))
}

func (s *Server) handleRangeLabels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, report.RangeLabels())
}
