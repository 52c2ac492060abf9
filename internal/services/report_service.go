package services

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/engine"
	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/store"
)

// ReportService exposes range summaries and the composite health score.
type ReportService struct {
	store *store.Store
	log   zerolog.Logger
}

// NewReportService creates the report service.
func NewReportService(st *store.Store, log zerolog.Logger) *ReportService {
	return &ReportService{store: st, log: log.With().Str("service", "reports").Logger()}
}

// parseRange reads from/to query params (RFC 3339). Defaults cover the
// trailing year up to now.
func parseRange(r *http.Request) (time.Time, time.Time, bool) {
	now := time.Now()
	start := now.AddDate(-1, 0, 0)
	end := now

	q := r.URL.Query()
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return start, end, false
		}
		start = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return start, end, false
		}
		end = t
	}
	return start, end, true
}

// GetSummary handles GET /reports/summary: totals, category breakdown
// and monthly trend buckets for the range.
func (rs *ReportService) GetSummary(w http.ResponseWriter, r *http.Request) {
	start, end, ok := parseRange(r)
	if !ok {
		SendErrorResponse(w, "Invalid date range", http.StatusBadRequest, nil)
		return
	}
	snap := rs.store.Snapshot()
	SendJSON(w, http.StatusOK, engine.Summarize(start, end, snap.Transactions))
}

// GetHealth handles GET /reports/health: the advisory 0-100 composite
// score with its sub-scores.
func (rs *ReportService) GetHealth(w http.ResponseWriter, r *http.Request) {
	start, end, ok := parseRange(r)
	if !ok {
		SendErrorResponse(w, "Invalid date range", http.StatusBadRequest, nil)
		return
	}

	snap := rs.store.Snapshot()
	summary := engine.Summarize(start, end, snap.Transactions)
	progress := progressAll(snap, time.Now())
	SendJSON(w, http.StatusOK, engine.ComputeHealthScore(summary, snap.Accounts, snap.Budgets, snap.Transactions, progress))
}
