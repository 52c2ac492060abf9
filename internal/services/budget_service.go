package services

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/engine"
	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/models"
	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/store"
)

// BudgetService exposes budget CRUD and spending progress.
type BudgetService struct {
	store *store.Store
	log   zerolog.Logger
}

// NewBudgetService creates the budget service.
func NewBudgetService(st *store.Store, log zerolog.Logger) *BudgetService {
	return &BudgetService{store: st, log: log.With().Str("service", "budgets").Logger()}
}

// CreateBudget handles POST /budgets.
func (bs *BudgetService) CreateBudget(w http.ResponseWriter, r *http.Request) {
	var candidate models.Budget
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	created, err := bs.store.CreateBudget(candidate)
	if err != nil {
		SendStoreError(w, err)
		return
	}

	bs.log.Info().Str("budgetId", created.ID).Str("category", created.Category).Msg("budget created")
	SendJSON(w, http.StatusCreated, created)
}

// ListBudgets handles GET /budgets.
func (bs *BudgetService) ListBudgets(w http.ResponseWriter, r *http.Request) {
	SendJSON(w, http.StatusOK, bs.store.ListBudgets())
}

// GetBudget handles GET /budgets/{budgetId}.
func (bs *BudgetService) GetBudget(w http.ResponseWriter, r *http.Request) {
	b, err := bs.store.GetBudget(chi.URLParam(r, "budgetId"))
	if err != nil {
		SendStoreError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, b)
}

// GetProgress handles GET /budgets/{budgetId}/progress. Progress is
// computed on demand for inactive budgets too.
func (bs *BudgetService) GetProgress(w http.ResponseWriter, r *http.Request) {
	b, err := bs.store.GetBudget(chi.URLParam(r, "budgetId"))
	if err != nil {
		SendStoreError(w, err)
		return
	}
	snap := bs.store.Snapshot()
	SendJSON(w, http.StatusOK, engine.ComputeBudgetProgress(b, snap.Transactions))
}

// ListProgress handles GET /budgets/progress, the derived view of every
// budget.
func (bs *BudgetService) ListProgress(w http.ResponseWriter, r *http.Request) {
	snap := bs.store.Snapshot()
	out := make([]engine.BudgetProgress, 0, len(snap.Budgets))
	for _, b := range snap.Budgets {
		out = append(out, engine.ComputeBudgetProgress(b, snap.Transactions))
	}
	SendJSON(w, http.StatusOK, out)
}

// UpdateBudget handles PUT /budgets/{budgetId} with a partial field set.
func (bs *BudgetService) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	var patch models.BudgetPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	updated, err := bs.store.UpdateBudget(chi.URLParam(r, "budgetId"), patch)
	if err != nil {
		SendStoreError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, updated)
}

// DeleteBudget handles DELETE /budgets/{budgetId}.
func (bs *BudgetService) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	if err := bs.store.DeleteBudget(chi.URLParam(r, "budgetId")); err != nil {
		SendStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
