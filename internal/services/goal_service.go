package services

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/engine"
	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/models"
	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/store"
)

// GoalService exposes goal CRUD, derived progress and the notification
// scan.
type GoalService struct {
	store *store.Store
	log   zerolog.Logger
}

// NewGoalService creates the goal service.
func NewGoalService(st *store.Store, log zerolog.Logger) *GoalService {
	return &GoalService{store: st, log: log.With().Str("service", "goals").Logger()}
}

// progressFor computes the derived view for one goal out of a snapshot.
func progressFor(snap store.Snapshot, g models.Goal, now time.Time) engine.GoalProgress {
	var account *models.Account
	for i := range snap.Accounts {
		if snap.Accounts[i].ID == g.AccountID {
			account = &snap.Accounts[i]
			break
		}
	}
	return engine.ComputeGoalProgress(g, account, snap.Goals, snap.Transactions, now)
}

// progressAll computes the derived view for every goal, index-aligned
// with snap.Goals.
func progressAll(snap store.Snapshot, now time.Time) []engine.GoalProgress {
	out := make([]engine.GoalProgress, 0, len(snap.Goals))
	for _, g := range snap.Goals {
		out = append(out, progressFor(snap, g, now))
	}
	return out
}

// CreateGoal handles POST /goals.
func (gs *GoalService) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var candidate models.Goal
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	created, err := gs.store.CreateGoal(candidate)
	if err != nil {
		SendStoreError(w, err)
		return
	}

	gs.log.Info().Str("goalId", created.ID).Str("target", created.TargetAmount.String()).Msg("goal created")
	SendJSON(w, http.StatusCreated, created)
}

// ListGoals handles GET /goals.
func (gs *GoalService) ListGoals(w http.ResponseWriter, r *http.Request) {
	SendJSON(w, http.StatusOK, gs.store.ListGoals())
}

// GetGoal handles GET /goals/{goalId}.
func (gs *GoalService) GetGoal(w http.ResponseWriter, r *http.Request) {
	g, err := gs.store.GetGoal(chi.URLParam(r, "goalId"))
	if err != nil {
		SendStoreError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, g)
}

// GetProgress handles GET /goals/{goalId}/progress.
func (gs *GoalService) GetProgress(w http.ResponseWriter, r *http.Request) {
	g, err := gs.store.GetGoal(chi.URLParam(r, "goalId"))
	if err != nil {
		SendStoreError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, progressFor(gs.store.Snapshot(), g, time.Now()))
}

// ListProgress handles GET /goals/progress, the derived view of every
// goal.
func (gs *GoalService) ListProgress(w http.ResponseWriter, r *http.Request) {
	SendJSON(w, http.StatusOK, progressAll(gs.store.Snapshot(), time.Now()))
}

// UpdateGoal handles PUT /goals/{goalId} with a partial field set.
func (gs *GoalService) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var patch models.GoalPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	updated, err := gs.store.UpdateGoal(chi.URLParam(r, "goalId"), patch)
	if err != nil {
		SendStoreError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, updated)
}

// DeleteGoal handles DELETE /goals/{goalId}.
func (gs *GoalService) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := gs.store.DeleteGoal(chi.URLParam(r, "goalId")); err != nil {
		SendStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// amountRequest carries a single monetary amount.
type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Contribute handles POST /goals/{goalId}/contributions. Negative
// amounts are rejected outright, never clamped.
func (gs *GoalService) Contribute(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	updated, err := gs.store.ContributeToGoal(chi.URLParam(r, "goalId"), req.Amount)
	if err != nil {
		SendStoreError(w, err)
		return
	}

	gs.log.Info().Str("goalId", updated.ID).Str("amount", req.Amount.String()).Bool("completed", updated.IsCompleted).Msg("contribution added")
	SendJSON(w, http.StatusOK, updated)
}

// SetAmount handles PUT /goals/{goalId}/amount, overwriting the current
// amount and re-evaluating completion.
func (gs *GoalService) SetAmount(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	updated, err := gs.store.SetGoalAmount(chi.URLParam(r, "goalId"), req.Amount)
	if err != nil {
		SendStoreError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, updated)
}

// ScanNotifications handles GET /goals/notifications. Detection of a
// newly met target flips the stored completion flag as a side effect;
// milestone messages repeat on every scan until the next checkpoint.
func (gs *GoalService) ScanNotifications(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	snap := gs.store.Snapshot()
	notifications := engine.ScanGoals(snap.Goals, progressAll(snap, now), gs.store, now)
	if notifications == nil {
		notifications = []models.Notification{}
	}
	SendJSON(w, http.StatusOK, notifications)
}
