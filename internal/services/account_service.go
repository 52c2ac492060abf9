package services

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/engine"
	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/models"
	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/store"
)

// AccountService exposes account CRUD and balance enquiry.
type AccountService struct {
	store *store.Store
	vh    *ValidationHelper
	log   zerolog.Logger
}

// NewAccountService creates the account service.
func NewAccountService(st *store.Store, log zerolog.Logger) *AccountService {
	return &AccountService{
		store: st,
		vh:    NewValidationHelper(),
		log:   log.With().Str("service", "accounts").Logger(),
	}
}

// balanceView is the account representation returned by the API: the
// stored record plus the recomputed effective balance, which is the
// authoritative display value.
type balanceView struct {
	models.Account
	EffectiveBalance string `json:"effectiveBalance"`
}

func (as *AccountService) view(a models.Account, transactions []models.Transaction) balanceView {
	return balanceView{
		Account:          a,
		EffectiveBalance: engine.ComputeBalance(a, transactions).StringFixed(2),
	}
}

// CreateAccount handles POST /accounts.
// @Summary Create an account
// @Tags accounts
// @Router /accounts [post]
func (as *AccountService) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var candidate models.Account
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	created, err := as.store.CreateAccount(candidate)
	if err != nil {
		SendStoreError(w, err)
		return
	}

	as.log.Info().Str("accountId", created.ID).Str("type", string(created.Type)).Msg("account created")
	SendJSON(w, http.StatusCreated, created)
}

// ListAccounts handles GET /accounts. Each account is returned with its
// recomputed effective balance.
func (as *AccountService) ListAccounts(w http.ResponseWriter, r *http.Request) {
	snap := as.store.Snapshot()
	out := make([]balanceView, 0, len(snap.Accounts))
	for _, a := range snap.Accounts {
		out = append(out, as.view(a, snap.Transactions))
	}
	SendJSON(w, http.StatusOK, out)
}

// GetAccount handles GET /accounts/{accountId}.
func (as *AccountService) GetAccount(w http.ResponseWriter, r *http.Request) {
	snap := as.store.Snapshot()
	a, err := as.store.GetAccount(chi.URLParam(r, "accountId"))
	if err != nil {
		SendStoreError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, as.view(a, snap.Transactions))
}

// GetBalance handles GET /accounts/{accountId}/balance, returning the
// recomputed effective balance only.
func (as *AccountService) GetBalance(w http.ResponseWriter, r *http.Request) {
	snap := as.store.Snapshot()
	a, err := as.store.GetAccount(chi.URLParam(r, "accountId"))
	if err != nil {
		SendStoreError(w, err)
		return
	}
	balance := engine.ComputeBalance(a, snap.Transactions)
	SendJSON(w, http.StatusOK, map[string]string{
		"accountId": a.ID,
		"currency":  a.Currency,
		"balance":   balance.StringFixed(2),
	})
}

// accommodateRequest asks whether an account can absorb a delta.
type accommodateRequest struct {
	Delta json.Number `json:"delta" validate:"required"`
}

// CanAccommodate handles POST /accounts/{accountId}/can-accommodate.
// Applies the type-specific overdraft policy to the effective balance.
func (as *AccountService) CanAccommodate(w http.ResponseWriter, r *http.Request) {
	var req accommodateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}
	if err := as.vh.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}
	delta, err := decimal.NewFromString(req.Delta.String())
	if err != nil {
		SendErrorResponse(w, "Invalid delta", http.StatusBadRequest, nil)
		return
	}

	snap := as.store.Snapshot()
	a, err := as.store.GetAccount(chi.URLParam(r, "accountId"))
	if err != nil {
		SendStoreError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, map[string]any{
		"accountId":      a.ID,
		"canAccommodate": engine.CanAccommodate(a, snap.Transactions, delta),
	})
}

// UpdateAccount handles PUT /accounts/{accountId} with a partial field
// set. Nothing is committed when validation fails.
func (as *AccountService) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var patch models.AccountPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	updated, err := as.store.UpdateAccount(chi.URLParam(r, "accountId"), patch)
	if err != nil {
		SendStoreError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, updated)
}

// DeleteAccount handles DELETE /accounts/{accountId}. Accounts with
// transactions are protected and return 409.
func (as *AccountService) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "accountId")
	if err := as.store.DeleteAccount(id); err != nil {
		SendStoreError(w, err)
		return
	}
	as.log.Info().Str("accountId", id).Msg("account deleted")
	w.WriteHeader(http.StatusNoContent)
}
