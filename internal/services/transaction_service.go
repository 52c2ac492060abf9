package services

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/models"
	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/store"
)

// TransactionService exposes transaction CRUD with filtered listing.
type TransactionService struct {
	store *store.Store
	log   zerolog.Logger
}

// NewTransactionService creates the transaction service.
func NewTransactionService(st *store.Store, log zerolog.Logger) *TransactionService {
	return &TransactionService{store: st, log: log.With().Str("service", "transactions").Logger()}
}

// CreateTransaction handles POST /transactions.
// @Summary Record a transaction
// @Tags transactions
// @Router /transactions [post]
func (ts *TransactionService) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	maxBytes := 1_048_576 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var candidate models.Transaction
	if err := dec.Decode(&candidate); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}

	created, err := ts.store.CreateTransaction(candidate)
	if err != nil {
		SendStoreError(w, err)
		return
	}

	ts.log.Info().
		Str("transactionId", created.ID).
		Str("accountId", created.AccountID).
		Str("type", string(created.Type)).
		Str("amount", created.Amount.String()).
		Msg("transaction recorded")
	SendJSON(w, http.StatusCreated, created)
}

// ListTransactions handles GET /transactions with optional accountId,
// category, type, from and to query filters (RFC 3339 dates).
func (ts *TransactionService) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.TransactionFilter{
		AccountID: q.Get("accountId"),
		Category:  q.Get("category"),
		Type:      models.TransactionType(q.Get("type")),
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			SendErrorResponse(w, "Invalid from date", http.StatusBadRequest, nil)
			return
		}
		filter.From = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			SendErrorResponse(w, "Invalid to date", http.StatusBadRequest, nil)
			return
		}
		filter.To = t
	}

	SendJSON(w, http.StatusOK, ts.store.ListTransactions(filter))
}

// GetTransaction handles GET /transactions/{txId}.
func (ts *TransactionService) GetTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := ts.store.GetTransaction(chi.URLParam(r, "txId"))
	if err != nil {
		SendStoreError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, t)
}

// UpdateTransaction handles PUT /transactions/{txId} with a partial
// field set.
func (ts *TransactionService) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var patch models.TransactionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	updated, err := ts.store.UpdateTransaction(chi.URLParam(r, "txId"), patch)
	if err != nil {
		SendStoreError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, updated)
}

// DeleteTransaction handles DELETE /transactions/{txId}.
func (ts *TransactionService) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := ts.store.DeleteTransaction(chi.URLParam(r, "txId")); err != nil {
		SendStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
