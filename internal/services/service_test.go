package services

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/models"
	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/storage"
	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/store"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testRouter(st *store.Store, blobs *storage.BlobStore) chi.Router {
	log := zerolog.Nop()
	accounts := NewAccountService(st, log)
	transactions := NewTransactionService(st, log)
	budgets := NewBudgetService(st, log)
	goals := NewGoalService(st, log)
	dataset := NewDatasetService(st, blobs, "test", log)

	r := chi.NewRouter()
	r.Post("/accounts", accounts.CreateAccount)
	r.Get("/accounts", accounts.ListAccounts)
	r.Get("/accounts/{accountId}/balance", accounts.GetBalance)
	r.Delete("/accounts/{accountId}", accounts.DeleteAccount)
	r.Post("/accounts/{accountId}/can-accommodate", accounts.CanAccommodate)
	r.Post("/transactions", transactions.CreateTransaction)
	r.Get("/transactions", transactions.ListTransactions)
	r.Post("/budgets", budgets.CreateBudget)
	r.Get("/budgets/{budgetId}/progress", budgets.GetProgress)
	r.Post("/goals", goals.CreateGoal)
	r.Post("/goals/{goalId}/contributions", goals.Contribute)
	r.Get("/goals/notifications", goals.ScanNotifications)
	r.Post("/dataset/import", dataset.Import)
	return r
}

type memoryKV struct{ slots map[string][]byte }

func (m *memoryKV) Put(key string, value []byte) error { m.slots[key] = value; return nil }
func (m *memoryKV) Get(key string) ([]byte, error) {
	v, ok := m.slots[key]
	if !ok {
		return nil, storage.ErrNoSuchKey
	}
	return v, nil
}
func (m *memoryKV) Delete(key string) error { delete(m.slots, key); return nil }

func newEnv() (*store.Store, chi.Router) {
	st := store.New()
	blobs := storage.NewBlobStore(&memoryKV{slots: map[string][]byte{}}, "", zerolog.Nop())
	return st, testRouter(st, blobs)
}

func postJSON(t *testing.T, r chi.Router, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createAccount(t *testing.T, r chi.Router) models.Account {
	t.Helper()
	w := postJSON(t, r, "/accounts", map[string]any{
		"name": "Main", "type": "checking", "balance": "1000", "currency": "USD",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var a models.Account
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &a))
	return a
}

func TestAccountHandlers(t *testing.T) {
	t.Run("invalid request body", func(t *testing.T) {
		_, r := newEnv()
		req := httptest.NewRequest("POST", "/accounts", bytes.NewBufferString("invalid"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation failure returns the ordered error list", func(t *testing.T) {
		_, r := newEnv()
		w := postJSON(t, r, "/accounts", map[string]any{"name": "Main"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Errors)
	})

	t.Run("balance enquiry recomputes from transactions", func(t *testing.T) {
		_, r := newEnv()
		a := createAccount(t, r)

		w := postJSON(t, r, "/transactions", map[string]any{
			"date": time.Now().Add(-time.Hour), "amount": "500",
			"description": "Pay", "category": "salary",
			"accountId": a.ID, "type": "income",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		w = postJSON(t, r, "/transactions", map[string]any{
			"date": time.Now().Add(-time.Hour), "amount": "200",
			"description": "Rent", "category": "rent",
			"accountId": a.ID, "type": "expense",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		req := httptest.NewRequest("GET", "/accounts/"+a.ID+"/balance", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "1300.00", resp["balance"])
	})

	t.Run("can-accommodate requires a delta", func(t *testing.T) {
		_, r := newEnv()
		a := createAccount(t, r)

		w := postJSON(t, r, "/accounts/"+a.ID+"/can-accommodate", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = postJSON(t, r, "/accounts/"+a.ID+"/can-accommodate", map[string]any{"delta": -2000})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			CanAccommodate bool `json:"canAccommodate"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.CanAccommodate)
	})

	t.Run("delete with transactions conflicts", func(t *testing.T) {
		st, r := newEnv()
		a := createAccount(t, r)
		_, err := st.CreateTransaction(models.Transaction{
			Date: time.Now().Add(-time.Hour), Amount: dec("10"),
			Description: "x", Category: "misc", AccountID: a.ID,
			Type: models.TransactionExpense,
		})
		require.NoError(t, err)

		req := httptest.NewRequest("DELETE", "/accounts/"+a.ID, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestTransactionHandlers(t *testing.T) {
	t.Run("unknown account is 404", func(t *testing.T) {
		_, r := newEnv()
		w := postJSON(t, r, "/transactions", map[string]any{
			"date": time.Now().Add(-time.Hour), "amount": "10",
			"description": "x", "category": "misc",
			"accountId": "ghost", "type": "expense",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("future date fails validation", func(t *testing.T) {
		_, r := newEnv()
		a := createAccount(t, r)
		w := postJSON(t, r, "/transactions", map[string]any{
			"date": time.Now().Add(48 * time.Hour), "amount": "10",
			"description": "x", "category": "misc",
			"accountId": a.ID, "type": "expense",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGoalHandlers(t *testing.T) {
	t.Run("negative contribution is rejected", func(t *testing.T) {
		_, r := newEnv()
		a := createAccount(t, r)
		w := postJSON(t, r, "/goals", map[string]any{
			"name": "Fund", "targetAmount": "1000",
			"targetDate": time.Now().AddDate(0, 1, 0), "accountId": a.ID,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var g models.Goal
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &g))

		w = postJSON(t, r, "/goals/"+g.ID+"/contributions", map[string]any{"amount": "-50"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("notification scan flips completion", func(t *testing.T) {
		st, r := newEnv()
		a := createAccount(t, r)
		g, err := st.CreateGoal(models.Goal{
			Name: "Fund", TargetAmount: dec("500"), CurrentAmount: dec("500"),
			TargetDate: time.Now().AddDate(0, 1, 0), AccountID: a.ID,
		})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/goals/notifications", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var notes []models.Notification
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notes))
		require.NotEmpty(t, notes)
		assert.Equal(t, models.NotificationCompletion, notes[0].Type)

		updated, err := st.GetGoal(g.ID)
		require.NoError(t, err)
		assert.True(t, updated.IsCompleted)
	})
}

func TestBudgetHandlers(t *testing.T) {
	t.Run("progress classifies spending", func(t *testing.T) {
		st, r := newEnv()
		a := createAccount(t, r)

		w := postJSON(t, r, "/budgets", map[string]any{
			"category": "dining", "limit": "100", "period": "monthly",
			"startDate": time.Now().AddDate(0, -1, 0), "endDate": time.Now().AddDate(0, 1, 0),
			"isActive": true,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var b models.Budget
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))

		_, err := st.CreateTransaction(models.Transaction{
			Date: time.Now().Add(-time.Hour), Amount: dec("90"),
			Description: "dinner", Category: "dining", AccountID: a.ID,
			Type: models.TransactionExpense,
		})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/budgets/"+b.ID+"/progress", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Percentage float64 `json:"percentage"`
			Status     string  `json:"status"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.InDelta(t, 90.0, resp.Percentage, 0.001)
		assert.Equal(t, "warning", resp.Status)
	})
}

func TestImportHandler(t *testing.T) {
	t.Run("missing goals array mutates nothing", func(t *testing.T) {
		st, r := newEnv()
		createAccount(t, r)

		payload := []byte(`{"data":{"accounts":[],"transactions":[],"budgets":[],"version":1}}`)
		req := httptest.NewRequest("POST", "/dataset/import", bytes.NewReader(payload))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Len(t, st.ListAccounts(), 1)
	})

	t.Run("valid payload replaces the dataset after a safety backup", func(t *testing.T) {
		st, r := newEnv()
		createAccount(t, r)

		payload := []byte(`{"data":{"accounts":[],"transactions":[],"budgets":[],"goals":[],"version":1}}`)
		req := httptest.NewRequest("POST", "/dataset/import", bytes.NewReader(payload))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Empty(t, st.ListAccounts())
	})
}
