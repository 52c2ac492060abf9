package store

import (
	"strings"
	"time"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/models"
)

// TransactionFilter narrows ListTransactions. Zero values match all.
type TransactionFilter struct {
	AccountID string
	Category  string
	Type      models.TransactionType
	From      time.Time
	To        time.Time
}

func (f TransactionFilter) matches(t models.Transaction) bool {
	if f.AccountID != "" && t.AccountID != f.AccountID {
		return false
	}
	if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if !f.From.IsZero() && t.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.Date.After(f.To) {
		return false
	}
	return true
}

// CreateTransaction validates the candidate, checks the account
// reference and adds it to the dataset.
func (s *Store) CreateTransaction(candidate models.Transaction) (models.Transaction, error) {
	if result := models.ValidateTransaction(candidate); !result.IsValid {
		return models.Transaction{}, &ValidationError{Result: result}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.transactions) >= MaxTransactions {
		return models.Transaction{}, ErrDatasetCap
	}
	if _, ok := s.accounts[candidate.AccountID]; !ok {
		return models.Transaction{}, ErrAccountNotFound
	}

	now := time.Now().UTC()
	candidate.ID = newID()
	candidate.CreatedAt = now
	candidate.UpdatedAt = now
	s.transactions[candidate.ID] = &candidate
	s.touchAccount(candidate.AccountID)
	return candidate, nil
}

// GetTransaction returns a copy of one transaction.
func (s *Store) GetTransaction(id string) (models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.transactions[id]
	if !ok {
		return models.Transaction{}, ErrNotFound
	}
	return *t, nil
}

// ListTransactions returns creation-ordered copies matching the filter.
func (s *Store) ListTransactions(filter TransactionFilter) []models.Transaction {
	all := s.Snapshot().Transactions
	out := make([]models.Transaction, 0, len(all))
	for _, t := range all {
		if filter.matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// UpdateTransaction applies a partial update, re-checking the account
// reference when it changes.
func (s *Store) UpdateTransaction(id string, patch models.TransactionPatch) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transactions[id]
	if !ok {
		return models.Transaction{}, ErrNotFound
	}
	if patch.AccountID != nil {
		if _, ok := s.accounts[*patch.AccountID]; !ok {
			return models.Transaction{}, ErrAccountNotFound
		}
	}

	prevAccount := t.AccountID
	if result := t.Update(patch); !result.IsValid {
		return models.Transaction{}, &ValidationError{Result: result}
	}
	s.touchAccount(prevAccount)
	if t.AccountID != prevAccount {
		s.touchAccount(t.AccountID)
	}
	return *t, nil
}

// DeleteTransaction removes a transaction.
func (s *Store) DeleteTransaction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transactions[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.transactions, id)
	s.touchAccount(t.AccountID)
	return nil
}
