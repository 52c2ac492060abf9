package store

import (
	"time"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/models"
)

// CreateAccount validates the candidate, assigns an id and timestamps
// and adds it to the dataset.
func (s *Store) CreateAccount(candidate models.Account) (models.Account, error) {
	if result := models.ValidateAccount(candidate); !result.IsValid {
		return models.Account{}, &ValidationError{Result: result}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.accounts) >= MaxAccounts {
		return models.Account{}, ErrDatasetCap
	}

	now := time.Now().UTC()
	candidate.ID = newID()
	candidate.CreatedAt = now
	candidate.UpdatedAt = now
	s.accounts[candidate.ID] = &candidate
	return candidate, nil
}

// GetAccount returns a copy of the account with the given id.
func (s *Store) GetAccount(id string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return models.Account{}, ErrAccountNotFound
	}
	return *a, nil
}

// ListAccounts returns copies of all accounts, creation-ordered.
func (s *Store) ListAccounts() []models.Account {
	return s.Snapshot().Accounts
}

// UpdateAccount applies a partial update. The mutation only commits if
// the merged record validates.
func (s *Store) UpdateAccount(id string, patch models.AccountPatch) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return models.Account{}, ErrAccountNotFound
	}
	if result := a.Update(patch); !result.IsValid {
		return models.Account{}, &ValidationError{Result: result}
	}
	return *a, nil
}

// DeleteAccount removes an account. Deletion is rejected while any
// transaction still references the account; the caller must reassign or
// delete those first.
func (s *Store) DeleteAccount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		return ErrAccountNotFound
	}
	for _, t := range s.transactions {
		if t.AccountID == id {
			return ErrAccountInUse
		}
	}
	delete(s.accounts, id)
	return nil
}

// touchAccount refreshes the owning account's UpdatedAt after a
// transaction mutation. The stored Balance stays the opening value;
// the displayed balance is always recomputed from it plus the
// transaction set, so there is nothing else to keep in sync here.
// Called with the write lock held.
func (s *Store) touchAccount(accountID string) {
	if a, ok := s.accounts[accountID]; ok {
		a.UpdatedAt = time.Now().UTC()
	}
}
