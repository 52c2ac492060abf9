package store

import (
	"time"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/models"
)

// CreateBudget validates the candidate and adds it to the dataset.
// New budgets start active unless the candidate says otherwise.
func (s *Store) CreateBudget(candidate models.Budget) (models.Budget, error) {
	if result := models.ValidateBudget(candidate); !result.IsValid {
		return models.Budget{}, &ValidationError{Result: result}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.budgets) >= MaxBudgets {
		return models.Budget{}, ErrDatasetCap
	}

	now := time.Now().UTC()
	candidate.ID = newID()
	candidate.CreatedAt = now
	candidate.UpdatedAt = now
	s.budgets[candidate.ID] = &candidate
	return candidate, nil
}

// GetBudget returns a copy of one budget.
func (s *Store) GetBudget(id string) (models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.budgets[id]
	if !ok {
		return models.Budget{}, ErrNotFound
	}
	return *b, nil
}

// ListBudgets returns creation-ordered copies of all budgets.
func (s *Store) ListBudgets() []models.Budget {
	return s.Snapshot().Budgets
}

// UpdateBudget applies a partial update.
func (s *Store) UpdateBudget(id string, patch models.BudgetPatch) (models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.budgets[id]
	if !ok {
		return models.Budget{}, ErrNotFound
	}
	if result := b.Update(patch); !result.IsValid {
		return models.Budget{}, &ValidationError{Result: result}
	}
	return *b, nil
}

// DeleteBudget removes a budget.
func (s *Store) DeleteBudget(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.budgets[id]; !ok {
		return ErrNotFound
	}
	delete(s.budgets, id)
	return nil
}
