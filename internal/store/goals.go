package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/models"
)

// CreateGoal validates the candidate, checks the linked account and
// adds it to the dataset.
func (s *Store) CreateGoal(candidate models.Goal) (models.Goal, error) {
	if result := models.ValidateGoal(candidate); !result.IsValid {
		return models.Goal{}, &ValidationError{Result: result}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.goals) >= MaxGoals {
		return models.Goal{}, ErrDatasetCap
	}
	if _, ok := s.accounts[candidate.AccountID]; !ok {
		return models.Goal{}, ErrAccountNotFound
	}

	now := time.Now().UTC()
	candidate.ID = newID()
	candidate.CreatedAt = now
	candidate.UpdatedAt = now
	s.goals[candidate.ID] = &candidate
	return candidate, nil
}

// GetGoal returns a copy of one goal.
func (s *Store) GetGoal(id string) (models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.goals[id]
	if !ok {
		return models.Goal{}, ErrNotFound
	}
	return *g, nil
}

// ListGoals returns creation-ordered copies of all goals.
func (s *Store) ListGoals() []models.Goal {
	return s.Snapshot().Goals
}

// UpdateGoal applies a partial update, re-checking the linked account
// when it changes.
func (s *Store) UpdateGoal(id string, patch models.GoalPatch) (models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goals[id]
	if !ok {
		return models.Goal{}, ErrNotFound
	}
	if patch.AccountID != nil {
		if _, ok := s.accounts[*patch.AccountID]; !ok {
			return models.Goal{}, ErrAccountNotFound
		}
	}
	if result := g.Update(patch); !result.IsValid {
		return models.Goal{}, &ValidationError{Result: result}
	}
	return *g, nil
}

// DeleteGoal removes a goal.
func (s *Store) DeleteGoal(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.goals[id]; !ok {
		return ErrNotFound
	}
	delete(s.goals, id)
	return nil
}

// ContributeToGoal adds a positive amount to a goal's current amount,
// flipping completion when the target is reached.
func (s *Store) ContributeToGoal(id string, amount decimal.Decimal) (models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goals[id]
	if !ok {
		return models.Goal{}, ErrNotFound
	}
	if err := g.AddContribution(amount); err != nil {
		return models.Goal{}, err
	}
	return *g, nil
}

// SetGoalAmount overwrites a goal's current amount and re-evaluates
// completion.
func (s *Store) SetGoalAmount(id string, amount decimal.Decimal) (models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goals[id]
	if !ok {
		return models.Goal{}, ErrNotFound
	}
	if err := g.SetCurrentAmount(amount); err != nil {
		return models.Goal{}, err
	}
	return *g, nil
}

// MarkGoalCompleted flips the completion flag in place. Used by the
// notification scanner, which couples detection with the flag flip.
func (s *Store) MarkGoalCompleted(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g, ok := s.goals[id]; ok {
		g.IsCompleted = true
		g.UpdatedAt = time.Now().UTC()
	}
}
