// Package store holds the full in-memory dataset and serializes every
// mutation through a single lock, so one create/update/delete fully
// completes (including cascading balance refreshes) before the next is
// accepted. Reads hand out copies; engines never reach into the store.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/models"
)

// Dataset caps. Everything stays O(n) and sub-millisecond under these.
const (
	MaxAccounts     = 50
	MaxTransactions = 10_000
	MaxBudgets      = 100
	MaxGoals        = 50
)

var (
	// ErrAccountNotFound is returned when a referenced account id does
	// not exist.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountInUse rejects deleting an account that transactions
	// still reference.
	ErrAccountInUse = errors.New("account has transactions and cannot be deleted")
	// ErrNotFound is the generic missing-record error.
	ErrNotFound = errors.New("record not found")
	// ErrDatasetCap is returned when a collection has hit its size cap.
	ErrDatasetCap = errors.New("dataset size limit reached")
)

// ValidationError wraps a failed validation so callers can surface the
// ordered violation list.
type ValidationError struct {
	Result models.ValidationResult
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Result.Errors)
}

// Store is the central mutable dataset, owned by the application root
// and injected into each service.
type Store struct {
	mu sync.RWMutex

	accounts     map[string]*models.Account
	transactions map[string]*models.Transaction
	budgets      map[string]*models.Budget
	goals        map[string]*models.Goal
	lastBackup   *time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		accounts:     make(map[string]*models.Account),
		transactions: make(map[string]*models.Transaction),
		budgets:      make(map[string]*models.Budget),
		goals:        make(map[string]*models.Goal),
	}
}

func newID() string {
	return uuid.New().String()
}

// Snapshot is a point-in-time copy of the whole dataset, suitable for
// engines and persistence.
type Snapshot struct {
	Accounts     []models.Account
	Transactions []models.Transaction
	Budgets      []models.Budget
	Goals        []models.Goal
	LastBackup   *time.Time
}

// Snapshot copies the dataset. Collections are sorted by CreatedAt then
// id so snapshots are deterministic.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Accounts:     make([]models.Account, 0, len(s.accounts)),
		Transactions: make([]models.Transaction, 0, len(s.transactions)),
		Budgets:      make([]models.Budget, 0, len(s.budgets)),
		Goals:        make([]models.Goal, 0, len(s.goals)),
	}
	for _, a := range s.accounts {
		snap.Accounts = append(snap.Accounts, *a)
	}
	for _, t := range s.transactions {
		snap.Transactions = append(snap.Transactions, *t)
	}
	for _, b := range s.budgets {
		snap.Budgets = append(snap.Budgets, *b)
	}
	for _, g := range s.goals {
		snap.Goals = append(snap.Goals, *g)
	}
	if s.lastBackup != nil {
		lb := *s.lastBackup
		snap.LastBackup = &lb
	}

	sort.SliceStable(snap.Accounts, func(i, j int) bool {
		if !snap.Accounts[i].CreatedAt.Equal(snap.Accounts[j].CreatedAt) {
			return snap.Accounts[i].CreatedAt.Before(snap.Accounts[j].CreatedAt)
		}
		return snap.Accounts[i].ID < snap.Accounts[j].ID
	})
	sort.SliceStable(snap.Transactions, func(i, j int) bool {
		if !snap.Transactions[i].CreatedAt.Equal(snap.Transactions[j].CreatedAt) {
			return snap.Transactions[i].CreatedAt.Before(snap.Transactions[j].CreatedAt)
		}
		return snap.Transactions[i].ID < snap.Transactions[j].ID
	})
	sort.SliceStable(snap.Budgets, func(i, j int) bool {
		if !snap.Budgets[i].CreatedAt.Equal(snap.Budgets[j].CreatedAt) {
			return snap.Budgets[i].CreatedAt.Before(snap.Budgets[j].CreatedAt)
		}
		return snap.Budgets[i].ID < snap.Budgets[j].ID
	})
	sort.SliceStable(snap.Goals, func(i, j int) bool {
		if !snap.Goals[i].CreatedAt.Equal(snap.Goals[j].CreatedAt) {
			return snap.Goals[i].CreatedAt.Before(snap.Goals[j].CreatedAt)
		}
		return snap.Goals[i].ID < snap.Goals[j].ID
	})

	return snap
}

// Replace swaps the entire dataset, used by blob load and import. The
// caller is responsible for having validated the incoming records.
func (s *Store) Replace(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = make(map[string]*models.Account, len(snap.Accounts))
	for i := range snap.Accounts {
		a := snap.Accounts[i]
		s.accounts[a.ID] = &a
	}
	s.transactions = make(map[string]*models.Transaction, len(snap.Transactions))
	for i := range snap.Transactions {
		t := snap.Transactions[i]
		s.transactions[t.ID] = &t
	}
	s.budgets = make(map[string]*models.Budget, len(snap.Budgets))
	for i := range snap.Budgets {
		b := snap.Budgets[i]
		s.budgets[b.ID] = &b
	}
	s.goals = make(map[string]*models.Goal, len(snap.Goals))
	for i := range snap.Goals {
		g := snap.Goals[i]
		s.goals[g.ID] = &g
	}
	if snap.LastBackup != nil {
		lb := *snap.LastBackup
		s.lastBackup = &lb
	} else {
		s.lastBackup = nil
	}
}

// SetLastBackup records when the backup slot was last written.
func (s *Store) SetLastBackup(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastBackup = &t
}
