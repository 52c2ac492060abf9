package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/store"
)

// ErrBadImport rejects structurally invalid import payloads. Imports
// are all-or-nothing: a failed shape check mutates nothing.
var ErrBadImport = errors.New("import payload failed structural validation")

// importShape distinguishes missing collections from empty ones.
type importShape struct {
	Accounts     *json.RawMessage `json:"accounts"`
	Transactions *json.RawMessage `json:"transactions"`
	Budgets      *json.RawMessage `json:"budgets"`
	Goals        *json.RawMessage `json:"goals"`
}

// ParseImport validates and decodes an exported JSON envelope. All four
// record arrays must be present (empty is fine, absent is not); any
// structural failure rejects the whole payload.
func ParseImport(raw []byte) (store.Snapshot, error) {
	var env struct {
		Data *json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return store.Snapshot{}, fmt.Errorf("%w: %v", ErrBadImport, err)
	}
	if env.Data == nil {
		return store.Snapshot{}, fmt.Errorf("%w: missing data envelope", ErrBadImport)
	}

	var shape importShape
	if err := json.Unmarshal(*env.Data, &shape); err != nil {
		return store.Snapshot{}, fmt.Errorf("%w: %v", ErrBadImport, err)
	}
	switch {
	case shape.Accounts == nil:
		return store.Snapshot{}, fmt.Errorf("%w: missing accounts", ErrBadImport)
	case shape.Transactions == nil:
		return store.Snapshot{}, fmt.Errorf("%w: missing transactions", ErrBadImport)
	case shape.Budgets == nil:
		return store.Snapshot{}, fmt.Errorf("%w: missing budgets", ErrBadImport)
	case shape.Goals == nil:
		return store.Snapshot{}, fmt.Errorf("%w: missing goals", ErrBadImport)
	}

	var ds Dataset
	if err := json.Unmarshal(*env.Data, &ds); err != nil {
		return store.Snapshot{}, fmt.Errorf("%w: %v", ErrBadImport, err)
	}
	return ds.ToSnapshot(), nil
}
