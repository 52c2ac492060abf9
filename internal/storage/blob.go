// Package storage mirrors the in-memory dataset to local device
// storage as a single versioned blob, and handles CSV/JSON export and
// JSON import. Writes are all-or-nothing; failures degrade to safe
// defaults and are reported as booleans, never panics.
package storage

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/models"
	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/store"
)

// Fixed slot keys in local storage. The backup slot holds exactly one
// prior snapshot.
const (
	DataKey   = "finance_tracker_data"
	BackupKey = "finance_tracker_backup"
)

// DatasetVersion is the current blob schema version.
const DatasetVersion = 1

// Dataset is the serialized form of the whole record set. Dates are
// RFC 3339 strings via encoding/json and revive exactly on load.
type Dataset struct {
	Accounts     []models.Account     `json:"accounts"`
	Transactions []models.Transaction `json:"transactions"`
	Budgets      []models.Budget      `json:"budgets"`
	Goals        []models.Goal        `json:"goals"`
	LastBackup   *time.Time           `json:"lastBackup,omitempty"`
	Version      int                  `json:"version"`
}

// FromSnapshot converts a store snapshot into the blob envelope.
func FromSnapshot(snap store.Snapshot) Dataset {
	return Dataset{
		Accounts:     snap.Accounts,
		Transactions: snap.Transactions,
		Budgets:      snap.Budgets,
		Goals:        snap.Goals,
		LastBackup:   snap.LastBackup,
		Version:      DatasetVersion,
	}
}

// ToSnapshot converts a blob envelope back into a store snapshot.
func (d Dataset) ToSnapshot() store.Snapshot {
	return store.Snapshot{
		Accounts:     d.Accounts,
		Transactions: d.Transactions,
		Budgets:      d.Budgets,
		Goals:        d.Goals,
		LastBackup:   d.LastBackup,
	}
}

// KeyValue is the local-storage abstraction the blob store writes
// under fixed keys.
type KeyValue interface {
	Put(key string, value []byte) error
	Get(key string) ([]byte, error)
	Delete(key string) error
}

// BlobStore persists the dataset under DataKey with a one-deep backup
// under BackupKey, optionally obfuscated.
type BlobStore struct {
	kv  KeyValue
	obf *Obfuscator
	log zerolog.Logger
}

// NewBlobStore creates a blob store. obfuscationKey may be empty to
// store plain text.
func NewBlobStore(kv KeyValue, obfuscationKey string, log zerolog.Logger) *BlobStore {
	return &BlobStore{kv: kv, obf: NewObfuscator(obfuscationKey), log: log}
}

// Save writes the dataset to the primary slot. Returns false on any
// failure; no partial state is left behind.
func (b *BlobStore) Save(snap store.Snapshot) bool {
	return b.write(DataKey, FromSnapshot(snap))
}

// Load reads the primary slot. Any failure (missing slot, corrupt
// payload, version from the future) degrades to an empty dataset.
func (b *BlobStore) Load() store.Snapshot {
	ds, ok := b.read(DataKey)
	if !ok {
		return store.Snapshot{}
	}
	return ds.ToSnapshot()
}

// Backup copies the current dataset into the backup slot, stamping
// LastBackup. Returns false on failure.
func (b *BlobStore) Backup(snap store.Snapshot) bool {
	now := time.Now().UTC()
	snap.LastBackup = &now
	if !b.write(BackupKey, FromSnapshot(snap)) {
		return false
	}
	return true
}

// Restore reads the backup slot. The second return is false when no
// usable backup exists.
func (b *BlobStore) Restore() (store.Snapshot, bool) {
	ds, ok := b.read(BackupKey)
	if !ok {
		return store.Snapshot{}, false
	}
	return ds.ToSnapshot(), true
}

func (b *BlobStore) write(key string, ds Dataset) bool {
	raw, err := json.Marshal(ds)
	if err != nil {
		b.log.Error().Err(err).Str("key", key).Msg("failed to encode dataset")
		return false
	}
	if err := b.kv.Put(key, b.obf.Encode(raw)); err != nil {
		b.log.Error().Err(err).Str("key", key).Msg("failed to write dataset")
		return false
	}
	return true
}

func (b *BlobStore) read(key string) (Dataset, bool) {
	payload, err := b.kv.Get(key)
	if err != nil {
		b.log.Warn().Err(err).Str("key", key).Msg("dataset slot unreadable, starting empty")
		return Dataset{}, false
	}
	raw, err := b.obf.Decode(payload)
	if err != nil {
		b.log.Error().Err(err).Str("key", key).Msg("failed to deobfuscate dataset")
		return Dataset{}, false
	}
	var ds Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		b.log.Error().Err(err).Str("key", key).Msg("failed to decode dataset")
		return Dataset{}, false
	}
	if ds.Version > DatasetVersion {
		b.log.Error().Int("version", ds.Version).Str("key", key).Msg("dataset written by a newer version")
		return Dataset{}, false
	}
	return ds, true
}
