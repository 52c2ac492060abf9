package storage

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/models"
	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/store"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleSnapshot() store.Snapshot {
	created := time.Date(2026, 1, 10, 8, 30, 0, 123_000_000, time.UTC)
	return store.Snapshot{
		Accounts: []models.Account{{
			ID: "acc-1", Name: "Main", Type: models.AccountChecking,
			Balance: dec("1234.56"), Currency: "USD",
			CreatedAt: created, UpdatedAt: created,
		}},
		Transactions: []models.Transaction{{
			ID: "tx-1", Date: created.AddDate(0, 0, 5), Amount: dec("42.01"),
			Description: `Lunch, with "quotes"`, Category: "dining",
			AccountID: "acc-1", Type: models.TransactionExpense,
			Tags:      []string{"work"},
			CreatedAt: created, UpdatedAt: created,
		}},
		Budgets: []models.Budget{},
		Goals: []models.Goal{{
			ID: "g-1", Name: "Fund", TargetAmount: dec("5000"),
			CurrentAmount: dec("100"), TargetDate: created.AddDate(1, 0, 0),
			AccountID: "acc-1", CreatedAt: created, UpdatedAt: created,
		}},
	}
}

type memoryKV struct {
	slots map[string][]byte
}

func newMemoryKV() *memoryKV { return &memoryKV{slots: make(map[string][]byte)} }

func (m *memoryKV) Put(key string, value []byte) error {
	m.slots[key] = value
	return nil
}

func (m *memoryKV) Get(key string) ([]byte, error) {
	v, ok := m.slots[key]
	if !ok {
		return nil, ErrNoSuchKey
	}
	return v, nil
}

func (m *memoryKV) Delete(key string) error {
	delete(m.slots, key)
	return nil
}

func TestBlobRoundTrip(t *testing.T) {
	t.Run("load(save(data)) preserves everything", func(t *testing.T) {
		blobs := NewBlobStore(newMemoryKV(), "", zerolog.Nop())
		snap := sampleSnapshot()

		require.True(t, blobs.Save(snap))
		got := blobs.Load()

		require.Len(t, got.Accounts, 1)
		assert.True(t, got.Accounts[0].CreatedAt.Equal(snap.Accounts[0].CreatedAt))
		assert.True(t, got.Accounts[0].Balance.Equal(dec("1234.56")))
		require.Len(t, got.Transactions, 1)
		assert.True(t, got.Transactions[0].Date.Equal(snap.Transactions[0].Date))
		assert.Equal(t, snap.Transactions[0].Description, got.Transactions[0].Description)
		assert.Equal(t, []string{"work"}, got.Transactions[0].Tags)
		assert.NotNil(t, got.Budgets)
		assert.Empty(t, got.Budgets)
		require.Len(t, got.Goals, 1)
		assert.True(t, got.Goals[0].TargetDate.Equal(snap.Goals[0].TargetDate))
	})

	t.Run("obfuscated blob round-trips and is not plain JSON", func(t *testing.T) {
		kv := newMemoryKV()
		blobs := NewBlobStore(kv, "not-a-secret", zerolog.Nop())
		snap := sampleSnapshot()

		require.True(t, blobs.Save(snap))
		raw, err := kv.Get(DataKey)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), `"accounts"`)

		got := blobs.Load()
		require.Len(t, got.Accounts, 1)
		assert.True(t, got.Accounts[0].Balance.Equal(dec("1234.56")))
	})

	t.Run("missing slot degrades to empty dataset", func(t *testing.T) {
		blobs := NewBlobStore(newMemoryKV(), "", zerolog.Nop())
		got := blobs.Load()
		assert.Empty(t, got.Accounts)
		assert.Empty(t, got.Transactions)
	})

	t.Run("corrupt payload degrades to empty dataset", func(t *testing.T) {
		kv := newMemoryKV()
		require.NoError(t, kv.Put(DataKey, []byte("not json at all")))

		blobs := NewBlobStore(kv, "", zerolog.Nop())
		assert.Empty(t, blobs.Load().Accounts)
	})

	t.Run("backup and restore use the parallel slot", func(t *testing.T) {
		kv := newMemoryKV()
		blobs := NewBlobStore(kv, "", zerolog.Nop())
		snap := sampleSnapshot()

		_, ok := blobs.Restore()
		assert.False(t, ok)

		require.True(t, blobs.Backup(snap))
		restored, ok := blobs.Restore()
		require.True(t, ok)
		assert.Len(t, restored.Accounts, 1)
		assert.NotNil(t, restored.LastBackup)
	})
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	t.Run("put then get", func(t *testing.T) {
		require.NoError(t, fs.Put("slot", []byte("payload")))
		got, err := fs.Get("slot")
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), got)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := fs.Get("nope")
		assert.ErrorIs(t, err, ErrNoSuchKey)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, fs.Put("gone", []byte("x")))
		assert.NoError(t, fs.Delete("gone"))
		assert.NoError(t, fs.Delete("gone"))
	})
}

func TestObfuscator(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		o := NewObfuscator("key")
		payload := []byte(`{"hello":"world"}`)

		decoded, err := o.Decode(o.Encode(payload))
		require.NoError(t, err)
		assert.Equal(t, payload, decoded)
	})

	t.Run("empty key passes through", func(t *testing.T) {
		o := NewObfuscator("")
		payload := []byte("plain")
		assert.Equal(t, payload, o.Encode(payload))
	})

	t.Run("garbage input is an error", func(t *testing.T) {
		o := NewObfuscator("key")
		_, err := o.Decode([]byte("!!!not base64!!!"))
		assert.Error(t, err)
	})
}
