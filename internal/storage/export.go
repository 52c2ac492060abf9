package storage

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/engine"
	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/models"
	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/store"
)

// ExportEnvelope wraps an exported dataset with its metadata.
type ExportEnvelope struct {
	ExportedAt time.Time `json:"exportedAt"`
	AppVersion string    `json:"appVersion"`
	Data       Dataset   `json:"data"`
}

// ExportJSON renders the full dataset as a pretty-printed JSON envelope.
func ExportJSON(snap store.Snapshot, appVersion string) ([]byte, error) {
	env := ExportEnvelope{
		ExportedAt: time.Now().UTC(),
		AppVersion: appVersion,
		Data:       FromSnapshot(snap),
	}
	return json.MarshalIndent(env, "", "  ")
}

// ExportTransactionsCSV renders transactions as comma-delimited rows
// with a header. encoding/csv handles embedded quote escaping.
func ExportTransactionsCSV(transactions []models.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "date", "type", "amount", "description", "category", "accountId", "tags"}); err != nil {
		return nil, err
	}
	for _, t := range transactions {
		row := []string{
			t.ID,
			t.Date.Format(time.RFC3339),
			string(t.Type),
			t.Amount.StringFixed(2),
			t.Description,
			t.Category,
			t.AccountID,
			strings.Join(t.Tags, ";"),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ExportSummaryCSV renders a report's category breakdown as CSV.
func ExportSummaryCSV(summary engine.Summary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"category", "amount", "percentage"}); err != nil {
		return nil, err
	}
	for _, c := range summary.Categories {
		row := []string{c.Category, c.Amount.StringFixed(2), strconv.FormatFloat(c.Percentage, 'f', 2, 64)}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
