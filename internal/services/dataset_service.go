package services

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/engine"
	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/storage"
	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/store"
)

// DatasetService handles persistence of the whole record set: blob
// save/load, backup, restore, export and import.
type DatasetService struct {
	store      *store.Store
	blobs      *storage.BlobStore
	appVersion string
	log        zerolog.Logger
}

// NewDatasetService creates the dataset service.
func NewDatasetService(st *store.Store, blobs *storage.BlobStore, appVersion string, log zerolog.Logger) *DatasetService {
	return &DatasetService{
		store:      st,
		blobs:      blobs,
		appVersion: appVersion,
		log:        log.With().Str("service", "dataset").Logger(),
	}
}

// Save handles POST /dataset/save, mirroring the in-memory dataset to
// the primary storage slot. Failure is reported as success=false, never
// a crash.
func (ds *DatasetService) Save(w http.ResponseWriter, r *http.Request) {
	ok := ds.blobs.Save(ds.store.Snapshot())
	if !ok {
		ds.log.Error().Msg("dataset save failed")
	}
	SendJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

// Backup handles POST /dataset/backup, copying the current dataset into
// the one-deep backup slot.
func (ds *DatasetService) Backup(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	ok := ds.blobs.Backup(ds.store.Snapshot())
	if ok {
		ds.store.SetLastBackup(now)
	}
	SendJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

// Restore handles POST /dataset/restore, replacing the in-memory
// dataset with the backup slot's contents.
func (ds *DatasetService) Restore(w http.ResponseWriter, r *http.Request) {
	snap, ok := ds.blobs.Restore()
	if ok {
		ds.store.Replace(snap)
		ds.log.Info().Msg("dataset restored from backup")
	}
	SendJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

// Status handles GET /dataset/status.
func (ds *DatasetService) Status(w http.ResponseWriter, r *http.Request) {
	snap := ds.store.Snapshot()
	SendJSON(w, http.StatusOK, map[string]any{
		"accounts":     len(snap.Accounts),
		"transactions": len(snap.Transactions),
		"budgets":      len(snap.Budgets),
		"goals":        len(snap.Goals),
		"lastBackup":   snap.LastBackup,
		"appVersion":   ds.appVersion,
	})
}

// ExportJSON handles GET /dataset/export/json: the pretty-printed
// envelope with export metadata.
func (ds *DatasetService) ExportJSON(w http.ResponseWriter, r *http.Request) {
	payload, err := storage.ExportJSON(ds.store.Snapshot(), ds.appVersion)
	if err != nil {
		SendErrorResponse(w, "Export failed", http.StatusInternalServerError, nil)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="finance-data.json"`)
	w.Write(payload)
}

// ExportTransactionsCSV handles GET /dataset/export/transactions.csv.
func (ds *DatasetService) ExportTransactionsCSV(w http.ResponseWriter, r *http.Request) {
	payload, err := storage.ExportTransactionsCSV(ds.store.Snapshot().Transactions)
	if err != nil {
		SendErrorResponse(w, "Export failed", http.StatusInternalServerError, nil)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	w.Write(payload)
}

// ExportReportCSV handles GET /dataset/export/report.csv for the given
// range (same from/to params as the report endpoints).
func (ds *DatasetService) ExportReportCSV(w http.ResponseWriter, r *http.Request) {
	start, end, ok := parseRange(r)
	if !ok {
		SendErrorResponse(w, "Invalid date range", http.StatusBadRequest, nil)
		return
	}
	summary := engine.Summarize(start, end, ds.store.Snapshot().Transactions)
	payload, err := storage.ExportSummaryCSV(summary)
	if err != nil {
		SendErrorResponse(w, "Export failed", http.StatusInternalServerError, nil)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "report.csv"))
	w.Write(payload)
}

// Import handles POST /dataset/import. The payload must pass the
// structural shape check; a safety backup of the current data is taken
// before anything is replaced, and a rejected import mutates nothing.
func (ds *DatasetService) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 8<<20)
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	snap, err := storage.ParseImport(raw)
	if err != nil {
		ds.log.Warn().Err(err).Msg("import rejected")
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	if !ds.blobs.Backup(ds.store.Snapshot()) {
		SendErrorResponse(w, "Safety backup failed, import aborted", http.StatusInternalServerError, nil)
		return
	}
	ds.store.SetLastBackup(time.Now().UTC())
	ds.store.Replace(snap)
	ds.log.Info().
		Int("accounts", len(snap.Accounts)).
		Int("transactions", len(snap.Transactions)).
		Msg("dataset imported")
	SendJSON(w, http.StatusOK, map[string]bool{"success": true})
}
