package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/config"
	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/logger"
	mW "github.com/mrememisaac/personal-finance-tracker-sub001/internal/middleware"
	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/services"
	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/storage"
	"github.com/mrememisaac/personal-finance-tracker-sub001/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	// Local-storage stand-in: one file per slot under the data dir.
	kv, err := storage.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("cannot open data directory")
	}
	blobs := storage.NewBlobStore(kv, cfg.ObfuscationKey, log)

	// The dataset lives in memory; the blob slot only mirrors it. A
	// missing or corrupt slot degrades to an empty dataset.
	st := store.New()
	st.Replace(blobs.Load())

	snap := st.Snapshot()
	log.Info().
		Int("accounts", len(snap.Accounts)).
		Int("transactions", len(snap.Transactions)).
		Int("budgets", len(snap.Budgets)).
		Int("goals", len(snap.Goals)).
		Msg("dataset loaded")

	pinLockEnabled := cfg.PINHash != ""
	if pinLockEnabled && cfg.JWTSecret == "" {
		log.Fatal().Msg("PIN_HASH is set but JWT_SECRET is empty")
	}
	sessionAuth := mW.NewSessionAuth(cfg.JWTSecret, pinLockEnabled)

	accountService := services.NewAccountService(st, log)
	transactionService := services.NewTransactionService(st, log)
	budgetService := services.NewBudgetService(st, log)
	goalService := services.NewGoalService(st, log)
	reportService := services.NewReportService(st, log)
	datasetService := services.NewDatasetService(st, blobs, cfg.AppVersion, log)
	sessionService := services.NewSessionService(cfg.PINHash, sessionAuth, cfg.SessionExpiry, log)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(chimw.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/session/unlock", sessionService.Unlock)

		r.Group(func(r chi.Router) {
			r.Use(sessionAuth.Middleware)

			r.Get("/accounts", accountService.ListAccounts)
			r.Post("/accounts", accountService.CreateAccount)
			r.Get("/accounts/{accountId}", accountService.GetAccount)
			r.Put("/accounts/{accountId}", accountService.UpdateAccount)
			r.Delete("/accounts/{accountId}", accountService.DeleteAccount)
			r.Get("/accounts/{accountId}/balance", accountService.GetBalance)
			r.Post("/accounts/{accountId}/can-accommodate", accountService.CanAccommodate)

			r.Get("/transactions", transactionService.ListTransactions)
			r.Post("/transactions", transactionService.CreateTransaction)
			r.Get("/transactions/{txId}", transactionService.GetTransaction)
			r.Put("/transactions/{txId}", transactionService.UpdateTransaction)
			r.Delete("/transactions/{txId}", transactionService.DeleteTransaction)

			r.Get("/budgets", budgetService.ListBudgets)
			r.Post("/budgets", budgetService.CreateBudget)
			r.Get("/budgets/progress", budgetService.ListProgress)
			r.Get("/budgets/{budgetId}", budgetService.GetBudget)
			r.Put("/budgets/{budgetId}", budgetService.UpdateBudget)
			r.Delete("/budgets/{budgetId}", budgetService.DeleteBudget)
			r.Get("/budgets/{budgetId}/progress", budgetService.GetProgress)

			r.Get("/goals", goalService.ListGoals)
			r.Post("/goals", goalService.CreateGoal)
			r.Get("/goals/progress", goalService.ListProgress)
			r.Get("/goals/notifications", goalService.ScanNotifications)
			r.Get("/goals/{goalId}", goalService.GetGoal)
			r.Put("/goals/{goalId}", goalService.UpdateGoal)
			r.Delete("/goals/{goalId}", goalService.DeleteGoal)
			r.Get("/goals/{goalId}/progress", goalService.GetProgress)
			r.Post("/goals/{goalId}/contributions", goalService.Contribute)
			r.Put("/goals/{goalId}/amount", goalService.SetAmount)

			r.Get("/reports/summary", reportService.GetSummary)
			r.Get("/reports/health", reportService.GetHealth)

			r.Post("/dataset/save", datasetService.Save)
			r.Post("/dataset/backup", datasetService.Backup)
			r.Post("/dataset/restore", datasetService.Restore)
			r.Get("/dataset/status", datasetService.Status)
			r.Get("/dataset/export/json", datasetService.ExportJSON)
			r.Get("/dataset/export/transactions.csv", datasetService.ExportTransactionsCSV)
			r.Get("/dataset/export/report.csv", datasetService.ExportReportCSV)
			r.Post("/dataset/import", datasetService.Import)
		})
	})

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	// Mirror the dataset one last time before exiting.
	if !blobs.Save(st.Snapshot()) {
		log.Error().Msg("final dataset save failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("server stopped")
}
