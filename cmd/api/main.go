package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/bullfinance/ledger-service/internal/config"
	"github.com/bullfinance/ledger-service/internal/handler"
	"github.com/bullfinance/ledger-service/internal/integrations/openbanking"
	"github.com/bullfinance/ledger-service/internal/integrations/suggest"
	"github.com/bullfinance/ledger-service/internal/middleware"
	"github.com/bullfinance/ledger-service/internal/repository"
	"github.com/bullfinance/ledger-service/internal/service"
	"github.com/bullfinance/ledger-service/internal/utils/email"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	bankClient := openbanking.NewClient(cfg, logger)
	notifier := email.NewSender(cfg, logger)
	svc := service.NewService(repo, bankClient, notifier, logger)
	suggestClient := suggest.NewClient(cfg, logger)
	h := handler.NewHandler(svc, suggestClient)

	// Scheduled jobs: recurrence expansion and overdue reminders
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.RecurrenceCron, func() {
		if _, err := svc.GenerateRecurring(time.Now()); err != nil {
			logger.Errorf("Scheduled recurrence run failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Invalid recurrence schedule: %v", err)
	}
	if _, err := scheduler.AddFunc(cfg.ReminderCron, func() {
		if _, err := svc.SendOverdueReminders(time.Now()); err != nil {
			logger.Errorf("Scheduled reminder run failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Invalid reminder schedule: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))

	authRouter.HandleFunc("/clients/{clientID}/obligations", h.CreateObligation).Methods("POST")
	authRouter.HandleFunc("/clients/{clientID}/obligations", h.ListObligations).Methods("GET")
	authRouter.HandleFunc("/clients/{clientID}/obligations/{id}/pay", h.MarkPaid).Methods("POST")
	authRouter.HandleFunc("/clients/{clientID}/obligations/{id}/cancel", h.Cancel).Methods("POST")
	authRouter.HandleFunc("/clients/{clientID}/obligations/{id}/boleto", h.GenerateBoleto).Methods("POST")
	authRouter.HandleFunc("/clients/{clientID}/obligations/{id}/pix", h.GeneratePix).Methods("POST")
	authRouter.HandleFunc("/clients/{clientID}/statements/import", h.ImportStatement).Methods("POST")
	authRouter.HandleFunc("/clients/{clientID}/reconciliation/pending", h.PendingReconciliation).Methods("GET")
	authRouter.HandleFunc("/clients/{clientID}/reconciliation/{txID}/match", h.ApplyMatch).Methods("POST")
	authRouter.HandleFunc("/clients/{clientID}/reconciliation/{txID}/ignore", h.IgnoreTransaction).Methods("POST")
	authRouter.HandleFunc("/clients/{clientID}/bank-accounts/{id}/sync", h.SyncOpenBanking).Methods("POST")
	authRouter.HandleFunc("/clients/{clientID}/suggest-category", h.SuggestCategory).Methods("POST")
	authRouter.HandleFunc("/jobs/recurrence", h.RunRecurrence).Methods("POST")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      cors.AllowAll().Handler(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
