package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/anirbansen/credit-insight/internal/config"
	"github.com/anirbansen/credit-insight/internal/engine"
	"github.com/anirbansen/credit-insight/internal/handler"
	"github.com/anirbansen/credit-insight/internal/middleware"
	"github.com/anirbansen/credit-insight/internal/repository"
	"github.com/anirbansen/credit-insight/internal/service"
	"github.com/anirbansen/credit-insight/internal/utils/email"
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
	eng, err := engine.New(cfg.EngineOptions(), logger)
	if err != nil {
		logger.Fatalf("Failed to build engine: %v", err)
	}
	repo := repository.NewRepository(db)
	var mailer *email.Sender
	if cfg.SMTPHost != "" {
		mailer = email.NewSender(cfg, logger)
	}
	svc := service.NewService(repo, eng, mailer, logger, cfg)
	h := handler.NewHandler(svc)

	// Scheduled batch re-analysis
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.BatchSchedule, func() {
		svc.RunScheduledAnalyses(context.Background())
	}); err != nil {
		logger.Fatalf("Failed to schedule batch analysis: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/subjects/{id}/reports", h.UploadReport).Methods("POST")
	authRouter.HandleFunc("/subjects/{id}/analysis", h.Analyze).Methods("POST")
	authRouter.HandleFunc("/subjects/{id}/analysis", h.GetAnalysis).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
