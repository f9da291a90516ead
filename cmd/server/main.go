package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	api "stepline-backend/internal/api/http"
	"stepline-backend/internal/config"
	"stepline-backend/internal/identity"
	"stepline-backend/internal/logger"
	"stepline-backend/internal/repository/postgres"
	"stepline-backend/internal/security"
	"stepline-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Stepline backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	verifier, err := identity.NewFirebaseVerifier(context.Background(), cfg.Auth.FirebaseCredentialsFile)
	if err != nil {
		log.Fatalf("Failed to initialize identity verifier: %v", err)
	}

	tokenManager := security.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenExpiry, cfg.Auth.RefreshTokenExpiry)

	emailSvc := service.NewEmailService(
		cfg.Email.SendGridAPIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
		cfg.Email.BaseURL,
	)

	authSvc := service.NewAuthService(store.UserRepository, verifier, tokenManager)
	userSvc := service.NewUserService(store.UserRepository, store.ProjectRepository)
	projectSvc := service.NewProjectService(store.ProjectRepository, store.StepRepository, store.MembershipRepository, store.UserRepository)
	stepSvc := service.NewStepService(store.StepRepository, store.MembershipRepository)
	teamSvc := service.NewTeamService(store.UserRepository, store.ProjectRepository, store.MembershipRepository, store.InvitationRepository, emailSvc)

	router := api.NewRouter(tokenManager, authSvc, userSvc, projectSvc, stepSvc, teamSvc)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("HTTP server failed: %v", err)
	}
}
