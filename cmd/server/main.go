package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"portfolio/internal/auth"
	"portfolio/internal/config"
	"portfolio/internal/events"
	"portfolio/internal/handler"
	"portfolio/internal/middleware"
	"portfolio/internal/repository"
	"portfolio/internal/service"
	authService "portfolio/internal/service/auth"
	contentService "portfolio/internal/service/content"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logger, closeLog, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()
	logger = logger.With("service", "portfolio")

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"content_store", cfg.ContentStore,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Content store
	repo, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open content store: %v", err)
	}
	defer repo.Close()

	// Change events
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			log.Fatalf("Failed to connect to message broker: %v", err)
		}
		publisher = amqpPublisher
		logger.Info("change events enabled", "exchange", cfg.AMQPExchange)
	}
	defer publisher.Close()

	// Admin sessions
	secret, err := authService.ResolveSecret(cfg.SessionSecret, logger)
	if err != nil {
		log.Fatalf("Failed to resolve session secret: %v", err)
	}
	sessionVerifier, err := auth.NewSessionVerifier(secret, logger)
	if err != nil {
		log.Fatalf("Failed to create session verifier: %v", err)
	}

	verifiers := []auth.TokenVerifier{sessionVerifier}
	if cfg.AuthJWKSURL != "" {
		jwksVerifier, err := auth.NewJWKSVerifier(ctx, cfg.AuthJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWKS verifier: %v", err)
		}
		verifiers = append(verifiers, jwksVerifier)
		logger.Info("external admin tokens accepted", "jwks_url", cfg.AuthJWKSURL)
	}
	tokenVerifier := auth.NewChainVerifier(verifiers...)
	defer tokenVerifier.Close()

	// Services
	contentSvc := contentService.NewService(repo, publisher, logger)
	sessionSvc := authService.NewSessionService(cfg.AdminPassword, sessionVerifier, cfg.SessionTTL, logger)
	prefsSvc := service.NewPreferencesService(logger)

	// Handlers
	contentHandler := handler.NewContentHandler(contentSvc, logger)
	authHandler := handler.NewAuthHandler(sessionSvc, tokenVerifier, cfg.IsProduction(), logger)
	prefsHandler := handler.NewPreferencesHandler(prefsSvc, logger)

	requireAdmin := middleware.RequireAdmin(tokenVerifier, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Content routes
	mux.HandleFunc("GET /content", contentHandler.GetContent)
	mux.Handle("POST /content", requireAdmin(http.HandlerFunc(contentHandler.SaveContent)))
	mux.HandleFunc("GET /content/skills", contentHandler.GetSkills)
	mux.HandleFunc("GET /content/summary", contentHandler.GetSummary)

	// Admin session routes
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /auth/session", authHandler.GetSession)

	// Visitor preference routes
	mux.HandleFunc("GET /preferences", prefsHandler.GetPreferences)
	mux.HandleFunc("POST /preferences/{kind}/toggle", prefsHandler.TogglePreference)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Routes
	h = middleware.Recovery(logger)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "If-Match"},
		ExposedHeaders:   []string{"ETag", "X-Content-Source"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return
	}
	logger.Info("server stopped")
}
