package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/propline/lead-service/internal/config"
	"github.com/propline/lead-service/internal/infra/auth"
	"github.com/propline/lead-service/internal/infra/database"
	"github.com/propline/lead-service/internal/infra/http/handlers"
	appmiddleware "github.com/propline/lead-service/internal/infra/http/middleware"
	"github.com/propline/lead-service/internal/infra/mail"
	"github.com/propline/lead-service/internal/infra/queue"
	"github.com/propline/lead-service/internal/logging"
	"github.com/propline/lead-service/internal/usecase"
)

func main() {
	logger := logging.NewLogger(os.Stdout, slog.LevelInfo)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQP.User, cfg.AMQP.Password, cfg.AMQP.Host, cfg.AMQP.Port)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// Repositories
	leadRepo := database.NewLeadRepository(db)
	userRepo := database.NewUserRepository(db)

	// Adapters
	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From,
	)

	// Worker consuming lead events and sending notifications
	worker := queue.NewWorker(rabbitMQ.Ch, mailSender, cfg.SMTP.OpsEmail, logger)
	go worker.Start(queue.QueueName)

	// Use cases
	leadUC := usecase.NewLeadUseCase(leadRepo, userRepo, producer, logger)
	authUC := usecase.NewAuthUseCase(userRepo, tokens)

	// Handlers
	leadHandler := handlers.NewLeadHandler(leadUC)
	userHandler := handlers.NewUserHandler(authUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(appmiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Post("/users/register", userHandler.Register)
	r.Post("/users/login", userHandler.Login)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/leads", func(r chi.Router) {
		r.Use(appmiddleware.Authenticate(tokens))
		r.Post("/", leadHandler.Create)
		r.Get("/", leadHandler.List)
		r.Put("/{id}/assign", leadHandler.Assign)
		r.Put("/{id}/progress", leadHandler.Progress)
		r.Delete("/{id}/cancel", leadHandler.Cancel)
	})

	server := &http.Server{Addr: cfg.Addr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("lead service listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
