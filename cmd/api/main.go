package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/talx/rooms-api/internal/config"
	"github.com/talx/rooms-api/internal/domain/booking"
	"github.com/talx/rooms-api/internal/domain/center"
	"github.com/talx/rooms-api/internal/domain/notification"
	"github.com/talx/rooms-api/internal/domain/room"
	"github.com/talx/rooms-api/internal/events"
	"github.com/talx/rooms-api/internal/middleware"
	"github.com/talx/rooms-api/internal/pkg/database"
	"github.com/talx/rooms-api/internal/pkg/email"
	"github.com/talx/rooms-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("storage", cfg.StorageDriver).
		Msg("Starting TAL-X rooms API")

	var db *sqlx.DB
	if cfg.StorageDriver == "postgres" {
		var err error
		db, err = database.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer database.ClosePostgres(db)
	}

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	// ---------- Repositories ----------
	var (
		roomRepo         room.Repository
		centerRepo       center.Repository
		bookingRepo      booking.Repository
		notificationRepo notification.Repository
	)
	if db != nil {
		roomRepo = room.NewPostgresRepository(db)
		centerRepo = center.NewPostgresRepository(db)
		bookingRepo = booking.NewPostgresRepository(db)
		notificationRepo = notification.NewPostgresRepository(db)
	} else {
		roomRepo = room.NewMemoryRepository()
		centerRepo = center.NewMemoryRepository()
		bookingRepo = booking.NewMemoryRepository()
		notificationRepo = notification.NewMemoryRepository()
	}

	// ---------- Event hub ----------
	hub := events.NewHub(redisClient)
	go hub.Run()
	defer hub.Shutdown()

	// ---------- Services ----------
	emailService := email.NewService(email.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.EmailFrom,
		FromName:  cfg.EmailFromName,
	})

	notificationService := notification.NewService(notificationRepo, emailService)
	defer notificationService.Close()

	notifier := notification.NewBookingNotifier(notificationService)
	bookingService := booking.NewService(bookingRepo, notifier, hub)

	// ---------- Handlers ----------
	roomHandler := room.NewHandler(roomRepo)
	centerHandler := center.NewHandler(centerRepo)
	bookingHandler := booking.NewHandler(bookingService)
	notificationHandler := notification.NewHandler(notificationService)
	eventsHandler := events.NewHandler(hub, cfg.AllowedOrigins)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(middleware.RateLimit(redisClient, cfg.RateLimitRequests, cfg.RateLimitWindow))

	// WebSocket endpoint (before Compress)
	r.Get("/ws", eventsHandler.ServeWS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Mount("/rooms", roomHandler.Routes())
		r.Mount("/centers", centerHandler.Routes())
		r.Mount("/bookings", bookingHandler.Routes())
		r.Mount("/notifications", notificationHandler.Routes())
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
