package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/app"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/clock"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/config"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/feed"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/notify"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/session"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/storage/postgres"
	transporthttp "github.com/jananirjanani09-cyber/campus-event-hub-85/internal/transport/http"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/migrations"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.Default()

	if err := godotenv.Load(); err != nil {
		logger.Printf("WARN: no .env file, using process environment")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	var revocations session.RevocationStore
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = client.Close() }()
		if err := client.Ping(startupCtx).Err(); err != nil {
			log.Fatalf("redis ping: %v", err)
		}
		revocations = session.NewRedisStore(client)
		logger.Printf("session revocations stored in redis at %s", cfg.Redis.Addr)
	} else {
		revocations = session.NewMemoryStore()
	}

	clk := clock.NewSystem()
	sessions := session.NewManager([]byte(cfg.JWTSecret), revocations, clk, session.WithTokenTTL(time.Duration(cfg.TokenTTL)))

	authRepo := postgres.NewAuthRepository(pool)
	authSvc := app.NewAuthService(authRepo, sessions, clk)
	regRepo := postgres.NewRegistrationRepository(pool)
	regSvc := app.NewRegistrationService(regRepo, clk)
	adminRepo := postgres.NewAdminRepository(pool)
	adminSvc := app.NewAdminService(adminRepo, clk)
	dirRepo := postgres.NewDirectoryRepository(pool)
	dirSvc := app.NewDirectoryService(dirRepo)

	hub := feed.NewHub()
	defer hub.Close()

	feedCtx, stopFeed := context.WithCancel(context.Background())
	defer stopFeed()

	listener := feed.NewListener(pool, hub, logger)
	go listener.Run(feedCtx)

	if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
		announcer, err := notify.NewAnnouncer(cfg.Telegram.Token, cfg.Telegram.ChatID, adminRepo, logger)
		if err != nil {
			logger.Printf("WARN: telegram announcer disabled: %v", err)
		} else {
			go announcer.Run(feedCtx, hub.Subscribe())
			logger.Printf("telegram announcer enabled")
		}
	}

	router := transporthttp.NewRouter(transporthttp.RouterDeps{
		Auth:          authSvc,
		Sessions:      authSvc,
		Admin:         adminSvc,
		Stats:         adminSvc,
		Directory:     dirSvc,
		Registrations: regSvc,
		Hub:           hub,
	})
	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.CORSOrigins, router), logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	log.Printf("api listening on :%s", cfg.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	stopFeed()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}
