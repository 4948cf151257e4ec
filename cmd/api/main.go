package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adilbekov/notekeeper/internal/auth/guard"
	authhttp "github.com/adilbekov/notekeeper/internal/auth/http"
	authservice "github.com/adilbekov/notekeeper/internal/auth/service"
	"github.com/adilbekov/notekeeper/internal/auth/token"
	"github.com/adilbekov/notekeeper/internal/common/config"
	"github.com/adilbekov/notekeeper/internal/common/constants"
	commoncrypto "github.com/adilbekov/notekeeper/internal/common/crypto"
	"github.com/adilbekov/notekeeper/internal/common/db"
	commonhttp "github.com/adilbekov/notekeeper/internal/common/http"
	"github.com/adilbekov/notekeeper/internal/common/logger"
	srv "github.com/adilbekov/notekeeper/internal/common/server"
	notehttp "github.com/adilbekov/notekeeper/internal/note/http"
	noterepo "github.com/adilbekov/notekeeper/internal/note/repository"
	noteservice "github.com/adilbekov/notekeeper/internal/note/service"
	userrepo "github.com/adilbekov/notekeeper/internal/user/repository"
)

func main() {
	cfg, err := config.LoadAPIConfig()
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to load config: %v\n", err))
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogDir, "api", cfg.LogLevel)
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	db.StartPoolMetrics(pool, constants.DBPoolMetricsInterval)

	if err := db.RunMigrations(log, cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	userRepo := userrepo.NewPgRepository(pool)
	noteRepo := noterepo.NewPgRepository(pool)

	tokens := token.NewService(cfg.JWTSecret, cfg.AccessTokenTTL)
	accessGuard := guard.New(tokens, log)
	hasher := &commoncrypto.BcryptHasher{}
	idGenerator := commoncrypto.NewUUIDGenerator()

	authService := authservice.NewAuthService(userRepo, tokens, hasher, idGenerator, log)
	noteService := noteservice.NewNoteService(noteRepo, idGenerator, log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		commonhttp.WriteJSON(w, http.StatusOK, map[string]string{"data": "Hello"})
	})
	mux.HandleFunc("GET /health", commonhttp.HealthHandler(log))
	mux.Handle("GET /metrics", promhttp.Handler())

	authhttp.NewHandler(authService, accessGuard, cfg.RequestTimeout, log).Register(mux)
	notehttp.NewHandler(noteService, accessGuard, cfg.RequestTimeout, log).Register(mux)

	rateLimiter := commonhttp.NewStrictRateLimiter()
	handler := rateLimiter.Middleware()(commonhttp.BuildBaseHandler(log, mux))

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), handler)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Infof("api service: closing database pool")
			pool.Close()
			return nil
		},
	}

	srv.StartWithGracefulShutdown(server, log, "api", shutdownHooks)
}
