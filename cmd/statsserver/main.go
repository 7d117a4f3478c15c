package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"repo-stats-admin/internal/http/handlers"
	statsh "repo-stats-admin/internal/http/handlers/stats"
	mw "repo-stats-admin/internal/http/middleware"
	"repo-stats-admin/internal/lib/config"
	"repo-stats-admin/internal/lib/sl"
	repo "repo-stats-admin/internal/repository"
	"repo-stats-admin/internal/service/stats"
	"repo-stats-admin/internal/storage/postgres"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envFile := flag.String("env-file", "", "path to the env file (default $ENV_FILE or .env.local)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags]\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output(), "\n"+config.Description(&config.Server{}))
	}
	flag.Parse()

	var cfg config.Server
	if err := config.Load(config.EnvFilePath(*envFile), &cfg); err != nil {
		slog.Error("failed to load config", sl.Err(err))
		os.Exit(1)
	}

	log := sl.SetupLogger(cfg.Env, os.Stdout)
	log.Info("starting repository statistics server", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(ctx, cfg.DB)
	if err != nil {
		log.Error("failed to establish connection with database", sl.Err(err))
		os.Exit(1)
	}
	defer db.Close()

	// initialization of go-transaction-manager
	trManager := manager.Must(trmsqlx.NewDefaultFactory(db))

	statsRepo := repo.NewStatisticsRepo(db, trmsqlx.DefaultCtxGetter)
	statsService := stats.NewStatsService(trManager, statsRepo)
	statsHandler := statsh.NewStatsHandler(log, statsService)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mw.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	// public methods
	router.Get("/health", handlers.Healthcheck())
	router.Get("/api/users", statsHandler.ListUsers)

	// admin methods
	router.Group(func(r chi.Router) {
		r.Use(mw.AdminAuth(cfg.AdminSecret))

		r.Get("/api/admin/checks", statsHandler.GetChecks)
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to stop http server", sl.Err(err))
		}
	}()

	log.Info("starting http server", slog.String("address", cfg.HTTPServer.Address))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("failed to start http server", sl.Err(err))
		os.Exit(1)
	}

	log.Info("http server stopped")
}
