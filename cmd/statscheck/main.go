package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"repo-stats-admin/internal/lib/config"
	"repo-stats-admin/internal/lib/sl"
	"repo-stats-admin/internal/report"
	repo "repo-stats-admin/internal/repository"
	"repo-stats-admin/internal/service/stats"
	"repo-stats-admin/internal/storage/postgres"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
)

func main() {
	os.Exit(run())
}

func run() int {
	envFile := flag.String("env-file", "", "path to the env file (default $ENV_FILE or .env.local)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags]\n\nPrints per-user repository statistics.\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output(), "\n"+config.Description(&config.Stats{}))
	}
	flag.Parse()

	out := report.NewStatsPrinter(os.Stdout)
	out.Banner()

	var cfg config.Stats
	if err := config.Load(config.EnvFilePath(*envFile), &cfg); err != nil {
		if errors.Is(err, config.ErrMissingParams) {
			out.MissingConfig(err)
		} else {
			out.Failure(err)
		}
		return 1
	}

	log := sl.SetupCLILogger(cfg.Env, os.Stderr)
	log.Debug("configuration loaded", slog.String("database", cfg.DB.Name), slog.String("address", cfg.DB.Address()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(ctx, cfg.DB)
	if err != nil {
		log.Error("failed to establish connection with database", sl.Err(err))
		out.Failure(err)
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("failed to close database connection", sl.Err(err))
		}
		out.Closed()
	}()

	out.Connected(cfg.DB.Name, cfg.DB.Address())

	trManager := manager.Must(trmsqlx.NewDefaultFactory(db))
	statsRepo := repo.NewStatisticsRepo(db, trmsqlx.DefaultCtxGetter)
	statsService := stats.NewStatsService(trManager, statsRepo)

	out.Querying()
	rep, err := statsService.BuildReport(ctx)
	if err != nil {
		log.Error("failed to build statistics report", sl.Err(err))
		out.Failure(err)
		return 1
	}

	out.Print(rep)
	log.Info("statistics check finished", slog.Int("users", len(rep.Users)))
	return 0
}
