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
	"repo-stats-admin/internal/service/cleaner"
	"repo-stats-admin/internal/storage/postgres"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
)

func main() {
	os.Exit(run())
}

func run() int {
	envFile := flag.String("env-file", "", "path to the env file (default $ENV_FILE or .env.local)")
	yes := flag.Bool("yes", false, "drop without asking for the "+cleaner.ConfirmationPhrase+" confirmation")
	flag.Usage = func() {
		w := flag.CommandLine.Output()
		fmt.Fprintf(w, "Usage: %s [flags] [kinds]\n\n", os.Args[0])
		fmt.Fprintf(w, "Drops every user-created object of the given kinds (comma separated, default all):\n  %s\n\n", cleaner.KindNames(cleaner.ValidKinds))
		flag.PrintDefaults()
		fmt.Fprintln(w, "\n"+config.Description(&config.Cleaner{}))
	}
	flag.Parse()

	out := report.NewCleanupPrinter(os.Stdout)

	kinds, err := cleaner.ParseKinds(flag.Args())
	if err != nil {
		out.InvalidKinds()
		return 1
	}

	out.Banner(kinds, flag.NArg() == 0)

	var cfg config.Cleaner
	if err := config.Load(config.EnvFilePath(*envFile), &cfg); err != nil {
		if errors.Is(err, config.ErrMissingParams) {
			out.MissingConfig(err)
		} else {
			out.Failure(err)
		}
		return 1
	}

	log := sl.SetupCLILogger(cfg.Env, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out.Connecting(cfg.DB.Name, cfg.DB.Address(), cfg.Schema)
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

	out.Connected()

	// each DROP gets its own transaction through the manager
	trManager := manager.Must(trmsqlx.NewDefaultFactory(db))
	catalogRepo := repo.NewCatalogRepo(db, cfg.Schema)
	dropRepo := repo.NewDropRepo(db, trmsqlx.DefaultCtxGetter)
	cleanerService := cleaner.NewCleanerService(log, trManager, catalogRepo, dropRepo)

	_, result, err := cleanerService.Run(ctx, kinds, cleaner.RunOptions{
		SkipConfirm: *yes,
		Confirm:     report.ConfirmFromReader(os.Stdin, os.Stdout),
		Observer:    out,
	})

	switch {
	case errors.Is(err, cleaner.ErrNothingToDelete):
		return 0
	case errors.Is(err, cleaner.ErrCancelled):
		out.Cancelled()
		return 0
	case err != nil:
		if result != nil {
			out.Summary(result)
		}
		log.Error("cleanup aborted", slog.String("schema", cfg.Schema), sl.Err(err))
		out.Failure(err)
		return 1
	}

	out.Summary(result)
	return 0
}
