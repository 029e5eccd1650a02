package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/focusboard/internal/board"
	"github.com/alexanderramin/focusboard/internal/cli"
	"github.com/alexanderramin/focusboard/internal/config"
	"github.com/alexanderramin/focusboard/internal/db"
	"github.com/alexanderramin/focusboard/internal/repository"
	"github.com/alexanderramin/focusboard/internal/rollup"
	"github.com/alexanderramin/focusboard/internal/service"
	"github.com/alexanderramin/focusboard/internal/stats"
	"github.com/alexanderramin/focusboard/internal/timer"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Config file: env var or default ~/.focusboard/config.yaml
	configPath := os.Getenv(config.EnvPrefix + "_CONFIG")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, closer, err := cfg.OpenLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	kv := repository.NewSQLiteKV(database)
	uow := db.NewSQLiteUnitOfWork(database)
	boardRepo := repository.NewKVBoardRepo(kv)
	statsRepo := repository.NewKVStatsRepo(kv, uow)
	settingsRepo := repository.NewKVSettingsRepo(kv)

	// Saved settings win over the config file.
	settings, err := settingsRepo.LoadSettings(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		settings = cfg.Timer.Settings()
	case err != nil:
		logger.Warn("ignoring stored timer settings", "error", err)
		settings = cfg.Timer.Settings()
	}

	engine := timer.NewEngine(settings,
		timer.WithSound(timer.NewSound(cfg.Sound, os.Stdout)),
		timer.WithNotifier(timer.NewNotifier(cfg.Notifications)),
		timer.WithLogger(logger),
	)

	boardSvc, err := board.NewService(ctx, boardRepo,
		board.WithUseCaseObserver(service.NewLogUseCaseObserver(logger)),
		board.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	app := &cli.App{
		Board:      boardSvc,
		Timer:      engine,
		Stats:      stats.NewAggregator(statsRepo, logger),
		Settings:   settingsRepo,
		Transfer:   repository.NewTransfer(kv, uow),
		Config:     cfg,
		ConfigPath: configPath,
		Logger:     logger,
	}

	// Wire the stats recorder only when recording is on.
	if cfg.RecordStats {
		rec := rollup.NewRecorder(statsRepo, rollup.WithLogger(logger))
		if err := rec.Compact(ctx); err != nil {
			logger.Warn("stats compaction failed", "error", err)
		}
		engine.AddObserver(rec)
		boardSvc.AddObserver(rec)
		app.Recorder = rec
	}

	// Detect interactive terminal for the bare command.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}
