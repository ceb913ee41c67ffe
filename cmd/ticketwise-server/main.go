// Package main provides the standalone HTTP server for Ticketwise.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jharward/ticketwise/internal/analyzer"
	"github.com/jharward/ticketwise/internal/config"
	"github.com/jharward/ticketwise/internal/db"
	"github.com/jharward/ticketwise/internal/llm"
	"github.com/jharward/ticketwise/internal/metrics"
	"github.com/jharward/ticketwise/internal/server"
	"github.com/jharward/ticketwise/internal/service"
)

// Version is set at build time.
var Version = "0.1.0"

func main() {
	wipeDB := flag.Bool("wipe", false, "wipe all data from database on startup (testing only)")
	port := flag.Int("port", 0, "listen port (default from TICKETWISE_SERVER_PORT)")
	flag.Parse()

	cfg := config.Load()
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()
	slog.SetDefault(logger)

	listenPort := *port
	if listenPort == 0 {
		var err error
		listenPort, err = strconv.Atoi(cfg.ServerPort)
		if err != nil {
			logger.Error("invalid server port", "port", cfg.ServerPort)
			os.Exit(1)
		}
	}

	logger.Info("starting ticketwise-server", "port", listenPort, "version", Version)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	dbClient, err := db.NewClient(ctx, db.Config{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
		AuthLevel: cfg.SurrealDBAuthLevel,
	}, logger)
	if err != nil {
		cancel()
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := dbClient.InitSchema(ctx); err != nil {
		cancel()
		logger.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}
	if *wipeDB || os.Getenv("TICKETWISE_WIPE_DB") == "true" {
		if err := dbClient.WipeData(ctx); err != nil {
			cancel()
			logger.Error("failed to wipe database", "error", err)
			os.Exit(1)
		}
		logger.Warn("wiped all data")
	}
	cancel()
	defer func() {
		if err := dbClient.Close(context.Background()); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	vocab, err := cfg.Vocabulary()
	if err != nil {
		logger.Error("failed to load vocabulary", "error", err)
		os.Exit(1)
	}

	collector := metrics.NewCollector()

	var a *analyzer.Analyzer
	if cfg.LLMProvider != config.ProviderNone {
		model, err := llm.NewModel(cfg)
		if err != nil {
			logger.Error("failed to create LLM model", "error", err)
			os.Exit(1)
		}
		a = analyzer.New(llm.Instrument(model, collector), logger)
		logger.Info("LLM generation enabled", "provider", cfg.LLMProvider, "model", model.Model())
	} else {
		a = analyzer.New(nil, logger)
		logger.Info("no LLM provider configured, using heuristics")
	}
	routingSvc := service.NewRoutingService(dbClient, vocab, collector, logger)
	ticketSvc := service.NewTicketService(dbClient, logger)
	analysisSvc := service.NewAnalysisService(a, routingSvc, ticketSvc, collector, logger)

	srv := server.New(
		server.Config{Port: listenPort, Debug: cfg.LogLevel == slog.LevelDebug},
		routingSvc, ticketSvc, analysisSvc,
		collector, Version, logger,
	)

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(runCtx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
