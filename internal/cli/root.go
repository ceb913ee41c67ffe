// Package cli provides the command-line interface for ticketwise.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jharward/ticketwise/internal/analyzer"
	"github.com/jharward/ticketwise/internal/config"
	"github.com/jharward/ticketwise/internal/db"
	"github.com/jharward/ticketwise/internal/llm"
	"github.com/jharward/ticketwise/internal/metrics"
	"github.com/jharward/ticketwise/internal/service"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose    bool
	jsonOutput bool

	// Global config, logging, and db client
	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error
	dbClient   *db.Client
	collector  *metrics.Collector

	// Lazy-initialized LLM model
	model *llm.Model
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ticketwise",
	Short: "Jira ticket analyzer and smart developer routing",
	Long: `Ticketwise analyzes Jira-style tickets and routes them to the right
developer.

It extracts structured requirements (skills, complexity, effort) from ticket
content, generates clarifying questions and risk areas (LLM-backed when a
model is configured, keyword heuristics otherwise), and recommends the best
developer based on skill match, availability, performance, and workload.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip DB connection for commands that never touch it; watch talks
		// to a running server instead.
		if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "watch" {
			return nil
		}

		// Load config and set up logging
		cfg = config.Load()
		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, logCleanup = config.SetupLogger(cfg.LogFile, level)
		slog.SetDefault(logger)

		// Connect to database
		ctx := context.Background()
		dbCfg := db.Config{
			URL:       cfg.SurrealDBURL,
			Namespace: cfg.SurrealDBNamespace,
			Database:  cfg.SurrealDBDatabase,
			Username:  cfg.SurrealDBUser,
			Password:  cfg.SurrealDBPass,
			AuthLevel: cfg.SurrealDBAuthLevel,
		}

		var err error
		dbClient, err = db.NewClient(ctx, dbCfg, logger)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}

		// Initialize schema
		if err := dbClient.InitSchema(ctx); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}

		collector = metrics.NewCollector()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		// Close database connection
		if dbClient != nil {
			if err := dbClient.Close(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
			}
		}
		if logCleanup != nil {
			if err := logCleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// getServices creates the routing, ticket, and analysis services. The LLM
// model is only initialized when a provider is configured; without one the
// analyzer runs on heuristics.
func getServices() (*service.RoutingService, *service.TicketService, *service.AnalysisService, error) {
	vocab, err := cfg.Vocabulary()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load vocabulary: %w", err)
	}

	var a *analyzer.Analyzer
	if cfg.LLMProvider != config.ProviderNone {
		if model == nil {
			model, err = llm.NewModel(cfg)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("init model: %w", err)
			}
		}
		a = analyzer.New(llm.Instrument(model, collector), logger)
	} else {
		a = analyzer.New(nil, logger)
	}

	routingSvc := service.NewRoutingService(dbClient, vocab, collector, logger)
	ticketSvc := service.NewTicketService(dbClient, logger)
	analysisSvc := service.NewAnalysisService(a, routingSvc, ticketSvc, collector, logger)
	return routingSvc, ticketSvc, analysisSvc, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON instead of text")

	// Add subcommands
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(assignCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(workloadCmd)
	rootCmd.AddCommand(developerCmd)
	rootCmd.AddCommand(ticketsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

// exitWithError prints an error message and exits with code 1.
func exitWithError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
