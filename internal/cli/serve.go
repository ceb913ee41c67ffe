package cli

import (
	"context"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jharward/ticketwise/internal/server"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API, Jira webhook, and websocket event stream.

The port defaults to TICKETWISE_SERVER_PORT. The server shuts down
gracefully on SIGINT/SIGTERM.

Examples:
  ticketwise serve
  ticketwise serve --port 9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default all interfaces)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	routingSvc, ticketSvc, analysisSvc, err := getServices()
	if err != nil {
		return err
	}

	port := servePort
	if port == 0 {
		port, err = strconv.Atoi(cfg.ServerPort)
		if err != nil {
			exitWithError("invalid server port %q", cfg.ServerPort)
		}
	}

	srv := server.New(
		server.Config{Host: serveHost, Port: port, Debug: verbose},
		routingSvc, ticketSvc, analysisSvc,
		collector, Version, logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
