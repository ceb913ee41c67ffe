package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jharward/ticketwise/internal/client"
	"github.com/jharward/ticketwise/internal/server"
)

var watchServerURL string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream assignment and analysis events from a running server",
	Long: `Connect to a running ticketwise server and print its event stream:
webhook deliveries, analyses, assignments, and completions.

The server URL defaults to TICKETWISE_SERVER_URL or localhost:8585.

Examples:
  ticketwise watch
  ticketwise watch --server http://ticketwise.internal:8585`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchServerURL, "server", "", "server base URL")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := client.New(watchServerURL)
	fmt.Println("Watching events (Ctrl+C to stop)...")

	return c.WatchEvents(ctx, func(event server.Event) {
		line := fmt.Sprintf("%s  %-16s %s", event.At.Format("15:04:05"), event.Type, event.TicketID)
		if event.DeveloperID != "" {
			line += " -> " + event.DeveloperID
		}
		if event.Detail != "" {
			line += fmt.Sprintf(" (%s)", event.Detail)
		}
		fmt.Println(line)
	})
}
