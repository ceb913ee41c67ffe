package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <ticket.json>",
	Short: "Recommend the best developer for a ticket",
	Long: `Score every developer against the ticket's extracted requirement and
print the best match with alternates, reasoning, and risk factors.

Examples:
  ticketwise recommend ticket.json
  ticketwise recommend ticket.json --json`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func runRecommend(cmd *cobra.Command, args []string) error {
	routingSvc, _, _, err := getServices()
	if err != nil {
		return err
	}

	ticket, err := loadTicketFile(args[0])
	if err != nil {
		return err
	}

	rec, req, err := routingSvc.Recommend(context.Background(), ticket)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(map[string]any{"recommendation": rec, "requirement": req})
	}
	printRecommendation(rec)
	return nil
}
