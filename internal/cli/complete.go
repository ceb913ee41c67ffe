package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	completeRating float64
	completeDays   float64
)

var completeCmd = &cobra.Command{
	Use:   "complete <ticket-id>",
	Short: "Complete a ticket's open assignment",
	Long: `Close the ticket's open assignment and feed the outcome back into
the developer's profile: success rate, average completion time, and
performance score are smoothed toward the new result, and the workload slot
is freed.

Examples:
  ticketwise complete PROJ-42 --rating 4 --days 2.5`,
	Args: cobra.ExactArgs(1),
	RunE: runComplete,
}

func init() {
	completeCmd.Flags().Float64VarP(&completeRating, "rating", "r", 0, "success rating 1-5 (required)")
	completeCmd.Flags().Float64VarP(&completeDays, "days", "", 0, "actual completion time in days (required)")
	completeCmd.MarkFlagRequired("rating")
	completeCmd.MarkFlagRequired("days")
}

func runComplete(cmd *cobra.Command, args []string) error {
	routingSvc, _, _, err := getServices()
	if err != nil {
		return err
	}

	dev, err := routingSvc.Complete(context.Background(), args[0], completeRating, completeDays)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(map[string]any{"developer": dev})
	}

	fmt.Printf("Completed %s (developer %s)\n", args[0], dev.DeveloperID)
	fmt.Printf("  Success rate:    %.1f%%\n", dev.SuccessRate)
	fmt.Printf("  Avg completion:  %.1f days\n", dev.AvgCompletionTime)
	fmt.Printf("  Performance:     %.1f/10\n", dev.PerformanceScore)
	fmt.Printf("  Workload:        %d/%d\n", dev.CurrentWorkload, dev.MaxCapacity)
	return nil
}
