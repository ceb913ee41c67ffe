package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var assignDeveloper string

var assignCmd = &cobra.Command{
	Use:   "assign <ticket.json>",
	Short: "Assign a ticket to a developer",
	Long: `Assign a ticket. Without --developer the recommendation winner is
used; with --developer the choice is overridden.

Recording an assignment bumps the developer's current workload by one.

Examples:
  ticketwise assign ticket.json
  ticketwise assign ticket.json --developer alice`,
	Args: cobra.ExactArgs(1),
	RunE: runAssign,
}

func init() {
	assignCmd.Flags().StringVarP(&assignDeveloper, "developer", "d", "", "developer id (overrides the recommendation)")
}

func runAssign(cmd *cobra.Command, args []string) error {
	routingSvc, _, _, err := getServices()
	if err != nil {
		return err
	}

	ticket, err := loadTicketFile(args[0])
	if err != nil {
		return err
	}

	assignment, rec, err := routingSvc.Assign(context.Background(), ticket, assignDeveloper)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(map[string]any{"assignment": assignment, "recommendation": rec})
	}

	fmt.Printf("Assigned %s to %s (assignment %s)\n", assignment.TicketID, assignment.DeveloperID, assignment.AssignmentID)
	fmt.Printf("  Skill match:     %.2f\n", assignment.SkillMatchScore)
	fmt.Printf("  Workload impact: %s\n", assignment.WorkloadImpact)
	if assignDeveloper == "" && rec != nil && len(rec.Reasoning) > 0 {
		fmt.Println("  Reasoning:")
		for _, reason := range rec.Reasoning {
			fmt.Printf("    - %s\n", reason)
		}
	}
	return nil
}
