package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Show the team roster with workload and skills",
	Args:  cobra.NoArgs,
	RunE:  runTeam,
}

var workloadCmd = &cobra.Command{
	Use:   "workload",
	Short: "Analyze workload distribution across the team",
	Long: `Partition the roster into overloaded, balanced, and underutilized
developers, and suggest reassignments from overloaded developers to ones with
spare capacity.`,
	Args: cobra.NoArgs,
	RunE: runWorkload,
}

func runTeam(cmd *cobra.Command, args []string) error {
	routingSvc, _, _, err := getServices()
	if err != nil {
		return err
	}

	analysis, roster, err := routingSvc.TeamAnalytics(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(map[string]any{"workload": analysis, "developers": roster})
	}

	if len(roster) == 0 {
		fmt.Println("No developers registered. Add one with 'ticketwise developer add'.")
		return nil
	}

	fmt.Printf("Team (%d developers, utilization %.0f%%)\n\n", analysis.TotalDevelopers, analysis.CurrentUtilization*100)
	for _, dev := range roster {
		fmt.Printf("%s (%s)\n", dev.Name, dev.DeveloperID)
		fmt.Printf("  Availability: %s\n", dev.Availability)
		fmt.Printf("  Workload:     %d/%d\n", dev.CurrentWorkload, dev.MaxCapacity)
		fmt.Printf("  Performance:  %.1f/10, success %.0f%%, avg %.1f days\n",
			dev.PerformanceScore, dev.SuccessRate, dev.AvgCompletionTime)

		if top := dev.TopSkills(5); len(top) > 0 {
			skills := make([]string, 0, len(top))
			for _, skill := range top {
				skills = append(skills, fmt.Sprintf("%s %.0f", skill.Name, skill.Proficiency))
			}
			fmt.Printf("  Skills:       %s\n", strings.Join(skills, ", "))
		}
		if len(dev.Specializations) > 0 {
			fmt.Printf("  Focus:        %s\n", strings.Join(dev.Specializations, ", "))
		}
		fmt.Println()
	}
	return nil
}

func runWorkload(cmd *cobra.Command, args []string) error {
	routingSvc, _, _, err := getServices()
	if err != nil {
		return err
	}

	analysis, _, err := routingSvc.TeamAnalytics(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(analysis)
	}

	fmt.Printf("Workload analysis (%d developers, capacity %d)\n", analysis.TotalDevelopers, analysis.TotalCapacity)
	fmt.Printf("  Utilization: %.0f%%\n", analysis.CurrentUtilization*100)

	printSection("Overloaded", analysis.OverloadedDevelopers)
	printSection("Balanced", analysis.BalancedDevelopers)
	printSection("Underutilized", analysis.UnderutilizedDevelopers)

	if len(analysis.RecommendedReassignments) > 0 {
		fmt.Println("\nSuggested reassignments:")
		for _, suggestion := range analysis.RecommendedReassignments {
			fmt.Printf("  - %s -> %s (%s)\n", suggestion.From, suggestion.To, suggestion.Reason)
		}
	}
	if len(analysis.CapacityForecast) > 0 {
		fmt.Println("\nRemaining capacity:")
		for dev, slots := range analysis.CapacityForecast {
			fmt.Printf("  %s: %d\n", dev, slots)
		}
	}
	return nil
}
