package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jharward/ticketwise/internal/models"
)

var (
	devName            string
	devEmail           string
	devSkills          string
	devSpecializations []string
	devCapacity        int
	devAvailability    string
	devTimezone        string
	devPreferredTypes  []string
)

var developerCmd = &cobra.Command{
	Use:   "developer",
	Short: "Manage developer profiles",
}

var developerAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add or update a developer profile",
	Long: `Add a developer to the roster, or update an existing profile.

Skills are given as name=proficiency pairs with proficiency 0-10.

Examples:
  ticketwise developer add alice --name "Alice Ng" --skills "python=9,react=6"
  ticketwise developer add bob --name Bob --skills "go=8" --capacity 3 --availability busy`,
	Args: cobra.ExactArgs(1),
	RunE: runDeveloperAdd,
}

var developerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List developer profiles",
	Args:  cobra.NoArgs,
	RunE:  runDeveloperList,
}

func init() {
	developerAddCmd.Flags().StringVarP(&devName, "name", "n", "", "display name")
	developerAddCmd.Flags().StringVar(&devEmail, "email", "", "email address")
	developerAddCmd.Flags().StringVarP(&devSkills, "skills", "s", "", "skills as name=proficiency pairs")
	developerAddCmd.Flags().StringSliceVar(&devSpecializations, "specializations", nil, "specialization areas")
	developerAddCmd.Flags().IntVarP(&devCapacity, "capacity", "c", 5, "max concurrent tickets")
	developerAddCmd.Flags().StringVarP(&devAvailability, "availability", "a", models.Available, "availability (available, busy, unavailable)")
	developerAddCmd.Flags().StringVar(&devTimezone, "timezone", "", "timezone")
	developerAddCmd.Flags().StringSliceVar(&devPreferredTypes, "preferred-types", nil, "preferred ticket types")

	developerCmd.AddCommand(developerAddCmd)
	developerCmd.AddCommand(developerListCmd)
}

func runDeveloperAdd(cmd *cobra.Command, args []string) error {
	routingSvc, _, _, err := getServices()
	if err != nil {
		return err
	}

	skills, err := parseSkills(devSkills)
	if err != nil {
		return err
	}

	name := devName
	if name == "" {
		name = args[0]
	}

	dev := models.Developer{
		DeveloperID:          args[0],
		Name:                 name,
		Email:                devEmail,
		Skills:               skills,
		Specializations:      devSpecializations,
		MaxCapacity:          devCapacity,
		Availability:         strings.ToLower(devAvailability),
		Timezone:             devTimezone,
		PreferredTicketTypes: devPreferredTypes,
	}

	stored, wasCreated, err := routingSvc.AddDeveloper(context.Background(), dev)
	if err != nil {
		return err
	}

	action := "Updated"
	if wasCreated {
		action = "Created"
	}
	fmt.Printf("%s developer: %s (%s)\n", action, stored.Name, stored.DeveloperID)
	if verbose {
		fmt.Printf("  Skills:       %v\n", stored.Skills)
		fmt.Printf("  Capacity:     %d\n", stored.MaxCapacity)
		fmt.Printf("  Availability: %s\n", stored.Availability)
	}
	return nil
}

func runDeveloperList(cmd *cobra.Command, args []string) error {
	routingSvc, _, _, err := getServices()
	if err != nil {
		return err
	}

	roster, err := routingSvc.ListDevelopers(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(map[string]any{"developers": roster})
	}

	if len(roster) == 0 {
		fmt.Println("No developers registered.")
		return nil
	}
	for _, dev := range roster {
		fmt.Printf("%-15s %-20s %s  %d/%d\n",
			dev.DeveloperID, dev.Name, dev.Availability, dev.CurrentWorkload, dev.MaxCapacity)
	}
	return nil
}
