package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// exportLimit caps how many records a dump fetches per table.
const exportLimit = 10000

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export developers, tickets, and assignments to JSON files",
	Long: `Export the full database to JSON files for backup or migration.

Writes developers.json, tickets.json, and assignments.json into the target
directory.

Examples:
  ticketwise export ./backup`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	routingSvc, ticketSvc, _, err := getServices()
	if err != nil {
		return err
	}

	exportPath := args[0]
	if err := os.MkdirAll(exportPath, 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	ctx := context.Background()

	developers, err := routingSvc.ListDevelopers(ctx)
	if err != nil {
		return fmt.Errorf("list developers: %w", err)
	}
	tickets, err := ticketSvc.List(ctx, exportLimit)
	if err != nil {
		return fmt.Errorf("list tickets: %w", err)
	}
	assignments, err := ticketSvc.History(ctx, "", exportLimit)
	if err != nil {
		return fmt.Errorf("list assignments: %w", err)
	}

	files := map[string]any{
		"developers.json":  developers,
		"tickets.json":     tickets,
		"assignments.json": assignments,
	}
	for name, records := range files {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal %s: %w", name, err)
		}
		path := filepath.Join(exportPath, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		if verbose {
			fmt.Printf("  Wrote: %s\n", path)
		}
	}

	fmt.Printf("Exported %d developers, %d tickets, %d assignments to %s\n",
		len(developers), len(tickets), len(assignments), exportPath)
	return nil
}
