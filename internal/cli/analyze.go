package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jharward/ticketwise/internal/models"
	"github.com/jharward/ticketwise/internal/service"
)

var (
	analyzeID          string
	analyzeTitle       string
	analyzeDescription string
	analyzePriority    string
	analyzeStore       bool
	analyzeNoRecommend bool
	analyzeBatch       string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [ticket.json]",
	Short: "Analyze a ticket and generate a report",
	Long: `Analyze a ticket: extract the structured requirement, generate
clarifying questions, risks, and test cases, and recommend a developer.

The ticket can come from a JSON file (plain ticket or raw Jira issue export)
or from flags. With --batch, every .json file in a directory is analyzed and
a .report.json is written next to each input.

Examples:
  ticketwise analyze ticket.json
  ticketwise analyze --id PROJ-1 --title "Add search" --description "..."
  ticketwise analyze ticket.json --store --json
  ticketwise analyze --batch ./tickets`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeID, "id", "", "ticket id")
	analyzeCmd.Flags().StringVar(&analyzeTitle, "title", "", "ticket title")
	analyzeCmd.Flags().StringVar(&analyzeDescription, "description", "", "ticket description")
	analyzeCmd.Flags().StringVar(&analyzePriority, "priority", "", "ticket priority (low, medium, high, critical)")
	analyzeCmd.Flags().BoolVar(&analyzeStore, "store", false, "store the ticket before analyzing")
	analyzeCmd.Flags().BoolVar(&analyzeNoRecommend, "no-recommend", false, "skip the developer recommendation")
	analyzeCmd.Flags().StringVar(&analyzeBatch, "batch", "", "analyze every .json file in a directory")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	_, _, analysisSvc, err := getServices()
	if err != nil {
		return err
	}

	if analyzeBatch != "" {
		return runBatchAnalyze(analysisSvc)
	}

	ticket, err := analyzeInput(args)
	if err != nil {
		return err
	}

	opts := service.AnalyzeOptions{Recommend: !analyzeNoRecommend, Store: analyzeStore}
	report, err := analysisSvc.Analyze(context.Background(), ticket, opts)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(report)
	}
	printReport(report)
	return nil
}

// analyzeInput builds the ticket from a file argument or from flags.
func analyzeInput(args []string) (models.Ticket, error) {
	if len(args) == 1 {
		return loadTicketFile(args[0])
	}
	if analyzeID == "" || analyzeTitle == "" {
		return models.Ticket{}, fmt.Errorf("provide a ticket file or --id and --title")
	}
	return models.Ticket{
		TicketID:    analyzeID,
		Title:       analyzeTitle,
		Description: analyzeDescription,
		Priority:    strings.ToLower(analyzePriority),
	}, nil
}

// runBatchAnalyze analyzes every .json file in the batch directory, writing
// a .report.json next to each input, with a progress UI.
func runBatchAnalyze(analysisSvc *service.AnalysisService) error {
	entries, err := os.ReadDir(analyzeBatch)
	if err != nil {
		return fmt.Errorf("read batch directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".report.json") {
			continue
		}
		files = append(files, filepath.Join(analyzeBatch, name))
	}
	if len(files) == 0 {
		fmt.Println("No ticket files to analyze.")
		return nil
	}

	opts := service.AnalyzeOptions{Recommend: !analyzeNoRecommend, Store: analyzeStore}
	results := make(chan batchResult)
	go func() {
		defer close(results)
		for _, file := range files {
			results <- analyzeFile(analysisSvc, file, opts)
		}
	}()

	failures, err := RunBatchProgress(len(files), results)
	if err != nil {
		return err
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d of %d tickets failed", len(failures), len(files))
	}
	return nil
}

func analyzeFile(analysisSvc *service.AnalysisService, file string, opts service.AnalyzeOptions) batchResult {
	ticket, err := loadTicketFile(file)
	if err != nil {
		return batchResult{file: file, err: err}
	}

	report, err := analysisSvc.Analyze(context.Background(), ticket, opts)
	if err != nil {
		return batchResult{file: file, ticketID: ticket.TicketID, err: err}
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return batchResult{file: file, ticketID: ticket.TicketID, err: err}
	}
	out := strings.TrimSuffix(file, ".json") + ".report.json"
	if err := os.WriteFile(out, data, 0644); err != nil {
		return batchResult{file: file, ticketID: ticket.TicketID, err: err}
	}
	return batchResult{file: file, ticketID: ticket.TicketID}
}

// printReport renders a report as readable text.
func printReport(report *models.Report) {
	fmt.Printf("Ticket %s: %s\n", report.Ticket.TicketID, report.Ticket.Title)
	fmt.Printf("Generated by: %s\n", report.GeneratedBy)

	req := report.Requirement
	fmt.Printf("\nRequirement:\n")
	fmt.Printf("  Type:       %s\n", req.TicketType)
	fmt.Printf("  Priority:   %s\n", req.Priority)
	fmt.Printf("  Complexity: %d\n", req.ComplexityLevel)
	fmt.Printf("  Effort:     %d points\n", req.EstimatedEffort)
	if len(req.RequiredSkills) > 0 {
		fmt.Printf("  Skills:     %s\n", strings.Join(req.RequiredSkills, ", "))
	}

	printSection("Suggested questions", report.SuggestedQuestions)
	printSection("Clarifications needed", report.ClarificationsNeeded)
	printSection("Design questions", report.DesignQuestions)
	printSection("Business questions", report.BusinessQuestions)
	printSection("Technical considerations", report.TechnicalConsiderations)
	printSection("Risk areas", report.RiskAreas)
	printSection("Test cases", report.TestCases)

	if report.Recommendation != nil {
		fmt.Println()
		printRecommendation(report.Recommendation)
	}
}
