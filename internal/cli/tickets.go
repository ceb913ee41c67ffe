package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jharward/ticketwise/internal/models"
)

var ticketsLimit int

var ticketsCmd = &cobra.Command{
	Use:   "tickets",
	Short: "Manage stored tickets",
}

var ticketsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored tickets, most recently updated first",
	Args:  cobra.NoArgs,
	RunE:  runTicketsList,
}

var ticketsSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search tickets by title and description",
	Args:  cobra.ExactArgs(1),
	RunE:  runTicketsSearch,
}

var ticketsDeleteCmd = &cobra.Command{
	Use:   "delete <ticket-id>",
	Short: "Delete a ticket and its assignment history",
	Args:  cobra.ExactArgs(1),
	RunE:  runTicketsDelete,
}

var ticketsClearForce bool

var ticketsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all tickets and assignment history",
	Args:  cobra.NoArgs,
	RunE:  runTicketsClear,
}

var ticketsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show ticket store statistics",
	Args:  cobra.NoArgs,
	RunE:  runTicketsStats,
}

func init() {
	ticketsCmd.PersistentFlags().IntVarP(&ticketsLimit, "limit", "l", 50, "maximum results")

	ticketsClearCmd.Flags().BoolVar(&ticketsClearForce, "force", false, "skip the confirmation prompt")

	ticketsCmd.AddCommand(ticketsListCmd)
	ticketsCmd.AddCommand(ticketsSearchCmd)
	ticketsCmd.AddCommand(ticketsDeleteCmd)
	ticketsCmd.AddCommand(ticketsClearCmd)
	ticketsCmd.AddCommand(ticketsStatsCmd)
}

func runTicketsList(cmd *cobra.Command, args []string) error {
	_, ticketSvc, _, err := getServices()
	if err != nil {
		return err
	}

	tickets, err := ticketSvc.List(context.Background(), ticketsLimit)
	if err != nil {
		return err
	}
	return printTickets(tickets)
}

func runTicketsSearch(cmd *cobra.Command, args []string) error {
	_, ticketSvc, _, err := getServices()
	if err != nil {
		return err
	}

	tickets, err := ticketSvc.Search(context.Background(), args[0], ticketsLimit)
	if err != nil {
		return err
	}
	return printTickets(tickets)
}

func runTicketsDelete(cmd *cobra.Command, args []string) error {
	_, ticketSvc, _, err := getServices()
	if err != nil {
		return err
	}

	deleted, err := ticketSvc.Delete(context.Background(), args[0])
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Printf("Ticket %s not found.\n", args[0])
		return nil
	}
	fmt.Printf("Deleted ticket %s.\n", args[0])
	return nil
}

func runTicketsClear(cmd *cobra.Command, args []string) error {
	_, ticketSvc, _, err := getServices()
	if err != nil {
		return err
	}

	if !ticketsClearForce {
		fmt.Print("Delete ALL tickets and assignment history? [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	count, err := ticketSvc.DeleteAll(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d tickets.\n", count)
	return nil
}

func runTicketsStats(cmd *cobra.Command, args []string) error {
	_, ticketSvc, _, err := getServices()
	if err != nil {
		return err
	}

	stats, err := ticketSvc.Stats(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(stats)
	}

	fmt.Printf("Tickets:          %d\n", stats.TotalTickets)
	fmt.Printf("Assignments:      %d\n", stats.TotalAssignments)
	fmt.Printf("Open assignments: %d\n", stats.OpenAssignments)
	if len(stats.PriorityDistribution) > 0 {
		fmt.Println("By priority:")
		for priority, count := range stats.PriorityDistribution {
			fmt.Printf("  %-10s %d\n", priority, count)
		}
	}
	return nil
}

func printTickets(tickets []models.Ticket) error {
	if jsonOutput {
		return printJSON(map[string]any{"tickets": tickets})
	}
	if len(tickets) == 0 {
		fmt.Println("No tickets found.")
		return nil
	}
	for _, ticket := range tickets {
		priority := ticket.Priority
		if priority == "" {
			priority = "-"
		}
		fmt.Printf("%-12s %-8s %s\n", ticket.TicketID, priority, ticket.Title)
	}
	return nil
}
