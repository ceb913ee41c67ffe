package analyzer

import (
	"testing"

	"github.com/jharward/ticketwise/internal/models"
)

func TestAnalyzeContentFlags(t *testing.T) {
	ticket := models.Ticket{
		TicketID:    "TW-1",
		Title:       "Mobile dashboard performance",
		Description: "Optimize API integration and error handling on iOS. Covers the user flow for the new screen.",
		Priority:    models.PriorityHigh,
		FigmaLinks:  []string{"https://www.figma.com/file/abc"},
	}

	flags := analyzeContent(ticket)

	if !flags.Mobile {
		t.Error("Mobile flag not set")
	}
	if !flags.Performance {
		t.Error("Performance flag not set")
	}
	if !flags.Integration {
		t.Error("Integration flag not set")
	}
	if !flags.ErrorHandling {
		t.Error("ErrorHandling flag not set")
	}
	if !flags.UserFlow {
		t.Error("UserFlow flag not set")
	}
	if flags.Security || flags.Accessibility || flags.Internationalization {
		t.Errorf("unexpected flags set: %+v", flags)
	}
	if flags.FigmaCount != 1 {
		t.Errorf("FigmaCount = %d, want 1", flags.FigmaCount)
	}
	if flags.Priority != models.PriorityHigh {
		t.Errorf("Priority = %q, want high", flags.Priority)
	}
}

func TestAnalyzeContentEmptyTicket(t *testing.T) {
	flags := analyzeContent(models.Ticket{TicketID: "TW-2"})
	if flags.Mobile || flags.Performance || flags.Data || flags.UserFlow {
		t.Errorf("empty ticket set flags: %+v", flags)
	}
}
