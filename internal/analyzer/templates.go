package analyzer

import (
	"fmt"
	"strings"

	"github.com/jharward/ticketwise/internal/models"
)

// Heuristic generators. These run when no LLM is configured or the model call
// fails, so they only depend on the ticket text and the content flags.

var designTemplates = []string{
	"What is the target screen size/resolution for this design?",
	"Are there any accessibility requirements we need to consider?",
	"What is the expected user flow for this feature?",
	"Are there any specific animations or transitions required?",
	"What should happen in error states or edge cases?",
	"Are there any brand guidelines or design system constraints?",
	"What is the mobile/tablet experience requirements?",
	"Are there any internationalization (i18n) requirements?",
}

var technicalTemplates = []string{
	"What is the expected performance requirements?",
	"Are there any browser compatibility requirements?",
	"What is the expected load time for this feature?",
	"Are there any security considerations we should be aware of?",
	"What is the expected user load/scale requirements?",
	"Are there any third-party integrations required?",
	"What is the deployment environment (staging, production)?",
	"Are there any API rate limiting considerations?",
}

var businessTemplates = []string{
	"What is the business value/ROI expected from this feature?",
	"Who are the primary users of this feature?",
	"What is the success metric for this feature?",
	"Are there any compliance or legal requirements?",
	"What is the timeline and priority for this feature?",
	"Are there any dependencies on other teams or systems?",
	"What is the expected maintenance and support level?",
	"Are there any budget constraints we should be aware of?",
}

func generalQuestions(ticket models.Ticket, flags contentFlags) []string {
	var questions []string
	text := strings.ToLower(ticket.Title + " " + ticket.Description)

	if strings.Contains(text, "search") || strings.Contains(text, "filter") {
		questions = append(questions,
			"What search criteria should be available to users?",
			"How should search results be ranked and displayed?",
			"How should the system handle empty search results?",
		)
	}
	if strings.Contains(text, "login") || strings.Contains(text, "signup") || strings.Contains(text, "authentication") {
		questions = append(questions,
			"What authentication methods should be supported?",
			"How should the system handle failed login attempts?",
			"What two-factor authentication options should be available?",
		)
	}
	if strings.Contains(text, "payment") || strings.Contains(text, "billing") || strings.Contains(text, "subscription") {
		questions = append(questions,
			"What happens if payment processing fails?",
			"How should the system handle refunds or cancellations?",
			"What compliance requirements apply to financial transactions?",
		)
	}
	if strings.Contains(text, "notification") || strings.Contains(text, "email") || strings.Contains(text, "push") {
		questions = append(questions,
			"What are the user preferences for notification frequency?",
			"How should the system handle notification failures?",
		)
	}

	if flags.FigmaCount > 0 {
		questions = append(questions, "Does the Figma design show all necessary states (default, editing, loading, error)?")
		if flags.FigmaCount > 1 {
			questions = append(questions, "How do these multiple Figma designs relate to each other in the user flow?")
		}
	}
	if highPriority(flags.Priority) {
		questions = append(questions, "What user pain point or business goal makes this feature high priority?")
	}
	if !flags.UserFlow {
		questions = append(questions, "What is the complete user journey for this feature?")
	}
	if !flags.ErrorHandling {
		questions = append(questions, "How should the system handle network failures during this flow?")
	}

	return questions
}

func clarifications(ticket models.Ticket, flags contentFlags) []string {
	var out []string

	if len(strings.TrimSpace(ticket.Description)) < 50 {
		out = append(out, "The ticket description is quite brief. More details about requirements would be helpful.")
	}
	if !flags.Performance && !strings.Contains(strings.ToLower(ticket.Title), "performance") {
		out = append(out, "Performance requirements are not specified.")
	}
	if !flags.Accessibility {
		out = append(out, "Accessibility requirements are not mentioned.")
	}
	lower := strings.ToLower(ticket.Description)
	if !strings.Contains(lower, "user") && !strings.Contains(lower, "customer") &&
		!strings.Contains(lower, "business") && !strings.Contains(lower, "goal") {
		out = append(out, "Business context and user value are not clearly stated.")
	}

	return out
}

func technicalConsiderations(flags contentFlags) []string {
	var out []string

	if flags.Mobile {
		out = append(out, "Mobile responsiveness and touch interactions")
	}
	if flags.Integration {
		out = append(out, "API integration and data flow")
	}
	if flags.Security {
		out = append(out, "Security implementation and data protection")
	}
	if flags.Data {
		out = append(out, "Data storage and caching strategy")
	}
	if flags.Internationalization {
		out = append(out, "Internationalization and localization setup")
	}
	if flags.Animation {
		out = append(out, "Animation performance and rendering budget")
	}

	return out
}

func designQuestions(flags contentFlags) []string {
	questions := append([]string(nil), designTemplates...)
	if flags.Mobile {
		questions = append(questions, "How should touch interactions work on mobile devices?")
	}
	return questions
}

func businessQuestions(flags contentFlags) []string {
	questions := append([]string(nil), businessTemplates...)
	if highPriority(flags.Priority) {
		questions = append(questions, "What specific business impact makes this feature high priority?")
	}
	return questions
}

func riskAreas(flags contentFlags) []string {
	var risks []string

	if flags.FigmaCount == 0 {
		risks = append(risks, "No design reference provided - may lead to misinterpretation")
	}
	if flags.FigmaCount > 3 {
		risks = append(risks, "Multiple design files may indicate scope creep")
	}
	if !flags.UserFlow {
		risks = append(risks, "Missing user flow may lead to poor UX")
	}
	if highPriority(flags.Priority) && !flags.Performance {
		risks = append(risks, "High priority feature without performance requirements")
	}

	return risks
}

func testCases(ticket models.Ticket, flags contentFlags) []string {
	cases := []string{
		"Verify the main feature works as described in acceptance criteria",
		"Verify user can complete the primary user journey successfully",
		"Verify feature respects user permissions and access controls",
		"Verify system handles network failures gracefully",
		"Verify system shows appropriate error messages and allows retry",
		"Verify data is correctly saved and retrieved",
		"Verify data is consistent across different views",
	}

	if flags.Performance || highPriority(flags.Priority) {
		cases = append(cases,
			"Verify feature responds within acceptable time limits",
			"Verify feature handles expected user load without degradation",
		)
	}
	if flags.Accessibility {
		cases = append(cases,
			"Verify feature is accessible via keyboard navigation",
			"Verify feature works with screen readers",
		)
	}
	if flags.Mobile {
		cases = append(cases,
			"Verify feature works correctly on iOS and Android devices",
			"Verify touch interactions work properly on small screens",
		)
	}
	if flags.Security {
		cases = append(cases,
			"Verify sensitive data is not logged or exposed",
			"Verify authorization checks are enforced on every entry point",
		)
	}
	if flags.Integration {
		cases = append(cases,
			"Verify external API failures are handled gracefully",
			"Verify retry and timeout behavior for third-party calls",
		)
	}
	if flags.Internationalization {
		cases = append(cases, "Verify translated content renders correctly in all supported locales")
	}
	for _, link := range ticket.FigmaLinks {
		cases = append(cases, fmt.Sprintf("Verify implementation matches the design at %s", link))
	}

	return cases
}
