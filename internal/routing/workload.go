package routing

import (
	"sort"

	"github.com/jharward/ticketwise/internal/models"
)

// Utilization thresholds partitioning the roster.
const (
	overloadedThreshold    = 0.9
	underutilizedThreshold = 0.3
)

// maxReassignments bounds the suggestion list.
const maxReassignments = 10

// AnalyzeWorkload summarizes workload distribution across the roster. Every
// developer lands in exactly one of the overloaded, underutilized, or
// balanced lists.
func AnalyzeWorkload(roster []models.Developer) models.WorkloadAnalysis {
	analysis := models.WorkloadAnalysis{
		TotalDevelopers:  len(roster),
		CapacityForecast: map[string]int{},
	}
	if len(roster) == 0 {
		return analysis
	}

	byID := make(map[string]models.Developer, len(roster))
	totalWorkload := 0
	for _, dev := range roster {
		byID[dev.DeveloperID] = dev
		analysis.TotalCapacity += dev.MaxCapacity
		totalWorkload += dev.CurrentWorkload

		switch util := dev.Utilization(); {
		case util > overloadedThreshold:
			analysis.OverloadedDevelopers = append(analysis.OverloadedDevelopers, dev.DeveloperID)
		case util < underutilizedThreshold:
			analysis.UnderutilizedDevelopers = append(analysis.UnderutilizedDevelopers, dev.DeveloperID)
		default:
			analysis.BalancedDevelopers = append(analysis.BalancedDevelopers, dev.DeveloperID)
		}

		// Naive forecast: one new ticket per developer, capped at capacity.
		forecast := dev.CurrentWorkload + 1
		if forecast > dev.MaxCapacity {
			forecast = dev.MaxCapacity
		}
		analysis.CapacityForecast[dev.DeveloperID] = forecast
	}

	if analysis.TotalCapacity > 0 {
		analysis.CurrentUtilization = float64(totalWorkload) / float64(analysis.TotalCapacity)
	}

	analysis.RecommendedReassignments = suggestReassignments(
		analysis.OverloadedDevelopers, analysis.UnderutilizedDevelopers, byID)

	return analysis
}

// suggestReassignments pairs overloaded developers with underutilized ones
// greedily: overloaded sorted by excess workload descending, underutilized by
// spare capacity descending, one suggestion per overloaded developer, capped.
func suggestReassignments(overloaded, underutilized []string, byID map[string]models.Developer) []models.ReassignmentSuggestion {
	if len(overloaded) == 0 || len(underutilized) == 0 {
		return nil
	}

	from := append([]string(nil), overloaded...)
	sort.SliceStable(from, func(i, j int) bool {
		return excess(byID[from[i]]) > excess(byID[from[j]])
	})
	to := append([]string(nil), underutilized...)
	sort.SliceStable(to, func(i, j int) bool {
		return spare(byID[to[i]]) > spare(byID[to[j]])
	})

	var suggestions []models.ReassignmentSuggestion
	next := 0
	for _, fromID := range from {
		if byID[fromID].CurrentWorkload <= 1 {
			continue
		}
		if len(suggestions) >= maxReassignments {
			break
		}
		// Targets advance only when a suggestion is emitted, so skipped
		// developers do not burn the best targets.
		target := to[next%len(to)]
		next++
		suggestions = append(suggestions, models.ReassignmentSuggestion{
			From:   fromID,
			To:     target,
			Reason: "Balance workload distribution",
		})
	}
	return suggestions
}

func excess(dev models.Developer) int {
	return dev.CurrentWorkload - dev.MaxCapacity
}

func spare(dev models.Developer) int {
	return dev.MaxCapacity - dev.CurrentWorkload
}
