package routing

import (
	"testing"

	"github.com/jharward/ticketwise/internal/models"
)

func mkDev(id string, workload, capacity int) models.Developer {
	return models.Developer{
		DeveloperID:     id,
		CurrentWorkload: workload,
		MaxCapacity:     capacity,
		Availability:    models.Available,
	}
}

func TestAnalyzeWorkloadEmptyRoster(t *testing.T) {
	analysis := AnalyzeWorkload(nil)
	if analysis.TotalDevelopers != 0 || analysis.TotalCapacity != 0 || analysis.CurrentUtilization != 0 {
		t.Errorf("empty roster analysis = %+v, want zeros", analysis)
	}
}

func TestAnalyzeWorkloadPartition(t *testing.T) {
	roster := []models.Developer{
		mkDev("over", 5, 5),     // 1.0 > 0.9
		mkDev("under", 1, 5),    // 0.2 < 0.3
		mkDev("balanced", 3, 5), // 0.6
		mkDev("idle", 0, 4),     // 0.0
	}
	analysis := AnalyzeWorkload(roster)

	// Every developer appears in exactly one list.
	seen := map[string]int{}
	for _, id := range analysis.OverloadedDevelopers {
		seen[id]++
	}
	for _, id := range analysis.UnderutilizedDevelopers {
		seen[id]++
	}
	for _, id := range analysis.BalancedDevelopers {
		seen[id]++
	}
	for _, dev := range roster {
		if seen[dev.DeveloperID] != 1 {
			t.Errorf("developer %q appears %d times across partitions, want 1", dev.DeveloperID, seen[dev.DeveloperID])
		}
	}

	if len(analysis.OverloadedDevelopers) != 1 || analysis.OverloadedDevelopers[0] != "over" {
		t.Errorf("overloaded = %v, want [over]", analysis.OverloadedDevelopers)
	}
	if len(analysis.UnderutilizedDevelopers) != 2 {
		t.Errorf("underutilized = %v, want [under idle]", analysis.UnderutilizedDevelopers)
	}
	if analysis.TotalCapacity != 19 {
		t.Errorf("total capacity = %d, want 19", analysis.TotalCapacity)
	}
	wantUtil := float64(5+1+3+0) / 19.0
	if analysis.CurrentUtilization != wantUtil {
		t.Errorf("utilization = %v, want %v", analysis.CurrentUtilization, wantUtil)
	}
}

func TestAnalyzeWorkloadAllAtCapacity(t *testing.T) {
	roster := []models.Developer{
		mkDev("a", 4, 4),
		mkDev("b", 5, 5),
		mkDev("c", 2, 2),
	}
	analysis := AnalyzeWorkload(roster)

	if len(analysis.OverloadedDevelopers) != len(roster) {
		t.Errorf("overloaded = %v, want all developers", analysis.OverloadedDevelopers)
	}
	if len(analysis.UnderutilizedDevelopers) != 0 {
		t.Errorf("underutilized = %v, want empty", analysis.UnderutilizedDevelopers)
	}
	// Everyone is overloaded, so there is no target to move work to.
	if len(analysis.RecommendedReassignments) != 0 {
		t.Errorf("reassignments = %v, want none", analysis.RecommendedReassignments)
	}
}

func TestReassignmentSuggestions(t *testing.T) {
	roster := []models.Developer{
		mkDev("over1", 6, 5), // excess 1
		mkDev("over2", 8, 5), // excess 3, sorted first
		mkDev("under1", 0, 6),
		mkDev("under2", 1, 4),
	}
	analysis := AnalyzeWorkload(roster)

	if len(analysis.RecommendedReassignments) != 2 {
		t.Fatalf("reassignments = %+v, want 2", analysis.RecommendedReassignments)
	}
	// Highest excess pairs with highest spare capacity first.
	first := analysis.RecommendedReassignments[0]
	if first.From != "over2" || first.To != "under1" {
		t.Errorf("first suggestion = %+v, want over2 -> under1", first)
	}
	for _, s := range analysis.RecommendedReassignments {
		if s.Reason == "" {
			t.Error("suggestion missing reason")
		}
	}
}

func TestReassignmentSkipsSingleTicketDevelopers(t *testing.T) {
	roster := []models.Developer{
		mkDev("over", 1, 1), // utilization 1.0 but only one ticket
		mkDev("under", 0, 5),
	}
	analysis := AnalyzeWorkload(roster)
	if len(analysis.RecommendedReassignments) != 0 {
		t.Errorf("reassignments = %v, want none for single-ticket developer", analysis.RecommendedReassignments)
	}
}

func TestReassignmentSkipKeepsBestTarget(t *testing.T) {
	roster := []models.Developer{
		mkDev("pinned", 1, 1), // utilization 1.0, skipped: only one ticket
		mkDev("over", 10, 11), // utilization ~0.91
		mkDev("roomy", 1, 12), // spare 11
		mkDev("tight", 1, 5),  // spare 4
	}
	analysis := AnalyzeWorkload(roster)

	if len(analysis.RecommendedReassignments) != 1 {
		t.Fatalf("reassignments = %+v, want 1", analysis.RecommendedReassignments)
	}
	// The skipped single-ticket developer must not consume the best target.
	s := analysis.RecommendedReassignments[0]
	if s.From != "over" || s.To != "roomy" {
		t.Errorf("suggestion = %+v, want over -> roomy", s)
	}
}

func TestReassignmentBounded(t *testing.T) {
	var roster []models.Developer
	for i := 0; i < 30; i++ {
		roster = append(roster, mkDev(string(rune('a'+i)), 6, 5))
	}
	roster = append(roster, mkDev("spare", 0, 10))

	analysis := AnalyzeWorkload(roster)
	if len(analysis.RecommendedReassignments) > 10 {
		t.Errorf("reassignments = %d, want at most 10", len(analysis.RecommendedReassignments))
	}
}

func TestCapacityForecast(t *testing.T) {
	roster := []models.Developer{
		mkDev("room", 2, 5),
		mkDev("full", 5, 5),
	}
	analysis := AnalyzeWorkload(roster)

	if analysis.CapacityForecast["room"] != 3 {
		t.Errorf("forecast[room] = %d, want 3", analysis.CapacityForecast["room"])
	}
	if analysis.CapacityForecast["full"] != 5 {
		t.Errorf("forecast[full] = %d, want 5 (capped at capacity)", analysis.CapacityForecast["full"])
	}
}
