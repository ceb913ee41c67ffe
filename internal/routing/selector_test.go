package routing

import (
	"testing"

	"github.com/jharward/ticketwise/internal/models"
)

func TestSelectEmptyRoster(t *testing.T) {
	rec := Select(pythonReq(), nil)

	if rec.RecommendedDeveloper != models.NoDeveloper {
		t.Errorf("recommended = %q, want %q", rec.RecommendedDeveloper, models.NoDeveloper)
	}
	if rec.ConfidenceScore != 0 {
		t.Errorf("confidence = %v, want 0", rec.ConfidenceScore)
	}
	if len(rec.Reasoning) == 0 || rec.Reasoning[0] != "No developers available" {
		t.Errorf("reasoning = %v", rec.Reasoning)
	}
	if rec.WorkloadImpact != models.ImpactUnknown {
		t.Errorf("impact = %q, want unknown", rec.WorkloadImpact)
	}
}

func TestSelectWorkedExample(t *testing.T) {
	rec := Select(pythonReq(), []models.Developer{devAlice(), devBob()})

	if rec.RecommendedDeveloper != "dev_alice" {
		t.Fatalf("recommended = %q, want dev_alice", rec.RecommendedDeveloper)
	}
	if rec.ConfidenceScore <= 0.9 {
		t.Errorf("confidence = %v, want > 0.9", rec.ConfidenceScore)
	}
	if len(rec.Alternatives) != 1 || rec.Alternatives[0].DeveloperID != "dev_bob" {
		t.Errorf("alternatives = %+v, want [dev_bob]", rec.Alternatives)
	}
	if rec.Alternatives[0].Score >= rec.ConfidenceScore {
		t.Error("alternate should score below the winner")
	}
	if len(rec.SkillGaps) != 0 {
		t.Errorf("skill gaps = %v, want none", rec.SkillGaps)
	}
}

func TestSelectReasoning(t *testing.T) {
	rec := Select(pythonReq(), []models.Developer{devAlice()})

	wantFragments := []string{
		"Strong skills: python(9.0)",
		"High performance score: 9.0/10",
		"Excellent success rate: 95.0%",
		"Currently available",
	}
	if len(rec.Reasoning) != len(wantFragments) {
		t.Fatalf("reasoning = %v, want %d entries", rec.Reasoning, len(wantFragments))
	}
	for i, want := range wantFragments {
		if rec.Reasoning[i] != want {
			t.Errorf("reasoning[%d] = %q, want %q", i, rec.Reasoning[i], want)
		}
	}
}

func TestSelectSkillGapsForUnmatchableSkill(t *testing.T) {
	// No developer knows japanese at >= 5: a winner is still chosen and the
	// gap is reported.
	roster := []models.Developer{
		{DeveloperID: "a", Skills: map[string]float64{"japanese": 3}, Availability: models.Available, MaxCapacity: 5},
		{DeveloperID: "b", Skills: map[string]float64{"python": 9}, Availability: models.Available, MaxCapacity: 5},
	}
	req := models.Requirement{TicketID: "TW-2", RequiredSkills: []string{"japanese"}}

	rec := Select(req, roster)
	if rec.RecommendedDeveloper == models.NoDeveloper {
		t.Fatal("expected a winner even with weak skill coverage")
	}
	if len(rec.SkillGaps) != 1 || rec.SkillGaps[0] != "japanese" {
		t.Errorf("skill gaps = %v, want [japanese]", rec.SkillGaps)
	}
}

func TestSelectRiskFactors(t *testing.T) {
	roster := []models.Developer{{
		DeveloperID:     "loaded",
		Skills:          map[string]float64{"python": 9},
		Availability:    models.Busy,
		CurrentWorkload: 5,
		MaxCapacity:     5,
	}}
	rec := Select(pythonReq(), roster)

	wantRisks := map[string]bool{
		"High current workload":       false,
		"Developer is currently busy": false,
	}
	for _, risk := range rec.RiskFactors {
		if _, ok := wantRisks[risk]; ok {
			wantRisks[risk] = true
		}
	}
	for risk, seen := range wantRisks {
		if !seen {
			t.Errorf("missing risk factor %q in %v", risk, rec.RiskFactors)
		}
	}
}

func TestSelectTieKeepsRosterOrder(t *testing.T) {
	// Identical developers: the first roster entry wins.
	mk := func(id string) models.Developer {
		return models.Developer{
			DeveloperID:  id,
			Skills:       map[string]float64{"python": 7},
			Availability: models.Available,
			MaxCapacity:  5,
		}
	}
	roster := []models.Developer{mk("first"), mk("second"), mk("third")}

	for i := 0; i < 10; i++ {
		rec := Select(pythonReq(), roster)
		if rec.RecommendedDeveloper != "first" {
			t.Fatalf("tie-break picked %q, want first", rec.RecommendedDeveloper)
		}
	}
}

func TestSelectAlternatesTopThree(t *testing.T) {
	roster := []models.Developer{
		{DeveloperID: "best", Skills: map[string]float64{"python": 10}, Availability: models.Available, MaxCapacity: 5},
		{DeveloperID: "second", Skills: map[string]float64{"python": 8}, Availability: models.Available, MaxCapacity: 5},
		{DeveloperID: "third", Skills: map[string]float64{"python": 6}, Availability: models.Available, MaxCapacity: 5},
		{DeveloperID: "fourth", Skills: map[string]float64{"python": 4}, Availability: models.Available, MaxCapacity: 5},
		{DeveloperID: "fifth", Skills: map[string]float64{"python": 2}, Availability: models.Available, MaxCapacity: 5},
	}
	rec := Select(pythonReq(), roster)

	if rec.RecommendedDeveloper != "best" {
		t.Fatalf("recommended = %q, want best", rec.RecommendedDeveloper)
	}
	if len(rec.Alternatives) != 3 {
		t.Fatalf("alternatives = %d entries, want 3", len(rec.Alternatives))
	}
	want := []string{"second", "third", "fourth"}
	for i, id := range want {
		if rec.Alternatives[i].DeveloperID != id {
			t.Errorf("alternatives[%d] = %q, want %q", i, rec.Alternatives[i].DeveloperID, id)
		}
	}
}

func TestSelectCompletionEstimate(t *testing.T) {
	tests := []struct {
		name        string
		performance float64
		effort      int
		want        int
	}{
		{"perfect performer", 10, 6, 3}, // 3.0 * 1.0
		{"zero performer", 0, 6, 6},     // 3.0 * 2.0
		{"mid performer", 5, 4, 3},      // 2.0 * 1.5
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roster := []models.Developer{{
				DeveloperID:      "d",
				Availability:     models.Available,
				PerformanceScore: tt.performance,
				MaxCapacity:      5,
			}}
			req := models.Requirement{RequiredSkills: []string{"python"}, EstimatedEffort: tt.effort}
			rec := Select(req, roster)
			if rec.EstimatedCompletionTime != tt.want {
				t.Errorf("eta = %d, want %d", rec.EstimatedCompletionTime, tt.want)
			}
		})
	}
}
