package routing

import (
	"math"
	"testing"

	"github.com/jharward/ticketwise/internal/models"
)

func devAlice() models.Developer {
	return models.Developer{
		DeveloperID:       "dev_alice",
		Name:              "Alice",
		Skills:            map[string]float64{"python": 9},
		Availability:      models.Available,
		PerformanceScore:  9,
		SuccessRate:       95,
		AvgCompletionTime: 2.8,
		CurrentWorkload:   1,
		MaxCapacity:       4,
	}
}

func devBob() models.Developer {
	return models.Developer{
		DeveloperID:       "dev_bob",
		Name:              "Bob",
		Skills:            map[string]float64{},
		Availability:      models.Busy,
		PerformanceScore:  5,
		SuccessRate:       50,
		AvgCompletionTime: 5,
		CurrentWorkload:   3,
		MaxCapacity:       5,
	}
}

func pythonReq() models.Requirement {
	return models.Requirement{
		TicketID:        "TW-1",
		RequiredSkills:  []string{"python"},
		EstimatedEffort: 3,
	}
}

func TestSkillMatchScore(t *testing.T) {
	tests := []struct {
		name string
		dev  models.Developer
		req  models.Requirement
		want float64
	}{
		{"no required skills is neutral", devAlice(), models.Requirement{}, 0.5},
		{"single matched skill", devAlice(), pythonReq(), 0.9},
		{"single missing skill penalty", devBob(), pythonReq(), 0.1},
		{
			"mixed matched and missing averaged over all",
			devAlice(),
			models.Requirement{RequiredSkills: []string{"python", "japanese"}},
			0.5, // (0.9 + 0.1) / 2
		},
		{
			"specialization bonus capped at 1.0",
			models.Developer{
				Skills:          map[string]float64{"python": 10, "database": 10},
				Specializations: []string{"backend", "frontend", "mobile", "design"},
			},
			models.Requirement{
				RequiredSkills: []string{"python", "database"},
				NeedsBackend:   true, NeedsFrontend: true, NeedsMobile: true, NeedsDesign: true,
			},
			1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SkillMatchScore(tt.dev, tt.req)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SkillMatchScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpecializationBonusRequiresFlag(t *testing.T) {
	dev := models.Developer{
		Skills:          map[string]float64{"python": 5},
		Specializations: []string{"backend"},
	}
	req := models.Requirement{RequiredSkills: []string{"python"}}

	without := SkillMatchScore(dev, req)
	req.NeedsBackend = true
	with := SkillMatchScore(dev, req)

	if math.Abs(with-without-0.1) > 1e-9 {
		t.Errorf("bonus = %v, want 0.1", with-without)
	}
}

func TestAvailabilityScore(t *testing.T) {
	tests := []struct {
		availability string
		want         float64
	}{
		{models.Available, 1.0},
		{models.Busy, 0.3},
		{models.Unavailable, 0.0},
	}
	for _, tt := range tests {
		got := AvailabilityScore(models.Developer{Availability: tt.availability})
		if got != tt.want {
			t.Errorf("AvailabilityScore(%s) = %v, want %v", tt.availability, got, tt.want)
		}
	}
}

func TestPerformanceScore(t *testing.T) {
	// 0.9 base + 0.285 success + 0.144 time, capped at 1.0.
	if got := PerformanceScore(devAlice()); got != 1.0 {
		t.Errorf("PerformanceScore(alice) = %v, want 1.0 (capped)", got)
	}

	// 0.5 + 0.15 + 0.1 = 0.75, no cap.
	if got := PerformanceScore(devBob()); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("PerformanceScore(bob) = %v, want 0.75", got)
	}

	// Slow completion earns no bonus but never a penalty.
	slow := models.Developer{PerformanceScore: 5, SuccessRate: 50, AvgCompletionTime: 30}
	if got := PerformanceScore(slow); math.Abs(got-0.65) > 1e-9 {
		t.Errorf("PerformanceScore(slow) = %v, want 0.65", got)
	}
}

func TestWorkloadImpact(t *testing.T) {
	tests := []struct {
		name     string
		workload int
		capacity int
		effort   int
		want     string
	}{
		{"low impact", 1, 4, 3, models.ImpactLow},           // 0.25 + 0.3 = 0.55
		{"medium impact", 3, 5, 3, models.ImpactMedium},     // 0.6 + 0.3 = 0.9
		{"high impact", 4, 5, 3, models.ImpactHigh},         // 0.8 + 0.3 = 1.1
		{"at capacity already", 5, 5, 1, models.ImpactHigh}, // 1.0 + 0.1
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := models.Developer{CurrentWorkload: tt.workload, MaxCapacity: tt.capacity}
			req := models.Requirement{EstimatedEffort: tt.effort}
			if got := WorkloadImpact(dev, req); got != tt.want {
				t.Errorf("WorkloadImpact() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScoreRange(t *testing.T) {
	devs := []models.Developer{devAlice(), devBob(), {}, {Availability: models.Unavailable}}
	reqs := []models.Requirement{{}, pythonReq(), {RequiredSkills: []string{"x", "y", "z"}, EstimatedEffort: 8}}

	for _, dev := range devs {
		for _, req := range reqs {
			got := Score(dev, req)
			if got.Final < 0 || got.Final > 1 {
				t.Errorf("final score %v out of [0,1] for dev=%+v req=%+v", got.Final, dev, req)
			}
		}
	}
}

func TestScoreIdempotent(t *testing.T) {
	dev, req := devAlice(), pythonReq()
	first := Score(dev, req)
	for i := 0; i < 5; i++ {
		if again := Score(dev, req); again != first {
			t.Fatalf("Score() not deterministic: %+v vs %+v", again, first)
		}
	}
}

func TestScoreWorkedExample(t *testing.T) {
	req := pythonReq()

	alice := Score(devAlice(), req)
	if math.Abs(alice.Skill-0.9) > 1e-9 {
		t.Errorf("alice skill = %v, want 0.9", alice.Skill)
	}
	if alice.Availability != 1.0 {
		t.Errorf("alice availability = %v, want 1.0", alice.Availability)
	}
	// 0.4*0.9 + 0.3*1.0 + 0.2*1.0 + 0.1*1.0 = 0.96
	if math.Abs(alice.Final-0.96) > 1e-9 {
		t.Errorf("alice final = %v, want 0.96", alice.Final)
	}

	bob := Score(devBob(), req)
	if math.Abs(bob.Skill-0.1) > 1e-9 {
		t.Errorf("bob skill = %v, want 0.1 (missing skill penalty)", bob.Skill)
	}
	if bob.Availability != 0.3 {
		t.Errorf("bob availability = %v, want 0.3", bob.Availability)
	}
	if bob.Final >= alice.Final {
		t.Errorf("bob final %v should be below alice %v", bob.Final, alice.Final)
	}
}

func TestAvailabilityMonotonicity(t *testing.T) {
	// Two developers identical except availability: the available one never
	// scores below the unavailable one.
	base := devAlice()
	unavailable := devAlice()
	unavailable.Availability = models.Unavailable

	req := pythonReq()
	if Score(base, req).Final <= Score(unavailable, req).Final {
		t.Error("available developer should outscore an otherwise identical unavailable one")
	}
}
