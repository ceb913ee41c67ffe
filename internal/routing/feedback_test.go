package routing

import (
	"math"
	"testing"

	"github.com/jharward/ticketwise/internal/models"
)

func TestApplyCompletionBlends(t *testing.T) {
	dev := models.Developer{
		SuccessRate:       90,
		AvgCompletionTime: 4,
		PerformanceScore:  8,
		CurrentWorkload:   2,
	}

	ApplyCompletion(&dev, 4, 3)

	// 90*0.8 + 4*20 = 152 -> clamped to 100.
	if dev.SuccessRate != 100 {
		t.Errorf("success rate = %v, want 100 (clamped)", dev.SuccessRate)
	}
	// 4*0.8 + 3*0.2 = 3.8
	if math.Abs(dev.AvgCompletionTime-3.8) > 1e-9 {
		t.Errorf("avg completion time = %v, want 3.8", dev.AvgCompletionTime)
	}
	// 8*0.9 + (4/5*10)*0.1 = 7.2 + 0.8 = 8.0
	if math.Abs(dev.PerformanceScore-8.0) > 1e-9 {
		t.Errorf("performance = %v, want 8.0", dev.PerformanceScore)
	}
	if dev.CurrentWorkload != 1 {
		t.Errorf("workload = %d, want 1", dev.CurrentWorkload)
	}
}

func TestApplyCompletionClampsLow(t *testing.T) {
	dev := models.Developer{SuccessRate: 0, PerformanceScore: 0, CurrentWorkload: 0}

	ApplyCompletion(&dev, 1, 20)

	if dev.SuccessRate < 0 || dev.SuccessRate > 100 {
		t.Errorf("success rate %v out of range", dev.SuccessRate)
	}
	if dev.PerformanceScore < 0 || dev.PerformanceScore > 10 {
		t.Errorf("performance %v out of range", dev.PerformanceScore)
	}
	// Workload never goes negative.
	if dev.CurrentWorkload != 0 {
		t.Errorf("workload = %d, want 0", dev.CurrentWorkload)
	}
}

func TestRepeatedTopRatingsStayClamped(t *testing.T) {
	dev := models.Developer{SuccessRate: 80, PerformanceScore: 7, CurrentWorkload: 10}
	for i := 0; i < 20; i++ {
		ApplyCompletion(&dev, 5, 1)
	}
	if dev.SuccessRate > 100 {
		t.Errorf("success rate = %v, exceeded 100", dev.SuccessRate)
	}
	if dev.PerformanceScore > 10 {
		t.Errorf("performance = %v, exceeded 10", dev.PerformanceScore)
	}
}
