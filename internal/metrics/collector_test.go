package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRecordTiming(t *testing.T) {
	c := NewCollector()

	c.RecordTiming(OpScoring, 10*time.Millisecond)
	c.RecordTiming(OpScoring, 30*time.Millisecond)

	snap := c.Snapshot()
	if snap.Scoring == nil {
		t.Fatal("scoring snapshot missing")
	}
	if snap.Scoring.Count != 2 {
		t.Errorf("count = %d, want 2", snap.Scoring.Count)
	}
	if snap.Scoring.MinTimeMs != 10 || snap.Scoring.MaxTimeMs != 30 {
		t.Errorf("min/max = %d/%d, want 10/30", snap.Scoring.MinTimeMs, snap.Scoring.MaxTimeMs)
	}
	if snap.Scoring.AvgTimeMs != 20 {
		t.Errorf("avg = %v, want 20", snap.Scoring.AvgTimeMs)
	}
}

func TestSnapshotNilForUnusedOps(t *testing.T) {
	c := NewCollector()
	c.RecordTiming(OpAnalyze, time.Millisecond)

	snap := c.Snapshot()
	if snap.Analyze == nil {
		t.Error("analyze snapshot missing")
	}
	if snap.DBQuery != nil || snap.Webhook != nil || snap.LLMGenerate != nil {
		t.Error("unused operations should snapshot as nil")
	}
}

func TestTimeRecordsErrors(t *testing.T) {
	c := NewCollector()

	wantErr := errors.New("boom")
	err := c.Time(OpLLMGenerate, func() error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("Time should pass through the error, got %v", err)
	}
	_ = c.Time(OpLLMGenerate, func() error { return nil })

	snap := c.Snapshot()
	if snap.LLMGenerate == nil {
		t.Fatal("llm snapshot missing")
	}
	if snap.LLMGenerate.Errors != 1 {
		t.Errorf("errors = %d, want 1", snap.LLMGenerate.Errors)
	}
	if snap.LLMGenerate.Count != 1 {
		t.Errorf("count = %d, want 1 (errors do not count as completions)", snap.LLMGenerate.Count)
	}
}

func TestCollectorConcurrency(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RecordTiming(OpDBQuery, time.Millisecond)
			_ = c.Snapshot()
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	if snap.DBQuery.Count != 50 {
		t.Errorf("count = %d, want 50", snap.DBQuery.Count)
	}
}
