package pipeline

import (
	"sync"
	"testing"
	"time"
)

func TestPageStats_EmptySnapshot(t *testing.T) {
	s := NewPageStats(time.Hour)
	snap := s.Snapshot()
	if snap.Count != 0 || snap.MinMs != 0 || snap.AvgMs != 0 {
		t.Errorf("expected zero snapshot, got %+v", snap)
	}
}

func TestPageStats_BasicAggregates(t *testing.T) {
	s := NewPageStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400} {
		s.Record(ms)
	}

	snap := s.Snapshot()
	if snap.Count != 4 {
		t.Fatalf("count = %d, want 4", snap.Count)
	}
	if snap.MinMs != 100 || snap.MaxMs != 400 {
		t.Errorf("min/max = %d/%d, want 100/400", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 250 {
		t.Errorf("avg = %v, want 250", snap.AvgMs)
	}
	if snap.P50Ms != 250 {
		t.Errorf("p50 = %v, want 250", snap.P50Ms)
	}
}

func TestPageStats_NegativeClampedToZero(t *testing.T) {
	s := NewPageStats(time.Hour)
	s.Record(-5)
	if got := s.Snapshot().MinMs; got != 0 {
		t.Errorf("min = %d, want 0", got)
	}
}

func TestPageStats_ConcurrentRecord(t *testing.T) {
	s := NewPageStats(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(ms int64) {
			defer wg.Done()
			s.Record(ms)
		}(int64(i))
	}
	wg.Wait()

	if got := s.Snapshot().Count; got != 100 {
		t.Errorf("count = %d, want 100", got)
	}
}

func TestPercentile_Interpolation(t *testing.T) {
	values := []int64{10, 20, 30, 40, 50}

	tests := []struct {
		pct  float64
		want float64
	}{
		{0, 10},
		{50, 30},
		{100, 50},
		{95, 48},
	}
	for _, tt := range tests {
		if got := percentile(values, tt.pct); got != tt.want {
			t.Errorf("percentile(%v) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestPercentile_Empty(t *testing.T) {
	if got := percentile(nil, 50); got != 0 {
		t.Errorf("percentile of empty input = %v, want 0", got)
	}
}
