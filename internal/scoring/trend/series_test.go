package trend

import (
	"testing"
	"time"
)

func week(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestBuildSeriesSortsUnorderedInput(t *testing.T) {
	points := []Point{
		{WeekStart: week(2026, 8, 17), Score: 80, ScoreMax: 100},
		{WeekStart: week(2026, 8, 3), Score: 70, ScoreMax: 100},
		{WeekStart: week(2026, 8, 10), Score: 75, ScoreMax: 100},
	}
	s := BuildSeries(points)
	for i := 1; i < len(s.Points); i++ {
		if s.Points[i].WeekStart.Before(s.Points[i-1].WeekStart) {
			t.Fatalf("series not sorted ascending: %v", s.Points)
		}
	}
	if s.Latest().Score != 80 {
		t.Fatalf("latest = %v, want 80", s.Latest().Score)
	}
	if s.Previous().Score != 75 {
		t.Fatalf("previous = %v, want 75", s.Previous().Score)
	}
	// Input slice is not mutated.
	if points[0].Score != 80 {
		t.Fatalf("input slice was reordered")
	}
}

func TestDeltaFromPreviousWeek(t *testing.T) {
	s := BuildSeries([]Point{
		{WeekStart: week(2026, 8, 3), Score: 70},
		{WeekStart: week(2026, 8, 10), Score: 75.25},
	})
	d := s.DeltaFromPreviousWeek()
	if d == nil || *d != 5.3 {
		t.Fatalf("delta = %v, want 5.3 (rounded to one decimal)", d)
	}
}

func TestDeltaNilWithShortHistory(t *testing.T) {
	if d := BuildSeries(nil).DeltaFromPreviousWeek(); d != nil {
		t.Fatalf("empty series delta = %v, want nil", *d)
	}
	one := BuildSeries([]Point{{WeekStart: week(2026, 8, 3), Score: 70}})
	if d := one.DeltaFromPreviousWeek(); d != nil {
		t.Fatalf("single-point series delta = %v, want nil", *d)
	}
}

// Gap weeks are just absent points: the delta compares the two most
// recent observations regardless of how far apart they are.
func TestDeltaSpansGaps(t *testing.T) {
	s := BuildSeries([]Point{
		{WeekStart: week(2026, 6, 1), Score: 60},
		{WeekStart: week(2026, 8, 10), Score: 68},
	})
	d := s.DeltaFromPreviousWeek()
	if d == nil || *d != 8 {
		t.Fatalf("delta = %v, want 8", d)
	}
}

func TestRound10(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{71.44, 71.4},
		{71.45, 71.5},
		{-2.34, -2.3},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round10(tt.in); got != tt.want {
			t.Errorf("Round10(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
