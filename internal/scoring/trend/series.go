package trend

import (
	"math"
	"sort"
	"time"
)

// Point is one weekly observation of a score series.
type Point struct {
	WeekStart time.Time
	Score     float64
	ScoreMax  float64
}

// Series is an ordered weekly score history. Gaps are simply absent
// weeks; nothing is interpolated.
type Series struct {
	Points []Point
}

// BuildSeries sorts points ascending by week start. Input order is not
// trusted; the store may return rows in any order.
func BuildSeries(points []Point) Series {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].WeekStart.Before(sorted[j].WeekStart)
	})
	return Series{Points: sorted}
}

func (s Series) Latest() *Point {
	if len(s.Points) == 0 {
		return nil
	}
	p := s.Points[len(s.Points)-1]
	return &p
}

func (s Series) Previous() *Point {
	if len(s.Points) < 2 {
		return nil
	}
	p := s.Points[len(s.Points)-2]
	return &p
}

// DeltaFromPreviousWeek is latest minus previous, rounded to one decimal.
// nil when the series holds fewer than two points.
func (s Series) DeltaFromPreviousWeek() *float64 {
	latest := s.Latest()
	previous := s.Previous()
	if latest == nil || previous == nil {
		return nil
	}
	d := Round10(latest.Score - previous.Score)
	return &d
}

// Round10 rounds to one decimal place.
func Round10(v float64) float64 {
	return math.Round(v*10) / 10
}
