package homescore

import (
	"fmt"
	"sort"
	"time"

	"github.com/hearthstack/homescore-backend/internal/scoring/trend"
	"github.com/hearthstack/homescore-backend/internal/types"
)

const maxChangeLogEntries = 20

const (
	changeSourceScoreDelta = "score_delta"
	changeSourceCorrection = "correction"
)

var componentNames = map[types.ScoreType]string{
	types.ScoreTypeHealth:    ComponentHealth,
	types.ScoreTypeRisk:      ComponentRisk,
	types.ScoreTypeFinancial: ComponentFinancial,
}

// weekOverWeek lists one entry per component whose snapshot delta is
// non-zero. With too little history to produce any delta, a single
// placeholder keeps the section from rendering empty.
func weekOverWeek(trends map[types.ScoreType]trend.Series, now time.Time) []ChangeEntry {
	var entries []ChangeEntry
	for _, scoreType := range types.AllScoreTypes {
		series, ok := trends[scoreType]
		if !ok {
			continue
		}
		delta := series.DeltaFromPreviousWeek()
		if delta == nil || *delta == 0 {
			continue
		}
		direction := ImpactPositive
		verb := "improved"
		if *delta < 0 {
			direction = ImpactNegative
			verb = "dropped"
		}
		latest := series.Latest()
		entries = append(entries, ChangeEntry{
			OccurredAt: latest.WeekStart,
			Source:     changeSourceScoreDelta,
			Component:  componentNames[scoreType],
			Delta:      delta,
			Direction:  direction,
			Note:       fmt.Sprintf("%s score %s by %.1f since last week", componentNames[scoreType], verb, abs(*delta)),
		})
	}
	if len(entries) == 0 {
		entries = append(entries, ChangeEntry{
			OccurredAt: now,
			Source:     changeSourceScoreDelta,
			Direction:  ImpactNeutral,
			Note:       "No material movement yet - more weekly history is needed.",
		})
	}
	return entries
}

// buildChangeLog merges the weekly score deltas with correction-ledger
// events into one chronological feed, newest first, capped.
func buildChangeLog(weekly []ChangeEntry, corrections []CorrectionEvent) []ChangeEntry {
	entries := make([]ChangeEntry, 0, len(weekly)+len(corrections))
	entries = append(entries, weekly...)
	for _, c := range corrections {
		note := fmt.Sprintf("Correction for %q %s", c.FieldKey, correctionVerb(c.Status))
		entries = append(entries, ChangeEntry{
			OccurredAt: c.At,
			Source:     changeSourceCorrection,
			Direction:  correctionDirection(c.Status),
			Note:       note,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].OccurredAt.After(entries[j].OccurredAt)
	})
	if len(entries) > maxChangeLogEntries {
		entries = entries[:maxChangeLogEntries]
	}
	return entries
}

func correctionVerb(status string) string {
	switch status {
	case types.CorrectionStatusApplied:
		return "was applied"
	case types.CorrectionStatusRejected:
		return "was rejected"
	default:
		return "was submitted"
	}
}

func correctionDirection(status string) Impact {
	switch status {
	case types.CorrectionStatusApplied:
		return ImpactPositive
	case types.CorrectionStatusRejected:
		return ImpactNegative
	default:
		return ImpactNeutral
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
