package homescore

import "math"

const (
	minSpread = 3.0
	maxSpread = 20.0
)

// BucketConfidence maps a 0-1 completeness ratio to a qualitative level.
func BucketConfidence(ratio float64) ConfidenceLevel {
	switch {
	case ratio >= 0.75:
		return ConfidenceHigh
	case ratio >= 0.45:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// overallConfidenceRatio is the weakest-link rule: the composite is only
// as trustworthy as its least-supported component, so the minimum wins,
// never an average.
func overallConfidenceRatio(ratios ...float64) float64 {
	if len(ratios) == 0 {
		return 0
	}
	minimum := ratios[0]
	for _, r := range ratios[1:] {
		if r < minimum {
			minimum = r
		}
	}
	return clamp(minimum, 0, 1)
}

// uncertaintySpread widens from 3 to 20 points as confidence and profile
// completeness fall; whichever is weaker drives the width.
func uncertaintySpread(confidenceRatio, completeness float64) float64 {
	basis := math.Min(clamp(confidenceRatio, 0, 1), clamp(completeness, 0, 1))
	return math.Round(minSpread + (maxSpread-minSpread)*(1-basis))
}

// uncertaintyBand centers the spread on the point score, clamped to the
// scale so the band never leaks outside [0,100].
func uncertaintyBand(score, spread float64) Band {
	half := spread / 2
	return Band{
		Low:    clamp(score-half, 0, 100),
		High:   clamp(score+half, 0, 100),
		Spread: spread,
	}
}

// exposureBand applies the same spread logic to the risk exposure figure,
// as a fractional widening of the dollar amount.
func exposureBand(exposure, spread float64) *DollarBand {
	if exposure <= 0 {
		return nil
	}
	fraction := spread / 100
	low := exposure * (1 - fraction)
	if low < 0 {
		low = 0
	}
	return &DollarBand{
		Low:  math.Round(low),
		High: math.Round(exposure * (1 + fraction)),
	}
}
