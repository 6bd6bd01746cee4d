package homescore

// Aggregate turns the assembled Input into the composite report. It is a
// pure function: idempotent, no I/O, safe to call concurrently for
// different properties.
func Aggregate(in Input) Report {
	healthScore, healthSource := effectiveScore(in.Health)
	riskScore, riskSource := effectiveScore(in.Risk)
	financialScore, financialSource := effectiveScore(in.Financial)

	composite := Compose(healthScore, riskScore, financialScore)

	overallRatio := overallConfidenceRatio(
		in.Health.ConfidenceRatio,
		in.Risk.ConfidenceRatio,
		in.Financial.ConfidenceRatio,
	)
	completeness := in.Facts.CompletenessRatio()
	spread := uncertaintySpread(overallRatio, completeness)

	delta := compositeDelta(in.Trends)
	weekly := weekOverWeek(in.Trends, in.Now)

	return Report{
		PropertyID:            in.PropertyID,
		HomeScore:             composite,
		ScoreBand:             ScoreBandFor(composite),
		DeltaFromPreviousWeek: delta,
		Trend:                 trendLabel(delta),
		Health:                componentScore(healthScore, WeightHealth, healthSource, in.Health),
		Risk:                  componentScore(riskScore, WeightRisk, riskSource, in.Risk),
		Financial:             componentScore(financialScore, WeightFinancial, financialSource, in.Financial),
		OverallConfidence:     BucketConfidence(overallRatio),
		Uncertainty:           uncertaintyBand(composite, spread),
		ExposureBand:          exposureBand(in.RiskExposureTotal, spread),
		Reasons:               buildReasons(in, healthSource, riskSource, financialSource, financialScore),
		ConsistencyChecks:     runConsistencyChecks(in),
		Verifications:         buildVerifications(in),
		WeekOverWeek:          weekly,
		ChangeLog:             buildChangeLog(weekly, in.Corrections),
		CorrectionHistory:     in.Corrections,
		GeneratedAt:           in.Now,
	}.withNextBestAction()
}

func componentScore(score, weight float64, source string, in ComponentInput) ComponentScore {
	return ComponentScore{
		Score:           score,
		Weight:          weight,
		Source:          source,
		Status:          in.Status,
		Confidence:      BucketConfidence(in.ConfidenceRatio),
		ConfidenceRatio: in.ConfidenceRatio,
	}
}

// withNextBestAction promotes the highest-weight negative reason. Neutral
// and positive entries are informational and never become the action, even
// when one outranks every negative.
func (r Report) withNextBestAction() Report {
	for i := range r.Reasons {
		if r.Reasons[i].Impact == ImpactNegative {
			action := r.Reasons[i]
			r.NextBestAction = &action
			break
		}
	}
	return r
}
