package homescore

// buildVerifications suggests the user actions that would raise
// confidence the most, each with an estimated gain on the 0-1 ratio.
func buildVerifications(in Input) []VerificationOpportunity {
	var out []VerificationOpportunity

	if in.Facts.CompletenessRatio() < 1 {
		out = append(out, VerificationOpportunity{
			Code:           "complete_profile",
			Title:          "Fill in the remaining property profile fields",
			ConfidenceGain: 0.15,
		})
	}
	if in.CoverageRecordCount > 0 && in.CoverageDocumentCount == 0 {
		out = append(out, VerificationOpportunity{
			Code:           "attach_coverage_documents",
			Title:          "Attach policy or warranty documents as evidence",
			ConfidenceGain: 0.10,
		})
	}
	if in.Risk.Status == StatusStale || in.Risk.Status == StatusQueued {
		out = append(out, VerificationOpportunity{
			Code:           "refresh_risk_report",
			Title:          "Re-run the risk calculation for up-to-date figures",
			ConfidenceGain: 0.05,
		})
	}
	if in.Financial.Status == StatusMissing {
		out = append(out, VerificationOpportunity{
			Code:           "complete_financial_inputs",
			Title:          "Add utility, insurance and warranty costs",
			ConfidenceGain: 0.12,
		})
	}
	if !in.HasInsurance {
		out = append(out, VerificationOpportunity{
			Code:           "link_insurance_policy",
			Title:          "Link your dwelling insurance policy",
			ConfidenceGain: 0.08,
		})
	}
	if !in.HasActiveWarranty {
		out = append(out, VerificationOpportunity{
			Code:           "link_home_warranty",
			Title:          "Link an active home warranty if you hold one",
			ConfidenceGain: 0.05,
		})
	}
	return out
}
