package financial

import "github.com/hearthstack/homescore-backend/internal/types"

const neutralScore = 50.0

// Inputs are the property's actual annualized ownership costs.
type Inputs struct {
	ActualInsurance float64
	ActualUtility   float64
	ActualWarranty  float64
}

func (in Inputs) Total() float64 {
	return in.ActualInsurance + in.ActualUtility + in.ActualWarranty
}

// Benchmark mirrors the reference row for a (zip, property type).
type Benchmark struct {
	AvgInsurancePremium float64
	AvgUtilityCost      float64
	AvgWarrantyCost     float64
}

func (b Benchmark) Total() float64 {
	return b.AvgInsurancePremium + b.AvgUtilityCost + b.AvgWarrantyCost
}

// Result is the calculator output. Score is nil unless a number is
// actually defensible; a missing benchmark or empty cost data never turns
// into a fabricated zero.
type Result struct {
	Status         string
	Score          *float64
	ActualTotal    float64
	BenchmarkTotal float64
}

// Calculate scores spending against the market benchmark. Spending exactly
// at benchmark yields 100; spending far above trends toward 50 and below.
// An actual total of zero means we lack the user's cost data, which scores
// a neutral 50 under MISSING_DATA rather than pretending efficiency.
func Calculate(in Inputs, bench *Benchmark) Result {
	res := Result{ActualTotal: in.Total()}
	if bench == nil {
		res.Status = types.FinancialStatusNoBenchmark
		return res
	}
	res.BenchmarkTotal = bench.Total()
	if res.BenchmarkTotal <= 0 {
		res.Status = types.FinancialStatusNoBenchmark
		return res
	}
	if res.ActualTotal <= 0 {
		res.Status = types.FinancialStatusMissingData
		score := neutralScore
		res.Score = &score
		return res
	}

	score := res.BenchmarkTotal/res.ActualTotal*50 + 50
	if score > 100 {
		score = 100
	}
	res.Status = types.FinancialStatusCalculated
	res.Score = &score
	return res
}
