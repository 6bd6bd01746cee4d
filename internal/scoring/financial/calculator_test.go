package financial

import (
	"math"
	"testing"

	"github.com/hearthstack/homescore-backend/internal/types"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestCalculateNoBenchmark(t *testing.T) {
	tests := []struct {
		name  string
		bench *Benchmark
	}{
		{"nil benchmark", nil},
		{"zero-total benchmark", &Benchmark{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Calculate(Inputs{ActualInsurance: 1200}, tt.bench)
			if res.Status != types.FinancialStatusNoBenchmark {
				t.Fatalf("status = %s, want NO_BENCHMARK", res.Status)
			}
			if res.Score != nil {
				t.Fatalf("score = %v, want nil", *res.Score)
			}
		})
	}
}

func TestCalculateMissingDataScoresNeutral(t *testing.T) {
	res := Calculate(Inputs{}, &Benchmark{AvgInsurancePremium: 1500, AvgUtilityCost: 2400})
	if res.Status != types.FinancialStatusMissingData {
		t.Fatalf("status = %s, want MISSING_DATA", res.Status)
	}
	if res.Score == nil || *res.Score != 50 {
		t.Fatalf("score = %v, want neutral 50", res.Score)
	}
	if res.BenchmarkTotal != 3900 {
		t.Fatalf("benchmark total = %v, want 3900", res.BenchmarkTotal)
	}
}

func TestCalculateScoreCurve(t *testing.T) {
	bench := &Benchmark{AvgInsurancePremium: 2000, AvgUtilityCost: 1500, AvgWarrantyCost: 500} // total 4000
	tests := []struct {
		name   string
		actual Inputs
		want   float64
	}{
		{"spending at benchmark", Inputs{ActualInsurance: 4000}, 100},
		{"spending double benchmark", Inputs{ActualInsurance: 8000}, 75},
		{"spending quadruple benchmark", Inputs{ActualInsurance: 16000}, 62.5},
		{"spending below benchmark clamps at 100", Inputs{ActualInsurance: 2000}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Calculate(tt.actual, bench)
			if res.Status != types.FinancialStatusCalculated {
				t.Fatalf("status = %s, want CALCULATED", res.Status)
			}
			if res.Score == nil || !almostEqual(*res.Score, tt.want) {
				t.Fatalf("score = %v, want %v", res.Score, tt.want)
			}
		})
	}
}

func TestCalculateTotals(t *testing.T) {
	in := Inputs{ActualInsurance: 1000, ActualUtility: 2000, ActualWarranty: 500}
	if in.Total() != 3500 {
		t.Fatalf("total = %v, want 3500", in.Total())
	}
	res := Calculate(in, &Benchmark{AvgInsurancePremium: 3500})
	if res.ActualTotal != 3500 {
		t.Fatalf("actual total = %v, want 3500", res.ActualTotal)
	}
	if res.Score == nil || *res.Score != 100 {
		t.Fatalf("score = %v, want 100", res.Score)
	}
}
