package app

import (
	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/repos"
)

type Repos struct {
	Property           repos.PropertyRepo
	InsurancePolicy    repos.InsurancePolicyRepo
	HomeWarranty       repos.HomeWarrantyRepo
	ExpenseRecord      repos.ExpenseRecordRepo
	PropertyDocument   repos.PropertyDocumentRepo
	MaintenanceTask    repos.MaintenanceTaskRepo
	FinancialBenchmark repos.FinancialBenchmarkRepo
	RiskReport         repos.RiskReportRepo
	FinancialReport    repos.FinancialReportRepo
	ScoreSnapshot      repos.ScoreSnapshotRepo
	Correction         repos.CorrectionRepo
	JobRun             repos.JobRunRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Property:           repos.NewPropertyRepo(db, log),
		InsurancePolicy:    repos.NewInsurancePolicyRepo(db, log),
		HomeWarranty:       repos.NewHomeWarrantyRepo(db, log),
		ExpenseRecord:      repos.NewExpenseRecordRepo(db, log),
		PropertyDocument:   repos.NewPropertyDocumentRepo(db, log),
		MaintenanceTask:    repos.NewMaintenanceTaskRepo(db, log),
		FinancialBenchmark: repos.NewFinancialBenchmarkRepo(db, log),
		RiskReport:         repos.NewRiskReportRepo(db, log),
		FinancialReport:    repos.NewFinancialReportRepo(db, log),
		ScoreSnapshot:      repos.NewScoreSnapshotRepo(db, log),
		Correction:         repos.NewCorrectionRepo(db, log),
		JobRun:             repos.NewJobRunRepo(db, log),
	}
}
