package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/types"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Property + profile facts
		// =========================
		&types.Property{},
		&types.PropertyFacts{},
		&types.PropertyDocument{},

		// =========================
		// Coverage + spend
		// =========================
		&types.InsurancePolicy{},
		&types.HomeWarranty{},
		&types.ExpenseRecord{},
		&types.FinancialBenchmark{},

		// =========================
		// Computed reports + history
		// =========================
		&types.RiskReport{},
		&types.FinancialReport{},
		&types.ScoreSnapshot{},

		// =========================
		// Tasks + corrections
		// =========================
		&types.MaintenanceTask{},
		&types.Correction{},

		// =========================
		// Jobs / worker
		// =========================
		&types.JobRun{},
	)
}

func EnsureScoringIndexes(db *gorm.DB) error {
	// job claiming scans by status + created_at; dedupe lookups hit the
	// partial index only while a row is still active.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_job_run_claimable
		ON job_run (status, created_at);
	`).Error; err != nil {
		return fmt.Errorf("create idx_job_run_claimable: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_job_run_dedupe_active
		ON job_run (dedupe_key)
		WHERE status IN ('queued', 'running');
	`).Error; err != nil {
		return fmt.Errorf("create idx_job_run_dedupe_active: %w", err)
	}
	// benchmark default rows carry NULL zip; the lookup needs both shapes.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_benchmark_type_default
		ON financial_benchmark (property_type)
		WHERE zip IS NULL;
	`).Error; err != nil {
		return fmt.Errorf("create idx_benchmark_type_default: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_expense_property_cat_date
		ON expense_record (property_id, category, incurred_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_expense_property_cat_date: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_maintenance_open_system
		ON maintenance_task (property_id, system_type)
		WHERE status = 'open';
	`).Error; err != nil {
		return fmt.Errorf("create idx_maintenance_open_system: %w", err)
	}
	return nil
}
