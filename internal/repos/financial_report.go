package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/types"
)

type FinancialReportRepo interface {
	GetByProperty(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID) (*types.FinancialReport, error)
	Upsert(ctx context.Context, tx *gorm.DB, report *types.FinancialReport) (*types.FinancialReport, error)
}

type financialReportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFinancialReportRepo(db *gorm.DB, baseLog *logger.Logger) FinancialReportRepo {
	return &financialReportRepo{db: db, log: baseLog.With("repo", "FinancialReportRepo")}
}

func (r *financialReportRepo) GetByProperty(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID) (*types.FinancialReport, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var report types.FinancialReport
	err := transaction.WithContext(ctx).
		Where("property_id = ?", propertyID).
		First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *financialReportRepo) Upsert(ctx context.Context, tx *gorm.DB, report *types.FinancialReport) (*types.FinancialReport, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if report == nil {
		return nil, nil
	}
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "property_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "financial_efficiency_score", "actual_insurance_cost", "actual_utility_cost",
				"actual_warranty_cost", "market_average_total", "last_calculated_at", "updated_at",
			}),
		}).
		Create(report).Error
	if err != nil {
		return nil, err
	}
	return report, nil
}
