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

type RiskReportRepo interface {
	GetByProperty(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID) (*types.RiskReport, error)
	// Upsert replaces the single live report for the property wholesale.
	Upsert(ctx context.Context, tx *gorm.DB, report *types.RiskReport) (*types.RiskReport, error)
}

type riskReportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRiskReportRepo(db *gorm.DB, baseLog *logger.Logger) RiskReportRepo {
	return &riskReportRepo{db: db, log: baseLog.With("repo", "RiskReportRepo")}
}

func (r *riskReportRepo) GetByProperty(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID) (*types.RiskReport, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var report types.RiskReport
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

func (r *riskReportRepo) Upsert(ctx context.Context, tx *gorm.DB, report *types.RiskReport) (*types.RiskReport, error) {
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
				"risk_score", "financial_exposure_total", "details", "last_calculated_at", "updated_at",
			}),
		}).
		Create(report).Error
	if err != nil {
		return nil, err
	}
	return report, nil
}
