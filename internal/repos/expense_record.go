package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/types"
)

type ExpenseRecordRepo interface {
	SumByCategorySince(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID, category string, since time.Time) (float64, error)
}

type expenseRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExpenseRecordRepo(db *gorm.DB, baseLog *logger.Logger) ExpenseRecordRepo {
	return &expenseRecordRepo{db: db, log: baseLog.With("repo", "ExpenseRecordRepo")}
}

func (r *expenseRecordRepo) SumByCategorySince(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID, category string, since time.Time) (float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var total *float64
	err := transaction.WithContext(ctx).
		Model(&types.ExpenseRecord{}).
		Select("SUM(amount)").
		Where("property_id = ? AND category = ? AND incurred_at >= ?", propertyID, category, since).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
