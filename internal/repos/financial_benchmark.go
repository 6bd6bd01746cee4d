package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/types"
)

type FinancialBenchmarkRepo interface {
	// GetByZipAndType returns the zip-specific benchmark row, nil when none
	// exists. The fallback to the type default is the service's job.
	GetByZipAndType(ctx context.Context, tx *gorm.DB, zip, propertyType string) (*types.FinancialBenchmark, error)
	// GetTypeDefault returns the null-zip default row for the property type.
	GetTypeDefault(ctx context.Context, tx *gorm.DB, propertyType string) (*types.FinancialBenchmark, error)
}

type financialBenchmarkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFinancialBenchmarkRepo(db *gorm.DB, baseLog *logger.Logger) FinancialBenchmarkRepo {
	return &financialBenchmarkRepo{db: db, log: baseLog.With("repo", "FinancialBenchmarkRepo")}
}

func (r *financialBenchmarkRepo) GetByZipAndType(ctx context.Context, tx *gorm.DB, zip, propertyType string) (*types.FinancialBenchmark, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.FinancialBenchmark
	err := transaction.WithContext(ctx).
		Where("zip = ? AND property_type = ?", zip, propertyType).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *financialBenchmarkRepo) GetTypeDefault(ctx context.Context, tx *gorm.DB, propertyType string) (*types.FinancialBenchmark, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var row types.FinancialBenchmark
	err := transaction.WithContext(ctx).
		Where("zip IS NULL AND property_type = ?", propertyType).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
