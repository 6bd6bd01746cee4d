package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/types"
)

type InsurancePolicyRepo interface {
	ListByProperty(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID) ([]*types.InsurancePolicy, error)
}

type insurancePolicyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInsurancePolicyRepo(db *gorm.DB, baseLog *logger.Logger) InsurancePolicyRepo {
	return &insurancePolicyRepo{db: db, log: baseLog.With("repo", "InsurancePolicyRepo")}
}

func (r *insurancePolicyRepo) ListByProperty(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID) ([]*types.InsurancePolicy, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.InsurancePolicy
	if err := transaction.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
