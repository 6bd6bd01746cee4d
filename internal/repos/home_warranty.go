package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/types"
)

type HomeWarrantyRepo interface {
	ListByProperty(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID) ([]*types.HomeWarranty, error)
}

type homeWarrantyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHomeWarrantyRepo(db *gorm.DB, baseLog *logger.Logger) HomeWarrantyRepo {
	return &homeWarrantyRepo{db: db, log: baseLog.With("repo", "HomeWarrantyRepo")}
}

func (r *homeWarrantyRepo) ListByProperty(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID) ([]*types.HomeWarranty, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.HomeWarranty
	if err := transaction.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("expires_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
