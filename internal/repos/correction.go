package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/types"
)

type CorrectionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, correction *types.Correction) (*types.Correction, error)
	ListByProperty(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID, limit int) ([]*types.Correction, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, resolvedAt time.Time) error
}

type correctionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCorrectionRepo(db *gorm.DB, baseLog *logger.Logger) CorrectionRepo {
	return &correctionRepo{db: db, log: baseLog.With("repo", "CorrectionRepo")}
}

func (r *correctionRepo) Create(ctx context.Context, tx *gorm.DB, correction *types.Correction) (*types.Correction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if correction == nil {
		return nil, nil
	}
	if correction.ID == uuid.Nil {
		correction.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(correction).Error; err != nil {
		return nil, err
	}
	return correction, nil
}

func (r *correctionRepo) ListByProperty(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID, limit int) ([]*types.Correction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 50
	}
	var out []*types.Correction
	if err := transaction.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("submitted_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *correctionRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, resolvedAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Correction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"resolved_at": resolvedAt,
			"updated_at":  time.Now(),
		}).Error
}
