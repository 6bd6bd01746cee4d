package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/types"
)

type PropertyDocumentRepo interface {
	CountByKinds(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID, kinds []string) (int64, error)
}

type propertyDocumentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPropertyDocumentRepo(db *gorm.DB, baseLog *logger.Logger) PropertyDocumentRepo {
	return &propertyDocumentRepo{db: db, log: baseLog.With("repo", "PropertyDocumentRepo")}
}

func (r *propertyDocumentRepo) CountByKinds(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID, kinds []string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(kinds) == 0 {
		return 0, nil
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.PropertyDocument{}).
		Where("property_id = ? AND kind IN ?", propertyID, kinds).
		Count(&count).Error
	return count, err
}
