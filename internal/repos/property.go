package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/types"
)

type PropertyRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID) (*types.Property, error)
	GetOwned(ctx context.Context, tx *gorm.DB, propertyID, ownerUserID uuid.UUID) (*types.Property, error)
	GetFacts(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID) (*types.PropertyFacts, error)
	ListIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error)
}

type propertyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPropertyRepo(db *gorm.DB, baseLog *logger.Logger) PropertyRepo {
	return &propertyRepo{db: db, log: baseLog.With("repo", "PropertyRepo")}
}

func (r *propertyRepo) GetByID(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID) (*types.Property, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var prop types.Property
	err := transaction.WithContext(ctx).
		Where("id = ?", propertyID).
		First(&prop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prop, nil
}

func (r *propertyRepo) GetOwned(ctx context.Context, tx *gorm.DB, propertyID, ownerUserID uuid.UUID) (*types.Property, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var prop types.Property
	err := transaction.WithContext(ctx).
		Where("id = ? AND owner_user_id = ?", propertyID, ownerUserID).
		First(&prop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prop, nil
}

func (r *propertyRepo) GetFacts(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID) (*types.PropertyFacts, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var facts types.PropertyFacts
	err := transaction.WithContext(ctx).
		Where("property_id = ?", propertyID).
		First(&facts).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &facts, nil
}

func (r *propertyRepo) ListIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Property{}).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
