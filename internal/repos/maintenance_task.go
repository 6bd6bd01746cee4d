package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthstack/homescore-backend/internal/platform/logger"
	"github.com/hearthstack/homescore-backend/internal/types"
)

type MaintenanceTaskRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, tasks []*types.MaintenanceTask) ([]*types.MaintenanceTask, error)
	CountOpenCritical(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID) (int64, error)
	CountOverdue(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID, asOf time.Time) (int64, error)
	ExistsOpenForSystem(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID, systemType string) (bool, error)
}

type maintenanceTaskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMaintenanceTaskRepo(db *gorm.DB, baseLog *logger.Logger) MaintenanceTaskRepo {
	return &maintenanceTaskRepo{db: db, log: baseLog.With("repo", "MaintenanceTaskRepo")}
}

func (r *maintenanceTaskRepo) CreateBatch(ctx context.Context, tx *gorm.DB, tasks []*types.MaintenanceTask) ([]*types.MaintenanceTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(tasks) == 0 {
		return []*types.MaintenanceTask{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *maintenanceTaskRepo) CountOpenCritical(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.MaintenanceTask{}).
		Where("property_id = ? AND status = ? AND priority = ?", propertyID, types.MaintenanceStatusOpen, types.MaintenancePriorityCritical).
		Count(&count).Error
	return count, err
}

func (r *maintenanceTaskRepo) CountOverdue(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID, asOf time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.MaintenanceTask{}).
		Where("property_id = ? AND status = ? AND due_at IS NOT NULL AND due_at < ?", propertyID, types.MaintenanceStatusOpen, asOf).
		Count(&count).Error
	return count, err
}

func (r *maintenanceTaskRepo) ExistsOpenForSystem(ctx context.Context, tx *gorm.DB, propertyID uuid.UUID, systemType string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.MaintenanceTask{}).
		Where("property_id = ? AND system_type = ? AND status = ?", propertyID, systemType, types.MaintenanceStatusOpen).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
