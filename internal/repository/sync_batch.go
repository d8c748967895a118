package repository

import (
	"context"
	"errors"

	"vsync/internal/model"

	"gorm.io/gorm"
)

type SyncBatchRepository interface {
	Create(ctx context.Context, batch *model.SyncBatch) error
	GetByID(ctx context.Context, id int64) (*model.SyncBatch, error)
	GetLatestCompleted(ctx context.Context) (*model.SyncBatch, error)
	ListWithPagination(ctx context.Context, page, pageSize int) ([]*model.SyncBatch, int64, error)
}

func NewSyncBatchRepository(r *Repository) SyncBatchRepository {
	return &syncBatchRepository{Repository: r}
}

type syncBatchRepository struct {
	*Repository
}

func (r *syncBatchRepository) Create(ctx context.Context, batch *model.SyncBatch) error {
	return r.DB(ctx).Create(batch).Error
}

func (r *syncBatchRepository) GetByID(ctx context.Context, id int64) (*model.SyncBatch, error) {
	var batch model.SyncBatch
	if err := r.DB(ctx).Where("id = ?", id).First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &batch, nil
}

func (r *syncBatchRepository) GetLatestCompleted(ctx context.Context) (*model.SyncBatch, error) {
	var batch model.SyncBatch
	err := r.DB(ctx).
		Where("status = ?", "completed").
		Order("start_time DESC").
		First(&batch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &batch, nil
}

func (r *syncBatchRepository) ListWithPagination(ctx context.Context, page, pageSize int) ([]*model.SyncBatch, int64, error) {
	var batches []*model.SyncBatch
	var total int64

	if err := r.DB(ctx).Model(&model.SyncBatch{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.DB(ctx).Offset(offset).Limit(pageSize).Order("start_time DESC").Find(&batches).Error; err != nil {
		return nil, 0, err
	}

	return batches, total, nil
}
