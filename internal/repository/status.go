package repository

import (
	"context"
	"errors"

	"vsync/internal/model"

	"gorm.io/gorm"
)

type StatusRepository interface {
	Create(ctx context.Context, status *model.Status) error
	GetByName(ctx context.Context, name string) (*model.Status, error)
	List(ctx context.Context) ([]*model.Status, error)
}

func NewStatusRepository(r *Repository) StatusRepository {
	return &statusRepository{Repository: r}
}

type statusRepository struct {
	*Repository
}

func (r *statusRepository) Create(ctx context.Context, status *model.Status) error {
	return r.DB(ctx).Create(status).Error
}

func (r *statusRepository) GetByName(ctx context.Context, name string) (*model.Status, error) {
	var status model.Status
	if err := r.DB(ctx).Where("name = ?", name).First(&status).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

func (r *statusRepository) List(ctx context.Context) ([]*model.Status, error) {
	var statuses []*model.Status
	if err := r.DB(ctx).Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}
