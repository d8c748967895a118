package repository

import (
	"context"
	"errors"

	"vsync/internal/model"

	"gorm.io/gorm"
)

type DeviceTypeRepository interface {
	Create(ctx context.Context, dt *model.DeviceType) error
	GetByModel(ctx context.Context, modelName string) (*model.DeviceType, error)
	List(ctx context.Context) ([]*model.DeviceType, error)
}

func NewDeviceTypeRepository(r *Repository) DeviceTypeRepository {
	return &deviceTypeRepository{Repository: r}
}

type deviceTypeRepository struct {
	*Repository
}

func (r *deviceTypeRepository) Create(ctx context.Context, dt *model.DeviceType) error {
	return r.DB(ctx).Create(dt).Error
}

func (r *deviceTypeRepository) GetByModel(ctx context.Context, modelName string) (*model.DeviceType, error) {
	var dt model.DeviceType
	if err := r.DB(ctx).Where("model = ?", modelName).First(&dt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dt, nil
}

func (r *deviceTypeRepository) List(ctx context.Context) ([]*model.DeviceType, error) {
	var types []*model.DeviceType
	if err := r.DB(ctx).Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}
