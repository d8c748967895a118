package repository

import (
	"context"
	"errors"

	"vsync/internal/model"

	"gorm.io/gorm"
)

type DeviceRoleRepository interface {
	Create(ctx context.Context, role *model.DeviceRole) error
	GetByName(ctx context.Context, name string) (*model.DeviceRole, error)
	List(ctx context.Context) ([]*model.DeviceRole, error)
}

func NewDeviceRoleRepository(r *Repository) DeviceRoleRepository {
	return &deviceRoleRepository{Repository: r}
}

type deviceRoleRepository struct {
	*Repository
}

func (r *deviceRoleRepository) Create(ctx context.Context, role *model.DeviceRole) error {
	return r.DB(ctx).Create(role).Error
}

func (r *deviceRoleRepository) GetByName(ctx context.Context, name string) (*model.DeviceRole, error) {
	var role model.DeviceRole
	if err := r.DB(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *deviceRoleRepository) List(ctx context.Context) ([]*model.DeviceRole, error) {
	var roles []*model.DeviceRole
	if err := r.DB(ctx).Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}
