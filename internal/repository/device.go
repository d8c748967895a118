package repository

import (
	"context"
	"errors"

	"vsync/internal/model"

	"gorm.io/gorm"
)

type DeviceRepository interface {
	GetByName(ctx context.Context, name string) (*model.Device, error)
	UpdateOrCreate(ctx context.Context, device *model.Device) (*model.Device, bool, error)
	ListByTag(ctx context.Context, tag string) ([]*model.Device, error)
	Save(ctx context.Context, device *model.Device) error
	Delete(ctx context.Context, id int64) error
}

func NewDeviceRepository(r *Repository) DeviceRepository {
	return &deviceRepository{Repository: r}
}

type deviceRepository struct {
	*Repository
}

func (r *deviceRepository) GetByName(ctx context.Context, name string) (*model.Device, error) {
	var device model.Device
	if err := r.DB(ctx).Where("name = ?", name).First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &device, nil
}

// UpdateOrCreate 按名称（不区分大小写）匹配，存在则覆盖属性字段，不存在则创建。
func (r *deviceRepository) UpdateOrCreate(ctx context.Context, device *model.Device) (*model.Device, bool, error) {
	var existing model.Device
	err := r.DB(ctx).Where("LOWER(name) = LOWER(?)", device.Name).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
		if err := r.DB(ctx).Create(device).Error; err != nil {
			return nil, false, err
		}
		return device, true, nil
	}

	existing.Name = device.Name
	existing.StatusID = device.StatusID
	existing.RoleID = device.RoleID
	existing.TypeID = device.TypeID
	existing.SiteID = device.SiteID
	existing.ClusterID = device.ClusterID
	if err := r.DB(ctx).Save(&existing).Error; err != nil {
		return nil, false, err
	}
	*device = existing
	return device, false, nil
}

func (r *deviceRepository) ListByTag(ctx context.Context, tag string) ([]*model.Device, error) {
	var devices []*model.Device
	if err := r.DB(ctx).Where("sync_tag = ?", tag).Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

func (r *deviceRepository) Save(ctx context.Context, device *model.Device) error {
	return r.DB(ctx).Save(device).Error
}

func (r *deviceRepository) Delete(ctx context.Context, id int64) error {
	return r.DB(ctx).Where("id = ?", id).Delete(&model.Device{}).Error
}
