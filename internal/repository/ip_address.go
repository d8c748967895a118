package repository

import (
	"context"
	"errors"

	"vsync/internal/model"

	"gorm.io/gorm"
)

type IPAddressRepository interface {
	GetByID(ctx context.Context, id int64) (*model.IPAddress, error)
	GetByHostPrefix(ctx context.Context, host string, prefixLength int) (*model.IPAddress, error)
	GetOrCreate(ctx context.Context, ip *model.IPAddress) (*model.IPAddress, bool, error)
	ListByInterface(ctx context.Context, interfaceID int64) ([]*model.IPAddress, error)
	ListByTag(ctx context.Context, tag string) ([]*model.IPAddress, error)
	Save(ctx context.Context, ip *model.IPAddress) error
	Delete(ctx context.Context, id int64) error
}

func NewIPAddressRepository(r *Repository) IPAddressRepository {
	return &ipAddressRepository{Repository: r}
}

type ipAddressRepository struct {
	*Repository
}

func (r *ipAddressRepository) GetByID(ctx context.Context, id int64) (*model.IPAddress, error) {
	var ip model.IPAddress
	if err := r.DB(ctx).Where("id = ?", id).First(&ip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ip, nil
}

func (r *ipAddressRepository) GetByHostPrefix(ctx context.Context, host string, prefixLength int) (*model.IPAddress, error) {
	var ip model.IPAddress
	if err := r.DB(ctx).Where("host = ? AND prefix_length = ?", host, prefixLength).First(&ip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ip, nil
}

func (r *ipAddressRepository) GetOrCreate(ctx context.Context, ip *model.IPAddress) (*model.IPAddress, bool, error) {
	existing, err := r.GetByHostPrefix(ctx, ip.Host, ip.PrefixLength)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	if err := r.DB(ctx).Create(ip).Error; err != nil {
		return nil, false, err
	}
	return ip, true, nil
}

func (r *ipAddressRepository) ListByInterface(ctx context.Context, interfaceID int64) ([]*model.IPAddress, error) {
	var ips []*model.IPAddress
	if err := r.DB(ctx).Where("interface_id = ?", interfaceID).Find(&ips).Error; err != nil {
		return nil, err
	}
	return ips, nil
}

func (r *ipAddressRepository) ListByTag(ctx context.Context, tag string) ([]*model.IPAddress, error) {
	var ips []*model.IPAddress
	if err := r.DB(ctx).Where("sync_tag = ?", tag).Find(&ips).Error; err != nil {
		return nil, err
	}
	return ips, nil
}

func (r *ipAddressRepository) Save(ctx context.Context, ip *model.IPAddress) error {
	return r.DB(ctx).Save(ip).Error
}

func (r *ipAddressRepository) Delete(ctx context.Context, id int64) error {
	return r.DB(ctx).Where("id = ?", id).Delete(&model.IPAddress{}).Error
}
