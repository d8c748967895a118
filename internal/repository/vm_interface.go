package repository

import (
	"context"
	"errors"

	"vsync/internal/model"

	"gorm.io/gorm"
)

type VMInterfaceRepository interface {
	GetByNameAndVM(ctx context.Context, name string, vmID int64) (*model.VMInterface, error)
	GetByNameVMAndMAC(ctx context.Context, name string, vmID int64, mac string) (*model.VMInterface, error)
	GetOrCreate(ctx context.Context, iface *model.VMInterface) (*model.VMInterface, bool, error)
	ListByVM(ctx context.Context, vmID int64) ([]*model.VMInterface, error)
	Save(ctx context.Context, iface *model.VMInterface) error
	Delete(ctx context.Context, id int64) error
}

func NewVMInterfaceRepository(r *Repository) VMInterfaceRepository {
	return &vmInterfaceRepository{Repository: r}
}

type vmInterfaceRepository struct {
	*Repository
}

func (r *vmInterfaceRepository) GetByNameAndVM(ctx context.Context, name string, vmID int64) (*model.VMInterface, error) {
	var iface model.VMInterface
	if err := r.DB(ctx).Where("name = ? AND virtual_machine_id = ?", name, vmID).First(&iface).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &iface, nil
}

func (r *vmInterfaceRepository) GetByNameVMAndMAC(ctx context.Context, name string, vmID int64, mac string) (*model.VMInterface, error) {
	var iface model.VMInterface
	if err := r.DB(ctx).Where("name = ? AND virtual_machine_id = ? AND mac_address = ?", name, vmID, mac).First(&iface).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &iface, nil
}

func (r *vmInterfaceRepository) GetOrCreate(ctx context.Context, iface *model.VMInterface) (*model.VMInterface, bool, error) {
	existing, err := r.GetByNameAndVM(ctx, iface.Name, iface.VirtualMachineID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	if err := r.DB(ctx).Create(iface).Error; err != nil {
		return nil, false, err
	}
	return iface, true, nil
}

func (r *vmInterfaceRepository) ListByVM(ctx context.Context, vmID int64) ([]*model.VMInterface, error) {
	var ifaces []*model.VMInterface
	if err := r.DB(ctx).Where("virtual_machine_id = ?", vmID).Find(&ifaces).Error; err != nil {
		return nil, err
	}
	return ifaces, nil
}

func (r *vmInterfaceRepository) Save(ctx context.Context, iface *model.VMInterface) error {
	return r.DB(ctx).Save(iface).Error
}

func (r *vmInterfaceRepository) Delete(ctx context.Context, id int64) error {
	return r.DB(ctx).Where("id = ?", id).Delete(&model.VMInterface{}).Error
}
