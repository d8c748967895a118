package repository

import (
	"context"
	"errors"

	"vsync/internal/model"

	"gorm.io/gorm"
)

type VirtualMachineRepository interface {
	GetByID(ctx context.Context, id int64) (*model.VirtualMachine, error)
	GetByName(ctx context.Context, name string) (*model.VirtualMachine, error)
	GetOrCreate(ctx context.Context, vm *model.VirtualMachine) (*model.VirtualMachine, bool, error)
	ListByTag(ctx context.Context, tag string) ([]*model.VirtualMachine, error)
	Save(ctx context.Context, vm *model.VirtualMachine) error
	Delete(ctx context.Context, id int64) error
}

func NewVirtualMachineRepository(r *Repository) VirtualMachineRepository {
	return &virtualMachineRepository{Repository: r}
}

type virtualMachineRepository struct {
	*Repository
}

func (r *virtualMachineRepository) GetByID(ctx context.Context, id int64) (*model.VirtualMachine, error) {
	var vm model.VirtualMachine
	if err := r.DB(ctx).Where("id = ?", id).First(&vm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vm, nil
}

func (r *virtualMachineRepository) GetByName(ctx context.Context, name string) (*model.VirtualMachine, error) {
	var vm model.VirtualMachine
	if err := r.DB(ctx).Where("name = ?", name).First(&vm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vm, nil
}

// GetOrCreate 按名称匹配，已存在时返回现有记录且不覆盖任何字段。
func (r *virtualMachineRepository) GetOrCreate(ctx context.Context, vm *model.VirtualMachine) (*model.VirtualMachine, bool, error) {
	existing, err := r.GetByName(ctx, vm.Name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	if err := r.DB(ctx).Create(vm).Error; err != nil {
		return nil, false, err
	}
	return vm, true, nil
}

func (r *virtualMachineRepository) ListByTag(ctx context.Context, tag string) ([]*model.VirtualMachine, error) {
	var vms []*model.VirtualMachine
	if err := r.DB(ctx).Where("sync_tag = ?", tag).Find(&vms).Error; err != nil {
		return nil, err
	}
	return vms, nil
}

func (r *virtualMachineRepository) Save(ctx context.Context, vm *model.VirtualMachine) error {
	return r.DB(ctx).Save(vm).Error
}

func (r *virtualMachineRepository) Delete(ctx context.Context, id int64) error {
	return r.DB(ctx).Where("id = ?", id).Delete(&model.VirtualMachine{}).Error
}
