package repository

import (
	"context"
	"errors"

	"vsync/internal/model"

	"gorm.io/gorm"
)

type ClusterTypeRepository interface {
	GetByName(ctx context.Context, name string) (*model.ClusterType, error)
	GetOrCreate(ctx context.Context, name string) (*model.ClusterType, bool, error)
	List(ctx context.Context) ([]*model.ClusterType, error)
	Save(ctx context.Context, ct *model.ClusterType) error
}

func NewClusterTypeRepository(r *Repository) ClusterTypeRepository {
	return &clusterTypeRepository{Repository: r}
}

type clusterTypeRepository struct {
	*Repository
}

func (r *clusterTypeRepository) GetByName(ctx context.Context, name string) (*model.ClusterType, error) {
	var ct model.ClusterType
	if err := r.DB(ctx).Where("name = ?", name).First(&ct).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ct, nil
}

func (r *clusterTypeRepository) GetOrCreate(ctx context.Context, name string) (*model.ClusterType, bool, error) {
	existing, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	ct := &model.ClusterType{Name: name}
	if err := r.DB(ctx).Create(ct).Error; err != nil {
		return nil, false, err
	}
	return ct, true, nil
}

func (r *clusterTypeRepository) List(ctx context.Context) ([]*model.ClusterType, error) {
	var types []*model.ClusterType
	if err := r.DB(ctx).Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *clusterTypeRepository) Save(ctx context.Context, ct *model.ClusterType) error {
	return r.DB(ctx).Save(ct).Error
}
