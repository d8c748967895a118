package repository

import (
	"context"
	"errors"

	"vsync/internal/model"

	"github.com/duke-git/lancet/v2/strutil"
	"gorm.io/gorm"
)

type ClusterGroupRepository interface {
	GetByID(ctx context.Context, id int64) (*model.ClusterGroup, error)
	GetByName(ctx context.Context, name string) (*model.ClusterGroup, error)
	GetOrCreate(ctx context.Context, name string) (*model.ClusterGroup, bool, error)
	ListByTag(ctx context.Context, tag string) ([]*model.ClusterGroup, error)
	Save(ctx context.Context, group *model.ClusterGroup) error
	Delete(ctx context.Context, id int64) error
}

func NewClusterGroupRepository(r *Repository) ClusterGroupRepository {
	return &clusterGroupRepository{Repository: r}
}

type clusterGroupRepository struct {
	*Repository
}

func (r *clusterGroupRepository) GetByID(ctx context.Context, id int64) (*model.ClusterGroup, error) {
	var group model.ClusterGroup
	if err := r.DB(ctx).Where("id = ?", id).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *clusterGroupRepository) GetByName(ctx context.Context, name string) (*model.ClusterGroup, error) {
	var group model.ClusterGroup
	if err := r.DB(ctx).Where("name = ?", name).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *clusterGroupRepository) GetOrCreate(ctx context.Context, name string) (*model.ClusterGroup, bool, error) {
	existing, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	group := &model.ClusterGroup{
		Name: name,
		Slug: strutil.KebabCase(name),
	}
	if err := r.DB(ctx).Create(group).Error; err != nil {
		return nil, false, err
	}
	return group, true, nil
}

func (r *clusterGroupRepository) ListByTag(ctx context.Context, tag string) ([]*model.ClusterGroup, error) {
	var groups []*model.ClusterGroup
	if err := r.DB(ctx).Where("sync_tag = ?", tag).Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *clusterGroupRepository) Save(ctx context.Context, group *model.ClusterGroup) error {
	return r.DB(ctx).Save(group).Error
}

func (r *clusterGroupRepository) Delete(ctx context.Context, id int64) error {
	return r.DB(ctx).Where("id = ?", id).Delete(&model.ClusterGroup{}).Error
}
