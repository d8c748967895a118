package repository

import (
	"context"
	"errors"

	"vsync/internal/model"

	"gorm.io/gorm"
)

type ClusterRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Cluster, error)
	GetByName(ctx context.Context, name string) (*model.Cluster, error)
	GetOrCreate(ctx context.Context, name string, typeID int64) (*model.Cluster, bool, error)
	ListByTag(ctx context.Context, tag string) ([]*model.Cluster, error)
	Save(ctx context.Context, cluster *model.Cluster) error
	Delete(ctx context.Context, id int64) error
}

func NewClusterRepository(r *Repository) ClusterRepository {
	return &clusterRepository{Repository: r}
}

type clusterRepository struct {
	*Repository
}

func (r *clusterRepository) GetByID(ctx context.Context, id int64) (*model.Cluster, error) {
	var cluster model.Cluster
	if err := r.DB(ctx).Where("id = ?", id).First(&cluster).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cluster, nil
}

func (r *clusterRepository) GetByName(ctx context.Context, name string) (*model.Cluster, error) {
	var cluster model.Cluster
	if err := r.DB(ctx).Where("name = ?", name).First(&cluster).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cluster, nil
}

func (r *clusterRepository) GetOrCreate(ctx context.Context, name string, typeID int64) (*model.Cluster, bool, error) {
	existing, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	cluster := &model.Cluster{
		Name:   name,
		TypeID: typeID,
	}
	if err := r.DB(ctx).Create(cluster).Error; err != nil {
		return nil, false, err
	}
	return cluster, true, nil
}

func (r *clusterRepository) ListByTag(ctx context.Context, tag string) ([]*model.Cluster, error) {
	var clusters []*model.Cluster
	if err := r.DB(ctx).Where("sync_tag = ?", tag).Find(&clusters).Error; err != nil {
		return nil, err
	}
	return clusters, nil
}

func (r *clusterRepository) Save(ctx context.Context, cluster *model.Cluster) error {
	return r.DB(ctx).Save(cluster).Error
}

func (r *clusterRepository) Delete(ctx context.Context, id int64) error {
	return r.DB(ctx).Where("id = ?", id).Delete(&model.Cluster{}).Error
}
