package repository

import (
	"context"
	"errors"

	"vsync/internal/model"

	"gorm.io/gorm"
)

type SiteRepository interface {
	Create(ctx context.Context, site *model.Site) error
	GetBySlug(ctx context.Context, slug string) (*model.Site, error)
	List(ctx context.Context) ([]*model.Site, error)
}

func NewSiteRepository(r *Repository) SiteRepository {
	return &siteRepository{Repository: r}
}

type siteRepository struct {
	*Repository
}

func (r *siteRepository) Create(ctx context.Context, site *model.Site) error {
	return r.DB(ctx).Create(site).Error
}

func (r *siteRepository) GetBySlug(ctx context.Context, slug string) (*model.Site, error) {
	var site model.Site
	if err := r.DB(ctx).Where("slug = ?", slug).First(&site).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &site, nil
}

func (r *siteRepository) List(ctx context.Context) ([]*model.Site, error) {
	var sites []*model.Site
	if err := r.DB(ctx).Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}
