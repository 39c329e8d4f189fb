package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const serviceEntity = "service"

type ServiceRepo struct {
	db *gorm.DB
}

func NewServiceRepo(db *gorm.DB) *ServiceRepo {
	return &ServiceRepo{db}
}

func ServiceScope() Scope {
	return TableScope("services")
}

func withServiceFeatures(q *gorm.DB) *gorm.DB {
	return q.Preload("Features", byDisplayOrder)
}

// FindAll returns services in display order, optionally only the active ones
func (r *ServiceRepo) FindAll(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	q := withServiceFeatures(r.db.WithContext(ctx))
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var services []models.Service
	if err := q.Order("display_order ASC").Order("title ASC").Order("created_at ASC").Find(&services).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "services", err)
	}
	return services, nil
}

func (r *ServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	return findOne[models.Service](withServiceFeatures(r.db.WithContext(ctx)), serviceEntity, "id = ?", id)
}

func (r *ServiceRepo) FindActiveBySlug(ctx context.Context, slug string) (*models.Service, error) {
	return findOne[models.Service](withServiceFeatures(r.db.WithContext(ctx)), serviceEntity, "slug = ? AND is_active = ?", slug, true)
}

func (r *ServiceRepo) Create(ctx context.Context, service *models.Service, features []Child[models.ServiceFeature], opts WriteOptions) (*models.Service, error) {
	err := inTransaction(ctx, r.db, "create", serviceEntity, func(tx *gorm.DB) error {
		if err := AssignSlug(tx, service, opts.Slug, nil); err != nil {
			return err
		}
		if err := orderedPlacement(tx, ServiceScope(), opts.DisplayOrder, service.SetDisplayOrder); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(service).Error; err != nil {
			return errs.NewDatabaseError("create", serviceEntity, err)
		}
		_, _, err := SyncChildren[models.ServiceFeature](tx, "service_id", service.ID, features)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, service.ID)
}

// Update overwrites the service identified by service.ID. A nil features
// keeps the current feature list.
func (r *ServiceRepo) Update(ctx context.Context, service *models.Service, features *[]Child[models.ServiceFeature], opts WriteOptions) (*models.Service, error) {
	err := inTransaction(ctx, r.db, "update", serviceEntity, func(tx *gorm.DB) error {
		existing, err := findOne[models.Service](tx, serviceEntity, "id = ?", service.ID)
		if err != nil {
			return err
		}
		service.CreatedAt = existing.CreatedAt
		service.Slug = existing.Slug
		service.DisplayOrder = existing.DisplayOrder
		if err := AssignSlug(tx, service, opts.Slug, &existing.Title); err != nil {
			return err
		}
		if opts.DisplayOrder != nil {
			if err := orderedPlacement(tx, ServiceScope(), opts.DisplayOrder, service.SetDisplayOrder); err != nil {
				return err
			}
		}
		if err := tx.Omit(clause.Associations).Save(service).Error; err != nil {
			return errs.NewDatabaseError("update", serviceEntity, err)
		}
		if features != nil {
			if _, _, err := SyncChildren[models.ServiceFeature](tx, "service_id", service.ID, *features); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, service.ID)
}

func (r *ServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return inTransaction(ctx, r.db, "delete", serviceEntity, func(tx *gorm.DB) error {
		if _, err := findOne[models.Service](tx, serviceEntity, "id = ?", id); err != nil {
			return err
		}
		if err := tx.Where("service_id = ?", id).Delete(&models.ServiceFeature{}).Error; err != nil {
			return errs.NewDatabaseError("delete features of", serviceEntity, err)
		}
		return deleteByID(tx, &models.Service{}, serviceEntity, id)
	})
}
