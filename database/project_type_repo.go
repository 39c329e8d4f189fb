package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"gorm.io/gorm"
)

const projectTypeEntity = "project type"

type ProjectTypeRepo struct {
	db *gorm.DB
}

func NewProjectTypeRepo(db *gorm.DB) *ProjectTypeRepo {
	return &ProjectTypeRepo{db}
}

func ProjectTypeScope() Scope {
	return TableScope("project_types")
}

func (r *ProjectTypeRepo) FindAll(ctx context.Context) ([]models.ProjectType, error) {
	var types []models.ProjectType
	err := r.db.WithContext(ctx).Order("display_order ASC").Order("name ASC").Order("created_at ASC").Find(&types).Error
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project types", err)
	}
	return types, nil
}

func (r *ProjectTypeRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ProjectType, error) {
	return findOne[models.ProjectType](r.db.WithContext(ctx), projectTypeEntity, "id = ?", id)
}

func (r *ProjectTypeRepo) Create(ctx context.Context, projectType *models.ProjectType, opts WriteOptions) error {
	return inTransaction(ctx, r.db, "create", projectTypeEntity, func(tx *gorm.DB) error {
		if err := AssignSlug(tx, projectType, opts.Slug, nil); err != nil {
			return err
		}
		if err := orderedPlacement(tx, ProjectTypeScope(), opts.DisplayOrder, projectType.SetDisplayOrder); err != nil {
			return err
		}
		return tx.Create(projectType).Error
	})
}

func (r *ProjectTypeRepo) Update(ctx context.Context, projectType *models.ProjectType, opts WriteOptions) error {
	return inTransaction(ctx, r.db, "update", projectTypeEntity, func(tx *gorm.DB) error {
		existing, err := findOne[models.ProjectType](tx, projectTypeEntity, "id = ?", projectType.ID)
		if err != nil {
			return err
		}
		projectType.CreatedAt = existing.CreatedAt
		projectType.Slug = existing.Slug
		projectType.DisplayOrder = existing.DisplayOrder
		if err := AssignSlug(tx, projectType, opts.Slug, &existing.Name); err != nil {
			return err
		}
		if opts.DisplayOrder != nil {
			if err := orderedPlacement(tx, ProjectTypeScope(), opts.DisplayOrder, projectType.SetDisplayOrder); err != nil {
				return err
			}
		}
		return tx.Save(projectType).Error
	})
}

// Delete refuses to remove a type that projects still use
func (r *ProjectTypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return inTransaction(ctx, r.db, "delete", projectTypeEntity, func(tx *gorm.DB) error {
		if _, err := findOne[models.ProjectType](tx, projectTypeEntity, "id = ?", id); err != nil {
			return err
		}
		if err := ensureNoDependents(tx, projectTypeEntity, "projects", "project_type_id", id); err != nil {
			return err
		}
		return deleteByID(tx, &models.ProjectType{}, projectTypeEntity, id)
	})
}
