package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const projectEntity = "project"

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

// ProjectFilter narrows a project listing. Zero values do not filter.
type ProjectFilter struct {
	TypeSlug     string
	Status       models.ProjectStatus
	FeaturedOnly bool
}

// ProjectChildren holds replacement sets for a project's nested collections.
// A nil field leaves that collection untouched.
type ProjectChildren struct {
	Images   *[]Child[models.ProjectImage]
	Features *[]Child[models.ProjectFeature]
	Metrics  *[]Child[models.ProjectMetric]
	Videos   *[]Child[models.ProjectVideo]
}

func ProjectScope() Scope {
	return TableScope("projects")
}

func withProjectRelations(q *gorm.DB) *gorm.DB {
	return q.Preload("ProjectType").
		Preload("Images", byDisplayOrder).
		Preload("Features", byDisplayOrder).
		Preload("Metrics", byDisplayOrder).
		Preload("Videos", byDisplayOrder)
}

// FindAll returns projects ordered by display_order, then title
func (r *ProjectRepo) FindAll(ctx context.Context, filter ProjectFilter) ([]models.Project, error) {
	q := withProjectRelations(r.db.WithContext(ctx))
	if filter.TypeSlug != "" {
		q = q.Where("project_type_id IN (?)", r.db.Table("project_types").Select("id").Where("slug = ?", filter.TypeSlug))
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.FeaturedOnly {
		q = q.Where("is_featured = ?", true)
	}

	var projects []models.Project
	if err := q.Order("display_order ASC").Order("title ASC").Order("created_at ASC").Find(&projects).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "projects", err)
	}
	return projects, nil
}

func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return findOne[models.Project](withProjectRelations(r.db.WithContext(ctx)), projectEntity, "id = ?", id)
}

func (r *ProjectRepo) FindBySlug(ctx context.Context, slug string) (*models.Project, error) {
	return findOne[models.Project](withProjectRelations(r.db.WithContext(ctx)), projectEntity, "slug = ?", slug)
}

// Create inserts a project with its nested collections in one transaction
func (r *ProjectRepo) Create(ctx context.Context, project *models.Project, children ProjectChildren, opts WriteOptions) (*models.Project, error) {
	err := inTransaction(ctx, r.db, "create", projectEntity, func(tx *gorm.DB) error {
		if err := checkProject(tx, project); err != nil {
			return err
		}
		if err := AssignSlug(tx, project, opts.Slug, nil); err != nil {
			return err
		}
		if err := orderedPlacement(tx, ProjectScope(), opts.DisplayOrder, project.SetDisplayOrder); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return errs.NewDatabaseError("create", projectEntity, err)
		}
		_, err := syncProjectChildren(tx, project.ID, children)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, project.ID)
}

// Update overwrites the project identified by project.ID. It returns the
// stored paths the project no longer references; the caller deletes them
// once the transaction has committed.
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project, children ProjectChildren, opts WriteOptions) (*models.Project, []string, error) {
	var orphaned []string
	err := inTransaction(ctx, r.db, "update", projectEntity, func(tx *gorm.DB) error {
		existing, err := findOne[models.Project](tx.Preload("Images"), projectEntity, "id = ?", project.ID)
		if err != nil {
			return err
		}
		if err := checkProject(tx, project); err != nil {
			return err
		}

		project.CreatedAt = existing.CreatedAt
		project.Slug = existing.Slug
		if err := AssignSlug(tx, project, opts.Slug, &existing.Title); err != nil {
			return err
		}
		project.DisplayOrder = existing.DisplayOrder
		if opts.DisplayOrder != nil {
			if err := orderedPlacement(tx, ProjectScope(), opts.DisplayOrder, project.SetDisplayOrder); err != nil {
				return err
			}
		}

		if err := tx.Omit(clause.Associations).Save(project).Error; err != nil {
			return errs.NewDatabaseError("update", projectEntity, err)
		}

		images, err := syncProjectChildren(tx, project.ID, children)
		if err != nil {
			return err
		}
		after := models.Project{ThumbnailPath: project.ThumbnailPath, Images: existing.Images}
		if children.Images != nil {
			after.Images = images
		}
		orphaned = orphanedPaths(existing.AssetPaths(), after.AssetPaths())
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	updated, err := r.FindByID(ctx, project.ID)
	return updated, orphaned, err
}

// ToggleStatus flips a project between ongoing and completed
func (r *ProjectRepo) ToggleStatus(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	err := inTransaction(ctx, r.db, "toggle status", projectEntity, func(tx *gorm.DB) error {
		project, err := findOne[models.Project](tx, projectEntity, "id = ?", id)
		if err != nil {
			return err
		}
		return tx.Model(&models.Project{}).
			Where("id = ?", id).
			Updates(map[string]any{"status": project.Status.Toggled(), "updated_at": time.Now()}).
			Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// Delete removes the project and its children and returns the stored paths it referenced
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) ([]string, error) {
	var paths []string
	err := inTransaction(ctx, r.db, "delete", projectEntity, func(tx *gorm.DB) error {
		project, err := findOne[models.Project](tx.Preload("Images"), projectEntity, "id = ?", id)
		if err != nil {
			return err
		}
		paths = project.AssetPaths()

		for _, child := range []any{&models.ProjectImage{}, &models.ProjectFeature{}, &models.ProjectMetric{}, &models.ProjectVideo{}} {
			if err := tx.Where("project_id = ?", id).Delete(child).Error; err != nil {
				return errs.NewDatabaseError("delete children of", projectEntity, err)
			}
		}
		return deleteByID(tx, &models.Project{}, projectEntity, id)
	})
	return paths, err
}

func checkProject(tx *gorm.DB, project *models.Project) error {
	if project.Status == "" {
		project.Status = models.ProjectOngoing
	}
	if !project.Status.Valid() {
		return errs.NewFieldValidationError("status", "must be ongoing or completed")
	}
	if project.ProjectTypeID != nil {
		return ensureReference(tx, "project_types", "project_type_id", *project.ProjectTypeID)
	}
	return nil
}

// syncProjectChildren replaces the collections present in children and
// returns the new image set when images were replaced.
func syncProjectChildren(tx *gorm.DB, projectID uuid.UUID, children ProjectChildren) ([]models.ProjectImage, error) {
	var images []models.ProjectImage
	if children.Images != nil {
		_, created, err := SyncChildren[models.ProjectImage](tx, "project_id", projectID, *children.Images)
		if err != nil {
			return nil, err
		}
		images = created
	}
	if children.Features != nil {
		if _, _, err := SyncChildren[models.ProjectFeature](tx, "project_id", projectID, *children.Features); err != nil {
			return nil, err
		}
	}
	if children.Metrics != nil {
		if _, _, err := SyncChildren[models.ProjectMetric](tx, "project_id", projectID, *children.Metrics); err != nil {
			return nil, err
		}
	}
	if children.Videos != nil {
		if _, _, err := SyncChildren[models.ProjectVideo](tx, "project_id", projectID, *children.Videos); err != nil {
			return nil, err
		}
	}
	return images, nil
}
