package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"gorm.io/gorm"
)

const blogCategoryEntity = "blog category"

type BlogCategoryRepo struct {
	db *gorm.DB
}

func NewBlogCategoryRepo(db *gorm.DB) *BlogCategoryRepo {
	return &BlogCategoryRepo{db}
}

// FindAll returns all blog categories sorted by name
func (r *BlogCategoryRepo) FindAll(ctx context.Context) ([]models.BlogCategory, error) {
	var categories []models.BlogCategory
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "blog categories", err)
	}
	return categories, nil
}

func (r *BlogCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.BlogCategory, error) {
	return findOne[models.BlogCategory](r.db.WithContext(ctx), blogCategoryEntity, "id = ?", id)
}

func (r *BlogCategoryRepo) Create(ctx context.Context, category *models.BlogCategory, opts WriteOptions) error {
	return inTransaction(ctx, r.db, "create", blogCategoryEntity, func(tx *gorm.DB) error {
		if err := AssignSlug(tx, category, opts.Slug, nil); err != nil {
			return err
		}
		return tx.Create(category).Error
	})
}

func (r *BlogCategoryRepo) Update(ctx context.Context, category *models.BlogCategory, opts WriteOptions) error {
	return inTransaction(ctx, r.db, "update", blogCategoryEntity, func(tx *gorm.DB) error {
		existing, err := findOne[models.BlogCategory](tx, blogCategoryEntity, "id = ?", category.ID)
		if err != nil {
			return err
		}
		category.CreatedAt = existing.CreatedAt
		category.Slug = existing.Slug
		if err := AssignSlug(tx, category, opts.Slug, &existing.Name); err != nil {
			return err
		}
		return tx.Save(category).Error
	})
}

// Delete refuses to remove a category that still has posts
func (r *BlogCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return inTransaction(ctx, r.db, "delete", blogCategoryEntity, func(tx *gorm.DB) error {
		if _, err := findOne[models.BlogCategory](tx, blogCategoryEntity, "id = ?", id); err != nil {
			return err
		}
		if err := ensureNoDependents(tx, blogCategoryEntity, "blog_posts", "blog_category_id", id); err != nil {
			return err
		}
		return deleteByID(tx, &models.BlogCategory{}, blogCategoryEntity, id)
	})
}
