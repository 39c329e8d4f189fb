package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"gorm.io/gorm"
)

const blogTagEntity = "blog tag"

type BlogTagRepo struct {
	db *gorm.DB
}

func NewBlogTagRepo(db *gorm.DB) *BlogTagRepo {
	return &BlogTagRepo{db}
}

// FindAll returns all blog tags sorted by name
func (r *BlogTagRepo) FindAll(ctx context.Context) ([]models.BlogTag, error) {
	var tags []models.BlogTag
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "blog tags", err)
	}
	return tags, nil
}

func (r *BlogTagRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.BlogTag, error) {
	return findOne[models.BlogTag](r.db.WithContext(ctx), blogTagEntity, "id = ?", id)
}

func (r *BlogTagRepo) Create(ctx context.Context, tag *models.BlogTag, opts WriteOptions) error {
	return inTransaction(ctx, r.db, "create", blogTagEntity, func(tx *gorm.DB) error {
		if err := AssignSlug(tx, tag, opts.Slug, nil); err != nil {
			return err
		}
		return tx.Create(tag).Error
	})
}

func (r *BlogTagRepo) Update(ctx context.Context, tag *models.BlogTag, opts WriteOptions) error {
	return inTransaction(ctx, r.db, "update", blogTagEntity, func(tx *gorm.DB) error {
		existing, err := findOne[models.BlogTag](tx, blogTagEntity, "id = ?", tag.ID)
		if err != nil {
			return err
		}
		tag.CreatedAt = existing.CreatedAt
		tag.Slug = existing.Slug
		if err := AssignSlug(tx, tag, opts.Slug, &existing.Name); err != nil {
			return err
		}
		return tx.Save(tag).Error
	})
}

// Delete detaches the tag from every post before removing it
func (r *BlogTagRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return inTransaction(ctx, r.db, "delete", blogTagEntity, func(tx *gorm.DB) error {
		if _, err := findOne[models.BlogTag](tx, blogTagEntity, "id = ?", id); err != nil {
			return err
		}
		if err := tx.Where("blog_tag_id = ?", id).Delete(&blogPostTag{}).Error; err != nil {
			return errs.NewDatabaseError("detach", blogTagEntity, err)
		}
		return deleteByID(tx, &models.BlogTag{}, blogTagEntity, id)
	})
}
