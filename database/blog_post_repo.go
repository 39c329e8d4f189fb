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

const blogPostEntity = "blog post"

// blogPostTag is a row of the many-to-many join between posts and tags
type blogPostTag struct {
	BlogPostID uuid.UUID `gorm:"type:uuid;primaryKey"`
	BlogTagID  uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (blogPostTag) TableName() string { return "blog_post_tags" }

type BlogPostRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db: db, now: time.Now}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *BlogPostRepo) GetDB() *gorm.DB {
	return r.db
}

// BlogPostFilter narrows a post listing. Zero values do not filter.
type BlogPostFilter struct {
	PublishedOnly bool
	CategorySlug  string
	TagSlug       string
	FeaturedOnly  bool
}

func withPostRelations(q *gorm.DB) *gorm.DB {
	return q.Preload("Category").Preload("Tags", func(db *gorm.DB) *gorm.DB {
		return db.Order("name ASC")
	})
}

// FindAll returns posts, most recently published first
func (r *BlogPostRepo) FindAll(ctx context.Context, filter BlogPostFilter) ([]models.BlogPost, error) {
	q := withPostRelations(r.db.WithContext(ctx))
	if filter.PublishedOnly {
		q = q.Where("status = ?", models.BlogPostPublished)
	}
	if filter.CategorySlug != "" {
		q = q.Where("blog_category_id IN (?)", r.db.Table("blog_categories").Select("id").Where("slug = ?", filter.CategorySlug))
	}
	if filter.TagSlug != "" {
		tagged := r.db.Table("blog_post_tags").
			Select("blog_post_tags.blog_post_id").
			Joins("JOIN blog_tags ON blog_tags.id = blog_post_tags.blog_tag_id").
			Where("blog_tags.slug = ?", filter.TagSlug)
		q = q.Where("id IN (?)", tagged)
	}
	if filter.FeaturedOnly {
		q = q.Where("is_featured = ?", true)
	}

	var posts []models.BlogPost
	if err := q.Order("published_at DESC").Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "blog posts", err)
	}
	return posts, nil
}

func (r *BlogPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	q := withPostRelations(r.db.WithContext(ctx)).Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	})
	return findOne[models.BlogPost](q, blogPostEntity, "id = ?", id)
}

// FindPublishedBySlug returns a published post with its approved comments
func (r *BlogPostRepo) FindPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	q := withPostRelations(r.db.WithContext(ctx)).Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Where("is_approved = ?", true).Order("created_at ASC")
	})
	return findOne[models.BlogPost](q, blogPostEntity, "slug = ? AND status = ?", slug, models.BlogPostPublished)
}

// Create inserts a post and attaches tagIDs. A post created as published gets
// its publication time.
func (r *BlogPostRepo) Create(ctx context.Context, post *models.BlogPost, tagIDs []uuid.UUID, opts WriteOptions) (*models.BlogPost, error) {
	err := inTransaction(ctx, r.db, "create", blogPostEntity, func(tx *gorm.DB) error {
		if err := r.applyStatus(tx, post); err != nil {
			return err
		}
		if err := AssignSlug(tx, post, opts.Slug, nil); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return errs.NewDatabaseError("create", blogPostEntity, err)
		}
		return replacePostTags(tx, post.ID, tagIDs)
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, post.ID)
}

// Update overwrites the post identified by post.ID. A nil tagIDs keeps the
// current tags. The returned paths are stored files the post no longer uses.
func (r *BlogPostRepo) Update(ctx context.Context, post *models.BlogPost, tagIDs *[]uuid.UUID, opts WriteOptions) (*models.BlogPost, []string, error) {
	var orphaned []string
	err := inTransaction(ctx, r.db, "update", blogPostEntity, func(tx *gorm.DB) error {
		existing, err := findOne[models.BlogPost](tx, blogPostEntity, "id = ?", post.ID)
		if err != nil {
			return err
		}

		post.CreatedAt = existing.CreatedAt
		post.Slug = existing.Slug
		post.ViewCount = existing.ViewCount
		if post.PublishedAt == nil {
			post.PublishedAt = existing.PublishedAt
		}
		if err := r.applyStatus(tx, post); err != nil {
			return err
		}
		if err := AssignSlug(tx, post, opts.Slug, &existing.Title); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(post).Error; err != nil {
			return errs.NewDatabaseError("update", blogPostEntity, err)
		}
		if tagIDs != nil {
			if err := replacePostTags(tx, post.ID, *tagIDs); err != nil {
				return err
			}
		}
		orphaned = orphanedPaths([]string{existing.CoverPath}, []string{post.CoverPath})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	updated, err := r.FindByID(ctx, post.ID)
	return updated, orphaned, err
}

// SetPublished publishes or unpublishes a post. Publishing keeps an earlier
// publication time; unpublishing never clears it.
func (r *BlogPostRepo) SetPublished(ctx context.Context, id uuid.UUID, publish bool) (*models.BlogPost, error) {
	err := inTransaction(ctx, r.db, "change status of", blogPostEntity, func(tx *gorm.DB) error {
		post, err := findOne[models.BlogPost](tx, blogPostEntity, "id = ?", id)
		if err != nil {
			return err
		}
		if publish {
			post.Publish(r.now())
		} else {
			post.Unpublish()
		}
		return tx.Model(&models.BlogPost{}).Where("id = ?", id).Updates(map[string]any{
			"status":       post.Status,
			"published_at": post.PublishedAt,
			"updated_at":   r.now(),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// IncrementViews bumps the view counter without touching updated_at
func (r *BlogPostRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&models.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).
		Error
	if err != nil {
		return errs.NewDatabaseError("count view of", blogPostEntity, err)
	}
	return nil
}

// Delete removes the post with its comments and tag links and returns the
// stored paths it referenced
func (r *BlogPostRepo) Delete(ctx context.Context, id uuid.UUID) ([]string, error) {
	var paths []string
	err := inTransaction(ctx, r.db, "delete", blogPostEntity, func(tx *gorm.DB) error {
		post, err := findOne[models.BlogPost](tx, blogPostEntity, "id = ?", id)
		if err != nil {
			return err
		}
		if post.CoverPath != "" {
			paths = append(paths, post.CoverPath)
		}
		if err := tx.Where("blog_post_id = ?", id).Delete(&models.BlogComment{}).Error; err != nil {
			return errs.NewDatabaseError("delete comments of", blogPostEntity, err)
		}
		if err := tx.Where("blog_post_id = ?", id).Delete(&blogPostTag{}).Error; err != nil {
			return errs.NewDatabaseError("detach tags of", blogPostEntity, err)
		}
		return deleteByID(tx, &models.BlogPost{}, blogPostEntity, id)
	})
	return paths, err
}

func (r *BlogPostRepo) applyStatus(tx *gorm.DB, post *models.BlogPost) error {
	switch post.Status {
	case "", models.BlogPostDraft:
		post.Unpublish()
	case models.BlogPostPublished:
		post.Publish(r.now())
	default:
		return errs.NewFieldValidationError("status", "must be draft or published")
	}
	if post.BlogCategoryID != nil {
		return ensureReference(tx, "blog_categories", "blog_category_id", *post.BlogCategoryID)
	}
	return nil
}

func replacePostTags(tx *gorm.DB, postID uuid.UUID, tagIDs []uuid.UUID) error {
	if err := tx.Where("blog_post_id = ?", postID).Delete(&blogPostTag{}).Error; err != nil {
		return errs.NewDatabaseError("detach tags of", blogPostEntity, err)
	}

	unique := make([]uuid.UUID, 0, len(tagIDs))
	seen := make(map[uuid.UUID]bool, len(tagIDs))
	for _, id := range tagIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return nil
	}

	var count int64
	if err := tx.Model(&models.BlogTag{}).Where("id IN ?", unique).Count(&count).Error; err != nil {
		return errs.NewDatabaseError("find", "blog tags", err)
	}
	if int(count) != len(unique) {
		return errs.NewFieldValidationError("tag_ids", "references missing tags")
	}

	rows := make([]blogPostTag, len(unique))
	for i, id := range unique {
		rows[i] = blogPostTag{BlogPostID: postID, BlogTagID: id}
	}
	if err := tx.Create(&rows).Error; err != nil {
		return errs.NewDatabaseError("attach tags to", blogPostEntity, err)
	}
	return nil
}
