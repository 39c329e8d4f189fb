package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"gorm.io/gorm"
)

const blogCommentEntity = "blog comment"

type BlogCommentRepo struct {
	db *gorm.DB
}

func NewBlogCommentRepo(db *gorm.DB) *BlogCommentRepo {
	return &BlogCommentRepo{db}
}

// BlogCommentFilter narrows the moderation queue. Nil fields do not filter.
type BlogCommentFilter struct {
	PostID   *uuid.UUID
	Approved *bool
}

// FindAll returns comments newest first
func (r *BlogCommentRepo) FindAll(ctx context.Context, filter BlogCommentFilter) ([]models.BlogComment, error) {
	q := r.db.WithContext(ctx)
	if filter.PostID != nil {
		q = q.Where("blog_post_id = ?", *filter.PostID)
	}
	if filter.Approved != nil {
		q = q.Where("is_approved = ?", *filter.Approved)
	}

	var comments []models.BlogComment
	if err := q.Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "blog comments", err)
	}
	return comments, nil
}

// CreateForPost stores a reader comment on a published post. New comments
// always wait for approval.
func (r *BlogCommentRepo) CreateForPost(ctx context.Context, postSlug string, comment *models.BlogComment) error {
	return inTransaction(ctx, r.db, "create", blogCommentEntity, func(tx *gorm.DB) error {
		post, err := findOne[models.BlogPost](tx, blogPostEntity, "slug = ? AND status = ?", postSlug, models.BlogPostPublished)
		if err != nil {
			return err
		}
		comment.BlogPostID = post.ID
		comment.IsApproved = false
		return tx.Create(comment).Error
	})
}

// SetApproved approves or hides a comment
func (r *BlogCommentRepo) SetApproved(ctx context.Context, id uuid.UUID, approved bool) (*models.BlogComment, error) {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.BlogComment{}).Where("id = ?", id).Update("is_approved", approved)
	if result.Error != nil {
		return nil, errs.NewDatabaseError("moderate", blogCommentEntity, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewNotFound(blogCommentEntity)
	}
	return findOne[models.BlogComment](db, blogCommentEntity, "id = ?", id)
}

func (r *BlogCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.BlogComment{}, blogCommentEntity, id)
}
