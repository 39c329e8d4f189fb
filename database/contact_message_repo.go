package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"gorm.io/gorm"
)

const contactMessageEntity = "contact message"

type ContactMessageRepo struct {
	db *gorm.DB
}

func NewContactMessageRepo(db *gorm.DB) *ContactMessageRepo {
	return &ContactMessageRepo{db}
}

// ContactMessageFilter narrows the inbox. Nil fields do not filter.
type ContactMessageFilter struct {
	Read    *bool
	Replied *bool
}

// ContactFlags updates the read and replied flags. Nil fields are left as is.
type ContactFlags struct {
	Read    *bool
	Replied *bool
}

func (r *ContactMessageRepo) FindAll(ctx context.Context, filter ContactMessageFilter) ([]models.ContactMessage, error) {
	q := r.db.WithContext(ctx)
	if filter.Read != nil {
		q = q.Where("is_read = ?", *filter.Read)
	}
	if filter.Replied != nil {
		q = q.Where("is_replied = ?", *filter.Replied)
	}

	var messages []models.ContactMessage
	if err := q.Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "contact messages", err)
	}
	return messages, nil
}

func (r *ContactMessageRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	return findOne[models.ContactMessage](r.db.WithContext(ctx), contactMessageEntity, "id = ?", id)
}

// Create stores a new submission as unread and unreplied
func (r *ContactMessageRepo) Create(ctx context.Context, message *models.ContactMessage) error {
	message.IsRead = false
	message.IsReplied = false
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return errs.NewDatabaseError("create", contactMessageEntity, err)
	}
	return nil
}

func (r *ContactMessageRepo) SetFlags(ctx context.Context, id uuid.UUID, flags ContactFlags) (*models.ContactMessage, error) {
	updates := map[string]any{}
	if flags.Read != nil {
		updates["is_read"] = *flags.Read
	}
	if flags.Replied != nil {
		updates["is_replied"] = *flags.Replied
	}
	if len(updates) == 0 {
		return nil, errs.NewFieldValidationError("flags", "set is_read or is_replied")
	}

	db := r.db.WithContext(ctx)
	result := db.Model(&models.ContactMessage{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, errs.NewDatabaseError("update", contactMessageEntity, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewNotFound(contactMessageEntity)
	}
	return r.FindByID(ctx, id)
}

func (r *ContactMessageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.ContactMessage{}, contactMessageEntity, id)
}
