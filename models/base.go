package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the identifier and timestamps shared by every table
type Base struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// BeforeCreate assigns a UUID when the caller has not set one, so rows can be
// created on databases without gen_random_uuid().
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b Base) PrimaryID() uuid.UUID {
	return b.ID
}

// SlugColumn is embedded by every entity addressed by a unique slug
type SlugColumn struct {
	Slug string `json:"slug" db:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
}

func (s SlugColumn) CurrentSlug() string {
	return s.Slug
}

func (s *SlugColumn) SetSlug(slug string) {
	s.Slug = slug
}

// Sluggable is the shape the slug resolver works on. SlugSource returns the
// display string (title or name) the slug is derived from.
type Sluggable interface {
	TableName() string
	PrimaryID() uuid.UUID
	SlugSource() string
	CurrentSlug() string
	SetSlug(slug string)
}

// Ordered is embedded by every entity with a display position among siblings
type Ordered struct {
	DisplayOrder int `json:"display_order" db:"display_order" gorm:"not null;index"`
}

func (o Ordered) GetDisplayOrder() int {
	return o.DisplayOrder
}

func (o *Ordered) SetDisplayOrder(order int) {
	o.DisplayOrder = order
}
