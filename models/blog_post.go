package models

import (
	"time"

	"github.com/google/uuid"
)

type BlogPostStatus string

const (
	BlogPostDraft     BlogPostStatus = "draft"
	BlogPostPublished BlogPostStatus = "published"
)

func (s BlogPostStatus) Valid() bool {
	return s == BlogPostDraft || s == BlogPostPublished
}

// BlogPost represents a blog article written in Markdown
type BlogPost struct {
	Base
	SlugColumn
	Title              string         `json:"title" db:"title" gorm:"type:varchar(255);not null"`
	Excerpt            string         `json:"excerpt" db:"excerpt" gorm:"type:text"`
	Content            string         `json:"content" db:"content" gorm:"type:text;not null"`
	CoverPath          string         `json:"cover_path" db:"cover_path" gorm:"type:text"`
	BlogCategoryID     *uuid.UUID     `json:"blog_category_id,omitempty" db:"blog_category_id" gorm:"type:uuid;index"`
	Category           *BlogCategory  `json:"category,omitempty" gorm:"foreignKey:BlogCategoryID;references:ID;constraint:OnDelete:RESTRICT"`
	Status             BlogPostStatus `json:"status" db:"status" gorm:"type:varchar(20);not null;index"`
	PublishedAt        *time.Time     `json:"published_at,omitempty" db:"published_at" gorm:"index"`
	IsFeatured         bool           `json:"is_featured" db:"is_featured" gorm:"not null"`
	ReadingTimeMinutes int            `json:"reading_time_minutes" db:"reading_time_minutes" gorm:"not null"`
	ViewCount          int64          `json:"view_count" db:"view_count" gorm:"not null"`

	Tags     []BlogTag     `json:"tags" gorm:"many2many:blog_post_tags;constraint:OnDelete:CASCADE"`
	Comments []BlogComment `json:"comments,omitempty" gorm:"foreignKey:BlogPostID;references:ID;constraint:OnDelete:CASCADE"`
}

func (BlogPost) TableName() string { return "blog_posts" }

func (p BlogPost) SlugSource() string { return p.Title }

// Publish moves the post to published. The first publication time is kept
// across unpublish/publish cycles.
func (p *BlogPost) Publish(now time.Time) {
	p.Status = BlogPostPublished
	if p.PublishedAt == nil {
		p.PublishedAt = &now
	}
}

// Unpublish returns the post to draft without clearing PublishedAt
func (p *BlogPost) Unpublish() {
	p.Status = BlogPostDraft
}

func (p BlogPost) IsPublished() bool {
	return p.Status == BlogPostPublished
}
