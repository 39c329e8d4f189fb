package models

import "github.com/google/uuid"

// BlogComment is a reader comment held for moderation until approved
type BlogComment struct {
	Base
	BlogPostID  uuid.UUID `json:"blog_post_id" db:"blog_post_id" gorm:"type:uuid;not null;index"`
	AuthorName  string    `json:"author_name" db:"author_name" gorm:"type:varchar(255);not null"`
	AuthorEmail string    `json:"author_email" db:"author_email" gorm:"type:varchar(255);not null"`
	Content     string    `json:"content" db:"content" gorm:"type:text;not null"`
	IsApproved  bool      `json:"is_approved" db:"is_approved" gorm:"not null;index"`
}

func (BlogComment) TableName() string { return "blog_comments" }
