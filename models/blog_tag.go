package models

// BlogTag labels blog posts through the blog_post_tags join table
type BlogTag struct {
	Base
	SlugColumn
	Name string `json:"name" db:"name" gorm:"type:varchar(100);not null"`
}

func (BlogTag) TableName() string { return "blog_tags" }

func (t BlogTag) SlugSource() string { return t.Name }
