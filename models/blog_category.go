package models

// BlogCategory groups blog posts. A category with posts cannot be deleted.
type BlogCategory struct {
	Base
	SlugColumn
	Name        string `json:"name" db:"name" gorm:"type:varchar(255);not null"`
	Description string `json:"description" db:"description" gorm:"type:text"`
}

func (BlogCategory) TableName() string { return "blog_categories" }

func (c BlogCategory) SlugSource() string { return c.Name }
