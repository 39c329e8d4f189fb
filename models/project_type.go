package models

// ProjectType groups projects on the portfolio page (web, mobile, ...)
type ProjectType struct {
	Base
	SlugColumn
	Ordered
	Name        string `json:"name" db:"name" gorm:"type:varchar(255);not null"`
	Description string `json:"description" db:"description" gorm:"type:text"`
}

func (ProjectType) TableName() string { return "project_types" }

func (t ProjectType) SlugSource() string { return t.Name }
