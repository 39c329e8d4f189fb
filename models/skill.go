package models

import "github.com/google/uuid"

// SkillCategory groups skills; skills are ordered within their category
type SkillCategory struct {
	Base
	SlugColumn
	Ordered
	Name string `json:"name" db:"name" gorm:"type:varchar(255);not null"`

	Skills []Skill `json:"skills,omitempty" gorm:"foreignKey:SkillCategoryID;references:ID;constraint:OnDelete:RESTRICT"`
}

func (SkillCategory) TableName() string { return "skill_categories" }

func (c SkillCategory) SlugSource() string { return c.Name }

type Skill struct {
	Base
	Ordered
	SkillCategoryID uuid.UUID `json:"skill_category_id" db:"skill_category_id" gorm:"type:uuid;not null;index"`
	Name            string    `json:"name" db:"name" gorm:"type:varchar(255);not null"`
	Proficiency     int       `json:"proficiency" db:"proficiency" gorm:"not null"`
	Icon            string    `json:"icon" db:"icon" gorm:"type:varchar(100)"`
}

func (Skill) TableName() string { return "skills" }
