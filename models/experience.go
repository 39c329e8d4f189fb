package models

import (
	"time"

	"gorm.io/datatypes"
)

// Experience is one entry of the work history timeline
type Experience struct {
	Base
	Ordered
	Company        string                      `json:"company" db:"company" gorm:"type:varchar(255);not null"`
	Position       string                      `json:"position" db:"position" gorm:"type:varchar(255);not null"`
	Location       string                      `json:"location" db:"location" gorm:"type:varchar(255)"`
	EmploymentType string                      `json:"employment_type" db:"employment_type" gorm:"type:varchar(50)"`
	StartDate      time.Time                   `json:"start_date" db:"start_date" gorm:"not null"`
	EndDate        *time.Time                  `json:"end_date,omitempty" db:"end_date"`
	IsCurrent      bool                        `json:"is_current" db:"is_current" gorm:"not null"`
	Description    string                      `json:"description" db:"description" gorm:"type:text"`
	Achievements   datatypes.JSONSlice[string] `json:"achievements" db:"achievements"`
}

func (Experience) TableName() string { return "experiences" }
