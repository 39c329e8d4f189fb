package models

import "github.com/google/uuid"

// Service is an offering listed on the services page
type Service struct {
	Base
	SlugColumn
	Ordered
	Title       string `json:"title" db:"title" gorm:"type:varchar(255);not null"`
	Summary     string `json:"summary" db:"summary" gorm:"type:text"`
	Description string `json:"description" db:"description" gorm:"type:text"`
	Icon        string `json:"icon" db:"icon" gorm:"type:varchar(100)"`
	PriceLabel  string `json:"price_label" db:"price_label" gorm:"type:varchar(100)"`
	IsActive    bool   `json:"is_active" db:"is_active" gorm:"not null;index"`

	Features []ServiceFeature `json:"features" gorm:"foreignKey:ServiceID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Service) TableName() string { return "services" }

func (s Service) SlugSource() string { return s.Title }

type ServiceFeature struct {
	Base
	Ordered
	ServiceID uuid.UUID `json:"service_id" db:"service_id" gorm:"type:uuid;not null;index"`
	Title     string    `json:"title" db:"title" gorm:"type:varchar(255);not null"`
}

func (ServiceFeature) TableName() string { return "service_features" }

func (f *ServiceFeature) SetParentID(id uuid.UUID) { f.ServiceID = id }
