package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ProjectStatus string

const (
	ProjectOngoing   ProjectStatus = "ongoing"
	ProjectCompleted ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	return s == ProjectOngoing || s == ProjectCompleted
}

// Toggled returns the other status
func (s ProjectStatus) Toggled() ProjectStatus {
	if s == ProjectCompleted {
		return ProjectOngoing
	}
	return ProjectCompleted
}

// Project represents a portfolio project with its media and highlights
type Project struct {
	Base
	SlugColumn
	Ordered
	Title         string                      `json:"title" db:"title" gorm:"type:varchar(255);not null"`
	Summary       string                      `json:"summary" db:"summary" gorm:"type:text"`
	Description   string                      `json:"description" db:"description" gorm:"type:text"`
	ProjectTypeID *uuid.UUID                  `json:"project_type_id,omitempty" db:"project_type_id" gorm:"type:uuid;index"`
	ProjectType   *ProjectType                `json:"project_type,omitempty" gorm:"foreignKey:ProjectTypeID;references:ID;constraint:OnDelete:RESTRICT"`
	Status        ProjectStatus               `json:"status" db:"status" gorm:"type:varchar(20);not null;index"`
	Client        string                      `json:"client" db:"client" gorm:"type:varchar(255)"`
	Role          string                      `json:"role" db:"role" gorm:"type:varchar(255)"`
	StartDate     *time.Time                  `json:"start_date,omitempty" db:"start_date"`
	EndDate       *time.Time                  `json:"end_date,omitempty" db:"end_date"`
	RepositoryURL string                      `json:"repository_url" db:"repository_url" gorm:"type:text"`
	LiveURL       string                      `json:"live_url" db:"live_url" gorm:"type:text"`
	ThumbnailPath string                      `json:"thumbnail_path" db:"thumbnail_path" gorm:"type:text"`
	Technologies  datatypes.JSONSlice[string] `json:"technologies" db:"technologies"`
	IsFeatured    bool                        `json:"is_featured" db:"is_featured" gorm:"not null;index"`

	Images   []ProjectImage   `json:"images" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Features []ProjectFeature `json:"features" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Metrics  []ProjectMetric  `json:"metrics" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Videos   []ProjectVideo   `json:"videos" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Project) TableName() string { return "projects" }

func (p Project) SlugSource() string { return p.Title }

// AssetPaths lists every stored file the project references
func (p Project) AssetPaths() []string {
	var paths []string
	if p.ThumbnailPath != "" {
		paths = append(paths, p.ThumbnailPath)
	}
	for _, img := range p.Images {
		if img.Path != "" {
			paths = append(paths, img.Path)
		}
	}
	return paths
}

type ProjectImage struct {
	Base
	Ordered
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index"`
	Path      string    `json:"path" db:"path" gorm:"type:text;not null"`
	Caption   string    `json:"caption" db:"caption" gorm:"type:varchar(255)"`
}

func (ProjectImage) TableName() string { return "project_images" }

func (i *ProjectImage) SetParentID(id uuid.UUID) { i.ProjectID = id }

type ProjectFeature struct {
	Base
	Ordered
	ProjectID   uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index"`
	Title       string    `json:"title" db:"title" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" db:"description" gorm:"type:text"`
	Icon        string    `json:"icon" db:"icon" gorm:"type:varchar(100)"`
}

func (ProjectFeature) TableName() string { return "project_features" }

func (f *ProjectFeature) SetParentID(id uuid.UUID) { f.ProjectID = id }

type ProjectMetric struct {
	Base
	Ordered
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index"`
	Label     string    `json:"label" db:"label" gorm:"type:varchar(255);not null"`
	Value     string    `json:"value" db:"value" gorm:"type:varchar(255);not null"`
}

func (ProjectMetric) TableName() string { return "project_metrics" }

func (m *ProjectMetric) SetParentID(id uuid.UUID) { m.ProjectID = id }

type ProjectVideo struct {
	Base
	Ordered
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index"`
	URL       string    `json:"url" db:"url" gorm:"type:text;not null"`
	Title     string    `json:"title" db:"title" gorm:"type:varchar(255)"`
}

func (ProjectVideo) TableName() string { return "project_videos" }

func (v *ProjectVideo) SetParentID(id uuid.UUID) { v.ProjectID = id }
