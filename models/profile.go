package models

import "gorm.io/datatypes"

type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Profile is the single owner profile shown on the home and about pages
type Profile struct {
	Base
	Name              string                          `json:"name" db:"name" gorm:"type:varchar(255);not null"`
	Headline          string                          `json:"headline" db:"headline" gorm:"type:varchar(255)"`
	Bio               string                          `json:"bio" db:"bio" gorm:"type:text"`
	Email             string                          `json:"email" db:"email" gorm:"type:varchar(255)"`
	Phone             string                          `json:"phone" db:"phone" gorm:"type:varchar(50)"`
	Location          string                          `json:"location" db:"location" gorm:"type:varchar(255)"`
	AvatarPath        string                          `json:"avatar_path" db:"avatar_path" gorm:"type:text"`
	ResumePath        string                          `json:"resume_path" db:"resume_path" gorm:"type:text"`
	SocialLinks       datatypes.JSONSlice[SocialLink] `json:"social_links" db:"social_links"`
	YearsOfExperience int                             `json:"years_of_experience" db:"years_of_experience" gorm:"not null"`
	AvailableForHire  bool                            `json:"available_for_hire" db:"available_for_hire" gorm:"not null"`
}

func (Profile) TableName() string { return "profiles" }

// AssetPaths lists every stored file the profile references
func (p Profile) AssetPaths() []string {
	var paths []string
	for _, path := range []string{p.AvatarPath, p.ResumePath} {
		if path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}
