package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"gorm.io/gorm"
)

const profileEntity = "profile"

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// Get returns the site owner's profile
func (r *ProfileRepo) Get(ctx context.Context) (*models.Profile, error) {
	return findOne[models.Profile](r.db.WithContext(ctx).Order("created_at ASC"), profileEntity)
}

// Save creates the profile or overwrites the existing one and returns the
// stored paths it no longer references.
func (r *ProfileRepo) Save(ctx context.Context, profile *models.Profile) ([]string, error) {
	var orphaned []string
	err := inTransaction(ctx, r.db, "save", profileEntity, func(tx *gorm.DB) error {
		existing, err := findOne[models.Profile](tx.Order("created_at ASC"), profileEntity)
		if errs.IsNotFound(err) {
			profile.ID = uuid.Nil
			return tx.Create(profile).Error
		}
		if err != nil {
			return err
		}

		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		if err := tx.Save(profile).Error; err != nil {
			return err
		}
		orphaned = orphanedPaths(existing.AssetPaths(), profile.AssetPaths())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orphaned, nil
}
