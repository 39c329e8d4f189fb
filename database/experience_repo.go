package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"gorm.io/gorm"
)

const experienceEntity = "experience"

type ExperienceRepo struct {
	db *gorm.DB
}

func NewExperienceRepo(db *gorm.DB) *ExperienceRepo {
	return &ExperienceRepo{db}
}

func ExperienceScope() Scope {
	return TableScope("experiences")
}

// FindAll returns the timeline in display order, newest first within equal positions
func (r *ExperienceRepo) FindAll(ctx context.Context) ([]models.Experience, error) {
	var experiences []models.Experience
	err := r.db.WithContext(ctx).Order("display_order ASC").Order("start_date DESC").Order("created_at ASC").Find(&experiences).Error
	if err != nil {
		return nil, errs.NewDatabaseError("find", "experiences", err)
	}
	return experiences, nil
}

func (r *ExperienceRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Experience, error) {
	return findOne[models.Experience](r.db.WithContext(ctx), experienceEntity, "id = ?", id)
}

func (r *ExperienceRepo) Create(ctx context.Context, experience *models.Experience, displayOrder *int) error {
	return inTransaction(ctx, r.db, "create", experienceEntity, func(tx *gorm.DB) error {
		if err := checkExperience(experience); err != nil {
			return err
		}
		if err := orderedPlacement(tx, ExperienceScope(), displayOrder, experience.SetDisplayOrder); err != nil {
			return err
		}
		return tx.Create(experience).Error
	})
}

func (r *ExperienceRepo) Update(ctx context.Context, experience *models.Experience, displayOrder *int) error {
	return inTransaction(ctx, r.db, "update", experienceEntity, func(tx *gorm.DB) error {
		existing, err := findOne[models.Experience](tx, experienceEntity, "id = ?", experience.ID)
		if err != nil {
			return err
		}
		if err := checkExperience(experience); err != nil {
			return err
		}
		experience.CreatedAt = existing.CreatedAt
		experience.DisplayOrder = existing.DisplayOrder
		if displayOrder != nil {
			if err := orderedPlacement(tx, ExperienceScope(), displayOrder, experience.SetDisplayOrder); err != nil {
				return err
			}
		}
		return tx.Save(experience).Error
	})
}

func (r *ExperienceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Experience{}, experienceEntity, id)
}

// checkExperience keeps is_current and end_date consistent
func checkExperience(experience *models.Experience) error {
	if experience.IsCurrent {
		experience.EndDate = nil
		return nil
	}
	if experience.EndDate != nil && experience.EndDate.Before(experience.StartDate) {
		return errs.NewFieldValidationError("end_date", "must not be before start_date")
	}
	return nil
}
