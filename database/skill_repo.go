package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	skillCategoryEntity = "skill category"
	skillEntity         = "skill"
)

type SkillCategoryRepo struct {
	db *gorm.DB
}

func NewSkillCategoryRepo(db *gorm.DB) *SkillCategoryRepo {
	return &SkillCategoryRepo{db}
}

func SkillCategoryScope() Scope {
	return TableScope("skill_categories")
}

// SkillScope is the ordering scope of the skills within one category
func SkillScope(categoryID uuid.UUID) Scope {
	return Scope{Table: "skills", Column: "skill_category_id", Value: categoryID}
}

// FindAll returns categories in display order with their skills
func (r *SkillCategoryRepo) FindAll(ctx context.Context) ([]models.SkillCategory, error) {
	var categories []models.SkillCategory
	err := r.db.WithContext(ctx).
		Preload("Skills", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC").Order("name ASC")
		}).
		Order("display_order ASC").Order("name ASC").Order("created_at ASC").
		Find(&categories).Error
	if err != nil {
		return nil, errs.NewDatabaseError("find", "skill categories", err)
	}
	return categories, nil
}

func (r *SkillCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.SkillCategory, error) {
	return findOne[models.SkillCategory](r.db.WithContext(ctx).Preload("Skills", byDisplayOrder), skillCategoryEntity, "id = ?", id)
}

func (r *SkillCategoryRepo) Create(ctx context.Context, category *models.SkillCategory, opts WriteOptions) error {
	return inTransaction(ctx, r.db, "create", skillCategoryEntity, func(tx *gorm.DB) error {
		if err := AssignSlug(tx, category, opts.Slug, nil); err != nil {
			return err
		}
		if err := orderedPlacement(tx, SkillCategoryScope(), opts.DisplayOrder, category.SetDisplayOrder); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(category).Error
	})
}

func (r *SkillCategoryRepo) Update(ctx context.Context, category *models.SkillCategory, opts WriteOptions) error {
	return inTransaction(ctx, r.db, "update", skillCategoryEntity, func(tx *gorm.DB) error {
		existing, err := findOne[models.SkillCategory](tx, skillCategoryEntity, "id = ?", category.ID)
		if err != nil {
			return err
		}
		category.CreatedAt = existing.CreatedAt
		category.Slug = existing.Slug
		category.DisplayOrder = existing.DisplayOrder
		if err := AssignSlug(tx, category, opts.Slug, &existing.Name); err != nil {
			return err
		}
		if opts.DisplayOrder != nil {
			if err := orderedPlacement(tx, SkillCategoryScope(), opts.DisplayOrder, category.SetDisplayOrder); err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Save(category).Error
	})
}

// Delete refuses to remove a category that still holds skills
func (r *SkillCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return inTransaction(ctx, r.db, "delete", skillCategoryEntity, func(tx *gorm.DB) error {
		if _, err := findOne[models.SkillCategory](tx, skillCategoryEntity, "id = ?", id); err != nil {
			return err
		}
		if err := ensureNoDependents(tx, skillCategoryEntity, "skills", "skill_category_id", id); err != nil {
			return err
		}
		return deleteByID(tx, &models.SkillCategory{}, skillCategoryEntity, id)
	})
}

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

// FindAll returns skills ordered within their category. A nil categoryID lists every skill.
func (r *SkillRepo) FindAll(ctx context.Context, categoryID *uuid.UUID) ([]models.Skill, error) {
	q := r.db.WithContext(ctx)
	if categoryID != nil {
		q = q.Where("skill_category_id = ?", *categoryID)
	}

	var skills []models.Skill
	if err := q.Order("skill_category_id ASC").Order("display_order ASC").Order("name ASC").Find(&skills).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "skills", err)
	}
	return skills, nil
}

func (r *SkillRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Skill, error) {
	return findOne[models.Skill](r.db.WithContext(ctx), skillEntity, "id = ?", id)
}

func (r *SkillRepo) Create(ctx context.Context, skill *models.Skill, displayOrder *int) error {
	return inTransaction(ctx, r.db, "create", skillEntity, func(tx *gorm.DB) error {
		if err := checkSkill(tx, skill); err != nil {
			return err
		}
		if err := orderedPlacement(tx, SkillScope(skill.SkillCategoryID), displayOrder, skill.SetDisplayOrder); err != nil {
			return err
		}
		return tx.Create(skill).Error
	})
}

// Update overwrites the skill identified by skill.ID. A skill moved to another
// category is appended to it unless displayOrder says otherwise.
func (r *SkillRepo) Update(ctx context.Context, skill *models.Skill, displayOrder *int) error {
	return inTransaction(ctx, r.db, "update", skillEntity, func(tx *gorm.DB) error {
		existing, err := findOne[models.Skill](tx, skillEntity, "id = ?", skill.ID)
		if err != nil {
			return err
		}
		if err := checkSkill(tx, skill); err != nil {
			return err
		}
		skill.CreatedAt = existing.CreatedAt
		skill.DisplayOrder = existing.DisplayOrder
		if displayOrder != nil || skill.SkillCategoryID != existing.SkillCategoryID {
			if err := orderedPlacement(tx, SkillScope(skill.SkillCategoryID), displayOrder, skill.SetDisplayOrder); err != nil {
				return err
			}
		}
		return tx.Save(skill).Error
	})
}

func (r *SkillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Skill{}, skillEntity, id)
}

func checkSkill(tx *gorm.DB, skill *models.Skill) error {
	if skill.Proficiency < 0 || skill.Proficiency > 100 {
		return errs.NewFieldValidationError("proficiency", "must be between 0 and 100")
	}
	return ensureReference(tx, "skill_categories", "skill_category_id", skill.SkillCategoryID)
}
