package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"gorm.io/gorm"
)

type Database struct {
	db                *gorm.DB
	profileRepo       *ProfileRepo
	projectTypeRepo   *ProjectTypeRepo
	projectRepo       *ProjectRepo
	blogCategoryRepo  *BlogCategoryRepo
	blogTagRepo       *BlogTagRepo
	blogPostRepo      *BlogPostRepo
	blogCommentRepo   *BlogCommentRepo
	serviceRepo       *ServiceRepo
	skillCategoryRepo *SkillCategoryRepo
	skillRepo         *SkillRepo
	experienceRepo    *ExperienceRepo
	contactRepo       *ContactMessageRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                db,
		profileRepo:       NewProfileRepo(db),
		projectTypeRepo:   NewProjectTypeRepo(db),
		projectRepo:       NewProjectRepo(db),
		blogCategoryRepo:  NewBlogCategoryRepo(db),
		blogTagRepo:       NewBlogTagRepo(db),
		blogPostRepo:      NewBlogPostRepo(db),
		blogCommentRepo:   NewBlogCommentRepo(db),
		serviceRepo:       NewServiceRepo(db),
		skillCategoryRepo: NewSkillCategoryRepo(db),
		skillRepo:         NewSkillRepo(db),
		experienceRepo:    NewExperienceRepo(db),
		contactRepo:       NewContactMessageRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}

func (d Database) ProjectTypeRepo() *ProjectTypeRepo {
	return d.projectTypeRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) BlogCategoryRepo() *BlogCategoryRepo {
	return d.blogCategoryRepo
}

func (d Database) BlogTagRepo() *BlogTagRepo {
	return d.blogTagRepo
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) BlogCommentRepo() *BlogCommentRepo {
	return d.blogCommentRepo
}

func (d Database) ServiceRepo() *ServiceRepo {
	return d.serviceRepo
}

func (d Database) SkillCategoryRepo() *SkillCategoryRepo {
	return d.skillCategoryRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) ExperienceRepo() *ExperienceRepo {
	return d.experienceRepo
}

func (d Database) ContactMessageRepo() *ContactMessageRepo {
	return d.contactRepo
}

// Ping checks that the primary connection is usable
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return errs.NewDatabaseError("ping", "database", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errs.NewDatabaseError("ping", "database", err)
	}
	return nil
}

// ReorderIDs places ids first in scope, in the given sequence, in one transaction
func (d Database) ReorderIDs(ctx context.Context, scope Scope, ids []uuid.UUID) error {
	return inTransaction(ctx, d.db, "reorder", scope.Table, func(tx *gorm.DB) error {
		return ReorderByPosition(tx, scope, ids)
	})
}

// Reorder applies items to scope in one transaction
func (d Database) Reorder(ctx context.Context, scope Scope, items []OrderItem) error {
	return inTransaction(ctx, d.db, "reorder", scope.Table, func(tx *gorm.DB) error {
		return ReorderByExplicit(tx, scope, items)
	})
}
