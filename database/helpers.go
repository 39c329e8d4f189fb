package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"gorm.io/gorm"
)

// WriteOptions carries the values an admin may set explicitly on a write
type WriteOptions struct {
	Slug         string // empty derives the slug from the title or name
	DisplayOrder *int   // nil appends on create and keeps the position on update
}

func inTransaction(ctx context.Context, db *gorm.DB, operation, entity string, fn func(tx *gorm.DB) error) error {
	if err := db.WithContext(ctx).Transaction(fn); err != nil {
		return errs.NewDatabaseError(operation, entity, err)
	}
	return nil
}

func byDisplayOrder(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC").Order("created_at ASC")
}

func findOne[T any](q *gorm.DB, entity string, conds ...any) (*T, error) {
	var row T
	if err := q.First(&row, conds...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound(entity)
		}
		return nil, errs.NewDatabaseError("find", entity, err)
	}
	return &row, nil
}

// ensureReference rejects an id that does not exist in table with a
// validation error on field.
func ensureReference(tx *gorm.DB, table, field string, id uuid.UUID) error {
	var count int64
	if err := tx.Table(table).Where("id = ?", id).Count(&count).Error; err != nil {
		return errs.NewDatabaseError("check reference", table, err)
	}
	if count == 0 {
		return errs.NewFieldValidationError(field, "references a missing record")
	}
	return nil
}

// ensureNoDependents fails with a dependency conflict when any row of
// dependentTable still points at id through column.
func ensureNoDependents(tx *gorm.DB, entity, dependentTable, column string, id uuid.UUID) error {
	var count int64
	if err := tx.Table(dependentTable).Where(column+" = ?", id).Count(&count).Error; err != nil {
		return errs.NewDatabaseError("count dependents", entity, err)
	}
	if count > 0 {
		return errs.NewDependencyConflictError(entity, dependentTable, count)
	}
	return nil
}

func deleteByID(tx *gorm.DB, model any, entity string, id uuid.UUID) error {
	result := tx.Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return errs.NewDatabaseError("delete", entity, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound(entity)
	}
	return nil
}

// orphanedPaths returns the paths of before that after no longer references
func orphanedPaths(before, after []string) []string {
	kept := make(map[string]bool, len(after))
	for _, p := range after {
		kept[p] = true
	}
	var orphaned []string
	seen := make(map[string]bool)
	for _, p := range before {
		if p == "" || kept[p] || seen[p] {
			continue
		}
		seen[p] = true
		orphaned = append(orphaned, p)
	}
	return orphaned
}
