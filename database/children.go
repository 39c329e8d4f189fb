package database

import (
	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"gorm.io/gorm"
)

// ChildRow is a row owned by a parent and ordered among its siblings
type ChildRow interface {
	SetParentID(id uuid.UUID)
	SetDisplayOrder(order int)
}

// Child is one element of a replacement set. A nil Order takes the element's
// position in the set.
type Child[E any] struct {
	Row   E
	Order *int
}

// SyncChildren replaces every row owned by parentID with children. The rows
// that existed before are returned as removed so callers can clean up the
// assets they referenced. Child ids are not preserved.
func SyncChildren[E any, P interface {
	*E
	ChildRow
}](tx *gorm.DB, parentColumn string, parentID uuid.UUID, children []Child[E]) (removed, created []E, err error) {
	entity := tableName[E](tx)
	for _, child := range children {
		if child.Order != nil && *child.Order < 0 {
			return nil, nil, errs.NewFieldValidationError(entity, "display_order must not be negative")
		}
	}

	if err := tx.Where(parentColumn+" = ?", parentID).Order("display_order ASC").Find(&removed).Error; err != nil {
		return nil, nil, errs.NewDatabaseError("load children", entity, err)
	}
	if err := tx.Where(parentColumn+" = ?", parentID).Delete(new(E)).Error; err != nil {
		return nil, nil, errs.NewDatabaseError("delete children", entity, err)
	}

	created = make([]E, len(children))
	for i, child := range children {
		created[i] = child.Row
		row := P(&created[i])
		row.SetParentID(parentID)
		if child.Order != nil {
			row.SetDisplayOrder(*child.Order)
		} else {
			row.SetDisplayOrder(i)
		}
	}
	if len(created) == 0 {
		return removed, created, nil
	}
	if err := tx.Create(&created).Error; err != nil {
		return nil, nil, errs.NewDatabaseError("create children", entity, err)
	}
	return removed, created, nil
}

func tableName[E any](tx *gorm.DB) string {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(new(E)); err != nil {
		return "children"
	}
	return stmt.Schema.Table
}
