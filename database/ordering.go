package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/errs"
	"gorm.io/gorm"
)

// Scope names the set of rows that share one ordering: a table, optionally
// narrowed to the rows whose Column equals Value.
type Scope struct {
	Table  string
	Column string
	Value  any
}

func TableScope(table string) Scope {
	return Scope{Table: table}
}

func (s Scope) query(tx *gorm.DB) *gorm.DB {
	q := tx.Table(s.Table)
	if s.Column != "" {
		q = q.Where(s.Column+" = ?", s.Value)
	}
	return q
}

// OrderItem pairs a row with the position it should take
type OrderItem struct {
	ID           uuid.UUID `json:"id"`
	DisplayOrder int       `json:"display_order"`
}

// ReorderByPosition writes display_order = index for each id. Rows of the
// scope not listed follow the listed ones in their current order, so the
// scope reads back starting with exactly ids.
func ReorderByPosition(tx *gorm.DB, scope Scope, ids []uuid.UUID) error {
	items := make([]OrderItem, len(ids))
	for i, id := range ids {
		items[i] = OrderItem{ID: id, DisplayOrder: i}
	}
	if err := validateOrderItems(tx, scope, items); err != nil {
		return err
	}

	var rest []uuid.UUID
	err := scope.query(tx).
		Where("id NOT IN ?", ids).
		Order("display_order ASC").Order("created_at ASC").Order("id ASC").
		Pluck("id", &rest).Error
	if err != nil {
		return errs.NewDatabaseError("reorder", scope.Table, err)
	}
	for i, id := range rest {
		items = append(items, OrderItem{ID: id, DisplayOrder: len(ids) + i})
	}
	return writeOrder(tx, scope, items)
}

// ReorderByExplicit writes each paired display_order. The whole batch is
// validated before the first write. Unlisted rows keep their values.
func ReorderByExplicit(tx *gorm.DB, scope Scope, items []OrderItem) error {
	if err := validateOrderItems(tx, scope, items); err != nil {
		return err
	}
	return writeOrder(tx, scope, items)
}

func writeOrder(tx *gorm.DB, scope Scope, items []OrderItem) error {
	now := time.Now()
	for _, item := range items {
		err := scope.query(tx).
			Where("id = ?", item.ID).
			Updates(map[string]any{"display_order": item.DisplayOrder, "updated_at": now}).
			Error
		if err != nil {
			return errs.NewDatabaseError("reorder", scope.Table, err)
		}
	}
	return nil
}

func validateOrderItems(tx *gorm.DB, scope Scope, items []OrderItem) error {
	if len(items) == 0 {
		return errs.NewFieldValidationError("items", "must list at least one id")
	}

	fields := make(map[string]string)
	seen := make(map[uuid.UUID]bool, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	var duplicates, negatives []string
	for _, item := range items {
		if seen[item.ID] {
			duplicates = append(duplicates, item.ID.String())
			continue
		}
		seen[item.ID] = true
		ids = append(ids, item.ID)
		if item.DisplayOrder < 0 {
			negatives = append(negatives, item.ID.String())
		}
	}
	if len(duplicates) > 0 {
		fields["ids"] = "duplicate ids: " + strings.Join(duplicates, ", ")
	}
	if len(negatives) > 0 {
		fields["display_order"] = "negative order for ids: " + strings.Join(negatives, ", ")
	}

	var found []uuid.UUID
	if err := scope.query(tx).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return errs.NewDatabaseError("reorder", scope.Table, err)
	}
	if len(found) != len(ids) {
		inScope := make(map[uuid.UUID]bool, len(found))
		for _, id := range found {
			inScope[id] = true
		}
		var unknown []string
		for _, id := range ids {
			if !inScope[id] {
				unknown = append(unknown, id.String())
			}
		}
		fields["items"] = fmt.Sprintf("ids not in %s: %s", scope.Table, strings.Join(unknown, ", "))
	}

	if len(fields) > 0 {
		return errs.NewValidationError(fields)
	}
	return nil
}

// NextDisplayOrder returns the position after the last row of the scope, 0 when empty
func NextDisplayOrder(tx *gorm.DB, scope Scope) (int, error) {
	var max sql.NullInt64
	if err := scope.query(tx).Select("MAX(display_order)").Row().Scan(&max); err != nil {
		return 0, errs.NewDatabaseError("next display order", scope.Table, err)
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}

// orderedPlacement sets the display order of a new or moved row: the explicit
// value when given, otherwise the end of the scope.
func orderedPlacement(tx *gorm.DB, scope Scope, explicit *int, set func(int)) error {
	if explicit != nil {
		if *explicit < 0 {
			return errs.NewFieldValidationError("display_order", "must not be negative")
		}
		set(*explicit)
		return nil
	}
	next, err := NextDisplayOrder(tx, scope)
	if err != nil {
		return err
	}
	set(next)
	return nil
}
