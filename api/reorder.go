package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/database"
	"github.com/mdsajjadhossain25/portfolio-backend/errs"
)

type reorderer interface {
	ReorderIDs(ctx context.Context, scope database.Scope, ids []uuid.UUID) error
	Reorder(ctx context.Context, scope database.Scope, items []database.OrderItem) error
}

// reorderRequest accepts either an ordered id list or explicit pairs
type reorderRequest struct {
	IDs   []uuid.UUID      `json:"ids"`
	Items []reorderItemDTO `json:"items" validate:"omitempty,dive"`
}

type reorderItemDTO struct {
	ID           uuid.UUID `json:"id" validate:"required"`
	DisplayOrder *int      `json:"display_order" validate:"required"`
}

// apply writes the request through whichever shape it carries
func (req reorderRequest) apply(ctx context.Context, store reorderer, scope database.Scope) error {
	if len(req.IDs) > 0 && len(req.Items) > 0 {
		return errs.NewFieldValidationError("items", "send either ids or items, not both")
	}
	if len(req.IDs) > 0 {
		return store.ReorderIDs(ctx, scope, req.IDs)
	}
	items, err := req.orderItems()
	if err != nil {
		return err
	}
	return store.Reorder(ctx, scope, items)
}

func (req reorderRequest) orderItems() ([]database.OrderItem, error) {
	if len(req.Items) == 0 {
		return nil, errs.NewFieldValidationError("items", "must list at least one id")
	}
	items := make([]database.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = database.OrderItem{ID: item.ID, DisplayOrder: *item.DisplayOrder}
	}
	return items, nil
}

// reorderHandler serves PUT .../reorder for the scope returned by scopeFor
func reorderHandler(responder Responder, store reorderer, scopeFor func(r *http.Request) (database.Scope, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, err := scopeFor(r)
		if err != nil {
			responder.WriteError(w, err)
			return
		}

		var req reorderRequest
		if err := decodeJSON(r, &req); err != nil {
			responder.WriteError(w, err)
			return
		}
		if err := req.apply(r.Context(), store, scope); err != nil {
			responder.WriteError(w, err)
			return
		}
		responder.WriteNoContent(w)
	}
}

func fixedScope(scope database.Scope) func(*http.Request) (database.Scope, error) {
	return func(*http.Request) (database.Scope, error) {
		return scope, nil
	}
}
