// Package workflow drives an order through fulfillment:
// pending → ready → completed, one-directional. Completing an order with an
// associated discount is gated on the discount having been verified.
//
// Unlike catalog writes, workflow transitions are strict: the upstream
// patch must succeed before any local state changes. A locally "completed"
// order the kitchen never saw is worse than asking the admin to retry.
package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabpaderog/maxicoffee-admin/internal/datasource"
	"github.com/gabpaderog/maxicoffee-admin/internal/models"
	"github.com/gabpaderog/maxicoffee-admin/internal/remote"
)

var (
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrVerificationRequired = errors.New("discount requires verification before checkout")
)

type Fulfillment struct {
	remote *remote.Client
	orders *datasource.DataSource[models.Order]
}

func New(rc *remote.Client, orders *datasource.DataSource[models.Order]) *Fulfillment {
	return &Fulfillment{remote: rc, orders: orders}
}

// Get fetches the order backing a workflow action.
func (f *Fulfillment) Get(ctx context.Context, id int) (models.Order, bool, error) {
	return f.orders.Read(ctx, id)
}

// MarkReady moves a pending order to ready. No preconditions beyond the
// current status.
func (f *Fulfillment) MarkReady(ctx context.Context, order models.Order) (models.Order, error) {
	if order.Status != models.StatusPending {
		return order, fmt.Errorf("mark ready from %q: %w", order.Status, ErrInvalidTransition)
	}
	if err := f.patchStatus(ctx, order.ID, models.StatusReady); err != nil {
		return order, err
	}
	order.Status = models.StatusReady
	f.orders.InvalidateCache()
	return order, nil
}

// VerifyDiscount records the admin's eligibility check: it sets
// discountApplied and deducts the snapshot percentage from the total. The
// status does not change.
func (f *Fulfillment) VerifyDiscount(ctx context.Context, order models.Order) (models.Order, error) {
	if order.Status != models.StatusReady || order.DiscountDetails == nil || order.DiscountApplied {
		return order, fmt.Errorf("verify discount on order %d: %w", order.ID, ErrInvalidTransition)
	}

	path := fmt.Sprintf("%s/%d/apply-discount", f.orders.Resource(), order.ID)
	if err := f.remote.Patch(ctx, path, map[string]any{"discountApplied": true}, nil); err != nil {
		return order, err
	}

	order.DiscountApplied = true
	order.Total = order.Total - order.DiscountDetails.Percentage*order.Total
	f.orders.InvalidateCache()
	return order, nil
}

// Complete checks out a ready order. Orders carrying an unverified discount
// cannot complete; the only allowed action on them is VerifyDiscount.
func (f *Fulfillment) Complete(ctx context.Context, order models.Order) (models.Order, error) {
	if order.Status != models.StatusReady {
		return order, fmt.Errorf("complete from %q: %w", order.Status, ErrInvalidTransition)
	}
	if order.DiscountDetails != nil && !order.DiscountApplied {
		return order, ErrVerificationRequired
	}
	if err := f.patchStatus(ctx, order.ID, models.StatusCompleted); err != nil {
		return order, err
	}
	order.Status = models.StatusCompleted
	f.orders.InvalidateCache()
	return order, nil
}

func (f *Fulfillment) patchStatus(ctx context.Context, id int, status string) error {
	path := fmt.Sprintf("%s/%d/status", f.orders.Resource(), id)
	return f.remote.Patch(ctx, path, map[string]any{"status": status}, nil)
}
