package order

import (
	"context"

	"github.com/stockdeck/stockdeck/internal/api"
	"github.com/stockdeck/stockdeck/internal/domain"
)

// Service is the slice of the collaborator the controller needs.
type Service interface {
	ListOrders(ctx context.Context) ([]domain.PurchaseOrder, error)
	CreateOrder(ctx context.Context, req api.CreateOrderRequest) (domain.PurchaseOrder, error)
	ApproveOrder(ctx context.Context, id int) (domain.PurchaseOrder, error)
	ReceiveOrder(ctx context.Context, id int) (domain.PurchaseOrder, error)
}

// Logger receives diagnostics for failures that are otherwise swallowed,
// such as a refresh failing after a mutation already succeeded.
type Logger interface {
	Warn(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...any) {}

// Controller performs lifecycle operations against the collaborator. It
// keeps no order state of its own: every successful mutation hands back a
// freshly fetched list so callers replace, never patch, what they display.
type Controller struct {
	svc Service
	log Logger
}

// NewController wires a controller to the collaborator service.
func NewController(svc Service, log Logger) *Controller {
	if log == nil {
		log = nopLogger{}
	}
	return &Controller{svc: svc, log: log}
}

// List fetches all orders, newest first. The collaborator's fetch order is
// not a guarantee; the reversal here is a presentation concern only.
func (c *Controller) List(ctx context.Context) ([]domain.PurchaseOrder, error) {
	orders, err := c.svc.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	reversed := make([]domain.PurchaseOrder, len(orders))
	for i, o := range orders {
		reversed[len(orders)-1-i] = o
	}
	return reversed, nil
}

// Submit validates the draft locally and, only if it passes, sends the
// creation request. Validation failures never reach the collaborator.
func (c *Controller) Submit(ctx context.Context, draft *Draft) (domain.PurchaseOrder, error) {
	if err := draft.Validate(); err != nil {
		return domain.PurchaseOrder{}, err
	}
	created, err := c.svc.CreateOrder(ctx, draft.request())
	if err != nil {
		return domain.PurchaseOrder{}, err
	}
	draft.Reset()
	return created, nil
}

// Approve requests the Pending -> Approved transition. The collaborator
// enforces the admin-only rule; a rejection comes back verbatim and no local
// state changes.
func (c *Controller) Approve(ctx context.Context, id int) (domain.PurchaseOrder, error) {
	return c.svc.ApproveOrder(ctx, id)
}

// Receive requests the Approved -> Completed transition, after which the
// collaborator has incremented stock for every line item.
func (c *Controller) Receive(ctx context.Context, id int) (domain.PurchaseOrder, error) {
	return c.svc.ReceiveOrder(ctx, id)
}

// RefreshAfter re-fetches the list after a successful mutation. A refresh
// failure is not an operation failure: the mutation already happened, so the
// stale list is returned unchanged and the failure is logged for diagnosis.
func (c *Controller) RefreshAfter(ctx context.Context, op string, stale []domain.PurchaseOrder) []domain.PurchaseOrder {
	fresh, err := c.List(ctx)
	if err != nil {
		c.log.Warn("orders: refresh after %s failed: %v", op, err)
		return stale
	}
	return fresh
}
