// Package order drives the purchase-order lifecycle from the client side:
// draft assembly with local validation, submission, and the approve/receive
// transitions. The collaborator owns the state machine; this package only
// prepares requests, refuses obviously invalid ones before any network call,
// and relays rejections unchanged.
package order

import (
	"errors"

	"github.com/stockdeck/stockdeck/internal/api"
	"github.com/stockdeck/stockdeck/internal/domain"
)

var (
	// ErrNoVendor means the draft has no vendor selected.
	ErrNoVendor = errors.New("order: vendor is required")
	// ErrNoItems means the draft has an empty item list.
	ErrNoItems = errors.New("order: at least one line item is required")
	// ErrBadLineItem means an entry had no product, a non-positive quantity
	// or a non-positive unit price.
	ErrBadLineItem = errors.New("order: line item needs a product, a positive quantity and a positive unit price")
)

// Draft accumulates a purchase order before submission. Purely client-side;
// nothing leaves the process until Submit passes local validation.
type Draft struct {
	VendorID int
	items    []domain.LineItem
}

// AddLineItem appends an entry. Invalid entries are refused and the draft is
// left untouched. A product added twice stays on two distinct lines so each
// batch keeps its own price; contrast sale carts, which merge.
func (d *Draft) AddLineItem(productID, quantity int, unitPrice float64) error {
	if productID <= 0 || quantity <= 0 || unitPrice <= 0 {
		return ErrBadLineItem
	}
	d.items = append(d.items, domain.LineItem{ProductID: productID, Quantity: quantity, UnitPrice: unitPrice})
	return nil
}

// Items returns the accumulated line items.
func (d *Draft) Items() []domain.LineItem {
	return d.items
}

// Total is the live draft total, identical to the computation applied at
// creation time. The collaborator's recorded total remains authoritative.
func (d *Draft) Total() float64 {
	return domain.OrderTotal(d.items)
}

// Validate reports why the draft cannot be submitted, or nil.
func (d *Draft) Validate() error {
	if d.VendorID <= 0 {
		return ErrNoVendor
	}
	if len(d.items) == 0 {
		return ErrNoItems
	}
	return nil
}

// Reset clears the draft for reuse.
func (d *Draft) Reset() {
	d.VendorID = 0
	d.items = nil
}

func (d *Draft) request() api.CreateOrderRequest {
	items := make([]api.OrderItemInput, 0, len(d.items))
	for _, item := range d.items {
		items = append(items, api.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return api.CreateOrderRequest{VendorID: d.VendorID, Items: items}
}
