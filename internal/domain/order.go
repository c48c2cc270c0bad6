package domain

import (
	"fmt"
	"math"
	"time"
)

// OrderStatus is the purchase-order lifecycle state. The collaborator assigns
// StatusPending at creation and enforces the strict linear progression
// Pending -> Approved -> Completed; the client never advances an order
// locally.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusApproved  OrderStatus = "Approved"
	StatusCompleted OrderStatus = "Completed"
)

// OrderStatuses lists the lifecycle states in progression order.
var OrderStatuses = []OrderStatus{StatusPending, StatusApproved, StatusCompleted}

// Known reports whether the status is one of the lifecycle states.
func (s OrderStatus) Known() bool {
	switch s {
	case StatusPending, StatusApproved, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether the order can no longer change.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted
}

// LineItem is one (product, quantity, unit price) entry on a purchase order.
// Line items are immutable once the order has been submitted.
type LineItem struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Extension returns the line total, rounded to the currency's minor unit.
func (li LineItem) Extension() float64 {
	return roundCents(float64(li.Quantity) * li.UnitPrice)
}

// OrderTotal sums line extensions. The same function feeds the live draft
// total and the amount sent at creation; the collaborator's recorded total
// stays authoritative.
func OrderTotal(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return roundCents(total)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// PurchaseOrder mirrors the collaborator's record. TotalAmount always equals
// the sum of line extensions; it is computed at creation and never edited
// independently.
type PurchaseOrder struct {
	ID          int         `json:"id"`
	VendorID    int         `json:"vendor_id"`
	Items       []LineItem  `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Code renders the display identifier used on the orders screen.
func (po PurchaseOrder) Code() string {
	return fmt.Sprintf("PO-%04d", po.ID)
}
