// Package sale builds a sale cart before recording the transaction. Unlike
// purchase-order drafts, a cart merges lines for the same product by summing
// quantity: a sale has a single catalog price per product, so there is
// nothing to keep apart.
package sale

import (
	"errors"

	"github.com/stockdeck/stockdeck/internal/api"
	"github.com/stockdeck/stockdeck/internal/domain"
)

var (
	// ErrNoProduct means no product was selected.
	ErrNoProduct = errors.New("sale: product is required")
	// ErrBadQuantity means a non-positive quantity was given.
	ErrBadQuantity = errors.New("sale: quantity must be positive")
	// ErrInsufficientStock means the product cannot cover the quantity.
	ErrInsufficientStock = errors.New("sale: not enough stock available")
	// ErrEmptyCart means the cart has no lines to record.
	ErrEmptyCart = errors.New("sale: cart is empty")
)

// Line is one cart entry, priced at the product's catalog price.
type Line struct {
	ProductID int
	Name      string
	Quantity  int
	UnitPrice float64
}

// Cart accumulates sale lines client-side. The collaborator re-prices and
// re-checks stock when the sale is recorded; the checks here only save a
// doomed round trip.
type Cart struct {
	lines []Line
}

// Add puts quantity of the product into the cart. A product already in the
// cart has its quantity increased instead of gaining a second line.
func (c *Cart) Add(p domain.Product, quantity int) error {
	if p.ID <= 0 {
		return ErrNoProduct
	}
	if quantity <= 0 {
		return ErrBadQuantity
	}
	if p.CurrentStock < quantity {
		return ErrInsufficientStock
	}
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity += quantity
			return nil
		}
	}
	c.lines = append(c.lines, Line{ProductID: p.ID, Name: p.Name, Quantity: quantity, UnitPrice: p.Price})
	return nil
}

// Lines returns the cart contents.
func (c *Cart) Lines() []Line {
	return c.lines
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Total is the display total at catalog prices. The collaborator records the
// authoritative amount.
func (c *Cart) Total() float64 {
	items := make([]domain.LineItem, 0, len(c.lines))
	for _, line := range c.lines {
		items = append(items, domain.LineItem{ProductID: line.ProductID, Quantity: line.Quantity, UnitPrice: line.UnitPrice})
	}
	return domain.OrderTotal(items)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Request converts the cart into the creation payload. ErrEmptyCart is
// returned for an empty cart so no network call is attempted.
func (c *Cart) Request() (api.CreateSaleRequest, error) {
	if len(c.lines) == 0 {
		return api.CreateSaleRequest{}, ErrEmptyCart
	}
	items := make([]api.SaleItemInput, 0, len(c.lines))
	for _, line := range c.lines {
		items = append(items, api.SaleItemInput{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return api.CreateSaleRequest{Items: items}, nil
}

// NewestFirst reorders fetched sales for display, most recent first. Like
// the orders screen, this is presentation only.
func NewestFirst(sales []domain.Sale) []domain.Sale {
	reversed := make([]domain.Sale, len(sales))
	for i, s := range sales {
		reversed[len(sales)-1-i] = s
	}
	return reversed
}
