package domain

import (
	"fmt"
	"time"
)

// SaleItem is one line of a recorded sale. Price is the catalog price the
// collaborator captured when the sale was created.
type SaleItem struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Sale is a single-step transaction: created atomically, never revised.
// Creating one decrements stock for each line on the collaborator side.
type Sale struct {
	ID          int        `json:"id"`
	Items       []SaleItem `json:"items"`
	TotalAmount float64    `json:"total_amount"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Code renders the invoice identifier used on the sales screen.
func (s Sale) Code() string {
	return fmt.Sprintf("INV-%04d", s.ID)
}

// Revenue sums the recorded totals across sales.
func Revenue(sales []Sale) float64 {
	var total float64
	for _, s := range sales {
		total += s.TotalAmount
	}
	return roundCents(total)
}
