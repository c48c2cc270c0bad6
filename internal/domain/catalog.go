package domain

import "time"

// Category groups products for the catalog screens.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Product is a catalog entry. CurrentStock is owned by the collaborator and
// changes only as a side effect of receiving a purchase order or recording a
// sale, never through a direct edit.
type Product struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	CategoryID   int     `json:"category_id"`
	Price        float64 `json:"price"`
	CostPrice    float64 `json:"cost_price"`
	ReorderLevel int     `json:"reorder_level"`
	CurrentStock int     `json:"current_stock"`
}

// LowStock reports whether the product sits at or below its reorder level.
func (p Product) LowStock() bool {
	return p.CurrentStock <= p.ReorderLevel
}

// Vendor is a supplier. Purchase orders reference vendors by ID only.
type Vendor struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
	Address     string `json:"address"`
}

// User is an account record as listed by the administration screen.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// StockMovement records one stock delta, as reported by the dashboard.
type StockMovement struct {
	ProductID      int       `json:"product_id"`
	QuantityChange int       `json:"quantity_change"`
	MovementType   string    `json:"movement_type"`
	ReferenceID    int       `json:"reference_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// DashboardSummary is the collaborator's aggregate view of the inventory.
type DashboardSummary struct {
	TotalProducts  int             `json:"total_products"`
	TotalVendors   int             `json:"total_vendors"`
	TotalSales     float64         `json:"total_sales"`
	LowStockCount  int             `json:"low_stock_count"`
	RecentMovement []StockMovement `json:"recent_stock_movement"`
}
