package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderTotalSumsLineExtensions(t *testing.T) {
	items := []LineItem{
		{ProductID: 1, Quantity: 2, UnitPrice: 10.00},
		{ProductID: 2, Quantity: 1, UnitPrice: 5.50},
	}
	assert.Equal(t, 25.50, OrderTotal(items))
}

func TestOrderTotalRoundsToMinorUnit(t *testing.T) {
	// 3 * 0.10 accumulates binary noise without rounding.
	items := []LineItem{
		{ProductID: 1, Quantity: 3, UnitPrice: 0.10},
	}
	assert.Equal(t, 0.30, OrderTotal(items))
	assert.Equal(t, 0.30, items[0].Extension())
}

func TestOrderTotalEmpty(t *testing.T) {
	assert.Zero(t, OrderTotal(nil))
}

func TestOrderStatusProgression(t *testing.T) {
	require.Len(t, OrderStatuses, 3)
	assert.Equal(t, StatusPending, OrderStatuses[0])
	assert.Equal(t, StatusApproved, OrderStatuses[1])
	assert.Equal(t, StatusCompleted, OrderStatuses[2])
	assert.True(t, StatusCompleted.Terminal())
	assert.False(t, StatusApproved.Terminal())
	assert.False(t, OrderStatus("Cancelled").Known())
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = ParseRole("superuser")
	assert.Error(t, err)
}

func TestPurchaseOrderCode(t *testing.T) {
	po := PurchaseOrder{ID: 7}
	assert.Equal(t, "PO-0007", po.Code())
}

func TestLowStock(t *testing.T) {
	p := Product{CurrentStock: 3, ReorderLevel: 5}
	assert.True(t, p.LowStock())
	p.CurrentStock = 6
	assert.False(t, p.LowStock())
}

func TestRevenue(t *testing.T) {
	sales := []Sale{{TotalAmount: 10.25}, {TotalAmount: 4.75}}
	assert.Equal(t, 15.00, Revenue(sales))
	assert.Equal(t, "INV-0012", Sale{ID: 12}.Code())
}
