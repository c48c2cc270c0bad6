package sale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockdeck/stockdeck/internal/domain"
)

func product(id int, price float64, stock int) domain.Product {
	return domain.Product{ID: id, Name: "Widget", Price: price, CurrentStock: stock}
}

func TestAddMergesMatchingProducts(t *testing.T) {
	var cart Cart
	p := product(3, 4.00, 50)
	require.NoError(t, cart.Add(p, 2))
	require.NoError(t, cart.Add(p, 3))

	require.Equal(t, 1, cart.Len())
	assert.Equal(t, 5, cart.Lines()[0].Quantity)
	assert.Equal(t, 20.00, cart.Total())
}

func TestAddKeepsDistinctProductsApart(t *testing.T) {
	var cart Cart
	require.NoError(t, cart.Add(product(1, 2.00, 10), 1))
	require.NoError(t, cart.Add(product(2, 3.00, 10), 1))
	assert.Equal(t, 2, cart.Len())
	assert.Equal(t, 5.00, cart.Total())
}

func TestAddValidation(t *testing.T) {
	var cart Cart
	assert.ErrorIs(t, cart.Add(domain.Product{}, 1), ErrNoProduct)
	assert.ErrorIs(t, cart.Add(product(1, 2.00, 10), 0), ErrBadQuantity)
	assert.ErrorIs(t, cart.Add(product(1, 2.00, 2), 3), ErrInsufficientStock)
	assert.Zero(t, cart.Len())
}

func TestRequestRefusesEmptyCart(t *testing.T) {
	var cart Cart
	_, err := cart.Request()
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestRequestCarriesLines(t *testing.T) {
	var cart Cart
	require.NoError(t, cart.Add(product(7, 1.50, 10), 4))
	req, err := cart.Request()
	require.NoError(t, err)
	require.Len(t, req.Items, 1)
	assert.Equal(t, 7, req.Items[0].ProductID)
	assert.Equal(t, 4, req.Items[0].Quantity)
}

func TestClear(t *testing.T) {
	var cart Cart
	require.NoError(t, cart.Add(product(1, 1.00, 5), 1))
	cart.Clear()
	assert.Zero(t, cart.Len())
}

func TestNewestFirst(t *testing.T) {
	sales := []domain.Sale{{ID: 1}, {ID: 2}, {ID: 3}}
	got := NewestFirst(sales)
	require.Len(t, got, 3)
	assert.Equal(t, 3, got[0].ID)
	assert.Equal(t, 1, got[2].ID)
	// input untouched
	assert.Equal(t, 1, sales[0].ID)
}
