package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockdeck/stockdeck/internal/api"
	"github.com/stockdeck/stockdeck/internal/domain"
)

type fakeService struct {
	orders      []domain.PurchaseOrder
	listErr     error
	createCalls int
	lastCreate  api.CreateOrderRequest
	transition  func(id int) (domain.PurchaseOrder, error)
}

func (f *fakeService) ListOrders(context.Context) ([]domain.PurchaseOrder, error) {
	return f.orders, f.listErr
}

func (f *fakeService) CreateOrder(_ context.Context, req api.CreateOrderRequest) (domain.PurchaseOrder, error) {
	f.createCalls++
	f.lastCreate = req
	return domain.PurchaseOrder{ID: 99, VendorID: req.VendorID, Status: domain.StatusPending}, nil
}

func (f *fakeService) ApproveOrder(_ context.Context, id int) (domain.PurchaseOrder, error) {
	return f.transition(id)
}

func (f *fakeService) ReceiveOrder(_ context.Context, id int) (domain.PurchaseOrder, error) {
	return f.transition(id)
}

type recordLogger struct{ warnings []string }

func (r *recordLogger) Warn(format string, args ...any) {
	r.warnings = append(r.warnings, format)
}

func TestDraftRefusesInvalidLineItems(t *testing.T) {
	var d Draft
	assert.ErrorIs(t, d.AddLineItem(0, 1, 2.50), ErrBadLineItem)
	assert.ErrorIs(t, d.AddLineItem(3, 0, 2.50), ErrBadLineItem)
	assert.ErrorIs(t, d.AddLineItem(3, 1, 0), ErrBadLineItem)
	assert.Empty(t, d.Items())
}

func TestDraftKeepsDuplicateProductsOnSeparateLines(t *testing.T) {
	var d Draft
	require.NoError(t, d.AddLineItem(3, 2, 1.25))
	require.NoError(t, d.AddLineItem(3, 5, 1.10))
	require.Len(t, d.Items(), 2)
	assert.Equal(t, 2, d.Items()[0].Quantity)
	assert.Equal(t, 5, d.Items()[1].Quantity)
}

func TestDraftTotal(t *testing.T) {
	var d Draft
	require.NoError(t, d.AddLineItem(1, 2, 10.00))
	require.NoError(t, d.AddLineItem(2, 1, 5.50))
	assert.Equal(t, 25.50, d.Total())
}

func TestSubmitRefusedLocallyWithoutVendorOrItems(t *testing.T) {
	svc := &fakeService{}
	ctrl := NewController(svc, nil)

	var empty Draft
	empty.VendorID = 4
	_, err := ctrl.Submit(context.Background(), &empty)
	assert.ErrorIs(t, err, ErrNoItems)

	var noVendor Draft
	require.NoError(t, noVendor.AddLineItem(1, 1, 1.00))
	_, err = ctrl.Submit(context.Background(), &noVendor)
	assert.ErrorIs(t, err, ErrNoVendor)

	assert.Zero(t, svc.createCalls, "no create call may be issued for an invalid draft")
}

func TestSubmitSendsDraftAndResetsIt(t *testing.T) {
	svc := &fakeService{}
	ctrl := NewController(svc, nil)

	var d Draft
	d.VendorID = 4
	require.NoError(t, d.AddLineItem(7, 3, 2.00))
	created, err := ctrl.Submit(context.Background(), &d)
	require.NoError(t, err)
	assert.Equal(t, 99, created.ID)
	assert.Equal(t, 1, svc.createCalls)
	assert.Equal(t, 4, svc.lastCreate.VendorID)
	require.Len(t, svc.lastCreate.Items, 1)
	assert.Equal(t, 2.00, svc.lastCreate.Items[0].UnitPrice)

	assert.Zero(t, d.VendorID)
	assert.Empty(t, d.Items())
}

func TestListShowsNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := &fakeService{orders: []domain.PurchaseOrder{
		{ID: 1, CreatedAt: base},
		{ID: 2, CreatedAt: base.Add(time.Hour)},
		{ID: 3, CreatedAt: base.Add(2 * time.Hour)},
	}}
	ctrl := NewController(svc, nil)
	orders, err := ctrl.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, 3, orders[0].ID)
	assert.Equal(t, 1, orders[2].ID)
}

func TestTransitionRejectionIsSurfacedUnchanged(t *testing.T) {
	rejection := &api.Error{StatusCode: 400, Detail: "Order cannot be approved"}
	svc := &fakeService{transition: func(int) (domain.PurchaseOrder, error) {
		return domain.PurchaseOrder{}, rejection
	}}
	ctrl := NewController(svc, nil)
	_, err := ctrl.Approve(context.Background(), 5)
	require.Error(t, err)
	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Order cannot be approved", apiErr.Detail)
}

func TestRefreshAfterKeepsStaleListAndLogs(t *testing.T) {
	svc := &fakeService{listErr: errors.New("connection refused")}
	log := &recordLogger{}
	ctrl := NewController(svc, log)
	stale := []domain.PurchaseOrder{{ID: 8, Status: domain.StatusApproved}}
	got := ctrl.RefreshAfter(context.Background(), "approve", stale)
	assert.Equal(t, stale, got)
	require.Len(t, log.warnings, 1)
}
