package tui

import (
	"context"

	"github.com/stockdeck/stockdeck/internal/api"
	"github.com/stockdeck/stockdeck/internal/domain"
)

// Backend is the collaborator surface the TUI consumes. *api.Client is the
// production implementation; tests substitute a fake.
type Backend interface {
	Login(ctx context.Context, username, password string) (api.LoginResponse, error)

	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, req api.CreateProductRequest) (domain.Product, error)
	ListVendors(ctx context.Context) ([]domain.Vendor, error)
	CreateVendor(ctx context.Context, req api.CreateVendorRequest) (domain.Vendor, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, req api.CreateCategoryRequest) (domain.Category, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, req api.CreateUserRequest) (domain.User, error)
	DashboardSummary(ctx context.Context) (domain.DashboardSummary, error)

	ListSales(ctx context.Context) ([]domain.Sale, error)
	CreateSale(ctx context.Context, req api.CreateSaleRequest) (domain.Sale, error)

	ListOrders(ctx context.Context) ([]domain.PurchaseOrder, error)
	CreateOrder(ctx context.Context, req api.CreateOrderRequest) (domain.PurchaseOrder, error)
	ApproveOrder(ctx context.Context, id int) (domain.PurchaseOrder, error)
	ReceiveOrder(ctx context.Context, id int) (domain.PurchaseOrder, error)
}
