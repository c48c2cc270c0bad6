// Package api is the single HTTP client for the inventory collaborator.
// Every domain call routes through it: it attaches the bearer credential,
// decodes the collaborator's {detail} rejections into typed errors, and
// funnels every unauthorized response through one interception point.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/stockdeck/stockdeck/internal/domain"
)

const defaultTimeout = 15 * time.Second

// Error is a collaborator rejection. Detail carries the server's message
// verbatim so screens can surface it unchanged.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: request failed with status %d", e.StatusCode)
	}
	return e.Detail
}

// IsUnauthorized reports whether err is a collaborator 401.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// TokenSource yields the active bearer credential, or "" when signed out.
type TokenSource interface {
	Token() string
}

// Client talks to the collaborator at a fixed base address.
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	onUnauthorized func()
}

// Option customizes client construction.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (primarily for tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUnauthorizedHook registers the callback invoked on any 401 response.
// The hook runs before the error is returned to the call site, so session
// teardown happens exactly once regardless of which screen made the call.
func WithUnauthorizedHook(hook func()) Option {
	return func(c *Client) {
		c.onUnauthorized = hook
	}
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// LoginResponse is the credential grant returned by POST /login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token. The collaborator expects a
// form-encoded username/password pair; no bearer header is attached.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return LoginResponse{}, fmt.Errorf("api: build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var grant LoginResponse
	if err := c.send(req, &grant); err != nil {
		return LoginResponse{}, err
	}
	return grant, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var rejection struct {
			Detail string `json:"detail"`
		}
		if data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil {
			if json.Unmarshal(data, &rejection) == nil {
				apiErr.Detail = rejection.Detail
			}
		}
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// --- lookups ---

// ListProducts fetches the full product catalog.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListVendors fetches all vendors.
func (c *Client) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	var vendors []domain.Vendor
	if err := c.do(ctx, http.MethodGet, "/vendors", nil, &vendors); err != nil {
		return nil, err
	}
	return vendors, nil
}

// ListCategories fetches all product categories.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListUsers fetches all accounts. The collaborator rejects non-admin callers.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DashboardSummary fetches the aggregate inventory metrics.
func (c *Client) DashboardSummary(ctx context.Context) (domain.DashboardSummary, error) {
	var summary domain.DashboardSummary
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, &summary); err != nil {
		return domain.DashboardSummary{}, err
	}
	return summary, nil
}

// --- creation ---

// CreateProductRequest is the payload for POST /products.
type CreateProductRequest struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Price        float64 `json:"price"`
	CostPrice    float64 `json:"cost_price"`
	ReorderLevel int     `json:"reorder_level"`
	CategoryID   int     `json:"category_id"`
}

// CreateProduct registers a new product.
func (c *Client) CreateProduct(ctx context.Context, req CreateProductRequest) (domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodPost, "/products", req, &product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

// CreateVendorRequest is the payload for POST /vendors.
type CreateVendorRequest struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
	Address     string `json:"address"`
}

// CreateVendor registers a new vendor.
func (c *Client) CreateVendor(ctx context.Context, req CreateVendorRequest) (domain.Vendor, error) {
	var vendor domain.Vendor
	if err := c.do(ctx, http.MethodPost, "/vendors", req, &vendor); err != nil {
		return domain.Vendor{}, err
	}
	return vendor, nil
}

// CreateCategoryRequest is the payload for POST /categories.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CreateCategory registers a new category.
func (c *Client) CreateCategory(ctx context.Context, req CreateCategoryRequest) (domain.Category, error) {
	var category domain.Category
	if err := c.do(ctx, http.MethodPost, "/categories", req, &category); err != nil {
		return domain.Category{}, err
	}
	return category, nil
}

// CreateUserRequest is the payload for POST /users.
type CreateUserRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// CreateUser registers a new account.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/users", req, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// --- sales ---

// SaleItemInput is one line of a sale creation request.
type SaleItemInput struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// CreateSaleRequest is the payload for POST /sales.
type CreateSaleRequest struct {
	Items []SaleItemInput `json:"items"`
}

// ListSales fetches all recorded sales.
func (c *Client) ListSales(ctx context.Context) ([]domain.Sale, error) {
	var sales []domain.Sale
	if err := c.do(ctx, http.MethodGet, "/sales", nil, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// CreateSale records a sale. The collaborator prices each line, computes the
// total and decrements stock atomically.
func (c *Client) CreateSale(ctx context.Context, req CreateSaleRequest) (domain.Sale, error) {
	var sale domain.Sale
	if err := c.do(ctx, http.MethodPost, "/sales", req, &sale); err != nil {
		return domain.Sale{}, err
	}
	return sale, nil
}

// --- purchase orders ---

// OrderItemInput is one line of an order creation request.
type OrderItemInput struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// CreateOrderRequest is the payload for POST /purchase_orders.
type CreateOrderRequest struct {
	VendorID int              `json:"vendor_id"`
	Items    []OrderItemInput `json:"items"`
}

// ListOrders fetches every purchase order in the collaborator's arrival
// order. Callers must not rely on that order; presentation reverses it.
func (c *Client) ListOrders(ctx context.Context) ([]domain.PurchaseOrder, error) {
	var orders []domain.PurchaseOrder
	if err := c.do(ctx, http.MethodGet, "/purchase_orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder submits a draft. The collaborator assigns Pending status and
// records the authoritative total.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (domain.PurchaseOrder, error) {
	var order domain.PurchaseOrder
	if err := c.do(ctx, http.MethodPost, "/purchase_orders", req, &order); err != nil {
		return domain.PurchaseOrder{}, err
	}
	return order, nil
}

// ApproveOrder asks the collaborator for the Pending -> Approved transition.
// Role and state violations come back as *Error with the rejection detail.
func (c *Client) ApproveOrder(ctx context.Context, id int) (domain.PurchaseOrder, error) {
	var order domain.PurchaseOrder
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/purchase_orders/%d/approve", id), nil, &order); err != nil {
		return domain.PurchaseOrder{}, err
	}
	return order, nil
}

// ReceiveOrder asks the collaborator for the Approved -> Completed
// transition, which also increments stock for every line item.
func (c *Client) ReceiveOrder(ctx context.Context, id int) (domain.PurchaseOrder, error) {
	var order domain.PurchaseOrder
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/purchase_orders/%d/receive", id), nil, &order); err != nil {
		return domain.PurchaseOrder{}, err
	}
	return order, nil
}
