package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockdeck/stockdeck/internal/domain"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func TestLoginSendsFormEncodedCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)
		require.Contains(t, r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "maya@example.com", r.PostFormValue("username"))
		assert.Equal(t, "secret", r.PostFormValue("password"))
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(LoginResponse{AccessToken: "tok-1", TokenType: "bearer"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticTokens(""))
	grant, err := client.Login(context.Background(), "maya@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", grant.AccessToken)
	assert.Equal(t, "bearer", grant.TokenType)
}

func TestLoginRejectionSurfacesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticTokens(""))
	_, err := client.Login(context.Background(), "nobody", "wrong")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestBearerAttachedToEveryCall(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticTokens("tok-9"))
	ctx := context.Background()
	_, err := client.ListProducts(ctx)
	require.NoError(t, err)
	_, err = client.ListOrders(ctx)
	require.NoError(t, err)

	require.Len(t, seen, 2)
	for _, header := range seen {
		assert.Equal(t, "Bearer tok-9", header)
	}
}

func TestUnauthorizedInvokesHookOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
	}))
	defer srv.Close()

	var cleared int
	client := NewClient(srv.URL, staticTokens("stale"), WithUnauthorizedHook(func() { cleared++ }))
	_, err := client.ListVendors(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 1, cleared)
}

func TestForbiddenDoesNotInvokeHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Not enough permissions"})
	}))
	defer srv.Close()

	var cleared int
	client := NewClient(srv.URL, staticTokens("tok"), WithUnauthorizedHook(func() { cleared++ }))
	_, err := client.ApproveOrder(context.Background(), 3)
	require.Error(t, err)
	assert.False(t, IsUnauthorized(err))
	assert.Equal(t, "Not enough permissions", err.Error())
	assert.Zero(t, cleared)
}

func TestCreateOrderRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/purchase_orders", r.URL.Path)
		var req CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, 2, req.VendorID)
		require.Len(t, req.Items, 1)

		json.NewEncoder(w).Encode(domain.PurchaseOrder{
			ID:          11,
			VendorID:    req.VendorID,
			Items:       []domain.LineItem{{ProductID: 5, Quantity: 4, UnitPrice: 2.50}},
			TotalAmount: 10.00,
			Status:      domain.StatusPending,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticTokens("tok"))
	order, err := client.CreateOrder(context.Background(), CreateOrderRequest{
		VendorID: 2,
		Items:    []OrderItemInput{{ProductID: 5, Quantity: 4, UnitPrice: 2.50}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, 10.00, order.TotalAmount)
}

func TestTransitionRejectionKeepsDetailVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/purchase_orders/7/receive", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Order must be approved first"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticTokens("tok"))
	_, err := client.ReceiveOrder(context.Background(), 7)
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Order must be approved first", apiErr.Detail)
}

func TestTransportFailureIsNotAnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := NewClient(srv.URL, staticTokens("tok"))
	_, err := client.ListSales(context.Background())
	require.Error(t, err)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
}
