package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockdeck/stockdeck/internal/domain"
)

func TestVisibleHidesUsersFromNonAdmins(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleManager, domain.RoleStaff} {
		dests := Visible(role)
		require.Len(t, dests, 5, "role %s", role)
		for _, d := range dests {
			assert.NotEqual(t, ScreenUsers, d.Screen, "role %s", role)
		}
	}

	admin := Visible(domain.RoleAdmin)
	require.Len(t, admin, 6)
	assert.Equal(t, ScreenUsers, admin[5].Screen)
}

func TestVisibleKeepsCatalogOrder(t *testing.T) {
	dests := Visible(domain.RoleStaff)
	want := []Screen{ScreenDashboard, ScreenProducts, ScreenVendors, ScreenSales, ScreenOrders}
	require.Len(t, dests, len(want))
	for i, d := range dests {
		assert.Equal(t, want[i], d.Screen)
	}
}

func TestVisibleUnknownRole(t *testing.T) {
	assert.Empty(t, Visible(domain.Role("guest")))
}

// Exhaustive over 3 roles x 3 statuses.
func TestApproveAndReceiveGating(t *testing.T) {
	for _, role := range domain.Roles {
		for _, status := range domain.OrderStatuses {
			wantApprove := role == domain.RoleAdmin && status == domain.StatusPending
			wantReceive := status == domain.StatusApproved
			assert.Equal(t, wantApprove, CanApprove(status, role), "approve %s/%s", role, status)
			assert.Equal(t, wantReceive, CanReceive(status, role), "receive %s/%s", role, status)
		}
	}
}

func TestGatingRejectsUnknownInputs(t *testing.T) {
	assert.False(t, CanApprove(domain.StatusPending, domain.Role("guest")))
	assert.False(t, CanReceive(domain.StatusApproved, domain.Role("guest")))
	assert.False(t, CanReceive(domain.OrderStatus("Draft"), domain.RoleAdmin))
}
