// Package nav computes which destinations and in-screen controls a role may
// reach. Every predicate here is advisory: it hides controls the collaborator
// would reject anyway, and is never the enforcement point for a role rule.
package nav

import "github.com/stockdeck/stockdeck/internal/domain"

// Screen identifies a navigation destination.
type Screen string

const (
	ScreenDashboard Screen = "dashboard"
	ScreenProducts  Screen = "products"
	ScreenVendors   Screen = "vendors"
	ScreenSales     Screen = "sales"
	ScreenOrders    Screen = "purchase-orders"
	ScreenUsers     Screen = "users"
)

// Destination declares one navigation entry and the roles that may see it.
type Destination struct {
	Screen Screen
	Title  string
	Desc   string
	Roles  []domain.Role
}

func allRoles() []domain.Role {
	return []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleStaff}
}

// Catalog returns the full ordered destination list. User administration is
// admin-only; everything else is open to every authenticated role.
func Catalog() []Destination {
	return []Destination{
		{Screen: ScreenDashboard, Title: "Dashboard", Desc: "Inventory overview and stock movements", Roles: allRoles()},
		{Screen: ScreenProducts, Title: "Products", Desc: "Catalog, prices and stock levels", Roles: allRoles()},
		{Screen: ScreenVendors, Title: "Vendors", Desc: "Suppliers and contact details", Roles: allRoles()},
		{Screen: ScreenSales, Title: "Sales", Desc: "Customer orders and revenue", Roles: allRoles()},
		{Screen: ScreenOrders, Title: "Purchase Orders", Desc: "Replenish stock from vendors", Roles: allRoles()},
		{Screen: ScreenUsers, Title: "Users", Desc: "Account administration", Roles: []domain.Role{domain.RoleAdmin}},
	}
}

// Visible filters the catalog down to the destinations the role may see,
// preserving catalog order.
func Visible(role domain.Role) []Destination {
	var out []Destination
	for _, dest := range Catalog() {
		if dest.allows(role) {
			out = append(out, dest)
		}
	}
	return out
}

func (d Destination) allows(role domain.Role) bool {
	for _, r := range d.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// CanApprove reports whether the approve control applies: only an admin, and
// only while the order is still pending.
func CanApprove(status domain.OrderStatus, role domain.Role) bool {
	return status == domain.StatusPending && role == domain.RoleAdmin
}

// CanReceive reports whether the receive control applies: any authenticated
// role, but only once the order has been approved.
func CanReceive(status domain.OrderStatus, role domain.Role) bool {
	if status != domain.StatusApproved {
		return false
	}
	switch role {
	case domain.RoleAdmin, domain.RoleManager, domain.RoleStaff:
		return true
	}
	return false
}
