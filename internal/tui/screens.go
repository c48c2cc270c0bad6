// internal/tui/screens.go
//
// Read-mostly screens: dashboard, products, vendors, users. Each renders a
// plain table from the last good fetch and offers a creation form where the
// entity supports one.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stockdeck/stockdeck/internal/nav"
)

var lowStockStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E05252")).Bold(true)

func (a *App) updateProducts(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "g":
		return a.loadScreen(nav.ScreenProducts)
	case "n":
		a.form = newProductForm(a)
		return textinput.Blink
	case "c":
		a.form = newCategoryForm(a)
		return textinput.Blink
	}
	return nil
}

func (a *App) updateVendors(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "g":
		return a.loadScreen(nav.ScreenVendors)
	case "n":
		a.form = newVendorForm(a)
		return textinput.Blink
	}
	return nil
}

func (a *App) updateUsers(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "g":
		return a.loadScreen(nav.ScreenUsers)
	case "n":
		a.form = newUserForm(a)
		return textinput.Blink
	}
	return nil
}

func (a *App) viewDashboard() string {
	if !a.hasSummary {
		return dimText.Render("Loading dashboard…")
	}
	s := a.summary
	lines := []string{
		headText.Render("Dashboard"),
		"",
		fmt.Sprintf("Products:       %d", s.TotalProducts),
		fmt.Sprintf("Vendors:        %d", s.TotalVendors),
		fmt.Sprintf("Sales revenue:  %.2f", s.TotalSales),
	}
	low := fmt.Sprintf("Low stock:      %d", s.LowStockCount)
	if s.LowStockCount > 0 {
		low = lowStockStyle.Render(low)
	}
	lines = append(lines, low)

	if len(s.RecentMovement) > 0 {
		lines = append(lines, "", headText.Render("Recent stock movement"))
		for _, m := range s.RecentMovement {
			lines = append(lines, fmt.Sprintf("  %-20s  %+5d  %-10s  %s",
				truncate(a.productName(m.ProductID), 20),
				m.QuantityChange,
				m.MovementType,
				m.CreatedAt.Format("2006-01-02 15:04"),
			))
		}
	}
	lines = append(lines, "", dimText.Render("g → refresh"))
	return strings.Join(lines, "\n")
}

func (a *App) viewProducts() string {
	lines := []string{headText.Render(fmt.Sprintf("Products (%d)", len(a.products)))}
	if len(a.products) == 0 {
		lines = append(lines, dimText.Render("No products found."))
	}
	for _, p := range a.products {
		row := fmt.Sprintf("  %-24s  %-12s  %8.2f  stock %4d",
			truncate(p.Name, 24), p.SKU, p.Price, p.CurrentStock)
		if p.LowStock() {
			row = lowStockStyle.Render(row + "  LOW")
		}
		lines = append(lines, row)
	}
	lines = append(lines, "", dimText.Render("n → new product    c → new category    g → refresh"))
	return strings.Join(lines, "\n")
}

func (a *App) viewVendors() string {
	lines := []string{headText.Render(fmt.Sprintf("Vendors (%d)", len(a.vendors)))}
	if len(a.vendors) == 0 {
		lines = append(lines, dimText.Render("No vendors found."))
	}
	for _, v := range a.vendors {
		lines = append(lines, fmt.Sprintf("  %-24s  %-24s  %s",
			truncate(v.Name, 24), truncate(v.ContactInfo, 24), truncate(v.Address, 30)))
	}
	lines = append(lines, "", dimText.Render("n → new vendor    g → refresh"))
	return strings.Join(lines, "\n")
}

func (a *App) viewUsers() string {
	lines := []string{headText.Render(fmt.Sprintf("Users (%d)", len(a.users)))}
	if len(a.users) == 0 {
		lines = append(lines, dimText.Render("No users found."))
	}
	for _, u := range a.users {
		lines = append(lines, fmt.Sprintf("  %-20s  %-28s  %s",
			truncate(u.Name, 20), truncate(u.Email, 28), u.Role))
	}
	lines = append(lines, "", dimText.Render("n → new user    g → refresh"))
	return strings.Join(lines, "\n")
}
