// internal/tui/sales_view.go
//
// The sales screen: a newest-first invoice table and a cart builder. The
// cart merges repeated products into one line, prices at the catalog price,
// and refuses quantities the cached stock figure cannot cover.

package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stockdeck/stockdeck/internal/domain"
	"github.com/stockdeck/stockdeck/internal/nav"
	"github.com/stockdeck/stockdeck/internal/sale"
)

type salesMode int

const (
	salesBrowse salesMode = iota
	salesCart
)

type salesView struct {
	app *App

	mode       salesMode
	cart       sale.Cart
	productIdx int
	qtyInput   textinput.Model
}

func newSalesView(app *App) salesView {
	qty := textinput.New()
	qty.Placeholder = "qty"
	qty.CharLimit = 6
	qty.Width = 6
	return salesView{app: app, qtyInput: qty}
}

// clampCursor re-bounds the product cursor after a reload; the settled fetch
// may carry fewer products than the cart was cycled over.
func (v *salesView) clampCursor(products int) {
	if v.productIdx >= products {
		v.productIdx = 0
	}
}

func (v *salesView) update(msg tea.KeyMsg) tea.Cmd {
	if v.mode == salesCart {
		return v.updateCart(msg)
	}
	switch msg.String() {
	case "g":
		return v.app.loadScreen(nav.ScreenSales)
	case "n":
		v.mode = salesCart
		v.cart.Clear()
		v.productIdx = 0
		v.resetEntry()
		return textinput.Blink
	}
	return nil
}

func (v *salesView) resetEntry() {
	v.qtyInput.SetValue("1")
	v.qtyInput.Focus()
}

func (v *salesView) updateCart(msg tea.KeyMsg) tea.Cmd {
	a := v.app
	switch msg.String() {
	case "esc":
		v.mode = salesBrowse
		v.cart.Clear()
		a.statusMsg = ""
		return nil
	case "left", "up":
		v.productIdx = cycle(v.productIdx, -1, len(a.products))
		return nil
	case "right", "down":
		v.productIdx = cycle(v.productIdx, 1, len(a.products))
		return nil
	case "enter":
		v.addEntry()
		return nil
	case "ctrl+s":
		return v.submitCmd()
	}

	var cmd tea.Cmd
	v.qtyInput, cmd = v.qtyInput.Update(msg)
	return cmd
}

func (v *salesView) addEntry() {
	a := v.app
	if len(a.products) == 0 {
		a.statusMsg = "No products loaded"
		return
	}
	qty, err := strconv.Atoi(strings.TrimSpace(v.qtyInput.Value()))
	if err != nil {
		a.statusMsg = "Quantity must be a whole number"
		return
	}
	if err := v.cart.Add(a.products[v.productIdx], qty); err != nil {
		a.statusMsg = err.Error()
		return
	}
	a.statusMsg = ""
	v.resetEntry()
}

func (v *salesView) submitCmd() tea.Cmd {
	a := v.app
	req, err := v.cart.Request()
	if err != nil {
		a.statusMsg = err.Error()
		return nil
	}
	backend := a.backend
	return func() tea.Msg {
		_, err := backend.CreateSale(context.Background(), req)
		return saleRecordedMsg{err: err}
	}
}

func (v *salesView) view(width int) string {
	if v.mode == salesCart {
		return v.viewCart()
	}
	return v.viewBrowse()
}

func (v *salesView) viewBrowse() string {
	a := v.app
	lines := []string{headText.Render(fmt.Sprintf("Sales (%d)", len(a.saleList)))}
	if len(a.saleList) == 0 {
		lines = append(lines, dimText.Render("No sales recorded."))
	}
	for _, s := range a.saleList {
		lines = append(lines, fmt.Sprintf("  %s  %3d item(s)  %10.2f  %s",
			s.Code(),
			len(s.Items),
			s.TotalAmount,
			s.CreatedAt.Format("2006-01-02 15:04"),
		))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Revenue: %.2f", domain.Revenue(a.saleList)),
		dimText.Render("n → new sale    g → refresh"),
	)
	return strings.Join(lines, "\n")
}

func (v *salesView) viewCart() string {
	a := v.app
	product := "none loaded"
	stock := 0
	if len(a.products) > 0 {
		product = a.products[v.productIdx].Name
		stock = a.products[v.productIdx].CurrentStock
	}
	lines := []string{
		headText.Render("New Sale"),
		fmt.Sprintf("Product: %s  %s  %s", product, dimText.Render(fmt.Sprintf("(stock %d)", stock)), dimText.Render("(left/right)")),
		fmt.Sprintf("Qty: %s", v.qtyInput.View()),
		"",
	}
	items := v.cart.Lines()
	if len(items) == 0 {
		lines = append(lines, dimText.Render("Cart is empty. Enter adds the current line."))
	}
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("  %-20s  x%-4d  @ %8.2f",
			truncate(item.Name, 20),
			item.Quantity,
			item.UnitPrice,
		))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Total: %.2f", v.cart.Total()),
		dimText.Render("Enter → add item    Ctrl+S → record sale    Esc → cancel"),
	)
	return strings.Join(lines, "\n")
}
