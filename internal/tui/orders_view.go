// internal/tui/orders_view.go
//
// The purchase-orders screen: a newest-first order table in browse mode and
// a draft builder in draft mode. Approve/receive keys exist only when the
// gating predicates say the control applies; the collaborator still has the
// final word and its rejection is shown verbatim.

package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/stockdeck/stockdeck/internal/domain"
	"github.com/stockdeck/stockdeck/internal/logbook"
	"github.com/stockdeck/stockdeck/internal/nav"
	"github.com/stockdeck/stockdeck/internal/order"
)

type ordersMode int

const (
	ordersBrowse ordersMode = iota
	ordersDraft
)

type ordersView struct {
	app *App

	mode      ordersMode
	list      []domain.PurchaseOrder
	selection int

	draft      order.Draft
	vendorIdx  int
	productIdx int
	qtyInput   textinput.Model
	priceInput textinput.Model
	priceFocus bool
}

func newOrdersView(app *App) ordersView {
	qty := textinput.New()
	qty.Placeholder = "qty"
	qty.CharLimit = 6
	qty.Width = 6
	price := textinput.New()
	price.Placeholder = "unit price"
	price.CharLimit = 12
	price.Width = 12
	return ordersView{app: app, qtyInput: qty, priceInput: price}
}

func (v *ordersView) setList(orders []domain.PurchaseOrder) {
	v.list = orders
	if v.selection >= len(orders) {
		v.selection = maxInt(0, len(orders)-1)
	}
}

// clampCursors re-bounds the draft's lookup cursors after a reload. A fetch
// settling while the draft is open may carry shorter product or vendor lists
// than the ones the cursors were cycled over.
func (v *ordersView) clampCursors(products, vendors int) {
	if v.productIdx >= products {
		v.productIdx = 0
	}
	if v.vendorIdx >= vendors {
		v.vendorIdx = 0
	}
}

func (v *ordersView) selected() (domain.PurchaseOrder, bool) {
	if len(v.list) == 0 || v.selection >= len(v.list) {
		return domain.PurchaseOrder{}, false
	}
	return v.list[v.selection], true
}

func (v *ordersView) update(msg tea.KeyMsg) tea.Cmd {
	if v.mode == ordersDraft {
		return v.updateDraft(msg)
	}
	return v.updateBrowse(msg)
}

func (v *ordersView) updateBrowse(msg tea.KeyMsg) tea.Cmd {
	a := v.app
	switch msg.String() {
	case "up", "k":
		if v.selection > 0 {
			v.selection--
		}
	case "down", "j":
		if v.selection < len(v.list)-1 {
			v.selection++
		}
	case "g":
		return a.loadScreen(nav.ScreenOrders)
	case "n":
		v.enterDraft()
		return textinput.Blink
	case "a":
		if sel, ok := v.selected(); ok && nav.CanApprove(sel.Status, a.role()) {
			return v.transitionCmd("approve", sel.ID)
		}
	case "r":
		if sel, ok := v.selected(); ok && nav.CanReceive(sel.Status, a.role()) {
			return v.transitionCmd("receive", sel.ID)
		}
	}
	return nil
}

func (v *ordersView) enterDraft() {
	v.mode = ordersDraft
	v.draft.Reset()
	v.vendorIdx = 0
	v.productIdx = 0
	v.resetEntry()
}

// resetEntry clears the per-line fields after an item is added.
func (v *ordersView) resetEntry() {
	v.qtyInput.SetValue("1")
	v.priceInput.SetValue("")
	v.priceFocus = false
	v.priceInput.Blur()
	v.qtyInput.Focus()
}

func (v *ordersView) updateDraft(msg tea.KeyMsg) tea.Cmd {
	a := v.app
	switch msg.String() {
	case "esc":
		v.mode = ordersBrowse
		v.draft.Reset()
		a.statusMsg = ""
		return nil
	case "up":
		v.vendorIdx = cycle(v.vendorIdx, -1, len(a.vendors))
		return nil
	case "down":
		v.vendorIdx = cycle(v.vendorIdx, 1, len(a.vendors))
		return nil
	case "left":
		v.productIdx = cycle(v.productIdx, -1, len(a.products))
		return nil
	case "right":
		v.productIdx = cycle(v.productIdx, 1, len(a.products))
		return nil
	case "tab", "shift+tab":
		v.priceFocus = !v.priceFocus
		if v.priceFocus {
			v.qtyInput.Blur()
			return v.priceInput.Focus()
		}
		v.priceInput.Blur()
		return v.qtyInput.Focus()
	case "enter":
		v.addEntry()
		return nil
	case "ctrl+s":
		return v.submitCmd()
	}

	var cmd tea.Cmd
	if v.priceFocus {
		v.priceInput, cmd = v.priceInput.Update(msg)
	} else {
		v.qtyInput, cmd = v.qtyInput.Update(msg)
	}
	return cmd
}

// addEntry validates the entry fields and appends a line. The same product
// may appear on several lines; each keeps its own price.
func (v *ordersView) addEntry() {
	a := v.app
	if len(a.products) == 0 {
		a.statusMsg = "No products loaded"
		return
	}
	product := a.products[v.productIdx]
	qty, err := strconv.Atoi(strings.TrimSpace(v.qtyInput.Value()))
	if err != nil {
		a.statusMsg = "Quantity must be a whole number"
		return
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(v.priceInput.Value()), 64)
	if err != nil {
		a.statusMsg = "Unit price must be a number"
		return
	}
	if err := v.draft.AddLineItem(product.ID, qty, price); err != nil {
		a.statusMsg = err.Error()
		return
	}
	a.statusMsg = ""
	v.resetEntry()
}

// submitCmd refuses invalid drafts locally; nothing reaches the network
// until the draft has a vendor and at least one line.
func (v *ordersView) submitCmd() tea.Cmd {
	a := v.app
	if len(a.vendors) == 0 {
		a.statusMsg = "No vendors loaded"
		return nil
	}
	v.draft.VendorID = a.vendors[v.vendorIdx].ID
	if err := v.draft.Validate(); err != nil {
		a.statusMsg = err.Error()
		return nil
	}
	submitted := v.draft
	stale := v.list
	ctrl := a.ctrl
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := ctrl.Submit(ctx, &submitted); err != nil {
			return orderActionMsg{op: "create", err: err}
		}
		return orderActionMsg{op: "create", orders: ctrl.RefreshAfter(ctx, "create", stale)}
	}
}

func (v *ordersView) transitionCmd(op string, id int) tea.Cmd {
	stale := v.list
	ctrl := v.app.ctrl
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch op {
		case "approve":
			_, err = ctrl.Approve(ctx, id)
		case "receive":
			_, err = ctrl.Receive(ctx, id)
		}
		if err != nil {
			return orderActionMsg{op: op, err: err}
		}
		return orderActionMsg{op: op, orders: ctrl.RefreshAfter(ctx, op, stale)}
	}
}

// handleAction applies a lifecycle result. Failures leave the list exactly
// as it was; successes replace it with the refreshed fetch.
func (v *ordersView) handleAction(msg orderActionMsg) tea.Cmd {
	a := v.app
	if msg.err != nil {
		return a.remoteFailure(msg.err)
	}
	v.setList(msg.orders)
	switch msg.op {
	case "create":
		v.mode = ordersBrowse
		v.draft.Reset()
		a.statusMsg = "Purchase order created"
	case "approve":
		a.statusMsg = "Purchase order approved"
	case "receive":
		a.statusMsg = "Stock received"
	}
	a.logbook.Scoped(logbook.ScopeOrders).Info("order %s succeeded", msg.op)
	return nil
}

// --- rendering ---

var (
	badgePending   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	badgeApproved  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))
	badgeCompleted = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	selectedRow    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	dimText        = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	headText       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
)

func statusBadge(status domain.OrderStatus) string {
	switch status {
	case domain.StatusPending:
		return badgePending.Render(string(status))
	case domain.StatusApproved:
		return badgeApproved.Render(string(status))
	case domain.StatusCompleted:
		return badgeCompleted.Render(string(status))
	}
	return string(status)
}

func (v *ordersView) view(width int) string {
	if v.mode == ordersDraft {
		return v.viewDraft()
	}
	return v.viewBrowse()
}

func (v *ordersView) viewBrowse() string {
	a := v.app
	lines := []string{headText.Render(fmt.Sprintf("Purchase Orders (%d)", len(v.list)))}
	if len(v.list) == 0 {
		lines = append(lines, dimText.Render("No purchase orders found."))
	}
	for i, po := range v.list {
		row := fmt.Sprintf("%s  %-20s  %10.2f  %s  %s",
			po.Code(),
			truncate(a.vendorName(po.VendorID), 20),
			po.TotalAmount,
			statusBadge(po.Status),
			po.CreatedAt.Format("2006-01-02"),
		)
		if i == v.selection {
			row = selectedRow.Render("> " + row)
		} else {
			row = "  " + row
		}
		lines = append(lines, row)
	}
	lines = append(lines, "", dimText.Render(v.browseHints()))
	return strings.Join(lines, "\n")
}

// browseHints lists only the actions that apply to the selected order for
// the active role.
func (v *ordersView) browseHints() string {
	hints := []string{"n → new order", "g → refresh"}
	if sel, ok := v.selected(); ok {
		role := v.app.role()
		if nav.CanApprove(sel.Status, role) {
			hints = append(hints, "a → approve")
		}
		if nav.CanReceive(sel.Status, role) {
			hints = append(hints, "r → receive stock")
		}
	}
	return strings.Join(hints, "    ")
}

func (v *ordersView) viewDraft() string {
	a := v.app
	vendor := "none loaded"
	if len(a.vendors) > 0 {
		vendor = a.vendors[v.vendorIdx].Name
	}
	product := "none loaded"
	if len(a.products) > 0 {
		product = a.products[v.productIdx].Name
	}

	lines := []string{
		headText.Render("Create Purchase Order"),
		fmt.Sprintf("Vendor:  %s  %s", vendor, dimText.Render("(up/down)")),
		fmt.Sprintf("Product: %s  %s", product, dimText.Render("(left/right)")),
		fmt.Sprintf("Qty: %s   Price: %s", v.qtyInput.View(), v.priceInput.View()),
		"",
	}
	items := v.draft.Items()
	if len(items) == 0 {
		lines = append(lines, dimText.Render("No items yet. Enter adds the current line."))
	}
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("  %-20s  x%-4d  @ %8.2f  = %8.2f",
			truncate(a.productName(item.ProductID), 20),
			item.Quantity,
			item.UnitPrice,
			item.Extension(),
		))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Total: %.2f", v.draft.Total()),
		dimText.Render("Enter → add item    Tab → qty/price    Ctrl+S → submit    Esc → cancel"),
	)
	return strings.Join(lines, "\n")
}

func cycle(current, delta, length int) int {
	if length == 0 {
		return 0
	}
	next := (current + delta) % length
	if next < 0 {
		next += length
	}
	return next
}

// truncate shortens a name to the given display width without splitting
// runes or double-width characters.
func truncate(s string, limit int) string {
	return runewidth.Truncate(s, limit, "…")
}
