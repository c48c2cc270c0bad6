// internal/tui/app.go
//
// The terminal front end for the inventory API. It uses bubbletea, which
// follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// Collaborator calls never run inside Update; they run as tea.Cmds and come
// back as the typed messages below. Update is the single place that reacts
// to an unauthorized response: whatever screen triggered it, the session is
// gone and the login screen takes over.

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/stockdeck/stockdeck/internal/api"
	"github.com/stockdeck/stockdeck/internal/config"
	"github.com/stockdeck/stockdeck/internal/domain"
	"github.com/stockdeck/stockdeck/internal/logbook"
	"github.com/stockdeck/stockdeck/internal/nav"
	"github.com/stockdeck/stockdeck/internal/order"
	"github.com/stockdeck/stockdeck/internal/sale"
	"github.com/stockdeck/stockdeck/internal/session"
)

// appState represents which top-level mode we're in.
type appState int

const (
	stateLogin appState = iota // collecting credentials
	stateHome                  // nav menu plus the active screen
)

type appFocus int

const (
	focusMenu appFocus = iota
	focusContent
)

// App is the main application model. In bubbletea, this holds ALL the state.
type App struct {
	cfg      *config.Config
	sessions *session.Store
	backend  Backend
	ctrl     *order.Controller
	logbook  *logbook.Logbook

	state appState
	focus appFocus

	login  loginView
	menu   list.Model
	dests  []nav.Destination
	screen nav.Screen

	orders ordersView
	sales  salesView
	form   *formView

	products   []domain.Product
	categories []domain.Category
	vendors    []domain.Vendor
	users      []domain.User
	saleList   []domain.Sale
	summary    domain.DashboardSummary
	hasSummary bool

	statusMsg string
	width     int
	height    int
}

// menuItem implements list.Item for navigation entries.
type menuItem struct {
	screen nav.Screen
	title  string
	desc   string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// --- messages ---

type loginResultMsg struct {
	identity domain.Identity
	token    string
	err      error
}

type ordersDataMsg struct {
	products []domain.Product
	vendors  []domain.Vendor
	orders   []domain.PurchaseOrder
	err      error
}

type salesDataMsg struct {
	products []domain.Product
	sales    []domain.Sale
	err      error
}

type productsDataMsg struct {
	products   []domain.Product
	categories []domain.Category
	err        error
}

type vendorsDataMsg struct {
	vendors []domain.Vendor
	err     error
}

type usersDataMsg struct {
	users []domain.User
	err   error
}

type dashboardDataMsg struct {
	summary domain.DashboardSummary
	err     error
}

// orderActionMsg reports a lifecycle operation. On success the freshly
// fetched list rides along; on a refresh failure it carries the stale list
// the command was given, so the screen never clears.
type orderActionMsg struct {
	op     string
	orders []domain.PurchaseOrder
	err    error
}

type saleRecordedMsg struct {
	err error
}

type entityCreatedMsg struct {
	kind string
	err  error
}

// NewApp creates the application model. When a persisted session is present
// the login screen is skipped and the nav menu is built for its role.
func NewApp(cfg *config.Config, sessions *session.Store, backend Backend, lb *logbook.Logbook) *App {
	a := &App{
		cfg:      cfg,
		sessions: sessions,
		backend:  backend,
		ctrl:     order.NewController(backend, lb.Scoped(logbook.ScopeOrders)),
		logbook:  lb,
		state:    stateLogin,
		login:    newLoginView(),
	}
	a.orders = newOrdersView(a)
	a.sales = newSalesView(a)
	if id, ok := sessions.Identity(); ok {
		a.enterHome(id)
	}
	return a
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	if a.state == stateHome {
		return a.loadScreen(a.screen)
	}
	return a.login.focusCmd()
}

// enterHome builds the role-gated menu and lands on the first destination.
func (a *App) enterHome(id domain.Identity) {
	a.dests = nav.Visible(id.Role)
	items := make([]list.Item, 0, len(a.dests))
	for _, d := range a.dests {
		items = append(items, menuItem{screen: d.Screen, title: d.Title, desc: d.Desc})
	}
	menu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	menu.Title = fmt.Sprintf("▣ STOCKDECK · %s (%s)", id.Name, id.Role)
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	a.menu = menu
	a.state = stateHome
	a.focus = focusMenu
	if len(a.dests) > 0 {
		a.screen = a.dests[0].Screen
	}
	if a.width > 0 {
		a.menu.SetSize(menuWidth(a.width), maxInt(10, a.height-8))
	}
}

// forceLogin tears the UI back to the login screen after the collaborator
// rejected the credential. The API client's hook already cleared the store;
// clearing again here is a no-op when it did.
func (a *App) forceLogin(reason string) tea.Cmd {
	_ = a.sessions.Clear()
	a.logbook.Scoped(logbook.ScopeSession).Warn("session cleared: %s", reason)
	a.state = stateLogin
	a.login = newLoginView()
	a.login.errMsg = reason
	a.statusMsg = ""
	a.form = nil
	return a.login.focusCmd()
}

// remoteFailure routes a collaborator error: a 401 forces re-login, anything
// else is surfaced verbatim while the screen keeps its last good data.
func (a *App) remoteFailure(err error) tea.Cmd {
	if api.IsUnauthorized(err) {
		return a.forceLogin("Session expired. Sign in again.")
	}
	a.statusMsg = err.Error()
	return nil
}

func (a *App) identity() domain.Identity {
	id, _ := a.sessions.Identity()
	return id
}

func (a *App) role() domain.Role {
	return a.identity().Role
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.state == stateHome {
			a.menu.SetSize(menuWidth(msg.Width), maxInt(10, msg.Height-8))
		}
		return a, nil

	case loginResultMsg:
		return a, a.handleLoginResult(msg)

	case ordersDataMsg:
		if msg.err != nil {
			return a, a.remoteFailure(msg.err)
		}
		a.products = msg.products
		a.vendors = msg.vendors
		a.orders.setList(msg.orders)
		a.orders.clampCursors(len(msg.products), len(msg.vendors))
		a.statusMsg = ""
		return a, nil

	case salesDataMsg:
		if msg.err != nil {
			return a, a.remoteFailure(msg.err)
		}
		a.products = msg.products
		a.saleList = msg.sales
		a.sales.clampCursor(len(msg.products))
		a.statusMsg = ""
		return a, nil

	case productsDataMsg:
		if msg.err != nil {
			return a, a.remoteFailure(msg.err)
		}
		a.products = msg.products
		a.categories = msg.categories
		a.orders.clampCursors(len(a.products), len(a.vendors))
		a.sales.clampCursor(len(a.products))
		a.statusMsg = ""
		return a, nil

	case vendorsDataMsg:
		if msg.err != nil {
			return a, a.remoteFailure(msg.err)
		}
		a.vendors = msg.vendors
		a.statusMsg = ""
		return a, nil

	case usersDataMsg:
		if msg.err != nil {
			return a, a.remoteFailure(msg.err)
		}
		a.users = msg.users
		a.statusMsg = ""
		return a, nil

	case dashboardDataMsg:
		if msg.err != nil {
			return a, a.remoteFailure(msg.err)
		}
		a.summary = msg.summary
		a.hasSummary = true
		a.statusMsg = ""
		return a, nil

	case orderActionMsg:
		return a, a.orders.handleAction(msg)

	case saleRecordedMsg:
		if msg.err != nil {
			return a, a.remoteFailure(msg.err)
		}
		a.sales.cart.Clear()
		a.sales.mode = salesBrowse
		a.statusMsg = "Sale recorded"
		a.logbook.Scoped(logbook.ScopeSales).Info("sale recorded")
		return a, a.loadScreen(nav.ScreenSales)

	case entityCreatedMsg:
		if msg.err != nil {
			return a, a.remoteFailure(msg.err)
		}
		a.form = nil
		a.statusMsg = fmt.Sprintf("%s created", msg.kind)
		a.logbook.Scoped(logbook.ScopeClient).Info("%s created", msg.kind)
		return a, a.loadScreen(a.screen)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleLoginResult(msg loginResultMsg) tea.Cmd {
	a.login.busy = false
	if msg.err != nil {
		if api.IsUnauthorized(msg.err) {
			a.login.errMsg = "Invalid credentials"
		} else {
			a.login.errMsg = msg.err.Error()
		}
		return nil
	}
	if err := a.sessions.SignIn(msg.identity, msg.token); err != nil {
		a.login.errMsg = err.Error()
		return nil
	}
	a.logbook.Scoped(logbook.ScopeSession).Info("signed in as %s (%s)", msg.identity.Email, msg.identity.Role)
	a.enterHome(msg.identity)
	return a.loadScreen(a.screen)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.state == stateLogin {
		cmd := a.login.update(a, msg)
		return a, cmd
	}

	// Creation forms capture keys while open.
	if a.form != nil {
		cmd := a.form.update(a, msg)
		return a, cmd
	}

	switch a.focus {
	case focusMenu:
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "ctrl+d":
			a.logbook.Scoped(logbook.ScopeSession).Info("signed out")
			return a, a.forceLogin("Signed out.")
		case "enter":
			if item, ok := a.menu.SelectedItem().(menuItem); ok {
				a.screen = item.screen
				a.focus = focusContent
				a.statusMsg = ""
				return a, a.loadScreen(item.screen)
			}
			return a, nil
		}
		var cmd tea.Cmd
		a.menu, cmd = a.menu.Update(msg)
		return a, cmd

	case focusContent:
		if msg.String() == "esc" && !a.contentCapturesEsc() {
			a.focus = focusMenu
			a.statusMsg = ""
			return a, nil
		}
		return a, a.updateContent(msg)
	}
	return a, nil
}

// contentCapturesEsc reports whether the active screen is in a sub-mode
// (draft builder, cart) that uses esc itself.
func (a *App) contentCapturesEsc() bool {
	switch a.screen {
	case nav.ScreenOrders:
		return a.orders.mode == ordersDraft
	case nav.ScreenSales:
		return a.sales.mode == salesCart
	}
	return false
}

func (a *App) updateContent(msg tea.KeyMsg) tea.Cmd {
	switch a.screen {
	case nav.ScreenOrders:
		return a.orders.update(msg)
	case nav.ScreenSales:
		return a.sales.update(msg)
	case nav.ScreenProducts:
		return a.updateProducts(msg)
	case nav.ScreenVendors:
		return a.updateVendors(msg)
	case nav.ScreenUsers:
		return a.updateUsers(msg)
	case nav.ScreenDashboard:
		if msg.String() == "g" {
			return a.loadScreen(nav.ScreenDashboard)
		}
	}
	return nil
}

// --- data loading ---

// loadScreen fetches whatever the destination needs. Screens needing several
// resources fetch them concurrently and settle only when all have answered;
// one failure fails the whole load and the screen keeps its last good data.
func (a *App) loadScreen(screen nav.Screen) tea.Cmd {
	backend := a.backend
	ctrl := a.ctrl
	switch screen {
	case nav.ScreenOrders:
		return func() tea.Msg {
			var msg ordersDataMsg
			g, ctx := errgroup.WithContext(context.Background())
			g.Go(func() (err error) { msg.products, err = backend.ListProducts(ctx); return })
			g.Go(func() (err error) { msg.vendors, err = backend.ListVendors(ctx); return })
			g.Go(func() (err error) { msg.orders, err = ctrl.List(ctx); return })
			msg.err = g.Wait()
			return msg
		}
	case nav.ScreenSales:
		return func() tea.Msg {
			var msg salesDataMsg
			g, ctx := errgroup.WithContext(context.Background())
			g.Go(func() (err error) { msg.products, err = backend.ListProducts(ctx); return })
			g.Go(func() (err error) {
				sales, err := backend.ListSales(ctx)
				msg.sales = sale.NewestFirst(sales)
				return err
			})
			msg.err = g.Wait()
			return msg
		}
	case nav.ScreenProducts:
		return func() tea.Msg {
			var msg productsDataMsg
			g, ctx := errgroup.WithContext(context.Background())
			g.Go(func() (err error) { msg.products, err = backend.ListProducts(ctx); return })
			g.Go(func() (err error) { msg.categories, err = backend.ListCategories(ctx); return })
			msg.err = g.Wait()
			return msg
		}
	case nav.ScreenVendors:
		return func() tea.Msg {
			vendors, err := backend.ListVendors(context.Background())
			return vendorsDataMsg{vendors: vendors, err: err}
		}
	case nav.ScreenUsers:
		return func() tea.Msg {
			users, err := backend.ListUsers(context.Background())
			return usersDataMsg{users: users, err: err}
		}
	case nav.ScreenDashboard:
		return func() tea.Msg {
			summary, err := backend.DashboardSummary(context.Background())
			return dashboardDataMsg{summary: summary, err: err}
		}
	}
	return nil
}

// --- rendering ---

// View renders the current state to a string.
func (a *App) View() string {
	if a.state == stateLogin {
		return a.login.view(a.width)
	}

	width := a.width
	if width <= 0 {
		width = 100
	}
	left := menuWidth(width)
	right := width - left - 4
	if right < 30 {
		right = width - 4
		left = 0
	}

	var content string
	if a.form != nil {
		content = a.form.view()
	} else {
		content = a.viewContent(right)
	}
	contentBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(maxInt(30, right)).
		Render(content)

	var body string
	if left > 0 {
		menuBox := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1).
			Width(left).
			Render(a.menu.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, menuBox, contentBox)
	} else {
		body = contentBox
	}

	sections := []string{body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(a.footerText())
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

func (a *App) footerText() string {
	if a.statusMsg != "" {
		return a.statusMsg
	}
	if a.focus == focusMenu {
		return "Enter → open screen    Ctrl+D → sign out    q → quit"
	}
	return "Esc → menu    g → refresh"
}

func (a *App) viewContent(width int) string {
	switch a.screen {
	case nav.ScreenDashboard:
		return a.viewDashboard()
	case nav.ScreenProducts:
		return a.viewProducts()
	case nav.ScreenVendors:
		return a.viewVendors()
	case nav.ScreenUsers:
		return a.viewUsers()
	case nav.ScreenSales:
		return a.sales.view(width)
	case nav.ScreenOrders:
		return a.orders.view(width)
	}
	return "Loading..."
}

func (a *App) renderLogPanel() string {
	lines := a.logbook.Tail(4)
	if len(lines) == 0 {
		return ""
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render("LOG")
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(head + "\n" + body)
}

func (a *App) productName(id int) string {
	for _, p := range a.products {
		if p.ID == id {
			return p.Name
		}
	}
	return fmt.Sprintf("Product #%d", id)
}

func (a *App) vendorName(id int) string {
	for _, v := range a.vendors {
		if v.ID == id {
			return v.Name
		}
	}
	return fmt.Sprintf("Vendor #%d", id)
}

func menuWidth(total int) int {
	w := total / 3
	if w < 28 {
		w = 28
	}
	if w > 44 {
		w = 44
	}
	return w
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
