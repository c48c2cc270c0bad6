// internal/tui/form.go
//
// A small labeled-field form used by the creation flows. One form definition
// per entity kind; the submit closure shapes the collected values into the
// right request.

package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stockdeck/stockdeck/internal/api"
	"github.com/stockdeck/stockdeck/internal/domain"
)

type formField struct {
	label string
	input textinput.Model
}

// formView owns a sequence of text fields plus an optional option picker
// rendered after them. Tab walks fields then the picker; left/right cycle
// the picker when it has focus.
type formView struct {
	title   string
	kind    string
	fields  []formField
	focus   int
	options []string
	optIdx  int
	submit  func(a *App, values []string, option int) tea.Cmd
}

func newField(label, placeholder string, width int) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 64
	in.Width = width
	return formField{label: label, input: in}
}

func newForm(title, kind string, fields []formField, options []string, submit func(*App, []string, int) tea.Cmd) *formView {
	f := &formView{title: title, kind: kind, fields: fields, options: options, submit: submit}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

// slots counts focusable positions: every field plus the picker if present.
func (f *formView) slots() int {
	n := len(f.fields)
	if len(f.options) > 0 {
		n++
	}
	return n
}

func (f *formView) moveFocus(delta int) tea.Cmd {
	if f.focus < len(f.fields) {
		f.fields[f.focus].input.Blur()
	}
	f.focus = cycle(f.focus, delta, f.slots())
	if f.focus < len(f.fields) {
		return f.fields[f.focus].input.Focus()
	}
	return nil
}

func (f *formView) values() []string {
	out := make([]string, len(f.fields))
	for i, field := range f.fields {
		out[i] = strings.TrimSpace(field.input.Value())
	}
	return out
}

func (f *formView) update(a *App, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.form = nil
		a.statusMsg = ""
		return nil
	case "tab", "down":
		return f.moveFocus(1)
	case "shift+tab", "up":
		return f.moveFocus(-1)
	case "left":
		if f.focus >= len(f.fields) {
			f.optIdx = cycle(f.optIdx, -1, len(f.options))
			return nil
		}
	case "right":
		if f.focus >= len(f.fields) {
			f.optIdx = cycle(f.optIdx, 1, len(f.options))
			return nil
		}
	case "ctrl+s", "enter":
		if msg.String() == "ctrl+s" || f.focus == f.slots()-1 {
			return f.submit(a, f.values(), f.optIdx)
		}
		return f.moveFocus(1)
	}

	if f.focus < len(f.fields) {
		var cmd tea.Cmd
		f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
		return cmd
	}
	return nil
}

func (f *formView) view() string {
	lines := []string{headText.Render(f.title), ""}
	for i, field := range f.fields {
		marker := "  "
		if i == f.focus {
			marker = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%-12s %s", marker, field.label, field.input.View()))
	}
	if len(f.options) > 0 {
		marker := "  "
		if f.focus >= len(f.fields) {
			marker = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%-12s %s  %s",
			marker, f.optionLabel(), f.options[f.optIdx], dimText.Render("(left/right)")))
	}
	lines = append(lines, "", dimText.Render("Tab → next field    Ctrl+S → save    Esc → cancel"))
	return strings.Join(lines, "\n")
}

func (f *formView) optionLabel() string {
	switch f.kind {
	case "product":
		return "Category"
	case "user":
		return "Role"
	}
	return "Option"
}

// --- entity forms ---

func newProductForm(a *App) *formView {
	fields := []formField{
		newField("Name", "product name", 30),
		newField("SKU", "sku", 20),
		newField("Price", "sale price", 12),
		newField("Cost", "cost price", 12),
		newField("Reorder at", "reorder level", 8),
	}
	options := make([]string, len(a.categories))
	for i, c := range a.categories {
		options[i] = c.Name
	}
	return newForm("New Product", "product", fields, options, submitProduct)
}

func submitProduct(a *App, values []string, option int) tea.Cmd {
	if values[0] == "" || values[1] == "" {
		a.statusMsg = "Name and SKU are required"
		return nil
	}
	price, err := strconv.ParseFloat(values[2], 64)
	if err != nil || price <= 0 {
		a.statusMsg = "Price must be a positive number"
		return nil
	}
	cost, err := strconv.ParseFloat(values[3], 64)
	if err != nil || cost < 0 {
		a.statusMsg = "Cost price must be a number"
		return nil
	}
	reorder, err := strconv.Atoi(values[4])
	if err != nil || reorder < 0 {
		a.statusMsg = "Reorder level must be a whole number"
		return nil
	}
	if len(a.categories) == 0 {
		a.statusMsg = "No categories loaded; create one first"
		return nil
	}
	// Categories may have been reloaded since the form opened.
	if option >= len(a.categories) {
		option = 0
	}
	req := api.CreateProductRequest{
		Name:         values[0],
		SKU:          values[1],
		Price:        price,
		CostPrice:    cost,
		ReorderLevel: reorder,
		CategoryID:   a.categories[option].ID,
	}
	backend := a.backend
	return func() tea.Msg {
		_, err := backend.CreateProduct(context.Background(), req)
		return entityCreatedMsg{kind: "Product", err: err}
	}
}

func newVendorForm(a *App) *formView {
	fields := []formField{
		newField("Name", "vendor name", 30),
		newField("Contact", "phone / email", 30),
		newField("Address", "address", 40),
	}
	return newForm("New Vendor", "vendor", fields, nil, submitVendor)
}

func submitVendor(a *App, values []string, _ int) tea.Cmd {
	if values[0] == "" {
		a.statusMsg = "Name is required"
		return nil
	}
	req := api.CreateVendorRequest{Name: values[0], ContactInfo: values[1], Address: values[2]}
	backend := a.backend
	return func() tea.Msg {
		_, err := backend.CreateVendor(context.Background(), req)
		return entityCreatedMsg{kind: "Vendor", err: err}
	}
}

func newCategoryForm(a *App) *formView {
	fields := []formField{newField("Name", "category name", 30)}
	return newForm("New Category", "category", fields, nil, submitCategory)
}

func submitCategory(a *App, values []string, _ int) tea.Cmd {
	if values[0] == "" {
		a.statusMsg = "Name is required"
		return nil
	}
	req := api.CreateCategoryRequest{Name: values[0]}
	backend := a.backend
	return func() tea.Msg {
		_, err := backend.CreateCategory(context.Background(), req)
		return entityCreatedMsg{kind: "Category", err: err}
	}
}

func newUserForm(a *App) *formView {
	fields := []formField{
		newField("Name", "full name", 30),
		newField("Email", "email", 30),
		newField("Password", "password", 20),
	}
	fields[2].input.EchoMode = textinput.EchoPassword
	fields[2].input.EchoCharacter = '•'
	options := make([]string, len(domain.Roles))
	for i, r := range domain.Roles {
		options[i] = string(r)
	}
	return newForm("New User", "user", fields, options, submitUser)
}

func submitUser(a *App, values []string, option int) tea.Cmd {
	if values[0] == "" || values[1] == "" || values[2] == "" {
		a.statusMsg = "Name, email and password are required"
		return nil
	}
	req := api.CreateUserRequest{
		Name:     values[0],
		Email:    values[1],
		Password: values[2],
		Role:     domain.Roles[option],
	}
	backend := a.backend
	return func() tea.Msg {
		_, err := backend.CreateUser(context.Background(), req)
		return entityCreatedMsg{kind: "User", err: err}
	}
}
