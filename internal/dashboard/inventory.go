package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/arthur-debert/toran/internal/confirm"
	"github.com/arthur-debert/toran/inventory/export"
	"github.com/arthur-debert/toran/types"
)

func newItemTable(styles Styles) table.Model {
	columns := []table.Column{
		{Title: "SKU", Width: 10},
		{Title: "Item", Width: 22},
		{Title: "Category", Width: 12},
		{Title: "Qty", Width: 6},
		{Title: "Price", Width: 8},
		{Title: "Location", Width: 10},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(styles.Table)
	return t
}

// refresh recomputes the visible rows from the store
func (m *Model) refresh() {
	if m.store == nil {
		m.visible = nil
		m.table.SetRows(nil)
		return
	}
	m.visible = m.store.Filter(m.search.Value(), m.category)

	rows := make([]table.Row, 0, len(m.visible))
	for _, it := range m.visible {
		rows = append(rows, table.Row{it.SKU, it.Name, string(it.Category), string(it.Qty), string(it.Price), it.Loc})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(len(rows) - 1)
	}
	if m.table.Cursor() < 0 && len(rows) > 0 {
		m.table.SetCursor(0)
	}
}

// selected returns the item under the cursor
func (m Model) selected() (types.Item, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return types.Item{}, false
	}
	return m.visible[i], true
}

func (m Model) updateInventory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.updateSearch(msg)
	case modeConfirmDelete:
		return m.updateConfirmDelete(msg)
	case modeForm:
		return m.updateForm(msg)
	}

	switch msg.String() {
	case "/":
		m.mode = modeSearch
		m.clearStatus()
		return m, m.search.Focus()

	case "c":
		m.category = types.NextCategory(m.category)
		m.refresh()
		return m, nil

	case "esc":
		m.search.SetValue("")
		m.category = ""
		m.refresh()
		return m, nil

	case "n":
		m.form = newItemForm(types.NewItem(), "")
		m.mode = modeForm
		m.clearStatus()
		return m, m.form.focusCurrent()

	case "enter":
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.form = newItemForm(item, item.SKU)
		m.mode = modeForm
		m.clearStatus()
		return m, m.form.focusCurrent()

	case "d":
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.pendingDelete = item.SKU
		m.mode = modeConfirmDelete
		m.setStatus(fmt.Sprintf("Delete %s? (y/n)", item.SKU))
		return m, nil

	case "e":
		return m.exportCSV()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.search.Blur()
		m.mode = modeBrowse
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sku := m.pendingDelete
	m.pendingDelete = ""
	m.mode = modeBrowse

	switch strings.ToLower(msg.String()) {
	case "y":
		// The question was already asked on screen
		removed, err := m.store.Delete(sku, confirm.Always(true))
		if err != nil {
			m.logger.Error("delete failed", zap.String("sku", sku), zap.Error(err))
			m.setError(err)
			return m, nil
		}
		if removed {
			m.setStatus("Deleted " + sku)
		} else {
			m.setStatus(sku + " was already gone")
		}
		m.refresh()
	default:
		m.setStatus("Delete cancelled")
	}
	return m, nil
}

func (m Model) exportCSV() (tea.Model, tea.Cmd) {
	path, err := export.Download(export.NewCSVArtifact(m.store.Items()), m.exportDir)
	if err != nil {
		m.logger.Error("export failed", zap.Error(err))
		m.setError(err)
		return m, nil
	}
	m.setStatus("Exported " + path)
	return m, nil
}

func (m Model) viewInventory() string {
	var b strings.Builder
	b.WriteString(m.styles.Heading.Render("Inventory"))
	b.WriteString("\n")

	filter := "All categories"
	if m.category != "" {
		filter = string(m.category)
	}
	b.WriteString(m.search.View())
	b.WriteString(m.styles.Muted.Render("   [" + filter + "]"))
	b.WriteString("\n\n")

	if m.mode == modeForm {
		b.WriteString(m.form.view(m.styles))
		return b.String()
	}

	if len(m.visible) == 0 {
		b.WriteString(m.styles.Muted.Render("No items match."))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(m.table.View())
	b.WriteString("\n")
	return b.String()
}

// form field order
const (
	fieldSKU = iota
	fieldName
	fieldCategory
	fieldQty
	fieldPrice
	fieldLoc
	fieldCount
)

var fieldLabels = [fieldCount]string{"SKU", "Name", "Category", "Qty", "Price", "Location"}

// itemForm edits a new or existing item
type itemForm struct {
	inputs  [fieldCount]textinput.Model
	focus   int
	editing string // SKU of the item being edited, empty when adding
	err     error
}

func newItemForm(item types.Item, editing string) itemForm {
	f := itemForm{editing: editing}
	values := [fieldCount]string{item.SKU, item.Name, string(item.Category), string(item.Qty), string(item.Price), item.Loc}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 256
		in.SetValue(values[i])
		f.inputs[i] = in
	}
	if editing != "" {
		f.focus = fieldName
	}
	return f
}

func (f *itemForm) focusCurrent() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[f.focus].Focus()
}

func (f *itemForm) move(delta int) tea.Cmd {
	first := fieldSKU
	if f.editing != "" {
		// SKU cannot change once created
		first = fieldName
	}
	span := fieldCount - first
	f.focus = first + ((f.focus-first+delta)%span+span)%span
	return f.focusCurrent()
}

// item builds the item from the field values
func (f itemForm) item() (types.Item, error) {
	category, err := types.ParseCategory(strings.TrimSpace(f.inputs[fieldCategory].Value()))
	if err != nil {
		return types.Item{}, err
	}
	return types.Item{
		SKU:      strings.TrimSpace(f.inputs[fieldSKU].Value()),
		Name:     strings.TrimSpace(f.inputs[fieldName].Value()),
		Category: category,
		Qty:      types.Quantity(strings.TrimSpace(f.inputs[fieldQty].Value())),
		Price:    types.Price(strings.TrimSpace(f.inputs[fieldPrice].Value())),
		Loc:      strings.TrimSpace(f.inputs[fieldLoc].Value()),
	}, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.setStatus("Edit cancelled")
		return m, nil
	case "tab", "down":
		return m, m.form.move(1)
	case "shift+tab", "up":
		return m, m.form.move(-1)
	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	item, err := m.form.item()
	if err == nil {
		if m.form.editing != "" {
			err = m.store.Update(m.form.editing, item)
		} else {
			err = m.store.Add(item)
		}
	}
	if err != nil {
		// The store is unchanged; keep the form open so the input can be fixed
		m.form.err = err
		if !errors.Is(err, types.ErrValidation) && !errors.Is(err, types.ErrDuplicateSKU) {
			m.logger.Error("save failed", zap.Error(err))
		}
		return m, nil
	}

	verb := "Added "
	if m.form.editing != "" {
		verb = "Updated "
		item.SKU = m.form.editing
	}
	m.mode = modeBrowse
	m.setStatus(verb + item.SKU)
	m.refresh()
	return m, nil
}

func (f itemForm) view(styles Styles) string {
	var b strings.Builder
	title := "Add item"
	if f.editing != "" {
		title = "Edit item"
	}
	b.WriteString(styles.Heading.Render(title))
	b.WriteString("\n")

	for i, in := range f.inputs {
		label := fmt.Sprintf("%-9s", fieldLabels[i])
		if i == fieldSKU && f.editing != "" {
			b.WriteString(styles.Muted.Render(label + " " + f.editing))
			b.WriteString("\n")
			continue
		}
		if i == f.focus {
			b.WriteString(styles.Status.Render(label))
		} else {
			b.WriteString(label)
		}
		b.WriteString(" ")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString(styles.Muted.Render(fmt.Sprintf("Categories: %s", categoryList())))
	b.WriteString("\n")
	if f.err != nil {
		b.WriteString(styles.Error.Render(f.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

func categoryList() string {
	names := make([]string, len(types.Categories))
	for i, c := range types.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
