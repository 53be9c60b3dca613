// Package dashboard is the interactive terminal UI: five views over the
// record store, the analytics aggregates, the demo chat and the settings.
package dashboard

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/arthur-debert/toran/chat"
	"github.com/arthur-debert/toran/inventory"
	"github.com/arthur-debert/toran/inventory/storage"
	"github.com/arthur-debert/toran/settings"
	"github.com/arthur-debert/toran/types"
)

// View identifies one of the dashboard screens
type View int

const (
	ViewInventory View = iota
	ViewOrders
	ViewAnalytics
	ViewChat
	ViewSettings
)

var viewTitles = []string{"Inventory", "Orders", "Analytics", "AI Chatbot", "Settings"}

// Views lists the views in tab order
var Views = []View{ViewInventory, ViewOrders, ViewAnalytics, ViewChat, ViewSettings}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewTitles) {
		return "unknown"
	}
	return viewTitles[v]
}

// mode is the input state of the inventory view
type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeConfirmDelete
	modeForm
)

// Deps are the collaborators of the dashboard
type Deps struct {
	Store *inventory.Store

	// Settings is where the theme preference is kept
	Settings storage.KV

	// ExportDir receives CSV exports (defaults to the working directory)
	ExportDir string

	// ChatOptions configure the conversation (delay, clock)
	ChatOptions []chat.Option

	Logger *zap.Logger
}

// replyMsg carries a chat reply delivered by the conversation hook
type replyMsg chat.Message

// Model is the root bubbletea model
type Model struct {
	store     *inventory.Store
	kv        storage.KV
	exportDir string
	logger    *zap.Logger

	active View
	theme  settings.Theme
	styles Styles

	// inventory view
	table         table.Model
	search        textinput.Model
	category      types.Category
	mode          mode
	pendingDelete string
	form          itemForm
	visible       []types.Item

	// chat view
	conversation *chat.Conversation
	replies      chan chat.Message
	chatInput    textinput.Model
	messages     []chat.Message

	status      string
	statusIsErr bool
	width       int
	height      int
	quitting    bool
}

// New builds the dashboard model. The theme is read from deps.Settings.
func New(deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	exportDir := deps.ExportDir
	if exportDir == "" {
		exportDir = "."
	}

	theme := settings.DefaultTheme
	if deps.Settings != nil {
		loaded, err := settings.Load(deps.Settings)
		if err != nil {
			logger.Warn("failed to load theme", zap.Error(err))
		}
		theme = loaded
	}

	replies := make(chan chat.Message, 16)
	chatOpts := append([]chat.Option{
		chat.WithLogger(logger.Named("chat")),
		chat.WithReplyHook(func(msg chat.Message) {
			select {
			case replies <- msg:
			default:
				// The view re-reads the whole history on the next reply
			}
		}),
	}, deps.ChatOptions...)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search inventory or SKU..."
	search.CharLimit = 64

	chatInput := textinput.New()
	chatInput.Prompt = "> "
	chatInput.Placeholder = "Ask about inventory, orders, or products..."
	chatInput.CharLimit = 256

	m := Model{
		store:        deps.Store,
		kv:           deps.Settings,
		exportDir:    exportDir,
		logger:       logger,
		active:       ViewInventory,
		theme:        theme,
		styles:       NewStyles(theme),
		search:       search,
		conversation: chat.New(chatOpts...),
		replies:      replies,
		chatInput:    chatInput,
		width:        100,
		height:       30,
	}
	m.table = newItemTable(m.styles)
	m.refresh()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return waitForReply(m.replies)
}

// waitForReply blocks until the conversation delivers a reply
func waitForReply(replies <-chan chat.Message) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-replies
		if !ok {
			return nil
		}
		return replyMsg(msg)
	}
}

// Close stops any pending chat reply
func (m Model) Close() {
	m.conversation.Close()
}

// Active returns the selected view
func (m Model) Active() View {
	return m.active
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(3, msg.Height-12))
		return m, nil

	case replyMsg:
		m.messages = m.conversation.Messages()
		return m, waitForReply(m.replies)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// Views with a focused text field get every key first
	switch {
	case m.active == ViewInventory && m.mode != modeBrowse:
		return m.updateInventory(msg)
	case m.active == ViewChat && m.chatInput.Focused() && key != "tab" && key != "shift+tab":
		return m.updateChat(msg)
	}

	switch key {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		return m.switchTo(View((int(m.active) + 1) % len(Views)))
	case "shift+tab":
		return m.switchTo(View((int(m.active) + len(Views) - 1) % len(Views)))
	case "1", "2", "3", "4", "5":
		return m.switchTo(View(key[0] - '1'))
	}

	switch m.active {
	case ViewInventory:
		return m.updateInventory(msg)
	case ViewChat:
		return m.updateChat(msg)
	case ViewSettings:
		return m.updateSettings(msg)
	}
	return m, nil
}

// switchTo changes the active view. Only one view is active at a time.
func (m Model) switchTo(v View) (tea.Model, tea.Cmd) {
	m.active = v
	m.clearStatus()

	if v == ViewChat {
		m.messages = m.conversation.Messages()
		return m, m.chatInput.Focus()
	}
	m.chatInput.Blur()
	if v == ViewInventory {
		m.refresh()
	}
	return m, nil
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusIsErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusIsErr = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusIsErr = false
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Brand.Render("Toran Electronics"))
	b.WriteString(m.styles.Muted.Render("  Admin Dashboard"))
	b.WriteString("\n\n")

	tabs := make([]string, 0, len(Views))
	for i, v := range Views {
		label := string(rune('1'+i)) + " " + v.String()
		if v == m.active {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	switch m.active {
	case ViewInventory:
		b.WriteString(m.viewInventory())
	case ViewOrders:
		b.WriteString(m.viewOrders())
	case ViewAnalytics:
		b.WriteString(m.viewAnalytics())
	case ViewChat:
		b.WriteString(m.viewChat())
	case ViewSettings:
		b.WriteString(m.viewSettings())
	}

	b.WriteString("\n")
	if m.status != "" {
		if m.statusIsErr {
			b.WriteString(m.styles.Error.Render(m.status))
		} else {
			b.WriteString(m.styles.Status.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Muted.Render(m.help()))
	return b.String()
}

func (m Model) help() string {
	switch {
	case m.active == ViewInventory && m.mode == modeSearch:
		return "type to filter • enter/esc done"
	case m.active == ViewInventory && m.mode == modeForm:
		return "tab/shift+tab move • enter save • esc cancel"
	case m.active == ViewInventory && m.mode == modeConfirmDelete:
		return "y confirm • any other key cancel"
	case m.active == ViewInventory:
		return "/ search • c category • n new • enter edit • d delete • e export • 1-5/tab views • q quit"
	case m.active == ViewChat && m.chatInput.Focused():
		return "enter send • esc leave input • tab views"
	case m.active == ViewSettings:
		return "t toggle theme • 1-5/tab views • q quit"
	default:
		return "1-5/tab views • q quit"
	}
}
