package dashboard

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/toran/chat"
	"github.com/arthur-debert/toran/inventory/export"
	"github.com/arthur-debert/toran/inventory/storage"
	"github.com/arthur-debert/toran/settings"
	"github.com/arthur-debert/toran/testutil"
	"github.com/arthur-debert/toran/types"
)

type fixture struct {
	m     Model
	kv    storage.KV
	clock *chat.ManualClock
	dir   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, kv := testutil.NewSeededStore(t)
	clock := chat.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	dir := t.TempDir()

	m := New(Deps{
		Store:       store,
		Settings:    kv,
		ExportDir:   dir,
		ChatOptions: []chat.Option{chat.WithClock(clock)},
	})
	t.Cleanup(m.Close)
	return &fixture{m: m, kv: kv, clock: clock, dir: dir}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends each key in order
func (f *fixture) press(keys ...string) {
	for _, k := range keys {
		updated, _ := f.m.Update(key(k))
		f.m = updated.(Model)
	}
}

// typeText sends text one rune at a time
func (f *fixture) typeText(text string) {
	for _, r := range text {
		updated, _ := f.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		f.m = updated.(Model)
	}
}

func TestViewSwitching(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, ViewInventory, f.m.Active())

	f.press("3")
	assert.Equal(t, ViewAnalytics, f.m.Active())

	f.press("tab")
	assert.Equal(t, ViewChat, f.m.Active())

	// Chat input has focus; tab still moves on
	f.press("tab")
	assert.Equal(t, ViewSettings, f.m.Active())

	f.press("tab")
	assert.Equal(t, ViewInventory, f.m.Active(), "tab wraps around")

	f.press("shift+tab")
	assert.Equal(t, ViewSettings, f.m.Active())

	f.press("2")
	assert.Equal(t, ViewOrders, f.m.Active())
	assert.Contains(t, f.m.View(), "Orders will appear here")
}

func TestQuit(t *testing.T) {
	f := newFixture(t)
	_, cmd := f.m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestInventorySearch(t *testing.T) {
	f := newFixture(t)
	require.Len(t, f.m.visible, 3)

	f.press("/")
	assert.Equal(t, modeSearch, f.m.mode)
	f.typeText("fan")
	testutil.AssertSKUs(t, f.m.visible, "FAN-001")

	// Digits go to the search field, not the view selector
	f.press("1")
	assert.Equal(t, ViewInventory, f.m.Active())
	assert.Equal(t, "fan1", f.m.search.Value())

	f.press("backspace", "enter")
	assert.Equal(t, modeBrowse, f.m.mode)
	assert.Equal(t, "fan", f.m.search.Value())

	f.press("esc")
	testutil.AssertItemCount(t, f.m.visible, 3, "after clearing filters")
}

func TestInventoryCategoryCycle(t *testing.T) {
	f := newFixture(t)

	f.press("c")
	assert.Equal(t, types.Fans, f.m.category)
	testutil.AssertSKUs(t, f.m.visible, "FAN-001")

	f.press("c", "c")
	assert.Equal(t, types.Bells, f.m.category)
	testutil.AssertSKUs(t, f.m.visible, "BEL-55")

	f.press("c")
	assert.Equal(t, types.Accessories, f.m.category)
	assert.Contains(t, f.m.View(), "No items match.")

	f.press("c")
	assert.Equal(t, types.Category(""), f.m.category)
	testutil.AssertItemCount(t, f.m.visible, 3)
}

func TestInventoryDelete(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		f := newFixture(t)
		f.press("down", "d")
		assert.Equal(t, modeConfirmDelete, f.m.mode)
		assert.Contains(t, f.m.View(), "Delete LGT-101? (y/n)")

		f.press("y")
		assert.Equal(t, modeBrowse, f.m.mode)
		testutil.AssertSKUs(t, f.m.visible, "FAN-001", "BEL-55")
		testutil.AssertSKUs(t, f.m.store.Items(), "FAN-001", "BEL-55")
	})

	t.Run("declined", func(t *testing.T) {
		f := newFixture(t)
		f.press("d", "n")
		assert.Equal(t, "Delete cancelled", f.m.status)
		testutil.AssertItemsEqual(t, types.SeedItems(), f.m.store.Items())
	})
}

func TestInventoryAddAndEdit(t *testing.T) {
	f := newFixture(t)

	f.press("n")
	require.Equal(t, modeForm, f.m.mode)
	f.typeText("ACC-1")
	f.press("tab")
	f.typeText("Remote")
	f.press("enter")

	assert.Equal(t, modeBrowse, f.m.mode)
	assert.Equal(t, "Added ACC-1", f.m.status)
	added, ok := f.m.store.Get("ACC-1")
	require.True(t, ok)
	assert.Equal(t, types.Item{SKU: "ACC-1", Name: "Remote", Category: types.Fans, Qty: "1"}, added)
	testutil.AssertSKUs(t, f.m.visible, "ACC-1", "FAN-001", "LGT-101", "BEL-55")

	// Edit the first row: focus starts on the name
	f.press("enter")
	require.Equal(t, modeForm, f.m.mode)
	f.press("tab", "tab")
	f.press("backspace")
	f.typeText("25")
	f.press("enter")

	edited, _ := f.m.store.Get("ACC-1")
	assert.Equal(t, types.Quantity("25"), edited.Qty)
	assert.Equal(t, "Updated ACC-1", f.m.status)
}

func TestInventoryFormRejectsDuplicate(t *testing.T) {
	f := newFixture(t)

	f.press("n")
	f.typeText("FAN-001")
	f.press("tab")
	f.typeText("Copy")
	f.press("enter")

	assert.Equal(t, modeForm, f.m.mode, "form stays open")
	require.Error(t, f.m.form.err)
	assert.Contains(t, f.m.View(), "sku already exists")
	testutil.AssertItemsEqual(t, types.SeedItems(), f.m.store.Items())

	f.press("esc")
	assert.Equal(t, modeBrowse, f.m.mode)
}

func TestInventoryExport(t *testing.T) {
	f := newFixture(t)
	f.press("e")

	path := filepath.Join(f.dir, export.Filename)
	assert.Equal(t, "Exported "+path, f.m.status)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(export.CSV(types.SeedItems())), string(data))
}

func TestAnalyticsView(t *testing.T) {
	f := newFixture(t)
	f.press("3")

	view := f.m.View()
	assert.Contains(t, view, "68")
	assert.Contains(t, view, "Total item types")
	assert.Contains(t, view, "Low stock items (<5)")
	assert.Contains(t, view, "30332.00")
	assert.Contains(t, view, "Stock value")
}

func TestChatView(t *testing.T) {
	f := newFixture(t)
	f.press("4")
	require.True(t, f.m.chatInput.Focused())

	f.typeText("hello 123")
	f.press("enter")
	require.Len(t, f.m.messages, 2)
	assert.Equal(t, "hello 123", f.m.messages[0].Text)
	assert.Equal(t, chat.Placeholder, f.m.messages[1].Text)
	assert.Equal(t, "", f.m.chatInput.Value())

	// Blank input is ignored
	f.press("enter")
	assert.Len(t, f.m.messages, 2)

	f.clock.Advance(chat.DefaultDelay)
	msg := waitForReply(f.m.replies)()
	updated, cmd := f.m.Update(msg)
	f.m = updated.(Model)
	assert.NotNil(t, cmd, "keeps listening for replies")
	assert.Equal(t, chat.Reply, f.m.messages[1].Text)
	assert.Contains(t, f.m.View(), chat.Reply)

	// Leaving the input lets digit keys switch views again
	f.press("esc", "1")
	assert.Equal(t, ViewInventory, f.m.Active())
}

func TestSettingsToggleTheme(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, settings.Light, f.m.theme)

	f.press("5", "t")
	assert.Equal(t, settings.Dark, f.m.theme)
	stored, err := settings.Load(f.kv)
	require.NoError(t, err)
	assert.Equal(t, settings.Dark, stored)
	assert.Contains(t, f.m.View(), "Theme:            dark")

	// A new dashboard picks the stored theme up
	m := New(Deps{Store: f.m.store, Settings: f.kv})
	defer m.Close()
	assert.Equal(t, settings.Dark, m.theme)
}

func TestWindowResize(t *testing.T) {
	f := newFixture(t)
	updated, _ := f.m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	f.m = updated.(Model)
	assert.Equal(t, 120, f.m.width)
	assert.Equal(t, 40, f.m.height)
}
