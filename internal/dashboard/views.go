package dashboard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/arthur-debert/toran/chat"
	"github.com/arthur-debert/toran/inventory"
	"github.com/arthur-debert/toran/settings"
)

func (m Model) viewOrders() string {
	return m.styles.Heading.Render("Orders") + "\n" +
		m.styles.Muted.Render("Orders will appear here (demo uses mock data).") + "\n"
}

func (m Model) viewAnalytics() string {
	stats := inventory.Stats{}
	var value float64
	if m.store != nil {
		stats = m.store.Stats()
		value = inventory.StockValue(m.store.Items())
	}

	card := func(value, label string) string {
		return m.styles.Card.Render(value + "\n" + m.styles.Muted.Render(label))
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card(strconv.Itoa(stats.ItemTypes), "Total item types"),
		card(strconv.Itoa(stats.TotalUnits), "Total units in stock"),
		card(strconv.Itoa(stats.LowStock), fmt.Sprintf("Low stock items (<%d)", inventory.LowStockThreshold)),
		card(fmt.Sprintf("%.2f", value), "Stock value"),
	)
	return m.styles.Heading.Render("Analytics") + "\n" + cards + "\n"
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.chatInput.Focused() {
		if msg.String() == "enter" || msg.String() == "i" {
			return m, m.chatInput.Focus()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.chatInput.Blur()
		return m, nil
	case "enter":
		history, err := m.conversation.Send(m.chatInput.Value())
		if err != nil {
			if !errors.Is(err, chat.ErrEmptyMessage) {
				m.setError(err)
			}
			return m, nil
		}
		m.chatInput.SetValue("")
		m.messages = history
		m.clearStatus()
		return m, nil
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m Model) viewChat() string {
	var b strings.Builder
	b.WriteString(m.styles.Heading.Render("AI Chatbot · Toran Electronics"))
	b.WriteString("\n")

	if len(m.messages) == 0 {
		b.WriteString(m.styles.Muted.Render("No messages yet."))
		b.WriteString("\n")
	}

	// Keep the latest lines in view
	messages := m.messages
	if limit := max(4, m.height-12); len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	for _, msg := range messages {
		if msg.Who == chat.User {
			b.WriteString(m.styles.User.Render("you: "))
		} else {
			b.WriteString(m.styles.AI.Render("bot: "))
		}
		if msg.Pending() {
			b.WriteString(m.styles.Muted.Render(msg.Text))
		} else {
			b.WriteString(msg.Text)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.chatInput.View())
	b.WriteString("\n")
	return b.String()
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "t" {
		return m, nil
	}

	next := m.theme.Toggled()
	if m.kv != nil {
		saved, err := settings.Toggle(m.kv)
		if err != nil {
			m.logger.Error("failed to save theme", zap.Error(err))
			m.setError(err)
			return m, nil
		}
		next = saved
	}
	m.theme = next
	m.styles = NewStyles(next)
	m.table.SetStyles(m.styles.Table)
	m.setStatus("Theme set to " + next.String())
	return m, nil
}

func (m Model) viewSettings() string {
	var b strings.Builder
	b.WriteString(m.styles.Heading.Render("Settings"))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Theme and integration settings"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Theme:            %s\n", m.theme)
	fmt.Fprintf(&b, "API endpoint:     %s\n", m.styles.Muted.Render("(demo, not configured)"))
	fmt.Fprintf(&b, "Export directory: %s\n", m.exportDir)
	return b.String()
}
