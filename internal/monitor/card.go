package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Card layout constants
const (
	cardDefaultWidth = 40
	cardWidth        = 38
	cardLabelWidth   = 16
)

// cardDividerStyle creates a subtle divider line with matching background
var cardDividerStyle = lipgloss.NewStyle().
	Foreground(ColorBorder).
	Background(ColorSurfaceBg)

// renderCardDivider creates a subtle thin divider line
func renderCardDivider(width int) string {
	return cardDividerStyle.Render(strings.Repeat("─", width))
}

// truncateWithEllipsis truncates a string to maxLen, adding ellipsis if needed.
func truncateWithEllipsis(s string, maxLen int) string {
	if maxLen <= 3 {
		return s
	}
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}

// renderCardLine renders a text line with proper background fill.
func renderCardLine(content string, width int) string {
	contentWidth := lipgloss.Width(content)
	padding := ""
	if width > contentWidth {
		padding = strings.Repeat(" ", width-contentWidth)
	}
	return lipgloss.NewStyle().Background(ColorSurfaceBg).Render(content + padding)
}

// calculateCardWidth determines the card width based on terminal width.
func (m Model) calculateCardWidth() int {
	if m.width == 0 {
		return cardDefaultWidth
	}
	if m.width >= BreakpointCompact {
		return cardWidth
	}
	return m.width - 4
}

// renderWorkerCards renders the grid of bot cards.
func (m Model) renderWorkerCards() string {
	if m.display == nil || len(m.display.Workers) == 0 {
		return LabelStyle.Render("No bots reported")
	}

	width := m.calculateCardWidth()
	cards := make([]string, 0, len(m.display.Workers))
	for i, w := range m.display.Workers {
		cards = append(cards, m.renderWorkerCard(w, width, i == m.selected))
	}
	return m.layoutCards(cards, width)
}

// layoutCards arranges cards in rows based on terminal width.
func (m Model) layoutCards(cards []string, width int) string {
	if len(cards) == 0 {
		return ""
	}

	cardsPerRow := 1
	if m.width > 0 {
		// Account for card margins and borders
		cardsPerRow = m.width / (width + 3)
		if cardsPerRow < 1 {
			cardsPerRow = 1
		}
	}

	var rows []string
	for i := 0; i < len(cards); i += cardsPerRow {
		end := i + cardsPerRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderWorkerCard renders a single bot card.
func (m Model) renderWorkerCard(w WorkerDisplay, width int, selected bool) string {
	style := CardStyle.Width(width)
	if selected {
		style = CardSelectedStyle.Width(width)
	}

	// Inner width for content (account for card padding)
	innerWidth := width - 4
	prev, hasPrev := m.previousWorker(w.ID)

	lines := []string{
		renderCardLine(m.renderWorkerTitle(w), innerWidth),
		renderCardLine(LabelStyle.Render(truncateWithEllipsis("@"+w.Username+" · "+w.ID, innerWidth)), innerWidth),
		renderCardDivider(innerWidth),
	}

	row := func(label, value, before string) {
		lines = append(lines, renderCardLine(renderCardField(label, value, hasPrev && before != value), innerWidth))
	}

	row("Uptime", w.Uptime, prev.Uptime)
	row("Active requests", w.ActiveRequests, prev.ActiveRequests)
	row("Requests/s", w.RequestRate, prev.RequestRate)
	row("Updates/s", w.UpdateRate, prev.UpdateRate)

	lines = append(lines, renderCardDivider(innerWidth))
	row("Head update", w.HeadUpdateID, prev.HeadUpdateID)
	// Tail and pending only mean something once the bot reports a tail id.
	if w.HasTail {
		row("Tail update", w.TailUpdateID, prev.TailUpdateID)

		pending := ValueStyle.Render(w.PendingUpdates)
		if w.PendingWarning {
			pending = WarningValueStyle.Render(w.PendingUpdates)
		}
		lines = append(lines, renderCardLine(LabelStyle.Render(padRight("Pending", cardLabelWidth))+pending, innerWidth))
	}

	return style.Render(strings.Join(lines, "\n"))
}

// renderWorkerTitle renders "Bot #N" with the activity indicator.
func (m Model) renderWorkerTitle(w WorkerDisplay) string {
	name := BotNameStyle.Render(fmt.Sprintf("Bot #%d", w.Index+1))
	if w.Active {
		return name + "  " + WorkerActiveStyle.Render(IndicatorActive+" active")
	}
	return name + "  " + WorkerIdleStyle.Render(IndicatorIdle+" idle")
}

// renderCardField renders a label/value pair, highlighting changed values.
func renderCardField(label, value string, changed bool) string {
	styled := ValueStyle.Render(value)
	if changed {
		styled = ChangedValueStyle.Render(value)
	}
	return LabelStyle.Render(padRight(label, cardLabelWidth)) + styled
}
