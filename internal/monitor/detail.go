package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Detail view styles
var (
	detailContainerStyle = lipgloss.NewStyle().
				Padding(1, 2)

	detailSectionStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(0, 1).
				MarginBottom(1)
)

// renderDetailView renders the expanded single-bot view inside the viewport.
func (m Model) renderDetailView() string {
	w, ok := m.SelectedWorker()
	if !ok {
		return LabelStyle.Render("No bot selected")
	}

	var b strings.Builder
	b.WriteString(m.renderDetailHeader(w))
	b.WriteString("\n\n")

	if m.viewportReady {
		b.WriteString(m.detailViewport.View())
	} else {
		b.WriteString(m.renderDetailContent(w))
	}

	b.WriteString("\n")
	b.WriteString(m.renderDetailFooter())
	return b.String()
}

// updateDetailViewportContent refreshes the viewport with the selected bot.
func (m *Model) updateDetailViewportContent() {
	if !m.viewportReady {
		return
	}
	w, ok := m.SelectedWorker()
	if !ok {
		m.detailViewport.SetContent("")
		return
	}
	m.detailViewport.SetContent(m.renderDetailContent(w))
}

// renderDetailHeader renders the bot name and activity prominently.
func (m Model) renderDetailHeader(w WorkerDisplay) string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render(fmt.Sprintf("Bot #%d  @%s", w.Index+1, w.Username))

	status := WorkerIdleStyle.Render(IndicatorIdle + " idle")
	if w.Active {
		status = WorkerActiveStyle.Render(IndicatorActive + " active")
	}
	return fmt.Sprintf("%s  %s", title, status)
}

// renderDetailContent renders the scrollable sections for one bot.
func (m Model) renderDetailContent(w WorkerDisplay) string {
	contentWidth := m.width - 6
	if contentWidth < 40 {
		contentWidth = 40
	}

	identity := []string{
		renderCardField("ID", w.ID, false),
		renderCardField("Username", w.Username, false),
		renderCardField("Uptime", w.Uptime, false),
	}

	activity := []string{
		renderCardField("Active requests", w.ActiveRequests, false),
		renderCardField("Requests/s", w.RequestRate, false),
		renderCardField("Updates/s", w.UpdateRate, false),
	}

	pending := ValueStyle.Render(w.PendingUpdates)
	if w.PendingWarning {
		pending = WarningValueStyle.Render(w.PendingUpdates + "  backlog")
	}
	updates := []string{
		renderCardField("Head update", w.HeadUpdateID, false),
		renderCardField("Tail update", w.TailUpdateID, false),
		LabelStyle.Render(padRight("Pending", cardLabelWidth)) + pending,
	}

	sections := []string{
		m.renderDetailSection("Identity", identity, contentWidth),
		m.renderDetailSection("Activity", activity, contentWidth),
		m.renderDetailSection("Updates", updates, contentWidth),
	}
	return detailContainerStyle.Render(strings.Join(sections, "\n"))
}

func (m Model) renderDetailSection(title string, lines []string, width int) string {
	heading := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Render(title)
	return detailSectionStyle.Width(width).Render(heading + "\n" + strings.Join(lines, "\n"))
}

// renderDetailFooter renders navigation hints for the detail view.
func (m Model) renderDetailFooter() string {
	hints := []string{"Esc back", "↑↓ scroll", "r refresh", "q quit"}
	if m.viewportReady && m.detailViewport.TotalLineCount() > m.detailViewport.Height {
		hints = append(hints, fmt.Sprintf("%3.f%%", m.detailViewport.ScrollPercent()*100))
	}
	return FooterStyle.Render(strings.Join(hints, " | "))
}
