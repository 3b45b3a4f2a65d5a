package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Chart layout
const (
	chartHeight   = 4
	chartMinWidth = 20
)

// sectionOrder is the order system sections appear in.
var sectionOrder = []string{GroupSystem, GroupMemory, GroupCPU, GroupNetwork}

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	if m.viewMode == ViewDetail {
		return m.renderDetailView()
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if banner := m.renderErrorBanner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.display == nil {
		b.WriteString(LabelStyle.Render(m.ConnectingSpinner() + " Waiting for the first stats report..."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderSections())
		b.WriteString("\n")
		if m.LayoutMode() == LayoutMinimal {
			if line := m.renderSparkline(); line != "" {
				b.WriteString(line)
				b.WriteString("\n\n")
			}
		} else {
			b.WriteString(m.renderChart())
			b.WriteString("\n")
		}
		b.WriteString(m.renderWorkerCards())
	}

	if m.ShowFooter() {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}

	return b.String()
}

// renderHeader renders the title, connection status, interval and freshness.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("botstat")

	var status string
	switch {
	case m.paused:
		status = StatusPausedStyle.Render(IndicatorPaused + " paused")
	case m.StatusOf() == StatusError:
		status = StatusErrorStyle.Render(IndicatorError + " error")
	case m.StatusOf() == StatusConnected:
		status = StatusConnectedStyle.Render(IndicatorConnected + " connected")
	default:
		status = StatusConnectingStyle.Render(m.ConnectingSpinner() + " connecting")
	}

	updateText := "never"
	if !m.lastUpdate.IsZero() {
		switch s := m.SecondsSinceUpdate(); s {
		case 0:
			updateText = "just now"
		default:
			updateText = fmt.Sprintf("%ds ago", s)
		}
	}

	info := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(fmt.Sprintf(" | %s | every %s | last update %s", m.session.Endpoint, m.Interval(), updateText))

	return HeaderStyle.Render(title+" ") + status + info
}

// renderErrorBanner shows the last poll error until the next success.
func (m Model) renderErrorBanner() string {
	if m.lastErr == nil {
		if m.notice != "" {
			return LabelStyle.Render(m.notice)
		}
		return ""
	}
	msg := "Error: " + m.lastErr.Error()
	if m.display != nil {
		msg += " (showing last good data)"
	}
	return ErrorBannerStyle.Render(msg)
}

// sectionWidth picks the section box width for the layout.
func (m Model) sectionWidth() int {
	width := m.width
	if width == 0 {
		width = BreakpointStandard
	}
	switch m.LayoutMode() {
	case LayoutWide:
		return width/4 - 1
	case LayoutStandard:
		return width/2 - 1
	default:
		return width - 2
	}
}

// renderSections renders the system field groups as boxed sections.
func (m Model) renderSections() string {
	width := m.sectionWidth()

	var boxes []string
	for _, group := range sectionOrder {
		if box := m.renderSection(group, width); box != "" {
			boxes = append(boxes, box)
		}
	}
	if len(boxes) == 0 {
		return LabelStyle.Render("No system fields reported")
	}

	perRow := 1
	switch m.LayoutMode() {
	case LayoutWide:
		perRow = 4
	case LayoutStandard:
		perRow = 2
	}

	var rows []string
	for i := 0; i < len(boxes); i += perRow {
		end := i + perRow
		if end > len(boxes) {
			end = len(boxes)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderSection renders one group, or "" when none of its fields were reported.
func (m Model) renderSection(group string, width int) string {
	labelWidth := 0
	var specs []FieldSpec
	for _, spec := range SystemFields {
		if spec.Group != group {
			continue
		}
		if _, ok := m.display.Get(spec.Key); !ok {
			continue
		}
		specs = append(specs, spec)
		if w := lipgloss.Width(spec.Label); w > labelWidth {
			labelWidth = w
		}
	}
	if len(specs) == 0 {
		return ""
	}

	headerValue := ""
	if group == GroupSystem {
		headerValue = m.display.Text("uptime", "")
	}
	if group == GroupCPU {
		headerValue = m.display.Text("total_cpu", "")
	}

	lines := []string{SectionHeader(group, headerValue, width)}
	for _, spec := range specs {
		f, _ := m.display.Get(spec.Key)
		label := LabelStyle.Render(padRight(spec.Label, labelWidth))
		value := m.renderFieldValue(spec, f)
		content := label + "  " + value
		if spec.Kind == KindPercent {
			barWidth := width - 4 - lipgloss.Width(content) - 1
			if barWidth > 2 {
				content += " " + ProgressBar(barWidth, f.Bar)
			}
		}
		lines = append(lines, SectionContentLine(content, width))
	}
	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}

// renderFieldValue styles a field, highlighting it when it changed since the last poll.
func (m Model) renderFieldValue(spec FieldSpec, f Field) string {
	text := f.Text
	if spec.Group == GroupMemory {
		text = HumanBytes(f.Text)
	} else if spec.Kind == KindCount {
		text = HumanCount(f.Text)
	}
	if m.fieldChanged(spec.Key) {
		return ChangedValueStyle.Render(text)
	}
	return ValueStyle.Render(text)
}

// renderChart renders the request-rate history as a braille chart with its scale label.
func (m Model) renderChart() string {
	width := m.width - 2
	if width <= 0 {
		width = BreakpointStandard - 2
	}

	values := m.session.History().Values()
	latest := "-"
	if f, ok := m.display.Get(TrackedMetric); ok {
		latest = f.Text + " req/s"
	}

	lines := []string{SectionHeader("Request rate", latest, width)}

	innerWidth := width - 4
	if innerWidth < chartMinWidth {
		innerWidth = chartMinWidth
	}
	chart := RenderBrailleChart(values, innerWidth, chartHeight, ColorGraph)
	if chart == "" {
		lines = append(lines, SectionContentLine(LabelStyle.Render("Collecting samples..."), width))
	} else {
		for _, row := range strings.Split(chart, "\n") {
			lines = append(lines, SectionContentLine(row, width))
		}
		lines = append(lines, SectionContentLine(LabelStyle.Render(formatMaxLabel(chartScale(values))), width))
	}
	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}

// renderSparkline is the one-row request-rate trend used when the
// terminal is too narrow for the braille chart.
func (m Model) renderSparkline() string {
	latest, ok := m.display.Get(TrackedMetric)
	if !ok {
		return ""
	}
	label := LabelStyle.Render("req/s ")
	spark := RenderMiniSparkline(m.session.History().Values(), m.width-lipgloss.Width(label)-len(latest.Text)-2)
	if spark == "" {
		return label + ValueStyle.Render(latest.Text)
	}
	return label + lipgloss.NewStyle().Foreground(ColorGraph).Render(spark) + " " + ValueStyle.Render(latest.Text)
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	hints := []string{
		"q quit",
		"r refresh",
		"i interval",
		"p pause",
		"↑↓ select",
		"enter details",
		"? help",
	}
	if m.chartPath != "" {
		hints = append(hints, "e chart")
	}
	return FooterStyle.Render(strings.Join(hints, " | "))
}

// padRight pads s with spaces to width display cells.
func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
