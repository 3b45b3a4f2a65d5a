package monitor

import tea "github.com/charmbracelet/bubbletea"

// ViewMode defines the current display mode of the dashboard.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
)

// Key bindings as constants for consistency.
const (
	KeyQuit         = "q"
	KeyQuitAlt      = "ctrl+c"
	KeyRefresh      = "r"
	KeyNextInterval = "i"
	KeyPrevInterval = "I"
	KeyPause        = "p"
	KeyExportChart  = "e"
	KeySelectPrev   = "up"
	KeySelectPrevK  = "k"
	KeySelectNext   = "down"
	KeySelectNextJ  = "j"
	KeySelectFirst  = "home"
	KeySelectLast   = "end"
	KeyExpand       = "enter"
	KeyCollapse     = "esc"
	KeyToggleHelp   = "?"
)

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	// Help toggle takes priority
	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}

	// If help is showing, Esc closes it
	if m.showHelp && key == KeyCollapse {
		m.showHelp = false
		return true, nil
	}

	// Detail view: Esc returns to list, arrows scroll the viewport
	if m.viewMode == ViewDetail {
		switch key {
		case KeyCollapse:
			m.viewMode = ViewList
			return true, nil
		case KeySelectPrev, KeySelectPrevK, KeySelectNext, KeySelectNextJ:
			return false, nil
		}
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		m.poller.Stop()
		return true, tea.Quit

	case KeyRefresh:
		if m.refreshing {
			return true, nil
		}
		m.refreshing = true
		return true, m.refreshCmd()

	case KeyNextInterval:
		m.intervalIdx = (m.intervalIdx + 1) % len(m.intervals)
		m.reschedule()
		return true, nil

	case KeyPrevInterval:
		m.intervalIdx = (m.intervalIdx - 1 + len(m.intervals)) % len(m.intervals)
		m.reschedule()
		return true, nil

	case KeyPause:
		m.paused = !m.paused
		if m.paused {
			m.poller.Stop()
		} else {
			m.reschedule()
		}
		return true, nil

	case KeyExportChart:
		if m.chartPath == "" {
			return true, nil
		}
		return true, m.exportChartCmd()

	case KeySelectPrev, KeySelectPrevK:
		if m.selected > 0 {
			m.selected--
		}
		return true, nil

	case KeySelectNext, KeySelectNextJ:
		if m.selected < m.workerCount()-1 {
			m.selected++
		}
		return true, nil

	case KeySelectFirst:
		m.selected = 0
		return true, nil

	case KeySelectLast:
		if n := m.workerCount(); n > 0 {
			m.selected = n - 1
		}
		return true, nil

	case KeyExpand:
		if m.viewMode == ViewList && m.workerCount() > 0 {
			m.viewMode = ViewDetail
			m.updateDetailViewportContent()
		}
		return true, nil

	case KeyCollapse:
		m.viewMode = ViewList
		return true, nil
	}

	return false, nil
}

// reschedule applies the selected interval unless polling is paused.
func (m *Model) reschedule() {
	if m.paused {
		return
	}
	_ = m.poller.Start(m.Interval())
}

func (m Model) workerCount() int {
	if m.display == nil {
		return 0
	}
	return len(m.display.Workers)
}
