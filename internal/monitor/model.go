package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// LayoutMode represents the responsive layout mode based on terminal size.
type LayoutMode int

const (
	// LayoutMinimal is for terminals < 80 columns: single column, no chart
	LayoutMinimal LayoutMode = iota
	// LayoutCompact is for terminals 80-120 columns: single column sections with chart
	LayoutCompact
	// LayoutStandard is for terminals 120-160 columns: sections side by side
	LayoutStandard
	// LayoutWide is for terminals 160+ columns: all four sections in one row
	LayoutWide
)

// Width breakpoints for layout modes
const (
	BreakpointCompact  = 80
	BreakpointStandard = 120
	BreakpointWide     = 160
)

// HeightMinimal is the shortest terminal that still shows the footer.
const HeightMinimal = 24

// DefaultIntervals are the refresh choices offered by the interval selector.
var DefaultIntervals = []time.Duration{
	1 * time.Second,
	2 * time.Second,
	5 * time.Second,
	10 * time.Second,
	30 * time.Second,
}

// spinnerInterval is the animation frame rate for the connecting spinner
const spinnerInterval = 150 * time.Millisecond

// Model is the Bubble Tea model for the stats dashboard.
type Model struct {
	poller  *Poller
	session *Session

	intervals   []time.Duration
	intervalIdx int
	paused      bool

	display    *DisplayModel
	previous   *DisplayModel
	lastErr    *PollError
	lastUpdate time.Time
	refreshing bool

	selected int
	viewMode ViewMode
	showHelp bool
	width    int
	height   int
	quitting bool

	chartPath string
	notice    string

	// Animation state
	spinnerFrame int

	// Detail view viewport for scrollable content
	detailViewport viewport.Model
	viewportReady  bool
}

// resultMsg carries a poll outcome. scheduled results come from the poller
// channel and re-arm the channel listener.
type resultMsg struct {
	result    Result
	scheduled bool
}

// spinnerTickMsg signals a spinner animation frame update.
type spinnerTickMsg time.Time

// chartWrittenMsg reports an HTML chart export.
type chartWrittenMsg struct {
	path string
	err  error
}

// ModelOptions configures NewModel.
type ModelOptions struct {
	// Interval is the starting refresh interval. It is added to Intervals if missing.
	Interval  time.Duration
	Intervals []time.Duration
	// ChartPath is where the "e" key writes the HTML chart.
	ChartPath string
}

// NewModel creates a dashboard driven by poller. The poller is started by Init.
func NewModel(poller *Poller, opts ModelOptions) Model {
	intervals := opts.Intervals
	if len(intervals) == 0 {
		intervals = DefaultIntervals
	}
	intervals = append([]time.Duration(nil), intervals...)

	interval := opts.Interval
	if interval <= 0 {
		interval = intervals[0]
	}
	idx := -1
	for i, d := range intervals {
		if d == interval {
			idx = i
			break
		}
	}
	if idx < 0 {
		intervals = insertSorted(intervals, interval)
		for i, d := range intervals {
			if d == interval {
				idx = i
			}
		}
	}

	return Model{
		poller:      poller,
		session:     poller.Session(),
		intervals:   intervals,
		intervalIdx: idx,
		chartPath:   opts.ChartPath,
	}
}

// insertSorted inserts d keeping ascending order.
func insertSorted(list []time.Duration, d time.Duration) []time.Duration {
	for i, v := range list {
		if d < v {
			list = append(list[:i], append([]time.Duration{d}, list[i:]...)...)
			return list
		}
	}
	return append(list, d)
}

// Init starts the schedule, polls once immediately and begins listening for results.
func (m Model) Init() tea.Cmd {
	// Start synchronously so a pause pressed before the first Cmd runs
	// can't be undone by a late Start.
	m.reschedule()
	return tea.Batch(
		m.refreshCmd(),
		m.waitForResultCmd(),
		m.spinnerTickCmd(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}
		if m.viewMode == ViewDetail && m.viewportReady {
			var cmd tea.Cmd
			m.detailViewport, cmd = m.detailViewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Reserve space for header and footer
		headerHeight := 3
		footerHeight := 2
		viewportHeight := m.height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.viewportReady {
			m.detailViewport = viewport.New(m.width, viewportHeight)
			m.detailViewport.YPosition = headerHeight
			m.viewportReady = true
		} else {
			m.detailViewport.Width = m.width
			m.detailViewport.Height = viewportHeight
		}
		if m.viewMode == ViewDetail {
			m.updateDetailViewportContent()
		}

	case spinnerTickMsg:
		m.spinnerFrame = (m.spinnerFrame + 1) % 10000
		return m, m.spinnerTickCmd()

	case resultMsg:
		if !msg.scheduled {
			m.refreshing = false
		}
		m.applyResult(msg.result)
		if m.viewMode == ViewDetail {
			m.updateDetailViewportContent()
		}
		if msg.scheduled {
			return m, m.waitForResultCmd()
		}

	case chartWrittenMsg:
		if msg.err != nil {
			m.notice = "chart export failed: " + msg.err.Error()
		} else {
			m.notice = "chart written to " + msg.path
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// applyResult folds a poll result into the view state. Stale results are ignored.
func (m *Model) applyResult(res Result) {
	if res.Stale {
		return
	}
	if res.Err != nil {
		m.lastErr = res.Err
		return
	}
	if res.Display == nil {
		return
	}

	m.previous = m.display
	m.display = res.Display
	m.lastErr = nil
	m.lastUpdate = res.Display.FetchedAt
	m.notice = ""

	if n := len(m.display.Workers); m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// refreshCmd polls immediately, outside the schedule.
func (m Model) refreshCmd() tea.Cmd {
	poller := m.poller
	return func() tea.Msg {
		return resultMsg{result: poller.PollOnce(context.Background())}
	}
}

// waitForResultCmd blocks until the poller publishes a scheduled result.
func (m Model) waitForResultCmd() tea.Cmd {
	results := m.poller.Results()
	return func() tea.Msg {
		res, ok := <-results
		if !ok {
			return nil
		}
		return resultMsg{result: res, scheduled: true}
	}
}

// exportChartCmd writes the current history window as an HTML chart.
func (m Model) exportChartCmd() tea.Cmd {
	path := m.chartPath
	session := m.session
	return func() tea.Msg {
		return chartWrittenMsg{path: path, err: WriteChartFile(path, session)}
	}
}

// spinnerTickCmd returns a command that sends a spinner tick for animation.
func (m Model) spinnerTickCmd() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

// Interval returns the currently selected refresh interval.
func (m Model) Interval() time.Duration {
	return m.intervals[m.intervalIdx]
}

// Paused reports whether scheduled polling is suspended.
func (m Model) Paused() bool {
	return m.paused
}

// Display returns the model currently shown, nil before the first success.
func (m Model) Display() *DisplayModel {
	return m.display
}

// StatusOf returns the header connection state.
func (m Model) StatusOf() Status {
	switch {
	case m.lastErr != nil:
		return StatusError
	case m.display != nil:
		return StatusConnected
	default:
		return StatusConnecting
	}
}

// SelectedWorker returns the highlighted worker, if any.
func (m Model) SelectedWorker() (WorkerDisplay, bool) {
	if m.display == nil || m.selected < 0 || m.selected >= len(m.display.Workers) {
		return WorkerDisplay{}, false
	}
	return m.display.Workers[m.selected], true
}

// fieldChanged reports whether a system field's text differs from the previous poll.
// Nothing is highlighted on the first successful poll.
func (m Model) fieldChanged(key string) bool {
	if m.previous == nil || m.display == nil {
		return false
	}
	cur, ok := m.display.Get(key)
	if !ok {
		return false
	}
	prev, ok := m.previous.Get(key)
	return !ok || prev.Text != cur.Text
}

// previousWorker finds the worker with the same id in the previous poll.
func (m Model) previousWorker(id string) (WorkerDisplay, bool) {
	if m.previous == nil {
		return WorkerDisplay{}, false
	}
	for _, w := range m.previous.Workers {
		if w.ID == id {
			return w, true
		}
	}
	return WorkerDisplay{}, false
}

// SecondsSinceUpdate returns how many seconds have passed since the last update.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return 0
	}
	return int(time.Since(m.lastUpdate).Seconds())
}

// ConnectingSpinner returns the current spinner character for the connecting animation.
func (m Model) ConnectingSpinner() string {
	return ConnectingSpinnerFrames[m.spinnerFrame%len(ConnectingSpinnerFrames)]
}

// LayoutMode returns the current layout mode based on terminal width.
func (m Model) LayoutMode() LayoutMode {
	switch {
	case m.width >= BreakpointWide:
		return LayoutWide
	case m.width >= BreakpointStandard:
		return LayoutStandard
	case m.width >= BreakpointCompact:
		return LayoutCompact
	default:
		return LayoutMinimal
	}
}

// ShowFooter returns true if the terminal is tall enough to show the footer.
func (m Model) ShowFooter() bool {
	return m.height == 0 || m.height >= HeightMinimal
}
