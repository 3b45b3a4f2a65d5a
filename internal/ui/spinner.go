package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// SpinnerState represents the current state of a spinner.
type SpinnerState int

const (
	SpinnerPending SpinnerState = iota
	SpinnerInProgress
	SpinnerSuccess
	SpinnerWarning
	SpinnerFailed
)

// frameInterval is how often the spinner redraws.
const frameInterval = 80 * time.Millisecond

// Spinner animation frames
var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// Spinner draws an animated status line on w until it is finished.
type Spinner struct {
	mu           sync.Mutex
	out          io.Writer
	label        string
	state        SpinnerState
	frame        int
	startTime    time.Time
	stopChan     chan struct{}
	doneChan     chan struct{}
	running      bool
	lastRendered int
}

// NewSpinner creates a pending spinner that writes to out.
func NewSpinner(out io.Writer, label string) *Spinner {
	return &Spinner{out: out, label: label}
}

// Start begins the animation. Calling Start twice is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.state = SpinnerInProgress
	s.startTime = time.Now()
	s.stopChan = make(chan struct{})
	s.doneChan = make(chan struct{})
	s.renderLocked()
	s.mu.Unlock()

	go s.animate()
}

// SetLabel updates the text next to the spinner.
func (s *Spinner) SetLabel(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.label = label
	if s.running {
		s.renderLocked()
	}
}

// Label returns the spinner's label.
func (s *Spinner) Label() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.label
}

// State returns the current spinner state.
func (s *Spinner) State() SpinnerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Success stops the spinner and prints label with a check mark.
func (s *Spinner) Success(label string) { s.finish(SpinnerSuccess, label) }

// Warn stops the spinner and prints label as a partial success.
func (s *Spinner) Warn(label string) { s.finish(SpinnerWarning, label) }

// Fail stops the spinner and prints label as failed.
func (s *Spinner) Fail(label string) { s.finish(SpinnerFailed, label) }

func (s *Spinner) stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	<-s.doneChan
}

func (s *Spinner) finish(state SpinnerState, label string) {
	s.stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	if label != "" {
		s.label = label
	}

	var symbol string
	var color lipgloss.Color
	switch state {
	case SpinnerSuccess:
		symbol, color = SymbolSuccess, ColorSuccess
	case SpinnerWarning:
		symbol, color = SymbolWarning, ColorWarning
	default:
		symbol, color = SymbolFail, ColorError
	}

	s.clearLocked()
	fmt.Fprintf(s.out, "%s %s %s\n",
		lipgloss.NewStyle().Foreground(color).Render(symbol),
		s.label,
		lipgloss.NewStyle().Foreground(ColorMuted).Render(formatDuration(s.elapsedLocked())),
	)
}

func (s *Spinner) animate() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	defer close(s.doneChan)

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.frame = (s.frame + 1) % len(spinnerFrames)
			s.renderLocked()
			s.mu.Unlock()
		}
	}
}

func (s *Spinner) renderLocked() {
	colorIndex := (s.frame / 2) % len(GradientColors)
	symbol := lipgloss.NewStyle().Foreground(GradientColors[colorIndex]).Render(spinnerFrames[s.frame])

	s.clearLocked()
	line := fmt.Sprintf("%s %s...", symbol, s.label)
	fmt.Fprint(s.out, "\r"+line)
	s.lastRendered = lipgloss.Width(line)
}

// clearLocked blanks the previously drawn line.
func (s *Spinner) clearLocked() {
	if s.lastRendered == 0 {
		return
	}
	fmt.Fprint(s.out, "\r"+strings.Repeat(" ", s.lastRendered)+"\r")
	s.lastRendered = 0
}

func (s *Spinner) elapsedLocked() time.Duration {
	if s.startTime.IsZero() {
		return 0
	}
	return time.Since(s.startTime)
}

// formatDuration formats a duration for display (e.g., "0.3s", "1.2s").
func formatDuration(d time.Duration) string {
	secs := d.Seconds()
	if secs < 0.1 {
		return fmt.Sprintf("%.2fs", secs)
	}
	return fmt.Sprintf("%.1fs", secs)
}
