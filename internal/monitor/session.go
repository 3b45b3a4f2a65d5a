package monitor

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rileyhilliard/botstat/internal/stats"
)

// Status is the connection state shown in the header.
type Status string

const (
	StatusConnecting Status = "connecting"
	StatusConnected  Status = "connected"
	StatusError      Status = "error"
)

// Result is the outcome of one poll.
type Result struct {
	Seq     uint64        `json:"seq"`
	Display *DisplayModel `json:"display,omitempty"`
	Err     *PollError    `json:"-"`
	Stale   bool          `json:"stale"`
}

// Session holds everything that survives between polls: the history window,
// the last displayed model, the last error and the sequence bookkeeping.
type Session struct {
	ID       string
	Endpoint string

	mu          sync.RWMutex
	history     *History
	display     *DisplayModel
	lastErr     *PollError
	lastSuccess time.Time
	status      Status
	nextSeq     uint64
	appliedSeq  uint64
}

// NewSession creates a session with a history of historySize samples.
func NewSession(endpoint string, historySize int) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Endpoint: endpoint,
		history:  NewHistory(historySize),
		status:   StatusConnecting,
	}
}

// NextSeq reserves the sequence number for a poll being dispatched.
func (s *Session) NextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return s.nextSeq
}

// Apply folds a completed poll into the session. text is ignored when err is
// non-nil. Results older than the last applied one are discarded and
// reported with Stale set.
func (s *Session) Apply(seq uint64, text string, err *PollError, now time.Time) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.appliedSeq {
		return Result{Seq: seq, Stale: true, Err: err}
	}
	s.appliedSeq = seq

	if err != nil {
		s.lastErr = err
		s.status = StatusError
		return Result{Seq: seq, Err: err}
	}

	display := Reduce(stats.Parse(text), s.history, now)
	s.display = display
	s.lastErr = nil
	s.lastSuccess = now
	s.status = StatusConnected
	return Result{Seq: seq, Display: display}
}

// History returns the session's sample window.
func (s *Session) History() *History {
	return s.history
}

// Display returns the last successfully reduced model, or nil before the
// first success. It stays set across later failures.
func (s *Session) Display() *DisplayModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.display
}

// LastError returns the error from the last applied poll, nil after a success.
func (s *Session) LastError() *PollError {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// LastSuccess returns when the last successful poll was applied.
func (s *Session) LastSuccess() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSuccess
}

// Status returns the current connection state.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// StatusSnapshot is the JSON view of a session's state.
type StatusSnapshot struct {
	SessionID   string    `json:"session_id"`
	Endpoint    string    `json:"endpoint"`
	Status      Status    `json:"status"`
	Error       string    `json:"error,omitempty"`
	LastSuccess time.Time `json:"last_success,omitempty"`
	Samples     int       `json:"samples"`
	Capacity    int       `json:"capacity"`
	AppliedSeq  uint64    `json:"applied_seq"`
}

// Snapshot returns a consistent copy of the session state.
func (s *Session) Snapshot() StatusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := StatusSnapshot{
		SessionID:   s.ID,
		Endpoint:    s.Endpoint,
		Status:      s.status,
		LastSuccess: s.lastSuccess,
		Samples:     s.history.Len(),
		Capacity:    s.history.Cap(),
		AppliedSeq:  s.appliedSeq,
	}
	if s.lastErr != nil {
		snap.Error = s.lastErr.Error()
	}
	return snap
}
