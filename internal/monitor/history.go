package monitor

import (
	"sync"
	"time"
)

// DefaultHistorySize is the default number of samples kept for the trend chart.
const DefaultHistorySize = 50

// SamplePoint is a single captured value of the tracked metric.
type SamplePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// History is a fixed-capacity FIFO of samples backed by a ring buffer.
// Reads and writes are safe across goroutines; the relay server reads it
// from HTTP handlers while the poller appends.
type History struct {
	mu    sync.RWMutex
	data  []SamplePoint
	head  int
	count int
	size  int
}

// NewHistory creates a history holding at most size samples.
// A negative size uses DefaultHistorySize. Size 0 keeps nothing.
func NewHistory(size int) *History {
	if size < 0 {
		size = DefaultHistorySize
	}
	return &History{
		data: make([]SamplePoint, size),
		size: size,
	}
}

// Append adds a sample, evicting the oldest one when the buffer is full.
func (h *History) Append(p SamplePoint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.size == 0 {
		return
	}

	h.data[h.head] = p
	h.head = (h.head + 1) % h.size
	if h.count < h.size {
		h.count++
	}
}

// Snapshot returns a copy of all samples, oldest first.
func (h *History) Snapshot() []SamplePoint {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastLocked(h.count)
}

// Values returns the sample values, oldest first, for sparkline rendering.
func (h *History) Values() []float64 {
	points := h.Snapshot()
	if len(points) == 0 {
		return nil
	}
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	return values
}

// Latest returns the newest sample.
func (h *History) Latest() (SamplePoint, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.count == 0 {
		return SamplePoint{}, false
	}
	return h.data[(h.head-1+h.size)%h.size], true
}

// Max returns the largest stored value, or 0 when empty.
func (h *History) Max() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var maxVal float64
	for i, p := range h.lastLocked(h.count) {
		if i == 0 || p.Value > maxVal {
			maxVal = p.Value
		}
	}
	return maxVal
}

// Len returns the number of stored samples.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// Cap returns the configured capacity.
func (h *History) Cap() int {
	return h.size
}

// Clear removes all samples.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.head = 0
	h.count = 0
}

// lastLocked returns the last n samples in chronological order.
// Must be called with h.mu held.
func (h *History) lastLocked(n int) []SamplePoint {
	if n <= 0 || h.count == 0 {
		return nil
	}
	if n > h.count {
		n = h.count
	}

	result := make([]SamplePoint, n)

	// head is the next write position, so the newest sample is at head-1.
	start := (h.head - n + h.size) % h.size
	for i := 0; i < n; i++ {
		result[i] = h.data[(start+i)%h.size]
	}
	return result
}
