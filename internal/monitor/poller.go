package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rileyhilliard/botstat/internal/logger"
)

// resultsBuffer is how many scheduled results may queue before new ones are dropped.
const resultsBuffer = 16

// Poller fetches the stats report on a schedule and folds each response
// into a Session. Scheduled polls run concurrently; ordering is restored
// by the session's sequence check.
type Poller struct {
	fetcher Fetcher
	session *Session
	log     logger.Logger
	now     func() time.Time

	results chan Result

	mu       sync.Mutex
	cancel   context.CancelFunc
	interval time.Duration
}

// NewPoller creates a stopped poller. A nil log discards messages.
func NewPoller(fetcher Fetcher, session *Session, log logger.Logger) *Poller {
	if log == nil {
		log = logger.Noop()
	}
	return &Poller{
		fetcher: fetcher,
		session: session,
		log:     log,
		now:     time.Now,
		results: make(chan Result, resultsBuffer),
	}
}

// Session returns the session this poller feeds.
func (p *Poller) Session() *Session {
	return p.session
}

// Results delivers the outcome of every scheduled poll, including stale ones.
func (p *Poller) Results() <-chan Result {
	return p.results
}

// Start schedules a poll every interval, replacing any running schedule.
// The first poll fires after one interval; call PollOnce for an immediate one.
func (p *Poller) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", interval)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.interval = interval

	go p.run(ctx, interval)
	p.log.Debug("polling every %s", interval)
	return nil
}

// Stop cancels the schedule. Polls already in flight still complete.
// Safe to call when not running.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel == nil {
		return
	}
	p.cancel()
	p.cancel = nil
	p.log.Debug("polling stopped")
}

// Running reports whether a schedule is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Interval returns the interval of the last Start call.
func (p *Poller) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

// PollOnce performs a single fetch, parse and apply cycle.
func (p *Poller) PollOnce(ctx context.Context) Result {
	seq := p.session.NextSeq()

	text, err := p.fetcher.Fetch(ctx)
	pollErr := asPollError(err)

	res := p.session.Apply(seq, text, pollErr, p.now())

	switch {
	case res.Stale:
		p.log.Debug("discarded stale poll #%d", seq)
	case res.Err != nil:
		p.log.Warn("poll #%d failed: %v", seq, res.Err)
	case res.Display != nil && res.Display.Skipped > 0:
		p.log.Debug("poll #%d skipped %d malformed lines", seq, res.Display.Skipped)
	}
	return res
}

func (p *Poller) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// In-flight polls are not tied to ctx, so Stop never aborts a fetch.
			go func() {
				p.publish(p.PollOnce(context.Background()))
			}()
		}
	}
}

func (p *Poller) publish(res Result) {
	select {
	case p.results <- res:
	default:
		p.log.Warn("result channel full, dropping poll #%d", res.Seq)
	}
}
