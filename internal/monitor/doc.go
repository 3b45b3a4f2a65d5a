// Package monitor polls a bot API server's stats endpoint and turns each
// report into something a person can read.
//
// # Pipeline
//
// A poll moves through four stages:
//
//  1. Fetcher retrieves the raw tab-separated report (HTTPFetcher in production)
//  2. stats.Parse turns it into a Snapshot
//  3. Reduce maps the snapshot onto a DisplayModel and appends at most one
//     SamplePoint of the request rate to the History window
//  4. Session keeps the last good DisplayModel, the last error and the
//     sequence bookkeeping that discards out-of-order results
//
// Poller drives the pipeline on a schedule. Each tick runs in its own
// goroutine, so a slow endpoint never delays the next poll; the session's
// sequence check keeps an older response from overwriting a newer one.
//
// # Dashboard
//
// Model is a Bubble Tea model following The Elm Architecture:
//
//   - Model: session, current and previous DisplayModel, selection, layout
//   - Update: key presses, window size, poll results from the Poller channel
//   - View: header, error banner, field sections, braille chart, bot cards
//
// Values that changed since the previous poll are highlighted for one cycle.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	r           - Refresh now
//	i / I       - Cycle refresh interval
//	p           - Pause / resume
//	e           - Export HTML chart
//	j/k, ↑/↓    - Select bot
//	Enter       - Bot detail view
//	Esc         - Back
//	?           - Toggle help overlay
package monitor
