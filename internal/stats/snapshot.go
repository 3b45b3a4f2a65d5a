// Package stats parses the bot API server's tab-separated stats report.
//
// The report is a system section followed by a blank line and then a
// sequence of worker records, each starting with an "id" line:
//
//	uptime	93784.2
//	request_count	1023	2.400000
//
//	id	123456
//	username	example_bot
//	request_count/sec	0.5	0.4
//
// Fields may carry several tab-separated values. By convention index 0 is
// the instantaneous value and index 1 the 5-second average.
package stats

import (
	"math"
	"strconv"
	"time"
)

// Values holds the tab-separated values of a single field, in source order.
type Values []string

// Snapshot is one parsed capture of the stats report.
type Snapshot struct {
	// System maps system-section keys to their values. Last occurrence wins.
	System map[string]Values
	// Workers in the order their "id" lines appeared.
	Workers []Worker
	// Skipped counts lines that were dropped as malformed or orphaned.
	Skipped int
}

// Worker is a single record from the workers section.
type Worker struct {
	ID     string
	Fields map[string]Values
}

// Rate is a field carrying an instantaneous value and a windowed average.
type Rate struct {
	Current float64
	Average float64
}

// Field returns the values for a system key, or nil if absent.
func (s *Snapshot) Field(key string) Values {
	if s == nil {
		return nil
	}
	return s.System[key]
}

// Field returns the values for a worker key, or nil if absent.
func (w Worker) Field(key string) Values {
	return w.Fields[key]
}

// At returns the value at index i.
func (v Values) At(i int) (string, bool) {
	if i < 0 || i >= len(v) {
		return "", false
	}
	return v[i], true
}

// Float parses the value at index i as a finite float.
func (v Values) Float(i int) (float64, bool) {
	s, ok := v.At(i)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Int parses the value at index i as a base-10 integer.
func (v Values) Int(i int) (int64, bool) {
	s, ok := v.At(i)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Rate returns index 0 and index 1 as a Rate. Both must parse.
func (v Values) Rate() (Rate, bool) {
	cur, ok := v.Float(0)
	if !ok {
		return Rate{}, false
	}
	avg, ok := v.Float(1)
	if !ok {
		return Rate{}, false
	}
	return Rate{Current: cur, Average: avg}, true
}

// Seconds parses the value at index i as a (possibly fractional) number of seconds.
func (v Values) Seconds(i int) (time.Duration, bool) {
	f, ok := v.Float(i)
	if !ok {
		return 0, false
	}
	return time.Duration(f * float64(time.Second)), true
}
