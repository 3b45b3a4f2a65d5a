package monitor

import (
	"time"

	"github.com/rileyhilliard/botstat/internal/stats"
)

// FieldKind selects how a system field is extracted and rendered.
type FieldKind int

const (
	// KindCount passes the raw text through (counters, byte sizes).
	KindCount FieldKind = iota
	// KindDuration renders seconds as "1d 2h 3m 4s".
	KindDuration
	// KindRate renders a float with 6 decimals.
	KindRate
	// KindByteRate renders a float with 2 decimals and a "B" suffix.
	KindByteRate
	// KindPercent renders a float with 2 decimals and a progress bar.
	KindPercent
)

// Field groups used to lay out the dashboard.
const (
	GroupSystem  = "System"
	GroupMemory  = "Memory"
	GroupCPU     = "CPU"
	GroupNetwork = "Network"
)

// TrackedMetric is the system key whose 5-second average feeds the history.
const TrackedMetric = "request_count"

// FieldSpec describes one recognized system key.
type FieldSpec struct {
	Key   string
	Label string
	Group string
	Index int
	Kind  FieldKind
}

// SystemFields lists the recognized system keys in display order.
// Index 1 is the 5-second average for fields that carry one.
var SystemFields = []FieldSpec{
	{Key: "uptime", Label: "Uptime", Group: GroupSystem, Index: 0, Kind: KindDuration},
	{Key: "bot_count", Label: "Bots", Group: GroupSystem, Index: 0, Kind: KindCount},
	{Key: "active_bot_count", Label: "Active bots", Group: GroupSystem, Index: 0, Kind: KindCount},
	{Key: "active_requests", Label: "Active requests", Group: GroupSystem, Index: 0, Kind: KindCount},

	{Key: "rss", Label: "RSS", Group: GroupMemory, Index: 0, Kind: KindCount},
	{Key: "vm", Label: "VM", Group: GroupMemory, Index: 0, Kind: KindCount},
	{Key: "rss_peak", Label: "RSS peak", Group: GroupMemory, Index: 0, Kind: KindCount},
	{Key: "vm_peak", Label: "VM peak", Group: GroupMemory, Index: 0, Kind: KindCount},
	{Key: "buffer_memory", Label: "Buffers", Group: GroupMemory, Index: 0, Kind: KindCount},

	{Key: "total_cpu", Label: "Total", Group: GroupCPU, Index: 1, Kind: KindPercent},
	{Key: "user_cpu", Label: "User", Group: GroupCPU, Index: 1, Kind: KindPercent},
	{Key: "system_cpu", Label: "System", Group: GroupCPU, Index: 1, Kind: KindPercent},

	{Key: "active_webhook_connections", Label: "Webhook conns", Group: GroupNetwork, Index: 0, Kind: KindCount},
	{Key: "active_network_queries", Label: "Network queries", Group: GroupNetwork, Index: 0, Kind: KindCount},
	{Key: "request_count", Label: "Requests/s", Group: GroupNetwork, Index: 1, Kind: KindRate},
	{Key: "request_bytes", Label: "Request bytes/s", Group: GroupNetwork, Index: 1, Kind: KindByteRate},
	{Key: "response_count", Label: "Responses/s", Group: GroupNetwork, Index: 1, Kind: KindRate},
	{Key: "response_count_ok", Label: "OK/s", Group: GroupNetwork, Index: 1, Kind: KindRate},
	{Key: "response_count_error", Label: "Errors/s", Group: GroupNetwork, Index: 1, Kind: KindRate},
	{Key: "response_bytes", Label: "Response bytes/s", Group: GroupNetwork, Index: 1, Kind: KindByteRate},
	{Key: "update_count", Label: "Updates/s", Group: GroupNetwork, Index: 1, Kind: KindRate},
}

// Field is a reduced, display-ready system value.
type Field struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Text  string  `json:"text"`
	Value float64 `json:"value"`
	// Numeric is false for count fields whose raw text is not a number.
	Numeric bool `json:"numeric"`
	// Bar is the clamped [0,100] fill for percent fields.
	Bar float64 `json:"bar,omitempty"`
}

// WorkerDisplay is a reduced worker record.
type WorkerDisplay struct {
	Index          int    `json:"index"`
	ID             string `json:"id"`
	Username       string `json:"username"`
	Uptime         string `json:"uptime"`
	HeadUpdateID   string `json:"head_update_id"`
	TailUpdateID   string `json:"tail_update_id"`
	PendingUpdates string `json:"pending_update_count"`
	ActiveRequests string `json:"active_request_count"`
	RequestRate    string `json:"request_rate"`
	UpdateRate     string `json:"update_rate"`
	Active         bool   `json:"active"`
	HasTail        bool   `json:"has_tail"`
	PendingWarning bool   `json:"pending_warning"`
}

// DisplayModel is everything a renderer needs from one successful poll.
// A key missing from Fields means the endpoint did not report it.
type DisplayModel struct {
	Fields    map[string]Field `json:"fields"`
	Workers   []WorkerDisplay  `json:"workers"`
	Sample    *SamplePoint     `json:"sample,omitempty"`
	Skipped   int              `json:"skipped_lines"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// Get returns the field for key and whether it was reported.
func (d *DisplayModel) Get(key string) (Field, bool) {
	if d == nil {
		return Field{}, false
	}
	f, ok := d.Fields[key]
	return f, ok
}

// Text returns the field text, or placeholder when absent.
func (d *DisplayModel) Text(key, placeholder string) string {
	if f, ok := d.Get(key); ok {
		return f.Text
	}
	return placeholder
}

// Placeholders for absent worker fields.
const (
	PlaceholderText    = "-"
	PlaceholderCount   = "0"
	PlaceholderRate    = "0.000000"
	PlaceholderUnknown = "Unknown"
)

// Reduce maps a snapshot onto display fields and appends at most one sample
// of the tracked metric to history. history may be nil.
func Reduce(snap *stats.Snapshot, history *History, now time.Time) *DisplayModel {
	d := &DisplayModel{
		Fields:    make(map[string]Field),
		Workers:   []WorkerDisplay{},
		FetchedAt: now,
	}
	if snap == nil {
		return d
	}
	d.Skipped = snap.Skipped

	for _, spec := range SystemFields {
		if f, ok := reduceField(spec, snap.Field(spec.Key)); ok {
			d.Fields[spec.Key] = f
		}
	}

	if f, ok := d.Fields[TrackedMetric]; ok {
		sample := SamplePoint{Timestamp: now, Value: f.Value}
		d.Sample = &sample
		if history != nil {
			history.Append(sample)
		}
	}

	for i, w := range snap.Workers {
		d.Workers = append(d.Workers, ReduceWorker(i, w))
	}

	return d
}

// reduceField extracts and formats a single system field.
func reduceField(spec FieldSpec, values stats.Values) (Field, bool) {
	f := Field{Key: spec.Key, Label: spec.Label}

	if spec.Kind == KindCount {
		raw, ok := values.At(spec.Index)
		if !ok {
			return Field{}, false
		}
		f.Text = raw
		f.Value, f.Numeric = values.Float(spec.Index)
		return f, true
	}

	v, ok := values.Float(spec.Index)
	if !ok {
		return Field{}, false
	}
	f.Value = v
	f.Numeric = true

	switch spec.Kind {
	case KindDuration:
		f.Text = FormatUptime(v)
	case KindRate:
		f.Text = FormatRate(v)
	case KindByteRate:
		f.Text = FormatByteRate(v)
	case KindPercent:
		f.Text = FormatPercent(v)
		f.Bar = ClampPercent(v)
	}
	return f, true
}

// ReduceWorker maps one worker record onto its card fields.
func ReduceWorker(index int, w stats.Worker) WorkerDisplay {
	wd := WorkerDisplay{
		Index:          index,
		ID:             w.ID,
		Username:       textOr(w.Field("username"), PlaceholderUnknown),
		Uptime:         PlaceholderText,
		HeadUpdateID:   textOr(w.Field("head_update_id"), PlaceholderText),
		TailUpdateID:   textOr(w.Field("tail_update_id"), PlaceholderText),
		PendingUpdates: textOr(w.Field("pending_update_count"), PlaceholderCount),
		ActiveRequests: textOr(w.Field("active_request_count"), PlaceholderCount),
		RequestRate:    PlaceholderRate,
		UpdateRate:     PlaceholderRate,
	}

	if secs, ok := w.Field("uptime").Float(0); ok {
		wd.Uptime = FormatUptime(secs)
	}

	requestRate, ok := w.Field("request_count/sec").Float(1)
	if ok {
		wd.RequestRate = FormatRate(requestRate)
	}
	updateRate, ok := w.Field("update_count/sec").Float(1)
	if ok {
		wd.UpdateRate = FormatRate(updateRate)
	}

	wd.Active = requestRate > 0 || updateRate > 0
	wd.HasTail = wd.TailUpdateID != PlaceholderText
	if pending, ok := w.Field("pending_update_count").Int(0); ok {
		wd.PendingWarning = pending > 0
	}

	return wd
}

// textOr returns the first value or the placeholder.
func textOr(values stats.Values, placeholder string) string {
	if s, ok := values.At(0); ok {
		return s
	}
	return placeholder
}
