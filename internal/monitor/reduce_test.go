package monitor

import (
	"math"
	"testing"
	"time"

	"github.com/rileyhilliard/botstat/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reduceReport = "uptime\t90000\n" +
	"bot_count\t3\n" +
	"rss\t104857600\n" +
	"total_cpu\t50\t12.346\n" +
	"user_cpu\t1\t140\n" +
	"request_count\t1500\t2.4\n" +
	"request_bytes\t52000\t830.5\n" +
	"update_count\t10\n" +
	"\n" +
	"id\t1\n" +
	"username\tfirst_bot\n" +
	"uptime\t3661\n" +
	"tail_update_id\t905\n" +
	"pending_update_count\t5\n" +
	"request_count/sec\t1.2\t0.8\n" +
	"\n" +
	"id\t2\n"

func TestReduce_SystemFields(t *testing.T) {
	now := baseTime
	h := NewHistory(5)

	d := Reduce(stats.Parse(reduceReport), h, now)

	tests := []struct {
		key  string
		text string
	}{
		{"uptime", "1d 1h 0m 0s"},
		{"bot_count", "3"},
		{"rss", "104857600"},
		{"total_cpu", "12.35%"},
		{"user_cpu", "140.00%"},
		{"request_count", "2.400000"},
		{"request_bytes", "830.50B"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			f, ok := d.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.text, f.Text)
		})
	}

	cpu, _ := d.Get("total_cpu")
	assert.InDelta(t, 12.346, cpu.Bar, 1e-9)
	user, _ := d.Get("user_cpu")
	assert.Equal(t, float64(100), user.Bar, "bar is clamped")

	_, ok := d.Get("update_count")
	assert.False(t, ok, "missing index 1 omits the field")
	_, ok = d.Get("vm")
	assert.False(t, ok, "absent key omits the field")
	assert.Equal(t, "-", d.Text("vm", "-"))

	assert.Equal(t, now, d.FetchedAt)
}

func TestReduce_AppendsTrackedSample(t *testing.T) {
	h := NewHistory(5)

	d := Reduce(stats.Parse(reduceReport), h, baseTime)

	require.NotNil(t, d.Sample)
	assert.Equal(t, SamplePoint{Timestamp: baseTime, Value: 2.4}, *d.Sample)
	assert.Equal(t, []float64{2.4}, h.Values())
}

func TestReduce_NoSampleWithoutTrackedMetric(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"absent", "uptime\t1\n"},
		{"no average", "request_count\t1\n"},
		{"unparseable", "request_count\t1\tfast\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(5)
			d := Reduce(stats.Parse(tt.input), h, baseTime)

			assert.Nil(t, d.Sample)
			assert.Equal(t, 0, h.Len())
			_, ok := d.Get(TrackedMetric)
			assert.False(t, ok)
		})
	}
}

func TestReduce_NilInputs(t *testing.T) {
	d := Reduce(nil, nil, baseTime)
	require.NotNil(t, d)
	assert.Empty(t, d.Fields)
	assert.Empty(t, d.Workers)

	assert.NotPanics(t, func() {
		Reduce(stats.Parse("request_count\t1\t2\n"), nil, baseTime)
	})

	var nilModel *DisplayModel
	_, ok := nilModel.Get("uptime")
	assert.False(t, ok)
}

func TestReduce_CountFieldKeepsRawText(t *testing.T) {
	d := Reduce(stats.Parse("bot_count\tmany\nactive_bot_count\t2\n"), nil, baseTime)

	f, ok := d.Get("bot_count")
	require.True(t, ok)
	assert.Equal(t, "many", f.Text)
	assert.False(t, f.Numeric)

	f, ok = d.Get("active_bot_count")
	require.True(t, ok)
	assert.True(t, f.Numeric)
	assert.Equal(t, float64(2), f.Value)
}

func TestReduce_Workers(t *testing.T) {
	d := Reduce(stats.Parse(reduceReport), nil, baseTime)

	require.Len(t, d.Workers, 2)

	first := d.Workers[0]
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "first_bot", first.Username)
	assert.Equal(t, "1h 1m 1s", first.Uptime)
	assert.Equal(t, "-", first.HeadUpdateID)
	assert.Equal(t, "905", first.TailUpdateID)
	assert.Equal(t, "5", first.PendingUpdates)
	assert.Equal(t, "0.800000", first.RequestRate)
	assert.Equal(t, "0.000000", first.UpdateRate)
	assert.True(t, first.Active)
	assert.True(t, first.HasTail)
	assert.True(t, first.PendingWarning)

	second := d.Workers[1]
	assert.Equal(t, 1, second.Index)
	assert.Equal(t, "Unknown", second.Username)
	assert.Equal(t, "-", second.Uptime)
	assert.Equal(t, "0", second.PendingUpdates)
	assert.Equal(t, "0", second.ActiveRequests)
	assert.False(t, second.Active)
	assert.False(t, second.HasTail)
	assert.False(t, second.PendingWarning)
}

func TestReduceWorker_ActiveFlag(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]stats.Values
		want   bool
	}{
		{"idle", map[string]stats.Values{"request_count/sec": {"0", "0"}, "update_count/sec": {"0", "0"}}, false},
		{"requests only", map[string]stats.Values{"request_count/sec": {"0", "0.1"}}, true},
		{"updates only", map[string]stats.Values{"update_count/sec": {"9", "0.5"}}, true},
		{"current ignored", map[string]stats.Values{"request_count/sec": {"4", "0"}}, false},
		{"garbage", map[string]stats.Values{"request_count/sec": {"x", "y"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wd := ReduceWorker(0, stats.Worker{ID: "w", Fields: tt.fields})
			assert.Equal(t, tt.want, wd.Active)
		})
	}
}

func TestReduce_IndependentOfPriorCalls(t *testing.T) {
	first := Reduce(stats.Parse("bot_count\t1\n"), nil, baseTime)
	second := Reduce(stats.Parse("uptime\t5\n"), nil, baseTime.Add(time.Second))

	_, ok := second.Get("bot_count")
	assert.False(t, ok)
	_, ok = first.Get("uptime")
	assert.False(t, ok)
}

func TestReduce_HugeUptimeSaturates(t *testing.T) {
	d := Reduce(stats.Parse("uptime\t1e300\n"), nil, baseTime)

	f, ok := d.Get("uptime")
	require.True(t, ok)
	assert.NotContains(t, f.Text, "-")
	assert.Equal(t, FormatUptime(math.MaxInt64), f.Text)
}
