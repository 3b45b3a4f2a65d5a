package monitor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func sampleAt(i int, v float64) SamplePoint {
	return SamplePoint{Timestamp: baseTime.Add(time.Duration(i) * time.Second), Value: v}
}

func TestNewHistory(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		expected int
	}{
		{"zero size keeps nothing", 0, 0},
		{"negative size", -1, DefaultHistorySize},
		{"custom size", 100, 100},
		{"small size", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(tt.size)
			require.NotNil(t, h)
			assert.Equal(t, tt.expected, h.Cap())
			assert.Equal(t, 0, h.Len())
		})
	}
}

func TestHistoryAppend(t *testing.T) {
	h := NewHistory(10)

	for i := 0; i < 5; i++ {
		h.Append(sampleAt(i, float64(i*10)))
	}

	assert.Equal(t, 5, h.Len())
	assert.Equal(t, []float64{0, 10, 20, 30, 40}, h.Values())
}

func TestHistoryRingBufferOverflow(t *testing.T) {
	h := NewHistory(3)

	for i := 1; i <= 5; i++ {
		h.Append(sampleAt(i, float64(i)))
	}

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []float64{3, 4, 5}, h.Values())

	snap := h.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, baseTime.Add(3*time.Second), snap[0].Timestamp)
	assert.Equal(t, baseTime.Add(5*time.Second), snap[2].Timestamp)
}

func TestHistoryCapacityOne(t *testing.T) {
	h := NewHistory(1)

	h.Append(sampleAt(0, 1))
	h.Append(sampleAt(1, 2))

	assert.Equal(t, []float64{2}, h.Values())
}

func TestHistoryCapacityZero(t *testing.T) {
	h := NewHistory(0)

	h.Append(sampleAt(0, 1))

	assert.Equal(t, 0, h.Len())
	assert.Nil(t, h.Snapshot())
	_, ok := h.Latest()
	assert.False(t, ok)
}

func TestHistoryDefaultCapacity(t *testing.T) {
	h := NewHistory(-1)

	for i := 0; i < DefaultHistorySize+10; i++ {
		h.Append(sampleAt(i, float64(i)))
	}

	values := h.Values()
	require.Len(t, values, DefaultHistorySize)
	assert.Equal(t, float64(10), values[0])
	assert.Equal(t, float64(DefaultHistorySize+9), values[len(values)-1])
}

func TestHistoryLatestAndMax(t *testing.T) {
	h := NewHistory(4)

	_, ok := h.Latest()
	assert.False(t, ok)
	assert.Equal(t, float64(0), h.Max())

	h.Append(sampleAt(0, 2.5))
	h.Append(sampleAt(1, 9.75))
	h.Append(sampleAt(2, 1))

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, float64(1), latest.Value)
	assert.Equal(t, 9.75, h.Max())
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(3)
	h.Append(sampleAt(0, 1))
	h.Append(sampleAt(1, 2))

	h.Clear()

	assert.Equal(t, 0, h.Len())
	assert.Nil(t, h.Values())

	h.Append(sampleAt(2, 3))
	assert.Equal(t, []float64{3}, h.Values())
}

func TestHistorySnapshotIsCopy(t *testing.T) {
	h := NewHistory(3)
	h.Append(sampleAt(0, 1))

	snap := h.Snapshot()
	snap[0].Value = 99

	assert.Equal(t, []float64{1}, h.Values())
}

func TestHistoryConcurrentAccess(t *testing.T) {
	h := NewHistory(DefaultHistorySize)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				h.Append(sampleAt(j, float64(n)))
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = h.Values()
				_ = h.Max()
				_, _ = h.Latest()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, DefaultHistorySize, h.Len())
}
