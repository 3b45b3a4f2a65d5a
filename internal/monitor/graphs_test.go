package monitor

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Force TrueColor output in tests so we can verify ANSI color codes
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestChartScale(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want float64
	}{
		{"empty uses floor", nil, 1},
		{"small values use floor", []float64{0, 0.2, 0.9}, 1},
		{"large values use max", []float64{3, 12.5, 7}, 12.5},
		{"negative ignored", []float64{-5, -1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chartScale(tt.data))
		})
	}
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name     string
		val      float64
		min, max float64
		want     float64
	}{
		{"bottom", 0, 0, 10, 0},
		{"middle", 5, 0, 10, 0.5},
		{"top", 10, 0, 10, 1},
		{"degenerate range", 3, 4, 4, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, normalizeValue(tt.val, tt.min, tt.max), 1e-9)
		})
	}
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 0, clampInt(-3, 10))
	assert.Equal(t, 5, clampInt(5, 10))
	assert.Equal(t, 10, clampInt(15, 10))
}

func TestResampleData(t *testing.T) {
	tests := []struct {
		name       string
		data       []float64
		targetSize int
		wantLen    int
		wantNil    bool
	}{
		{name: "empty data returns nil", data: []float64{}, targetSize: 10, wantNil: true},
		{name: "zero target returns nil", data: []float64{1, 2, 3}, targetSize: 0, wantNil: true},
		{name: "same size returns original", data: []float64{1, 2, 3}, targetSize: 3, wantLen: 3},
		{name: "single value fills target", data: []float64{42}, targetSize: 5, wantLen: 5},
		{name: "downsampling reduces size", data: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, targetSize: 5, wantLen: 5},
		{name: "upsampling increases size", data: []float64{0, 100}, targetSize: 5, wantLen: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := resampleData(tt.data, tt.targetSize)
			if tt.wantNil {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.Len(t, result, tt.wantLen)
		})
	}
}

func TestResampleData_DownsamplingPreservesPeaks(t *testing.T) {
	data := []float64{1, 1, 1, 9, 1, 1, 1, 1, 1, 1}

	result := resampleData(data, 5)

	require.Len(t, result, 5)
	assert.Contains(t, result, float64(9))
}

func TestResampleData_UpsamplingInterpolates(t *testing.T) {
	result := resampleData([]float64{0, 100}, 5)
	assert.Equal(t, []float64{0, 25, 50, 75, 100}, result)
}

func TestRenderBrailleChart(t *testing.T) {
	tests := []struct {
		name   string
		data   []float64
		width  int
		height int
		empty  bool
	}{
		{name: "no data", data: nil, width: 10, height: 2, empty: true},
		{name: "single point needs a second", data: []float64{1}, width: 10, height: 2, empty: true},
		{name: "zero width", data: []float64{1, 2}, width: 0, height: 2, empty: true},
		{name: "zero height", data: []float64{1, 2}, width: 10, height: 0, empty: true},
		{name: "two points", data: []float64{1, 2}, width: 10, height: 2},
		{name: "more data than width", data: make([]float64, 100), width: 10, height: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderBrailleChart(tt.data, tt.width, tt.height, ColorGraph)
			if tt.empty {
				assert.Empty(t, out)
				return
			}
			assert.Len(t, strings.Split(out, "\n"), tt.height)
		})
	}
}

func TestRenderBrailleChart_RightAligned(t *testing.T) {
	out := RenderBrailleChart([]float64{5, 5}, 4, 1, ColorGraph)

	// Both points share the last character; the leading cells stay empty.
	plain := stripANSI(out)
	runes := []rune(plain)
	require.Len(t, runes, 4)
	assert.Equal(t, brailleBase, runes[0])
	assert.NotEqual(t, brailleBase, runes[3])
}

func TestRenderBrailleChart_ZeroStillVisible(t *testing.T) {
	out := stripANSI(RenderBrailleChart([]float64{0, 0}, 1, 1, ColorGraph))
	assert.NotEqual(t, string(brailleBase), out)
}

func TestRenderMiniSparkline(t *testing.T) {
	assert.Empty(t, RenderMiniSparkline(nil, 5))
	assert.Empty(t, RenderMiniSparkline([]float64{1}, 0))

	out := RenderMiniSparkline([]float64{0, 10}, 2)
	assert.Equal(t, "▁█", out)

	idle := RenderMiniSparkline([]float64{0, 0, 0}, 3)
	assert.Equal(t, "▁▁▁", idle)
}

// stripANSI removes SGR escape sequences for content assertions.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape && r == 'm':
			inEscape = false
		case !inEscape:
			b.WriteRune(r)
		}
	}
	return b.String()
}
