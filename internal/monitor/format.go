package monitor

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// FormatUptime renders a seconds count as "1d 2h 3m 4s", starting at the
// largest non-zero unit and always continuing down to seconds.
// Fractions are floored, negative input is treated as zero and values
// beyond int64 saturate.
func FormatUptime(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	total := int64(math.MaxInt64)
	if seconds < math.MaxInt64 {
		total = int64(math.Floor(seconds))
	}

	days := total / secondsPerDay
	hours := (total % secondsPerDay) / secondsPerHour
	minutes := (total % secondsPerHour) / secondsPerMinute
	secs := total % secondsPerMinute

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, secs)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// FormatRate renders a per-second rate with fixed 6-decimal precision.
func FormatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// FormatByteRate renders a byte rate with 2-decimal precision and a "B" suffix.
func FormatByteRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "B"
}

// FormatPercent renders a percentage with 2-decimal precision.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

// ClampPercent clamps a percentage to [0, 100] for progress bars.
func ClampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// HumanBytes renders a byte count the way the dashboard cards show memory.
// Falls back to the raw text when it does not parse.
func HumanBytes(raw string) string {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return raw
	}
	return humanize.IBytes(n)
}

// HumanCount adds thousands separators to an integer count.
// Falls back to the raw text when it does not parse.
func HumanCount(raw string) string {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return raw
	}
	return humanize.Comma(n)
}

// formatMaxLabel renders the chart scale label.
func formatMaxLabel(v float64) string {
	return "Max: " + strconv.FormatFloat(v, 'f', 3, 64)
}
