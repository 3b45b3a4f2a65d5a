package cli

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/botstat/internal/config"
	"github.com/rileyhilliard/botstat/internal/errors"
	"github.com/spf13/cobra"
)

// MinInterval is the shortest poll interval accepted from the command line.
const MinInterval = 500 * time.Millisecond

// PollFlags holds the polling flags shared by monitor, chart and serve.
type PollFlags struct {
	Interval string
	History  int
}

// AddPollFlags registers --interval and --history on a command.
func AddPollFlags(cmd *cobra.Command, flags *PollFlags) {
	cmd.Flags().StringVar(&flags.Interval, "interval", "", "poll interval (e.g., 2s, 1m); default from config")
	cmd.Flags().IntVar(&flags.History, "history", -1, "number of samples kept for the chart; default from config")
}

// Apply overrides cfg with any flags that were set.
func (f PollFlags) Apply(cfg *config.Config) error {
	interval, err := ParseInterval(f.Interval)
	if err != nil {
		return err
	}
	if interval > 0 {
		cfg.Interval = interval
	}
	if f.History >= 0 {
		cfg.HistorySize = f.History
	}
	return nil
}

// ParseInterval parses an interval flag into a duration.
// Returns zero duration if the flag is empty.
func ParseInterval(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	duration, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 2s, 5s, or 1m.")
	}
	if duration < MinInterval {
		return 0, errors.New(errors.ErrConfig,
			"Interval too short",
			"Minimum interval is 500ms to avoid overwhelming the bot server")
	}
	return duration, nil
}
