package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rileyhilliard/botstat/internal/config"
	"github.com/rileyhilliard/botstat/internal/errors"
	"github.com/rileyhilliard/botstat/internal/logger"
	"github.com/rileyhilliard/botstat/internal/monitor"
	"github.com/rileyhilliard/botstat/internal/ui"
	"github.com/spf13/cobra"
)

// chartResult is the --json payload of 'botstat chart'.
type chartResult struct {
	Path    string  `json:"path"`
	Samples int     `json:"samples"`
	Failed  int     `json:"failed"`
	Max     float64 `json:"max"`
}

func chartCommand(cmd *cobra.Command, flags PollFlags, samples int, output string) error {
	if samples < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("--samples must be at least 1, got %d", samples),
			"Try something like --samples 10.")
	}

	cfg, err := loadConfig(flags.Apply, func(c *config.Config) error {
		// The window must hold every requested sample.
		if c.HistorySize < samples {
			c.HistorySize = samples
		}
		return nil
	})
	if err != nil {
		return err
	}
	if output == "" {
		output = cfg.Chart.Output
	}

	poller := newPoller(cfg, logger.NewEnvLogger("[chart]"))
	return collectChart(cmd.Context(), cmd.OutOrStdout(), poller, samples, cfg.Interval, output)
}

// collectChart polls samples times, interval apart, then writes the chart.
// Failed polls count toward the total but add no sample.
func collectChart(ctx context.Context, w io.Writer, poller *monitor.Poller, samples int, interval time.Duration, output string) error {
	endpoint := poller.Session().Endpoint
	var progress *ui.Spinner
	if !machineMode {
		progress = ui.NewSpinner(w, fmt.Sprintf("Collecting samples from %s (0/%d)", endpoint, samples))
		progress.Start()
	}

	failed := 0
	for i := 0; i < samples; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				if progress != nil {
					progress.Fail(fmt.Sprintf("Interrupted after %d/%d polls", i, samples))
				}
				return ctx.Err()
			case <-time.After(interval):
			}
		}
		if res := poller.PollOnce(ctx); res.Err != nil {
			failed++
		}
		if progress != nil {
			progress.SetLabel(fmt.Sprintf("Collecting samples from %s (%d/%d)", endpoint, i+1, samples))
		}
	}

	if progress != nil {
		switch {
		case failed == samples:
			progress.Fail(fmt.Sprintf("Collected %d/%d polls, all failed", samples, samples))
		case failed > 0:
			progress.Warn(fmt.Sprintf("Collected %d/%d polls, %d failed", samples, samples, failed))
		default:
			progress.Success(fmt.Sprintf("Collected %d/%d polls", samples, samples))
		}
	}

	session := poller.Session()
	history := session.History()
	if history.Len() == 0 {
		var cause error
		if pe := session.LastError(); pe != nil {
			cause = pe
		}
		return errors.WrapWithCode(cause, errors.ErrFetch,
			fmt.Sprintf("All %d polls of %s failed", samples, session.Endpoint),
			"Check the endpoint with 'botstat once' first")
	}

	if err := monitor.WriteChartFile(output, session); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Couldn't write chart to "+output,
			"Check that the directory exists and is writable")
	}

	if machineMode {
		return WriteJSONSuccess(w, chartResult{
			Path:    output,
			Samples: history.Len(),
			Failed:  failed,
			Max:     history.Max(),
		})
	}
	fmt.Fprintf(w, "Wrote %d samples to %s\n", history.Len(), output)
	return nil
}
