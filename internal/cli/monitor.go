package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/botstat/internal/errors"
	"github.com/rileyhilliard/botstat/internal/logger"
	"github.com/rileyhilliard/botstat/internal/monitor"
)

// LogFileEnv names the file poll logs go to while the dashboard owns the terminal.
const LogFileEnv = "BOTSTAT_LOG"

// monitorCommand starts the TUI dashboard.
func monitorCommand(flags PollFlags, chartPath string) error {
	if machineMode {
		return errors.New(errors.ErrConfig,
			"The dashboard has no JSON mode",
			"Use 'botstat once --json' for a machine-readable snapshot.")
	}

	cfg, err := loadConfig(flags.Apply)
	if err != nil {
		return err
	}
	if chartPath == "" {
		chartPath = cfg.Chart.Output
	}

	// Logs would corrupt the alt screen, so they go to a file or nowhere.
	log := logger.Noop()
	if path := os.Getenv(LogFileEnv); path != "" {
		closer, err := logger.RedirectToFile(path)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Can't open log file "+path,
				"Check that the directory exists, or unset "+LogFileEnv)
		}
		defer closer.Close()
		log = logger.NewEnvLogger("[monitor]")
	}

	poller := newPoller(cfg, log)
	model := monitor.NewModel(poller, monitor.ModelOptions{
		Interval:  cfg.Interval,
		Intervals: cfg.Intervals,
		ChartPath: chartPath,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()

	// Stop the schedule even if the program exited without 'q'.
	poller.Stop()

	return err
}
