package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/botstat/internal/config"
	"github.com/rileyhilliard/botstat/internal/errors"
	"github.com/rileyhilliard/botstat/internal/monitor"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir            string // Directory to write into; defaults to the current directory
	Endpoint       string // Pre-specified bot server URL
	Path           string // Pre-specified stats path
	Interval       string // Pre-specified poll interval
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
}

// Init creates a new .botstat.yaml configuration file.
func Init(w io.Writer, opts InitOptions) error {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	configPath := filepath.Join(dir, config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		// An endpoint alone on an existing file is an in-place update.
		if opts.Endpoint != "" && opts.Path == "" && opts.Interval == "" {
			return updateEndpoint(w, configPath, opts.Endpoint)
		}

		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	cfg, err := initConfig(opts)
	if err != nil {
		return err
	}

	if err := config.Write(configPath, cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't write "+configPath,
			"Check that the directory is writable")
	}

	if machineMode {
		return WriteJSONSuccess(w, map[string]string{"path": configPath, "endpoint": cfg.Endpoint})
	}
	fmt.Fprintf(w, "Created %s\n", configPath)
	fmt.Fprintf(w, "Run 'botstat' to open the dashboard for %s\n", monitor.StatsURL(cfg.Endpoint, cfg.Path))
	return nil
}

// initConfig builds the config from flags, prompting for anything missing
// unless running non-interactively.
func initConfig(opts InitOptions) (*config.Config, error) {
	cfg := config.DefaultConfig()

	endpoint := opts.Endpoint
	path := opts.Path
	interval := opts.Interval

	if !opts.NonInteractive {
		if endpoint == "" {
			endpoint = cfg.Endpoint
		}
		if path == "" {
			path = cfg.Path
		}
		if interval == "" {
			interval = cfg.Interval.String()
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Bot server URL").
					Placeholder(config.DefaultEndpoint).
					Value(&endpoint),
				huh.NewInput().
					Title("Stats path").
					Placeholder(config.DefaultPath).
					Value(&path),
				huh.NewSelect[string]().
					Title("Poll interval").
					Options(intervalOptions(cfg)...).
					Value(&interval),
			),
		)
		if err := form.Run(); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --non-interactive --endpoint <url>")
		}
	}

	if endpoint != "" {
		cfg.Endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	}
	if path != "" {
		cfg.Path = strings.TrimSpace(path)
	}
	if interval != "" {
		d, err := ParseInterval(interval)
		if err != nil {
			return nil, err
		}
		cfg.Interval = d
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// intervalOptions offers the configured interval choices in the prompt.
func intervalOptions(cfg *config.Config) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(cfg.Intervals))
	for _, d := range cfg.Intervals {
		options = append(options, huh.NewOption(d.String(), d.String()))
	}
	return options
}

// updateEndpoint rewrites only the endpoint of an existing config.
func updateEndpoint(w io.Writer, configPath, endpoint string) error {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")

	probe := config.DefaultConfig()
	probe.Endpoint = endpoint
	if err := config.Validate(probe); err != nil {
		return err
	}

	if err := config.SetValue(configPath, "endpoint", endpoint); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't update "+configPath,
			"Fix the file by hand, or recreate it with 'botstat init --force'")
	}

	if machineMode {
		return WriteJSONSuccess(w, map[string]string{"path": configPath, "endpoint": endpoint})
	}
	fmt.Fprintf(w, "Updated endpoint in %s to %s\n", configPath, endpoint)
	return nil
}
