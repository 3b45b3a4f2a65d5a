package cli

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/rileyhilliard/botstat/internal/config"
	"github.com/rileyhilliard/botstat/internal/errors"
	"github.com/rileyhilliard/botstat/internal/logger"
	"github.com/rileyhilliard/botstat/internal/monitor"
	"github.com/spf13/cobra"
)

// Global flags
var (
	configFlag   string
	endpointFlag string
)

// rootCmd runs the dashboard when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "botstat",
	Short: "Live stats dashboard for a bot server",
	Long: `botstat polls a bot server's plain-text stats endpoint and shows the
latest report as a live terminal dashboard with a request-rate chart.

Running botstat with no subcommand is the same as 'botstat monitor'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default: .botstat.yaml, then ~/.config/botstat/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", "", "bot server base URL, e.g. http://localhost:8081")
	rootCmd.PersistentFlags().BoolVar(&machineMode, "json", false, "machine-readable JSON output")
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	os.Exit(run(os.Args[1:]))
}

// run executes args and returns the process exit code.
func run(args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	if code, ok := errors.GetExitCode(err); ok {
		return code
	}

	if machineMode {
		_ = WriteJSONFromError(os.Stdout, err)
		return 1
	}

	if isUnknownCommandError(err) {
		if name := extractUnknownCommand(err); name != "" {
			fmt.Fprintf(os.Stderr, "'%s' isn't a botstat command.\n", name)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		fmt.Fprintln(os.Stderr, "Run 'botstat --help' to see available commands.")
		return 1
	}

	fmt.Fprint(os.Stderr, err.Error())
	if !strings.HasSuffix(err.Error(), "\n") {
		fmt.Fprintln(os.Stderr)
	}
	return 1
}

var unknownCommandPattern = regexp.MustCompile(`unknown command "([^"]+)"`)

// isUnknownCommandError reports whether err is cobra's unknown command or flag error.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

// extractUnknownCommand pulls the command name out of cobra's error text.
func extractUnknownCommand(err error) string {
	m := unknownCommandPattern.FindStringSubmatch(err.Error())
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// loadConfig resolves the effective config, applies the global flags and then
// any command overrides, and validates the result.
func loadConfig(overrides ...func(*config.Config) error) (*config.Config, error) {
	cfg, _, err := config.LoadOrDefault(configFlag)
	if err != nil {
		return nil, err
	}
	if endpointFlag != "" {
		cfg.Endpoint = strings.TrimRight(endpointFlag, "/")
	}
	for _, apply := range overrides {
		if err := apply(cfg); err != nil {
			return nil, err
		}
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newPoller builds the fetch pipeline for cfg.
func newPoller(cfg *config.Config, log logger.Logger) *monitor.Poller {
	fetcher := monitor.NewHTTPFetcher(cfg.Endpoint, cfg.Path, cfg.Timeout)
	session := monitor.NewSession(cfg.Endpoint, cfg.HistorySize)
	return monitor.NewPoller(fetcher, session, log)
}
