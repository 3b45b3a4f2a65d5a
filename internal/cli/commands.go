package cli

import (
	"os"

	"github.com/rileyhilliard/botstat/internal/errors"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	monitorFlags       PollFlags
	monitorChartFlag   string
	chartFlags         PollFlags
	chartSamplesFlag   int
	chartOutputFlag    string
	serveFlags         PollFlags
	serveAddrFlag      string
	initForce          bool
	initNonInteractive bool
	initPathFlag       string
	initIntervalFlag   string
)

// monitorCmd starts the TUI dashboard
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Live stats dashboard",
	Long: `Start an interactive TUI dashboard showing the bot server's latest
stats report, a request-rate chart and one card per bot.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  r           Refresh now
  i / I       Next / previous refresh interval
  p           Pause / resume polling
  e           Export HTML chart
  up/k        Select previous bot
  down/j      Select next bot
  Enter       Open bot details
  Esc         Go back
  ?           Show help

Set BOTSTAT_LOG to a file path to capture poll logs while the dashboard runs.

Examples:
  botstat monitor
  botstat monitor --endpoint http://bot.internal:8081
  botstat monitor --interval 2s --history 120`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand(monitorFlags, monitorChartFlag)
	},
}

// onceCmd polls once and prints the report
var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Fetch one stats report and print it",
	Long: `Fetch a single stats report, print every reported field and bot, and exit.

With --json the reduced display model is printed inside the standard
{success, data, error} envelope.

Examples:
  botstat once
  botstat once --json | jq '.data.display.workers'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runOnce(cmd.Context(), cmd.OutOrStdout(), newPoller(cfg, nil), isTerminal(os.Stdout))
	},
}

// chartCmd collects samples and writes an HTML chart
var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Collect samples and write an HTML request-rate chart",
	Long: `Poll the bot server a fixed number of times and write the collected
request-rate samples as an interactive HTML chart.

Examples:
  botstat chart
  botstat chart --samples 30 --interval 1s --output rate.html`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return chartCommand(cmd, chartFlags, chartSamplesFlag, chartOutputFlag)
	},
}

// serveCmd relays the session over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Relay stats over HTTP and websockets",
	Long: `Poll the bot server in the background and serve the session:

  GET /api/display   latest display model
  GET /api/history   request-rate samples
  GET /api/status    session status
  GET /chart         HTML chart of the current window
  GET /ws            websocket push of every poll result

Examples:
  botstat serve
  botstat serve --addr 0.0.0.0:8090 --interval 2s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCommand(serveFlags, serveAddrFlag)
	},
}

// initCmd creates a new .botstat.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .botstat.yaml configuration",
	Long: `Create a .botstat.yaml file in the current directory.

Prompts for the endpoint, stats path and poll interval unless
--non-interactive is set. Running init with --endpoint against an existing
file updates just the endpoint and keeps the rest of the file intact.

Examples:
  botstat init
  botstat init --endpoint http://bot.internal:8081 --non-interactive
  botstat init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(cmd.OutOrStdout(), InitOptions{
			Endpoint:       endpointFlag,
			Path:           initPathFlag,
			Interval:       initIntervalFlag,
			Overwrite:      initForce,
			NonInteractive: initNonInteractive || !isTerminal(os.Stdin),
		})
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for botstat.

Examples:
  # Bash
  botstat completion bash > /etc/bash_completion.d/botstat

  # Zsh
  botstat completion zsh > "${fpath[1]}/_botstat"

  # Fish
  botstat completion fish > ~/.config/fish/completions/botstat.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// monitor flags (also used by the bare root command)
	AddPollFlags(monitorCmd, &monitorFlags)
	monitorCmd.Flags().StringVar(&monitorChartFlag, "chart", "", "file the 'e' key writes the HTML chart to; default from config")
	rootCmd.Flags().AddFlagSet(monitorCmd.Flags())

	// chart flags
	AddPollFlags(chartCmd, &chartFlags)
	chartCmd.Flags().IntVar(&chartSamplesFlag, "samples", 10, "number of polls to collect")
	chartCmd.Flags().StringVarP(&chartOutputFlag, "output", "o", "", "output HTML file; default from config")

	// serve flags
	AddPollFlags(serveCmd, &serveFlags)
	serveCmd.Flags().StringVar(&serveAddrFlag, "addr", "", "listen address (host:port); default from config")

	// init flags
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "skip prompts and use flags or defaults")
	initCmd.Flags().StringVar(&initPathFlag, "path", "", "stats path on the bot server (default /stats)")
	initCmd.Flags().StringVar(&initIntervalFlag, "interval", "", "poll interval to save (default 5s)")

	rootCmd.AddCommand(monitorCmd, onceCmd, chartCmd, serveCmd, initCmd, completionCmd)
}
