package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .botstat.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Endpoint is the base URL of the bot server, e.g. http://localhost:8081.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// Path is appended to Endpoint to form the stats URL.
	Path string `yaml:"path" mapstructure:"path"`

	// Interval is the initial poll interval.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Intervals are the choices the dashboard cycles through.
	Intervals []time.Duration `yaml:"intervals" mapstructure:"intervals"`

	// HistorySize bounds the sample window. Zero keeps no history.
	HistorySize int `yaml:"history_size" mapstructure:"history_size"`

	// Timeout caps a single fetch. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	Serve ServeConfig `yaml:"serve" mapstructure:"serve"`
	Chart ChartConfig `yaml:"chart" mapstructure:"chart"`
}

// ServeConfig controls the HTTP relay started by 'botstat serve'.
type ServeConfig struct {
	// Addr is the listen address in host:port form.
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// ChartConfig controls HTML chart export.
type ChartConfig struct {
	// Output is the file written by the 'e' key and 'botstat chart'.
	Output string `yaml:"output" mapstructure:"output"`
}

// Defaults
const (
	DefaultEndpoint    = "http://localhost:8081"
	DefaultPath        = "/stats"
	DefaultInterval    = 5 * time.Second
	DefaultHistorySize = 50
	DefaultServeAddr   = "localhost:8090"
	DefaultChartOutput = "botstat-chart.html"
)

// DefaultIntervals returns the interval choices offered by the dashboard.
func DefaultIntervals() []time.Duration {
	return []time.Duration{
		1 * time.Second,
		2 * time.Second,
		5 * time.Second,
		10 * time.Second,
		30 * time.Second,
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:     CurrentConfigVersion,
		Endpoint:    DefaultEndpoint,
		Path:        DefaultPath,
		Interval:    DefaultInterval,
		Intervals:   DefaultIntervals(),
		HistorySize: DefaultHistorySize,
		Serve: ServeConfig{
			Addr: DefaultServeAddr,
		},
		Chart: ChartConfig{
			Output: DefaultChartOutput,
		},
	}
}
