package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/rileyhilliard/botstat/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but botstat only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade botstat to the latest release.")
	}

	if err := validateEndpoint(cfg.Endpoint); err != nil {
		return err
	}

	if !strings.HasPrefix(cfg.Path, "/") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Stats path '%s' must start with '/'", cfg.Path),
			"Use something like 'path: /stats'.")
	}

	if err := validatePolling(cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the polling settings in your .botstat.yaml.")
	}

	if _, _, err := net.SplitHostPort(cfg.Serve.Addr); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Serve address '%s' is not host:port", cfg.Serve.Addr),
			"Use something like 'serve.addr: localhost:8090'.")
	}

	if strings.TrimSpace(cfg.Chart.Output) == "" {
		return errors.New(errors.ErrConfig,
			"Chart output path is empty",
			"Set 'chart.output' to a file name like botstat-chart.html.")
	}

	return nil
}

// validateEndpoint requires an absolute http(s) URL.
func validateEndpoint(endpoint string) error {
	if endpoint == "" {
		return errors.New(errors.ErrConfig,
			"No endpoint configured",
			"Set 'endpoint' in .botstat.yaml or pass --endpoint http://host:port")
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Endpoint '%s' is not a valid URL", endpoint),
			"Use a full URL like http://localhost:8081")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Endpoint '%s' must use http or https", endpoint),
			"Use a full URL like http://localhost:8081")
	}
	if u.Host == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Endpoint '%s' has no host", endpoint),
			"Use a full URL like http://localhost:8081")
	}
	return nil
}

// validatePolling checks interval, history and timeout values.
func validatePolling(cfg *Config) error {
	if cfg.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", cfg.Interval)
	}
	for _, d := range cfg.Intervals {
		if d <= 0 {
			return fmt.Errorf("intervals must all be positive, got %s", d)
		}
	}
	if cfg.HistorySize < 0 {
		return fmt.Errorf("history_size can't be negative, got %d", cfg.HistorySize)
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout can't be negative, got %s", cfg.Timeout)
	}
	return nil
}
