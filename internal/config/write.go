package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with durations as strings so the written
// file reads "5s" rather than nanoseconds.
type fileConfig struct {
	Version     int         `yaml:"version"`
	Endpoint    string      `yaml:"endpoint"`
	Path        string      `yaml:"path"`
	Interval    string      `yaml:"interval"`
	Intervals   []string    `yaml:"intervals,omitempty"`
	HistorySize int         `yaml:"history_size"`
	Timeout     string      `yaml:"timeout,omitempty"`
	Serve       ServeConfig `yaml:"serve"`
	Chart       ChartConfig `yaml:"chart"`
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	fc := fileConfig{
		Version:     cfg.Version,
		Endpoint:    cfg.Endpoint,
		Path:        cfg.Path,
		Interval:    cfg.Interval.String(),
		Intervals:   durationStrings(cfg.Intervals),
		HistorySize: cfg.HistorySize,
		Serve:       cfg.Serve,
		Chart:       cfg.Chart,
	}
	if cfg.Timeout > 0 {
		fc.Timeout = cfg.Timeout.String()
	}

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&fc); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return []byte(buf.String()), nil
}

// Write saves cfg to path, replacing any existing file.
func Write(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SetValue updates a single top-level scalar key in an existing config file.
// It preserves the existing YAML structure and comments, and appends the key
// when it is missing.
func SetValue(configPath, key, value string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse as yaml.Node to preserve structure
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return fmt.Errorf("invalid YAML document structure")
	}

	docNode := root.Content[0]
	if docNode.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping at document root")
	}

	if valueNode := findMapValue(docNode, key); valueNode != nil {
		if valueNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("'%s' is not a scalar value", key)
		}
		valueNode.Value = value
		valueNode.Tag = ""
		valueNode.Style = 0
	} else {
		docNode.Content = append(docNode.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: value},
		)
	}

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()

	if err := os.WriteFile(configPath, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return valueNode
		}
	}

	return nil
}

func durationStrings(ds []time.Duration) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.String())
	}
	return out
}
