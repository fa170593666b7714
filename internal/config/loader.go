package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/influxstatsd/pkg/reporter"
)

// Environment variables that override file values.
const (
	EnvHost    = reporter.SettingHost
	EnvPort    = reporter.SettingPort
	EnvProject = "PROJECT_NAME"
)

// LoadConfig loads a configuration from a file.
//
// The file format is determined by extension:
//   - .yaml, .yml -> YAML
//   - .json -> JSON
//
// The document is checked against the configuration schema before it is
// decoded, then validated.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return ParseConfig(data, path)
}

// ParseConfig parses configuration data.
//
// The format is determined by the file extension in path, or defaults to YAML
// if the path is empty or has an unknown extension.
func ParseConfig(data []byte, path string) (*Config, error) {
	isJSON := strings.ToLower(filepath.Ext(path)) == ".json"

	var doc interface{}
	if isJSON {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	if doc != nil {
		if err := ValidateSchema(doc); err != nil {
			return nil, fmt.Errorf("config does not match schema: %w", err)
		}
	}

	var config Config
	if isJSON {
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to decode JSON config: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to decode YAML config: %w", err)
		}
	}

	ApplyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// ApplyDefaults fills optional settings left empty.
func ApplyDefaults(c *Config) {
	if c.Statsd.Network == "" {
		c.Statsd.Network = "udp"
	}
	if c.Tags == nil {
		c.Tags = make(map[string]string)
	}
}

// ApplyEnv overrides host, port and project with the values returned by
// lookup, typically os.LookupEnv. Empty values are ignored.
func ApplyEnv(c *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvHost); ok && v != "" {
		c.Statsd.Host = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		c.Statsd.Port = Port(v)
	}
	if v, ok := lookup(EnvProject); ok && v != "" {
		c.Project = v
	}
}

// Reporter returns the core reporter settings.
func (c *Config) Reporter() reporter.Config {
	return reporter.Config{
		Host:        c.Statsd.Host,
		Port:        string(c.Statsd.Port),
		ProjectName: c.Project,
	}
}

// ReporterOptions returns the reporter options implied by the config.
func (c *Config) ReporterOptions() []reporter.Option {
	opts := []reporter.Option{
		reporter.WithFlushPeriod(c.Statsd.FlushPeriod.GetDuration(100 * time.Millisecond)),
	}
	if c.Statsd.Network != "" {
		opts = append(opts, reporter.WithNetwork(c.Statsd.Network))
	}
	if c.Hostname != "" {
		opts = append(opts, reporter.WithHostname(c.Hostname))
	}
	return opts
}

// DefaultTags returns the configured tags as reporter tags.
func (c *Config) DefaultTags() reporter.Tags {
	tags := make(reporter.Tags, len(c.Tags))
	for k, v := range c.Tags {
		tags[k] = v
	}
	return tags
}
