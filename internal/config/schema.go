package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration for the influxstatsd tool.
//
// Example:
//
//	statsd:
//	  host: localhost
//	  port: 8125
//	project: billing
//	tags:
//	  env: prod
type Config struct {
	// Statsd holds the collector connection settings.
	Statsd StatsdConfig `json:"statsd" yaml:"statsd"`

	// Project prefixes every metric name.
	Project string `json:"project,omitempty" yaml:"project,omitempty"`

	// Hostname overrides the detected host tag (optional).
	Hostname string `json:"hostname,omitempty" yaml:"hostname,omitempty"`

	// Tags are merged into every metric emitted by the CLI.
	Tags map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// StatsdConfig contains the collector connection settings.
type StatsdConfig struct {
	// Host is the collector host name or IP.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the collector port, written as a number or a string.
	Port Port `json:"port,omitempty" yaml:"port,omitempty"`

	// Network is "udp" (default) or "tcp".
	Network string `json:"network,omitempty" yaml:"network,omitempty"`

	// FlushPeriod is how often buffered samples are sent (e.g. "100ms").
	FlushPeriod Duration `json:"flushPeriod,omitempty" yaml:"flushPeriod,omitempty"`
}

// Port is a collector port that accepts both numbers and strings.
type Port string

// MarshalJSON implements json.Marshaler.
func (p Port) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Port) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = Port(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("port must be a number or a string: %w", err)
	}
	*p = Port(n.String())
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Port) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("port must be a scalar, got %s", nodeKind(node.Kind))
	}
	*p = Port(strings.TrimSpace(node.Value))
	return nil
}

// Int returns the port as an integer.
func (p Port) Int() (int, error) {
	return strconv.Atoi(string(p))
}

func nodeKind(k yaml.Kind) string {
	switch k {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}

// Duration is a time.Duration that can be unmarshaled from JSON/YAML strings.
type Duration time.Duration

// GetDuration returns the duration or a default if empty.
func (d Duration) GetDuration(defaultValue time.Duration) time.Duration {
	if d == 0 {
		return defaultValue
	}
	return time.Duration(d)
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	// Remove quotes if present
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" || s == "null" {
		*d = 0
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	if s == "" {
		*d = 0
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// String returns the duration as a string.
func (d Duration) String() string {
	return time.Duration(d).String()
}
