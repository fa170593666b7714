package reporter

import (
	"errors"
	"fmt"
	"net"
)

// Setting names reported by MissingConfigurationError.
const (
	SettingHost = "STATSD_INFLUX_HOST"
	SettingPort = "STATSD_INFLUX_PORT"
)

// ErrMissingConfiguration is matched by every error returned when the
// collector host or port is not set.
var ErrMissingConfiguration = errors.New("missing configuration")

// MissingConfigurationError names the setting that was empty.
type MissingConfigurationError struct {
	Setting string
}

func (e *MissingConfigurationError) Error() string {
	return fmt.Sprintf("Missing %s setting", e.Setting)
}

// Is reports whether target is ErrMissingConfiguration.
func (e *MissingConfigurationError) Is(target error) bool {
	return target == ErrMissingConfiguration
}

// Config holds the collector address and the project prefix.
type Config struct {
	// Host is the collector host name or IP.
	Host string

	// Port is the collector port. It is kept as a string so that values
	// sourced from the environment pass through untouched.
	Port string

	// ProjectName prefixes every metric name.
	ProjectName string
}

// Validate checks the host first, then the port.
func (c Config) Validate() error {
	if c.Host == "" {
		return &MissingConfigurationError{Setting: SettingHost}
	}
	if c.Port == "" {
		return &MissingConfigurationError{Setting: SettingPort}
	}
	return nil
}

// Address returns host:port.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}
