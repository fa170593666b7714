package reporter

import (
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/alexcesaro/statsd.v2"
)

// Transport sends rendered buckets to the collector.
type Transport interface {
	// Count adds n to a counter.
	Count(bucket string, n interface{})

	// Gauge sets a gauge to value.
	Gauge(bucket string, value interface{})

	// Timing records a duration in milliseconds.
	Timing(bucket string, value interface{})

	// Flush sends any buffered samples.
	Flush()

	// Close flushes and releases the connection.
	Close()
}

// Ensure the statsd client satisfies Transport at compile time.
var _ Transport = (*statsd.Client)(nil)

// transportConfig collects the statsd client settings exposed as options.
type transportConfig struct {
	network      string
	flushPeriod  time.Duration
	errorHandler func(error)
}

func defaultTransportConfig() transportConfig {
	return transportConfig{
		network:      "udp",
		flushPeriod:  100 * time.Millisecond,
		errorHandler: logTransportError,
	}
}

// newStatsdTransport dials the collector at addr. When the collector cannot
// be reached the statsd client comes back muted; the error goes to the
// error handler and the muted client is kept so emissions become no-ops.
func newStatsdTransport(addr string, tc transportConfig) Transport {
	client, err := statsd.New(
		statsd.Address(addr),
		statsd.Network(tc.network),
		statsd.FlushPeriod(tc.flushPeriod),
		statsd.ErrorHandler(tc.errorHandler),
	)
	if err != nil {
		tc.errorHandler(fmt.Errorf("statsd collector %s unreachable: %w", addr, err))
	}
	return client
}

func logTransportError(err error) {
	slog.Warn("statsd transport error", slog.String("error", err.Error()))
}
