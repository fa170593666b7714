package reporter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Reporter renders metric names and forwards samples to a Transport.
//
// A Reporter is safe for concurrent use when its Transport is.
type Reporter struct {
	project   string
	defaults  []Tag
	transport Transport
	onError   func(error)
	now       func() time.Time
}

// Option configures a Reporter.
type Option func(*options)

type options struct {
	transport   Transport
	wrappers    []func(Transport) Transport
	hostname    *string
	defaultTags []Tag
	tagsSet     bool
	now         func() time.Time
	tc          transportConfig
}

// WithTransport uses t instead of dialing a statsd client.
func WithTransport(t Transport) Option {
	return func(o *options) {
		o.transport = t
	}
}

// WithTransportWrapper decorates the transport, whether dialed or injected.
// Wrappers are applied in the order given.
func WithTransportWrapper(wrap func(Transport) Transport) Option {
	return func(o *options) {
		o.wrappers = append(o.wrappers, wrap)
	}
}

// WithHostname overrides the detected host name. Dots are replaced with
// dashes as for the detected name.
func WithHostname(name string) Option {
	return func(o *options) {
		o.hostname = &name
	}
}

// WithDefaultTags replaces the default tag list appended to every metric.
// Called with no tags it removes the host tag as well.
func WithDefaultTags(tags ...Tag) Option {
	return func(o *options) {
		o.defaultTags = tags
		o.tagsSet = true
	}
}

// WithErrorHandler receives transport errors. The default logs them.
func WithErrorHandler(h func(error)) Option {
	return func(o *options) {
		o.tc.errorHandler = h
	}
}

// WithFlushPeriod sets how often the statsd client flushes its buffer.
func WithFlushPeriod(d time.Duration) Option {
	return func(o *options) {
		o.tc.flushPeriod = d
	}
}

// WithNetwork selects "udp" or "tcp" for the statsd client.
func WithNetwork(network string) Option {
	return func(o *options) {
		o.tc.network = network
	}
}

// WithClock sets the time source used by scoped timings.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New validates cfg and builds a Reporter bound to the collector.
func New(cfg Config, opts ...Option) (*Reporter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{now: time.Now, tc: defaultTransportConfig()}
	for _, opt := range opts {
		opt(&o)
	}

	defaults := o.defaultTags
	if !o.tagsSet {
		host := hostname
		if o.hostname != nil {
			host = sanitizeHostname(*o.hostname)
		}
		defaults = []Tag{{Key: "host", Value: host}}
	}

	if o.tc.errorHandler == nil {
		o.tc.errorHandler = logTransportError
	}

	transport := o.transport
	if transport == nil {
		transport = newStatsdTransport(cfg.Address(), o.tc)
	}
	for _, wrap := range o.wrappers {
		transport = wrap(transport)
	}

	return &Reporter{
		project:   cfg.ProjectName,
		defaults:  defaults,
		transport: transport,
		onError:   o.tc.errorHandler,
		now:       o.now,
	}, nil
}

// MetricName renders the bucket for name and tags.
func (r *Reporter) MetricName(name string, tags Tags) string {
	return r.project + "." + name + "," + FormatTags(tags, r.defaults...)
}

// Incr adds count to the counter name.
func (r *Reporter) Incr(name string, count int, tags Tags) {
	r.transport.Count(r.MetricName(name, tags), count)
}

// Gauge sets the gauge name to value. Numeric values are passed to the
// transport as given; other values are parsed as a float from their string
// form. A value that does not parse is reported to the error handler and
// nothing is sent.
func (r *Reporter) Gauge(name string, value interface{}, tags Tags) {
	v, err := GaugeValue(value)
	if err != nil {
		r.onError(fmt.Errorf("gauge %s: %w", name, err))
		return
	}
	r.transport.Gauge(r.MetricName(name, tags), v)
}

// GaugeValue returns value unchanged when it is a Go numeric type the statsd
// wire encoder accepts, otherwise the float parsed from fmt.Sprint(value).
func GaugeValue(value interface{}) (interface{}, error) {
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return value, nil
	}

	raw := strings.TrimSpace(fmt.Sprint(value))
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("value %q is not numeric", raw)
	}
	return f, nil
}

// Timing records seconds as whole milliseconds, truncated.
func (r *Reporter) Timing(name string, seconds float64, tags Tags) {
	r.transport.Timing(r.MetricName(name, tags), Milliseconds(seconds))
}

// TimingDuration records d as whole milliseconds, truncated.
func (r *Reporter) TimingDuration(name string, d time.Duration, tags Tags) {
	r.Timing(name, d.Seconds(), tags)
}

// Transport returns the underlying transport.
func (r *Reporter) Transport() Transport {
	return r.transport
}

// Flush sends buffered samples.
func (r *Reporter) Flush() {
	r.transport.Flush()
}

// Close flushes and closes the transport.
func (r *Reporter) Close() {
	r.transport.Close()
}

// Milliseconds converts seconds to milliseconds using floor.
func Milliseconds(seconds float64) int64 {
	return int64(math.Floor(seconds * 1000))
}
