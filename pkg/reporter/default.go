package reporter

import "sync"

// The process-wide reporter. Configure stores the settings; the transport
// is dialed on the first emission and reused afterwards.
var (
	defaultMu       sync.Mutex
	defaultConfig   Config
	defaultOptions  []Option
	defaultReporter *Reporter
)

// Configure sets the process-wide collector settings. It may be called
// more than once; the last call wins and the cached reporter is closed.
//
// A *Reporter obtained from Default before the call is closed too: its
// later emissions go to a closed transport and are lost. Call Default
// again after reconfiguring instead of holding on to the old value.
func Configure(host, port, projectName string, opts ...Option) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultConfig = Config{Host: host, Port: port, ProjectName: projectName}
	defaultOptions = opts
	if defaultReporter != nil {
		defaultReporter.Close()
		defaultReporter = nil
	}
}

// Default returns the process-wide Reporter, creating it on first use.
func Default() (*Reporter, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if err := defaultConfig.Validate(); err != nil {
		return nil, err
	}
	if defaultReporter == nil {
		r, err := New(defaultConfig, defaultOptions...)
		if err != nil {
			return nil, err
		}
		defaultReporter = r
	}
	return defaultReporter, nil
}

// Client returns the process-wide transport.
func Client() (Transport, error) {
	r, err := Default()
	if err != nil {
		return nil, err
	}
	return r.Transport(), nil
}

// Incr adds count to a counter on the process-wide reporter.
func Incr(name string, count int, tags Tags) error {
	r, err := Default()
	if err != nil {
		return err
	}
	r.Incr(name, count, tags)
	return nil
}

// Gauge sets a gauge on the process-wide reporter.
func Gauge(name string, value interface{}, tags Tags) error {
	r, err := Default()
	if err != nil {
		return err
	}
	r.Gauge(name, value, tags)
	return nil
}

// Timing records a timing on the process-wide reporter.
func Timing(name string, seconds float64, tags Tags) error {
	r, err := Default()
	if err != nil {
		return err
	}
	r.Timing(name, seconds, tags)
	return nil
}

// TimeBlock runs fn under a scoped timing on the process-wide reporter.
// The configuration is checked before fn runs.
func TimeBlock(name string, tags Tags, fn func() error) error {
	r, err := Default()
	if err != nil {
		return err
	}
	return r.TimeBlock(name, tags, fn)
}

// Wrap wraps fn so each call is timed on the process-wide reporter.
func Wrap(name string, tags Tags, fn func() error) func() error {
	return func() error {
		return TimeBlock(name, tags, fn)
	}
}
