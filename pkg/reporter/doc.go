// Package reporter emits counters, gauges and timings to a statsd collector
// using InfluxDB-style tags embedded in the bucket name.
//
// Every metric is rendered as
//
//	{project}.{metric},{k1}={v1},{k2}={v2},...,host={hostname}
//
// where caller tags are sorted by key and the local host name is always
// appended last. The bucket is then handed to the transport (by default a
// gopkg.in/alexcesaro/statsd.v2 client), which owns the wire protocol.
//
// # Basic Usage
//
//	r, err := reporter.New(reporter.Config{
//	    Host:        "localhost",
//	    Port:        "8125",
//	    ProjectName: "billing",
//	})
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	r.Incr("invoices.created", 1, reporter.Tags{"plan": "pro"})
//	r.Gauge("queue.depth", 42, nil)
//
//	err = r.TimeBlock("invoices.render", nil, func() error {
//	    return render(invoice)
//	})
//
// # Process-wide Reporter
//
// Applications that prefer a single shared client call Configure once at
// startup and use the package-level helpers afterwards:
//
//	reporter.Configure("localhost", "8125", "billing")
//	if err := reporter.Incr("invoices.created", 1, nil); err != nil {
//	    // reporter.ErrMissingConfiguration
//	}
//
// # Timing Semantics
//
// Timings are recorded in whole milliseconds, truncated (1.2996s is sent as
// 1299). Scoped timings only emit when the guarded block succeeds; a block
// that returns an error or panics records nothing.
package reporter
