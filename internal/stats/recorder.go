// Package stats mirrors emitted metrics into an in-process summary.
//
// A Recorder wraps a reporter.Transport: every sample is forwarded to the
// wrapped transport unchanged and also aggregated locally. Timings are kept
// in HDR histograms so percentiles are available without storing samples.
package stats

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/wesleyorama2/influxstatsd/pkg/reporter"
)

// RecorderConfig contains configuration for the recorder histograms.
type RecorderConfig struct {
	// HistogramMin is the lowest discernible timing in milliseconds (default: 1)
	HistogramMin int64

	// HistogramMax is the maximum recordable timing in milliseconds (default: 3600000 = 1 hour)
	HistogramMax int64

	// HistogramSigFigs is the number of significant figures (default: 3)
	HistogramSigFigs int
}

// DefaultRecorderConfig returns the default configuration.
func DefaultRecorderConfig() RecorderConfig {
	return RecorderConfig{
		HistogramMin:     1,
		HistogramMax:     3600000, // 1 hour in milliseconds
		HistogramSigFigs: 3,
	}
}

// Recorder aggregates counters, gauges and timings per bucket.
//
// # Thread Safety
//
// Recorder is safe for concurrent use. The sample counter is atomic and the
// per-bucket maps and histograms are protected by a mutex.
type Recorder struct {
	next   reporter.Transport
	config RecorderConfig

	mu       sync.Mutex
	counters map[string]int64
	gauges   map[string]interface{}
	timings  map[string]*hdrhistogram.Histogram

	samples atomic.Int64
	started time.Time
}

// Ensure Recorder satisfies reporter.Transport at compile time.
var _ reporter.Transport = (*Recorder)(nil)

// NewRecorder creates a Recorder forwarding to next. next may be nil.
func NewRecorder(next reporter.Transport) *Recorder {
	return NewRecorderWithConfig(next, DefaultRecorderConfig())
}

// NewRecorderWithConfig creates a Recorder with custom histogram bounds.
func NewRecorderWithConfig(next reporter.Transport, config RecorderConfig) *Recorder {
	return &Recorder{
		next:     next,
		config:   config,
		counters: make(map[string]int64),
		gauges:   make(map[string]interface{}),
		timings:  make(map[string]*hdrhistogram.Histogram),
		started:  time.Now(),
	}
}

// Count implements reporter.Transport.
func (r *Recorder) Count(bucket string, n interface{}) {
	if v, ok := toInt64(n); ok {
		r.mu.Lock()
		r.counters[bucket] += v
		r.mu.Unlock()
	}
	r.samples.Add(1)

	if r.next != nil {
		r.next.Count(bucket, n)
	}
}

// Gauge implements reporter.Transport.
func (r *Recorder) Gauge(bucket string, value interface{}) {
	r.mu.Lock()
	r.gauges[bucket] = value
	r.mu.Unlock()
	r.samples.Add(1)

	if r.next != nil {
		r.next.Gauge(bucket, value)
	}
}

// Timing implements reporter.Transport.
// NOTE: HDR histogram RecordValue is NOT thread-safe, so we must hold a lock.
func (r *Recorder) Timing(bucket string, value interface{}) {
	if ms, ok := toInt64(value); ok {
		// Clamp to valid range
		if ms < 0 {
			ms = 0
		}
		if ms > r.config.HistogramMax {
			ms = r.config.HistogramMax
		}

		r.mu.Lock()
		hist, exists := r.timings[bucket]
		if !exists {
			hist = hdrhistogram.New(r.config.HistogramMin, r.config.HistogramMax, r.config.HistogramSigFigs)
			r.timings[bucket] = hist
		}
		_ = hist.RecordValue(ms)
		r.mu.Unlock()
	}
	r.samples.Add(1)

	if r.next != nil {
		r.next.Timing(bucket, value)
	}
}

// Flush implements reporter.Transport.
func (r *Recorder) Flush() {
	if r.next != nil {
		r.next.Flush()
	}
}

// Close implements reporter.Transport.
func (r *Recorder) Close() {
	if r.next != nil {
		r.next.Close()
	}
}

// GetSnapshot returns a point-in-time copy of all aggregates, sorted by bucket.
func (r *Recorder) GetSnapshot() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := &Snapshot{
		Samples:   r.samples.Load(),
		Elapsed:   time.Since(r.started),
		Timestamp: time.Now(),
	}

	for bucket, v := range r.counters {
		snap.Counters = append(snap.Counters, CounterStat{Bucket: bucket, Total: v})
	}
	for bucket, v := range r.gauges {
		snap.Gauges = append(snap.Gauges, GaugeStat{Bucket: bucket, Value: v})
	}
	for bucket, hist := range r.timings {
		snap.Timings = append(snap.Timings, TimingStat{
			Bucket: bucket,
			Min:    msDuration(hist.Min()),
			Max:    msDuration(hist.Max()),
			Mean:   time.Duration(hist.Mean() * float64(time.Millisecond)),
			StdDev: time.Duration(hist.StdDev() * float64(time.Millisecond)),
			P50:    msDuration(hist.ValueAtQuantile(50)),
			P90:    msDuration(hist.ValueAtQuantile(90)),
			P95:    msDuration(hist.ValueAtQuantile(95)),
			P99:    msDuration(hist.ValueAtQuantile(99)),
			Count:  hist.TotalCount(),
		})
	}

	sort.Slice(snap.Counters, func(i, j int) bool { return snap.Counters[i].Bucket < snap.Counters[j].Bucket })
	sort.Slice(snap.Gauges, func(i, j int) bool { return snap.Gauges[i].Bucket < snap.Gauges[j].Bucket })
	sort.Slice(snap.Timings, func(i, j int) bool { return snap.Timings[i].Bucket < snap.Timings[j].Bucket })

	return snap
}

// Snapshot contains a point-in-time view of all aggregates.
type Snapshot struct {
	Samples   int64         `json:"samples"`
	Counters  []CounterStat `json:"counters,omitempty"`
	Gauges    []GaugeStat   `json:"gauges,omitempty"`
	Timings   []TimingStat  `json:"timings,omitempty"`
	Elapsed   time.Duration `json:"elapsed"`
	Timestamp time.Time     `json:"timestamp"`
}

// CounterStat is the running total of a counter bucket.
type CounterStat struct {
	Bucket string `json:"bucket"`
	Total  int64  `json:"total"`
}

// GaugeStat is the last value set on a gauge bucket.
type GaugeStat struct {
	Bucket string      `json:"bucket"`
	Value  interface{} `json:"value"`
}

// TimingStat contains timing statistics for one bucket.
type TimingStat struct {
	Bucket string        `json:"bucket"`
	Min    time.Duration `json:"min"`
	Max    time.Duration `json:"max"`
	Mean   time.Duration `json:"mean"`
	StdDev time.Duration `json:"stdDev"`
	P50    time.Duration `json:"p50"`
	P90    time.Duration `json:"p90"`
	P95    time.Duration `json:"p95"`
	P99    time.Duration `json:"p99"`
	Count  int64         `json:"count"`
}

func msDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// toInt64 converts the numeric values the reporter emits.
func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float32:
		return int64(n), true
	case float64:
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	case fmt.Stringer:
		i, err := strconv.ParseInt(n.String(), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}
