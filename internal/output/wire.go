package output

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/wesleyorama2/influxstatsd/pkg/reporter"
)

// Statsd type suffixes.
const (
	typeCount  = "c"
	typeGauge  = "g"
	typeTiming = "ms"
)

// WireWriter is a reporter.Transport that prints the statsd line each
// sample would produce instead of sending it. It backs --dry-run.
type WireWriter struct {
	mu     sync.Mutex
	w      io.Writer
	scheme *ColorScheme
}

// Ensure WireWriter satisfies reporter.Transport at compile time.
var _ reporter.Transport = (*WireWriter)(nil)

// NewWireWriter creates a WireWriter writing to w.
func NewWireWriter(w io.Writer, scheme *ColorScheme) *WireWriter {
	if scheme == nil {
		scheme = NoColorScheme()
	}
	return &WireWriter{w: w, scheme: scheme}
}

// Count implements reporter.Transport.
func (ww *WireWriter) Count(bucket string, n interface{}) {
	ww.write(bucket, n, typeCount)
}

// Gauge implements reporter.Transport.
func (ww *WireWriter) Gauge(bucket string, value interface{}) {
	ww.write(bucket, value, typeGauge)
}

// Timing implements reporter.Transport.
func (ww *WireWriter) Timing(bucket string, value interface{}) {
	ww.write(bucket, value, typeTiming)
}

// Flush implements reporter.Transport.
func (ww *WireWriter) Flush() {}

// Close implements reporter.Transport.
func (ww *WireWriter) Close() {}

// write prints one line. Values the statsd encoder cannot send are skipped
// so the dry run shows exactly what would reach the collector.
func (ww *WireWriter) write(bucket string, value interface{}, kind string) {
	value, err := reporter.GaugeValue(value)
	if err != nil {
		return
	}

	ww.mu.Lock()
	defer ww.mu.Unlock()

	fmt.Fprintf(ww.w, "%s:%s|%s\n",
		FormatBucket(bucket, ww.scheme),
		ww.scheme.Value.Sprint(value),
		ww.scheme.Kind.Sprint(kind),
	)
}

// FormatBucket colors the parts of a rendered bucket: project, metric and tags.
func FormatBucket(bucket string, scheme *ColorScheme) string {
	name, tags, hasTags := strings.Cut(bucket, ",")

	var sb strings.Builder
	if project, metric, ok := strings.Cut(name, "."); ok {
		sb.WriteString(scheme.Project.Sprint(project))
		sb.WriteByte('.')
		sb.WriteString(scheme.Metric.Sprint(metric))
	} else {
		sb.WriteString(scheme.Metric.Sprint(name))
	}

	if !hasTags {
		return sb.String()
	}
	sb.WriteByte(',')
	if tags == "" {
		return sb.String()
	}
	for i, pair := range strings.Split(tags, ",") {
		if i > 0 {
			sb.WriteByte(',')
		}
		key, value, _ := strings.Cut(pair, "=")
		sb.WriteString(scheme.TagKey.Sprint(key))
		sb.WriteByte('=')
		sb.WriteString(scheme.TagValue.Sprint(value))
	}
	return sb.String()
}
