package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wesleyorama2/influxstatsd/internal/pacer"
	"github.com/wesleyorama2/influxstatsd/internal/stats"
)

// PrintSummary writes a table of the recorder snapshot to w.
func PrintSummary(w io.Writer, snap *stats.Snapshot, scheme *ColorScheme) {
	if scheme == nil {
		scheme = NoColorScheme()
	}

	fmt.Fprintf(w, "\n%s %s\n", scheme.Highlight.Sprint("Summary"),
		scheme.Muted.Sprintf("(%d samples in %s)", snap.Samples, formatDuration(snap.Elapsed)))
	fmt.Fprintln(w, strings.Repeat("─", 60))

	if len(snap.Counters) > 0 {
		fmt.Fprintln(w, scheme.Kind.Sprint("Counters"))
		for _, c := range snap.Counters {
			fmt.Fprintf(w, "  %s  %s\n", FormatBucket(c.Bucket, scheme), scheme.Value.Sprint(c.Total))
		}
	}

	if len(snap.Gauges) > 0 {
		fmt.Fprintln(w, scheme.Kind.Sprint("Gauges"))
		for _, g := range snap.Gauges {
			fmt.Fprintf(w, "  %s  %s\n", FormatBucket(g.Bucket, scheme), scheme.Value.Sprint(g.Value))
		}
	}

	if len(snap.Timings) > 0 {
		fmt.Fprintln(w, scheme.Kind.Sprint("Timings"))
		for _, t := range snap.Timings {
			fmt.Fprintf(w, "  %s\n", FormatBucket(t.Bucket, scheme))
			fmt.Fprintf(w, "    count=%d min=%s p50=%s p90=%s p95=%s p99=%s max=%s\n",
				t.Count,
				formatDuration(t.Min),
				formatDuration(t.P50),
				formatDuration(t.P90),
				formatDuration(t.P95),
				formatDuration(t.P99),
				formatDuration(t.Max),
			)
		}
	}
}

// PrintPacing writes the pacer schedule counters to w. Unpaced runs print
// nothing.
func PrintPacing(w io.Writer, st pacer.Stats, scheme *ColorScheme) {
	if st.Interval == 0 {
		return
	}
	if scheme == nil {
		scheme = NoColorScheme()
	}

	fmt.Fprintln(w, scheme.Kind.Sprint("Pacing"))
	fmt.Fprintf(w, "  runs=%d interval=%s waited=%s\n",
		st.Runs,
		formatDuration(st.Interval),
		formatDuration(st.TotalWait),
	)
}

// formatDuration formats a duration for human readability.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}
