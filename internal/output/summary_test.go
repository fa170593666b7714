package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wesleyorama2/influxstatsd/internal/pacer"
	"github.com/wesleyorama2/influxstatsd/internal/stats"
)

func TestPrintSummary(t *testing.T) {
	rec := stats.NewRecorder(nil)
	rec.Count("p.jobs,host=h", 3)
	rec.Gauge("p.depth,host=h", 9)
	rec.Timing("p.run,host=h", int64(120))

	var buf bytes.Buffer
	PrintSummary(&buf, rec.GetSnapshot(), nil)
	out := buf.String()

	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "(3 samples in")
	assert.Contains(t, out, "Counters")
	assert.Contains(t, out, "p.jobs,host=h  3")
	assert.Contains(t, out, "Gauges")
	assert.Contains(t, out, "p.depth,host=h  9")
	assert.Contains(t, out, "Timings")
	assert.Contains(t, out, "count=1 min=120ms")
}

func TestPrintPacing(t *testing.T) {
	var buf bytes.Buffer
	PrintPacing(&buf, pacer.Stats{Runs: 3, Interval: 500 * time.Millisecond, TotalWait: time.Second}, nil)
	assert.Equal(t, "Pacing\n  runs=3 interval=500ms waited=1.00s\n", buf.String())

	buf.Reset()
	PrintPacing(&buf, pacer.New(0).Stats(), nil)
	assert.Empty(t, buf.String())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: 500 * time.Microsecond, want: "500µs"},
		{in: 250 * time.Millisecond, want: "250ms"},
		{in: 1500 * time.Millisecond, want: "1.50s"},
		{in: 90 * time.Second, want: "1m30s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDuration(tt.in))
		})
	}
}
