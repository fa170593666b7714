package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/influxstatsd/pkg/reporter"
)

func newIncrCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "incr NAME [COUNT]",
		Short: "Increment a counter",
		Long: `Increment a counter by COUNT (default 1).

Example:
  influxstatsd incr jobs.processed 3 -t queue=default`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runIncr,
	}
}

func runIncr(cmd *cobra.Command, args []string) error {
	count := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid count '%s': must be an integer", args[1])
		}
		count = n
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	s.reporter.Incr(args[0], count, s.tags)
	s.report(cmd, "incr", args[0], count)
	return nil
}

func newGaugeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gauge NAME VALUE",
		Short: "Set a gauge",
		Long: `Set a gauge to VALUE. VALUE must be an integer or decimal number.

Example:
  influxstatsd gauge queue.depth 42 -t queue=default`,
		Args: cobra.ExactArgs(2),
		RunE: runGauge,
	}
}

func runGauge(cmd *cobra.Command, args []string) error {
	value, err := parseGaugeValue(args[1])
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	s.reporter.Gauge(args[0], value, s.tags)
	s.report(cmd, "gauge", args[0], value)
	return nil
}

// parseGaugeValue returns an int64 for integer input, otherwise the float
// the reporter would send.
func parseGaugeValue(raw string) (interface{}, error) {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i, nil
	}
	v, err := reporter.GaugeValue(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid gauge value '%s': must be a number", raw)
	}
	return v, nil
}

func newTimingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timing NAME SECONDS",
		Short: "Record a timing",
		Long: `Record a timing given in seconds. The value is sent in whole
milliseconds, truncated.

Example:
  influxstatsd timing backup.duration 12.5 -t target=s3`,
		Args: cobra.ExactArgs(2),
		RunE: runTiming,
	}
}

func runTiming(cmd *cobra.Command, args []string) error {
	seconds, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid seconds '%s': must be a number", args[1])
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	s.reporter.Timing(args[0], seconds, s.tags)
	s.report(cmd, "timing", args[0], fmt.Sprintf("%dms", reporter.Milliseconds(seconds)))
	return nil
}
