package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/influxstatsd/internal/output"
)

var version = "0.1.0"

// ExitError carries the exit code of a failed child process.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with status %d", e.Code)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "influxstatsd",
		Short:   "Emit tagged statsd metrics for InfluxDB",
		Version: version,
		Long: `influxstatsd sends counters, gauges and timings to a statsd collector
(such as Telegraf) using InfluxDB-style tags in the metric name:

  project.metric,key=value,...,host=hostname

Collector settings come from a config file, the STATSD_INFLUX_HOST,
STATSD_INFLUX_PORT and PROJECT_NAME environment variables, or flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			// If no subcommand is provided, print help
			cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to a YAML or JSON config file")
	flags.String("settings", "", "Path to an application settings JSON document (best effort)")
	flags.String("settings-prefix", "", "gjson path of the settings object inside --settings")
	flags.String("host", "", "Collector host (overrides "+envHost+")")
	flags.String("port", "", "Collector port (overrides "+envPort+")")
	flags.String("project", "", "Project name prefix (overrides "+envProject+")")
	flags.String("hostname", "", "Override the host tag")
	flags.StringArrayP("tag", "t", nil, "Tag in key=value form (repeatable)")
	flags.Bool("dry-run", false, "Print statsd lines instead of sending them")
	flags.Bool("no-color", false, "Disable colored output")
	flags.BoolP("verbose", "v", false, "Print each emitted metric")

	rootCmd.AddCommand(newIncrCmd())
	rootCmd.AddCommand(newGaugeCmd())
	rootCmd.AddCommand(newTimingCmd())
	rootCmd.AddCommand(newExecCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		noColor := !output.UseColors(os.Stderr, false)
		fmt.Fprintf(os.Stderr, "%s %v\n", output.ErrorIcon(noColor), err)
		return 1
	}
	return 0
}
