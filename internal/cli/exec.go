package cli

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/influxstatsd/internal/output"
	"github.com/wesleyorama2/influxstatsd/internal/pacer"
	"github.com/wesleyorama2/influxstatsd/pkg/reporter"
)

func newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec NAME -- COMMAND [ARGS...]",
		Short: "Run a command and record how long it took",
		Long: `Run COMMAND and record its wall-clock duration as a timing named NAME.

A timing is only recorded when the command succeeds. A failing command
records nothing and influxstatsd exits with the command's status.

Example:
  influxstatsd exec backup.duration -t target=s3 -- ./backup.sh
  influxstatsd exec build.duration --repeat 5 --summary -- make build
  influxstatsd exec probe.latency -n 60 --rate 1 -- curl -sf http://localhost/health`,
		Args: cobra.MinimumNArgs(2),
		RunE: runExec,
	}

	cmd.Flags().IntP("repeat", "n", 1, "Run the command N times, stopping at the first failure")
	cmd.Flags().Float64("rate", 0, "Start at most this many runs per second (0 runs back to back)")
	cmd.Flags().Bool("summary", false, "Print a percentile summary of the recorded timings")

	return cmd
}

func runExec(cmd *cobra.Command, args []string) error {
	repeat, _ := cmd.Flags().GetInt("repeat")
	if repeat < 1 {
		return fmt.Errorf("repeat must be at least 1")
	}
	rate, _ := cmd.Flags().GetFloat64("rate")
	if rate < 0 {
		return fmt.Errorf("rate must not be negative")
	}
	summary, _ := cmd.Flags().GetBool("summary")

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	name := args[0]
	run := reporter.Timed(s.reporter, name, s.tags, func() error {
		child := exec.CommandContext(cmd.Context(), args[1], args[2:]...)
		child.Stdin = cmd.InOrStdin()
		child.Stdout = cmd.OutOrStdout()
		child.Stderr = cmd.ErrOrStderr()
		return child.Run()
	})

	p := pacer.New(rate)

	var runErr error
	for i := 0; i < repeat; i++ {
		if runErr = p.Wait(cmd.Context()); runErr != nil {
			break
		}
		if runErr = run(); runErr != nil {
			break
		}
		s.report(cmd, "timing", name, fmt.Sprintf("run %d/%d", i+1, repeat))
	}

	if summary {
		output.PrintSummary(cmd.ErrOrStderr(), s.recorder.GetSnapshot(), s.scheme)
		output.PrintPacing(cmd.ErrOrStderr(), p.Stats(), s.scheme)
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to run %s: %w", args[1], runErr)
	}
	return nil
}
