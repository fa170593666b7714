package cli

import (
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execArgs places the shared flags before "--" so they are not passed to
// the child command.
func execArgs(args ...string) []string {
	return append(append([]string{"exec"}, baseArgs...), args...)
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExec_RecordsTimingOnSuccess(t *testing.T) {
	requireShell(t)
	stubEnv(t, map[string]string{envHost: "localhost", envPort: "8125", envProject: "p"})

	stdout, _, err := runCLI(t, execArgs("job", "-t", "kind=test", "--", "sh", "-c", "echo hello")...)
	require.NoError(t, err)

	assert.Contains(t, stdout, "hello\n")
	assert.Regexp(t, `p\.job,kind=test,host=my_host:\d+\|ms\n`, stdout)
}

func TestExec_FailureRecordsNothing(t *testing.T) {
	requireShell(t)
	stubEnv(t, map[string]string{envHost: "localhost", envPort: "8125", envProject: "p"})

	stdout, _, err := runCLI(t, execArgs("job", "--", "sh", "-c", "exit 3")...)
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Code)
	assert.NotContains(t, stdout, "|ms")
}

func TestExec_RepeatWithSummary(t *testing.T) {
	requireShell(t)
	stubEnv(t, map[string]string{envHost: "localhost", envPort: "8125", envProject: "p"})

	stdout, stderr, err := runCLI(t, execArgs("job", "--repeat", "3", "--summary", "--", "sh", "-c", "true")...)
	require.NoError(t, err)

	assert.Regexp(t, `(?s)(\|ms\n.*){3}`, stdout)
	assert.Contains(t, stderr, "Timings")
	assert.Contains(t, stderr, "count=3")
	assert.NotContains(t, stderr, "Pacing")
}

func TestExec_InvalidRepeat(t *testing.T) {
	stubEnv(t, map[string]string{envHost: "localhost", envPort: "8125", envProject: "p"})

	_, _, err := runCLI(t, execArgs("job", "--repeat", "0", "--", "true")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repeat must be at least 1")
}

func TestExec_CommandNotFound(t *testing.T) {
	stubEnv(t, map[string]string{envHost: "localhost", envPort: "8125", envProject: "p"})

	_, _, err := runCLI(t, execArgs("job", "--", "definitely-not-a-command-xyz")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run")
}

func TestExec_Rate(t *testing.T) {
	requireShell(t)
	stubEnv(t, map[string]string{envHost: "localhost", envPort: "8125", envProject: "p"})

	start := time.Now()
	stdout, stderr, err := runCLI(t, execArgs("job", "-n", "3", "--rate", "20", "--summary", "--", "sh", "-c", "true")...)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Pacing")
	assert.Contains(t, stderr, "runs=3 interval=50ms")

	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
	assert.Equal(t, 3, strings.Count(stdout, "|ms\n"))

	_, _, err = runCLI(t, execArgs("job", "--rate=-1", "--", "true")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate must not be negative")
}
