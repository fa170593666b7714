package reporter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetDefault(t *testing.T) {
	t.Helper()
	reset := func() {
		defaultMu.Lock()
		defer defaultMu.Unlock()
		defaultConfig = Config{}
		defaultOptions = nil
		defaultReporter = nil
	}
	reset()
	t.Cleanup(reset)
}

func TestDefault_Unconfigured(t *testing.T) {
	resetDefault(t)

	operations := map[string]func() error{
		"incr":   func() error { return Incr("m", 1, nil) },
		"gauge":  func() error { return Gauge("m", 1, nil) },
		"timing": func() error { return Timing("m", 1, nil) },
		"block":  func() error { return TimeBlock("m", nil, func() error { return nil }) },
		"wrap":   func() error { return Wrap("m", nil, func() error { return nil })() },
		"client": func() error { _, err := Client(); return err },
	}

	for name, op := range operations {
		t.Run(name, func(t *testing.T) {
			err := op()
			assert.True(t, errors.Is(err, ErrMissingConfiguration), "got %v", err)
		})
	}
}

func TestDefault_EmptyPort(t *testing.T) {
	resetDefault(t)
	Configure("localhost", "", "my_project", WithTransport(&mockTransport{}))

	err := Incr("m", 1, nil)

	var mce *MissingConfigurationError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, SettingPort, mce.Setting)
}

func TestDefault_EndToEnd(t *testing.T) {
	resetDefault(t)
	mt := &mockTransport{}
	Configure("localhost", "8125", "my_project", WithTransport(mt), WithHostname("my_host"))

	require.NoError(t, Incr("test.metric", 2, Tags{"source": "my_source", "tag": "tag1"}))

	got := mt.last(t)
	assert.Equal(t, "count", got.kind)
	assert.Equal(t, "my_project.test.metric,source=my_source,tag=tag1,host=my_host", got.bucket)
	assert.Equal(t, 2, got.value)
}

func TestDefault_ClientIsCached(t *testing.T) {
	resetDefault(t)
	mt := &mockTransport{}
	Configure("localhost", "8125", "p", WithTransport(mt))

	first, err := Client()
	require.NoError(t, err)
	second, err := Client()
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestDefault_ReconfigureLastWins(t *testing.T) {
	resetDefault(t)
	first := &mockTransport{}
	second := &mockTransport{}

	Configure("localhost", "8125", "old", WithTransport(first), WithHostname("h"))
	require.NoError(t, Gauge("g", 1, nil))

	Configure("localhost", "8125", "new", WithTransport(second), WithHostname("h"))
	require.NoError(t, Gauge("g", 2, nil))

	assert.True(t, first.closed, "previous client should be closed")
	assert.Equal(t, "old.g,host=h", first.last(t).bucket)
	assert.Equal(t, "new.g,host=h", second.last(t).bucket)
}

func TestDefault_WrapSkipsOnError(t *testing.T) {
	resetDefault(t)
	mt := &mockTransport{}
	Configure("localhost", "8125", "p", WithTransport(mt), WithHostname("h"))
	boom := errors.New("boom")

	err := Wrap("job", nil, func() error { return boom })()

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, mt.calls)

	require.NoError(t, Timing("job", 0.5, nil))
	assert.Equal(t, int64(500), mt.last(t).value)
}

func TestDefault_ReconfigureClosesHeldReporter(t *testing.T) {
	resetDefault(t)
	first := &mockTransport{}
	Configure("localhost", "8125", "p", WithTransport(first))

	held, err := Default()
	require.NoError(t, err)

	Configure("localhost", "8125", "p", WithTransport(&mockTransport{}))

	assert.True(t, first.closed)
	current, err := Default()
	require.NoError(t, err)
	assert.NotSame(t, held, current)
}

func TestDefault_CollectorDownIsNotAnError(t *testing.T) {
	resetDefault(t)
	pc, port := listenUDP(t)
	require.NoError(t, pc.Close())

	errs := &errorRecorder{}
	Configure("127.0.0.1", port, "p", WithErrorHandler(errs.handle))

	require.NoError(t, Incr("m", 1, nil))
	require.NoError(t, Gauge("g", 1, nil))
	require.NoError(t, Timing("t", 0.1, nil))
	require.NoError(t, TimeBlock("b", nil, func() error { return nil }))

	first, err := Client()
	require.NoError(t, err)
	second, err := Client()
	require.NoError(t, err)
	assert.Same(t, first, second, "the muted client is cached, not redialed")

	r, err := Default()
	require.NoError(t, err)
	r.Close()
}
