package pacer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a settable time source.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func newFakePacer(perSecond float64) (*Pacer, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	p := New(perSecond)
	p.now = clock.now
	return p, clock
}

func TestNew_Interval(t *testing.T) {
	assert.Equal(t, 100*time.Millisecond, New(10).Interval())
	assert.Equal(t, 2*time.Second, New(0.5).Interval())
	assert.Zero(t, New(0).Interval())
	assert.Zero(t, New(-3).Interval())
}

func TestReserve_SpacesSlots(t *testing.T) {
	p, clock := newFakePacer(10)
	start := clock.t

	assert.Equal(t, start, p.Reserve())
	assert.Equal(t, start.Add(100*time.Millisecond), p.Reserve())
	assert.Equal(t, start.Add(200*time.Millisecond), p.Reserve())

	stats := p.Stats()
	assert.Equal(t, int64(3), stats.Runs)
	assert.Equal(t, 300*time.Millisecond, stats.TotalWait)
}

func TestReserve_NoBurstAfterOverrun(t *testing.T) {
	p, clock := newFakePacer(10)
	start := clock.t

	p.Reserve()
	clock.t = start.Add(time.Second)

	// Overran by nine slots: the next run starts now, the one after a full
	// interval later.
	assert.Equal(t, clock.t, p.Reserve())
	assert.Equal(t, clock.t.Add(100*time.Millisecond), p.Reserve())
}

func TestReserve_Unpaced(t *testing.T) {
	p, clock := newFakePacer(0)

	for i := 0; i < 5; i++ {
		assert.Equal(t, clock.t, p.Reserve())
	}
	assert.Equal(t, int64(5), p.Stats().Runs)
	assert.Zero(t, p.Stats().TotalWait)
}

func TestWait(t *testing.T) {
	p := New(50)

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, p.Wait(context.Background()))
	}
	assert.GreaterOrEqual(t, time.Since(start), 35*time.Millisecond)
}

func TestWait_Cancelled(t *testing.T) {
	p := New(0.1)
	require.NoError(t, p.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Wait(ctx), context.Canceled)
}

func TestWait_UsesClock(t *testing.T) {
	// A clock far ahead of wall time: waits must be measured against it.
	p, clock := newFakePacer(1)
	clock.t = time.Now().Add(1000 * time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.Wait(ctx), "first slot starts immediately")

	clock.t = clock.t.Add(time.Second)
	require.NoError(t, p.Wait(ctx), "slot reached on the injected clock")

	cancelled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	assert.ErrorIs(t, p.Wait(cancelled), context.Canceled, "next slot is a second away")
}
