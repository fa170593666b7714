package reporter

import (
	"sync"
	"time"
)

// TimeBlock runs fn and records its wall-clock duration as a timing when fn
// returns nil. When fn fails or panics nothing is recorded.
func (r *Reporter) TimeBlock(name string, tags Tags, fn func() error) error {
	start := r.now()
	if err := fn(); err != nil {
		return err
	}
	r.Timing(name, r.now().Sub(start).Seconds(), tags)
	return nil
}

// Timer measures from StartTimer until Stop.
//
//	t := r.StartTimer("jobs.run", reporter.Tags{"queue": q})
//	defer t.Stop()
//	if err := run(); err != nil {
//	    t.Cancel()
//	    return err
//	}
type Timer struct {
	r     *Reporter
	name  string
	tags  Tags
	start time.Time
	once  sync.Once
}

// StartTimer starts a Timer for name.
func (r *Reporter) StartTimer(name string, tags Tags) *Timer {
	return &Timer{r: r, name: name, tags: tags, start: r.now()}
}

// Stop records the elapsed time. Only the first Stop or Cancel has effect.
func (t *Timer) Stop() {
	t.once.Do(func() {
		t.r.Timing(t.name, t.r.now().Sub(t.start).Seconds(), t.tags)
	})
}

// Cancel prevents the timer from recording.
func (t *Timer) Cancel() {
	t.once.Do(func() {})
}

// Timed wraps fn so each call is measured with TimeBlock.
func Timed(r *Reporter, name string, tags Tags, fn func() error) func() error {
	return func() error {
		return r.TimeBlock(name, tags, fn)
	}
}

// TimedFunc wraps fn so each call is measured with TimeBlock. The result is
// returned unchanged.
func TimedFunc[T any](r *Reporter, name string, tags Tags, fn func() (T, error)) func() (T, error) {
	return func() (T, error) {
		var result T
		err := r.TimeBlock(name, tags, func() error {
			var err error
			result, err = fn()
			return err
		})
		return result, err
	}
}
