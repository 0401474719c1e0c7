package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	values []string
	times  []time.Time
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
	r.times = append(r.times, time.Now())
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestDebouncer_DeliversLatestAfterQuiet(t *testing.T) {
	rec := &recorder{}
	d := New(50*time.Millisecond, rec.record)
	defer d.Stop()

	start := time.Now()
	d.Push("i")
	d.Push("in")
	d.Push("inc")

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"inc"}, rec.snapshot())
	assert.GreaterOrEqual(t, rec.times[0].Sub(start), 50*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Len(t, rec.snapshot(), 1, "no duplicate delivery")
}

func TestDebouncer_EachPushRestartsTimer(t *testing.T) {
	rec := &recorder{}
	d := New(80*time.Millisecond, rec.record)
	defer d.Stop()

	d.Push("a")
	time.Sleep(40 * time.Millisecond)
	d.Push("ab")
	time.Sleep(40 * time.Millisecond)
	d.Push("abc")
	time.Sleep(40 * time.Millisecond)

	assert.Empty(t, rec.snapshot(), "nothing fires while input keeps changing")

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "abc", rec.snapshot()[0])
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	rec := &recorder{}
	d := New(20*time.Millisecond, rec.record)
	defer d.Stop()

	d.Push("first")
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	d.Push("second")
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"first", "second"}, rec.snapshot())
}

func TestDebouncer_Flush(t *testing.T) {
	rec := &recorder{}
	d := New(time.Hour, rec.record)
	defer d.Stop()

	assert.False(t, d.Flush(), "nothing pending")

	d.Push("matrix")
	assert.True(t, d.Flush())
	assert.Equal(t, []string{"matrix"}, rec.snapshot())
	assert.False(t, d.Flush())
}

func TestDebouncer_Stop(t *testing.T) {
	rec := &recorder{}
	d := New(20*time.Millisecond, rec.record)

	d.Push("gone")
	d.Stop()
	d.Push("ignored")

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
	assert.False(t, d.Flush())
}
