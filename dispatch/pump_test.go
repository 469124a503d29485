package dispatch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ping struct{ N int }

type later struct{ N int }

func (later) Deferred() {}

type sticky struct{ N int }

func (sticky) Buffered() {}

type stickyLater struct{ N int }

func (stickyLater) Deferred() {}
func (stickyLater) Buffered() {}

func TestPostDeliversImmediatelyInSubscriptionOrder(t *testing.T) {
	p := New()
	var got []string
	AddListener(p, func(m ping) { got = append(got, "a") })
	AddListener(p, func(m ping) { got = append(got, "b") })
	AddListener(p, func(m later) { got = append(got, "wrong type") })

	p.Post(ping{N: 1})

	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Fatalf("delivery order mismatch (-want +got):\n%s", diff)
	}
}

func TestDeferredWaitsForFlush(t *testing.T) {
	p := New()
	var got []int
	AddListener(p, func(m later) { got = append(got, m.N) })

	p.Post(later{N: 1})
	p.Post(later{N: 2})
	assert.Empty(t, got)
	assert.Equal(t, 2, p.PendingCount())

	p.Flush()
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 0, p.PendingCount())
}

func TestDeferredPostedDuringFlushWaitsForNextFlush(t *testing.T) {
	p := New()
	var got []int
	AddListener(p, func(m later) {
		got = append(got, m.N)
		if m.N == 1 {
			p.Post(later{N: 2})
		}
	})

	p.Post(later{N: 1})
	p.Flush()
	assert.Equal(t, []int{1}, got)

	p.Flush()
	assert.Equal(t, []int{1, 2}, got)
}

func TestBufferedReplayToLateListener(t *testing.T) {
	p := New()
	p.Post(sticky{N: 1})
	p.Post(sticky{N: 2})
	assert.Equal(t, 2, BufferedCount[sticky](p))

	var got []int
	AddListener(p, func(m sticky) { got = append(got, m.N) })
	assert.Equal(t, []int{1, 2}, got)

	p.Post(sticky{N: 3})
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestBufferedDeferredIsRetainedOnlyAfterFlush(t *testing.T) {
	p := New()
	var early []int
	AddListener(p, func(m stickyLater) { early = append(early, m.N) })

	p.Post(stickyLater{N: 7})
	assert.Equal(t, 0, BufferedCount[stickyLater](p))

	var before []int
	AddListener(p, func(m stickyLater) { before = append(before, m.N) })
	assert.Empty(t, before)

	p.Flush()
	assert.Equal(t, []int{7}, early)
	assert.Equal(t, []int{7}, before)

	var after []int
	AddListener(p, func(m stickyLater) { after = append(after, m.N) })
	assert.Equal(t, []int{7}, after)
}

func TestCleanupDropsRetainedAndPending(t *testing.T) {
	t.Run("retained", func(t *testing.T) {
		p := New()
		r := p.Post(sticky{N: 1})
		p.Post(sticky{N: 2})
		p.Cleanup(r)

		var got []int
		AddListener(p, func(m sticky) { got = append(got, m.N) })
		assert.Equal(t, []int{2}, got)
	})

	t.Run("pending", func(t *testing.T) {
		p := New()
		var got []int
		AddListener(p, func(m stickyLater) { got = append(got, m.N) })
		r := p.Post(stickyLater{N: 1})
		p.Cleanup(r)
		p.Flush()
		assert.Empty(t, got)
		assert.Equal(t, 0, BufferedCount[stickyLater](p))
	})

	t.Run("unknown", func(t *testing.T) {
		p := New()
		p.Cleanup(Receipt{})
		p.Cleanup(p.Post(ping{}))
	})
}

func TestRemoveListener(t *testing.T) {
	p := New()
	calls := 0
	l := AddListener(p, func(m ping) { calls++ })
	require.True(t, l.Valid())
	assert.Equal(t, 1, ListenerCount[ping](p))

	p.Post(ping{})
	p.RemoveListener(l)
	p.Post(ping{})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, ListenerCount[ping](p))
	p.RemoveListener(l)
}

func TestRemoveDuringDispatchTakesEffectImmediately(t *testing.T) {
	p := New()
	var second Listener
	secondCalls := 0
	AddListener(p, func(m ping) { p.RemoveListener(second) })
	second = AddListener(p, func(m ping) { secondCalls++ })

	p.Post(ping{})
	assert.Equal(t, 0, secondCalls)
}

func TestAddDuringDispatchSkipsCurrentMessage(t *testing.T) {
	p := New()
	added := 0
	AddListener(p, func(m ping) {
		if m.N == 1 {
			AddListener(p, func(ping) { added++ })
		}
	})

	p.Post(ping{N: 1})
	assert.Equal(t, 0, added)
	p.Post(ping{N: 2})
	assert.Equal(t, 1, added)
}

func TestResetAndGlobal(t *testing.T) {
	p := New()
	AddListener(p, func(ping) {})
	p.Post(sticky{})
	p.Post(later{})
	p.Reset()

	assert.Equal(t, 0, ListenerCount[ping](p))
	assert.Equal(t, 0, BufferedCount[sticky](p))
	assert.Equal(t, 0, p.PendingCount())

	prev := SetGlobal(p)
	t.Cleanup(func() { SetGlobal(prev) })
	assert.Same(t, p, Global())
}

func TestNilSafety(t *testing.T) {
	var p *Pump
	assert.False(t, AddListener(p, func(ping) {}).Valid())
	assert.False(t, p.Post(ping{}).Valid())
	p.Flush()
	p.Cleanup(Receipt{})
	p.RemoveListener(Listener{})
	assert.False(t, AddListener[ping](New(), nil).Valid())
}
