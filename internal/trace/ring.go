package trace

import (
	"fmt"
	"io"
	"slices"
	"sync"
)

// RingTracer keeps the most recent events of a run in memory; older ones
// are overwritten.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	next  int
	total int
	level Level
}

// NewRingTracer keeps up to capacity events; capacity <= 0 selects 4096.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	stored := *ev
	stored.Seq = NextSeq()

	t.mu.Lock()
	t.buf[t.next] = stored
	t.next = (t.next + 1) % len(t.buf)
	t.total++
	t.mu.Unlock()
}

// Snapshot returns the kept events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.total < len(t.buf) {
		return slices.Clone(t.buf[:t.next])
	}
	return slices.Concat(t.buf[t.next:], t.buf[:t.next])
}

// Dropped counts events overwritten by newer ones.
func (t *RingTracer) Dropped() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return max(t.total-len(t.buf), 0)
}

// Dump writes the kept events to w, preceded by a line counting the
// overwritten ones when there are any.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	if n := t.Dropped(); n > 0 && format != FormatNDJSON {
		if _, err := fmt.Fprintf(w, "... %d earlier events dropped\n", n); err != nil {
			return err
		}
	}
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
