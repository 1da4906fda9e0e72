// Package prof provides a named-timer diagnostic service: start/stop shots
// per name with multi-shot history and aggregate reporting. It is a pure
// instrumentation sink; nothing in the system depends on it for correctness.
package prof

import (
	"sync"
	"time"
)

// Stat aggregates the completed shots recorded under one name.
type Stat struct {
	// Last is the elapsed time of the most recently completed shot.
	Last time.Duration
	// Total is the sum over completed shots.
	Total time.Duration
	// Count is the number of completed shots.
	Count int
}

// Avg returns the mean over completed shots, zero when none completed.
func (s Stat) Avg() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

type shot struct {
	start   time.Time
	elapsed time.Duration
	done    bool
}

// Timers tracks per-name shot histories. Enablement is decided at
// construction: a disabled service accepts every call as a no-op, so callers
// never branch on it. Safe for concurrent use.
type Timers struct {
	enabled bool
	mu      sync.Mutex
	shots   map[string][]shot
	now     func() time.Time
}

// New returns a timer service. Pass enabled=false for a no-op sink.
func New(enabled bool) *Timers {
	return &Timers{enabled: enabled, shots: make(map[string][]shot), now: time.Now}
}

// Enabled reports whether the service records anything.
func (t *Timers) Enabled() bool { return t.enabled }

// Start opens a new shot for name, independent of any prior shots.
func (t *Timers) Start(name string) {
	if !t.enabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.shots[name] = append(t.shots[name], shot{start: t.now()})
}

// Stop closes the most recently opened, still-open shot for name and records
// its elapsed time. No-op when no shot is open.
func (t *Timers) Stop(name string) {
	if !t.enabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	hist := t.shots[name]
	for i := len(hist) - 1; i >= 0; i-- {
		if !hist[i].done {
			hist[i].elapsed = t.now().Sub(hist[i].start)
			hist[i].done = true
			return
		}
	}
}

// Snapshot returns the aggregate for name; ok is false when no shot has
// completed under it.
func (t *Timers) Snapshot(name string) (Stat, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := aggregate(t.shots[name])
	return s, s.Count > 0
}

// SnapshotAll returns aggregates for every name with at least one completed
// shot.
func (t *Timers) SnapshotAll() map[string]Stat {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]Stat, len(t.shots))
	for name, hist := range t.shots {
		if s := aggregate(hist); s.Count > 0 {
			out[name] = s
		}
	}
	return out
}

// Clear drops all recorded history.
func (t *Timers) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.shots = make(map[string][]shot)
}

func aggregate(hist []shot) Stat {
	var s Stat
	for _, sh := range hist {
		if !sh.done {
			continue
		}
		s.Last = sh.elapsed
		s.Total += sh.elapsed
		s.Count++
	}
	return s
}
