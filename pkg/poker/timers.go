package poker

import (
	"sync"
	"time"
)

// Timer names used by the table. Arming a name again replaces the previous
// timer (debounce, not queueing).
const (
	timerMarkAFK        = "mark-afk"
	timerMarkInactive   = "mark-inactive"
	timerAnnounceWinner = "announce-winner"
	timerNewGame        = "new-game"
)

// timerSet is a table-owned map of named cancellable timers.
type timerSet struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func newTimerSet() *timerSet {
	return &timerSet{timers: make(map[string]*time.Timer)}
}

// schedule arms fn to run after d, replacing any timer with the same name.
// The callback runs on its own goroutine and must take the table lock
// itself.
func (ts *timerSet) schedule(name string, d time.Duration, fn func()) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if t, ok := ts.timers[name]; ok {
		t.Stop()
	}
	ts.timers[name] = time.AfterFunc(d, func() {
		ts.mu.Lock()
		delete(ts.timers, name)
		ts.mu.Unlock()
		fn()
	})
}

// stop cancels the named timer if it is pending.
func (ts *timerSet) stop(name string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if t, ok := ts.timers[name]; ok {
		t.Stop()
		delete(ts.timers, name)
	}
}

// stopAll cancels every outstanding timer. Called on table destruction so no
// callback fires against a destroyed table.
func (ts *timerSet) stopAll() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for name, t := range ts.timers {
		t.Stop()
		delete(ts.timers, name)
	}
}
