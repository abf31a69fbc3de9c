package poker

// statusFn is a table status function following Rob Pike's state machine
// pattern: each state inspects the table and returns the next state
// function along with that state's client-facing label. Callers hold t.mu.
type statusFn func(*Table) (statusFn, GameStatus)

func statusWaiting(t *Table) (statusFn, GameStatus) {
	if t.game != nil && !t.game.Ended {
		return statusStarted, StatusStarted
	}
	return statusWaiting, StatusWaiting
}

func statusStarted(t *Table) (statusFn, GameStatus) {
	if t.game == nil {
		return statusWaiting, StatusWaiting
	}
	if t.game.Ended {
		return statusEnded, StatusEnded
	}
	return statusStarted, StatusStarted
}

func statusEnded(t *Table) (statusFn, GameStatus) {
	if t.game == nil {
		return statusWaiting, StatusWaiting
	}
	if !t.game.Ended {
		return statusStarted, StatusStarted
	}
	return statusEnded, StatusEnded
}

// dispatchStatus advances the status machine one step.
func (t *Table) dispatchStatus() {
	if t.statusFn == nil {
		t.statusFn = statusWaiting
	}
	t.statusFn, t.statusLabel = t.statusFn(t)
}

// status is the client-facing label of the current state.
func (t *Table) status() GameStatus {
	return t.statusLabel
}
