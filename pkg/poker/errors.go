package poker

import "errors"

// Caller-facing error kinds. All of these reject the triggering action
// atomically; table and player state is untouched when they are returned.
var (
	ErrNotYourTurn          = errors.New("not your turn")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrTableFull            = errors.New("table is full")
	ErrGameInProgress       = errors.New("game already in progress")
	ErrNotEnoughPlayers     = errors.New("not enough players")
	ErrInvalidConfig        = errors.New("invalid table config")
	ErrTableNotFound        = errors.New("table not found")
	ErrNoActiveHand         = errors.New("no active hand")
	ErrNothingToCall        = errors.New("nothing to call")
	ErrSelfKick             = errors.New("cannot vote to kick yourself")
	ErrSpectatingDisallowed = errors.New("spectating is not allowed")
)
