package poker

import (
	"fmt"
	"time"
)

// TableOptions is the full, validated per-table configuration. A Table is
// only ever constructed from a validated copy; it is never half-configured.
type TableOptions struct {
	SpectatorsAllowed bool
	Public            bool

	// TurnTime limits each turn, in seconds. -1 means unlimited.
	TurnTime int

	// Chips is the starting stack for every new seat.
	Chips int64

	SmallBlind int64
	BigBlind   int64

	// BlindsDuration is the blind-increase interval. -1 means the blinds
	// stay fixed for the whole session.
	BlindsDuration time.Duration

	// AFKTimeout is how long a seat may sit on its turn before being
	// flagged away.
	AFKTimeout time.Duration

	MinPlayers int
	MaxPlayers int

	// AutoClose closes the table once only a single funded player remains.
	AutoClose bool

	// Rebuy allows busted players to top back up between hands.
	Rebuy bool

	// Variant is the hand-progression strategy the table runs.
	Variant Variant
}

// Options carries caller overrides for a new table. Nil fields keep their
// defaults; this replaces the original's recursive config merge with
// explicit field-by-field defaulting.
type Options struct {
	SpectatorsAllowed *bool
	Public            *bool
	TurnTime          *int
	Chips             *int64
	SmallBlind        *int64
	BigBlind          *int64
	BlindsDuration    *time.Duration
	AFKTimeout        *time.Duration
	MinPlayers        *int
	MaxPlayers        *int
	AutoClose         *bool
	Rebuy             *bool
	Variant           Variant
}

// DefaultTableOptions returns the stock table configuration.
func DefaultTableOptions() TableOptions {
	return TableOptions{
		SpectatorsAllowed: true,
		Public:            true,
		TurnTime:          -1,
		Chips:             1000,
		SmallBlind:        10,
		BigBlind:          20,
		BlindsDuration:    -1,
		AFKTimeout:        30 * time.Second,
		MinPlayers:        2,
		MaxPlayers:        8,
		AutoClose:         true,
		Rebuy:             false,
		Variant:           TexasHoldem{},
	}
}

// apply lays the caller's overrides over the defaults.
func (o *Options) apply(opts TableOptions) TableOptions {
	if o == nil {
		return opts
	}
	if o.SpectatorsAllowed != nil {
		opts.SpectatorsAllowed = *o.SpectatorsAllowed
	}
	if o.Public != nil {
		opts.Public = *o.Public
	}
	if o.TurnTime != nil {
		opts.TurnTime = *o.TurnTime
	}
	if o.Chips != nil {
		opts.Chips = *o.Chips
	}
	if o.SmallBlind != nil {
		opts.SmallBlind = *o.SmallBlind
	}
	if o.BigBlind != nil {
		opts.BigBlind = *o.BigBlind
	}
	if o.BlindsDuration != nil {
		opts.BlindsDuration = *o.BlindsDuration
	}
	if o.AFKTimeout != nil {
		opts.AFKTimeout = *o.AFKTimeout
	}
	if o.MinPlayers != nil {
		opts.MinPlayers = *o.MinPlayers
	}
	if o.MaxPlayers != nil {
		opts.MaxPlayers = *o.MaxPlayers
	}
	if o.AutoClose != nil {
		opts.AutoClose = *o.AutoClose
	}
	if o.Rebuy != nil {
		opts.Rebuy = *o.Rebuy
	}
	if o.Variant != nil {
		opts.Variant = o.Variant
	}
	return opts
}

// Validate type/range-checks every field.
func (t TableOptions) Validate() error {
	if t.TurnTime < -1 || t.TurnTime == 0 {
		return fmt.Errorf("%w: turn time must be -1 (unlimited) or positive, got %d", ErrInvalidConfig, t.TurnTime)
	}
	if t.Chips <= 0 {
		return fmt.Errorf("%w: starting chips must be positive, got %d", ErrInvalidConfig, t.Chips)
	}
	if t.SmallBlind < 0 {
		return fmt.Errorf("%w: small blind must not be negative, got %d", ErrInvalidConfig, t.SmallBlind)
	}
	if t.BigBlind <= t.SmallBlind {
		return fmt.Errorf("%w: big blind %d must exceed small blind %d", ErrInvalidConfig, t.BigBlind, t.SmallBlind)
	}
	if t.BlindsDuration != -1 && t.BlindsDuration < 0 {
		return fmt.Errorf("%w: blinds duration must be -1 (fixed) or positive, got %v", ErrInvalidConfig, t.BlindsDuration)
	}
	if t.AFKTimeout <= 0 {
		return fmt.Errorf("%w: afk timeout must be positive, got %v", ErrInvalidConfig, t.AFKTimeout)
	}
	if t.MinPlayers < 2 {
		return fmt.Errorf("%w: min players must be at least 2, got %d", ErrInvalidConfig, t.MinPlayers)
	}
	if t.MaxPlayers < t.MinPlayers {
		return fmt.Errorf("%w: max players %d must not be below min players %d", ErrInvalidConfig, t.MaxPlayers, t.MinPlayers)
	}
	if t.MaxPlayers > len(playerColors) {
		return fmt.Errorf("%w: max players %d exceeds supported seats %d", ErrInvalidConfig, t.MaxPlayers, len(playerColors))
	}
	if t.Variant == nil {
		return fmt.Errorf("%w: table needs a game variant", ErrInvalidConfig)
	}
	return nil
}

// EngineConfig carries the process-level pacing shared by all tables.
type EngineConfig struct {
	// EndGameDelay is the pause between a showdown and the winner
	// announcement; fold-outs use a short fixed delay instead.
	EndGameDelay time.Duration

	// NextGameDelay is the pause between the winner announcement and the
	// automatic start of the next hand.
	NextGameDelay time.Duration

	// Seed makes every deck deterministic when nonzero.
	Seed int64
}

// Validate enforces the pacing invariant between the two delays.
func (c EngineConfig) Validate() error {
	if c.NextGameDelay < c.EndGameDelay {
		return fmt.Errorf("%w: next game delay %v must not be shorter than end game delay %v",
			ErrInvalidConfig, c.NextGameDelay, c.EndGameDelay)
	}
	return nil
}
