package poker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultTableOptionsValid(t *testing.T) {
	require.NoError(t, DefaultTableOptions().Validate())
}

func TestOptionsOverride(t *testing.T) {
	chips := int64(500)
	turnTime := 15
	rebuy := true

	opts := (&Options{
		Chips:    &chips,
		TurnTime: &turnTime,
		Rebuy:    &rebuy,
	}).apply(DefaultTableOptions())

	require.EqualValues(t, 500, opts.Chips)
	require.Equal(t, 15, opts.TurnTime)
	require.True(t, opts.Rebuy)
	// Untouched fields keep their defaults.
	require.EqualValues(t, 20, opts.BigBlind)
	require.Equal(t, 8, opts.MaxPlayers)
}

func TestTableOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TableOptions)
	}{
		{"zero turn time", func(o *TableOptions) { o.TurnTime = 0 }},
		{"no chips", func(o *TableOptions) { o.Chips = 0 }},
		{"negative small blind", func(o *TableOptions) { o.SmallBlind = -1 }},
		{"big blind below small blind", func(o *TableOptions) { o.BigBlind = o.SmallBlind }},
		{"zero afk timeout", func(o *TableOptions) { o.AFKTimeout = 0 }},
		{"single-seat minimum", func(o *TableOptions) { o.MinPlayers = 1 }},
		{"max below min", func(o *TableOptions) { o.MinPlayers = 4; o.MaxPlayers = 3 }},
		{"more seats than colors", func(o *TableOptions) { o.MaxPlayers = len(playerColors) + 1 }},
		{"no variant", func(o *TableOptions) { o.Variant = nil }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultTableOptions()
			tc.mutate(&opts)
			err := opts.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestEngineConfigValidate(t *testing.T) {
	good := EngineConfig{EndGameDelay: time.Second, NextGameDelay: 3 * time.Second}
	require.NoError(t, good.Validate())

	bad := EngineConfig{EndGameDelay: 3 * time.Second, NextGameDelay: time.Second}
	require.ErrorIs(t, bad.Validate(), ErrInvalidConfig)
}

func TestNewTableRejectsBadOptions(t *testing.T) {
	chips := int64(-5)
	_, err := NewTable("broken", &Options{Chips: &chips}, testEngineConfig(), testLogger())
	require.ErrorIs(t, err, ErrInvalidConfig)
}
