package server

import (
	"io"
	"testing"
	"time"

	"github.com/decred/slog"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/tabled/pkg/poker"
)

func testLogger() slog.Logger {
	return slog.NewBackend(io.Discard).Logger("TEST")
}

func testConfig() Config {
	return Config{
		EndGameDelay:     10 * time.Millisecond,
		NextGameDelay:    30 * time.Millisecond,
		AFKTimeout:       30 * time.Second,
		AutoDestroyDelay: 50 * time.Millisecond,
	}
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(testConfig(), testLogger())
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return r
}

// collect reads commands off the stream until it goes quiet.
func collect(ch <-chan poker.Command, wait time.Duration) []poker.Command {
	var out []poker.Command
	for {
		select {
		case cmd, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, cmd)
		case <-time.After(wait):
			return out
		}
	}
}

func hasCommand(cmds []poker.Command, name poker.CommandName) bool {
	for _, cmd := range cmds {
		if cmd.Name == name {
			return true
		}
	}
	return false
}

func TestCreateOrJoinTable(t *testing.T) {
	r := newTestRegistry(t)

	aliceID, err := r.CreateOrJoinTable("main", "alice", "", nil)
	require.NoError(t, err)
	require.NotEmpty(t, aliceID)

	bobID, err := r.CreateOrJoinTable("main", "bob", "", nil)
	require.NoError(t, err)
	require.NotEqual(t, aliceID, bobID)

	require.Equal(t, 2, r.PlayerCount())
	overviews := r.TableOverviews()
	require.Len(t, overviews, 1)
	require.Equal(t, "main", overviews[0].Name)
	require.Equal(t, 2, overviews[0].Players)

	name, ok := r.PlayerExists(aliceID)
	require.True(t, ok)
	require.Equal(t, "main", name)
}

func TestCreateOrJoinTableVariant(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.CreateOrJoinTable("main", "alice", "texas-holdem", nil)
	require.NoError(t, err)

	overviews := r.TableOverviews()
	require.Len(t, overviews, 1)
	require.Equal(t, "texas-holdem", overviews[0].Variant)

	// Naming the variant on join is fine when it matches the table's.
	_, err = r.CreateOrJoinTable("main", "bob", "texas-holdem", nil)
	require.NoError(t, err)

	_, err = r.CreateOrJoinTable("other", "carol", "seven-card-stud", nil)
	require.ErrorIs(t, err, poker.ErrInvalidConfig)
}

func TestCreateTableDuplicate(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.CreateTable("dup", nil)
	require.NoError(t, err)
	_, err = r.CreateTable("dup", nil)
	require.Error(t, err)
}

func TestGetTableNotFound(t *testing.T) {
	r := newTestRegistry(t)
	_, err := r.GetTable("missing")
	require.ErrorIs(t, err, poker.ErrTableNotFound)

	require.ErrorIs(t, r.StartHand("missing"), poker.ErrTableNotFound)
	require.ErrorIs(t, r.Fold("missing", "nobody"), poker.ErrTableNotFound)
}

func TestJoinMidHandFails(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.CreateOrJoinTable("main", "alice", "", nil)
	require.NoError(t, err)
	_, err = r.CreateOrJoinTable("main", "bob", "", nil)
	require.NoError(t, err)
	require.NoError(t, r.StartHand("main"))

	_, err = r.CreateOrJoinTable("main", "late", "", nil)
	require.ErrorIs(t, err, poker.ErrGameInProgress)
}

func TestActionsRequireActiveHand(t *testing.T) {
	r := newTestRegistry(t)

	id, err := r.CreateOrJoinTable("main", "alice", "", nil)
	require.NoError(t, err)

	require.ErrorIs(t, r.Call("main", id), poker.ErrNoActiveHand)
	require.ErrorIs(t, r.Check("main", id), poker.ErrNoActiveHand)
	require.ErrorIs(t, r.Bet("main", id, 40, poker.BetRaise), poker.ErrNoActiveHand)
	require.ErrorIs(t, r.Fold("main", id), poker.ErrNoActiveHand)
}

func TestSpectate(t *testing.T) {
	r := newTestRegistry(t)

	noSpectators := false
	private := poker.Options{SpectatorsAllowed: &noSpectators}
	_, err := r.CreateOrJoinTable("private", "alice", "", &private)
	require.NoError(t, err)
	_, err = r.Spectate("private", "watcher")
	require.ErrorIs(t, err, poker.ErrSpectatingDisallowed)

	_, err = r.CreateOrJoinTable("open", "bob", "", nil)
	require.NoError(t, err)
	tbl, err := r.Spectate("open", "watcher")
	require.NoError(t, err)
	require.Equal(t, "open", tbl.Name())

	cmds := collect(r.Commands(), 50*time.Millisecond)
	var toWatcher int
	for _, cmd := range cmds {
		if cmd.Recipient == "watcher" {
			toWatcher++
		}
	}
	require.Greater(t, toWatcher, 0, "spectator should receive a state replay")
}

func TestPlayerLeftDestroysEmptyTable(t *testing.T) {
	r := newTestRegistry(t)

	id, err := r.CreateOrJoinTable("solo", "alice", "", nil)
	require.NoError(t, err)

	require.NoError(t, r.PlayerLeft(id))
	_, err = r.GetTable("solo")
	require.ErrorIs(t, err, poker.ErrTableNotFound)

	cmds := collect(r.Commands(), 50*time.Millisecond)
	require.True(t, hasCommand(cmds, poker.CommandTableClosed))
}

func TestAutoDestroyAfterAllDisconnected(t *testing.T) {
	r := newTestRegistry(t)

	aliceID, err := r.CreateOrJoinTable("main", "alice", "", nil)
	require.NoError(t, err)
	bobID, err := r.CreateOrJoinTable("main", "bob", "", nil)
	require.NoError(t, err)
	require.NoError(t, r.StartHand("main"))

	// Mid-hand disconnects only flag the seats, so the table survives
	// until the reap delay passes with nobody back.
	require.NoError(t, r.PlayerLeft(aliceID))
	require.NoError(t, r.PlayerLeft(bobID))
	_, err = r.GetTable("main")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, err := r.GetTable("main")
		return err != nil
	}, 3*time.Second, 10*time.Millisecond, "abandoned table should be reaped")
}

func TestReconnectCancelsReap(t *testing.T) {
	r := newTestRegistry(t)

	aliceID, err := r.CreateOrJoinTable("main", "alice", "", nil)
	require.NoError(t, err)
	bobID, err := r.CreateOrJoinTable("main", "bob", "", nil)
	require.NoError(t, err)
	require.NoError(t, r.StartHand("main"))

	require.NoError(t, r.PlayerLeft(aliceID))
	require.NoError(t, r.PlayerLeft(bobID))
	require.NoError(t, r.PlayerReconnected("main", aliceID))

	time.Sleep(150 * time.Millisecond)
	_, err = r.GetTable("main")
	require.NoError(t, err, "reconnect should cancel the reap")
}

func TestCommandStreamCarriesTableEvents(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.CreateOrJoinTable("main", "alice", "", nil)
	require.NoError(t, err)
	_, err = r.CreateOrJoinTable("main", "bob", "", nil)
	require.NoError(t, err)
	require.NoError(t, r.StartHand("main"))

	cmds := collect(r.Commands(), 100*time.Millisecond)
	require.True(t, hasCommand(cmds, poker.CommandHomeInfo))
	require.True(t, hasCommand(cmds, poker.CommandGameStarted))
	require.True(t, hasCommand(cmds, poker.CommandPlayerUpdate))
	require.True(t, hasCommand(cmds, poker.CommandDealer))
	require.True(t, hasCommand(cmds, poker.CommandCurrentPlayer))
}
