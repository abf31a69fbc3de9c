package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/decred/slog"

	"github.com/cardroom/tabled/pkg/poker"
)

const busSize = 512

// Registry owns every table in the process and the single ordered command
// stream the transport layer consumes. Tables publish into the registry's
// fan-in channel; a pump goroutine forwards commands in order.
type Registry struct {
	mu sync.Mutex

	log slog.Logger
	cfg Config

	tables map[string]*poker.Table

	// destroyTimers reap tables whose seats have all disconnected.
	destroyTimers map[string]*time.Timer

	in   chan poker.Command
	out  chan poker.Command
	quit chan struct{}
}

// NewRegistry builds a registry and starts its command pump.
func NewRegistry(cfg Config, log slog.Logger) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Registry{
		log:           log,
		cfg:           cfg,
		tables:        make(map[string]*poker.Table),
		destroyTimers: make(map[string]*time.Timer),
		in:            make(chan poker.Command, busSize),
		out:           make(chan poker.Command, busSize),
		quit:          make(chan struct{}),
	}
	go r.pump()
	return r, nil
}

// Commands is the ordered outbound command stream. Closed when the registry
// shuts down.
func (r *Registry) Commands() <-chan poker.Command {
	return r.out
}

func (r *Registry) pump() {
	for {
		select {
		case cmd := <-r.in:
			r.log.Tracef("command: %s", spew.Sdump(cmd))
			select {
			case r.out <- cmd:
			default:
				r.log.Warnf("outbound bus full, dropping %s for table %s", cmd.Name, cmd.Table)
			}
		case <-r.quit:
			close(r.out)
			return
		}
	}
}

// CreateTable creates a new table under the given name.
func (r *Registry) CreateTable(name string, opts *poker.Options) (*poker.Table, error) {
	r.mu.Lock()
	tbl, err := r.createTable(name, opts)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	r.publishHomeInfo()
	return tbl, nil
}

func (r *Registry) createTable(name string, opts *poker.Options) (*poker.Table, error) {
	if _, ok := r.tables[name]; ok {
		return nil, fmt.Errorf("table %s already exists", name)
	}

	// Tables without their own away timeout inherit the process default.
	var local poker.Options
	if opts != nil {
		local = *opts
	}
	if local.AFKTimeout == nil {
		afk := r.cfg.AFKTimeout
		local.AFKTimeout = &afk
	}

	tbl, err := poker.NewTable(name, &local, poker.EngineConfig{
		EndGameDelay:  r.cfg.EndGameDelay,
		NextGameDelay: r.cfg.NextGameDelay,
	}, r.log)
	if err != nil {
		return nil, err
	}
	tbl.SetCommandChannel(r.in)
	r.tables[name] = tbl
	r.log.Infof("table %s created", name)
	return tbl, nil
}

// GetTable looks a table up by name.
func (r *Registry) GetTable(name string) (*poker.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tbl, ok := r.tables[name]
	if !ok {
		return nil, fmt.Errorf("table %s: %w", name, poker.ErrTableNotFound)
	}
	return tbl, nil
}

// CreateOrJoinTable seats the player at the named table, creating it first
// if needed, and returns the player's id. The variant only matters when the
// table is created; joining an existing table under a different variant name
// fails. Joining a table mid-hand fails with GameInProgress; the caller may
// fall back to spectating.
func (r *Registry) CreateOrJoinTable(tableName, playerName, variant string, opts *poker.Options) (string, error) {
	v, err := poker.LookupVariant(variant)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	tbl, ok := r.tables[tableName]
	if !ok {
		var local poker.Options
		if opts != nil {
			local = *opts
		}
		local.Variant = v
		tbl, err = r.createTable(tableName, &local)
		if err != nil {
			r.mu.Unlock()
			return "", err
		}
	} else if variant != "" && tbl.Options().Variant.Name() != v.Name() {
		r.mu.Unlock()
		return "", fmt.Errorf("table %s runs %s, not %s",
			tableName, tbl.Options().Variant.Name(), v.Name())
	}
	r.mu.Unlock()

	id, err := tbl.AddPlayer(playerName)
	if err != nil {
		return "", err
	}
	r.publishHomeInfo()
	return id, nil
}

// Spectate attaches a spectator to the named table and replays the current
// state to it.
func (r *Registry) Spectate(tableName, spectatorID string) (*poker.Table, error) {
	tbl, err := r.GetTable(tableName)
	if err != nil {
		return nil, err
	}
	if !tbl.Options().SpectatorsAllowed {
		return nil, fmt.Errorf("table %s: %w", tableName, poker.ErrSpectatingDisallowed)
	}
	tbl.Resync(spectatorID)
	return tbl, nil
}

// PlayerExists finds the table a player is seated at.
func (r *Registry) PlayerExists(playerID string) (string, bool) {
	r.mu.Lock()
	tables := make(map[string]*poker.Table, len(r.tables))
	for name, tbl := range r.tables {
		tables[name] = tbl
	}
	r.mu.Unlock()

	for name, tbl := range tables {
		if tbl.HasPlayer(playerID) {
			return name, true
		}
	}
	return "", false
}

// PlayerLeft handles a player disconnect. Emptied tables are destroyed at
// once; tables whose remaining seats are all disconnected are reaped after
// the auto-destroy delay, leaving room to reconnect.
func (r *Registry) PlayerLeft(playerID string) error {
	tableName, ok := r.PlayerExists(playerID)
	if !ok {
		return fmt.Errorf("player %s: %w", playerID, poker.ErrTableNotFound)
	}
	tbl, err := r.GetTable(tableName)
	if err != nil {
		return err
	}

	removed, err := tbl.PlayerLeft(playerID)
	if err != nil {
		return err
	}
	if removed && tbl.PlayerCount() == 0 {
		return r.DestroyTable(tableName)
	}
	if tbl.AllDisconnected() {
		r.armDestroyTimer(tableName)
	}
	r.publishHomeInfo()
	return nil
}

// PlayerReconnected clears a player's disconnect flag and cancels any
// pending reap of its table.
func (r *Registry) PlayerReconnected(tableName, playerID string) error {
	tbl, err := r.GetTable(tableName)
	if err != nil {
		return err
	}
	if err := tbl.PlayerReconnected(playerID); err != nil {
		return err
	}

	r.mu.Lock()
	if timer, ok := r.destroyTimers[tableName]; ok {
		timer.Stop()
		delete(r.destroyTimers, tableName)
	}
	r.mu.Unlock()

	tbl.Resync(playerID)
	return nil
}

func (r *Registry) armDestroyTimer(tableName string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if timer, ok := r.destroyTimers[tableName]; ok {
		timer.Stop()
	}
	r.destroyTimers[tableName] = time.AfterFunc(r.cfg.AutoDestroyDelay, func() {
		tbl, err := r.GetTable(tableName)
		if err != nil || !tbl.AllDisconnected() {
			return
		}
		r.log.Infof("table %s abandoned, destroying", tableName)
		if err := r.DestroyTable(tableName); err != nil {
			r.log.Errorf("destroying table %s: %v", tableName, err)
		}
	})
}

// StartHand starts the next hand at the named table.
func (r *Registry) StartHand(tableName string) error {
	tbl, err := r.GetTable(tableName)
	if err != nil {
		return err
	}
	return tbl.StartHand()
}

// Bet places a bet or raise.
func (r *Registry) Bet(tableName, playerID string, amount int64, kind poker.BetKind) error {
	tbl, err := r.GetTable(tableName)
	if err != nil {
		return err
	}
	return tbl.Bet(playerID, amount, kind)
}

// Call matches the table's max bet.
func (r *Registry) Call(tableName, playerID string) error {
	tbl, err := r.GetTable(tableName)
	if err != nil {
		return err
	}
	return tbl.Call(playerID)
}

// Check passes the action.
func (r *Registry) Check(tableName, playerID string) error {
	tbl, err := r.GetTable(tableName)
	if err != nil {
		return err
	}
	return tbl.Check(playerID)
}

// Fold folds the player's hand.
func (r *Registry) Fold(tableName, playerID string) error {
	tbl, err := r.GetTable(tableName)
	if err != nil {
		return err
	}
	return tbl.Fold(playerID)
}

// VoteKick casts a kick vote against an away player.
func (r *Registry) VoteKick(tableName, voterID, targetID string) error {
	tbl, err := r.GetTable(tableName)
	if err != nil {
		return err
	}
	return tbl.VoteKick(voterID, targetID)
}

// ShowCards reveals the player's own hole cards to the table.
func (r *Registry) ShowCards(tableName, playerID string) error {
	tbl, err := r.GetTable(tableName)
	if err != nil {
		return err
	}
	return tbl.ShowCards(playerID)
}

// Rebuy tops a busted stack back up between hands.
func (r *Registry) Rebuy(tableName, playerID string) error {
	tbl, err := r.GetTable(tableName)
	if err != nil {
		return err
	}
	return tbl.Rebuy(playerID)
}

// Resync replays the full table state to one recipient.
func (r *Registry) Resync(tableName, playerID string) error {
	tbl, err := r.GetTable(tableName)
	if err != nil {
		return err
	}
	tbl.Resync(playerID)
	return nil
}

// TableOverviews lists the publicly visible tables for the lobby.
func (r *Registry) TableOverviews() []poker.TableOverview {
	r.mu.Lock()
	tables := make([]*poker.Table, 0, len(r.tables))
	for _, tbl := range r.tables {
		tables = append(tables, tbl)
	}
	r.mu.Unlock()

	var out []poker.TableOverview
	for _, tbl := range tables {
		ov := tbl.Overview()
		if ov.Public {
			out = append(out, ov)
		}
	}
	return out
}

// PlayerCount is the number of seated players across all tables.
func (r *Registry) PlayerCount() int {
	r.mu.Lock()
	tables := make([]*poker.Table, 0, len(r.tables))
	for _, tbl := range r.tables {
		tables = append(tables, tbl)
	}
	r.mu.Unlock()

	var total int
	for _, tbl := range tables {
		total += tbl.PlayerCount()
	}
	return total
}

// publishHomeInfo pushes the lobby summary onto the bus.
func (r *Registry) publishHomeInfo() {
	cmd := poker.Command{
		Name: poker.CommandHomeInfo,
		Data: poker.CommandData{
			Tables:      r.TableOverviews(),
			PlayerCount: r.PlayerCount(),
		},
	}
	select {
	case r.in <- cmd:
	default:
		r.log.Warnf("outbound bus full, dropping %s", cmd.Name)
	}
}

// DestroyTable tears a table down and forgets it.
func (r *Registry) DestroyTable(name string) error {
	r.mu.Lock()
	tbl, ok := r.tables[name]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("table %s: %w", name, poker.ErrTableNotFound)
	}
	delete(r.tables, name)
	if timer, ok := r.destroyTimers[name]; ok {
		timer.Stop()
		delete(r.destroyTimers, name)
	}
	r.mu.Unlock()

	tbl.Destroy()
	r.publishHomeInfo()
	return nil
}

// Close destroys every table and stops the command pump. The outbound
// channel is closed once the pump drains.
func (r *Registry) Close() {
	r.mu.Lock()
	tables := make([]*poker.Table, 0, len(r.tables))
	for name, tbl := range r.tables {
		tables = append(tables, tbl)
		delete(r.tables, name)
	}
	for name, timer := range r.destroyTimers {
		timer.Stop()
		delete(r.destroyTimers, name)
	}
	r.mu.Unlock()

	for _, tbl := range tables {
		tbl.Destroy()
	}
	close(r.quit)
}
