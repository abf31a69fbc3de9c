package poker

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/decred/slog"
	"github.com/google/uuid"
)

// playerColors are assigned to seats in join order.
var playerColors = []string{
	"#444444", "#3498db", "#9b59b6",
	"#e67e22", "#3ae374", "#16a085",
	"crimson", "#227093", "#d1ccc0",
	"#34495e", "#673ab7", "#cf6a87",
}

// foldOutDelayCap bounds the pause before paying a hand that ended without a
// showdown. There is nothing to let players look at.
const foldOutDelayCap = time.Second

// Table runs one poker table across many hands. It is a single-writer state
// machine: every action and every fired timer takes t.mu and runs to
// completion, so no operation ever observes a half-applied mutation.
type Table struct {
	mu sync.Mutex

	log  slog.Logger
	name string
	cfg  EngineConfig
	opts TableOptions

	// players is the roster in seating order, which is also turn order.
	players []*Player

	// dealer and current index into players and are corrected whenever a
	// seat is removed.
	dealer  int
	current int

	game        *Game
	statusFn    statusFn
	statusLabel GameStatus

	// smallBlind and bigBlind are the blinds for the hand in play. They
	// escalate from the configured base when a blinds duration is set.
	smallBlind int64
	bigBlind   int64

	commands chan<- Command
	timers   *timerSet

	rng       *rand.Rand
	startedAt time.Time

	// settling is the window between the end of a hand and the payout of
	// its pots. Starting a new hand then would discard unpaid chips.
	settling bool
	closed   bool
}

// NewTable builds a table from the default options overlaid with the
// caller's overrides. The merged options are validated in full; a table is
// never left half-configured.
func NewTable(name string, overrides *Options, cfg EngineConfig, log slog.Logger) (*Table, error) {
	opts := overrides.apply(DefaultTableOptions())
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Table{
		log:         log,
		name:        name,
		cfg:         cfg,
		opts:        opts,
		dealer:      -1,
		statusLabel: StatusWaiting,
		smallBlind:  opts.SmallBlind,
		bigBlind:    opts.BigBlind,
		timers:      newTimerSet(),
		rng:         rand.New(rand.NewSource(seed)),
		startedAt:   time.Now(),
	}, nil
}

// Name returns the table's name.
func (t *Table) Name() string {
	return t.name
}

// Options returns a copy of the validated table configuration.
func (t *Table) Options() TableOptions {
	return t.opts
}

// TableOverview is the lobby projection of a table.
type TableOverview struct {
	Name              string     `json:"name"`
	Variant           string     `json:"variant"`
	Public            bool       `json:"public"`
	SpectatorsAllowed bool       `json:"spectatorsAllowed"`
	Players           int        `json:"players"`
	MaxPlayers        int        `json:"maxPlayers"`
	Status            GameStatus `json:"status"`
}

// Overview projects the table for the lobby summary.
func (t *Table) Overview() TableOverview {
	t.mu.Lock()
	defer t.mu.Unlock()
	return TableOverview{
		Name:              t.name,
		Variant:           t.opts.Variant.Name(),
		Public:            t.opts.Public,
		SpectatorsAllowed: t.opts.SpectatorsAllowed,
		Players:           len(t.players),
		MaxPlayers:        t.opts.MaxPlayers,
		Status:            t.status(),
	}
}

// PlayerCount returns the number of seated players.
func (t *Table) PlayerCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.players)
}

// HasPlayer reports whether the given player is seated here.
func (t *Table) HasPlayer(playerID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.indexOf(playerID) >= 0
}

// AllDisconnected reports whether every seat has dropped its connection.
func (t *Table) AllDisconnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.players) == 0 {
		return true
	}
	for _, p := range t.players {
		if !p.Disconnected {
			return false
		}
	}
	return true
}

// AddPlayer seats a new player and returns its id. Joins are rejected while
// a hand is live; late joiners wait for the next hand.
func (t *Table) AddPlayer(name string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return "", fmt.Errorf("table %s is closed: %w", t.name, ErrTableNotFound)
	}
	if len(t.players) >= t.opts.MaxPlayers {
		return "", fmt.Errorf("%w: %d seats taken", ErrTableFull, len(t.players))
	}
	if t.handLive() {
		return "", fmt.Errorf("cannot join mid-hand: %w", ErrGameInProgress)
	}

	id := uuid.NewString()
	color := playerColors[len(t.players)%len(playerColors)]
	t.players = append(t.players, NewPlayer(id, name, color, t.opts.Chips))

	t.log.Infof("%s seated at table %s", name, t.name)
	t.sendPlayerUpdate()
	return id, nil
}

// RemovePlayer takes a seat out of the roster. If a hand is live the seat is
// folded out first so the turn and the round resolve as if the player had
// folded.
func (t *Table) RemovePlayer(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.removePlayer(playerID)
}

func (t *Table) removePlayer(playerID string) error {
	idx := t.indexOf(playerID)
	if idx < 0 {
		return fmt.Errorf("player %s: %w", playerID, ErrTableNotFound)
	}
	p := t.players[idx]

	if t.handLive() {
		t.game.RemoveBet(p.ID)
		wasCurrent := idx == t.current
		p.Folded = true
		t.progress(false, wasCurrent)
	}

	t.removeSeat(t.indexOf(playerID))
	t.log.Infof("%s left table %s", p.Name, t.name)
	t.sendPlayerUpdate()
	return nil
}

// PlayerLeft handles a transport-level disconnect. Before a hand starts the
// seat is removed outright; mid-hand it is only flagged so the stack
// survives for reconnection. Reports whether the seat was removed.
func (t *Table) PlayerLeft(playerID string) (removed bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.indexOf(playerID)
	if idx < 0 {
		return false, fmt.Errorf("player %s: %w", playerID, ErrTableNotFound)
	}
	if !t.handLive() {
		return true, t.removePlayer(playerID)
	}
	t.players[idx].Disconnected = true
	t.sendPlayerUpdate()
	return false, nil
}

// PlayerReconnected clears the disconnect flag after the transport layer
// re-established the player's session.
func (t *Table) PlayerReconnected(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.indexOf(playerID)
	if idx < 0 {
		return fmt.Errorf("player %s: %w", playerID, ErrTableNotFound)
	}
	t.players[idx].Disconnected = false
	t.sendPlayerUpdate()
	return nil
}

// StartHand begins the next hand.
func (t *Table) StartHand() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.newGame()
}

func (t *Table) newGame() error {
	if t.closed {
		return fmt.Errorf("table %s is closed: %w", t.name, ErrTableNotFound)
	}
	if t.handLive() || t.settling {
		return ErrGameInProgress
	}
	if len(t.players) < t.opts.MinPlayers {
		return fmt.Errorf("%w: have %d, need %d", ErrNotEnoughPlayers, len(t.players), t.opts.MinPlayers)
	}

	if t.opts.Variant.Betting() {
		t.smallBlind, t.bigBlind = t.blinds()

		t.removePoorPlayers()
		if len(t.players) <= 1 {
			if t.opts.AutoClose {
				t.close()
				return nil
			}
			t.game = nil
			t.dispatchStatus()
			t.sendGameStatus()
			return nil
		}
	}

	for _, p := range t.players {
		p.Reset()
		p.Dealer = false
	}

	n := len(t.players)
	t.dealer = ((t.dealer + 1) % n + n) % n
	t.players[t.dealer].Dealer = true

	t.game = NewGame(t.rng)
	t.dispatchStatus()

	for i := 0; i < t.opts.Variant.HoleCards(); i++ {
		for _, p := range t.players {
			card, ok := t.game.deck.Draw()
			if !ok {
				panic("deck exhausted while dealing hole cards")
			}
			p.Cards = append(p.Cards, card)
		}
	}

	t.publish(Command{Name: CommandGameStarted, Table: t.name})
	t.sendGameStatus()
	t.sendDealer()
	t.sendPlayerUpdate()
	t.sendHoleCards()
	t.sendPotUpdate()
	t.sendBoard()
	t.sendRound()

	// A no-betting variant flips straight to showdown: every hand face
	// up, board run out, winners announced.
	if !t.opts.Variant.Betting() {
		t.revealCards()
		for t.nextRoundType() {
		}
		t.endHand(false)
		t.log.Infof("table %s: %s flip, dealer %s", t.name, t.opts.Variant.Name(), t.players[t.dealer].Name)
		return nil
	}

	// The dealer posts the small blind heads-up; otherwise the seat after
	// the dealer does. Blinds go through the regular bet path, which also
	// advances the turn, so after the big blind posts the action sits on
	// the correct first seat.
	if n == 2 {
		t.current = t.dealer
	} else {
		t.current = (t.dealer + 1) % n
	}
	if err := t.placeBet(t.players[t.current], NewBet(t.smallBlind, BetSmallBlind), false); err != nil {
		return fmt.Errorf("posting small blind: %w", err)
	}
	if err := t.placeBet(t.players[t.current], NewBet(t.bigBlind, BetBigBlind), false); err != nil {
		return fmt.Errorf("posting big blind: %w", err)
	}

	t.log.Infof("table %s: new hand, dealer %s", t.name, t.players[t.dealer].Name)
	return nil
}

// blinds returns the blind sizes for the next hand. With a blinds duration
// set, the blinds double every interval since the table opened, stopping
// once the big blind covers the largest stack.
func (t *Table) blinds() (small, big int64) {
	small, big = t.opts.SmallBlind, t.opts.BigBlind
	if t.opts.BlindsDuration <= 0 {
		return small, big
	}
	var ceiling int64
	for _, p := range t.players {
		if p.Chips > ceiling {
			ceiling = p.Chips
		}
	}
	for level := time.Since(t.startedAt) / t.opts.BlindsDuration; level > 0 && big < ceiling && big <= math.MaxInt64/2; level-- {
		small *= 2
		big *= 2
	}
	return small, big
}

// removePoorPlayers drops seats that cannot afford the next big blind.
func (t *Table) removePoorPlayers() {
	kept := t.players[:0]
	for _, p := range t.players {
		if p.Chips < t.bigBlind {
			t.log.Infof("table %s: removing %s, cannot afford the blind", t.name, p.Name)
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) != len(t.players) {
		t.players = kept
		t.dealer = t.clampIndex(t.dealer)
		t.current = t.clampIndex(t.current)
		t.sendPlayerUpdate()
	}
}

// Bet places a bet or raise for the player whose turn it is.
func (t *Table) Bet(playerID string, amount int64, kind BetKind) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, err := t.actingPlayer(playerID)
	if err != nil {
		return err
	}
	return t.placeBet(p, NewBet(amount, kind), true)
}

// Call matches the table's max bet, capped at the caller's remaining stack.
func (t *Table) Call(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, err := t.actingPlayer(playerID)
	if err != nil {
		return err
	}
	maxBet := t.game.MaxBet()
	if maxBet == 0 {
		return ErrNothingToCall
	}
	amount := maxBet
	if avail := p.AvailableChips(); avail < amount {
		amount = avail
	}
	return t.placeBet(p, NewBet(amount, BetCall), true)
}

// Check passes the action without betting. Only legal when nothing is owed.
func (t *Table) Check(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, err := t.actingPlayer(playerID)
	if err != nil {
		return err
	}
	var committed int64
	if p.Bet != nil {
		committed = p.Bet.Amount
	}
	if t.game.MaxBet() > committed {
		return fmt.Errorf("cannot check, %d to call", t.game.MaxBet()-committed)
	}
	t.game.RecordCheck(p)
	t.progress(true, true)
	return nil
}

// Fold folds the player whose turn it is.
func (t *Table) Fold(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, err := t.actingPlayer(playerID)
	if err != nil {
		return err
	}
	t.fold(p, true)
	return nil
}

func (t *Table) fold(p *Player, voluntary bool) {
	p.Folded = true
	t.publish(Command{
		Name:  CommandPlayerFolded,
		Table: t.name,
		Data:  CommandData{PlayerID: p.ID},
	})
	t.progress(voluntary, true)
}

// actingPlayer resolves the player and enforces turn order.
func (t *Table) actingPlayer(playerID string) (*Player, error) {
	if !t.handLive() {
		return nil, ErrNoActiveHand
	}
	idx := t.indexOf(playerID)
	if idx < 0 {
		return nil, fmt.Errorf("player %s: %w", playerID, ErrTableNotFound)
	}
	if idx != t.current {
		return nil, ErrNotYourTurn
	}
	return t.players[idx], nil
}

// placeBet validates, charges and records a bet, then runs progression. A
// re-bet in the same round replaces the earlier commitment rather than
// stacking on top of it.
func (t *Table) placeBet(p *Player, bet *Bet, voluntary bool) error {
	g := t.game

	if bet.Amount < 0 {
		return fmt.Errorf("bet %d is negative", bet.Amount)
	}
	if bet.Kind == BetBet || bet.Kind == BetRaise {
		min := g.MaxBet() + t.bigBlind
		if bet.Amount < min && bet.Amount != p.AvailableChips() {
			return fmt.Errorf("bet %d below minimum %d", bet.Amount, min)
		}
	}
	if bet.Amount > p.AvailableChips() {
		return fmt.Errorf("%w: bet %d exceeds available %d", ErrInsufficientFunds, bet.Amount, p.AvailableChips())
	}

	if p.Bet != nil {
		p.Chips += p.Bet.Amount
		p.Bet = nil
	}
	if err := p.Pay(bet.Amount); err != nil {
		return err
	}
	if p.Chips == 0 {
		bet.Kind = BetAllIn
		p.AllIn = true
	}
	p.Bet = bet
	g.PlaceBet(p, bet)

	t.publish(Command{
		Name:  CommandPlayerBet,
		Table: t.name,
		Data:  CommandData{PlayerID: p.ID, Bet: bet.Amount, BetKind: bet.Kind},
	})
	t.sendMaxBet()
	t.sendPlayerUpdate()

	t.progress(voluntary, true)
	return nil
}

// progress is the round state machine, run after every action. voluntary
// marks a deliberate player action (clears away flags and kick votes);
// acted marks that the seat at t.current just moved, so the turn may be
// advanced from there.
func (t *Table) progress(voluntary, acted bool) {
	g := t.game
	if g == nil || g.Ended {
		return
	}

	if voluntary && t.current < len(t.players) {
		actor := t.players[t.current]
		actor.AFK = false
		actor.ClearKickVotes()
	}

	active := t.activePlayers()
	everyoneElseFolded := len(active) == 1

	if !everyoneElseFolded && !t.roundOver() {
		if !acted {
			return
		}
		t.current = t.nextEligible(t.current)
		t.sendCurrentPlayer()
		t.armTurnTimers()
		return
	}

	t.settleBets()
	t.sendPotUpdate()
	t.sendMaxBet()
	t.sendPlayerUpdate()

	if everyoneElseFolded {
		t.endHand(true)
		return
	}

	// With everyone (or all but one) all-in there is no more betting.
	// Reveal and run the board out mechanically.
	allIn := 0
	for _, p := range active {
		if p.AllIn {
			allIn++
		}
	}
	if allIn >= len(active)-1 {
		t.revealCards()
		for t.nextRoundType() {
		}
		t.endHand(false)
		return
	}

	if _, ok := t.opts.Variant.NextRound(g.Round.Type); !ok {
		t.endHand(false)
		return
	}

	t.nextRoundType()
	t.current = t.nextEligible(t.dealer)
	t.sendCurrentPlayer()
	t.armTurnTimers()
}

// roundOver reports whether every live seat has matched the max bet and no
// one is still owed the big-blind option.
func (t *Table) roundOver() bool {
	g := t.game
	maxBet := g.MaxBet()
	for _, p := range t.players {
		if p.Folded || p.AllIn {
			continue
		}
		var committed int64
		if b := g.BetOf(p.ID); b != nil {
			committed = b.Amount
		}
		if committed != maxBet {
			return false
		}
		if committed == 0 && !g.Round.checked[p.ID] {
			return false
		}
		if b := g.BetOf(p.ID); b != nil && b.Kind == BetBigBlind && !g.Round.checked[p.ID] {
			return false
		}
	}
	return true
}

// nextEligible finds the next seat after from that can still act. A full lap
// without one means the table state is corrupt.
func (t *Table) nextEligible(from int) int {
	n := len(t.players)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		p := t.players[idx]
		if !p.Folded && !p.AllIn {
			return idx
		}
	}
	t.log.Criticalf("table %s: no eligible seat after a full lap", t.name)
	panic("poker: no eligible seat after a full lap")
}

// settleBets resolves the round ledger into the main pot and side pots and
// clears every per-seat bet.
func (t *Table) settleBets() {
	g := t.game
	active := t.activePlayers()

	// A seat that went all-in in an earlier round has nothing in this
	// round's ledger, so whatever accumulated since must be capped for it
	// before the new bets come in.
	exhausted := false
	for _, p := range active {
		if p.AllIn && !p.HasSidePot && g.BetOf(p.ID) == nil {
			exhausted = true
			break
		}
	}
	if exhausted && g.Pot > 0 && g.MaxBet() > 0 {
		g.CreateSidePot(t.mainPotPlayers())
	}

	short := false
	for _, p := range active {
		if !p.AllIn || p.HasSidePot {
			continue
		}
		if b := g.BetOf(p.ID); b != nil && b.Amount < g.MaxBet() {
			short = true
			break
		}
	}

	if !short {
		g.MoveBetsToPot()
	} else {
		for {
			contributors := t.contributors()
			if len(contributors) <= 1 {
				break
			}
			tier := g.LowestBet()
			for _, c := range contributors {
				c.Bet.Amount -= tier
				g.Pot += tier
			}
			if len(t.contributors()) > 1 {
				eligible := make([]*Player, 0, len(contributors))
				for _, c := range contributors {
					if !c.Folded {
						eligible = append(eligible, c)
					}
				}
				g.CreateSidePot(eligible)
			}
		}
		// A lone leftover bet was never called; it goes back.
		if id, amount, ok := g.LastBet(); ok {
			if idx := t.indexOf(id); idx >= 0 {
				t.players[idx].Chips += amount
			}
		}
		g.Round.bets = make(map[string]*Bet)
	}

	for _, p := range t.players {
		p.Bet = nil
	}
}

// contributors are the seats with chips still unsettled in the round ledger,
// folded ones included.
func (t *Table) contributors() []*Player {
	var out []*Player
	for _, p := range t.players {
		if b := t.game.BetOf(p.ID); b != nil && b.Amount > 0 {
			out = append(out, p)
		}
	}
	return out
}

// nextRoundType advances to the variant's next street and announces it.
// It reports false once the last betting street has been reached.
func (t *Table) nextRoundType() bool {
	next, ok := t.opts.Variant.NextRound(t.game.Round.Type)
	if !ok {
		return false
	}
	t.game.NewRound(next)
	t.sendRound()
	t.sendBoard()
	return true
}

// endHand closes the betting for the hand and schedules the payout and the
// next hand. Fold-outs pay quickly; showdowns leave time to look at the
// reveal.
func (t *Table) endHand(foldOut bool) {
	t.game.End()
	t.settling = true
	t.dispatchStatus()

	if !foldOut {
		t.revealCards()
		t.game.Round.Type = RoundShowdown
		t.sendRound()
	}
	t.publish(Command{Name: CommandGameEnded, Table: t.name})
	t.sendGameStatus()

	t.timers.stop(timerMarkInactive)
	t.timers.stop(timerMarkAFK)

	delay := t.cfg.EndGameDelay
	if foldOut && delay > foldOutDelayCap {
		delay = foldOutDelayCap
	}
	t.timers.schedule(timerAnnounceWinner, delay, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.closed || t.game == nil {
			return
		}
		t.announceWinners(foldOut, delay)
	})
}

// announceWinners pays the pots and schedules the next hand.
func (t *Table) announceWinners(foldOut bool, elapsed time.Duration) {
	winners := t.processWinners(foldOut)
	t.publish(Command{
		Name:  CommandGameWinners,
		Table: t.name,
		Data:  CommandData{Winners: winners},
	})
	t.game.ResetPots()
	t.settling = false
	t.sendPotUpdate()
	t.sendPlayerUpdate()

	wait := t.cfg.NextGameDelay - elapsed
	if wait < 0 {
		wait = 0
	}
	t.timers.schedule(timerNewGame, wait, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.closed {
			return
		}
		// A no-betting variant does not restart itself; it goes back to
		// waiting until someone starts the next flip.
		if !t.opts.Variant.Betting() {
			t.game = nil
			t.dispatchStatus()
			t.sendGameStatus()
			return
		}
		if err := t.newGame(); err != nil {
			t.log.Infof("table %s: next hand not started: %v", t.name, err)
			t.sendGameStatus()
		}
	})
}

// processWinners determines the winners of the main pot and each side pot,
// credits their stacks and returns the payout lines. Remainders from an
// uneven split go to the winning seat closest after the dealer button.
func (t *Table) processWinners(foldOut bool) []Winner {
	g := t.game

	type pot struct {
		key      string
		amount   int64
		eligible []*Player
	}
	pots := make([]pot, 0, len(g.SidePots)+1)
	for i, sp := range g.SidePots {
		eligible := make([]*Player, 0, len(sp.Players))
		for _, p := range sp.Players {
			if !p.Folded {
				eligible = append(eligible, p)
			}
		}
		pots = append(pots, pot{key: fmt.Sprintf("side-%d", i+1), amount: sp.Amount, eligible: eligible})
	}
	pots = append(pots, pot{key: "main", amount: g.Pot, eligible: t.mainPotPlayers()})

	if !foldOut {
		rankPlayerHands(t.players, g.Board)
	}

	// Nothing is staked in a no-betting variant; the flip is for the win
	// itself.
	if !t.opts.Variant.Betting() {
		var out []Winner
		for _, w := range handWinners(t.mainPotPlayers()) {
			out = append(out, w.winner("flip", 0))
		}
		return out
	}

	var out []Winner
	for _, pt := range pots {
		if pt.amount == 0 || len(pt.eligible) == 0 {
			continue
		}
		var winners []*Player
		if foldOut {
			winners = pt.eligible
		} else {
			winners = handWinners(pt.eligible)
		}
		if len(winners) == 0 {
			continue
		}

		share := pt.amount / int64(len(winners))
		remainder := pt.amount % int64(len(winners))
		first := t.closestAfterDealer(winners)

		for _, w := range winners {
			amount := share
			if w == first {
				amount += remainder
			}
			w.Chips += amount
			out = append(out, w.winner(pt.key, amount))
			t.log.Debugf("table %s: %s wins %d from %s pot", t.name, w.Name, amount, pt.key)
		}
	}
	return out
}

// mainPotPlayers are the seats still eligible for the uncapped pot.
func (t *Table) mainPotPlayers() []*Player {
	var out []*Player
	for _, p := range t.players {
		if !p.Folded && !p.HasSidePot {
			out = append(out, p)
		}
	}
	return out
}

// closestAfterDealer picks the candidate seated nearest after the dealer
// button, wrapping around the table.
func (t *Table) closestAfterDealer(candidates []*Player) *Player {
	n := len(t.players)
	best := candidates[0]
	bestDist := n + 1
	for _, c := range candidates {
		idx := t.indexOf(c.ID)
		if idx < 0 {
			continue
		}
		dist := ((idx-t.dealer-1)%n + n) % n
		if dist < bestDist {
			bestDist = dist
			best = c
		}
	}
	return best
}

// VoteKick registers one kick vote from voter against an away player and
// removes the target once the votes reach max(round(seats/2), 2).
func (t *Table) VoteKick(voterID, targetID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if voterID == targetID {
		return ErrSelfKick
	}
	if t.indexOf(voterID) < 0 {
		return fmt.Errorf("voter %s: %w", voterID, ErrTableNotFound)
	}
	targetIdx := t.indexOf(targetID)
	if targetIdx < 0 {
		return fmt.Errorf("target %s: %w", targetID, ErrTableNotFound)
	}
	target := t.players[targetIdx]
	if !target.AFK {
		t.log.Warnf("table %s: vote against %s rejected, player is not away", t.name, target.Name)
		return fmt.Errorf("player %s is not away", target.Name)
	}

	target.KickVotes[voterID] = struct{}{}

	threshold := int(math.Round(float64(len(t.players)) / 2))
	if threshold < 2 {
		threshold = 2
	}
	t.log.Debugf("table %s: %d/%d votes against %s", t.name, len(target.KickVotes), threshold, target.Name)
	if len(target.KickVotes) < threshold {
		return nil
	}
	return t.kickPlayer(target)
}

func (t *Table) kickPlayer(target *Player) error {
	t.publish(Command{
		Name:  CommandPlayerKicked,
		Table: t.name,
		Data:  CommandData{KickedPlayer: target.ID},
	})
	t.log.Infof("table %s: kicking %s", t.name, target.Name)
	return t.removePlayer(target.ID)
}

// ShowCards reveals the player's own hole cards to the table.
func (t *Table) ShowCards(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.indexOf(playerID)
	if idx < 0 {
		return fmt.Errorf("player %s: %w", playerID, ErrTableNotFound)
	}
	t.players[idx].ShowCards = true
	t.sendCardsBroadcast()
	return nil
}

// Rebuy tops a busted stack back up to the starting amount between hands.
func (t *Table) Rebuy(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.opts.Rebuy {
		return fmt.Errorf("%w: rebuy disabled", ErrInvalidConfig)
	}
	if t.handLive() {
		return fmt.Errorf("cannot rebuy mid-hand: %w", ErrGameInProgress)
	}
	idx := t.indexOf(playerID)
	if idx < 0 {
		return fmt.Errorf("player %s: %w", playerID, ErrTableNotFound)
	}
	p := t.players[idx]
	if p.Chips >= t.bigBlind {
		return fmt.Errorf("%s can still afford the blind", p.Name)
	}
	p.Chips = t.opts.Chips
	t.log.Infof("table %s: %s rebuys to %d", t.name, p.Name, p.Chips)
	t.sendPlayerUpdate()
	return nil
}

// Resync replays the current table state to one recipient.
func (t *Table) Resync(playerID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.publish(Command{
		Name:      CommandGameStatus,
		Table:     t.name,
		Recipient: playerID,
		Data:      CommandData{GameStatus: t.status()},
	})
	t.publish(Command{
		Name:      CommandPlayerUpdate,
		Table:     t.name,
		Recipient: playerID,
		Data:      CommandData{Players: t.overviews()},
	})
	if t.game == nil {
		return
	}
	t.publish(Command{
		Name:      CommandDealer,
		Table:     t.name,
		Recipient: playerID,
		Data:      CommandData{DealerPlayerID: t.players[t.dealer].ID},
	})
	t.publish(Command{
		Name:      CommandCurrentPlayer,
		Table:     t.name,
		Recipient: playerID,
		Data:      CommandData{CurrentPlayerID: t.players[t.current].ID},
	})
	t.publish(Command{
		Name:      CommandBoardUpdated,
		Table:     t.name,
		Recipient: playerID,
		Data:      CommandData{Board: viewCards(t.game.Board)},
	})
	t.publish(Command{
		Name:      CommandNewRound,
		Table:     t.name,
		Recipient: playerID,
		Data:      CommandData{Round: t.game.Round.Type},
	})
	t.publish(Command{
		Name:      CommandPotUpdate,
		Table:     t.name,
		Recipient: playerID,
		Data:      CommandData{Pot: t.game.Pot, SidePots: t.sidePotViews()},
	})
	t.publish(Command{
		Name:      CommandMaxBetUpdate,
		Table:     t.name,
		Recipient: playerID,
		Data:      CommandData{MaxBet: t.game.MaxBet()},
	})
	if idx := t.indexOf(playerID); idx >= 0 {
		p := t.players[idx]
		t.publish(Command{
			Name:      CommandPlayersCards,
			Table:     t.name,
			Recipient: playerID,
			Data:      CommandData{PlayerID: p.ID, Players: []PlayerOverview{t.revealedOverview(p)}},
		})
	}
}

// Destroy tears the table down. All pending timers are cancelled so no
// callback fires against a destroyed table.
func (t *Table) Destroy() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.close()
}

func (t *Table) close() {
	if t.closed {
		return
	}
	t.closed = true
	t.timers.stopAll()
	t.publish(Command{Name: CommandTableClosed, Table: t.name})
	t.log.Infof("table %s closed", t.name)
}

// armTurnTimers arms the auto-fold and away timers for the seat on turn.
// Re-arming replaces the previous timers, so only the seat currently acting
// is ever watched.
func (t *Table) armTurnTimers() {
	if t.current >= len(t.players) {
		return
	}
	playerID := t.players[t.current].ID

	if t.opts.TurnTime > 0 {
		d := time.Duration(t.opts.TurnTime) * time.Second
		t.timers.schedule(timerMarkInactive, d, func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			if t.closed || !t.handLive() {
				return
			}
			idx := t.indexOf(playerID)
			if idx < 0 || idx != t.current || t.players[idx].Folded {
				return
			}
			t.log.Debugf("table %s: auto-folding %s", t.name, t.players[idx].Name)
			t.fold(t.players[idx], false)
		})
	}

	t.timers.schedule(timerMarkAFK, t.opts.AFKTimeout, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.closed {
			return
		}
		idx := t.indexOf(playerID)
		if idx < 0 || t.players[idx].AFK {
			return
		}
		t.players[idx].AFK = true
		t.log.Debugf("table %s: %s is away", t.name, t.players[idx].Name)
		t.sendPlayerUpdate()
	})
}

// revealCards flips every live hand face up for the showdown.
func (t *Table) revealCards() {
	for _, p := range t.players {
		if !p.Folded {
			p.ShowCards = true
		}
	}
	t.sendCardsBroadcast()
}

func (t *Table) handLive() bool {
	return t.game != nil && !t.game.Ended
}

func (t *Table) activePlayers() []*Player {
	var out []*Player
	for _, p := range t.players {
		if !p.Folded {
			out = append(out, p)
		}
	}
	return out
}

func (t *Table) indexOf(playerID string) int {
	for i, p := range t.players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

func (t *Table) clampIndex(idx int) int {
	if len(t.players) == 0 {
		return 0
	}
	if idx < 0 || idx >= len(t.players) {
		return 0
	}
	return idx
}

// removeSeat drops the seat at idx and keeps the dealer and turn indices
// pointing at the seats they pointed at before.
func (t *Table) removeSeat(idx int) {
	if idx < 0 || idx >= len(t.players) {
		return
	}
	t.players = append(t.players[:idx], t.players[idx+1:]...)
	n := len(t.players)
	if n == 0 {
		t.dealer = -1
		t.current = 0
		return
	}
	if idx < t.dealer {
		t.dealer--
	} else if t.dealer >= n {
		t.dealer = 0
	}
	if idx < t.current {
		t.current--
	} else if t.current >= n {
		t.current = 0
	}
}

func (t *Table) overviews() []PlayerOverview {
	out := make([]PlayerOverview, len(t.players))
	for i, p := range t.players {
		out[i] = p.Overview()
	}
	return out
}

func (t *Table) revealedOverview(p *Player) PlayerOverview {
	ov := p.Overview()
	ov.Cards = viewCards(p.Cards)
	return ov
}

func (t *Table) sidePotViews() []SidePotView {
	if t.game == nil || len(t.game.SidePots) == 0 {
		return nil
	}
	out := make([]SidePotView, len(t.game.SidePots))
	for i, sp := range t.game.SidePots {
		out[i] = sp.view()
	}
	return out
}

func (t *Table) sendPlayerUpdate() {
	t.publish(Command{
		Name:  CommandPlayerUpdate,
		Table: t.name,
		Data:  CommandData{Players: t.overviews()},
	})
}

// sendHoleCards sends each seat its own cards privately.
func (t *Table) sendHoleCards() {
	for _, p := range t.players {
		t.publish(Command{
			Name:      CommandPlayersCards,
			Table:     t.name,
			Recipient: p.ID,
			Data:      CommandData{PlayerID: p.ID, Players: []PlayerOverview{t.revealedOverview(p)}},
		})
	}
}

// sendCardsBroadcast sends the table-wide card view; revealed seats show
// their cards, everyone else stays face down.
func (t *Table) sendCardsBroadcast() {
	t.publish(Command{
		Name:  CommandPlayersCards,
		Table: t.name,
		Data:  CommandData{Players: t.overviews()},
	})
}

func (t *Table) sendPotUpdate() {
	if t.game == nil {
		return
	}
	t.publish(Command{
		Name:  CommandPotUpdate,
		Table: t.name,
		Data:  CommandData{Pot: t.game.Pot, SidePots: t.sidePotViews()},
	})
}

func (t *Table) sendMaxBet() {
	if t.game == nil {
		return
	}
	t.publish(Command{
		Name:  CommandMaxBetUpdate,
		Table: t.name,
		Data:  CommandData{MaxBet: t.game.MaxBet()},
	})
}

func (t *Table) sendBoard() {
	if t.game == nil {
		return
	}
	t.publish(Command{
		Name:  CommandBoardUpdated,
		Table: t.name,
		Data:  CommandData{Board: viewCards(t.game.Board)},
	})
}

func (t *Table) sendRound() {
	if t.game == nil {
		return
	}
	t.publish(Command{
		Name:  CommandNewRound,
		Table: t.name,
		Data:  CommandData{Round: t.game.Round.Type},
	})
}

func (t *Table) sendDealer() {
	if t.dealer < 0 || t.dealer >= len(t.players) {
		return
	}
	t.publish(Command{
		Name:  CommandDealer,
		Table: t.name,
		Data:  CommandData{DealerPlayerID: t.players[t.dealer].ID},
	})
}

func (t *Table) sendCurrentPlayer() {
	if t.current < 0 || t.current >= len(t.players) {
		return
	}
	t.publish(Command{
		Name:  CommandCurrentPlayer,
		Table: t.name,
		Data:  CommandData{CurrentPlayerID: t.players[t.current].ID},
	})
}

func (t *Table) sendGameStatus() {
	t.publish(Command{
		Name:  CommandGameStatus,
		Table: t.name,
		Data:  CommandData{GameStatus: t.status()},
	})
}
