package poker

import "math/rand"

// RoundType marks the betting round a hand is in.
type RoundType string

const (
	RoundDeal     RoundType = "deal"
	RoundFlop     RoundType = "flop"
	RoundTurn     RoundType = "turn"
	RoundRiver    RoundType = "river"
	RoundShowdown RoundType = "showdown"
)

// GameStatus is the coarse table status reported to clients.
type GameStatus string

const (
	StatusWaiting GameStatus = "waiting"
	StatusStarted GameStatus = "started"
	StatusEnded   GameStatus = "ended"
)

// Round is one betting round: its marker plus the per-seat bet ledger. The
// ledger shares *Bet pointers with the seats; both are cleared together when
// the round settles.
type Round struct {
	Type RoundType

	bets map[string]*Bet

	// checked records seats that took a voluntary no-cost action this
	// round. It is what eventually releases the big-blind option.
	checked map[string]bool
}

func newRound(t RoundType) Round {
	return Round{
		Type:    t,
		bets:    make(map[string]*Bet),
		checked: make(map[string]bool),
	}
}

// SidePot is a capped pot layer restricted to the players who contributed at
// least its tier.
type SidePot struct {
	Amount  int64
	Players []*Player
}

// view projects the side pot for pot-update commands.
func (sp *SidePot) view() SidePotView {
	players := make([]SidePotPlayer, len(sp.Players))
	for i, p := range sp.Players {
		players[i] = p.SidePotView()
	}
	return SidePotView{Amount: sp.Amount, Players: players}
}

// Game is one hand: a freshly shuffled deck, the community board, the
// current betting round, the main pot and any side pots. It is created at
// hand start and replaced at the next hand start, never shared across hands.
type Game struct {
	deck     *Deck
	Board    []Card
	Round    Round
	Pot      int64
	SidePots []*SidePot
	Ended    bool
}

// NewGame creates a fresh hand with a shuffled deck.
func NewGame(rng *rand.Rand) *Game {
	return &Game{
		deck:  NewDeck(rng),
		Round: newRound(RoundDeal),
	}
}

// PlaceBet records a seat's commitment for the current round, replacing any
// earlier one.
func (g *Game) PlaceBet(p *Player, bet *Bet) {
	g.Round.bets[p.ID] = bet
}

// RecordCheck notes a voluntary no-cost action by the seat.
func (g *Game) RecordCheck(p *Player) {
	g.Round.checked[p.ID] = true
}

// RemoveBet pulls a seat's pending bet out of the round ledger (used when a
// seat is forcibly removed mid-round).
func (g *Game) RemoveBet(playerID string) {
	delete(g.Round.bets, playerID)
}

// BetOf returns the seat's current-round bet, nil if none.
func (g *Game) BetOf(playerID string) *Bet {
	return g.Round.bets[playerID]
}

// MaxBet is the highest commitment in the current round.
func (g *Game) MaxBet() int64 {
	var max int64
	for _, b := range g.Round.bets {
		if b.Amount > max {
			max = b.Amount
		}
	}
	return max
}

// LowestBet is the smallest still-unsettled positive commitment; zero when
// the ledger holds none.
func (g *Game) LowestBet() int64 {
	var low int64
	for _, b := range g.Round.bets {
		if b.Amount > 0 && (low == 0 || b.Amount < low) {
			low = b.Amount
		}
	}
	return low
}

// LastBet returns the single remaining positive commitment, if exactly one
// seat still has chips in the ledger.
func (g *Game) LastBet() (playerID string, amount int64, ok bool) {
	for id, b := range g.Round.bets {
		if b.Amount > 0 {
			if ok {
				return "", 0, false
			}
			playerID, amount, ok = id, b.Amount, true
		}
	}
	return playerID, amount, ok
}

// MoveBetsToPot settles the whole round ledger into the main pot.
func (g *Game) MoveBetsToPot() {
	for id, b := range g.Round.bets {
		g.Pot += b.Amount
		delete(g.Round.bets, id)
	}
}

// CreateSidePot freezes the accumulated main pot into a capped layer that
// only the given players may win, and marks exhausted all-in seats so later
// layers exclude them.
func (g *Game) CreateSidePot(players []*Player) {
	eligible := make([]*Player, len(players))
	copy(eligible, players)

	g.SidePots = append(g.SidePots, &SidePot{Amount: g.Pot, Players: eligible})
	g.Pot = 0

	for _, p := range eligible {
		if p.AllIn && (p.Bet == nil || p.Bet.Amount == 0) {
			p.HasSidePot = true
		}
	}
}

// ResetPots zeroes all pots after payout.
func (g *Game) ResetPots() {
	g.Pot = 0
	g.SidePots = nil
}

// NewRound advances the hand to the given betting round, dealing the board
// cards it opens with.
func (g *Game) NewRound(t RoundType) {
	switch t {
	case RoundFlop:
		g.dealBoard(3)
	case RoundTurn, RoundRiver:
		g.dealBoard(1)
	}
	g.Round = newRound(t)
}

func (g *Game) dealBoard(n int) {
	for i := 0; i < n; i++ {
		card, ok := g.deck.Draw()
		if !ok {
			// A 52-card deck cannot run out with at most 8 seats.
			panic("poker: deck exhausted while dealing the board")
		}
		g.Board = append(g.Board, card)
	}
}

// End marks the hand finished.
func (g *Game) End() {
	g.Ended = true
}
