package poker

import "fmt"

// Player represents one seat at a table. All mutation happens under the
// owning table's lock; Player itself only projects state.
type Player struct {
	ID    string
	Name  string
	Color string
	Chips int64
	Cards []Card

	// Bet is the commitment for the current betting round, nil between
	// rounds. The amount has already been moved out of Chips.
	Bet *Bet

	Folded       bool
	AllIn        bool
	HasSidePot   bool
	Disconnected bool
	AFK          bool
	ShowCards    bool
	Dealer       bool

	// KickVotes holds the IDs of seats that voted to remove this player.
	KickVotes map[string]struct{}

	// hand is the evaluated strength at showdown, nil otherwise.
	hand *HandValue
}

// NewPlayer creates a seated player with the given starting chips.
func NewPlayer(id, name, color string, chips int64) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		Color:     color,
		Chips:     chips,
		Cards:     make([]Card, 0, 2),
		KickVotes: make(map[string]struct{}),
	}
}

// Reset clears all per-hand state, keeping identity, chips and seat flags.
func (p *Player) Reset() {
	p.Cards = make([]Card, 0, 2)
	p.Bet = nil
	p.Folded = false
	p.AllIn = false
	p.HasSidePot = false
	p.ShowCards = false
	p.hand = nil
}

// Pay moves chips into a bet. Chips never go negative and a negative
// amount never credits the stack.
func (p *Player) Pay(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("cannot pay negative amount %d", amount)
	}
	if p.Chips-amount < 0 {
		return fmt.Errorf("%w: bet %d exceeds stack %d", ErrInsufficientFunds, amount, p.Chips)
	}
	p.Chips -= amount
	return nil
}

// AvailableChips is the stack plus whatever is already committed this round.
// Re-betting replaces the existing commitment, so this is the true ceiling
// for a new bet.
func (p *Player) AvailableChips() int64 {
	if p.Bet != nil {
		return p.Chips + p.Bet.Amount
	}
	return p.Chips
}

// ClearKickVotes forgets all pending votes against this player.
func (p *Player) ClearKickVotes() {
	p.KickVotes = make(map[string]struct{})
}

// PlayerOverview is the public per-seat projection sent to clients.
type PlayerOverview struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Chips        int64      `json:"chips"`
	Bet          *Bet       `json:"bet"`
	Cards        []CardView `json:"cards"`
	AllIn        bool       `json:"allIn"`
	Folded       bool       `json:"folded"`
	Color        string     `json:"color"`
	Disconnected bool       `json:"disconnected"`
	AFK          bool       `json:"afk"`
}

// Overview projects the seat for broadcast. Hole cards are face down unless
// the player revealed them and is still in the hand.
func (p *Player) Overview() PlayerOverview {
	var cards []CardView
	if p.ShowCards && !p.Folded {
		cards = viewCards(p.Cards)
	} else {
		cards = hiddenCards(p.Cards)
	}
	return PlayerOverview{
		ID:           p.ID,
		Name:         p.Name,
		Chips:        p.Chips,
		Bet:          p.Bet,
		Cards:        cards,
		AllIn:        p.AllIn,
		Folded:       p.Folded,
		Color:        p.Color,
		Disconnected: p.Disconnected,
		AFK:          p.AFK,
	}
}

// SidePotPlayer is the slim projection used inside pot updates.
type SidePotPlayer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	AllIn bool   `json:"allIn"`
}

// SidePotView projects the seat for side-pot eligibility lists.
func (p *Player) SidePotView() SidePotPlayer {
	return SidePotPlayer{
		ID:    p.ID,
		Name:  p.Name,
		Color: p.Color,
		AllIn: p.AllIn,
	}
}

// Winner describes one payout line of a finished hand.
type Winner struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	AllIn  bool   `json:"allIn"`
	Hand   string `json:"hand,omitempty"`
	PotKey string `json:"potType"`
	Amount int64  `json:"amount"`
}

// winner projects the seat as a payout line. The hand description is empty
// when the pot was won without a showdown.
func (p *Player) winner(potKey string, amount int64) Winner {
	w := Winner{
		ID:     p.ID,
		Name:   p.Name,
		AllIn:  p.AllIn,
		PotKey: potKey,
		Amount: amount,
	}
	if p.hand != nil {
		w.Hand = p.hand.Description
	}
	return w
}
