package poker

// BetKind classifies a bet within a betting round.
type BetKind string

const (
	BetSmallBlind BetKind = "small-blind"
	BetBigBlind   BetKind = "big-blind"
	BetBet        BetKind = "bet"
	BetRaise      BetKind = "raise"
	BetCall       BetKind = "call"
	BetAllIn      BetKind = "all-in"
)

// Bet is a single player's commitment for the current betting round. It is
// attached to a seat only until the round settles into the pot.
type Bet struct {
	Amount int64   `json:"amount"`
	Kind   BetKind `json:"kind"`
}

// NewBet creates a bet of the given amount and kind.
func NewBet(amount int64, kind BetKind) *Bet {
	return &Bet{Amount: amount, Kind: kind}
}
