package poker

import "fmt"

// Variant is the hand-progression strategy a table is created with. One
// Table type serves every game variant; the variant decides how cards are
// dealt and how streets follow each other.
type Variant interface {
	Name() string

	// HoleCards is the number of cards dealt to each seat.
	HoleCards() int

	// Betting reports whether the variant has betting rounds. Without
	// them a hand runs straight out to showdown with every card face up.
	Betting() bool

	// NextRound maps a betting round to its successor; ok is false after
	// the last betting street.
	NextRound(cur RoundType) (next RoundType, ok bool)
}

// TexasHoldem is the stock variant: two hole cards, Deal through River.
type TexasHoldem struct{}

func (TexasHoldem) Name() string { return "texas-holdem" }

func (TexasHoldem) HoleCards() int { return 2 }

func (TexasHoldem) Betting() bool { return true }

func (TexasHoldem) NextRound(cur RoundType) (RoundType, bool) {
	switch cur {
	case RoundDeal:
		return RoundFlop, true
	case RoundFlop:
		return RoundTurn, true
	case RoundTurn:
		return RoundRiver, true
	default:
		return cur, false
	}
}

// CoinFlip deals hold'em hands face up and runs the board out with no
// betting; the best hand simply wins the flip.
type CoinFlip struct {
	TexasHoldem
}

func (CoinFlip) Name() string { return "coin-flip" }

func (CoinFlip) Betting() bool { return false }

// LookupVariant resolves a variant by its wire name. The empty name picks
// the default.
func LookupVariant(name string) (Variant, error) {
	switch name {
	case "", TexasHoldem{}.Name():
		return TexasHoldem{}, nil
	case CoinFlip{}.Name():
		return CoinFlip{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown game variant %q", ErrInvalidConfig, name)
	}
}
