package poker

import (
	"github.com/chehsunliu/poker"
)

// HandRank represents the rank class of a poker hand
type HandRank int

const (
	HighCard HandRank = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// HandValue is the outcome of evaluating a hand. The engine treats the
// evaluator as opaque: Score orders hands totally, Description names them.
type HandValue struct {
	Rank        HandRank
	Score       int32 // evaluator score, lower is better
	Description string
}

// convertCard converts our Card type to the evaluator's card type.
func convertCard(card Card) poker.Card {
	var rankChar byte
	switch card.value {
	case Two:
		rankChar = '2'
	case Three:
		rankChar = '3'
	case Four:
		rankChar = '4'
	case Five:
		rankChar = '5'
	case Six:
		rankChar = '6'
	case Seven:
		rankChar = '7'
	case Eight:
		rankChar = '8'
	case Nine:
		rankChar = '9'
	case Ten:
		rankChar = 'T'
	case Jack:
		rankChar = 'J'
	case Queen:
		rankChar = 'Q'
	case King:
		rankChar = 'K'
	case Ace:
		rankChar = 'A'
	}

	var suitChar byte
	switch card.suit {
	case Spades:
		suitChar = 's'
	case Hearts:
		suitChar = 'h'
	case Diamonds:
		suitChar = 'd'
	case Clubs:
		suitChar = 'c'
	}

	return poker.NewCard(string([]byte{rankChar, suitChar}))
}

// convertRankClass maps the evaluator's rank class to our HandRank.
func convertRankClass(rankClass int32) HandRank {
	switch rankClass {
	case 1:
		return StraightFlush
	case 2:
		return FourOfAKind
	case 3:
		return FullHouse
	case 4:
		return Flush
	case 5:
		return Straight
	case 6:
		return ThreeOfAKind
	case 7:
		return TwoPair
	case 8:
		return Pair
	default:
		return HighCard
	}
}

// EvaluateHand ranks the best 5-card hand out of the hole cards plus the
// board.
func EvaluateHand(holeCards, board []Card) HandValue {
	all := make([]poker.Card, 0, len(holeCards)+len(board))
	for _, c := range holeCards {
		all = append(all, convertCard(c))
	}
	for _, c := range board {
		all = append(all, convertCard(c))
	}

	score := poker.Evaluate(all)

	return HandValue{
		Rank:        convertRankClass(poker.RankClass(score)),
		Score:       score,
		Description: poker.RankString(score),
	}
}

// CompareHands returns 1 if a beats b, -1 if b beats a and 0 on a tie.
// The evaluator scores hands so that lower is better.
func CompareHands(a, b HandValue) int {
	switch {
	case a.Score < b.Score:
		return 1
	case a.Score > b.Score:
		return -1
	default:
		return 0
	}
}

// rankPlayerHands evaluates every non-folded player's hand against the board.
func rankPlayerHands(players []*Player, board []Card) {
	for _, p := range players {
		if p.Folded {
			continue
		}
		hv := EvaluateHand(p.Cards, board)
		p.hand = &hv
	}
}

// handWinners returns the subset of players tied for the best hand. Players
// without an evaluated hand are skipped.
func handWinners(players []*Player) []*Player {
	var best *HandValue
	var winners []*Player
	for _, p := range players {
		if p.hand == nil {
			continue
		}
		switch {
		case best == nil, CompareHands(*p.hand, *best) > 0:
			best = p.hand
			winners = []*Player{p}
		case CompareHands(*p.hand, *best) == 0:
			winners = append(winners, p)
		}
	}
	return winners
}
