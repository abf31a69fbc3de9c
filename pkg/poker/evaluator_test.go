package poker

import "testing"

func TestEvaluateHandRanks(t *testing.T) {
	board := []Card{
		NewCard(Spades, Ten),
		NewCard(Spades, Jack),
		NewCard(Spades, Queen),
		NewCard(Hearts, Two),
		NewCard(Diamonds, Seven),
	}

	royal := EvaluateHand([]Card{NewCard(Spades, King), NewCard(Spades, Ace)}, board)
	if royal.Rank != StraightFlush {
		t.Fatalf("expected straight flush, got %v (%s)", royal.Rank, royal.Description)
	}

	pair := EvaluateHand([]Card{NewCard(Clubs, Two), NewCard(Diamonds, Three)}, board)
	if pair.Rank != Pair {
		t.Fatalf("expected pair, got %v (%s)", pair.Rank, pair.Description)
	}

	if CompareHands(royal, pair) != 1 {
		t.Fatal("straight flush should beat a pair")
	}
	if CompareHands(pair, royal) != -1 {
		t.Fatal("pair should lose to a straight flush")
	}
}

func TestHandWinnersTie(t *testing.T) {
	// Broadway on the board, neither hole hand improves: both play the
	// board and tie.
	board := []Card{
		NewCard(Spades, Ten),
		NewCard(Hearts, Jack),
		NewCard(Diamonds, Queen),
		NewCard(Clubs, King),
		NewCard(Spades, Ace),
	}

	a := NewPlayer("a", "a", "", 0)
	a.Cards = []Card{NewCard(Hearts, Two), NewCard(Diamonds, Three)}
	b := NewPlayer("b", "b", "", 0)
	b.Cards = []Card{NewCard(Clubs, Four), NewCard(Hearts, Five)}
	c := NewPlayer("c", "c", "", 0)
	c.Cards = []Card{NewCard(Spades, Two), NewCard(Clubs, Seven)}
	c.Folded = true

	rankPlayerHands([]*Player{a, b, c}, board)
	winners := handWinners([]*Player{a, b, c})

	if len(winners) != 2 {
		t.Fatalf("expected 2 tied winners, got %d", len(winners))
	}
	for _, w := range winners {
		if w.ID == "c" {
			t.Fatal("folded player must not win")
		}
	}
}

func TestHandWinnersBestHand(t *testing.T) {
	board := []Card{
		NewCard(Spades, Ten),
		NewCard(Hearts, Ten),
		NewCard(Diamonds, Four),
		NewCard(Clubs, Nine),
		NewCard(Spades, Two),
	}

	trips := NewPlayer("trips", "trips", "", 0)
	trips.Cards = []Card{NewCard(Diamonds, Ten), NewCard(Hearts, Three)}
	pair := NewPlayer("pair", "pair", "", 0)
	pair.Cards = []Card{NewCard(Clubs, Four), NewCard(Hearts, Five)}

	rankPlayerHands([]*Player{trips, pair}, board)
	winners := handWinners([]*Player{trips, pair})

	if len(winners) != 1 || winners[0].ID != "trips" {
		t.Fatalf("expected trips to win alone, got %v", winners)
	}
}
