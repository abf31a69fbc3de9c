package poker

import (
	"math/rand"
	"testing"
)

func TestDeckHas52UniqueCards(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(1)))
	if d.Size() != 52 {
		t.Fatalf("expected 52 cards, got %d", d.Size())
	}

	seen := make(map[string]bool)
	for {
		card, ok := d.Draw()
		if !ok {
			break
		}
		if seen[card.String()] {
			t.Fatalf("duplicate card %s", card.String())
		}
		seen[card.String()] = true
	}
	if len(seen) != 52 {
		t.Fatalf("expected 52 unique cards, got %d", len(seen))
	}
}

func TestDeckDraw(t *testing.T) {
	d := NewDeck(rand.New(rand.NewSource(1)))
	if _, ok := d.Draw(); !ok {
		t.Fatal("draw from a full deck failed")
	}
	if d.Size() != 51 {
		t.Fatalf("expected 51 cards after a draw, got %d", d.Size())
	}

	for d.Size() > 0 {
		d.Draw()
	}
	if _, ok := d.Draw(); ok {
		t.Fatal("draw from an empty deck succeeded")
	}
}

func TestDeterministicShuffle(t *testing.T) {
	a := NewDeck(rand.New(rand.NewSource(7)))
	b := NewDeck(rand.New(rand.NewSource(7)))
	for a.Size() > 0 {
		ca, _ := a.Draw()
		cb, _ := b.Draw()
		if ca != cb {
			t.Fatalf("same seed produced different decks: %s vs %s", ca, cb)
		}
	}
}

func TestHiddenCardView(t *testing.T) {
	card := NewCard(Spades, Ace)
	if v := card.View(); v.Value != "A" || v.Figure != "♠" {
		t.Fatalf("unexpected view %+v", v)
	}
	if v := HiddenCardView(); v.Value != "" || v.Figure != "back" {
		t.Fatalf("unexpected hidden view %+v", v)
	}
}
