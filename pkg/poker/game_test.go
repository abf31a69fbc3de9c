package poker

import (
	"math/rand"
	"testing"
)

func TestMoveBetsToPot(t *testing.T) {
	g := NewGame(rand.New(rand.NewSource(1)))
	a := NewPlayer("a", "a", "", 100)
	b := NewPlayer("b", "b", "", 100)

	g.PlaceBet(a, NewBet(30, BetBet))
	g.PlaceBet(b, NewBet(30, BetCall))
	if g.MaxBet() != 30 {
		t.Fatalf("max bet = %d, want 30", g.MaxBet())
	}

	g.MoveBetsToPot()
	if g.Pot != 60 {
		t.Fatalf("pot = %d, want 60", g.Pot)
	}
	if len(g.Round.bets) != 0 {
		t.Fatalf("ledger not cleared, %d entries remain", len(g.Round.bets))
	}
}

func TestCreateSidePotFreezesMainPot(t *testing.T) {
	g := NewGame(rand.New(rand.NewSource(1)))
	a := NewPlayer("a", "a", "", 0)
	a.AllIn = true
	b := NewPlayer("b", "b", "", 100)

	g.Pot = 150
	g.CreateSidePot([]*Player{a, b})

	if g.Pot != 0 {
		t.Fatalf("pot = %d after carving, want 0", g.Pot)
	}
	if len(g.SidePots) != 1 || g.SidePots[0].Amount != 150 {
		t.Fatalf("unexpected side pots %+v", g.SidePots)
	}
	if !a.HasSidePot {
		t.Fatal("exhausted all-in seat should be capped at the side pot")
	}
	if b.HasSidePot {
		t.Fatal("live seat must stay eligible for the main pot")
	}
}

func TestLastBet(t *testing.T) {
	g := NewGame(rand.New(rand.NewSource(1)))
	a := NewPlayer("a", "a", "", 100)
	b := NewPlayer("b", "b", "", 100)

	if _, _, ok := g.LastBet(); ok {
		t.Fatal("empty ledger reported a last bet")
	}

	g.PlaceBet(a, NewBet(40, BetBet))
	id, amount, ok := g.LastBet()
	if !ok || id != "a" || amount != 40 {
		t.Fatalf("last bet = %s/%d/%v, want a/40/true", id, amount, ok)
	}

	g.PlaceBet(b, NewBet(60, BetRaise))
	if _, _, ok := g.LastBet(); ok {
		t.Fatal("two live bets must not report a single last bet")
	}
}

func TestNewRoundDealsBoard(t *testing.T) {
	g := NewGame(rand.New(rand.NewSource(1)))
	if g.Round.Type != RoundDeal {
		t.Fatalf("fresh hand round = %s, want %s", g.Round.Type, RoundDeal)
	}

	g.NewRound(RoundFlop)
	if len(g.Board) != 3 {
		t.Fatalf("flop board has %d cards, want 3", len(g.Board))
	}
	g.NewRound(RoundTurn)
	if len(g.Board) != 4 {
		t.Fatalf("turn board has %d cards, want 4", len(g.Board))
	}
	g.NewRound(RoundRiver)
	if len(g.Board) != 5 {
		t.Fatalf("river board has %d cards, want 5", len(g.Board))
	}
}
