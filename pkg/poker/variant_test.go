package poker

import "testing"

func TestTexasHoldemRounds(t *testing.T) {
	v := TexasHoldem{}
	if v.HoleCards() != 2 {
		t.Fatalf("hole cards: got %d, want 2", v.HoleCards())
	}
	if !v.Betting() {
		t.Fatal("hold'em is a betting game")
	}

	want := []RoundType{RoundFlop, RoundTurn, RoundRiver}
	cur := RoundDeal
	for _, w := range want {
		next, ok := v.NextRound(cur)
		if !ok || next != w {
			t.Fatalf("NextRound(%s): got %s, %v, want %s", cur, next, ok, w)
		}
		cur = next
	}
	if _, ok := v.NextRound(RoundRiver); ok {
		t.Fatal("expected no street after the river")
	}
}

func TestLookupVariant(t *testing.T) {
	for _, name := range []string{"", "texas-holdem"} {
		v, err := LookupVariant(name)
		if err != nil {
			t.Fatalf("LookupVariant(%q): %v", name, err)
		}
		if v.Name() != "texas-holdem" {
			t.Fatalf("LookupVariant(%q): got %s", name, v.Name())
		}
	}
	v, err := LookupVariant("coin-flip")
	if err != nil {
		t.Fatalf("LookupVariant(coin-flip): %v", err)
	}
	if v.Name() != "coin-flip" || v.Betting() {
		t.Fatalf("coin flip resolved to %s (betting %v)", v.Name(), v.Betting())
	}
	if _, err := LookupVariant("omaha"); err == nil {
		t.Fatal("expected unknown variant to fail")
	}
}
