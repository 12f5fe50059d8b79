package engine

import "testing"

func potPlayer(seat, totalBet int, state PlayerState) *Player {
	return &Player{Seat: seat, State: state, TotalBet: totalBet}
}

func TestBuildPotsSinglePot(t *testing.T) {
	t.Parallel()

	players := []*Player{
		potPlayer(0, 100, Active),
		potPlayer(1, 100, Active),
		potPlayer(2, 100, Active),
	}
	pots := BuildPots(players)
	if len(pots) != 1 {
		t.Fatalf("got %d pots, want 1", len(pots))
	}
	if pots[0].Amount != 300 {
		t.Errorf("pot amount = %d, want 300", pots[0].Amount)
	}
	if len(pots[0].Eligible) != 3 {
		t.Errorf("eligible = %v, want 3 seats", pots[0].Eligible)
	}
}

func TestBuildPotsLayeredAllIns(t *testing.T) {
	t.Parallel()

	// A is all in for 300, B for 800, C covers with 1300. C's last 500 is
	// uncalled and comes back as a pot only C can win.
	players := []*Player{
		potPlayer(0, 300, AllIn),
		potPlayer(1, 800, AllIn),
		potPlayer(2, 1300, Active),
	}
	pots := BuildPots(players)
	if len(pots) != 3 {
		t.Fatalf("got %d pots, want 3: %+v", len(pots), pots)
	}
	want := []struct {
		amount   int
		eligible int
	}{
		{900, 3},
		{1000, 2},
		{500, 1},
	}
	for i, w := range want {
		if pots[i].Amount != w.amount {
			t.Errorf("pot %d amount = %d, want %d", i, pots[i].Amount, w.amount)
		}
		if len(pots[i].Eligible) != w.eligible {
			t.Errorf("pot %d eligible = %v, want %d seats", i, pots[i].Eligible, w.eligible)
		}
	}
}

func TestBuildPotsFoldedChipsStayIn(t *testing.T) {
	t.Parallel()

	// The folder's 50 stays in the main pot but the folder is not eligible.
	players := []*Player{
		potPlayer(0, 50, Folded),
		potPlayer(1, 200, Active),
		potPlayer(2, 200, Active),
	}
	pots := BuildPots(players)
	if len(pots) != 1 {
		t.Fatalf("got %d pots, want 1: %+v", len(pots), pots)
	}
	if pots[0].Amount != 450 {
		t.Errorf("pot amount = %d, want 450", pots[0].Amount)
	}
	for _, seat := range pots[0].Eligible {
		if seat == 0 {
			t.Error("folded seat is eligible")
		}
	}
}

func TestBuildPotsMergesEqualEligibility(t *testing.T) {
	t.Parallel()

	// A folded mid-level split would otherwise produce two pots with the
	// same eligible seats; they must merge.
	players := []*Player{
		potPlayer(0, 100, Folded),
		potPlayer(1, 300, Active),
		potPlayer(2, 300, Active),
	}
	pots := BuildPots(players)
	if len(pots) != 1 {
		t.Fatalf("got %d pots, want 1: %+v", len(pots), pots)
	}
	if pots[0].Amount != 700 {
		t.Errorf("pot amount = %d, want 700", pots[0].Amount)
	}
}

func TestBuildPotsEmpty(t *testing.T) {
	t.Parallel()

	if pots := BuildPots([]*Player{potPlayer(0, 0, Active)}); pots != nil {
		t.Fatalf("got %+v, want nil", pots)
	}
}

func TestPotTotal(t *testing.T) {
	t.Parallel()

	players := []*Player{
		potPlayer(0, 300, AllIn),
		potPlayer(1, 800, Folded),
		nil,
	}
	if got := PotTotal(players); got != 1100 {
		t.Fatalf("PotTotal = %d, want 1100", got)
	}
}
