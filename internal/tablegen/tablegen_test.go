package tablegen

import (
	"bytes"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerengine/internal/randutil"
	"github.com/lox/pokerengine/poker"
)

func TestHashOrderIndependent(t *testing.T) {
	t.Parallel()

	cards := poker.MustParseCards("As2dKh7c9s")
	want := Hash(cards)

	rng := randutil.New(5)
	for i := 0; i < 20; i++ {
		rng.Shuffle(len(cards), func(a, b int) {
			cards[a], cards[b] = cards[b], cards[a]
		})
		if got := Hash(cards); got != want {
			t.Fatalf("hash changed with card order: %d vs %d", got, want)
		}
	}
}

func TestTableRoundTrip(t *testing.T) {
	t.Parallel()

	src := &Table{K: 12345, Slots: make([]uint32, TableSize)}
	src.Slots[0] = 0xDEADBEEF
	src.Slots[TableSize-1] = 42

	var buf bytes.Buffer
	if _, err := src.WriteTo(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.K != src.K {
		t.Errorf("K = %d, want %d", got.K, src.K)
	}
	if got.Slots[0] != src.Slots[0] || got.Slots[TableSize-1] != src.Slots[TableSize-1] {
		t.Error("slot payload did not round trip")
	}
}

func TestReadRejectsCorruption(t *testing.T) {
	t.Parallel()

	src := &Table{K: 7, Slots: make([]uint32, TableSize)}
	var buf bytes.Buffer
	if _, err := src.WriteTo(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	data := buf.Bytes()
	data[40] ^= 0xFF // flip a payload byte
	if _, err := Read(bytes.NewReader(data)); err == nil {
		t.Error("expected checksum error for corrupted payload")
	}

	data2 := append([]byte(nil), data...)
	copy(data2[0:4], "NOPE")
	if _, err := Read(bytes.NewReader(data2)); err == nil {
		t.Error("expected magic error")
	}

	if _, err := Read(bytes.NewReader(data[:10])); err == nil {
		t.Error("expected error for truncated input")
	}
}

// TestBuildMatchesEvaluator is the full faithfulness check: the generated
// table must agree with the mask evaluator on a large random sample. It
// enumerates every combination and searches for the multiplier, so it is
// skipped in short mode.
func TestBuildMatchesEvaluator(t *testing.T) {
	if testing.Short() {
		t.Skip("table build is expensive")
	}

	logger := log.New(io.Discard)
	table, err := Build(logger, 0)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	rng := randutil.New(2024)
	deck := poker.NewDeck(rng)
	for i := 0; i < 10000; i++ {
		deck.Reset()
		deck.Shuffle()
		var cards [5]poker.Card
		for j := range cards {
			cards[j], _ = deck.Deal()
		}
		want := poker.Evaluate5(cards[:])
		if got := table.Lookup(cards[:]); got != want {
			t.Fatalf("table disagrees on %v: %v vs %v", cards, got, want)
		}
	}
}
