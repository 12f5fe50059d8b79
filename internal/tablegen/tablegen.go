// Package tablegen builds the perfect-hash lookup table that maps any of
// the 2,598,960 five-card combinations directly to its score. The table is
// produced offline (see the gen-tables command), persisted with a checksum
// header, and loaded read-only at startup by hosts that want single-probe
// scoring or an independent check of the mask evaluator.
package tablegen

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"runtime"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerengine/poker"
)

// NumCombos is C(52,5).
const NumCombos = 2598960

// TableSize leaves the hash space half empty, which keeps the multiplier
// search short.
const TableSize = 2 * NumCombos

// hashPrimes is the fixed five-prime vector. Position i multiplies the
// i-th card of the sorted combination, so the hash is order-independent
// once cards are sorted. Changing these invalidates generated tables.
var hashPrimes = [5]uint64{2654435761, 2246822519, 3266489917, 668265263, 374761393}

// Hash computes the raw (pre-multiplier) hash of five cards. Cards are
// sorted internally; the caller's order does not matter.
func Hash(cards []poker.Card) uint64 {
	var c [5]poker.Card
	copy(c[:], cards)
	sort.Slice(c[:], func(i, j int) bool { return c[i] < c[j] })
	var h uint64
	for i, card := range c {
		h += (uint64(card) + 1) * hashPrimes[i]
	}
	return h
}

// Table is the generated perfect-hash table: a multiplier k such that
// (Hash(cards)*k) mod TableSize is injective over all combinations, and the
// score stored at each combination's slot.
type Table struct {
	K     uint64
	Slots []uint32
}

// Slot returns the table index for a raw hash under the table's multiplier.
func (t *Table) Slot(h uint64) uint64 {
	return (h * t.K) % TableSize
}

// Lookup returns the score of five cards with a single table probe.
func (t *Table) Lookup(cards []poker.Card) poker.Score {
	return poker.Score(t.Slots[t.Slot(Hash(cards))])
}

// enumerate calls fn for every five-card combination with its raw hash and
// reference score.
func enumerate(fn func(h uint64, score poker.Score)) {
	var cards [5]poker.Card
	for a := 0; a < 48; a++ {
		cards[0] = poker.Card(a)
		for b := a + 1; b < 49; b++ {
			cards[1] = poker.Card(b)
			for c := b + 1; c < 50; c++ {
				cards[2] = poker.Card(c)
				for d := c + 1; d < 51; d++ {
					cards[3] = poker.Card(d)
					for e := d + 1; e < 52; e++ {
						cards[4] = poker.Card(e)
						var h uint64
						for i, card := range cards {
							h += (uint64(card) + 1) * hashPrimes[i]
						}
						fn(h, poker.Evaluate5(cards[:]))
					}
				}
			}
		}
	}
}

// Build enumerates all combinations, searches for an injective multiplier
// in parallel, and fills the table. The search space is partitioned across
// workers; the smallest multiplier found wins so output is deterministic.
func Build(logger *log.Logger, workers int) (*Table, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	hashes := make([]uint64, 0, NumCombos)
	scores := make([]uint32, 0, NumCombos)
	enumerate(func(h uint64, s poker.Score) {
		hashes = append(hashes, h)
		scores = append(scores, uint32(s))
	})
	logger.Info("enumerated combinations", "count", len(hashes))

	k, err := findMultiplier(logger, hashes, workers)
	if err != nil {
		return nil, err
	}
	logger.Info("found injective multiplier", "k", k)

	t := &Table{K: k, Slots: make([]uint32, TableSize)}
	for i, h := range hashes {
		t.Slots[t.Slot(h)] = scores[i]
	}
	return t, nil
}

// findMultiplier tests odd multipliers in disjoint strides until one maps
// every combination hash to a distinct slot.
func findMultiplier(logger *log.Logger, hashes []uint64, workers int) (uint64, error) {
	const maxCandidate = 1 << 24

	results := make([]uint64, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			stamps := make([]uint32, TableSize)
			var attempt uint32
			for k := uint64(2*w + 1); k < maxCandidate; k += uint64(2 * workers) {
				attempt++
				if injective(hashes, k, stamps, attempt) {
					results[w] = k
					return nil
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	best := uint64(0)
	for w, k := range results {
		if k != 0 && (best == 0 || k < best) {
			best = k
		}
		logger.Debug("worker finished", "worker", w, "k", k)
	}
	if best == 0 {
		return 0, fmt.Errorf("no injective multiplier below %d", uint64(maxCandidate))
	}
	return best, nil
}

func injective(hashes []uint64, k uint64, stamps []uint32, attempt uint32) bool {
	for _, h := range hashes {
		slot := (h * k) % TableSize
		if stamps[slot] == attempt {
			return false
		}
		stamps[slot] = attempt
	}
	return true
}

// File container for a generated table.
const (
	tableMagic        = "PKTB"
	tableMajorVersion = 1
	tableMinorVersion = 0
)

// WriteTo serialises the table: magic, version, multiplier, slot count and
// the slot payload guarded by a CRC-32.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	payload := make([]byte, 8+len(t.Slots)*4)
	binary.LittleEndian.PutUint64(payload[0:], t.K)
	for i, s := range t.Slots {
		binary.LittleEndian.PutUint32(payload[8+i*4:], s)
	}

	header := make([]byte, 16)
	copy(header[0:4], tableMagic)
	header[4] = tableMajorVersion
	header[5] = tableMinorVersion
	binary.LittleEndian.PutUint32(header[8:], crc32.ChecksumIEEE(payload))
	binary.LittleEndian.PutUint32(header[12:], uint32(len(payload)))

	n, err := w.Write(header)
	if err != nil {
		return int64(n), err
	}
	m, err := w.Write(payload)
	return int64(n + m), err
}

// Read loads and validates a serialised table.
func Read(r io.Reader) (*Table, error) {
	header := make([]byte, 16)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("read table header: %w", err)
	}
	if string(header[0:4]) != tableMagic {
		return nil, fmt.Errorf("bad table magic %q", header[0:4])
	}
	if header[4] != tableMajorVersion {
		return nil, fmt.Errorf("unsupported table version %d.%d", header[4], header[5])
	}
	wantCRC := binary.LittleEndian.Uint32(header[8:])
	payloadLen := binary.LittleEndian.Uint32(header[12:])
	if payloadLen != 8+TableSize*4 {
		return nil, fmt.Errorf("bad table payload length %d", payloadLen)
	}

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("read table payload: %w", err)
	}
	if crc32.ChecksumIEEE(payload) != wantCRC {
		return nil, fmt.Errorf("table checksum mismatch")
	}

	t := &Table{K: binary.LittleEndian.Uint64(payload[0:]), Slots: make([]uint32, TableSize)}
	for i := range t.Slots {
		t.Slots[i] = binary.LittleEndian.Uint32(payload[8+i*4:])
	}
	return t, nil
}
