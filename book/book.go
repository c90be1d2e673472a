// Package book implements the Polyglot opening-book selector: loading a
// pre-built `.bin` file and, for a given position, either deterministically
// picking the best-weighted known move or sampling one according to a
// temperature parameter. Construction only; building a book is out of
// scope. Grounded on the record layout and TrySelect algorithm in
// original_source's BookMoveSelector.cpp (big-endian fixed-size records,
// per-key descending-weight sort at load time, temperature-scaled
// weighted sampling), re-expressed with encoding/binary and math/rand/v2
// the way the pack's Go engines read a fixed binary record format.
package book

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"sort"

	"github.com/treepeck/goengine/types"
)

// epsilon matches the deterministic/sampled temperature boundary used by
// try_select.
const epsilon = 1e-8

// Entry is one decoded Polyglot book move for a given Zobrist key.
type Entry struct {
	Start, End types.Square
	// Promotion is the promoted piece type, or Pawn for a non-promotion
	// move — Pawn is the sentinel try_select matches non-promotions
	// against, not the zero PieceType value.
	Promotion types.PieceType
	Weight    uint16
}

// record is the 16-byte, big-endian on-disk Polyglot record.
type record struct {
	Key    uint64
	Move   uint16
	Weight uint16
	Learn  uint32
}

// Selector answers opening-book queries for loaded entries, keyed by
// Zobrist hash.
type Selector struct {
	entries map[uint64][]Entry
}

// Load reads a Polyglot `.bin` file. On I/O failure it still returns a
// usable, empty Selector (try_select then always reports none) alongside
// the error, so the caller can log and continue per the book-I/O error
// policy rather than failing the whole engine over a missing book.
func Load(path string) (*Selector, error) {
	f, err := os.Open(path)
	if err != nil {
		return &Selector{entries: make(map[uint64][]Entry)}, err
	}
	defer f.Close()

	s, err := decode(bufio.NewReader(f))
	if err != nil {
		return &Selector{entries: make(map[uint64][]Entry)}, err
	}
	return s, nil
}

func decode(r io.Reader) (*Selector, error) {
	s := &Selector{entries: make(map[uint64][]Entry)}

	for {
		var rec record
		if err := binary.Read(r, binary.BigEndian, &rec); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return s, err
		}
		if rec.Move == 0 {
			continue // invalid/sentinel book move
		}
		key := rec.Key
		s.entries[key] = append(s.entries[key], decodeEntry(rec.Move, rec.Weight))
	}

	for key, list := range s.entries {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Weight > list[j].Weight })
		s.entries[key] = list
	}
	return s, nil
}

// decodeEntry unpacks the 16-bit move field: bits 0-2 to-file, 3-5
// to-rank, 6-8 from-file, 9-11 from-rank, 12-14 promotion-piece-id, 15
// unused. Polyglot counts ranks from White's home rank, which is exactly
// this engine's internal rank 0 (see the square-numbering decision in
// SPEC_FULL.md), so no rank mirroring is needed at this boundary.
func decodeEntry(move, weight uint16) Entry {
	toFile := int(move & 0x7)
	toRank := int((move >> 3) & 0x7)
	fromFile := int((move >> 6) & 0x7)
	fromRank := int((move >> 9) & 0x7)
	promoID := int((move >> 12) & 0x7)

	return Entry{
		Start:     types.Square(fromRank*8 + fromFile),
		End:       types.Square(toRank*8 + toFile),
		Promotion: promotionFromID(promoID),
		Weight:    weight,
	}
}

func promotionFromID(id int) types.PieceType {
	switch id {
	case 1:
		return types.Knight
	case 2:
		return types.Bishop
	case 3:
		return types.Rook
	case 4:
		return types.Queen
	default:
		return types.Pawn
	}
}

// legalPromotionType is the promotion type to compare a legal move
// against a book entry: the promoted type, or Pawn for a non-promotion.
func legalPromotionType(tm types.TypedMove) types.PieceType {
	if tm.Move.Kind().IsPromotion() {
		return tm.Move.Kind().PromotionType()
	}
	return types.Pawn
}

func matches(tm types.TypedMove, e Entry) bool {
	return tm.Move.Start() == e.Start && tm.Move.End() == e.End &&
		legalPromotionType(tm) == e.Promotion
}

// TrySelect returns a move from legalMoves consistent with a book entry
// stored under key, or false if nothing in the book applies.
//
// With |temperature| < epsilon, it deterministically returns the
// highest-weighted matching entry (entries are pre-sorted descending by
// weight at load time). Otherwise every matching legal move is weighted
// by weight^temperature and one is drawn from the resulting distribution;
// this draws uniformly over the unnormalized weight sum rather than
// normalizing to [0,1) first, which samples the same distribution with
// one fewer pass over the candidates.
func (s *Selector) TrySelect(key uint64, legalMoves []types.TypedMove, temperature float64) (types.Move, bool) {
	entries, ok := s.entries[key]
	if !ok || len(entries) == 0 {
		return types.NoMove, false
	}

	if math.Abs(temperature) < epsilon {
		for _, e := range entries {
			for _, tm := range legalMoves {
				if matches(tm, e) {
					return tm.Move, true
				}
			}
		}
		return types.NoMove, false
	}

	type candidate struct {
		move   types.Move
		weight float64
	}
	var candidates []candidate
	sum := 0.0
	for _, tm := range legalMoves {
		for _, e := range entries {
			if matches(tm, e) {
				w := math.Pow(float64(e.Weight), temperature)
				sum += w
				candidates = append(candidates, candidate{tm.Move, w})
				break
			}
		}
	}
	if len(candidates) == 0 {
		return types.NoMove, false
	}

	draw := rand.Float64() * sum
	for _, c := range candidates {
		if draw < c.weight {
			return c.move, true
		}
		draw -= c.weight
	}
	return candidates[len(candidates)-1].move, true
}
