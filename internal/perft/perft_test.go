package main

import (
	"testing"

	"github.com/treepeck/goengine/bitboard"
	"github.com/treepeck/goengine/fen"
	"github.com/treepeck/goengine/zobrist"
)

func TestMain(m *testing.M) {
	bitboard.Init()
	zobrist.Init()
	m.Run()
}

// Node counts from the specification's perft table, the standard
// cross-check for a move generator's correctness.
func TestPerftKnownPositions(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		depth int
		nodes int
	}{
		{"startpos d4", fen.Starting, 4, 197_281},
		{"kiwipete d4", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 4, 4_085_603},
		{"endgame d4", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 4, 43_238},
		{"promotions d4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 4, 422_333},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := fen.Parse(c.fen)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := perft(&p, c.depth); got != c.nodes {
				t.Errorf("perft(%d) = %d, want %d", c.depth, got, c.nodes)
			}
		})
	}
}

// Shallow sanity check at the starting position: the depth-1 through
// depth-3 node counts are small, well-known textbook values, unlike the
// depth-5/6 rows in the specification which are too slow for a unit test.
func TestPerftStartingPositionShallow(t *testing.T) {
	p, err := fen.Parse(fen.Starting)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := map[int]int{1: 20, 2: 400, 3: 8_902}
	for depth, nodes := range want {
		if got := perft(&p, depth); got != nodes {
			t.Errorf("perft(%d) = %d, want %d", depth, got, nodes)
		}
	}
}
