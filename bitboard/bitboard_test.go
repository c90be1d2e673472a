package bitboard_test

import (
	"testing"

	"github.com/treepeck/goengine/bitboard"
	"github.com/treepeck/goengine/types"
)

func TestMain(m *testing.M) {
	bitboard.Init()
	m.Run()
}

func TestKnightAttacksCorner(t *testing.T) {
	got := bitboard.KnightAttacks[types.A1]
	want := uint64(1)<<types.B3 | uint64(1)<<types.C2
	if got != want {
		t.Fatalf("KnightAttacks[A1] = %x, want %x", got, want)
	}
}

func TestKingAttacksCenter(t *testing.T) {
	got := bitboard.KingAttacks[types.E4]
	if types.Bitboard(got).Count() != 8 {
		t.Fatalf("KingAttacks[E4] count = %d, want 8", types.Bitboard(got).Count())
	}
}

func TestRookAttacksEmptyBoard(t *testing.T) {
	got := bitboard.RookAttacks(int(types.A1), 0)
	// Full rank + file minus origin square.
	want := uint64(0)
	for sq := 0; sq < 64; sq++ {
		if sq%8 == 0 || sq/8 == 0 {
			want |= 1 << sq
		}
	}
	want &^= 1 << types.A1
	if got != want {
		t.Fatalf("RookAttacks(A1, empty) = %x, want %x", got, want)
	}
}

func TestBishopAttacksBlocked(t *testing.T) {
	occ := uint64(1) << types.D4
	got := bitboard.BishopAttacks(int(types.A1), occ)
	want := uint64(1)<<types.B2 | uint64(1)<<types.C3 | uint64(1)<<types.D4
	if got != want {
		t.Fatalf("BishopAttacks(A1, blocked at D4) = %x, want %x", got, want)
	}
}

func TestBetweenSharedRank(t *testing.T) {
	got := bitboard.Between[types.A1][types.D1]
	want := uint64(1)<<types.B1 | uint64(1)<<types.C1
	if got != want {
		t.Fatalf("Between[A1][D1] = %x, want %x", got, want)
	}
}

func TestBetweenUnrelatedSquares(t *testing.T) {
	if got := bitboard.Between[types.A1][types.B3]; got != 0 {
		t.Fatalf("Between[A1][B3] = %x, want 0", got)
	}
}
