package types_test

import (
	"testing"

	"github.com/treepeck/goengine/types"
)

func TestMovePacking(t *testing.T) {
	cases := []struct {
		start, end types.Square
		kind       types.MoveKind
	}{
		{types.E2, types.E4, types.DoublePawn},
		{types.E1, types.G1, types.ShortCastle},
		{types.A7, types.A8, types.QuietPromoQueen},
		{types.D5, types.E6, types.EnPassant},
	}

	for _, tc := range cases {
		m := types.NewMove(tc.start, tc.end, tc.kind)
		if m.Start() != tc.start {
			t.Errorf("Start() = %v, want %v", m.Start(), tc.start)
		}
		if m.End() != tc.end {
			t.Errorf("End() = %v, want %v", m.End(), tc.end)
		}
		if m.Kind() != tc.kind {
			t.Errorf("Kind() = %v, want %v", m.Kind(), tc.kind)
		}
	}
}

func TestMoveIsCapture(t *testing.T) {
	capturing := []types.MoveKind{
		types.Capture, types.EnPassant, types.CapturePromoQueen,
		types.CapturePromoKnight, types.CapturePromoRook, types.CapturePromoBishop,
	}
	for _, k := range capturing {
		m := types.NewMove(types.A1, types.A2, k)
		if !m.IsCapture() {
			t.Errorf("kind %v: IsCapture() = false, want true", k)
		}
	}

	nonCapturing := []types.MoveKind{types.Quiet, types.DoublePawn, types.ShortCastle, types.LongCastle, types.QuietPromoQueen}
	for _, k := range nonCapturing {
		m := types.NewMove(types.A1, types.A2, k)
		if m.IsCapture() {
			t.Errorf("kind %v: IsCapture() = true, want false", k)
		}
	}
}

func TestPiecePacking(t *testing.T) {
	for _, c := range []types.Color{types.White, types.Black} {
		for _, pt := range []types.PieceType{types.Pawn, types.Knight, types.Bishop, types.Rook, types.Queen, types.King} {
			p := types.NewPiece(c, pt)
			if p.Color() != c {
				t.Errorf("Color() = %v, want %v", p.Color(), c)
			}
			if p.Type() != pt {
				t.Errorf("Type() = %v, want %v", p.Type(), pt)
			}
		}
	}
}

func TestSquareString(t *testing.T) {
	cases := map[types.Square]string{
		types.A1: "a1",
		types.H1: "h1",
		types.A8: "a8",
		types.H8: "h8",
		types.E4: "e4",
	}
	for sq, want := range cases {
		if got := sq.String(); got != want {
			t.Errorf("%d.String() = %s, want %s", sq, got, want)
		}
	}
}

func TestBitboardOps(t *testing.T) {
	var b types.Bitboard
	b = b.Set(types.A1).Set(types.H8)
	if b.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", b.Count())
	}
	if !b.Test(types.A1) || !b.Test(types.H8) {
		t.Fatalf("Test() missing set bit")
	}
	sq := b.PopLSB()
	if sq != types.A1 {
		t.Fatalf("PopLSB() = %v, want A1", sq)
	}
	if b.Count() != 1 {
		t.Fatalf("Count() after pop = %d, want 1", b.Count())
	}
}
