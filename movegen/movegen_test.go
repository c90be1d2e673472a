package movegen_test

import (
	"testing"

	"github.com/treepeck/goengine/bitboard"
	"github.com/treepeck/goengine/movegen"
	"github.com/treepeck/goengine/position"
	"github.com/treepeck/goengine/types"
	"github.com/treepeck/goengine/zobrist"
)

func TestMain(m *testing.M) {
	bitboard.Init()
	zobrist.Init()
	m.Run()
}

func startPos() position.Position {
	p := position.New()
	back := [8]types.PieceType{
		types.Rook, types.Knight, types.Bishop, types.Queen,
		types.King, types.Bishop, types.Knight, types.Rook,
	}
	for file := 0; file < 8; file++ {
		p.SetPiece(types.Square(file), types.NewPiece(types.White, back[file]), false)
		p.SetPiece(types.Square(8+file), types.NewPiece(types.White, types.Pawn), false)
		p.SetPiece(types.Square(48+file), types.NewPiece(types.Black, types.Pawn), false)
		p.SetPiece(types.Square(56+file), types.NewPiece(types.Black, back[file]), false)
	}
	p.CastlingRights = types.WhiteShort | types.WhiteLong | types.BlackShort | types.BlackLong
	p.ActiveColor = types.White
	p.FullmoveNumber = 1
	p.Repetitions[p.Hash] = 1
	p.Checkers = 0
	return p
}

func TestStartingPositionHas20Moves(t *testing.T) {
	p := startPos()
	var list types.MoveList
	movegen.Generate(&p, &list, false)
	if list.Count != 20 {
		t.Fatalf("start position move count = %d, want 20", list.Count)
	}
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	p := position.New()
	p.SetPiece(types.E1, types.NewPiece(types.White, types.King), false)
	p.SetPiece(types.E8, types.NewPiece(types.Black, types.King), false)
	p.SetPiece(types.E5, types.NewPiece(types.Black, types.Rook), false)
	p.SetPiece(types.F3, types.NewPiece(types.Black, types.Knight), false)
	p.ActiveColor = types.White
	p.Checkers = p.AttackersTo(p.Occupied, types.E1, types.Black)
	if p.Checkers.Count() != 2 {
		t.Fatalf("setup error: expected double check, got %d checkers", p.Checkers.Count())
	}

	var list types.MoveList
	movegen.Generate(&p, &list, false)
	for i := 0; i < list.Count; i++ {
		if list.Moves[i].Moved.Type() != types.King {
			t.Fatalf("non-king move generated under double check: %v", list.Moves[i])
		}
	}
}

func TestPinnedRookCannotLeaveRay(t *testing.T) {
	p := position.New()
	p.SetPiece(types.E1, types.NewPiece(types.White, types.King), false)
	p.SetPiece(types.E4, types.NewPiece(types.White, types.Rook), false)
	p.SetPiece(types.E8, types.NewPiece(types.Black, types.Queen), false)
	p.ActiveColor = types.White
	p.Checkers = 0

	var list types.MoveList
	movegen.Generate(&p, &list, false)
	for i := 0; i < list.Count; i++ {
		m := list.Moves[i]
		if m.Moved.Type() == types.Rook {
			if m.Move.Start().File() != m.Move.End().File() {
				t.Fatalf("pinned rook moved off the pin file: %v", m)
			}
		}
	}
}

func TestSingleCheckMustBlockOrCapture(t *testing.T) {
	p := position.New()
	p.SetPiece(types.E1, types.NewPiece(types.White, types.King), false)
	p.SetPiece(types.E8, types.NewPiece(types.Black, types.King), false)
	p.SetPiece(types.E5, types.NewPiece(types.Black, types.Rook), false)
	p.SetPiece(types.D2, types.NewPiece(types.White, types.Rook), false)
	p.ActiveColor = types.White
	p.Checkers = p.AttackersTo(p.Occupied, types.E1, types.Black)
	if p.Checkers.Count() != 1 {
		t.Fatalf("setup error: expected single check")
	}

	var list types.MoveList
	movegen.Generate(&p, &list, false)
	sawBlock := false
	for i := 0; i < list.Count; i++ {
		m := list.Moves[i]
		if m.Moved.Type() == types.Rook && m.Move.End() == types.E2 {
			sawBlock = true
		}
		if m.Moved.Type() != types.King && m.Move.End() != types.E5 && m.Move.End() != types.E2 && m.Move.End() != types.E3 && m.Move.End() != types.E4 {
			t.Fatalf("move %v neither captures checker nor blocks the check", m)
		}
	}
	if !sawBlock {
		t.Fatalf("expected the d2 rook to be able to block on e2")
	}
}

func TestEnPassantCaptureGenerated(t *testing.T) {
	p := position.New()
	p.SetPiece(types.E5, types.NewPiece(types.White, types.Pawn), false)
	p.SetPiece(types.D5, types.NewPiece(types.Black, types.Pawn), false)
	p.SetPiece(types.E1, types.NewPiece(types.White, types.King), false)
	p.SetPiece(types.E8, types.NewPiece(types.Black, types.King), false)
	p.ActiveColor = types.White
	p.EPFile = types.D5.File()
	p.Checkers = 0

	var list types.MoveList
	movegen.Generate(&p, &list, false)
	found := false
	for i := 0; i < list.Count; i++ {
		if list.Moves[i].Move.Kind() == types.EnPassant {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an en-passant capture to be generated")
	}
}

func TestCastlingBlockedByAttackedTransitSquare(t *testing.T) {
	p := position.New()
	p.SetPiece(types.E1, types.NewPiece(types.White, types.King), false)
	p.SetPiece(types.H1, types.NewPiece(types.White, types.Rook), false)
	p.SetPiece(types.E8, types.NewPiece(types.Black, types.King), false)
	p.SetPiece(types.F8, types.NewPiece(types.Black, types.Rook), false)
	p.ActiveColor = types.White
	p.CastlingRights = types.WhiteShort
	p.Checkers = 0

	var list types.MoveList
	movegen.Generate(&p, &list, false)
	for i := 0; i < list.Count; i++ {
		if list.Moves[i].Move.Kind() == types.ShortCastle {
			t.Fatalf("short castle should be blocked: f1 is attacked by the rook on f8")
		}
	}
}

func TestCapturesOnlyModeExcludesQuietMoves(t *testing.T) {
	p := startPos()
	var list types.MoveList
	movegen.Generate(&p, &list, true)
	if list.Count != 0 {
		t.Fatalf("capturesOnly at the start position should yield 0 moves, got %d", list.Count)
	}
}
