package fen_test

import (
	"testing"

	"github.com/treepeck/goengine/bitboard"
	"github.com/treepeck/goengine/fen"
	"github.com/treepeck/goengine/types"
	"github.com/treepeck/goengine/zobrist"
)

func TestMain(m *testing.M) {
	bitboard.Init()
	zobrist.Init()
	m.Run()
}

func TestParseStartingPositionRoundTrips(t *testing.T) {
	p, err := fen.Parse(fen.Starting)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := fen.Format(&p); got != fen.Starting {
		t.Fatalf("round trip = %q, want %q", got, fen.Starting)
	}
	if p.ActiveColor != types.White {
		t.Fatalf("expected White to move")
	}
	want := types.WhiteShort | types.WhiteLong | types.BlackShort | types.BlackLong
	if p.CastlingRights != want {
		t.Fatalf("castling rights = %v, want %v", p.CastlingRights, want)
	}
	if p.PieceAt[types.A1] != types.NewPiece(types.White, types.Rook) {
		t.Fatalf("expected a white rook on a1")
	}
	if p.Repetitions[p.Hash] != 1 {
		t.Fatalf("expected the starting hash to be seeded into Repetitions")
	}
}

func TestParseEnPassantSquare(t *testing.T) {
	p, err := fen.Parse("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.EPFile != 3 {
		t.Fatalf("EPFile = %d, want 3 (d-file)", p.EPFile)
	}
}

func TestParseRejectsWrongFieldCount(t *testing.T) {
	if _, err := fen.Parse("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0"); err == nil {
		t.Fatalf("expected an error for a FEN missing its fullmove field")
	}
}

func TestParseRejectsBadPiecePlacement(t *testing.T) {
	if _, err := fen.Parse("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPP/RNBQKBNR w KQkq - 0 1"); err == nil {
		t.Fatalf("expected an error for a rank with only 7 files")
	}
}

func TestParseRejectsUnknownPieceChar(t *testing.T) {
	if _, err := fen.Parse("xnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"); err == nil {
		t.Fatalf("expected an error for an unrecognized piece character")
	}
}

func TestFormatNoCastlingRights(t *testing.T) {
	p, err := fen.Parse("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := fen.Format(&p); got != "4k3/8/8/8/8/8/8/4K3 w - - 0 1" {
		t.Fatalf("Format = %q", got)
	}
}
