// Package format renders a position as a human-readable board, mainly for
// the chegoctl diagnostic REPL and test failure output. Adapted from the
// teacher's format.go (same rank-major board layout, unicode piece glyphs),
// simplified to read PieceAt directly instead of scanning all 12 bitboards
// per square, since this engine's Position already maintains that mirror.
package format

import (
	"strings"

	"github.com/treepeck/goengine/position"
	"github.com/treepeck/goengine/types"
)

var pieceSymbols = [12]rune{
	'♙', '♟', '♘', '♞', '♗', '♝', '♖', '♜', '♕', '♛', '♔', '♚',
}

// Bitboard formats a single bitboard as an 8x8 grid, marking set squares
// with symbol and everything else with '.'.
func Bitboard(b types.Bitboard, symbol rune) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte(rank) + '1')
		sb.WriteString("  ")
		for file := 0; file < 8; file++ {
			sq := types.Square(rank*8 + file)
			c := '.'
			if b.Test(sq) {
				c = symbol
			}
			sb.WriteRune(c)
			sb.WriteString("  ")
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a  b  c  d  e  f  g  h\n")
	return sb.String()
}

// Position formats a full position: the board, active color, en-passant
// file, and castling rights.
func Position(p *position.Position) string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte(rank) + '1')
		sb.WriteString("  ")
		for file := 0; file < 8; file++ {
			sq := types.Square(rank*8 + file)
			piece := p.PieceAt[sq]
			c := rune('.')
			if piece != types.NoPiece {
				c = pieceSymbols[piece]
			}
			sb.WriteRune(c)
			sb.WriteString("  ")
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a  b  c  d  e  f  g  h\nActive color: ")

	if p.ActiveColor == types.White {
		sb.WriteString("white\nEn passant: ")
	} else {
		sb.WriteString("black\nEn passant: ")
	}

	if p.EPFile < 0 || p.EPFile > 7 {
		sb.WriteString("none\nCastling rights: ")
	} else {
		sb.WriteByte("abcdefgh"[p.EPFile])
		sb.WriteString("\nCastling rights: ")
	}

	if p.CastlingRights&types.WhiteShort != 0 {
		sb.WriteByte('K')
	}
	if p.CastlingRights&types.WhiteLong != 0 {
		sb.WriteByte('Q')
	}
	if p.CastlingRights&types.BlackShort != 0 {
		sb.WriteByte('k')
	}
	if p.CastlingRights&types.BlackLong != 0 {
		sb.WriteByte('q')
	}

	return sb.String()
}
