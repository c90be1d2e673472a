// Package fen converts between Forsyth-Edwards Notation strings and
// package position's Position. Adapted from the teacher's fen/fen.go
// (same manual-switch piece decode, same strings.Builder emission shape),
// changed from panic-on-malformed to returning a wrapped error at the
// boundary, per this repo's error-handling policy: a malformed FEN is
// recoverable host input, not a programmer invariant violation.
package fen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/treepeck/goengine/position"
	"github.com/treepeck/goengine/types"
)

// Starting is the initial position's FEN string.
const Starting = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func pieceFromChar(c byte) (types.Piece, error) {
	switch c {
	case 'P':
		return types.NewPiece(types.White, types.Pawn), nil
	case 'N':
		return types.NewPiece(types.White, types.Knight), nil
	case 'B':
		return types.NewPiece(types.White, types.Bishop), nil
	case 'R':
		return types.NewPiece(types.White, types.Rook), nil
	case 'Q':
		return types.NewPiece(types.White, types.Queen), nil
	case 'K':
		return types.NewPiece(types.White, types.King), nil
	case 'p':
		return types.NewPiece(types.Black, types.Pawn), nil
	case 'n':
		return types.NewPiece(types.Black, types.Knight), nil
	case 'b':
		return types.NewPiece(types.Black, types.Bishop), nil
	case 'r':
		return types.NewPiece(types.Black, types.Rook), nil
	case 'q':
		return types.NewPiece(types.Black, types.Queen), nil
	case 'k':
		return types.NewPiece(types.Black, types.King), nil
	default:
		return types.NoPiece, fmt.Errorf("fen: unrecognized piece character %q", c)
	}
}

var pieceSymbols = [12]byte{
	'P', 'p', 'N', 'n', 'B', 'b', 'R', 'r', 'Q', 'q', 'K', 'k',
}

// Parse decodes a FEN string into a ready-to-search Position: Hash,
// Checkers, EndgameWeight, and the single-entry Repetitions seed are all
// filled in via Position.Finalize.
func Parse(s string) (position.Position, error) {
	fields := strings.Fields(s)
	if len(fields) != 6 {
		return position.Position{}, fmt.Errorf("fen: expected 6 fields, got %d", len(fields))
	}

	p := position.New()

	// Field 1: piece placement, ranks 8 down to 1, each rank left to right.
	rank, file := 7, 0
	for i := 0; i < len(fields[0]); i++ {
		c := fields[0][i]
		switch {
		case c == '/':
			if file != 8 {
				return position.Position{}, fmt.Errorf("fen: rank %d has %d files, want 8", rank+1, file)
			}
			rank--
			file = 0
		case c >= '1' && c <= '8':
			file += int(c - '0')
		default:
			if file >= 8 {
				return position.Position{}, fmt.Errorf("fen: rank %d overflows past file h", rank+1)
			}
			piece, err := pieceFromChar(c)
			if err != nil {
				return position.Position{}, err
			}
			if rank < 0 {
				return position.Position{}, fmt.Errorf("fen: too many ranks in piece placement")
			}
			sq := types.Square(rank*8 + file)
			p.SetPiece(sq, piece, false)
			file++
		}
	}
	if rank != 0 || file != 8 {
		return position.Position{}, fmt.Errorf("fen: incomplete piece placement field")
	}

	// Field 2: active color.
	switch fields[1] {
	case "w":
		p.ActiveColor = types.White
	case "b":
		p.ActiveColor = types.Black
	default:
		return position.Position{}, fmt.Errorf("fen: active color must be \"w\" or \"b\", got %q", fields[1])
	}

	// Field 3: castling rights.
	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				p.CastlingRights |= types.WhiteShort
			case 'Q':
				p.CastlingRights |= types.WhiteLong
			case 'k':
				p.CastlingRights |= types.BlackShort
			case 'q':
				p.CastlingRights |= types.BlackLong
			default:
				return position.Position{}, fmt.Errorf("fen: unrecognized castling character %q", fields[2][i])
			}
		}
	}

	// Field 4: en-passant target square.
	p.EPFile = -1
	if fields[3] != "-" {
		if len(fields[3]) != 2 || fields[3][0] < 'a' || fields[3][0] > 'h' {
			return position.Position{}, fmt.Errorf("fen: malformed en-passant square %q", fields[3])
		}
		p.EPFile = int(fields[3][0] - 'a')
	}

	// Field 5: halfmove clock.
	half, err := strconv.Atoi(fields[4])
	if err != nil {
		return position.Position{}, fmt.Errorf("fen: halfmove clock: %w", err)
	}
	p.HalfmoveClock = half

	// Field 6: fullmove number.
	full, err := strconv.Atoi(fields[5])
	if err != nil {
		return position.Position{}, fmt.Errorf("fen: fullmove number: %w", err)
	}
	p.FullmoveNumber = full

	p.Finalize()
	return p, nil
}

// Format serializes p back into a FEN string.
func Format(p *position.Position) string {
	var b strings.Builder
	b.Grow(64)

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := types.Square(rank*8 + file)
			piece := p.PieceAt[sq]
			if piece == types.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteByte('0' + byte(empty))
				empty = 0
			}
			b.WriteByte(pieceSymbols[piece])
		}
		if empty > 0 {
			b.WriteByte('0' + byte(empty))
		}
		if rank != 0 {
			b.WriteByte('/')
		}
	}

	b.WriteByte(' ')
	if p.ActiveColor == types.White {
		b.WriteByte('w')
	} else {
		b.WriteByte('b')
	}
	b.WriteByte(' ')

	if p.CastlingRights == 0 {
		b.WriteByte('-')
	} else {
		if p.CastlingRights&types.WhiteShort != 0 {
			b.WriteByte('K')
		}
		if p.CastlingRights&types.WhiteLong != 0 {
			b.WriteByte('Q')
		}
		if p.CastlingRights&types.BlackShort != 0 {
			b.WriteByte('k')
		}
		if p.CastlingRights&types.BlackLong != 0 {
			b.WriteByte('q')
		}
	}
	b.WriteByte(' ')

	if p.EPFile < 0 || p.EPFile > 7 {
		b.WriteByte('-')
	} else {
		epRank := byte('3')
		if p.ActiveColor == types.White {
			epRank = '6'
		}
		b.WriteByte("abcdefgh"[p.EPFile])
		b.WriteByte(epRank)
	}
	b.WriteByte(' ')

	b.WriteString(strconv.Itoa(p.HalfmoveClock))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(p.FullmoveNumber))

	return b.String()
}
