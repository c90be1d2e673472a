// Package types contains the core value types shared across the engine:
// squares, bitboards, pieces, colors, and packed moves.  Nothing in this
// package depends on position state or attack tables.
package types

import "math/bits"

// Square is a board index in [0, 64).  File = Square % 8, rank = Square / 8,
// with A1 = 0 and H8 = 63 — the conventional bitboard layout shared by the
// magic-bitboard tables in package bitboard. The FEN boundary (package fen)
// maps the rank-8-first textual board onto this indexing.
type Square int

// NoSquare is the invalid square sentinel.
const NoSquare Square = -1

// File returns the file in [0, 8), a=0 .. h=7.
func (s Square) File() int { return int(s) % 8 }

// Rank returns the rank in [0, 8), 0 = the 1st rank (White's back rank).
func (s Square) Rank() int { return int(s) / 8 }

// String returns the algebraic name of the square ("a1".."h8").
func (s Square) String() string {
	if s < 0 || s > 63 {
		return "-"
	}
	file := byte('a' + s.File())
	rank := byte('1' + s.Rank())
	return string([]byte{file, rank})
}

// Bitboard is a 64-bit mask, one bit per square.
type Bitboard uint64

// Set returns the bitboard with sq set.
func (b Bitboard) Set(sq Square) Bitboard { return b | (1 << uint(sq)) }

// Reset returns the bitboard with sq cleared.
func (b Bitboard) Reset(sq Square) Bitboard { return b &^ (1 << uint(sq)) }

// Test reports whether sq is set.
func (b Bitboard) Test(sq Square) bool { return b&(1<<uint(sq)) != 0 }

// Count returns the population count.
func (b Bitboard) Count() int { return bits.OnesCount64(uint64(b)) }

// LSB returns the square of the least significant set bit, or NoSquare if
// the bitboard is empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB removes and returns the least significant set bit's square.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Color identifies a side to move.
type Color int

const (
	White Color = iota
	Black
)

// Other returns the opposing color.
func (c Color) Other() Color { return c ^ 1 }

// PieceType enumerates the six chess piece types.
type PieceType int

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = -1
)

// Piece packs a (Color, PieceType) pair as color + 2*type, so that Piece
// values index a flat [12]Bitboard array, one slot per color/type.
type Piece int

// NoPiece is the invalid-piece sentinel.
const NoPiece Piece = -1

// NewPiece packs a color and type into a Piece index.
func NewPiece(c Color, t PieceType) Piece {
	if t == NoPieceType {
		return NoPiece
	}
	return Piece(int(t)*2 + int(c))
}

// Color returns the piece's color. Only valid if p != NoPiece.
func (p Piece) Color() Color { return Color(int(p) % 2) }

// Type returns the piece's type, or NoPieceType for NoPiece.
func (p Piece) Type() PieceType {
	if p == NoPiece {
		return NoPieceType
	}
	return PieceType(int(p) / 2)
}

// WithType returns the same-colored piece of the given type; used by
// promotion (and demotion, on undo).
func (p Piece) WithType(t PieceType) Piece { return NewPiece(p.Color(), t) }

// pieceSymbols maps a Piece index to its FEN character.
var pieceSymbols = [12]byte{
	'P', 'p', 'N', 'n', 'B', 'b', 'R', 'r', 'Q', 'q', 'K', 'k',
}

// Symbol returns the FEN character for the piece, or '.' for NoPiece.
func (p Piece) Symbol() byte {
	if p == NoPiece {
		return '.'
	}
	return pieceSymbols[p]
}

// MoveKind is the packed 4-bit move kind.
type MoveKind int

const (
	Quiet MoveKind = iota
	DoublePawn
	LongCastle
	ShortCastle
	QuietPromoBishop
	QuietPromoRook
	QuietPromoKnight
	QuietPromoQueen
	Capture
	EnPassant
	_reserved10
	_reserved11
	CapturePromoBishop
	CapturePromoRook
	CapturePromoKnight
	CapturePromoQueen
)

// IsCapture reports whether the move kind removes an enemy piece.
func (k MoveKind) IsCapture() bool {
	switch k {
	case Capture, EnPassant, CapturePromoBishop, CapturePromoRook,
		CapturePromoKnight, CapturePromoQueen:
		return true
	default:
		return false
	}
}

// IsPromotion reports whether the move kind places a promoted piece.
func (k MoveKind) IsPromotion() bool {
	switch k {
	case QuietPromoBishop, QuietPromoRook, QuietPromoKnight, QuietPromoQueen,
		CapturePromoBishop, CapturePromoRook, CapturePromoKnight, CapturePromoQueen:
		return true
	default:
		return false
	}
}

// PromotionType returns the promoted piece type for a promotion move kind.
// The result is meaningless if !k.IsPromotion().
func (k MoveKind) PromotionType() PieceType {
	switch k {
	case QuietPromoBishop, CapturePromoBishop:
		return Bishop
	case QuietPromoRook, CapturePromoRook:
		return Rook
	case QuietPromoKnight, CapturePromoKnight:
		return Knight
	case QuietPromoQueen, CapturePromoQueen:
		return Queen
	default:
		return NoPieceType
	}
}

// Move is a packed chess move: 6 bits start, 6 bits end, 4 bits kind.
// Equality between moves is equality between their packed values.
type Move uint16

// NewMove packs a move from its fields.
func NewMove(start, end Square, kind MoveKind) Move {
	return Move(uint16(start) | uint16(end)<<6 | uint16(kind)<<12)
}

// NoMove is the empty-move sentinel returned when search has nothing
// playable to report.
const NoMove Move = 0xFFFF

// Start returns the move's origin square.
func (m Move) Start() Square { return Square(m & 0x3F) }

// End returns the move's destination square.
func (m Move) End() Square { return Square((m >> 6) & 0x3F) }

// Kind returns the move's packed kind.
func (m Move) Kind() MoveKind { return MoveKind((m >> 12) & 0xF) }

// IsCapture reports whether the move captures a piece.
func (m Move) IsCapture() bool { return m.Kind().IsCapture() }

// TypedMove additionally carries the moved and captured piece, read once at
// generation time so the move orderer need not re-probe the board for
// MVV/LVA scoring.
type TypedMove struct {
	Move     Move
	Moved    Piece
	Captured Piece // NoPiece if none; the pawn's piece id for en-passant.
}

// MoveList stores generated moves in a caller-owned, preallocated buffer to
// avoid per-call heap allocation in the hot move-generation path.
type MoveList struct {
	// 256 is the contract capacity from the move generator's buffer
	// requirement; the true maximum legal move count is 218.
	Moves [256]TypedMove
	Count int
}

// Push appends a move to the list.
func (l *MoveList) Push(m TypedMove) {
	l.Moves[l.Count] = m
	l.Count++
}

// CastlingRights tracks the remaining right to castle per side.
//   - bit 0: White can castle short (king-side).
//   - bit 1: White can castle long (queen-side).
//   - bit 2: Black can castle short.
//   - bit 3: Black can castle long.
type CastlingRights int

const (
	WhiteShort CastlingRights = 1 << iota
	WhiteLong
	BlackShort
	BlackLong
)

// BoardState is the terminal/non-terminal classification of a position, as
// reported through the host API surface.
type BoardState int

const (
	Playing BoardState = iota + 1
	Checkmate
	NoMovesStalemate
	HalfMovesStalemate
	RepetitionStalemate
)

func (s BoardState) String() string {
	switch s {
	case Playing:
		return "Playing"
	case Checkmate:
		return "Checkmate"
	case NoMovesStalemate:
		return "NoMovesStalemate"
	case HalfMovesStalemate:
		return "HalfMovesStalemate"
	case RepetitionStalemate:
		return "RepetitionStalemate"
	default:
		return "Unknown"
	}
}
