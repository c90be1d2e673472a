// Package pst holds piece-square tables and material values, the static
// data the incremental evaluator in package position accumulates over and
// the full evaluator in package eval reads back out. It is a leaf package
// (depends only on types) so that both position (incremental maintenance)
// and eval (final scoring) can depend on it without a cycle between them.
package pst

import "github.com/treepeck/goengine/types"

// Value is the material value of each piece type, in centipawns.
var Value = [6]int{
	types.Pawn:   100,
	types.Knight: 290,
	types.Bishop: 310,
	types.Rook:   515,
	types.Queen:  900,
	types.King:   2000,
}

// Tables below are written in "read order": row 0 is the 8th rank (a8..h8),
// row 7 is the 1st rank (a1..h1), the way piece-square tables are
// conventionally displayed. flatten() converts that into the engine's
// square indexing (a1 = 0 .. h8 = 63) once at package init.

var pawnRead = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightRead = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopRead = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookRead = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenRead = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingMgRead = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

var kingEgRead = [64]int{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

// Shared[type] is the single table used for both the early-game and
// end-game accumulators for every piece type except the king, per the
// specification's "other tables are shared across phases" rule.
var Shared [6][64]int

// KingMG and KingEG are the king's early-game and end-game tables.
var (
	KingMG [64]int
	KingEG [64]int
)

func flatten(read [64]int) [64]int {
	var out [64]int
	for sq := 0; sq < 64; sq++ {
		rank := sq / 8
		file := sq % 8
		readIdx := (7-rank)*8 + file
		out[sq] = read[readIdx]
	}
	return out
}

func init() {
	Shared[types.Pawn] = flatten(pawnRead)
	Shared[types.Knight] = flatten(knightRead)
	Shared[types.Bishop] = flatten(bishopRead)
	Shared[types.Rook] = flatten(rookRead)
	Shared[types.Queen] = flatten(queenRead)
	KingMG = flatten(kingMgRead)
	KingEG = flatten(kingEgRead)
}

// square viewed from color c's perspective: White indexes directly, Black
// mirrors (63 - sq).
func viewSquare(c types.Color, sq types.Square) int {
	if c == types.White {
		return int(sq)
	}
	return 63 - int(sq)
}

// LookupMG returns the early-game material + PST value of piece p on sq.
func LookupMG(p types.Piece, sq types.Square) int {
	v := viewSquare(p.Color(), sq)
	if p.Type() == types.King {
		return Value[types.King] + KingMG[v]
	}
	return Value[p.Type()] + Shared[p.Type()][v]
}

// LookupEG returns the end-game material + PST value of piece p on sq.
func LookupEG(p types.Piece, sq types.Square) int {
	v := viewSquare(p.Color(), sq)
	if p.Type() == types.King {
		return Value[types.King] + KingEG[v]
	}
	return Value[p.Type()] + Shared[p.Type()][v]
}
