// Package zobrist holds the pseudo-random keys used to incrementally hash a
// position, grounded on the teacher's zobrist.go but keyed by the shared
// types.Piece indexing so package position can maintain the hash
// incrementally across make/undo rather than recomputing it from scratch.
package zobrist

import "math/rand/v2"

var (
	// Piece[piece][square] keys, XORed in when a piece occupies a square.
	Piece [12][64]uint64
	// EPFile[file] keys, XORed in when an en-passant file is set.
	EPFile [8]uint64
	// Castling[rights] keys, one per CastlingRights bitmask value.
	Castling [16]uint64
	// Color is XORed in whenever Black is to move.
	Color uint64
)

// Init generates fresh random keys. Call once, as close to program start as
// possible; the search has nothing to detect repetitions or probe the
// transposition table without it.
func Init() {
	for p := 0; p < 12; p++ {
		for sq := 0; sq < 64; sq++ {
			Piece[p][sq] = rand.Uint64()
		}
	}
	for f := 0; f < 8; f++ {
		EPFile[f] = rand.Uint64()
	}
	for r := 0; r < 16; r++ {
		Castling[r] = rand.Uint64()
	}
	Color = rand.Uint64()
}
