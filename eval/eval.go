// Package eval computes the static evaluation of a position: material and
// piece-square value (read incrementally off position.Position), plus the
// per-piece tweaks, bishop pair, pinned-piece penalty, and check bonus the
// incremental accumulator does not capture. Grounded on the term list in
// the original Evaluation.cpp (material, pawn isolation/passed, knight and
// bishop pawn-count scaling, rook file bonus, bishop pair, pinned-piece
// penalty, check bonus), reshaped around this engine's incremental PST
// accumulator the way the pack's pesto-style evaluators organize an
// early/end-game dual table.
package eval

import (
	"github.com/treepeck/goengine/position"
	"github.com/treepeck/goengine/types"
)

const (
	pawnIsolated     = -20
	rookOpenFile     = 30
	rookSemiOpenFile = 13
	checkBonus       = 10
	doubleCheckBonus = 50
	bishopPairMG     = 20
	bishopPairEG     = 70
)

// passedByDistance[d] is the passed-pawn bonus at distance d (in ranks)
// from the promotion square; doubled in the end game.
var passedByDistance = [8]int{0, 5, 10, 20, 40, 80, 160, 0}

// pinnedPenalty[type] is the additive penalty applied against the side
// whose piece of that type is pinned.
var pinnedPenalty = [6]int{
	types.Pawn:   10,
	types.Knight: 25,
	types.Bishop: 25,
	types.Rook:   35,
	types.Queen:  100,
	types.King:   0,
}

func fileMask(file int) types.Bitboard {
	if file < 0 || file > 7 {
		return 0
	}
	return types.Bitboard(0x0101010101010101) << uint(file)
}

// Evaluate returns the static score of p from the side-to-move's
// perspective: positive favors the side to move.
func Evaluate(p *position.Position) int {
	endgame := p.IsEndgame()

	score := p.EvalMG[types.White] - p.EvalMG[types.Black]
	if endgame {
		score = p.EvalEG[types.White] - p.EvalEG[types.Black]
	}

	pawnCount := p.Bitboards[types.NewPiece(types.White, types.Pawn)].Count() +
		p.Bitboards[types.NewPiece(types.Black, types.Pawn)].Count()

	score += evaluatePawns(p, endgame)
	score += evaluateKnightsAndBishops(p, pawnCount)
	score += evaluateRooks(p)
	score += evaluateBishopPair(p, endgame)
	score += evaluatePinnedPieces(p)

	if p.ActiveColor == types.Black {
		score = -score
	}

	switch n := p.Checkers.Count(); {
	case n == 1:
		score += checkBonus
	case n >= 2:
		score += doubleCheckBonus
	}

	return score
}

func signFor(c types.Color) int {
	if c == types.White {
		return 1
	}
	return -1
}

func evaluatePawns(p *position.Position, endgame bool) int {
	score := 0
	for _, side := range [2]types.Color{types.White, types.Black} {
		allies := p.Bitboards[types.NewPiece(side, types.Pawn)]
		enemies := p.Bitboards[types.NewPiece(side.Other(), types.Pawn)]
		pawns := allies
		for pawns != 0 {
			sq := pawns.PopLSB()
			file := sq.File()
			rank := sq.Rank()
			adjacent := fileMask(file-1) | fileMask(file+1)

			tweak := 0
			if adjacent&allies == 0 {
				tweak += pawnIsolated
			}

			var ahead types.Bitboard
			if side == types.White {
				ahead = ^types.Bitboard(0) << uint((rank+1)*8)
			} else if rank > 0 {
				ahead = ^types.Bitboard(0) >> uint((8-rank)*8)
			}
			sameAndAdjacent := fileMask(file) | adjacent
			if ahead&sameAndAdjacent&enemies == 0 {
				dist := 7 - rank
				if side == types.Black {
					dist = rank
				}
				passed := passedByDistance[dist]
				if endgame {
					passed *= 2
				}
				tweak += passed
			}

			score += signFor(side) * tweak
		}
	}
	return score
}

func evaluateKnightsAndBishops(p *position.Position, pawnCount int) int {
	score := 0
	for _, side := range [2]types.Color{types.White, types.Black} {
		knights := p.Bitboards[types.NewPiece(side, types.Knight)].Count()
		bishops := p.Bitboards[types.NewPiece(side, types.Bishop)].Count()
		score += signFor(side) * knights * (pawnCount - 10) * 6
		score += signFor(side) * bishops * (10 - pawnCount) * 6
	}
	return score
}

func evaluateRooks(p *position.Position) int {
	score := 0
	allPawns := p.Bitboards[types.NewPiece(types.White, types.Pawn)] | p.Bitboards[types.NewPiece(types.Black, types.Pawn)]
	for _, side := range [2]types.Color{types.White, types.Black} {
		rooks := p.Bitboards[types.NewPiece(side, types.Rook)]
		for rooks != 0 {
			sq := rooks.PopLSB()
			mask := fileMask(sq.File())
			onFile := allPawns & mask
			if onFile == 0 {
				score += signFor(side) * rookOpenFile
			} else if p.Bitboards[types.NewPiece(side, types.Pawn)]&mask == 0 {
				score += signFor(side) * rookSemiOpenFile
			}
		}
	}
	return score
}

func evaluateBishopPair(p *position.Position, endgame bool) int {
	bonus := bishopPairMG
	if endgame {
		bonus = bishopPairEG
	}
	score := 0
	if p.Bitboards[types.NewPiece(types.White, types.Bishop)].Count() >= 2 {
		score += bonus
	}
	if p.Bitboards[types.NewPiece(types.Black, types.Bishop)].Count() >= 2 {
		score -= bonus
	}
	return score
}

func evaluatePinnedPieces(p *position.Position) int {
	score := 0
	for _, side := range [2]types.Color{types.White, types.Black} {
		pins := p.ComputePins(side)
		pinned := pins.Pinned()
		for pinned != 0 {
			sq := pinned.PopLSB()
			t := p.PieceAt[sq].Type()
			score -= signFor(side) * pinnedPenalty[t]
		}
	}
	return score
}
