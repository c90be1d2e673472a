// Package movegen produces strictly-legal moves directly, without a
// copy-make-then-filter second pass: checkers, pins, and push/capture masks
// are computed once per call and every generated pseudo move is intersected
// against them before it ever reaches the caller's buffer. This replaces
// the teacher's two-pass pseudo-legal-then-filter generator, which the
// specification calls out as a redesign target.
package movegen

import (
	"github.com/treepeck/goengine/bitboard"
	"github.com/treepeck/goengine/position"
	"github.com/treepeck/goengine/types"
)

// allSquares stands in for capture_mask/push_mask when the side to move is
// not in check: every square is allowed.
const allSquares = types.Bitboard(^uint64(0))

// promoTypes lists the four promotion targets in the order the
// specification expands them.
var promoTypes = [4]types.PieceType{types.Queen, types.Rook, types.Bishop, types.Knight}

var quietPromoKind = [4]types.MoveKind{
	types.QuietPromoQueen, types.QuietPromoRook, types.QuietPromoBishop, types.QuietPromoKnight,
}
var capturePromoKind = [4]types.MoveKind{
	types.CapturePromoQueen, types.CapturePromoRook, types.CapturePromoBishop, types.CapturePromoKnight,
}

// Generate fills list with every strictly-legal move available to p's side
// to move. If capturesOnly is set, only captures and promotions are
// produced (the mode quiescence search uses); a position in check always
// expands into every evasion regardless of capturesOnly.
func Generate(p *position.Position, list *types.MoveList, capturesOnly bool) {
	list.Count = 0
	side := p.ActiveColor
	enemy := side.Other()
	king := p.KingSquare(side)

	checkers := p.Checkers
	numCheckers := checkers.Count()
	inCheck := numCheckers > 0
	if inCheck {
		capturesOnly = false
	}

	genKingMoves(p, list, side, enemy, king, capturesOnly)

	if numCheckers >= 2 {
		return
	}

	captureMask := allSquares
	pushMask := allSquares
	epCheckerSq := types.NoSquare
	if numCheckers == 1 {
		checkerSq := checkers.LSB()
		epCheckerSq = checkerSq
		captureMask = checkers
		pushMask = types.Bitboard(bitboard.Between[king][checkerSq])
	}

	pins := p.ComputePins(side)

	if !inCheck {
		genCastles(p, list, side)
	}

	genPawnMoves(p, list, side, enemy, pins, captureMask, pushMask, capturesOnly)
	genKnightMoves(p, list, side, pins, captureMask, pushMask, capturesOnly)
	genSliderMoves(p, list, side, types.Bishop, pins, captureMask, pushMask, capturesOnly)
	genSliderMoves(p, list, side, types.Rook, pins, captureMask, pushMask, capturesOnly)
	genSliderMoves(p, list, side, types.Queen, pins, captureMask, pushMask, capturesOnly)

	if p.EPFile >= 0 {
		genEnPassant(p, list, side, enemy, king, numCheckers == 1, epCheckerSq)
	}
}

// rayMaskFor returns the squares sq is allowed to move within, given it may
// be pinned; unpinned pieces get the unrestricted mask.
func rayMaskFor(pins position.PinInfo, sq types.Square) types.Bitboard {
	if !pins.Pinned().Test(sq) {
		return allSquares
	}
	return pins.RayMask[sq]
}

func genKingMoves(p *position.Position, list *types.MoveList, side, enemy types.Color, king types.Square, capturesOnly bool) {
	if king == types.NoSquare {
		return
	}
	// Remove the king from occupancy so a slider's attack set correctly
	// x-rays through the square the king is vacating.
	occWithoutKing := p.Occupied &^ (types.Bitboard(1) << uint(king))
	targets := types.Bitboard(bitboard.KingAttacks[king]) &^ p.ColorBB[side]

	for targets != 0 {
		to := targets.PopLSB()
		if p.AttackersTo(occWithoutKing, to, enemy) != 0 {
			continue
		}
		captured := p.PieceAt[to]
		if captured != types.NoPiece {
			list.Push(types.TypedMove{
				Move:     types.NewMove(king, to, types.Capture),
				Moved:    types.NewPiece(side, types.King),
				Captured: captured,
			})
		} else if !capturesOnly {
			list.Push(types.TypedMove{
				Move:  types.NewMove(king, to, types.Quiet),
				Moved: types.NewPiece(side, types.King),
			})
		}
	}
}

func genCastles(p *position.Position, list *types.MoveList, side types.Color) {
	king := p.KingSquare(side)
	if king == types.NoSquare || p.Checked(side) {
		return
	}
	enemy := side.Other()

	tryCastle := func(kind types.MoveKind, right types.CastlingRights, idx int) {
		if p.CastlingRights&right == 0 {
			return
		}
		if p.Occupied&types.Bitboard(bitboard.CastlingPath[idx]) != 0 {
			return
		}
		path := types.Bitboard(bitboard.CastlingKingPath[idx])
		for sq := path; sq != 0; {
			s := sq.PopLSB()
			if p.IsSquareAttacked(s, enemy) {
				return
			}
		}
		var end types.Square
		if kind == types.ShortCastle {
			end = king + 2
		} else {
			end = king - 2
		}
		list.Push(types.TypedMove{
			Move:  types.NewMove(king, end, kind),
			Moved: types.NewPiece(side, types.King),
		})
	}

	if side == types.White {
		tryCastle(types.ShortCastle, types.WhiteShort, 0)
		tryCastle(types.LongCastle, types.WhiteLong, 1)
	} else {
		tryCastle(types.ShortCastle, types.BlackShort, 2)
		tryCastle(types.LongCastle, types.BlackLong, 3)
	}
}

func genKnightMoves(p *position.Position, list *types.MoveList, side types.Color, pins position.PinInfo, captureMask, pushMask types.Bitboard, capturesOnly bool) {
	knights := p.Bitboards[types.NewPiece(side, types.Knight)]
	for knights != 0 {
		from := knights.PopLSB()
		if pins.Pinned().Test(from) {
			// A pinned knight has no legal destination on the pin ray.
			continue
		}
		targets := types.Bitboard(bitboard.KnightAttacks[from]) &^ p.ColorBB[side]
		targets &= captureMask | pushMask
		emitPieceMoves(p, list, side, types.Knight, from, targets, captureMask, capturesOnly)
	}
}

func genSliderMoves(p *position.Position, list *types.MoveList, side types.Color, pt types.PieceType, pins position.PinInfo, captureMask, pushMask types.Bitboard, capturesOnly bool) {
	pieces := p.Bitboards[types.NewPiece(side, pt)]
	for pieces != 0 {
		from := pieces.PopLSB()
		var attacks types.Bitboard
		switch pt {
		case types.Bishop:
			attacks = types.Bitboard(bitboard.BishopAttacks(int(from), uint64(p.Occupied)))
		case types.Rook:
			attacks = types.Bitboard(bitboard.RookAttacks(int(from), uint64(p.Occupied)))
		default:
			attacks = types.Bitboard(bitboard.QueenAttacks(int(from), uint64(p.Occupied)))
		}
		targets := attacks &^ p.ColorBB[side] & rayMaskFor(pins, from)
		targets &= captureMask | pushMask
		emitPieceMoves(p, list, side, pt, from, targets, captureMask, capturesOnly)
	}
}

func emitPieceMoves(p *position.Position, list *types.MoveList, side types.Color, pt types.PieceType, from types.Square, targets types.Bitboard, captureMask types.Bitboard, capturesOnly bool) {
	piece := types.NewPiece(side, pt)
	for targets != 0 {
		to := targets.PopLSB()
		captured := p.PieceAt[to]
		if captured != types.NoPiece {
			list.Push(types.TypedMove{
				Move:     types.NewMove(from, to, types.Capture),
				Moved:    piece,
				Captured: captured,
			})
		} else if !capturesOnly {
			list.Push(types.TypedMove{
				Move:  types.NewMove(from, to, types.Quiet),
				Moved: piece,
			})
		}
	}
}

func genPawnMoves(p *position.Position, list *types.MoveList, side, enemy types.Color, pins position.PinInfo, captureMask, pushMask types.Bitboard, capturesOnly bool) {
	pawns := p.Bitboards[types.NewPiece(side, types.Pawn)]
	piece := types.NewPiece(side, types.Pawn)

	var forward int
	var startRank, promoRank int
	if side == types.White {
		forward = 8
		startRank = 1
		promoRank = 7
	} else {
		forward = -8
		startRank = 6
		promoRank = 0
	}

	for pawns != 0 {
		from := pawns.PopLSB()
		ray := rayMaskFor(pins, from)

		// Pushes.
		one := from + types.Square(forward)
		if one >= 0 && one < 64 && p.PieceAt[one] == types.NoPiece && ray.Test(one) {
			if pushMask.Test(one) {
				emitPawnTarget(list, piece, types.NoPiece, from, one, promoRank, false, capturesOnly)
			}
			if from.Rank() == startRank {
				two := one + types.Square(forward)
				if p.PieceAt[two] == types.NoPiece && ray.Test(two) && pushMask.Test(two) {
					if !capturesOnly {
						list.Push(types.TypedMove{
							Move:  types.NewMove(from, two, types.DoublePawn),
							Moved: piece,
						})
					}
				}
			}
		}

		// Captures.
		attacks := types.Bitboard(bitboard.PawnAttacks[side][from]) & p.ColorBB[enemy] & ray & captureMask
		for attacks != 0 {
			to := attacks.PopLSB()
			emitPawnTarget(list, piece, p.PieceAt[to], from, to, promoRank, true, capturesOnly)
		}
	}
}

func emitPawnTarget(list *types.MoveList, piece, captured types.Piece, from, to types.Square, promoRank int, isCapture bool, capturesOnly bool) {
	if int(to.Rank()) == promoRank {
		for i := range promoTypes {
			if isCapture {
				list.Push(types.TypedMove{
					Move:     types.NewMove(from, to, capturePromoKind[i]),
					Moved:    piece,
					Captured: captured,
				})
			} else {
				list.Push(types.TypedMove{
					Move:  types.NewMove(from, to, quietPromoKind[i]),
					Moved: piece,
				})
			}
		}
		return
	}
	if isCapture {
		list.Push(types.TypedMove{
			Move:     types.NewMove(from, to, types.Capture),
			Moved:    piece,
			Captured: captured,
		})
	} else if !capturesOnly {
		list.Push(types.TypedMove{
			Move:  types.NewMove(from, to, types.Quiet),
			Moved: piece,
		})
	}
}

func genEnPassant(p *position.Position, list *types.MoveList, side, enemy types.Color, king types.Square, isCheckBlock bool, checkerSq types.Square) {
	targetRank := 5
	capturedRank := 4
	if side == types.Black {
		targetRank = 2
		capturedRank = 3
	}
	to := types.Square(targetRank*8 + p.EPFile)
	capturedSq := types.Square(capturedRank*8 + p.EPFile)

	if isCheckBlock && capturedSq != checkerSq {
		return
	}

	pawns := p.Bitboards[types.NewPiece(side, types.Pawn)]
	attackers := types.Bitboard(bitboard.PawnAttacks[enemy][to]) & pawns

	for attackers != 0 {
		from := attackers.PopLSB()
		if !enPassantLeavesKingSafe(p, side, enemy, king, from, to, capturedSq) {
			continue
		}
		list.Push(types.TypedMove{
			Move:     types.NewMove(from, to, types.EnPassant),
			Moved:    types.NewPiece(side, types.Pawn),
			Captured: types.NewPiece(enemy, types.Pawn),
		})
	}
}

// enPassantLeavesKingSafe handles the classic "both pawns vanish from the
// same rank as the king, exposing a rook/queen x-ray" edge case by
// recomputing rank-slider attacks against an occupancy with both pawns
// removed and the capturer placed on its destination.
func enPassantLeavesKingSafe(p *position.Position, side, enemy types.Color, king, from, to, capturedSq types.Square) bool {
	if king == types.NoSquare {
		return true
	}
	occ := p.Occupied
	occ &^= types.Bitboard(1) << uint(from)
	occ &^= types.Bitboard(1) << uint(capturedSq)
	occ |= types.Bitboard(1) << uint(to)

	rookLike := p.Bitboards[types.NewPiece(enemy, types.Rook)] | p.Bitboards[types.NewPiece(enemy, types.Queen)]
	attacks := types.Bitboard(bitboard.RookAttacks(int(king), uint64(occ)))
	if attacks&rookLike != 0 {
		return false
	}
	bishopLike := p.Bitboards[types.NewPiece(enemy, types.Bishop)] | p.Bitboards[types.NewPiece(enemy, types.Queen)]
	diag := types.Bitboard(bitboard.BishopAttacks(int(king), uint64(occ)))
	return diag&bishopLike == 0
}
