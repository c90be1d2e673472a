// Package position owns the bitboard position representation: piece
// placement, side to move, castling rights, en-passant file, an incremental
// Zobrist hash, an incremental piece-square evaluator, and a move-undo
// stack sufficient to reverse any played move exactly. It is the home of
// make/undo, generalized from the teacher's copy-make Position into an
// in-place mutate/undo Position, per the redesign the specification calls
// for (an undo stack instead of a full position copy per ply).
package position

import (
	"github.com/treepeck/goengine/bitboard"
	"github.com/treepeck/goengine/pst"
	"github.com/treepeck/goengine/types"
	"github.com/treepeck/goengine/zobrist"
)

// Position is a complete, mutable chess position.
type Position struct {
	Bitboards [12]types.Bitboard // indexed by types.Piece
	ColorBB   [2]types.Bitboard
	Occupied  types.Bitboard
	PieceAt   [64]types.Piece

	ActiveColor    types.Color
	CastlingRights types.CastlingRights
	// EPFile is the en-passant target file in [0,8), or -1 if none.
	EPFile int

	HalfmoveClock  int
	FullmoveNumber int

	Hash uint64

	// EvalMG/EvalEG are incremental material+PST accumulators per color,
	// maintained at every placePiece/removePiece call.
	EvalMG [2]int
	EvalEG [2]int
	// EndgameWeight is recomputed whenever a non-king, non-pawn piece is
	// captured or a promotion resolves; see recomputeEndgameWeight.
	EndgameWeight int

	// Checkers is the set of enemy pieces currently attacking ActiveColor's
	// king.
	Checkers types.Bitboard

	// Repetitions counts occurrences of every hash reached by MakeMove
	// since the position was created (or since the last ResetRepetitions
	// call), maintained across make/undo so threefold detection sees the
	// real game history.
	Repetitions map[uint64]int

	undo []undoFrame
}

type undoFrame struct {
	move           types.Move
	moved          types.Piece
	captured       types.Piece
	capturedSquare types.Square

	priorEPFile       int
	priorHalfmove     int
	priorFullmove     int
	priorCastling     types.CastlingRights
	priorCheckers     types.Bitboard
	priorEndgameWeight int
}

// New returns an empty position (no pieces, White to move, no castling
// rights, no en-passant target).
func New() Position {
	p := Position{EPFile: -1}
	for i := range p.PieceAt {
		p.PieceAt[i] = types.NoPiece
	}
	p.Repetitions = make(map[uint64]int, 1)
	return p
}

// Clear resets the position to the same state New() returns.
func (p *Position) Clear() {
	*p = New()
}

// Clone returns an independent copy seeded for a new search: the piece
// placement, hash, and repetition counts carry over (so in-search
// repetition detection sees real game history), but the undo stack does
// not — a clone has no history to unwind.
func (p *Position) Clone() Position {
	np := *p
	np.undo = nil
	np.Repetitions = make(map[uint64]int, len(p.Repetitions))
	for k, v := range p.Repetitions {
		np.Repetitions[k] = v
	}
	return np
}

// KingSquare returns the square of c's king, or types.NoSquare if absent
// (should not occur on a position satisfying the one-king-per-side
// invariant).
func (p *Position) KingSquare(c types.Color) types.Square {
	return p.Bitboards[types.NewPiece(c, types.King)].LSB()
}

// RemovePiece removes whatever piece stands on sq (if any) and returns it,
// or types.NoPiece if the square was already empty.
func (p *Position) RemovePiece(sq types.Square) types.Piece {
	piece := p.PieceAt[sq]
	if piece == types.NoPiece {
		return types.NoPiece
	}
	bit := types.Bitboard(1) << uint(sq)
	p.Bitboards[piece] &^= bit
	p.ColorBB[piece.Color()] &^= bit
	p.Occupied &^= bit
	p.PieceAt[sq] = types.NoPiece
	p.Hash ^= zobrist.Piece[piece][sq]
	p.EvalMG[piece.Color()] -= pst.LookupMG(piece, sq)
	p.EvalEG[piece.Color()] -= pst.LookupEG(piece, sq)
	return piece
}

// SetPiece places piece on sq. If tryRemove is set, whatever occupied sq is
// removed first (the caller's way of saying "this square might not be
// empty"); if unset, the caller guarantees sq is already empty.
func (p *Position) SetPiece(sq types.Square, piece types.Piece, tryRemove bool) {
	if tryRemove {
		p.RemovePiece(sq)
	}
	bit := types.Bitboard(1) << uint(sq)
	p.Bitboards[piece] |= bit
	p.ColorBB[piece.Color()] |= bit
	p.Occupied |= bit
	p.PieceAt[sq] = piece
	p.Hash ^= zobrist.Piece[piece][sq]
	p.EvalMG[piece.Color()] += pst.LookupMG(piece, sq)
	p.EvalEG[piece.Color()] += pst.LookupEG(piece, sq)
}

func hashEP(file int) uint64 {
	if file < 0 || file > 7 {
		return 0
	}
	return zobrist.EPFile[file]
}

// MakeMove applies tm to the position, updating every piece of state the
// invariants in the specification require, and pushes an undo frame capable
// of reversing it exactly via UndoMove.
func (p *Position) MakeMove(tm types.TypedMove) {
	m := tm.Move
	start, end := m.Start(), m.End()
	kind := m.Kind()
	moved := tm.Moved
	captured := tm.Captured

	frame := undoFrame{
		move:          m,
		moved:         moved,
		captured:      captured,
		priorEPFile:   p.EPFile,
		priorHalfmove: p.HalfmoveClock,
		priorFullmove: p.FullmoveNumber,
		priorCastling: p.CastlingRights,
		priorCheckers: p.Checkers,
		priorEndgameWeight: p.EndgameWeight,
	}

	oldCastling := p.CastlingRights
	oldEPHash := hashEP(p.EPFile)

	p.RemovePiece(start)
	p.HalfmoveClock++

	switch kind {
	case types.EnPassant:
		p.SetPiece(end, moved, false)
		capSq := end + 8
		if moved.Color() == types.White {
			capSq = end - 8
		}
		frame.capturedSquare = capSq
		p.RemovePiece(capSq)
		p.HalfmoveClock = 0

	case types.ShortCastle, types.LongCastle:
		p.SetPiece(end, moved, false)
		rs := rookStartSquare(moved.Color(), kind)
		re := rookEndSquare(moved.Color(), kind)
		p.RemovePiece(rs)
		p.SetPiece(re, types.NewPiece(moved.Color(), types.Rook), false)

	default:
		if kind.IsCapture() {
			frame.capturedSquare = end
			p.RemovePiece(end)
			p.HalfmoveClock = 0
		}
		if kind.IsPromotion() {
			p.SetPiece(end, moved.WithType(kind.PromotionType()), false)
		} else {
			p.SetPiece(end, moved, false)
		}
	}

	p.EPFile = -1
	if moved.Type() == types.Pawn {
		p.HalfmoveClock = 0
		if kind == types.DoublePawn && p.hasAdjacentEnemyPawn(end, moved.Color()) {
			p.EPFile = end.File()
		}
	}

	p.updateCastlingRights(moved, start, end, captured)

	if p.ActiveColor == types.Black {
		p.FullmoveNumber++
	}
	p.ActiveColor = p.ActiveColor.Other()

	p.Hash ^= zobrist.Color
	p.Hash ^= zobrist.Castling[oldCastling] ^ zobrist.Castling[p.CastlingRights]
	p.Hash ^= oldEPHash ^ hashEP(p.EPFile)

	if kind.IsPromotion() || (captured != types.NoPiece && captured.Type() != types.King && captured.Type() != types.Pawn) {
		p.recomputeEndgameWeight()
	}
	p.Checkers = p.computeCheckers(p.ActiveColor)

	p.undo = append(p.undo, frame)
	p.Repetitions[p.Hash]++
}

// UndoMove reverses the most recently played move, restoring every field
// MakeMove touched.
func (p *Position) UndoMove() {
	n := len(p.undo)
	f := p.undo[n-1]
	p.undo = p.undo[:n-1]

	p.Repetitions[p.Hash]--
	if p.Repetitions[p.Hash] <= 0 {
		delete(p.Repetitions, p.Hash)
	}

	oldCastling := p.CastlingRights
	oldEPHash := hashEP(p.EPFile)

	p.ActiveColor = p.ActiveColor.Other()
	p.CastlingRights = f.priorCastling
	p.EPFile = f.priorEPFile
	p.HalfmoveClock = f.priorHalfmove
	p.FullmoveNumber = f.priorFullmove
	p.Checkers = f.priorCheckers
	p.EndgameWeight = f.priorEndgameWeight

	p.Hash ^= zobrist.Color
	p.Hash ^= zobrist.Castling[oldCastling] ^ zobrist.Castling[p.CastlingRights]
	p.Hash ^= oldEPHash ^ hashEP(p.EPFile)

	m := f.move
	start, end := m.Start(), m.End()
	kind := m.Kind()

	switch kind {
	case types.EnPassant:
		p.RemovePiece(end)
		p.SetPiece(start, f.moved, false)
		p.SetPiece(f.capturedSquare, f.captured, false)

	case types.ShortCastle, types.LongCastle:
		p.RemovePiece(end)
		p.SetPiece(start, f.moved, false)
		re := rookEndSquare(f.moved.Color(), kind)
		rs := rookStartSquare(f.moved.Color(), kind)
		p.RemovePiece(re)
		p.SetPiece(rs, types.NewPiece(f.moved.Color(), types.Rook), false)

	default:
		p.RemovePiece(end)
		p.SetPiece(start, f.moved, false)
		if kind.IsCapture() {
			p.SetPiece(f.capturedSquare, f.captured, false)
		}
	}
}

// hasAdjacentEnemyPawn reports whether an enemy pawn sits on a file
// adjacent to end, on end's rank — the condition under which a double pawn
// push records an en-passant file.
func (p *Position) hasAdjacentEnemyPawn(end types.Square, mover types.Color) bool {
	enemyPawns := p.Bitboards[types.NewPiece(mover.Other(), types.Pawn)]
	rankMask := types.Bitboard(0xFF) << uint(end.Rank()*8)
	file := end.File()
	var adjacent types.Bitboard
	if file > 0 {
		adjacent |= types.Bitboard(0x0101010101010101) << uint(file-1)
	}
	if file < 7 {
		adjacent |= types.Bitboard(0x0101010101010101) << uint(file+1)
	}
	return enemyPawns&rankMask&adjacent != 0
}

func (p *Position) updateCastlingRights(moved types.Piece, start, end types.Square, captured types.Piece) {
	switch moved.Type() {
	case types.King:
		if moved.Color() == types.White {
			p.CastlingRights &^= types.WhiteShort | types.WhiteLong
		} else {
			p.CastlingRights &^= types.BlackShort | types.BlackLong
		}
	case types.Rook:
		switch start {
		case types.A1:
			p.CastlingRights &^= types.WhiteLong
		case types.H1:
			p.CastlingRights &^= types.WhiteShort
		case types.A8:
			p.CastlingRights &^= types.BlackLong
		case types.H8:
			p.CastlingRights &^= types.BlackShort
		}
	}
	if captured.Type() == types.Rook {
		switch end {
		case types.A1:
			p.CastlingRights &^= types.WhiteLong
		case types.H1:
			p.CastlingRights &^= types.WhiteShort
		case types.A8:
			p.CastlingRights &^= types.BlackLong
		case types.H8:
			p.CastlingRights &^= types.BlackShort
		}
	}
}

func rookStartSquare(c types.Color, kind types.MoveKind) types.Square {
	if kind == types.ShortCastle {
		if c == types.White {
			return types.H1
		}
		return types.H8
	}
	if c == types.White {
		return types.A1
	}
	return types.A8
}

func rookEndSquare(c types.Color, kind types.MoveKind) types.Square {
	if kind == types.ShortCastle {
		if c == types.White {
			return types.F1
		}
		return types.F8
	}
	if c == types.White {
		return types.D1
	}
	return types.D8
}

// CastlingIndex maps (color, kind) to the 0..3 index used by the
// bitboard.CastlingPath/CastlingKingPath tables: 0=White O-O, 1=White O-O-O,
// 2=Black O-O, 3=Black O-O-O.
func CastlingIndex(c types.Color, kind types.MoveKind) int {
	switch {
	case c == types.White && kind == types.ShortCastle:
		return 0
	case c == types.White:
		return 1
	case kind == types.ShortCastle:
		return 2
	default:
		return 3
	}
}

// recomputeEndgameWeight recomputes W = -70*Q + 30*(2-R) + 20*(4-M), where
// Q, R, M are total queen, rook, and minor-piece counts across both colors.
func (p *Position) recomputeEndgameWeight() {
	q := p.Bitboards[types.NewPiece(types.White, types.Queen)].Count() +
		p.Bitboards[types.NewPiece(types.Black, types.Queen)].Count()
	r := p.Bitboards[types.NewPiece(types.White, types.Rook)].Count() +
		p.Bitboards[types.NewPiece(types.Black, types.Rook)].Count()
	minor := p.Bitboards[types.NewPiece(types.White, types.Knight)].Count() +
		p.Bitboards[types.NewPiece(types.Black, types.Knight)].Count() +
		p.Bitboards[types.NewPiece(types.White, types.Bishop)].Count() +
		p.Bitboards[types.NewPiece(types.Black, types.Bishop)].Count()
	p.EndgameWeight = -70*q + 30*(2-r) + 20*(4-minor)
}

// IsEndgame reports whether the position is classified as an end game
// (EndgameWeight >= 0).
func (p *Position) IsEndgame() bool { return p.EndgameWeight >= 0 }

// AttackersTo returns the set of byColor's pieces attacking sq, given the
// supplied occupancy (pass p.Occupied for the real board; callers computing
// "x-ray" attacks for king-move legality pass occupancy with the friendly
// king removed).
func (p *Position) AttackersTo(occupancy types.Bitboard, sq types.Square, byColor types.Color) types.Bitboard {
	var attackers types.Bitboard
	attackers |= types.Bitboard(bitboard.PawnAttacks[byColor.Other()][sq]) & p.Bitboards[types.NewPiece(byColor, types.Pawn)]
	attackers |= types.Bitboard(bitboard.KnightAttacks[sq]) & p.Bitboards[types.NewPiece(byColor, types.Knight)]
	attackers |= types.Bitboard(bitboard.KingAttacks[sq]) & p.Bitboards[types.NewPiece(byColor, types.King)]
	diag := types.Bitboard(bitboard.BishopAttacks(int(sq), uint64(occupancy)))
	attackers |= diag & (p.Bitboards[types.NewPiece(byColor, types.Bishop)] | p.Bitboards[types.NewPiece(byColor, types.Queen)])
	orth := types.Bitboard(bitboard.RookAttacks(int(sq), uint64(occupancy)))
	attackers |= orth & (p.Bitboards[types.NewPiece(byColor, types.Rook)] | p.Bitboards[types.NewPiece(byColor, types.Queen)])
	return attackers
}

// IsSquareAttacked reports whether sq is attacked by any of byColor's
// pieces, using the real board occupancy.
func (p *Position) IsSquareAttacked(sq types.Square, byColor types.Color) bool {
	return p.AttackersTo(p.Occupied, sq, byColor) != 0
}

// Finalize completes a position assembled by direct SetPiece calls plus
// ActiveColor/CastlingRights/EPFile/HalfmoveClock/FullmoveNumber field
// writes (the shape FEN parsing builds): it folds the color, castling, and
// en-passant terms into Hash (SetPiece only tracks per-square piece terms),
// computes Checkers and EndgameWeight from the now-complete board, and
// seeds Repetitions with the resulting hash. Callers assembling a Position
// any other way (Clone, MakeMove) never need this — only an external
// boundary building one from scratch does.
func (p *Position) Finalize() {
	if p.ActiveColor == types.Black {
		p.Hash ^= zobrist.Color
	}
	p.Hash ^= zobrist.Castling[p.CastlingRights]
	p.Hash ^= hashEP(p.EPFile)
	p.recomputeEndgameWeight()
	p.Checkers = p.computeCheckers(p.ActiveColor)
	if p.Repetitions == nil {
		p.Repetitions = make(map[uint64]int, 1)
	}
	p.Repetitions[p.Hash] = 1
}

func (p *Position) computeCheckers(side types.Color) types.Bitboard {
	king := p.KingSquare(side)
	if king == types.NoSquare {
		return 0
	}
	return p.AttackersTo(p.Occupied, king, side.Other())
}

// Checked reports whether side's king is currently attacked.
func (p *Position) Checked(side types.Color) bool {
	return p.AttackersTo(p.Occupied, p.KingSquare(side), side.Other()) != 0
}

// PinInfo describes the pinned pieces of one side: which squares are
// pinned, split by pin-ray orientation, and the mask each pinned piece is
// restricted to moving within.
type PinInfo struct {
	Diagonal   types.Bitboard
	Orthogonal types.Bitboard
	RayMask    [64]types.Bitboard
}

// Pinned returns the union of diagonally and orthogonally pinned squares.
func (pi PinInfo) Pinned() types.Bitboard { return pi.Diagonal | pi.Orthogonal }

// ComputePins computes side's pinned pieces: for every enemy slider aligned
// with side's king with exactly one friendly blocker between them, that
// blocker is pinned to the ray between the king and the slider (inclusive
// of the slider's square, since capturing the pinner is always legal for
// the pinned piece).
func (p *Position) ComputePins(side types.Color) PinInfo {
	var info PinInfo
	king := p.KingSquare(side)
	if king == types.NoSquare {
		return info
	}
	enemy := side.Other()

	scan := func(sliders types.Bitboard, maskOut *types.Bitboard) {
		for sliders != 0 {
			sq := sliders.PopLSB()
			between := types.Bitboard(bitboard.Between[king][sq])
			blockers := between & p.Occupied
			if blockers.Count() != 1 {
				continue
			}
			blockerSq := blockers.LSB()
			if !p.ColorBB[side].Test(blockerSq) {
				continue
			}
			ray := between | (types.Bitboard(1) << uint(sq))
			info.RayMask[blockerSq] = ray
			*maskOut |= types.Bitboard(1) << uint(blockerSq)
		}
	}

	diagSliders := (p.Bitboards[types.NewPiece(enemy, types.Bishop)] | p.Bitboards[types.NewPiece(enemy, types.Queen)]) &
		types.Bitboard(bitboard.BishopAttacks(int(king), 0))
	orthSliders := (p.Bitboards[types.NewPiece(enemy, types.Rook)] | p.Bitboards[types.NewPiece(enemy, types.Queen)]) &
		types.Bitboard(bitboard.RookAttacks(int(king), 0))
	scan(diagSliders, &info.Diagonal)
	scan(orthSliders, &info.Orthogonal)

	return info
}

// GetMaxRepetitions returns how many times the current position's hash has
// been reached so far (including now), used for threefold-repetition
// detection.
func (p *Position) GetMaxRepetitions() int {
	return p.Repetitions[p.Hash]
}

// ResetRepetitions clears the repetition history, leaving only the current
// hash with a count of one. MakeMove and UndoMove never call it, and the
// counts it clears are not restored by a later UndoMove.
func (p *Position) ResetRepetitions() {
	clear(p.Repetitions)
	p.Repetitions[p.Hash] = 1
}
