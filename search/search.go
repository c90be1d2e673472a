// Package search implements iterative-deepening principal-variation
// negamax with quiescence, aspiration windows, late-move pruning and
// reduction, internal iterative reduction, and checkmate-distance
// correction. A single worker runs one line of iterative deepening over
// its own cloned position; package engine composes many of them into the
// lazy-SMP coordinator. Grounded directly on original_source's
// ai/Search.cpp (AlphaBeta/Quiescence control flow, the aspiration-window
// widening schedule, the LMR/LMP conditions) re-expressed with this
// engine's in-place Position/undo-stack and recursive-slice PV instead of
// the source's triangular PV table, the way the teacher package favors
// plain Go slices over fixed C-style buffers.
package search

import (
	"sync/atomic"
	"time"

	"github.com/treepeck/goengine/eval"
	"github.com/treepeck/goengine/movegen"
	"github.com/treepeck/goengine/order"
	"github.com/treepeck/goengine/position"
	"github.com/treepeck/goengine/tt"
	"github.com/treepeck/goengine/types"
)

const (
	// CheckmateScore is the base mate score; a mate found at ply p is
	// reported as CheckmateScore + p so that shallower mates score higher.
	CheckmateScore = -10000

	checkmateThreshold = 9500

	// MaxPly bounds recursion depth; at or beyond it, a node returns its
	// static evaluation instead of recursing further.
	MaxPly = 125

	nodeCheckInterval = 2048

	searchMin = -100_000
	searchMax = 100_000

	initialAspirationWindow = 25
)

// CorrectMateScore adjusts an Exact value read back from the table for
// the ply distance between where it was stored and where it is now being
// read, so mates recorded at different depths are not conflated.
func CorrectMateScore(score, ply int) int {
	switch {
	case score > checkmateThreshold:
		return score - ply
	case score < -checkmateThreshold:
		return score + ply
	default:
		return score
	}
}

func moveInList(m types.Move, list *types.MoveList) bool {
	for i := 0; i < list.Count; i++ {
		if list.Moves[i].Move == m {
			return true
		}
	}
	return false
}

// Stats are the counters a completed iteration reports alongside its PV.
type Stats struct {
	Nodes    uint64
	SelDepth int
	TTHits   uint64
}

// Result is one completed iterative-deepening pass, or a book shortcut
// when Depth == 0.
type Result struct {
	Depth int
	Score int
	PV    []types.Move
	Stats Stats
}

// Worker runs iterative deepening from its own cloned position, sharing
// the transposition table, killer table, and cancellation signal with any
// sibling workers a coordinator spawns alongside it.
type Worker struct {
	pos     *position.Position
	table   *tt.Table
	killers *order.Killers

	stopFlag *atomic.Bool
	deadline time.Time

	nodes     uint64
	ttHits    uint64
	selDepth  int
	stopCheck int
	stopped   bool

	lastBestScore int
}

// NewWorker clones root (without history) and returns a worker ready to
// search it, sharing table, killers, and the cancellation signal.
func NewWorker(root *position.Position, table *tt.Table, killers *order.Killers, stopFlag *atomic.Bool, deadline time.Time) *Worker {
	clone := root.Clone()
	return &Worker{pos: &clone, table: table, killers: killers, stopFlag: stopFlag, deadline: deadline}
}

// shouldStop polls the shared stop flag and deadline every
// nodeCheckInterval calls, caching the result between checks so
// cancellation costs at most one atomic load and one clock read per
// interval rather than per node.
func (w *Worker) shouldStop() bool {
	w.stopCheck++
	if w.stopCheck%nodeCheckInterval == 0 {
		w.stopped = w.stopFlag.Load() || time.Now().After(w.deadline)
	}
	return w.stopped
}

// SearchDepth runs one iterative-deepening iteration at root depth d,
// widening an aspiration window around the previous iteration's score
// until the true score lands strictly inside it. Returns false if the
// search was cancelled before a result could be produced.
func (w *Worker) SearchDepth(d int) (Result, bool) {
	w.nodes, w.ttHits, w.selDepth, w.stopCheck, w.stopped = 0, 0, 0, 0, false

	alpha, beta := searchMin, searchMax
	window := initialAspirationWindow
	if d >= 5 {
		alpha = w.lastBestScore - window
		beta = w.lastBestScore + window
	}

	var score int
	var pv []types.Move
	for {
		if w.shouldStop() {
			return Result{}, false
		}

		score, pv = w.negamax(d, 0, alpha, beta, true)

		switch {
		case score <= alpha:
			beta = (alpha + beta) / 2
			alpha = max(alpha-window, searchMin)
		case score >= beta:
			beta = min(beta+window, searchMax)
		default:
			if w.shouldStop() {
				return Result{}, false
			}
			w.lastBestScore = score
			return Result{
				Depth: d,
				Score: score,
				PV:    pv,
				Stats: Stats{Nodes: w.nodes, SelDepth: w.selDepth, TTHits: w.ttHits},
			}, true
		}

		window += window/3 + 5
	}
}

// negamax is the principal-variation search at one node; ply 0 is the
// root. pvNode marks a node as part of the current principal variation
// (the node-type distinction the source templates on AlphaBeta<NodeType>).
func (w *Worker) negamax(depth, ply, alpha, beta int, pvNode bool) (int, []types.Move) {
	if w.shouldStop() {
		return 0, nil
	}

	inCheckAtEntry := w.pos.Checkers != 0
	if inCheckAtEntry {
		depth++ // check extension
	}

	w.nodes++
	if ply > w.selDepth {
		w.selDepth = ply
	}

	if ply > 0 && (w.pos.HalfmoveClock >= 50 || w.pos.GetMaxRepetitions() >= 3) {
		return 0, nil
	}
	if ply >= MaxPly {
		return eval.Evaluate(w.pos), nil
	}

	var list types.MoveList
	movegen.Generate(w.pos, &list, false)

	ttMove := types.NoMove
	haveTTEntry := false

	if ply > 0 {
		if e, ok := w.table.Probe(w.pos.Hash); ok && (e.Move == types.NoMove || moveInList(e.Move, &list)) {
			haveTTEntry = true
			ttMove = e.Move
			if !e.Quiescence {
				hit := e.Apply(depth, alpha, beta)
				if hit.Found {
					w.ttHits++
					if hit.Exact {
						return CorrectMateScore(hit.Score, ply), nil
					}
					alpha, beta = hit.Alpha, hit.Beta
					if alpha >= beta {
						return beta, nil
					}
				}
			}
		}
	}

	// Internal iterative reduction: a PV node deep enough to matter, with
	// nothing in the table to seed move ordering, is searched shallower
	// first so a later full-depth pass has a TT hint to order against.
	if pvNode && ply > 2 && !haveTTEntry {
		depth -= 2
	}

	if depth <= 0 {
		return w.quiescence(depth, ply, alpha, beta)
	}

	if list.Count == 0 {
		if inCheckAtEntry {
			return CheckmateScore + ply, nil
		}
		return 0, nil
	}

	orderer := order.New(&list, ply, ttMove, w.killers)

	doLMP := !inCheckAtEntry && !pvNode && ply > 2
	lmpCount := list.Count * 2 / 3

	bestScore := CheckmateScore - MaxPly
	bestMove := types.NoMove
	var bestPV []types.Move
	inPVS := false
	newDepth := depth
	legalSoFar := 0

	for idx := 0; ; idx++ {
		tm, _, ok := orderer.Next()
		if !ok {
			break
		}

		// Late-move pruning: once enough moves have been tried in order,
		// stop considering further quiet, non-pawn moves.
		if doLMP && idx >= lmpCount && tm.Move.Kind() == types.Quiet && tm.Moved.Type() != types.Pawn {
			break
		}

		legalSoFar++
		w.pos.MakeMove(tm)
		isInCheck := w.pos.Checkers != 0

		lmr := 0
		if !inPVS && legalSoFar > 1 && depth >= 3 && !inCheckAtEntry && !isInCheck &&
			tm.Move.Kind() != types.Quiet && tm.Moved.Type() != types.Pawn &&
			!w.killers.IsKiller(ply, tm.Move) {
			lmr = 1
			if legalSoFar > 6 {
				lmr += (ply + 1) / 3
			}
			if pvNode {
				lmr = lmr * 2 / 3
			}
			if ttMove != types.NoMove && ttMove.IsCapture() {
				lmr++
			}
		}
		newDepth -= lmr

		var score int
		var childPV []types.Move
		if inPVS {
			score, childPV = w.negamax(newDepth-1, ply+1, -alpha-1, -alpha, true)
			score = -score
			if score > alpha && score < beta {
				score, childPV = w.negamax(newDepth-1, ply+1, -beta, -alpha, true)
				score = -score
			}
		} else {
			score, childPV = w.negamax(newDepth-1, ply+1, -beta, -alpha, false)
			score = -score
			if score > alpha && lmr > 0 {
				score, childPV = w.negamax(depth-1, ply+1, -beta, -alpha, false)
				score = -score
				newDepth = depth
			}
		}

		w.pos.UndoMove()

		if score > bestScore {
			bestScore = score
			bestMove = tm.Move
		}

		if score >= beta {
			w.table.Insert(tt.Entry{
				Hash:  w.pos.Hash,
				Move:  bestMove,
				Bound: tt.LowerBound,
				Depth: newDepth,
				Score: beta,
			})
			if tm.Move.Kind() == types.Quiet {
				w.killers.Record(ply, tm.Move, score)
			}
			return beta, nil
		}

		if score > alpha {
			inPVS = true
			alpha = score
			bestPV = append([]types.Move{tm.Move}, childPV...)
		}
	}

	if legalSoFar == 0 {
		if inCheckAtEntry {
			return CheckmateScore + ply, nil
		}
		return 0, nil
	}

	entryType := tt.UpperBound
	if bestPV != nil {
		entryType = tt.Exact
	}
	w.table.Insert(tt.Entry{
		Hash:  w.pos.Hash,
		Move:  bestMove,
		Bound: entryType,
		Depth: newDepth,
		Score: alpha,
	})

	return alpha, bestPV
}

// quiescence extends search at the horizon over tactical moves only
// (captures and promotions), or every evasion when in check, to avoid
// misjudging positions with a hanging capture on the board.
func (w *Worker) quiescence(depth, ply, alpha, beta int) (int, []types.Move) {
	if w.shouldStop() {
		return 0, nil
	}
	w.nodes++
	if ply > w.selDepth {
		w.selDepth = ply
	}
	if w.pos.HalfmoveClock >= 50 || w.pos.GetMaxRepetitions() >= 3 {
		return 0, nil
	}

	startAlpha := alpha
	inCheck := w.pos.Checkers != 0

	var list types.MoveList
	movegen.Generate(w.pos, &list, !inCheck)

	ttMove := types.NoMove
	if !inCheck {
		if e, ok := w.table.Probe(w.pos.Hash); ok && (e.Move == types.NoMove || moveInList(e.Move, &list)) {
			ttMove = e.Move
			hit := e.Apply(depth, alpha, beta)
			if hit.Found {
				w.ttHits++
				if hit.Exact {
					return CorrectMateScore(hit.Score, ply), nil
				}
				alpha, beta = hit.Alpha, hit.Beta
				if alpha >= beta {
					return alpha, nil
				}
			}
		}

		standPat := eval.Evaluate(w.pos)
		if standPat > alpha {
			alpha = standPat
		}
		if alpha >= beta {
			return standPat, nil
		}
	}

	if ply >= MaxPly {
		return eval.Evaluate(w.pos), nil
	}

	if list.Count == 0 {
		if inCheck {
			return CheckmateScore + ply, nil
		}
		return alpha, nil
	}

	orderer := order.New(&list, ply, ttMove, w.killers)

	bestMove := types.NoMove
	var bestPV []types.Move

	for {
		tm, _, ok := orderer.Next()
		if !ok {
			break
		}

		w.pos.MakeMove(tm)
		score, childPV := w.quiescence(depth-1, ply+1, -beta, -alpha)
		score = -score
		w.pos.UndoMove()

		if score >= beta {
			alpha = beta
			bestMove = tm.Move
			break
		}
		if score > alpha {
			alpha = score
			bestMove = tm.Move
			bestPV = append([]types.Move{tm.Move}, childPV...)
		}
	}

	if !inCheck {
		entryType := tt.Exact
		switch {
		case alpha <= startAlpha:
			entryType = tt.UpperBound
		case alpha >= beta:
			entryType = tt.LowerBound
		}
		w.table.Insert(tt.Entry{
			Hash:       w.pos.Hash,
			Move:       bestMove,
			Bound:      entryType,
			Depth:      depth,
			Score:      alpha,
			Quiescence: true,
		})
	}

	return alpha, bestPV
}
