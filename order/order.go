// Package order scores and selects moves for the search tree: a TT
// best-move hint, MVV/LVA for captures, per-ply killer slots for quiet
// cutoffs, and the move-kind byte as a final tiebreak. Selection is a lazy
// selection sort over a caller-owned move list so that cost scales with the
// number of moves the search actually examines rather than the full list.
// Grounded on the teacher's (treepeck/chego) move-list buffer conventions,
// generalized to the ordering contract the search layer requires.
package order

import (
	"sync"

	"github.com/treepeck/goengine/types"
)

const (
	// MVVLVAOffset separates every capture (and the TT hint) from quiet
	// scores, so captures and the hinted move always sort before killers
	// and plain quiet moves.
	MVVLVAOffset = 2_000_000
	// KillerOffset separates killer quiet moves from the rest of the
	// quiet moves, but stays below MVVLVAOffset so captures always sort
	// first.
	KillerOffset = 1_000_000
	ttMoveBonus  = 100
)

// mvvLva[victim][attacker] scores a capture by the value of the piece it
// removes, tie-broken downward by the value of the piece making the
// capture: rows are Pawn..Queen victims (10 apart), columns are Pawn..King
// attackers (1 apart, Pawn attacker scoring highest within a row).
var mvvLva = buildMVVLVA()

func buildMVVLVA() [5][6]int {
	var m [5][6]int
	for victim := 0; victim < 5; victim++ {
		for attacker := 0; attacker < 6; attacker++ {
			m[victim][attacker] = 10*(victim+1) + (5 - attacker)
		}
	}
	return m
}

const maxPly = 128 // headroom above MAX_PLY(125) for check extensions

type killerSlot struct {
	move  types.Move
	score int
}

// Killers holds the two killer-move slots per ply. Shared across search
// workers, so insertion is mutex-guarded; a lost update under contention is
// acceptable, a torn slot is not.
type Killers struct {
	mu    sync.Mutex
	slots [maxPly][2]killerSlot
}

// NewKillers returns an empty killer table.
func NewKillers() *Killers { return &Killers{} }

// Record inserts move as a killer at ply after a beta cutoff on a quiet
// move: an empty slot is filled first; otherwise the lower-scored slot is
// replaced if move's score beats it.
func (k *Killers) Record(ply int, move types.Move, score int) {
	if ply < 0 || ply >= maxPly {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	slots := &k.slots[ply]
	for i := range slots {
		if slots[i].move == types.NoMove {
			slots[i] = killerSlot{move, score}
			return
		}
	}
	lo := 0
	if slots[1].score < slots[0].score {
		lo = 1
	}
	if score > slots[lo].score {
		slots[lo] = killerSlot{move, score}
	}
}

// IsKiller reports whether move occupies one of ply's killer slots. Used
// both for scoring and by the search's late-move-reduction condition,
// which excludes a move already recorded as a killer at this ply.
func (k *Killers) IsKiller(ply int, move types.Move) bool {
	return k.isKiller(ply, move)
}

// isKiller reports whether move occupies one of ply's killer slots.
func (k *Killers) isKiller(ply int, move types.Move) bool {
	if ply < 0 || ply >= maxPly {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	slots := &k.slots[ply]
	return slots[0].move == move || slots[1].move == move
}

// Score returns tm's ordering score at ply, given the TT best-move hint
// for the current position (types.NoMove if there is none).
func Score(tm types.TypedMove, ply int, ttMove types.Move, killers *Killers) int {
	tiebreak := int(tm.Move.Kind())

	switch {
	case ttMove != types.NoMove && tm.Move == ttMove:
		return MVVLVAOffset + ttMoveBonus + tiebreak
	case tm.Move.IsCapture():
		victim, attacker := tm.Captured.Type(), tm.Moved.Type()
		return MVVLVAOffset + mvvLva[victim][attacker] + tiebreak
	case killers != nil && killers.isKiller(ply, tm.Move):
		return KillerOffset + tiebreak
	default:
		return tiebreak
	}
}

// Orderer drives move selection for a single node: every move's score is
// computed once up front, then Next lazily selection-sorts the remaining
// suffix of the list on demand.
type Orderer struct {
	list *types.MoveList
	// 256 matches the MoveList buffer contract (types.MoveList.Moves).
	scores [256]int
	next   int
}

// New scores every move in list for the given ply and TT hint. list must
// outlive the Orderer; Next mutates it in place as moves are drawn.
func New(list *types.MoveList, ply int, ttMove types.Move, killers *Killers) *Orderer {
	o := &Orderer{list: list}
	for i := 0; i < list.Count; i++ {
		o.scores[i] = Score(list.Moves[i], ply, ttMove, killers)
	}
	return o
}

// Next selection-sorts the maximum-scored remaining move into the current
// position and returns it along with its score. The final bool is false
// once every move has been drawn.
func (o *Orderer) Next() (types.TypedMove, int, bool) {
	if o.next >= o.list.Count {
		return types.TypedMove{}, 0, false
	}

	best := o.next
	for i := o.next + 1; i < o.list.Count; i++ {
		if o.scores[i] > o.scores[best] {
			best = i
		}
	}
	if best != o.next {
		o.list.Moves[o.next], o.list.Moves[best] = o.list.Moves[best], o.list.Moves[o.next]
		o.scores[o.next], o.scores[best] = o.scores[best], o.scores[o.next]
	}

	m, s := o.list.Moves[o.next], o.scores[o.next]
	o.next++
	return m, s, true
}

// Drawn returns the number of moves handed out so far, i.e. the
// legal-so-far count a caller needs for late-move pruning/reduction.
func (o *Orderer) Drawn() int { return o.next }
