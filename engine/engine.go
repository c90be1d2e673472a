// Package engine implements the lazy-SMP search coordinator and the
// logical host-API surface (SetFEN/MakeMove/UndoMove/BoardState/Search/
// StopSearch/WaitForSearchEnd/HealthCheck) a future C-ABI shim would wrap.
// Grounded on _examples/chessvariantengine-lib's search.go for the overall
// worker/time-control shape and on original_source/src/ai/Search.cpp's
// spawnWorkers/joinWorkers for the lazy-SMP scheduling rules, redesigned
// per this repo's worker-spawning guidance to hold owned,
// sync.WaitGroup-joined goroutines instead of detached, polled threads.
package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/treepeck/goengine/book"
	"github.com/treepeck/goengine/fen"
	"github.com/treepeck/goengine/internal/obslog"
	"github.com/treepeck/goengine/movegen"
	"github.com/treepeck/goengine/order"
	"github.com/treepeck/goengine/position"
	"github.com/treepeck/goengine/search"
	"github.com/treepeck/goengine/tt"
	"github.com/treepeck/goengine/types"
)

// SearchParams configures one Search call. A plain struct, the way the
// teacher's Game.SetClock takes plain ints — six fields consumed
// in-process do not warrant a config/flag library.
type SearchParams struct {
	MaxTime         float64 // seconds; <= 0 means no soft time limit
	MaxWorkers      int32
	TableSize       int32 // transposition table bucket count
	TableBucketSize int32
	MaxDepth        int32 // 0 means no limit
	BookTemperature float64
}

const maxPlyCap = search.MaxPly + 1

// Engine owns one game's root position plus everything a search needs to
// run against it: the shared transposition table, killer table, optional
// opening book, and the bookkeeping for one in-flight search at a time.
type Engine struct {
	mu   sync.Mutex
	root position.Position
	book *book.Selector

	moveCount int // number of MakeMove calls since the root was last set, for UndoMove's bounds check

	table   *tt.Table
	killers *order.Killers

	stopFlag  *atomic.Bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	searching bool
	best      types.Move
	bestScore int
	done      chan struct{}
}

// New returns an Engine positioned at the standard starting position.
func New() *Engine {
	e := &Engine{}
	root, err := fen.Parse(fen.Starting)
	if err != nil {
		panic(fmt.Sprintf("engine: starting FEN failed to parse: %v", err))
	}
	e.root = root
	return e
}

// LoadBook attaches a Polyglot opening book, replacing any previously
// loaded one. A failed load still leaves the Engine with a usable
// (empty) selector, per book.Load's contract.
func (e *Engine) LoadBook(path string) error {
	selector, err := book.Load(path)
	e.mu.Lock()
	e.book = selector
	e.mu.Unlock()
	if err != nil {
		obslog.Book.Warningf("load %s: %v", path, err)
	}
	return err
}

// Position returns a copy of the current root position, safe for a
// caller to inspect (move generation, display) without racing a
// concurrent MakeMove.
func (e *Engine) Position() position.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.root
}

// Reset replaces the root position with the standard starting position.
func (e *Engine) Reset() {
	root, err := fen.Parse(fen.Starting)
	if err != nil {
		panic(fmt.Sprintf("engine: starting FEN failed to parse: %v", err))
	}
	e.mu.Lock()
	e.root = root
	e.moveCount = 0
	e.mu.Unlock()
}

// SetFEN replaces the root position and returns the active color.
func (e *Engine) SetFEN(s string) (types.Color, error) {
	p, err := fen.Parse(s)
	if err != nil {
		obslog.Engine.Warningf("set_fen: %v", err)
		return types.White, err
	}
	e.mu.Lock()
	e.root = p
	e.moveCount = 0
	e.mu.Unlock()
	return p.ActiveColor, nil
}

// MakeMove applies m to the root position. m must be one of the root's
// legal moves; an unrecognized move is reported as an error rather than
// silently corrupting the position.
func (e *Engine) MakeMove(m types.Move) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var list types.MoveList
	movegen.Generate(&e.root, &list, false)
	for i := 0; i < list.Count; i++ {
		if list.Moves[i].Move == m {
			e.root.MakeMove(list.Moves[i])
			e.moveCount++
			return nil
		}
	}
	return fmt.Errorf("engine: move %v is not legal in the current position", m)
}

// UndoMove reverses the most recently applied MakeMove.
func (e *Engine) UndoMove() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.moveCount == 0 {
		return fmt.Errorf("engine: no move to undo")
	}
	e.root.UndoMove()
	e.moveCount--
	return nil
}

// BoardState classifies the current root position.
func (e *Engine) BoardState() types.BoardState {
	e.mu.Lock()
	defer e.mu.Unlock()

	var list types.MoveList
	movegen.Generate(&e.root, &list, false)
	if list.Count == 0 {
		if e.root.Checkers != 0 {
			return types.Checkmate
		}
		return types.NoMovesStalemate
	}
	if e.root.HalfmoveClock >= 50 {
		return types.HalfMovesStalemate
	}
	if e.root.GetMaxRepetitions() >= 3 {
		return types.RepetitionStalemate
	}
	return types.Playing
}

// HealthCheck reports whether a search is currently in flight.
func (e *Engine) HealthCheck() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.searching
}

// Search starts a search against the current root position in the
// background and returns immediately; call WaitForSearchEnd to block for
// its result. If a book selector is attached and has a matching entry,
// the book shortcut applies: the move is published with no worker spawned
// at all.
func (e *Engine) Search(params SearchParams) error {
	e.mu.Lock()
	if e.searching {
		e.mu.Unlock()
		return fmt.Errorf("engine: a search is already in progress")
	}

	var legal types.MoveList
	movegen.Generate(&e.root, &legal, false)
	typed := make([]types.TypedMove, legal.Count)
	copy(typed, legal.Moves[:legal.Count])

	if e.book != nil {
		if m, ok := e.book.TrySelect(e.root.Hash, typed, params.BookTemperature); ok {
			e.best, e.bestScore = m, 0
			e.done = make(chan struct{})
			close(e.done)
			e.mu.Unlock()
			obslog.Search.Infof("book move %v", m)
			return nil
		}
	}

	workers := int(params.MaxWorkers)
	if workers < 1 {
		workers = 1
	}

	tableBuckets := int(params.TableSize)
	tableBucketSize := int(params.TableBucketSize)
	if e.table == nil || e.table.BucketCount() != tableBuckets || e.table.BucketSize() != tableBucketSize {
		e.table = tt.New(tableBuckets, tableBucketSize)
	} else {
		e.table.Reset(tableBuckets, tableBucketSize)
	}
	e.killers = order.NewKillers()

	maxDepth := maxPlyCap
	if params.MaxDepth > 0 && int(params.MaxDepth) < maxDepth {
		maxDepth = int(params.MaxDepth)
	}

	ctx, cancel := context.WithCancel(context.Background())
	deadline := time.Now().Add(365 * 24 * time.Hour)
	if params.MaxTime > 0 {
		deadline = time.Now().Add(time.Duration(params.MaxTime * float64(time.Second)))
		var timeoutCtx context.Context
		timeoutCtx, cancel = context.WithDeadline(ctx, deadline)
		ctx = timeoutCtx
	}
	e.cancel = cancel

	var stopFlag atomic.Bool
	e.stopFlag = &stopFlag
	e.searching = true
	e.best, e.bestScore = types.NoMove, 0
	e.done = make(chan struct{})

	root := e.root
	table := e.table
	killers := e.killers
	doneCh := e.done
	e.mu.Unlock()

	go func() {
		// Translate ctx cancellation into the atomic flag the workers
		// poll, so a context timeout behaves exactly like StopSearch.
		go func() {
			<-ctx.Done()
			stopFlag.Store(true)
		}()

		var maxCompletedDepth atomic.Int32
		var nextHelperDepth atomic.Int32
		nextHelperDepth.Store(1)

		publish := func(d int, res search.Result) {
			for {
				cur := maxCompletedDepth.Load()
				if int32(d) <= cur {
					return
				}
				if maxCompletedDepth.CompareAndSwap(cur, int32(d)) {
					break
				}
			}
			e.mu.Lock()
			e.best, e.bestScore = moveOf(res), res.Score
			e.mu.Unlock()
			obslog.Search.Infof("depth=%d score=%d nodes=%d seldepth=%d",
				d, res.Score, res.Stats.Nodes, res.Stats.SelDepth)
		}

		e.wg.Add(workers)
		for i := 0; i < workers; i++ {
			isMain := i == 0
			w := search.NewWorker(&root, table, killers, &stopFlag, deadline)
			go func(isMain bool) {
				defer e.wg.Done()
				depth := 1
				passes := 0
				for depth <= maxDepth {
					res, ok := w.SearchDepth(depth)
					if !ok {
						return
					}
					publish(depth, res)

					if isMain {
						passes++
						step := 1
						if passes%2 == 0 {
							step++
						}
						depth += step
					} else {
						depth = int(nextHelperDepth.Add(1))
					}
				}
			}(isMain)
		}

		e.wg.Wait()
		e.mu.Lock()
		e.searching = false
		e.mu.Unlock()
		close(doneCh)
	}()

	return nil
}

// StopSearch requests cancellation of any in-flight search. It does not
// block; call WaitForSearchEnd to observe completion.
func (e *Engine) StopSearch() {
	e.mu.Lock()
	flag, cancel := e.stopFlag, e.cancel
	e.mu.Unlock()
	if flag != nil {
		flag.Store(true)
	}
	if cancel != nil {
		cancel()
	}
}

// WaitForSearchEnd blocks until the current search (or book shortcut)
// completes and returns its chosen move.
func (e *Engine) WaitForSearchEnd() (types.Move, error) {
	e.mu.Lock()
	done := e.done
	e.mu.Unlock()
	if done == nil {
		return types.NoMove, fmt.Errorf("engine: no search has been started")
	}
	<-done

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.best == types.NoMove {
		return types.NoMove, fmt.Errorf("engine: search produced no move")
	}
	return e.best, nil
}

func moveOf(res search.Result) types.Move {
	if len(res.PV) == 0 {
		return types.NoMove
	}
	return res.PV[0]
}
