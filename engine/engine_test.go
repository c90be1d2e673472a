package engine_test

import (
	"testing"
	"time"

	"github.com/treepeck/goengine/bitboard"
	"github.com/treepeck/goengine/engine"
	"github.com/treepeck/goengine/fen"
	"github.com/treepeck/goengine/types"
	"github.com/treepeck/goengine/zobrist"
)

func TestMain(m *testing.M) {
	bitboard.Init()
	zobrist.Init()
	m.Run()
}

func TestNewEngineStartsAtStartingPosition(t *testing.T) {
	e := engine.New()
	if s := e.BoardState(); s != types.Playing {
		t.Fatalf("fresh engine board state = %v, want Playing", s)
	}
}

func TestSetFENRejectsMalformedInput(t *testing.T) {
	e := engine.New()
	if _, err := e.SetFEN("not a fen string"); err == nil {
		t.Fatalf("expected an error for a malformed FEN")
	}
}

func TestSetFENThenMakeMoveThenUndo(t *testing.T) {
	e := engine.New()
	color, err := e.SetFEN(fen.Starting)
	if err != nil {
		t.Fatalf("SetFEN: %v", err)
	}
	if color != types.White {
		t.Fatalf("expected White to move at the starting position")
	}

	m := types.NewMove(types.E2, types.E4, types.DoublePawn)
	if err := e.MakeMove(m); err != nil {
		t.Fatalf("MakeMove: %v", err)
	}
	if err := e.UndoMove(); err != nil {
		t.Fatalf("UndoMove: %v", err)
	}
	if err := e.UndoMove(); err == nil {
		t.Fatalf("expected an error undoing past the root position")
	}
}

func TestMakeMoveRejectsIllegalMove(t *testing.T) {
	e := engine.New()
	bogus := types.NewMove(types.E2, types.E5, types.Quiet)
	if err := e.MakeMove(bogus); err == nil {
		t.Fatalf("expected an error for an illegal move")
	}
}

func TestBoardStateReportsCheckmate(t *testing.T) {
	e := engine.New()
	// Fool's mate.
	moves := []types.Move{
		types.NewMove(types.F2, types.F3, types.Quiet),
		types.NewMove(types.E7, types.E5, types.DoublePawn),
		types.NewMove(types.G2, types.G4, types.DoublePawn),
		types.NewMove(types.D8, types.H4, types.Quiet),
	}
	for _, m := range moves {
		if err := e.MakeMove(m); err != nil {
			t.Fatalf("MakeMove %v: %v", m, err)
		}
	}
	if s := e.BoardState(); s != types.Checkmate {
		t.Fatalf("board state = %v, want Checkmate", s)
	}
}

func TestSearchAndWaitReturnsALegalMove(t *testing.T) {
	e := engine.New()
	params := engine.SearchParams{
		MaxTime:         2,
		MaxWorkers:      2,
		TableSize:       1024,
		TableBucketSize: 4,
		MaxDepth:        3,
	}
	if err := e.Search(params); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !e.HealthCheck() {
		t.Fatalf("expected HealthCheck to report a running search")
	}

	move, err := e.WaitForSearchEnd()
	if err != nil {
		t.Fatalf("WaitForSearchEnd: %v", err)
	}
	if move == types.NoMove {
		t.Fatalf("expected a real move from the search")
	}
	if e.HealthCheck() {
		t.Fatalf("expected HealthCheck to report idle after completion")
	}
}

func TestSearchRejectsOverlappingCalls(t *testing.T) {
	e := engine.New()
	params := engine.SearchParams{MaxTime: 2, MaxWorkers: 1, TableSize: 64, TableBucketSize: 2, MaxDepth: 4}
	if err := e.Search(params); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if err := e.Search(params); err == nil {
		t.Fatalf("expected an error starting a second concurrent search")
	}
	e.StopSearch()
	if _, err := e.WaitForSearchEnd(); err != nil {
		t.Fatalf("WaitForSearchEnd: %v", err)
	}
}

func TestStopSearchCancelsPromptly(t *testing.T) {
	e := engine.New()
	params := engine.SearchParams{MaxTime: 60, MaxWorkers: 1, TableSize: 64, TableBucketSize: 2, MaxDepth: 0}
	if err := e.Search(params); err != nil {
		t.Fatalf("Search: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	e.StopSearch()

	done := make(chan struct{})
	go func() {
		e.WaitForSearchEnd()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatalf("StopSearch did not cancel the search promptly")
	}
}
