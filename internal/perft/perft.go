// Command perft walks the move generation tree to a fixed depth and counts
// leaf nodes, the standard way of cross-checking a move generator against
// published node counts. Adapted from the teacher's internal/perft.go
// (same perft/perftVerbose split, same flag set and profiling hooks),
// rewired from the teacher's chego.Position/chego.GenLegalMoves onto this
// repo's position/movegen packages and the in-place MakeMove/UndoMove
// instead of copy-restore.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/treepeck/goengine/bitboard"
	"github.com/treepeck/goengine/fen"
	"github.com/treepeck/goengine/format"
	"github.com/treepeck/goengine/movegen"
	"github.com/treepeck/goengine/position"
	"github.com/treepeck/goengine/types"
	"github.com/treepeck/goengine/zobrist"
)

// result accumulates the per-category move counts the verbose flag prints,
// mirroring the standard perft divide columns.
type result struct {
	nodes        int
	captures     int
	epCaptures   int
	castles      int
	promotions   int
	checks       int
	doubleChecks int
}

// perft counts leaf nodes at depth below p without recording categories,
// the fast path used when -verbose is not set.
func perft(p *position.Position, depth int) int {
	var list types.MoveList
	movegen.Generate(p, &list, false)

	if depth == 1 {
		return list.Count
	}

	nodes := 0
	for i := 0; i < list.Count; i++ {
		p.MakeMove(list.Moves[i])
		nodes += perft(p, depth-1)
		p.UndoMove()
	}
	return nodes
}

// perftVerbose follows the same tree as perft but tallies captures,
// en-passant captures, castles, promotions, and checks along the way, and
// at the root logs each move's subtree count (a "divide").
func perftVerbose(p *position.Position, depth int, r *result, isRoot bool) int {
	var list types.MoveList
	movegen.Generate(p, &list, false)

	nodes := 0
	for i := 0; i < list.Count; i++ {
		tm := list.Moves[i]
		tallyMove(tm, r)

		p.MakeMove(tm)
		if p.Checkers != 0 {
			r.checks++
			if p.Checkers&(p.Checkers-1) != 0 {
				r.doubleChecks++
			}
		}

		var cnt int
		if depth == 1 {
			cnt = 1
		} else {
			cnt = perftVerbose(p, depth-1, r, false)
		}
		if isRoot {
			log.Printf("%s %d", moveUCI(tm.Move), cnt)
		}
		nodes += cnt

		p.UndoMove()
	}
	return nodes
}

func tallyMove(tm types.TypedMove, r *result) {
	if tm.Move.IsCapture() {
		r.captures++
	}
	switch tm.Move.Kind() {
	case types.EnPassant:
		r.epCaptures++
	case types.LongCastle, types.ShortCastle:
		r.castles++
	}
	if tm.Move.Kind().IsPromotion() {
		r.promotions++
	}
}

func moveUCI(m types.Move) string {
	s := m.Start().String() + m.End().String()
	switch m.Kind().PromotionType() {
	case types.Knight:
		s += "n"
	case types.Bishop:
		s += "b"
	case types.Rook:
		s += "r"
	case types.Queen:
		s += "q"
	}
	return s
}

func main() {
	depth := flag.Int("depth", 1, "Performance test depth")
	verbose := flag.Bool("verbose", false, "Whether to print the per-move divide and category counts")
	fenFlag := flag.String("fen", fen.Starting, "FEN of the root position")
	cpuprofile := flag.String("cpuprofile", "", "File to write a cpu profile")
	memprofile := flag.String("memprofile", "", "File to write a memory profile")
	flag.Parse()

	bitboard.Init()
	zobrist.Init()

	p, err := fen.Parse(*fenFlag)
	if err != nil {
		log.Fatalf("parsing -fen: %v", err)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}
	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			pprof.WriteHeapProfile(f)
			f.Close()
		}()
	}

	start := time.Now()
	r := &result{}
	if *verbose {
		log.Printf("Root position:\n%s\n%s\n", format.Position(&p), *fenFlag)
		r.nodes = perftVerbose(&p, *depth, r, true)
	} else {
		r.nodes = perft(&p, *depth)
	}
	elapsed := time.Since(start)

	if *verbose {
		log.Printf("nodes=%d captures=%d ep=%d castles=%d promotions=%d checks=%d double_checks=%d",
			r.nodes, r.captures, r.epCaptures, r.castles, r.promotions, r.checks, r.doubleChecks)
	} else {
		log.Printf("Nodes reached: %d", r.nodes)
	}
	log.Printf("Elapsed time: %s", elapsed)
}
