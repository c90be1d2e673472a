// Package cli implements chegoctl's interactive command loop: a
// bufio.Scanner reading lines from stdin, each dispatched to an Engine
// method by its first token. Grounded on
// _examples/chessvariantengine-lib/interface.go's Run/ExecuteLine shape
// (scan loop, whitespace-split args, first token selects a handler) but
// stripped down from that file's UCI/XBOARD protocol pair to a single
// small command set, since this repo has no GUI counterpart to speak
// either protocol to.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/treepeck/goengine/engine"
	"github.com/treepeck/goengine/format"
	"github.com/treepeck/goengine/internal/obslog"
	"github.com/treepeck/goengine/movegen"
	"github.com/treepeck/goengine/types"
)

func squareFromName(s string) (types.Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return 0, fmt.Errorf("cli: unrecognized square %q", s)
	}
	return types.Square(int(s[1]-'1')*8 + int(s[0]-'a')), nil
}

func moveUCI(m types.Move) string {
	s := m.Start().String() + m.End().String()
	switch m.Kind().PromotionType() {
	case types.Bishop:
		s += "b"
	case types.Rook:
		s += "r"
	case types.Knight:
		s += "n"
	case types.Queen:
		s += "q"
	}
	return s
}

// resolveMove finds the legal move matching the "e2e4"-style UCI string
// against the engine's current root position, since the wire format
// omits the move kind (castle, en-passant, promotion) a types.Move needs.
func resolveMove(e *engine.Engine, s string) (types.Move, error) {
	if len(s) < 4 {
		return 0, fmt.Errorf("cli: malformed move %q", s)
	}
	from, err := squareFromName(s[0:2])
	if err != nil {
		return 0, err
	}
	to, err := squareFromName(s[2:4])
	if err != nil {
		return 0, err
	}
	promo := types.NoPieceType
	if len(s) == 5 {
		switch s[4] {
		case 'b':
			promo = types.Bishop
		case 'r':
			promo = types.Rook
		case 'n':
			promo = types.Knight
		case 'q':
			promo = types.Queen
		default:
			return 0, fmt.Errorf("cli: unrecognized promotion piece %q", s[4:])
		}
	}

	pos := e.Position()
	var list types.MoveList
	movegen.Generate(&pos, &list, false)
	for i := 0; i < list.Count; i++ {
		m := list.Moves[i].Move
		if m.Start() == from && m.End() == to && m.Kind().PromotionType() == promo {
			return m, nil
		}
	}
	return 0, fmt.Errorf("cli: %q is not a legal move in the current position", s)
}

// REPL owns the stdin scan loop and the single Engine it drives.
type REPL struct {
	engine *engine.Engine
	out    io.Writer
}

// New returns a REPL over a freshly constructed Engine.
func New(out io.Writer) *REPL {
	return &REPL{engine: engine.New(), out: out}
}

// LoadBook attaches a Polyglot opening book to the REPL's engine, for use
// before the first command line is read (e.g. from a -book flag).
func (r *REPL) LoadBook(path string) error {
	return r.engine.LoadBook(path)
}

// Run reads commands from in until it hits "quit" or EOF, writing
// responses to the REPL's configured output. Mirrors lib.Run's
// scan-then-dispatch loop, minus that file's protocol-specific scanners.
func (r *REPL) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !r.dispatch(line) {
			break
		}
	}
	return scanner.Err()
}

func (r *REPL) dispatch(line string) bool {
	fields := strings.Fields(line)
	command, args := fields[0], fields[1:]

	switch command {
	case "quit", "exit":
		r.engine.StopSearch()
		return false
	case "position":
		r.cmdPosition(args)
	case "go":
		r.cmdGo(args)
	case "stop":
		r.engine.StopSearch()
	case "book":
		r.cmdBook(args)
	case "d", "board":
		pos := r.engine.Position()
		fmt.Fprint(r.out, format.Position(&pos))
		fmt.Fprintf(r.out, "State: %v\n", r.engine.BoardState())
	default:
		fmt.Fprintf(r.out, "unrecognized command %q\n", command)
	}
	return true
}

func (r *REPL) cmdPosition(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(r.out, "usage: position startpos|fen <fen...> [moves m1 m2 ...]")
		return
	}

	movesAt := len(args)
	for i, a := range args {
		if a == "moves" {
			movesAt = i
			break
		}
	}

	switch args[0] {
	case "startpos":
		r.engine.Reset()
	case "fen":
		fenStr := strings.Join(args[1:movesAt], " ")
		if _, err := r.engine.SetFEN(fenStr); err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
			return
		}
	default:
		fmt.Fprintf(r.out, "unrecognized position subcommand %q\n", args[0])
		return
	}

	if movesAt < len(args) {
		for _, s := range args[movesAt+1:] {
			m, err := resolveMove(r.engine, s)
			if err != nil {
				fmt.Fprintf(r.out, "error: %v\n", err)
				return
			}
			if err := r.engine.MakeMove(m); err != nil {
				fmt.Fprintf(r.out, "error: %v\n", err)
				return
			}
		}
	}
}

func (r *REPL) cmdGo(args []string) {
	params := engine.SearchParams{
		MaxTime:         5,
		MaxWorkers:      1,
		TableSize:       1 << 16,
		TableBucketSize: 4,
		BookTemperature: 1,
	}

	for i := 0; i+1 < len(args); i += 2 {
		v, err := strconv.Atoi(args[i+1])
		if err != nil {
			fmt.Fprintf(r.out, "error: %s: %v\n", args[i], err)
			return
		}
		switch args[i] {
		case "depth":
			params.MaxDepth = int32(v)
		case "movetime":
			params.MaxTime = float64(v) / 1000
		case "workers":
			params.MaxWorkers = int32(v)
		}
	}

	if err := r.engine.Search(params); err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	move, err := r.engine.WaitForSearchEnd()
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "bestmove %s\n", moveUCI(move))
}

func (r *REPL) cmdBook(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(r.out, "usage: book <path>")
		return
	}
	if err := r.engine.LoadBook(args[0]); err != nil {
		obslog.Engine.Warningf("book load failed: %v", err)
		fmt.Fprintf(r.out, "error: %v\n", err)
	}
}
