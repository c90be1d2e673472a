package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/treepeck/goengine/bitboard"
	"github.com/treepeck/goengine/cli"
	"github.com/treepeck/goengine/zobrist"
)

func TestMain(m *testing.M) {
	bitboard.Init()
	zobrist.Init()
	m.Run()
}

func run(t *testing.T, script string) string {
	t.Helper()
	var out bytes.Buffer
	r := cli.New(&out)
	if err := r.Run(strings.NewReader(script)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func TestBoardCommandPrintsStartingPosition(t *testing.T) {
	out := run(t, "d\nquit\n")
	if !strings.Contains(out, "Active color: white") {
		t.Fatalf("expected the starting position's active color in output, got %q", out)
	}
	if !strings.Contains(out, "State: Playing") {
		t.Fatalf("expected a Playing board state, got %q", out)
	}
}

func TestPositionMovesAppliesEachMoveInOrder(t *testing.T) {
	out := run(t, "position startpos moves e2e4 e7e5\nd\nquit\n")
	if !strings.Contains(out, "Active color: white") {
		t.Fatalf("after two half-moves white should be to move again, got %q", out)
	}
}

func TestPositionFenRejectsMalformedInput(t *testing.T) {
	out := run(t, "position fen not a fen\nquit\n")
	if !strings.Contains(out, "error:") {
		t.Fatalf("expected an error line for a malformed fen, got %q", out)
	}
}

func TestGoReportsABestMove(t *testing.T) {
	out := run(t, "go depth 2\nquit\n")
	if !strings.Contains(out, "bestmove ") {
		t.Fatalf("expected a bestmove line, got %q", out)
	}
}

func TestUnrecognizedCommandIsReported(t *testing.T) {
	out := run(t, "frobnicate\nquit\n")
	if !strings.Contains(out, "unrecognized command") {
		t.Fatalf("expected an unrecognized-command message, got %q", out)
	}
}
