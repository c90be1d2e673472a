// Command chegoctl is the engine's thin process entry point: it parses
// flags, wires up logging and an optional opening book, and hands stdin
// off to the cli package's command loop. Adapted from the teacher's
// root main.go (a single-bitboard demo printer, discarded entirely) in
// the shape of _examples/chessvariantengine-lib's Run entry point —
// initialize globals, then loop over stdin until quit.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/op/go-logging"

	"github.com/treepeck/goengine/bitboard"
	"github.com/treepeck/goengine/cli"
	"github.com/treepeck/goengine/internal/obslog"
	"github.com/treepeck/goengine/zobrist"
)

func main() {
	bookPath := flag.String("book", "", "path to a Polyglot opening book (.bin)")
	verbose := flag.Bool("verbose", false, "log search iterations at debug level")
	flag.Parse()

	if *verbose {
		obslog.SetLevel(logging.DEBUG)
	} else {
		obslog.SetLevel(logging.INFO)
	}

	bitboard.Init()
	zobrist.Init()

	repl := cli.New(os.Stdout)
	if *bookPath != "" {
		if err := repl.LoadBook(*bookPath); err != nil {
			obslog.Engine.Warningf("book: %v", err)
		}
	}

	if err := repl.Run(os.Stdin); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
