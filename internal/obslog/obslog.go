// Package obslog configures the engine's named loggers. Grounded on
// FrankyGo's internal/logging (other_examples/a222fc5b_frankkopp-FrankyGo__internal-movegen-movegen.go.go
// and c95dcd73_..._internal-attacks-attacks.go.go call `myLogging.GetLog()`
// for a single shared, package-tagged logger); this package exposes one
// named logger per concern instead of one shared logger, since the engine
// has exactly three concerns (engine, search, book) worth telling apart in
// output.
package obslog

import (
	"os"

	"github.com/op/go-logging"
)

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:.4s} [%{module}] %{message}`,
)

func init() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	logging.SetBackend(formatted)
}

// Engine is the logger for engine-coordinator events: search start/stop,
// FEN ingest faults, worker lifecycle.
var Engine = logging.MustGetLogger("engine")

// Search is the logger for per-iteration reports (depth, score, nodes, PV).
var Search = logging.MustGetLogger("search")

// Book is the logger for opening-book load diagnostics.
var Book = logging.MustGetLogger("book")

// SetLevel restricts every named logger to at least the given level,
// letting a host silence per-iteration noise without losing faults.
func SetLevel(level logging.Level) {
	logging.SetLevel(level, "engine")
	logging.SetLevel(level, "search")
	logging.SetLevel(level, "book")
}
