// Package tt implements the shared transposition table: a fixed-size array
// of mutex-guarded buckets, each holding a small vector of entries keyed by
// Zobrist hash. Grounded on the bucketed, lock-protected table shape in
// AdamGriffiths31/ChessEngine's search package (packed entry fields, a
// depth-driven replacement policy) and on herohde/morlock's table (the
// read/write contract returning a bound, depth, score, and best move
// together), adapted from morlock's lock-free single-slot buckets to the
// explicit multi-entry bucket + mutex scheme the search package calls for.
package tt

import (
	"sync"

	"github.com/treepeck/goengine/types"
)

// Bound classifies how a stored score relates to the position's true
// minimax value.
type Bound uint8

const (
	Exact Bound = iota
	LowerBound
	UpperBound
)

// Entry is one stored search result.
type Entry struct {
	Hash       uint64
	Move       types.Move
	Score      int
	Depth      int
	Bound      Bound
	Quiescence bool // stored by a quiescence search; not a cutoff for full-width search
}

// Hit is the outcome of applying a stored Entry against a search call's
// depth and window. Found reports whether the entry said anything at all.
// Exact means the caller may return Score directly. Otherwise Alpha/Beta
// carry the window, possibly moved by the stored bound, for the caller to
// keep searching with; Collapsed reports that the returned window is closed
// (Alpha >= Beta), a cutoff reached without searching a single move.
type Hit struct {
	Found     bool
	Exact     bool
	Score     int
	Alpha     int
	Beta      int
	Collapsed bool
}

// Apply resolves e against a probe at the given depth and window,
// mirroring the source's TableEntry::Apply: a LowerBound entry whose score
// is at or above beta raises beta to that score, an UpperBound entry whose
// score is at or below alpha lowers alpha to it, and neither returns a
// cutoff on its own unless the resulting window is closed, which happens
// only when the window passed in was already closed — the caller otherwise
// still walks the move list with the returned bounds.
//
// A quiescence-tagged entry may only be applied by a quiescence probe
// (depth <= 0); at non-quiescence depths it reports no hit here, though
// the caller may still read its Move as an ordering hint.
func (e Entry) Apply(depth, alpha, beta int) Hit {
	if e.Depth < depth {
		return Hit{Alpha: alpha, Beta: beta}
	}
	if depth > 0 && e.Quiescence {
		return Hit{Alpha: alpha, Beta: beta}
	}

	switch e.Bound {
	case Exact:
		return Hit{Found: true, Exact: true, Score: e.Score, Alpha: alpha, Beta: beta}
	case LowerBound:
		if e.Score >= beta {
			beta = e.Score
			return Hit{Found: true, Alpha: alpha, Beta: beta, Collapsed: alpha >= beta}
		}
	case UpperBound:
		if e.Score <= alpha {
			alpha = e.Score
			return Hit{Found: true, Alpha: alpha, Beta: beta, Collapsed: alpha >= beta}
		}
	}

	return Hit{Alpha: alpha, Beta: beta}
}

// bucket is a small, fixed-capacity vector of entries guarded by its own
// mutex so that probes against unrelated hashes never contend.
type bucket struct {
	mu      sync.Mutex
	entries []Entry
}

// Table is the shared transposition table. Safe for concurrent use by
// multiple search workers.
type Table struct {
	buckets    []bucket
	bucketSize int
}

// New builds a table with bucketCount buckets, each holding up to
// bucketSize entries.
func New(bucketCount, bucketSize int) *Table {
	t := &Table{}
	t.Reset(bucketCount, bucketSize)
	return t
}

// Reset rebuilds the table to the given shape, discarding all entries.
func (t *Table) Reset(bucketCount, bucketSize int) {
	if bucketCount < 1 {
		bucketCount = 1
	}
	if bucketSize < 1 {
		bucketSize = 1
	}
	t.buckets = make([]bucket, bucketCount)
	t.bucketSize = bucketSize
	for i := range t.buckets {
		t.buckets[i].entries = make([]Entry, 0, bucketSize)
	}
}

func (t *Table) bucketFor(hash uint64) *bucket {
	return &t.buckets[hash%uint64(len(t.buckets))]
}

// Probe performs a linear scan of hash's bucket and returns the first
// entry whose stored hash matches, if any.
func (t *Table) Probe(hash uint64) (Entry, bool) {
	b := t.bucketFor(hash)
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, e := range b.entries {
		if e.Hash == hash {
			return e, true
		}
	}
	return Entry{}, false
}

// Insert stores entry into its bucket. If the bucket has room, entry is
// appended. Otherwise the first stored entry with a strictly lesser depth
// is replaced; if none qualifies, entry is dropped.
//
// An existing entry for the same hash is replaced in place rather than
// duplicated, regardless of depth, since a repeated probe should only ever
// see the most recent result for a given position.
func (t *Table) Insert(entry Entry) {
	b := t.bucketFor(entry.Hash)
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, e := range b.entries {
		if e.Hash == entry.Hash {
			b.entries[i] = entry
			return
		}
	}

	if len(b.entries) < t.bucketSize {
		b.entries = append(b.entries, entry)
		return
	}

	for i, e := range b.entries {
		if e.Depth < entry.Depth {
			b.entries[i] = entry
			return
		}
	}
}

// BucketCount returns the number of buckets in the table.
func (t *Table) BucketCount() int { return len(t.buckets) }

// BucketSize returns the per-bucket entry capacity.
func (t *Table) BucketSize() int { return t.bucketSize }
