// Package result persists the outcomes of long-running engine passes
// (SAT-sweep equivalence classes, LUT-mapping reports) the way the search
// layer persisted optimization rules: an in-memory table safe for
// concurrent writers, plus gob/JSON side doors for checkpoint and export.
package result

import (
	"sort"
	"sync"

	"github.com/berkeley-abc/abc-sub020/pkg/aig"
)

// EquivRecord is one resolved SAT-sweep candidate pair:
// Node was proposed equivalent to Repr, possibly inverted, and Proved
// records whether an UNSAT miter query confirmed the merge rather than
// leaving it as a simulation-only conjecture.
type EquivRecord struct {
	Repr, Node aig.ID
	Inv        bool
	Proved     bool
	Queries    int // SAT queries spent resolving this pair
}

// Table stores discovered equivalence records, safe for concurrent
// writers from a sweep worker pool.
type Table struct {
	mu      sync.Mutex
	records []EquivRecord
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// Add inserts a record into the table.
func (t *Table) Add(r EquivRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = append(t.records, r)
}

// Records returns a copy of all records, sorted by representative id then
// node id so a report is stable across runs regardless of worker interleaving.
func (t *Table) Records() []EquivRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]EquivRecord, len(t.records))
	copy(out, t.records)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Repr != out[j].Repr {
			return out[i].Repr < out[j].Repr
		}
		return out[i].Node < out[j].Node
	})
	return out
}

// Len returns the number of records.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.records)
}
