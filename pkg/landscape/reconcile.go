package landscape

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrEdgeMismatch is returned under EdgeStrict when neighbouring fragments
// disagree on a shared sample.
var ErrEdgeMismatch = errors.New("shared edge mismatch")

// Record is a landscape record whose fragment can be read and replaced.
type Record interface {
	Fragment() (Fragment, error)
	SetFragment(Fragment)
}

// EdgePolicy selects how disagreeing shared samples are handled during ingest.
type EdgePolicy int

const (
	// EdgeOverwrite lets the later writer win silently.
	EdgeOverwrite EdgePolicy = iota
	// EdgeWarn lets the later writer win and lists every disagreement in the Report.
	EdgeWarn
	// EdgeStrict fails the reconciliation on the first ingest pass with disagreements.
	EdgeStrict
)

var edgePolicyNames = []string{"overwrite", "warn", "strict"}

// String returns the config spelling of the policy.
func (p EdgePolicy) String() string {
	if p < 0 || int(p) >= len(edgePolicyNames) {
		return fmt.Sprintf("EdgePolicy(%d)", int(p))
	}
	return edgePolicyNames[p]
}

// ParseEdgePolicy parses "overwrite", "warn" or "strict".
func ParseEdgePolicy(s string) (EdgePolicy, error) {
	for i, name := range edgePolicyNames {
		if strings.EqualFold(s, name) {
			return EdgePolicy(i), nil
		}
	}
	return EdgeOverwrite, fmt.Errorf("unknown edge policy %q", s)
}

// Report summarises one reconciliation.
type Report struct {
	Records   int
	Cells     int
	Conflicts []Conflict
}

// Reconciler runs the ingest and derive passes over a set of landscape records.
//
// Records are ingested in ascending cell order (X, then Y; ties keep input
// order), so at a shared sample the record with the greater cell coordinate
// wins. Derived fragments are committed only after every record was derived.
type Reconciler struct {
	Units     Units
	Policy    EdgePolicy
	Tolerance float64
}

type pending struct {
	record   Record
	fragment Fragment
}

// Reconcile rewrites the fragment of every record from the consolidated field.
// On error no record is modified.
func (r *Reconciler) Reconcile(records []Record) (*Report, error) {
	if err := r.Units.Validate(); err != nil {
		return nil, err
	}

	entries := make([]pending, 0, len(records))
	for i, rec := range records {
		f, err := rec.Fragment()
		if err != nil {
			return nil, fmt.Errorf("landscape record %d: %w", i, err)
		}
		entries = append(entries, pending{record: rec, fragment: f})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].fragment.Cell.Less(entries[j].fragment.Cell)
	})

	grid := NewGrid(r.Units)
	report := &Report{Records: len(entries)}

	decoder := Decoder{Grid: grid, Tolerance: r.Tolerance}
	if r.Policy != EdgeOverwrite {
		decoder.OnConflict = func(c Conflict) {
			report.Conflicts = append(report.Conflicts, c)
		}
	}
	for _, e := range entries {
		if err := decoder.Decode(e.fragment); err != nil {
			return nil, fmt.Errorf("ingesting cell %s: %w", e.fragment.Cell, err)
		}
	}
	report.Cells = grid.Len()

	if r.Policy == EdgeStrict && len(report.Conflicts) > 0 {
		c := report.Conflicts[0]
		return report, fmt.Errorf("%w: %d shared samples disagree, first at vertex (%d, %d) written by cell %s: %v != %v",
			ErrEdgeMismatch, len(report.Conflicts), c.Vertex.X, c.Vertex.Y, c.Cell, c.Value, c.Previous)
	}

	encoder := Encoder{Grid: grid}
	derived := make([]Fragment, len(entries))
	for i, e := range entries {
		f, err := encoder.Encode(e.fragment.Cell)
		if err != nil {
			return nil, fmt.Errorf("deriving cell %s: %w", e.fragment.Cell, err)
		}
		derived[i] = f
	}

	for i, e := range entries {
		e.record.SetFragment(derived[i])
	}

	return report, nil
}
