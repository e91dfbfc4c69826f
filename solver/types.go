package solver

import "github.com/patternforge/patternforge/core"

// Input is the single-field problem instance (spec §3): a finite list
// of strings the solution must match (Include) and a finite list it
// must avoid (Exclude).
type Input struct {
	Include []string
	Exclude []string
}

// StructuredInput is the multi-field problem instance (spec §4.8):
// Include/Exclude rows that all share the same field set, named by
// Fields. Row field sets are validated against Fields before solving;
// a mismatch is reported as core.ErrFieldSetMismatch.
type StructuredInput struct {
	Include []core.Row
	Exclude []core.Row
	Fields  []string
}
