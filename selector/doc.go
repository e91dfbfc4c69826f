// Package selector implements the greedy cost-driven set-cover
// selector (spec §4.5): given a scored candidate pool and its
// precomputed coverage masks, it builds a disjunction of patterns that
// minimizes a weighted cost over false positives, false negatives, and
// pattern/operator/wildcard/length structure, subject to hard budgets.
//
// Select also runs the complement ("inversion") problem — solving the
// same greedy procedure with include and exclude swapped — and decides
// between the base and inverted solution per core.Invert, enforcing
// the mandatory post-hoc max_fp safety check on any inverted result
// before it is ever returned (spec §4.5: "this FP check on inverted
// solutions is mandatory").
package selector
