// Package structured solves the multi-field variant of the pattern
// problem (spec §4.8): rows carry several named fields instead of one
// string, and a chosen "expression" is a conjunction of per-field glob
// patterns. An expression matches a row when every field it names
// matches that field's value; a field the expression omits (or sets to
// "*") is a wildcard and imposes no constraint.
//
// Solve builds a per-field candidate pool with candidates.Generate,
// computes per-field coverage with bitset.Compute, and then grows
// expressions greedily: each fresh expression is seeded with the best
// single-field pattern available, then specialized one field at a time
// — each added field must strictly reduce false positives without
// losing any of the expression's current true positives — until no
// further field addition helps or the expression is exact. The outer
// loop repeats until every include row is covered or no candidate
// expression adds new coverage.
package structured
