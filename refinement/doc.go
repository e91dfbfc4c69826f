// Package refinement implements the two post-selection passes of spec
// §4.6 and §4.7: expansion (honing a chosen pattern into a longer, more
// specific form that preserves its exact coverage) and refinement
// (replacing two or more chosen patterns with a single more general one
// when doing so strictly reduces the pattern count without increasing
// false positives or losing coverage).
//
// Both passes are monotone: neither ever increases the false-positive
// count, decreases the number of covered include rows, or — for
// refinement — increases the number of patterns. Expansion runs first
// (spec §4.10's Selected → Expanded transition), refinement second
// (Expanded → Refined).
package refinement
