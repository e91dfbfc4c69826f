// Package bitset is PatternForge's coverage engine (spec §4.4): for
// every surviving candidate pattern it computes two bit vectors —
// which include rows the pattern matches, and which exclude rows it
// matches — backed by github.com/RoaringBitmap/roaring/v2.
//
// Mask exposes the operations spec §9's design notes ask for (and, or,
// andnot, popcount, equal_all_ones, any_bit). The non-in-place
// operations (And, Or, AndNot) return a fresh Mask; the selector only
// ever reads a candidate's precomputed masks and unions them into its
// own running state, never mutates a candidate's own mask.
//
// Computing masks for C candidates against N+M rows is embarrassingly
// parallel (spec §5): Compute splits candidates into disjoint ranges
// and hands them to golang.org/x/sync/errgroup workers, each writing
// its range's results directly into its own disjoint slice of the
// output, in candidate order, so the result is identical regardless of
// how many workers ran it.
package bitset
