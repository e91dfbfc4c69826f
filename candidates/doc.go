// Package candidates enumerates and scores the bounded pool of glob
// patterns a row's tokens can generate (spec §4.3): exact, prefix,
// suffix, substring, and multi-segment, each gated so that it can
// actually match at least the row it was generated from, then reduced
// to the top-scoring max_candidates by a deterministic stable sort.
//
// Generation is a pure function of (tokens, original string, config);
// given the same inputs twice, it produces byte-identical output,
// including tie order — callers rely on this for the determinism
// property required of the whole pipeline.
package candidates
