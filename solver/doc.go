// Package solver orchestrates the full pattern-mining pipeline (spec
// §4.10): tokenize, generate and score candidates, compute coverage,
// greedily select with inversion, expand, refine, and assemble the
// final core.Result. The state machine
// Initialized -> Tokenized -> CandidatesScored -> Selected -> Expanded
// -> Refined -> Finalized is linear except for the inversion branch at
// Selected, which package selector already resolves internally.
//
// Solve accepts an optional *zap.Logger (nil means no-op) and tags
// every state transition with a run ID from github.com/google/uuid so
// a caller can correlate log lines with the returned
// core.Result.Diagnostics.RunID.
package solver
