// Package tokenizer deterministically segments a hierarchical string
// into core.Token values (spec §4.2).
//
// Two split methods are supported: classchange (boundaries at
// alphabetic/digit/other transitions) and char (every rune its own raw
// token, which implicitly forces MinTokenLen to 1). Raw splits below
// MinTokenLen are merged forward with their delimiter and the next
// kept token, so every emitted token's text literally occurs, verbatim,
// in the source string — later pipeline stages depend on this to
// generate only patterns that can actually match.
//
// The walker here follows the same shape as the teacher's BFS walker
// (github.com/katalvlaran/lvlath/bfs): a small struct carrying mutable
// scan state, advanced one step at a time by a tight loop, with no
// recursion.
package tokenizer
