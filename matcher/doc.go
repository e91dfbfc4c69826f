// Package matcher implements the single-wildcard glob matcher used
// throughout PatternForge: '*' matches any substring (including the
// empty string and delimiter characters); every other byte must match
// literally. A pattern with no leading '*' is anchored at the start of
// the string; with no trailing '*', anchored at the end.
//
// Matches is case-insensitive by convention only in the sense that
// tokenizer and candidate generation lower-case every string at
// ingest (spec §4.1, §4.2); the matcher itself performs a literal byte
// comparison and never allocates.
package matcher
