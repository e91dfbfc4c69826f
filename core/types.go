// Package core: fundamental value types.
//
// This file declares Token, Kind, Pattern, Row and the sentinel errors
// shared across the candidate generator, coverage engine, selector,
// refinement, structured solver and boolean evaluator.
//
// Errors:
//
//	ErrInvalidMode             - mode is neither EXACT nor APPROX.
//	ErrInvalidEffort           - effort is not one of low/medium/high/exhaustive.
//	ErrInvalidKind             - allowed_patterns names an unknown Kind.
//	ErrNegativeWeight          - a cost weight is negative.
//	ErrNonPositiveMinTokenLen  - min_token_len is <= 0.
//	ErrContradictoryBudget     - a hard budget is out of range (count < 1, fraction outside (0,1)).
//	ErrFieldSetMismatch        - structured rows disagree on their field sets.
package core

import "errors"

// Sentinel errors for configuration and input validation (spec §7).
var (
	// ErrInvalidMode is returned when Mode is neither ModeExact nor ModeApprox.
	ErrInvalidMode = errors.New("core: invalid mode")

	// ErrInvalidEffort is returned when Effort is not a recognized level.
	ErrInvalidEffort = errors.New("core: invalid effort")

	// ErrInvalidKind is returned when AllowedKinds names an unknown pattern Kind.
	ErrInvalidKind = errors.New("core: invalid pattern kind")

	// ErrNegativeWeight is returned when a cost-function weight is negative.
	ErrNegativeWeight = errors.New("core: negative weight")

	// ErrNonPositiveMinTokenLen is returned when MinTokenLen <= 0.
	ErrNonPositiveMinTokenLen = errors.New("core: min_token_len must be >= 1")

	// ErrContradictoryBudget is returned when a hard budget is out of
	// range: an absolute count below 1 or a fraction outside (0, 1).
	ErrContradictoryBudget = errors.New("core: contradictory budget")

	// ErrFieldSetMismatch is returned when structured rows disagree on fields.
	ErrFieldSetMismatch = errors.New("core: row field set mismatch")
)

// Kind identifies the shape of a glob Pattern.
type Kind string

// The five candidate kinds named in spec §4.3.
const (
	KindExact     Kind = "exact"
	KindPrefix    Kind = "prefix"
	KindSuffix    Kind = "suffix"
	KindSubstring Kind = "substring"
	KindMulti     Kind = "multi"
)

// AllKinds lists every Kind in a stable, deterministic order.
func AllKinds() []Kind {
	return []Kind{KindExact, KindPrefix, KindSuffix, KindSubstring, KindMulti}
}

// Valid reports whether k is one of the five recognized kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindExact, KindPrefix, KindSuffix, KindSubstring, KindMulti:
		return true
	default:
		return false
	}
}

// Token is a normalized substring of a source string together with its
// position among that string's raw splits. original_index lets later
// stages reconstruct multi-segment patterns that preserve source order,
// even after short tokens have been merged with their delimiters.
type Token struct {
	// Text is the lower-cased, normalized token text. It is guaranteed
	// to literally occur in its source string (merges preserve
	// delimiter characters verbatim).
	Text string

	// OriginalIndex is the position of this token among the raw splits
	// of its source string, before any merge. A merged token inherits
	// the index of the first raw token it absorbed.
	OriginalIndex int
}

// Pattern (aka Atom) is an immutable glob candidate or selected term.
//
// Length and Wildcards are computed directly from Text: Length counts
// non-'*' runes, Wildcards counts '*' runes. Score is a generation-time
// or selection-time cost signal; Matches/FP are populated once coverage
// has been computed.
type Pattern struct {
	// ID is a stable symbolic label ("P1", "P2", ...) assigned at
	// selection time. Empty until the pattern is selected.
	ID string

	// Text is the glob expression; '*' is the only wildcard.
	Text string

	// Kind classifies how Text was generated.
	Kind Kind

	// Wildcards is the number of '*' runes in Text.
	Wildcards int

	// Length is the number of non-'*' runes in Text.
	Length int

	// Field is the structured-mode field this pattern applies to.
	// Empty in single-field mode.
	Field string

	// Score is the candidate's generation-time score (length × kind
	// multiplier × optional field weight), used for top-k retention
	// and as a selector tie-breaker.
	Score float64

	// Matches is the number of include items this pattern hits, once
	// coverage has been computed. -1 means "not yet computed".
	Matches int

	// FP is the number of exclude items this pattern hits, once
	// coverage has been computed. -1 means "not yet computed".
	FP int
}

// NewPattern builds a Pattern from its text and kind, deriving Wildcards
// and Length from Text. Matches and FP start at -1 ("unknown").
func NewPattern(text string, kind Kind) Pattern {
	wc, ln := 0, 0
	for _, r := range text {
		if r == '*' {
			wc++
		} else {
			ln++
		}
	}
	return Pattern{
		Text:      text,
		Kind:      kind,
		Wildcards: wc,
		Length:    ln,
		Matches:   -1,
		FP:        -1,
	}
}

// IsBareWildcard reports whether p.Text contains no non-'*' character.
// No pattern satisfying this may ever be emitted (spec invariant).
func (p Pattern) IsBareWildcard() bool {
	return p.Length == 0
}

// Row is a single structured-mode record: field name to value. A nil
// value (as opposed to an empty string) means "don't care" and is only
// meaningful on exclude rows (spec §3, §4.4).
type Row map[string]*string

// Fields returns r's field names in a stable sort order, used whenever
// field sets must be compared or iterated deterministically.
func (r Row) Fields() []string {
	fields := make([]string, 0, len(r))
	for f := range r {
		fields = append(fields, f)
	}
	sortStrings(fields)
	return fields
}

// SameFields reports whether r and other declare exactly the same set
// of field names, regardless of value.
func (r Row) SameFields(other Row) bool {
	if len(r) != len(other) {
		return false
	}
	for f := range r {
		if _, ok := other[f]; !ok {
			return false
		}
	}
	return true
}

// sortStrings is a tiny insertion sort, avoiding a "sort" import for a
// handful of field names in the common case while staying correct for
// the uncommon one.
func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
