package refinement

import (
	"sort"
	"strings"

	"github.com/patternforge/patternforge/core"
	"github.com/patternforge/patternforge/matcher"
)

// isDelimiter reports whether r is one of the boundary characters
// expand honing is allowed to stop at (spec §4.7 step 2: "delimiter
// positions").
func isDelimiter(r byte) bool {
	switch r {
	case '/', '_', '.', '-':
		return true
	default:
		return false
	}
}

// ExpandAll runs Expand over every chosen pattern independently.
func ExpandAll(chosen []core.Pattern, includeRows, excludeRows []string) []core.Pattern {
	out := make([]core.Pattern, len(chosen))
	for i, p := range chosen {
		out[i] = Expand(p, includeRows, excludeRows)
	}
	return out
}

// Expand attempts to specialize p into a longer, more literal form that
// matches the exact same include rows with no more false positives
// than p already has (spec §4.7). Only two pattern shapes are honed:
// "*substring*" candidates (rewritten toward "<prefix>*") and
// "<prefix>/*" candidates (rewritten toward a longer "<prefix>/*").
// Any other shape is returned unchanged — honing only ever makes sense
// starting from a pattern with a trailing wildcard to narrow.
func Expand(p core.Pattern, includeRows, excludeRows []string) core.Pattern {
	matched := matchingRows(p.Text, includeRows)
	if len(matched) == 0 {
		return p
	}
	currentFP := countMatches(p.Text, excludeRows)

	prefix := commonPrefixAll(matched)
	if prefix == "" {
		return p
	}

	var best string
	switch {
	case strings.HasPrefix(p.Text, "*") && strings.HasSuffix(p.Text, "*"):
		best = honePrefix(prefix, "", p.Text, includeRows, excludeRows, matched, currentFP)
	case strings.HasSuffix(p.Text, "/*"):
		base := strings.TrimSuffix(p.Text, "/*")
		if !strings.HasPrefix(prefix, base) {
			return p
		}
		best = honePrefix(prefix, base, p.Text, includeRows, excludeRows, matched, currentFP)
	default:
		return p
	}
	if best == p.Text {
		return p
	}
	return relabel(p, best)
}

// honePrefix enumerates delimiter positions in prefix at or after the
// length of base (the literal part already committed by the current
// pattern), longest first, capped at ten candidates, and returns the
// longest one whose include-row match set equals matched and whose
// false-positive count does not exceed currentFP. It falls back to
// fallback (the unchanged pattern text) if even the longest candidate
// changes the include match set.
func honePrefix(prefix, base, fallback string, includeRows, excludeRows []string, matched []string, currentFP int) string {
	positions := delimiterPositions(prefix, len(base))
	if len(positions) == 0 {
		return fallback
	}

	best := fallback
	bestLen := literalLen(fallback)
	currentBits := rowSet(matched)

	for _, pos := range positions {
		candidate := prefix[:pos] + "*"
		if base != "" {
			// Normalize away any delimiter already at the cut point so
			// the explicit "/" below never doubles up.
			candidate = strings.TrimRight(prefix[:pos], "/_.-") + "/*"
		}

		newMatched := matchingRows(candidate, includeRows)
		if !sameSet(rowSet(newMatched), currentBits) {
			// Longer candidates come first; honing stops at the first
			// one that changes coverage, and shorter cuts are not tried.
			break
		}

		fp := countMatches(candidate, excludeRows)
		newLen := literalLen(candidate)
		if fp <= currentFP && newLen > bestLen {
			best = candidate
			bestLen = newLen
			if pos == len(prefix) {
				return best
			}
		}
	}
	return best
}

// delimiterPositions returns, for prefix, the set of cut points after
// minLen at which prefix holds a delimiter byte, plus the full prefix
// length itself, sorted longest-first and capped at ten (spec §4.7
// step 2).
func delimiterPositions(prefix string, minLen int) []int {
	var positions []int
	for i := minLen; i < len(prefix); i++ {
		if isDelimiter(prefix[i]) {
			positions = append(positions, i+1)
		}
	}
	if len(prefix) > minLen {
		positions = append(positions, len(prefix))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(positions)))
	if len(positions) > 10 {
		positions = positions[:10]
	}
	return positions
}

func matchingRows(pattern string, rows []string) []string {
	var out []string
	for _, r := range rows {
		if matcher.Matches(pattern, strings.ToLower(r)) {
			out = append(out, r)
		}
	}
	return out
}

func countMatches(pattern string, rows []string) int {
	n := 0
	for _, r := range rows {
		if matcher.Matches(pattern, strings.ToLower(r)) {
			n++
		}
	}
	return n
}

func rowSet(rows []string) map[string]struct{} {
	set := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		set[r] = struct{}{}
	}
	return set
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func literalLen(s string) int {
	n := 0
	for _, r := range s {
		if r != '*' {
			n++
		}
	}
	return n
}

// commonPrefixAll returns the longest common prefix shared by every
// string in rows, case-folded.
func commonPrefixAll(rows []string) string {
	if len(rows) == 0 {
		return ""
	}
	prefix := strings.ToLower(rows[0])
	for _, r := range rows[1:] {
		prefix = commonPrefixOf(prefix, strings.ToLower(r))
		if prefix == "" {
			return ""
		}
	}
	return prefix
}

func commonPrefixOf(a, b string) string {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return a[:i]
}

// relabel rebuilds a Pattern around a new Text, recomputing the
// derived fields the way core.NewPattern does, while preserving
// identity fields (ID, Field) that don't depend on the text.
func relabel(p core.Pattern, text string) core.Pattern {
	next := core.NewPattern(text, classify(text))
	next.ID = p.ID
	next.Field = p.Field
	return next
}

// classify infers a Kind from a pattern's wildcard placement (spec §3
// kind taxonomy), mirroring the classification original_source uses
// after honing changes a pattern's shape.
func classify(text string) core.Kind {
	wc := strings.Count(text, "*")
	switch {
	case wc == 0:
		return core.KindExact
	case strings.HasPrefix(text, "*") && strings.HasSuffix(text, "*"):
		if wc == 2 {
			return core.KindSubstring
		}
		return core.KindMulti
	case strings.HasPrefix(text, "*"):
		return core.KindSuffix
	case strings.HasSuffix(text, "*"):
		return core.KindPrefix
	default:
		return core.KindMulti
	}
}
