package refinement

import (
	"fmt"
	"sort"
	"strings"

	"github.com/patternforge/patternforge/core"
	"github.com/patternforge/patternforge/matcher"
	"github.com/patternforge/patternforge/tokenizer"
)

// Refine attempts to replace chosen with a strictly smaller pattern set
// that still supercovers every row chosen currently matches and hits
// no more exclude rows (spec §4.6). It tries, in order, a single
// pattern that replaces the entire set, then a pairwise merge of two
// patterns into one. If neither improves on chosen, chosen is returned
// unchanged. Refine never mutates chosen's backing array.
func Refine(chosen []core.Pattern, includeRows, excludeRows []string) []core.Pattern {
	if len(chosen) <= 1 {
		return chosen
	}

	covered := unionMatch(chosen, includeRows)
	currentFP := unionMatchCount(chosen, excludeRows)

	if single, ok := trySinglePatternCoverage(covered, currentFP, includeRows, excludeRows); ok {
		return single
	}
	if merged, ok := tryMergePair(chosen, includeRows, excludeRows); ok {
		return merged
	}
	return chosen
}

// trySinglePatternCoverage looks for one pattern, drawn from
// generalizations of the rows chosen currently covers, that supercovers
// covered (every row chosen already matches) without exceeding
// currentFP exclude hits. On success it returns a single-pattern
// replacement set.
func trySinglePatternCoverage(covered []string, currentFP int, includeRows, excludeRows []string) ([]core.Pattern, bool) {
	for _, text := range generateGeneralizations(covered) {
		matched := matchingRows(text, includeRows)
		if !supersetOf(rowSet(matched), rowSet(covered)) {
			continue
		}
		if countMatches(text, excludeRows) > currentFP {
			continue
		}
		p := core.NewPattern(text, classify(text))
		p.ID = "P1"
		p.Matches = len(matched)
		p.FP = countMatches(text, excludeRows)
		return []core.Pattern{p}, true
	}
	return nil, false
}

// tryMergePair looks for a pair of chosen patterns that a single
// generalized pattern can replace without losing coverage or
// increasing false positives, returning the pattern set with that pair
// collapsed into one and every ID reassigned in order.
func tryMergePair(chosen []core.Pattern, includeRows, excludeRows []string) ([]core.Pattern, bool) {
	totalFP := unionMatchCount(chosen, excludeRows)

	for i := 0; i < len(chosen); i++ {
		for j := i + 1; j < len(chosen); j++ {
			pairCovered := unionMatch([]core.Pattern{chosen[i], chosen[j]}, includeRows)

			for _, text := range generalizePair(chosen[i].Text, chosen[j].Text) {
				matched := matchingRows(text, includeRows)
				if !supersetOf(rowSet(matched), rowSet(pairCovered)) {
					continue
				}
				merged := core.NewPattern(text, classify(text))
				merged.Matches = len(matched)
				merged.FP = countMatches(text, excludeRows)

				out := make([]core.Pattern, 0, len(chosen)-1)
				for k, p := range chosen {
					if k != i && k != j {
						out = append(out, p)
					}
				}
				out = append(out, merged)
				if unionMatchCount(out, excludeRows) > totalFP {
					continue
				}
				relabelSequential(out)
				return out, true
			}
		}
	}
	return nil, false
}

// generateGeneralizations mirrors the three candidate families
// original_source's refinement module derives from a covered row set:
// the common literal prefix up to its last delimiter, each token
// common to every row, and ordered pairs of common tokens at most two
// positions apart.
func generateGeneralizations(rows []string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(text string) {
		if _, ok := seen[text]; !ok {
			seen[text] = struct{}{}
			out = append(out, text)
		}
	}

	if len(rows) >= 2 {
		prefix := commonPrefixAll(rows)
		if cut := lastDelimiterBoundary(prefix); cut > 0 {
			add(prefix[:cut] + "*")
		}
	}

	commonTokens := tokensCommonToAll(rows)
	for i, tok := range commonTokens {
		if i >= 5 {
			break
		}
		add("*" + tok + "*")
	}
	for i := 0; i < len(commonTokens) && i < 5; i++ {
		for j := i + 1; j < len(commonTokens) && j < i+3; j++ {
			add("*" + commonTokens[i] + "*" + commonTokens[j] + "*")
		}
	}
	return out
}

// generalizePair mirrors _generalize_pair: a literal common prefix (if
// longer than three bytes, cut back to its last delimiter) and up to
// three tokens shared between the two pattern texts.
func generalizePair(text1, text2 string) []string {
	var out []string

	n := commonPrefixLen(text1, text2)
	if n > 3 {
		prefix := text1[:n]
		if cut := lastDelimiterBoundary(prefix); cut > 0 {
			out = append(out, prefix[:cut]+"*")
		}
	}

	t1 := tokenSet(text1)
	t2 := tokenSet(text2)
	var common []string
	for tok := range t1 {
		if _, ok := t2[tok]; ok {
			common = append(common, tok)
		}
	}
	sort.Strings(common)
	for i, tok := range common {
		if i >= 3 {
			break
		}
		out = append(out, "*"+tok+"*")
	}
	return out
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range tokenizer.Tokenize(text, core.SplitClassChange, 3) {
		set[t.Text] = struct{}{}
	}
	return set
}

// tokensCommonToAll returns, in first-seen order, every token that
// occurs in every row's classchange tokenization (min length 3).
func tokensCommonToAll(rows []string) []string {
	if len(rows) == 0 {
		return nil
	}
	freq := make(map[string]int)
	var order []string
	seen := make(map[string]struct{})
	for _, row := range rows {
		for _, t := range tokenizer.Tokenize(strings.ToLower(row), core.SplitClassChange, 3) {
			freq[t.Text]++
			if _, ok := seen[t.Text]; !ok {
				seen[t.Text] = struct{}{}
				order = append(order, t.Text)
			}
		}
	}
	var common []string
	for _, tok := range order {
		if freq[tok] == len(rows) {
			common = append(common, tok)
		}
	}
	return common
}

// lastDelimiterBoundary returns one past the last delimiter byte in s,
// or 0 if s has none.
func lastDelimiterBoundary(s string) int {
	last := 0
	for i := 0; i < len(s); i++ {
		if isDelimiter(s[i]) {
			last = i + 1
		}
	}
	return last
}

func commonPrefixLen(a, b string) int {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return i
}

func unionMatch(patterns []core.Pattern, rows []string) []string {
	set := make(map[string]struct{})
	var out []string
	for _, row := range rows {
		if _, ok := set[row]; ok {
			continue
		}
		for _, p := range patterns {
			if matcher.Matches(p.Text, strings.ToLower(row)) {
				set[row] = struct{}{}
				out = append(out, row)
				break
			}
		}
	}
	return out
}

func unionMatchCount(patterns []core.Pattern, rows []string) int {
	return len(unionMatch(patterns, rows))
}

func supersetOf(a, b map[string]struct{}) bool {
	for k := range b {
		if _, ok := a[k]; !ok {
			return false
		}
	}
	return true
}

func relabelSequential(patterns []core.Pattern) {
	for i := range patterns {
		patterns[i].ID = fmt.Sprintf("P%d", i+1)
	}
}
