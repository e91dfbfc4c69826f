package tokenizer

import (
	"strings"
	"unicode"

	"github.com/patternforge/patternforge/core"
)

// rawToken is a single raw split before any merge, carrying its byte
// extent in the lower-cased source so the merge step can slice out the
// verbatim delimiter characters between two tokens.
type rawToken struct {
	text  string
	start int
	end   int
}

// charClass classifies a rune for classchange splitting.
type charClass int

const (
	classOther charClass = iota
	classAlpha
	classDigit
)

func classify(r rune) charClass {
	switch {
	case unicode.IsLetter(r):
		return classAlpha
	case unicode.IsDigit(r):
		return classDigit
	default:
		return classOther
	}
}

// Tokenize splits s into core.Token values following spec §4.2: lower-case,
// raw-split (classchange or char), drop single-character raw tokens under
// classchange, then merge any remaining sub-minimum token forward with its
// delimiter and the next kept token until it reaches minTokenLen (or no
// kept token remains). Duplicate texts are allowed; tokens are returned in
// ascending original-index order.
func Tokenize(s string, split core.SplitMethod, minTokenLen int) []core.Token {
	lowered := strings.ToLower(s)
	raw := rawSplit(lowered, split)

	kept := make([]rawToken, 0, len(raw))
	if split == core.SplitClassChange {
		for _, rt := range raw {
			if utf8RuneCount(rt.text) > 1 {
				kept = append(kept, rt)
			}
		}
	} else {
		// char mode forces minTokenLen == 1 (spec §4.2 step 2); every
		// raw token already satisfies it, so nothing is dropped.
		kept = raw
	}

	return merge(lowered, raw, kept, minTokenLen)
}

// rawSplit performs step 2: classchange boundaries are transitions
// between alphabetic/digit/other classes; char mode makes every rune
// its own raw token. Offsets are byte offsets into s, and originalIndex
// (carried via the position in the returned slice) is simply the raw
// split order — callers track it by index, not by field.
func rawSplit(s string, split core.SplitMethod) []rawToken {
	var out []rawToken
	if split == core.SplitChar {
		for i, r := range s {
			out = append(out, rawToken{text: string(r), start: i, end: i + utf8Len(r)})
		}
		return out
	}

	var starts []int
	var classes []charClass
	for i, r := range s {
		starts = append(starts, i)
		classes = append(classes, classify(r))
	}
	if len(starts) == 0 {
		return out
	}

	segStart := 0
	for i := 1; i < len(starts); i++ {
		if classes[i] != classes[segStart] {
			out = append(out, rawToken{text: s[starts[segStart]:starts[i]], start: starts[segStart], end: starts[i]})
			segStart = i
		}
	}
	out = append(out, rawToken{text: s[starts[segStart]:], start: starts[segStart], end: len(s)})
	return out
}

// merge performs steps 4-5: walk the kept tokens left to right; any
// token shorter than minTokenLen absorbs the original delimiter text
// and the next kept token(s), in source order, until the accumulated
// text reaches minTokenLen or no kept token remains. The merged token
// inherits the original index — its position among raw, not kept,
// splits — of the first token it absorbed.
func merge(source string, raw, kept []rawToken, minTokenLen int) []core.Token {
	rawIndex := make(map[int]int, len(kept)) // kept-slice position -> raw-slice index
	ri := 0
	for ki, kt := range kept {
		for ri < len(raw) && raw[ri].start != kt.start {
			ri++
		}
		rawIndex[ki] = ri
	}

	var out []core.Token
	i := 0
	for i < len(kept) {
		cur := kept[i]
		if utf8RuneCount(cur.text) >= minTokenLen {
			out = append(out, core.Token{Text: cur.text, OriginalIndex: rawIndex[i]})
			i++
			continue
		}

		text := cur.text
		prevEnd := cur.end
		j := i + 1
		for j < len(kept) {
			text += source[prevEnd:kept[j].start] + kept[j].text
			prevEnd = kept[j].end
			j++
			if utf8RuneCount(text) >= minTokenLen {
				break
			}
		}
		out = append(out, core.Token{Text: text, OriginalIndex: rawIndex[i]})
		i = j
	}
	return out
}

func utf8RuneCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

func utf8Len(r rune) int {
	return len(string(r))
}
