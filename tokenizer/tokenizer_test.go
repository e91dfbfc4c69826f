package tokenizer_test

import (
	"reflect"
	"testing"

	"github.com/patternforge/patternforge/core"
	"github.com/patternforge/patternforge/tokenizer"
)

func texts(toks []core.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}

func indices(toks []core.Token) []int {
	out := make([]int, len(toks))
	for i, t := range toks {
		out[i] = t.OriginalIndex
	}
	return out
}

func TestTokenize_ClassChange_DropsSingleCharDelimiters(t *testing.T) {
	// "0" is a single-digit raw token and is dropped along with the
	// delimiters "_" and "/" — step 3 drops any single-character raw
	// token under classchange, regardless of character class.
	got := tokenizer.Tokenize("CPU_Core0/Mem", core.SplitClassChange, 2)
	want := []string{"cpu", "core", "mem"}
	if !reflect.DeepEqual(texts(got), want) {
		t.Errorf("Tokenize() texts = %v; want %v", texts(got), want)
	}
}

func TestTokenize_ClassChange_MergesSubMinimumToken(t *testing.T) {
	// Raw splits: "ab" "_" "c" "_" "def"; the single-char delimiters and
	// the single-char "c" are dropped (step 3), leaving "ab" and "def".
	// "ab" is below min_token_len=3 and has only one kept neighbour to
	// absorb, so it swallows everything up to and including "def",
	// preserving the original delimiter characters verbatim.
	got := tokenizer.Tokenize("ab_c_def", core.SplitClassChange, 3)
	wantTexts := []string{"ab_c_def"}
	if !reflect.DeepEqual(texts(got), wantTexts) {
		t.Fatalf("Tokenize() texts = %v; want %v", texts(got), wantTexts)
	}
	// The merged token's text must literally occur in the source.
	if !containsSubstring("ab_c_def", got[0].Text) {
		t.Errorf("merged token %q does not literally occur in source", got[0].Text)
	}
}

func TestTokenize_ClassChange_LoneSubMinimumTokenKeptUnmerged(t *testing.T) {
	// A sub-minimum token with no kept neighbour to merge with is
	// emitted unchanged rather than dropped.
	got := tokenizer.Tokenize("a_bb_c", core.SplitClassChange, 4)
	// raw splits: "a" "_" "bb" "_" "c"; classchange drops the two
	// single-char delimiters ("_") and the single-char "a" and "c",
	// leaving only "bb" which is below min_token_len=4 and has no
	// further kept token to merge with, so it is emitted as-is.
	wantTexts := []string{"bb"}
	if !reflect.DeepEqual(texts(got), wantTexts) {
		t.Errorf("Tokenize() texts = %v; want %v", texts(got), wantTexts)
	}
}

func TestTokenize_Char_ForcesEveryRuneAsToken(t *testing.T) {
	got := tokenizer.Tokenize("ab", core.SplitChar, 1)
	want := []string{"a", "b"}
	if !reflect.DeepEqual(texts(got), want) {
		t.Errorf("Tokenize() texts = %v; want %v", texts(got), want)
	}
}

func TestTokenize_OriginalIndexAscendingAndStable(t *testing.T) {
	got := tokenizer.Tokenize("alpha/module1/mem", core.SplitClassChange, 2)
	idx := indices(got)
	for i := 1; i < len(idx); i++ {
		if idx[i] <= idx[i-1] {
			t.Fatalf("original indices not strictly ascending: %v", idx)
		}
	}
}

func TestTokenize_DuplicateTextsAllowed(t *testing.T) {
	got := tokenizer.Tokenize("foo_foo", core.SplitClassChange, 2)
	want := []string{"foo", "foo"}
	if !reflect.DeepEqual(texts(got), want) {
		t.Errorf("Tokenize() texts = %v; want %v", texts(got), want)
	}
	if got[0].OriginalIndex == got[1].OriginalIndex {
		t.Error("duplicate-text tokens must still carry distinct original indices")
	}
}

func TestTokenize_Empty(t *testing.T) {
	got := tokenizer.Tokenize("", core.SplitClassChange, 2)
	if len(got) != 0 {
		t.Errorf("Tokenize(\"\") = %v; want empty", got)
	}
}

func containsSubstring(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
