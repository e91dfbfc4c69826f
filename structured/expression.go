package structured

import (
	"strings"

	"github.com/patternforge/patternforge/bitset"
	"github.com/patternforge/patternforge/candidates"
	"github.com/patternforge/patternforge/core"
	"github.com/patternforge/patternforge/tokenizer"
)

// Expression is a conjunction of per-field glob patterns, grounded on
// structured_expressions.py's StructuredExpression. A field absent from
// Fields is an implicit wildcard. IncrementalMatches/IncrementalFP are
// the new coverage and new false positives this expression contributed
// beyond whatever the expressions selected before it already covered —
// grounded on solver.py's residual "incremental_tp"/"incremental_fp"
// accounting, computed here at selection time rather than as a
// separate pass.
type Expression struct {
	ID                 string
	Fields             map[string]core.Pattern
	Include            *bitset.Mask
	Exclude            *bitset.Mask
	Score              float64
	Matches            int
	FP                 int
	FN                 int
	IncrementalMatches int
	IncrementalFP      int
	Length             int
}

// fieldPool builds the per-field candidate pool and coverage for one
// field, reusing candidates.Generate and bitset.Compute exactly as the
// single-field pipeline does.
type fieldPool struct {
	patterns []core.Pattern
	coverage []bitset.Coverage
}

// buildFieldPools tokenizes and scores candidates for every named
// field, then computes each candidate's coverage against the full row
// sets. Rows missing a field (nil value) contribute no candidate text
// for that field but still participate in coverage as a don't-care.
func buildFieldPools(includeRows, excludeRows []core.Row, fieldNames []string, cfg *core.Config, gcfg candidates.Config) map[string]fieldPool {
	pools := make(map[string]fieldPool, len(fieldNames))
	for _, field := range fieldNames {
		candRows := tokenizeField(includeRows, field, cfg)
		pats := candidates.Generate(candRows, field, cfg, gcfg)
		for i := range pats {
			pats[i].Field = field
		}

		include := fieldValues(includeRows, field)
		exclude := fieldValues(excludeRows, field)
		cov := bitset.Compute(pats, include, exclude)

		pools[field] = fieldPool{patterns: pats, coverage: cov}
	}
	return pools
}

func tokenizeField(rows []core.Row, field string, cfg *core.Config) []candidates.Row {
	split, minLen := cfg.TokenizerFor(field)
	out := make([]candidates.Row, 0, len(rows))
	for _, r := range rows {
		v := r[field]
		if v == nil {
			continue
		}
		text := strings.ToLower(*v)
		out = append(out, candidates.Row{Text: text, Tokens: tokenizer.Tokenize(text, split, minLen)})
	}
	return out
}

func fieldValues(rows []core.Row, field string) []bitset.FieldValue {
	out := make([]bitset.FieldValue, len(rows))
	for i, r := range rows {
		v := r[field]
		if v == nil {
			out[i] = bitset.FieldValue{DontCare: true}
			continue
		}
		out[i] = bitset.FieldValue{Value: strings.ToLower(*v)}
	}
	return out
}

// score computes an expression's specificity score per
// structured_expressions.py's compute_score: each named field
// contributes length × kind-multiplier × path-component-bonus ×
// field-weight, and the sum is scaled up again when more than one
// field is named.
func score(fields map[string]core.Pattern, cfg *core.Config) float64 {
	var total float64
	numFields := 0
	for field, p := range fields {
		if p.Text == "*" {
			continue
		}
		numFields++

		patternScore := float64(p.Length)
		switch p.Wildcards {
		case 0:
			patternScore *= 2.0
		case 1:
			patternScore *= 1.5
		}

		components := strings.Count(p.Text, "/") + 1
		if components > 1 {
			patternScore *= 1 + 0.2*float64(components-1)
		}

		patternScore *= cfg.FieldWeights.Resolve(field)
		total += patternScore
	}
	if numFields > 1 {
		total *= 1 + 0.3*float64(numFields-1)
	}
	return total
}
