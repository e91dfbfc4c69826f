package selector

import "github.com/patternforge/patternforge/core"

// Cost computes the spec §4.5 cost function for a hypothetical or
// final selection: chosen is the pattern list, fp/fn are the selection's
// false-positive/false-negative counts. Per-field WeightSpec terms are
// summed by multiplying each field's weight by the fraction of chosen
// patterns on that field (spec §4.5, resolved per SPEC_FULL.md §6.1);
// a Uniform WeightSpec collapses this back to a single scalar term
// since the fractions always sum to 1.
func Cost(chosen []core.Pattern, fp, fn int, w core.Weights) float64 {
	frac := fieldFractions(chosen)

	var wc, length int
	for _, p := range chosen {
		wc += p.Wildcards
		length += p.Length
	}
	opCount := 0
	if len(chosen) > 1 {
		opCount = len(chosen) - 1
	}

	return weightedSum(w.FP, frac)*float64(fp) +
		weightedSum(w.FN, frac)*float64(fn) +
		weightedSum(w.Pattern, frac)*float64(len(chosen)) +
		weightedSum(w.Op, frac)*float64(opCount) +
		weightedSum(w.WC, frac)*float64(wc) +
		weightedSum(w.Len, frac)*float64(length)
}

// fieldFractions returns, for each field represented in chosen, the
// fraction of chosen patterns on that field. An empty chosen list
// resolves weights against the unqualified field ("") so cost is still
// well-defined before any pattern has been picked.
func fieldFractions(chosen []core.Pattern) map[string]float64 {
	if len(chosen) == 0 {
		return map[string]float64{"": 1}
	}
	counts := make(map[string]int)
	for _, p := range chosen {
		counts[p.Field]++
	}
	frac := make(map[string]float64, len(counts))
	for f, c := range counts {
		frac[f] = float64(c) / float64(len(chosen))
	}
	return frac
}

func weightedSum(w core.WeightSpec, frac map[string]float64) float64 {
	var sum float64
	for f, fr := range frac {
		sum += w.Resolve(f) * fr
	}
	return sum
}
