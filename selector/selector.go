package selector

import (
	"fmt"

	"github.com/patternforge/patternforge/bitset"
	"github.com/patternforge/patternforge/core"
)

// Result is the outcome of Select: the chosen patterns (with Matches
// and FP filled in from their own coverage, and ID assigned in
// selection order), the final coverage masks in original (non-swapped)
// terms regardless of whether the inverted branch won, and that
// branch decision itself.
type Result struct {
	Chosen   []core.Pattern
	Covered  *bitset.Mask // include rows the final predicate matches (TP)
	FPMask   *bitset.Mask // exclude rows the final predicate matches
	FNMask   *bitset.Mask // include rows the final predicate misses
	Inverted bool
	Cost     float64
}

// Select runs the greedy set-cover procedure (spec §4.5) over pool,
// using covs[i] as pool[i]'s precomputed coverage, then — unless
// cfg.Invert is InvertNever — runs the complement problem and decides
// between the two per cfg.Invert, subject to the mandatory FP safety
// check on any inverted candidate result.
func Select(pool []core.Pattern, covs []bitset.Coverage, nInclude, nExclude int, cfg *core.Config) Result {
	base := runGreedy(pool, covs, nInclude, nInclude, cfg)
	baseFP, baseFN := base.excludeBits.Popcount(), nInclude-base.includeBits.Popcount()
	baseResult := Result{
		Chosen:   labelAndStat(base.chosen, covs, base.chosenIdx),
		Covered:  base.includeBits,
		FPMask:   base.excludeBits,
		FNMask:   base.includeBits.Complement(nInclude),
		Inverted: false,
		Cost:     Cost(base.chosen, baseFP, baseFN, cfg.Weights),
	}

	// With no exclude rows, the complement problem needs zero patterns
	// by construction (there's nothing for it to cover) and always
	// outcosts any real base selection, which would make invert=auto
	// degenerate into "report nothing, match everything" on every
	// exclude-less input. Inversion only makes sense when there is an
	// exclude set to describe.
	if cfg.Invert == core.InvertNever || nExclude == 0 {
		return baseResult
	}

	swapped := swapCoverage(covs)
	inv := runGreedy(pool, swapped, nExclude, nInclude, cfg)
	// The final predicate is NOT(E'), where E' is the swapped run's
	// expression: a real include row is missed (FN) exactly when E'
	// hits it, which is the swapped run's own exclude-role union; a
	// real exclude row is wrongly matched (FP) exactly when E' misses
	// it, the complement of the swapped run's own include-role union
	// (see DESIGN.md for the full derivation).
	invFNMask := inv.excludeBits
	invFPMask := inv.includeBits.Complement(nExclude)
	invFP, invFN := invFPMask.Popcount(), invFNMask.Popcount()

	maxFPLimit, hasMaxFP := cfg.Budgets.MaxFP.Resolve(nInclude)
	invertedSafe := !hasMaxFP || invFP <= maxFPLimit

	invertedCost := Cost(inv.chosen, invFP, invFN, cfg.Weights)
	invertedResult := Result{
		Chosen:   labelAndStat(inv.chosen, swapped, inv.chosenIdx),
		Covered:  invFNMask.Complement(nInclude),
		FPMask:   invFPMask,
		FNMask:   invFNMask,
		Inverted: true,
		Cost:     invertedCost,
	}

	switch cfg.Invert {
	case core.InvertAlways:
		if invertedSafe {
			return invertedResult
		}
		return baseResult
	case core.InvertAuto:
		if invertedSafe && invertedCost < baseResult.Cost {
			return invertedResult
		}
		return baseResult
	default:
		return baseResult
	}
}

// greedyState is the running selection during one greedy pass.
type greedyState struct {
	chosenIdx   []int
	chosen      []core.Pattern
	includeBits *bitset.Mask
	excludeBits *bitset.Mask
}

// runGreedy performs one greedy set-cover pass (spec §4.5 steps 1-6)
// over pool/covs, treating n as the size of the "include" population
// for this pass (nExclude, for the swapped/inverted run) and budgetN
// as the real |include| size that hard-budget fractions always
// resolve against, per spec §4.5's "fractions of |include|" wording.
func runGreedy(pool []core.Pattern, covs []bitset.Coverage, n, budgetN int, cfg *core.Config) greedyState {
	st := greedyState{includeBits: bitset.NewMask(), excludeBits: bitset.NewMask()}
	used := make([]bool, len(pool))
	curCost := Cost(nil, 0, n, cfg.Weights)

	for {
		bestIdx := -1
		var bestCost float64
		var bestIncGain int

		for i, p := range pool {
			if used[i] {
				continue
			}
			hypInclude := st.includeBits.Or(covs[i].Include)
			hypExclude := st.excludeBits.Or(covs[i].Exclude)
			hypChosen := append(append([]core.Pattern{}, st.chosen...), p)

			fp := hypExclude.Popcount()
			fn := n - hypInclude.Popcount()
			if violatesBudgets(len(hypChosen), fp, fn, budgetN, cfg.Budgets) {
				continue
			}

			cost := Cost(hypChosen, fp, fn, cfg.Weights)
			incGain := hypInclude.Popcount() - st.includeBits.Popcount()

			if bestIdx == -1 || better(cost, bestCost, incGain, bestIncGain, p, pool[bestIdx]) {
				bestIdx, bestCost, bestIncGain = i, cost, incGain
			}
		}

		if bestIdx == -1 || bestCost >= curCost {
			break
		}

		st.chosenIdx = append(st.chosenIdx, bestIdx)
		st.chosen = append(st.chosen, pool[bestIdx])
		used[bestIdx] = true
		st.includeBits = st.includeBits.Or(covs[bestIdx].Include)
		st.excludeBits = st.excludeBits.Or(covs[bestIdx].Exclude)
		curCost = bestCost

		if st.includeBits.EqualAllOnes(n) && !st.excludeBits.AnyBit() {
			break
		}
		if limit, ok := cfg.Budgets.MaxPatterns.Resolve(budgetN); ok && len(st.chosenIdx) >= limit {
			break
		}
	}
	return st
}

// better implements the spec §4.5 step 3 tie-break chain: lower cost
// wins; on a cost tie, greater incremental include gain, then fewer
// wildcards, then longer non-wildcard length, then lexicographic text.
func better(costA, costB float64, incGainA, incGainB int, a, b core.Pattern) bool {
	if costA != costB {
		return costA < costB
	}
	if incGainA != incGainB {
		return incGainA > incGainB
	}
	if a.Wildcards != b.Wildcards {
		return a.Wildcards < b.Wildcards
	}
	if a.Length != b.Length {
		return a.Length > b.Length
	}
	return a.Text < b.Text
}

// violatesBudgets reports whether adding a candidate to reach
// chosenCount/fp/fn would exceed a configured hard budget. Budgets
// resolve their fractional form against nInclude, per spec §4.5's
// "fractions of |include|" wording, applied uniformly to all three
// budgets.
func violatesBudgets(chosenCount, fp, fn, nInclude int, b core.Budgets) bool {
	if limit, ok := b.MaxPatterns.Resolve(nInclude); ok && chosenCount > limit {
		return true
	}
	if limit, ok := b.MaxFP.Resolve(nInclude); ok && fp > limit {
		return true
	}
	if limit, ok := b.MaxFN.Resolve(nInclude); ok && fn > limit {
		return true
	}
	return false
}

// swapCoverage returns a coverage slice with Include and Exclude
// masks swapped, used to run the complement ("inversion") problem.
func swapCoverage(covs []bitset.Coverage) []bitset.Coverage {
	out := make([]bitset.Coverage, len(covs))
	for i, c := range covs {
		out[i] = bitset.Coverage{Include: c.Exclude, Exclude: c.Include}
	}
	return out
}

// labelAndStat assigns stable "P1", "P2", ... IDs in selection order
// and fills each chosen pattern's own Matches/FP from its coverage.
func labelAndStat(chosen []core.Pattern, covs []bitset.Coverage, idx []int) []core.Pattern {
	out := make([]core.Pattern, len(chosen))
	for i, p := range chosen {
		p.ID = fmt.Sprintf("P%d", i+1)
		p.Matches = covs[idx[i]].Include.Popcount()
		p.FP = covs[idx[i]].Exclude.Popcount()
		out[i] = p
	}
	return out
}
