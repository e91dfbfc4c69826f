package structured

import (
	"fmt"

	"github.com/patternforge/patternforge/bitset"
	"github.com/patternforge/patternforge/candidates"
	"github.com/patternforge/patternforge/core"
)

// Solve builds the per-field candidate pools and greedily selects
// conjunctive expressions until every include row is covered or no
// candidate expression adds new coverage (spec §4.8 steps 4-6).
//
// Each fresh expression is seeded with whichever single field pattern
// (from any field) adds the most new coverage, score breaking ties;
// it is then specialized one field at a time — a specialization is
// only accepted when it strictly reduces the expression's false
// positives without reducing its true positives — until the
// expression is exact or no field addition helps. This is a dynamic
// reading of the grammar in spec §4.8, in contrast to
// structured_expressions.py's static per-row pre-enumeration of
// field combinations, which this package uses only for the scoring
// formula and the outer coverage/score tie-break.
func Solve(includeRows, excludeRows []core.Row, fieldNames []string, cfg *core.Config, gcfg candidates.Config) []Expression {
	pools := buildFieldPools(includeRows, excludeRows, fieldNames, cfg, gcfg)

	nInclude := len(includeRows)
	covered := bitset.NewMask()
	fpTotal := bitset.NewMask()
	maxFP, hasMaxFP := cfg.Budgets.MaxFP.Resolve(nInclude)
	maxPatterns, hasMaxPatterns := cfg.Budgets.MaxPatterns.Resolve(nInclude)

	var selected []Expression
	nextID := 1

	for covered.Popcount() < nInclude {
		if hasMaxPatterns && len(selected) >= maxPatterns {
			break
		}

		// A seed (or its specialization) that cannot satisfy max_fp is
		// discarded and the next-best seed tried instead, rather than
		// aborting the whole solve — one non-discriminating field must
		// not stop a different field from separating the same rows.
		tried := map[seedKey]bool{}
		accepted := false

		for {
			seedField, seedIdx := findBestSeed(pools, fieldNames, covered, cfg, tried)
			if seedIdx < 0 {
				break
			}
			tried[seedKey{seedField, seedIdx}] = true

			fields, curInclude, curExclude, usedFields := map[string]core.Pattern{
				seedField: pools[seedField].patterns[seedIdx],
			}, pools[seedField].coverage[seedIdx].Include.Clone(),
				pools[seedField].coverage[seedIdx].Exclude.Clone(),
				map[string]bool{seedField: true}

			if cfg.Effort != core.EffortLow {
				curInclude, curExclude = specializeExpression(pools, fieldNames, usedFields, fields, curInclude, curExclude)
			}

			newCoverage := curInclude.AndNot(covered)
			incMatches := newCoverage.Popcount()
			if incMatches == 0 {
				continue
			}

			if hasMaxFP {
				trialFP := fpTotal.Or(curExclude)
				if trialFP.Popcount() > maxFP {
					continue
				}
			}

			newFP := curExclude.AndNot(fpTotal)
			incFP := newFP.Popcount()

			covered.OrInPlace(curInclude)
			fpTotal.OrInPlace(curExclude)

			length := 0
			for _, p := range fields {
				length += p.Length
			}

			selected = append(selected, Expression{
				ID:                 fmt.Sprintf("P%d", nextID),
				Fields:             fields,
				Include:            curInclude,
				Exclude:            curExclude,
				Score:              score(fields, cfg),
				Matches:            curInclude.Popcount(),
				FP:                 curExclude.Popcount(),
				FN:                 nInclude - curInclude.Popcount(),
				IncrementalMatches: incMatches,
				IncrementalFP:      incFP,
				Length:             length,
			})
			nextID++
			accepted = true
			break
		}

		if !accepted {
			break
		}
	}

	return selected
}

// seedKey identifies one (field, candidate index) seed, used to mark
// seeds ineligible within a single outer iteration without mutating
// the field pools themselves.
type seedKey struct {
	field string
	idx   int
}

// specializeExpression mutates curInclude/curExclude/fields/usedFields
// in place, adding at most one pattern per remaining field, each time
// picking whichever unused field's best-reducing pattern cuts the most
// false positives while losing none of the expression's current true
// positives.
func specializeExpression(pools map[string]fieldPool, fieldNames []string, usedFields map[string]bool, fields map[string]core.Pattern, curInclude, curExclude *bitset.Mask) (*bitset.Mask, *bitset.Mask) {
	for curExclude.Popcount() > 0 && len(usedFields) < len(fieldNames) {
		bestField := ""
		bestIdx := -1
		bestExCount := curExclude.Popcount()
		var bestInclude, bestExclude *bitset.Mask

		for _, f := range fieldNames {
			if usedFields[f] {
				continue
			}
			fp := pools[f]
			for i := range fp.patterns {
				candInclude := curInclude.And(fp.coverage[i].Include)
				if candInclude.Popcount() != curInclude.Popcount() {
					continue
				}
				candExclude := curExclude.And(fp.coverage[i].Exclude)
				count := candExclude.Popcount()
				if count > bestExCount {
					continue
				}
				if count == bestExCount && !(bestIdx >= 0 && betterSpecialization(f, i, pools, bestField, bestIdx)) {
					continue
				}
				bestField, bestIdx, bestExCount = f, i, count
				bestInclude, bestExclude = candInclude, candExclude
			}
		}

		if bestIdx < 0 {
			return curInclude, curExclude
		}
		fields[bestField] = pools[bestField].patterns[bestIdx]
		curInclude, curExclude = bestInclude, bestExclude
		usedFields[bestField] = true
	}
	return curInclude, curExclude
}

func betterSpecialization(field string, idx int, pools map[string]fieldPool, prevField string, prevIdx int) bool {
	if prevField == "" {
		return true
	}
	a, b := pools[field].patterns[idx], pools[prevField].patterns[prevIdx]
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Text != b.Text {
		return a.Text < b.Text
	}
	return field < prevField
}

// findBestSeed picks whichever candidate, across every field, adds
// the most new coverage against covered; ties break on score, then on
// pattern text and field name for determinism. excluded seeds (already
// tried and rejected this outer iteration, e.g. for violating max_fp)
// are skipped so the next-best seed can be found instead.
func findBestSeed(pools map[string]fieldPool, fieldNames []string, covered *bitset.Mask, cfg *core.Config, excluded map[seedKey]bool) (field string, idx int) {
	bestField, bestIdx := "", -1
	bestNew := 0
	var bestScore float64
	var bestText string

	for _, f := range fieldNames {
		fp := pools[f]
		for i, p := range fp.patterns {
			if excluded[seedKey{f, i}] {
				continue
			}
			newCov := fp.coverage[i].Include.AndNot(covered)
			n := newCov.Popcount()
			if n == 0 {
				continue
			}
			s := score(map[string]core.Pattern{f: p}, cfg)
			if bestIdx < 0 || n > bestNew ||
				(n == bestNew && s > bestScore) ||
				(n == bestNew && s == bestScore && p.Text < bestText) {
				bestField, bestIdx, bestNew, bestScore, bestText = f, i, n, s, p.Text
			}
		}
	}
	return bestField, bestIdx
}
