package solver

import "github.com/patternforge/patternforge/core"

// RecommendEffort is a pure helper a caller may use to pick
// core.WithEffort's argument from dataset shape; solver.Solve never
// calls it implicitly. EffortExhaustive is reserved for the small
// instances spec §6 names explicitly (N<100, F<5); beyond that the
// recommendation scales down as the combined row count grows, since
// higher effort means a larger per-field candidate pool and more
// structured-mode field specialization, both of which cost more time
// the bigger the input.
func RecommendEffort(nInclude, nExclude, nFields int) core.Effort {
	n := nInclude + nExclude
	if n < 100 && nFields < 5 {
		return core.EffortExhaustive
	}
	switch {
	case n >= 10000:
		return core.EffortLow
	case n >= 1000:
		return core.EffortMedium
	default:
		return core.EffortHigh
	}
}
