package bitset

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/patternforge/patternforge/core"
	"github.com/patternforge/patternforge/matcher"
)

// Coverage holds the two masks computed for one candidate: which
// include rows it hits, and which exclude rows it hits.
type Coverage struct {
	Include *Mask
	Exclude *Mask
}

// FieldValue resolves a row's value for coverage purposes. In
// single-field mode this is just the row string; in structured mode a
// row's nil field value arrives here as DontCare set to true (spec
// §4.4: "a candidate hit against a null exclude field is automatically
// true").
type FieldValue struct {
	Value    string
	DontCare bool
}

// Compute computes Coverage for every candidate in patterns against
// include and exclude, in parallel over disjoint candidate ranges
// (spec §5). Workers never share state; each worker writes its own
// range result[lo:hi] directly, so the output is identical regardless
// of the worker count.
func Compute(patterns []core.Pattern, include, exclude []FieldValue) []Coverage {
	result := make([]Coverage, len(patterns))
	if len(patterns) == 0 {
		return result
	}

	workers := numWorkers(len(patterns))
	chunk := (len(patterns) + workers - 1) / workers

	g, _ := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if lo >= len(patterns) {
			break
		}
		if hi > len(patterns) {
			hi = len(patterns)
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				result[i] = coverOne(patterns[i], include, exclude)
			}
			return nil
		})
	}
	// Compute never returns an error from any worker; the call is kept
	// only so a future fallible matcher could surface one.
	_ = g.Wait()

	return result
}

func coverOne(p core.Pattern, include, exclude []FieldValue) Coverage {
	cov := Coverage{Include: NewMask(), Exclude: NewMask()}
	for i, v := range include {
		if !v.DontCare && matcher.Matches(p.Text, v.Value) {
			cov.Include.Set(uint32(i))
		}
	}
	for i, v := range exclude {
		if v.DontCare || matcher.Matches(p.Text, v.Value) {
			cov.Exclude.Set(uint32(i))
		}
	}
	return cov
}

// numWorkers bounds parallelism to something sane for the candidate
// count: no point spinning up sixteen goroutines for three candidates.
func numWorkers(n int) int {
	const maxWorkers = 8
	if n < maxWorkers {
		return n
	}
	return maxWorkers
}
