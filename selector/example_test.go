package selector_test

import (
	"fmt"

	"github.com/patternforge/patternforge/bitset"
	"github.com/patternforge/patternforge/core"
	"github.com/patternforge/patternforge/selector"
)

// ExampleSelect shows the greedy selector picking the single pattern
// that covers every include row with no false positives.
func ExampleSelect() {
	cfg, err := core.NewConfig(core.WithInvert(core.InvertNever))
	if err != nil {
		panic(err)
	}

	pool := []core.Pattern{
		core.NewPattern("*fail*", core.KindSubstring),
		core.NewPattern("*pass*", core.KindSubstring),
	}

	incFail := bitset.NewMask()
	incFail.Set(0)
	incFail.Set(1)
	incFail.Set(2)
	excPass := bitset.NewMask()
	excPass.Set(0)
	excPass.Set(1)

	covs := []bitset.Coverage{
		{Include: incFail, Exclude: bitset.NewMask()},
		{Include: bitset.NewMask(), Exclude: excPass},
	}

	result := selector.Select(pool, covs, 3, 2, cfg)
	for _, p := range result.Chosen {
		fmt.Println(p.ID, p.Text, p.Matches, p.FP)
	}
	// Output:
	// P1 *fail* 3 0
}
