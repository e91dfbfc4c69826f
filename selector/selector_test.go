package selector_test

import (
	"testing"

	"github.com/patternforge/patternforge/bitset"
	"github.com/patternforge/patternforge/core"
	"github.com/patternforge/patternforge/selector"
)

func mustConfig(t *testing.T, opts ...core.Option) *core.Config {
	t.Helper()
	cfg, err := core.NewConfig(opts...)
	if err != nil {
		t.Fatalf("NewConfig() error: %v", err)
	}
	return cfg
}

func mask(bits ...uint32) *bitset.Mask {
	m := bitset.NewMask()
	for _, b := range bits {
		m.Set(b)
	}
	return m
}

func TestSelect_SimpleDisjointKeyword(t *testing.T) {
	// include ["a/x/fail","b/y/fail","c/z/fail"], exclude
	// ["a/x/pass","b/y/pass"]; "*fail*" alone covers all three include
	// rows with zero FP.
	pool := []core.Pattern{
		core.NewPattern("*fail*", core.KindSubstring),
		core.NewPattern("*pass*", core.KindSubstring),
	}
	covs := []bitset.Coverage{
		{Include: mask(0, 1, 2), Exclude: bitset.NewMask()},
		{Include: bitset.NewMask(), Exclude: mask(0, 1)},
	}
	cfg := mustConfig(t, core.WithMode(core.ModeExact), core.WithInvert(core.InvertNever))
	got := selector.Select(pool, covs, 3, 2, cfg)

	if len(got.Chosen) != 1 || got.Chosen[0].Text != "*fail*" {
		t.Fatalf("Chosen = %+v; want exactly [*fail*]", got.Chosen)
	}
	if got.Covered.Popcount() != 3 {
		t.Errorf("Covered popcount = %d; want 3", got.Covered.Popcount())
	}
	if got.FPMask.Popcount() != 0 {
		t.Errorf("FPMask popcount = %d; want 0", got.FPMask.Popcount())
	}
}

func TestSelect_UnsolvableExactReturnsEmpty(t *testing.T) {
	// include ["x"], exclude ["x"]: any candidate matching the include
	// row also matches the exclude row, so EXACT must return empty.
	pool := []core.Pattern{core.NewPattern("x", core.KindExact)}
	covs := []bitset.Coverage{{Include: mask(0), Exclude: mask(0)}}
	cfg := mustConfig(t, core.WithMode(core.ModeExact), core.WithInvert(core.InvertNever))
	got := selector.Select(pool, covs, 1, 1, cfg)

	if len(got.Chosen) != 0 {
		t.Fatalf("Chosen = %+v; want empty (unsolvable EXACT)", got.Chosen)
	}
	if got.FPMask.Popcount() != 0 {
		t.Errorf("FPMask popcount = %d; want 0 (EXACT guarantee)", got.FPMask.Popcount())
	}
	if got.FNMask.Popcount() != 1 {
		t.Errorf("FNMask popcount = %d; want 1 (the one missed include row)", got.FNMask.Popcount())
	}
}

func TestSelect_InversionFallsBackWhenUnsafe(t *testing.T) {
	// A pattern that would make the inverted solution violate max_fp=0
	// must never be returned; Select must fall back to the base
	// selection instead.
	pool := []core.Pattern{
		core.NewPattern("*d*", core.KindSubstring), // matches everything with a 'd'
	}
	// include: 3 rows all containing 'd'; exclude: 3 rows, 2 containing
	// 'd' too. Swapping roles, "*d*" covers include-as-exclude-role AND
	// real-include rows, so the inverted FP would be > 0.
	covs := []bitset.Coverage{
		{Include: mask(0, 1, 2), Exclude: mask(0, 1)},
	}
	cfg := mustConfig(t, core.WithMode(core.ModeExact), core.WithInvert(core.InvertAlways))
	got := selector.Select(pool, covs, 3, 3, cfg)

	if got.Inverted {
		t.Fatalf("Select returned the inverted solution despite violating max_fp")
	}
	if got.FPMask.Popcount() != 0 {
		t.Errorf("FPMask popcount = %d; want 0 (fell back to base, EXACT mode)", got.FPMask.Popcount())
	}
}

func TestSelect_HardBudgetMaxPatterns(t *testing.T) {
	pool := []core.Pattern{
		core.NewPattern("*a*", core.KindSubstring),
		core.NewPattern("*b*", core.KindSubstring),
	}
	covs := []bitset.Coverage{
		{Include: mask(0), Exclude: bitset.NewMask()},
		{Include: mask(1), Exclude: bitset.NewMask()},
	}
	cfg := mustConfig(t, core.WithInvert(core.InvertNever), core.WithBudgets(core.Budgets{
		MaxPatterns: core.CountBudget(1),
		MaxFP:       core.NoBudget(),
		MaxFN:       core.NoBudget(),
	}))
	got := selector.Select(pool, covs, 2, 0, cfg)
	if len(got.Chosen) > 1 {
		t.Errorf("len(Chosen) = %d; want <= 1 (max_patterns budget)", len(got.Chosen))
	}
}

func TestSelect_Deterministic(t *testing.T) {
	pool := []core.Pattern{
		core.NewPattern("*fail*", core.KindSubstring),
		core.NewPattern("*a*", core.KindSubstring),
	}
	covs := []bitset.Coverage{
		{Include: mask(0, 1), Exclude: bitset.NewMask()},
		{Include: mask(0), Exclude: bitset.NewMask()},
	}
	cfg := mustConfig(t, core.WithInvert(core.InvertNever))
	first := selector.Select(pool, covs, 2, 0, cfg)
	second := selector.Select(pool, covs, 2, 0, cfg)
	if len(first.Chosen) != len(second.Chosen) {
		t.Fatalf("selection length differs across runs")
	}
	for i := range first.Chosen {
		if first.Chosen[i].Text != second.Chosen[i].Text {
			t.Fatalf("pattern %d differs across runs: %q vs %q", i, first.Chosen[i].Text, second.Chosen[i].Text)
		}
	}
}
