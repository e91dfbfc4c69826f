package refinement_test

import (
	"fmt"

	"github.com/patternforge/patternforge/core"
	"github.com/patternforge/patternforge/refinement"
)

// ExampleExpand shows a coarse substring pattern honed into a longer,
// equally-covering prefix form.
func ExampleExpand() {
	p := core.NewPattern("*sio*", core.KindSubstring)
	include := []string{"pd_sio/asio/asio_spis/reg", "pd_sio/asio/other/reg"}

	expanded := refinement.Expand(p, include, nil)
	fmt.Println(expanded.Text)
	// Output:
	// pd_sio/asio/*
}

// ExampleRefine shows two exact-match patterns collapsed into a single
// prefix pattern that covers the same rows with no new false positives.
func ExampleRefine() {
	chosen := []core.Pattern{
		core.NewPattern("a/fail/x", core.KindExact),
		core.NewPattern("a/fail/y", core.KindExact),
	}
	include := []string{"a/fail/x", "a/fail/y"}

	refined := refinement.Refine(chosen, include, nil)
	for _, p := range refined {
		fmt.Println(p.ID, p.Text)
	}
	// Output:
	// P1 a/fail/*
}
