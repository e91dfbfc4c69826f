package boolexpr_test

import (
	"fmt"

	"github.com/patternforge/patternforge/boolexpr"
)

// ExampleEval parses a small expression combining two pattern labels
// and evaluates it against an input string.
func ExampleEval() {
	n, err := boolexpr.Parse("P1 & !P2")
	if err != nil {
		panic(err)
	}

	catalog := map[string]string{
		"P1": "*fail*",
		"P2": "*skip*",
	}

	ok, err := boolexpr.Eval(n, catalog, "job/fail/run")
	if err != nil {
		panic(err)
	}
	fmt.Println(ok)
	// Output:
	// true
}
