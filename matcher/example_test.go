package matcher_test

import (
	"fmt"

	"github.com/patternforge/patternforge/matcher"
)

// ExampleMatches demonstrates that '*' enforces segment order but not
// adjacency.
func ExampleMatches() {
	fmt.Println(matcher.Matches("*din*dout*", "cpu_din_signal_dout_end"))
	fmt.Println(matcher.Matches("*din*dout*", "cpu_dout_signal_din_end"))
	// Output:
	// true
	// false
}
