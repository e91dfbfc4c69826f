package candidates_test

import (
	"fmt"

	"github.com/patternforge/patternforge/candidates"
	"github.com/patternforge/patternforge/core"
	"github.com/patternforge/patternforge/tokenizer"
)

// ExampleGenerate shows the anchored prefix/suffix candidates a single
// hierarchical row produces.
func ExampleGenerate() {
	cfg, err := core.NewConfig(core.WithAllowedKinds(core.KindPrefix, core.KindSuffix))
	if err != nil {
		panic(err)
	}
	text := "chip/cpu/core0"
	row := candidates.Row{Text: text, Tokens: tokenizer.Tokenize(text, core.SplitClassChange, 2)}
	for _, p := range candidates.Generate([]candidates.Row{row}, "", cfg, candidates.Config{}) {
		fmt.Println(p.Text, p.Kind)
	}
	// Output:
	// chip* prefix
}
