package structured

import (
	"fmt"
	"sort"
	"strings"

	"github.com/patternforge/patternforge/core"
)

// ToTerms converts selected expressions into the core.Term slice the
// top-level core.Result carries in structured mode.
func ToTerms(exprs []Expression) []core.Term {
	terms := make([]core.Term, len(exprs))
	for i, e := range exprs {
		fields := make(map[string]core.Pattern, len(e.Fields))
		for f, p := range e.Fields {
			fields[f] = p
		}
		terms[i] = core.Term{
			Fields:             fields,
			Matches:            e.Matches,
			FP:                 e.FP,
			FN:                 e.FN,
			IncrementalMatches: e.IncrementalMatches,
			IncrementalFP:      e.IncrementalFP,
			Length:             e.Length,
		}
	}
	return terms
}

// Render turns a selected expression set into the two textual forms
// spec §4.8 calls for: raw (each term written as parenthesized
// "field: pattern" conjunctions, joined by " | ") and symbolic (the
// same structure with every individual field pattern replaced by a
// P_i identifier). Catalog maps each such identifier back to its glob
// text, for consumption by package boolexpr.
func Render(exprs []Expression) (raw, symbolic string, catalog map[string]string) {
	catalog = make(map[string]string)
	nextID := 1

	var rawTerms, symTerms []string
	for _, e := range exprs {
		fields := make([]string, 0, len(e.Fields))
		for f, p := range e.Fields {
			if p.Text == "*" {
				continue
			}
			fields = append(fields, f)
		}
		sort.Strings(fields)

		var rawParts, symParts []string
		for _, f := range fields {
			pattern := e.Fields[f].Text
			rawParts = append(rawParts, fmt.Sprintf("%s: %s", f, pattern))

			label := fmt.Sprintf("P%d", nextID)
			nextID++
			catalog[label] = pattern
			symParts = append(symParts, fmt.Sprintf("%s: %s", f, label))
		}

		rawTerm := strings.Join(rawParts, " & ")
		symTerm := strings.Join(symParts, " & ")
		if len(fields) > 1 {
			rawTerm = "(" + rawTerm + ")"
			symTerm = "(" + symTerm + ")"
		}
		rawTerms = append(rawTerms, rawTerm)
		symTerms = append(symTerms, symTerm)
	}

	return strings.Join(rawTerms, " | "), strings.Join(symTerms, " | "), catalog
}
