package core

// Metrics summarizes a Solution's coverage (spec §6).
type Metrics struct {
	Covered        int
	TotalPositive  int
	FP             int
	FN             int
	TotalNegative  int
}

// Witnesses holds bounded samples of true positives, false positives
// and false negatives, for external explanation tooling (spec §4.9,
// §6). PatternForge never renders these; it only carries them.
type Witnesses struct {
	TPExamples []string
	FPExamples []string
	FNExamples []string
}

const maxWitnessSamples = 5

// AddTP appends s to TPExamples if the bounded sample isn't full yet.
func (w *Witnesses) AddTP(s string) {
	if len(w.TPExamples) < maxWitnessSamples {
		w.TPExamples = append(w.TPExamples, s)
	}
}

// AddFP appends s to FPExamples if the bounded sample isn't full yet.
func (w *Witnesses) AddFP(s string) {
	if len(w.FPExamples) < maxWitnessSamples {
		w.FPExamples = append(w.FPExamples, s)
	}
}

// AddFN appends s to FNExamples if the bounded sample isn't full yet.
func (w *Witnesses) AddFN(s string) {
	if len(w.FNExamples) < maxWitnessSamples {
		w.FNExamples = append(w.FNExamples, s)
	}
}

// Term is a structured-mode conjunction of one pattern per field
// (spec §4.8): "(f1: p1) & (f2: p2)".
type Term struct {
	Fields            map[string]Pattern
	Matches           int
	FP                int
	FN                int
	IncrementalMatches int
	IncrementalFP      int
	Length             int
}

// Diagnostics carries non-error, non-result observability data: the
// run identifier logged alongside solver state transitions, and the
// candidate-pool truncation signal from spec §7.3 ("hitting
// max_candidates is not an error; it is expected truncation").
type Diagnostics struct {
	RunID               string
	CandidatesGenerated int
	CandidatesRetained  int
	GlobalInverted      bool
}

// Truncated reports whether the candidate pool was cut down to
// max_candidates.
func (d Diagnostics) Truncated() bool {
	return d.CandidatesGenerated > d.CandidatesRetained
}

// Result is PatternForge's external contract (spec §6): a disjunction
// of Patterns (single-field) or Terms (structured), its coverage
// Metrics, bounded Witnesses, the full ranked candidate pool, and
// Diagnostics. Result holds only primitive values, slices, and maps of
// those, so it needs no dedicated formatter to be serializable — see
// ToMap.
type Result struct {
	Expr           string
	RawExpr        string
	Patterns       []Pattern
	Metrics        Metrics
	Witnesses      Witnesses
	GlobalInverted bool

	// Terms is populated only in structured mode.
	Terms []Term

	// CandidatePool is the full ranked pool retained after generation,
	// independent of which patterns were finally selected.
	CandidatePool []Pattern

	Diagnostics Diagnostics
}

// Empty returns the canonical empty solution: no patterns, no
// witnesses, zero coverage (spec §4.11: "never '*'").
func Empty() Result {
	return Result{
		Expr:     "",
		RawExpr:  "",
		Patterns: nil,
	}
}

// ToMap renders Result into the language-neutral container required
// by spec §6: keys and primitive values only, ready for any external
// JSON/YAML/text formatter to consume without touching PatternForge
// internals.
func (r Result) ToMap() map[string]any {
	patterns := make([]map[string]any, len(r.Patterns))
	for i, p := range r.Patterns {
		patterns[i] = patternToMap(p)
	}
	pool := make([]map[string]any, len(r.CandidatePool))
	for i, p := range r.CandidatePool {
		pool[i] = patternToMap(p)
	}
	terms := make([]map[string]any, len(r.Terms))
	for i, t := range r.Terms {
		fields := make(map[string]any, len(t.Fields))
		for f, p := range t.Fields {
			fields[f] = patternToMap(p)
		}
		terms[i] = map[string]any{
			"fields":              fields,
			"matches":             t.Matches,
			"fp":                  t.FP,
			"fn":                  t.FN,
			"incremental_matches": t.IncrementalMatches,
			"incremental_fp":      t.IncrementalFP,
			"length":              t.Length,
		}
	}
	return map[string]any{
		"expr":     r.Expr,
		"raw_expr": r.RawExpr,
		"patterns": patterns,
		"metrics": map[string]any{
			"covered":         r.Metrics.Covered,
			"total_positive":  r.Metrics.TotalPositive,
			"fp":              r.Metrics.FP,
			"fn":              r.Metrics.FN,
			"total_negative":  r.Metrics.TotalNegative,
		},
		"witnesses": map[string]any{
			"tp_examples": r.Witnesses.TPExamples,
			"fp_examples": r.Witnesses.FPExamples,
			"fn_examples": r.Witnesses.FNExamples,
		},
		"global_inverted": r.GlobalInverted,
		"terms":           terms,
		"candidate_pool":  pool,
		"diagnostics": map[string]any{
			"run_id":               r.Diagnostics.RunID,
			"candidates_generated": r.Diagnostics.CandidatesGenerated,
			"candidates_retained":  r.Diagnostics.CandidatesRetained,
		},
	}
}

func patternToMap(p Pattern) map[string]any {
	m := map[string]any{
		"id":        p.ID,
		"text":      p.Text,
		"kind":      string(p.Kind),
		"wildcards": p.Wildcards,
		"length":    p.Length,
	}
	if p.Field != "" {
		m["field"] = p.Field
	}
	if p.Matches >= 0 {
		m["matches"] = p.Matches
	}
	if p.FP >= 0 {
		m["fp"] = p.FP
	}
	return m
}
