package solver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/patternforge/patternforge/bitset"
	"github.com/patternforge/patternforge/candidates"
	"github.com/patternforge/patternforge/core"
	"github.com/patternforge/patternforge/matcher"
	"github.com/patternforge/patternforge/refinement"
	"github.com/patternforge/patternforge/selector"
	"github.com/patternforge/patternforge/structured"
	"github.com/patternforge/patternforge/tokenizer"
)

func nopIfNil(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// Solve runs the single-field pipeline (spec §4.10 and spec §4.5-§4.7)
// over in and returns the assembled core.Result. logger may be nil.
func Solve(in Input, cfg *core.Config, gcfg candidates.Config, logger *zap.Logger) core.Result {
	runID := uuid.New().String()
	log := nopIfNil(logger).With(zap.String("run_id", runID))
	log.Info("Initialized", zap.Int("include", len(in.Include)), zap.Int("exclude", len(in.Exclude)))

	if len(in.Include) == 0 {
		log.Info("Finalized", zap.String("reason", "empty include set"))
		res := core.Empty()
		res.Diagnostics = core.Diagnostics{RunID: runID}
		res.Metrics.TotalNegative = len(in.Exclude)
		return res
	}

	lowerInclude := lowerAll(in.Include)
	lowerExclude := lowerAll(in.Exclude)

	split, minLen := cfg.TokenizerFor("")
	rows := make([]candidates.Row, len(lowerInclude))
	for i, s := range lowerInclude {
		rows[i] = candidates.Row{Text: s, Tokens: tokenizer.Tokenize(s, split, minLen)}
	}
	log.Debug("Tokenized", zap.Int("rows", len(rows)))

	pool, generated := candidates.GenerateWithStats(rows, "", cfg, gcfg)
	log.Info("CandidatesScored", zap.Int("generated", generated), zap.Int("retained", len(pool)))

	covs := bitset.Compute(pool, toFieldValues(lowerInclude), toFieldValues(lowerExclude))

	sel := selector.Select(pool, covs, len(lowerInclude), len(lowerExclude), cfg)
	log.Info("Selected",
		zap.Int("chosen", len(sel.Chosen)),
		zap.Bool("inverted", sel.Inverted),
		zap.Float64("cost", sel.Cost),
	)

	expanded := refinement.ExpandAll(sel.Chosen, in.Include, in.Exclude)
	log.Debug("Expanded", zap.Int("patterns", len(expanded)))

	refined := refinement.Refine(expanded, in.Include, in.Exclude)
	log.Debug("Refined", zap.Int("patterns", len(refined)))

	result := assembleResult(refined, in, lowerInclude, lowerExclude, sel.Inverted, pool, generated, runID)
	log.Info("Finalized",
		zap.Int("patterns", len(result.Patterns)),
		zap.Int("covered", result.Metrics.Covered),
		zap.Int("fp", result.Metrics.FP),
		zap.Bool("global_inverted", result.GlobalInverted),
	)
	return result
}

// SolveStructured runs the structured-mode pipeline (spec §4.8, §4.10)
// over in and returns the assembled core.Result. logger may be nil.
// Structured mode never inverts (package structured's greedy cover has
// no complement branch) and never expands/refines (refinement's
// single-field honing has no multi-field analogue); both states are
// logged as no-ops so the transition sequence stays visible end to end.
func SolveStructured(in StructuredInput, cfg *core.Config, gcfg candidates.Config, logger *zap.Logger) (core.Result, error) {
	runID := uuid.New().String()
	log := nopIfNil(logger).With(zap.String("run_id", runID))
	log.Info("Initialized",
		zap.Int("include", len(in.Include)),
		zap.Int("exclude", len(in.Exclude)),
		zap.Strings("fields", in.Fields),
	)

	want := make(core.Row, len(in.Fields))
	for _, f := range in.Fields {
		want[f] = nil
	}
	for _, r := range in.Include {
		if !r.SameFields(want) {
			return core.Result{}, core.ErrFieldSetMismatch
		}
	}
	for _, r := range in.Exclude {
		if !r.SameFields(want) {
			return core.Result{}, core.ErrFieldSetMismatch
		}
	}

	if len(in.Include) == 0 {
		log.Info("Finalized", zap.String("reason", "empty include set"))
		res := core.Empty()
		res.Diagnostics = core.Diagnostics{RunID: runID}
		res.Metrics.TotalNegative = len(in.Exclude)
		return res, nil
	}

	log.Debug("Tokenized", zap.String("note", "per-field tokenization runs inside structured.Solve"))

	exprs := structured.Solve(in.Include, in.Exclude, in.Fields, cfg, gcfg)
	log.Info("CandidatesScored", zap.String("note", "per-field candidate pools are internal to structured.Solve"))
	log.Info("Selected", zap.Int("expressions", len(exprs)))

	log.Debug("Expanded", zap.String("note", "not applicable in structured mode"))
	log.Debug("Refined", zap.String("note", "not applicable in structured mode"))

	result := assembleStructuredResult(exprs, in, runID)
	log.Info("Finalized",
		zap.Int("expressions", len(exprs)),
		zap.Int("covered", result.Metrics.Covered),
		zap.Int("fp", result.Metrics.FP),
	)
	return result, nil
}

func lowerAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToLower(s)
	}
	return out
}

func toFieldValues(ss []string) []bitset.FieldValue {
	out := make([]bitset.FieldValue, len(ss))
	for i, s := range ss {
		out[i] = bitset.FieldValue{Value: s}
	}
	return out
}

// assembleResult builds the final core.Result for single-field mode.
// refined is the post-expansion, post-refinement pattern set; its own
// Matches/FP fields are stale (Expand/Refine reset them), so this
// recomputes per-pattern and union statistics directly against the
// lower-cased rows, then reinterprets TP/FP/FN through sel.Inverted:
// when inverted, the returned patterns describe the complement, so a
// row is actually covered when none of them match it.
func assembleResult(refined []core.Pattern, in Input, lowerInclude, lowerExclude []string, inverted bool, candidatePool []core.Pattern, generated int, runID string) core.Result {
	labeled := make([]core.Pattern, len(refined))
	for i, p := range refined {
		p.ID = patternID(i)
		p.Matches = countMatches(p.Text, lowerInclude)
		p.FP = countMatches(p.Text, lowerExclude)
		labeled[i] = p
	}

	matchesInclude := unionMatches(labeled, lowerInclude)
	matchesExclude := unionMatches(labeled, lowerExclude)

	tp, fp, fn := 0, 0, 0
	var witnesses core.Witnesses
	for i, hit := range matchesInclude {
		covered := hit
		if inverted {
			covered = !hit
		}
		if covered {
			tp++
			witnesses.AddTP(in.Include[i])
		} else {
			fn++
			witnesses.AddFN(in.Include[i])
		}
	}
	for i, hit := range matchesExclude {
		matched := hit
		if inverted {
			matched = !hit
		}
		if matched {
			fp++
			witnesses.AddFP(in.Exclude[i])
		}
	}

	rawParts := make([]string, len(labeled))
	symbolicParts := make([]string, len(labeled))
	for i, p := range labeled {
		rawParts[i] = p.Text
		symbolicParts[i] = p.ID
	}
	rawExpr := strings.Join(rawParts, " | ")
	expr := strings.Join(symbolicParts, " | ")

	return core.Result{
		Expr:           expr,
		RawExpr:        rawExpr,
		Patterns:       labeled,
		Metrics: core.Metrics{
			Covered:       tp,
			TotalPositive: len(in.Include),
			FP:            fp,
			FN:            fn,
			TotalNegative: len(in.Exclude),
		},
		Witnesses:      witnesses,
		GlobalInverted: inverted,
		CandidatePool:  candidatePool,
		Diagnostics: core.Diagnostics{
			RunID:               runID,
			CandidatesGenerated: generated,
			CandidatesRetained:  len(candidatePool),
			GlobalInverted:      inverted,
		},
	}
}

func assembleStructuredResult(exprs []structured.Expression, in StructuredInput, runID string) core.Result {
	covered := bitset.NewMask()
	fpMask := bitset.NewMask()
	for _, e := range exprs {
		covered.OrInPlace(e.Include)
		fpMask.OrInPlace(e.Exclude)
	}

	var witnesses core.Witnesses
	for i, r := range in.Include {
		if covered.Has(uint32(i)) {
			witnesses.AddTP(rowText(r, in.Fields))
		} else {
			witnesses.AddFN(rowText(r, in.Fields))
		}
	}
	for i, r := range in.Exclude {
		if fpMask.Has(uint32(i)) {
			witnesses.AddFP(rowText(r, in.Fields))
		}
	}

	raw, symbolic, _ := structured.Render(exprs)

	return core.Result{
		Expr:    symbolic,
		RawExpr: raw,
		Terms:   structured.ToTerms(exprs),
		Metrics: core.Metrics{
			Covered:       covered.Popcount(),
			TotalPositive: len(in.Include),
			FP:            fpMask.Popcount(),
			FN:            len(in.Include) - covered.Popcount(),
			TotalNegative: len(in.Exclude),
		},
		Witnesses: witnesses,
		Diagnostics: core.Diagnostics{
			RunID: runID,
		},
	}
}

func patternID(i int) string {
	return fmt.Sprintf("P%d", i+1)
}

func countMatches(pattern string, rows []string) int {
	n := 0
	for _, r := range rows {
		if matcher.Matches(pattern, r) {
			n++
		}
	}
	return n
}

func unionMatches(patterns []core.Pattern, rows []string) []bool {
	out := make([]bool, len(rows))
	for i, r := range rows {
		for _, p := range patterns {
			if matcher.Matches(p.Text, r) {
				out[i] = true
				break
			}
		}
	}
	return out
}

func rowText(r core.Row, fields []string) string {
	sorted := append([]string{}, fields...)
	sort.Strings(sorted)
	parts := make([]string, len(sorted))
	for i, f := range sorted {
		v := r[f]
		if v == nil {
			parts[i] = f + "=<nil>"
			continue
		}
		parts[i] = f + "=" + *v
	}
	return strings.Join(parts, ",")
}
