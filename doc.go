// Package patternforge discovers a concise boolean expression over
// glob-wildcard patterns that separates a set of include items from a
// set of exclude items, over plain strings or multi-field rows.
//
// What is patternforge?
//
//	A pure-Go, deterministic pattern-mining engine that brings together:
//		• Tokenizer: delimiter-preserving segmentation of hierarchical strings
//		• Candidate generator: bounded, scored pool of exact/prefix/suffix/
//		  substring/multi-segment glob patterns
//		• Bitset coverage engine: fast include/exclude hit tracking backed
//		  by Roaring bitmaps
//		• Greedy cost-driven selector: set-cover style pattern selection
//		  with budgets, weights, and inversion
//		• Refinement: post-selection generalization under an FP budget
//		• Structured solver: per-field conjunctive expressions with lazy
//		  field specialization
//		• Boolean evaluator: a small grammar over pattern labels
//
// Why choose patternforge?
//
//   - Deterministic — identical inputs and configuration always produce
//     byte-identical results
//   - EXACT-safe — EXACT mode never reports a false positive, even when
//     that means returning an empty solution
//   - Extensible — functional options everywhere, diagnostic hooks via
//     an injectable logger
//
// Under the hood, everything is organized under dedicated subpackages:
//
//	core/        — Token, Pattern, Row, Config, Result and sentinel errors
//	matcher/     — the glob matcher ('*' is the only wildcard)
//	tokenizer/   — classchange/char splitting with short-token merge
//	candidates/  — exact/prefix/suffix/substring/multi candidate generation
//	bitset/      — Mask and the parallel coverage engine
//	selector/    — the greedy cost-driven selector and inversion
//	refinement/  — specialization (expansion) and generalization (refinement)
//	boolexpr/    — parser and evaluator for P1 | P2 | !P3 | (P1 & P2)
//	structured/  — the pattern-centric multi-field solver
//	solver/      — the Initialized→...→Finalized orchestrator
//
// Quick example:
//
//	cfg, _ := core.NewConfig(core.WithMode(core.ModeExact))
//	res := solver.Solve(solver.Input{
//		Include: []string{"a/x/fail", "b/y/fail", "c/z/fail"},
//		Exclude: []string{"a/x/pass", "b/y/pass"},
//	}, cfg, candidates.Config{}, nil)
//	// res.RawExpr == "*fail"
package patternforge
