package solver

import (
	"errors"
	"testing"

	"github.com/patternforge/patternforge/candidates"
	"github.com/patternforge/patternforge/core"
)

func strp(s string) *string { return &s }

func structRow(module, pin string) core.Row {
	return core.Row{"module": strp(module), "pin": strp(pin)}
}

func TestSolveStructured_FieldSetMismatchReturnsError(t *testing.T) {
	cfg := newConfig(t)
	in := StructuredInput{
		Include: []core.Row{{"module": strp("sram")}},
		Exclude: nil,
		Fields:  []string{"module", "pin"},
	}

	_, err := SolveStructured(in, cfg, candidates.Config{}, nil)
	if !errors.Is(err, core.ErrFieldSetMismatch) {
		t.Fatalf("SolveStructured() error = %v; want core.ErrFieldSetMismatch", err)
	}
}

func TestSolveStructured_BasicTwoFieldCoverage(t *testing.T) {
	cfg := newConfig(t)
	in := StructuredInput{
		Include: []core.Row{
			structRow("sram", "din"),
			structRow("sram", "dout"),
			structRow("dram", "din"),
		},
		Exclude: []core.Row{
			structRow("dram", "dout"),
		},
		Fields: []string{"module", "pin"},
	}

	got, err := SolveStructured(in, cfg, candidates.Config{}, nil)
	if err != nil {
		t.Fatalf("SolveStructured() error: %v", err)
	}

	if got.Metrics.Covered != 3 || got.Metrics.FP != 0 || got.Metrics.FN != 0 {
		t.Fatalf("Metrics = %+v; want Covered=3 FP=0 FN=0", got.Metrics)
	}
	if len(got.Terms) == 0 {
		t.Fatal("Terms is empty; structured mode must populate it")
	}
	if got.Diagnostics.RunID == "" {
		t.Error("Diagnostics.RunID is empty")
	}
	if got.Expr == "" || got.RawExpr == "" {
		t.Error("Expr/RawExpr should not be empty for a non-trivial solution")
	}
}

func TestSolveStructured_EmptyIncludeReturnsEmptyResult(t *testing.T) {
	cfg := newConfig(t)
	in := StructuredInput{
		Include: nil,
		Exclude: []core.Row{structRow("dram", "dout")},
		Fields:  []string{"module", "pin"},
	}

	got, err := SolveStructured(in, cfg, candidates.Config{}, nil)
	if err != nil {
		t.Fatalf("SolveStructured() error: %v", err)
	}
	if len(got.Terms) != 0 {
		t.Fatalf("Terms = %v; want none for an empty include set", got.Terms)
	}
	if got.Metrics.TotalNegative != 1 {
		t.Errorf("Metrics.TotalNegative = %d; want 1", got.Metrics.TotalNegative)
	}
}
