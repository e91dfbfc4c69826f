package structured

import (
	"testing"

	"github.com/patternforge/patternforge/candidates"
	"github.com/patternforge/patternforge/core"
)

func strp(s string) *string { return &s }

func row(module, pin string) core.Row {
	return core.Row{"module": strp(module), "pin": strp(pin)}
}

func TestSolve_SingleFieldSufficesForMostRows(t *testing.T) {
	include := []core.Row{
		row("sram", "din"),  // r0
		row("sram", "dout"), // r1
		row("dram", "din"),  // r2
	}
	exclude := []core.Row{
		row("dram", "dout"), // e0
	}

	cfg, err := core.NewConfig()
	if err != nil {
		t.Fatalf("NewConfig() error: %v", err)
	}

	got := Solve(include, exclude, []string{"module", "pin"}, cfg, candidates.Config{})

	totalCovered := 0
	for _, e := range got {
		if e.FP != 0 {
			t.Errorf("expression %+v has FP=%d; want 0", e.Fields, e.FP)
		}
		totalCovered += e.Matches
	}
	if totalCovered != len(include) {
		t.Fatalf("covered %d rows across %d expressions; want all %d rows covered", totalCovered, len(got), len(include))
	}

	// The first expression should be the single-field seed that covers
	// the two "sram" rows outright, needing no specialization.
	if len(got) == 0 {
		t.Fatal("Solve() returned no expressions")
	}
	first := got[0]
	if len(first.Fields) != 1 || first.Fields["module"].Text != "sram" {
		t.Errorf("first expression = %+v; want a lone module=sram seed", first.Fields)
	}
}

func TestSolve_SpecializesWhenSeedAloneHasFalsePositives(t *testing.T) {
	include := []core.Row{
		row("sram", "din"),
		row("sram", "dout"),
		row("dram", "din"),
	}
	exclude := []core.Row{
		row("dram", "dout"),
	}

	cfg, err := core.NewConfig()
	if err != nil {
		t.Fatalf("NewConfig() error: %v", err)
	}

	got := Solve(include, exclude, []string{"module", "pin"}, cfg, candidates.Config{})

	var sawTwoField bool
	for _, e := range got {
		if len(e.Fields) == 2 {
			sawTwoField = true
			if e.Fields["module"].Text != "dram" || e.Fields["pin"].Text != "din" {
				t.Errorf("two-field expression = %+v; want module=dram & pin=din", e.Fields)
			}
			if e.FP != 0 {
				t.Errorf("specialized expression FP = %d; want 0 (module alone would have matched the exclude row)", e.FP)
			}
		}
	}
	if !sawTwoField {
		t.Fatal("Solve() never produced a two-field expression; module=dram alone has a false positive and must be specialized")
	}
}

func TestSolve_ExactModeRejectsAnyFalsePositive(t *testing.T) {
	include := []core.Row{
		row("sram", "din"),
	}
	exclude := []core.Row{
		row("sram", "dout"),
	}

	cfg, err := core.NewConfig(core.WithMode(core.ModeExact))
	if err != nil {
		t.Fatalf("NewConfig() error: %v", err)
	}

	got := Solve(include, exclude, []string{"module", "pin"}, cfg, candidates.Config{})

	for _, e := range got {
		if e.FP != 0 {
			t.Errorf("EXACT mode produced expression %+v with FP=%d", e.Fields, e.FP)
		}
	}
}

func TestSolve_EmptyIncludeReturnsNoExpressions(t *testing.T) {
	cfg, err := core.NewConfig()
	if err != nil {
		t.Fatalf("NewConfig() error: %v", err)
	}

	got := Solve(nil, []core.Row{row("dram", "dout")}, []string{"module", "pin"}, cfg, candidates.Config{})
	if len(got) != 0 {
		t.Fatalf("Solve() with no include rows = %v; want empty", got)
	}
}

func TestSolve_DontCareFieldNeverGatesCoverage(t *testing.T) {
	include := []core.Row{
		{"module": strp("sram"), "pin": nil},
		{"module": strp("sram"), "pin": strp("din")},
	}
	exclude := []core.Row{
		{"module": strp("dram"), "pin": nil},
	}

	cfg, err := core.NewConfig()
	if err != nil {
		t.Fatalf("NewConfig() error: %v", err)
	}

	got := Solve(include, exclude, []string{"module", "pin"}, cfg, candidates.Config{})

	total := 0
	for _, e := range got {
		total += e.Matches
	}
	if total != len(include) {
		t.Fatalf("covered %d rows; want both rows covered by module=sram alone", total)
	}
}

func TestSolve_RetriesNextSeedWhenBestCoverageFieldCannotMeetMaxFP(t *testing.T) {
	include := []core.Row{
		{"m": strp("SRAM"), "i": strp("cpu/l1"), "p": strp("DIN")},
		{"m": strp("SRAM"), "i": strp("cpu/l1"), "p": strp("DOUT")},
	}
	exclude := []core.Row{
		{"m": strp("SRAM"), "i": strp("cpu/l1"), "p": strp("CLK")},
	}

	cfg, err := core.NewConfig(core.WithMode(core.ModeExact))
	if err != nil {
		t.Fatalf("NewConfig() error: %v", err)
	}

	got := Solve(include, exclude, []string{"m", "i", "p"}, cfg, candidates.Config{})

	// m and i are identical across every include and exclude row, so
	// the highest-coverage seed on either field can never be
	// specialized to fp=0; Solve must discard it and fall through to
	// field p, which does separate DIN/DOUT from CLK.
	totalCovered, totalFP := 0, 0
	for _, e := range got {
		totalCovered += e.Matches
		totalFP += e.FP
		if e.FP != 0 {
			t.Errorf("expression %+v has FP=%d; EXACT mode must keep every expression at fp=0", e.Fields, e.FP)
		}
	}
	if totalCovered != len(include) {
		t.Fatalf("Solve() covered %d of %d rows; want both rows covered despite m/i being non-discriminating", totalCovered, len(include))
	}
	if len(got) == 0 {
		t.Fatal("Solve() returned no expressions; want it to fall through to field p instead of aborting")
	}
}
