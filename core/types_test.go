package core_test

import (
	"testing"

	"github.com/patternforge/patternforge/core"
)

func TestNewPattern_DerivesLengthAndWildcards(t *testing.T) {
	p := core.NewPattern("*cache*", core.KindSubstring)
	if p.Length != 5 {
		t.Errorf("Length = %d; want 5", p.Length)
	}
	if p.Wildcards != 2 {
		t.Errorf("Wildcards = %d; want 2", p.Wildcards)
	}
	if p.Matches != -1 || p.FP != -1 {
		t.Errorf("Matches/FP = %d/%d; want -1/-1 before coverage", p.Matches, p.FP)
	}
}

func TestPattern_IsBareWildcard(t *testing.T) {
	if !core.NewPattern("*", core.KindSubstring).IsBareWildcard() {
		t.Error("\"*\" should be a bare wildcard")
	}
	if !core.NewPattern("***", core.KindSubstring).IsBareWildcard() {
		t.Error("\"***\" should be a bare wildcard")
	}
	if core.NewPattern("*a*", core.KindSubstring).IsBareWildcard() {
		t.Error("\"*a*\" should not be a bare wildcard")
	}
}

func TestRow_SameFields(t *testing.T) {
	s := func(v string) *string { return &v }
	a := core.Row{"m": s("SRAM"), "i": s("cpu/l1")}
	b := core.Row{"m": nil, "i": s("cpu/l1")}
	c := core.Row{"m": s("SRAM")}

	if !a.SameFields(b) {
		t.Error("a and b declare the same field names and should match")
	}
	if a.SameFields(c) {
		t.Error("a and c declare different field sets and should not match")
	}
}

func TestRow_FieldsIsSorted(t *testing.T) {
	s := func(v string) *string { return &v }
	r := core.Row{"part": s("DIN"), "module": s("SRAM"), "instance": s("cpu/l1")}
	got := r.Fields()
	want := []string{"instance", "module", "part"}
	if len(got) != len(want) {
		t.Fatalf("Fields() = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Fields()[%d] = %q; want %q", i, got[i], want[i])
		}
	}
}
