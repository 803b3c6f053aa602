package report

import (
	"bytes"
	"strings"
	"testing"

	"flint/common"
	"flint/match"
)

func sampleViolations() []match.Violation {
	return []match.Violation{
		{RuleID: "no-fixed-spacing", Category: common.CategorySpacing, Severity: common.SeverityWarning,
			File: "b.css", Line: 10, Col: 3, Message: "margin uses px (16px)"},
		{RuleID: "no-fixed-breakpoints", Category: common.CategoryLayout, Severity: common.SeverityError,
			File: "z.css", Line: 1, Col: 1, Message: "@media (min-width: 768px) pins a px breakpoint"},
		{RuleID: "img-alt-required", Category: common.CategoryAccessibility, Severity: common.SeverityError,
			File: "page.html", Line: 4, Col: 5, Message: "<img> is missing alt"},
		{RuleID: "no-fixed-container-width", Category: common.CategoryLayout, Severity: common.SeverityError,
			File: "a.css", Line: 2, Col: 1, Message: "width uses px (960px)"},
		{RuleID: "no-important", Category: common.CategoryLayout, Severity: common.SeverityWarning,
			File: "a.css", Line: 2, Col: 1, Message: "color is declared !important"},
	}
}

func TestAggregate_Ordering(t *testing.T) {
	res := Aggregate(sampleViolations(), nil, nil)

	// category first, then file, line, col, rule id
	wantOrder := []string{
		"no-fixed-container-width", // layout a.css 2:1 (id before no-important)
		"no-important",             // layout a.css 2:1
		"no-fixed-breakpoints",     // layout z.css
		"no-fixed-spacing",         // spacing
		"img-alt-required",         // accessibility
	}
	if len(res.Violations) != len(wantOrder) {
		t.Fatalf("got %d violations, want %d", len(res.Violations), len(wantOrder))
	}
	for i, id := range wantOrder {
		if res.Violations[i].RuleID != id {
			t.Errorf("violation[%d] = %s, want %s", i, res.Violations[i].RuleID, id)
		}
	}
}

func TestAggregate_NaturalFileOrder(t *testing.T) {
	violations := []match.Violation{
		{RuleID: "r", Category: common.CategoryLayout, File: "part10.css", Line: 1},
		{RuleID: "r", Category: common.CategoryLayout, File: "part2.css", Line: 1},
	}
	res := Aggregate(violations, nil, nil)
	if res.Violations[0].File != "part2.css" {
		t.Errorf("file order = %s, %s; want natural order part2 before part10",
			res.Violations[0].File, res.Violations[1].File)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	a := Aggregate(sampleViolations(), nil, []ParseError{{File: "x.css", Line: 3, Col: 1, Message: "boom"}})
	b := Aggregate(sampleViolations(), nil, []ParseError{{File: "x.css", Line: 3, Col: 1, Message: "boom"}})

	var bufA, bufB bytes.Buffer
	if err := a.WriteJSON(&bufA); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if err := b.WriteJSON(&bufB); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if !bytes.Equal(bufA.Bytes(), bufB.Bytes()) {
		t.Error("identical input produced different serialized output")
	}
}

func TestAggregate_DoesNotAliasInput(t *testing.T) {
	in := sampleViolations()
	res := Aggregate(in, nil, nil)

	in[0].RuleID = "mutated"
	for _, v := range res.Violations {
		if v.RuleID == "mutated" {
			t.Fatal("result aliases caller slice")
		}
	}
}

func TestFilterSeverity(t *testing.T) {
	res := Aggregate(sampleViolations(), nil, nil)

	errorsOnly := res.FilterSeverity(common.SeverityError)
	if len(errorsOnly.Violations) != 3 {
		t.Errorf("got %d error violations, want 3", len(errorsOnly.Violations))
	}
	for _, v := range errorsOnly.Violations {
		if v.Severity != common.SeverityError {
			t.Errorf("violation %s passed the error filter with severity %s", v.RuleID, v.Severity)
		}
	}

	all := res.FilterSeverity(common.SeverityWarning)
	if len(all.Violations) != len(res.Violations) {
		t.Errorf("warning threshold dropped violations: %d of %d", len(all.Violations), len(res.Violations))
	}
}

func TestCountBySeverity(t *testing.T) {
	res := Aggregate(sampleViolations(), nil, nil)
	if n := res.CountBySeverity(common.SeverityError); n != 3 {
		t.Errorf("errors = %d, want 3", n)
	}
	if n := res.CountBySeverity(common.SeverityWarning); n != 2 {
		t.Errorf("warnings = %d, want 2", n)
	}
}

func TestWriteText(t *testing.T) {
	res := Aggregate(sampleViolations(),
		[]TreeRecommendation{{Tree: "layout", Utility: "fluid-grid", Notes: "repeat(auto-fit, ...) keeps tracks fluid."}},
		[]ParseError{{File: "bad.css", Line: 7, Col: 2, Message: "unexpected token"}})

	var buf bytes.Buffer
	if err := res.WriteText(&buf); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"a.css:2:1: error [layout/no-fixed-container-width] width uses px (960px)",
		"bad.css:7:2: parse error: unexpected token",
		`layout: use "fluid-grid"`,
		"    repeat(auto-fit, ...) keeps tracks fluid.",
		"5 violation(s), 1 parse error(s)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteText_MultilineNotes(t *testing.T) {
	res := Aggregate(nil,
		[]TreeRecommendation{{Tree: "typography", Utility: "fluid-type",
			Notes: "clamp(min, preferred, max).\nInterpolate between bounds."}}, nil)

	var buf bytes.Buffer
	if err := res.WriteText(&buf); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	out := buf.String()

	// every notes line is indented under the recommendation
	for _, want := range []string{
		"    clamp(min, preferred, max).",
		"    Interpolate between bounds.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteJSON_Shape(t *testing.T) {
	var buf bytes.Buffer
	if err := Aggregate(nil, nil, nil).WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	out := buf.String()

	// empty result still carries all three keys with empty arrays
	for _, want := range []string{`"violations"`, `"recommendations"`, `"parseErrors"`} {
		if !strings.Contains(out, want) {
			t.Errorf("json output missing key %s: %s", want, out)
		}
	}
	if strings.Contains(out, "null") {
		t.Errorf("empty slices serialized as null: %s", out)
	}
}

func TestWriteHTML(t *testing.T) {
	res := Aggregate(sampleViolations(), nil, nil)

	var buf bytes.Buffer
	if err := res.WriteHTML(&buf); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "<!DOCTYPE html") {
		t.Error("html output missing doctype")
	}
	if !strings.Contains(out, "no-fixed-container-width") {
		t.Error("html output missing violation rule id")
	}
}
