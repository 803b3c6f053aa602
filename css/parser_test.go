package css

import (
	"strings"
	"testing"
)

func TestParse_SimpleRule(t *testing.T) {
	sheet := NewParser(nil).Parse([]byte(".card {\n  width: 300px;\n  color: red;\n}\n"))

	if len(sheet.Issues) != 0 {
		t.Fatalf("unexpected parse issues: %v", sheet.Issues)
	}
	rules := sheet.Rules()
	if len(rules) != 1 {
		t.Fatalf("Rules() returned %d rules, want 1", len(rules))
	}

	r := rules[0]
	if len(r.Selectors) != 1 || r.Selectors[0] != ".card" {
		t.Errorf("selectors = %v, want [.card]", r.Selectors)
	}
	if r.Pos.Line != 1 {
		t.Errorf("rule position line = %d, want 1", r.Pos.Line)
	}
	if len(r.Declarations) != 2 {
		t.Fatalf("got %d declarations, want 2", len(r.Declarations))
	}

	d := r.Declarations[0]
	if d.Property != "width" {
		t.Errorf("property = %q, want width", d.Property)
	}
	if len(d.Values) != 1 {
		t.Fatalf("got %d values, want 1", len(d.Values))
	}
	if v := d.Values[0]; v.Value != 300 || v.Unit != "px" {
		t.Errorf("value = %v/%q, want 300/px", v.Value, v.Unit)
	}

	if kw := r.Declarations[1].Values[0].Keyword; kw != "red" {
		t.Errorf("keyword = %q, want red", kw)
	}
}

func TestParse_MultipleSelectors(t *testing.T) {
	sheet := NewParser(nil).Parse([]byte("h1, h2,\nh3 { margin: 0 }"))

	rules := sheet.Rules()
	if len(rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(rules))
	}
	want := []string{"h1", "h2", "h3"}
	if len(rules[0].Selectors) != len(want) {
		t.Fatalf("selectors = %v, want %v", rules[0].Selectors, want)
	}
	for i, s := range want {
		if rules[0].Selectors[i] != s {
			t.Errorf("selector[%d] = %q, want %q", i, rules[0].Selectors[i], s)
		}
	}
}

func TestParse_Important(t *testing.T) {
	sheet := NewParser(nil).Parse([]byte(".a { color: red !important; width: 10em }"))

	decls := sheet.Rules()[0].Declarations
	if len(decls) != 2 {
		t.Fatalf("got %d declarations, want 2", len(decls))
	}
	if !decls[0].Important {
		t.Error("first declaration should be flagged important")
	}
	if decls[1].Important {
		t.Error("second declaration should not be flagged important")
	}
	// the "!important" marker itself must not leak into values
	for _, v := range decls[0].Values {
		if strings.EqualFold(v.Keyword, "important") {
			t.Errorf("important leaked into values: %+v", decls[0].Values)
		}
	}
}

func TestParse_MediaQuery(t *testing.T) {
	input := "@media screen and (min-width: 768px) {\n  .wide { display: flex }\n}\n"
	sheet := NewParser(nil).Parse([]byte(input))

	blocks := sheet.MediaBlocks()
	if len(blocks) != 1 {
		t.Fatalf("got %d media blocks, want 1", len(blocks))
	}

	b := blocks[0]
	if b.Query.Type != "screen" {
		t.Errorf("media type = %q, want screen", b.Query.Type)
	}
	if len(b.Query.Features) != 1 {
		t.Fatalf("got %d features, want 1: %+v", len(b.Query.Features), b.Query)
	}
	f := b.Query.Features[0]
	if f.Name != "min-width" {
		t.Errorf("feature name = %q, want min-width", f.Name)
	}
	if !f.HasValue() || f.Value.Value != 768 || f.Value.Unit != "px" {
		t.Errorf("feature value = %+v, want 768px", f.Value)
	}
	if len(b.Rules) != 1 {
		t.Fatalf("got %d rules inside block, want 1", len(b.Rules))
	}
	if b.Rules[0].Selectors[0] != ".wide" {
		t.Errorf("nested selector = %v, want [.wide]", b.Rules[0].Selectors)
	}

	// nested rules must also be visible through the flat accessor
	if got := sheet.Rules(); len(got) != 1 {
		t.Errorf("Rules() over media block returned %d rules, want 1", len(got))
	}
}

func TestParse_MediaQueryVariants(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		negated  bool
		features int
		unit     string
	}{
		{
			name:     "relative units",
			input:    "@media (max-width: 64rem) { .a { color: red } }",
			features: 1,
			unit:     "rem",
		},
		{
			name:     "negated query",
			input:    "@media not print and (orientation: landscape) { .a { color: red } }",
			negated:  true,
			features: 1,
		},
		{
			name:     "two features",
			input:    "@media (min-width: 30em) and (max-width: 60em) { .a { color: red } }",
			features: 2,
			unit:     "em",
		},
		{
			name:     "bare type",
			input:    "@media print { .a { color: red } }",
			features: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := NewParser(nil).Parse([]byte(tt.input))
			blocks := sheet.MediaBlocks()
			if len(blocks) != 1 {
				t.Fatalf("got %d media blocks, want 1", len(blocks))
			}
			q := blocks[0].Query
			if q.Negated != tt.negated {
				t.Errorf("negated = %v, want %v", q.Negated, tt.negated)
			}
			if len(q.Features) != tt.features {
				t.Fatalf("got %d features, want %d: %+v", len(q.Features), tt.features, q)
			}
			if tt.unit != "" && q.Features[0].Value.Unit != tt.unit {
				t.Errorf("unit = %q, want %q", q.Features[0].Value.Unit, tt.unit)
			}
		})
	}
}

func TestParse_HexColorValue(t *testing.T) {
	sheet := NewParser(nil).Parse([]byte(".a { color: #ff0000; background: var(--bg) }"))

	decls := sheet.Rules()[0].Declarations
	if len(decls) != 2 {
		t.Fatalf("got %d declarations, want 2", len(decls))
	}
	if !decls[0].Values[0].IsHexColor() {
		t.Errorf("expected hex color value, got %+v", decls[0].Values[0])
	}
	for _, v := range decls[1].Values {
		if v.IsHexColor() {
			t.Errorf("var() reference misread as hex color: %+v", v)
		}
	}
}

func TestParse_CommentsAndStringsIgnored(t *testing.T) {
	input := "/* width: 100px */ .a { content: \"height: 50px\"; margin: 1rem }"
	sheet := NewParser(nil).Parse([]byte(input))

	rules := sheet.Rules()
	if len(rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(rules))
	}
	for _, d := range rules[0].Declarations {
		for _, v := range d.Values {
			if v.Unit == "px" {
				t.Errorf("px value surfaced from comment or string: %+v", d)
			}
		}
	}
}

func TestParse_SkippedAtRules(t *testing.T) {
	input := "@font-face { font-family: X; src: url(x.woff) }\n.a { color: red }"
	sheet := NewParser(nil).Parse([]byte(input))

	if len(sheet.Warnings) == 0 {
		t.Error("expected a warning for skipped at-rule")
	}
	if len(sheet.Rules()) != 1 {
		t.Errorf("got %d rules, want 1", len(sheet.Rules()))
	}
}

func TestParse_RulePositions(t *testing.T) {
	input := ".a { color: red }\n\n.b { color: blue }\n"
	sheet := NewParser(nil).Parse([]byte(input))

	rules := sheet.Rules()
	if len(rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(rules))
	}
	if rules[0].Pos.Line != 1 {
		t.Errorf("first rule line = %d, want 1", rules[0].Pos.Line)
	}
	if rules[1].Pos.Line != 3 {
		t.Errorf("second rule line = %d, want 3", rules[1].Pos.Line)
	}
}

func TestParse_Malformed(t *testing.T) {
	sheet := NewParser(nil).Parse([]byte(".a { color: red }\n@media ("))

	// everything before the bad spot must still be usable
	if len(sheet.Rules()) < 1 {
		t.Errorf("got %d rules, want at least 1", len(sheet.Rules()))
	}
}

func TestLineIndex(t *testing.T) {
	ix := newLineIndex([]byte("ab\ncd\n\nef"))

	tests := []struct {
		offset    int
		line, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1},
		{7, 4, 1},
		{8, 4, 2},
	}
	for _, tt := range tests {
		got := ix.pos(tt.offset)
		if got.Line != tt.line || got.Col != tt.col {
			t.Errorf("pos(%d) = %d:%d, want %d:%d", tt.offset, got.Line, got.Col, tt.line, tt.col)
		}
	}
}
