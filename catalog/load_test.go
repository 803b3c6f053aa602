package catalog

import (
	"errors"
	"testing"

	"flint/common"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	rules := c.Rules()
	if len(rules) != 10 {
		t.Errorf("got %d rules, want 10", len(rules))
	}
	for _, r := range rules {
		if r.ID == "" {
			t.Error("rule with empty id survived load")
		}
		if !r.Category.IsValid() || !r.Severity.IsValid() {
			t.Errorf("rule %q carries invalid enums", r.ID)
		}
	}

	trees := c.Trees()
	if len(trees) != 2 {
		t.Fatalf("got %d trees, want 2", len(trees))
	}
	if trees[0].ID != "layout" || trees[1].ID != "typography" {
		t.Errorf("tree order = %s, %s; want layout, typography", trees[0].ID, trees[1].ID)
	}

	if _, ok := c.Tree("layout"); !ok {
		t.Error("layout tree not found by id")
	}
	if _, ok := c.Tree("nope"); ok {
		t.Error("lookup of unknown tree succeeded")
	}
}

func TestLoad_RulesFor(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	acc := c.RulesFor(common.CategoryAccessibility)
	if len(acc) != 2 {
		t.Fatalf("got %d accessibility rules, want 2", len(acc))
	}
	for _, r := range acc {
		if r.Category != common.CategoryAccessibility {
			t.Errorf("rule %q has category %s", r.ID, r.Category)
		}
	}
}

func TestLoad_MergeReplacesAndAppends(t *testing.T) {
	extra := []byte(`
version: 1
rules:
  - id: no-important
    category: layout
    polarity: forbidden
    severity: error
    rationale: upgraded to error
    match:
      kind: css-important
  - id: no-fixed-heights
    category: layout
    polarity: forbidden
    severity: warning
    rationale: fixed heights clip content
    match:
      kind: css-property-unit
      properties: [height]
      units: [px]
`)

	c, err := Load(extra)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	rules := c.Rules()
	if len(rules) != 11 {
		t.Fatalf("got %d rules, want 11 (one replaced, one appended)", len(rules))
	}

	var replaced, appended bool
	for _, r := range rules {
		switch r.ID {
		case "no-important":
			replaced = r.Severity == common.SeverityError
		case "no-fixed-heights":
			appended = true
		}
	}
	if !replaced {
		t.Error("overriding definition did not replace the default rule")
	}
	if !appended {
		t.Error("new definition was not appended")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		extra string
	}{
		{
			name:  "not yaml",
			extra: "{{{",
		},
		{
			name:  "unknown field",
			extra: "version: 1\nbogus: true\n",
		},
		{
			name:  "unsupported version",
			extra: "version: 2\n",
		},
		{
			name: "unknown matcher kind",
			extra: `
version: 1
rules:
  - id: bad
    category: layout
    polarity: forbidden
    severity: warning
    rationale: x
    match:
      kind: regex
`,
		},
		{
			name: "missing matcher fields",
			extra: `
version: 1
rules:
  - id: bad
    category: layout
    polarity: forbidden
    severity: warning
    rationale: x
    match:
      kind: css-property-unit
`,
		},
		{
			name: "invalid category",
			extra: `
version: 1
rules:
  - id: bad
    category: sound
    polarity: forbidden
    severity: warning
    rationale: x
    match:
      kind: css-important
`,
		},
		{
			name: "tree without root",
			extra: `
version: 1
trees:
  - id: broken
    nodes:
      start:
        question: q
        branches:
          "yes": {recommend: a}
`,
		},
		{
			name: "unresolved node reference",
			extra: `
version: 1
trees:
  - id: broken
    nodes:
      root:
        question: q
        branches:
          "yes": {next: missing}
`,
		},
		{
			name: "cyclic tree",
			extra: `
version: 1
trees:
  - id: broken
    nodes:
      root:
        question: a
        branches:
          "yes": {next: loop}
      loop:
        question: b
        branches:
          "yes": {next: root}
`,
		},
		{
			name: "branch resolves to nothing",
			extra: `
version: 1
trees:
  - id: broken
    nodes:
      root:
        question: q
        branches:
          "yes": {}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.extra))
			if err == nil {
				t.Fatal("expected load to fail")
			}
			var le *LoadError
			if !errors.As(err, &le) {
				t.Errorf("error is %T, want *LoadError: %v", err, err)
			}
		})
	}
}

func TestLoad_SelfCycle(t *testing.T) {
	extra := []byte(`
version: 1
trees:
  - id: broken
    nodes:
      root:
        question: q
        branches:
          "yes": {next: root}
`)
	_, err := Load(extra)
	if err == nil {
		t.Fatal("expected load to fail on self-referencing node")
	}
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("error is %T, want *LoadError: %v", err, err)
	}
}

func TestLoad_DiamondIsNotCycle(t *testing.T) {
	// two branches converging on the same node is fine, only back edges fail
	extra := []byte(`
version: 1
trees:
  - id: diamond
    nodes:
      root:
        question: q
        branches:
          "yes": {next: shared}
          "no": {next: shared}
      shared:
        question: q2
        branches:
          "yes": {recommend: a}
          "no": {recommend: b}
`)
	c, err := Load(extra)
	if err != nil {
		t.Fatalf("Load() failed on diamond shape: %v", err)
	}

	tree, ok := c.Tree("diamond")
	if !ok {
		t.Fatal("diamond tree not loaded")
	}
	yes := tree.Root.Next["yes"].Node
	no := tree.Root.Next["no"].Node
	if yes == nil || yes != no {
		t.Error("converging branches should share the resolved node")
	}
}

func TestLoad_IDNormalization(t *testing.T) {
	extra := []byte(`
version: 1
rules:
  - id: "No Important"
    category: layout
    polarity: forbidden
    severity: error
    rationale: replaced through normalized id
    match:
      kind: css-important
`)
	c, err := Load(extra)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(c.Rules()) != 10 {
		t.Errorf("got %d rules, want 10 (normalized id must replace, not append)", len(c.Rules()))
	}
}

func TestCatalog_Immutable(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	rules := c.Rules()
	rules[0].ID = "mutated"

	if c.Rules()[0].ID == "mutated" {
		t.Error("caller mutation leaked into the catalog")
	}
}
