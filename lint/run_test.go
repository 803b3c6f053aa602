package lint

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"flint/catalog"
	"flint/state"
)

func TestEvaluate_SurfacesStylesheetWarnings(t *testing.T) {
	ctx := testContext()
	env := state.EnvFromContext(ctx)

	var err error
	if env.Catalog, err = catalog.Load(); err != nil {
		t.Fatalf("catalog.Load() failed: %v", err)
	}

	core, logs := observer.New(zap.WarnLevel)

	srcs := []source{{
		name: "a.css",
		kind: "css",
		data: []byte("@font-face { font-family: X }\n.a { width: 960px }"),
	}}
	result, evaluated, err := evaluate(ctx, env, srcs, 1, zap.New(core))
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if evaluated != 1 {
		t.Errorf("evaluated = %d, want 1", evaluated)
	}
	if len(result.Violations) == 0 {
		t.Error("expected a violation for the fixed width")
	}

	entries := logs.FilterMessage("Stylesheet not fully evaluated").All()
	if len(entries) != 1 {
		t.Fatalf("got %d warning entries, want 1: %+v", len(entries), logs.All())
	}
	if got := entries[0].ContextMap()["reason"]; got != "skipped at-rule: @font-face" {
		t.Errorf("reason = %v, want the skipped at-rule named", got)
	}
}
