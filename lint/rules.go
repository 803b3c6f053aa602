package lint

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"flint/catalog"
	"flint/common"
	"flint/state"
	"flint/utils/debug"
)

// Rules prints the loaded catalog (rules and decision trees) as an indented
// text tree.
func Rules(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("rules")

	rules := env.Catalog.Rules()
	trees := env.Catalog.Trees()
	if cmd.IsSet("category") {
		cat, err := common.ParseCategory(cmd.String("category"))
		if err != nil {
			return fmt.Errorf("unknown category requested: %w", err)
		}
		rules = env.Catalog.RulesFor(cat)
		trees = nil
	}

	out := os.Stdout
	if fname := cmd.Args().Get(0); len(fname) > 0 {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer f.Close()
		out = f
	}

	tw := debug.NewTreeWriter()
	dumpRules(tw, rules)
	dumpTrees(tw, trees)

	log.Debug("Dumping catalog", zap.Int("rules", len(rules)), zap.Int("trees", len(trees)))

	if _, err := out.WriteString(tw.String()); err != nil {
		return errors.New("unable to write catalog dump")
	}
	return nil
}

func dumpRules(tw *debug.TreeWriter, rules []catalog.Rule) {
	tw.Line(0, "rules (%d)", len(rules))
	for _, r := range rules {
		tw.Line(1, "%s [%s/%s/%s]", r.ID, r.Category, r.Polarity, r.Severity)
		tw.TextBlock(2, "rationale", r.Rationale)
		tw.Line(2, "match: %s", r.Match.Kind)
		tw.List(3, "properties", r.Match.Properties)
		tw.List(3, "units", r.Match.Units)
		tw.List(3, "features", r.Match.Features)
		if len(r.Match.Tag) > 0 {
			tw.Line(3, "tag: %s", r.Match.Tag)
		}
		if len(r.Match.Attr) > 0 {
			tw.Line(3, "attr: %s", r.Match.Attr)
		}
		if r.Match.NonEmpty {
			tw.Line(3, "non_empty: true")
		}
		if r.Match.NotFilename {
			tw.Line(3, "not_filename: true")
		}
	}
}

func dumpTrees(tw *debug.TreeWriter, trees []*catalog.Tree) {
	if len(trees) == 0 {
		return
	}
	tw.Line(0, "trees (%d)", len(trees))
	for _, t := range trees {
		tw.Line(1, "%s", t.ID)
		tw.TextBlock(2, "title", t.Title)
		dumpNode(tw, t.Root, 2)
	}
}

func dumpNode(tw *debug.TreeWriter, node *catalog.DecisionNode, depth int) {
	tw.TextBlock(depth, "ask", node.Question)

	answers := make([]string, 0, len(node.Next))
	for a := range node.Next {
		answers = append(answers, a)
	}
	sort.Strings(answers)

	for _, a := range answers {
		o := node.Next[a]
		if o.Recommendation != nil {
			tw.Line(depth+1, "%s -> %s", a, o.Recommendation.Utility)
			if len(o.Recommendation.Notes) > 0 {
				tw.TextBlock(depth+2, "notes", o.Recommendation.Notes)
			}
			continue
		}
		tw.Line(depth+1, "%s ->", a)
		dumpNode(tw, o.Node, depth+2)
	}
}
