package lint

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"flint/common"
	"flint/decision"
	"flint/report"
	"flint/state"
)

// Recommend walks a single decision tree with facts supplied on the command
// line and prints the recommendation it reaches.
func Recommend(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("recommend")

	id := cmd.Args().Get(0)
	if len(id) == 0 {
		return errors.New("no decision tree has been specified")
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	tree, ok := env.Catalog.Tree(id)
	if !ok {
		var known []string
		for _, t := range env.Catalog.Trees() {
			known = append(known, t.ID)
		}
		return fmt.Errorf("unknown decision tree %q (have: %s)", id, strings.Join(known, ", "))
	}

	facts, err := parseFacts(cmd.StringSlice("fact"))
	if err != nil {
		return err
	}

	rec, err := decision.Recommend(tree, facts)
	if err != nil {
		var incomplete *decision.IncompleteFactsError
		var unknown *decision.UnknownAnswerError
		if errors.As(err, &incomplete) || errors.As(err, &unknown) {
			return &common.StatusError{Code: 2, Msg: err.Error()}
		}
		return err
	}

	log.Debug("Recommendation reached", zap.String("tree", tree.ID), zap.String("utility", rec.Utility))

	if format, _ := common.ParseReportFmt(cmd.String("format")); format == common.ReportFmtJSON {
		res := report.Aggregate(nil, []report.TreeRecommendation{
			{Tree: tree.ID, Utility: rec.Utility, Notes: rec.Notes},
		}, nil)
		return res.WriteJSON(os.Stdout)
	}

	title := tree.Title
	if len(title) == 0 {
		title = tree.ID
	}
	fmt.Printf("%s: %s\n", title, rec.Utility)
	if len(rec.Notes) > 0 {
		fmt.Printf("    %s\n", rec.Notes)
	}
	return nil
}

// parseFacts turns repeated "question=answer" flag values into Facts.
func parseFacts(pairs []string) (decision.Facts, error) {
	facts := make(decision.Facts, len(pairs))
	for _, p := range pairs {
		q, a, ok := strings.Cut(p, "=")
		q, a = strings.TrimSpace(q), strings.TrimSpace(a)
		if !ok || len(q) == 0 || len(a) == 0 {
			return nil, fmt.Errorf("malformed fact %q, expected question=answer", p)
		}
		facts[q] = a
	}
	return facts, nil
}
