// Package lint implements catalog evaluation over CSS and HTML sources and
// the CLI actions built on top of it.
package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/ianaindex"

	"flint/catalog"
	"flint/common"
	"flint/match"
	"flint/report"
	"flint/state"
	"flint/store"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("lint")

	if cmd.Args().Len() == 0 {
		return errors.New("no input source has been specified")
	}

	format := env.Cfg.Lint.Format
	if cmd.IsSet("format") {
		if format, err = common.ParseReportFmt(cmd.String("format")); err != nil {
			return fmt.Errorf("unknown report format requested: %w", err)
		}
	}

	minSeverity := env.Cfg.Lint.MinSeverity
	if cmd.IsSet("severity") {
		if minSeverity, err = common.ParseSeverity(cmd.String("severity")); err != nil {
			return fmt.Errorf("unknown severity threshold requested: %w", err)
		}
	}

	if cmd.IsSet("catalog") {
		paths := append(append([]string{}, env.Cfg.Catalog.Definitions...), cmd.String("catalog"))
		if env.Catalog, err = catalog.LoadFiles(paths...); err != nil {
			return err
		}
		log.Debug("Catalog reloaded", zap.String("extra", cmd.String("catalog")), zap.Int("rules", len(env.Catalog.Rules())))
	}

	jobs := env.Cfg.Lint.Jobs
	if cmd.IsSet("jobs") {
		jobs = cmd.Int("jobs")
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	if cp := cmd.String("force-zip-cp"); len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	log.Info("Evaluation starting",
		zap.Strings("sources", cmd.Args().Slice()), zap.Stringer("format", format), zap.Int("jobs", jobs))
	defer func(start time.Time) {
		log.Info("Evaluation completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	var sources []source
	for _, arg := range cmd.Args().Slice() {
		srcs, err := gather(ctx, arg, log)
		if err != nil {
			return err
		}
		sources = append(sources, srcs...)
	}

	result, evaluated, err := evaluate(ctx, env, sources, jobs, log)
	if err != nil {
		return err
	}

	baseline := env.Cfg.Lint.Baseline
	if cmd.IsSet("baseline") {
		baseline = cmd.String("baseline")
	}
	if len(baseline) > 0 {
		if result, err = applyBaseline(result, baseline, cmd.Bool("update-baseline"), log); err != nil {
			return err
		}
	} else if cmd.Bool("update-baseline") {
		return errors.New("--update-baseline requires a baseline file (--baseline or configuration)")
	}

	result = result.FilterSeverity(minSeverity)

	if err := render(env, result, format, cmd.String("output"), log); err != nil {
		return err
	}

	if evaluated == 0 && len(result.ParseErrors) > 0 {
		return &common.StatusError{Code: 2, Msg: fmt.Sprintf("no input could be evaluated, %d parse error(s)", len(result.ParseErrors))}
	}
	if result.HasViolations() {
		return &common.StatusError{Code: 1, Msg: fmt.Sprintf("found %d violation(s)", len(result.Violations))}
	}
	return nil
}

// evaluate parses and matches all sources against the loaded catalog, fanning
// the work out over at most jobs goroutines. Returned evaluated count tells
// how many fragments produced usable content.
func evaluate(ctx context.Context, env *state.LocalEnv, sources []source, jobs int, log *zap.Logger) (*report.EvaluationResult, int, error) {

	rules := env.Catalog.Rules()

	perSource := make([][]match.Violation, len(sources))
	perIssues := make([][]report.ParseError, len(sources))
	usable := make([]bool, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, s := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			frag := match.ParseFragment(s.name, s.kind, s.data, log)
			perSource[i] = match.NewMatcher(log).EvaluateAll(rules, frag)

			switch {
			case frag.Stylesheet != nil:
				for _, iss := range frag.Stylesheet.Issues {
					perIssues[i] = append(perIssues[i], report.ParseError{
						File: s.name, Line: iss.Pos.Line, Col: iss.Pos.Col, Message: iss.Message})
				}
				for _, w := range frag.Stylesheet.Warnings {
					log.Warn("Stylesheet not fully evaluated", zap.String("file", s.name), zap.String("reason", w))
				}
				usable[i] = len(frag.Stylesheet.Items) > 0 || len(frag.Stylesheet.Issues) == 0
			case frag.Document != nil:
				for _, iss := range frag.Document.Issues {
					perIssues[i] = append(perIssues[i], report.ParseError{
						File: s.name, Line: iss.Pos.Line, Col: iss.Pos.Col, Message: iss.Message})
				}
				usable[i] = len(frag.Document.Elements) > 0 || len(frag.Document.Issues) == 0
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	var (
		violations  []match.Violation
		parseErrors []report.ParseError
		evaluated   int
	)
	for i := range sources {
		violations = append(violations, perSource[i]...)
		parseErrors = append(parseErrors, perIssues[i]...)
		if usable[i] {
			evaluated++
		}
	}
	return report.Aggregate(violations, nil, parseErrors), evaluated, nil
}

// applyBaseline either records current violations as reviewed or filters out
// the already recorded ones.
func applyBaseline(result *report.EvaluationResult, path string, update bool, log *zap.Logger) (*report.EvaluationResult, error) {

	b, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	if update {
		if err := b.Accept(result.Violations); err != nil {
			return nil, err
		}
		log.Info("Baseline updated", zap.String("baseline", path), zap.Int("accepted", len(result.Violations)))
	}

	kept, err := b.Filter(result.Violations)
	if err != nil {
		return nil, err
	}
	if dropped := len(result.Violations) - len(kept); dropped > 0 {
		log.Debug("Baseline filtered known violations", zap.String("baseline", path), zap.Int("filtered", dropped))
	}
	return report.Aggregate(kept, result.Recommendations, result.ParseErrors), nil
}

// render writes the result in the requested format to destination file or
// STDOUT and, when debug reporting is active, stores a copy in the report
// archive.
func render(env *state.LocalEnv, result *report.EvaluationResult, format common.ReportFmt, dest string, log *zap.Logger) error {

	out := io.Writer(os.Stdout)
	if len(dest) > 0 {
		f, err := os.Create(dest)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", dest, err)
		}
		defer f.Close()
		out = f
	} else {
		dest = "STDOUT"
	}
	log.Debug("Writing result", zap.String("destination", dest), zap.Stringer("format", format))

	if env.Rpt != nil {
		var buf bytes.Buffer
		if err := writeResult(result, format, &buf); err != nil {
			return err
		}
		env.Rpt.StoreData(fmt.Sprintf("results/%s%s", uuid.New().String(), format.Ext()), buf.Bytes())
		_, err := out.Write(buf.Bytes())
		return err
	}
	return writeResult(result, format, out)
}

func writeResult(result *report.EvaluationResult, format common.ReportFmt, w io.Writer) error {
	switch format {
	case common.ReportFmtJSON:
		return result.WriteJSON(w)
	case common.ReportFmtHTML:
		return result.WriteHTML(w)
	default:
		return result.WriteText(w)
	}
}
