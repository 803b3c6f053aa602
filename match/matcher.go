// Package match evaluates catalog rules against parsed CSS/HTML fragments.
// Matching is structural: comments and string literals never produce hits.
package match

import (
	"fmt"
	"path"
	"strings"

	"go.uber.org/zap"

	"flint/catalog"
	"flint/common"
	"flint/markup"
)

// Violation is a detected breach of a rule in a given fragment.
type Violation struct {
	RuleID    string          `json:"rule"`
	Category  common.Category `json:"category"`
	Severity  common.Severity `json:"severity"`
	File      string          `json:"file"`
	Line      int             `json:"line"`
	Col       int             `json:"col"`
	Message   string          `json:"message"`
	Rationale string          `json:"rationale,omitempty"`
}

// Matcher evaluates rules against fragments. Stateless and safe for
// concurrent use.
type Matcher struct {
	log *zap.Logger
}

// NewMatcher creates a new rule matcher.
func NewMatcher(log *zap.Logger) *Matcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Matcher{log: log.Named("matcher")}
}

// Evaluate checks a single rule against a fragment and returns any
// violations found. A fragment of the wrong kind for the rule yields none.
func (m *Matcher) Evaluate(rule catalog.Rule, frag *Fragment) []Violation {
	switch rule.Match.Kind {
	case catalog.MatchCSSPropertyUnit:
		return m.cssPropertyUnit(rule, frag)
	case catalog.MatchCSSMediaFeature:
		return m.cssMediaFeature(rule, frag)
	case catalog.MatchCSSImportant:
		return m.cssImportant(rule, frag)
	case catalog.MatchCSSHexColor:
		return m.cssHexColor(rule, frag)
	case catalog.MatchHTMLAttrRequired:
		return m.htmlAttrRequired(rule, frag)
	case catalog.MatchHTMLAttrForbidden:
		return m.htmlAttrForbidden(rule, frag)
	default:
		// unreachable after a successful catalog load
		m.log.Warn("Unknown matcher kind", zap.String("rule", rule.ID), zap.String("kind", string(rule.Match.Kind)))
		return nil
	}
}

// EvaluateAll checks every rule against a fragment, in catalog order.
func (m *Matcher) EvaluateAll(rules []catalog.Rule, frag *Fragment) []Violation {
	var out []Violation
	for _, rule := range rules {
		out = append(out, m.Evaluate(rule, frag)...)
	}
	return out
}

func (m *Matcher) violation(rule catalog.Rule, file string, line, col int, format string, args ...any) Violation {
	return Violation{
		RuleID:    rule.ID,
		Category:  rule.Category,
		Severity:  rule.Severity,
		File:      file,
		Line:      line,
		Col:       col,
		Message:   fmt.Sprintf(format, args...),
		Rationale: strings.TrimSpace(rule.Rationale),
	}
}

// matchProperty reports whether prop matches any of the patterns. A trailing
// "*" in a pattern matches the prefix before it ("margin*" covers
// "margin-top").
func matchProperty(patterns []string, prop string) bool {
	for _, p := range patterns {
		if prefix, ok := strings.CutSuffix(p, "*"); ok {
			if strings.HasPrefix(prop, prefix) {
				return true
			}
		} else if p == prop {
			return true
		}
	}
	return false
}

func matchUnit(units []string, unit string) bool {
	for _, u := range units {
		if u == unit {
			return true
		}
	}
	return false
}

func (m *Matcher) cssPropertyUnit(rule catalog.Rule, frag *Fragment) []Violation {
	if !frag.IsCSS() {
		return nil
	}
	var out []Violation
	for _, r := range frag.Stylesheet.Rules() {
		for _, d := range r.Declarations {
			if !matchProperty(rule.Match.Properties, d.Property) {
				continue
			}
			for _, v := range d.Values {
				// zero lengths carry no unit semantics
				if v.Value == 0 || !matchUnit(rule.Match.Units, v.Unit) {
					continue
				}
				out = append(out, m.violation(rule, frag.Name, d.Pos.Line, d.Pos.Col,
					"%s uses %s (%s)", d.Property, v.Unit, v.Raw))
				break
			}
		}
	}
	return out
}

func (m *Matcher) cssMediaFeature(rule catalog.Rule, frag *Fragment) []Violation {
	if !frag.IsCSS() {
		return nil
	}
	var out []Violation
	for _, mb := range frag.Stylesheet.MediaBlocks() {
		// one violation per query however many features match
		for _, f := range mb.Query.Features {
			if !f.HasValue() || !matchUnit(rule.Match.Units, f.Value.Unit) {
				continue
			}
			if !matchFeature(rule.Match.Features, f.Name) {
				continue
			}
			out = append(out, m.violation(rule, frag.Name, mb.Pos.Line, mb.Pos.Col,
				"@media (%s: %s) pins a %s breakpoint", f.Name, f.Value.Raw, f.Value.Unit))
			break
		}
	}
	return out
}

func matchFeature(features []string, name string) bool {
	for _, f := range features {
		if f == name {
			return true
		}
	}
	return false
}

func (m *Matcher) cssImportant(rule catalog.Rule, frag *Fragment) []Violation {
	if !frag.IsCSS() {
		return nil
	}
	var out []Violation
	for _, r := range frag.Stylesheet.Rules() {
		for _, d := range r.Declarations {
			if d.Important {
				out = append(out, m.violation(rule, frag.Name, d.Pos.Line, d.Pos.Col,
					"%s is declared !important", d.Property))
			}
		}
	}
	return out
}

func (m *Matcher) cssHexColor(rule catalog.Rule, frag *Fragment) []Violation {
	if !frag.IsCSS() {
		return nil
	}
	var out []Violation
	for _, r := range frag.Stylesheet.Rules() {
		for _, d := range r.Declarations {
			if !matchProperty(rule.Match.Properties, d.Property) {
				continue
			}
			for _, v := range d.Values {
				if v.IsHexColor() {
					out = append(out, m.violation(rule, frag.Name, d.Pos.Line, d.Pos.Col,
						"%s hardcodes color %s", d.Property, v.Keyword))
					break
				}
			}
		}
	}
	return out
}

func (m *Matcher) htmlAttrRequired(rule catalog.Rule, frag *Fragment) []Violation {
	if frag.Document == nil {
		return nil
	}
	var out []Violation
	for _, el := range frag.Document.ElementsByTag(rule.Match.Tag) {
		val, present := el.Attr(rule.Match.Attr)
		switch {
		case !present:
			out = append(out, m.violation(rule, frag.Name, el.Pos.Line, el.Pos.Col,
				"<%s> is missing %s", el.Tag, rule.Match.Attr))
		case rule.Match.NonEmpty && strings.TrimSpace(val) == "":
			out = append(out, m.violation(rule, frag.Name, el.Pos.Line, el.Pos.Col,
				"<%s> has empty %s", el.Tag, rule.Match.Attr))
		case rule.Match.NotFilename && isFilenameDerived(val, el):
			out = append(out, m.violation(rule, frag.Name, el.Pos.Line, el.Pos.Col,
				"<%s> %s %q is derived from the file name", el.Tag, rule.Match.Attr, val))
		}
	}
	return out
}

// isFilenameDerived reports whether the attribute value is just the source
// file name (with or without extension) - the typical generated default.
func isFilenameDerived(val string, el markup.Element) bool {
	src, ok := el.Attr("src")
	if !ok || src == "" {
		return false
	}
	base := path.Base(src)
	stem := strings.TrimSuffix(base, path.Ext(base))
	val = strings.TrimSpace(val)
	return strings.EqualFold(val, base) || strings.EqualFold(val, stem)
}

func (m *Matcher) htmlAttrForbidden(rule catalog.Rule, frag *Fragment) []Violation {
	if frag.Document == nil {
		return nil
	}
	var out []Violation
	for _, el := range frag.Document.Elements {
		if rule.Match.Tag != "" && el.Tag != rule.Match.Tag {
			continue
		}
		if _, present := el.Attr(rule.Match.Attr); present {
			out = append(out, m.violation(rule, frag.Name, el.Pos.Line, el.Pos.Col,
				"<%s> carries inline %s", el.Tag, rule.Match.Attr))
		}
	}
	return out
}
