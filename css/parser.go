// Package css parses stylesheets into a structure suitable for rule
// evaluation. It is a thin layer over the tdewolff tokenizer, so matching
// never sees text inside comments or strings.
package css

import (
	"bytes"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// lineIndex maps byte offsets to line/column positions.
type lineIndex struct {
	data   []byte
	starts []int // offset of the first byte of each line
}

func newLineIndex(data []byte) *lineIndex {
	starts := []int{0}
	for i, b := range data {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{data: data, starts: starts}
}

func (ix *lineIndex) pos(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(ix.data) {
		offset = len(ix.data)
	}
	line := sort.SearchInts(ix.starts, offset+1) - 1
	return Position{Line: line + 1, Col: offset - ix.starts[line] + 1}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)
	ix := newLineIndex(data)

	for {
		start := input.Offset()
		gt, _, tokData := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				sheet.Issues = append(sheet.Issues, ParseIssue{
					Message: err.Error(),
					Pos:     ix.pos(input.Offset()),
				})
				p.log.Debug("CSS parse error", zap.Error(err))
			}
			return sheet

		case css.CommentGrammar:
			// nothing to evaluate inside comments

		case css.BeginAtRuleGrammar:
			atRule := strings.ToLower(string(tokData))
			if atRule == "@media" {
				pos := ix.pos(start + leadingSpace(data, start))
				mq := p.parseMediaQuery(parser.Values())
				rules := p.parseMediaBlockRules(parser, sheet, ix, input)
				p.log.Debug("Parsed @media block", zap.String("query", mq.Raw), zap.Int("rules", len(rules)))
				sheet.Items = append(sheet.Items, StylesheetItem{
					MediaBlock: &MediaBlock{Query: mq, Rules: rules, Pos: pos},
				})
			} else {
				p.skipAtRuleBlock(parser)
				sheet.Warnings = append(sheet.Warnings, "skipped at-rule: "+atRule)
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.AtRuleGrammar:
			// simple @-rule without a block (@import, @charset) - nothing to lint
			p.log.Debug("Skipping @-rule", zap.String("rule", string(tokData)))

		case css.BeginRulesetGrammar, css.QualifiedRuleGrammar:
			pos := ix.pos(start + leadingSpace(data, start))
			selectors := p.parseSelectors(tokData, parser.Values())
			decls := p.parseDeclarations(parser, ix, input)
			if len(selectors) > 0 {
				sheet.Items = append(sheet.Items, StylesheetItem{
					Rule: &Rule{Selectors: selectors, Declarations: decls, Pos: pos},
				})
			}
		}
	}
}

// leadingSpace returns the number of whitespace bytes at data[start:]. The
// tokenizer consumes preceding whitespace together with the next construct,
// so positions are adjusted to the first visible byte.
func leadingSpace(data []byte, start int) int {
	n := 0
	for start+n < len(data) {
		switch data[start+n] {
		case ' ', '\t', '\n', '\r', '\f':
			n++
		default:
			return n
		}
	}
	return n
}

// parseSelectors extracts selector strings from token data.
func (p *Parser) parseSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.Join(strings.Fields(s), " ")
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser, ix *lineIndex, input *parse.Input) []Declaration {
	var decls []Declaration

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls

		case css.DeclarationGrammar:
			decl := p.parseDeclaration(string(data), parser.Values())
			decl.Pos = ix.pos(input.Offset() - 1)
			decls = append(decls, decl)

		case css.CustomPropertyGrammar:
			// custom properties (--var) define tokens, they are never linted
			continue
		}
	}
}

// parseDeclaration converts a property name and its value tokens into a Declaration.
func (p *Parser) parseDeclaration(property string, tokens []css.Token) Declaration {
	decl := Declaration{Property: strings.ToLower(property)}

	var rawParts []string
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]

		// "!important" arrives as a delimiter token followed by an identifier
		if t.TokenType == css.DelimToken && string(t.Data) == "!" {
			if j := nextNonSpace(tokens, i+1); j >= 0 &&
				tokens[j].TokenType == css.IdentToken &&
				strings.EqualFold(string(tokens[j].Data), "important") {
				decl.Important = true
				i = j
				continue
			}
		}

		if t.TokenType == css.WhitespaceToken {
			if len(rawParts) > 0 {
				rawParts = append(rawParts, " ")
			}
			continue
		}
		rawParts = append(rawParts, string(t.Data))

		if v, ok := parseValueToken(t); ok {
			decl.Values = append(decl.Values, v)
		}
	}
	decl.Raw = strings.TrimSpace(strings.Join(rawParts, ""))
	return decl
}

func nextNonSpace(tokens []css.Token, from int) int {
	for i := from; i < len(tokens); i++ {
		if tokens[i].TokenType != css.WhitespaceToken {
			return i
		}
	}
	return -1
}

// parseValueToken converts a single CSS token to a Value. Punctuation tokens
// produce no value.
func parseValueToken(t css.Token) (Value, bool) {
	raw := string(t.Data)
	val := Value{Raw: raw}

	switch t.TokenType {
	case css.DimensionToken:
		val.Value, val.Unit = parseDimension(raw)
	case css.PercentageToken:
		val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
		val.Unit = "%"
	case css.NumberToken:
		val.Value, _ = strconv.ParseFloat(raw, 64)
	case css.IdentToken:
		val.Keyword = strings.ToLower(raw)
	case css.StringToken:
		val.Keyword = unquote(raw)
	case css.HashToken:
		val.Keyword = raw
	case css.FunctionToken:
		val.Func = strings.ToLower(strings.TrimSuffix(raw, "("))
	case css.URLToken:
		val.Keyword = raw
	default:
		return Value{}, false
	}
	return val, true
}

// parseDimension extracts numeric value and unit from dimension token.
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}
	if numEnd == 0 {
		return 0, ""
	}
	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	return num, strings.ToLower(s[numEnd:])
}

// parseMediaQuery parses a media query from CSS tokens.
// Handles queries like "screen", "(min-width: 768px)", "screen and (max-width: 64rem)",
// "not print and (orientation: landscape)".
func (p *Parser) parseMediaQuery(tokens []css.Token) MediaQuery {
	mq := MediaQuery{}

	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
		} else if len(rawParts) > 0 {
			rawParts = append(rawParts, " ")
		}
	}
	mq.Raw = strings.TrimSpace(strings.Join(rawParts, ""))

	var (
		depth      int
		pendingNot bool
		feature    MediaFeature
		inValue    bool
	)

	for _, t := range tokens {
		switch t.TokenType {
		case css.LeftParenthesisToken:
			depth++
			if depth == 1 {
				feature = MediaFeature{Negated: pendingNot}
				pendingNot = false
				inValue = false
			}

		case css.RightParenthesisToken:
			if depth == 1 && feature.Name != "" {
				mq.Features = append(mq.Features, feature)
			}
			if depth > 0 {
				depth--
			}

		case css.ColonToken:
			if depth > 0 {
				inValue = true
			}

		case css.FunctionToken:
			if depth == 1 && inValue && feature.Value.Raw == "" {
				if v, ok := parseValueToken(t); ok {
					feature.Value = v
				}
			}
			// function call opens its own paren, e.g. min(...)
			depth++

		case css.IdentToken:
			name := strings.ToLower(string(t.Data))
			if depth == 0 {
				switch name {
				case "not":
					pendingNot = true
				case "and", "only", "or":
					// combinators carry no location information of their own
				default:
					mq.Type = name
					if pendingNot {
						mq.Negated = true
						pendingNot = false
					}
				}
				continue
			}
			if inValue {
				if feature.Value.Raw == "" {
					feature.Value = Value{Raw: string(t.Data), Keyword: name}
				}
			} else if feature.Name == "" {
				feature.Name = name
			}

		case css.DimensionToken, css.NumberToken, css.PercentageToken:
			if depth >= 1 && inValue && feature.Value.Raw == "" {
				if v, ok := parseValueToken(t); ok {
					feature.Value = v
				}
			}
		}
	}
	return mq
}

// parseMediaBlockRules parses rules inside an @media block and returns them.
func (p *Parser) parseMediaBlockRules(parser *css.Parser, sheet *Stylesheet, ix *lineIndex, input *parse.Input) []Rule {
	var rules []Rule

	for {
		start := input.Offset()
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return rules

		case css.BeginRulesetGrammar:
			pos := ix.pos(start + leadingSpace(ix.data, start))
			selectors := p.parseSelectors(data, parser.Values())
			decls := p.parseDeclarations(parser, ix, input)
			if len(selectors) > 0 {
				rules = append(rules, Rule{Selectors: selectors, Declarations: decls, Pos: pos})
			}

		case css.BeginAtRuleGrammar:
			// nested at-rules inside @media are not evaluated
			p.skipAtRuleBlock(parser)
			sheet.Warnings = append(sheet.Warnings, "skipped nested at-rule: "+string(data))
		}
	}
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
