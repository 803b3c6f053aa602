// Package markup scans HTML fragments into a flat element stream suitable
// for attribute rule evaluation. Offsets of the raw token stream are tracked
// so violations can point at the offending tag.
package markup

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Position locates a tag in the source fragment, 1-based.
type Position struct {
	Line int
	Col  int
}

// Attr is a single attribute on an element as written in the source.
type Attr struct {
	Name  string
	Value string
}

// Element is a start or self-closing tag in source order.
type Element struct {
	Tag   string // Lowercased tag name
	Attrs []Attr
	Pos   Position
}

// Attr returns the value of the named attribute and whether it is present.
// Attribute names are matched case-insensitively.
func (e Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if strings.EqualFold(a.Name, name) {
			return a.Value, true
		}
	}
	return "", false
}

// ParseIssue records a spot where the scanner could not make sense of the input.
type ParseIssue struct {
	Message string
	Pos     Position
}

// Document is the scanned form of an HTML fragment.
type Document struct {
	Elements []Element
	Issues   []ParseIssue
}

// ElementsByTag returns all elements with the given tag name in source order.
func (d *Document) ElementsByTag(tag string) []Element {
	var out []Element
	for _, e := range d.Elements {
		if e.Tag == tag {
			out = append(out, e)
		}
	}
	return out
}

// Scanner tokenizes HTML fragments.
type Scanner struct {
	log *zap.Logger
}

// NewScanner creates a new HTML scanner.
func NewScanner(log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{log: log.Named("html-scanner")}
}

// Scan tokenizes HTML text into a Document.
// The optional source parameter identifies what's being scanned (for debug logging).
func (s *Scanner) Scan(data []byte, source ...string) *Document {
	doc := &Document{}

	if len(source) > 0 && source[0] != "" {
		s.log.Debug("Scanning HTML", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	z := html.NewTokenizer(bytes.NewReader(data))

	// line/col accounting over the raw token stream
	line, col := 1, 1
	advance := func(raw []byte) {
		for _, b := range raw {
			if b == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
	}

	for {
		tt := z.Next()
		pos := Position{Line: line, Col: col}
		raw := z.Raw()

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != nil && !errors.Is(err, io.EOF) {
				doc.Issues = append(doc.Issues, ParseIssue{Message: err.Error(), Pos: pos})
				s.log.Debug("HTML scan error", zap.Error(err))
			}
			return doc

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			el := Element{Tag: strings.ToLower(string(name)), Pos: pos}
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				el.Attrs = append(el.Attrs, Attr{Name: strings.ToLower(string(key)), Value: string(val)})
			}
			doc.Elements = append(doc.Elements, el)
		}

		advance(raw)
	}
}
