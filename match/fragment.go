package match

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"flint/css"
	"flint/markup"
)

// Fragment is a unit of CSS or HTML text submitted for evaluation, in its
// parsed form. Exactly one of Stylesheet or Document is non-nil.
type Fragment struct {
	Name       string // file path or synthetic name, used in violation locations
	Stylesheet *css.Stylesheet
	Document   *markup.Document
}

// IsCSS reports whether the fragment holds a parsed stylesheet.
func (f *Fragment) IsCSS() bool {
	return f.Stylesheet != nil
}

// KindForName guesses fragment kind from a file name extension.
// Returns "css", "html" or "".
func KindForName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".css":
		return "css"
	case ".html", ".htm", ".xhtml":
		return "html"
	}
	return ""
}

// ParseFragment parses raw text into a Fragment of the given kind
// ("css" or "html").
func ParseFragment(name, kind string, data []byte, log *zap.Logger) *Fragment {
	frag := &Fragment{Name: name}
	switch kind {
	case "css":
		frag.Stylesheet = css.NewParser(log).Parse(data, name)
	case "html":
		frag.Document = markup.NewScanner(log).Scan(data, name)
	}
	return frag
}
