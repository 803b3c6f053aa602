package css

import (
	"strings"
	"unicode"
)

// Position locates a construct in the source fragment, 1-based.
type Position struct {
	Line int
	Col  int
}

// Value represents a single parsed CSS value token.
type Value struct {
	Raw     string  // Original token text (e.g., "1.2em", "bold", "#ff0000")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "em", "px", "%", "rem", etc.
	Keyword string  // Keyword if applicable: "bold", "auto", "#ff0000" for hash tokens
	Func    string  // Function name if the token opens a function: "clamp", "var", "calc"
}

// IsHexColor returns true for hash tokens that look like color literals.
func (v Value) IsHexColor() bool {
	if !strings.HasPrefix(v.Keyword, "#") {
		return false
	}
	switch len(v.Keyword) - 1 {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range v.Keyword[1:] {
		if !unicode.Is(unicode.ASCII_Hex_Digit, r) {
			return false
		}
	}
	return true
}

// Declaration is a single property declaration inside a rule.
type Declaration struct {
	Property  string  // Lowercased property name
	Raw       string  // Original value text as written
	Values    []Value // Parsed value tokens in source order
	Important bool    // true when the declaration carries !important
	Pos       Position
}

// Rule represents a single CSS ruleset (selector group + declarations).
type Rule struct {
	Selectors    []string // Selector strings, one per comma-separated selector
	Declarations []Declaration
	Pos          Position
}

// MediaFeature represents a single media feature condition in a media query,
// e.g. "(min-width: 768px)" has Name "min-width" and a dimension Value.
type MediaFeature struct {
	Name    string // Feature name, lowercased
	Negated bool   // true if "not" modifier was used
	Value   Value  // Feature value if present, zero Value for bare features
}

// HasValue returns true when the feature carries an explicit value.
func (f MediaFeature) HasValue() bool {
	return f.Value.Raw != ""
}

// MediaQuery represents a parsed @media query condition.
type MediaQuery struct {
	Raw      string         // Original media query string
	Type     string         // Media type ("screen", "print", ...) or empty
	Negated  bool           // true if "not" modifier was used on main type
	Features []MediaFeature // Feature conditions in source order
}

// MediaBlock represents a @media block with its query and nested rules.
type MediaBlock struct {
	Query MediaQuery
	Rules []Rule
	Pos   Position
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule or MediaBlock is non-nil.
type StylesheetItem struct {
	Rule       *Rule
	MediaBlock *MediaBlock
}

// ParseIssue records a spot where the tokenizer could not make sense of the
// input. The stylesheet around it is still usable.
type ParseIssue struct {
	Message string
	Pos     Position
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Items    []StylesheetItem // All top-level items in source order
	Issues   []ParseIssue     // Parse problems encountered, in source order
	Warnings []string         // Warnings for skipped at-rules and the like
}

// Rules returns all rules in source order, including those nested in @media
// blocks.
func (s *Stylesheet) Rules() []Rule {
	var rules []Rule
	for _, item := range s.Items {
		switch {
		case item.Rule != nil:
			rules = append(rules, *item.Rule)
		case item.MediaBlock != nil:
			rules = append(rules, item.MediaBlock.Rules...)
		}
	}
	return rules
}

// MediaBlocks returns all @media blocks in source order.
func (s *Stylesheet) MediaBlocks() []MediaBlock {
	var blocks []MediaBlock
	for _, item := range s.Items {
		if item.MediaBlock != nil {
			blocks = append(blocks, *item.MediaBlock)
		}
	}
	return blocks
}
