// Package catalog holds the immutable registry of design-convention rules
// and decision trees. A catalog is loaded once at program start and is safe
// to share between concurrent evaluations.
package catalog

import (
	"fmt"

	"flint/common"
)

// MatchKind selects the evaluation strategy for a rule.
type MatchKind string

const (
	// MatchCSSPropertyUnit flags declarations of the listed properties that
	// use one of the listed units.
	MatchCSSPropertyUnit MatchKind = "css-property-unit"
	// MatchCSSMediaFeature flags @media queries whose listed features use one
	// of the listed units.
	MatchCSSMediaFeature MatchKind = "css-media-feature"
	// MatchCSSImportant flags declarations carrying !important.
	MatchCSSImportant MatchKind = "css-important"
	// MatchCSSHexColor flags hex color literals in the listed properties.
	MatchCSSHexColor MatchKind = "css-hex-color"
	// MatchHTMLAttrRequired flags elements of the given tag missing the
	// required attribute (or carrying an unacceptable value).
	MatchHTMLAttrRequired MatchKind = "html-attr-required"
	// MatchHTMLAttrForbidden flags elements carrying the given attribute.
	// An empty tag matches any element.
	MatchHTMLAttrForbidden MatchKind = "html-attr-forbidden"
)

var knownMatchKinds = map[MatchKind]bool{
	MatchCSSPropertyUnit:   true,
	MatchCSSMediaFeature:   true,
	MatchCSSImportant:      true,
	MatchCSSHexColor:       true,
	MatchHTMLAttrRequired:  true,
	MatchHTMLAttrForbidden: true,
}

// MatcherSpec describes what a rule looks for. Which fields are meaningful
// depends on Kind.
type MatcherSpec struct {
	Kind        MatchKind `yaml:"kind"`
	Properties  []string  `yaml:"properties,omitempty"`   // CSS property names, trailing "*" matches a prefix
	Units       []string  `yaml:"units,omitempty"`        // CSS units ("px", "pt")
	Features    []string  `yaml:"features,omitempty"`     // media feature names ("min-width")
	Tag         string    `yaml:"tag,omitempty"`          // HTML tag name
	Attr        string    `yaml:"attr,omitempty"`         // HTML attribute name
	NonEmpty    bool      `yaml:"non_empty,omitempty"`    // required attribute value must not be empty
	NotFilename bool      `yaml:"not_filename,omitempty"` // required attribute value must not be derived from a file name
}

// Rule is a single forbidden/required pattern with rationale.
// Immutable once loaded.
type Rule struct {
	ID        string          `yaml:"id"`
	Category  common.Category `yaml:"category"`
	Polarity  common.Polarity `yaml:"polarity"`
	Severity  common.Severity `yaml:"severity"`
	Rationale string          `yaml:"rationale"`
	Match     MatcherSpec     `yaml:"match"`
}

// Recommendation is the terminal payload of a decision tree:
// a utility/class name plus usage notes.
type Recommendation struct {
	Utility string
	Notes   string
}

// Outcome is one branch target: either a further node or a recommendation.
// Exactly one field is non-nil after a successful load.
type Outcome struct {
	Node           *DecisionNode
	Recommendation *Recommendation
}

// DecisionNode asks a question and maps each answer to an outcome.
type DecisionNode struct {
	Question string
	Next     map[string]Outcome
}

// Tree is a rooted decision tree for one decision category.
type Tree struct {
	ID    string
	Title string
	Root  *DecisionNode
}

// Catalog is the loaded, immutable rule registry.
type Catalog struct {
	rules      []Rule
	byCategory map[common.Category][]Rule
	trees      map[string]*Tree
	treeOrder  []string
}

// Rules returns all rules in definition order.
func (c *Catalog) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// RulesFor returns rules of the given category in definition order.
func (c *Catalog) RulesFor(cat common.Category) []Rule {
	src := c.byCategory[cat]
	out := make([]Rule, len(src))
	copy(out, src)
	return out
}

// Tree returns the decision tree with the given id.
func (c *Catalog) Tree(id string) (*Tree, bool) {
	t, ok := c.trees[id]
	return t, ok
}

// Trees returns all decision trees in definition order.
func (c *Catalog) Trees() []*Tree {
	out := make([]*Tree, 0, len(c.treeOrder))
	for _, id := range c.treeOrder {
		out = append(out, c.trees[id])
	}
	return out
}

// LoadError reports malformed or inconsistent rule definitions.
// Catalog load is all-or-nothing: any LoadError aborts startup.
type LoadError struct {
	msg string
	err error
}

func (e *LoadError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("catalog: %s: %v", e.msg, e.err)
	}
	return "catalog: " + e.msg
}

func (e *LoadError) Unwrap() error {
	return e.err
}

func loadErrorf(format string, args ...any) *LoadError {
	return &LoadError{msg: fmt.Sprintf(format, args...)}
}
