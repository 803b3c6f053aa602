package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/gosimple/slug"
	yaml "gopkg.in/yaml.v3"

	"flint/common"
)

//go:embed defaults.yaml
var defaultDefinitions []byte

type (
	// branchDef is the YAML form of a branch target: a reference to a named
	// node, an inline node, or a terminal recommendation.
	branchDef struct {
		Next      string                `yaml:"next,omitempty"`
		Recommend string                `yaml:"recommend,omitempty"`
		Notes     string                `yaml:"notes,omitempty"`
		Question  string                `yaml:"question,omitempty"`
		Branches  map[string]*branchDef `yaml:"branches,omitempty"`
	}

	nodeDef struct {
		Question string                `yaml:"question"`
		Branches map[string]*branchDef `yaml:"branches"`
	}

	treeDef struct {
		ID    string              `yaml:"id"`
		Title string              `yaml:"title,omitempty"`
		Nodes map[string]*nodeDef `yaml:"nodes"`
	}

	definitions struct {
		Version int       `yaml:"version"`
		Rules   []Rule    `yaml:"rules"`
		Trees   []treeDef `yaml:"trees"`
	}
)

const rootNodeName = "root"

// Load builds the catalog from the embedded default definitions, layering the
// optional extra definition documents on top (rules and trees with matching
// ids replace the defaults, new ones are appended). Any inconsistency fails
// the whole load with *LoadError.
func Load(extra ...[]byte) (*Catalog, error) {
	defs, err := decodeDefinitions(defaultDefinitions)
	if err != nil {
		return nil, &LoadError{msg: "embedded definitions are malformed", err: err}
	}

	for _, data := range extra {
		over, err := decodeDefinitions(data)
		if err != nil {
			return nil, &LoadError{msg: "user definitions are malformed", err: err}
		}
		defs = merge(defs, over)
	}

	return build(defs)
}

// LoadFiles reads extra definition files and builds the catalog with them
// merged over the embedded defaults.
func LoadFiles(paths ...string) (*Catalog, error) {
	extras := make([][]byte, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, &LoadError{msg: fmt.Sprintf("unable to read definitions from %q", p), err: err}
		}
		extras = append(extras, data)
	}
	return Load(extras...)
}

func decodeDefinitions(data []byte) (*definitions, error) {
	// only fields we defined are allowed, so no yaml.Unmarshal here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	defs := &definitions{}
	if err := dec.Decode(defs); err != nil {
		return nil, fmt.Errorf("failed to decode rule definitions: %w", err)
	}
	if defs.Version != 1 {
		return nil, fmt.Errorf("unsupported definitions version %d", defs.Version)
	}
	return defs, nil
}

func merge(base, over *definitions) *definitions {
	ruleIdx := make(map[string]int, len(base.Rules))
	for i, r := range base.Rules {
		ruleIdx[slug.Make(r.ID)] = i
	}
	for _, r := range over.Rules {
		if i, ok := ruleIdx[slug.Make(r.ID)]; ok {
			base.Rules[i] = r
		} else {
			ruleIdx[slug.Make(r.ID)] = len(base.Rules)
			base.Rules = append(base.Rules, r)
		}
	}

	treeIdx := make(map[string]int, len(base.Trees))
	for i, t := range base.Trees {
		treeIdx[slug.Make(t.ID)] = i
	}
	for _, t := range over.Trees {
		if i, ok := treeIdx[slug.Make(t.ID)]; ok {
			base.Trees[i] = t
		} else {
			treeIdx[slug.Make(t.ID)] = len(base.Trees)
			base.Trees = append(base.Trees, t)
		}
	}
	return base
}

func build(defs *definitions) (*Catalog, error) {
	c := &Catalog{
		byCategory: make(map[common.Category][]Rule),
		trees:      make(map[string]*Tree),
	}

	seen := make(map[string]bool, len(defs.Rules))
	for _, r := range defs.Rules {
		r.ID = slug.Make(r.ID)
		if r.ID == "" {
			return nil, loadErrorf("rule with empty id")
		}
		if seen[r.ID] {
			return nil, loadErrorf("duplicate rule id %q", r.ID)
		}
		seen[r.ID] = true
		if err := validateRule(r); err != nil {
			return nil, err
		}
		c.rules = append(c.rules, r)
		c.byCategory[r.Category] = append(c.byCategory[r.Category], r)
	}

	for _, td := range defs.Trees {
		id := slug.Make(td.ID)
		if id == "" {
			return nil, loadErrorf("tree with empty id")
		}
		if _, exists := c.trees[id]; exists {
			return nil, loadErrorf("duplicate tree id %q", id)
		}
		tree, err := resolveTree(id, &td)
		if err != nil {
			return nil, err
		}
		c.trees[id] = tree
		c.treeOrder = append(c.treeOrder, id)
	}

	return c, nil
}

func validateRule(r Rule) error {
	if !r.Category.IsValid() || !r.Polarity.IsValid() || !r.Severity.IsValid() {
		return loadErrorf("rule %q: invalid category, polarity or severity", r.ID)
	}
	if !knownMatchKinds[r.Match.Kind] {
		return loadErrorf("rule %q: unknown matcher kind %q", r.ID, r.Match.Kind)
	}

	switch r.Match.Kind {
	case MatchCSSPropertyUnit:
		if len(r.Match.Properties) == 0 || len(r.Match.Units) == 0 {
			return loadErrorf("rule %q: %s needs properties and units", r.ID, r.Match.Kind)
		}
	case MatchCSSMediaFeature:
		if len(r.Match.Features) == 0 || len(r.Match.Units) == 0 {
			return loadErrorf("rule %q: %s needs features and units", r.ID, r.Match.Kind)
		}
	case MatchCSSHexColor:
		if len(r.Match.Properties) == 0 {
			return loadErrorf("rule %q: %s needs properties", r.ID, r.Match.Kind)
		}
	case MatchHTMLAttrRequired:
		if r.Match.Tag == "" || r.Match.Attr == "" {
			return loadErrorf("rule %q: %s needs tag and attr", r.ID, r.Match.Kind)
		}
		if r.Polarity != common.PolarityRequired {
			return loadErrorf("rule %q: %s implies required polarity", r.ID, r.Match.Kind)
		}
	case MatchHTMLAttrForbidden:
		if r.Match.Attr == "" {
			return loadErrorf("rule %q: %s needs attr", r.ID, r.Match.Kind)
		}
	}
	return nil
}

// resolveTree turns the YAML node map into a linked DecisionNode tree,
// rejecting unresolved references and cycles.
func resolveTree(id string, td *treeDef) (*Tree, error) {
	if len(td.Nodes) == 0 {
		return nil, loadErrorf("tree %q: no nodes", id)
	}
	if _, ok := td.Nodes[rootNodeName]; !ok {
		return nil, loadErrorf("tree %q: missing %q node", id, rootNodeName)
	}

	resolved := make(map[string]*DecisionNode, len(td.Nodes))

	// visiting guards against reference cycles: a named node that is entered
	// again before its resolution finished closes a loop.
	visiting := make(map[string]bool)

	var resolveNode func(name string) (*DecisionNode, error)
	var resolveBranch func(where string, b *branchDef) (Outcome, error)

	resolveNode = func(name string) (*DecisionNode, error) {
		if n, ok := resolved[name]; ok {
			return n, nil
		}
		if visiting[name] {
			return nil, loadErrorf("tree %q: cycle through node %q", id, name)
		}
		nd, ok := td.Nodes[name]
		if !ok {
			return nil, loadErrorf("tree %q: reference to unknown node %q", id, name)
		}
		if nd.Question == "" {
			return nil, loadErrorf("tree %q: node %q has no question", id, name)
		}
		if len(nd.Branches) == 0 {
			return nil, loadErrorf("tree %q: node %q has no branches", id, name)
		}

		visiting[name] = true
		defer delete(visiting, name)

		node := &DecisionNode{Question: nd.Question, Next: make(map[string]Outcome, len(nd.Branches))}
		for answer, b := range nd.Branches {
			out, err := resolveBranch(name, b)
			if err != nil {
				return nil, err
			}
			node.Next[answer] = out
		}
		resolved[name] = node
		return node, nil
	}

	resolveBranch = func(where string, b *branchDef) (Outcome, error) {
		if b == nil {
			return Outcome{}, loadErrorf("tree %q: empty branch in node %q", id, where)
		}
		switch {
		case b.Next != "":
			if b.Recommend != "" || b.Question != "" {
				return Outcome{}, loadErrorf("tree %q: branch in node %q mixes next with other fields", id, where)
			}
			n, err := resolveNode(b.Next)
			if err != nil {
				return Outcome{}, err
			}
			return Outcome{Node: n}, nil

		case b.Recommend != "":
			if b.Question != "" {
				return Outcome{}, loadErrorf("tree %q: branch in node %q mixes recommend with question", id, where)
			}
			return Outcome{Recommendation: &Recommendation{Utility: b.Recommend, Notes: b.Notes}}, nil

		case b.Question != "":
			if len(b.Branches) == 0 {
				return Outcome{}, loadErrorf("tree %q: inline node in %q has no branches", id, where)
			}
			node := &DecisionNode{Question: b.Question, Next: make(map[string]Outcome, len(b.Branches))}
			for answer, sub := range b.Branches {
				out, err := resolveBranch(where, sub)
				if err != nil {
					return Outcome{}, err
				}
				node.Next[answer] = out
			}
			return Outcome{Node: node}, nil

		default:
			return Outcome{}, loadErrorf("tree %q: branch in node %q resolves to nothing", id, where)
		}
	}

	root, err := resolveNode(rootNodeName)
	if err != nil {
		return nil, err
	}
	return &Tree{ID: id, Title: td.Title, Root: root}, nil
}

// Defaults returns the embedded default definitions (for dumps and debugging).
func Defaults() []byte {
	out := make([]byte, len(defaultDefinitions))
	copy(out, defaultDefinitions)
	return out
}
