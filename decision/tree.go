// Package decision walks catalog decision trees against caller-supplied
// facts. Traversal is pure: no defaults, no partial recommendations.
package decision

import (
	"fmt"
	"sort"
	"strings"

	"flint/catalog"
)

// Facts maps a node question to the caller's answer.
type Facts map[string]string

// IncompleteFactsError is returned when traversal reaches a node whose
// question has no answer in the supplied facts.
type IncompleteFactsError struct {
	Tree     string
	Question string
}

func (e *IncompleteFactsError) Error() string {
	return fmt.Sprintf("tree %q: missing answer for question %q", e.Tree, e.Question)
}

// UnknownAnswerError is returned when a supplied answer does not correspond
// to any branch of the node's question.
type UnknownAnswerError struct {
	Tree     string
	Question string
	Answer   string
	Allowed  []string
}

func (e *UnknownAnswerError) Error() string {
	return fmt.Sprintf("tree %q: answer %q to question %q is not one of [%s]",
		e.Tree, e.Answer, e.Question, strings.Join(e.Allowed, ", "))
}

// Recommend walks the tree from the root, looking up the answer for each
// node's question, until a recommendation is reached. Answers are matched
// case-insensitively.
func Recommend(tree *catalog.Tree, facts Facts) (catalog.Recommendation, error) {
	// facts lookup is case-insensitive on both questions and answers
	normalized := make(map[string]string, len(facts))
	for q, a := range facts {
		normalized[strings.ToLower(q)] = strings.ToLower(strings.TrimSpace(a))
	}

	node := tree.Root
	for {
		answer, ok := normalized[strings.ToLower(node.Question)]
		if !ok {
			return catalog.Recommendation{}, &IncompleteFactsError{Tree: tree.ID, Question: node.Question}
		}

		var out catalog.Outcome
		found := false
		for branch, o := range node.Next {
			if strings.ToLower(branch) == answer {
				out, found = o, true
				break
			}
		}
		if !found {
			allowed := make([]string, 0, len(node.Next))
			for branch := range node.Next {
				allowed = append(allowed, branch)
			}
			sort.Strings(allowed)
			return catalog.Recommendation{}, &UnknownAnswerError{
				Tree:     tree.ID,
				Question: node.Question,
				Answer:   answer,
				Allowed:  allowed,
			}
		}

		if out.Recommendation != nil {
			return *out.Recommendation, nil
		}
		node = out.Node
	}
}
