// Package report aggregates matcher output into a deterministic, serializable
// evaluation result.
package report

import (
	"sort"

	"github.com/maruel/natural"

	"flint/common"
	"flint/match"
)

// ParseError is a result-level entry for a fragment that could not be fully
// parsed. It never suppresses violations found elsewhere.
type ParseError struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// TreeRecommendation pairs a decision tree with the recommendation its
// traversal produced.
type TreeRecommendation struct {
	Tree    string `json:"tree"`
	Utility string `json:"utility"`
	Notes   string `json:"notes,omitempty"`
}

// EvaluationResult is the complete outcome of one evaluation run. It is owned
// by the caller and has no life beyond the run.
type EvaluationResult struct {
	Violations      []match.Violation    `json:"violations"`
	Recommendations []TreeRecommendation `json:"recommendations"`
	ParseErrors     []ParseError         `json:"parseErrors"`
}

// Aggregate orders violations and parse errors so that identical input always
// produces identical output: violations by (category, file - natural order,
// line, column, rule id), parse errors by (file, line, column).
func Aggregate(violations []match.Violation, recommendations []TreeRecommendation, parseErrors []ParseError) *EvaluationResult {
	res := &EvaluationResult{
		Violations:      make([]match.Violation, len(violations)),
		Recommendations: make([]TreeRecommendation, len(recommendations)),
		ParseErrors:     make([]ParseError, len(parseErrors)),
	}
	copy(res.Violations, violations)
	copy(res.Recommendations, recommendations)
	copy(res.ParseErrors, parseErrors)

	sort.SliceStable(res.Violations, func(i, j int) bool {
		a, b := res.Violations[i], res.Violations[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.File != b.File {
			return natural.Less(a.File, b.File)
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Col != b.Col {
			return a.Col < b.Col
		}
		return a.RuleID < b.RuleID
	})

	sort.SliceStable(res.ParseErrors, func(i, j int) bool {
		a, b := res.ParseErrors[i], res.ParseErrors[j]
		if a.File != b.File {
			return natural.Less(a.File, b.File)
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Col < b.Col
	})

	sort.SliceStable(res.Recommendations, func(i, j int) bool {
		return res.Recommendations[i].Tree < res.Recommendations[j].Tree
	})

	return res
}

// HasViolations reports whether any violations were found.
func (r *EvaluationResult) HasViolations() bool {
	return len(r.Violations) > 0
}

// CountBySeverity returns the number of violations with the given severity.
func (r *EvaluationResult) CountBySeverity(s common.Severity) int {
	n := 0
	for _, v := range r.Violations {
		if v.Severity == s {
			n++
		}
	}
	return n
}

// FilterSeverity drops violations below the given threshold, returning a new
// result. Parse errors and recommendations are kept as is.
func (r *EvaluationResult) FilterSeverity(min common.Severity) *EvaluationResult {
	var kept []match.Violation
	for _, v := range r.Violations {
		if v.Severity >= min {
			kept = append(kept, v)
		}
	}
	return &EvaluationResult{
		Violations:      kept,
		Recommendations: r.Recommendations,
		ParseErrors:     r.ParseErrors,
	}
}
