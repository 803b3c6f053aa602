package report

import (
	"io"

	json "github.com/goccy/go-json"
)

// WriteJSON renders the result as a structured record:
// {violations: [...], recommendations: [...], parseErrors: [...]}.
// Output is deterministic for identical input since all slices are sorted
// during aggregation.
func (r *EvaluationResult) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonResult{
		Violations:      nonNil(r.Violations),
		Recommendations: nonNil(r.Recommendations),
		ParseErrors:     nonNil(r.ParseErrors),
	})
}

// jsonResult pins the serialized field order and keeps empty slices as [].
type jsonResult struct {
	Violations      any `json:"violations"`
	Recommendations any `json:"recommendations"`
	ParseErrors     any `json:"parseErrors"`
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
