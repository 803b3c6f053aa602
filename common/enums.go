// Shared enums live in a separate package so that config, catalog and
// reporting can use them without import cycles.
package common

//go:generate go-enum --marshal --names

// Area of the design conventions a rule belongs to.
// ENUM(layout, typography, spacing, accessibility, color)
type Category int

// Whether matching the pattern is the problem or the requirement.
// ENUM(forbidden, required)
type Polarity int

// How serious a detected violation is.
// ENUM(warning, error)
type Severity int

// Specification of requested report output type.
// ENUM(text, json, html)
type ReportFmt int

func (r ReportFmt) Ext() string {
	switch r {
	case ReportFmtText:
		return ".txt"
	case ReportFmtJSON:
		return ".json"
	case ReportFmtHTML:
		return ".html"
	default:
		// this should never happen
		panic("unsupported report format requested")
	}
}
