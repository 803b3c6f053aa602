package report

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
)

// WriteHTML renders the result as a standalone HTML page.
func (r *EvaluationResult) WriteHTML(w io.Writer) error {
	doc := etree.NewDocument()
	doc.CreateDirective("DOCTYPE html")

	root := doc.CreateElement("html")
	root.CreateAttr("lang", "en")

	head := root.CreateElement("head")
	head.CreateElement("meta").CreateAttr("charset", "utf-8")
	head.CreateElement("title").SetText("flint report")

	body := root.CreateElement("body")
	body.CreateElement("h1").SetText("flint report")

	summary := body.CreateElement("p")
	summary.SetText(fmt.Sprintf("%d violation(s), %d parse error(s), %d recommendation(s)",
		len(r.Violations), len(r.ParseErrors), len(r.Recommendations)))

	if len(r.Violations) > 0 {
		table := body.CreateElement("table")
		hdr := table.CreateElement("tr")
		for _, h := range []string{"Location", "Severity", "Category", "Rule", "Message"} {
			hdr.CreateElement("th").SetText(h)
		}
		for _, v := range r.Violations {
			row := table.CreateElement("tr")
			row.CreateElement("td").SetText(fmt.Sprintf("%s:%d:%d", v.File, v.Line, v.Col))
			row.CreateElement("td").SetText(v.Severity.String())
			row.CreateElement("td").SetText(v.Category.String())
			row.CreateElement("td").SetText(v.RuleID)
			cell := row.CreateElement("td")
			cell.SetText(v.Message)
			if v.Rationale != "" {
				cell.CreateAttr("title", v.Rationale)
			}
		}
	}

	if len(r.ParseErrors) > 0 {
		body.CreateElement("h2").SetText("Parse errors")
		list := body.CreateElement("ul")
		for _, pe := range r.ParseErrors {
			list.CreateElement("li").SetText(fmt.Sprintf("%s:%d:%d: %s", pe.File, pe.Line, pe.Col, pe.Message))
		}
	}

	if len(r.Recommendations) > 0 {
		body.CreateElement("h2").SetText("Recommendations")
		list := body.CreateElement("dl")
		for _, rec := range r.Recommendations {
			list.CreateElement("dt").SetText(fmt.Sprintf("%s: %s", rec.Tree, rec.Utility))
			if rec.Notes != "" {
				list.CreateElement("dd").SetText(rec.Notes)
			}
		}
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}
