// Package export serializes processing results into the user-downloadable
// artifacts: ranked-leads CSV, the Markdown report, and per-lead plain-text
// drafts. Every function is pure; writing bytes to disk is the caller's job.
package export

import (
	"strconv"
	"strings"

	"github.com/smby/sunny-demo/internal/api"
)

// csvHeaders is the fixed column set of the ranked-leads CSV, in order.
var csvHeaders = []string{
	"company_name",
	"city",
	"state",
	"website",
	"source",
	"score",
	"tier",
	"reason",
	"outreach_subject",
	"outreach_message",
}

// LeadsCSV renders the leads in current list order. A field is quoted, with
// inner quotes doubled, only when it contains a comma, a newline, or a quote.
// An empty lead list yields an empty string.
func LeadsCSV(leads []api.Lead) string {
	if len(leads) == 0 {
		return ""
	}
	lines := make([]string, 0, len(leads)+1)
	lines = append(lines, strings.Join(csvHeaders, ","))
	for _, lead := range leads {
		row := []string{
			csvCell(lead.CompanyName),
			csvCell(lead.City),
			csvCell(lead.State),
			csvCell(lead.Website),
			csvCell(lead.Source),
			csvCell(strconv.Itoa(lead.Score)),
			csvCell(lead.Tier),
			csvCell(lead.Reason),
			csvCell(lead.OutreachSubject),
			csvCell(lead.OutreachMessage),
		}
		lines = append(lines, strings.Join(row, ","))
	}
	return strings.Join(lines, "\n")
}

func csvCell(text string) string {
	if strings.ContainsAny(text, ",\n\"") {
		return `"` + strings.ReplaceAll(text, `"`, `""`) + `"`
	}
	return text
}

// Report returns the stored top-leads Markdown verbatim. The content is
// produced by the backend; this is an opaque passthrough.
func Report(res *api.ProcessResult) string {
	if res == nil {
		return ""
	}
	return res.TopLeadsMarkdown
}

// Draft renders one lead's outreach as subject, blank line, message.
func Draft(lead api.Lead) string {
	return lead.OutreachSubject + "\n\n" + lead.OutreachMessage
}

// DraftFileName builds the suggested file name for a draft, collapsing
// whitespace runs in the company name to single underscores.
func DraftFileName(prefix string, lead api.Lead) string {
	return prefix + "_" + strings.Join(strings.Fields(lead.CompanyName), "_") + ".txt"
}
