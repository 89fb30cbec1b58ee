package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smby/sunny-demo/internal/api"
)

func TestLeadsCSVEmpty(t *testing.T) {
	t.Parallel()
	require.Equal(t, "", LeadsCSV(nil))
	require.Equal(t, "", LeadsCSV([]api.Lead{}))
}

func TestLeadsCSVQuoting(t *testing.T) {
	t.Parallel()

	leads := []api.Lead{
		{
			CompanyName:     "Desert Bloom Staging, LLC",
			City:            "Phoenix",
			State:           "AZ",
			Website:         "https://desertbloom.example",
			Source:          "sample",
			Score:           88,
			Tier:            "A",
			Reason:          `Great, "strong" fit`,
			OutreachSubject: "Quick idea for Desert Bloom",
			OutreachMessage: "Hi there,\n\nSaw your staging work.",
		},
		{
			CompanyName: "Plain Co",
			State:       "TX",
			Score:       60,
			Tier:        "B",
		},
	}

	out := LeadsCSV(leads)
	lines := strings.SplitN(out, "\n", 2)
	require.Equal(t,
		"company_name,city,state,website,source,score,tier,reason,outreach_subject,outreach_message",
		lines[0])
	require.Contains(t, out, `"Desert Bloom Staging, LLC"`)
	require.Contains(t, out, `"Great, ""strong"" fit"`)
	require.Contains(t, out, "\"Hi there,\n\nSaw your staging work.\"")
	// unremarkable fields stay bare
	require.Contains(t, out, "Plain Co,")

	// the output must round-trip through a standard CSV reader
	r := csv.NewReader(strings.NewReader(out))
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "Desert Bloom Staging, LLC", records[1][0])
	require.Equal(t, `Great, "strong" fit`, records[1][7])
	require.Equal(t, "Hi there,\n\nSaw your staging work.", records[1][9])
	require.Equal(t, "88", records[1][5])
	require.Equal(t, "Plain Co", records[2][0])
}

func TestReportPassthrough(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", Report(nil))
	res := &api.ProcessResult{TopLeadsMarkdown: "# Top Leads\n\n## 1. Acme"}
	require.Equal(t, "# Top Leads\n\n## 1. Acme", Report(res))
}

func TestDraft(t *testing.T) {
	t.Parallel()

	lead := api.Lead{OutreachSubject: "Hello", OutreachMessage: "Body text."}
	require.Equal(t, "Hello\n\nBody text.", Draft(lead))
}

func TestDraftFileName(t *testing.T) {
	t.Parallel()

	lead := api.Lead{CompanyName: "  Desert   Bloom Staging "}
	require.Equal(t, "outreach_Desert_Bloom_Staging.txt", DraftFileName("outreach", lead))

	cn := api.Lead{CompanyName: "华美家居"}
	require.Equal(t, "外联草稿_华美家居.txt", DraftFileName("外联草稿", cn))
}
