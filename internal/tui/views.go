package tui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tierAStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	tierBStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	copiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

type fileItemDelegate struct{}

func (d fileItemDelegate) Height() int  { return 1 }
func (d fileItemDelegate) Spacing() int { return 0 }
func (d fileItemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}
func (d fileItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(fileItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = "> "
	}
	line := fmt.Sprintf("%s%s", prefix, entry.name)
	fmt.Fprint(w, padRight(line, m.Width()))
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func (a *App) View() string {
	var body string
	switch a.view {
	case viewResults:
		body = a.renderResults()
	case viewDetail:
		body = a.renderDetail()
	case viewHistory:
		body = a.renderHistory()
	default:
		body = a.renderForm()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	if a.st.Error != "" {
		body += "\n" + errorStyle.Render(a.st.Error)
	}
	return body
}

func (a *App) renderForm() string {
	msgs := a.msgs()
	title := titleStyle.Render(msgs.AppTitle)

	health := msgs.Unavailable
	aiMode := msgs.TemplateOnly
	if a.st.Health != nil {
		health = msgs.Connected
		if a.st.AIEnabled() {
			aiMode = msgs.BackendReady
		}
	}
	out := fmt.Sprintf("%s\n%s: %s  %s: %s\n\n", title, msgs.APIStatus, health, msgs.AIMode, aiMode)

	fileLabel := msgs.NoFile
	if a.st.File != nil {
		fileLabel = a.st.File.Name
	}
	useAI := "[ ]"
	if a.st.Params.UseAI {
		useAI = "[x]"
	}
	rows := []struct {
		field formField
		label string
		value string
	}{
		{fieldFile, msgs.LeadCSV, fileLabel},
		{fieldStates, msgs.TargetStates, a.st.Params.TargetStates},
		{fieldBrand, msgs.BrandName, a.st.Params.BrandName},
		{fieldPositioning, msgs.Positioning, truncate(a.st.Params.Positioning, 60)},
		{fieldTone, msgs.Tone, a.st.Params.Tone},
		{fieldUseAI, msgs.UseAI, useAI},
		{fieldAILimit, msgs.AILeadLimit, fmt.Sprintf("%d", a.st.Params.AILimit)},
	}
	for i, row := range rows {
		marker := " "
		if i == a.formCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-28s %s\n", marker, row.label, row.value)
	}

	run := msgs.RunLeadIntel
	if a.st.Loading {
		run = msgs.Processing
	}
	out += fmt.Sprintf("\n[r] %s  [s] %s  [t] %s  [g] EN/CN", run, msgs.LoadSample, msgs.Template)
	out += "\n[enter] Edit  [v] " + msgs.RankedLeads + "  [h] " + msgs.History + "  [q] Quit"
	if a.status != "" {
		out += "\n" + dimStyle.Render(a.status)
	}
	return out
}

func (a *App) renderResults() string {
	msgs := a.msgs()
	title := titleStyle.Render(msgs.RankedLeads)
	if a.st.Result == nil {
		return fmt.Sprintf("%s\n%s\n[esc] Back", title, msgs.RunToInspect)
	}
	res := a.st.Result

	out := title + "\n"
	out += fmt.Sprintf("%s: %d  %s: %.1f  %s: A %d / B %d / C %d\n",
		msgs.TotalLeads, res.Summary.TotalLeads,
		msgs.AverageScore, res.Summary.AverageScore,
		msgs.TierDist, res.Summary.TierA, res.Summary.TierB, res.Summary.TierC)
	var states []string
	for _, sc := range a.st.TopStates() {
		states = append(states, fmt.Sprintf("%s %d", sc.State, sc.Count))
	}
	if len(states) > 0 {
		out += fmt.Sprintf("%s: %s\n", msgs.TopStates, strings.Join(states, ", "))
	}
	if a.filterQuery != "" {
		out += fmt.Sprintf("/%s\n", a.filterQuery)
	}
	out += "\n"

	visible := a.visibleLeads()
	for pos, idx := range visible {
		lead := res.Leads[idx]
		marker := " "
		if pos == a.leadCursor {
			marker = "▶"
		}
		tier := lead.Tier
		switch lead.Tier {
		case "A":
			tier = tierAStyle.Render(lead.Tier)
		case "B":
			tier = tierBStyle.Render(lead.Tier)
		}
		out += fmt.Sprintf("%s %3d  %-32s  %-4s  %3d  %s\n",
			marker, idx+1, truncate(lead.CompanyName, 32), lead.State, lead.Score, tier)
	}

	out += "\n[enter] " + msgs.LeadDetail + "  [/] Filter  [c] CSV  [m] Report  [h] " + msgs.History + "  [esc] Back  [q] Quit"
	if a.status != "" {
		out += "\n" + dimStyle.Render(a.status)
	}
	return out
}

func (a *App) renderDetail() string {
	msgs := a.msgs()
	title := titleStyle.Render(msgs.LeadDetail)
	lead := a.st.CurrentLead()
	if lead == nil {
		return fmt.Sprintf("%s\n%s\n[esc] Back", title, msgs.RunToInspect)
	}

	website := lead.Website
	if website == "" {
		website = msgs.NoWebsite
	}
	out := fmt.Sprintf("%s  (%d/%d)\n", title, a.st.SelectedIndex+1, len(a.st.Result.Leads))
	out += fmt.Sprintf("%s: %s\n%s: %s, %s\n%s: %d  %s: %s\n%s\n%s: %s\n",
		msgs.Company, lead.CompanyName,
		msgs.State, lead.City, lead.State,
		msgs.Score, lead.Score, msgs.Tier, lead.Tier,
		website,
		msgs.Reason, lead.Reason)

	if len(lead.Breakdown) > 0 {
		var keys []string
		for k := range lead.Breakdown {
			if k == "total" {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var parts []string
		for _, k := range keys {
			label := msgs.BreakdownLabels[k]
			if label == "" {
				label = k
			}
			parts = append(parts, fmt.Sprintf("%s %.0f", label, lead.Breakdown[k]))
		}
		out += dimStyle.Render(strings.Join(parts, "  ")) + "\n"
	}

	subject := msgs.Subject
	if a.copiedField == "subject" {
		subject += " " + copiedStyle.Render(msgs.Copied)
	}
	draft := msgs.OutreachDraft
	if a.copiedField == "message" {
		draft += " " + copiedStyle.Render(msgs.Copied)
	}
	out += fmt.Sprintf("\n%s: %s\n\n%s:\n%s\n", subject, lead.OutreachSubject, draft, lead.OutreachMessage)

	out += fmt.Sprintf("\n%s: %s\n", msgs.RefineFeed, a.feedback)
	refine := "[a] " + msgs.RefineFeed
	if a.st.Refining {
		refine = msgs.Refining
	}
	out += fmt.Sprintf("[e] %s  %s  [y/Y] %s  [x] %s  [p/n] ±  [esc] Back  [q] Quit",
		msgs.RefineFeed, refine, msgs.Copy, msgs.OutreachDraft)
	if a.status != "" {
		out += "\n" + dimStyle.Render(a.status)
	}
	return out
}

func (a *App) renderHistory() string {
	msgs := a.msgs()
	title := titleStyle.Render(msgs.History)
	if len(a.runsList) == 0 {
		return fmt.Sprintf("%s\n%s\n[esc] Back  [q] Quit", title, msgs.NoRunsYet)
	}
	out := title + "\n"
	for i, run := range a.runsList {
		marker := " "
		if i == a.runCursor {
			marker = "▶"
		}
		ai := " "
		if run.UseAI {
			ai = "AI"
		}
		out += fmt.Sprintf("%s %s  %-20s  %s: %3d  %s: %5.1f  %-2s\n",
			marker, run.CreatedAt.Local().Format("2006-01-02 15:04"),
			truncate(run.BrandName, 20),
			msgs.TotalLeads, run.TotalLeads,
			msgs.AverageScore, run.AverageScore, ai)
	}
	out += "\n[c] CSV  [m] Report  [del] Delete  [esc] Back  [q] Quit"
	if a.status != "" {
		out += "\n" + dimStyle.Render(a.status)
	}
	return out
}

func (a *App) renderModal() string {
	msgs := a.msgs()
	switch a.modal {
	case modalFilePicker:
		if !a.listReady {
			return titleStyle.Render(msgs.LeadCSV) + "\n..."
		}
		return titleStyle.Render(msgs.LeadCSV) + "\n" + a.fileList.View() + "\n[enter] Select  [esc] Cancel"
	case modalEditField:
		label := map[formField]string{
			fieldStates:      msgs.TargetStates,
			fieldBrand:       msgs.BrandName,
			fieldPositioning: msgs.Positioning,
			fieldTone:        msgs.Tone,
			fieldAILimit:     msgs.AILeadLimit,
		}[a.editingField]
		return titleStyle.Render(label) + fmt.Sprintf("\n%s\n[enter] Save  [esc] Cancel", a.inputBuffer)
	case modalFeedback:
		return titleStyle.Render(msgs.RefineFeed) + fmt.Sprintf("\n%s\n%s\n[enter] Save  [esc] Cancel", a.inputBuffer, dimStyle.Render(msgs.RefineHint))
	case modalFilter:
		return titleStyle.Render("/") + fmt.Sprintf("\n%s\n[enter] Apply  [esc] Cancel", a.inputBuffer)
	default:
		return ""
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
