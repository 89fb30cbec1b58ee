package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smby/sunny-demo/internal/api"
	"github.com/smby/sunny-demo/internal/config"
	"github.com/smby/sunny-demo/internal/export"
	"github.com/smby/sunny-demo/internal/history"
	"github.com/smby/sunny-demo/internal/i18n"
	"github.com/smby/sunny-demo/internal/session"
)

// App ties the session state machine to the terminal views.
type App struct {
	ctx    context.Context
	client *api.Client
	cfg    config.Config
	runs   *history.RunRepo
	st     session.State

	view     viewState
	modal    modalState
	width    int
	height   int
	basePath string

	// form
	formCursor   int
	editingField formField
	inputBuffer  string
	fileList     list.Model
	listReady    bool

	// results
	leadCursor  int
	filterQuery string

	// detail
	feedback string

	// history
	runsList  []history.Run
	runCursor int

	status      string
	copiedField string
}

type viewState string

const (
	viewForm    viewState = "form"
	viewResults viewState = "results"
	viewDetail  viewState = "detail"
	viewHistory viewState = "history"
)

type modalState string

const (
	modalNone       modalState = ""
	modalFilePicker modalState = "filePicker"
	modalEditField  modalState = "editField"
	modalFeedback   modalState = "feedback"
	modalFilter     modalState = "filter"
)

type formField string

const (
	fieldFile        formField = "file"
	fieldStates      formField = "targetStates"
	fieldBrand       formField = "brandName"
	fieldPositioning formField = "positioning"
	fieldTone        formField = "tone"
	fieldUseAI       formField = "useAI"
	fieldAILimit     formField = "aiLimit"
)

// formFields is the cursor order of the run form.
var formFields = []formField{
	fieldFile, fieldStates, fieldBrand, fieldPositioning, fieldTone, fieldUseAI, fieldAILimit,
}

// New builds the app around a fresh session.
func New(ctx context.Context, cfg config.Config, client *api.Client, runs *history.RunRepo) *App {
	listModel := list.New([]list.Item{}, fileItemDelegate{}, 0, 0)
	listModel.SetShowStatusBar(false)
	listModel.SetFilteringEnabled(false)
	listModel.SetShowHelp(false)
	listModel.DisableQuitKeybindings()

	cwd, _ := os.Getwd()
	st := session.New(session.Params{
		TargetStates: cfg.Form.TargetStates,
		BrandName:    cfg.Form.BrandName,
		Language:     cfg.Form.Language,
		UseAI:        cfg.Form.UseAI,
		AILimit:      cfg.Form.AILimit,
	})
	return &App{
		ctx:      ctx,
		client:   client,
		cfg:      cfg,
		runs:     runs,
		st:       st,
		view:     viewForm,
		basePath: cwd,
		fileList: listModel,
	}
}

func (a *App) msgs() i18n.Messages {
	return i18n.For(i18n.Normalize(a.st.Params.Language))
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.checkHealthCmd(), a.loadRunsCmd())
}

// messages

type healthMsg struct {
	health api.Health
	err    error
}

type sampleLoadedMsg struct {
	data []byte
	err  error
}

type templateMsg struct {
	text string
	err  error
}

type processDoneMsg struct {
	seq int
	res *api.ProcessResult
	err error
}

type refineDoneMsg struct {
	target session.RefineTarget
	resp   api.RefineResponse
	err    error
}

type filesLoadedMsg struct {
	items []list.Item
	err   error
}

type runsMsg struct {
	runs []history.Run
	err  error
}

type runSavedMsg struct{ err error }

type fileWrittenMsg struct {
	name string
	err  error
}

type copiedMsg struct {
	field string
	err   error
}

type copyResetMsg struct{}

type fileItem struct {
	name string
}

func (f fileItem) Title() string       { return f.name }
func (f fileItem) Description() string { return "" }
func (f fileItem) FilterValue() string { return f.name }

// commands

func (a *App) checkHealthCmd() tea.Cmd {
	return func() tea.Msg {
		h, err := a.client.CheckHealth(a.ctx)
		return healthMsg{health: h, err: err}
	}
}

func (a *App) loadSampleCmd() tea.Cmd {
	return func() tea.Msg {
		data, err := a.client.SampleLeads(a.ctx)
		return sampleLoadedMsg{data: data, err: err}
	}
}

func (a *App) templateCmd() tea.Cmd {
	return func() tea.Msg {
		text, err := a.client.LeadTemplate(a.ctx)
		return templateMsg{text: text, err: err}
	}
}

func (a *App) processCmd(seq int, form api.ProcessForm) tea.Cmd {
	return func() tea.Msg {
		res, err := a.client.Process(a.ctx, form)
		return processDoneMsg{seq: seq, res: res, err: err}
	}
}

func (a *App) refineCmd(target session.RefineTarget, req api.RefineRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := a.client.RefineOutreach(a.ctx, req)
		return refineDoneMsg{target: target, resp: resp, err: err}
	}
}

func (a *App) loadFilesCmd() tea.Cmd {
	basePath := a.basePath
	return func() tea.Msg {
		entries, err := os.ReadDir(basePath)
		if err != nil {
			return filesLoadedMsg{err: err}
		}
		var items []list.Item
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if strings.HasSuffix(strings.ToLower(entry.Name()), ".csv") {
				items = append(items, fileItem{name: entry.Name()})
			}
		}
		return filesLoadedMsg{items: items}
	}
}

func (a *App) loadRunsCmd() tea.Cmd {
	return func() tea.Msg {
		if a.runs == nil {
			return runsMsg{}
		}
		runs, err := a.runs.List(a.ctx, 50)
		return runsMsg{runs: runs, err: err}
	}
}

func (a *App) saveRunCmd(res *api.ProcessResult) tea.Cmd {
	return func() tea.Msg {
		if a.runs == nil {
			return runSavedMsg{}
		}
		return runSavedMsg{err: a.runs.Insert(a.ctx, history.NewRun(res))}
	}
}

func (a *App) writeFileCmd(name, content string) tea.Cmd {
	basePath := a.basePath
	return func() tea.Msg {
		path := filepath.Join(basePath, name)
		err := os.WriteFile(path, []byte(content), 0o644)
		return fileWrittenMsg{name: name, err: err}
	}
}

func (a *App) copyCmd(field, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{field: field, err: clipboard.WriteAll(text)}
	}
}

func copyResetCmd() tea.Cmd {
	return tea.Tick(1200*time.Millisecond, func(time.Time) tea.Msg { return copyResetMsg{} })
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		listWidth := min(60, max(40, a.width-6))
		a.fileList.SetWidth(listWidth)
		a.fileList.SetHeight(min(14, max(4, a.height-8)))
		return a, nil

	case healthMsg:
		a.st.ApplyHealth(m.health, m.err)
		return a, nil

	case sampleLoadedMsg:
		a.st.ApplySampleLoaded(m.data, m.err)
		if m.err == nil {
			a.status = a.msgs().LoadSample + ": sample_leads.csv"
		}
		return a, nil

	case templateMsg:
		a.st.ApplyTemplateFetched(m.err)
		if m.err != nil {
			return a, nil
		}
		return a, a.writeFileCmd(a.msgs().LeadTemplateFile, m.text)

	case processDoneMsg:
		a.st.ApplySubmitResult(m.seq, m.res, m.err)
		if m.err != nil || a.st.Result == nil {
			return a, nil
		}
		a.view = viewResults
		a.leadCursor = 0
		a.filterQuery = ""
		a.status = ""
		return a, tea.Sequence(a.saveRunCmd(m.res), a.loadRunsCmd())

	case refineDoneMsg:
		a.st.ApplyRefineResult(m.target, m.resp, m.err)
		return a, nil

	case filesLoadedMsg:
		if m.err != nil {
			a.status = fmt.Sprintf("file scan error: %v", m.err)
			a.modal = modalNone
			return a, nil
		}
		a.fileList.SetItems(m.items)
		a.fileList.Select(0)
		a.listReady = true
		return a, nil

	case runsMsg:
		if m.err != nil {
			a.status = fmt.Sprintf("history error: %v", m.err)
			return a, nil
		}
		a.runsList = m.runs
		if a.runCursor >= len(a.runsList) {
			a.runCursor = 0
		}
		return a, nil

	case runSavedMsg:
		if m.err != nil {
			a.status = fmt.Sprintf("history save error: %v", m.err)
		}
		return a, nil

	case fileWrittenMsg:
		if m.err != nil {
			a.status = fmt.Sprintf("write error: %v", m.err)
		} else {
			a.status = "saved " + m.name
		}
		return a, nil

	case copiedMsg:
		if m.err != nil {
			a.st.Error = a.msgs().CopyFailed
			return a, nil
		}
		a.copiedField = m.field
		return a, copyResetCmd()

	case copyResetMsg:
		a.copiedField = ""
		return a, nil

	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		switch a.view {
		case viewForm:
			return a.handleFormKey(m)
		case viewResults:
			return a.handleResultsKey(m)
		case viewDetail:
			return a.handleDetailKey(m)
		case viewHistory:
			return a.handleHistoryKey(m)
		}
	}
	return a, nil
}

func (a *App) handleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.formCursor > 0 {
			a.formCursor--
		}
	case "down", "j":
		if a.formCursor < len(formFields)-1 {
			a.formCursor++
		}
	case "enter":
		return a.editFormField(formFields[a.formCursor])
	case " ":
		if formFields[a.formCursor] == fieldUseAI {
			a.st.Params.UseAI = !a.st.Params.UseAI
		}
	case "g":
		a.toggleLanguage()
	case "s":
		a.status = a.msgs().Processing
		return a, a.loadSampleCmd()
	case "t":
		return a, a.templateCmd()
	case "r":
		return a.submit()
	case "v":
		if a.st.Result != nil {
			a.view = viewResults
		}
	case "h":
		a.view = viewHistory
		return a, a.loadRunsCmd()
	}
	return a, nil
}

func (a *App) editFormField(field formField) (tea.Model, tea.Cmd) {
	switch field {
	case fieldFile:
		a.modal = modalFilePicker
		a.listReady = false
		return a, a.loadFilesCmd()
	case fieldUseAI:
		a.st.Params.UseAI = !a.st.Params.UseAI
		return a, nil
	}
	a.modal = modalEditField
	a.editingField = field
	switch field {
	case fieldStates:
		a.inputBuffer = a.st.Params.TargetStates
	case fieldBrand:
		a.inputBuffer = a.st.Params.BrandName
	case fieldPositioning:
		a.inputBuffer = a.st.Params.Positioning
	case fieldTone:
		a.inputBuffer = a.st.Params.Tone
	case fieldAILimit:
		a.inputBuffer = strconv.Itoa(a.st.Params.AILimit)
	}
	return a, nil
}

func (a *App) submit() (tea.Model, tea.Cmd) {
	if a.st.Loading {
		return a, nil // one submission in flight at a time
	}
	seq, err := a.st.BeginSubmit()
	if err != nil {
		return a, nil
	}
	a.status = a.msgs().Processing
	return a, a.processCmd(seq, a.st.Form())
}

func (a *App) toggleLanguage() {
	if i18n.Normalize(a.st.Params.Language) == i18n.CN {
		a.st.SetLanguage(string(i18n.EN))
	} else {
		a.st.SetLanguage(string(i18n.CN))
	}
}

func (a *App) handleResultsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := a.visibleLeads()
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc", "b":
		a.view = viewForm
	case "up", "k":
		if a.leadCursor > 0 {
			a.leadCursor--
		}
	case "down", "j":
		if a.leadCursor < len(visible)-1 {
			a.leadCursor++
		}
	case "enter":
		if a.leadCursor < len(visible) {
			a.st.Select(visible[a.leadCursor])
			a.view = viewDetail
		}
	case "/":
		a.modal = modalFilter
		a.inputBuffer = a.filterQuery
	case "c":
		if a.st.Result != nil && len(a.st.Result.Leads) > 0 {
			return a, a.writeFileCmd(a.msgs().RankedCSVFile, export.LeadsCSV(a.st.Result.Leads))
		}
	case "m":
		if a.st.Result != nil && a.st.Result.TopLeadsMarkdown != "" {
			return a, a.writeFileCmd(a.msgs().ReportFile, export.Report(a.st.Result))
		}
	case "h":
		a.view = viewHistory
		return a, a.loadRunsCmd()
	}
	return a, nil
}

func (a *App) handleDetailKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc", "b":
		a.view = viewResults
	case "left", "p":
		a.st.Select(a.st.SelectedIndex - 1)
	case "right", "n":
		a.st.Select(a.st.SelectedIndex + 1)
	case "y":
		if lead := a.st.CurrentLead(); lead != nil {
			return a, a.copyCmd("subject", lead.OutreachSubject)
		}
	case "Y":
		if lead := a.st.CurrentLead(); lead != nil {
			return a, a.copyCmd("message", lead.OutreachMessage)
		}
	case "x":
		if lead := a.st.CurrentLead(); lead != nil {
			name := export.DraftFileName(a.msgs().DraftPrefix, *lead)
			return a, a.writeFileCmd(name, export.Draft(*lead))
		}
	case "e":
		a.modal = modalFeedback
		a.inputBuffer = a.feedback
	case "a":
		return a.refine()
	}
	return a, nil
}

func (a *App) refine() (tea.Model, tea.Cmd) {
	if a.st.Refining {
		return a, nil // one refinement in flight at a time
	}
	target, err := a.st.BeginRefine(a.feedback)
	if err != nil {
		return a, nil
	}
	return a, a.refineCmd(target, a.st.RefineRequest(a.feedback))
}

func (a *App) handleHistoryKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc", "b":
		a.view = viewForm
	case "up", "k":
		if a.runCursor > 0 {
			a.runCursor--
		}
	case "down", "j":
		if a.runCursor < len(a.runsList)-1 {
			a.runCursor++
		}
	case "c":
		if run, ok := a.selectedRun(); ok && run.CSVSnapshot != "" {
			name := i18n.For(i18n.Normalize(run.Language)).RankedCSVFile
			return a, a.writeFileCmd(name, run.CSVSnapshot)
		}
	case "m":
		if run, ok := a.selectedRun(); ok && run.ReportSnapshot != "" {
			name := i18n.For(i18n.Normalize(run.Language)).ReportFile
			return a, a.writeFileCmd(name, run.ReportSnapshot)
		}
	case "backspace", "delete":
		if run, ok := a.selectedRun(); ok {
			return a, a.deleteRunCmd(run.ID)
		}
	}
	return a, nil
}

func (a *App) deleteRunCmd(id string) tea.Cmd {
	return tea.Sequence(
		func() tea.Msg {
			if a.runs == nil {
				return runSavedMsg{}
			}
			return runSavedMsg{err: a.runs.Delete(a.ctx, id)}
		},
		a.loadRunsCmd(),
	)
}

func (a *App) selectedRun() (history.Run, bool) {
	if a.runCursor < 0 || a.runCursor >= len(a.runsList) {
		return history.Run{}, false
	}
	return a.runsList[a.runCursor], true
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalFilePicker:
		switch m.String() {
		case "esc":
			a.modal = modalNone
			return a, nil
		case "ctrl+c", "q":
			return a, tea.Quit
		case "enter":
			item, ok := a.fileList.SelectedItem().(fileItem)
			a.modal = modalNone
			if !ok || item.name == "" {
				return a, nil
			}
			path := filepath.Join(a.basePath, item.name)
			data, err := os.ReadFile(path)
			if err != nil {
				a.status = fmt.Sprintf("read error: %v", err)
				return a, nil
			}
			a.st.SelectFile(item.name, data)
			return a, nil
		}
		var cmd tea.Cmd
		a.fileList, cmd = a.fileList.Update(m)
		return a, cmd

	case modalEditField, modalFeedback, modalFilter:
		switch m.Type {
		case tea.KeyEsc:
			a.modal = modalNone
			a.inputBuffer = ""
			return a, nil
		case tea.KeyEnter:
			a.commitModalInput()
			return a, nil
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			if len(a.inputBuffer) > 0 {
				runes := []rune(a.inputBuffer)
				a.inputBuffer = string(runes[:len(runes)-1])
			}
			if a.modal == modalFilter {
				a.applyFilter(a.inputBuffer)
			}
		case tea.KeySpace:
			a.inputBuffer += " "
		case tea.KeyRunes:
			a.inputBuffer += string(m.Runes)
			if a.modal == modalFilter {
				a.applyFilter(a.inputBuffer)
			}
		}
	}
	return a, nil
}

func (a *App) commitModalInput() {
	text := strings.TrimSpace(a.inputBuffer)
	mode := a.modal
	a.modal = modalNone
	a.inputBuffer = ""
	switch mode {
	case modalFeedback:
		a.feedback = text
	case modalFilter:
		a.applyFilter(text)
	case modalEditField:
		switch a.editingField {
		case fieldStates:
			a.st.Params.TargetStates = text
		case fieldBrand:
			a.st.Params.BrandName = text
		case fieldPositioning:
			a.st.Params.Positioning = text
		case fieldTone:
			a.st.Params.Tone = text
		case fieldAILimit:
			// forwarded verbatim to the backend, so only parse, never clamp
			if n, err := strconv.Atoi(text); err == nil {
				a.st.Params.AILimit = n
			}
		}
	}
}

func (a *App) applyFilter(query string) {
	a.filterQuery = query
	a.leadCursor = 0
}

// visibleLeads maps the current filter to absolute lead indexes.
func (a *App) visibleLeads() []int {
	if a.st.Result == nil {
		return nil
	}
	return filterLeads(a.st.Result.Leads, a.filterQuery)
}
