package session

import (
	"errors"
	"strings"

	"github.com/smby/sunny-demo/internal/api"
	"github.com/smby/sunny-demo/internal/i18n"
)

// Params are the form inputs sent with every processing request.
type Params struct {
	TargetStates string
	BrandName    string
	Positioning  string
	Tone         string
	Language     string
	UseAI        bool
	AILimit      int
}

// FileRef is the currently selected input file.
type FileRef struct {
	Name string
	Data []byte
}

// RefineTarget identifies the lead a refinement was started for. The patch is
// applied only while the identity still holds: same result generation, same
// index, same company name. Anything else is a stale response and is dropped.
type RefineTarget struct {
	Generation int
	Index      int
	Company    string
}

// StateCount is one normalized entry of the summary's top-states ranking.
type StateCount struct {
	State string
	Count int
}

// State is the whole session: form inputs, the selected file, the latest
// processing result, and the in-flight/error status. All mutation goes
// through the Apply*/Begin* transitions, which touch no I/O, so the machine
// is deterministic under test.
//
// Loading and Refining each guard one in-flight operation of their kind; the
// two kinds may overlap. A completion is applied only when its sequence (for
// submissions) or its captured target (for refinements) is still current.
type State struct {
	Params Params
	File   *FileRef

	Loading  bool
	Refining bool
	Error    string

	Result        *api.ProcessResult
	SelectedIndex int

	Health *api.Health // nil means unavailable

	submitSeq int // last issued submission sequence
	resultGen int // bumped on every wholesale result replacement
}

// New builds a session with form defaults for the configured language.
func New(p Params) State {
	lang := i18n.Normalize(p.Language)
	p.Language = string(lang)
	defaults := i18n.FormDefaults(lang)
	if p.Positioning == "" {
		p.Positioning = defaults.Positioning
	}
	if p.Tone == "" {
		p.Tone = defaults.Tone
	}
	return State{Params: p}
}

func (s *State) messages() i18n.Messages {
	return i18n.For(i18n.Normalize(s.Params.Language))
}

// SetLanguage switches the session language. Positioning and tone follow the
// switch only while they still sit at the other language's defaults, so user
// edits survive a toggle.
func (s *State) SetLanguage(lang string) {
	next := i18n.Normalize(lang)
	prev := i18n.Normalize(s.Params.Language)
	if next == prev {
		return
	}
	prevDefaults := i18n.FormDefaults(prev)
	nextDefaults := i18n.FormDefaults(next)
	if s.Params.Positioning == prevDefaults.Positioning {
		s.Params.Positioning = nextDefaults.Positioning
	}
	if s.Params.Tone == prevDefaults.Tone {
		s.Params.Tone = nextDefaults.Tone
	}
	s.Params.Language = string(next)
}

// SelectFile sets the current input file. No validation beyond existence of
// the reference itself.
func (s *State) SelectFile(name string, data []byte) {
	s.File = &FileRef{Name: name, Data: data}
}

// ApplySampleLoaded records the outcome of the sample fetch. On failure the
// prior file reference is left untouched.
func (s *State) ApplySampleLoaded(data []byte, err error) {
	if err != nil {
		s.Error = s.assetFailMessage(err)
		return
	}
	s.File = &FileRef{Name: "sample_leads.csv", Data: data}
	s.Error = ""
}

// ApplyTemplateFetched records a template retrieval failure. Success does not
// touch the error field; the save side effect belongs to the caller.
func (s *State) ApplyTemplateFetched(err error) {
	if err != nil {
		s.Error = s.assetFailMessage(err)
	}
}

// assetFailMessage localizes a static-asset fetch failure. An HTTP-level
// failure (bad status or no response) gets the specific could-not-load
// message; anything else falls back to the generic one.
func (s *State) assetFailMessage(err error) string {
	msgs := s.messages()
	var se *api.ServiceError
	var te *api.TransportError
	if errors.As(err, &se) || errors.As(err, &te) {
		return msgs.LoadSampleError
	}
	return msgs.SampleDataError
}

// ApplyHealth stores the startup probe outcome. Any failure counts as
// unavailable and gates AI refinement off.
func (s *State) ApplyHealth(h api.Health, err error) {
	if err != nil {
		s.Health = nil
		return
	}
	s.Health = &h
}

// AIEnabled reports the last known remote AI capability.
func (s *State) AIEnabled() bool {
	return s.Health != nil && s.Health.AIEnabled
}

// BeginSubmit validates the submission precondition and marks the session
// loading. It returns the sequence number the eventual completion must carry.
// With no file selected it fails before any network call.
func (s *State) BeginSubmit() (int, error) {
	s.Error = ""
	if s.File == nil {
		err := &ValidationError{Message: s.messages().FileRequired}
		s.Error = err.Message
		return 0, err
	}
	s.submitSeq++
	s.Loading = true
	return s.submitSeq, nil
}

// Form assembles the processing request from the selected file and the form
// parameters. AILimit is forwarded verbatim, never clamped here.
func (s *State) Form() api.ProcessForm {
	return api.ProcessForm{
		FileName:     s.File.Name,
		File:         s.File.Data,
		TargetStates: s.Params.TargetStates,
		BrandName:    s.Params.BrandName,
		Positioning:  s.Params.Positioning,
		Tone:         s.Params.Tone,
		Language:     s.Params.Language,
		UseAI:        s.Params.UseAI,
		AILimit:      s.Params.AILimit,
	}
}

// ApplySubmitResult settles a submission. Completions for anything but the
// latest issued sequence are discarded wholesale, so an overlapping older
// response can neither install its result nor clear the newer flight's flag.
// On success the result is replaced as a unit and the selection resets to
// the top rank. On failure the previous result stays untouched.
func (s *State) ApplySubmitResult(seq int, res *api.ProcessResult, err error) {
	if seq != s.submitSeq {
		return
	}
	s.Loading = false
	if err != nil {
		msgs := s.messages()
		var te *api.TransportError
		if errors.As(err, &te) {
			s.Error = msgs.UnexpectedError
		} else {
			s.Error = s.failMessage(err, msgs.ProcessFailed)
		}
		return
	}
	s.Result = res
	s.SelectedIndex = 0
	s.Error = ""
	s.resultGen++
}

// Select moves the lead selection. Out-of-range indexes are ignored.
func (s *State) Select(index int) {
	if s.Result == nil || index < 0 || index >= len(s.Result.Leads) {
		return
	}
	s.SelectedIndex = index
}

// CurrentLead returns the selected lead, or nil without a result.
func (s *State) CurrentLead() *api.Lead {
	if s.Result == nil || s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Result.Leads) {
		return nil
	}
	return &s.Result.Leads[s.SelectedIndex]
}

// BeginRefine validates the refinement preconditions in order — selected
// lead, non-empty feedback, remote AI capability — and captures the target
// identity. Each failure is reported before any network call.
func (s *State) BeginRefine(feedback string) (RefineTarget, error) {
	msgs := s.messages()
	lead := s.CurrentLead()
	if lead == nil {
		err := &ValidationError{Message: msgs.RunToInspect}
		s.Error = err.Message
		return RefineTarget{}, err
	}
	if strings.TrimSpace(feedback) == "" {
		err := &ValidationError{Message: msgs.RefineRequired}
		s.Error = err.Message
		return RefineTarget{}, err
	}
	if !s.AIEnabled() {
		err := &CapabilityError{Message: msgs.AIUnavailable}
		s.Error = err.Message
		return RefineTarget{}, err
	}
	s.Refining = true
	s.Error = ""
	return RefineTarget{
		Generation: s.resultGen,
		Index:      s.SelectedIndex,
		Company:    lead.CompanyName,
	}, nil
}

// RefineRequest builds the refinement payload for a target captured by
// BeginRefine.
func (s *State) RefineRequest(feedback string) api.RefineRequest {
	lead := s.CurrentLead()
	return api.RefineRequest{
		Language:       s.Params.Language,
		Tone:           s.Params.Tone,
		BrandName:      s.Params.BrandName,
		Positioning:    s.Params.Positioning,
		CompanyName:    lead.CompanyName,
		City:           lead.City,
		State:          lead.State,
		Services:       lead.Services,
		Description:    lead.Description,
		CurrentSubject: lead.OutreachSubject,
		CurrentMessage: lead.OutreachMessage,
		Feedback:       feedback,
	}
}

// ApplyRefineResult settles a refinement. The patch is total: when the
// captured identity no longer matches the current result — a wholesale
// replacement landed first, or the lead at that index changed — the response
// is dropped and nothing is corrupted. A successful patch rewrites exactly
// the targeted lead's outreach subject and message, in place.
func (s *State) ApplyRefineResult(target RefineTarget, resp api.RefineResponse, err error) {
	s.Refining = false
	if err != nil {
		s.Error = s.failMessage(err, s.messages().RefineFailed)
		return
	}
	if target.Generation != s.resultGen || s.Result == nil {
		return
	}
	if target.Index < 0 || target.Index >= len(s.Result.Leads) {
		return
	}
	lead := &s.Result.Leads[target.Index]
	if lead.CompanyName != target.Company {
		return
	}
	lead.OutreachSubject = resp.Subject
	lead.OutreachMessage = resp.Message
}

// TopStates normalizes the summary's {state: count} pairs. Malformed entries
// (empty or multi-key objects) render as the localized placeholder.
func (s *State) TopStates() []StateCount {
	if s.Result == nil {
		return nil
	}
	placeholder := s.messages().NotAvailable
	out := make([]StateCount, 0, len(s.Result.Summary.TopStates))
	for _, entry := range s.Result.Summary.TopStates {
		if len(entry) != 1 {
			out = append(out, StateCount{State: placeholder})
			continue
		}
		for state, count := range entry {
			out = append(out, StateCount{State: state, Count: count})
		}
	}
	return out
}

// failMessage reduces any error to one human-readable localized message.
// Server detail wins when present; precondition errors already carry their
// localized text; everything else falls back to the generic message.
func (s *State) failMessage(err error, fallback string) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var ce *CapabilityError
	if errors.As(err, &ce) {
		return ce.Message
	}
	if detail := api.Detail(err); detail != "" {
		return detail
	}
	return fallback
}
