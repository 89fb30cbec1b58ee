package api

// Wire types for the lead-intelligence backend. Field names follow the
// service's JSON contract exactly.

// Lead is one scored prospective account in rank order.
type Lead struct {
	CompanyName     string             `json:"company_name"`
	City            string             `json:"city"`
	State           string             `json:"state"`
	Website         string             `json:"website"`
	Source          string             `json:"source"`
	Services        string             `json:"services"`
	Description     string             `json:"description"`
	Score           int                `json:"score"`
	Tier            string             `json:"tier"`
	Reason          string             `json:"reason"`
	OutreachSubject string             `json:"outreach_subject"`
	OutreachMessage string             `json:"outreach_message"`
	Breakdown       map[string]float64 `json:"breakdown"`
}

// Summary aggregates one processing run. TopStates is a descending list of
// single-key {state: count} objects, at most five entries.
type Summary struct {
	TotalLeads   int              `json:"total_leads"`
	AverageScore float64          `json:"average_score"`
	TierA        int              `json:"tier_a"`
	TierB        int              `json:"tier_b"`
	TierC        int              `json:"tier_c"`
	TopStates    []map[string]int `json:"top_states"`
}

// ProcessResult is the full output of one scoring request.
type ProcessResult struct {
	BrandName        string  `json:"brand_name"`
	Language         string  `json:"language"`
	UseAI            bool    `json:"use_ai"`
	AIEnabled        bool    `json:"ai_enabled"`
	Leads            []Lead  `json:"leads"`
	Summary          Summary `json:"summary"`
	TopLeadsMarkdown string  `json:"top_leads_markdown"`
	GeneratedAt      string  `json:"generated_at"`
}

// Health is the backend availability report.
type Health struct {
	Status    string `json:"status"`
	Env       string `json:"env"`
	AIEnabled bool   `json:"ai_enabled"`
	Timestamp string `json:"timestamp"`
}

// ProcessForm carries the multipart fields for POST /api/process.
type ProcessForm struct {
	FileName     string
	File         []byte
	TargetStates string
	BrandName    string
	Positioning  string
	Tone         string
	Language     string
	UseAI        bool
	// AILimit is forwarded verbatim; the backend owns clamping semantics.
	AILimit int
}

// RefineRequest is the body for POST /api/refine-outreach.
type RefineRequest struct {
	Language       string `json:"language"`
	Tone           string `json:"tone"`
	BrandName      string `json:"brand_name"`
	Positioning    string `json:"positioning"`
	CompanyName    string `json:"company_name"`
	City           string `json:"city"`
	State          string `json:"state"`
	Services       string `json:"services"`
	Description    string `json:"description"`
	CurrentSubject string `json:"current_subject"`
	CurrentMessage string `json:"current_message"`
	Feedback       string `json:"feedback"`
}

// RefineResponse is the refreshed outreach draft.
type RefineResponse struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}
