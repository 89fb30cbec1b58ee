package i18n

import "strings"

// Lang selects a user-facing string table.
type Lang string

const (
	EN Lang = "EN"
	CN Lang = "CN"
)

// Normalize maps arbitrary input to a supported language, defaulting to EN.
func Normalize(s string) Lang {
	if strings.ToUpper(strings.TrimSpace(s)) == string(CN) {
		return CN
	}
	return EN
}

// Defaults holds the language-specific form defaults.
type Defaults struct {
	Positioning string
	Tone        string
}

// FormDefaults returns the positioning/tone defaults for a language.
func FormDefaults(lang Lang) Defaults {
	if lang == CN {
		return Defaults{
			Positioning: "面向住宅、软装与精品酒店场景的中高端家具与灯具供应方案。",
			Tone:        "专业、务实、可信",
		}
	}
	return Defaults{
		Positioning: "Mid-to-high-end furniture and lighting for residential, staging, and boutique hospitality projects.",
		Tone:        "confident, practical, consultative",
	}
}

// Messages is the user-facing string table for one language.
type Messages struct {
	AppTitle      string
	APIStatus     string
	Connected     string
	Unavailable   string
	AIMode        string
	BackendReady  string
	TemplateOnly  string
	LeadCSV       string
	LoadSample    string
	Template      string
	NoFile        string
	TargetStates  string
	BrandName     string
	Positioning   string
	Tone          string
	UseAI         string
	AILeadLimit   string
	Processing    string
	RunLeadIntel  string
	TotalLeads    string
	AverageScore  string
	TierDist      string
	TopStates     string
	RankedLeads   string
	LeadDetail    string
	History       string
	Company       string
	State         string
	Score         string
	Tier          string
	Reason        string
	NoWebsite     string
	Subject       string
	OutreachDraft string
	RefineFeed    string
	RefineHint    string
	Refining      string
	Copy          string
	Copied        string
	RunToInspect  string
	NoRunsYet     string

	LoadSampleError string
	SampleDataError string
	FileRequired    string
	ProcessFailed   string
	UnexpectedError string
	RefineRequired  string
	RefineFailed    string
	AIUnavailable   string
	CopyFailed      string
	NotAvailable    string

	RankedCSVFile    string
	LeadTemplateFile string
	ReportFile       string
	DraftPrefix      string

	BreakdownLabels map[string]string
}

// For returns the string table for a language.
func For(lang Lang) Messages {
	if lang == CN {
		return cn
	}
	return en
}

var en = Messages{
	AppTitle:      "Sunny Lead Intelligence Copilot",
	APIStatus:     "API",
	Connected:     "Connected",
	Unavailable:   "Unavailable",
	AIMode:        "AI Mode",
	BackendReady:  "Backend Ready",
	TemplateOnly:  "Template Only",
	LeadCSV:       "Lead CSV",
	LoadSample:    "Load Sample Data",
	Template:      "Download Lead Template",
	NoFile:        "No file selected",
	TargetStates:  "Target States",
	BrandName:     "Brand Name",
	Positioning:   "Positioning Context",
	Tone:          "Outreach Tone",
	UseAI:         "Use AI-generated outreach",
	AILeadLimit:   "AI Lead Limit",
	Processing:    "Processing...",
	RunLeadIntel:  "Run Lead Intelligence",
	TotalLeads:    "Total Leads",
	AverageScore:  "Average Score",
	TierDist:      "Tier Distribution",
	TopStates:     "Top States",
	RankedLeads:   "Ranked Leads",
	LeadDetail:    "Lead Detail",
	History:       "Run History",
	Company:       "Company",
	State:         "State",
	Score:         "Score",
	Tier:          "Tier",
	Reason:        "Reason",
	NoWebsite:     "No website",
	Subject:       "Subject",
	OutreachDraft: "Outreach Draft",
	RefineFeed:    "Refine Feedback",
	RefineHint:    "Example: make it shorter, friendlier, and add a stronger CTA.",
	Refining:      "Refining...",
	Copy:          "Copy",
	Copied:        "Copied",
	RunToInspect:  "Run the demo to inspect lead details.",
	NoRunsYet:     "No runs recorded yet.",

	LoadSampleError: "Could not load sample file",
	SampleDataError: "Failed to load sample data.",
	FileRequired:    "Please upload a CSV file (or load the sample file).",
	ProcessFailed:   "Failed to process leads.",
	UnexpectedError: "Unexpected error while processing leads.",
	RefineRequired:  "Please enter feedback before refining.",
	RefineFailed:    "Failed to refine outreach.",
	AIUnavailable:   "AI is not available on backend. Check OPENAI_API_KEY and restart backend.",
	CopyFailed:      "Could not copy to clipboard.",
	NotAvailable:    "N/A",

	RankedCSVFile:    "ranked_leads.csv",
	LeadTemplateFile: "lead_template.csv",
	ReportFile:       "top_leads_outreach.md",
	DraftPrefix:      "outreach",

	BreakdownLabels: map[string]string{
		"industry_fit":   "industry fit",
		"product_match":  "product match",
		"digital_signal": "digital signal",
		"scale_signal":   "scale signal",
		"intent_signal":  "intent signal",
		"penalties":      "penalties",
	},
}

var cn = Messages{
	AppTitle:      "Sunny 线索智能助手",
	APIStatus:     "接口状态",
	Connected:     "已连接",
	Unavailable:   "不可用",
	AIMode:        "AI 模式",
	BackendReady:  "后端可用",
	TemplateOnly:  "模板模式",
	LeadCSV:       "线索 CSV",
	LoadSample:    "加载示例数据",
	Template:      "下载线索模板",
	NoFile:        "未选择文件",
	TargetStates:  "目标州",
	BrandName:     "品牌名称",
	Positioning:   "业务定位说明",
	Tone:          "外联语气",
	UseAI:         "启用 AI 生成外联文案",
	AILeadLimit:   "AI 生成上限",
	Processing:    "处理中...",
	RunLeadIntel:  "运行线索智能分析",
	TotalLeads:    "线索总数",
	AverageScore:  "平均得分",
	TierDist:      "等级分布",
	TopStates:     "重点州",
	RankedLeads:   "线索排序结果",
	LeadDetail:    "线索详情",
	History:       "历史记录",
	Company:       "公司",
	State:         "州",
	Score:         "得分",
	Tier:          "等级",
	Reason:        "原因",
	NoWebsite:     "无网站",
	Subject:       "标题",
	OutreachDraft: "外联草稿",
	RefineFeed:    "优化反馈",
	RefineHint:    "示例：更简短、更自然，并加强明确行动号召。",
	Refining:      "优化中...",
	Copy:          "复制",
	Copied:        "已复制",
	RunToInspect:  "先运行演示以查看线索详情。",
	NoRunsYet:     "暂无历史记录。",

	LoadSampleError: "无法加载示例文件",
	SampleDataError: "加载示例数据失败。",
	FileRequired:    "请先上传 CSV 文件（或加载示例数据）。",
	ProcessFailed:   "线索处理失败。",
	UnexpectedError: "处理过程中出现异常。",
	RefineRequired:  "请先填写优化反馈。",
	RefineFailed:    "外联文案优化失败。",
	AIUnavailable:   "后端 AI 不可用，请检查 OPENAI_API_KEY 并重启后端。",
	CopyFailed:      "复制到剪贴板失败。",
	NotAvailable:    "暂无",

	RankedCSVFile:    "线索排序结果.csv",
	LeadTemplateFile: "线索模板.csv",
	ReportFile:       "高优先级线索外联草稿.md",
	DraftPrefix:      "外联草稿",

	BreakdownLabels: map[string]string{
		"industry_fit":   "行业匹配",
		"product_match":  "品类匹配",
		"digital_signal": "数字信号",
		"scale_signal":   "规模信号",
		"intent_signal":  "意向信号",
		"penalties":      "负向项",
	},
}
