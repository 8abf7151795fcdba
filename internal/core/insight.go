package core

// Insight severity levels, in the order the dashboard renders them.
const (
	InsightInfo    InsightType = "info"
	InsightWarning InsightType = "warning"
	InsightSuccess InsightType = "success"
)

// Recommendation priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type (
	InsightType string
	Priority    string

	// Insight is a structured observation about the current report.
	// Rendering and localization are the caller's concern; Title and
	// Message carry plain text only.
	Insight struct {
		Type    InsightType `json:"type"`
		Title   string      `json:"title"`
		Message string      `json:"message"`
	}

	// Recommendation is an actionable suggestion derived from a report.
	Recommendation struct {
		Type     InsightType `json:"type"`
		Priority Priority    `json:"priority"`
		Title    string      `json:"title"`
		Message  string      `json:"message"`
	}
)
