package dto

// SubmitReportRequest is the public submission form. Type may be "auto",
// in which case the classifier decides.
type SubmitReportRequest struct {
	Type        string   `json:"type"`
	Value       string   `json:"value"`
	ReportType  string   `json:"report_type,omitempty"`
	Category    string   `json:"category,omitempty"`
	Region      string   `json:"region,omitempty"`
	Description string   `json:"description,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
}

// BackfillResult summarizes one backfill pass over approved reports.
type BackfillResult struct {
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}
