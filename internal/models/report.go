package models

import "time"

// ServiceSummary is the flat per-service counter block of a report.
// Values are numbers or strings only; a summary never references a Finding
// (cross-linking is by kind + resource_id).
type ServiceSummary map[string]any

// NewServiceSummary returns an empty summary ready for counter population.
func NewServiceSummary() ServiceSummary {
	return make(ServiceSummary)
}

// SetCount records an integer counter.
func (s ServiceSummary) SetCount(key string, n int) {
	s[key] = n
}

// SetError records the enumeration-wide failure message for this service.
func (s ServiceSummary) SetError(msg string) {
	s["error"] = msg
}

// Err returns the recorded enumeration error, or "" when the service
// enumerated cleanly.
func (s ServiceSummary) Err() string {
	if s == nil {
		return ""
	}
	if v, ok := s["error"].(string); ok {
		return v
	}
	return ""
}

// Count returns the named integer counter, or 0 when absent.
func (s ServiceSummary) Count(key string) int {
	if v, ok := s[key].(int); ok {
		return v
	}
	return 0
}

// ReportMeta describes one audit run.
type ReportMeta struct {
	AccountID  string    `json:"account_id"`
	Region     string    `json:"region"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	// Mode is "full", "quick", "structured", or "cancelled".
	Mode string `json:"mode"`
}

// ReportSummary aggregates counts and totals across all findings of a run.
type ReportSummary struct {
	TotalResources int `json:"total_resources"`
	TotalFindings  int `json:"total_findings"`
	// CriticalFindings counts CRITICAL plus HIGH findings.
	CriticalFindings        int     `json:"critical_findings"`
	EstimatedMonthlySavings float64 `json:"estimated_monthly_savings"`
}

// Recommendation is a per-kind action block derived from the run's findings.
type Recommendation struct {
	Kind             ResourceKind `json:"kind"`
	TotalIssues      int          `json:"total_issues"`
	CriticalIssues   int          `json:"critical_issues"`
	EstimatedSavings float64      `json:"estimated_savings"`
	Actions          []string     `json:"actions"`
}

// Report is the root aggregate of one audit run. Immutable once the
// orchestrator returns it.
type Report struct {
	Metadata        ReportMeta                `json:"metadata"`
	Services        map[string]ServiceSummary `json:"services"`
	Findings        []Finding                 `json:"findings"`
	Summary         ReportSummary             `json:"summary"`
	Recommendations []Recommendation          `json:"recommendations"`
	// Warnings flags internal degradations (store saturation, duplicate drops).
	Warnings []string `json:"warnings,omitempty"`
	// Spend is the optional trailing-30-day account spend breakdown.
	Spend *SpendSummary `json:"spend,omitempty"`
}

// IssueBucket groups one run's findings that share a finding code.
type IssueBucket struct {
	Count                   int      `json:"count"`
	EstimatedMonthlySavings float64  `json:"estimated_monthly_savings"`
	Resources               []string `json:"resources"`
}

// CostAnalysis is the savings roll-up of a structured report.
type CostAnalysis struct {
	TotalPotentialSavings float64            `json:"total_potential_savings"`
	Breakdown             map[string]float64 `json:"breakdown"`
}

// StructuredReport is the dashboard projection of a Report, partitioned by
// service family and by finding code.
type StructuredReport struct {
	Timestamp    time.Time                 `json:"timestamp"`
	AccountID    string                    `json:"account_id"`
	Region       string                    `json:"region"`
	Mode         string                    `json:"mode"`
	Services     map[string]ServiceSummary `json:"services"`
	Issues       map[string]IssueBucket    `json:"issues"`
	CostAnalysis CostAnalysis              `json:"cost_analysis"`
	Warnings     []string                  `json:"warnings,omitempty"`
}

// QuickItem is one cost bucket of a quick report.
type QuickItem struct {
	Code         FindingCode `json:"finding_code"`
	Count        int         `json:"count"`
	CostPerMonth float64     `json:"cost_per_month"`
	Action       string      `json:"action"`
}

// QuickReport is the cost-only projection produced by the EC2/EBS/EIP
// auditors. CriticalItems contains only buckets with nonzero savings.
type QuickReport struct {
	Timestamp            time.Time   `json:"timestamp"`
	Mode                 string      `json:"mode"`
	CriticalItems        []QuickItem `json:"critical_items"`
	EstimatedMonthlyCost float64     `json:"estimated_monthly_cost"`
}
