// Package audit implements the resource enumeration engine: the finding
// store, the per-service auditors, and the orchestrator that fans them out
// and collates reports.
package audit

import (
	"context"
	"time"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
	"github.com/pankaj-dahiya-devops/cloudpulse/internal/providers/aws"
)

// Run carries the per-run dependencies handed to every auditor. Now is
// captured once (UTC) when the run starts and is the sole clock for age
// comparisons and observed_at stamps, so one run partitions ages
// deterministically.
type Run struct {
	Client aws.CloudClient
	Store  *FindingStore
	Now    time.Time
	Region string
}

// ServiceAuditor enumerates one service family, emits findings into the run
// store, and returns the flat per-service counter block. Implementations
// hold no mutable state and are safe for concurrent use.
type ServiceAuditor interface {
	Name() string
	Audit(ctx context.Context, run *Run) (models.ServiceSummary, error)
}

// finding builds a Finding stamped with the run's region and clock.
func (r *Run) finding(kind models.ResourceKind, id string, code models.FindingCode, sev models.Severity, desc, rec string, savings float64) models.Finding {
	return models.Finding{
		Kind:                    kind,
		ResourceID:              id,
		Region:                  r.Region,
		Code:                    code,
		Severity:                sev,
		Description:             desc,
		Recommendation:          rec,
		EstimatedMonthlySavings: savings,
		ObservedAt:              r.Now,
	}
}

// failedSummary records an enumeration-wide failure for service. When the
// failure is a credential or permission problem the service additionally gets
// a SERVICE_SKIPPED marker finding so the report surfaces the gap in audit
// coverage; the marker's resource id is the service name, not a resource.
func failedSummary(run *Run, service string, kind models.ResourceKind, err error) models.ServiceSummary {
	summary := models.NewServiceSummary()
	summary.SetError(err.Error())
	switch aws.CategoryOf(err) {
	case aws.ErrPermission, aws.ErrAuth:
		run.Store.Add(run.finding(kind, service, models.CodeServiceSkipped, models.SeverityInfo,
			"Service "+service+" was skipped: insufficient permissions to enumerate it",
			"Grant the audit role read access to "+service+" or accept the coverage gap", 0))
	}
	return summary
}

// olderThan reports whether t is strictly older than age relative to the
// run clock. Zero times never qualify; a missing timestamp is a data-shape
// gap, not an old resource.
func (r *Run) olderThan(t time.Time, age time.Duration) bool {
	if t.IsZero() {
		return false
	}
	return r.Now.Sub(t) > age
}
