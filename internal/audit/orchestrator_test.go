package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
	"github.com/pankaj-dahiya-devops/cloudpulse/internal/providers/aws"
	"github.com/pankaj-dahiya-devops/cloudpulse/internal/providers/aws/awsfake"
)

func newTestOrchestrator(client aws.CloudClient) *Orchestrator {
	return NewOrchestrator(client, "ap-south-1", zap.NewNop())
}

func findingCodes(findings []models.Finding) map[models.FindingCode]int {
	counts := make(map[models.FindingCode]int)
	for _, f := range findings {
		counts[f.Code]++
	}
	return counts
}

func TestQuickReportUnattachedVolume(t *testing.T) {
	fake := awsfake.New()
	fake.Volumes = []models.EBSVolume{
		{VolumeID: "vol-abc", SizeGB: 50, VolumeType: "gp3", State: "available", Attachments: 0},
	}

	quick, err := newTestOrchestrator(fake).RunQuick(context.Background())
	if err != nil {
		t.Fatalf("RunQuick: %v", err)
	}
	if len(quick.CriticalItems) != 1 {
		t.Fatalf("critical_items = %+v, want exactly one bucket", quick.CriticalItems)
	}
	item := quick.CriticalItems[0]
	if item.Code != models.CodeUnattachedEBS {
		t.Errorf("bucket code = %s, want %s", item.Code, models.CodeUnattachedEBS)
	}
	if item.Count != 1 {
		t.Errorf("bucket count = %d, want 1", item.Count)
	}
	if item.CostPerMonth != 150.00 {
		t.Errorf("cost_per_month = %v, want 150.00", item.CostPerMonth)
	}
	if quick.EstimatedMonthlyCost != 150.00 {
		t.Errorf("estimated_monthly_cost = %v, want 150.00", quick.EstimatedMonthlyCost)
	}
	if quick.Mode != "quick" {
		t.Errorf("mode = %s, want quick", quick.Mode)
	}
}

func TestFullReportIdleAndStoppedInstances(t *testing.T) {
	fake := awsfake.New()
	fake.Instances = []models.EC2Instance{
		{InstanceID: "i-1", InstanceType: "t3.large", State: "running", LaunchTime: time.Now().UTC().Add(-10 * 24 * time.Hour)},
		{InstanceID: "i-2", InstanceType: "t3.small", State: "stopped"},
	}

	report, err := newTestOrchestrator(fake).RunFull(context.Background())
	if err != nil {
		t.Fatalf("RunFull: %v", err)
	}
	codes := findingCodes(report.Findings)
	if codes[models.CodeIdleEC2Instance] != 1 {
		t.Errorf("IDLE_EC2_INSTANCE count = %d, want 1", codes[models.CodeIdleEC2Instance])
	}
	if codes[models.CodeStoppedEC2Instance] != 1 {
		t.Errorf("STOPPED_EC2_INSTANCE count = %d, want 1", codes[models.CodeStoppedEC2Instance])
	}
	if report.Summary.EstimatedMonthlySavings != 210.00 {
		t.Errorf("estimated_monthly_savings = %v, want 210.00", report.Summary.EstimatedMonthlySavings)
	}

	// Savings aggregation is bit-exact over the findings.
	var sum float64
	for _, f := range report.Findings {
		sum += f.EstimatedMonthlySavings
	}
	if sum != report.Summary.EstimatedMonthlySavings {
		t.Errorf("finding savings sum %v != summary %v", sum, report.Summary.EstimatedMonthlySavings)
	}
}

func TestFullReportPublicUnencryptedBucket(t *testing.T) {
	fake := awsfake.New()
	fake.Buckets = []models.S3Bucket{{Name: "b1", CreationDate: time.Now().UTC()}}
	fake.PublicPolicy["b1"] = true
	fake.NonEmpty["b1"] = true

	report, err := newTestOrchestrator(fake).RunFull(context.Background())
	if err != nil {
		t.Fatalf("RunFull: %v", err)
	}
	codes := findingCodes(report.Findings)
	if codes[models.CodePublicS3Bucket] != 1 || codes[models.CodeUnencryptedS3] != 1 {
		t.Fatalf("bucket findings = %v, want one PUBLIC and one UNENCRYPTED", codes)
	}
	for _, f := range report.Findings {
		switch f.Code {
		case models.CodePublicS3Bucket:
			if f.Severity != models.SeverityCritical {
				t.Errorf("PUBLIC_S3_BUCKET severity = %s, want CRITICAL", f.Severity)
			}
		case models.CodeUnencryptedS3:
			if f.Severity != models.SeverityHigh {
				t.Errorf("UNENCRYPTED_S3_BUCKET severity = %s, want HIGH", f.Severity)
			}
		}
	}
	if report.Summary.CriticalFindings != 2 {
		t.Errorf("critical_findings = %d, want 2", report.Summary.CriticalFindings)
	}
}

func TestFullReportIAMWithoutMFAAndOldKey(t *testing.T) {
	fake := awsfake.New()
	fake.Users = []models.IAMUser{{UserName: "alice", CreateDate: time.Now().UTC().Add(-200 * 24 * time.Hour)}}
	fake.AccessKeys["alice"] = []models.IAMAccessKey{
		{AccessKeyID: "AKIAOLD", UserName: "alice", Status: "Active", CreateDate: time.Now().UTC().Add(-120 * 24 * time.Hour)},
	}

	report, err := newTestOrchestrator(fake).RunFull(context.Background())
	if err != nil {
		t.Fatalf("RunFull: %v", err)
	}
	codes := findingCodes(report.Findings)
	if codes[models.CodeIAMUserNoMFA] != 1 {
		t.Errorf("IAM_USER_NO_MFA count = %d, want 1", codes[models.CodeIAMUserNoMFA])
	}
	if codes[models.CodeOldAccessKey] != 1 {
		t.Errorf("OLD_ACCESS_KEY count = %d, want 1", codes[models.CodeOldAccessKey])
	}
}

func TestPermissionErrorIsolatesService(t *testing.T) {
	baseline := awsfake.New()
	baseline.Volumes = []models.EBSVolume{{VolumeID: "vol-1", SizeGB: 10, State: "available"}}

	report, err := newTestOrchestrator(baseline).RunFull(context.Background())
	if err != nil {
		t.Fatalf("baseline RunFull: %v", err)
	}
	baselineEBS := findingCodes(report.Findings)[models.CodeUnattachedEBS]

	denied := awsfake.New()
	denied.Volumes = baseline.Volumes
	denied.FailWithCategory("ListBuckets", aws.ErrPermission, errors.New("AccessDenied"))

	report, err = newTestOrchestrator(denied).RunFull(context.Background())
	if err != nil {
		t.Fatalf("RunFull with denied s3: %v", err)
	}
	if report.Services["s3"].Err() == "" {
		t.Error("services.s3.error not set after permission failure")
	}
	if got := report.Services["s3"].Count("total_resources"); got != 0 {
		t.Errorf("s3 total_resources = %d, want 0", got)
	}
	for _, f := range report.Findings {
		if f.Kind == models.KindS3Bucket && f.Code != models.CodeServiceSkipped {
			t.Errorf("unexpected S3 finding after permission failure: %+v", f)
		}
	}
	skips := findingCodes(report.Findings)[models.CodeServiceSkipped]
	if skips != 1 {
		t.Errorf("SERVICE_SKIPPED count = %d, want 1", skips)
	}
	if got := findingCodes(report.Findings)[models.CodeUnattachedEBS]; got != baselineEBS {
		t.Errorf("EBS findings changed from %d to %d when s3 failed", baselineEBS, got)
	}
}

func TestNoDuplicateFindingTriples(t *testing.T) {
	fake := awsfake.New()
	fake.Instances = []models.EC2Instance{
		{InstanceID: "i-dup", State: "stopped"},
		{InstanceID: "i-dup", State: "stopped"},
	}

	report, err := newTestOrchestrator(fake).RunFull(context.Background())
	if err != nil {
		t.Fatalf("RunFull: %v", err)
	}
	type triple struct {
		kind models.ResourceKind
		id   string
		code models.FindingCode
	}
	seen := make(map[triple]bool)
	for _, f := range report.Findings {
		key := triple{f.Kind, f.ResourceID, f.Code}
		if seen[key] {
			t.Errorf("duplicate finding triple %+v", key)
		}
		seen[key] = true
	}
	if len(report.Warnings) == 0 {
		t.Error("duplicate collapse should surface a warning")
	}
}

// completedAuditor finishes immediately without consulting its context and
// signals completion, so cancellation tests can order events.
type completedAuditor struct {
	name string
	done chan struct{}
}

func (c completedAuditor) Name() string { return c.name }

func (c completedAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	summary := models.NewServiceSummary()
	summary.SetCount("total_resources", 1)
	close(c.done)
	return summary, nil
}

// blockingAuditor parks until its context is cancelled, standing in for a
// slow service during cancellation tests.
type blockingAuditor struct{}

func (blockingAuditor) Name() string { return "iam" }

func (blockingAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestCancellationReturnsPartialReport(t *testing.T) {
	o := newTestOrchestrator(awsfake.New())
	ec2Done := completedAuditor{name: "ec2", done: make(chan struct{})}
	o.auditors = []ServiceAuditor{ec2Done, blockingAuditor{}}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-ec2Done.done
		cancel()
	}()

	report, err := o.RunFull(ctx)
	if err != nil {
		t.Fatalf("RunFull: %v", err)
	}
	if report.Metadata.Mode != "cancelled" {
		t.Errorf("mode = %s, want cancelled", report.Metadata.Mode)
	}
	if _, ok := report.Services["ec2"]; !ok {
		t.Error("completed ec2 summary missing from cancelled report")
	}
	if _, ok := report.Services["iam"]; ok {
		t.Error("interrupted service should be absent from the report")
	}
}

// panicAuditor blows up to exercise orchestrator recovery.
type panicAuditor struct{}

func (panicAuditor) Name() string { return "panicky" }

func (panicAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	panic("exploded")
}

func TestAuditorPanicDoesNotAbortRun(t *testing.T) {
	fake := awsfake.New()
	fake.Instances = []models.EC2Instance{{InstanceID: "i-1", State: "stopped"}}

	o := newTestOrchestrator(fake)
	o.auditors = []ServiceAuditor{panicAuditor{}, ec2Auditor{}}

	report, err := o.RunFull(context.Background())
	if err != nil {
		t.Fatalf("RunFull: %v", err)
	}
	if report.Services["panicky"].Err() == "" {
		t.Error("panicked service should carry an error summary")
	}
	if report.Services["ec2"].Count("stopped") != 1 {
		t.Error("healthy auditor result lost after sibling panic")
	}
	if report.Metadata.Mode != "full" {
		t.Errorf("mode = %s, want full", report.Metadata.Mode)
	}
}

func TestStructuredReportBuckets(t *testing.T) {
	fake := awsfake.New()
	fake.Volumes = []models.EBSVolume{
		{VolumeID: "vol-1", SizeGB: 10, State: "available"},
		{VolumeID: "vol-2", SizeGB: 20, State: "available"},
	}

	structured, err := newTestOrchestrator(fake).RunStructured(context.Background())
	if err != nil {
		t.Fatalf("RunStructured: %v", err)
	}
	bucket, ok := structured.Issues[string(models.CodeUnattachedEBS)]
	if !ok {
		t.Fatalf("no UNATTACHED_EBS bucket in %v", structured.Issues)
	}
	if bucket.Count != 2 {
		t.Errorf("bucket count = %d, want 2", bucket.Count)
	}
	if bucket.EstimatedMonthlySavings != 90.00 {
		t.Errorf("bucket savings = %v, want 90.00", bucket.EstimatedMonthlySavings)
	}
	if structured.CostAnalysis.TotalPotentialSavings != 90.00 {
		t.Errorf("total_potential_savings = %v, want 90.00", structured.CostAnalysis.TotalPotentialSavings)
	}
	if structured.Mode != "structured" {
		t.Errorf("mode = %s, want structured", structured.Mode)
	}
}

func TestSpendBlockAttachedWhenAvailable(t *testing.T) {
	fake := awsfake.New()
	fake.Spend = &models.SpendSummary{TotalCostUSD: 42.5}

	report, err := newTestOrchestrator(fake).RunFull(context.Background())
	if err != nil {
		t.Fatalf("RunFull: %v", err)
	}
	if report.Spend == nil || report.Spend.TotalCostUSD != 42.5 {
		t.Errorf("spend block = %+v, want total 42.5", report.Spend)
	}

	denied := awsfake.New()
	denied.FailWithCategory("GetSpendSummary", aws.ErrPermission, errors.New("AccessDenied"))
	report, err = newTestOrchestrator(denied).RunFull(context.Background())
	if err != nil {
		t.Fatalf("RunFull without ce access: %v", err)
	}
	if report.Spend != nil {
		t.Error("spend block should be absent when Cost Explorer is denied")
	}
}
