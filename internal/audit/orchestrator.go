package audit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
	"github.com/pankaj-dahiya-devops/cloudpulse/internal/providers/aws"
)

const (
	defaultConcurrency = 8
	fullAuditTimeout   = 120 * time.Second
	quickAuditTimeout  = 10 * time.Second

	// spendWindow is the trailing period of the optional Cost Explorer block.
	spendWindow = 30 * 24 * time.Hour
)

// quickActions maps the cost-relevant codes to the one-line action shown in
// a quick report.
var quickActions = map[models.FindingCode]string{
	models.CodeUnattachedEBS:      "Delete unattached EBS volumes",
	models.CodeStoppedEC2Instance: "Terminate or archive stopped instances",
	models.CodeIdleEC2Instance:    "Stop or rightsize idle instances",
	models.CodeUnattachedEIP:      "Release unattached Elastic IPs",
}

// Orchestrator fans the service auditors out over the cloud client and
// collates their results into reports. Safe for concurrent use; every run
// gets a fresh finding store.
type Orchestrator struct {
	client      aws.CloudClient
	region      string
	logger      *zap.Logger
	concurrency int
	auditors    []ServiceAuditor
	// now is the run clock, replaceable in tests.
	now func() time.Time
}

// NewOrchestrator returns an orchestrator over the full auditor set.
func NewOrchestrator(client aws.CloudClient, region string, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		client:      client,
		region:      region,
		logger:      logger,
		concurrency: defaultConcurrency,
		auditors:    allAuditors(),
		now:         time.Now,
	}
}

// allAuditors returns the full auditor set in dispatch order.
func allAuditors() []ServiceAuditor {
	return []ServiceAuditor{
		ec2Auditor{},
		ebsAuditor{},
		eipAuditor{},
		sgAuditor{},
		s3Auditor{},
		rdsAuditor{},
		dynamoAuditor{},
		lambdaAuditor{},
		iamAuditor{},
		kmsAuditor{},
		vpcAuditor{},
		cloudfrontAuditor{},
		route53Auditor{},
		apigatewayAuditor{},
		snsAuditor{},
		sqsAuditor{},
		eventbridgeAuditor{},
		cloudwatchAuditor{},
		cloudformationAuditor{},
		elasticacheAuditor{},
		efsAuditor{},
		ecsAuditor{},
		batchAuditor{},
	}
}

// quickAuditors is the cost-only subset used by RunQuick.
func quickAuditors() []ServiceAuditor {
	return []ServiceAuditor{ec2Auditor{}, ebsAuditor{}, eipAuditor{}}
}

// RunFull audits every service family and returns the complete report,
// including the optional trailing-30-day spend block.
func (o *Orchestrator) RunFull(ctx context.Context) (*models.Report, error) {
	report, err := o.run(ctx, o.auditors, fullAuditTimeout, "full")
	if err != nil {
		return nil, err
	}
	o.attachSpend(ctx, report)
	return report, nil
}

// RunStructured audits every service family and projects the result into the
// dashboard shape partitioned by service and by finding code.
func (o *Orchestrator) RunStructured(ctx context.Context) (*models.StructuredReport, error) {
	report, err := o.run(ctx, o.auditors, fullAuditTimeout, "structured")
	if err != nil {
		return nil, err
	}
	return structuredFrom(report), nil
}

// RunQuick audits only the EC2, EBS, and Elastic IP families and returns the
// cost buckets with nonzero savings.
func (o *Orchestrator) RunQuick(ctx context.Context) (*models.QuickReport, error) {
	report, err := o.run(ctx, quickAuditors(), quickAuditTimeout, "quick")
	if err != nil {
		return nil, err
	}
	return quickFrom(report), nil
}

// run executes auditors concurrently under the mode deadline and collates
// one report. Per-auditor failures and panics degrade that service's summary;
// they never abort the run. Context cancellation yields a partial report with
// mode "cancelled".
func (o *Orchestrator) run(ctx context.Context, auditors []ServiceAuditor, timeout time.Duration, mode string) (*models.Report, error) {
	started := o.now().UTC()
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	run := &Run{
		Client: o.client,
		Store:  NewFindingStore(),
		Now:    started,
		Region: o.region,
	}

	accountID := ""
	if identity, err := o.client.GetCallerIdentity(runCtx); err == nil {
		accountID = identity.AccountID
	} else if aws.CategoryOf(err) == aws.ErrAuth {
		return nil, fmt.Errorf("cloud credentials rejected: %w", err)
	}

	var mu sync.Mutex
	services := make(map[string]models.ServiceSummary, len(auditors))

	// A plain group: auditor failures degrade their summary instead of
	// propagating, so no goroutine ever returns an error.
	var g errgroup.Group
	sem := make(chan struct{}, o.concurrency)
	for _, auditor := range auditors {
		auditor := auditor
		g.Go(func() (err error) {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-runCtx.Done():
				return nil
			}

			defer func() {
				if r := recover(); r != nil {
					o.logger.Error("auditor panicked",
						zap.String("service", auditor.Name()),
						zap.Any("panic", r))
					summary := models.NewServiceSummary()
					summary.SetError(fmt.Sprintf("internal failure: %v", r))
					mu.Lock()
					services[auditor.Name()] = summary
					mu.Unlock()
				}
				err = nil
			}()

			summary, auditErr := auditor.Audit(runCtx, run)
			if auditErr != nil && runCtx.Err() != nil {
				// Interrupted mid-enumeration. Leave the service absent so a
				// cancelled run is distinguishable from a clean empty one.
				return nil
			}
			if auditErr != nil {
				summary = models.NewServiceSummary()
				summary.SetError(auditErr.Error())
			}
			mu.Lock()
			services[auditor.Name()] = summary
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if runCtx.Err() != nil {
		mode = "cancelled"
	}

	report := &models.Report{
		Metadata: models.ReportMeta{
			AccountID:  accountID,
			Region:     o.region,
			StartedAt:  started,
			FinishedAt: o.now().UTC(),
			Mode:       mode,
		},
		Services:        services,
		Findings:        run.Store.All(),
		Recommendations: buildRecommendations(run.Store),
	}

	totalResources := 0
	for _, summary := range services {
		totalResources += summary.Count("total_resources")
	}
	report.Summary = models.ReportSummary{
		TotalResources:          totalResources,
		TotalFindings:           run.Store.Len(),
		CriticalFindings:        run.Store.Count(models.SeverityCritical) + run.Store.Count(models.SeverityHigh),
		EstimatedMonthlySavings: run.Store.TotalSavings(),
	}

	if dropped := run.Store.Dropped(); dropped > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("finding store saturated: %d findings dropped", dropped))
	}
	if dupes := run.Store.Duplicates(); dupes > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("%d duplicate findings collapsed", dupes))
	}

	o.logger.Info("audit run finished",
		zap.String("mode", report.Metadata.Mode),
		zap.Int("services", len(services)),
		zap.Int("findings", report.Summary.TotalFindings),
		zap.Float64("estimated_savings", report.Summary.EstimatedMonthlySavings))
	return report, nil
}

// attachSpend adds the trailing-30-day Cost Explorer block to report. Spend
// is advisory: any failure leaves the block absent.
func (o *Orchestrator) attachSpend(ctx context.Context, report *models.Report) {
	end := o.now().UTC()
	start := end.Add(-spendWindow)
	spend, err := o.client.GetSpendSummary(ctx, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		o.logger.Debug("spend summary unavailable", zap.Error(err))
		return
	}
	report.Spend = spend
}

// structuredFrom projects a full report into the dashboard shape.
func structuredFrom(report *models.Report) *models.StructuredReport {
	out := &models.StructuredReport{
		Timestamp: report.Metadata.FinishedAt,
		AccountID: report.Metadata.AccountID,
		Region:    report.Metadata.Region,
		Mode:      report.Metadata.Mode,
		Services:  report.Services,
		Issues:    make(map[string]models.IssueBucket),
		Warnings:  report.Warnings,
	}
	breakdown := make(map[string]float64)
	for _, f := range report.Findings {
		bucket := out.Issues[string(f.Code)]
		bucket.Count++
		bucket.EstimatedMonthlySavings += f.EstimatedMonthlySavings
		bucket.Resources = append(bucket.Resources, f.ResourceID)
		out.Issues[string(f.Code)] = bucket
		if f.EstimatedMonthlySavings > 0 {
			breakdown[string(f.Code)] += f.EstimatedMonthlySavings
		}
	}
	out.CostAnalysis = models.CostAnalysis{
		TotalPotentialSavings: report.Summary.EstimatedMonthlySavings,
		Breakdown:             breakdown,
	}
	return out
}

// quickFrom projects a quick-mode report into its cost buckets. Only buckets
// with nonzero savings appear.
func quickFrom(report *models.Report) *models.QuickReport {
	out := &models.QuickReport{
		Timestamp: report.Metadata.FinishedAt,
		Mode:      report.Metadata.Mode,
	}
	buckets := make(map[models.FindingCode]*models.QuickItem)
	order := make([]models.FindingCode, 0, 4)
	for _, f := range report.Findings {
		if f.EstimatedMonthlySavings <= 0 {
			continue
		}
		item, ok := buckets[f.Code]
		if !ok {
			item = &models.QuickItem{Code: f.Code, Action: quickActions[f.Code]}
			buckets[f.Code] = item
			order = append(order, f.Code)
		}
		item.Count++
		item.CostPerMonth += f.EstimatedMonthlySavings
		out.EstimatedMonthlyCost += f.EstimatedMonthlySavings
	}
	for _, code := range order {
		out.CriticalItems = append(out.CriticalItems, *buckets[code])
	}
	return out
}
