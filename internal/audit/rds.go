package audit

import (
	"context"
	"fmt"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// rdsAuditor flags publicly accessible and stopped database instances.
type rdsAuditor struct{}

func (rdsAuditor) Name() string { return "rds" }

func (rdsAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	instances, err := run.Client.DescribeDBInstances(ctx)
	if err != nil {
		return failedSummary(run, "rds", models.KindRDSInstance, err), nil
	}

	summary := models.NewServiceSummary()
	public, stopped, unencrypted := 0, 0, 0
	for _, db := range instances {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if db.PubliclyAccessible {
			public++
			run.Store.Add(run.finding(models.KindRDSInstance, db.Identifier,
				models.CodePublicRDS, models.SeverityHigh,
				fmt.Sprintf("Database %s (%s) is publicly accessible", db.Identifier, db.Engine),
				"Disable public accessibility and route access through the VPC", 0))
		}
		if db.Status == "stopped" {
			stopped++
			run.Store.Add(run.finding(models.KindRDSInstance, db.Identifier,
				models.CodeStoppedRDS, models.SeverityMedium,
				fmt.Sprintf("Database %s is stopped but still pays for %d GB of storage",
					db.Identifier, db.AllocatedStorageGB),
				"Snapshot and delete the instance, or restart it if still needed", 0))
		}
		if !db.StorageEncrypted {
			unencrypted++
		}
	}

	summary.SetCount("total_resources", len(instances))
	summary.SetCount("public", public)
	summary.SetCount("stopped", stopped)
	summary.SetCount("unencrypted", unencrypted)
	return summary, nil
}
