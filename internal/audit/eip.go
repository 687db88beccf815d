package audit

import (
	"context"
	"fmt"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// eipAuditor flags allocated but unassociated Elastic IPs.
type eipAuditor struct{}

func (eipAuditor) Name() string { return "elastic_ip" }

func (eipAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	addrs, err := run.Client.DescribeAddresses(ctx)
	if err != nil {
		return failedSummary(run, "elastic_ip", models.KindElasticIP, err), nil
	}

	summary := models.NewServiceSummary()
	unattached := 0
	for _, addr := range addrs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if addr.InstanceID == "" && addr.NetworkInterfaceID == "" {
			unattached++
			run.Store.Add(run.finding(models.KindElasticIP, addr.PublicIP,
				models.CodeUnattachedEIP, models.SeverityHigh,
				fmt.Sprintf("Elastic IP %s is allocated but not associated with anything", addr.PublicIP),
				"Release the address to stop the idle-address charge",
				unattachedEIPPerMonth))
		}
	}

	summary.SetCount("total_resources", len(addrs))
	summary.SetCount("unattached", unattached)
	return summary, nil
}
