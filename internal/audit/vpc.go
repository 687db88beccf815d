package audit

import (
	"context"
	"fmt"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// vpcAuditor flags default VPCs and counts the networking inventory.
type vpcAuditor struct{}

func (vpcAuditor) Name() string { return "vpc" }

func (vpcAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	vpcs, err := run.Client.DescribeVpcs(ctx)
	if err != nil {
		return failedSummary(run, "vpc", models.KindVPC, err), nil
	}

	summary := models.NewServiceSummary()
	defaults := 0
	for _, vpc := range vpcs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if vpc.IsDefault {
			defaults++
			run.Store.Add(run.finding(models.KindVPC, vpc.VpcID,
				models.CodeDefaultVPCInUse, models.SeverityInfo,
				fmt.Sprintf("Default VPC %s (%s) exists in this region", vpc.VpcID, vpc.CIDR),
				"Prefer purpose-built VPCs; delete the default VPC if unused", 0))
		}
	}

	if subnets, err := run.Client.DescribeSubnets(ctx); err == nil {
		summary.SetCount("subnets", len(subnets))
	}
	if tables, err := run.Client.DescribeRouteTables(ctx); err == nil {
		summary.SetCount("route_tables", len(tables))
	}
	if enis, err := run.Client.DescribeNetworkInterfaces(ctx); err == nil {
		available := 0
		for _, eni := range enis {
			if eni.Status == "available" {
				available++
			}
		}
		summary.SetCount("network_interfaces", len(enis))
		summary.SetCount("unused_interfaces", available)
	}

	summary.SetCount("total_resources", len(vpcs))
	summary.SetCount("default_vpcs", defaults)
	return summary, nil
}
