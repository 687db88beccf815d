package audit

import (
	"context"
	"fmt"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// sgAuditor flags security groups that expose admin or database ports to the
// whole internet.
type sgAuditor struct{}

func (sgAuditor) Name() string { return "security_groups" }

func (sgAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	groups, err := run.Client.DescribeSecurityGroups(ctx)
	if err != nil {
		return failedSummary(run, "security_groups", models.KindSecurityGroup, err), nil
	}

	summary := models.NewServiceSummary()
	permissive := 0
	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		port, open := worldOpenRiskPort(group)
		if !open {
			continue
		}
		permissive++
		run.Store.Add(run.finding(models.KindSecurityGroup, group.GroupID,
			models.CodeOverlyPermissiveSG, models.SeverityHigh,
			fmt.Sprintf("Security group %s (%s) allows 0.0.0.0/0 on port %d",
				group.GroupID, group.GroupName, port),
			"Restrict the rule to known source CIDRs or a bastion security group", 0))
	}

	summary.SetCount("total_resources", len(groups))
	summary.SetCount("overly_permissive", permissive)
	return summary, nil
}

// worldOpenRiskPort returns the first risk port the group opens to
// 0.0.0.0/0, if any. A rule covers a port when its range includes it, and an
// all-protocols rule (protocol "-1") covers every port.
func worldOpenRiskPort(group models.SecurityGroup) (int32, bool) {
	for _, rule := range group.Ingress {
		worldOpen := false
		for _, cidr := range rule.CIDRs {
			if cidr == "0.0.0.0/0" {
				worldOpen = true
				break
			}
		}
		if !worldOpen {
			continue
		}
		for _, port := range riskPorts {
			if rule.Protocol == "-1" || (rule.FromPort <= port && port <= rule.ToPort) {
				return port, true
			}
		}
	}
	return 0, false
}
