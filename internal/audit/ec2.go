package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// ec2Auditor flags stopped and long-running idle instances.
type ec2Auditor struct{}

func (ec2Auditor) Name() string { return "ec2" }

func (ec2Auditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	instances, err := run.Client.DescribeInstances(ctx)
	if err != nil {
		return failedSummary(run, "ec2", models.KindEC2Instance, err), nil
	}

	summary := models.NewServiceSummary()
	running, stopped := 0, 0
	for _, inst := range instances {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		switch inst.State {
		case "running":
			running++
			if run.olderThan(inst.LaunchTime, idleInstanceAge) && !userInitiatedStop(inst.StateReason) {
				run.Store.Add(run.finding(models.KindEC2Instance, inst.InstanceID,
					models.CodeIdleEC2Instance, models.SeverityMedium,
					fmt.Sprintf("Instance %s (%s) has been running since %s with no sign of active use",
						inst.InstanceID, inst.InstanceType, inst.LaunchTime.Format("2006-01-02")),
					"Review the instance workload and stop or rightsize it",
					idleEC2PerMonth))
			}
		case "stopped":
			stopped++
			run.Store.Add(run.finding(models.KindEC2Instance, inst.InstanceID,
				models.CodeStoppedEC2Instance, models.SeverityLow,
				fmt.Sprintf("Instance %s (%s) is stopped but still incurs storage and address charges",
					inst.InstanceID, inst.InstanceType),
				"Terminate the instance or create an AMI and remove it",
				stoppedEC2PerMonth))
		}
	}

	images, err := run.Client.DescribeImages(ctx)
	if err == nil {
		summary.SetCount("owned_amis", len(images))
	}

	summary.SetCount("total_resources", len(instances))
	summary.SetCount("running", running)
	summary.SetCount("stopped", stopped)
	return summary, nil
}

// userInitiatedStop matches EC2's state-transition reason for deliberate
// shutdowns, e.g. "User initiated (2024-01-02 03:04:05 GMT)".
func userInitiatedStop(reason string) bool {
	return strings.Contains(reason, "User initiated")
}
