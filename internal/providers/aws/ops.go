package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cfntypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// DescribeAlarms pages through all CloudWatch metric alarms in the region.
func (c *ClientSet) DescribeAlarms(ctx context.Context) ([]models.Alarm, error) {
	return call(ctx, "cloudwatch.DescribeAlarms", func(ctx context.Context) ([]models.Alarm, error) {
		paginator := cloudwatch.NewDescribeAlarmsPaginator(c.CloudWatch, &cloudwatch.DescribeAlarmsInput{})
		var alarms []models.Alarm
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, a := range page.MetricAlarms {
				alarms = append(alarms, models.Alarm{
					Name:  awssdk.ToString(a.AlarmName),
					State: string(a.StateValue),
				})
			}
		}
		return alarms, nil
	})
}

// ListStacks pages through live CloudFormation stacks. Deleted stacks stay in
// the ListStacks history for 90 days and are filtered out here.
func (c *ClientSet) ListStacks(ctx context.Context) ([]models.Stack, error) {
	return call(ctx, "cloudformation.ListStacks", func(ctx context.Context) ([]models.Stack, error) {
		paginator := cloudformation.NewListStacksPaginator(c.CloudFormation, &cloudformation.ListStacksInput{})
		var stacks []models.Stack
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, s := range page.StackSummaries {
				if s.StackStatus == cfntypes.StackStatusDeleteComplete {
					continue
				}
				stacks = append(stacks, models.Stack{
					Name:   awssdk.ToString(s.StackName),
					Status: string(s.StackStatus),
				})
			}
		}
		return stacks, nil
	})
}
