package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// ListTopics pages through all SNS topic ARNs in the region.
func (c *ClientSet) ListTopics(ctx context.Context) ([]string, error) {
	return call(ctx, "sns.ListTopics", func(ctx context.Context) ([]string, error) {
		paginator := sns.NewListTopicsPaginator(c.SNS, &sns.ListTopicsInput{})
		var arns []string
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, t := range page.Topics {
				arns = append(arns, awssdk.ToString(t.TopicArn))
			}
		}
		return arns, nil
	})
}

// ListQueues pages through all SQS queue URLs in the region.
func (c *ClientSet) ListQueues(ctx context.Context) ([]string, error) {
	return call(ctx, "sqs.ListQueues", func(ctx context.Context) ([]string, error) {
		paginator := sqs.NewListQueuesPaginator(c.SQS, &sqs.ListQueuesInput{})
		var urls []string
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			urls = append(urls, page.QueueUrls...)
		}
		return urls, nil
	})
}

// ListRules lists all EventBridge rules on the default event bus.
func (c *ClientSet) ListRules(ctx context.Context) ([]models.EventRule, error) {
	return call(ctx, "eventbridge.ListRules", func(ctx context.Context) ([]models.EventRule, error) {
		var rules []models.EventRule
		var next *string
		for {
			out, err := c.EventBridge.ListRules(ctx, &eventbridge.ListRulesInput{NextToken: next})
			if err != nil {
				return nil, err
			}
			for _, r := range out.Rules {
				rules = append(rules, models.EventRule{
					Name:  awssdk.ToString(r.Name),
					State: string(r.State),
				})
			}
			if out.NextToken == nil {
				break
			}
			next = out.NextToken
		}
		return rules, nil
	})
}
