package aws

import (
	"context"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/batch"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	lambdasvc "github.com/aws/aws-sdk-go-v2/service/lambda"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// lambdaTimeLayout matches the ISO 8601 variant Lambda uses for
// FunctionConfiguration.LastModified, e.g. "2024-03-01T10:20:30.000+0000".
const lambdaTimeLayout = "2006-01-02T15:04:05.999-0700"

// ListFunctions pages through all Lambda functions in the region.
func (c *ClientSet) ListFunctions(ctx context.Context) ([]models.LambdaFunction, error) {
	return call(ctx, "lambda.ListFunctions", func(ctx context.Context) ([]models.LambdaFunction, error) {
		paginator := lambdasvc.NewListFunctionsPaginator(c.Lambda, &lambdasvc.ListFunctionsInput{})
		var functions []models.LambdaFunction
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, fn := range page.Functions {
				f := models.LambdaFunction{
					Name:     awssdk.ToString(fn.FunctionName),
					Runtime:  string(fn.Runtime),
					MemoryMB: awssdk.ToInt32(fn.MemorySize),
				}
				if fn.LastModified != nil {
					if t, err := time.Parse(lambdaTimeLayout, *fn.LastModified); err == nil {
						f.LastModified = t
					}
				}
				functions = append(functions, f)
			}
		}
		return functions, nil
	})
}

// ListClusters lists all ECS clusters and describes them for task and service
// counters.
func (c *ClientSet) ListClusters(ctx context.Context) ([]models.ECSCluster, error) {
	return call(ctx, "ecs.ListClusters", func(ctx context.Context) ([]models.ECSCluster, error) {
		var arns []string
		var next *string
		for {
			out, err := c.ECS.ListClusters(ctx, &ecs.ListClustersInput{NextToken: next})
			if err != nil {
				return nil, err
			}
			arns = append(arns, out.ClusterArns...)
			if out.NextToken == nil {
				break
			}
			next = out.NextToken
		}
		if len(arns) == 0 {
			return nil, nil
		}

		desc, err := c.ECS.DescribeClusters(ctx, &ecs.DescribeClustersInput{Clusters: arns})
		if err != nil {
			return nil, err
		}
		clusters := make([]models.ECSCluster, 0, len(desc.Clusters))
		for _, cl := range desc.Clusters {
			clusters = append(clusters, models.ECSCluster{
				Name:           awssdk.ToString(cl.ClusterName),
				Status:         awssdk.ToString(cl.Status),
				RunningTasks:   cl.RunningTasksCount,
				ActiveServices: cl.ActiveServicesCount,
			})
		}
		return clusters, nil
	})
}

// DescribeJobQueues lists all Batch job queues in the region.
func (c *ClientSet) DescribeJobQueues(ctx context.Context) ([]models.BatchQueue, error) {
	return call(ctx, "batch.DescribeJobQueues", func(ctx context.Context) ([]models.BatchQueue, error) {
		var queues []models.BatchQueue
		var next *string
		for {
			out, err := c.Batch.DescribeJobQueues(ctx, &batch.DescribeJobQueuesInput{NextToken: next})
			if err != nil {
				return nil, err
			}
			for _, q := range out.JobQueues {
				queues = append(queues, models.BatchQueue{
					Name:   awssdk.ToString(q.JobQueueName),
					State:  string(q.State),
					Status: string(q.Status),
				})
			}
			if out.NextToken == nil {
				break
			}
			next = out.NextToken
		}
		return queues, nil
	})
}
