package aws

import (
	"context"
	"sort"
	"strconv"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	ce "github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// GetSpendSummary fetches the unblended cost for [start, end) grouped by
// service from Cost Explorer. Dates are YYYY-MM-DD. The per-service lines are
// returned sorted by descending cost.
func (c *ClientSet) GetSpendSummary(ctx context.Context, start, end string) (*models.SpendSummary, error) {
	return call(ctx, "ce.GetCostAndUsage", func(ctx context.Context) (*models.SpendSummary, error) {
		out, err := c.CE.GetCostAndUsage(ctx, &ce.GetCostAndUsageInput{
			TimePeriod: &cetypes.DateInterval{
				Start: awssdk.String(start),
				End:   awssdk.String(end),
			},
			Granularity: cetypes.GranularityMonthly,
			Metrics:     []string{"UnblendedCost"},
			GroupBy: []cetypes.GroupDefinition{
				{Type: cetypes.GroupDefinitionTypeDimension, Key: awssdk.String("SERVICE")},
			},
		})
		if err != nil {
			return nil, err
		}

		summary := &models.SpendSummary{PeriodStart: start, PeriodEnd: end}
		byService := map[string]float64{}
		for _, result := range out.ResultsByTime {
			for _, group := range result.Groups {
				if len(group.Keys) == 0 {
					continue
				}
				metric, ok := group.Metrics["UnblendedCost"]
				if !ok {
					continue
				}
				amount, err := strconv.ParseFloat(awssdk.ToString(metric.Amount), 64)
				if err != nil {
					continue
				}
				byService[group.Keys[0]] += amount
				summary.TotalCostUSD += amount
			}
		}
		for service, cost := range byService {
			summary.ServiceBreakdown = append(summary.ServiceBreakdown, models.SpendService{
				Service: service,
				CostUSD: cost,
			})
		}
		sort.Slice(summary.ServiceBreakdown, func(i, j int) bool {
			a, b := summary.ServiceBreakdown[i], summary.ServiceBreakdown[j]
			if a.CostUSD != b.CostUSD {
				return a.CostUSD > b.CostUSD
			}
			return a.Service < b.Service
		})
		return summary, nil
	})
}
