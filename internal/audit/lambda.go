package audit

import (
	"context"
	"fmt"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// lambdaAuditor flags functions that have not been touched in a month.
type lambdaAuditor struct{}

func (lambdaAuditor) Name() string { return "lambda" }

func (lambdaAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	functions, err := run.Client.ListFunctions(ctx)
	if err != nil {
		return failedSummary(run, "lambda", models.KindLambdaFunction, err), nil
	}

	summary := models.NewServiceSummary()
	unused := 0
	for _, fn := range functions {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if run.olderThan(fn.LastModified, unusedLambdaAge) {
			unused++
			run.Store.Add(run.finding(models.KindLambdaFunction, fn.Name,
				models.CodeUnusedLambda, models.SeverityMedium,
				fmt.Sprintf("Function %s (%s) was last modified on %s",
					fn.Name, fn.Runtime, fn.LastModified.Format("2006-01-02")),
				"Confirm the function is still invoked, otherwise delete it", 0))
		}
	}

	summary.SetCount("total_resources", len(functions))
	summary.SetCount("stale", unused)
	return summary, nil
}
