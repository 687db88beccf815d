package audit

import (
	"context"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// The auditors below are inventory-only: they count resources into their
// service summaries but the canonical finding catalogue defines no findings
// for them.

type dynamoAuditor struct{}

func (dynamoAuditor) Name() string { return "dynamodb" }

func (dynamoAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	tables, err := run.Client.ListTables(ctx)
	if err != nil {
		return failedSummary(run, "dynamodb", models.KindDynamoDBTable, err), nil
	}
	summary := models.NewServiceSummary()
	empty := 0
	var totalBytes int64
	for _, table := range tables {
		if table.ItemCount == 0 {
			empty++
		}
		totalBytes += table.SizeBytes
	}
	summary.SetCount("total_resources", len(tables))
	summary.SetCount("empty_tables", empty)
	summary.SetCount("total_size_mb", int(totalBytes/(1024*1024)))
	return summary, nil
}

type kmsAuditor struct{}

func (kmsAuditor) Name() string { return "kms" }

func (kmsAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	keys, err := run.Client.ListKeys(ctx)
	if err != nil {
		return failedSummary(run, "kms", models.KindKMSKey, err), nil
	}
	summary := models.NewServiceSummary()
	summary.SetCount("total_resources", len(keys))
	return summary, nil
}

type cloudfrontAuditor struct{}

func (cloudfrontAuditor) Name() string { return "cloudfront" }

func (cloudfrontAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	distributions, err := run.Client.ListDistributions(ctx)
	if err != nil {
		return failedSummary(run, "cloudfront", models.KindCloudFrontDistribution, err), nil
	}
	summary := models.NewServiceSummary()
	disabled := 0
	for _, d := range distributions {
		if !d.Enabled {
			disabled++
		}
	}
	summary.SetCount("total_resources", len(distributions))
	summary.SetCount("disabled", disabled)
	return summary, nil
}

type route53Auditor struct{}

func (route53Auditor) Name() string { return "route53" }

func (route53Auditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	zones, err := run.Client.ListHostedZones(ctx)
	if err != nil {
		return failedSummary(run, "route53", models.KindRoute53Zone, err), nil
	}
	summary := models.NewServiceSummary()
	private := 0
	for _, zone := range zones {
		if zone.Private {
			private++
		}
	}
	summary.SetCount("total_resources", len(zones))
	summary.SetCount("private_zones", private)
	return summary, nil
}

type apigatewayAuditor struct{}

func (apigatewayAuditor) Name() string { return "api_gateway" }

func (apigatewayAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	apis, err := run.Client.GetRestApis(ctx)
	if err != nil {
		return failedSummary(run, "api_gateway", models.KindAPIGateway, err), nil
	}
	summary := models.NewServiceSummary()
	summary.SetCount("total_resources", len(apis))
	return summary, nil
}

type snsAuditor struct{}

func (snsAuditor) Name() string { return "sns" }

func (snsAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	topics, err := run.Client.ListTopics(ctx)
	if err != nil {
		return failedSummary(run, "sns", models.KindSNSTopic, err), nil
	}
	summary := models.NewServiceSummary()
	summary.SetCount("total_resources", len(topics))
	return summary, nil
}

type sqsAuditor struct{}

func (sqsAuditor) Name() string { return "sqs" }

func (sqsAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	queues, err := run.Client.ListQueues(ctx)
	if err != nil {
		return failedSummary(run, "sqs", models.KindSQSQueue, err), nil
	}
	summary := models.NewServiceSummary()
	summary.SetCount("total_resources", len(queues))
	return summary, nil
}

type eventbridgeAuditor struct{}

func (eventbridgeAuditor) Name() string { return "eventbridge" }

func (eventbridgeAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	rules, err := run.Client.ListRules(ctx)
	if err != nil {
		return failedSummary(run, "eventbridge", models.KindEventBridgeRule, err), nil
	}
	summary := models.NewServiceSummary()
	disabled := 0
	for _, rule := range rules {
		if rule.State == "DISABLED" {
			disabled++
		}
	}
	summary.SetCount("total_resources", len(rules))
	summary.SetCount("disabled", disabled)
	return summary, nil
}

type cloudwatchAuditor struct{}

func (cloudwatchAuditor) Name() string { return "cloudwatch" }

func (cloudwatchAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	alarms, err := run.Client.DescribeAlarms(ctx)
	if err != nil {
		return failedSummary(run, "cloudwatch", models.KindCloudWatchAlarm, err), nil
	}
	summary := models.NewServiceSummary()
	inAlarm := 0
	for _, alarm := range alarms {
		if alarm.State == "ALARM" {
			inAlarm++
		}
	}
	summary.SetCount("total_resources", len(alarms))
	summary.SetCount("in_alarm", inAlarm)
	return summary, nil
}

type cloudformationAuditor struct{}

func (cloudformationAuditor) Name() string { return "cloudformation" }

func (cloudformationAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	stacks, err := run.Client.ListStacks(ctx)
	if err != nil {
		return failedSummary(run, "cloudformation", models.KindCloudFormationStack, err), nil
	}
	summary := models.NewServiceSummary()
	failed := 0
	for _, stack := range stacks {
		switch stack.Status {
		case "CREATE_FAILED", "ROLLBACK_COMPLETE", "ROLLBACK_FAILED", "UPDATE_ROLLBACK_FAILED":
			failed++
		}
	}
	summary.SetCount("total_resources", len(stacks))
	summary.SetCount("failed", failed)
	return summary, nil
}

type elasticacheAuditor struct{}

func (elasticacheAuditor) Name() string { return "elasticache" }

func (elasticacheAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	clusters, err := run.Client.DescribeCacheClusters(ctx)
	if err != nil {
		return failedSummary(run, "elasticache", models.KindElastiCacheCluster, err), nil
	}
	summary := models.NewServiceSummary()
	nodes := 0
	for _, cluster := range clusters {
		nodes += int(cluster.NumNodes)
	}
	summary.SetCount("total_resources", len(clusters))
	summary.SetCount("nodes", nodes)
	return summary, nil
}

type efsAuditor struct{}

func (efsAuditor) Name() string { return "efs" }

func (efsAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	systems, err := run.Client.DescribeFileSystems(ctx)
	if err != nil {
		return failedSummary(run, "efs", models.KindEFSFileSystem, err), nil
	}
	summary := models.NewServiceSummary()
	unencrypted := 0
	var totalBytes int64
	for _, fs := range systems {
		if !fs.Encrypted {
			unencrypted++
		}
		totalBytes += fs.SizeBytes
	}
	summary.SetCount("total_resources", len(systems))
	summary.SetCount("unencrypted", unencrypted)
	summary.SetCount("total_size_gb", int(totalBytes/(1024*1024*1024)))
	return summary, nil
}

type ecsAuditor struct{}

func (ecsAuditor) Name() string { return "ecs" }

func (ecsAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	clusters, err := run.Client.ListClusters(ctx)
	if err != nil {
		return failedSummary(run, "ecs", models.KindECSCluster, err), nil
	}
	summary := models.NewServiceSummary()
	idle := 0
	for _, cluster := range clusters {
		if cluster.RunningTasks == 0 && cluster.ActiveServices == 0 {
			idle++
		}
	}
	summary.SetCount("total_resources", len(clusters))
	summary.SetCount("idle_clusters", idle)
	return summary, nil
}

type batchAuditor struct{}

func (batchAuditor) Name() string { return "batch" }

func (batchAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	queues, err := run.Client.DescribeJobQueues(ctx)
	if err != nil {
		return failedSummary(run, "batch", models.KindBatchQueue, err), nil
	}
	summary := models.NewServiceSummary()
	disabled := 0
	for _, queue := range queues {
		if queue.State == "DISABLED" {
			disabled++
		}
	}
	summary.SetCount("total_resources", len(queues))
	summary.SetCount("disabled", disabled)
	return summary, nil
}
