package audit

import (
	"sort"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// kindActions is the fixed action catalogue per resource kind. Kinds without
// an entry fall back to a generic review action.
var kindActions = map[models.ResourceKind][]string{
	models.KindEC2Instance: {
		"Review and terminate idle instances",
		"Stop or rightsize instances with low utilisation",
	},
	models.KindEBSVolume: {
		"Delete unattached volumes after snapshotting",
		"Migrate gp2 volumes to gp3",
	},
	models.KindEBSSnapshot: {
		"Delete snapshots older than a year",
	},
	models.KindElasticIP: {
		"Release unattached Elastic IPs",
	},
	models.KindSecurityGroup: {
		"Restrict world-open ingress to known CIDRs",
		"Prefer bastion hosts or SSM Session Manager over public SSH",
	},
	models.KindS3Bucket: {
		"Enable Block Public Access account-wide",
		"Enable default encryption on all buckets",
		"Delete empty buckets",
	},
	models.KindRDSInstance: {
		"Disable public accessibility on database instances",
		"Delete or restart stopped databases",
	},
	models.KindLambdaFunction: {
		"Delete functions that are no longer invoked",
	},
	models.KindIAMUser: {
		"Enforce MFA for all console users",
	},
	models.KindIAMAccessKey: {
		"Rotate access keys older than 90 days",
	},
	models.KindVPC: {
		"Delete unused default VPCs",
	},
}

var genericActions = []string{"Review the flagged resources"}

// buildRecommendations groups the run's findings by kind and emits one
// per-kind action block, ordered by descending estimated savings and then by
// kind for stability.
func buildRecommendations(store *FindingStore) []models.Recommendation {
	groups := store.GroupByKind()
	recs := make([]models.Recommendation, 0, len(groups))
	for kind, findings := range groups {
		rec := models.Recommendation{Kind: kind, TotalIssues: len(findings)}
		for _, f := range findings {
			if f.Severity == models.SeverityCritical || f.Severity == models.SeverityHigh {
				rec.CriticalIssues++
			}
			rec.EstimatedSavings += f.EstimatedMonthlySavings
		}
		actions, ok := kindActions[kind]
		if !ok {
			actions = genericActions
		}
		rec.Actions = actions
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].EstimatedSavings != recs[j].EstimatedSavings {
			return recs[i].EstimatedSavings > recs[j].EstimatedSavings
		}
		return recs[i].Kind < recs[j].Kind
	})
	return recs
}
