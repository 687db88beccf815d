package audit

import (
	"context"
	"fmt"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// iamAuditor flags console users without MFA and access keys past rotation
// age. Per-user detail failures skip that user and keep enumerating.
type iamAuditor struct{}

func (iamAuditor) Name() string { return "iam" }

func (iamAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	users, err := run.Client.ListUsers(ctx)
	if err != nil {
		return failedSummary(run, "iam", models.KindIAMUser, err), nil
	}

	summary := models.NewServiceSummary()
	noMFA, oldKeys := 0, 0
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if devices, err := run.Client.ListMFADevices(ctx, user.UserName); err == nil && devices == 0 {
			noMFA++
			run.Store.Add(run.finding(models.KindIAMUser, user.UserName,
				models.CodeIAMUserNoMFA, models.SeverityHigh,
				fmt.Sprintf("User %s has no MFA device registered", user.UserName),
				"Require an MFA device for the user or remove console access", 0))
		}

		keys, err := run.Client.ListAccessKeys(ctx, user.UserName)
		if err != nil {
			continue
		}
		for _, key := range keys {
			if run.olderThan(key.CreateDate, oldAccessKeyAge) {
				oldKeys++
				run.Store.Add(run.finding(models.KindIAMAccessKey, key.AccessKeyID,
					models.CodeOldAccessKey, models.SeverityMedium,
					fmt.Sprintf("Access key %s of user %s was created on %s and is overdue for rotation",
						key.AccessKeyID, user.UserName, key.CreateDate.Format("2006-01-02")),
					"Rotate the access key and update its consumers", 0))
			}
		}
	}

	if roles, err := run.Client.ListRoles(ctx); err == nil {
		summary.SetCount("roles", len(roles))
	}
	if policies, err := run.Client.ListPolicies(ctx); err == nil {
		summary.SetCount("customer_policies", len(policies))
	}

	summary.SetCount("total_resources", len(users))
	summary.SetCount("users_without_mfa", noMFA)
	summary.SetCount("old_access_keys", oldKeys)
	return summary, nil
}
