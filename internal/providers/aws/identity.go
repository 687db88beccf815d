package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	iamsvc "github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// ListUsers pages through every IAM user in the account.
func (c *ClientSet) ListUsers(ctx context.Context) ([]models.IAMUser, error) {
	return call(ctx, "iam.ListUsers", func(ctx context.Context) ([]models.IAMUser, error) {
		paginator := iamsvc.NewListUsersPaginator(c.IAM, &iamsvc.ListUsersInput{})
		var users []models.IAMUser
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, u := range page.Users {
				user := models.IAMUser{UserName: awssdk.ToString(u.UserName)}
				if u.CreateDate != nil {
					user.CreateDate = *u.CreateDate
				}
				users = append(users, user)
			}
		}
		return users, nil
	})
}

// ListMFADevices returns the number of MFA devices registered for user.
func (c *ClientSet) ListMFADevices(ctx context.Context, user string) (int, error) {
	return call(ctx, "iam.ListMFADevices", func(ctx context.Context) (int, error) {
		out, err := c.IAM.ListMFADevices(ctx, &iamsvc.ListMFADevicesInput{UserName: awssdk.String(user)})
		if err != nil {
			return 0, err
		}
		return len(out.MFADevices), nil
	})
}

// ListAccessKeys lists the access keys belonging to user.
func (c *ClientSet) ListAccessKeys(ctx context.Context, user string) ([]models.IAMAccessKey, error) {
	return call(ctx, "iam.ListAccessKeys", func(ctx context.Context) ([]models.IAMAccessKey, error) {
		out, err := c.IAM.ListAccessKeys(ctx, &iamsvc.ListAccessKeysInput{UserName: awssdk.String(user)})
		if err != nil {
			return nil, err
		}
		keys := make([]models.IAMAccessKey, 0, len(out.AccessKeyMetadata))
		for _, k := range out.AccessKeyMetadata {
			key := models.IAMAccessKey{
				AccessKeyID: awssdk.ToString(k.AccessKeyId),
				UserName:    awssdk.ToString(k.UserName),
				Status:      string(k.Status),
			}
			if k.CreateDate != nil {
				key.CreateDate = *k.CreateDate
			}
			keys = append(keys, key)
		}
		return keys, nil
	})
}

// ListRoles pages through every IAM role in the account.
func (c *ClientSet) ListRoles(ctx context.Context) ([]models.IAMRole, error) {
	return call(ctx, "iam.ListRoles", func(ctx context.Context) ([]models.IAMRole, error) {
		paginator := iamsvc.NewListRolesPaginator(c.IAM, &iamsvc.ListRolesInput{})
		var roles []models.IAMRole
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, r := range page.Roles {
				role := models.IAMRole{RoleName: awssdk.ToString(r.RoleName)}
				if r.CreateDate != nil {
					role.CreateDate = *r.CreateDate
				}
				roles = append(roles, role)
			}
		}
		return roles, nil
	})
}

// ListPolicies pages through customer-managed policies only. AWS-managed
// policies are noise for an account audit.
func (c *ClientSet) ListPolicies(ctx context.Context) ([]models.IAMPolicy, error) {
	return call(ctx, "iam.ListPolicies", func(ctx context.Context) ([]models.IAMPolicy, error) {
		input := &iamsvc.ListPoliciesInput{Scope: iamtypes.PolicyScopeTypeLocal}
		paginator := iamsvc.NewListPoliciesPaginator(c.IAM, input)
		var policies []models.IAMPolicy
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, p := range page.Policies {
				policies = append(policies, models.IAMPolicy{
					PolicyName:      awssdk.ToString(p.PolicyName),
					AttachmentCount: awssdk.ToInt32(p.AttachmentCount),
				})
			}
		}
		return policies, nil
	})
}

// ListKeys pages through every KMS key in the region.
func (c *ClientSet) ListKeys(ctx context.Context) ([]models.KMSKey, error) {
	return call(ctx, "kms.ListKeys", func(ctx context.Context) ([]models.KMSKey, error) {
		paginator := kms.NewListKeysPaginator(c.KMS, &kms.ListKeysInput{})
		var keys []models.KMSKey
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, k := range page.Keys {
				keys = append(keys, models.KMSKey{KeyID: awssdk.ToString(k.KeyId)})
			}
		}
		return keys, nil
	})
}

// GetCallerIdentity resolves the account and principal behind the configured
// credentials. It doubles as the cheapest possible credential check.
func (c *ClientSet) GetCallerIdentity(ctx context.Context) (models.CallerIdentity, error) {
	return call(ctx, "sts.GetCallerIdentity", func(ctx context.Context) (models.CallerIdentity, error) {
		out, err := c.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
		if err != nil {
			return models.CallerIdentity{}, err
		}
		return models.CallerIdentity{
			AccountID: awssdk.ToString(out.Account),
			ARN:       awssdk.ToString(out.Arn),
			UserID:    awssdk.ToString(out.UserId),
		}, nil
	})
}
