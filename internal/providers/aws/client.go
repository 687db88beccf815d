// Package aws provides the CloudClient capability interface consumed by the
// audit engine, its production implementation on top of the AWS SDK v2, and
// the categorised error taxonomy shared by both.
package aws

import (
	"context"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// CloudClient is the capability interface abstracting the per-service cloud
// APIs the auditors consume. Every method is strictly read-only, blocking,
// and returns either a result or a categorised *APIError.
//
// Implementations: ClientSet (production SDK wrapper, this package) and
// awsfake.Client (in-memory fake for tests).
type CloudClient interface {
	// EC2 family.
	DescribeInstances(ctx context.Context) ([]models.EC2Instance, error)
	DescribeVolumes(ctx context.Context) ([]models.EBSVolume, error)
	// DescribeSnapshots lists snapshots owned by the calling account.
	DescribeSnapshots(ctx context.Context) ([]models.EBSSnapshot, error)
	DescribeAddresses(ctx context.Context) ([]models.ElasticIP, error)
	DescribeSecurityGroups(ctx context.Context) ([]models.SecurityGroup, error)
	// DescribeImages lists AMIs owned by the calling account.
	DescribeImages(ctx context.Context) ([]models.MachineImage, error)

	// S3. Per-bucket probes are separate calls so a single denied probe does
	// not fail bucket enumeration.
	ListBuckets(ctx context.Context) ([]models.S3Bucket, error)
	// GetBucketEncryption reports whether default server-side encryption is
	// configured. A NOT_FOUND encryption configuration yields (false, nil).
	GetBucketEncryption(ctx context.Context, bucket string) (bool, error)
	// GetBucketPolicyStatus reports whether the bucket policy is public.
	// A missing bucket policy yields (false, nil).
	GetBucketPolicyStatus(ctx context.Context, bucket string) (bool, error)
	GetBucketVersioning(ctx context.Context, bucket string) (bool, error)
	// BucketHasObjects probes the bucket with ListObjectsV2(max_keys=1).
	BucketHasObjects(ctx context.Context, bucket string) (bool, error)

	// Databases and storage.
	DescribeDBInstances(ctx context.Context) ([]models.RDSInstance, error)
	ListTables(ctx context.Context) ([]models.DynamoDBTable, error)
	DescribeCacheClusters(ctx context.Context) ([]models.CacheCluster, error)
	DescribeFileSystems(ctx context.Context) ([]models.FileSystem, error)

	// Compute.
	ListFunctions(ctx context.Context) ([]models.LambdaFunction, error)
	ListClusters(ctx context.Context) ([]models.ECSCluster, error)
	DescribeJobQueues(ctx context.Context) ([]models.BatchQueue, error)

	// IAM and KMS.
	ListUsers(ctx context.Context) ([]models.IAMUser, error)
	// ListMFADevices returns the number of MFA devices registered for user.
	ListMFADevices(ctx context.Context, user string) (int, error)
	ListAccessKeys(ctx context.Context, user string) ([]models.IAMAccessKey, error)
	ListRoles(ctx context.Context) ([]models.IAMRole, error)
	// ListPolicies lists customer-managed (scope=Local) policies.
	ListPolicies(ctx context.Context) ([]models.IAMPolicy, error)
	ListKeys(ctx context.Context) ([]models.KMSKey, error)

	// Networking.
	DescribeVpcs(ctx context.Context) ([]models.VPC, error)
	DescribeSubnets(ctx context.Context) ([]models.Subnet, error)
	DescribeRouteTables(ctx context.Context) ([]models.RouteTable, error)
	DescribeNetworkInterfaces(ctx context.Context) ([]models.NetworkInterface, error)

	// Edge and API services.
	ListDistributions(ctx context.Context) ([]models.CloudFrontDistribution, error)
	ListHostedZones(ctx context.Context) ([]models.HostedZone, error)
	GetRestApis(ctx context.Context) ([]models.RestAPI, error)

	// Messaging and eventing.
	ListTopics(ctx context.Context) ([]string, error)
	ListQueues(ctx context.Context) ([]string, error)
	ListRules(ctx context.Context) ([]models.EventRule, error)

	// Operations.
	DescribeAlarms(ctx context.Context) ([]models.Alarm, error)
	ListStacks(ctx context.Context) ([]models.Stack, error)

	// Identity and billing.
	GetCallerIdentity(ctx context.Context) (models.CallerIdentity, error)
	// GetSpendSummary returns the Cost Explorer spend breakdown for
	// [start, end) dates in YYYY-MM-DD form.
	GetSpendSummary(ctx context.Context, start, end string) (*models.SpendSummary, error)
}
