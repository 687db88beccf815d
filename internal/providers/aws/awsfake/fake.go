// Package awsfake provides an in-memory CloudClient for tests. Fixture data
// is set directly on the exported fields; per-operation failures are injected
// with FailWith.
package awsfake

import (
	"context"
	"sync"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
	"github.com/pankaj-dahiya-devops/cloudpulse/internal/providers/aws"
)

// Client is a CloudClient backed by in-memory fixtures.
type Client struct {
	mu sync.Mutex

	Instances     []models.EC2Instance
	Volumes       []models.EBSVolume
	Snapshots     []models.EBSSnapshot
	Addresses     []models.ElasticIP
	Groups        []models.SecurityGroup
	Images        []models.MachineImage
	Buckets       []models.S3Bucket
	DBInstances   []models.RDSInstance
	Tables        []models.DynamoDBTable
	CacheClusters []models.CacheCluster
	FileSystems   []models.FileSystem
	Functions     []models.LambdaFunction
	Clusters      []models.ECSCluster
	JobQueues     []models.BatchQueue
	Users         []models.IAMUser
	Roles         []models.IAMRole
	Policies      []models.IAMPolicy
	Keys          []models.KMSKey
	Vpcs          []models.VPC
	Subnets       []models.Subnet
	RouteTables   []models.RouteTable
	Interfaces    []models.NetworkInterface
	Distributions []models.CloudFrontDistribution
	Zones         []models.HostedZone
	RestAPIs      []models.RestAPI
	Topics        []string
	Queues        []string
	Rules         []models.EventRule
	Alarms        []models.Alarm
	Stacks        []models.Stack

	// Per-user IAM detail.
	MFADevices map[string]int
	AccessKeys map[string][]models.IAMAccessKey

	// Per-bucket probe results.
	Encrypted    map[string]bool
	PublicPolicy map[string]bool
	Versioned    map[string]bool
	NonEmpty     map[string]bool

	Identity models.CallerIdentity
	Spend    *models.SpendSummary

	// errs maps operation name to the injected failure.
	errs map[string]error

	// calls counts invocations per operation name.
	calls map[string]int
}

// New returns an empty fake with a default caller identity.
func New() *Client {
	return &Client{
		Identity: models.CallerIdentity{
			AccountID: "123456789012",
			ARN:       "arn:aws:iam::123456789012:user/auditor",
			UserID:    "AIDAEXAMPLE",
		},
		MFADevices:   map[string]int{},
		AccessKeys:   map[string][]models.IAMAccessKey{},
		Encrypted:    map[string]bool{},
		PublicPolicy: map[string]bool{},
		Versioned:    map[string]bool{},
		NonEmpty:     map[string]bool{},
		errs:         map[string]error{},
		calls:        map[string]int{},
	}
}

// FailWith injects err for the named operation, e.g. "DescribeInstances".
// A categorised failure is built with aws.ErrPermission etc. via FailWithCategory.
func (c *Client) FailWith(op string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs[op] = err
}

// FailWithCategory injects a categorised *aws.APIError for op.
func (c *Client) FailWithCategory(op string, category aws.ErrorCategory, err error) {
	c.FailWith(op, &aws.APIError{Op: op, Category: category, Err: err})
}

// Calls reports how many times op was invoked.
func (c *Client) Calls(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[op]
}

func (c *Client) step(op string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[op]++
	return c.errs[op]
}

var _ aws.CloudClient = (*Client)(nil)

func (c *Client) DescribeInstances(ctx context.Context) ([]models.EC2Instance, error) {
	if err := c.step("DescribeInstances"); err != nil {
		return nil, err
	}
	return c.Instances, nil
}

func (c *Client) DescribeVolumes(ctx context.Context) ([]models.EBSVolume, error) {
	if err := c.step("DescribeVolumes"); err != nil {
		return nil, err
	}
	return c.Volumes, nil
}

func (c *Client) DescribeSnapshots(ctx context.Context) ([]models.EBSSnapshot, error) {
	if err := c.step("DescribeSnapshots"); err != nil {
		return nil, err
	}
	return c.Snapshots, nil
}

func (c *Client) DescribeAddresses(ctx context.Context) ([]models.ElasticIP, error) {
	if err := c.step("DescribeAddresses"); err != nil {
		return nil, err
	}
	return c.Addresses, nil
}

func (c *Client) DescribeSecurityGroups(ctx context.Context) ([]models.SecurityGroup, error) {
	if err := c.step("DescribeSecurityGroups"); err != nil {
		return nil, err
	}
	return c.Groups, nil
}

func (c *Client) DescribeImages(ctx context.Context) ([]models.MachineImage, error) {
	if err := c.step("DescribeImages"); err != nil {
		return nil, err
	}
	return c.Images, nil
}

func (c *Client) ListBuckets(ctx context.Context) ([]models.S3Bucket, error) {
	if err := c.step("ListBuckets"); err != nil {
		return nil, err
	}
	return c.Buckets, nil
}

func (c *Client) GetBucketEncryption(ctx context.Context, bucket string) (bool, error) {
	if err := c.step("GetBucketEncryption"); err != nil {
		return false, err
	}
	return c.Encrypted[bucket], nil
}

func (c *Client) GetBucketPolicyStatus(ctx context.Context, bucket string) (bool, error) {
	if err := c.step("GetBucketPolicyStatus"); err != nil {
		return false, err
	}
	return c.PublicPolicy[bucket], nil
}

func (c *Client) GetBucketVersioning(ctx context.Context, bucket string) (bool, error) {
	if err := c.step("GetBucketVersioning"); err != nil {
		return false, err
	}
	return c.Versioned[bucket], nil
}

func (c *Client) BucketHasObjects(ctx context.Context, bucket string) (bool, error) {
	if err := c.step("BucketHasObjects"); err != nil {
		return false, err
	}
	return c.NonEmpty[bucket], nil
}

func (c *Client) DescribeDBInstances(ctx context.Context) ([]models.RDSInstance, error) {
	if err := c.step("DescribeDBInstances"); err != nil {
		return nil, err
	}
	return c.DBInstances, nil
}

func (c *Client) ListTables(ctx context.Context) ([]models.DynamoDBTable, error) {
	if err := c.step("ListTables"); err != nil {
		return nil, err
	}
	return c.Tables, nil
}

func (c *Client) DescribeCacheClusters(ctx context.Context) ([]models.CacheCluster, error) {
	if err := c.step("DescribeCacheClusters"); err != nil {
		return nil, err
	}
	return c.CacheClusters, nil
}

func (c *Client) DescribeFileSystems(ctx context.Context) ([]models.FileSystem, error) {
	if err := c.step("DescribeFileSystems"); err != nil {
		return nil, err
	}
	return c.FileSystems, nil
}

func (c *Client) ListFunctions(ctx context.Context) ([]models.LambdaFunction, error) {
	if err := c.step("ListFunctions"); err != nil {
		return nil, err
	}
	return c.Functions, nil
}

func (c *Client) ListClusters(ctx context.Context) ([]models.ECSCluster, error) {
	if err := c.step("ListClusters"); err != nil {
		return nil, err
	}
	return c.Clusters, nil
}

func (c *Client) DescribeJobQueues(ctx context.Context) ([]models.BatchQueue, error) {
	if err := c.step("DescribeJobQueues"); err != nil {
		return nil, err
	}
	return c.JobQueues, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]models.IAMUser, error) {
	if err := c.step("ListUsers"); err != nil {
		return nil, err
	}
	return c.Users, nil
}

func (c *Client) ListMFADevices(ctx context.Context, user string) (int, error) {
	if err := c.step("ListMFADevices"); err != nil {
		return 0, err
	}
	return c.MFADevices[user], nil
}

func (c *Client) ListAccessKeys(ctx context.Context, user string) ([]models.IAMAccessKey, error) {
	if err := c.step("ListAccessKeys"); err != nil {
		return nil, err
	}
	return c.AccessKeys[user], nil
}

func (c *Client) ListRoles(ctx context.Context) ([]models.IAMRole, error) {
	if err := c.step("ListRoles"); err != nil {
		return nil, err
	}
	return c.Roles, nil
}

func (c *Client) ListPolicies(ctx context.Context) ([]models.IAMPolicy, error) {
	if err := c.step("ListPolicies"); err != nil {
		return nil, err
	}
	return c.Policies, nil
}

func (c *Client) ListKeys(ctx context.Context) ([]models.KMSKey, error) {
	if err := c.step("ListKeys"); err != nil {
		return nil, err
	}
	return c.Keys, nil
}

func (c *Client) DescribeVpcs(ctx context.Context) ([]models.VPC, error) {
	if err := c.step("DescribeVpcs"); err != nil {
		return nil, err
	}
	return c.Vpcs, nil
}

func (c *Client) DescribeSubnets(ctx context.Context) ([]models.Subnet, error) {
	if err := c.step("DescribeSubnets"); err != nil {
		return nil, err
	}
	return c.Subnets, nil
}

func (c *Client) DescribeRouteTables(ctx context.Context) ([]models.RouteTable, error) {
	if err := c.step("DescribeRouteTables"); err != nil {
		return nil, err
	}
	return c.RouteTables, nil
}

func (c *Client) DescribeNetworkInterfaces(ctx context.Context) ([]models.NetworkInterface, error) {
	if err := c.step("DescribeNetworkInterfaces"); err != nil {
		return nil, err
	}
	return c.Interfaces, nil
}

func (c *Client) ListDistributions(ctx context.Context) ([]models.CloudFrontDistribution, error) {
	if err := c.step("ListDistributions"); err != nil {
		return nil, err
	}
	return c.Distributions, nil
}

func (c *Client) ListHostedZones(ctx context.Context) ([]models.HostedZone, error) {
	if err := c.step("ListHostedZones"); err != nil {
		return nil, err
	}
	return c.Zones, nil
}

func (c *Client) GetRestApis(ctx context.Context) ([]models.RestAPI, error) {
	if err := c.step("GetRestApis"); err != nil {
		return nil, err
	}
	return c.RestAPIs, nil
}

func (c *Client) ListTopics(ctx context.Context) ([]string, error) {
	if err := c.step("ListTopics"); err != nil {
		return nil, err
	}
	return c.Topics, nil
}

func (c *Client) ListQueues(ctx context.Context) ([]string, error) {
	if err := c.step("ListQueues"); err != nil {
		return nil, err
	}
	return c.Queues, nil
}

func (c *Client) ListRules(ctx context.Context) ([]models.EventRule, error) {
	if err := c.step("ListRules"); err != nil {
		return nil, err
	}
	return c.Rules, nil
}

func (c *Client) DescribeAlarms(ctx context.Context) ([]models.Alarm, error) {
	if err := c.step("DescribeAlarms"); err != nil {
		return nil, err
	}
	return c.Alarms, nil
}

func (c *Client) ListStacks(ctx context.Context) ([]models.Stack, error) {
	if err := c.step("ListStacks"); err != nil {
		return nil, err
	}
	return c.Stacks, nil
}

func (c *Client) GetCallerIdentity(ctx context.Context) (models.CallerIdentity, error) {
	if err := c.step("GetCallerIdentity"); err != nil {
		return models.CallerIdentity{}, err
	}
	return c.Identity, nil
}

func (c *Client) GetSpendSummary(ctx context.Context, start, end string) (*models.SpendSummary, error) {
	if err := c.step("GetSpendSummary"); err != nil {
		return nil, err
	}
	return c.Spend, nil
}
