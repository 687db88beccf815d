package models

import "time"

// Resource models returned by the CloudClient capability interface.
// Each struct carries only the fields the auditors evaluate; conversion from
// SDK shapes happens in the provider layer.

// EC2Instance is one EC2 instance as seen by DescribeInstances.
type EC2Instance struct {
	InstanceID   string    `json:"instance_id"`
	InstanceType string    `json:"instance_type"`
	State        string    `json:"state"`
	LaunchTime   time.Time `json:"launch_time"`
	// StateReason is the last state-transition reason reported by EC2,
	// e.g. "User initiated (2024-01-02 03:04:05 GMT)".
	StateReason string            `json:"state_reason,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
}

// EBSVolume is one EBS volume.
type EBSVolume struct {
	VolumeID    string    `json:"volume_id"`
	SizeGB      int32     `json:"size_gb"`
	VolumeType  string    `json:"volume_type"`
	State       string    `json:"state"`
	Attachments int       `json:"attachments"`
	CreateTime  time.Time `json:"create_time"`
}

// EBSSnapshot is one owned EBS snapshot.
type EBSSnapshot struct {
	SnapshotID  string    `json:"snapshot_id"`
	VolumeID    string    `json:"volume_id"`
	SizeGB      int32     `json:"size_gb"`
	StartTime   time.Time `json:"start_time"`
	Description string    `json:"description,omitempty"`
}

// ElasticIP is one allocated Elastic IP address.
type ElasticIP struct {
	PublicIP           string `json:"public_ip"`
	AllocationID       string `json:"allocation_id"`
	InstanceID         string `json:"instance_id,omitempty"`
	NetworkInterfaceID string `json:"network_interface_id,omitempty"`
}

// MachineImage is one self-owned AMI.
type MachineImage struct {
	ImageID      string `json:"image_id"`
	Name         string `json:"name"`
	CreationDate string `json:"creation_date"`
}

// SGRule is a single ingress rule on a security group.
type SGRule struct {
	Protocol string   `json:"protocol"`
	FromPort int32    `json:"from_port"`
	ToPort   int32    `json:"to_port"`
	CIDRs    []string `json:"cidrs"`
}

// SecurityGroup is one security group with its ingress rules.
type SecurityGroup struct {
	GroupID   string   `json:"group_id"`
	GroupName string   `json:"group_name"`
	Ingress   []SGRule `json:"ingress"`
}

// S3Bucket is one bucket together with the per-bucket probe results.
type S3Bucket struct {
	Name         string    `json:"name"`
	CreationDate time.Time `json:"creation_date"`
}

// RDSInstance is one RDS database instance.
type RDSInstance struct {
	Identifier         string `json:"identifier"`
	Engine             string `json:"engine"`
	InstanceClass      string `json:"instance_class"`
	Status             string `json:"status"`
	AllocatedStorageGB int32  `json:"allocated_storage_gb"`
	PubliclyAccessible bool   `json:"publicly_accessible"`
	MultiAZ            bool   `json:"multi_az"`
	StorageEncrypted   bool   `json:"storage_encrypted"`
}

// DynamoDBTable is one table with its described size counters.
type DynamoDBTable struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	ItemCount int64  `json:"item_count"`
	SizeBytes int64  `json:"size_bytes"`
}

// LambdaFunction is one Lambda function configuration.
type LambdaFunction struct {
	Name         string    `json:"name"`
	Runtime      string    `json:"runtime"`
	MemoryMB     int32     `json:"memory_mb"`
	LastModified time.Time `json:"last_modified"`
}

// IAMUser is one IAM user.
type IAMUser struct {
	UserName   string    `json:"user_name"`
	CreateDate time.Time `json:"create_date"`
}

// IAMAccessKey is one access key belonging to an IAM user.
type IAMAccessKey struct {
	AccessKeyID string    `json:"access_key_id"`
	UserName    string    `json:"user_name"`
	Status      string    `json:"status"`
	CreateDate  time.Time `json:"create_date"`
}

// IAMRole is one IAM role.
type IAMRole struct {
	RoleName   string    `json:"role_name"`
	CreateDate time.Time `json:"create_date"`
}

// IAMPolicy is one customer-managed IAM policy.
type IAMPolicy struct {
	PolicyName      string `json:"policy_name"`
	AttachmentCount int32  `json:"attachment_count"`
}

// KMSKey is one KMS key.
type KMSKey struct {
	KeyID string `json:"key_id"`
}

// VPC is one VPC.
type VPC struct {
	VpcID     string `json:"vpc_id"`
	CIDR      string `json:"cidr"`
	IsDefault bool   `json:"is_default"`
}

// Subnet is one VPC subnet.
type Subnet struct {
	SubnetID string `json:"subnet_id"`
	VpcID    string `json:"vpc_id"`
}

// RouteTable is one VPC route table.
type RouteTable struct {
	RouteTableID string `json:"route_table_id"`
	VpcID        string `json:"vpc_id"`
}

// NetworkInterface is one elastic network interface.
type NetworkInterface struct {
	InterfaceID string `json:"interface_id"`
	Status      string `json:"status"`
}

// CloudFrontDistribution is one distribution.
type CloudFrontDistribution struct {
	ID         string `json:"id"`
	DomainName string `json:"domain_name"`
	Enabled    bool   `json:"enabled"`
}

// HostedZone is one Route 53 hosted zone.
type HostedZone struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Private     bool   `json:"private"`
	RecordCount int64  `json:"record_count"`
}

// RestAPI is one API Gateway REST API.
type RestAPI struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CreatedDate time.Time `json:"created_date"`
}

// EventRule is one EventBridge rule.
type EventRule struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

// Alarm is one CloudWatch metric alarm.
type Alarm struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

// Stack is one CloudFormation stack summary.
type Stack struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// CacheCluster is one ElastiCache cluster.
type CacheCluster struct {
	ClusterID string `json:"cluster_id"`
	Engine    string `json:"engine"`
	Status    string `json:"status"`
	NodeType  string `json:"node_type"`
	NumNodes  int32  `json:"num_nodes"`
}

// FileSystem is one EFS file system.
type FileSystem struct {
	FileSystemID string `json:"file_system_id"`
	SizeBytes    int64  `json:"size_bytes"`
	Encrypted    bool   `json:"encrypted"`
	State        string `json:"state"`
}

// ECSCluster is one ECS cluster with its described counters.
type ECSCluster struct {
	Name           string `json:"name"`
	Status         string `json:"status"`
	RunningTasks   int32  `json:"running_tasks"`
	ActiveServices int32  `json:"active_services"`
}

// BatchQueue is one AWS Batch job queue.
type BatchQueue struct {
	Name   string `json:"name"`
	State  string `json:"state"`
	Status string `json:"status"`
}

// CallerIdentity is the STS identity of the audited credentials.
type CallerIdentity struct {
	AccountID string `json:"account_id"`
	ARN       string `json:"arn"`
	UserID    string `json:"user_id"`
}

// SpendService is one service line in the account spend summary.
type SpendService struct {
	Service string  `json:"service"`
	CostUSD float64 `json:"cost_usd"`
}

// SpendSummary is the trailing-window Cost Explorer account spend breakdown.
// It is advisory only and absent when the account lacks ce:GetCostAndUsage.
type SpendSummary struct {
	PeriodStart      string         `json:"period_start"`
	PeriodEnd        string         `json:"period_end"`
	TotalCostUSD     float64        `json:"total_cost_usd"`
	ServiceBreakdown []SpendService `json:"service_breakdown"`
}
