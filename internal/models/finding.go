package models

import "time"

// Severity represents the impact level of a finding.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
)

// ResourceKind identifies the kind of cloud resource a finding refers to.
// The set is closed: auditors must not invent new kinds.
type ResourceKind string

const (
	KindEC2Instance            ResourceKind = "EC2_INSTANCE"
	KindEBSVolume              ResourceKind = "EBS_VOLUME"
	KindEBSSnapshot            ResourceKind = "EBS_SNAPSHOT"
	KindElasticIP              ResourceKind = "ELASTIC_IP"
	KindAMI                    ResourceKind = "AMI"
	KindSecurityGroup          ResourceKind = "SECURITY_GROUP"
	KindS3Bucket               ResourceKind = "S3_BUCKET"
	KindRDSInstance            ResourceKind = "RDS_INSTANCE"
	KindDynamoDBTable          ResourceKind = "DYNAMODB_TABLE"
	KindLambdaFunction         ResourceKind = "LAMBDA_FUNCTION"
	KindIAMUser                ResourceKind = "IAM_USER"
	KindIAMRole                ResourceKind = "IAM_ROLE"
	KindIAMPolicy              ResourceKind = "IAM_POLICY"
	KindIAMAccessKey           ResourceKind = "IAM_ACCESS_KEY"
	KindKMSKey                 ResourceKind = "KMS_KEY"
	KindVPC                    ResourceKind = "VPC"
	KindCloudFrontDistribution ResourceKind = "CLOUDFRONT_DISTRIBUTION"
	KindRoute53Zone            ResourceKind = "ROUTE53_ZONE"
	KindAPIGateway             ResourceKind = "API_GATEWAY"
	KindSNSTopic               ResourceKind = "SNS_TOPIC"
	KindSQSQueue               ResourceKind = "SQS_QUEUE"
	KindEventBridgeRule        ResourceKind = "EVENTBRIDGE_RULE"
	KindCloudWatchAlarm        ResourceKind = "CLOUDWATCH_ALARM"
	KindCloudFormationStack    ResourceKind = "CLOUDFORMATION_STACK"
	KindElastiCacheCluster     ResourceKind = "ELASTICACHE_CLUSTER"
	KindEFSFileSystem          ResourceKind = "EFS_FILESYSTEM"
	KindECSCluster             ResourceKind = "ECS_CLUSTER"
	KindBatchQueue             ResourceKind = "BATCH_QUEUE"
)

// FindingCode is the stable machine identifier of a detected condition.
// The set below is the canonical catalogue; auditors must not emit any other code.
type FindingCode string

const (
	CodeUnattachedEBS      FindingCode = "UNATTACHED_EBS"
	CodeStoppedEC2Instance FindingCode = "STOPPED_EC2_INSTANCE"
	CodeIdleEC2Instance    FindingCode = "IDLE_EC2_INSTANCE"
	CodeUnattachedEIP      FindingCode = "UNATTACHED_EIP"
	CodeOverlyPermissiveSG FindingCode = "OVERLY_PERMISSIVE_SG"
	CodeOldSnapshot        FindingCode = "OLD_SNAPSHOT"
	CodeUnusedLambda       FindingCode = "UNUSED_LAMBDA"
	CodePublicS3Bucket     FindingCode = "PUBLIC_S3_BUCKET"
	CodeUnencryptedS3      FindingCode = "UNENCRYPTED_S3_BUCKET"
	CodeEmptyS3Bucket      FindingCode = "EMPTY_S3_BUCKET"
	CodeIAMUserNoMFA       FindingCode = "IAM_USER_NO_MFA"
	CodeOldAccessKey       FindingCode = "OLD_ACCESS_KEY"
	CodePublicRDS          FindingCode = "PUBLIC_RDS"
	CodeStoppedRDS         FindingCode = "STOPPED_RDS"
	CodeDefaultVPCInUse    FindingCode = "DEFAULT_VPC_IN_USE"
	// CodeServiceSkipped is the INFO marker emitted when an auditor is skipped
	// because the account lacks permission to enumerate its service.
	CodeServiceSkipped FindingCode = "SERVICE_SKIPPED"
)

// costRelevant is the subset of finding codes allowed to carry a nonzero
// estimated monthly savings figure.
var costRelevant = map[FindingCode]struct{}{
	CodeUnattachedEBS:      {},
	CodeStoppedEC2Instance: {},
	CodeIdleEC2Instance:    {},
	CodeUnattachedEIP:      {},
}

// CostRelevant reports whether code may carry a nonzero savings estimate.
func CostRelevant(code FindingCode) bool {
	_, ok := costRelevant[code]
	return ok
}

// Finding is a single detected cost, security, or hygiene issue on one
// resource. It is immutable once added to a store.
type Finding struct {
	Kind                    ResourceKind `json:"kind"`
	ResourceID              string       `json:"resource_id"`
	Region                  string       `json:"region"`
	Code                    FindingCode  `json:"finding_code"`
	Severity                Severity     `json:"severity"`
	Description             string       `json:"description"`
	Recommendation          string       `json:"recommendation"`
	EstimatedMonthlySavings float64      `json:"estimated_monthly_savings"`
	ObservedAt              time.Time    `json:"observed_at"`
}
