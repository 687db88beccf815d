package audit

import (
	"context"
	"fmt"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// s3Auditor probes every bucket for public policies, missing default
// encryption, and emptiness. Per-bucket probe failures skip that probe only;
// the bucket stays in the totals.
type s3Auditor struct{}

func (s3Auditor) Name() string { return "s3" }

func (s3Auditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	buckets, err := run.Client.ListBuckets(ctx)
	if err != nil {
		return failedSummary(run, "s3", models.KindS3Bucket, err), nil
	}

	summary := models.NewServiceSummary()
	public, unencrypted, empty, unversioned := 0, 0, 0, 0
	for _, bucket := range buckets {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if isPublic, err := run.Client.GetBucketPolicyStatus(ctx, bucket.Name); err == nil && isPublic {
			public++
			run.Store.Add(run.finding(models.KindS3Bucket, bucket.Name,
				models.CodePublicS3Bucket, models.SeverityCritical,
				fmt.Sprintf("Bucket %s has a policy that makes it publicly accessible", bucket.Name),
				"Enable Block Public Access and rewrite the bucket policy", 0))
		}

		if encrypted, err := run.Client.GetBucketEncryption(ctx, bucket.Name); err == nil && !encrypted {
			unencrypted++
			run.Store.Add(run.finding(models.KindS3Bucket, bucket.Name,
				models.CodeUnencryptedS3, models.SeverityHigh,
				fmt.Sprintf("Bucket %s has no default server-side encryption", bucket.Name),
				"Enable default SSE-S3 or SSE-KMS encryption on the bucket", 0))
		}

		if versioned, err := run.Client.GetBucketVersioning(ctx, bucket.Name); err == nil && !versioned {
			unversioned++
		}

		if hasObjects, err := run.Client.BucketHasObjects(ctx, bucket.Name); err == nil && !hasObjects {
			empty++
			run.Store.Add(run.finding(models.KindS3Bucket, bucket.Name,
				models.CodeEmptyS3Bucket, models.SeverityLow,
				fmt.Sprintf("Bucket %s contains no objects", bucket.Name),
				"Delete the bucket if it is no longer needed", 0))
		}
	}

	summary.SetCount("total_resources", len(buckets))
	summary.SetCount("public", public)
	summary.SetCount("unencrypted", unencrypted)
	summary.SetCount("empty", empty)
	summary.SetCount("unversioned", unversioned)
	return summary, nil
}
