package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	s3svc "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// ListBuckets lists every bucket owned by the account. S3 bucket listing is
// global, so the result is not scoped to the client region.
func (c *ClientSet) ListBuckets(ctx context.Context) ([]models.S3Bucket, error) {
	return call(ctx, "s3.ListBuckets", func(ctx context.Context) ([]models.S3Bucket, error) {
		out, err := c.S3.ListBuckets(ctx, &s3svc.ListBucketsInput{})
		if err != nil {
			return nil, err
		}
		buckets := make([]models.S3Bucket, 0, len(out.Buckets))
		for _, b := range out.Buckets {
			bucket := models.S3Bucket{Name: awssdk.ToString(b.Name)}
			if b.CreationDate != nil {
				bucket.CreationDate = *b.CreationDate
			}
			buckets = append(buckets, bucket)
		}
		return buckets, nil
	})
}

// GetBucketEncryption reports whether bucket has default server-side
// encryption configured. A missing encryption configuration is not an error;
// it means the bucket is unencrypted.
func (c *ClientSet) GetBucketEncryption(ctx context.Context, bucket string) (bool, error) {
	ok, err := call(ctx, "s3.GetBucketEncryption", func(ctx context.Context) (bool, error) {
		out, err := c.S3.GetBucketEncryption(ctx, &s3svc.GetBucketEncryptionInput{Bucket: awssdk.String(bucket)})
		if err != nil {
			return false, err
		}
		return out.ServerSideEncryptionConfiguration != nil && len(out.ServerSideEncryptionConfiguration.Rules) > 0, nil
	})
	if err != nil && CategoryOf(err) == ErrNotFound {
		return false, nil
	}
	return ok, err
}

// GetBucketPolicyStatus reports whether the bucket policy marks the bucket
// public. A bucket with no policy at all is not public.
func (c *ClientSet) GetBucketPolicyStatus(ctx context.Context, bucket string) (bool, error) {
	public, err := call(ctx, "s3.GetBucketPolicyStatus", func(ctx context.Context) (bool, error) {
		out, err := c.S3.GetBucketPolicyStatus(ctx, &s3svc.GetBucketPolicyStatusInput{Bucket: awssdk.String(bucket)})
		if err != nil {
			return false, err
		}
		if out.PolicyStatus == nil {
			return false, nil
		}
		return awssdk.ToBool(out.PolicyStatus.IsPublic), nil
	})
	if err != nil && CategoryOf(err) == ErrNotFound {
		return false, nil
	}
	return public, err
}

// GetBucketVersioning reports whether versioning is enabled on bucket.
func (c *ClientSet) GetBucketVersioning(ctx context.Context, bucket string) (bool, error) {
	return call(ctx, "s3.GetBucketVersioning", func(ctx context.Context) (bool, error) {
		out, err := c.S3.GetBucketVersioning(ctx, &s3svc.GetBucketVersioningInput{Bucket: awssdk.String(bucket)})
		if err != nil {
			return false, err
		}
		return out.Status == s3types.BucketVersioningStatusEnabled, nil
	})
}

// BucketHasObjects probes bucket with a single-key listing. The probe reads
// at most one key so it stays cheap even on very large buckets.
func (c *ClientSet) BucketHasObjects(ctx context.Context, bucket string) (bool, error) {
	return call(ctx, "s3.ListObjectsV2", func(ctx context.Context) (bool, error) {
		out, err := c.S3.ListObjectsV2(ctx, &s3svc.ListObjectsV2Input{
			Bucket:  awssdk.String(bucket),
			MaxKeys: awssdk.Int32(1),
		})
		if err != nil {
			return false, err
		}
		return awssdk.ToInt32(out.KeyCount) > 0 || len(out.Contents) > 0, nil
	})
}
