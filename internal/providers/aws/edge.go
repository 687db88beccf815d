package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/route53"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// ListDistributions lists all CloudFront distributions. CloudFront is a
// global service; the result is account-wide.
func (c *ClientSet) ListDistributions(ctx context.Context) ([]models.CloudFrontDistribution, error) {
	return call(ctx, "cloudfront.ListDistributions", func(ctx context.Context) ([]models.CloudFrontDistribution, error) {
		var distributions []models.CloudFrontDistribution
		var marker *string
		for {
			out, err := c.CloudFront.ListDistributions(ctx, &cloudfront.ListDistributionsInput{Marker: marker})
			if err != nil {
				return nil, err
			}
			if out.DistributionList == nil {
				break
			}
			for _, d := range out.DistributionList.Items {
				distributions = append(distributions, models.CloudFrontDistribution{
					ID:         awssdk.ToString(d.Id),
					DomainName: awssdk.ToString(d.DomainName),
					Enabled:    awssdk.ToBool(d.Enabled),
				})
			}
			if !awssdk.ToBool(out.DistributionList.IsTruncated) {
				break
			}
			marker = out.DistributionList.NextMarker
		}
		return distributions, nil
	})
}

// ListHostedZones pages through all Route 53 hosted zones in the account.
func (c *ClientSet) ListHostedZones(ctx context.Context) ([]models.HostedZone, error) {
	return call(ctx, "route53.ListHostedZones", func(ctx context.Context) ([]models.HostedZone, error) {
		paginator := route53.NewListHostedZonesPaginator(c.Route53, &route53.ListHostedZonesInput{})
		var zones []models.HostedZone
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, z := range page.HostedZones {
				zone := models.HostedZone{
					ID:          awssdk.ToString(z.Id),
					Name:        awssdk.ToString(z.Name),
					RecordCount: awssdk.ToInt64(z.ResourceRecordSetCount),
				}
				if z.Config != nil {
					zone.Private = z.Config.PrivateZone
				}
				zones = append(zones, zone)
			}
		}
		return zones, nil
	})
}

// GetRestApis pages through all API Gateway REST APIs in the region.
func (c *ClientSet) GetRestApis(ctx context.Context) ([]models.RestAPI, error) {
	return call(ctx, "apigateway.GetRestApis", func(ctx context.Context) ([]models.RestAPI, error) {
		paginator := apigateway.NewGetRestApisPaginator(c.APIGateway, &apigateway.GetRestApisInput{})
		var apis []models.RestAPI
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, api := range page.Items {
				entry := models.RestAPI{
					ID:   awssdk.ToString(api.Id),
					Name: awssdk.ToString(api.Name),
				}
				if api.CreatedDate != nil {
					entry.CreatedDate = *api.CreatedDate
				}
				apis = append(apis, entry)
			}
		}
		return apis, nil
	})
}
