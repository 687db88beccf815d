package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/efs"
	"github.com/aws/aws-sdk-go-v2/service/elasticache"
	rdssvc "github.com/aws/aws-sdk-go-v2/service/rds"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// DescribeDBInstances pages through all RDS instances in the region.
func (c *ClientSet) DescribeDBInstances(ctx context.Context) ([]models.RDSInstance, error) {
	return call(ctx, "rds.DescribeDBInstances", func(ctx context.Context) ([]models.RDSInstance, error) {
		paginator := rdssvc.NewDescribeDBInstancesPaginator(c.RDS, &rdssvc.DescribeDBInstancesInput{})
		var instances []models.RDSInstance
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, db := range page.DBInstances {
				instances = append(instances, models.RDSInstance{
					Identifier:         awssdk.ToString(db.DBInstanceIdentifier),
					Engine:             awssdk.ToString(db.Engine),
					InstanceClass:      awssdk.ToString(db.DBInstanceClass),
					Status:             awssdk.ToString(db.DBInstanceStatus),
					AllocatedStorageGB: awssdk.ToInt32(db.AllocatedStorage),
					PubliclyAccessible: awssdk.ToBool(db.PubliclyAccessible),
					MultiAZ:            awssdk.ToBool(db.MultiAZ),
					StorageEncrypted:   awssdk.ToBool(db.StorageEncrypted),
				})
			}
		}
		return instances, nil
	})
}

// ListTables pages through all DynamoDB tables and describes each one for its
// item and size counters.
func (c *ClientSet) ListTables(ctx context.Context) ([]models.DynamoDBTable, error) {
	return call(ctx, "dynamodb.ListTables", func(ctx context.Context) ([]models.DynamoDBTable, error) {
		paginator := dynamodb.NewListTablesPaginator(c.Dynamo, &dynamodb.ListTablesInput{})
		var tables []models.DynamoDBTable
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, name := range page.TableNames {
				desc, err := c.Dynamo.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: awssdk.String(name)})
				if err != nil {
					return nil, err
				}
				table := models.DynamoDBTable{Name: name}
				if desc.Table != nil {
					table.Status = string(desc.Table.TableStatus)
					table.ItemCount = awssdk.ToInt64(desc.Table.ItemCount)
					table.SizeBytes = awssdk.ToInt64(desc.Table.TableSizeBytes)
				}
				tables = append(tables, table)
			}
		}
		return tables, nil
	})
}

// DescribeCacheClusters pages through all ElastiCache clusters in the region.
func (c *ClientSet) DescribeCacheClusters(ctx context.Context) ([]models.CacheCluster, error) {
	return call(ctx, "elasticache.DescribeCacheClusters", func(ctx context.Context) ([]models.CacheCluster, error) {
		paginator := elasticache.NewDescribeCacheClustersPaginator(c.ElastiCache, &elasticache.DescribeCacheClustersInput{})
		var clusters []models.CacheCluster
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, cl := range page.CacheClusters {
				clusters = append(clusters, models.CacheCluster{
					ClusterID: awssdk.ToString(cl.CacheClusterId),
					Engine:    awssdk.ToString(cl.Engine),
					Status:    awssdk.ToString(cl.CacheClusterStatus),
					NodeType:  awssdk.ToString(cl.CacheNodeType),
					NumNodes:  awssdk.ToInt32(cl.NumCacheNodes),
				})
			}
		}
		return clusters, nil
	})
}

// DescribeFileSystems pages through all EFS file systems in the region.
func (c *ClientSet) DescribeFileSystems(ctx context.Context) ([]models.FileSystem, error) {
	return call(ctx, "efs.DescribeFileSystems", func(ctx context.Context) ([]models.FileSystem, error) {
		paginator := efs.NewDescribeFileSystemsPaginator(c.EFS, &efs.DescribeFileSystemsInput{})
		var systems []models.FileSystem
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, fs := range page.FileSystems {
				system := models.FileSystem{
					FileSystemID: awssdk.ToString(fs.FileSystemId),
					Encrypted:    awssdk.ToBool(fs.Encrypted),
					State:        string(fs.LifeCycleState),
				}
				if fs.SizeInBytes != nil {
					system.SizeBytes = fs.SizeInBytes.Value
				}
				systems = append(systems, system)
			}
		}
		return systems, nil
	})
}
