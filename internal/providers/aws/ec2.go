package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	ec2svc "github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// DescribeInstances pages through all EC2 instances in the region.
func (c *ClientSet) DescribeInstances(ctx context.Context) ([]models.EC2Instance, error) {
	return call(ctx, "ec2.DescribeInstances", func(ctx context.Context) ([]models.EC2Instance, error) {
		paginator := ec2svc.NewDescribeInstancesPaginator(c.EC2, &ec2svc.DescribeInstancesInput{})
		var instances []models.EC2Instance
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, res := range page.Reservations {
				for _, inst := range res.Instances {
					instances = append(instances, toEC2Instance(inst))
				}
			}
		}
		return instances, nil
	})
}

func toEC2Instance(inst ec2types.Instance) models.EC2Instance {
	out := models.EC2Instance{
		InstanceID:   awssdk.ToString(inst.InstanceId),
		InstanceType: string(inst.InstanceType),
		StateReason:  awssdk.ToString(inst.StateTransitionReason),
		Tags:         tagsFromEC2(inst.Tags),
	}
	if inst.State != nil {
		out.State = string(inst.State.Name)
	}
	if inst.LaunchTime != nil {
		out.LaunchTime = *inst.LaunchTime
	}
	return out
}

// DescribeVolumes pages through all EBS volumes in the region.
func (c *ClientSet) DescribeVolumes(ctx context.Context) ([]models.EBSVolume, error) {
	return call(ctx, "ec2.DescribeVolumes", func(ctx context.Context) ([]models.EBSVolume, error) {
		paginator := ec2svc.NewDescribeVolumesPaginator(c.EC2, &ec2svc.DescribeVolumesInput{})
		var volumes []models.EBSVolume
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, v := range page.Volumes {
				vol := models.EBSVolume{
					VolumeID:    awssdk.ToString(v.VolumeId),
					SizeGB:      awssdk.ToInt32(v.Size),
					VolumeType:  string(v.VolumeType),
					State:       string(v.State),
					Attachments: len(v.Attachments),
				}
				if v.CreateTime != nil {
					vol.CreateTime = *v.CreateTime
				}
				volumes = append(volumes, vol)
			}
		}
		return volumes, nil
	})
}

// DescribeSnapshots pages through snapshots owned by the calling account.
func (c *ClientSet) DescribeSnapshots(ctx context.Context) ([]models.EBSSnapshot, error) {
	return call(ctx, "ec2.DescribeSnapshots", func(ctx context.Context) ([]models.EBSSnapshot, error) {
		input := &ec2svc.DescribeSnapshotsInput{OwnerIds: []string{"self"}}
		paginator := ec2svc.NewDescribeSnapshotsPaginator(c.EC2, input)
		var snapshots []models.EBSSnapshot
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, s := range page.Snapshots {
				snap := models.EBSSnapshot{
					SnapshotID:  awssdk.ToString(s.SnapshotId),
					VolumeID:    awssdk.ToString(s.VolumeId),
					SizeGB:      awssdk.ToInt32(s.VolumeSize),
					Description: awssdk.ToString(s.Description),
				}
				if s.StartTime != nil {
					snap.StartTime = *s.StartTime
				}
				snapshots = append(snapshots, snap)
			}
		}
		return snapshots, nil
	})
}

// DescribeAddresses lists all allocated Elastic IPs. The API is not paginated.
func (c *ClientSet) DescribeAddresses(ctx context.Context) ([]models.ElasticIP, error) {
	return call(ctx, "ec2.DescribeAddresses", func(ctx context.Context) ([]models.ElasticIP, error) {
		out, err := c.EC2.DescribeAddresses(ctx, &ec2svc.DescribeAddressesInput{})
		if err != nil {
			return nil, err
		}
		addrs := make([]models.ElasticIP, 0, len(out.Addresses))
		for _, a := range out.Addresses {
			addrs = append(addrs, models.ElasticIP{
				PublicIP:           awssdk.ToString(a.PublicIp),
				AllocationID:       awssdk.ToString(a.AllocationId),
				InstanceID:         awssdk.ToString(a.InstanceId),
				NetworkInterfaceID: awssdk.ToString(a.NetworkInterfaceId),
			})
		}
		return addrs, nil
	})
}

// DescribeSecurityGroups pages through all security groups with their ingress
// rules flattened to SGRule entries.
func (c *ClientSet) DescribeSecurityGroups(ctx context.Context) ([]models.SecurityGroup, error) {
	return call(ctx, "ec2.DescribeSecurityGroups", func(ctx context.Context) ([]models.SecurityGroup, error) {
		paginator := ec2svc.NewDescribeSecurityGroupsPaginator(c.EC2, &ec2svc.DescribeSecurityGroupsInput{})
		var groups []models.SecurityGroup
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, g := range page.SecurityGroups {
				groups = append(groups, toSecurityGroup(g))
			}
		}
		return groups, nil
	})
}

func toSecurityGroup(g ec2types.SecurityGroup) models.SecurityGroup {
	sg := models.SecurityGroup{
		GroupID:   awssdk.ToString(g.GroupId),
		GroupName: awssdk.ToString(g.GroupName),
	}
	for _, perm := range g.IpPermissions {
		rule := models.SGRule{
			Protocol: awssdk.ToString(perm.IpProtocol),
			FromPort: awssdk.ToInt32(perm.FromPort),
			ToPort:   awssdk.ToInt32(perm.ToPort),
		}
		for _, r := range perm.IpRanges {
			rule.CIDRs = append(rule.CIDRs, awssdk.ToString(r.CidrIp))
		}
		sg.Ingress = append(sg.Ingress, rule)
	}
	return sg
}

// DescribeImages lists AMIs owned by the calling account. Not paginated.
func (c *ClientSet) DescribeImages(ctx context.Context) ([]models.MachineImage, error) {
	return call(ctx, "ec2.DescribeImages", func(ctx context.Context) ([]models.MachineImage, error) {
		out, err := c.EC2.DescribeImages(ctx, &ec2svc.DescribeImagesInput{Owners: []string{"self"}})
		if err != nil {
			return nil, err
		}
		images := make([]models.MachineImage, 0, len(out.Images))
		for _, img := range out.Images {
			images = append(images, models.MachineImage{
				ImageID:      awssdk.ToString(img.ImageId),
				Name:         awssdk.ToString(img.Name),
				CreationDate: awssdk.ToString(img.CreationDate),
			})
		}
		return images, nil
	})
}

// DescribeVpcs pages through all VPCs in the region.
func (c *ClientSet) DescribeVpcs(ctx context.Context) ([]models.VPC, error) {
	return call(ctx, "ec2.DescribeVpcs", func(ctx context.Context) ([]models.VPC, error) {
		paginator := ec2svc.NewDescribeVpcsPaginator(c.EC2, &ec2svc.DescribeVpcsInput{})
		var vpcs []models.VPC
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, v := range page.Vpcs {
				vpcs = append(vpcs, models.VPC{
					VpcID:     awssdk.ToString(v.VpcId),
					CIDR:      awssdk.ToString(v.CidrBlock),
					IsDefault: awssdk.ToBool(v.IsDefault),
				})
			}
		}
		return vpcs, nil
	})
}

// DescribeSubnets pages through all subnets in the region.
func (c *ClientSet) DescribeSubnets(ctx context.Context) ([]models.Subnet, error) {
	return call(ctx, "ec2.DescribeSubnets", func(ctx context.Context) ([]models.Subnet, error) {
		paginator := ec2svc.NewDescribeSubnetsPaginator(c.EC2, &ec2svc.DescribeSubnetsInput{})
		var subnets []models.Subnet
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, s := range page.Subnets {
				subnets = append(subnets, models.Subnet{
					SubnetID: awssdk.ToString(s.SubnetId),
					VpcID:    awssdk.ToString(s.VpcId),
				})
			}
		}
		return subnets, nil
	})
}

// DescribeRouteTables pages through all route tables in the region.
func (c *ClientSet) DescribeRouteTables(ctx context.Context) ([]models.RouteTable, error) {
	return call(ctx, "ec2.DescribeRouteTables", func(ctx context.Context) ([]models.RouteTable, error) {
		paginator := ec2svc.NewDescribeRouteTablesPaginator(c.EC2, &ec2svc.DescribeRouteTablesInput{})
		var tables []models.RouteTable
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, rt := range page.RouteTables {
				tables = append(tables, models.RouteTable{
					RouteTableID: awssdk.ToString(rt.RouteTableId),
					VpcID:        awssdk.ToString(rt.VpcId),
				})
			}
		}
		return tables, nil
	})
}

// DescribeNetworkInterfaces pages through all ENIs in the region.
func (c *ClientSet) DescribeNetworkInterfaces(ctx context.Context) ([]models.NetworkInterface, error) {
	return call(ctx, "ec2.DescribeNetworkInterfaces", func(ctx context.Context) ([]models.NetworkInterface, error) {
		paginator := ec2svc.NewDescribeNetworkInterfacesPaginator(c.EC2, &ec2svc.DescribeNetworkInterfacesInput{})
		var enis []models.NetworkInterface
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, eni := range page.NetworkInterfaces {
				enis = append(enis, models.NetworkInterface{
					InterfaceID: awssdk.ToString(eni.NetworkInterfaceId),
					Status:      string(eni.Status),
				})
			}
		}
		return enis, nil
	})
}

// tagsFromEC2 converts EC2 SDK tags to a plain string map.
func tagsFromEC2(tags []ec2types.Tag) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		if t.Key != nil && t.Value != nil {
			m[*t.Key] = *t.Value
		}
	}
	return m
}
