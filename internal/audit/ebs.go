package audit

import (
	"context"
	"fmt"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// ebsAuditor flags unattached volumes and year-old snapshots.
type ebsAuditor struct{}

func (ebsAuditor) Name() string { return "ebs" }

func (ebsAuditor) Audit(ctx context.Context, run *Run) (models.ServiceSummary, error) {
	volumes, err := run.Client.DescribeVolumes(ctx)
	if err != nil {
		return failedSummary(run, "ebs", models.KindEBSVolume, err), nil
	}

	summary := models.NewServiceSummary()
	unattached := 0
	for _, vol := range volumes {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if vol.State == "available" && vol.Attachments == 0 {
			unattached++
			run.Store.Add(run.finding(models.KindEBSVolume, vol.VolumeID,
				models.CodeUnattachedEBS, models.SeverityHigh,
				fmt.Sprintf("Volume %s (%d GB %s) is not attached to any instance",
					vol.VolumeID, vol.SizeGB, vol.VolumeType),
				"Snapshot the volume if its data matters, then delete it",
				float64(vol.SizeGB)*ebsPerGBMonth))
		}
	}

	oldSnapshots := 0
	snapshots, err := run.Client.DescribeSnapshots(ctx)
	if err == nil {
		for _, snap := range snapshots {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			if run.olderThan(snap.StartTime, oldSnapshotAge) {
				oldSnapshots++
				run.Store.Add(run.finding(models.KindEBSSnapshot, snap.SnapshotID,
					models.CodeOldSnapshot, models.SeverityLow,
					fmt.Sprintf("Snapshot %s was taken on %s, more than a year ago",
						snap.SnapshotID, snap.StartTime.Format("2006-01-02")),
					"Delete the snapshot or move it to an archive tier", 0))
			}
		}
		summary.SetCount("snapshots", len(snapshots))
		summary.SetCount("old_snapshots", oldSnapshots)
	}

	summary.SetCount("total_resources", len(volumes))
	summary.SetCount("unattached", unattached)
	return summary, nil
}
