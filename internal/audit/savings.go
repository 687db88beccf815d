package audit

import "time"

// Monthly savings estimates per finding code. These are deliberate flat-rate
// heuristics, not live pricing; only the four cost-relevant codes carry a
// nonzero figure.
const (
	// ebsPerGBMonth is the gp2/gp3 blended estimate: $0.10/GB-day over 30 days.
	ebsPerGBMonth = 3.00

	// stoppedEC2PerMonth assumes $2/day of EBS and EIP drag on a stopped box.
	stoppedEC2PerMonth = 60.00

	// idleEC2PerMonth assumes $5/day for a long-running idle instance.
	idleEC2PerMonth = 150.00

	// unattachedEIPPerMonth is the AWS charge for an idle Elastic IP.
	unattachedEIPPerMonth = 3.60
)

// Age thresholds for the time-based findings.
const (
	idleInstanceAge = 7 * 24 * time.Hour
	oldSnapshotAge  = 365 * 24 * time.Hour
	unusedLambdaAge = 30 * 24 * time.Hour
	oldAccessKeyAge = 90 * 24 * time.Hour
)

// riskPorts are the remote-admin and database ports that make a world-open
// ingress rule a high-severity finding.
var riskPorts = []int32{22, 3389, 1433, 3306, 5432, 1521}
