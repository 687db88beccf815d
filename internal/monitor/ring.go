package monitor

import "github.com/pankaj-dahiya-devops/cloudpulse/internal/models"

// ring is a fixed-capacity FIFO of metric points. The oldest point is evicted
// on overflow. Not safe for concurrent use; the sampler serialises access.
type ring struct {
	points []models.MetricPoint
	limit  int
}

func newRing(limit int) *ring {
	return &ring{limit: limit}
}

func (r *ring) append(p models.MetricPoint) {
	if len(r.points) >= r.limit {
		copy(r.points, r.points[1:])
		r.points[len(r.points)-1] = p
		return
	}
	r.points = append(r.points, p)
}

func (r *ring) len() int { return len(r.points) }

// tail returns a copy of the most recent n points, oldest first.
func (r *ring) tail(n int) []models.MetricPoint {
	if n > len(r.points) {
		n = len(r.points)
	}
	out := make([]models.MetricPoint, n)
	copy(out, r.points[len(r.points)-n:])
	return out
}
