package audit

import (
	"sync"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// maxFindings caps a single run's finding count. Adds past the cap are
// dropped silently and counted; a run hitting the cap is already pathological.
const maxFindings = 10000

type findingKey struct {
	kind models.ResourceKind
	id   string
	code models.FindingCode
}

// FindingStore is the thread-safe append-only collector for one audit run.
// Duplicate (kind, resource_id, finding_code) triples are collapsed at insert
// time; insertion order is preserved for All.
type FindingStore struct {
	mu       sync.Mutex
	findings []models.Finding
	seen     map[findingKey]struct{}
	dropped  int
	dupes    int
}

// NewFindingStore returns an empty store.
func NewFindingStore() *FindingStore {
	return &FindingStore{seen: make(map[findingKey]struct{})}
}

// Add appends f unless it duplicates an earlier finding or the store is full.
// It reports whether f was stored.
func (s *FindingStore) Add(f models.Finding) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := findingKey{kind: f.Kind, id: f.ResourceID, code: f.Code}
	if _, ok := s.seen[key]; ok {
		s.dupes++
		return false
	}
	if len(s.findings) >= maxFindings {
		s.dropped++
		return false
	}
	s.seen[key] = struct{}{}
	s.findings = append(s.findings, f)
	return true
}

// All returns the findings in insertion order. The slice is a copy.
func (s *FindingStore) All() []models.Finding {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Finding, len(s.findings))
	copy(out, s.findings)
	return out
}

// GroupByKind partitions the findings by resource kind, preserving insertion
// order within each group.
func (s *FindingStore) GroupByKind() map[models.ResourceKind][]models.Finding {
	s.mu.Lock()
	defer s.mu.Unlock()
	groups := make(map[models.ResourceKind][]models.Finding)
	for _, f := range s.findings {
		groups[f.Kind] = append(groups[f.Kind], f)
	}
	return groups
}

// TotalSavings sums the estimated monthly savings across all findings.
func (s *FindingStore) TotalSavings() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, f := range s.findings {
		total += f.EstimatedMonthlySavings
	}
	return total
}

// Count returns the number of findings at the given severity.
func (s *FindingStore) Count(sev models.Severity) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, f := range s.findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

// Len returns the number of stored findings.
func (s *FindingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.findings)
}

// Dropped returns how many adds were rejected by the size cap.
func (s *FindingStore) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Duplicates returns how many adds were collapsed as duplicates.
func (s *FindingStore) Duplicates() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dupes
}
