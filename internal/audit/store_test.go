package audit

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

func testFinding(id string, savings float64) models.Finding {
	return models.Finding{
		Kind:                    models.KindEBSVolume,
		ResourceID:              id,
		Code:                    models.CodeUnattachedEBS,
		Severity:                models.SeverityHigh,
		EstimatedMonthlySavings: savings,
	}
}

func TestStoreCollapsesDuplicates(t *testing.T) {
	store := NewFindingStore()
	if !store.Add(testFinding("vol-1", 30)) {
		t.Fatal("first add rejected")
	}
	if store.Add(testFinding("vol-1", 30)) {
		t.Error("duplicate (kind, id, code) was not collapsed")
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
	if store.Duplicates() != 1 {
		t.Errorf("Duplicates = %d, want 1", store.Duplicates())
	}

	// Same resource, different code is a distinct finding.
	f := testFinding("vol-1", 0)
	f.Code = models.CodeOldSnapshot
	if !store.Add(f) {
		t.Error("distinct code on same resource rejected")
	}
}

func TestStorePreservesInsertionOrder(t *testing.T) {
	store := NewFindingStore()
	var want []models.Finding
	for i := 0; i < 5; i++ {
		f := testFinding(fmt.Sprintf("vol-%d", i), 3)
		store.Add(f)
		want = append(want, f)
	}
	if diff := cmp.Diff(want, store.All()); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreCapsAtLimit(t *testing.T) {
	store := NewFindingStore()
	for i := 0; i < maxFindings+25; i++ {
		store.Add(testFinding(fmt.Sprintf("vol-%d", i), 1))
	}
	if store.Len() != maxFindings {
		t.Errorf("Len = %d, want %d", store.Len(), maxFindings)
	}
	if store.Dropped() != 25 {
		t.Errorf("Dropped = %d, want 25", store.Dropped())
	}
}

func TestStoreAggregates(t *testing.T) {
	store := NewFindingStore()
	store.Add(testFinding("vol-1", 150))
	store.Add(testFinding("vol-2", 60))
	critical := testFinding("vol-3", 0)
	critical.Severity = models.SeverityCritical
	critical.Code = models.CodePublicS3Bucket
	critical.Kind = models.KindS3Bucket
	store.Add(critical)

	if got := store.TotalSavings(); got != 210 {
		t.Errorf("TotalSavings = %v, want 210", got)
	}
	if got := store.Count(models.SeverityHigh); got != 2 {
		t.Errorf("Count(HIGH) = %d, want 2", got)
	}
	if got := store.Count(models.SeverityCritical); got != 1 {
		t.Errorf("Count(CRITICAL) = %d, want 1", got)
	}
	groups := store.GroupByKind()
	if len(groups[models.KindEBSVolume]) != 2 || len(groups[models.KindS3Bucket]) != 1 {
		t.Errorf("GroupByKind sizes wrong: %v", groups)
	}
}
