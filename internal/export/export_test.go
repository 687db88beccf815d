package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

func sampleReport() *models.Report {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &models.Report{
		Metadata: models.ReportMeta{
			AccountID:  "123456789012",
			Region:     "ap-south-1",
			StartedAt:  now,
			FinishedAt: now.Add(3 * time.Second),
			Mode:       "full",
		},
		Findings: []models.Finding{
			{
				Kind:                    models.KindEBSVolume,
				ResourceID:              "vol-1",
				Code:                    models.CodeUnattachedEBS,
				Severity:                models.SeverityHigh,
				Description:             "Volume vol-1 (50 GB gp3) is not attached to any instance",
				Recommendation:          "Delete it",
				EstimatedMonthlySavings: 150,
			},
		},
		Summary: models.ReportSummary{
			TotalResources:          1,
			TotalFindings:           1,
			CriticalFindings:        1,
			EstimatedMonthlySavings: 150,
		},
	}
}

func TestCSVColumns(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, sampleReport()); err != nil {
		t.Fatalf("CSV: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1 finding", len(rows))
	}
	wantHeader := []string{"severity", "kind", "resource_id", "finding", "recommendation", "estimated_savings"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}
	if rows[1][0] != "HIGH" || rows[1][2] != "vol-1" || rows[1][5] != "150.00" {
		t.Errorf("finding row wrong: %v", rows[1])
	}
}

func TestJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleReport()); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var decoded models.Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Summary.EstimatedMonthlySavings != 150 {
		t.Errorf("round-tripped savings = %v, want 150", decoded.Summary.EstimatedMonthlySavings)
	}
}

func TestTextIncludesSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, sampleReport()); err != nil {
		t.Fatalf("Text: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"123456789012", "$150.00/month", "1 critical or high"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteRejectsUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, sampleReport(), "yaml"); err == nil {
		t.Error("unknown format accepted")
	}
}
