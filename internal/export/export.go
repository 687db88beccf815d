// Package export renders audit reports as JSON, CSV, plain text, or an
// aligned table. JSON is the canonical shape; the others are derived views.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/models"
)

// Formats accepted by Write.
const (
	FormatJSON  = "json"
	FormatCSV   = "csv"
	FormatText  = "text"
	FormatTable = "table"
)

// Write renders report in the named format.
func Write(w io.Writer, report *models.Report, format string) error {
	switch format {
	case FormatJSON:
		return JSON(w, report)
	case FormatCSV:
		return CSV(w, report)
	case FormatText:
		return Text(w, report)
	case FormatTable:
		return Table(w, report)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// JSON writes the canonical indented report.
func JSON(w io.Writer, report *models.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// CSV writes one row per finding.
func CSV(w io.Writer, report *models.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"severity", "kind", "resource_id", "finding", "recommendation", "estimated_savings"}); err != nil {
		return err
	}
	for _, f := range report.Findings {
		row := []string{
			string(f.Severity),
			string(f.Kind),
			f.ResourceID,
			f.Description,
			f.Recommendation,
			strconv.FormatFloat(f.EstimatedMonthlySavings, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Text writes a human summary: run metadata, totals, and the per-kind
// recommendations.
func Text(w io.Writer, report *models.Report) error {
	meta := report.Metadata
	fmt.Fprintf(w, "Audit of account %s (%s), mode %s\n", meta.AccountID, meta.Region, meta.Mode)
	fmt.Fprintf(w, "Started %s, finished %s\n\n", meta.StartedAt.Format("2006-01-02 15:04:05"), meta.FinishedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Resources scanned:  %d\n", report.Summary.TotalResources)
	fmt.Fprintf(w, "Findings:           %d (%d critical or high)\n", report.Summary.TotalFindings, report.Summary.CriticalFindings)
	fmt.Fprintf(w, "Estimated savings:  $%.2f/month\n", report.Summary.EstimatedMonthlySavings)
	if report.Spend != nil {
		fmt.Fprintf(w, "Spend (last 30d):   $%.2f\n", report.Spend.TotalCostUSD)
	}
	for _, warning := range report.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
	if len(report.Recommendations) > 0 {
		fmt.Fprintf(w, "\nRecommendations:\n")
		for _, rec := range report.Recommendations {
			fmt.Fprintf(w, "  %s: %d issues, $%.2f/month\n", rec.Kind, rec.TotalIssues, rec.EstimatedSavings)
			for _, action := range rec.Actions {
				fmt.Fprintf(w, "    - %s\n", action)
			}
		}
	}
	return nil
}

// Table writes the findings as an aligned table.
func Table(w io.Writer, report *models.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEVERITY\tKIND\tRESOURCE\tFINDING\tSAVINGS/MONTH")
	for _, f := range report.Findings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t$%.2f\n",
			f.Severity, f.Kind, f.ResourceID, f.Code, f.EstimatedMonthlySavings)
	}
	return tw.Flush()
}
