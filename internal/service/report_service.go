package service

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// reportMetric is a single row of the sample analytics table. Real data
// would come from an analytics backend; the dashboard only needs a
// plausible document.
type reportMetric struct {
	Name  string
	Value string
}

func sampleMetrics() []reportMetric {
	bounceRate := decimal.NewFromFloat(23.45)
	return []reportMetric{
		{Name: "Total Views", Value: "1,234"},
		{Name: "Unique Visitors", Value: "567"},
		{Name: "Average Time on Site", Value: "5m 23s"},
		{Name: "Bounce Rate", Value: bounceRate.StringFixed(2) + "%"},
	}
}

// ReportService renders the downloadable analytics report.
type ReportService interface {
	Generate(w io.Writer, userID, reportType string) error
}

type reportService struct{}

// NewReportService creates a PDF report generator.
func NewReportService() ReportService {
	return &reportService{}
}

// Generate writes an A4 PDF report for the given user and report type.
func (s *reportService) Generate(w io.Writer, userID, reportType string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 25)
	pdf.CellFormat(0, 14, "Analytics Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Generated for user: %s", userID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Report type: %s", reportType), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Generated on: %s", time.Now().Format("2006-01-02 15:04:05")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Reference: %s", uuid.New()), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "BU", 16)
	pdf.CellFormat(0, 9, "Summary", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "This is a sample analytics report. In a real application, this would contain actual analytics data from your database or analytics service.", "", "L", false)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(95, 8, "Metric", "B", 0, "L", false, 0, "")
	pdf.CellFormat(95, 8, "Value", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	for _, metric := range sampleMetrics() {
		pdf.CellFormat(95, 8, metric.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(95, 8, metric.Value, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(190, 0, "", "T", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render report PDF: %w", err)
	}
	return nil
}
