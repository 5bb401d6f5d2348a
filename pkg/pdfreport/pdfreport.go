// Package pdfreport renders a report.Document as a paginated A4 PDF:
// a title header, one table per semester group with a summary line, and a
// footer on every page identifying the document and the page index.
package pdfreport

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/academic-voice-hub/avh-go-api/internal/report"
)

const (
	documentTitle  = "Academic Result Report"
	institution    = "Academic Voice Hub"
	footerText     = "Academic Voice Hub - Official Result Document"
	leftMargin     = 14.0
	rightEdge      = 196.0
	bodyLimitY     = 250.0
	footerY        = 285.0
	tableRowHeight = 8.0
)

var tableWidths = []float64{70, 38, 38, 36}

var tableHeaders = []string{"Subject", "Marks Obtained", "Total Marks", "Grade"}

// Renderer produces PDF bytes for result documents.
type Renderer struct {
	now func() time.Time
}

// NewRenderer constructs a renderer. The clock is injectable so tests can
// pin the date line.
func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// Render lays out the document and returns the finished PDF.
func (r *Renderer) Render(document report.Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(footerY)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 4, footerText, "", 0, "C", false, 0, "")
		pdf.SetXY(leftMargin, footerY)
		page := fmt.Sprintf("Page %d of {nb}", pdf.PageNo())
		pdf.CellFormat(rightEdge-leftMargin, 4, page, "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	r.renderHeader(pdf, document)

	y := 65.0
	for _, group := range document.Groups {
		y = r.renderGroup(pdf, group, y)
		if y > bodyLimitY {
			pdf.AddPage()
			y = 20.0
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render result report: %w", err)
	}

	return buf.Bytes(), nil
}

func (r *Renderer) renderHeader(pdf *fpdf.Fpdf, document report.Document) {
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(33, 110, 180)
	pdf.SetXY(0, 14)
	pdf.CellFormat(210, 8, documentTitle, "", 0, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetXY(0, 26)
	pdf.CellFormat(210, 6, institution, "", 0, "C", false, 0, "")

	pdf.SetDrawColor(220, 220, 220)
	pdf.SetLineWidth(0.5)
	pdf.Line(leftMargin, 35, rightEdge, 35)

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(leftMargin, 42)
	pdf.CellFormat(100, 6, fmt.Sprintf("Student Name: %s", document.StudentName), "", 0, "L", false, 0, "")
	pdf.SetXY(160, 42)
	pdf.CellFormat(40, 6, fmt.Sprintf("Date: %s", r.now().Format("02/01/2006")), "", 0, "L", false, 0, "")
	pdf.SetXY(leftMargin, 49)
	pdf.CellFormat(100, 6, fmt.Sprintf("Roll Number: %s", document.RollNumber), "", 0, "L", false, 0, "")
}

func (r *Renderer) renderGroup(pdf *fpdf.Fpdf, group report.Group, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(33, 110, 180)
	pdf.SetXY(leftMargin, y)
	pdf.CellFormat(0, 6, group.Title, "", 0, "L", false, 0, "")
	y += 8

	y = r.renderTable(pdf, group.Rows, y)
	y += 7

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(leftMargin, y)
	pdf.CellFormat(80, 5, fmt.Sprintf("Total Marks: %s/%s", formatMarks(group.TotalObtained), formatMarks(group.TotalPossible)), "", 0, "L", false, 0, "")
	pdf.SetXY(100, y)
	pdf.CellFormat(50, 5, fmt.Sprintf("Percentage: %.2f%%", group.Percentage), "", 0, "L", false, 0, "")
	pdf.SetXY(160, y)
	pdf.CellFormat(36, 5, fmt.Sprintf("Overall Grade: %s", group.OverallGrade), "", 0, "L", false, 0, "")

	return y + 20
}

func (r *Renderer) renderTable(pdf *fpdf.Fpdf, rows []report.Row, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFillColor(33, 110, 180)
	pdf.SetDrawColor(220, 220, 220)
	pdf.SetXY(leftMargin, y)
	for i, header := range tableHeaders {
		pdf.CellFormat(tableWidths[i], tableRowHeight, header, "1", 0, "L", true, 0, "")
	}
	y += tableRowHeight

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(60, 60, 60)
	for i, row := range rows {
		if y > bodyLimitY {
			pdf.AddPage()
			y = 20.0
		}
		fill := i%2 == 1
		pdf.SetFillColor(240, 240, 240)
		pdf.SetXY(leftMargin, y)
		cells := []string{row.Subject, formatMarks(row.MarksObtained), formatMarks(row.TotalMarks), row.Grade}
		for j, cell := range cells {
			pdf.CellFormat(tableWidths[j], tableRowHeight, cell, "1", 0, "L", fill, 0, "")
		}
		y += tableRowHeight
	}

	return y
}

func formatMarks(value float64) string {
	if value == float64(int64(value)) {
		return fmt.Sprintf("%d", int64(value))
	}
	return fmt.Sprintf("%.2f", value)
}
