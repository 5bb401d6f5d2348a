// Package report shapes a student's results into the grouped, summarised
// document layout rendered by pkg/pdfreport. The grouping and summary math
// live here so they can be tested without producing a PDF.
package report

import (
	"fmt"
	"strings"

	"github.com/academic-voice-hub/avh-go-api/internal/grading"
	"github.com/academic-voice-hub/avh-go-api/internal/models"
)

// Row is a single subject line within a semester group.
type Row struct {
	Subject       string
	MarksObtained float64
	TotalMarks    float64
	Grade         string
}

// Group holds one academic-year/semester section of the report, with the
// section totals re-derived from raw marks rather than copied from any
// stored grade.
type Group struct {
	Title         string
	Rows          []Row
	TotalObtained float64
	TotalPossible float64
	Percentage    float64
	OverallGrade  grading.Label
}

// Document is the full report for one student.
type Document struct {
	StudentName string
	RollNumber  string
	Groups      []Group
}

// Build partitions results by "{year} - Semester {semester}" in first-seen
// order and computes each group's summary line.
func Build(results []models.Result, studentName, rollNumber string) Document {
	groups := make(map[string]*Group)
	order := make([]string, 0)

	for _, result := range results {
		title := GroupTitle(result.AcademicYear, result.Semester)
		g, ok := groups[title]
		if !ok {
			g = &Group{Title: title}
			groups[title] = g
			order = append(order, title)
		}
		g.Rows = append(g.Rows, Row{
			Subject:       result.Subject,
			MarksObtained: result.MarksObtained,
			TotalMarks:    result.TotalMarks,
			Grade:         result.Grade,
		})
		g.TotalObtained += result.MarksObtained
		g.TotalPossible += result.TotalMarks
	}

	document := Document{StudentName: studentName, RollNumber: rollNumber}
	for _, title := range order {
		g := groups[title]
		g.Percentage = grading.Round2(grading.Percentage(g.TotalObtained, g.TotalPossible))
		g.OverallGrade = grading.ForPercentage(g.Percentage)
		document.Groups = append(document.Groups, *g)
	}

	return document
}

// GroupTitle formats the section heading for a year/semester pair.
func GroupTitle(academicYear, semester string) string {
	return fmt.Sprintf("%s - Semester %s", academicYear, semester)
}

// FileName derives the deterministic download name for the document.
func (d Document) FileName() string {
	return strings.Join(strings.Fields(d.StudentName), "_") + "_Result_Report.pdf"
}
