// Package narration builds the deterministic voice-over script read aloud
// on the student results page. The script embeds no timestamps or random
// values so identical inputs always produce identical text.
package narration

import (
	"fmt"
	"strings"

	"github.com/academic-voice-hub/avh-go-api/internal/analytics"
	"github.com/academic-voice-hub/avh-go-api/internal/grading"
	"github.com/academic-voice-hub/avh-go-api/internal/models"
)

// BuildScript concatenates the greeting, the active filter clauses, an
// overall summary and one clause per result, in that fixed order.
func BuildScript(results []models.Result, studentName, rollNumber string, filter analytics.Filter) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Results for %s, Roll Number %s. ", studentName, rollNumber)

	if activeFilter(filter.AcademicYear) {
		fmt.Fprintf(&b, "Academic Year %s. ", filter.AcademicYear)
	}
	if activeFilter(filter.Semester) {
		fmt.Fprintf(&b, "Semester %s. ", filter.Semester)
	}
	if activeFilter(filter.Subject) {
		fmt.Fprintf(&b, "Subject %s. ", filter.Subject)
	}

	fmt.Fprintf(&b, "Total subjects: %d. ", len(results))
	fmt.Fprintf(&b, "Overall percentage: %s percent. ", formatNumber(overallPercentage(results)))

	for i, result := range results {
		fmt.Fprintf(&b, "Result %d: Subject: %s. Academic Year: %s. Semester: %s. Marks: %s out of %s. Grade: %s. ",
			i+1,
			result.Subject,
			result.AcademicYear,
			result.Semester,
			formatNumber(result.MarksObtained),
			formatNumber(result.TotalMarks),
			result.Grade,
		)
	}

	return b.String()
}

func overallPercentage(results []models.Result) float64 {
	var obtained, possible float64
	for _, result := range results {
		obtained += result.MarksObtained
		possible += result.TotalMarks
	}
	return grading.Round2(grading.Percentage(obtained, possible))
}

// formatNumber prints marks without a trailing ".00" so whole numbers read
// naturally when spoken.
func formatNumber(value float64) string {
	text := fmt.Sprintf("%.2f", value)
	text = strings.TrimRight(text, "0")
	text = strings.TrimRight(text, ".")
	if text == "" || text == "-" {
		return "0"
	}
	return text
}

func activeFilter(value string) bool {
	return value != "" && value != analytics.All
}
