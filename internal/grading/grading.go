// Package grading maps raw marks to the fixed letter-grade scale used
// across results, reports and analytics.
package grading

import "math"

// Label is one of the six letter grades.
type Label string

const (
	APlus Label = "A+"
	A     Label = "A"
	B     Label = "B"
	C     Label = "C"
	D     Label = "D"
	F     Label = "F"
)

// Labels lists every grade in descending order of merit.
var Labels = []Label{APlus, A, B, C, D, F}

// ForPercentage returns the grade for a percentage. Thresholds are
// inclusive lower bounds, evaluated highest first.
func ForPercentage(percentage float64) Label {
	switch {
	case percentage >= 90:
		return APlus
	case percentage >= 80:
		return A
	case percentage >= 70:
		return B
	case percentage >= 60:
		return C
	case percentage >= 50:
		return D
	default:
		return F
	}
}

// Percentage computes obtained/total*100. A non-positive total yields 0
// rather than propagating a division error.
func Percentage(obtained, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return obtained / total * 100
}

// ForMarks grades raw marks directly.
func ForMarks(obtained, total float64) Label {
	return ForPercentage(Percentage(obtained, total))
}

// Round2 rounds to two decimal places, matching the precision shown on
// result reports.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
