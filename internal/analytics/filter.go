package analytics

import "github.com/academic-voice-hub/avh-go-api/internal/models"

// All marks a filter dimension as inactive. Empty strings behave the same
// way, so callers can pass query parameters through untouched.
const All = "all"

// Filter narrows a result set before aggregation. Each dimension is
// optional and the active ones are AND-combined.
type Filter struct {
	StudentID    string
	Subject      string
	AcademicYear string
	Semester     string
}

// IsZero reports whether no dimension is active.
func (f Filter) IsZero() bool {
	return !active(f.StudentID) && !active(f.Subject) && !active(f.AcademicYear) && !active(f.Semester)
}

// Matches applies every active dimension to a single result.
func (f Filter) Matches(result models.Result) bool {
	if active(f.StudentID) && result.StudentID != f.StudentID {
		return false
	}
	if active(f.Subject) && result.Subject != f.Subject {
		return false
	}
	if active(f.AcademicYear) && result.AcademicYear != f.AcademicYear {
		return false
	}
	if active(f.Semester) && result.Semester != f.Semester {
		return false
	}
	return true
}

// Apply returns the results matching the filter, preserving input order.
// The input slice is never modified.
func (f Filter) Apply(results []models.Result) []models.Result {
	if f.IsZero() {
		return append([]models.Result(nil), results...)
	}

	filtered := make([]models.Result, 0, len(results))
	for _, result := range results {
		if f.Matches(result) {
			filtered = append(filtered, result)
		}
	}
	return filtered
}

func active(value string) bool {
	return value != "" && value != All
}
