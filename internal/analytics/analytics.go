// Package analytics implements the pure aggregation engine behind the
// teacher dashboard: grade distributions, per-student and per-subject
// averages, and semester-over-semester progress. Every function operates
// on an already-filtered slice of results, never mutates its input, and
// never touches storage.
package analytics

import (
	"math"
	"sort"
	"strconv"

	"github.com/academic-voice-hub/avh-go-api/internal/grading"
	"github.com/academic-voice-hub/avh-go-api/internal/models"
)

// GradeBucket holds the tally for a single grade label.
type GradeBucket struct {
	Count             int `json:"count"`
	PercentageOfTotal int `json:"percentage_of_total"`
}

// StudentAverage is one row of the top-student ranking.
type StudentAverage struct {
	StudentID         string `json:"student_id"`
	StudentName       string `json:"student_name"`
	AveragePercentage int    `json:"average_percentage"`
}

// SubjectAverage is one row of the per-subject performance rollup.
type SubjectAverage struct {
	Subject           string `json:"subject"`
	AveragePercentage int    `json:"average_percentage"`
	SampleCount       int    `json:"sample_count"`
}

// ProgressPoint is one (academic year, semester) point of the progress
// time series.
type ProgressPoint struct {
	AcademicYear      string `json:"academic_year"`
	Semester          string `json:"semester"`
	AveragePercentage int    `json:"average_percentage"`
}

// GradeDistribution counts results per grade label. Every label is always
// present, zero-filled when absent, and bucket percentages are rounded
// shares of the total (0 when the input is empty).
func GradeDistribution(results []models.Result) map[grading.Label]GradeBucket {
	counts := make(map[grading.Label]int, len(grading.Labels))
	for _, result := range results {
		label := grading.Label(result.Grade)
		if !validLabel(label) {
			continue
		}
		counts[label]++
	}

	total := len(results)
	distribution := make(map[grading.Label]GradeBucket, len(grading.Labels))
	for _, label := range grading.Labels {
		bucket := GradeBucket{Count: counts[label]}
		if total > 0 {
			bucket.PercentageOfTotal = roundInt(float64(counts[label]) / float64(total) * 100)
		}
		distribution[label] = bucket
	}

	return distribution
}

// PerStudentAverage groups results by student and ranks students by their
// mean percentage, descending. Percentages are recomputed from raw marks,
// not read back from the stored grade. Ties keep the order in which the
// students first appeared. A topN of 0 or less returns every student.
func PerStudentAverage(results []models.Result, topN int) []StudentAverage {
	type group struct {
		name  string
		sum   float64
		count int
		seen  int
	}

	groups := make(map[string]*group)
	order := make([]string, 0)
	for _, result := range results {
		g, ok := groups[result.StudentID]
		if !ok {
			g = &group{name: result.StudentName, seen: len(order)}
			groups[result.StudentID] = g
			order = append(order, result.StudentID)
		}
		g.sum += grading.Percentage(result.MarksObtained, result.TotalMarks)
		g.count++
	}

	averages := make([]StudentAverage, 0, len(order))
	for _, studentID := range order {
		g := groups[studentID]
		averages = append(averages, StudentAverage{
			StudentID:         studentID,
			StudentName:       g.name,
			AveragePercentage: roundInt(g.sum / float64(g.count)),
		})
	}

	sort.SliceStable(averages, func(i, j int) bool {
		return averages[i].AveragePercentage > averages[j].AveragePercentage
	})

	if topN > 0 && len(averages) > topN {
		averages = averages[:topN]
	}

	return averages
}

// PerSubjectAverage groups results by subject in first-seen order.
func PerSubjectAverage(results []models.Result) []SubjectAverage {
	type group struct {
		sum   float64
		count int
	}

	groups := make(map[string]*group)
	order := make([]string, 0)
	for _, result := range results {
		g, ok := groups[result.Subject]
		if !ok {
			g = &group{}
			groups[result.Subject] = g
			order = append(order, result.Subject)
		}
		g.sum += grading.Percentage(result.MarksObtained, result.TotalMarks)
		g.count++
	}

	averages := make([]SubjectAverage, 0, len(order))
	for _, subject := range order {
		g := groups[subject]
		averages = append(averages, SubjectAverage{
			Subject:           subject,
			AveragePercentage: roundInt(g.sum / float64(g.count)),
			SampleCount:       g.count,
		})
	}

	return averages
}

// TimeSeriesProgress groups results by (academic year, semester) and sorts
// lexicographically on the year string, then numerically on the semester.
// Years formatted consistently ("2024-2025") therefore come out in
// chronological order without needing a calendar model.
func TimeSeriesProgress(results []models.Result) []ProgressPoint {
	type key struct {
		year     string
		semester string
	}
	type group struct {
		sum   float64
		count int
	}

	groups := make(map[key]*group)
	keys := make([]key, 0)
	for _, result := range results {
		k := key{year: result.AcademicYear, semester: result.Semester}
		g, ok := groups[k]
		if !ok {
			g = &group{}
			groups[k] = g
			keys = append(keys, k)
		}
		g.sum += grading.Percentage(result.MarksObtained, result.TotalMarks)
		g.count++
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return semesterNumber(keys[i].semester) < semesterNumber(keys[j].semester)
	})

	points := make([]ProgressPoint, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		points = append(points, ProgressPoint{
			AcademicYear:      k.year,
			Semester:          k.semester,
			AveragePercentage: roundInt(g.sum / float64(g.count)),
		})
	}

	return points
}

func semesterNumber(semester string) int {
	n, err := strconv.Atoi(semester)
	if err != nil {
		return 0
	}
	return n
}

func validLabel(label grading.Label) bool {
	for _, known := range grading.Labels {
		if label == known {
			return true
		}
	}
	return false
}

func roundInt(value float64) int {
	return int(math.Round(value))
}
