package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/academic-voice-hub/avh-go-api/internal/grading"
	"github.com/academic-voice-hub/avh-go-api/internal/models"
)

func result(studentID, name, subject string, obtained, total float64, year, semester, grade string) models.Result {
	return models.Result{
		StudentID:     studentID,
		StudentName:   name,
		Subject:       subject,
		MarksObtained: obtained,
		TotalMarks:    total,
		AcademicYear:  year,
		Semester:      semester,
		Grade:         grade,
	}
}

func TestGradeDistributionEmptyIsZeroFilled(t *testing.T) {
	distribution := GradeDistribution(nil)

	require.Len(t, distribution, len(grading.Labels))
	for _, label := range grading.Labels {
		bucket, ok := distribution[label]
		require.True(t, ok, "missing bucket %s", label)
		require.Zero(t, bucket.Count)
		require.Zero(t, bucket.PercentageOfTotal)
	}
}

func TestGradeDistributionCountsAndShares(t *testing.T) {
	results := make([]models.Result, 0, 10)
	for i := 0; i < 3; i++ {
		results = append(results, result("s1", "S1", "Math", 85, 100, "2024-2025", "1", "A"))
	}
	for i := 0; i < 7; i++ {
		results = append(results, result("s2", "S2", "Math", 20, 100, "2024-2025", "1", "F"))
	}

	distribution := GradeDistribution(results)

	require.Equal(t, GradeBucket{Count: 3, PercentageOfTotal: 30}, distribution[grading.A])
	require.Equal(t, GradeBucket{Count: 7, PercentageOfTotal: 70}, distribution[grading.F])
	for _, label := range []grading.Label{grading.APlus, grading.B, grading.C, grading.D} {
		require.Equal(t, GradeBucket{}, distribution[label])
	}
}

func TestPerStudentAverageRanksDescending(t *testing.T) {
	results := []models.Result{
		result("s1", "Alice", "Math", 80, 100, "2024-2025", "1", "A"),
		result("s1", "Alice", "Physics", 60, 100, "2024-2025", "1", "C"),
		result("s2", "Bob", "Math", 100, 100, "2024-2025", "1", "A+"),
	}

	averages := PerStudentAverage(results, 0)

	require.Equal(t, []StudentAverage{
		{StudentID: "s2", StudentName: "Bob", AveragePercentage: 100},
		{StudentID: "s1", StudentName: "Alice", AveragePercentage: 70},
	}, averages)
}

func TestPerStudentAverageTiesKeepFirstSeenOrder(t *testing.T) {
	results := []models.Result{
		result("s1", "Alice", "Math", 70, 100, "2024-2025", "1", "B"),
		result("s2", "Bob", "Math", 70, 100, "2024-2025", "1", "B"),
		result("s3", "Cara", "Math", 90, 100, "2024-2025", "1", "A+"),
	}

	averages := PerStudentAverage(results, 0)

	require.Equal(t, "s3", averages[0].StudentID)
	require.Equal(t, "s1", averages[1].StudentID)
	require.Equal(t, "s2", averages[2].StudentID)
}

func TestPerStudentAverageTopN(t *testing.T) {
	results := []models.Result{
		result("s1", "Alice", "Math", 50, 100, "2024-2025", "1", "D"),
		result("s2", "Bob", "Math", 90, 100, "2024-2025", "1", "A+"),
		result("s3", "Cara", "Math", 70, 100, "2024-2025", "1", "B"),
	}

	averages := PerStudentAverage(results, 2)

	require.Len(t, averages, 2)
	require.Equal(t, "s2", averages[0].StudentID)
	require.Equal(t, "s3", averages[1].StudentID)
}

func TestPerSubjectAverageFirstSeenOrder(t *testing.T) {
	results := []models.Result{
		result("s1", "Alice", "Physics", 80, 100, "2024-2025", "1", "A"),
		result("s2", "Bob", "Math", 60, 100, "2024-2025", "1", "C"),
		result("s1", "Alice", "Physics", 60, 100, "2024-2025", "2", "C"),
	}

	averages := PerSubjectAverage(results)

	require.Equal(t, []SubjectAverage{
		{Subject: "Physics", AveragePercentage: 70, SampleCount: 2},
		{Subject: "Math", AveragePercentage: 60, SampleCount: 1},
	}, averages)
}

func TestTimeSeriesProgressSortsYearThenSemester(t *testing.T) {
	results := []models.Result{
		result("s1", "Alice", "Math", 90, 100, "2024-2025", "2", "A+"),
		result("s1", "Alice", "Math", 70, 100, "2024-2025", "10", "B"),
		result("s1", "Alice", "Math", 50, 100, "2023-2024", "2", "D"),
		result("s1", "Alice", "Math", 80, 100, "2024-2025", "1", "A"),
	}

	points := TimeSeriesProgress(results)

	require.Equal(t, []ProgressPoint{
		{AcademicYear: "2023-2024", Semester: "2", AveragePercentage: 50},
		{AcademicYear: "2024-2025", Semester: "1", AveragePercentage: 80},
		{AcademicYear: "2024-2025", Semester: "2", AveragePercentage: 90},
		{AcademicYear: "2024-2025", Semester: "10", AveragePercentage: 70},
	}, points)
}

func TestTimeSeriesProgressZeroTotalMarksContributesZero(t *testing.T) {
	results := []models.Result{
		result("s1", "Alice", "Math", 50, 0, "2024-2025", "1", "F"),
		result("s1", "Alice", "Math", 100, 100, "2024-2025", "1", "A+"),
	}

	points := TimeSeriesProgress(results)

	require.Len(t, points, 1)
	require.Equal(t, 50, points[0].AveragePercentage)
}

func TestFilterCombinesActiveDimensions(t *testing.T) {
	results := []models.Result{
		result("s1", "Alice", "Math", 80, 100, "2024-2025", "1", "A"),
		result("s1", "Alice", "Physics", 70, 100, "2024-2025", "1", "B"),
		result("s2", "Bob", "Math", 60, 100, "2024-2025", "2", "C"),
	}

	filtered := Filter{StudentID: "s1", Subject: "Math"}.Apply(results)
	require.Len(t, filtered, 1)
	require.Equal(t, "Math", filtered[0].Subject)

	filtered = Filter{AcademicYear: All, Semester: "1"}.Apply(results)
	require.Len(t, filtered, 2)
}

func TestFilterApplyDoesNotMutateInput(t *testing.T) {
	results := []models.Result{
		result("s1", "Alice", "Math", 80, 100, "2024-2025", "1", "A"),
		result("s2", "Bob", "Math", 60, 100, "2024-2025", "2", "C"),
	}
	snapshot := append([]models.Result(nil), results...)

	_ = Filter{StudentID: "s2"}.Apply(results)
	_ = GradeDistribution(results)
	_ = PerStudentAverage(results, 1)

	require.Equal(t, snapshot, results)
}
