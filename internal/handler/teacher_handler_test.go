package handler_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/academic-voice-hub/avh-go-api/internal/dto"
)

func TestTeacherResultLifecycle(t *testing.T) {
	ta := setupApp(t, false)
	student := ta.seedStudent(t, "student_1", "Jane Doe", "CS-042", false)

	ta.identity.userID = "teacher_1"
	ta.identity.role = "teacher"

	obtained, total := 92.0, 100.0
	resp := ta.request(t, http.MethodPost, "/api/v1/teacher/results", dto.AddResultRequest{
		StudentID:     student.ID,
		Subject:       "Mathematics",
		MarksObtained: &obtained,
		TotalMarks:    &total,
		AcademicYear:  "2023-2024",
		Semester:      "1",
	}, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created dto.ResultResponse
	decodeData(t, resp, &created)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Jane Doe", created.StudentName)
	require.Equal(t, "A+", created.Grade)

	// Lower marks push the grade down on update.
	updated := 45.0
	resp = ta.request(t, http.MethodPatch, "/api/v1/teacher/results/"+created.ID, dto.UpdateResultRequest{
		MarksObtained: &updated,
	}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var patched dto.ResultResponse
	decodeData(t, resp, &patched)
	require.Equal(t, created.ID, patched.ID)
	require.Equal(t, "F", patched.Grade)

	resp = ta.request(t, http.MethodGet, "/api/v1/teacher/students/"+student.ID+"/results", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var results []dto.ResultResponse
	decodeData(t, resp, &results)
	require.Len(t, results, 1)

	resp = ta.request(t, http.MethodDelete, "/api/v1/teacher/results/"+created.ID, nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Deleting again is a no-op, not an error.
	resp = ta.request(t, http.MethodDelete, "/api/v1/teacher/results/"+created.ID, nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = ta.request(t, http.MethodGet, "/api/v1/teacher/students/"+student.ID+"/results", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeData(t, resp, &results)
	require.Empty(t, results)
}

func TestTeacherAddResultUnknownStudent(t *testing.T) {
	ta := setupApp(t, false)
	ta.identity.userID = "teacher_1"
	ta.identity.role = "teacher"

	obtained, total := 50.0, 100.0
	resp := ta.request(t, http.MethodPost, "/api/v1/teacher/results", dto.AddResultRequest{
		StudentID:     "student_missing",
		Subject:       "Mathematics",
		MarksObtained: &obtained,
		TotalMarks:    &total,
		AcademicYear:  "2023-2024",
		Semester:      "1",
	}, nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTeacherAddResultRejectsInvalidPayload(t *testing.T) {
	ta := setupApp(t, false)
	student := ta.seedStudent(t, "student_1", "Jane Doe", "CS-042", false)

	ta.identity.userID = "teacher_1"
	ta.identity.role = "teacher"

	obtained, total := 50.0, 100.0
	payload := dto.AddResultRequest{
		StudentID:     student.ID,
		Subject:       "Mathematics",
		MarksObtained: &obtained,
		TotalMarks:    &total,
		AcademicYear:  "2023-2024",
		Semester:      "9",
	}
	resp := ta.request(t, http.MethodPost, "/api/v1/teacher/results", payload, nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	payload.Semester = "1"
	payload.AcademicYear = "2023"
	resp = ta.request(t, http.MethodPost, "/api/v1/teacher/results", payload, nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	over := 120.0
	payload.AcademicYear = "2023-2024"
	payload.MarksObtained = &over
	resp = ta.request(t, http.MethodPost, "/api/v1/teacher/results", payload, nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestTeacherListStudents(t *testing.T) {
	ta := setupApp(t, false)
	ta.seedStudent(t, "student_1", "Jane Doe", "CS-042", false)
	ta.seedStudent(t, "student_2", "John Roe", "CS-043", true)

	ta.identity.userID = "teacher_1"
	ta.identity.role = "teacher"

	resp := ta.request(t, http.MethodGet, "/api/v1/teacher/students", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var students []dto.UserResponse
	decodeData(t, resp, &students)
	require.Len(t, students, 2)
	require.Equal(t, "student_1", students[0].ID)
	require.Equal(t, "student", students[0].Role)
	require.True(t, students[1].VoiceOverEnabled)
}

func TestTeacherAnalyticsSummary(t *testing.T) {
	ta := setupApp(t, false)
	student := ta.seedStudent(t, "student_1", "Jane Doe", "CS-042", false)
	other := ta.seedStudent(t, "student_2", "John Roe", "CS-043", false)
	ta.seedResult(t, "result_1", student.ID, student.Name, "Mathematics", 92, 100, "2023-2024", "1", "A+")
	ta.seedResult(t, "result_2", student.ID, student.Name, "Physics", 74, 100, "2023-2024", "2", "B")
	ta.seedResult(t, "result_3", other.ID, other.Name, "Mathematics", 40, 100, "2023-2024", "1", "F")

	ta.identity.userID = "teacher_1"
	ta.identity.role = "teacher"

	resp := ta.request(t, http.MethodGet, "/api/v1/teacher/analytics", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var summary dto.AnalyticsResponse
	decodeData(t, resp, &summary)
	require.Equal(t, 3, summary.TotalResults)
	require.Equal(t, 1, summary.GradeDistribution["A+"].Count)
	require.Equal(t, 1, summary.GradeDistribution["F"].Count)
	require.Len(t, summary.TopStudents, 2)
	require.Equal(t, "Jane Doe", summary.TopStudents[0].StudentName)

	// A filtered view narrows the aggregate scope.
	resp = ta.request(t, http.MethodGet, "/api/v1/teacher/analytics?subject=Mathematics", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeData(t, resp, &summary)
	require.Equal(t, 2, summary.TotalResults)

	// The unfiltered summary is served from cache on repeat calls.
	resp = ta.request(t, http.MethodGet, "/api/v1/teacher/analytics", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeData(t, resp, &summary)
	require.True(t, summary.CacheHit)
}

func TestTeacherRoutesRejectStudentRole(t *testing.T) {
	ta := setupApp(t, false)
	ta.identity.userID = "student_1"
	ta.identity.role = "student"

	resp := ta.request(t, http.MethodGet, "/api/v1/teacher/students", nil, nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
