package dto

import (
	"time"

	"github.com/academic-voice-hub/avh-go-api/internal/models"
)

// AddResultRequest is the teacher payload for recording a result.
type AddResultRequest struct {
	StudentID     string   `json:"student_id" validate:"required"`
	Subject       string   `json:"subject" validate:"required,max=255"`
	MarksObtained *float64 `json:"marks_obtained" validate:"required"`
	TotalMarks    *float64 `json:"total_marks" validate:"required"`
	AcademicYear  string   `json:"academic_year" validate:"required,academic_year"`
	Semester      string   `json:"semester" validate:"required,oneof=1 2 3 4 5 6 7 8"`
}

// UpdateResultRequest patches an existing result. Nil fields keep the
// stored value; the marks invariant is re-checked against the merged
// record.
type UpdateResultRequest struct {
	Subject       *string  `json:"subject" validate:"omitempty,min=1,max=255"`
	MarksObtained *float64 `json:"marks_obtained"`
	TotalMarks    *float64 `json:"total_marks"`
	AcademicYear  *string  `json:"academic_year" validate:"omitempty,academic_year"`
	Semester      *string  `json:"semester" validate:"omitempty,oneof=1 2 3 4 5 6 7 8"`
}

// ResultResponse is the public view of one result record.
type ResultResponse struct {
	ID            string    `json:"id"`
	StudentID     string    `json:"student_id"`
	StudentName   string    `json:"student_name"`
	Subject       string    `json:"subject"`
	MarksObtained float64   `json:"marks_obtained"`
	TotalMarks    float64   `json:"total_marks"`
	AcademicYear  string    `json:"academic_year"`
	Semester      string    `json:"semester"`
	Grade         string    `json:"grade"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ResultFiltersResponse lists the distinct values available for the
// results page filter dropdowns.
type ResultFiltersResponse struct {
	AcademicYears []string `json:"academic_years"`
	Semesters     []string `json:"semesters"`
	Subjects      []string `json:"subjects"`
}

// NewResultResponse maps a result model to its public view.
func NewResultResponse(result models.Result) ResultResponse {
	return ResultResponse{
		ID:            result.ID,
		StudentID:     result.StudentID,
		StudentName:   result.StudentName,
		Subject:       result.Subject,
		MarksObtained: result.MarksObtained,
		TotalMarks:    result.TotalMarks,
		AcademicYear:  result.AcademicYear,
		Semester:      result.Semester,
		Grade:         result.Grade,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}
}

// NewResultResponses maps a slice of results, keeping order.
func NewResultResponses(results []models.Result) []ResultResponse {
	responses := make([]ResultResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, NewResultResponse(result))
	}
	return responses
}
