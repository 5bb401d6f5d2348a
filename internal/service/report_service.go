package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/academic-voice-hub/avh-go-api/internal/report"
	"github.com/academic-voice-hub/avh-go-api/internal/repository"
)

// ReportRenderer turns a report document into downloadable bytes. The PDF
// implementation lives in pkg/pdfreport.
type ReportRenderer interface {
	Render(document report.Document) ([]byte, error)
}

// GeneratedReport is a finished, named report artifact.
type GeneratedReport struct {
	FileName string
	Content  []byte
}

// ReportService builds and renders a student's result report.
type ReportService interface {
	Generate(ctx context.Context, studentID string, filter repository.ResultFilter) (GeneratedReport, error)
}

type reportService struct {
	results  repository.ResultRepository
	students repository.StudentRepository
	renderer ReportRenderer
	logger   zerolog.Logger
}

// NewReportService constructs the report service.
func NewReportService(results repository.ResultRepository, students repository.StudentRepository, renderer ReportRenderer, logger zerolog.Logger) ReportService {
	return &reportService{
		results:  results,
		students: students,
		renderer: renderer,
		logger:   logger.With().Str("component", "report_service").Logger(),
	}
}

func (s *reportService) Generate(ctx context.Context, studentID string, filter repository.ResultFilter) (GeneratedReport, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GeneratedReport{}, ErrStudentNotFound
		}
		return GeneratedReport{}, err
	}

	filter.StudentID = studentID
	results, err := s.results.List(ctx, filter)
	if err != nil {
		return GeneratedReport{}, err
	}

	document := report.Build(results, student.Name, student.RollNumber)
	content, err := s.renderer.Render(document)
	if err != nil {
		return GeneratedReport{}, err
	}

	s.logger.Info().
		Str("student_id", studentID).
		Int("result_count", len(results)).
		Int("size_bytes", len(content)).
		Msg("result report generated")

	return GeneratedReport{FileName: document.FileName(), Content: content}, nil
}
