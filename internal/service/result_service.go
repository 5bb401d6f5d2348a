package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/academic-voice-hub/avh-go-api/internal/dto"
	"github.com/academic-voice-hub/avh-go-api/internal/grading"
	"github.com/academic-voice-hub/avh-go-api/internal/models"
	"github.com/academic-voice-hub/avh-go-api/internal/repository"
)

// ResultService encapsulates the result lifecycle: create with grade
// computation and student-name snapshot, patch with merged revalidation,
// idempotent delete and filtered listing.
type ResultService interface {
	Add(ctx context.Context, payload dto.AddResultRequest) (dto.ResultResponse, error)
	Update(ctx context.Context, resultID string, payload dto.UpdateResultRequest) (dto.ResultResponse, error)
	Delete(ctx context.Context, resultID string) error
	ListByStudent(ctx context.Context, studentID string, filter repository.ResultFilter) ([]dto.ResultResponse, error)
	List(ctx context.Context, filter repository.ResultFilter) ([]dto.ResultResponse, error)
	FiltersForStudent(ctx context.Context, studentID string) (dto.ResultFiltersResponse, error)
}

type resultService struct {
	results   repository.ResultRepository
	students  repository.StudentRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// NewResultService constructs the result service.
func NewResultService(results repository.ResultRepository, students repository.StudentRepository, validator *validator.Validate, logger zerolog.Logger) ResultService {
	return &resultService{
		results:   results,
		students:  students,
		validator: validator,
		logger:    logger.With().Str("component", "result_service").Logger(),
		now:       time.Now,
		newID:     func() string { return fmt.Sprintf("result_%d", time.Now().UnixNano()) },
	}
}

func (s *resultService) Add(ctx context.Context, payload dto.AddResultRequest) (dto.ResultResponse, error) {
	tracer := otel.Tracer("github.com/academic-voice-hub/avh-go-api/internal/service/result")
	ctx, span := tracer.Start(ctx, "result.add")
	span.SetAttributes(attribute.String("result.student_id", payload.StudentID))
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.ResultResponse{}, err
	}

	if err := validateMarks(*payload.MarksObtained, *payload.TotalMarks); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "marks_invalid")
		return dto.ResultResponse{}, err
	}

	student, err := s.students.GetByID(ctx, payload.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "student_not_found")
			return dto.ResultResponse{}, ErrStudentNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "student_lookup_failed")
		return dto.ResultResponse{}, err
	}

	now := s.now()
	result := models.Result{
		ID:            s.newID(),
		StudentID:     student.ID,
		StudentName:   student.Name,
		Subject:       payload.Subject,
		MarksObtained: *payload.MarksObtained,
		TotalMarks:    *payload.TotalMarks,
		AcademicYear:  payload.AcademicYear,
		Semester:      payload.Semester,
		Grade:         string(grading.ForMarks(*payload.MarksObtained, *payload.TotalMarks)),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.results.Create(ctx, &result); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "result_create_failed")
		return dto.ResultResponse{}, err
	}

	s.logger.Info().
		Str("result_id", result.ID).
		Str("student_id", result.StudentID).
		Str("subject", result.Subject).
		Str("grade", result.Grade).
		Msg("result recorded")

	span.SetAttributes(attribute.String("result.grade", result.Grade))

	return dto.NewResultResponse(result), nil
}

func (s *resultService) Update(ctx context.Context, resultID string, payload dto.UpdateResultRequest) (dto.ResultResponse, error) {
	tracer := otel.Tracer("github.com/academic-voice-hub/avh-go-api/internal/service/result")
	ctx, span := tracer.Start(ctx, "result.update")
	span.SetAttributes(attribute.String("result.id", resultID))
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.ResultResponse{}, err
	}

	result, err := s.results.GetByID(ctx, resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "result_not_found")
			return dto.ResultResponse{}, ErrResultNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "result_lookup_failed")
		return dto.ResultResponse{}, err
	}

	if payload.Subject != nil {
		result.Subject = *payload.Subject
	}
	if payload.AcademicYear != nil {
		result.AcademicYear = *payload.AcademicYear
	}
	if payload.Semester != nil {
		result.Semester = *payload.Semester
	}
	if payload.MarksObtained != nil {
		result.MarksObtained = *payload.MarksObtained
	}
	if payload.TotalMarks != nil {
		result.TotalMarks = *payload.TotalMarks
	}

	// The invariant holds over the merged record, not just the patch.
	if err := validateMarks(result.MarksObtained, result.TotalMarks); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "marks_invalid")
		return dto.ResultResponse{}, err
	}

	result.Grade = string(grading.ForMarks(result.MarksObtained, result.TotalMarks))
	result.UpdatedAt = s.now()

	if err := s.results.Update(ctx, &result); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "result_update_failed")
		return dto.ResultResponse{}, err
	}

	s.logger.Info().
		Str("result_id", result.ID).
		Str("grade", result.Grade).
		Msg("result updated")

	return dto.NewResultResponse(result), nil
}

// Delete removes a result. Deleting an id that is already absent is a
// silent no-op.
func (s *resultService) Delete(ctx context.Context, resultID string) error {
	removed, err := s.results.Delete(ctx, resultID)
	if err != nil {
		return err
	}

	if removed {
		s.logger.Info().Str("result_id", resultID).Msg("result deleted")
	}

	return nil
}

func (s *resultService) ListByStudent(ctx context.Context, studentID string, filter repository.ResultFilter) ([]dto.ResultResponse, error) {
	filter.StudentID = studentID
	return s.List(ctx, filter)
}

func (s *resultService) List(ctx context.Context, filter repository.ResultFilter) ([]dto.ResultResponse, error) {
	results, err := s.results.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewResultResponses(results), nil
}

// FiltersForStudent returns the distinct years, semesters and subjects
// present in a student's results, for the filter dropdowns.
func (s *resultService) FiltersForStudent(ctx context.Context, studentID string) (dto.ResultFiltersResponse, error) {
	results, err := s.results.List(ctx, repository.ResultFilter{StudentID: studentID})
	if err != nil {
		return dto.ResultFiltersResponse{}, err
	}

	years := make(map[string]struct{})
	semesters := make(map[string]struct{})
	subjects := make(map[string]struct{})
	for _, result := range results {
		years[result.AcademicYear] = struct{}{}
		semesters[result.Semester] = struct{}{}
		subjects[result.Subject] = struct{}{}
	}

	return dto.ResultFiltersResponse{
		AcademicYears: sortedKeys(years),
		Semesters:     sortedKeys(semesters),
		Subjects:      sortedKeys(subjects),
	}, nil
}

func validateMarks(obtained, total float64) error {
	if total <= 0 {
		return ErrTotalMarksNotPositive
	}
	if obtained < 0 || obtained > total {
		return ErrMarksOutOfRange
	}
	return nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
