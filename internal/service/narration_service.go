package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/academic-voice-hub/avh-go-api/internal/analytics"
	"github.com/academic-voice-hub/avh-go-api/internal/dto"
	"github.com/academic-voice-hub/avh-go-api/internal/narration"
	"github.com/academic-voice-hub/avh-go-api/internal/repository"
	"github.com/academic-voice-hub/avh-go-api/pkg/speech"
)

// ErrVoiceOverDisabled indicates the student has not enabled narration.
var ErrVoiceOverDisabled = errors.New("voice over is not enabled for this student")

// NarrationService builds the voice-over script for a filtered result set
// and optionally drives the configured synthesizer.
type NarrationService interface {
	BuildScript(ctx context.Context, studentID string, filter analytics.Filter) (dto.NarrationResponse, error)
	Speak(ctx context.Context, studentID string, filter analytics.Filter) (dto.NarrationResponse, error)
	Stop(ctx context.Context) error
}

type narrationService struct {
	results  repository.ResultRepository
	students repository.StudentRepository
	narrator *speech.Narrator
	options  speech.Options
	logger   zerolog.Logger
}

// NewNarrationService constructs the narration service. Zero-valued options
// fall back to the synthesizer defaults.
func NewNarrationService(results repository.ResultRepository, students repository.StudentRepository, narrator *speech.Narrator, options speech.Options, logger zerolog.Logger) NarrationService {
	if options.Rate <= 0 {
		options.Rate = speech.DefaultOptions.Rate
	}
	if options.Pitch <= 0 {
		options.Pitch = speech.DefaultOptions.Pitch
	}

	return &narrationService{
		results:  results,
		students: students,
		narrator: narrator,
		options:  options,
		logger:   logger.With().Str("component", "narration_service").Logger(),
	}
}

func (s *narrationService) BuildScript(ctx context.Context, studentID string, filter analytics.Filter) (dto.NarrationResponse, error) {
	script, err := s.buildScript(ctx, studentID, filter)
	if err != nil {
		return dto.NarrationResponse{}, err
	}

	return dto.NarrationResponse{
		Script:              script,
		EstimatedDurationMS: speech.EstimateDuration(script).Milliseconds(),
		Speaking:            s.narrator.Speaking(),
	}, nil
}

// Speak starts narrating the script. A narration already in flight is
// cancelled first; the synthesizer never speaks two scripts at once.
func (s *narrationService) Speak(ctx context.Context, studentID string, filter analytics.Filter) (dto.NarrationResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NarrationResponse{}, ErrStudentNotFound
		}
		return dto.NarrationResponse{}, err
	}

	if !student.VoiceOverEnabled {
		return dto.NarrationResponse{}, ErrVoiceOverDisabled
	}

	script, err := s.buildScript(ctx, studentID, filter)
	if err != nil {
		return dto.NarrationResponse{}, err
	}

	s.narrator.Speak(script, s.options)
	s.logger.Info().Str("student_id", studentID).Int("script_len", len(script)).Msg("narration requested")

	return dto.NarrationResponse{
		Script:              script,
		EstimatedDurationMS: speech.EstimateDuration(script).Milliseconds(),
		Speaking:            true,
	}, nil
}

// Stop cancels any active narration. Stopping when idle is a no-op.
func (s *narrationService) Stop(_ context.Context) error {
	s.narrator.Stop()
	return nil
}

func (s *narrationService) buildScript(ctx context.Context, studentID string, filter analytics.Filter) (string, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrStudentNotFound
		}
		return "", err
	}

	results, err := s.results.List(ctx, repository.ResultFilter{
		StudentID:    studentID,
		Subject:      activeValue(filter.Subject),
		AcademicYear: activeValue(filter.AcademicYear),
		Semester:     activeValue(filter.Semester),
	})
	if err != nil {
		return "", err
	}

	return narration.BuildScript(results, student.Name, student.RollNumber, filter), nil
}
