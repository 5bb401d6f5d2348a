package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/academic-voice-hub/avh-go-api/internal/dto"
	"github.com/academic-voice-hub/avh-go-api/internal/repository"
	"github.com/academic-voice-hub/avh-go-api/internal/service"
	"github.com/academic-voice-hub/avh-go-api/internal/utils"
)

// TeacherHandler exposes the teacher surface: the student roster, result
// CRUD and the analytics dashboard.
type TeacherHandler struct {
	results   service.ResultService
	analytics service.AnalyticsService
	students  repository.StudentRepository
	logger    zerolog.Logger
}

// NewTeacherHandler constructs the handler.
func NewTeacherHandler(results service.ResultService, analytics service.AnalyticsService, students repository.StudentRepository, logger zerolog.Logger) *TeacherHandler {
	return &TeacherHandler{
		results:   results,
		analytics: analytics,
		students:  students,
		logger:    logger.With().Str("component", "teacher_handler").Logger(),
	}
}

// Register attaches the teacher endpoints.
func (h *TeacherHandler) Register(router fiber.Router) {
	router.Get("/students", h.listStudents)
	router.Get("/students/:id/results", h.studentResults)
	router.Post("/results", h.addResult)
	router.Patch("/results/:id", h.updateResult)
	router.Delete("/results/:id", h.deleteResult)
	router.Get("/analytics", h.analyticsSummary)
}

func (h *TeacherHandler) listStudents(c *fiber.Ctx) error {
	students, err := h.students.List(c.Context())
	if err != nil {
		return h.internalError(c, err, "failed to load students")
	}

	responses := make([]dto.UserResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, dto.NewStudentResponse(student))
	}

	return utils.SendSuccess(c, "students retrieved", responses)
}

func (h *TeacherHandler) studentResults(c *fiber.Ctx) error {
	studentID := c.Params("id")
	if studentID == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "student id is required")
	}

	results, err := h.results.ListByStudent(c.Context(), studentID, resultFilterFromQuery(c))
	if err != nil {
		return h.internalError(c, err, "failed to load results")
	}

	return utils.SendSuccess(c, "results retrieved", results)
}

func (h *TeacherHandler) addResult(c *fiber.Ctx) error {
	var payload dto.AddResultRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.results.Add(c.Context(), payload)
	if err != nil {
		return h.handleResultError(c, err, "failed to record result")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "result recorded", result)
}

func (h *TeacherHandler) updateResult(c *fiber.Ctx) error {
	resultID := c.Params("id")
	if resultID == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "result id is required")
	}

	var payload dto.UpdateResultRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.results.Update(c.Context(), resultID, payload)
	if err != nil {
		return h.handleResultError(c, err, "failed to update result")
	}

	return utils.SendSuccess(c, "result updated", result)
}

func (h *TeacherHandler) deleteResult(c *fiber.Ctx) error {
	resultID := c.Params("id")
	if resultID == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "result id is required")
	}

	if err := h.results.Delete(c.Context(), resultID); err != nil {
		return h.internalError(c, err, "failed to delete result")
	}

	return utils.SendSuccess(c, "result deleted", nil)
}

func (h *TeacherHandler) analyticsSummary(c *fiber.Ctx) error {
	summary, err := h.analytics.GetSummary(c.Context(), analyticsFilterFromQuery(c))
	if err != nil {
		return h.internalError(c, err, "failed to load analytics")
	}

	return utils.SendSuccess(c, "analytics retrieved", summary)
}

func (h *TeacherHandler) handleResultError(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "no student with this id")
	case errors.Is(err, service.ErrResultNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "result not found")
	case errors.Is(err, service.ErrMarksOutOfRange), errors.Is(err, service.ErrTotalMarksNotPositive), isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		return h.internalError(c, err, message)
	}
}

func (h *TeacherHandler) internalError(c *fiber.Ctx, err error, message string) error {
	h.logger.Error().Err(err).Str("path", c.Path()).Msg(message)
	return utils.SendError(c, fiber.StatusInternalServerError, message)
}
