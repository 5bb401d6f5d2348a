package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/academic-voice-hub/avh-go-api/internal/dto"
	"github.com/academic-voice-hub/avh-go-api/internal/observability"
	"github.com/academic-voice-hub/avh-go-api/internal/service"
	"github.com/academic-voice-hub/avh-go-api/internal/utils"
)

// StudentHandler exposes the student-facing results surface: listing and
// filtering, the PDF report download, narration and the voice-over toggle.
type StudentHandler struct {
	results   service.ResultService
	reports   service.ReportService
	narration service.NarrationService
	auth      service.AuthService
	logger    zerolog.Logger
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(results service.ResultService, reports service.ReportService, narration service.NarrationService, auth service.AuthService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		results:   results,
		reports:   reports,
		narration: narration,
		auth:      auth,
		logger:    logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches the student endpoints.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("/results", h.listResults)
	router.Get("/results/filters", h.resultFilters)
	router.Get("/results/report", h.downloadReport)
	router.Get("/results/narration", h.narrationScript)
	router.Post("/results/narration/speak", h.speak)
	router.Post("/results/narration/stop", h.stopSpeaking)
	router.Patch("/voice-over", h.setVoiceOver)
}

func (h *StudentHandler) listResults(c *fiber.Ctx) error {
	studentID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	results, err := h.results.ListByStudent(c.Context(), studentID, resultFilterFromQuery(c))
	if err != nil {
		return h.internalError(c, err, "failed to load results")
	}

	return utils.SendSuccess(c, "results retrieved", results)
}

func (h *StudentHandler) resultFilters(c *fiber.Ctx) error {
	studentID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	filters, err := h.results.FiltersForStudent(c.Context(), studentID)
	if err != nil {
		return h.internalError(c, err, "failed to load result filters")
	}

	return utils.SendSuccess(c, "filters retrieved", filters)
}

func (h *StudentHandler) downloadReport(c *fiber.Ctx) error {
	studentID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	generated, err := h.reports.Generate(c.Context(), studentID, resultFilterFromQuery(c))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		return h.internalError(c, err, "failed to generate report")
	}

	observability.ReportsGenerated().Inc()

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", generated.FileName))
	return c.Send(generated.Content)
}

func (h *StudentHandler) narrationScript(c *fiber.Ctx) error {
	studentID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	response, err := h.narration.BuildScript(c.Context(), studentID, analyticsFilterFromQuery(c))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		return h.internalError(c, err, "failed to build narration script")
	}

	return utils.SendSuccess(c, "narration script built", response)
}

func (h *StudentHandler) speak(c *fiber.Ctx) error {
	studentID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	response, err := h.narration.Speak(c.Context(), studentID, analyticsFilterFromQuery(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case errors.Is(err, service.ErrVoiceOverDisabled):
			return utils.SendError(c, fiber.StatusForbidden, err.Error())
		default:
			return h.internalError(c, err, "failed to start narration")
		}
	}

	observability.NarrationSessions().Inc()

	return utils.SendSuccess(c, "narration started", response)
}

func (h *StudentHandler) stopSpeaking(c *fiber.Ctx) error {
	if err := h.narration.Stop(c.Context()); err != nil {
		return h.internalError(c, err, "failed to stop narration")
	}

	return utils.SendSuccess(c, "narration stopped", nil)
}

func (h *StudentHandler) setVoiceOver(c *fiber.Ctx) error {
	studentID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	var payload dto.VoiceOverRequest
	if err := c.BodyParser(&payload); err != nil || payload.Enabled == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	profile, err := h.auth.SetVoiceOver(c.Context(), studentID, *payload.Enabled)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		return h.internalError(c, err, "failed to update voice-over preference")
	}

	return utils.SendSuccess(c, "voice-over preference updated", profile)
}

func (h *StudentHandler) internalError(c *fiber.Ctx, err error, message string) error {
	h.logger.Error().Err(err).Str("path", c.Path()).Msg(message)
	return utils.SendError(c, fiber.StatusInternalServerError, message)
}
