package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/academic-voice-hub/avh-go-api/internal/analytics"
	"github.com/academic-voice-hub/avh-go-api/internal/models"
	"github.com/academic-voice-hub/avh-go-api/internal/repository"
)

func userIDFromContext(c *fiber.Ctx) (string, error) {
	value := c.Locals("user_id")
	if value == nil {
		return "", fmt.Errorf("missing user context")
	}

	switch v := value.(type) {
	case string:
		id := strings.TrimSpace(v)
		if id == "" {
			return "", fmt.Errorf("invalid user context")
		}
		return id, nil
	case fmt.Stringer:
		return strings.TrimSpace(v.String()), nil
	default:
		return "", fmt.Errorf("invalid user context")
	}
}

func userRoleFromContext(c *fiber.Ctx) models.Role {
	if v := c.Locals("user_role"); v != nil {
		if role, ok := v.(string); ok {
			return models.Role(strings.ToLower(strings.TrimSpace(role)))
		}
	}
	return ""
}

// resultFilterFromQuery reads the optional year/semester/subject query
// parameters shared by the results, report and narration endpoints.
// The literal "all" is equivalent to leaving a parameter out.
func resultFilterFromQuery(c *fiber.Ctx) repository.ResultFilter {
	return repository.ResultFilter{
		Subject:      normalizeFilterValue(c.Query("subject")),
		AcademicYear: normalizeFilterValue(c.Query("year")),
		Semester:     normalizeFilterValue(c.Query("semester")),
	}
}

func analyticsFilterFromQuery(c *fiber.Ctx) analytics.Filter {
	return analytics.Filter{
		StudentID:    normalizeFilterValue(c.Query("student")),
		Subject:      normalizeFilterValue(c.Query("subject")),
		AcademicYear: normalizeFilterValue(c.Query("year")),
		Semester:     normalizeFilterValue(c.Query("semester")),
	}
}

func normalizeFilterValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == analytics.All {
		return ""
	}
	return trimmed
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
