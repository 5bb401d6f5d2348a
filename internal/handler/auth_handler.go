package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/academic-voice-hub/avh-go-api/internal/dto"
	"github.com/academic-voice-hub/avh-go-api/internal/service"
	"github.com/academic-voice-hub/avh-go-api/internal/utils"
)

// AuthHandler wires registration, login and profile routes.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches the public auth endpoints.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
}

// RegisterProtected attaches the endpoints that require authentication.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Get("/me", h.me)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Register(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrRollNumberTaken):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, service.ErrRollNumberRequired), errors.Is(err, service.ErrInvalidRole), isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			return h.internalError(c, err, "registration failed")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "registration successful", response)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Login(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrInvalidRole), isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			return h.internalError(c, err, "login failed")
		}
	}

	return utils.SendSuccess(c, "login successful", response)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	profile, err := h.service.Profile(c.Context(), userRoleFromContext(c), userID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) || errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrInvalidRole) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid session")
		}
		return h.internalError(c, err, "failed to load profile")
	}

	return utils.SendSuccess(c, "profile retrieved", profile)
}

func (h *AuthHandler) internalError(c *fiber.Ctx, err error, message string) error {
	h.logger.Error().Err(err).Str("path", c.Path()).Msg(message)
	return utils.SendError(c, fiber.StatusInternalServerError, message)
}
