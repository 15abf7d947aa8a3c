package handler

import (
	"strings"

	"ai-quiz/internal/domain"
	"ai-quiz/internal/dto"
	"ai-quiz/internal/middleware"
	"ai-quiz/internal/service"
	"ai-quiz/internal/session"
	"ai-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler exposes the live quiz session over HTTP
type SessionHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(service service.QuizService, validator *validation.Validator) *SessionHandler {
	if validator == nil {
		validator = validation.NewValidator()
	}
	return &SessionHandler{service: service, validator: validator}
}

// GetSession godoc
// @Summary Get the current session
// @Description Returns the session snapshot. The correct answer is hidden until the question is answered.
// @Tags session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Router /session [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	return c.JSON(dto.NewSessionResponse(h.service.Snapshot()))
}

// Start godoc
// @Summary Start a quiz
// @Description Stores the player name and starts fetching questions. Returns while still LOADING.
// @Tags session
// @Accept json
// @Produce json
// @Param request body dto.StartRequest true "Player"
// @Success 202 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /session/start [post]
func (h *SessionHandler) Start(c *fiber.Ctx) error {
	var req dto.StartRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if errs := h.validator.Struct(req); len(errs) > 0 {
		return errs
	}
	return h.respond(c, fiber.StatusAccepted, session.Start{Name: req.Name})
}

// Answer godoc
// @Summary Answer the current question
// @Tags session
// @Accept json
// @Produce json
// @Param request body dto.AnswerRequest true "Option index 0-3"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /session/answer [post]
func (h *SessionHandler) Answer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.Struct(req); len(errs) > 0 {
		return errs
	}
	return h.respond(c, fiber.StatusOK, session.SelectOption{Index: *req.Option})
}

// Next godoc
// @Summary Advance to the next question, or finish the quiz
// @Tags session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /session/next [post]
func (h *SessionHandler) Next(c *fiber.Ctx) error {
	return h.respond(c, fiber.StatusOK, session.Next{})
}

// Restart godoc
// @Summary Leave the result screen
// @Tags session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /session/restart [post]
func (h *SessionHandler) Restart(c *fiber.Ctx) error {
	return h.respond(c, fiber.StatusOK, session.Restart{})
}

// Retry godoc
// @Summary Fetch questions again after a failure
// @Tags session
// @Produce json
// @Success 202 {object} dto.SessionResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /session/retry [post]
func (h *SessionHandler) Retry(c *fiber.Ctx) error {
	return h.respond(c, fiber.StatusAccepted, session.Retry{})
}

// Home godoc
// @Summary Return to the welcome screen from the error screen
// @Tags session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /session/home [post]
func (h *SessionHandler) Home(c *fiber.Ctx) error {
	return h.respond(c, fiber.StatusOK, session.Home{})
}

func (h *SessionHandler) respond(c *fiber.Ctx, status int, ev session.Event) error {
	s, err := h.service.Send(c.UserContext(), ev)
	if err != nil {
		c.Locals(middleware.LocalSnapshot, dto.NewSessionResponse(s))
		return err
	}
	if s.State != session.StateLoading {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(dto.NewSessionResponse(s))
}
