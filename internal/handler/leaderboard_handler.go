package handler

import (
	"ai-quiz/internal/domain"
	"ai-quiz/internal/dto"
	"ai-quiz/internal/middleware"
	"ai-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// DefaultListLimit is how many entries GET /api/leaderboard returns by default.
const DefaultListLimit = 10

// LeaderboardHandler serves the persisted leaderboard
type LeaderboardHandler struct {
	service service.QuizService
}

// NewLeaderboardHandler creates a new LeaderboardHandler instance
func NewLeaderboardHandler(service service.QuizService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// List godoc
// @Summary List the leaderboard
// @Description Entries best first. The entry created by the current session is highlighted.
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Number of entries (1-100)" default(10)
// @Success 200 {object} dto.LeaderboardResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /leaderboard [get]
func (h *LeaderboardHandler) List(c *fiber.Ctx) error {
	limit, ok := c.Locals(middleware.LocalLimit).(int)
	if !ok {
		limit = DefaultListLimit
	}
	entries := h.service.Leaderboard(c.UserContext(), limit)
	return c.JSON(dto.NewLeaderboardResponse(entries, h.service.Snapshot().LastEntryID))
}

// Reset godoc
// @Summary Clear the leaderboard
// @Description Requires {"confirm": true}; anything else is refused with 409.
// @Tags leaderboard
// @Accept json
// @Param request body dto.ResetLeaderboardRequest true "Confirmation"
// @Success 204
// @Failure 409 {object} middleware.ErrorResponse
// @Router /leaderboard [delete]
func (h *LeaderboardHandler) Reset(c *fiber.Ctx) error {
	var req dto.ResetLeaderboardRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return domain.NewInvalidInputError("invalid request body")
		}
	}
	if err := h.service.ResetLeaderboard(c.UserContext(), req.Confirm); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
