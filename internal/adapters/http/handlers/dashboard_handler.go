package handlers

import (
	"greenloop/internal/core/services"
	"greenloop/internal/pkg/pagination"
	"greenloop/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles community-facing dashboard endpoints
type DashboardHandler struct {
	userService *services.UserService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(userService *services.UserService) *DashboardHandler {
	return &DashboardHandler{userService: userService}
}

// Leaderboard returns the top recyclers by point balance
// @Summary Community leaderboard
// @Tags Dashboard
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /dashboard/leaderboard [get]
func (h *DashboardHandler) Leaderboard(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	entries, total, err := h.userService.Leaderboard(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to get leaderboard")
	}

	return response.Success(c, "Leaderboard retrieved successfully",
		pagination.NewResponse(entries, params, total))
}
