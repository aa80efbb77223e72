package handlers

import (
	"errors"

	"greenloop/internal/core/services"
	"greenloop/internal/pkg/pagination"
	"greenloop/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles profile, QR identity and impact endpoints
type UserHandler struct {
	userService   *services.UserService
	creditService *services.CreditService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, creditService *services.CreditService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		creditService: creditService,
	}
}

// Profile returns the caller's profile
// @Summary Get my profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/me [get]
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	profile, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get profile")
	}

	return response.Success(c, "Profile retrieved successfully", fiber.Map{
		"user": profile,
	})
}

// QRToken returns the caller's QR identity token for card rendering
// @Summary Get my QR identity token
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /users/me/qr [get]
func (h *UserHandler) QRToken(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	token, err := h.userService.GetQRToken(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get QR token")
	}

	return response.Success(c, "QR token retrieved successfully", fiber.Map{
		"qr_token": token,
	})
}

// Impact returns the caller's recycling impact stats
// @Summary Get my recycling impact
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /users/me/impact [get]
func (h *UserHandler) Impact(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	stats, err := h.userService.GetImpact(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get impact stats")
	}

	return response.Success(c, "Impact stats retrieved successfully", stats)
}

// Ledger lists the caller's credit ledger entries, newest first
// @Summary Get my credit ledger
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /users/me/ledger [get]
func (h *UserHandler) Ledger(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	entries, total, err := h.creditService.LedgerHistory(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to get ledger history")
	}

	return response.Success(c, "Ledger retrieved successfully",
		pagination.NewResponse(entries, params, total))
}
