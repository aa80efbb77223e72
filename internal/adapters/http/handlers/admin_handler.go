package handlers

import (
	"errors"

	"greenloop/internal/core/domain"
	"greenloop/internal/core/services"
	"greenloop/internal/pkg/pagination"
	"greenloop/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles booth operator endpoints: scan-and-credit,
// pending verification and the credit ledger.
type AdminHandler struct {
	creditService     *services.CreditService
	submissionService *services.SubmissionService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(creditService *services.CreditService, submissionService *services.SubmissionService) *AdminHandler {
	return &AdminHandler{
		creditService:     creditService,
		submissionService: submissionService,
	}
}

// ResolveUser resolves a scanned member QR token
// @Summary Resolve a member QR code
// @Description Identify the member behind a scanned QR token before weighing
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param token path string true "Member QR token"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/members/{token} [get]
func (h *AdminHandler) ResolveUser(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return response.BadRequest(c, "QR token is required")
	}

	user, err := h.creditService.ResolveUserByToken(c.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownUser) {
			return response.NotFound(c, "Unknown member QR code")
		}
		return response.InternalServerError(c, "Failed to resolve member")
	}

	return response.Success(c, "Member resolved", fiber.Map{
		"user": user,
	})
}

// ScanAndCredit credits a weighed drop-off instantly
// @Summary Scan a member QR and credit a weighed drop-off
// @Description Identify the member, verify the booth accepts the waste type, compute points and credit the balance atomically
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ScanAndCreditInput true "Weighed collection"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/credits [post]
func (h *AdminHandler) ScanAndCredit(c *fiber.Ctx) error {
	operatorID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.ScanAndCreditInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.UserToken == "" {
		return response.BadRequest(c, "Member QR token is required")
	}
	if input.BoothID == 0 {
		return response.BadRequest(c, "Booth ID is required")
	}

	result, err := h.creditService.ScanAndCredit(c.Context(), operatorID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownUser):
			return response.NotFound(c, "Unknown member QR code")
		case errors.Is(err, services.ErrBoothNotFound):
			return response.NotFound(c, "Booth not found")
		case errors.Is(err, domain.ErrWasteTypeNotAccepted):
			return response.BadRequest(c, "This booth does not accept that waste type")
		case errors.Is(err, domain.ErrUnknownWasteType):
			return response.BadRequest(c, "Unknown waste type")
		case errors.Is(err, domain.ErrInvalidQuantity):
			return response.BadRequest(c, "Quantity must be greater than zero")
		case errors.Is(err, domain.ErrSubmitInFlight):
			return response.Conflict(c, "A credit is already in progress")
		case errors.Is(err, domain.ErrConcurrentCreditConflict):
			return response.Conflict(c, "Concurrent credit conflict, retry the operation")
		default:
			return response.InternalServerError(c, "Failed to apply credit")
		}
	}

	return response.Created(c, "Credit applied", result)
}

// ListPending lists submissions awaiting verification
// @Summary List pending submissions
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param booth_id query int false "Filter by booth"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /admin/submissions/pending [get]
func (h *AdminHandler) ListPending(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	var boothID *uint
	if raw := c.QueryInt("booth_id"); raw > 0 {
		id := uint(raw)
		boothID = &id
	}

	records, total, err := h.submissionService.ListPending(c.Context(), boothID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list pending submissions")
	}

	return response.Success(c, "Pending submissions retrieved successfully",
		pagination.NewResponse(records, params, total))
}

// VerifyRequest carries the booth crediting a verified submission when
// the submission itself was entered manually without one.
type VerifyRequest struct {
	BoothID uint `json:"booth_id"`
}

// Verify approves a pending submission and credits its points
// @Summary Verify a pending submission
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Param body body VerifyRequest false "Fallback booth for manual-entry submissions"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/submissions/{id}/verify [patch]
func (h *AdminHandler) Verify(c *fiber.Ctx) error {
	operatorID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid submission ID")
	}

	var req VerifyRequest
	_ = c.BodyParser(&req) // body is optional

	entry, err := h.submissionService.Verify(c.Context(), uint(id), operatorID, req.BoothID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSubmissionNotFound):
			return response.NotFound(c, "Submission not found")
		case errors.Is(err, services.ErrSubmissionNotPending):
			return response.Conflict(c, "Submission is no longer pending")
		case errors.Is(err, domain.ErrConcurrentCreditConflict):
			return response.Conflict(c, "Concurrent credit conflict, retry the operation")
		default:
			return response.InternalServerError(c, "Failed to verify submission")
		}
	}

	return response.Success(c, "Submission verified and credited", fiber.Map{
		"entry": entry,
	})
}

// Reject marks a pending submission rejected without crediting
// @Summary Reject a pending submission
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/submissions/{id}/reject [patch]
func (h *AdminHandler) Reject(c *fiber.Ctx) error {
	operatorID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid submission ID")
	}

	if err := h.submissionService.Reject(c.Context(), uint(id), operatorID); err != nil {
		switch {
		case errors.Is(err, services.ErrSubmissionNotFound):
			return response.NotFound(c, "Submission not found")
		case errors.Is(err, services.ErrSubmissionNotPending):
			return response.Conflict(c, "Submission is no longer pending")
		default:
			return response.InternalServerError(c, "Failed to reject submission")
		}
	}

	return response.Success(c, "Submission rejected", nil)
}
