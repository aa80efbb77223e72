package handlers

import (
	"errors"

	"greenloop/internal/core/domain"
	"greenloop/internal/core/services"
	"greenloop/internal/core/workflow"
	"greenloop/internal/pkg/pagination"
	"greenloop/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SubmissionHandler drives the self-service submission workflow
// (scan -> form -> success) and the user's submission history.
type SubmissionHandler struct {
	manager           *workflow.Manager
	submissionService *services.SubmissionService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(manager *workflow.Manager, submissionService *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		manager:           manager,
		submissionService: submissionService,
	}
}

// currentWorkflow resolves the caller's workflow. A session that already
// carries a QR identity cookie skips the scan step.
func (h *SubmissionHandler) currentWorkflow(c *fiber.Ctx) (*workflow.Workflow, uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return nil, 0, false
	}
	hasCachedIdentity := c.Cookies("qr_identity") != ""
	return h.manager.Get(userID, hasCachedIdentity), userID, true
}

// State returns the caller's workflow snapshot
// @Summary Get submission workflow state
// @Tags Submissions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /submissions/workflow [get]
func (h *SubmissionHandler) State(c *fiber.Ctx) error {
	wf, _, ok := h.currentWorkflow(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	return response.Success(c, "Workflow state", wf.Snapshot())
}

// ScanRequest carries a scanned booth QR token
type ScanRequest struct {
	Token string `json:"token"`
}

// Scan resolves a booth QR token and binds the booth to the draft
// @Summary Scan a booth QR code
// @Tags Submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ScanRequest true "Booth QR token"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /submissions/workflow/scan [post]
func (h *SubmissionHandler) Scan(c *fiber.Ctx) error {
	wf, _, ok := h.currentWorkflow(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Token == "" {
		return response.BadRequest(c, "Booth token is required")
	}

	booth, err := wf.Scan(c.Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Unknown booth QR code")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to resolve booth")
		}
	}

	return response.Success(c, "Booth resolved", fiber.Map{
		"booth": booth,
		"state": wf.Snapshot().State,
	})
}

// SkipScan moves to manual entry without a booth
// @Summary Skip the scan step
// @Tags Submissions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /submissions/workflow/skip-scan [post]
func (h *SubmissionHandler) SkipScan(c *fiber.Ctx) error {
	wf, _, ok := h.currentWorkflow(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := wf.SkipScan(); err != nil {
		return response.BadRequest(c, "Scan can only be skipped at the scan step")
	}

	return response.Success(c, "Manual entry", fiber.Map{
		"state": wf.Snapshot().State,
	})
}

// UpdateDraft applies form input to the live draft
// @Summary Update the submission draft
// @Tags Submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body workflow.DraftInput true "Draft fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /submissions/workflow/draft [put]
func (h *SubmissionHandler) UpdateDraft(c *fiber.Ctx) error {
	wf, _, ok := h.currentWorkflow(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var in workflow.DraftInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := wf.UpdateDraft(in); err != nil {
		return response.BadRequest(c, "Draft can only be edited at the form step")
	}

	return response.Success(c, "Draft updated", wf.Snapshot())
}

// Submit validates the draft and records the submission
// @Summary Submit the drafted waste entry
// @Tags Submissions
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /submissions/workflow/submit [post]
func (h *SubmissionHandler) Submit(c *fiber.Ctx) error {
	wf, _, ok := h.currentWorkflow(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	record, err := wf.Submit(c.Context())
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			return response.UnprocessableEntity(c, "Submission is invalid", vErr.Fields)
		case errors.Is(err, domain.ErrSubmitInFlight):
			return response.Conflict(c, "A submit is already in progress")
		case errors.Is(err, domain.ErrPersistenceFailure):
			// Draft kept; the client may retry the same submit.
			return response.InternalServerError(c, "Failed to save submission, please retry")
		default:
			return response.BadRequest(c, "Submit is not allowed at this step")
		}
	}

	return response.Created(c, "Submission recorded, pending booth verification", fiber.Map{
		"submission": record,
		"state":      wf.Snapshot().State,
	})
}

// Reset returns the workflow to its entry step
// @Summary Reset the submission workflow
// @Tags Submissions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /submissions/workflow/reset [post]
func (h *SubmissionHandler) Reset(c *fiber.Ctx) error {
	wf, _, ok := h.currentWorkflow(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	wf.Reset()
	return response.Success(c, "Workflow reset", wf.Snapshot())
}

// History lists the caller's past submissions, newest first
// @Summary List my submissions
// @Tags Submissions
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /submissions [get]
func (h *SubmissionHandler) History(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	records, total, err := h.submissionService.ListByUser(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list submissions")
	}

	return response.Success(c, "Submissions retrieved successfully",
		pagination.NewResponse(records, params, total))
}
