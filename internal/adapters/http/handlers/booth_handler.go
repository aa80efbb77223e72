package handlers

import (
	"errors"
	"strconv"

	"greenloop/internal/core/domain"
	"greenloop/internal/core/services"
	"greenloop/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BoothHandler handles the collection booth directory endpoints
type BoothHandler struct {
	boothService *services.BoothService
}

// NewBoothHandler creates a new booth handler
func NewBoothHandler(boothService *services.BoothService) *BoothHandler {
	return &BoothHandler{boothService: boothService}
}

// List handles booth directory search
// @Summary List collection booths
// @Description List booths filtered by text query and status, nearest first when lat/lng are given
// @Tags Booths
// @Accept json
// @Produce json
// @Param q query string false "Free-text filter on name, address and area"
// @Param status query string false "Booth status filter (active, busy, inactive, maintenance)"
// @Param lat query number false "Caller latitude"
// @Param lng query number false "Caller longitude"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /booths [get]
func (h *BoothHandler) List(c *fiber.Ctx) error {
	query := c.Query("q")

	// Status defaults to "all booths" when omitted
	status := domain.BoothStatusAll
	if raw := c.Query("status"); raw != "" {
		status = domain.BoothStatus(raw)
		switch status {
		case domain.BoothActive, domain.BoothBusy, domain.BoothInactive, domain.BoothMaintenance:
		default:
			return response.BadRequest(c, "Unknown booth status")
		}
	}

	// Location is optional but must be complete and in range when given
	loc, err := parseLocation(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	results, err := h.boothService.Search(c.Context(), query, status, loc)
	if err != nil {
		return response.InternalServerError(c, "Failed to list booths")
	}

	return response.Success(c, "Booths retrieved successfully", fiber.Map{
		"booths": results,
		"count":  len(results),
	})
}

// Get handles booth detail
// @Summary Get booth by ID
// @Tags Booths
// @Accept json
// @Produce json
// @Param id path int true "Booth ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /booths/{id} [get]
func (h *BoothHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid booth ID")
	}

	booth, err := h.boothService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrBoothNotFound) {
			return response.NotFound(c, "Booth not found")
		}
		return response.InternalServerError(c, "Failed to get booth")
	}

	return response.Success(c, "Booth retrieved successfully", fiber.Map{
		"booth": booth,
	})
}

// CreateBoothRequest represents booth creation request body (admin)
type CreateBoothRequest struct {
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Area          string   `json:"area"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	AcceptedTypes []string `json:"accepted_types"`
	OpeningHours  string   `json:"opening_hours"`
	ContactPhone  string   `json:"contact_phone"`
}

// Create handles booth registration (admin)
// @Summary Create a collection booth
// @Tags Booths
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateBoothRequest true "Booth data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/booths [post]
func (h *BoothHandler) Create(c *fiber.Ctx) error {
	var req CreateBoothRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Booth name is required")
	}
	if len(req.AcceptedTypes) == 0 {
		return response.BadRequest(c, "At least one accepted waste type is required")
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return response.BadRequest(c, "Latitude and longitude must be given together")
	}

	input := &services.CreateBoothInput{
		Name:         req.Name,
		Address:      req.Address,
		Area:         req.Area,
		OpeningHours: req.OpeningHours,
		ContactPhone: req.ContactPhone,
	}
	for _, t := range req.AcceptedTypes {
		input.AcceptedTypes = append(input.AcceptedTypes, domain.WasteType(t))
	}
	if req.Latitude != nil {
		input.Location = &domain.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	booth, err := h.boothService.CreateBooth(c.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidLocation) {
			return response.BadRequest(c, "Booth coordinates are out of range")
		}
		return response.InternalServerError(c, "Failed to create booth")
	}

	return response.Created(c, "Booth created successfully", fiber.Map{
		"booth": booth,
	})
}

// UpdateStatusRequest represents booth status change request body
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles booth status change (admin)
// @Summary Update booth status
// @Tags Booths
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booth ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/booths/{id}/status [patch]
func (h *BoothHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid booth ID")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.boothService.UpdateStatus(c.Context(), uint(id), domain.BoothStatus(req.Status)); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			return response.BadRequest(c, "Unknown booth status")
		case errors.Is(err, services.ErrBoothNotFound):
			return response.NotFound(c, "Booth not found")
		default:
			return response.InternalServerError(c, "Failed to update booth status")
		}
	}

	return response.Success(c, "Booth status updated", nil)
}

// parseLocation reads optional lat/lng query params. Both must be present
// together and within coordinate range.
func parseLocation(c *fiber.Ctx) (*domain.Coordinate, error) {
	rawLat, rawLng := c.Query("lat"), c.Query("lng")
	if rawLat == "" && rawLng == "" {
		return nil, nil
	}
	if rawLat == "" || rawLng == "" {
		return nil, errors.New("lat and lng must be given together")
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return nil, errors.New("invalid lat")
	}
	lng, err := strconv.ParseFloat(rawLng, 64)
	if err != nil {
		return nil, errors.New("invalid lng")
	}

	loc := &domain.Coordinate{Latitude: lat, Longitude: lng}
	if !loc.Valid() {
		return nil, errors.New("lat/lng out of range")
	}
	return loc, nil
}
