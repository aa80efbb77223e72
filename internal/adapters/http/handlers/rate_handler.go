package handlers

import (
	"greenloop/internal/core/rewards"
	"greenloop/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RateHandler serves the reward rate table. Rates are master data loaded
// once at startup; the route sits behind a public cache.
type RateHandler struct {
	table *rewards.Table
}

// NewRateHandler creates a new rate handler
func NewRateHandler(table *rewards.Table) *RateHandler {
	return &RateHandler{table: table}
}

// List returns the points-per-kilogram rate for every known waste type
// @Summary List reward rates
// @Tags Rates
// @Produce json
// @Success 200 {object} response.Response
// @Router /rates [get]
func (h *RateHandler) List(c *fiber.Ctx) error {
	rates := make([]fiber.Map, 0)
	for _, wt := range h.table.Types() {
		rate, err := h.table.Rate(wt)
		if err != nil {
			continue
		}
		rates = append(rates, fiber.Map{
			"waste_type":    wt,
			"points_per_kg": rate,
		})
	}

	return response.Success(c, "Reward rates retrieved successfully", fiber.Map{
		"rates": rates,
	})
}
