package services

import (
	"context"
	"fmt"
	"log"

	"greenloop/internal/adapters/persistence/repositories"
	"greenloop/internal/core/domain"
	"greenloop/internal/core/rewards"
)

// LoadRateTable builds the immutable reward rate table from the active
// waste_type_rates master rows. Loaded once at startup; both the
// self-service workflow and the operator credit path price against the
// same instance, so the two paths can never disagree on a rate.
func LoadRateTable(ctx context.Context, repo repositories.RateRepository) (*rewards.Table, error) {
	rows, err := repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rate table: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("load rate table: no active waste type rates seeded")
	}

	rates := make([]rewards.Rate, 0, len(rows))
	for _, row := range rows {
		rates = append(rates, rewards.Rate{
			WasteType:   domain.WasteType(row.Code),
			PointsPerKg: row.PointsPerKg,
		})
	}

	table, err := rewards.NewTable(rates)
	if err != nil {
		return nil, fmt.Errorf("load rate table: %w", err)
	}

	log.Printf("✅ Reward rate table loaded: %d waste types", len(rates))
	return table, nil
}
