// Package rewards holds the process-wide rate table and the point
// calculation shared by the self-service and operator credit paths.
package rewards

import (
	"math"
	"sort"

	"greenloop/internal/core/domain"
)

// Rate is points credited per kilogram of one waste type.
type Rate struct {
	WasteType   domain.WasteType
	PointsPerKg float64
}

// Table maps waste types to their crediting rate. It is built once at
// startup from the seeded master data and treated as immutable for the
// lifetime of the process; both workflows must share one instance so
// crediting can never diverge between paths.
type Table struct {
	rates map[domain.WasteType]float64
}

// NewTable builds a rate table. Rates that are not positive are rejected
// by returning domain.ErrInvalidInput, since a zero or negative rate can
// only be a misconfigured seed.
func NewTable(rates []Rate) (*Table, error) {
	m := make(map[domain.WasteType]float64, len(rates))
	for _, r := range rates {
		if r.PointsPerKg <= 0 {
			return nil, domain.ErrInvalidInput
		}
		m[r.WasteType] = r.PointsPerKg
	}
	return &Table{rates: m}, nil
}

// Rate returns the points-per-kg rate for a waste type.
func (t *Table) Rate(wt domain.WasteType) (float64, error) {
	rate, ok := t.rates[wt]
	if !ok {
		return 0, domain.ErrUnknownWasteType
	}
	return rate, nil
}

// Known reports whether the waste type is in the table.
func (t *Table) Known(wt domain.WasteType) bool {
	_, ok := t.rates[wt]
	return ok
}

// Types returns the waste types in the table in alphabetical order.
func (t *Table) Types() []domain.WasteType {
	out := make([]domain.WasteType, 0, len(t.rates))
	for wt := range t.rates {
		out = append(out, wt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Points computes the credited points for a weighed quantity:
// floor(quantity x rate). Truncation, not rounding, so fractional
// kilograms can never over-credit.
func (t *Table) Points(wt domain.WasteType, quantityKg float64) (int64, error) {
	if quantityKg <= 0 {
		return 0, domain.ErrInvalidQuantity
	}
	rate, err := t.Rate(wt)
	if err != nil {
		return 0, err
	}
	return int64(math.Floor(quantityKg * rate)), nil
}
