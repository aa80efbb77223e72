package rewards

import (
	"testing"

	"greenloop/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable([]Rate{
		{WasteType: domain.WastePlastic, PointsPerKg: 10},
		{WasteType: domain.WastePaper, PointsPerKg: 5},
		{WasteType: domain.WasteGlass, PointsPerKg: 8},
		{WasteType: domain.WasteElectronic, PointsPerKg: 25},
	})
	require.NoError(t, err)
	return table
}

func TestPointsFloorsFractionalKilograms(t *testing.T) {
	table := testTable(t)

	cases := []struct {
		name string
		wt   domain.WasteType
		qty  float64
		want int64
	}{
		{"plastic 2.5kg at 10/kg", domain.WastePlastic, 2.5, 25},
		{"paper 1.9kg at 5/kg floors", domain.WastePaper, 1.9, 9},
		{"glass 0.1kg floors to zero", domain.WasteGlass, 0.1, 0},
		{"electronic 3.99kg", domain.WasteElectronic, 3.99, 99},
		{"exact whole number", domain.WastePlastic, 7, 70},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := table.Points(tc.wt, tc.qty)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPointsRejectsUnknownType(t *testing.T) {
	table := testTable(t)

	_, err := table.Points(domain.WasteType("plutonium"), 1)
	assert.ErrorIs(t, err, domain.ErrUnknownWasteType)
}

func TestPointsRejectsNonPositiveQuantity(t *testing.T) {
	table := testTable(t)

	for _, qty := range []float64{0, -1, -0.5} {
		_, err := table.Points(domain.WastePlastic, qty)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
}

func TestNewTableRejectsNonPositiveRate(t *testing.T) {
	_, err := NewTable([]Rate{{WasteType: domain.WastePaper, PointsPerKg: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewTable([]Rate{{WasteType: domain.WastePaper, PointsPerKg: -3}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestKnownAndRate(t *testing.T) {
	table := testTable(t)

	assert.True(t, table.Known(domain.WastePlastic))
	assert.False(t, table.Known(domain.WasteTextile))

	rate, err := table.Rate(domain.WasteGlass)
	require.NoError(t, err)
	assert.Equal(t, 8.0, rate)
}
