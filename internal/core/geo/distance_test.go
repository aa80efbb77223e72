package geo

import (
	"testing"

	"greenloop/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceKnownPair(t *testing.T) {
	// Bangkok city center to Chatuchak, roughly 10 km.
	a := &domain.Coordinate{Latitude: 13.7563, Longitude: 100.5018}
	b := &domain.Coordinate{Latitude: 13.8297, Longitude: 100.5592}

	d, err := Distance(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 10.3, d, 0.5)
}

func TestDistanceSymmetric(t *testing.T) {
	a := &domain.Coordinate{Latitude: 13.7563, Longitude: 100.5018}
	b := &domain.Coordinate{Latitude: 18.7883, Longitude: 98.9853}

	ab, err := Distance(a, b)
	require.NoError(t, err)
	ba, err := Distance(b, a)
	require.NoError(t, err)

	assert.Equal(t, ab, ba)
}

func TestDistanceZeroForSamePoint(t *testing.T) {
	a := &domain.Coordinate{Latitude: -33.8688, Longitude: 151.2093}

	d, err := Distance(a, a)
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestDistanceInvalidCoordinates(t *testing.T) {
	valid := &domain.Coordinate{Latitude: 0, Longitude: 0}

	cases := []struct {
		name string
		a, b *domain.Coordinate
	}{
		{"nil first", nil, valid},
		{"nil second", valid, nil},
		{"latitude out of range", &domain.Coordinate{Latitude: 91, Longitude: 0}, valid},
		{"longitude out of range", valid, &domain.Coordinate{Latitude: 0, Longitude: -181}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Distance(tc.a, tc.b)
			assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)
		})
	}
}
