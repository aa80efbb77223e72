package booths

import (
	"testing"

	"greenloop/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coord(lat, lng float64) *domain.Coordinate {
	return &domain.Coordinate{Latitude: lat, Longitude: lng}
}

func testBooths() []domain.Booth {
	return []domain.Booth{
		{ID: 1, Name: "Siam Green Point", Address: "Rama I Rd", Area: "Pathumwan", Status: domain.BoothActive, Location: coord(13.7466, 100.5347)},
		{ID: 2, Name: "Chatuchak Recycle Hub", Address: "Kamphaeng Phet Rd", Area: "Chatuchak", Status: domain.BoothBusy, Location: coord(13.7999, 100.5503)},
		{ID: 3, Name: "Riverside Drop-off", Address: "Charoen Krung Rd", Area: "Bang Rak", Status: domain.BoothActive, Location: nil},
		{ID: 4, Name: "Thonburi Eco Booth", Address: "Itsaraphap Rd", Area: "Thonburi", Status: domain.BoothMaintenance, Location: nil},
		{ID: 5, Name: "On Nut Green Point", Address: "Sukhumvit 77", Area: "Suan Luang", Status: domain.BoothActive, Location: coord(13.7055, 100.6010)},
	}
}

func ids(ranked []Ranked) []uint {
	out := make([]uint, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Booth.ID)
	}
	return out
}

func TestRankTextFilterIsCaseInsensitive(t *testing.T) {
	got := Rank(testBooths(), "green point", "", nil)
	assert.Equal(t, []uint{1, 5}, ids(got))

	// Address and area participate in the match too.
	got = Rank(testBooths(), "CHATUCHAK", "", nil)
	assert.Equal(t, []uint{2}, ids(got))
}

func TestRankStatusFilter(t *testing.T) {
	got := Rank(testBooths(), "", domain.BoothActive, nil)
	assert.Equal(t, []uint{1, 3, 5}, ids(got))

	got = Rank(testBooths(), "", domain.BoothStatusAll, nil)
	assert.Len(t, got, 5)
}

func TestRankSortsByDistanceWithCoordinatelessLast(t *testing.T) {
	// Caller near On Nut: 5 closest, then 1, then 2; 3 and 4 have no
	// coordinates and keep their relative input order at the tail.
	user := coord(13.7100, 100.6000)

	got := Rank(testBooths(), "", domain.BoothStatusAll, user)
	require.Len(t, got, 5)
	assert.Equal(t, []uint{5, 1, 2, 3, 4}, ids(got))

	// Non-decreasing among booths that have a distance.
	var prev float64
	for _, r := range got {
		if r.DistanceKm == nil {
			continue
		}
		assert.GreaterOrEqual(t, *r.DistanceKm, prev)
		prev = *r.DistanceKm
	}

	assert.Nil(t, got[3].DistanceKm)
	assert.Nil(t, got[4].DistanceKm)
}

func TestRankWithoutLocationPreservesInputOrder(t *testing.T) {
	got := Rank(testBooths(), "", domain.BoothStatusAll, nil)
	assert.Equal(t, []uint{1, 2, 3, 4, 5}, ids(got))
	for _, r := range got {
		assert.Nil(t, r.DistanceKm)
	}
}

func TestRankEmptyInputAndNoMatches(t *testing.T) {
	assert.Empty(t, Rank(nil, "", "", nil))
	assert.Empty(t, Rank(testBooths(), "no such booth", "", nil))
}

func TestRankDoesNotMutateInput(t *testing.T) {
	in := testBooths()
	_ = Rank(in, "", domain.BoothStatusAll, coord(13.7, 100.6))
	assert.Equal(t, testBooths(), in)
}
