// Package booths ranks and filters the booth directory for presentation:
// text search, status filter, then distance ordering from the caller.
package booths

import (
	"sort"
	"strings"

	"greenloop/internal/core/domain"
	"greenloop/internal/core/geo"
)

// Ranked pairs a booth with its distance from the caller. DistanceKm is
// nil when the booth has no coordinate or the caller sent none.
type Ranked struct {
	Booth      domain.Booth `json:"booth"`
	DistanceKm *float64     `json:"distance_km,omitempty"`
}

// Rank applies, in fixed order: case-insensitive substring match of query
// against name, address and area; status filter (BoothStatusAll keeps
// everything); then, when a caller location is present, an ascending
// stable sort by distance with coordinate-less booths after all booths
// that have coordinates, preserving their relative input order.
// The input slice is never mutated. No matches yields an empty slice.
func Rank(list []domain.Booth, query string, status domain.BoothStatus, loc *domain.Coordinate) []Ranked {
	out := make([]Ranked, 0, len(list))

	query = strings.ToLower(strings.TrimSpace(query))
	for _, b := range list {
		if query != "" && !matchesQuery(&b, query) {
			continue
		}
		if status != "" && status != domain.BoothStatusAll && b.Status != status {
			continue
		}

		r := Ranked{Booth: b}
		if loc != nil {
			if d, err := geo.Distance(loc, b.Location); err == nil {
				km := d
				r.DistanceKm = &km
			}
		}
		out = append(out, r)
	}

	if loc != nil {
		sort.SliceStable(out, func(i, j int) bool {
			di, dj := out[i].DistanceKm, out[j].DistanceKm
			if di == nil {
				return false
			}
			if dj == nil {
				return true
			}
			return *di < *dj
		})
	}

	return out
}

func matchesQuery(b *domain.Booth, query string) bool {
	return strings.Contains(strings.ToLower(b.Name), query) ||
		strings.Contains(strings.ToLower(b.Address), query) ||
		strings.Contains(strings.ToLower(b.Area), query)
}
