package validate

import (
	"testing"

	"greenloop/internal/core/domain"
	"greenloop/internal/core/rewards"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table(t *testing.T) *rewards.Table {
	t.Helper()
	tbl, err := rewards.NewTable([]rewards.Rate{
		{WasteType: domain.WastePlastic, PointsPerKg: 10},
		{WasteType: domain.WastePaper, PointsPerKg: 5},
	})
	require.NoError(t, err)
	return tbl
}

func validDraft() *domain.SubmissionDraft {
	boothID := uint(7)
	return &domain.SubmissionDraft{
		EntryPath:  domain.EntryScan,
		BoothID:    &boothID,
		WasteType:  domain.WastePlastic,
		QuantityKg: 2.5,
		Photos:     []domain.PhotoMeta{{Name: "bag.jpg", SizeBytes: 1 << 20}},
		Location:   &domain.Coordinate{Latitude: 13.75, Longitude: 100.5},
	}
}

func TestValidDraftHasNoErrors(t *testing.T) {
	assert.Empty(t, Submission(validDraft(), table(t)))
}

func TestQuantityBounds(t *testing.T) {
	for _, qty := range []float64{0, -1, 150} {
		d := validDraft()
		d.QuantityKg = qty
		errs := Submission(d, table(t))
		assert.Contains(t, errs, "quantity", "qty=%v", qty)
	}

	// Exactly at the 100 kg cap is valid on that field.
	d := validDraft()
	d.QuantityKg = 100
	assert.NotContains(t, Submission(d, table(t)), "quantity")
}

func TestPhotoRules(t *testing.T) {
	d := validDraft()
	d.Photos = nil
	assert.Contains(t, Submission(d, table(t)), "photos")

	d = validDraft()
	d.Photos = make([]domain.PhotoMeta, 6)
	assert.Contains(t, Submission(d, table(t)), "photos")

	// 5 photos of exactly 5 MB each are fine.
	d = validDraft()
	d.Photos = d.Photos[:0]
	for i := 0; i < 5; i++ {
		d.Photos = append(d.Photos, domain.PhotoMeta{SizeBytes: MaxPhotoBytes})
	}
	assert.NotContains(t, Submission(d, table(t)), "photos")

	d.Photos[2].SizeBytes = MaxPhotoBytes + 1
	assert.Contains(t, Submission(d, table(t)), "photos")
}

func TestBoothRequiredOnlyOnScanPath(t *testing.T) {
	d := validDraft()
	d.BoothID = nil
	assert.Contains(t, Submission(d, table(t)), "booth")

	d.EntryPath = domain.EntryManual
	assert.NotContains(t, Submission(d, table(t)), "booth")
}

func TestWasteTypeAndLocationRules(t *testing.T) {
	d := validDraft()
	d.WasteType = ""
	assert.Contains(t, Submission(d, table(t)), "wasteType")

	d.WasteType = domain.WasteType("styrofoam")
	assert.Contains(t, Submission(d, table(t)), "wasteType")

	d = validDraft()
	d.Location = nil
	assert.Contains(t, Submission(d, table(t)), "location")
}

func TestAllViolationsReportedTogether(t *testing.T) {
	errs := Submission(&domain.SubmissionDraft{EntryPath: domain.EntryScan}, table(t))

	for _, field := range []string{"booth", "wasteType", "quantity", "photos", "location"} {
		assert.Contains(t, errs, field)
	}
	assert.Len(t, errs, 5)
}
