// Package validate checks a submission draft before it is handed to the
// submission store, producing a per-field error mapping for display.
package validate

import (
	"greenloop/internal/core/domain"
	"greenloop/internal/core/rewards"
)

// Per-submission limits
const (
	MaxQuantityKg = 100.0
	MinPhotos     = 1
	MaxPhotos     = 5
	MaxPhotoBytes = 5 * 1024 * 1024
)

// Submission evaluates every rule independently (no short-circuit) so the
// caller can display all violations together. An empty map means valid.
// Pure and side-effect free: photo checks operate on resolved metadata,
// never on file content.
func Submission(draft *domain.SubmissionDraft, table *rewards.Table) map[string]string {
	errs := make(map[string]string)

	if draft.EntryPath == domain.EntryScan && draft.BoothID == nil {
		errs["booth"] = "Scan a booth QR code before submitting"
	}

	if draft.WasteType == "" {
		errs["wasteType"] = "Select a waste type"
	} else if !table.Known(draft.WasteType) {
		errs["wasteType"] = "Unknown waste type"
	}

	switch {
	case draft.QuantityKg <= 0:
		errs["quantity"] = "Quantity must be greater than 0 kg"
	case draft.QuantityKg > MaxQuantityKg:
		errs["quantity"] = "Quantity cannot exceed 100 kg per submission"
	}

	switch {
	case len(draft.Photos) < MinPhotos:
		errs["photos"] = "Attach at least 1 photo of the waste"
	case len(draft.Photos) > MaxPhotos:
		errs["photos"] = "At most 5 photos per submission"
	default:
		for _, p := range draft.Photos {
			if p.SizeBytes > MaxPhotoBytes {
				errs["photos"] = "Each photo must be 5 MB or smaller"
				break
			}
		}
	}

	if draft.Location == nil {
		errs["location"] = "Location is required for verification"
	}

	return errs
}
