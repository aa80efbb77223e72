package services

import (
	"context"
	"errors"
	"log"

	"greenloop/internal/adapters/persistence/models"
	"greenloop/internal/adapters/persistence/repositories"
	"greenloop/internal/core/booths"
	"greenloop/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booth service errors
var (
	ErrBoothNotFound   = errors.New("booth not found")
	ErrInvalidStatus   = errors.New("invalid booth status")
	ErrInvalidLocation = errors.New("invalid booth coordinates")
)

// BoothService handles the booth directory: listing, ranked search and
// QR token resolution for the scan step.
type BoothService struct {
	boothRepo repositories.BoothRepository
}

// NewBoothService creates a new booth service
func NewBoothService(boothRepo repositories.BoothRepository) *BoothService {
	return &BoothService{boothRepo: boothRepo}
}

// ListBooths returns the full directory as domain booths.
func (s *BoothService) ListBooths(ctx context.Context) ([]domain.Booth, error) {
	rows, err := s.boothRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booth, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row.ToDomain())
	}
	return out, nil
}

// Search returns the directory filtered by free-text query and status and,
// when the caller shared a location, ordered nearest first.
func (s *BoothService) Search(ctx context.Context, query string, status domain.BoothStatus, loc *domain.Coordinate) ([]booths.Ranked, error) {
	list, err := s.ListBooths(ctx)
	if err != nil {
		return nil, err
	}
	return booths.Rank(list, query, status, loc), nil
}

// GetByID returns one booth.
func (s *BoothService) GetByID(ctx context.Context, id uint) (*domain.Booth, error) {
	row, err := s.boothRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoothNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// ResolveBoothByToken resolves a scanned booth QR token. Implements both
// the workflow's BoothResolver and the BoothDirectory collaborator.
func (s *BoothService) ResolveBoothByToken(ctx context.Context, token string) (*domain.Booth, error) {
	row, err := s.boothRepo.GetByQRToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

// CreateBoothInput represents booth creation (admin)
type CreateBoothInput struct {
	Name          string             `json:"name" validate:"required"`
	Address       string             `json:"address"`
	Area          string             `json:"area"`
	Location      *domain.Coordinate `json:"location"`
	AcceptedTypes []domain.WasteType `json:"accepted_types" validate:"required"`
	OpeningHours  string             `json:"opening_hours"`
	ContactPhone  string             `json:"contact_phone"`
}

// CreateBooth registers a new booth with a fresh QR token.
func (s *BoothService) CreateBooth(ctx context.Context, input *CreateBoothInput) (*domain.Booth, error) {
	if input.Location != nil && !input.Location.Valid() {
		return nil, ErrInvalidLocation
	}

	row := &models.Booth{
		Name:          input.Name,
		Address:       input.Address,
		Area:          input.Area,
		Status:        string(domain.BoothActive),
		AcceptedTypes: joinTypes(input.AcceptedTypes),
		QRToken:       uuid.NewString(),
		OpeningHours:  input.OpeningHours,
		ContactPhone:  input.ContactPhone,
	}
	if input.Location != nil {
		lat, lng := input.Location.Latitude, input.Location.Longitude
		row.Latitude, row.Longitude = &lat, &lng
	}

	if err := s.boothRepo.Create(ctx, row); err != nil {
		return nil, err
	}

	log.Printf("✅ Booth created: %s (#%d)", row.Name, row.ID)
	return row.ToDomain(), nil
}

// UpdateStatus changes a booth's operational status.
func (s *BoothService) UpdateStatus(ctx context.Context, id uint, status domain.BoothStatus) error {
	switch status {
	case domain.BoothActive, domain.BoothBusy, domain.BoothInactive, domain.BoothMaintenance:
	default:
		return ErrInvalidStatus
	}

	if _, err := s.boothRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoothNotFound
		}
		return err
	}
	return s.boothRepo.UpdateStatus(ctx, id, status)
}

func joinTypes(types []domain.WasteType) string {
	out := ""
	for i, t := range types {
		if i > 0 {
			out += ","
		}
		out += string(t)
	}
	return out
}
