package services

import (
	"context"
	"errors"

	"greenloop/internal/adapters/persistence/models"
	"greenloop/internal/adapters/persistence/repositories"
	"greenloop/internal/core/domain"

	"gorm.io/gorm"
)

// UserService handles profiles, impact stats and the leaderboard.
type UserService struct {
	userRepo   repositories.UserRepository
	creditRepo repositories.CreditRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, creditRepo repositories.CreditRepository) *UserService {
	return &UserService{userRepo: userRepo, creditRepo: creditRepo}
}

// GetProfile returns a user's profile
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// GetQRToken returns the user's QR identity token for card rendering.
func (s *UserService) GetQRToken(ctx context.Context, userID uint) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return user.QRToken, nil
}

// ImpactStats summarises a user's recycling impact.
type ImpactStats struct {
	Balance      int64              `json:"balance"`
	TotalWasteKg float64            `json:"total_waste_kg"`
	RankTier     string             `json:"rank_tier"`
	ByType       map[string]float64 `json:"by_type"` // credited kg per waste type
}

// GetImpact returns the user's impact stats.
func (s *UserService) GetImpact(ctx context.Context, userID uint) (*ImpactStats, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	byType, err := s.creditRepo.TotalsByType(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ImpactStats{
		Balance:      user.Balance,
		TotalWasteKg: user.TotalWasteKg,
		RankTier:     user.RankTier,
		ByType:       byType,
	}, nil
}

// LeaderboardEntry is one row of the top-recycler board.
type LeaderboardEntry struct {
	Position     int     `json:"position"`
	Handle       string  `json:"handle"`
	DisplayName  string  `json:"display_name"`
	Balance      int64   `json:"balance"`
	TotalWasteKg float64 `json:"total_waste_kg"`
	RankTier     string  `json:"rank_tier"`
}

// Leaderboard returns users ordered by balance.
func (s *UserService) Leaderboard(ctx context.Context, offset, limit int) ([]LeaderboardEntry, int64, error) {
	users, total, err := s.userRepo.ListTopByBalance(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	out := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		out = append(out, LeaderboardEntry{
			Position:     offset + i + 1,
			Handle:       u.Handle,
			DisplayName:  u.DisplayName,
			Balance:      u.Balance,
			TotalWasteKg: u.TotalWasteKg,
			RankTier:     u.RankTier,
		})
	}
	return out, total, nil
}

// RecalculateRankTiers re-derives every user's rank tier from their
// cumulative waste. Credit application keeps tiers current; this is the
// nightly consistency pass run by the cron service.
func (s *UserService) RecalculateRankTiers(ctx context.Context) (int, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, u := range users {
		tier := domain.RankTierFor(u.TotalWasteKg)
		if tier == u.RankTier {
			continue
		}
		if err := s.userRepo.UpdateRankTier(ctx, u.ID, tier); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}
