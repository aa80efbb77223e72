package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CronService runs the scheduled maintenance jobs: the nightly rank-tier
// consistency pass and expired refresh token cleanup.
type CronService struct {
	cron        *cron.Cron
	userService *UserService
	authService *AuthService
}

// NewCronService creates a new cron service
func NewCronService(userService *UserService, authService *AuthService) *CronService {
	return &CronService{
		cron:        cron.New(),
		userService: userService,
		authService: authService,
	}
}

// Start registers and starts the nightly jobs
func (s *CronService) Start() {
	// Rank tiers: credit application keeps them current, this catches
	// anything a failed partial run left behind.
	s.cron.AddFunc("30 2 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		changed, err := s.userService.RecalculateRankTiers(ctx)
		if err != nil {
			log.Printf("⚠️ Rank tier recalculation failed: %v", err)
			return
		}
		log.Printf("✅ Rank tier recalculation done (%d updated)", changed)
	})

	s.cron.AddFunc("45 2 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := s.authService.refreshTokenRepo.DeleteExpired(ctx); err != nil {
			log.Printf("⚠️ Refresh token cleanup failed: %v", err)
			return
		}
		log.Println("✅ Expired refresh tokens cleaned up")
	})

	s.cron.Start()
	log.Println("✅ Cron service started (rank recalc 02:30, token cleanup 02:45)")
}

// Stop stops the cron scheduler
func (s *CronService) Stop() {
	s.cron.Stop()
}
