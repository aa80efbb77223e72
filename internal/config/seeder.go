package config

import (
	"log"

	"greenloop/internal/adapters/persistence/models"
	"greenloop/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedOperatorUser(); err != nil {
		log.Printf("⚠️ Operator seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds default admin user
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	// Check if admin already exists
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "ADMIN").Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Handle:      "admin",
		DisplayName: "Portal Admin",
		Email:       "admin@greenloop.example.org",
		Password:    hashedPassword,
		Role:        "ADMIN",
		QRToken:     uuid.NewString(),
		RankTier:    "Eco Starter",
		IsActive:    true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Handle)
	return nil
}

// seedOperatorUser seeds a default booth operator for development
func (s *Seeder) seedOperatorUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", "OPERATOR").Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash("operator123456")
	if err != nil {
		return err
	}

	operator := &models.User{
		Handle:      "booth-operator",
		DisplayName: "Booth Operator",
		Email:       "operator@greenloop.example.org",
		Password:    hashedPassword,
		Role:        "OPERATOR",
		QRToken:     uuid.NewString(),
		RankTier:    "Eco Starter",
		IsActive:    true,
	}

	if err := s.db.Create(operator).Error; err != nil {
		return err
	}

	log.Printf("✅ Operator user created: %s", operator.Handle)
	return nil
}
