package config

import (
	"log"

	"greenloop/internal/adapters/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedMasterData seeds initial master data
func SeedMasterData(db *gorm.DB) error {
	// Seed waste type rates
	if err := seedWasteTypeRates(db); err != nil {
		return err
	}

	// Seed demo booths
	if err := seedBooths(db); err != nil {
		return err
	}

	log.Println("✅ Master data seeded successfully")
	return nil
}

func seedWasteTypeRates(db *gorm.DB) error {
	rates := []models.WasteTypeRate{
		{
			Code:        "plastic",
			Name:        "Plastic bottles and packaging",
			PointsPerKg: 10,
			IsActive:    true,
		},
		{
			Code:        "paper",
			Name:        "Paper and cardboard",
			PointsPerKg: 5,
			IsActive:    true,
		},
		{
			Code:        "glass",
			Name:        "Glass bottles and jars",
			PointsPerKg: 8, // rate pending product confirmation
			IsActive:    true,
		},
		{
			Code:        "metal",
			Name:        "Metal cans and scrap",
			PointsPerKg: 15,
			IsActive:    true,
		},
		{
			Code:        "electronic",
			Name:        "Small electronics and e-waste",
			PointsPerKg: 25,
			IsActive:    true,
		},
	}

	for _, rate := range rates {
		var existing models.WasteTypeRate
		if err := db.Where("code = ?", rate.Code).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&rate).Error; err != nil {
					return err
				}
				log.Printf("   Created waste_type_rate: %s (%.0f pts/kg)", rate.Code, rate.PointsPerKg)
			}
		}
	}
	return nil
}

func seedBooths(db *gorm.DB) error {
	// Development booths only; production booths are registered by admins.
	var count int64
	db.Model(&models.Booth{}).Count(&count)
	if count > 0 {
		return nil
	}

	siamLat, siamLng := 13.7455, 100.5331
	chatuchakLat, chatuchakLng := 13.7997, 100.5510

	booths := []models.Booth{
		{
			Name:          "Siam Green Point",
			Address:       "979 Rama I Rd, Pathum Wan",
			Area:          "Pathum Wan",
			Latitude:      &siamLat,
			Longitude:     &siamLng,
			Status:        "active",
			AcceptedTypes: "plastic,paper,glass,metal",
			QRToken:       uuid.NewString(),
			OpeningHours:  "08:00-20:00",
			ContactPhone:  "02-000-0001",
		},
		{
			Name:          "Chatuchak Recycle Hub",
			Address:       "587 Kamphaeng Phet 2 Rd, Chatuchak",
			Area:          "Chatuchak",
			Latitude:      &chatuchakLat,
			Longitude:     &chatuchakLng,
			Status:        "active",
			AcceptedTypes: "plastic,paper,electronic",
			QRToken:       uuid.NewString(),
			OpeningHours:  "09:00-18:00",
			ContactPhone:  "02-000-0002",
		},
		{
			Name:          "Mobile Collection Cart",
			Address:       "",
			Area:          "Roaming",
			Status:        "inactive",
			AcceptedTypes: "plastic,paper",
			QRToken:       uuid.NewString(),
		},
	}

	for _, booth := range booths {
		if err := db.Create(&booth).Error; err != nil {
			return err
		}
		log.Printf("   Created booth: %s", booth.Name)
	}
	return nil
}
