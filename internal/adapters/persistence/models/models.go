package models

import (
	"strings"
	"time"

	"greenloop/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Users & Auth
// ============================================================

// User represents the users table
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Handle       string         `gorm:"uniqueIndex;size:50;not null" json:"handle"`
	DisplayName  string         `gorm:"size:100;not null" json:"display_name"`
	Email        string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password     string         `gorm:"size:255;not null" json:"-"`
	Role         string         `gorm:"size:20;default:'USER'" json:"role"`
	QRToken      string         `gorm:"uniqueIndex;size:64;not null" json:"-"`
	Balance      int64          `gorm:"not null;default:0" json:"balance"`
	TotalWasteKg float64        `gorm:"type:decimal(10,3);not null;default:0" json:"total_waste_kg"`
	RankTier     string         `gorm:"size:30;default:'Eco Starter'" json:"rank_tier"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID           uint      `json:"id"`
	Handle       string    `json:"handle"`
	DisplayName  string    `json:"display_name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Balance      int64     `json:"balance"`
	TotalWasteKg float64   `json:"total_waste_kg"`
	RankTier     string    `json:"rank_tier"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Handle:       u.Handle,
		DisplayName:  u.DisplayName,
		Email:        u.Email,
		Role:         u.Role,
		Balance:      u.Balance,
		TotalWasteKg: u.TotalWasteKg,
		RankTier:     u.RankTier,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:           u.ID,
		Handle:       u.Handle,
		DisplayName:  u.DisplayName,
		Email:        u.Email,
		Password:     u.Password,
		Role:         domain.Role(u.Role),
		QRToken:      u.QRToken,
		Balance:      u.Balance,
		TotalWasteKg: u.TotalWasteKg,
		RankTier:     u.RankTier,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Master: Waste type rates & Booths
// ============================================================

// WasteTypeRate is the master rate table row: points credited per kg.
type WasteTypeRate struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Code        string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	PointsPerKg float64        `gorm:"type:decimal(8,2);not null" json:"points_per_kg"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (WasteTypeRate) TableName() string {
	return "waste_type_rates"
}

// Booth represents the booths table
type Booth struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:100;not null" json:"name"`
	Address       string         `gorm:"size:255" json:"address"`
	Area          string         `gorm:"size:100;index" json:"area"`
	Latitude      *float64       `gorm:"type:decimal(10,7)" json:"latitude"`
	Longitude     *float64       `gorm:"type:decimal(10,7)" json:"longitude"`
	Status        string         `gorm:"size:20;not null;default:'active';index" json:"status"`
	AcceptedTypes string         `gorm:"size:255;not null" json:"accepted_types"` // comma-separated codes
	QRToken       string         `gorm:"uniqueIndex;size:64;not null" json:"-"`
	OpeningHours  string         `gorm:"size:100" json:"opening_hours"`
	ContactPhone  string         `gorm:"size:30" json:"contact_phone"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Booth) TableName() string {
	return "booths"
}

func (b *Booth) ToDomain() *domain.Booth {
	out := &domain.Booth{
		ID:           b.ID,
		Name:         b.Name,
		Address:      b.Address,
		Area:         b.Area,
		Status:       domain.BoothStatus(b.Status),
		OpeningHours: b.OpeningHours,
		ContactPhone: b.ContactPhone,
	}
	if b.Latitude != nil && b.Longitude != nil {
		out.Location = &domain.Coordinate{Latitude: *b.Latitude, Longitude: *b.Longitude}
	}
	for _, code := range strings.Split(b.AcceptedTypes, ",") {
		code = strings.TrimSpace(code)
		if code != "" {
			out.AcceptedTypes = append(out.AcceptedTypes, domain.WasteType(code))
		}
	}
	return out
}

// ============================================================
// Submissions & Credit Ledger
// ============================================================

// Submission represents the submissions table
type Submission struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	BoothID    *uint      `gorm:"index" json:"booth_id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	WasteType  string     `gorm:"size:20;not null" json:"waste_type"`
	QuantityKg float64    `gorm:"type:decimal(8,3);not null" json:"quantity_kg"`
	Notes      string     `gorm:"type:text" json:"notes"`
	Latitude   *float64   `gorm:"type:decimal(10,7)" json:"latitude"`
	Longitude  *float64   `gorm:"type:decimal(10,7)" json:"longitude"`
	PhotoCount int        `gorm:"not null;default:0" json:"photo_count"`
	Points     int64      `gorm:"not null" json:"points"`
	Status     string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	VerifiedBy *uint      `json:"verified_by"`
	VerifiedAt *time.Time `json:"verified_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Booth    *Booth `gorm:"foreignKey:BoothID" json:"booth,omitempty"`
	User     *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Verifier *User  `gorm:"foreignKey:VerifiedBy" json:"verifier,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s *Submission) ToDomain() *domain.SubmissionRecord {
	out := &domain.SubmissionRecord{
		ID:         s.ID,
		BoothID:    s.BoothID,
		UserID:     s.UserID,
		WasteType:  domain.WasteType(s.WasteType),
		QuantityKg: s.QuantityKg,
		Notes:      s.Notes,
		PhotoCount: s.PhotoCount,
		Points:     s.Points,
		Status:     domain.VerificationStatus(s.Status),
		CreatedAt:  s.CreatedAt,
	}
	if s.Latitude != nil && s.Longitude != nil {
		out.Location = &domain.Coordinate{Latitude: *s.Latitude, Longitude: *s.Longitude}
	}
	return out
}

// CreditEntry represents the append-only credit_entries ledger. Rows are
// never updated or deleted by this service.
type CreditEntry struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;index" json:"user_id"`
	BoothID          uint      `gorm:"not null;index" json:"booth_id"`
	OperatorID       uint      `gorm:"not null" json:"operator_id"`
	SubmissionID     *uint     `gorm:"index" json:"submission_id"`
	WasteType        string    `gorm:"size:20;not null" json:"waste_type"`
	QuantityKg       float64   `gorm:"type:decimal(8,3);not null" json:"quantity_kg"`
	PointsDelta      int64     `gorm:"not null" json:"points_delta"`
	ResultingBalance int64     `gorm:"not null" json:"resulting_balance"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	User     *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Booth    *Booth `gorm:"foreignKey:BoothID" json:"booth,omitempty"`
	Operator *User  `gorm:"foreignKey:OperatorID" json:"operator,omitempty"`
}

func (CreditEntry) TableName() string {
	return "credit_entries"
}

func (e *CreditEntry) ToDomain() *domain.CreditLedgerEntry {
	return &domain.CreditLedgerEntry{
		ID:               e.ID,
		UserID:           e.UserID,
		BoothID:          e.BoothID,
		OperatorID:       e.OperatorID,
		WasteType:        domain.WasteType(e.WasteType),
		QuantityKg:       e.QuantityKg,
		PointsDelta:      e.PointsDelta,
		ResultingBalance: e.ResultingBalance,
		CreatedAt:        e.CreatedAt,
	}
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&WasteTypeRate{},
		&Booth{},
		&Submission{},
		&CreditEntry{},
	)
}
