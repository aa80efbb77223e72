package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleUser     Role = "USER"
	RoleOperator Role = "OPERATOR"
	RoleAdmin    Role = "ADMIN"
)

// BoothStatus represents the operational status of a collection booth
type BoothStatus string

const (
	BoothActive      BoothStatus = "active"
	BoothBusy        BoothStatus = "busy"
	BoothInactive    BoothStatus = "inactive"
	BoothMaintenance BoothStatus = "maintenance"
)

// BoothStatusAll is the filter value that disables status filtering.
const BoothStatusAll BoothStatus = "all"

// WasteType is the enumerated tag for a recyclable category.
type WasteType string

const (
	WastePlastic    WasteType = "plastic"
	WastePaper      WasteType = "paper"
	WasteMetal      WasteType = "metal"
	WasteGlass      WasteType = "glass"
	WasteOrganic    WasteType = "organic"
	WasteElectronic WasteType = "electronic"
	WasteTextile    WasteType = "textile"
)

// VerificationStatus of a submission record
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate is in range.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// User represents a portal user in the domain layer
type User struct {
	ID           uint      `json:"id"`
	Handle       string    `json:"handle"`
	DisplayName  string    `json:"display_name"`
	Email        string    `json:"email"`
	Password     string    `json:"-"` // Hashed
	Role         Role      `json:"role"`
	QRToken      string    `json:"-"`       // opaque token printed on the user's QR card
	Balance      int64     `json:"balance"` // cumulative green credits, never decremented here
	TotalWasteKg float64   `json:"total_waste_kg"`
	RankTier     string    `json:"rank_tier"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Rank tier labels, derived from cumulative waste submitted.
const (
	TierEcoStarter    = "Eco Starter"
	TierGreenHelper   = "Green Helper"
	TierEarthGuardian = "Earth Guardian"
	TierPlanetHero    = "Planet Hero"
)

// RankTierFor derives the rank tier label from cumulative waste in kg.
func RankTierFor(totalWasteKg float64) string {
	switch {
	case totalWasteKg >= 150:
		return TierPlanetHero
	case totalWasteKg >= 50:
		return TierEarthGuardian
	case totalWasteKg >= 10:
		return TierGreenHelper
	default:
		return TierEcoStarter
	}
}

// Booth represents a fixed physical waste-collection point.
// Created and updated by booth management; read-only to the workflows.
type Booth struct {
	ID            uint        `json:"id"`
	Name          string      `json:"name"`
	Address       string      `json:"address"`
	Area          string      `json:"area"`
	Location      *Coordinate `json:"location,omitempty"` // may be absent
	Status        BoothStatus `json:"status"`
	AcceptedTypes []WasteType `json:"accepted_types"`
	OpeningHours  string      `json:"opening_hours"`
	ContactPhone  string      `json:"contact_phone"`
}

// Accepts reports whether the booth takes the given waste type.
func (b *Booth) Accepts(wt WasteType) bool {
	for _, t := range b.AcceptedTypes {
		if t == wt {
			return true
		}
	}
	return false
}

// EntryPath marks how a submission workflow was entered.
type EntryPath string

const (
	EntryScan   EntryPath = "scan"
	EntryManual EntryPath = "manual"
)

// PhotoMeta is the already-resolved metadata of an attached photo.
// The validator never touches file content.
type PhotoMeta struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
}

// SubmissionDraft is the in-progress record held by the workflow.
// Created empty at workflow start, mutated by user input events,
// consumed on successful submit or discarded on reset.
type SubmissionDraft struct {
	EntryPath  EntryPath   `json:"entry_path"`
	BoothID    *uint       `json:"booth_id,omitempty"`
	WasteType  WasteType   `json:"waste_type"`
	QuantityKg float64     `json:"quantity_kg"`
	Photos     []PhotoMeta `json:"photos,omitempty"`
	Notes      string      `json:"notes,omitempty"`
	Location   *Coordinate `json:"location,omitempty"`
}

// SubmissionRecord is the output of a successful submit.
type SubmissionRecord struct {
	ID         uint               `json:"id"`
	BoothID    *uint              `json:"booth_id,omitempty"`
	UserID     uint               `json:"user_id"`
	WasteType  WasteType          `json:"waste_type"`
	QuantityKg float64            `json:"quantity_kg"`
	Notes      string             `json:"notes,omitempty"`
	Location   *Coordinate        `json:"location,omitempty"`
	PhotoCount int                `json:"photo_count"`
	Points     int64              `json:"points"`
	Status     VerificationStatus `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
}

// CreditLedgerEntry is one immutable credit application to a user's balance.
type CreditLedgerEntry struct {
	ID               uint      `json:"id"`
	UserID           uint      `json:"user_id"`
	BoothID          uint      `json:"booth_id"`
	OperatorID       uint      `json:"operator_id"`
	WasteType        WasteType `json:"waste_type"`
	QuantityKg       float64   `json:"quantity_kg"`
	PointsDelta      int64     `json:"points_delta"`
	ResultingBalance int64     `json:"resulting_balance"`
	CreatedAt        time.Time `json:"created_at"`
}
