package models

import (
	"time"

	"github.com/google/uuid"
)

// Offer statuses
const (
	OfferStatusActive   = "active"
	OfferStatusInactive = "inactive"
	OfferStatusExpired  = "expired"
)

// Offer represents a bank signup bonus offer.
// ClickCount and ApplicationCount are denormalized running totals kept in
// sync with the offer_interactions log; they are mutated exclusively through
// OfferRepository.IncrementCounters inside the same transaction that appends
// the interaction row. The interaction log remains the canonical source for
// analytics.
type Offer struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_offers_uuid;index:idx_offers_uuid" json:"uuid"`

	Title        string  `gorm:"size:255;not null" json:"title"`
	Description  string  `gorm:"type:text;not null" json:"description"`
	BankName     string  `gorm:"size:255;not null;index:idx_offers_bank_name" json:"bank_name"`
	BonusAmount  float64 `gorm:"type:decimal(10,2);not null" json:"bonus_amount"`
	Requirements string  `gorm:"type:text;not null" json:"requirements"`

	ImageURL       *string `gorm:"size:2048" json:"image_url,omitempty"`
	ApplicationURL string  `gorm:"size:2048;not null" json:"application_url"`

	Status     string     `gorm:"size:16;not null;default:'active';index:idx_offers_status" json:"status"`
	ExpiryDate *time.Time `gorm:"index:idx_offers_expiry_date" json:"expiry_date,omitempty"`

	ClickCount       int64 `gorm:"not null;default:0" json:"click_count"`
	ApplicationCount int64 `gorm:"not null;default:0" json:"application_count"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_offers_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	// Relations
	Interactions []OfferInteraction `gorm:"foreignKey:OfferID" json:"-"`
}

func (Offer) TableName() string {
	return "offers"
}

// IsValidOfferStatus reports whether the value is a recognized offer status
func IsValidOfferStatus(status string) bool {
	switch status {
	case OfferStatusActive, OfferStatusInactive, OfferStatusExpired:
		return true
	}
	return false
}

// OfferFilter represents filter criteria for offer queries
type OfferFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	BankName      *string
	Status        *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
