package models

import (
	"time"

	"github.com/google/uuid"
)

// Interaction kinds
const (
	InteractionKindView  = "view"
	InteractionKindApply = "apply"
)

// OfferInteraction is one row of the append-only interaction log: a single
// view or application event recorded against an offer by a user. Rows are
// never updated or deleted by the application.
type OfferInteraction struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_offer_interactions_uuid" json:"uuid"`

	OfferID uint `gorm:"not null;index:idx_offer_interactions_offer_id" json:"offer_id"`
	UserID  uint `gorm:"not null;index:idx_offer_interactions_user_id" json:"user_id"`

	Kind string `gorm:"size:16;not null;index:idx_offer_interactions_kind" json:"kind"`

	IPAddress *string `gorm:"size:64" json:"ip_address,omitempty"`
	UserAgent *string `gorm:"type:text" json:"user_agent,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_offer_interactions_created_at" json:"created_at"`

	// Relations
	User  User  `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Offer Offer `gorm:"foreignKey:OfferID;references:ID" json:"offer,omitempty"`
}

func (OfferInteraction) TableName() string {
	return "offer_interactions"
}

// IsValidInteractionKind reports whether the value is a recognized kind
func IsValidInteractionKind(kind string) bool {
	return kind == InteractionKindView || kind == InteractionKindApply
}

// OfferInteractionFilter represents filter criteria for interaction queries
type OfferInteractionFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	OfferID       *uint
	UserID        *uint
	Kind          *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
