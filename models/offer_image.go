package models

import (
	"time"

	"github.com/churnbase/churnbase/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OfferImage represents an uploaded offer image stored on disk, together
// with a pre-rendered JPEG thumbnail used for list views.
type OfferImage struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID             uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`
	OfferID          uint      `gorm:"not null;index" json:"offer_id"`
	UploadedByID     uint      `gorm:"not null;index" json:"uploaded_by_id"`
	OriginalFilename string    `gorm:"type:varchar(255);not null" json:"original_filename"`
	StoredPath       string    `gorm:"type:text;not null" json:"stored_path"`
	ThumbnailPath    string    `gorm:"type:text;not null" json:"thumbnail_path"`
	SizeBytes        int64     `gorm:"type:bigint;not null" json:"size_bytes"`
	MimeType         string    `gorm:"type:varchar(100);not null" json:"mime_type"`
	Extension        string    `gorm:"type:varchar(20);not null" json:"extension"`
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Offer      *Offer `gorm:"foreignKey:OfferID;references:ID;constraint:OnDelete:CASCADE" json:"offer,omitempty"`
	UploadedBy *User  `gorm:"foreignKey:UploadedByID;references:ID" json:"uploaded_by,omitempty"`
}

func (OfferImage) TableName() string { return "offer_images" }

// BeforeCreate ensures UUID and timestamps are set.
func (m *OfferImage) BeforeCreate(tx *gorm.DB) error {
	if m.UUID == uuid.Nil {
		m.UUID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = utils.UTCNow()
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = utils.UTCNow()
	}
	return nil
}

// OfferImageFilter represents filter criteria for offer image queries.
type OfferImageFilter struct {
	ID            *uint      `json:"id,omitempty"`
	UUID          *uuid.UUID `json:"uuid,omitempty"`
	OfferID       *uint      `json:"offer_id,omitempty"`
	UploadedByID  *uint      `json:"uploaded_by_id,omitempty"`
	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
}
