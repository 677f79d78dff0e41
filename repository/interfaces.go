// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/churnbase/churnbase/models"
	"github.com/google/uuid"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// UserRepository defines operations for users
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByUUID(ctx context.Context, uuid string) (*models.User, error)
	ByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error
	UpdateGoogleLink(ctx context.Context, userID uint, googleID string) error
}

// OfferRepository defines operations for offers.
// IncrementCounters is the only writer of the denormalized click/application
// counters and performs the bump server-side so concurrent interactions on
// the same offer never lose updates.
type OfferRepository interface {
	Repository[models.Offer, models.OfferFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Offer, error)
	ListByStatus(ctx context.Context, status *string) ([]*models.Offer, error)
	ListAll(ctx context.Context) ([]*models.Offer, error)
	Update(ctx context.Context, offer *models.Offer) error
	Delete(ctx context.Context, id uint) error
	IncrementCounters(ctx context.Context, offerID uint, kind string) error
}

// InteractionCounts is one row of the grouped interaction aggregation.
type InteractionCounts struct {
	OfferID      uint  `gorm:"column:offer_id"`
	Clicks       int64 `gorm:"column:clicks"`
	Applications int64 `gorm:"column:applications"`
}

// UserInteractionHistory is one row of a user's history joined with offer summary fields.
type UserInteractionHistory struct {
	ID          uint      `gorm:"column:id" json:"id"`
	UUID        uuid.UUID `gorm:"column:uuid" json:"uuid"`
	OfferID     uint      `gorm:"column:offer_id" json:"offer_id"`
	Kind        string    `gorm:"column:kind" json:"kind"`
	IPAddress   *string   `gorm:"column:ip_address" json:"ip_address,omitempty"`
	UserAgent   *string   `gorm:"column:user_agent" json:"user_agent,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	OfferUUID   uuid.UUID `gorm:"column:offer_uuid" json:"offer_uuid"`
	OfferTitle  string    `gorm:"column:offer_title" json:"offer_title"`
	BankName    string    `gorm:"column:bank_name" json:"bank_name"`
	BonusAmount float64   `gorm:"column:bonus_amount" json:"bonus_amount"`
}

// OfferInteractionRepository defines operations for the append-only interaction log
type OfferInteractionRepository interface {
	Repository[models.OfferInteraction, models.OfferInteractionFilter]
	ListByOffer(ctx context.Context, offerID uint, limit int) ([]*models.OfferInteraction, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*UserInteractionHistory, error)
	CountByOffer(ctx context.Context, offerID uint) (clicks, applications int64, err error)
	CountsGroupedByOffer(ctx context.Context) (map[uint]InteractionCounts, error)
}

// UserSessionRepository defines operations for user sessions
type UserSessionRepository interface {
	Repository[models.UserSession, models.UserSessionFilter]
	ByAccessToken(ctx context.Context, token string) (*models.UserSession, error)
	ByRefreshToken(ctx context.Context, token string) (*models.UserSession, error)
	ExpireSession(ctx context.Context, sessionID uint) error
	ExpireAllUserSessions(ctx context.Context, userID uint) error
}

// AuditLogRepository defines operations for audit logs
type AuditLogRepository interface {
	Repository[models.AuditLog, models.AuditLogFilter]
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.AuditLog, error)
	ListByAction(ctx context.Context, action string, limit, offset int) ([]*models.AuditLog, error)
}

// OfferImageRepository defines operations for offer images
type OfferImageRepository interface {
	Repository[models.OfferImage, models.OfferImageFilter]
	ByUUID(ctx context.Context, uuid string) (*models.OfferImage, error)
	ListByOffer(ctx context.Context, offerID uint) ([]*models.OfferImage, error)
}
