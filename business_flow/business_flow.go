// Package businessflow contains the business logic for the platform.
package businessflow

import (
	"time"

	"github.com/churnbase/churnbase/app/dto"
	"github.com/churnbase/churnbase/models"
	"github.com/churnbase/churnbase/repository"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds all client-related information for audit logging and session tracking
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	RequestID  string            `json:"request_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Additional: make(map[string]string),
	}
}

// AddAdditional adds additional custom information to the metadata
func (cm *ClientMetadata) AddAdditional(key, value string) {
	if cm.Additional == nil {
		cm.Additional = make(map[string]string)
	}
	cm.Additional[key] = value
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ToAuthUserDTO converts a user model to AuthUserDTO for authentication responses
func ToAuthUserDTO(user models.User) dto.AuthUserDTO {
	return dto.AuthUserDTO{
		ID:           user.ID,
		UUID:         user.UUID.String(),
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         user.Role,
		AuthProvider: user.AuthProvider,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
	}
}

// ToSessionDTO converts a session model to SessionDTO for authentication responses
func ToSessionDTO(session models.UserSession) dto.SessionDTO {
	return dto.SessionDTO{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(time.Until(session.ExpiresAt).Seconds()),
		CreatedAt:    session.CreatedAt.Format(time.RFC3339),
	}
}

// ToOfferDTO converts an offer model to OfferDTO
func ToOfferDTO(offer models.Offer) dto.OfferDTO {
	return dto.OfferDTO{
		ID:               offer.ID,
		UUID:             offer.UUID.String(),
		Title:            offer.Title,
		Description:      offer.Description,
		BankName:         offer.BankName,
		BonusAmount:      offer.BonusAmount,
		Requirements:     offer.Requirements,
		ApplicationURL:   offer.ApplicationURL,
		ImageURL:         offer.ImageURL,
		Status:           offer.Status,
		ClickCount:       offer.ClickCount,
		ApplicationCount: offer.ApplicationCount,
		CreatedAt:        offer.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        offer.UpdatedAt.Format(time.RFC3339),
	}
}

// ToInteractionDTO converts an interaction model to InteractionDTO
func ToInteractionDTO(interaction models.OfferInteraction) dto.InteractionDTO {
	return dto.InteractionDTO{
		ID:        interaction.ID,
		OfferID:   interaction.OfferID,
		UserID:    interaction.UserID,
		Kind:      interaction.Kind,
		CreatedAt: interaction.CreatedAt.Format(time.RFC3339),
	}
}

// ToUserHistoryItemDTO converts a joined history row to UserHistoryItemDTO
func ToUserHistoryItemDTO(row repository.UserInteractionHistory) dto.UserHistoryItemDTO {
	return dto.UserHistoryItemDTO{
		ID:          row.ID,
		OfferID:     row.OfferID,
		OfferUUID:   row.OfferUUID.String(),
		OfferTitle:  row.OfferTitle,
		BankName:    row.BankName,
		BonusAmount: row.BonusAmount,
		Kind:        row.Kind,
		CreatedAt:   row.CreatedAt.Format(time.RFC3339),
	}
}

// ToAuditLogDTO converts an audit log model to AuditLogDTO
func ToAuditLogDTO(log models.AuditLog) dto.AuditLogDTO {
	return dto.AuditLogDTO{
		ID:          log.ID,
		UserID:      log.UserID,
		Action:      log.Action,
		Description: log.Description,
		Success:     log.Success,
		IPAddress:   log.IPAddress,
		CreatedAt:   log.CreatedAt.Format(time.RFC3339),
	}
}
