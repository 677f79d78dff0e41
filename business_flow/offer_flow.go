package businessflow

import (
	"context"
	"fmt"

	"github.com/churnbase/churnbase/app/dto"
	"github.com/churnbase/churnbase/models"
	"github.com/churnbase/churnbase/repository"
	"github.com/churnbase/churnbase/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OfferFlow handles offer CRUD and listing
type OfferFlow interface {
	CreateOffer(ctx context.Context, request *dto.CreateOfferRequest, adminID uint, metadata *ClientMetadata) (*dto.OfferDTO, error)
	UpdateOffer(ctx context.Context, offerUUID string, request *dto.UpdateOfferRequest, adminID uint, metadata *ClientMetadata) (*dto.OfferDTO, error)
	DeleteOffer(ctx context.Context, offerUUID string, adminID uint, metadata *ClientMetadata) error
	GetOffer(ctx context.Context, offerUUID string) (*dto.OfferDTO, error)
	ListOffers(ctx context.Context, request *dto.ListOffersRequest) ([]dto.OfferDTO, error)
	ListAllOffers(ctx context.Context) ([]dto.OfferDTO, error)
}

// OfferFlowImpl implements the offer business flow
type OfferFlowImpl struct {
	offerRepo repository.OfferRepository
	auditRepo repository.AuditLogRepository
	db        *gorm.DB
}

// NewOfferFlow creates a new offer flow instance
func NewOfferFlow(
	offerRepo repository.OfferRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) OfferFlow {
	return &OfferFlowImpl{
		offerRepo: offerRepo,
		auditRepo: auditRepo,
		db:        db,
	}
}

// CreateOffer creates a new bank offer with zeroed counters
func (of *OfferFlowImpl) CreateOffer(ctx context.Context, request *dto.CreateOfferRequest, adminID uint, metadata *ClientMetadata) (*dto.OfferDTO, error) {
	status := models.OfferStatusActive
	if request.Status != nil {
		if !models.IsValidOfferStatus(*request.Status) {
			return nil, NewBusinessError("OFFER_CREATE_FAILED", "Offer creation failed", ErrInvalidOfferStatus)
		}
		status = *request.Status
	}

	offer := &models.Offer{
		UUID:           uuid.New(),
		Title:          request.Title,
		Description:    request.Description,
		BankName:       request.BankName,
		BonusAmount:    request.BonusAmount,
		Requirements:   request.Requirements,
		ApplicationURL: request.ApplicationURL,
		ImageURL:       request.ImageURL,
		Status:         status,
		CreatedAt:      utils.UTCNow(),
		UpdatedAt:      utils.UTCNow(),
	}

	if err := of.offerRepo.Save(ctx, offer); err != nil {
		return nil, NewBusinessError("OFFER_CREATE_FAILED", "Offer creation failed", err)
	}

	msg := fmt.Sprintf("Offer created: %s", offer.UUID)
	_ = of.logOfferAction(ctx, adminID, models.AuditActionOfferCreated, msg, metadata)

	result := ToOfferDTO(*offer)
	return &result, nil
}

// UpdateOffer applies the non-nil fields of the request to an existing offer
func (of *OfferFlowImpl) UpdateOffer(ctx context.Context, offerUUID string, request *dto.UpdateOfferRequest, adminID uint, metadata *ClientMetadata) (*dto.OfferDTO, error) {
	if !hasUpdateFields(request) {
		return nil, NewBusinessError("OFFER_UPDATE_FAILED", "Offer update failed", ErrOfferUpdateRequired)
	}

	var offer *models.Offer

	err := repository.WithTransaction(ctx, of.db, func(ctx context.Context) error {
		var err error
		offer, err = of.offerRepo.ByUUID(ctx, offerUUID)
		if err != nil {
			return err
		}
		if offer == nil {
			return ErrOfferNotFound
		}

		if request.Title != nil {
			offer.Title = *request.Title
		}
		if request.Description != nil {
			offer.Description = *request.Description
		}
		if request.BankName != nil {
			offer.BankName = *request.BankName
		}
		if request.BonusAmount != nil {
			offer.BonusAmount = *request.BonusAmount
		}
		if request.Requirements != nil {
			offer.Requirements = *request.Requirements
		}
		if request.ApplicationURL != nil {
			offer.ApplicationURL = *request.ApplicationURL
		}
		if request.ImageURL != nil {
			offer.ImageURL = request.ImageURL
		}
		if request.Status != nil {
			if !models.IsValidOfferStatus(*request.Status) {
				return ErrInvalidOfferStatus
			}
			offer.Status = *request.Status
		}

		return of.offerRepo.Update(ctx, offer)
	})
	if err != nil {
		return nil, NewBusinessError("OFFER_UPDATE_FAILED", "Offer update failed", err)
	}

	msg := fmt.Sprintf("Offer updated: %s", offer.UUID)
	_ = of.logOfferAction(ctx, adminID, models.AuditActionOfferUpdated, msg, metadata)

	result := ToOfferDTO(*offer)
	return &result, nil
}

// DeleteOffer removes an offer permanently
func (of *OfferFlowImpl) DeleteOffer(ctx context.Context, offerUUID string, adminID uint, metadata *ClientMetadata) error {
	offer, err := of.offerRepo.ByUUID(ctx, offerUUID)
	if err != nil {
		return NewBusinessError("OFFER_DELETE_FAILED", "Offer deletion failed", err)
	}
	if offer == nil {
		return NewBusinessError("OFFER_DELETE_FAILED", "Offer deletion failed", ErrOfferNotFound)
	}

	if err := of.offerRepo.Delete(ctx, offer.ID); err != nil {
		return NewBusinessError("OFFER_DELETE_FAILED", "Offer deletion failed", err)
	}

	msg := fmt.Sprintf("Offer deleted: %s", offer.UUID)
	_ = of.logOfferAction(ctx, adminID, models.AuditActionOfferDeleted, msg, metadata)

	return nil
}

// GetOffer returns a single offer by UUID
func (of *OfferFlowImpl) GetOffer(ctx context.Context, offerUUID string) (*dto.OfferDTO, error) {
	offer, err := of.offerRepo.ByUUID(ctx, offerUUID)
	if err != nil {
		return nil, NewBusinessError("OFFER_GET_FAILED", "Offer lookup failed", err)
	}
	if offer == nil {
		return nil, NewBusinessError("OFFER_GET_FAILED", "Offer lookup failed", ErrOfferNotFound)
	}

	result := ToOfferDTO(*offer)
	return &result, nil
}

// ListOffers returns offers visible to users; active-only unless a status
// filter is provided
func (of *OfferFlowImpl) ListOffers(ctx context.Context, request *dto.ListOffersRequest) ([]dto.OfferDTO, error) {
	var status *string
	if request != nil && request.Status != nil {
		if !models.IsValidOfferStatus(*request.Status) {
			return nil, NewBusinessError("OFFER_LIST_FAILED", "Offer listing failed", ErrInvalidOfferStatus)
		}
		status = request.Status
	}

	offers, err := of.offerRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, NewBusinessError("OFFER_LIST_FAILED", "Offer listing failed", err)
	}

	return toOfferDTOs(offers), nil
}

// ListAllOffers returns every offer regardless of status, for admin views
func (of *OfferFlowImpl) ListAllOffers(ctx context.Context) ([]dto.OfferDTO, error) {
	offers, err := of.offerRepo.ListAll(ctx)
	if err != nil {
		return nil, NewBusinessError("OFFER_LIST_FAILED", "Offer listing failed", err)
	}

	return toOfferDTOs(offers), nil
}

func toOfferDTOs(offers []*models.Offer) []dto.OfferDTO {
	result := make([]dto.OfferDTO, 0, len(offers))
	for _, offer := range offers {
		result = append(result, ToOfferDTO(*offer))
	}
	return result
}

func hasUpdateFields(request *dto.UpdateOfferRequest) bool {
	return request.Title != nil ||
		request.Description != nil ||
		request.BankName != nil ||
		request.BonusAmount != nil ||
		request.Requirements != nil ||
		request.ApplicationURL != nil ||
		request.ImageURL != nil ||
		request.Status != nil
}

func (of *OfferFlowImpl) logOfferAction(ctx context.Context, adminID uint, action string, description string, metadata *ClientMetadata) error {
	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	audit := &models.AuditLog{
		UserID:      &adminID,
		Action:      action,
		Description: &description,
		Success:     utils.ToPtr(true),
		IPAddress:   &ipAddress,
		UserAgent:   &userAgent,
		CreatedAt:   utils.UTCNow(),
	}

	requestID := ctx.Value(RequestIDKey)
	if requestID != nil {
		if requestIDStr, ok := requestID.(string); ok {
			audit.RequestID = &requestIDStr
		}
	}

	return of.auditRepo.Save(ctx, audit)
}
