package businessflow

import (
	"context"

	"github.com/churnbase/churnbase/app/dto"
	"github.com/churnbase/churnbase/models"
	"github.com/churnbase/churnbase/repository"
	"github.com/churnbase/churnbase/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InteractionFlow records click-tracking events and serves user history.
//
// Every view or application is appended to the offer_interactions log and the
// matching denormalized counter on the offer row is bumped in the same
// transaction, so the cached counters can never drift ahead of or behind the
// log. Recording is deliberately not idempotent: two views by the same user
// are two events.
type InteractionFlow interface {
	RecordInteraction(ctx context.Context, offerUUID string, userID uint, request *dto.RecordInteractionRequest, metadata *ClientMetadata) (*dto.InteractionDTO, error)
	UserHistory(ctx context.Context, userID uint) ([]dto.UserHistoryItemDTO, error)
}

// InteractionFlowImpl implements the interaction business flow
type InteractionFlowImpl struct {
	offerRepo       repository.OfferRepository
	interactionRepo repository.OfferInteractionRepository
	db              *gorm.DB
}

// NewInteractionFlow creates a new interaction flow instance
func NewInteractionFlow(
	offerRepo repository.OfferRepository,
	interactionRepo repository.OfferInteractionRepository,
	db *gorm.DB,
) InteractionFlow {
	return &InteractionFlowImpl{
		offerRepo:       offerRepo,
		interactionRepo: interactionRepo,
		db:              db,
	}
}

// RecordInteraction appends one event to the log and bumps the offer's
// counter. The offer lookup, the event insert, and the server-side counter
// increment all run inside one transaction.
func (inf *InteractionFlowImpl) RecordInteraction(ctx context.Context, offerUUID string, userID uint, request *dto.RecordInteractionRequest, metadata *ClientMetadata) (*dto.InteractionDTO, error) {
	if !models.IsValidInteractionKind(request.Kind) {
		return nil, NewBusinessError("INTERACTION_RECORD_FAILED", "Interaction recording failed", ErrInvalidInteractionKind)
	}

	var interaction *models.OfferInteraction

	err := repository.WithTransaction(ctx, inf.db, func(ctx context.Context) error {
		offer, err := inf.offerRepo.ByUUID(ctx, offerUUID)
		if err != nil {
			return err
		}
		if offer == nil {
			return ErrOfferNotFound
		}

		var ipAddress, userAgent *string
		if metadata != nil {
			if metadata.IPAddress != "" {
				ipAddress = &metadata.IPAddress
			}
			if metadata.UserAgent != "" {
				userAgent = &metadata.UserAgent
			}
		}

		interaction = &models.OfferInteraction{
			UUID:      uuid.New(),
			OfferID:   offer.ID,
			UserID:    userID,
			Kind:      request.Kind,
			IPAddress: ipAddress,
			UserAgent: userAgent,
			CreatedAt: utils.UTCNow(),
		}
		if err := inf.interactionRepo.Save(ctx, interaction); err != nil {
			return err
		}

		return inf.offerRepo.IncrementCounters(ctx, offer.ID, request.Kind)
	})
	if err != nil {
		return nil, NewBusinessError("INTERACTION_RECORD_FAILED", "Interaction recording failed", err)
	}

	result := ToInteractionDTO(*interaction)
	return &result, nil
}

// UserHistory returns the user's full interaction history joined with offer
// summary fields, newest first
func (inf *InteractionFlowImpl) UserHistory(ctx context.Context, userID uint) ([]dto.UserHistoryItemDTO, error) {
	rows, err := inf.interactionRepo.ListByUser(ctx, userID, 0, 0)
	if err != nil {
		return nil, NewBusinessError("HISTORY_FAILED", "History lookup failed", err)
	}

	result := make([]dto.UserHistoryItemDTO, 0, len(rows))
	for _, row := range rows {
		result = append(result, ToUserHistoryItemDTO(*row))
	}
	return result, nil
}
