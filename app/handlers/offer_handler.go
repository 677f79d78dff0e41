package handlers

import (
	"log"

	"github.com/churnbase/churnbase/app/dto"
	"github.com/churnbase/churnbase/app/middleware"
	businessflow "github.com/churnbase/churnbase/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// OfferHandlerInterface defines the public and user-facing offer endpoints
type OfferHandlerInterface interface {
	ListOffers(c fiber.Ctx) error
	GetOffer(c fiber.Ctx) error
	RecordInteraction(c fiber.Ctx) error
	UserHistory(c fiber.Ctx) error
}

// OfferHandler handles offer browsing and click-tracking HTTP requests
type OfferHandler struct {
	offerFlow       businessflow.OfferFlow
	interactionFlow businessflow.InteractionFlow
	validator       *validator.Validate
}

// NewOfferHandler creates a new offer handler
func NewOfferHandler(offerFlow businessflow.OfferFlow, interactionFlow businessflow.InteractionFlow) *OfferHandler {
	return &OfferHandler{
		offerFlow:       offerFlow,
		interactionFlow: interactionFlow,
		validator:       validator.New(),
	}
}

func (h *OfferHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *OfferHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListOffers lists offers filtered by status (defaults to active)
// @Summary List Offers
// @Description List bank offers, newest first. Defaults to active offers.
// @Tags Offers
// @Produce json
// @Param status query string false "Offer status filter" Enums(active, inactive, expired)
// @Success 200 {object} dto.APIResponse{data=[]dto.OfferDTO} "Offers"
// @Failure 400 {object} dto.APIResponse "Invalid status"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/offers [get]
func (h *OfferHandler) ListOffers(c fiber.Ctx) error {
	var req dto.ListOffersRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	offers, err := h.offerFlow.ListOffers(createRequestContext(c, "/api/v1/offers"), &req)
	if err != nil {
		if businessflow.IsInvalidOfferStatus(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid offer status", dto.ErrorInvalidOfferStatus, nil)
		}

		log.Println("List offers failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list offers", "LIST_OFFERS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Offers retrieved", offers)
}

// GetOffer returns a single offer by UUID
// @Summary Get Offer
// @Description Get a single bank offer by its UUID
// @Tags Offers
// @Produce json
// @Param uuid path string true "Offer UUID"
// @Success 200 {object} dto.APIResponse{data=dto.OfferDTO} "Offer"
// @Failure 404 {object} dto.APIResponse "Offer not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/offers/{uuid} [get]
func (h *OfferHandler) GetOffer(c fiber.Ctx) error {
	offerUUID := c.Params("uuid")

	offer, err := h.offerFlow.GetOffer(createRequestContext(c, "/api/v1/offers/:uuid"), offerUUID)
	if err != nil {
		if businessflow.IsOfferNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Offer not found", dto.ErrorOfferNotFound, nil)
		}

		log.Println("Get offer failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to get offer", "GET_OFFER_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Offer retrieved", offer)
}

// RecordInteraction records a view or apply event against an offer
// @Summary Record Offer Interaction
// @Description Record a view (click) or apply event for an offer and bump its counters
// @Tags Offers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Offer UUID"
// @Param request body dto.RecordInteractionRequest true "Interaction kind"
// @Success 201 {object} dto.APIResponse{data=dto.InteractionDTO} "Interaction recorded"
// @Failure 400 {object} dto.APIResponse "Invalid interaction kind"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Offer not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/offers/{uuid}/interactions [post]
func (h *OfferHandler) RecordInteraction(c fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.RecordInteractionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	offerUUID := c.Params("uuid")
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	interaction, err := h.interactionFlow.RecordInteraction(createRequestContext(c, "/api/v1/offers/:uuid/interactions"), offerUUID, userID, &req, metadata)
	if err != nil {
		if businessflow.IsOfferNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Offer not found", dto.ErrorOfferNotFound, nil)
		}
		if businessflow.IsInvalidInteractionKind(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid interaction kind", dto.ErrorInvalidInteractionKind, nil)
		}

		log.Println("Record interaction failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record interaction", "RECORD_INTERACTION_FAILED", nil)
	}

	middleware.ObserveInteraction(req.Kind)

	return h.SuccessResponse(c, fiber.StatusCreated, "Interaction recorded", interaction)
}

// UserHistory returns the authenticated user's interaction history, newest first
// @Summary User Interaction History
// @Description List the authenticated user's recorded offer interactions
// @Tags Offers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserHistoryItemDTO} "Interaction history"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/users/me/history [get]
func (h *OfferHandler) UserHistory(c fiber.Ctx) error {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	history, err := h.interactionFlow.UserHistory(createRequestContext(c, "/api/v1/users/me/history"), userID)
	if err != nil {
		log.Println("User history failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load history", "USER_HISTORY_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "History retrieved", history)
}
