package handlers

import (
	"log"

	"github.com/churnbase/churnbase/app/dto"
	"github.com/churnbase/churnbase/app/middleware"
	businessflow "github.com/churnbase/churnbase/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// AdminOfferHandlerInterface defines admin offer management endpoints
type AdminOfferHandlerInterface interface {
	CreateOffer(c fiber.Ctx) error
	UpdateOffer(c fiber.Ctx) error
	DeleteOffer(c fiber.Ctx) error
	ListAllOffers(c fiber.Ctx) error
}

// AdminOfferHandler handles offer management HTTP requests for admins
type AdminOfferHandler struct {
	offerFlow businessflow.OfferFlow
	validator *validator.Validate
}

// NewAdminOfferHandler creates a new admin offer handler
func NewAdminOfferHandler(offerFlow businessflow.OfferFlow) *AdminOfferHandler {
	return &AdminOfferHandler{
		offerFlow: offerFlow,
		validator: validator.New(),
	}
}

func (h *AdminOfferHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AdminOfferHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreateOffer creates a new bank offer
// @Summary Admin Create Offer
// @Description Create a new bank offer with zeroed counters
// @Tags Admin Offers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOfferRequest true "Offer data"
// @Success 201 {object} dto.APIResponse{data=dto.OfferDTO} "Offer created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/offers [post]
func (h *AdminOfferHandler) CreateOffer(c fiber.Ctx) error {
	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.CreateOfferRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	offer, err := h.offerFlow.CreateOffer(createRequestContext(c, "/api/v1/admin/offers"), &req, adminID, metadata)
	if err != nil {
		if businessflow.IsInvalidOfferStatus(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid offer status", dto.ErrorInvalidOfferStatus, nil)
		}

		log.Println("Create offer failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create offer", "CREATE_OFFER_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Offer created", offer)
}

// UpdateOffer updates fields of an existing offer
// @Summary Admin Update Offer
// @Description Update an existing bank offer; only provided fields change
// @Tags Admin Offers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Offer UUID"
// @Param request body dto.UpdateOfferRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.OfferDTO} "Offer updated"
// @Failure 400 {object} dto.APIResponse "Validation error or no fields provided"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Offer not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/offers/{uuid} [put]
func (h *AdminOfferHandler) UpdateOffer(c fiber.Ctx) error {
	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	var req dto.UpdateOfferRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	offerUUID := c.Params("uuid")
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	offer, err := h.offerFlow.UpdateOffer(createRequestContext(c, "/api/v1/admin/offers/:uuid"), offerUUID, &req, adminID, metadata)
	if err != nil {
		if businessflow.IsOfferNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Offer not found", dto.ErrorOfferNotFound, nil)
		}
		if businessflow.IsOfferUpdateRequired(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "No fields to update", dto.ErrorNoFieldsToUpdate, nil)
		}
		if businessflow.IsInvalidOfferStatus(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid offer status", dto.ErrorInvalidOfferStatus, nil)
		}

		log.Println("Update offer failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update offer", "UPDATE_OFFER_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Offer updated", offer)
}

// DeleteOffer removes an offer and its interaction history
// @Summary Admin Delete Offer
// @Description Delete an offer; its interaction events are removed with it
// @Tags Admin Offers
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Offer UUID"
// @Success 200 {object} dto.APIResponse "Offer deleted"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Offer not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/offers/{uuid} [delete]
func (h *AdminOfferHandler) DeleteOffer(c fiber.Ctx) error {
	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	offerUUID := c.Params("uuid")
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	if err := h.offerFlow.DeleteOffer(createRequestContext(c, "/api/v1/admin/offers/:uuid"), offerUUID, adminID, metadata); err != nil {
		if businessflow.IsOfferNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Offer not found", dto.ErrorOfferNotFound, nil)
		}

		log.Println("Delete offer failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete offer", "DELETE_OFFER_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Offer deleted", nil)
}

// ListAllOffers lists every offer regardless of status
// @Summary Admin List All Offers
// @Description List all bank offers including inactive and expired ones
// @Tags Admin Offers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.OfferDTO} "Offers"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/offers [get]
func (h *AdminOfferHandler) ListAllOffers(c fiber.Ctx) error {
	offers, err := h.offerFlow.ListAllOffers(createRequestContext(c, "/api/v1/admin/offers"))
	if err != nil {
		log.Println("List all offers failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list offers", "LIST_OFFERS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Offers retrieved", offers)
}
