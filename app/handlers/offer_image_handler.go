package handlers

import (
	"log"

	"github.com/churnbase/churnbase/app/dto"
	"github.com/churnbase/churnbase/app/middleware"
	businessflow "github.com/churnbase/churnbase/business_flow"
	"github.com/gofiber/fiber/v3"
)

// OfferImageHandlerInterface defines offer image upload and serving endpoints
type OfferImageHandlerInterface interface {
	Upload(c fiber.Ctx) error
	Download(c fiber.Ctx) error
	Preview(c fiber.Ctx) error
	ListImages(c fiber.Ctx) error
}

// OfferImageHandler handles offer image HTTP requests
type OfferImageHandler struct {
	flow businessflow.OfferImageFlow
}

// NewOfferImageHandler creates a new offer image handler
func NewOfferImageHandler(flow businessflow.OfferImageFlow) *OfferImageHandler {
	return &OfferImageHandler{flow: flow}
}

func (h *OfferImageHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *OfferImageHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Upload attaches an image to an offer
// @Summary Admin Upload Offer Image
// @Description Upload an image (jpg/jpeg/png/gif/webp, <=10MB) for an offer; a thumbnail is rendered on upload
// @Tags Admin Offers
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Offer UUID"
// @Param file formData file true "Image file (<=10MB)"
// @Success 201 {object} dto.APIResponse{data=dto.OfferImageDTO} "Upload successful"
// @Failure 400 {object} dto.APIResponse "Invalid file"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Offer not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/offers/{uuid}/images [post]
func (h *OfferImageHandler) Upload(c fiber.Ctx) error {
	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader == nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "file is required", "INVALID_FILE", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "invalid file", "INVALID_FILE", err.Error())
	}
	defer file.Close()

	offerUUID := c.Params("uuid")
	result, err := h.flow.UploadImage(createRequestContext(c, "/api/v1/admin/offers/:uuid/images"), offerUUID, adminID, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		if businessflow.IsOfferNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Offer not found", dto.ErrorOfferNotFound, nil)
		}
		if businessflow.IsImageTooLarge(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Image too large", "IMAGE_TOO_LARGE", nil)
		}
		if businessflow.IsUnsupportedImage(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Unsupported image type", "UNSUPPORTED_IMAGE", nil)
		}

		log.Println("Upload offer image failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to upload image", "UPLOAD_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Upload successful", result)
}

// Download serves the original image file
// @Summary Download Offer Image
// @Description Download an offer image by its UUID
// @Tags Offers
// @Produce application/octet-stream
// @Param uuid path string true "Image UUID"
// @Success 200 {string} string "Binary file"
// @Failure 404 {object} dto.APIResponse "Image not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/offer-images/{uuid} [get]
func (h *OfferImageHandler) Download(c fiber.Ctx) error {
	imageUUID := c.Params("uuid")

	filename, contentType, data, err := h.flow.DownloadImage(createRequestContext(c, "/api/v1/offer-images/:uuid"), imageUUID)
	if err != nil {
		if businessflow.IsImageNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Image not found", "IMAGE_NOT_FOUND", nil)
		}

		log.Println("Download offer image failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to download image", "DOWNLOAD_FAILED", nil)
	}

	c.Set("Content-Type", contentType)
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(data)
}

// Preview serves the pre-rendered thumbnail
// @Summary Preview Offer Image
// @Description Serve the thumbnail of an offer image by its UUID
// @Tags Offers
// @Produce image/jpeg
// @Param uuid path string true "Image UUID"
// @Success 200 {string} string "Thumbnail"
// @Failure 404 {object} dto.APIResponse "Image not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/offer-images/{uuid}/preview [get]
func (h *OfferImageHandler) Preview(c fiber.Ctx) error {
	imageUUID := c.Params("uuid")

	_, contentType, data, err := h.flow.PreviewImage(createRequestContext(c, "/api/v1/offer-images/:uuid/preview"), imageUUID)
	if err != nil {
		if businessflow.IsImageNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Image not found", "IMAGE_NOT_FOUND", nil)
		}

		log.Println("Preview offer image failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to preview image", "PREVIEW_FAILED", nil)
	}

	c.Set("Content-Type", contentType)
	return c.Send(data)
}

// ListImages lists the images attached to an offer
// @Summary List Offer Images
// @Description List images attached to an offer
// @Tags Offers
// @Produce json
// @Param uuid path string true "Offer UUID"
// @Success 200 {object} dto.APIResponse{data=[]dto.OfferImageDTO} "Images"
// @Failure 404 {object} dto.APIResponse "Offer not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/offers/{uuid}/images [get]
func (h *OfferImageHandler) ListImages(c fiber.Ctx) error {
	offerUUID := c.Params("uuid")

	images, err := h.flow.ListOfferImages(createRequestContext(c, "/api/v1/offers/:uuid/images"), offerUUID)
	if err != nil {
		if businessflow.IsOfferNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Offer not found", dto.ErrorOfferNotFound, nil)
		}

		log.Println("List offer images failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list images", "LIST_IMAGES_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Images retrieved", images)
}
