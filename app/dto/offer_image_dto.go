package dto

// OfferImageDTO represents an uploaded offer image in API responses
type OfferImageDTO struct {
	UUID             string `json:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	OfferID          uint   `json:"offer_id" example:"1"`
	OriginalFilename string `json:"original_filename" example:"chase-offer.png"`
	SizeBytes        int64  `json:"size_bytes" example:"204800"`
	MimeType         string `json:"mime_type" example:"image/png"`
	CreatedAt        string `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

// Offer image error codes
const (
	ErrorImageNotFound    = "IMAGE_NOT_FOUND"
	ErrorImageTooLarge    = "IMAGE_TOO_LARGE"
	ErrorUnsupportedImage = "UNSUPPORTED_IMAGE_TYPE"
)
