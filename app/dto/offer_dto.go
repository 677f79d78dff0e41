package dto

// CreateOfferRequest represents the admin request to create an offer
type CreateOfferRequest struct {
	Title          string   `json:"title" validate:"required,min=1,max=255" example:"Chase Total Checking $300 Bonus"`
	Description    string   `json:"description" validate:"required" example:"Open a new account and set up direct deposit"`
	BankName       string   `json:"bank_name" validate:"required,min=1,max=255" example:"Chase"`
	BonusAmount    float64  `json:"bonus_amount" validate:"required,gt=0" example:"300"`
	Requirements   string   `json:"requirements" validate:"required" example:"Direct deposit within 90 days"`
	ApplicationURL string   `json:"application_url" validate:"required,url" example:"https://chase.com/offer"`
	ImageURL       *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	Status         *string  `json:"status,omitempty" validate:"omitempty,oneof=active inactive expired" example:"active"`
}

// UpdateOfferRequest represents the admin request to update an offer.
// All fields are optional; at least one must be present.
type UpdateOfferRequest struct {
	Title          *string  `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description    *string  `json:"description,omitempty"`
	BankName       *string  `json:"bank_name,omitempty" validate:"omitempty,min=1,max=255"`
	BonusAmount    *float64 `json:"bonus_amount,omitempty" validate:"omitempty,gt=0"`
	Requirements   *string  `json:"requirements,omitempty"`
	ApplicationURL *string  `json:"application_url,omitempty" validate:"omitempty,url"`
	ImageURL       *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	Status         *string  `json:"status,omitempty" validate:"omitempty,oneof=active inactive expired"`
}

// OfferDTO represents an offer in API responses
type OfferDTO struct {
	ID               uint    `json:"id" example:"1"`
	UUID             string  `json:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Title            string  `json:"title" example:"Chase Total Checking $300 Bonus"`
	Description      string  `json:"description"`
	BankName         string  `json:"bank_name" example:"Chase"`
	BonusAmount      float64 `json:"bonus_amount" example:"300"`
	Requirements     string  `json:"requirements"`
	ApplicationURL   string  `json:"application_url"`
	ImageURL         *string `json:"image_url,omitempty"`
	Status           string  `json:"status" example:"active"`
	ClickCount       int64   `json:"click_count" example:"42"`
	ApplicationCount int64   `json:"application_count" example:"7"`
	CreatedAt        string  `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt        string  `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

// ListOffersRequest represents query parameters for listing offers
type ListOffersRequest struct {
	Status *string `json:"status,omitempty" query:"status" validate:"omitempty,oneof=active inactive expired"`
}

// Offer-related error codes
const (
	ErrorOfferNotFound      = "OFFER_NOT_FOUND"
	ErrorInvalidOfferStatus = "INVALID_OFFER_STATUS"
	ErrorNoFieldsToUpdate   = "NO_FIELDS_TO_UPDATE"
)
