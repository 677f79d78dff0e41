package dto

// RecordInteractionRequest represents the request to record a view or apply event
type RecordInteractionRequest struct {
	Kind string `json:"kind" validate:"required,oneof=view apply" example:"view"`
}

// InteractionDTO represents a single recorded interaction event
type InteractionDTO struct {
	ID        uint   `json:"id" example:"1"`
	OfferID   uint   `json:"offer_id" example:"1"`
	UserID    uint   `json:"user_id" example:"123"`
	Kind      string `json:"kind" example:"view"`
	CreatedAt string `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

// UserHistoryItemDTO represents one entry of a user's interaction history,
// joined with offer summary fields
type UserHistoryItemDTO struct {
	ID          uint    `json:"id" example:"1"`
	OfferID     uint    `json:"offer_id" example:"1"`
	OfferUUID   string  `json:"offer_uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	OfferTitle  string  `json:"offer_title" example:"Chase Total Checking $300 Bonus"`
	BankName    string  `json:"bank_name" example:"Chase"`
	BonusAmount float64 `json:"bonus_amount" example:"300"`
	Kind        string  `json:"kind" example:"apply"`
	CreatedAt   string  `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

// Interaction-related error codes
const (
	ErrorInvalidInteractionKind = "INVALID_INTERACTION_KIND"
)
