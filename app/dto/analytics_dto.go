package dto

// OfferAnalyticsDTO represents per-offer analytics derived from the event log.
// TotalClicks and TotalApplications are recomputed from recorded events; the
// denormalized counters on the offer row are a display cache only.
type OfferAnalyticsDTO struct {
	OfferID           uint             `json:"offer_id" example:"1"`
	OfferUUID         string           `json:"offer_uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Title             string           `json:"title" example:"Chase Total Checking $300 Bonus"`
	BankName          string           `json:"bank_name" example:"Chase"`
	BonusAmount       float64          `json:"bonus_amount" example:"300"`
	TotalClicks       int64            `json:"total_clicks" example:"42"`
	TotalApplications int64            `json:"total_applications" example:"7"`
	Revenue           float64          `json:"revenue" example:"2100"`
	ClickRate         float64          `json:"click_rate" example:"16.67"`
	RecentActivity    []InteractionDTO `json:"recent_activity,omitempty"`
}

// DashboardSummaryDTO represents the platform-wide analytics dashboard
type DashboardSummaryDTO struct {
	TotalOffers       int64               `json:"total_offers" example:"12"`
	TotalClicks       int64               `json:"total_clicks" example:"420"`
	TotalApplications int64               `json:"total_applications" example:"36"`
	TotalRevenue      float64             `json:"total_revenue" example:"14400"`
	AvgClickRate      float64             `json:"avg_click_rate" example:"8.57"`
	Offers            []OfferAnalyticsDTO `json:"offers,omitempty"`
}

// ExportAnalyticsRequest selects the export format for the analytics report
type ExportAnalyticsRequest struct {
	Format string `json:"format" query:"format" validate:"omitempty,oneof=csv xlsx" example:"xlsx"`
}
