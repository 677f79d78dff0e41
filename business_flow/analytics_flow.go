package businessflow

import (
	"context"
	"encoding/json"

	"github.com/churnbase/churnbase/app/dto"
	"github.com/churnbase/churnbase/app/middleware"
	"github.com/churnbase/churnbase/config"
	"github.com/churnbase/churnbase/models"
	"github.com/churnbase/churnbase/repository"
	"github.com/churnbase/churnbase/utils"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// AnalyticsFlow computes per-offer and platform-wide analytics.
//
// TotalClicks and TotalApplications are always recounted from the
// offer_interactions log; the denormalized counters on the offer row are a
// display-only cache and never feed analytics. clickRate is a percentage of
// applications over views and is deliberately not capped at 100: a user can
// apply without a tracked view.
type AnalyticsFlow interface {
	AnalyzeOffer(ctx context.Context, offerUUID string) (*dto.OfferAnalyticsDTO, error)
	AnalyzeAllOffers(ctx context.Context) ([]dto.OfferAnalyticsDTO, error)
	Dashboard(ctx context.Context) (*dto.DashboardSummaryDTO, error)
}

// AnalyticsFlowImpl implements the analytics business flow
type AnalyticsFlowImpl struct {
	offerRepo       repository.OfferRepository
	interactionRepo repository.OfferInteractionRepository
	rc              *redis.Client
	cacheConfig     *config.CacheConfig
	db              *gorm.DB
}

// NewAnalyticsFlow creates a new analytics flow instance
func NewAnalyticsFlow(
	offerRepo repository.OfferRepository,
	interactionRepo repository.OfferInteractionRepository,
	rc *redis.Client,
	cacheConfig *config.CacheConfig,
	db *gorm.DB,
) AnalyticsFlow {
	return &AnalyticsFlowImpl{
		offerRepo:       offerRepo,
		interactionRepo: interactionRepo,
		rc:              rc,
		cacheConfig:     cacheConfig,
		db:              db,
	}
}

// AnalyzeOffer recomputes one offer's analytics from its event log
func (s *AnalyticsFlowImpl) AnalyzeOffer(ctx context.Context, offerUUID string) (*dto.OfferAnalyticsDTO, error) {
	offer, err := s.offerRepo.ByUUID(ctx, offerUUID)
	if err != nil {
		return nil, NewBusinessError("ANALYTICS_FAILED", "Offer analytics failed", err)
	}
	if offer == nil {
		return nil, NewBusinessError("ANALYTICS_FAILED", "Offer analytics failed", ErrOfferNotFound)
	}

	clicks, applications, err := s.interactionRepo.CountByOffer(ctx, offer.ID)
	if err != nil {
		return nil, NewBusinessError("ANALYTICS_FAILED", "Offer analytics failed", err)
	}

	recent, err := s.interactionRepo.ListByOffer(ctx, offer.ID, utils.RecentActivityLimit)
	if err != nil {
		return nil, NewBusinessError("ANALYTICS_FAILED", "Offer analytics failed", err)
	}

	recentDTOs := make([]dto.InteractionDTO, 0, len(recent))
	for _, event := range recent {
		recentDTOs = append(recentDTOs, ToInteractionDTO(*event))
	}

	result := buildOfferAnalytics(*offer, clicks, applications)
	result.RecentActivity = recentDTOs
	return &result, nil
}

// AnalyzeAllOffers recomputes analytics for every offer regardless of status,
// ordered by offer creation time, newest first. The result is served from a
// short-lived redis snapshot when available.
func (s *AnalyticsFlowImpl) AnalyzeAllOffers(ctx context.Context) ([]dto.OfferAnalyticsDTO, error) {
	cacheKey := redisKey(s.cacheConfig, utils.AllOffersAnalyticsCacheKey)

	if s.rc != nil {
		if bs, err := s.rc.Get(ctx, cacheKey).Bytes(); err == nil && len(bs) > 0 {
			var out []dto.OfferAnalyticsDTO
			if err := json.Unmarshal(bs, &out); err == nil {
				middleware.ObserveAnalyticsCache("hit")
				return out, nil
			}
		}
		middleware.ObserveAnalyticsCache("miss")
	}

	offers, err := s.offerRepo.ListAll(ctx)
	if err != nil {
		return nil, NewBusinessError("ANALYTICS_FAILED", "Analytics aggregation failed", err)
	}

	counts, err := s.interactionRepo.CountsGroupedByOffer(ctx)
	if err != nil {
		return nil, NewBusinessError("ANALYTICS_FAILED", "Analytics aggregation failed", err)
	}

	result := make([]dto.OfferAnalyticsDTO, 0, len(offers))
	for _, offer := range offers {
		row := counts[offer.ID]
		result = append(result, buildOfferAnalytics(*offer, row.Clicks, row.Applications))
	}

	if s.rc != nil {
		if bs, err := json.Marshal(result); err == nil {
			_ = s.rc.Set(ctx, cacheKey, bs, utils.AllOffersAnalyticsCacheTTL).Err()
		}
	}

	return result, nil
}

// Dashboard folds all per-offer analytics into the platform summary
func (s *AnalyticsFlowImpl) Dashboard(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	analytics, err := s.AnalyzeAllOffers(ctx)
	if err != nil {
		return nil, err
	}

	summary := BuildDashboard(analytics)
	summary.Offers = analytics
	return &summary, nil
}

// BuildDashboard is a pure fold over per-offer analytics: totals are simple
// sums, avgClickRate is the arithmetic mean of the per-offer clickRates
// rounded to 2 decimals, and the empty input yields all zeros.
func BuildDashboard(analytics []dto.OfferAnalyticsDTO) dto.DashboardSummaryDTO {
	summary := dto.DashboardSummaryDTO{}
	if len(analytics) == 0 {
		return summary
	}

	var rateSum float64
	for _, entry := range analytics {
		summary.TotalOffers++
		summary.TotalClicks += entry.TotalClicks
		summary.TotalApplications += entry.TotalApplications
		summary.TotalRevenue += entry.Revenue
		rateSum += entry.ClickRate
	}
	summary.AvgClickRate = utils.Round2(rateSum / float64(summary.TotalOffers))

	return summary
}

// buildOfferAnalytics derives the metric set for one offer from event counts
func buildOfferAnalytics(offer models.Offer, clicks, applications int64) dto.OfferAnalyticsDTO {
	var clickRate float64
	if clicks > 0 {
		clickRate = float64(applications) / float64(clicks) * 100
	}

	return dto.OfferAnalyticsDTO{
		OfferID:           offer.ID,
		OfferUUID:         offer.UUID.String(),
		Title:             offer.Title,
		BankName:          offer.BankName,
		BonusAmount:       offer.BonusAmount,
		TotalClicks:       clicks,
		TotalApplications: applications,
		Revenue:           float64(applications) * offer.BonusAmount,
		ClickRate:         clickRate,
	}
}

func redisKey(cacheConfig *config.CacheConfig, key string) string {
	if cacheConfig == nil {
		return key
	}
	return cacheConfig.RedisPrefix + key
}
