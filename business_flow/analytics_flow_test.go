package businessflow_test

import (
	"context"
	"testing"
	"time"

	"github.com/churnbase/churnbase/app/dto"
	businessflow "github.com/churnbase/churnbase/business_flow"
	"github.com/churnbase/churnbase/models"
	"github.com/churnbase/churnbase/repository"
	testingutil "github.com/churnbase/churnbase/testing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeOffer(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		offerRepo := repository.NewOfferRepository(testDB.DB)
		interactionRepo := repository.NewOfferInteractionRepository(testDB.DB)

		// nil redis client: cache off, every call recomputes
		analyticsFlow := businessflow.NewAnalyticsFlow(offerRepo, interactionRepo, nil, nil, testDB.DB)

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		offer, err := fixtures.CreateTestOffer(600)
		require.NoError(t, err)

		_, err = fixtures.CreateTestInteraction(offer.ID, user.ID, models.InteractionKindView)
		require.NoError(t, err)
		_, err = fixtures.CreateTestInteraction(offer.ID, user.ID, models.InteractionKindView)
		require.NoError(t, err)
		_, err = fixtures.CreateTestInteraction(offer.ID, user.ID, models.InteractionKindApply)
		require.NoError(t, err)

		t.Run("MetricsFromEventLog", func(t *testing.T) {
			result, err := analyticsFlow.AnalyzeOffer(context.Background(), offer.UUID.String())
			require.NoError(t, err)
			require.NotNil(t, result)

			assert.Equal(t, int64(2), result.TotalClicks)
			assert.Equal(t, int64(1), result.TotalApplications)
			assert.Equal(t, float64(600), result.Revenue)
			assert.Equal(t, float64(50), result.ClickRate)
			assert.Len(t, result.RecentActivity, 3)
		})

		t.Run("CountersAreDisplayOnly", func(t *testing.T) {
			// Drift the denormalized counters; analytics must keep answering
			// from the event log
			err := testDB.DB.Model(&models.Offer{}).
				Where("id = ?", offer.ID).
				Updates(map[string]any{"click_count": 999, "application_count": 999}).Error
			require.NoError(t, err)

			result, err := analyticsFlow.AnalyzeOffer(context.Background(), offer.UUID.String())
			require.NoError(t, err)
			assert.Equal(t, int64(2), result.TotalClicks)
			assert.Equal(t, int64(1), result.TotalApplications)
		})

		t.Run("RecentActivityWindow", func(t *testing.T) {
			// 12 events: the 2 oldest are applies, the 10 newest are views.
			// Only the 10 newest come back, newest first.
			busy, err := fixtures.CreateTestOffer(250)
			require.NoError(t, err)
			for i := 0; i < 2; i++ {
				_, err := fixtures.CreateTestInteraction(busy.ID, user.ID, models.InteractionKindApply)
				require.NoError(t, err)
			}
			for i := 0; i < 10; i++ {
				_, err := fixtures.CreateTestInteraction(busy.ID, user.ID, models.InteractionKindView)
				require.NoError(t, err)
			}

			result, err := analyticsFlow.AnalyzeOffer(context.Background(), busy.UUID.String())
			require.NoError(t, err)

			// The full log still feeds the counts
			assert.Equal(t, int64(10), result.TotalClicks)
			assert.Equal(t, int64(2), result.TotalApplications)

			require.Len(t, result.RecentActivity, 10)
			for i, event := range result.RecentActivity {
				assert.Equal(t, models.InteractionKindView, event.Kind)
				if i > 0 {
					assert.Greater(t, result.RecentActivity[i-1].ID, event.ID)
				}
			}
		})

		t.Run("NoInteractions", func(t *testing.T) {
			fresh, err := fixtures.CreateTestOffer(100)
			require.NoError(t, err)

			result, err := analyticsFlow.AnalyzeOffer(context.Background(), fresh.UUID.String())
			require.NoError(t, err)
			assert.Equal(t, int64(0), result.TotalClicks)
			assert.Equal(t, int64(0), result.TotalApplications)
			assert.Equal(t, float64(0), result.Revenue)
			assert.Equal(t, float64(0), result.ClickRate)
			assert.Empty(t, result.RecentActivity)
		})

		t.Run("UnknownOffer", func(t *testing.T) {
			_, err := analyticsFlow.AnalyzeOffer(context.Background(), "550e8400-e29b-41d4-a716-446655440000")
			require.Error(t, err)
			assert.True(t, businessflow.IsOfferNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestAnalyzeAllOffersAndDashboard(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		offerRepo := repository.NewOfferRepository(testDB.DB)
		interactionRepo := repository.NewOfferInteractionRepository(testDB.DB)
		analyticsFlow := businessflow.NewAnalyticsFlow(offerRepo, interactionRepo, nil, nil, testDB.DB)

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		// Offer A: 2 views, 1 apply -> 50% rate, revenue 600
		offerA, err := fixtures.CreateTestOffer(600)
		require.NoError(t, err)
		_, err = fixtures.CreateTestInteraction(offerA.ID, user.ID, models.InteractionKindView)
		require.NoError(t, err)
		_, err = fixtures.CreateTestInteraction(offerA.ID, user.ID, models.InteractionKindView)
		require.NoError(t, err)
		_, err = fixtures.CreateTestInteraction(offerA.ID, user.ID, models.InteractionKindApply)
		require.NoError(t, err)

		// Offer B: 1 view, no applies -> 0% rate, revenue 0
		offerB, err := fixtures.CreateTestOffer(200)
		require.NoError(t, err)
		_, err = fixtures.CreateTestInteraction(offerB.ID, user.ID, models.InteractionKindView)
		require.NoError(t, err)

		t.Run("AnalyzeAllOffers", func(t *testing.T) {
			results, err := analyticsFlow.AnalyzeAllOffers(context.Background())
			require.NoError(t, err)
			require.Len(t, results, 2)

			// Newest offer first
			assert.Equal(t, offerB.UUID.String(), results[0].OfferUUID)
			assert.Equal(t, offerA.UUID.String(), results[1].OfferUUID)

			byUUID := make(map[string]dto.OfferAnalyticsDTO, len(results))
			for _, entry := range results {
				byUUID[entry.OfferUUID] = entry
			}

			entryA := byUUID[offerA.UUID.String()]
			assert.Equal(t, int64(2), entryA.TotalClicks)
			assert.Equal(t, int64(1), entryA.TotalApplications)
			assert.Equal(t, float64(600), entryA.Revenue)
			assert.Equal(t, float64(50), entryA.ClickRate)

			entryB := byUUID[offerB.UUID.String()]
			assert.Equal(t, int64(1), entryB.TotalClicks)
			assert.Equal(t, int64(0), entryB.TotalApplications)
			assert.Equal(t, float64(0), entryB.Revenue)
			assert.Equal(t, float64(0), entryB.ClickRate)
		})

		t.Run("Dashboard", func(t *testing.T) {
			summary, err := analyticsFlow.Dashboard(context.Background())
			require.NoError(t, err)

			assert.Equal(t, int64(2), summary.TotalOffers)
			assert.Equal(t, int64(3), summary.TotalClicks)
			assert.Equal(t, int64(1), summary.TotalApplications)
			assert.Equal(t, float64(600), summary.TotalRevenue)
			// Mean of per-offer rates (50 + 0) / 2, not a global ratio
			assert.Equal(t, float64(25), summary.AvgClickRate)
			assert.Len(t, summary.Offers, 2)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestBuildDashboard(t *testing.T) {
	t.Run("EmptyInputYieldsZeros", func(t *testing.T) {
		summary := businessflow.BuildDashboard(nil)
		assert.Equal(t, int64(0), summary.TotalOffers)
		assert.Equal(t, int64(0), summary.TotalClicks)
		assert.Equal(t, int64(0), summary.TotalApplications)
		assert.Equal(t, float64(0), summary.TotalRevenue)
		assert.Equal(t, float64(0), summary.AvgClickRate)
	})

	t.Run("AvgClickRateRounded", func(t *testing.T) {
		summary := businessflow.BuildDashboard([]dto.OfferAnalyticsDTO{
			{TotalClicks: 3, TotalApplications: 1, ClickRate: 33.333333, Revenue: 300},
			{TotalClicks: 3, TotalApplications: 2, ClickRate: 66.666666, Revenue: 600},
		})
		assert.Equal(t, int64(2), summary.TotalOffers)
		assert.Equal(t, int64(6), summary.TotalClicks)
		assert.Equal(t, int64(3), summary.TotalApplications)
		assert.Equal(t, float64(900), summary.TotalRevenue)
		assert.Equal(t, 50.0, summary.AvgClickRate)
	})

	t.Run("ClickRateAbove100NotCapped", func(t *testing.T) {
		// Applying without a tracked view pushes the rate past 100
		summary := businessflow.BuildDashboard([]dto.OfferAnalyticsDTO{
			{TotalClicks: 1, TotalApplications: 3, ClickRate: 300},
		})
		assert.Equal(t, 300.0, summary.AvgClickRate)
	})
}

func TestAnalyzeAllOffersCacheMetrics(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		offerRepo := repository.NewOfferRepository(testDB.DB)
		interactionRepo := repository.NewOfferInteractionRepository(testDB.DB)

		// Unreachable redis: every lookup misses and the write-back is dropped
		rc := redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 100 * time.Millisecond,
			MaxRetries:  -1,
		})
		defer rc.Close()
		analyticsFlow := businessflow.NewAnalyticsFlow(offerRepo, interactionRepo, rc, nil, testDB.DB)

		before := analyticsCacheOutcome(t, "miss")
		_, err := analyticsFlow.AnalyzeAllOffers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, before+1, analyticsCacheOutcome(t, "miss"))

		return nil
	})
	require.NoError(t, err)
}

// analyticsCacheOutcome reads the current analytics_cache_total value for one
// outcome label from the default prometheus registry.
func analyticsCacheOutcome(t *testing.T, outcome string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != "analytics_cache_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "outcome" && label.GetValue() == outcome {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
