package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/churnbase/churnbase/models"
	"github.com/churnbase/churnbase/repository"
	testingutil "github.com/churnbase/churnbase/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairOfferGuard(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		offerRepo := repository.NewOfferRepository(testDB.DB)
		interactionRepo := repository.NewOfferInteractionRepository(testDB.DB)
		reconciler := NewCounterReconciler(offerRepo, interactionRepo, testDB.DB, time.Minute)

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		offer, err := fixtures.CreateTestOffer(300)
		require.NoError(t, err)

		// One view and one apply in the log; the row counters stay at 0
		_, err = fixtures.CreateTestInteraction(offer.ID, user.ID, models.InteractionKindView)
		require.NoError(t, err)
		_, err = fixtures.CreateTestInteraction(offer.ID, user.ID, models.InteractionKindApply)
		require.NoError(t, err)

		// Snapshot of the row as the reconciler read it
		stale := *offer

		t.Run("ConcurrentIncrementIsNotClobbered", func(t *testing.T) {
			// An increment lands on the row after the snapshot was taken
			err := testDB.DB.Model(&models.Offer{}).
				Where("id = ?", offer.ID).
				Update("click_count", 5).Error
			require.NoError(t, err)

			repaired, err := reconciler.repairOffer(context.Background(), &stale,
				repository.InteractionCounts{Clicks: 1, Applications: 1})
			require.NoError(t, err)
			assert.False(t, repaired)

			var current models.Offer
			require.NoError(t, testDB.DB.First(&current, offer.ID).Error)
			assert.Equal(t, int64(5), current.ClickCount)
			assert.Equal(t, int64(0), current.ApplicationCount)
		})

		t.Run("UnchangedRowIsRepaired", func(t *testing.T) {
			stale.ClickCount = 5
			stale.ApplicationCount = 0

			repaired, err := reconciler.repairOffer(context.Background(), &stale,
				repository.InteractionCounts{Clicks: 1, Applications: 1})
			require.NoError(t, err)
			assert.True(t, repaired)

			var current models.Offer
			require.NoError(t, testDB.DB.First(&current, offer.ID).Error)
			assert.Equal(t, int64(1), current.ClickCount)
			assert.Equal(t, int64(1), current.ApplicationCount)
		})

		return nil
	})
	require.NoError(t, err)
}
