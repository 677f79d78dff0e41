package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/churnbase/churnbase/app/scheduler"
	"github.com/churnbase/churnbase/models"
	"github.com/churnbase/churnbase/repository"
	testingutil "github.com/churnbase/churnbase/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileOnce(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		offerRepo := repository.NewOfferRepository(testDB.DB)
		interactionRepo := repository.NewOfferInteractionRepository(testDB.DB)
		reconciler := scheduler.NewCounterReconciler(offerRepo, interactionRepo, testDB.DB, time.Minute)

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		offer, err := fixtures.CreateTestOffer(300)
		require.NoError(t, err)

		// Two views and one apply in the log
		_, err = fixtures.CreateTestInteraction(offer.ID, user.ID, models.InteractionKindView)
		require.NoError(t, err)
		_, err = fixtures.CreateTestInteraction(offer.ID, user.ID, models.InteractionKindView)
		require.NoError(t, err)
		_, err = fixtures.CreateTestInteraction(offer.ID, user.ID, models.InteractionKindApply)
		require.NoError(t, err)

		// Counters drifted: fixtures bypass the flow, so they are still zero
		t.Run("CorrectsDriftedCounters", func(t *testing.T) {
			corrected, err := reconciler.ReconcileOnce(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 1, corrected)

			stored, err := offerRepo.ByUUID(context.Background(), offer.UUID.String())
			require.NoError(t, err)
			assert.Equal(t, int64(2), stored.ClickCount)
			assert.Equal(t, int64(1), stored.ApplicationCount)
		})

		t.Run("SecondRunIsIdempotent", func(t *testing.T) {
			corrected, err := reconciler.ReconcileOnce(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 0, corrected)
		})

		t.Run("OfferWithoutInteractionsUntouched", func(t *testing.T) {
			_, err := fixtures.CreateTestOffer(100)
			require.NoError(t, err)

			corrected, err := reconciler.ReconcileOnce(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 0, corrected)
		})

		return nil
	})
	require.NoError(t, err)
}
