package businessflow_test

import (
	"context"
	"sync"
	"testing"

	"github.com/churnbase/churnbase/app/dto"
	businessflow "github.com/churnbase/churnbase/business_flow"
	"github.com/churnbase/churnbase/models"
	"github.com/churnbase/churnbase/repository"
	testingutil "github.com/churnbase/churnbase/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordInteraction(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		offerRepo := repository.NewOfferRepository(testDB.DB)
		interactionRepo := repository.NewOfferInteractionRepository(testDB.DB)

		interactionFlow := businessflow.NewInteractionFlow(offerRepo, interactionRepo, testDB.DB)

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		offer, err := fixtures.CreateTestOffer(300)
		require.NoError(t, err)

		metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

		t.Run("SuccessfulView", func(t *testing.T) {
			result, err := interactionFlow.RecordInteraction(context.Background(), offer.UUID.String(), user.ID,
				&dto.RecordInteractionRequest{Kind: models.InteractionKindView}, metadata)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, offer.ID, result.OfferID)
			assert.Equal(t, user.ID, result.UserID)
			assert.Equal(t, models.InteractionKindView, result.Kind)

			// Event appended to the log
			clicks, applications, err := interactionRepo.CountByOffer(context.Background(), offer.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(1), clicks)
			assert.Equal(t, int64(0), applications)

			// Denormalized counter bumped in the same transaction
			stored, err := offerRepo.ByUUID(context.Background(), offer.UUID.String())
			require.NoError(t, err)
			assert.Equal(t, int64(1), stored.ClickCount)
			assert.Equal(t, int64(0), stored.ApplicationCount)
		})

		t.Run("RecordingIsNotIdempotent", func(t *testing.T) {
			// The same user viewing again is a second event
			_, err := interactionFlow.RecordInteraction(context.Background(), offer.UUID.String(), user.ID,
				&dto.RecordInteractionRequest{Kind: models.InteractionKindView}, metadata)
			require.NoError(t, err)

			clicks, _, err := interactionRepo.CountByOffer(context.Background(), offer.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(2), clicks)
		})

		t.Run("SuccessfulApply", func(t *testing.T) {
			result, err := interactionFlow.RecordInteraction(context.Background(), offer.UUID.String(), user.ID,
				&dto.RecordInteractionRequest{Kind: models.InteractionKindApply}, metadata)
			require.NoError(t, err)
			assert.Equal(t, models.InteractionKindApply, result.Kind)

			stored, err := offerRepo.ByUUID(context.Background(), offer.UUID.String())
			require.NoError(t, err)
			assert.Equal(t, int64(2), stored.ClickCount)
			assert.Equal(t, int64(1), stored.ApplicationCount)
		})

		t.Run("InvalidKind", func(t *testing.T) {
			_, err := interactionFlow.RecordInteraction(context.Background(), offer.UUID.String(), user.ID,
				&dto.RecordInteractionRequest{Kind: "bookmark"}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidInteractionKind(err))
		})

		t.Run("UnknownOffer", func(t *testing.T) {
			_, err := interactionFlow.RecordInteraction(context.Background(), "550e8400-e29b-41d4-a716-446655440000", user.ID,
				&dto.RecordInteractionRequest{Kind: models.InteractionKindView}, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsOfferNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}

// Concurrent recordings must not lose counter increments: the increment is a
// server-side UPDATE ... SET click_count = click_count + 1, not a read-modify-write.
func TestRecordInteractionConcurrent(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		offerRepo := repository.NewOfferRepository(testDB.DB)
		interactionRepo := repository.NewOfferInteractionRepository(testDB.DB)
		interactionFlow := businessflow.NewInteractionFlow(offerRepo, interactionRepo, testDB.DB)

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		offer, err := fixtures.CreateTestOffer(300)
		require.NoError(t, err)

		const workers = 20
		var wg sync.WaitGroup
		errs := make(chan error, workers)

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := interactionFlow.RecordInteraction(context.Background(), offer.UUID.String(), user.ID,
					&dto.RecordInteractionRequest{Kind: models.InteractionKindView}, nil)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}

		stored, err := offerRepo.ByUUID(context.Background(), offer.UUID.String())
		require.NoError(t, err)
		assert.Equal(t, int64(workers), stored.ClickCount)

		clicks, _, err := interactionRepo.CountByOffer(context.Background(), offer.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(workers), clicks)

		return nil
	})
	require.NoError(t, err)
}

func TestUserHistory(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		offerRepo := repository.NewOfferRepository(testDB.DB)
		interactionRepo := repository.NewOfferInteractionRepository(testDB.DB)
		interactionFlow := businessflow.NewInteractionFlow(offerRepo, interactionRepo, testDB.DB)

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)
		otherUser, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		offer, err := fixtures.CreateTestOffer(200)
		require.NoError(t, err)

		metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

		_, err = interactionFlow.RecordInteraction(context.Background(), offer.UUID.String(), user.ID,
			&dto.RecordInteractionRequest{Kind: models.InteractionKindView}, metadata)
		require.NoError(t, err)
		_, err = interactionFlow.RecordInteraction(context.Background(), offer.UUID.String(), user.ID,
			&dto.RecordInteractionRequest{Kind: models.InteractionKindApply}, metadata)
		require.NoError(t, err)
		_, err = interactionFlow.RecordInteraction(context.Background(), offer.UUID.String(), otherUser.ID,
			&dto.RecordInteractionRequest{Kind: models.InteractionKindView}, metadata)
		require.NoError(t, err)

		history, err := interactionFlow.UserHistory(context.Background(), user.ID)
		require.NoError(t, err)
		require.Len(t, history, 2)

		// Newest first, joined with offer summary fields
		assert.Equal(t, models.InteractionKindApply, history[0].Kind)
		assert.Equal(t, models.InteractionKindView, history[1].Kind)
		assert.Equal(t, offer.UUID.String(), history[0].OfferUUID)
		assert.Equal(t, offer.Title, history[0].OfferTitle)
		assert.Equal(t, offer.BankName, history[0].BankName)
		assert.Equal(t, offer.BonusAmount, history[0].BonusAmount)

		t.Run("EmptyHistory", func(t *testing.T) {
			freshUser, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			history, err := interactionFlow.UserHistory(context.Background(), freshUser.ID)
			require.NoError(t, err)
			assert.Empty(t, history)
		})

		return nil
	})
	require.NoError(t, err)
}
