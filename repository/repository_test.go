package repository_test

import (
	"context"
	"testing"

	"github.com/churnbase/churnbase/models"
	"github.com/churnbase/churnbase/repository"
	testingutil "github.com/churnbase/churnbase/testing"
	"github.com/churnbase/churnbase/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		offerRepo := repository.NewOfferRepository(testDB.DB)

		t.Run("SaveAndByUUID", func(t *testing.T) {
			offer := &models.Offer{
				UUID:           uuid.New(),
				Title:          "Citi Checking $200 Bonus",
				Description:    "Open a checking account",
				BankName:       "Citi",
				BonusAmount:    200,
				Requirements:   "Two direct deposits",
				ApplicationURL: "https://citi.example.com/apply",
				Status:         models.OfferStatusActive,
			}
			require.NoError(t, offerRepo.Save(context.Background(), offer))
			require.NotZero(t, offer.ID)

			stored, err := offerRepo.ByUUID(context.Background(), offer.UUID.String())
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, "Citi", stored.BankName)
		})

		t.Run("ByUUIDMissing", func(t *testing.T) {
			stored, err := offerRepo.ByUUID(context.Background(), uuid.NewString())
			require.NoError(t, err)
			assert.Nil(t, stored)
		})

		t.Run("IncrementCounters", func(t *testing.T) {
			offer, err := fixtures.CreateTestOffer(300)
			require.NoError(t, err)

			require.NoError(t, offerRepo.IncrementCounters(context.Background(), offer.ID, models.InteractionKindView))
			require.NoError(t, offerRepo.IncrementCounters(context.Background(), offer.ID, models.InteractionKindView))
			require.NoError(t, offerRepo.IncrementCounters(context.Background(), offer.ID, models.InteractionKindApply))

			stored, err := offerRepo.ByUUID(context.Background(), offer.UUID.String())
			require.NoError(t, err)
			assert.Equal(t, int64(2), stored.ClickCount)
			assert.Equal(t, int64(1), stored.ApplicationCount)
		})

		t.Run("ListByStatus", func(t *testing.T) {
			offer, err := fixtures.CreateTestOffer(100)
			require.NoError(t, err)
			offer.Status = models.OfferStatusExpired
			require.NoError(t, offerRepo.Update(context.Background(), offer))

			expired, err := offerRepo.ListByStatus(context.Background(), utils.ToPtr(models.OfferStatusExpired))
			require.NoError(t, err)
			require.Len(t, expired, 1)
			assert.Equal(t, offer.UUID, expired[0].UUID)
		})

		t.Run("Delete", func(t *testing.T) {
			offer, err := fixtures.CreateTestOffer(100)
			require.NoError(t, err)

			require.NoError(t, offerRepo.Delete(context.Background(), offer.ID))

			stored, err := offerRepo.ByUUID(context.Background(), offer.UUID.String())
			require.NoError(t, err)
			assert.Nil(t, stored)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestOfferInteractionRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		interactionRepo := repository.NewOfferInteractionRepository(testDB.DB)

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)
		offerA, err := fixtures.CreateTestOffer(300)
		require.NoError(t, err)
		offerB, err := fixtures.CreateTestOffer(200)
		require.NoError(t, err)

		t.Run("CountByOfferEmpty", func(t *testing.T) {
			clicks, applications, err := interactionRepo.CountByOffer(context.Background(), offerA.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(0), clicks)
			assert.Equal(t, int64(0), applications)
		})

		_, err = fixtures.CreateTestInteraction(offerA.ID, user.ID, models.InteractionKindView)
		require.NoError(t, err)
		_, err = fixtures.CreateTestInteraction(offerA.ID, user.ID, models.InteractionKindApply)
		require.NoError(t, err)
		_, err = fixtures.CreateTestInteraction(offerB.ID, user.ID, models.InteractionKindView)
		require.NoError(t, err)

		t.Run("CountsGroupedByOffer", func(t *testing.T) {
			counts, err := interactionRepo.CountsGroupedByOffer(context.Background())
			require.NoError(t, err)
			require.Len(t, counts, 2)
			assert.Equal(t, int64(1), counts[offerA.ID].Clicks)
			assert.Equal(t, int64(1), counts[offerA.ID].Applications)
			assert.Equal(t, int64(1), counts[offerB.ID].Clicks)
			assert.Equal(t, int64(0), counts[offerB.ID].Applications)
		})

		t.Run("ListByOfferLimit", func(t *testing.T) {
			events, err := interactionRepo.ListByOffer(context.Background(), offerA.ID, 1)
			require.NoError(t, err)
			require.Len(t, events, 1)
			// Newest first
			assert.Equal(t, models.InteractionKindApply, events[0].Kind)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestUserRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		userRepo := repository.NewUserRepository(testDB.DB)

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		t.Run("ByEmail", func(t *testing.T) {
			stored, err := userRepo.ByEmail(context.Background(), user.Email)
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, user.ID, stored.ID)
		})

		t.Run("ByEmailMissing", func(t *testing.T) {
			stored, err := userRepo.ByEmail(context.Background(), "nobody@example.com")
			require.NoError(t, err)
			assert.Nil(t, stored)
		})

		t.Run("ByGoogleID", func(t *testing.T) {
			googleUser, err := fixtures.CreateTestGoogleUser()
			require.NoError(t, err)
			require.NotNil(t, googleUser.GoogleID)

			stored, err := userRepo.ByGoogleID(context.Background(), *googleUser.GoogleID)
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, googleUser.ID, stored.ID)
		})

		t.Run("UpdateLastLogin", func(t *testing.T) {
			now := utils.UTCNow()
			require.NoError(t, userRepo.UpdateLastLogin(context.Background(), user.ID, now))

			stored, err := userRepo.ByEmail(context.Background(), user.Email)
			require.NoError(t, err)
			require.NotNil(t, stored.LastLoginAt)
		})

		t.Run("FilterByRole", func(t *testing.T) {
			_, err := fixtures.CreateTestAdmin()
			require.NoError(t, err)

			admins, err := userRepo.ByFilter(context.Background(), models.UserFilter{
				Role: utils.ToPtr(models.UserRoleAdmin),
			}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, admins, 1)
		})

		return nil
	})
	require.NoError(t, err)
}
