package businessflow_test

import (
	"context"
	"testing"

	"github.com/churnbase/churnbase/app/dto"
	businessflow "github.com/churnbase/churnbase/business_flow"
	"github.com/churnbase/churnbase/models"
	"github.com/churnbase/churnbase/repository"
	testingutil "github.com/churnbase/churnbase/testing"
	"github.com/churnbase/churnbase/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferLifecycle(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		offerRepo := repository.NewOfferRepository(testDB.DB)
		auditRepo := repository.NewAuditLogRepository(testDB.DB)
		offerFlow := businessflow.NewOfferFlow(offerRepo, auditRepo, testDB.DB)

		admin, err := fixtures.CreateTestAdmin()
		require.NoError(t, err)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")

		var offerUUID string

		t.Run("CreateOffer", func(t *testing.T) {
			req := &dto.CreateOfferRequest{
				Title:          "Chase Total Checking $300 Bonus",
				Description:    "Open a new account and set up direct deposit",
				BankName:       "Chase",
				BonusAmount:    300,
				Requirements:   "Direct deposit within 90 days",
				ApplicationURL: "https://chase.com/offer",
			}

			result, err := offerFlow.CreateOffer(context.Background(), req, admin.ID, metadata)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, "Chase Total Checking $300 Bonus", result.Title)
			assert.Equal(t, models.OfferStatusActive, result.Status)
			assert.Equal(t, int64(0), result.ClickCount)
			assert.NotEmpty(t, result.UUID)
			offerUUID = result.UUID

			// Audit trail carries the admin ID
			logs, err := auditRepo.ByFilter(context.Background(), models.AuditLogFilter{
				UserID: &admin.ID,
				Action: utils.ToPtr(models.AuditActionOfferCreated),
			}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, logs, 1)
		})

		t.Run("GetOffer", func(t *testing.T) {
			result, err := offerFlow.GetOffer(context.Background(), offerUUID)
			require.NoError(t, err)
			assert.Equal(t, "Chase", result.BankName)
		})

		t.Run("UpdateOffer", func(t *testing.T) {
			result, err := offerFlow.UpdateOffer(context.Background(), offerUUID, &dto.UpdateOfferRequest{
				BonusAmount: utils.ToPtr(float64(400)),
				Status:      utils.ToPtr(models.OfferStatusInactive),
			}, admin.ID, metadata)
			require.NoError(t, err)
			assert.Equal(t, float64(400), result.BonusAmount)
			assert.Equal(t, models.OfferStatusInactive, result.Status)
		})

		t.Run("UpdateWithNoFields", func(t *testing.T) {
			_, err := offerFlow.UpdateOffer(context.Background(), offerUUID, &dto.UpdateOfferRequest{}, admin.ID, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsOfferUpdateRequired(err))
		})

		t.Run("ListOffersFiltersByStatus", func(t *testing.T) {
			_, err := fixtures.CreateTestOffer(100)
			require.NoError(t, err)

			active, err := offerFlow.ListOffers(context.Background(), &dto.ListOffersRequest{
				Status: utils.ToPtr(models.OfferStatusActive),
			})
			require.NoError(t, err)
			require.Len(t, active, 1)

			all, err := offerFlow.ListAllOffers(context.Background())
			require.NoError(t, err)
			assert.Len(t, all, 2)
		})

		t.Run("DeleteOffer", func(t *testing.T) {
			require.NoError(t, offerFlow.DeleteOffer(context.Background(), offerUUID, admin.ID, metadata))

			_, err := offerFlow.GetOffer(context.Background(), offerUUID)
			require.Error(t, err)
			assert.True(t, businessflow.IsOfferNotFound(err))
		})

		t.Run("DeleteUnknownOffer", func(t *testing.T) {
			err := offerFlow.DeleteOffer(context.Background(), "550e8400-e29b-41d4-a716-446655440000", admin.ID, metadata)
			require.Error(t, err)
			assert.True(t, businessflow.IsOfferNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}
