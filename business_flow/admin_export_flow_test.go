package businessflow_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	businessflow "github.com/churnbase/churnbase/business_flow"
	"github.com/churnbase/churnbase/models"
	"github.com/churnbase/churnbase/repository"
	testingutil "github.com/churnbase/churnbase/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportAnalytics(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		offerRepo := repository.NewOfferRepository(testDB.DB)
		interactionRepo := repository.NewOfferInteractionRepository(testDB.DB)
		analyticsFlow := businessflow.NewAnalyticsFlow(offerRepo, interactionRepo, nil, nil, testDB.DB)
		exportFlow := businessflow.NewAdminExportFlow(analyticsFlow)

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

		t.Run("CSV", func(t *testing.T) {
			filename, data, err := exportFlow.ExportAnalyticsCSV(context.Background())
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(filename, "offer_analytics_"))
			assert.True(t, strings.HasSuffix(filename, ".csv"))

			records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
			require.NoError(t, err)
			require.Len(t, records, 2)

			assert.Equal(t, "offer_uuid", records[0][0])
			assert.Equal(t, "click_rate", records[0][7])

			row := records[1]
			assert.Equal(t, offer.UUID.String(), row[0])
			assert.Equal(t, offer.Title, row[1])
			assert.Equal(t, "600.00", row[3])
			assert.Equal(t, "2", row[4])
			assert.Equal(t, "1", row[5])
			assert.Equal(t, "600.00", row[6])
			assert.Equal(t, "50.00", row[7])
		})

		t.Run("XLSX", func(t *testing.T) {
			filename, data, err := exportFlow.ExportAnalyticsXLSX(context.Background())
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(filename, ".xlsx"))

			xl, err := excelize.OpenReader(bytes.NewReader(data))
			require.NoError(t, err)
			defer xl.Close()

			rows, err := xl.GetRows("Offers")
			require.NoError(t, err)
			require.Len(t, rows, 2)
			assert.Equal(t, offer.UUID.String(), rows[1][0])

			summaryRows, err := xl.GetRows("Summary")
			require.NoError(t, err)
			require.Len(t, summaryRows, 2)
			assert.Equal(t, "total_offers", summaryRows[0][0])
			assert.Equal(t, "1", summaryRows[1][0])
		})

		return nil
	})
	require.NoError(t, err)
}
