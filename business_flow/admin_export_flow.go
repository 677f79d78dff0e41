package businessflow

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/churnbase/churnbase/utils"
	"github.com/xuri/excelize/v2"
)

// AdminExportFlow renders the analytics report as a downloadable CSV or XLSX
// file. Both formats carry the same columns: one row per offer plus the
// platform summary derived from the same analytics snapshot.
type AdminExportFlow interface {
	ExportAnalyticsCSV(ctx context.Context) (string, []byte, error)
	ExportAnalyticsXLSX(ctx context.Context) (string, []byte, error)
}

type AdminExportFlowImpl struct {
	analyticsFlow AnalyticsFlow
}

func NewAdminExportFlow(analyticsFlow AnalyticsFlow) AdminExportFlow {
	return &AdminExportFlowImpl{analyticsFlow: analyticsFlow}
}

var analyticsExportHeader = []string{
	"offer_uuid",
	"title",
	"bank_name",
	"bonus_amount",
	"total_clicks",
	"total_applications",
	"revenue",
	"click_rate",
}

// ExportAnalyticsCSV writes per-offer analytics as CSV
func (f *AdminExportFlowImpl) ExportAnalyticsCSV(ctx context.Context) (string, []byte, error) {
	analytics, err := f.analyticsFlow.AnalyzeAllOffers(ctx)
	if err != nil {
		return "", nil, err
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write(analyticsExportHeader); err != nil {
		return "", nil, NewBusinessError("CSV_WRITE_ERROR", "Failed to write CSV header", err)
	}

	for _, entry := range analytics {
		record := []string{
			entry.OfferUUID,
			entry.Title,
			entry.BankName,
			strconv.FormatFloat(entry.BonusAmount, 'f', 2, 64),
			strconv.FormatInt(entry.TotalClicks, 10),
			strconv.FormatInt(entry.TotalApplications, 10),
			strconv.FormatFloat(entry.Revenue, 'f', 2, 64),
			strconv.FormatFloat(entry.ClickRate, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return "", nil, NewBusinessError("CSV_WRITE_ERROR", "Failed to write CSV row", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, NewBusinessError("CSV_WRITE_ERROR", "Failed to flush CSV", err)
	}

	filename := fmt.Sprintf("offer_analytics_%s.csv", utils.UTCNow().Format("2006-01-02"))
	return filename, buf.Bytes(), nil
}

// ExportAnalyticsXLSX writes per-offer analytics plus a summary sheet as XLSX
func (f *AdminExportFlowImpl) ExportAnalyticsXLSX(ctx context.Context) (string, []byte, error) {
	analytics, err := f.analyticsFlow.AnalyzeAllOffers(ctx)
	if err != nil {
		return "", nil, err
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	offersSheet := "Offers"
	xl.SetSheetName(xl.GetSheetName(0), offersSheet)
	_ = xl.SetSheetRow(offersSheet, "A1", &analyticsExportHeader)

	for ri, entry := range analytics {
		record := []any{
			entry.OfferUUID,
			entry.Title,
			entry.BankName,
			entry.BonusAmount,
			entry.TotalClicks,
			entry.TotalApplications,
			entry.Revenue,
			entry.ClickRate,
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, ri+2)
		_ = xl.SetSheetRow(offersSheet, cellRef, &record)
	}

	summary := BuildDashboard(analytics)
	summarySheet := "Summary"
	_, _ = xl.NewSheet(summarySheet)
	summaryHeader := []string{"total_offers", "total_clicks", "total_applications", "total_revenue", "avg_click_rate", "generated_at"}
	_ = xl.SetSheetRow(summarySheet, "A1", &summaryHeader)
	summaryRow := []any{
		summary.TotalOffers,
		summary.TotalClicks,
		summary.TotalApplications,
		summary.TotalRevenue,
		summary.AvgClickRate,
		utils.UTCNow().Format(time.RFC3339),
	}
	_ = xl.SetSheetRow(summarySheet, "A2", &summaryRow)

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}

	filename := fmt.Sprintf("offer_analytics_%s.xlsx", utils.UTCNow().Format("2006-01-02"))
	return filename, buf.Bytes(), nil
}
