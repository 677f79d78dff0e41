package handlers

import (
	"log"

	"github.com/churnbase/churnbase/app/dto"
	businessflow "github.com/churnbase/churnbase/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// AdminAnalyticsHandlerInterface defines admin analytics and reporting endpoints
type AdminAnalyticsHandlerInterface interface {
	OfferAnalytics(c fiber.Ctx) error
	AllOffersAnalytics(c fiber.Ctx) error
	Dashboard(c fiber.Ctx) error
	ExportAnalytics(c fiber.Ctx) error
	ListAuditLogs(c fiber.Ctx) error
}

// AdminAnalyticsHandler handles analytics reporting HTTP requests for admins
type AdminAnalyticsHandler struct {
	analyticsFlow businessflow.AnalyticsFlow
	exportFlow    businessflow.AdminExportFlow
	auditFlow     businessflow.AuditFlow
	validator     *validator.Validate
}

// NewAdminAnalyticsHandler creates a new admin analytics handler
func NewAdminAnalyticsHandler(analyticsFlow businessflow.AnalyticsFlow, exportFlow businessflow.AdminExportFlow, auditFlow businessflow.AuditFlow) *AdminAnalyticsHandler {
	return &AdminAnalyticsHandler{
		analyticsFlow: analyticsFlow,
		exportFlow:    exportFlow,
		auditFlow:     auditFlow,
		validator:     validator.New(),
	}
}

func (h *AdminAnalyticsHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AdminAnalyticsHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// OfferAnalytics computes analytics for a single offer from its event log
// @Summary Admin Offer Analytics
// @Description Compute click, application, revenue, and click-rate figures for one offer
// @Tags Admin Analytics
// @Produce json
// @Security BearerAuth
// @Param uuid path string true "Offer UUID"
// @Success 200 {object} dto.APIResponse{data=dto.OfferAnalyticsDTO} "Offer analytics"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Offer not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/analytics/offers/{uuid} [get]
func (h *AdminAnalyticsHandler) OfferAnalytics(c fiber.Ctx) error {
	offerUUID := c.Params("uuid")

	analytics, err := h.analyticsFlow.AnalyzeOffer(createRequestContext(c, "/api/v1/admin/analytics/offers/:uuid"), offerUUID)
	if err != nil {
		if businessflow.IsOfferNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Offer not found", dto.ErrorOfferNotFound, nil)
		}

		log.Println("Offer analytics failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute analytics", "ANALYTICS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Analytics computed", analytics)
}

// AllOffersAnalytics computes analytics for every offer, newest first
// @Summary Admin All Offers Analytics
// @Description Compute per-offer analytics across all offers, newest first
// @Tags Admin Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.OfferAnalyticsDTO} "Per-offer analytics"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/analytics/offers [get]
func (h *AdminAnalyticsHandler) AllOffersAnalytics(c fiber.Ctx) error {
	analytics, err := h.analyticsFlow.AnalyzeAllOffers(createRequestContext(c, "/api/v1/admin/analytics/offers"))
	if err != nil {
		log.Println("All offers analytics failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute analytics", "ANALYTICS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Analytics computed", analytics)
}

// Dashboard aggregates portfolio-wide totals and averages
// @Summary Admin Dashboard Summary
// @Description Aggregate totals, revenue, and average click rate across all offers
// @Tags Admin Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardSummaryDTO} "Dashboard summary"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/analytics/dashboard [get]
func (h *AdminAnalyticsHandler) Dashboard(c fiber.Ctx) error {
	summary, err := h.analyticsFlow.Dashboard(createRequestContext(c, "/api/v1/admin/analytics/dashboard"))
	if err != nil {
		log.Println("Dashboard failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build dashboard", "DASHBOARD_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Dashboard built", summary)
}

// ExportAnalytics streams the analytics report as a CSV or XLSX file
// @Summary Admin Export Analytics
// @Description Download the per-offer analytics report as CSV (default) or XLSX
// @Tags Admin Analytics
// @Produce text/csv
// @Security BearerAuth
// @Param format query string false "Export format" Enums(csv, xlsx) default(csv)
// @Success 200 {string} string "Report file"
// @Failure 400 {object} dto.APIResponse "Invalid format"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/analytics/export [get]
func (h *AdminAnalyticsHandler) ExportAnalytics(c fiber.Ctx) error {
	var req dto.ExportAnalyticsRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	ctx := createRequestContext(c, "/api/v1/admin/analytics/export")

	var filename string
	var data []byte
	var contentType string
	var err error
	if req.Format == "xlsx" {
		filename, data, err = h.exportFlow.ExportAnalyticsXLSX(ctx)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	} else {
		filename, data, err = h.exportFlow.ExportAnalyticsCSV(ctx)
		contentType = "text/csv; charset=utf-8"
	}
	if err != nil {
		log.Println("Export analytics failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export analytics", "EXPORT_FAILED", nil)
	}

	c.Set("Content-Type", contentType)
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(data)
}

// ListAuditLogs lists audit log entries with optional filters
// @Summary Admin List Audit Logs
// @Description Page through audit log entries, optionally filtered by action or user
// @Tags Admin Analytics
// @Produce json
// @Security BearerAuth
// @Param action query string false "Filter by action"
// @Param user_id query int false "Filter by user ID"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} dto.APIResponse{data=[]dto.AuditLogDTO} "Audit logs"
// @Failure 400 {object} dto.APIResponse "Invalid paging"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/audit-logs [get]
func (h *AdminAnalyticsHandler) ListAuditLogs(c fiber.Ctx) error {
	var req dto.ListAuditLogsRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	logs, err := h.auditFlow.ListAuditLogs(createRequestContext(c, "/api/v1/admin/audit-logs"), &req)
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid paging parameters", "INVALID_PAGING", nil)
		}

		log.Println("List audit logs failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list audit logs", "LIST_AUDIT_LOGS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Audit logs retrieved", logs)
}
