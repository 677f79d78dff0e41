package businessflow

import (
	"context"

	"github.com/churnbase/churnbase/app/dto"
	"github.com/churnbase/churnbase/models"
	"github.com/churnbase/churnbase/repository"
)

// AuditFlow serves audit log listings for admin views
type AuditFlow interface {
	ListAuditLogs(ctx context.Context, request *dto.ListAuditLogsRequest) ([]dto.AuditLogDTO, error)
}

type AuditFlowImpl struct {
	auditRepo repository.AuditLogRepository
}

func NewAuditFlow(auditRepo repository.AuditLogRepository) AuditFlow {
	return &AuditFlowImpl{auditRepo: auditRepo}
}

// ListAuditLogs returns audit entries newest first, filtered by action and
// user when provided
func (f *AuditFlowImpl) ListAuditLogs(ctx context.Context, request *dto.ListAuditLogsRequest) ([]dto.AuditLogDTO, error) {
	page := 1
	limit := 50
	var filter models.AuditLogFilter

	if request != nil {
		if request.Page > 0 {
			page = request.Page
		}
		if request.Limit > 0 {
			if request.Limit > 100 {
				return nil, NewBusinessError("AUDIT_LIST_FAILED", "Audit log listing failed", ErrInvalidPageSize)
			}
			limit = request.Limit
		}
		filter.Action = request.Action
		filter.UserID = request.UserID
	}

	offset := (page - 1) * limit
	logs, err := f.auditRepo.ByFilter(ctx, filter, "created_at DESC", limit, offset)
	if err != nil {
		return nil, NewBusinessError("AUDIT_LIST_FAILED", "Audit log listing failed", err)
	}

	result := make([]dto.AuditLogDTO, 0, len(logs))
	for _, log := range logs {
		result = append(result, ToAuditLogDTO(*log))
	}
	return result, nil
}
