package dto

// AuditLogDTO represents an audit log entry in admin API responses
type AuditLogDTO struct {
	ID          uint    `json:"id" example:"1"`
	UserID      *uint   `json:"user_id,omitempty" example:"123"`
	Action      string  `json:"action" example:"login_success"`
	Description *string `json:"description,omitempty"`
	Success     *bool   `json:"success" example:"true"`
	IPAddress   *string `json:"ip_address,omitempty" example:"192.168.1.1"`
	CreatedAt   string  `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

// ListAuditLogsRequest represents query parameters for listing audit logs
type ListAuditLogsRequest struct {
	Action *string `json:"action,omitempty" query:"action"`
	UserID *uint   `json:"user_id,omitempty" query:"user_id"`
	Page   int     `json:"page" query:"page" validate:"omitempty,min=1"`
	Limit  int     `json:"limit" query:"limit" validate:"omitempty,min=1,max=100"`
}
