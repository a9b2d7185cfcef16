package audit_logs

type GetAuditLogsRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

type GetAuditLogsResponse struct {
	AuditLogs []*AuditLog `json:"auditLogs"`
	Total     int64       `json:"total"`
	Limit     int         `json:"limit"`
	Offset    int         `json:"offset"`
}
