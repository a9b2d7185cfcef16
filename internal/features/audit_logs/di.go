package audit_logs

import (
	"vibedocs/internal/util/logger"

	"gorm.io/gorm"
)

var (
	auditLogService    *AuditLogService
	auditLogController *AuditLogController
)

func Setup(db *gorm.DB) {
	auditLogService = &AuditLogService{
		&AuditLogRepository{db},
		logger.GetLogger(),
	}
	auditLogController = &AuditLogController{
		auditLogService,
	}
}

func GetAuditLogService() *AuditLogService {
	return auditLogService
}

func GetAuditLogController() *AuditLogController {
	return auditLogController
}
