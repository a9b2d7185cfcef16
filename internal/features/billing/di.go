package billing

import (
	"vibedocs/internal/features/accounts"
	"vibedocs/internal/features/audit_logs"
	"vibedocs/internal/util/logger"
)

var (
	billingService    *BillingService
	billingController *BillingController
)

func Setup(webhookSecret string) {
	billingService = &BillingService{
		accounts.GetAccountService(),
		audit_logs.GetAuditLogService(),
		logger.GetLogger(),
	}
	billingController = &BillingController{
		billingService,
		webhookSecret,
	}
}

func GetBillingService() *BillingService {
	return billingService
}

func GetBillingController() *BillingController {
	return billingController
}
