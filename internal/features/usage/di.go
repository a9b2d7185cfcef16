package usage

import (
	"vibedocs/internal/features/accounts"
	"vibedocs/internal/util/logger"

	"gorm.io/gorm"
)

var (
	usageRepository  *UsageRepository
	usageAccountant  *UsageAccountant
	analyticsService *AnalyticsService
	usageController  *UsageController
)

func Setup(db *gorm.DB) {
	usageRepository = &UsageRepository{db}
	usageAccountant = &UsageAccountant{
		usageRepository,
		logger.GetLogger(),
	}
	analyticsService = &AnalyticsService{
		usageRepository,
		accounts.GetAccountService(),
		logger.GetLogger(),
	}
	usageController = &UsageController{
		analyticsService,
	}
}

func GetUsageRepository() *UsageRepository {
	return usageRepository
}

func GetUsageAccountant() *UsageAccountant {
	return usageAccountant
}

func GetAnalyticsService() *AnalyticsService {
	return analyticsService
}

func GetUsageController() *UsageController {
	return usageController
}
