package usage_cleanup

import (
	"vibedocs/internal/features/usage"
	"vibedocs/internal/util/logger"
)

var usageCleanupBackgroundService *UsageCleanupBackgroundService

func Setup(retentionDays int) {
	usageCleanupBackgroundService = &UsageCleanupBackgroundService{
		usageRepository: usage.GetUsageRepository(),
		retentionDays:   retentionDays,
		logger:          logger.GetLogger(),
	}
}

func GetUsageCleanupBackgroundService() *UsageCleanupBackgroundService {
	return usageCleanupBackgroundService
}
