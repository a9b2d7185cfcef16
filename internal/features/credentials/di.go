package credentials

import (
	"vibedocs/internal/features/accounts"
	"vibedocs/internal/features/audit_logs"
	"vibedocs/internal/features/usage"
	cache_utils "vibedocs/internal/util/cache"
	"vibedocs/internal/util/logger"

	"github.com/valkey-io/valkey-go"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var (
	credentialService    *CredentialService
	credentialController *CredentialController
)

func Setup(db *gorm.DB, cacheClient valkey.Client) {
	credentialService = &CredentialService{
		credentialRepository: &CredentialRepository{db},
		usageRepository:      usage.GetUsageRepository(),
		accountService:       accounts.GetAccountService(),
		auditLogService:      audit_logs.GetAuditLogService(),
		logger:               logger.GetLogger(),
		credentialCacheUtil:  cache_utils.NewCacheUtil[CachedCredential](cacheClient, "vd_apikey:"),
		singleflight:         singleflight.Group{},
	}
	credentialController = &CredentialController{
		credentialService,
	}
}

func GetCredentialService() *CredentialService {
	return credentialService
}

func GetCredentialController() *CredentialController {
	return credentialController
}
