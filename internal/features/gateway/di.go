package gateway

import (
	"vibedocs/internal/features/credentials"
	"vibedocs/internal/features/usage"
)

var gatewayController *GatewayController

func Setup() {
	gatewayController = &GatewayController{
		credentials.GetCredentialService(),
		usage.GetUsageAccountant(),
		NewCatalog(),
	}
}

func GetGatewayController() *GatewayController {
	return gatewayController
}
