package system_healthcheck

import (
	"gorm.io/gorm"
)

var healthcheckController *HealthcheckController

func Setup(db *gorm.DB) {
	healthcheckController = &HealthcheckController{db}
}

func GetHealthcheckController() *HealthcheckController {
	return healthcheckController
}
