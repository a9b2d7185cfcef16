package system_healthcheck

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"gorm.io/gorm"
)

type HealthcheckController struct {
	db *gorm.DB
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", c.GetHealth)
}

func (c *HealthcheckController) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/system", c.GetSystemInfo)
}

// GetHealth
// @Summary Liveness and database connectivity check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /health [get]
func (c *HealthcheckController) GetHealth(ctx *gin.Context) {
	sqlDb, err := c.db.DB()
	if err == nil {
		err = sqlDb.Ping()
	}

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"status": "unhealthy"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetSystemInfo
// @Summary Host memory and disk statistics
// @Tags system
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Router /system [get]
func (c *HealthcheckController) GetSystemInfo(ctx *gin.Context) {
	response := gin.H{}

	if virtualMemory, err := mem.VirtualMemory(); err == nil {
		response["memory"] = gin.H{
			"totalBytes":  virtualMemory.Total,
			"usedBytes":   virtualMemory.Used,
			"usedPercent": virtualMemory.UsedPercent,
		}
	}

	if diskUsage, err := disk.Usage("/"); err == nil {
		response["disk"] = gin.H{
			"totalBytes":  diskUsage.Total,
			"usedBytes":   diskUsage.Used,
			"usedPercent": diskUsage.UsedPercent,
		}
	}

	ctx.JSON(http.StatusOK, response)
}
