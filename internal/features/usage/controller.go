package usage

import (
	"net/http"

	"vibedocs/internal/features/users"
	"vibedocs/internal/util/apierrors"

	"github.com/gin-gonic/gin"
)

type UsageController struct {
	analyticsService *AnalyticsService
}

func (c *UsageController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/account/usage", c.GetUsage)
	router.GET("/account/analytics", c.GetAnalytics)
}

// GetUsage
// @Summary Get the rolling-window usage summary
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UsageSummaryResponseDTO
// @Failure 401 {object} map[string]string
// @Router /account/usage [get]
func (c *UsageController) GetUsage(ctx *gin.Context) {
	user, ok := users.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := c.analyticsService.GetUsageSummary(user.ID)
	if err != nil {
		apierrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetAnalytics
// @Summary Get 30-day usage analytics
// @Description Aggregates the trailing 30-day window: success rate, latency percentiles, top libraries, daily counts
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AnalyticsResponseDTO
// @Failure 401 {object} map[string]string
// @Router /account/analytics [get]
func (c *UsageController) GetAnalytics(ctx *gin.Context) {
	user, ok := users.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := c.analyticsService.GetAnalytics(user.ID)
	if err != nil {
		apierrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
