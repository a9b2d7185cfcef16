package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type BillingController struct {
	billingService *BillingService
	webhookSecret  string
}

func (c *BillingController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/webhooks/billing", c.HandleWebhook)
}

// HandleWebhook
// @Summary Billing provider webhook
// @Description Receives asynchronous billing events. Always acknowledges with 200 once the payload parses, even if internal processing fails.
// @Tags billing
// @Accept json
// @Produce json
// @Param request body WebhookEvent true "Billing event"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /webhooks/billing [post]
func (c *BillingController) HandleWebhook(ctx *gin.Context) {
	if c.webhookSecret != "" && ctx.GetHeader("X-Webhook-Secret") != c.webhookSecret {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook secret"})
		return
	}

	var event WebhookEvent
	if err := ctx.ShouldBindJSON(&event); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	c.billingService.ProcessEvent(&event)

	ctx.JSON(http.StatusOK, gin.H{"received": true})
}
