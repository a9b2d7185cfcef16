package audit_logs

import (
	"net/http"

	"vibedocs/internal/features/users"
	"vibedocs/internal/util/apierrors"

	"github.com/gin-gonic/gin"
)

type AuditLogController struct {
	auditLogService *AuditLogService
}

func (c *AuditLogController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/audit-logs", c.GetAuditLogs)
}

// GetAuditLogs
// @Summary List the caller's audit log entries
// @Tags audit-logs
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (default 100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} GetAuditLogsResponse
// @Failure 401 {object} map[string]string
// @Router /audit-logs [get]
func (c *AuditLogController) GetAuditLogs(ctx *gin.Context) {
	user, ok := users.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request GetAuditLogsRequest
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.auditLogService.GetUserAuditLogs(user.ID, &request)
	if err != nil {
		apierrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
