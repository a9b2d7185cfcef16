package accounts

import (
	"net/http"

	"vibedocs/internal/features/users"
	"vibedocs/internal/util/apierrors"

	"github.com/gin-gonic/gin"
)

type AccountController struct {
	accountService *AccountService
}

func (c *AccountController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/account/profile", c.GetProfile)
}

// GetProfile
// @Summary Get the account profile
// @Description Returns the caller's account profile, creating a free-tier one on first read
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AccountProfile
// @Failure 401 {object} map[string]string
// @Router /account/profile [get]
func (c *AccountController) GetProfile(ctx *gin.Context) {
	user, ok := users.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	profile, err := c.accountService.GetOrCreateProfile(user.ID)
	if err != nil {
		apierrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}
