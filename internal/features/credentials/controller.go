package credentials

import (
	"net/http"

	"vibedocs/internal/features/users"
	"vibedocs/internal/util/apierrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CredentialController struct {
	credentialService *CredentialService
}

func (c *CredentialController) RegisterRoutes(router *gin.RouterGroup) {
	keyRoutes := router.Group("/keys")

	keyRoutes.POST("", c.CreateKey)
	keyRoutes.GET("", c.GetKeys)
	keyRoutes.PUT("/:keyId", c.UpdateKey)
	keyRoutes.DELETE("/:keyId", c.DeleteKey)
}

// CreateKey
// @Summary Create a new API key
// @Description Create a new API key; the plaintext key is returned only in this response
// @Tags keys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCredentialRequestDTO true "API key creation data"
// @Success 200 {object} Credential
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /keys [post]
func (c *CredentialController) CreateKey(ctx *gin.Context) {
	user, ok := users.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request CreateCredentialRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.credentialService.CreateCredential(user, &request)
	if err != nil {
		apierrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetKeys
// @Summary List API keys
// @Description Get the caller's API keys; plaintext keys are never returned
// @Tags keys
// @Produce json
// @Security BearerAuth
// @Success 200 {object} GetCredentialsResponseDTO
// @Failure 401 {object} map[string]string
// @Router /keys [get]
func (c *CredentialController) GetKeys(ctx *gin.Context) {
	user, ok := users.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := c.credentialService.ListCredentials(user)
	if err != nil {
		apierrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateKey
// @Summary Update an API key
// @Description Rename, deactivate or reactivate an API key
// @Tags keys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param keyId path string true "API Key ID"
// @Param request body UpdateCredentialRequestDTO true "API key update data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /keys/{keyId} [put]
func (c *CredentialController) UpdateKey(ctx *gin.Context) {
	user, ok := users.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	keyID, err := uuid.Parse(ctx.Param("keyId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid API key ID"})
		return
	}

	var request UpdateCredentialRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.credentialService.UpdateCredential(user, keyID, &request); err != nil {
		apierrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "API key updated successfully"})
}

// DeleteKey
// @Summary Delete an API key
// @Description Delete an API key immediately and irreversibly
// @Tags keys
// @Security BearerAuth
// @Param keyId path string true "API Key ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /keys/{keyId} [delete]
func (c *CredentialController) DeleteKey(ctx *gin.Context) {
	user, ok := users.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	keyID, err := uuid.Parse(ctx.Param("keyId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid API key ID"})
		return
	}

	if err := c.credentialService.DeleteCredential(user, keyID); err != nil {
		apierrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "API key deleted successfully"})
}
