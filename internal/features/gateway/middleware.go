package gateway

import (
	"strings"

	"vibedocs/internal/features/credentials"
	"vibedocs/internal/util/apierrors"

	"github.com/gin-gonic/gin"
)

const validationContextKey = "apiKeyValidation"

// RequireApiKey authenticates the request by API key and evaluates the
// rolling-window quota before any handler runs. Handlers behind it can
// rely on a valid, non-exceeded credential in the context.
func RequireApiKey(credentialService *credentials.CredentialService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := ctx.GetHeader("Authorization")
		key = strings.TrimPrefix(key, "Bearer ")

		if key == "" {
			apierrors.Respond(ctx, apierrors.NewAuthError("API key required"))
			ctx.Abort()
			return
		}

		result, err := credentialService.Validate(key)
		if err != nil {
			apierrors.Respond(ctx, apierrors.NewInternalError(err))
			ctx.Abort()
			return
		}

		if result.Status != credentials.ValidationStatusValid {
			apierrors.Respond(ctx, apierrors.NewAuthError("invalid API key"))
			ctx.Abort()
			return
		}

		if result.QuotaExceeded {
			apierrors.Respond(ctx, apierrors.NewQuotaExceededError(result.QuotaUsed, result.QuotaLimit))
			ctx.Abort()
			return
		}

		ctx.Set(validationContextKey, result)
		ctx.Next()
	}
}

func GetValidationFromContext(ctx *gin.Context) (*credentials.ValidationResult, bool) {
	value, exists := ctx.Get(validationContextKey)
	if !exists {
		return nil, false
	}

	result, ok := value.(*credentials.ValidationResult)

	return result, ok
}
