package gateway

import (
	"net/http"
	"time"

	"vibedocs/internal/features/credentials"
	"vibedocs/internal/features/usage"

	"github.com/gin-gonic/gin"
)

// Accounted cost per endpoint. A documentation fetch weighs more than
// a search.
const (
	searchCost = 1
	docsCost   = 2
)

type GatewayController struct {
	credentialService *credentials.CredentialService
	usageAccountant   *usage.UsageAccountant
	catalog           *Catalog
}

func (c *GatewayController) RegisterRoutes(router *gin.RouterGroup) {
	gated := router.Group("")
	gated.Use(RequireApiKey(c.credentialService))

	gated.GET("/search", c.Search)
	gated.GET("/docs/:library", c.GetDocs)
}

// Search
// @Summary Search the library catalog
// @Tags gateway
// @Produce json
// @Security ApiKeyAuth
// @Param q query string true "Search query"
// @Success 200 {object} SearchResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /search [get]
func (c *GatewayController) Search(ctx *gin.Context) {
	validation, ok := GetValidationFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
		return
	}

	query := ctx.Query("q")
	if query == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	started := time.Now()
	results := c.catalog.Search(query)
	latencyMs := int(time.Since(started).Milliseconds())

	ctx.JSON(http.StatusOK, SearchResponseDTO{
		Query:   query,
		Results: results,
	})

	// Accounting happens after the dispatch result is known and can no
	// longer change the response. Failed dispatches are not accounted.
	c.usageAccountant.Record(
		validation.UserID,
		validation.KeyHash,
		"search",
		usage.RequestMetadata{Query: query},
		usage.ResponseMetadata{ResultCount: len(results)},
		searchCost,
		&latencyMs,
		http.StatusOK,
	)
}

// GetDocs
// @Summary Fetch documentation for a library
// @Tags gateway
// @Produce json
// @Security ApiKeyAuth
// @Param library path string true "Library ID"
// @Param topic query string false "Documentation topic"
// @Success 200 {object} DocsResponseDTO
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /docs/{library} [get]
func (c *GatewayController) GetDocs(ctx *gin.Context) {
	validation, ok := GetValidationFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
		return
	}

	libraryID := ctx.Param("library")
	topic := ctx.Query("topic")

	started := time.Now()
	library, found := c.catalog.GetDocumentation(libraryID)
	latencyMs := int(time.Since(started).Milliseconds())

	if !found {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "library not found"})
		return
	}

	ctx.JSON(http.StatusOK, DocsResponseDTO{
		Library:       library.ID,
		Name:          library.Name,
		Topic:         topic,
		SnippetCount:  library.SnippetCount,
		Documentation: library.Documentation,
	})

	c.usageAccountant.Record(
		validation.UserID,
		validation.KeyHash,
		"docs",
		usage.RequestMetadata{Library: library.ID, Topic: topic},
		usage.ResponseMetadata{ResultCount: 1},
		docsCost,
		&latencyMs,
		http.StatusOK,
	)
}
