package gateway

import (
	"net/http"
	"testing"
	"time"

	"vibedocs/internal/features/credentials"
	"vibedocs/internal/features/usage"
	"vibedocs/internal/features/users"
	test_utils "vibedocs/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupGatewayTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	db := credentials.SetupTestDependencies(t)
	Setup()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	GetGatewayController().RegisterRoutes(router.Group("/api/v1"))

	return router, db
}

func issueTestKey(t *testing.T, db *gorm.DB) (*users.User, *credentials.Credential) {
	user := credentials.CreateTestUser(t, db)
	credential := credentials.CreateTestCredential(t, user, "Gateway Key")

	return user, credential
}

func windowEntries(t *testing.T, userID uuid.UUID) []*usage.UsageEntry {
	entries, err := usage.GetUsageRepository().GetEntriesByUserSince(
		userID, time.Now().UTC().Add(-usage.UsageWindow))
	require.NoError(t, err)

	return entries
}

// Search Tests

func Test_Search_WhenKeyIsValid_ReturnsResultsAndRecordsUsage(t *testing.T) {
	router, db := setupGatewayTest(t)
	user, credential := issueTestKey(t, db)

	var response SearchResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router,
		"/api/v1/search?q=react", credential.Key, http.StatusOK, &response)

	assert.Equal(t, "react", response.Query)
	require.NotEmpty(t, response.Results)
	assert.Equal(t, "react", response.Results[0].ID)

	entries := windowEntries(t, user.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, "search", entries[0].Endpoint)
	assert.Equal(t, 1, entries[0].Cost)
	assert.Equal(t, http.StatusOK, entries[0].StatusCode)
	assert.Equal(t, "react", entries[0].RequestMeta.Data().Query)
	assert.NotNil(t, entries[0].LatencyMs)
}

func Test_Search_AcceptsBearerPrefixedKey(t *testing.T) {
	router, db := setupGatewayTest(t)
	_, credential := issueTestKey(t, db)

	test_utils.MakeGetRequest(t, router,
		"/api/v1/search?q=vue", "Bearer "+credential.Key, http.StatusOK)
}

func Test_Search_WhenKeyIsMissing_ReturnsUnauthorized(t *testing.T) {
	router, _ := setupGatewayTest(t)

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/search?q=react", "", http.StatusUnauthorized)
	assert.Contains(t, string(resp.Body), "error")
}

func Test_Search_WhenKeyIsMalformed_ReturnsUnauthorized(t *testing.T) {
	router, _ := setupGatewayTest(t)

	test_utils.MakeGetRequest(t, router, "/api/v1/search?q=react", "garbage-key", http.StatusUnauthorized)
}

func Test_Search_WhenKeyIsDeactivated_ReturnsUnauthorized(t *testing.T) {
	router, db := setupGatewayTest(t)
	user, credential := issueTestKey(t, db)

	inactive := false
	require.NoError(t, credentials.GetCredentialService().UpdateCredential(user, credential.ID,
		&credentials.UpdateCredentialRequestDTO{IsActive: &inactive}))

	resp := test_utils.MakeGetRequest(t, router,
		"/api/v1/search?q=react", credential.Key, http.StatusUnauthorized)
	assert.Contains(t, string(resp.Body), "invalid API key")
}

func Test_Search_WhenQueryIsMissing_ReturnsBadRequestWithoutAccounting(t *testing.T) {
	router, db := setupGatewayTest(t)
	user, credential := issueTestKey(t, db)

	test_utils.MakeGetRequest(t, router, "/api/v1/search", credential.Key, http.StatusBadRequest)

	// Failed dispatches never consume quota
	assert.Empty(t, windowEntries(t, user.ID))
}

func Test_Search_WhenQuotaExceeded_ReturnsTooManyRequests(t *testing.T) {
	router, db := setupGatewayTest(t)
	user := credentials.CreateTestUser(t, db)
	credentials.SetTestQuota(t, db, user.ID, 2)
	credential := credentials.CreateTestCredential(t, user, "Tiny Quota")

	test_utils.MakeGetRequest(t, router, "/api/v1/search?q=react", credential.Key, http.StatusOK)
	test_utils.MakeGetRequest(t, router, "/api/v1/search?q=vue", credential.Key, http.StatusOK)

	resp := test_utils.MakeGetRequest(t, router,
		"/api/v1/search?q=svelte", credential.Key, http.StatusTooManyRequests)
	assert.Contains(t, string(resp.Body), "quota exceeded")

	// The rejected request itself is not accounted
	assert.Len(t, windowEntries(t, user.ID), 2)
}

// GetDocs Tests

func Test_GetDocs_WhenLibraryExists_ReturnsDocumentationAndRecordsUsage(t *testing.T) {
	router, db := setupGatewayTest(t)
	user, credential := issueTestKey(t, db)

	var response DocsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router,
		"/api/v1/docs/react?topic=hooks", credential.Key, http.StatusOK, &response)

	assert.Equal(t, "react", response.Library)
	assert.Equal(t, "React", response.Name)
	assert.Equal(t, "hooks", response.Topic)
	assert.NotEmpty(t, response.Documentation)

	entries := windowEntries(t, user.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, "docs", entries[0].Endpoint)
	assert.Equal(t, 2, entries[0].Cost)
	assert.Equal(t, "react", entries[0].RequestMeta.Data().Library)
	assert.Equal(t, "hooks", entries[0].RequestMeta.Data().Topic)
}

func Test_GetDocs_WhenLibraryIsUnknown_ReturnsNotFoundWithoutAccounting(t *testing.T) {
	router, db := setupGatewayTest(t)
	user, credential := issueTestKey(t, db)

	resp := test_utils.MakeGetRequest(t, router,
		"/api/v1/docs/unknown-library", credential.Key, http.StatusNotFound)
	assert.Contains(t, string(resp.Body), "library not found")

	assert.Empty(t, windowEntries(t, user.ID))
}

func Test_GetDocs_CostsMoreThanSearch(t *testing.T) {
	router, db := setupGatewayTest(t)
	user, credential := issueTestKey(t, db)

	test_utils.MakeGetRequest(t, router, "/api/v1/search?q=prisma", credential.Key, http.StatusOK)
	test_utils.MakeGetRequest(t, router, "/api/v1/docs/prisma", credential.Key, http.StatusOK)

	entries := windowEntries(t, user.ID)
	require.Len(t, entries, 2)

	totalCost := 0
	for _, entry := range entries {
		totalCost += entry.Cost
	}
	assert.Equal(t, 3, totalCost)
}

// Catalog Tests

func Test_CatalogSearch_MatchesNameAndDescriptionCaseInsensitively(t *testing.T) {
	catalog := NewCatalog()

	byName := catalog.Search("REACT")
	require.NotEmpty(t, byName)
	assert.Equal(t, "react", byName[0].ID)

	byDescription := catalog.Search("python")
	require.Len(t, byDescription, 1)
	assert.Equal(t, "fastapi", byDescription[0].ID)

	assert.Empty(t, catalog.Search("no-such-thing"))
}

func Test_CatalogSearch_UsageRecordedWithResultCount(t *testing.T) {
	router, db := setupGatewayTest(t)
	user, credential := issueTestKey(t, db)

	var response SearchResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router,
		"/api/v1/search?q=framework", credential.Key, http.StatusOK, &response)

	entries := windowEntries(t, user.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, len(response.Results), entries[0].ResponseMeta.Data().ResultCount)
}
