package credentials

import (
	"net/http"
	"testing"

	"vibedocs/internal/features/users"
	test_utils "vibedocs/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCredentialRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	db := SetupTestDependencies(t)
	require.NoError(t, users.GetUserService().EnsureSecretKey())

	gin.SetMode(gin.TestMode)
	router := gin.New()

	protected := router.Group("/api/v1")
	protected.Use(users.AuthMiddleware(users.GetUserService()))
	GetCredentialController().RegisterRoutes(protected)

	return router, db
}

func signedInTestUser(t *testing.T, db *gorm.DB) (*users.User, string) {
	user := CreateTestUser(t, db)

	session, err := users.GetUserService().GenerateAccessToken(user)
	require.NoError(t, err)

	return user, "Bearer " + session.Token
}

func Test_CreateKey_ReturnsPlaintextOnlyInCreationResponse(t *testing.T) {
	router, db := setupCredentialRouter(t)
	_, token := signedInTestUser(t, db)

	var created Credential
	test_utils.MakePostRequestAndUnmarshal(t, router, "/api/v1/keys", token,
		CreateCredentialRequestDTO{Name: "CI Key"}, http.StatusOK, &created)

	assert.Equal(t, "CI Key", created.Name)
	assert.True(t, HasValidKeyFormat(created.Key))
	assert.Contains(t, created.KeyPrefix, "...")

	var listed GetCredentialsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/keys", token, http.StatusOK, &listed)

	require.Len(t, listed.ApiKeys, 1)
	assert.Empty(t, listed.ApiKeys[0].Key)

	// The digest never appears in any payload either
	raw := test_utils.MakeGetRequest(t, router, "/api/v1/keys", token, http.StatusOK)
	assert.NotContains(t, string(raw.Body), HashKey(created.Key))
}

func Test_CreateKey_WithoutSession_ReturnsUnauthorized(t *testing.T) {
	router, _ := setupCredentialRouter(t)

	test_utils.MakePostRequest(t, router, "/api/v1/keys", "",
		CreateCredentialRequestDTO{Name: "No Session"}, http.StatusUnauthorized)
}

func Test_UpdateKey_RenamesAndDeactivates(t *testing.T) {
	router, db := setupCredentialRouter(t)
	_, token := signedInTestUser(t, db)

	var created Credential
	test_utils.MakePostRequestAndUnmarshal(t, router, "/api/v1/keys", token,
		CreateCredentialRequestDTO{Name: "Old Name"}, http.StatusOK, &created)

	newName := "New Name"
	inactive := false
	test_utils.MakePutRequest(t, router, "/api/v1/keys/"+created.ID.String(), token,
		UpdateCredentialRequestDTO{Name: &newName, IsActive: &inactive}, http.StatusOK)

	var listed GetCredentialsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/keys", token, http.StatusOK, &listed)

	require.Len(t, listed.ApiKeys, 1)
	assert.Equal(t, "New Name", listed.ApiKeys[0].Name)
	assert.False(t, listed.ApiKeys[0].IsActive)
}

func Test_UpdateKey_WhenKeyBelongsToAnotherUser_ReturnsNotFound(t *testing.T) {
	router, db := setupCredentialRouter(t)
	owner, _ := signedInTestUser(t, db)
	_, otherToken := signedInTestUser(t, db)

	credential := CreateTestCredential(t, owner, "Private Key")

	name := "Hijacked"
	test_utils.MakePutRequest(t, router, "/api/v1/keys/"+credential.ID.String(), otherToken,
		UpdateCredentialRequestDTO{Name: &name}, http.StatusNotFound)
}

func Test_DeleteKey_WhenKeyBelongsToAnotherUser_ReturnsNotFound(t *testing.T) {
	router, db := setupCredentialRouter(t)
	owner, ownerToken := signedInTestUser(t, db)
	_, otherToken := signedInTestUser(t, db)

	credential := CreateTestCredential(t, owner, "Private Key")

	test_utils.MakeDeleteRequest(t, router,
		"/api/v1/keys/"+credential.ID.String(), otherToken, http.StatusNotFound)

	// Still listed for the owner
	var listed GetCredentialsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/keys", ownerToken, http.StatusOK, &listed)
	assert.Len(t, listed.ApiKeys, 1)
}

func Test_DeleteKey_RemovesKeyFromListing(t *testing.T) {
	router, db := setupCredentialRouter(t)
	_, token := signedInTestUser(t, db)

	var created Credential
	test_utils.MakePostRequestAndUnmarshal(t, router, "/api/v1/keys", token,
		CreateCredentialRequestDTO{Name: "Ephemeral"}, http.StatusOK, &created)

	test_utils.MakeDeleteRequest(t, router,
		"/api/v1/keys/"+created.ID.String(), token, http.StatusOK)

	var listed GetCredentialsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/v1/keys", token, http.StatusOK, &listed)
	assert.Empty(t, listed.ApiKeys)
}

func Test_DeleteKey_WhenIdIsNotUuid_ReturnsBadRequest(t *testing.T) {
	router, db := setupCredentialRouter(t)
	_, token := signedInTestUser(t, db)

	test_utils.MakeDeleteRequest(t, router, "/api/v1/keys/not-a-uuid", token, http.StatusBadRequest)
}

func Test_DeleteKey_WhenKeyDoesNotExist_ReturnsNotFound(t *testing.T) {
	router, db := setupCredentialRouter(t)
	_, token := signedInTestUser(t, db)

	test_utils.MakeDeleteRequest(t, router,
		"/api/v1/keys/"+uuid.New().String(), token, http.StatusNotFound)
}
