package credentials

import (
	"fmt"
	"testing"
	"time"

	"vibedocs/internal/features/accounts"
	"vibedocs/internal/features/audit_logs"
	"vibedocs/internal/features/usage"
	"vibedocs/internal/features/users"
	test_utils "vibedocs/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SetupTestDependencies wires the credential feature and everything it
// depends on against an in-memory database, without a cache backend.
func SetupTestDependencies(t *testing.T) *gorm.DB {
	db := test_utils.OpenTestDB(t,
		&users.User{},
		&users.SecretKey{},
		&accounts.AccountProfile{},
		&audit_logs.AuditLog{},
		&usage.UsageEntry{},
		&Credential{},
	)

	audit_logs.Setup(db)
	users.Setup(db)
	accounts.Setup(db)
	usage.Setup(db)
	Setup(db, nil)

	return db
}

func CreateTestUser(t *testing.T, db *gorm.DB) *users.User {
	user := &users.User{
		ID:             uuid.New(),
		Email:          fmt.Sprintf("user-%s@example.com", uuid.New().String()[:8]),
		HashedPassword: "$2a$10$not.a.real.password.hash",
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, db.Create(user).Error)

	return user
}

func CreateTestCredential(t *testing.T, user *users.User, name string) *Credential {
	credential, err := GetCredentialService().CreateCredential(user, &CreateCredentialRequestDTO{Name: name})
	require.NoError(t, err)

	return credential
}

// SetTestQuota overrides the owner's profile quota so quota-boundary
// tests do not need to issue hundreds of requests.
func SetTestQuota(t *testing.T, db *gorm.DB, userID uuid.UUID, quota int) {
	profile, err := accounts.GetAccountService().GetOrCreateProfile(userID)
	require.NoError(t, err)

	profile.MonthlyQuota = quota
	require.NoError(t, db.Save(profile).Error)
}
