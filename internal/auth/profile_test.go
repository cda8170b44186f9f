package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileOf_AllowListsIdentityFields(t *testing.T) {
	u := UserRecord{
		UID:          "u1",
		Email:        "u1@example.com",
		DisplayName:  "User One",
		PhotoURL:     "https://example.com/u1.png",
		PhoneNumber:  "+15555550100",
		PasswordHash: "hash",
		PasswordSalt: "salt",
		CustomClaims: map[string]any{"admin": true},
		TenantID:     "tenant-1",
	}

	fields := ProfileOf(u).Fields()

	assert.Equal(t, map[string]any{
		"uid":         "u1",
		"email":       "u1@example.com",
		"displayName": "User One",
		"photoURL":    "https://example.com/u1.png",
		"phoneNumber": "+15555550100",
	}, fields)
	for _, sensitive := range []string{"passwordHash", "passwordSalt", "customClaims", "tenantId"} {
		assert.NotContains(t, fields, sensitive)
	}
}

func TestProfileFields_UnsetValuesAreNull(t *testing.T) {
	fields := ProfileOf(UserRecord{UID: "u2", Email: "u2@example.com"}).Fields()

	assert.Equal(t, "u2", fields["uid"])
	assert.Equal(t, "u2@example.com", fields["email"])
	assert.Contains(t, fields, "displayName")
	assert.Nil(t, fields["displayName"])
	assert.Nil(t, fields["photoURL"])
	assert.Nil(t, fields["phoneNumber"])
}
