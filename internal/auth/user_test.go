package auth

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCognitoAttributes(t *testing.T) {
	u := FromCognitoAttributes("jdoe", map[string]string{
		"sub":            "1f2e3d",
		"email":          "jdoe@example.com",
		"email_verified": "true",
		"name":           "J Doe",
		"picture":        "https://example.com/j.png",
		"phone_number":   "+6421000000",
		"custom:role":    "admin",
	})

	assert.Equal(t, "1f2e3d", u.UID)
	assert.Equal(t, "jdoe@example.com", u.Email)
	assert.True(t, u.EmailVerified)
	assert.Equal(t, "J Doe", u.DisplayName)
	assert.Equal(t, "https://example.com/j.png", u.PhotoURL)
	assert.Equal(t, "+6421000000", u.PhoneNumber)
	assert.Equal(t, map[string]any{"role": "admin"}, u.CustomClaims)
	require.Len(t, u.ProviderData, 1)
	assert.Equal(t, ProviderIDPassword, u.ProviderData[0].ProviderID)
	assert.Equal(t, "jdoe", u.ProviderData[0].UID)
}

func TestFromCognitoAttributes_FallsBackToUsername(t *testing.T) {
	u := FromCognitoAttributes("jdoe", map[string]string{})

	assert.Equal(t, "jdoe", u.UID)
	assert.Nil(t, u.CustomClaims)
}

func TestFromUserType(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	u := FromUserType(types.UserType{
		Username: aws.String("jdoe"),
		Enabled:  false,
		Attributes: []types.AttributeType{
			{Name: aws.String("sub"), Value: aws.String("1f2e3d")},
			{Name: aws.String("email"), Value: aws.String("jdoe@example.com")},
		},
		UserCreateDate: &created,
	})

	assert.Equal(t, "1f2e3d", u.UID)
	assert.Equal(t, "jdoe@example.com", u.Email)
	assert.True(t, u.Disabled)
	assert.Equal(t, created, u.Metadata.CreationTime)
}

func TestCognitoAttributes_RoundTrip(t *testing.T) {
	original := UserRecord{
		UID:           "1f2e3d",
		Email:         "jdoe@example.com",
		EmailVerified: true,
		DisplayName:   "J Doe",
		CustomClaims:  map[string]any{"role": "admin"},
	}

	restored := FromCognitoAttributes("jdoe", original.CognitoAttributes())

	assert.Equal(t, original.UID, restored.UID)
	assert.Equal(t, original.Email, restored.Email)
	assert.Equal(t, original.EmailVerified, restored.EmailVerified)
	assert.Equal(t, original.DisplayName, restored.DisplayName)
	assert.Equal(t, original.CustomClaims, restored.CustomClaims)
}

func TestToJSON_IncludesSensitiveFields(t *testing.T) {
	u := UserRecord{
		UID:          "u1",
		Email:        "u1@example.com",
		PasswordHash: "hash",
		PasswordSalt: "salt",
		CustomClaims: map[string]any{"admin": true},
		ProviderData: []UserInfo{{ProviderID: "password", UID: "u1@example.com"}},
	}

	out := u.ToJSON()

	assert.Equal(t, "u1", out["uid"])
	assert.Equal(t, "hash", out["passwordHash"])
	assert.Equal(t, "salt", out["passwordSalt"])
	assert.Equal(t, map[string]any{"admin": true}, out["customClaims"])
	assert.Len(t, out["providerData"], 1)
	assert.NotContains(t, out, "displayName")
}
