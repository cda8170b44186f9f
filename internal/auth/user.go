package auth

import (
	"maps"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// Cognito standard attribute names
const (
	AttrSub           = "sub"
	AttrEmail         = "email"
	AttrEmailVerified = "email_verified"
	AttrName          = "name"
	AttrPicture       = "picture"
	AttrPhoneNumber   = "phone_number"

	customAttrPrefix = "custom:"
)

// ProviderIDPassword identifies users signed up with a username and password
const ProviderIDPassword = "password"

// UserMetadata holds account timestamps
type UserMetadata struct {
	CreationTime   time.Time `json:"creationTime"`
	LastSignInTime time.Time `json:"lastSignInTime"`
}

// UserInfo is a linked sign-in provider entry
type UserInfo struct {
	ProviderID  string `json:"providerId"`
	UID         string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// UserRecord is the full user account as the auth provider reports it.
// It carries credentials and claims that must never be persisted; see Profile.
type UserRecord struct {
	UID           string         `json:"uid"`
	Email         string         `json:"email,omitempty"`
	EmailVerified bool           `json:"emailVerified"`
	DisplayName   string         `json:"displayName,omitempty"`
	PhotoURL      string         `json:"photoURL,omitempty"`
	PhoneNumber   string         `json:"phoneNumber,omitempty"`
	Disabled      bool           `json:"disabled"`
	Metadata      UserMetadata   `json:"metadata"`
	ProviderData  []UserInfo     `json:"providerData"`
	PasswordHash  string         `json:"passwordHash,omitempty"`
	PasswordSalt  string         `json:"passwordSalt,omitempty"`
	CustomClaims  map[string]any `json:"customClaims,omitempty"`
	TenantID      string         `json:"tenantId,omitempty"`
}

// ToJSON renders the record the way the provider serialises it, sensitive fields included
func (u UserRecord) ToJSON() map[string]any {
	out := map[string]any{
		"uid":           u.UID,
		"emailVerified": u.EmailVerified,
		"disabled":      u.Disabled,
		"metadata": map[string]any{
			"creationTime":   formatTime(u.Metadata.CreationTime),
			"lastSignInTime": formatTime(u.Metadata.LastSignInTime),
		},
	}
	setIfNotEmpty(out, "email", u.Email)
	setIfNotEmpty(out, "displayName", u.DisplayName)
	setIfNotEmpty(out, "photoURL", u.PhotoURL)
	setIfNotEmpty(out, "phoneNumber", u.PhoneNumber)
	setIfNotEmpty(out, "passwordHash", u.PasswordHash)
	setIfNotEmpty(out, "passwordSalt", u.PasswordSalt)
	setIfNotEmpty(out, "tenantId", u.TenantID)

	providers := make([]any, 0, len(u.ProviderData))
	for _, p := range u.ProviderData {
		entry := map[string]any{"providerId": p.ProviderID, "uid": p.UID}
		setIfNotEmpty(entry, "email", p.Email)
		setIfNotEmpty(entry, "displayName", p.DisplayName)
		setIfNotEmpty(entry, "photoURL", p.PhotoURL)
		setIfNotEmpty(entry, "phoneNumber", p.PhoneNumber)
		providers = append(providers, entry)
	}
	out["providerData"] = providers

	if len(u.CustomClaims) > 0 {
		out["customClaims"] = maps.Clone(u.CustomClaims)
	}
	return out
}

// FromCognitoAttributes builds a record from a Cognito user's attribute map.
// The sub attribute becomes the UID, falling back to the username.
// custom: attributes become custom claims.
func FromCognitoAttributes(username string, attrs map[string]string) UserRecord {
	uid := attrs[AttrSub]
	if uid == "" {
		uid = username
	}

	u := UserRecord{
		UID:           uid,
		Email:         attrs[AttrEmail],
		EmailVerified: attrs[AttrEmailVerified] == "true",
		DisplayName:   attrs[AttrName],
		PhotoURL:      attrs[AttrPicture],
		PhoneNumber:   attrs[AttrPhoneNumber],
	}

	for name, value := range attrs {
		claim, ok := strings.CutPrefix(name, customAttrPrefix)
		if !ok {
			continue
		}
		if u.CustomClaims == nil {
			u.CustomClaims = map[string]any{}
		}
		u.CustomClaims[claim] = value
	}

	if username != "" {
		u.ProviderData = []UserInfo{{
			ProviderID:  ProviderIDPassword,
			UID:         username,
			Email:       u.Email,
			DisplayName: u.DisplayName,
			PhotoURL:    u.PhotoURL,
			PhoneNumber: u.PhoneNumber,
		}}
	}
	return u
}

// FromUserType builds a record from the Cognito admin API user shape
func FromUserType(user types.UserType) UserRecord {
	u := FromCognitoAttributes(aws.ToString(user.Username), AttributeMap(user.Attributes))
	u.Disabled = !user.Enabled
	u.Metadata.CreationTime = aws.ToTime(user.UserCreateDate)
	return u
}

// AttributeMap flattens a Cognito attribute list
func AttributeMap(attrs []types.AttributeType) map[string]string {
	out := make(map[string]string, len(attrs))
	for _, a := range attrs {
		out[aws.ToString(a.Name)] = aws.ToString(a.Value)
	}
	return out
}

// CognitoAttributes renders the record as a Cognito attribute map, the
// inverse of FromCognitoAttributes
func (u UserRecord) CognitoAttributes() map[string]string {
	attrs := map[string]string{AttrSub: u.UID}
	setAttr(attrs, AttrEmail, u.Email)
	if u.Email != "" {
		attrs[AttrEmailVerified] = boolString(u.EmailVerified)
	}
	setAttr(attrs, AttrName, u.DisplayName)
	setAttr(attrs, AttrPicture, u.PhotoURL)
	setAttr(attrs, AttrPhoneNumber, u.PhoneNumber)
	for claim, value := range u.CustomClaims {
		if s, ok := value.(string); ok {
			attrs[customAttrPrefix+claim] = s
		}
	}
	return attrs
}

func setIfNotEmpty(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func setAttr(m map[string]string, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC1123)
}
