package auth

// Profile is the subset of a user record that may be stored alongside
// application data. Fields are allow-listed: credentials, custom claims
// and provider internals never leave the auth provider.
type Profile struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
	PhoneNumber string `json:"phoneNumber"`
}

// ProfileOf projects a user record onto its storable profile
func ProfileOf(u UserRecord) Profile {
	return Profile{
		UID:         u.UID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		PhoneNumber: u.PhoneNumber,
	}
}

// Fields returns the profile as document fields. Unset values are stored as null.
func (p Profile) Fields() map[string]any {
	return map[string]any{
		"uid":         p.UID,
		"email":       nullable(p.Email),
		"displayName": nullable(p.DisplayName),
		"photoURL":    nullable(p.PhotoURL),
		"phoneNumber": nullable(p.PhoneNumber),
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
