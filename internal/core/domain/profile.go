package domain

import "strings"

// GuestName is shown when nobody is signed in.
const GuestName = "Guest"

// UserProfile is the signed-in account, persisted as profile.json.
type UserProfile struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar"`
}

// GuestProfile returns the profile reported when profile.json is absent or unreadable.
func GuestProfile() UserProfile {
	return UserProfile{Name: GuestName}
}

// IsGuest returns true if this is the fixed guest default.
func (p UserProfile) IsGuest() bool {
	return p == GuestProfile()
}

// ProviderProfile holds the raw fields extracted from a provider profile response.
// Each field is the first entry of its list, or empty if the list was missing.
type ProviderProfile struct {
	DisplayName string
	Email       string
	PhotoURL    string
}

// NormalizeProfile turns a provider profile into a UserProfile.
// An empty display name is replaced with namePlaceholder, which may itself be empty.
// Photo URLs served over http are upgraded to https.
func NormalizeProfile(p ProviderProfile, namePlaceholder string) UserProfile {
	name := strings.TrimSpace(p.DisplayName)
	if name == "" {
		name = namePlaceholder
	}

	avatar := strings.TrimSpace(p.PhotoURL)
	if strings.HasPrefix(avatar, "http://") {
		avatar = "https://" + strings.TrimPrefix(avatar, "http://")
	}

	return UserProfile{
		Name:      name,
		Email:     strings.TrimSpace(p.Email),
		AvatarURL: avatar,
	}
}
