package session

import "strings"

// Profile is the provider's userinfo payload. The full document is persisted
// inside the credential record; the local session keeps only the derived
// User record.
type Profile struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email,omitempty"`
	Name          string `json:"name,omitempty"`
	GivenName     string `json:"given_name,omitempty"`
	FamilyName    string `json:"family_name,omitempty"`
	Picture       string `json:"picture,omitempty"`
	Locale        string `json:"locale,omitempty"`
	HostedDomain  string `json:"hd,omitempty"`
}

// EmailDomain returns the part after '@' in the email, lowercased.
// Returns "" when the email has no domain part.
func (p Profile) EmailDomain() string {
	_, domain, ok := strings.Cut(p.Email, "@")
	if !ok {
		return ""
	}
	return strings.ToLower(domain)
}

// User derives the lightweight session user record from the profile.
func (p Profile) User() User {
	return User{
		Email:     strings.ToLower(p.Email),
		Domain:    p.EmailDomain(),
		Name:      p.Name,
		AvatarURL: p.Picture,
	}
}
