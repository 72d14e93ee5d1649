// Package account holds the account records exchanged with the accounts API.
package account

import (
	"fmt"
	"strings"
	"time"

	domainauth "github.com/target/mmk-accounts-ui/internal/domain/auth"
)

// DateLayout is the wire and form layout for dates of birth.
const DateLayout = "2006-01-02"

// NormalizeDate returns value in DateLayout. It accepts DateLayout itself and
// RFC 3339 timestamps, keeping the calendar date as written.
func NormalizeDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t.Format(DateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Format(DateLayout), nil
	}
	return "", fmt.Errorf("invalid date %q", value)
}

// Profile is a user account as returned by the API. It is replaced wholesale
// on every successful fetch or update.
type Profile struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	DateOfBirth  string `json:"date_of_birth"`
	MobileNumber string `json:"mobile_number"`
	IsAdmin      bool   `json:"is_admin"`
}

// Role maps the admin flag to an application role.
func (p Profile) Role() domainauth.Role {
	if p.IsAdmin {
		return domainauth.RoleAdmin
	}
	return domainauth.RoleUser
}

// FirstName returns the first word of the display name.
func (p Profile) FirstName() string {
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the account creation request body.
type SignupRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	DateOfBirth  string `json:"date_of_birth"`
	MobileNumber string `json:"mobile_number"`
	Password     string `json:"password"`
	IsAdmin      bool   `json:"is_admin"`
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	DateOfBirth  string `json:"date_of_birth"`
	MobileNumber string `json:"mobile_number"`
}

// UpdateFromProfile seeds an edit draft from the cached profile.
func UpdateFromProfile(p Profile) ProfileUpdate {
	return ProfileUpdate{
		Name:         p.Name,
		Email:        p.Email,
		DateOfBirth:  p.DateOfBirth,
		MobileNumber: p.MobileNumber,
	}
}

// SignupResult is the signup response: the created profile plus a bearer token.
type SignupResult struct {
	Profile
	JWT string `json:"jwt"`
}

// LoginResult is the login response.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}
