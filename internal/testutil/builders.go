package testutil

import (
	"github.com/target/mmk-accounts-ui/internal/domain/account"
)

// ProfileBuilder builds account profiles for tests.
type ProfileBuilder struct {
	p account.Profile
}

// NewProfile returns a builder seeded with a valid regular user.
func NewProfile() *ProfileBuilder {
	return &ProfileBuilder{p: account.Profile{
		ID:           1,
		Name:         "Asha Rao",
		Email:        "asha@example.com",
		DateOfBirth:  "1990-04-02",
		MobileNumber: "9876543210",
	}}
}

// WithID sets the id.
func (b *ProfileBuilder) WithID(id int64) *ProfileBuilder {
	b.p.ID = id
	return b
}

// WithName sets the name.
func (b *ProfileBuilder) WithName(name string) *ProfileBuilder {
	b.p.Name = name
	return b
}

// WithEmail sets the email.
func (b *ProfileBuilder) WithEmail(email string) *ProfileBuilder {
	b.p.Email = email
	return b
}

// WithMobile sets the mobile number.
func (b *ProfileBuilder) WithMobile(mobile string) *ProfileBuilder {
	b.p.MobileNumber = mobile
	return b
}

// Admin marks the profile as an administrator.
func (b *ProfileBuilder) Admin() *ProfileBuilder {
	b.p.IsAdmin = true
	return b
}

// Build returns the profile.
func (b *ProfileBuilder) Build() account.Profile {
	return b.p
}

// ValidSignup returns a signup request that passes every field rule.
func ValidSignup() account.SignupRequest {
	return account.SignupRequest{
		Name:         "Asha Rao",
		Email:        "asha@example.com",
		DateOfBirth:  "1990-04-02",
		MobileNumber: "9876543210",
		Password:     "Passw0rd!",
	}
}
