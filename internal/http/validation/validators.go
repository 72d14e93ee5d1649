// Package validation holds the per-field form rules, input shaping and date
// bounds for the account forms. Every rule returns an empty string when the
// value is valid and a user-facing message otherwise.
package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Field names shared by forms, templates and the live validation endpoints.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldDateOfBirth = "date_of_birth"
	FieldMobile      = "mobile_number"
	FieldPassword    = "password"
)

// Messages shown next to invalid fields.
const (
	MsgNameRequired     = "Full Name is required"
	MsgNameInvalid      = "Please enter a valid name (letters only)"
	MsgEmailRequired    = "Email address is required"
	MsgEmailInvalid     = "Enter a valid email address (e.g., user@example.com)"
	MsgDOBRequired      = "Date of birth is required"
	MsgDOBFuture        = "Date of birth cannot be in the future"
	MsgDOBTooYoung      = "Enter a valid date of birth. You must be at least 13 years old"
	MsgMobileRequired   = "Mobile number is required"
	MsgMobilePrefix     = "Mobile number must start with 6, 7, 8, or 9"
	MsgMobileShort      = "Please enter 10 digit mobile number"
	MsgMobileInvalid    = "Please enter a valid 10-digit mobile number"
	MsgPasswordRequired = "Password is required"
	MsgPasswordLength   = "Password must be 5-30 characters and include uppercase, lowercase, number, and special character"
	MsgPasswordLower    = "Password must contain at least one lowercase letter"
	MsgPasswordUpper    = "Password must contain at least one uppercase letter"
	MsgPasswordDigit    = "Password must contain at least one number"
	MsgPasswordSpecial  = "Password must contain at least one special character (!@#$%^&*)"
	MsgPasswordSpaces   = "Password cannot contain spaces"
)

// MinimumAge is the youngest accepted age in whole years.
const MinimumAge = 13

var (
	namePattern         = regexp.MustCompile(`^[A-Za-z\s]{2,50}$`)
	emailPattern        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	signupMobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
	mobilePattern       = regexp.MustCompile(`^\d{10}$`)
	lowerPattern        = regexp.MustCompile(`[a-z]`)
	upperPattern        = regexp.MustCompile(`[A-Z]`)
	digitPattern        = regexp.MustCompile(`\d`)
	specialPattern      = regexp.MustCompile(`[!@#$%^&*]`)
)

// Validator is a function that validates a string value and returns an error message if invalid.
type Validator func(v string) string

// Clock supplies "today" to the date rules.
type Clock func() time.Time

// Name validates a full name: required after trimming, then letters and spaces, 2-50 characters.
func Name(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return MsgNameRequired
	}
	if !namePattern.MatchString(v) {
		return MsgNameInvalid
	}
	return ""
}

// Email validates an email address. The value is not trimmed.
func Email(v string) string {
	if v == "" {
		return MsgEmailRequired
	}
	if !emailPattern.MatchString(v) {
		return MsgEmailInvalid
	}
	return ""
}

// DateOfBirth returns the date of birth rule evaluated against now.
func DateOfBirth(now Clock) Validator {
	return func(v string) string {
		if v == "" {
			return MsgDOBRequired
		}
		dob, err := time.Parse(DateLayout, v)
		if err != nil {
			return MsgDOBTooYoung
		}
		today := dateOnly(now())
		if dob.After(today) {
			return MsgDOBFuture
		}
		if Age(dob, today) < MinimumAge {
			return MsgDOBTooYoung
		}
		return ""
	}
}

// SignupMobile validates a mobile number on the signup form.
func SignupMobile(v string) string {
	switch {
	case v == "":
		return MsgMobileRequired
	case len(v) == 1 && (v[0] < '6' || v[0] > '9'):
		return MsgMobilePrefix
	case len(v) < 10:
		return MsgMobileShort
	case !signupMobilePattern.MatchString(v):
		return MsgMobilePrefix
	}
	return ""
}

// ProfileMobile validates a mobile number on the profile form.
func ProfileMobile(v string) string {
	switch {
	case v == "":
		return MsgMobileRequired
	case len(v) < 10:
		return MsgMobileShort
	case !mobilePattern.MatchString(v):
		return MsgMobileInvalid
	}
	return ""
}

// Password validates a signup password. Checks run in order and the first
// failure is reported. Length counts characters, and any Unicode space is
// rejected.
func Password(v string) string {
	switch {
	case v == "":
		return MsgPasswordRequired
	case utf8.RuneCountInString(v) < 5 || utf8.RuneCountInString(v) > 30:
		return MsgPasswordLength
	case !lowerPattern.MatchString(v):
		return MsgPasswordLower
	case !upperPattern.MatchString(v):
		return MsgPasswordUpper
	case !digitPattern.MatchString(v):
		return MsgPasswordDigit
	case !specialPattern.MatchString(v):
		return MsgPasswordSpecial
	case strings.ContainsFunc(v, unicode.IsSpace):
		return MsgPasswordSpaces
	}
	return ""
}

// Form selects which variant of the rules applies.
type Form int

const (
	// SignupForm validates every field including the password.
	SignupForm Form = iota
	// ProfileForm validates the editable profile fields.
	ProfileForm
)

// Rules returns the validator for field on form, or nil when the field has no rule.
func Rules(form Form, field string, now Clock) Validator {
	switch field {
	case FieldName:
		return Name
	case FieldEmail:
		return Email
	case FieldDateOfBirth:
		return DateOfBirth(now)
	case FieldMobile:
		if form == SignupForm {
			return SignupMobile
		}
		return ProfileMobile
	case FieldPassword:
		if form == SignupForm {
			return Password
		}
	}
	return nil
}

// Fields lists the validated fields of form in display order.
func Fields(form Form) []string {
	if form == SignupForm {
		return []string{FieldName, FieldEmail, FieldDateOfBirth, FieldMobile, FieldPassword}
	}
	return []string{FieldName, FieldEmail, FieldDateOfBirth, FieldMobile}
}

// ValidateField runs the rule for one field. Unknown fields are valid.
func ValidateField(form Form, field, value string, now Clock) string {
	if rule := Rules(form, field, now); rule != nil {
		return rule(value)
	}
	return ""
}

// ValidateAll runs a fresh pass over every field of form and returns the
// failing fields. An empty map means the form may be submitted.
func ValidateAll(form Form, values map[string]string, now Clock) map[string]string {
	fv := New()
	for _, field := range Fields(form) {
		fv.Validate(field, values[field], Rules(form, field, now))
	}
	return fv.Errors()
}

// FieldValidator provides a fluent API for validating multiple fields.
type FieldValidator struct {
	errors map[string]string
}

// New creates a new FieldValidator instance.
func New() *FieldValidator {
	return &FieldValidator{errors: make(map[string]string)}
}

// Validate validates a field with one or more validators.
// It stops at the first error for each field.
func (fv *FieldValidator) Validate(field, value string, validators ...Validator) *FieldValidator {
	for _, v := range validators {
		if v == nil {
			continue
		}
		if err := v(value); err != "" {
			fv.errors[field] = err
			break // Stop at first error per field
		}
	}
	return fv
}

// Errors returns the accumulated validation errors.
func (fv *FieldValidator) Errors() map[string]string {
	return fv.errors
}
