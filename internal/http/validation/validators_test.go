package validation

import (
	"strings"
	"testing"
	"time"
)

func fixedClock(y int, m time.Month, d int) Clock {
	return func() time.Time { return time.Date(y, m, d, 15, 4, 5, 0, time.UTC) }
}

func TestName(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "empty", value: "", want: MsgNameRequired},
		{name: "whitespace only", value: "   ", want: MsgNameRequired},
		{name: "single letter", value: "A", want: MsgNameInvalid},
		{name: "digits", value: "Asha 2", want: MsgNameInvalid},
		{name: "punctuation", value: "O'Neil", want: MsgNameInvalid},
		{name: "two letters", value: "Al", want: ""},
		{name: "with spaces", value: "Asha Rao", want: ""},
		{name: "trimmed before matching", value: "  Asha Rao  ", want: ""},
		{name: "fifty letters", value: strings.Repeat("a", 50), want: ""},
		{name: "fifty one letters", value: strings.Repeat("a", 51), want: MsgNameInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Name(tt.value); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", MsgEmailRequired},
		{"user", MsgEmailInvalid},
		{"user@example", MsgEmailInvalid},
		{"us er@example.com", MsgEmailInvalid},
		{"user@@example.com", MsgEmailInvalid},
		{"user@example.com", ""},
		{"first.last@sub.example.co", ""},
	}

	for _, tt := range tests {
		if got := Email(tt.value); got != tt.want {
			t.Errorf("Email(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestDateOfBirth(t *testing.T) {
	rule := DateOfBirth(fixedClock(2025, time.June, 15))

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "empty", value: "", want: MsgDOBRequired},
		{name: "tomorrow", value: "2025-06-16", want: MsgDOBFuture},
		{name: "today", value: "2025-06-15", want: MsgDOBTooYoung},
		{name: "thirteenth birthday is tomorrow", value: "2012-06-16", want: MsgDOBTooYoung},
		{name: "exactly thirteen today", value: "2012-06-15", want: ""},
		{name: "thirteen last month", value: "2012-05-20", want: ""},
		{name: "adult", value: "1990-04-02", want: ""},
		{name: "not a date", value: "15/06/1990", want: MsgDOBTooYoung},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule(tt.value); got != tt.want {
				t.Errorf("DateOfBirth(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestSignupMobile(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", MsgMobileRequired},
		{"5", MsgMobilePrefix},
		{"0", MsgMobilePrefix},
		{"9", MsgMobileShort},
		{"98765", MsgMobileShort},
		{"5876543210", MsgMobilePrefix},
		{"98765432a0", MsgMobilePrefix},
		{"9876543210", ""},
		{"6000000000", ""},
		{"98765432100", MsgMobilePrefix},
	}

	for _, tt := range tests {
		if got := SignupMobile(tt.value); got != tt.want {
			t.Errorf("SignupMobile(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestProfileMobile(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"", MsgMobileRequired},
		{"5", MsgMobileShort},
		{"123456789", MsgMobileShort},
		{"12345abcde", MsgMobileInvalid},
		{"1234567890", ""},
		{"12345678901", MsgMobileInvalid},
	}

	for _, tt := range tests {
		if got := ProfileMobile(tt.value); got != tt.want {
			t.Errorf("ProfileMobile(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "empty", value: "", want: MsgPasswordRequired},
		{name: "too short", value: "Ab1!", want: MsgPasswordLength},
		{name: "too long", value: "Ab1!" + strings.Repeat("x", 27), want: MsgPasswordLength},
		{name: "no lowercase", value: "ABC1!", want: MsgPasswordLower},
		{name: "no uppercase", value: "abc1!", want: MsgPasswordUpper},
		{name: "no digit", value: "Abcd!", want: MsgPasswordDigit},
		{name: "no special", value: "Abcd1", want: MsgPasswordSpecial},
		{name: "special outside set", value: "Abcd1?", want: MsgPasswordSpecial},
		{name: "contains space", value: "Ab 1!x", want: MsgPasswordSpaces},
		{name: "minimum valid", value: "Ab1!x", want: ""},
		{name: "thirty chars", value: "Ab1!" + strings.Repeat("x", 26), want: ""},
		{name: "thirty chars with accents", value: "Ab1!" + strings.Repeat("é", 26), want: ""},
		{name: "thirty-one chars with accents", value: "Ab1!" + strings.Repeat("é", 27), want: MsgPasswordLength},
		{name: "contains no-break space", value: "Ab1!\u00a0x", want: MsgPasswordSpaces},
		{name: "contains ideographic space", value: "Ab1!\u3000x", want: MsgPasswordSpaces},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Password(tt.value); got != tt.want {
				t.Errorf("Password(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestValidateAll(t *testing.T) {
	now := fixedClock(2025, time.June, 15)

	valid := map[string]string{
		FieldName:        "Asha Rao",
		FieldEmail:       "asha@example.com",
		FieldDateOfBirth: "1990-04-02",
		FieldMobile:      "9876543210",
		FieldPassword:    "Passw0rd!",
	}
	if errs := ValidateAll(SignupForm, valid, now); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	errs := ValidateAll(SignupForm, map[string]string{}, now)
	want := map[string]string{
		FieldName:        MsgNameRequired,
		FieldEmail:       MsgEmailRequired,
		FieldDateOfBirth: MsgDOBRequired,
		FieldMobile:      MsgMobileRequired,
		FieldPassword:    MsgPasswordRequired,
	}
	if len(errs) != len(want) {
		t.Fatalf("expected %d errors, got %v", len(want), errs)
	}
	for k, v := range want {
		if errs[k] != v {
			t.Errorf("field %s: got %q, want %q", k, errs[k], v)
		}
	}

	profile := map[string]string{
		FieldName:        "Asha Rao",
		FieldEmail:       "asha@example.com",
		FieldDateOfBirth: "1990-04-02",
		FieldMobile:      "1234567890",
	}
	if errs := ValidateAll(ProfileForm, profile, now); len(errs) != 0 {
		t.Fatalf("profile form should accept any 10 digits and no password, got %v", errs)
	}
	if errs := ValidateAll(SignupForm, profile, now); errs[FieldMobile] != MsgMobilePrefix || errs[FieldPassword] != MsgPasswordRequired {
		t.Fatalf("signup form should apply signup rules, got %v", errs)
	}
}

func TestValidateField(t *testing.T) {
	now := fixedClock(2025, time.June, 15)

	if got := ValidateField(ProfileForm, FieldPassword, "", now); got != "" {
		t.Errorf("profile form has no password rule, got %q", got)
	}
	if got := ValidateField(SignupForm, "unknown", "", now); got != "" {
		t.Errorf("unknown field should be valid, got %q", got)
	}
	if got := ValidateField(SignupForm, FieldMobile, "5", now); got != MsgMobilePrefix {
		t.Errorf("got %q", got)
	}
}

func TestFieldValidator_StopsAtFirstError(t *testing.T) {
	first := func(string) string { return "first" }
	second := func(string) string { return "second" }

	errs := New().
		Validate("a", "", nil, first, second).
		Validate("b", "", func(string) string { return "" }).
		Errors()

	if len(errs) != 1 || errs["a"] != "first" {
		t.Fatalf("unexpected errors: %v", errs)
	}
}
