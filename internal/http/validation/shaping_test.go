package validation

import (
	"strings"
	"testing"
)

func TestShapeName(t *testing.T) {
	tests := []struct {
		prev, next, want string
	}{
		{"Ash", "Asha", "Asha"},
		{"Asha", "Asha ", "Asha "},
		{"Asha", "Asha1", "Asha"},
		{"Asha", "Asha-", "Asha"},
		{"", "", ""},
		{strings.Repeat("a", 50), strings.Repeat("a", 51), strings.Repeat("a", 50)},
	}

	for _, tt := range tests {
		if got := ShapeName(tt.prev, tt.next); got != tt.want {
			t.Errorf("ShapeName(%q, %q) = %q, want %q", tt.prev, tt.next, got, tt.want)
		}
	}
}

func TestShapeMobile(t *testing.T) {
	tests := []struct {
		name   string
		prev   string
		next   string
		signup bool
		want   string
	}{
		{name: "signup first digit 9", prev: "", next: "9", signup: true, want: "9"},
		{name: "signup first digit 5", prev: "", next: "5", signup: true, want: ""},
		{name: "signup letter", prev: "98", next: "98a", signup: true, want: "98"},
		{name: "signup cleared", prev: "9", next: "", signup: true, want: ""},
		{name: "signup eleven digits", prev: "9876543210", next: "98765432101", signup: true, want: "9876543210"},
		{name: "profile first digit 1", prev: "", next: "1", signup: false, want: "1"},
		{name: "profile letter", prev: "12", next: "12x", signup: false, want: "12"},
		{name: "profile ten digits", prev: "123456789", next: "1234567890", signup: false, want: "1234567890"},
		{name: "profile eleven digits", prev: "1234567890", next: "12345678901", signup: false, want: "1234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShapeMobile(tt.prev, tt.next, tt.signup); got != tt.want {
				t.Errorf("ShapeMobile(%q, %q, %v) = %q, want %q", tt.prev, tt.next, tt.signup, got, tt.want)
			}
		})
	}
}

func TestShape(t *testing.T) {
	if got := Shape(SignupForm, FieldMobile, "", "5"); got != "" {
		t.Errorf("signup mobile shaping should reject 5, got %q", got)
	}
	if got := Shape(ProfileForm, FieldMobile, "", "5"); got != "5" {
		t.Errorf("profile mobile shaping should accept 5, got %q", got)
	}
	if got := Shape(SignupForm, FieldEmail, "a", "anything"); got != "anything" {
		t.Errorf("email has no shaping, got %q", got)
	}
	if got := Shape(ProfileForm, FieldName, "Al", "Al9"); got != "Al" {
		t.Errorf("name shaping should reject digits, got %q", got)
	}
}
