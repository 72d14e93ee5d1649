package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "resource not found",
			},
			want: "resource not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeInternal,
				Message: "failed to process",
				Cause:   errors.New("underlying error"),
			},
			want: "failed to process: underlying error",
		},
		{
			name: "error with api detail",
			err: &AppError{
				Code:    ErrCodeConflict,
				Message: "signup rejected",
				Detail:  "Email already registered",
				Status:  409,
			},
			want: "signup rejected (Email already registered)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{
		Code:    ErrCodeInternal,
		Message: "wrapped error",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *AppError
		code  ErrorCode
		check func(error) bool
	}{
		{"not found", NotFound("x"), ErrCodeNotFound, IsNotFound},
		{"not found formatted", NotFoundf("slot %s", "k"), ErrCodeNotFound, IsNotFound},
		{"conflict", Conflict("x"), ErrCodeConflict, IsConflict},
		{"validation", Validation("x"), ErrCodeValidation, IsValidation},
		{"validation formatted", Validationf("bad %d", 1), ErrCodeValidation, IsValidation},
		{"unauthorized", Unauthorized("x"), ErrCodeUnauthorized, IsUnauthorized},
		{"forbidden", Forbidden("x"), ErrCodeForbidden, IsForbidden},
		{"unavailable", Unavailable("x"), ErrCodeUnavailable, IsUnavailable},
		{"internal", Internal("x"), ErrCodeInternal, IsInternal},
		{"internal formatted", Internalf("x %s", "y"), ErrCodeInternal, IsInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.code)
			}
			if !tt.check(tt.err) {
				t.Errorf("predicate did not match %v", tt.err)
			}
			wrapped := fmt.Errorf("outer: %w", tt.err)
			if !tt.check(wrapped) {
				t.Errorf("predicate did not match wrapped %v", wrapped)
			}
		})
	}
}

func TestNotFoundf_Message(t *testing.T) {
	err := NotFoundf("token slot %q not found", "abc")
	if err.Message != `token slot "abc" not found` {
		t.Errorf("NotFoundf().Message = %q", err.Message)
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("email", "Email address is required")
	if GetField(err) != "email" {
		t.Errorf("GetField() = %q, want email", GetField(err))
	}
	if GetField(errors.New("plain")) != "" {
		t.Errorf("GetField() on plain error should be empty")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, ErrCodeInternal, "ignored") != nil {
		t.Fatalf("Wrap(nil) should return nil")
	}

	err := Wrapf(context.DeadlineExceeded, ErrCodeTimeout, "call %s", "GET /me")
	if !IsTimeout(err) {
		t.Errorf("expected timeout code")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected cause to be preserved")
	}
	if err.Message != "call GET /me" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestIsCanceled(t *testing.T) {
	err := Wrap(context.Canceled, ErrCodeCanceled, "request canceled")
	if !IsCanceled(err) {
		t.Errorf("expected canceled code")
	}
	if IsCanceled(errors.New("plain")) {
		t.Errorf("plain error should not be canceled")
	}
	if !IsCanceled(fmt.Errorf("login: %w", context.Canceled)) {
		t.Errorf("wrapped context.Canceled should be canceled")
	}
}

func TestGetCode(t *testing.T) {
	if GetCode(Forbidden("no")) != ErrCodeForbidden {
		t.Errorf("GetCode() mismatch")
	}
	if GetCode(errors.New("plain")) != "" {
		t.Errorf("GetCode() on plain error should be empty")
	}
}

func TestUserMessage(t *testing.T) {
	withDetail := &AppError{Code: ErrCodeValidation, Message: "signup rejected", Detail: "Email already registered"}
	if got := UserMessage(fmt.Errorf("signup: %w", withDetail), "Signup failed"); got != "Email already registered" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(Unavailable("api unreachable"), "Signup failed"); got != "Signup failed" {
		t.Errorf("UserMessage() without detail = %q", got)
	}
	if got := UserMessage(errors.New("plain"), "fallback"); got != "fallback" {
		t.Errorf("UserMessage() on plain error = %q", got)
	}
}

func TestAppError_WithDetailAndStatus(t *testing.T) {
	err := Conflict("signup rejected").WithDetail("Email already registered").WithStatus(409)

	if err.Detail != "Email already registered" || err.Status != 409 {
		t.Fatalf("unexpected error fields: %+v", err)
	}
	if got := UserMessage(err, "Signup failed"); got != "Email already registered" {
		t.Fatalf("UserMessage() = %q", got)
	}
}
