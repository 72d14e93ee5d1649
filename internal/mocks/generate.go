// Package mocks provides mock implementations for testing the accounts UI.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockAccountAPI(ctrl)
//	api.EXPECT().Me(gomock.Any(), "token").Return(profile, nil)
package mocks

// Generate mock for AccountAPI interface from internal/ports package.
// This creates MockAccountAPI with methods for all AccountAPI interface methods:
// Login, Signup, Me, UpdateProfile, ListUsers
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=account_api_mock.go github.com/target/mmk-accounts-ui/internal/ports AccountAPI

// Generate mock for TokenStore interface from internal/ports package.
// This creates MockTokenStore with methods for all TokenStore interface methods:
// Save, Get, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=token_store_mock.go github.com/target/mmk-accounts-ui/internal/ports TokenStore
