//go:build tools

// Package tools lists the developer tools this repo expects on PATH. They are
// installed with `go install` and deliberately kept out of go.mod.
package tools

// air reloads cmd/accounts-ui on change; pair it with DEV=true so templates
// and static files are read from disk:
//
//	go install github.com/air-verse/air@v1.63.0
//
// mockgen needs no install; `go generate ./internal/mocks` runs the pinned
// go.uber.org/mock/mockgen@v0.6.0 directly.
