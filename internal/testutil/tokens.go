package testutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// testSigningKey signs fixture tokens; the UI never verifies signatures.
var testSigningKey = []byte("accounts-ui-test-key")

// SignedToken returns an HS256 bearer token for subject expiring at exp.
// A zero exp produces a token without an exp claim.
func SignedToken(t TestingTB, subject string, exp time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{Subject: subject}
	if !exp.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSigningKey)
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return tok
}
