package auth

import (
	"testing"
	"time"
)

func TestTokenSlot_Expired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if (TokenSlot{Token: "t"}).Expired(now) {
		t.Fatalf("zero expiry must never expire")
	}
	if !(TokenSlot{Token: "t", ExpiresAt: now}).Expired(now) {
		t.Fatalf("expected slot to be expired at its expiry instant")
	}
	if (TokenSlot{Token: "t", ExpiresAt: now.Add(time.Second)}).Expired(now) {
		t.Fatalf("did not expect slot to be expired before its expiry")
	}
}
