// internal/auth/token_test.go

package auth

import (
	"testing"
	"time"
)

func TestTokens_RoundTrip(t *testing.T) {
	tk, err := NewTokens("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}

	in := Principal{AdminID: 7, Username: "alice", Role: "servant"}
	signed, exp, err := tk.Issue(in)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expiry not in the future")
	}

	out, err := tk.Validate(signed)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if out != in {
		t.Fatalf("principal mismatch: %+v vs %+v", out, in)
	}
}

func TestTokens_RejectsForeignSignature(t *testing.T) {
	a, _ := NewTokens("secret-a", time.Hour)
	b, _ := NewTokens("secret-b", time.Hour)

	signed, _, err := a.Issue(Principal{AdminID: 1, Username: "x", Role: "servant"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := b.Validate(signed); err == nil {
		t.Fatalf("foreign-signed token validated")
	}
}

func TestTokens_RejectsExpired(t *testing.T) {
	tk, _ := NewTokens("secret", time.Nanosecond)

	signed, _, err := tk.Issue(Principal{AdminID: 1, Username: "x", Role: "servant"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := tk.Validate(signed); err == nil {
		t.Fatalf("expired token validated")
	}
}

func TestTokens_EmptySecretRejected(t *testing.T) {
	if _, err := NewTokens("", time.Hour); err == nil {
		t.Fatalf("empty secret accepted")
	}
}
