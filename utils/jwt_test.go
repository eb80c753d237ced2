package utils

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user 42, got %d", claims.UserID)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	InitJWT("test-secret")

	if _, err := ParseToken("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	InitJWT("secret-a")
	token, err := GenerateToken(1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	InitJWT("secret-b")
	if _, err := ParseToken(token); err == nil {
		t.Fatal("expected error for token signed with a different key")
	}
}
