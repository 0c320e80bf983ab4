package utils

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("secret", 42, "ADMIN", 5)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := ParseAccessToken("secret", tok.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	id, err := claims.AdminID()
	if err != nil || id != 42 || claims.Role != "ADMIN" {
		t.Fatalf("claims = %+v id=%d err=%v", claims, id, err)
	}
}

func TestParseAccessTokenRejects(t *testing.T) {
	tok, _ := NewAccessToken("secret", 1, "ADMIN", 5)
	if _, err := ParseAccessToken("other", tok.Token); err == nil {
		t.Fatal("wrong secret accepted")
	}
	expired, _ := NewAccessToken("secret", 1, "ADMIN", -1)
	if _, err := ParseAccessToken("secret", expired.Token); err == nil {
		t.Fatal("expired token accepted")
	}
	if _, err := ParseAccessToken("secret", "not.a.jwt"); err == nil {
		t.Fatal("garbage accepted")
	}
}

func TestRefreshToken(t *testing.T) {
	a, err := NewRefreshToken(7)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := NewRefreshToken(7)
	if len(a.Raw) != 96 || a.Raw == b.Raw {
		t.Fatalf("raw tokens %q %q", a.Raw, b.Raw)
	}
	h := HashRefreshRaw(a.Raw)
	if len(h) != 64 || h != HashRefreshRaw(a.Raw) || strings.Contains(h, a.Raw) {
		t.Fatalf("hash = %q", h)
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter22", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if !VerifyPassword(hash, "hunter22") || VerifyPassword(hash, "hunter23") {
		t.Fatal("password verification mismatch")
	}
}
