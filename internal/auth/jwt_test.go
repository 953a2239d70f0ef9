package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestManager(ttl time.Duration) *Manager {
	return &Manager{
		Secret:   []byte("test-secret"),
		TokenTTL: ttl,
		Issuer:   "payton-place-test",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := newTestManager(time.Hour)
	token, err := m.NewToken("507f1f77bcf86cd799439011", "admin@example.com", "super-admin")
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if claims.AdminID != "507f1f77bcf86cd799439011" {
		t.Fatalf("unexpected admin id: %s", claims.AdminID)
	}
	if claims.Email != "admin@example.com" {
		t.Fatalf("unexpected email: %s", claims.Email)
	}
	if claims.Role != "super-admin" {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestParseExpiredToken(t *testing.T) {
	m := newTestManager(-time.Minute)
	token, err := m.NewToken("id", "admin@example.com", "admin")
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	_, err = m.Parse(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseMalformedToken(t *testing.T) {
	m := newTestManager(time.Hour)
	_, err := m.Parse("not-a-jwt")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseWrongSecret(t *testing.T) {
	m := newTestManager(time.Hour)
	token, err := m.NewToken("id", "admin@example.com", "admin")
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	other := &Manager{Secret: []byte("different"), TokenTTL: time.Hour, Issuer: m.Issuer}
	if _, err := other.Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if err := ComparePassword(hash, "hunter22"); err != nil {
		t.Fatalf("ComparePassword error: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Fatalf("expected mismatch error")
	}
	if _, err := HashPassword(""); err == nil {
		t.Fatalf("expected error for empty password")
	}
}
