package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessToken_RoundTrip(t *testing.T) {
	secret := "test-secret"
	at, err := NewAccessToken(secret, 42, 15)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}

	parsed, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token did not parse: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("unexpected claims type %T", parsed.Claims)
	}
	if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
		t.Fatalf("expected sub=42, got %v", claims["sub"])
	}
	if !at.Exp.After(time.Now()) {
		t.Fatalf("expiry must lie in the future, got %v", at.Exp)
	}
}

func TestNewAccessToken_WrongSecretFails(t *testing.T) {
	at, err := NewAccessToken("right-secret", 1, 15)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	_, err = jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	if err == nil {
		t.Fatalf("expected verification failure with wrong secret")
	}
}

func TestNewRefreshToken_RawAndHashDiffer(t *testing.T) {
	rt, err := NewRefreshToken(30)
	if err != nil {
		t.Fatalf("NewRefreshToken error: %v", err)
	}
	if len(rt.Raw) != 96 {
		t.Fatalf("expected 96 hex chars, got %d", len(rt.Raw))
	}
	hash := HashRefreshRaw(rt.Raw)
	if hash == rt.Raw {
		t.Fatalf("stored hash must not equal the raw token")
	}
	if hash != HashRefreshRaw(rt.Raw) {
		t.Fatalf("hash must be deterministic")
	}
}
