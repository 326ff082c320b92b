package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateJWT(secret, 42, "manager", "mark@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(secret, token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != "manager" {
		t.Errorf("Role = %q, want %q", claims.Role, "manager")
	}
	if claims.Email != "mark@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "mark@example.com")
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("right-secret", 1, "employee", "eve@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT("wrong-secret", token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestParseJWTExpired(t *testing.T) {
	claims := Claims{
		UserID: 1,
		Role:   "employee",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	if _, err := ParseJWT("secret", token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParseJWTGarbage(t *testing.T) {
	if _, err := ParseJWT("secret", "not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !ComparePassword("secret1", hash) {
		t.Error("correct password rejected")
	}
	if ComparePassword("wrong", hash) {
		t.Error("wrong password accepted")
	}
}
