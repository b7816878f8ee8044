package util

import (
	"testing"
	"time"

	"odigyan_backend/internal/model"
)

func testUser() *model.User {
	u := &model.User{
		Email: "student@example.com",
		Role:  model.Student,
	}
	u.ID = 42
	return u
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(testUser(), "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT error: %v", err)
	}

	claims, err := ParseJWT(token, "secret")
	if err != nil {
		t.Fatalf("ParseJWT error: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "student@example.com" || claims.Role != model.Student {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testUser(), "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT error: %v", err)
	}

	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestJWTExpired(t *testing.T) {
	token, err := GenerateJWT(testUser(), "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT error: %v", err)
	}

	if _, err := ParseJWT(token, "secret"); err == nil {
		t.Error("expected error for expired token")
	}
}
