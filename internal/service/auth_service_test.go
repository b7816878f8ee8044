package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"odigyan_backend/internal/config"
	"odigyan_backend/internal/model"
	"odigyan_backend/internal/util"
)

func TestGoogleTokenVerifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("id_token") {
		case "valid":
			w.Write([]byte(`{"sub":"uid-1","email":"student@example.com","email_verified":"true","name":"Student","picture":"https://example.com/p.jpg"}`))
		case "unverified":
			w.Write([]byte(`{"sub":"uid-2","email":"student@example.com","email_verified":"false"}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	verifier := NewGoogleTokenVerifier(srv.URL)

	claims, err := verifier.Verify(context.Background(), "valid")
	if err != nil {
		t.Fatalf("Verify(valid) error: %v", err)
	}
	if claims.Sub != "uid-1" || claims.Email != "student@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	if _, err := verifier.Verify(context.Background(), "unverified"); !errors.Is(err, util.ErrInvalidIDToken) {
		t.Errorf("Verify(unverified) error = %v, want ErrInvalidIDToken", err)
	}

	if _, err := verifier.Verify(context.Background(), "garbage"); !errors.Is(err, util.ErrInvalidIDToken) {
		t.Errorf("Verify(garbage) error = %v, want ErrInvalidIDToken", err)
	}
}

func TestRoleForAdminEmail(t *testing.T) {
	s := &AuthService{Cfg: &config.Config{
		Admin: config.AdminConfig{Email: "admin@odigyan.com"},
	}}

	if got := s.roleFor("ADMIN@Odigyan.com"); got != model.Admin {
		t.Errorf("roleFor(admin email) = %v, want Admin", got)
	}
	if got := s.roleFor("someone@odigyan.com"); got != model.Student {
		t.Errorf("roleFor(other email) = %v, want Student", got)
	}
}

func TestDomainAllowed(t *testing.T) {
	open := &AuthService{Cfg: &config.Config{}}
	if !open.domainAllowed("anyone@anywhere.com") {
		t.Error("empty allow list should accept every domain")
	}

	restricted := &AuthService{Cfg: &config.Config{
		Auth: config.AuthConfig{AllowedDomains: []string{"School.edu"}},
	}}

	cases := []struct {
		email string
		want  bool
	}{
		{"student@school.edu", true},
		{"student@SCHOOL.EDU", true},
		{"student@other.edu", false},
		{"no-at-sign", false},
	}
	for _, tc := range cases {
		if got := restricted.domainAllowed(tc.email); got != tc.want {
			t.Errorf("domainAllowed(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}
