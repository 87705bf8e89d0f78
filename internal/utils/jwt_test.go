package utils

import (
	"errors"
	"testing"
	"time"

	"gescom/internal/apperr"
	"gescom/internal/models"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	session := models.Session{
		UserID:       7,
		Email:        "admin@test.local",
		Nom:          "Admin",
		Role:         models.RoleAdmin,
		IDEntreprise: 2,
	}
	token, err := NewSessionToken("secret", session, time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken returned error: %v", err)
	}

	parsed, err := ParseSessionToken("secret", token)
	if err != nil {
		t.Fatalf("ParseSessionToken returned error: %v", err)
	}
	if parsed != session {
		t.Fatalf("session = %+v, want %+v", parsed, session)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewSessionToken("secret", models.Session{UserID: 1}, time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken returned error: %v", err)
	}
	if _, err := ParseSessionToken("other-secret", token); !errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := NewSessionToken("secret", models.Session{UserID: 1}, -time.Minute)
	if err != nil {
		t.Fatalf("NewSessionToken returned error: %v", err)
	}
	if _, err := ParseSessionToken("secret", token); !errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
}
