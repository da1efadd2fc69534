package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", "userhub-test", time.Hour)

	token, err := tm.Generate("user@example.com")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	subject, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if subject != "user@example.com" {
		t.Fatalf("subject mismatch: got %q", subject)
	}
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", "userhub-test", -1*time.Second)

	token, err := tm.Generate("user@example.com")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	_, err = tm.Parse(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenManager("right-secret", "userhub-test", time.Hour).Generate("u@example.com")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	_, err = NewTokenManager("wrong-secret", "userhub-test", time.Hour).Parse(token)
	if !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestParse_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager("k", "userhub-test", time.Hour).Parse("not.a.jwt")
	if !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestParse_MissingSubject(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", "userhub-test", time.Hour)
	token, err := tm.Generate("")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	_, err = tm.Parse(token)
	if !errors.Is(err, ErrMissingSubject) {
		t.Fatalf("expected ErrMissingSubject, got %v", err)
	}
}
