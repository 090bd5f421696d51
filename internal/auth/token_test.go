package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenCreateAndValidate(t *testing.T) {
	store := NewTokenStore(testDB(t))

	token, err := store.Create("ana@example.com")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("token length = %d, want 64", len(token))
	}

	email, err := store.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if email != "ana@example.com" {
		t.Errorf("email = %q, want %q", email, "ana@example.com")
	}
}

func TestTokenSingleUse(t *testing.T) {
	store := NewTokenStore(testDB(t))

	token, err := store.Create("ana@example.com")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.Validate(token); err != nil {
		t.Fatalf("first validate: %v", err)
	}
	if _, err := store.Validate(token); !errors.Is(err, ErrTokenUsed) {
		t.Errorf("second validate err = %v, want ErrTokenUsed", err)
	}
}

func TestTokenInvalid(t *testing.T) {
	store := NewTokenStore(testDB(t))

	if _, err := store.Validate("nope"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenExpired(t *testing.T) {
	store := NewTokenStore(testDB(t))

	token, err := store.Create("ana@example.com")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	store.now = func() time.Time { return time.Now().Add(tokenExpiry + time.Minute) }
	if _, err := store.Validate(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}

	if err := store.Cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if _, err := store.Validate(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("after cleanup err = %v, want ErrTokenInvalid", err)
	}
}
