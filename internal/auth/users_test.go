package auth

import (
	"errors"
	"testing"
)

func TestUserAddAndAuthorize(t *testing.T) {
	store := NewUserStore(testDB(t), "Admin@Example.com")

	u, err := store.Add("  Ana@Example.com ", " Ana García ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if u.Email != "ana@example.com" {
		t.Errorf("email = %q, want lowercased and trimmed", u.Email)
	}
	if u.Name != "Ana García" {
		t.Errorf("name = %q, want trimmed", u.Name)
	}

	tests := []struct {
		email string
		want  bool
	}{
		{"ana@example.com", true},
		{"ANA@example.com", true},
		{"admin@example.com", true},
		{"luis@example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := store.IsAuthorized(tt.email); got != tt.want {
			t.Errorf("IsAuthorized(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestUserEmptyAdminIsNobody(t *testing.T) {
	store := NewUserStore(testDB(t), "")

	if store.IsAuthorized("") {
		t.Error("empty email must not be authorized")
	}
}

func TestUserAddValidation(t *testing.T) {
	store := NewUserStore(testDB(t), "")

	if _, err := store.Add("   ", "Nadie"); err == nil {
		t.Error("expected error for blank email")
	}
	if _, err := store.Add("ana@example.com", ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := store.Add("ana@example.com", "Again"); err == nil {
		t.Error("expected duplicate error")
	}
}

func TestUserIdentity(t *testing.T) {
	store := NewUserStore(testDB(t), "admin@example.com")
	if _, err := store.Add("ana@example.com", "Ana García"); err != nil {
		t.Fatalf("add: %v", err)
	}

	id := store.Identity("ANA@example.com")
	if id.Name != "Ana García" || id.Email != "ANA@example.com" {
		t.Errorf("identity = %+v", id)
	}

	admin := store.Identity("admin@example.com")
	if admin.Name != "" {
		t.Errorf("admin name = %q, want empty", admin.Name)
	}
}

func TestUserListAndDelete(t *testing.T) {
	store := NewUserStore(testDB(t), "")
	for _, e := range []string{"luis@example.com", "ana@example.com"} {
		if _, err := store.Add(e, ""); err != nil {
			t.Fatalf("add %s: %v", e, err)
		}
	}

	users, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 || users[0].Email != "ana@example.com" {
		t.Fatalf("users = %+v, want sorted by email", users)
	}

	if err := store.DeleteByEmail("ana@example.com"); err != nil {
		t.Fatalf("delete by email: %v", err)
	}
	if err := store.Delete(users[1].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(users[1].ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
	if _, err := store.GetByEmail("ana@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}
