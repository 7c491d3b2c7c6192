package auth

import (
	"context"
	"testing"

	"dentalcenter.org/internal/clinic"
	"dentalcenter.org/internal/storage"
)

func TestAuthenticate(t *testing.T) {
	users := clinic.Seed().Users

	u, err := Authenticate(users, "admin@clinic.local", "admin123")
	if err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if u.Role != clinic.RoleAdmin {
		t.Fatalf("unexpected role: %s", u.Role)
	}

	if _, err := Authenticate(users, "admin@clinic.local", "wrong"); err != ErrNoMatchingUser {
		t.Fatalf("expected ErrNoMatchingUser, got %v", err)
	}
	if _, err := Authenticate(users, "nobody@clinic.local", "admin123"); err != ErrNoMatchingUser {
		t.Fatalf("expected ErrNoMatchingUser, got %v", err)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	m := storage.NewMemory()
	user := clinic.Seed().Users[2]

	if err := SaveSession(m, user); err != nil {
		t.Fatal(err)
	}
	got, ok := LoadSession(m)
	if !ok {
		t.Fatal("session not restored")
	}
	if got.ID != user.ID || got.PatientID != user.PatientID {
		t.Fatalf("restored session differs: %#v", got)
	}

	if err := ClearSession(m); err != nil {
		t.Fatal(err)
	}
	if _, ok := LoadSession(m); ok {
		t.Fatal("session survived logout")
	}
}

func TestLoadSessionClearsCorruptKey(t *testing.T) {
	m := storage.NewMemory()
	if err := m.Put(storage.UserKey, []byte("{broken")); err != nil {
		t.Fatal(err)
	}

	if _, ok := LoadSession(m); ok {
		t.Fatal("corrupt session reported as valid")
	}
	if _, present, _ := m.Get(storage.UserKey); present {
		t.Fatal("corrupt session key not cleared")
	}
}

func TestRoleContext(t *testing.T) {
	ctx := context.Background()
	if IsAdmin(ctx) {
		t.Fatal("empty context reported admin")
	}
	if _, ok := UserIDFromContext(ctx); ok {
		t.Fatal("empty context carried a user")
	}

	ctx = ContextWithUser(ctx, "1", clinic.RoleAdmin)
	id, ok := UserIDFromContext(ctx)
	if !ok || id != "1" {
		t.Fatalf("user id lost: %q %v", id, ok)
	}
	if !IsAdmin(ctx) {
		t.Fatal("admin role lost")
	}

	patient := ContextWithUser(context.Background(), "2", clinic.RolePatient)
	if IsAdmin(patient) {
		t.Fatal("patient context reported admin")
	}
}
