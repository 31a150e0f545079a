package domain

import (
	"errors"
	"testing"
)

func TestValidateUser(t *testing.T) {
	cases := []struct {
		name     string
		username string
		fullname string
		email    string
		wantErr  bool
	}{
		{name: "valid", username: "alice_01", fullname: "Alice Smith", email: "alice@example.com"},
		{name: "blank username", username: "  ", fullname: "Alice", email: "a@b.c", wantErr: true},
		{name: "username too short", username: "ab", fullname: "Alice", email: "a@b.c", wantErr: true},
		{name: "username too long", username: "abcdefghijklmnopqrstu", fullname: "Alice", email: "a@b.c", wantErr: true},
		{name: "username illegal char", username: "ali-ce", fullname: "Alice", email: "a@b.c", wantErr: true},
		{name: "blank fullname", username: "alice", fullname: " ", email: "a@b.c", wantErr: true},
		{name: "email missing at", username: "alice", fullname: "Alice", email: "alice.example.com", wantErr: true},
		{name: "email no dot after at", username: "alice", fullname: "Alice", email: "alice@examplecom", wantErr: true},
		{name: "email dot before at only", username: "alice", fullname: "Alice", email: "alice.smith@examplecom", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := ValidateUser(tc.username, tc.fullname, tc.email)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.Username != tc.username {
				t.Fatalf("username = %q, want %q", user.Username, tc.username)
			}
		})
	}
}

func TestUserFormat(t *testing.T) {
	user, err := ValidateUser("alice", "Alice Smith", "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := user.Format(), "alice (Alice Smith) <alice@example.com>"; got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
}
