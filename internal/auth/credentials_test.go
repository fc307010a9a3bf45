// ABOUTME: Tests for administrator credential verification
// ABOUTME: Covers matching, mismatches, and the uniform failure contract

package auth

import "testing"

func TestCredentials_Verify(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	creds := Credentials{Username: "admin", PasswordHash: hash}

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"valid pair", "admin", "correct horse battery staple", true},
		{"wrong password", "admin", "wrong", false},
		{"unknown username", "root", "correct horse battery staple", false},
		{"both wrong", "root", "wrong", false},
		{"empty password", "admin", "", false},
		{"empty username", "", "correct horse battery staple", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := creds.Verify(tt.username, tt.password); got != tt.want {
				t.Errorf("Verify(%q, ...) = %v, want %v", tt.username, got, tt.want)
			}
		})
	}
}

func TestCredentials_EmptyHashNeverMatches(t *testing.T) {
	creds := Credentials{Username: "admin"}
	if creds.Verify("admin", "") {
		t.Error("Verify() matched against an empty provisioned hash")
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	creds := Credentials{Username: "admin", PasswordHash: hash}
	if !creds.Verify("admin", "secret") {
		t.Error("freshly hashed password did not verify")
	}
}
