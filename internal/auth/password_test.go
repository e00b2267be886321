package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		cost     int
		wantErr  error
	}{
		{
			name:     "valid password",
			password: "validpassword123",
			cost:     4,
			wantErr:  nil,
		},
		{
			name:     "password too long",
			password: strings.Repeat("a", 73),
			cost:     4,
			wantErr:  ErrPasswordTooLong,
		},
		{
			name:     "password at maximum length",
			password: strings.Repeat("a", 72),
			cost:     4,
			wantErr:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password, tt.cost)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("HashPassword() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr == nil && hash == "" {
				t.Error("HashPassword() returned empty hash for valid password")
			}
			if tt.wantErr == nil && hash == tt.password {
				t.Error("HashPassword() returned the plaintext password")
			}
		})
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple", 4)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if err := CheckPassword("correct horse battery staple", hash); err != nil {
		t.Errorf("CheckPassword() with correct password = %v, want nil", err)
	}

	if err := CheckPassword("incorrect password", hash); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("CheckPassword() with wrong password = %v, want ErrInvalidPassword", err)
	}

	if err := CheckPassword("anything", "not-a-bcrypt-hash"); err == nil {
		t.Error("CheckPassword() with garbage hash = nil, want error")
	}
}

func TestHashPassword_SaltedDigestsDiffer(t *testing.T) {
	first, err := HashPassword("same password", 4)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	second, err := HashPassword("same password", 4)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password are identical; salt missing")
	}
}
