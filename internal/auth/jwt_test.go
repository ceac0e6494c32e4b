package auth

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNewTokenIssuer(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		ttl     time.Duration
		wantErr bool
	}{
		{"valid", testSecret, time.Hour, false},
		{"short secret", "short", time.Hour, true},
		{"zero ttl", testSecret, 0, true},
		{"negative ttl", testSecret, -time.Minute, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTokenIssuer(tt.secret, tt.ttl)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewTokenIssuer() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	token, err := issuer.Generate("octocat", "The Octocat", "https://example.com/a.png", RoleAdmin)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := issuer.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.Login != "octocat" || claims.Name != "The Octocat" {
		t.Errorf("unexpected identity %+v", claims)
	}
	if !claims.IsAdmin() {
		t.Error("expected admin role")
	}
	if claims.Subject != "github:octocat" {
		t.Errorf("Subject = %q", claims.Subject)
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return start }
	token, err := issuer.Generate("octocat", "", "", RoleUser)
	if err != nil {
		t.Fatal(err)
	}

	issuer.now = func() time.Time { return start.Add(2 * time.Minute) }
	if _, err := issuer.Validate(token); err == nil || !strings.Contains(err.Error(), "expired") {
		t.Fatalf("Validate() error = %v, want expired", err)
	}
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	a, _ := NewTokenIssuer(testSecret, time.Hour)
	b, _ := NewTokenIssuer(strings.Repeat("x", 32), time.Hour)

	token, err := a.Generate("octocat", "", "", RoleUser)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Validate(token); err == nil {
		t.Fatal("token signed with another secret was accepted")
	}
	if _, err := a.Validate("not-a-token"); err == nil {
		t.Fatal("garbage token was accepted")
	}
}
