package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"accrete-server/internal/shared/config"

	"golang.org/x/oauth2"
)

func TestGitHubProvider_GetAuthURL(t *testing.T) {
	p := NewGitHubProvider(config.GitHubOAuthConfig{
		ClientID:    "client",
		RedirectURL: "http://localhost:8080/auth/github/callback",
		Scopes:      []string{"read:user"},
	})

	u := p.GetAuthURL("xyz")
	for _, want := range []string{"github.com/login/oauth/authorize", "client_id=client", "state=xyz"} {
		if !strings.Contains(u, want) {
			t.Errorf("auth URL %q missing %q", u, want)
		}
	}
	if p.Name() != "github" {
		t.Errorf("Name() = %q", p.Name())
	}
}

func TestGitHubProvider_GetUserInfo(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    *OAuthUser
		wantErr bool
	}{
		{
			name:   "ok",
			status: http.StatusOK,
			body:   `{"id":42,"login":"octocat","name":"The Octocat","avatar_url":"https://a/42.png"}`,
			want:   &OAuthUser{ID: "42", Login: "octocat", Name: "The Octocat", AvatarURL: "https://a/42.png"},
		},
		{name: "missing login", status: http.StatusOK, body: `{"id":42}`, wantErr: true},
		{name: "upstream error", status: http.StatusUnauthorized, body: `{}`, wantErr: true},
		{name: "bad json", status: http.StatusOK, body: `{`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/user" {
					http.NotFound(w, r)
					return
				}
				if got := r.Header.Get("Authorization"); got != "Bearer tok" {
					t.Errorf("Authorization = %q", got)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewGitHubProvider(config.GitHubOAuthConfig{ClientID: "client"})
			p.apiURL = srv.URL

			got, err := p.GetUserInfo(context.Background(), &oauth2.Token{AccessToken: "tok", TokenType: "Bearer"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetUserInfo() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.want != nil && *got != *tt.want {
				t.Errorf("GetUserInfo() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
