package instagram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/HUNTSTAR747/referred-space-server/pkg/config"
)

func testConfig(tokenURL, graphURL string) config.InstagramConfig {
	return config.InstagramConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "https://referred.space/auth/instagram/callback",
		AuthorizeURL: "https://api.instagram.com/oauth/authorize",
		TokenURL:     tokenURL,
		GraphURL:     graphURL,
	}
}

func TestNewClientRequiresCredentials(t *testing.T) {
	cfg := testConfig("https://x", "https://y")
	cfg.ClientID = ""
	if _, err := NewClient(cfg, nil); err == nil {
		t.Fatalf("expected error for missing client id")
	}

	cfg = testConfig("https://x", "https://y")
	cfg.RedirectURI = " "
	if _, err := NewClient(cfg, nil); err == nil {
		t.Fatalf("expected error for missing redirect uri")
	}
}

func TestAuthorizeURLCarriesOAuthParams(t *testing.T) {
	client, err := NewClient(testConfig("https://x", "https://y"), nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	raw := client.AuthorizeURL()
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse authorize url: %v", err)
	}
	q := parsed.Query()
	if q.Get("client_id") != "client-id" {
		t.Fatalf("missing client_id in %q", raw)
	}
	if q.Get("response_type") != "code" {
		t.Fatalf("missing response_type in %q", raw)
	}
	if q.Get("scope") == "" {
		t.Fatalf("missing scope in %q", raw)
	}
}

func TestExchangeCodePostsForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.PostForm.Get("code") != "abc123" || r.PostForm.Get("grant_type") != "authorization_code" {
			t.Errorf("unexpected form %v", r.PostForm)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok","user_id":17841400000000000}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL, "https://unused"), nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	token, err := client.ExchangeCode(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("exchange code: %v", err)
	}
	if token.AccessToken != "tok" {
		t.Fatalf("unexpected token %+v", token)
	}
}

func TestExchangeCodeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_message":"Invalid authorization code"}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL, "https://unused"), nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.ExchangeCode(context.Background(), "expired"); err == nil {
		t.Fatalf("expected error for upstream 400")
	}
}

func TestFetchProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/me") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("fields") != "id,username" || q.Get("access_token") != "tok" {
			t.Errorf("unexpected query %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"17841400000000000","username":"jane"}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig("https://unused", server.URL), nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	profile, err := client.FetchProfile(context.Background(), "tok")
	if err != nil {
		t.Fatalf("fetch profile: %v", err)
	}
	if profile.Username != "jane" || profile.ID != "17841400000000000" {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestFetchProfileRequiresToken(t *testing.T) {
	client, err := NewClient(testConfig("https://x", "https://y"), nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.FetchProfile(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty token")
	}
}
