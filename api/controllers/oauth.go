package controllers

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/HUNTSTAR747/referred-space-server/api/responses"
	"github.com/HUNTSTAR747/referred-space-server/internal/oauth"
	"github.com/HUNTSTAR747/referred-space-server/internal/sessions"
	"github.com/HUNTSTAR747/referred-space-server/pkg/config"
	pkgerrors "github.com/HUNTSTAR747/referred-space-server/pkg/errors"
	"github.com/HUNTSTAR747/referred-space-server/pkg/logger"
)

const oauthSuccessPath = "/oauth/success"

var successPage = template.Must(template.New("oauth_success").Parse(`<!DOCTYPE html>
<html>
<head><title>Connected</title></head>
<body>
<h1>Instagram connected</h1>
{{if .Handle}}<p>Welcome, @{{.Handle}}. You can close this window.</p>
{{else}}<p>Your account is linked. You can close this window.</p>{{end}}
</body>
</html>
`))

// OAuthAuthorize redirects the browser to the Instagram consent screen.
// A nil service means the OAuth credentials are absent, so the route
// degrades to a configuration error instead of blocking startup.
func OAuthAuthorize(svc oauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeConfig, "Instagram OAuth not configured")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		http.Redirect(w, r, svc.AuthorizeURL(), http.StatusFound)
	}
}

// OAuthCallback finishes the code exchange, persists the creator, and hands
// the browser a session cookie before redirecting to the success page.
func OAuthCallback(svc oauth.Service, store *sessions.Store, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeConfig, "Instagram OAuth not configured")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		code := strings.TrimSpace(r.URL.Query().Get("code"))
		if code == "" {
			err := pkgerrors.New(pkgerrors.CodeValidation, "authorization code is required")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, err := svc.HandleCallback(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sid, err := sessions.NewSID()
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create session"))
			return
		}
		if store != nil {
			if err := store.Put(r.Context(), sid, *sess); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store session"))
				return
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cfg.CookieName,
			Value:    sid,
			Path:     "/",
			MaxAge:   int(cfg.TTL.Seconds()),
			HttpOnly: true,
			Secure:   cfg.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(w, r, oauthSuccessPath, http.StatusFound)
	}
}

// OAuthSuccess renders the post-link landing page, greeting the creator when
// their session cookie resolves.
func OAuthSuccess(store *sessions.Store, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var handle string
		if store != nil {
			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				sess, err := store.Get(r.Context(), cookie.Value)
				if err != nil && logg != nil {
					logg.Error(r.Context(), "load oauth session", err)
				}
				if sess != nil {
					handle = sess.InstagramHandle
				}
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if err := successPage.Execute(w, struct{ Handle string }{Handle: handle}); err != nil && logg != nil {
			logg.Error(r.Context(), "render oauth success", fmt.Errorf("execute template: %w", err))
		}
	}
}
