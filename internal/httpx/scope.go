package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/session"
	"github.com/Tharindu-Theekshana/gadgethub-storefront/internal/workflow"
	"github.com/google/uuid"
)

// Backend is everything the storefront asks of the REST API;
// *gateway.Client satisfies it.
type Backend interface {
	session.Authenticator
	workflow.Gateway
}

// Stores are the per-browser-session stores.
type Stores struct {
	Session session.Store
	Drafts  workflow.Drafts
}

// StoreFactory opens the stores of the browser session sid.
type StoreFactory func(sid string) Stores

type scope struct {
	sid     string
	session *session.Session
	flow    *workflow.Workflow
}

type scopeKey struct{}

func scopeFrom(ctx context.Context) *scope {
	s, _ := ctx.Value(scopeKey{}).(*scope)
	return s
}

// withSession resolves (or issues) the session cookie and builds the
// request's Session and Workflow around that browser session's stores.
func (h *StorefrontHandler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if c, err := r.Cookie(h.cookieName()); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				sid = c.Value
			}
		}
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     h.cookieName(),
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(h.sessionTTL().Seconds()),
			})
		}

		stores := h.Stores(sid)
		sess := session.New(h.API, stores.Session, h.log())
		if _, err := sess.Restore(r.Context()); err != nil {
			h.log().Warn("session restore failed, continuing anonymous", "error", err)
		}
		flow := workflow.New(h.API, sess, workflow.Options{
			Board:    h.Board,
			Drafts:   stores.Drafts,
			Events:   h.Events,
			Now:      h.Now,
			Producer: h.Service,
			Logger:   h.log(),
		})
		ctx := context.WithValue(r.Context(), scopeKey{}, &scope{sid: sid, session: sess, flow: flow})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *StorefrontHandler) cookieName() string {
	if h.Cookie != "" {
		return h.Cookie
	}
	return "gh_sid"
}

func (h *StorefrontHandler) sessionTTL() time.Duration {
	if h.SessionTTL > 0 {
		return h.SessionTTL
	}
	return 24 * time.Hour
}

func (h *StorefrontHandler) log() *slog.Logger {
	if h.Log != nil {
		return h.Log
	}
	return slog.Default()
}
