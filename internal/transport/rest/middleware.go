package rest

import (
	"context"
	"net/http"
	"strings"

	sferrors "github.com/abgdnv/storefront/internal/errors"
	"github.com/abgdnv/storefront/internal/identity"
	"github.com/abgdnv/storefront/internal/session"
	"github.com/abgdnv/storefront/pkg/logger"
	"github.com/abgdnv/storefront/pkg/web"
)

// SessionTokenHeader carries the token of a newly created session for clients without cookies.
const SessionTokenHeader = "X-Session-Token"

type sessionKey struct{}

// SessionFrom returns the session resolved by SessionMiddleware.
func SessionFrom(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionKey{}).(*session.Session)
	return s
}

// ResolveSession attaches the session named by the session cookie or a bearer token.
// It never creates a session, so handlers behind it may see no session at all.
func (h *Handler) ResolveSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s := h.resolveSession(r); s != nil {
			r = r.WithContext(withSession(r.Context(), s))
		}
		next.ServeHTTP(w, r)
	})
}

// SessionMiddleware makes sure the request has a session. The session attached by
// ResolveSession is reused; otherwise the token is resolved here and requests without a
// valid token get a new guest session and a fresh token.
func (h *Handler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFrom(r.Context()) != nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := r.Context()
		s := h.resolveSession(r)
		if s == nil {
			var err error
			s, err = h.startSession(w)
			if err != nil {
				h.logger.ErrorContext(ctx, "Failed to start session", "error", err)
				web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to start session")
				return
			}
			h.logger.DebugContext(logger.WithSessionID(ctx, s.ID), "Started new session")
		}
		next.ServeHTTP(w, r.WithContext(withSession(ctx, s)))
	})
}

func withSession(ctx context.Context, s *session.Session) context.Context {
	ctx = context.WithValue(ctx, sessionKey{}, s)
	return logger.WithSessionID(ctx, s.ID)
}

func (h *Handler) resolveSession(r *http.Request) *session.Session {
	token := bearerToken(r)
	if token == "" {
		c, err := r.Cookie(h.cookie.CookieName)
		if err != nil {
			return nil
		}
		token = c.Value
	}
	id, err := h.tokens.Verify(r.Context(), token)
	if err != nil {
		h.logger.DebugContext(r.Context(), "Ignoring session token", "error", err)
		return nil
	}
	s, err := h.sessions.Get(id)
	if err != nil {
		h.logger.DebugContext(r.Context(), "Session expired", "error", err)
		return nil
	}
	return s
}

func (h *Handler) startSession(w http.ResponseWriter) (*session.Session, error) {
	s := h.sessions.Create()
	token, err := h.tokens.Sign(s.ID)
	if err != nil {
		h.sessions.Delete(s.ID)
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookie.TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set(SessionTokenHeader, token)
	return s, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAuth rejects guests with 401.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := SessionFrom(r.Context())
		if s == nil || s.Identity.State().Kind() != identity.KindAuthenticated {
			h.logger.WarnContext(r.Context(), "Authentication required", "path", r.URL.Path)
			web.RespondError(w, h.logger, http.StatusUnauthorized, sferrors.ErrAuthenticationRequired.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects identities without the admin role with 403.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := SessionFrom(r.Context())
		if s == nil || !s.Identity.State().HasRole(identity.RoleAdmin) {
			h.logger.WarnContext(r.Context(), "Access denied", "path", r.URL.Path)
			web.RespondError(w, h.logger, http.StatusForbidden, sferrors.ErrAccessDenied.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}
