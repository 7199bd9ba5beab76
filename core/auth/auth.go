package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/LexLPS/eve-shop/api/web"
	"github.com/LexLPS/eve-shop/api/weberr"
	"github.com/LexLPS/eve-shop/core/claims"
	"github.com/alexedwards/scs/v2"
)

const (
	userIDKey = "user_id"
	roleKey   = "role"
)

// LoadAndSave runs every request through the session manager and lifts
// the session's user into request-scoped claims. It must be the first
// middleware in the chain.
func LoadAndSave(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			var err error

			sh := session.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx := r.Context()

				if id := session.GetString(ctx, userIDKey); id != "" {
					ctx = claims.Set(ctx, claims.Claims{
						UserID: id,
						Role:   session.GetString(ctx, roleKey),
					})
				}

				err = handler(ctx, w, r)
			}))

			sh.ServeHTTP(w, r.WithContext(ctx))
			return err
		}
		return h
	}
	return m
}

// Authenticate rejects requests without an authenticated session.
func Authenticate(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if _, err := claims.Get(ctx); err != nil {
				return weberr.NotAuthorized(errors.New("user not authenticated"))
			}
			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

func Admin(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if !claims.IsAdmin(ctx) {
				return weberr.NotAuthorized(errors.New("user is not an admin"))
			}
			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

// establish binds the user to the session, rotating the token to prevent
// session fixation.
func establish(ctx context.Context, session *scs.SessionManager, userID string, role string) error {
	if err := session.RenewToken(ctx); err != nil {
		return err
	}
	session.Put(ctx, userIDKey, userID)
	session.Put(ctx, roleKey, role)
	return nil
}
