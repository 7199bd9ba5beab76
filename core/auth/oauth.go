package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/LexLPS/eve-shop/api/web"
	"github.com/LexLPS/eve-shop/api/weberr"
	"github.com/LexLPS/eve-shop/core/claims"
	"github.com/LexLPS/eve-shop/core/user"
	"github.com/LexLPS/eve-shop/random"
	"github.com/LexLPS/eve-shop/validate"
	"github.com/alexedwards/scs/v2"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jmoiron/sqlx"
	"golang.org/x/oauth2"
)

const stateKey = "oauth_state"

type ProviderConfig struct {
	Name        string
	Client      string
	Secret      string
	URL         string
	RedirectURL string
}

type Provider struct {
	conf     oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// MakeProviders discovers the configured OIDC issuers and builds the
// oauth clients for them.
func MakeProviders(ctx context.Context, cfgs []ProviderConfig) (map[string]Provider, error) {
	providers := make(map[string]Provider, len(cfgs))

	for _, cfg := range cfgs {
		prov, err := oidc.NewProvider(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("discovering provider %q: %w", cfg.Name, err)
		}

		providers[cfg.Name] = Provider{
			conf: oauth2.Config{
				ClientID:     cfg.Client,
				ClientSecret: cfg.Secret,
				Endpoint:     prov.Endpoint(),
				RedirectURL:  cfg.RedirectURL,
				Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
			},
			verifier: prov.Verifier(&oidc.Config{ClientID: cfg.Client}),
		}
	}

	return providers, nil
}

func HandleOauthLogin(session *scs.SessionManager, providers map[string]Provider) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		name := web.Param(r, "provider")

		prov, ok := providers[name]
		if !ok {
			return weberr.NotFound(fmt.Errorf("unknown oauth provider %q", name))
		}

		state := random.String(32)
		session.Put(ctx, stateKey, state)

		http.Redirect(w, r, prov.conf.AuthCodeURL(state), http.StatusTemporaryRedirect)
		return nil
	}
}

func HandleOauthCallback(db *sqlx.DB, session *scs.SessionManager, providers map[string]Provider, loginRedirectURL string) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		name := web.Param(r, "provider")

		prov, ok := providers[name]
		if !ok {
			return weberr.NotFound(fmt.Errorf("unknown oauth provider %q", name))
		}

		state := session.PopString(ctx, stateKey)
		if state == "" || state != r.URL.Query().Get("state") {
			return weberr.BadRequest(errors.New("oauth state mismatch"))
		}

		token, err := prov.conf.Exchange(ctx, r.URL.Query().Get("code"))
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("exchanging oauth code: %w", err))
		}

		rawID, ok := token.Extra("id_token").(string)
		if !ok {
			return weberr.BadRequest(errors.New("token response misses id_token"))
		}

		idToken, err := prov.verifier.Verify(ctx, rawID)
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("verifying id token: %w", err))
		}

		var idClaims struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		}
		if err := idToken.Claims(&idClaims); err != nil {
			return weberr.BadRequest(fmt.Errorf("parsing id token claims: %w", err))
		}

		usr, err := user.FetchByEmail(ctx, db, idClaims.Email)
		if errors.Is(err, user.ErrNotFound) {
			now := time.Now().UTC()
			usr = user.User{
				ID:        validate.GenerateID(),
				Email:     idClaims.Email,
				Name:      idClaims.Name,
				Role:      claims.RoleUser,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := user.Create(ctx, db, usr); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if err := establish(ctx, session, usr.ID, usr.Role); err != nil {
			return err
		}

		http.Redirect(w, r, loginRedirectURL, http.StatusTemporaryRedirect)
		return nil
	}
}
