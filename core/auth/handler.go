package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/LexLPS/eve-shop/api/web"
	"github.com/LexLPS/eve-shop/api/weberr"
	"github.com/LexLPS/eve-shop/core/claims"
	"github.com/LexLPS/eve-shop/core/user"
	"github.com/LexLPS/eve-shop/validate"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

type SignupNew struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginNew struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func HandleSignup(db *sqlx.DB, session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in SignupNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if _, err := user.FetchByEmail(ctx, db, in.Email); err == nil {
			err := errors.New("email already in use")
			return weberr.NewError(err, err.Error(), http.StatusConflict)
		} else if !errors.Is(err, user.ErrNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		usr := user.User{
			ID:           validate.GenerateID(),
			Email:        in.Email,
			Name:         in.Name,
			Role:         claims.RoleUser,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := user.Create(ctx, db, usr); err != nil {
			return err
		}

		if err := establish(ctx, session, usr.ID, usr.Role); err != nil {
			return err
		}

		return web.Respond(ctx, w, usr, http.StatusCreated)
	}
}

func HandleLogin(db *sqlx.DB, session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in LoginNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		usr, err := user.FetchByEmail(ctx, db, in.Email)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return weberr.NotAuthorized(errors.New("invalid credentials"))
			}
			return err
		}

		if err := bcrypt.CompareHashAndPassword(usr.PasswordHash, []byte(in.Password)); err != nil {
			return weberr.NotAuthorized(errors.New("invalid credentials"))
		}

		if err := establish(ctx, session, usr.ID, usr.Role); err != nil {
			return err
		}

		return web.Respond(ctx, w, usr, http.StatusOK)
	}
}

func HandleLogout(session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := session.Destroy(ctx); err != nil {
			return err
		}
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
