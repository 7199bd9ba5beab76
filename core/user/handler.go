package user

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/LexLPS/eve-shop/api/web"
	"github.com/LexLPS/eve-shop/api/weberr"
	"github.com/LexLPS/eve-shop/core/claims"
	"github.com/LexLPS/eve-shop/validate"
	"github.com/jmoiron/sqlx"
)

func HandleShowCurrent(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		usr, err := Fetch(ctx, db, clm.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		return web.Respond(ctx, w, usr, http.StatusOK)
	}
}

func HandleUpdateCurrent(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var up ProfileUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		usr, err := Fetch(ctx, db, clm.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return err
		}

		if up.Name != nil {
			usr.Name = *up.Name
		}
		if up.LongTermPatient != nil {
			usr.LongTermPatient = *up.LongTermPatient
		}
		if up.HospitalName != nil {
			usr.HospitalName = *up.HospitalName
		}
		if up.RoomNumber != nil {
			usr.RoomNumber = *up.RoomNumber
		}
		if up.PreferredVRMode != nil {
			usr.PreferredVRMode = *up.PreferredVRMode
		}
		usr.UpdatedAt = time.Now().UTC()

		if err := Update(ctx, db, usr); err != nil {
			return err
		}

		return web.Respond(ctx, w, usr, http.StatusOK)
	}
}
