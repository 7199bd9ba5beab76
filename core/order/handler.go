package order

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/LexLPS/eve-shop/api/web"
	"github.com/LexLPS/eve-shop/api/weberr"
	"github.com/LexLPS/eve-shop/core/cart"
	"github.com/LexLPS/eve-shop/core/claims"
	"github.com/LexLPS/eve-shop/validate"
	"github.com/jmoiron/sqlx"
)

// HandleCheckout turns the current cart into a recorded order. The remote
// order identifier is generated locally: the headless backend's checkout
// mutation is out of scope and the record keeps the shape it would fill.
func HandleCheckout(db *sqlx.DB, carts *cart.Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		c, err := carts.GetOrCreate(ctx, clm.UserID)
		if err != nil {
			return err
		}

		if len(c.Items) == 0 {
			err := errors.New("no items to checkout")
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		total := cart.Total(c)
		ord := Order{
			ID:          validate.GenerateID(),
			UserID:      clm.UserID,
			RemoteID:    "SO-" + validate.GenerateID(),
			TotalAmount: total.Amount,
			Currency:    total.Currency,
			Status:      Created,
			CreatedAt:   time.Now().UTC(),
		}

		if err := Create(ctx, db, ord); err != nil {
			return err
		}

		if err := carts.Clear(ctx, clm.UserID); err != nil {
			return err
		}

		return web.Respond(ctx, w, ord, http.StatusCreated)
	}
}

func HandleHistory(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		orders, err := FetchByUser(ctx, db, clm.UserID)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, orders, http.StatusOK)
	}
}
