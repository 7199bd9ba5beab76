package cart

import (
	"context"
	"errors"
	"net/http"

	"github.com/LexLPS/eve-shop/api/web"
	"github.com/LexLPS/eve-shop/api/weberr"
	"github.com/LexLPS/eve-shop/core/claims"
	"github.com/LexLPS/eve-shop/core/product"
	"github.com/LexLPS/eve-shop/validate"
	"github.com/sirupsen/logrus"
)

type cartView struct {
	Cart
	Total product.Money `json:"total"`
}

func view(c Cart) cartView {
	return cartView{Cart: c, Total: Total(c)}
}

func HandleShow(carts *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		c, err := carts.GetOrCreate(ctx, clm.UserID)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, view(c), http.StatusOK)
	}
}

// HandleCreateItem adds a product to the cart, re-resolving its pricing
// through the retrieval flow. A product that cannot be resolved is logged
// and swallowed: the client proceeds as if the add succeeded.
func HandleCreateItem(carts *Service, products *product.Service, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(err)
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		p, err := products.Fetch(ctx, in.Slug)
		if err != nil {
			log.WithField("message", err).Warnf("adding product[%s] to cart", in.Slug)
			return web.Respond(ctx, w, nil, http.StatusNoContent)
		}

		c, err := carts.AddItem(ctx, clm.UserID, p, in.Quantity)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, view(c), http.StatusOK)
	}
}

func HandleDeleteItem(carts *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		productID := web.Param(r, "product_id")

		c, err := carts.RemoveItem(ctx, clm.UserID, productID)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, view(c), http.StatusOK)
	}
}

func HandleDelete(carts *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		if err := carts.Clear(ctx, clm.UserID); err != nil {
			return err
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
