package product

import (
	"context"
	"errors"
	"net/http"

	"github.com/LexLPS/eve-shop/api/web"
	"github.com/LexLPS/eve-shop/api/weberr"
)

func HandleList(products *Service, count int) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		listing := products.List(ctx, count)
		return web.Respond(ctx, w, listing, http.StatusOK)
	}
}

func HandleShow(products *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		slug := web.Param(r, "slug")

		p, err := products.Fetch(ctx, slug)
		if err != nil {
			// "truly absent" and "backend unreachable" intentionally
			// look the same to the client.
			if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnavailable) {
				return weberr.NotFound(err)
			}
			return err
		}

		return web.Respond(ctx, w, p, http.StatusOK)
	}
}
