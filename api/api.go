package api

import (
	"context"
	"net/http"

	"github.com/LexLPS/eve-shop/api/middleware"
	"github.com/LexLPS/eve-shop/api/web"
	"github.com/LexLPS/eve-shop/core/auth"
	"github.com/LexLPS/eve-shop/core/cart"
	"github.com/LexLPS/eve-shop/core/contact"
	"github.com/LexLPS/eve-shop/core/order"
	"github.com/LexLPS/eve-shop/core/product"
	"github.com/LexLPS/eve-shop/core/user"
	"github.com/LexLPS/eve-shop/rate"
	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin       string
	Log              logrus.FieldLogger
	DB               *sqlx.DB
	Session          *scs.SessionManager
	Products         *product.Service
	Carts            *cart.Service
	ListCount        int
	Limiter          *rate.Limiter
	Providers        map[string]auth.Provider
	LoginRedirectURL string
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, auth.LoadAndSave(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.Limiter != nil {
		a.mw = append(a.mw, middleware.RateLimit(cfg.Limiter))
	}

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	authen := auth.Authenticate(cfg.Session)

	a.Handle(http.MethodPost, "/auth/signup", auth.HandleSignup(cfg.DB, cfg.Session))
	a.Handle(http.MethodPost, "/auth/login", auth.HandleLogin(cfg.DB, cfg.Session))
	a.Handle(http.MethodPost, "/auth/logout", auth.HandleLogout(cfg.Session))
	a.Handle(http.MethodGet, "/auth/oauth-login/{provider}", auth.HandleOauthLogin(cfg.Session, cfg.Providers))
	a.Handle(http.MethodGet, "/auth/oauth-callback/{provider}", auth.HandleOauthCallback(cfg.DB, cfg.Session, cfg.Providers, cfg.LoginRedirectURL))

	a.Handle(http.MethodGet, "/users/current", user.HandleShowCurrent(cfg.DB), authen)
	a.Handle(http.MethodPut, "/users/current", user.HandleUpdateCurrent(cfg.DB), authen)

	a.Handle(http.MethodGet, "/products", product.HandleList(cfg.Products, cfg.ListCount))
	a.Handle(http.MethodGet, "/products/{slug}", product.HandleShow(cfg.Products))

	a.Handle(http.MethodGet, "/cart", cart.HandleShow(cfg.Carts), authen)
	a.Handle(http.MethodDelete, "/cart", cart.HandleDelete(cfg.Carts), authen)
	a.Handle(http.MethodPut, "/cart/items", cart.HandleCreateItem(cfg.Carts, cfg.Products, cfg.Log), authen)
	a.Handle(http.MethodDelete, "/cart/items/{product_id}", cart.HandleDeleteItem(cfg.Carts), authen)

	a.Handle(http.MethodPost, "/checkout", order.HandleCheckout(cfg.DB, cfg.Carts), authen)
	a.Handle(http.MethodGet, "/orders", order.HandleHistory(cfg.DB), authen)

	a.Handle(http.MethodPost, "/contact", contact.HandleCreate(cfg.DB))

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
