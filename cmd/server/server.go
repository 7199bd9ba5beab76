package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LexLPS/eve-shop/api"
	"github.com/LexLPS/eve-shop/config"
	"github.com/LexLPS/eve-shop/core/auth"
	"github.com/LexLPS/eve-shop/core/cart"
	"github.com/LexLPS/eve-shop/core/product"
	"github.com/LexLPS/eve-shop/database"
	"github.com/LexLPS/eve-shop/rate"
	"github.com/LexLPS/eve-shop/saleor"
	"github.com/alexedwards/scs/v2"
	"github.com/ardanlabs/conf/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if err := Run(log); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func Run(logger *logrus.Logger) error {
	logger.Infof("starting server")
	defer logger.Info("shutdown complete")

	const prefix = "EVE"
	var cfg config.Config
	if _, err := conf.Parse(prefix, &cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	lw := logger.Writer()
	defer lw.Close()
	errLog := log.New(lw, "", 0)

	db, err := database.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open db connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.StatusCheck(ctx, db); err != nil {
		return fmt.Errorf("db is not ready: %w", err)
	}

	if err := database.Migrate(db, "migrations"); err != nil {
		return fmt.Errorf("migrating db: %w", err)
	}

	mongoDB, err := database.OpenMongo(ctx, cfg.Mongo)
	if err != nil {
		return fmt.Errorf("failed to open mongo connection: %w", err)
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.Session.Lifetime

	catalogue := saleor.NewClient(cfg.Saleor.URL, cfg.Saleor.Channel, cfg.Saleor.Timeout)
	products := product.NewService(product.NewCache(mongoDB), catalogue, logger)
	carts := cart.NewService(cart.NewStore(mongoDB))

	limiter := rate.NewLimiter(cfg.Rate.Burst, cfg.Rate.ExpiryMinutes, cfg.Rate.RPS)

	var oauthProvs map[string]auth.Provider
	if google := cfg.Oauth.Google; google.Client != "" {
		dctx, dcancel := context.WithTimeout(context.Background(), cfg.Oauth.DiscoveryTimeout)
		defer dcancel()

		oauthProvs, err = auth.MakeProviders(dctx, []auth.ProviderConfig{
			{Name: "google", Client: google.Client, Secret: google.Secret, URL: google.URL, RedirectURL: google.RedirectURL},
		})
		if err != nil {
			return fmt.Errorf("failed to discover oauth providers: %w", err)
		}
	}

	mux := api.APIMux(api.APIConfig{
		CorsOrigin:       cfg.Cors.Origin,
		Log:              logger,
		DB:               db,
		Session:          sessionManager,
		Products:         products,
		Carts:            carts,
		ListCount:        cfg.Saleor.ListCount,
		Limiter:          limiter,
		Providers:        oauthProvs,
		LoginRedirectURL: cfg.Oauth.LoginRedirectURL,
	})

	api := http.Server{
		Handler:      mux,
		Addr:         cfg.Web.Address,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     errLog,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Infof("starting api router at %s", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Infof("shutting down: signal %s", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}
	return nil
}
