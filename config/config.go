package config

import (
	"time"
)

type Config struct {
	Web     Web
	Cors    Cors
	DB      DB
	Mongo   Mongo
	Saleor  Saleor
	Session Session
	Oauth   Oauth
	Rate    Rate
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:4000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type Cors struct {
	Origin string
}

type DB struct {
	User       string `conf:"default:postgres"`
	Password   string `conf:"default:postgres,mask"`
	Host       string `conf:"default:localhost"`
	Name       string `conf:"default:eve"`
	DisableTLS bool   `conf:"default:true"`
}

type Mongo struct {
	URI      string `conf:"default:mongodb://localhost:27017"`
	Database string `conf:"default:eve"`
}

// Saleor points the catalogue client at the headless commerce API.
// An empty URL leaves the client unconfigured and every fetch fails
// with saleor.ErrNotConfigured.
type Saleor struct {
	URL       string
	Channel   string        `conf:"default:default-channel"`
	Timeout   time.Duration `conf:"default:10s"`
	ListCount int           `conf:"default:20"`
}

type Session struct {
	Lifetime time.Duration `conf:"default:24h"`
}

type Oauth struct {
	DiscoveryTimeout time.Duration `conf:"default:30s"`
	LoginRedirectURL string        `conf:"default:/"`
	Google           OauthProvider
}

type OauthProvider struct {
	Client      string
	Secret      string `conf:"mask"`
	URL         string `conf:"default:https://accounts.google.com"`
	RedirectURL string
}

type Rate struct {
	Burst         int     `conf:"default:20"`
	ExpiryMinutes int     `conf:"default:10"`
	RPS           float64 `conf:"default:10"`
}
