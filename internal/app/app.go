// Package app assembles the client: credential store, shared HTTP
// client, the three scope session managers, and the geographic
// reference client. Everything is constructed once at startup and
// passed to consumers explicitly; there are no package-level
// singletons.
package app

import (
	"context"
	"fmt"

	"github.com/SanOuhi99/RECT-v3-sub000/internal/common/config"
	chttp "github.com/SanOuhi99/RECT-v3-sub000/internal/common/http"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/common/logger"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/credstore"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/geo"
	"github.com/SanOuhi99/RECT-v3-sub000/internal/session"
)

// App is the wired application context.
type App struct {
	Config *config.Config
	Log    logger.Logger
	Store  credstore.Store

	Users     *session.UserManager
	Companies *session.CompanyManager
	Admins    *session.AdminManager

	Geo *geo.ReferenceClient

	redisStore *credstore.RedisStore
}

// New builds the application context from configuration. The returned
// App owns the credential store connection; call Close on shutdown.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}

	switch cfg.Storage.Backend {
	case "redis":
		rs := credstore.NewRedisStore(cfg.Storage.Redis)
		if err := rs.Ping(ctx); err != nil {
			return nil, fmt.Errorf("connect credential store redis: %w", err)
		}
		a.redisStore = rs
		a.Store = rs
	default:
		a.Store = credstore.NewFileStore(cfg.Storage.Path)
	}

	client := chttp.NewClient(config.GetDuration(cfg.API.Timeout))
	baseURL := cfg.API.BaseURL

	a.Users = session.NewUserManager(baseURL, client, a.Store, log)
	a.Companies = session.NewCompanyManager(baseURL, client, a.Store, log)
	a.Admins = session.NewAdminManager(baseURL, client, a.Store, log)
	a.Geo = geo.NewReferenceClient(baseURL, client, log)

	log.Info("Application context built", map[string]interface{}{
		"base_url": baseURL,
		"storage":  cfg.Storage.Backend,
	})
	return a, nil
}

// Initialize restores any persisted sessions for all three scopes.
// Restoration failures degrade to the logged-out state per scope and
// are not fatal.
func (a *App) Initialize(ctx context.Context) {
	a.Users.Initialize(ctx)
	a.Companies.Initialize(ctx)
	a.Admins.Initialize(ctx)
}

// Close releases the credential store connection if it holds one.
func (a *App) Close() error {
	if a.redisStore != nil {
		return a.redisStore.Close()
	}
	return nil
}
