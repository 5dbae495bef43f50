// internal/site/resolver.go
//
// Host → cookie.Env resolution.
//
/*
Context
--------
Every request needs a cookie.Env: the site base URL (for site-scoped
cookie paths), the network root (for network-scoped cookie domains),
and the multisite and debug flags.  Single-site installs derive one Env
straight from config and reuse it for every host.  Multisite installs
look the host up in the `site` table, lazily, and cache the resulting
Env; a singleflight group collapses concurrent first hits on the same
host into one query.

Unknown or unresolvable hosts fall back to the config-derived base Env,
so the cookie layer never blocks a request on site-table trouble; the
failure is counted and logged instead.

Notes
-----
  • Cache entries live for the process lifetime.  Site rows change
    rarely, and a stale path only widens a cookie's scope to "/".
  • Oxford commas, two spaces after periods.
*/
package site

import (
	"context"
	"net/url"
	"sync"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/arraypress/wp-cookie/internal/config"
	"github.com/arraypress/wp-cookie/internal/cookie"
	"github.com/arraypress/wp-cookie/internal/metrics"
)

// Resolver maps request hosts to cookie environments.
type Resolver struct {
	base cookie.Env
	db   *sqlx.DB // nil on single-site installs
	sfg  singleflight.Group

	mu    sync.RWMutex
	cache map[string]cookie.Env
}

// NewResolver builds the base Env from cfg and, in multisite mode,
// wires the optional site-table pool for per-host lookups.
func NewResolver(cfg *config.Config, db *sqlx.DB) (*Resolver, error) {
	siteURL, err := url.Parse(cfg.Site.URL)
	if err != nil {
		return nil, err
	}
	networkURL := siteURL
	if cfg.Site.NetworkURL != "" {
		networkURL, err = url.Parse(cfg.Site.NetworkURL)
		if err != nil {
			return nil, err
		}
	}

	return &Resolver{
		base: cookie.Env{
			SiteURL:    siteURL,
			NetworkURL: networkURL,
			Multisite:  cfg.Site.Multisite,
			Debug:      cfg.Cookie.Debug,
		},
		db:    db,
		cache: make(map[string]cookie.Env),
	}, nil
}

// Base returns the config-derived Env, which is also the fallback for
// hosts the site table does not know.
func (r *Resolver) Base() cookie.Env { return r.base }

// EnvFor returns the Env for host.  Single-site, or multisite without a
// site-table pool, always returns the base Env.
func (r *Resolver) EnvFor(ctx context.Context, host string) cookie.Env {
	if !r.base.Multisite || r.db == nil {
		return r.base
	}

	r.mu.RLock()
	if env, ok := r.cache[host]; ok {
		r.mu.RUnlock()
		return env
	}
	r.mu.RUnlock()

	v, err, _ := r.sfg.Do(host, func() (interface{}, error) {
		// Double-check after the singleflight barrier.
		r.mu.RLock()
		if env, ok := r.cache[host]; ok {
			r.mu.RUnlock()
			return env, nil
		}
		r.mu.RUnlock()

		rec, err := ByHost(ctx, r.db, host)
		if err != nil {
			metrics.SiteLoadErrorsTotal.Inc()
			return nil, err
		}
		env := r.envFromRecord(rec)

		r.mu.Lock()
		r.cache[host] = env
		r.mu.Unlock()
		metrics.SiteLoadTotal.Inc()
		return env, nil
	})
	if err != nil {
		zap.S().Debugw("site lookup failed, using base env", "host", host, "err", err)
		return r.base
	}
	return v.(cookie.Env)
}

// envFromRecord builds a per-site Env, inheriting the scheme from the
// base URLs.
func (r *Resolver) envFromRecord(rec *Record) cookie.Env {
	path := rec.Path
	if path == "" {
		path = "/"
	}
	siteURL := &url.URL{Scheme: r.base.SiteURL.Scheme, Host: rec.Host, Path: path}

	networkHost := rec.NetworkHost
	if networkHost == "" {
		networkHost = r.base.NetworkURL.Host
	}
	networkURL := &url.URL{Scheme: r.base.NetworkURL.Scheme, Host: networkHost, Path: "/"}

	return cookie.Env{
		SiteURL:    siteURL,
		NetworkURL: networkURL,
		Multisite:  true,
		Debug:      r.base.Debug,
	}
}
