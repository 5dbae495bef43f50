// cmd/web/main.go
//
// wp-cookie – HTTP entry point.
//
// Request life-cycle
// ------------------
//
//  1. Load env vars (jail-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load config (koanf layers + validation); cookie.debug lowers the
//     log level so per-cookie spans surface.
//
//  4. Open the multisite `site` table pool when a DSN is configured;
//     single-site installs run without one.
//
//  5. Build the host → cookie.Env resolver.
//
//  6. Assemble the chi router:
//
//     • middleware.Security           – hardened response headers
//     • middleware.Cookies(resolver)  – per-request cookie.Manager
//     • /metrics                      – Prometheus registry
//     • /cookies…                     – handlers exercising the manager
//     • /login, /logout, /whoami      – session stub
//
//  7. Wrap with ForceHTTPS when configured, and serve under an errgroup
//     so SIGINT/SIGTERM drains connections before exit.
//
// Large comment blocks are framed by blank “//” lines; inline comments
// use a single “//”.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arraypress/wp-cookie/internal/config"
	"github.com/arraypress/wp-cookie/internal/cookie"
	"github.com/arraypress/wp-cookie/internal/database"
	"github.com/arraypress/wp-cookie/internal/logger"
	"github.com/arraypress/wp-cookie/internal/middleware"
	"github.com/arraypress/wp-cookie/internal/server"
	"github.com/arraypress/wp-cookie/internal/session"
	"github.com/arraypress/wp-cookie/internal/site"
)

const serverEnvPath = "/usr/local/etc/wp-cookie/global.env"

// loadEnv prefers the jail-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	//
	// ── 0.  Config + logger ─────────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Root, runningInTTY(), cfg.Cookie.Debug)
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	//
	// ── 1.  Site table pool (multisite only) ────────────────────────────
	//
	resolver, err := buildResolver(cfg, logOut)
	if err != nil {
		logOut.Fatalw("build resolver", "err", err)
	}

	//
	// ── 2.  Router ──────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(middleware.Security)
	r.Use(middleware.Cookies(resolver))

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/cookies", listCookies)
	r.Post("/cookies/{name}", setCookie)
	r.Delete("/cookies/{name}", deleteCookie)

	r.Post("/login", login)
	r.Post("/logout", logout)
	r.Get("/whoami", whoami)

	var handler http.Handler = r
	if cfg.HTTP.ForceHTTPS {
		handler = middleware.ForceHTTPS(handler)
	}

	//
	// ── 3.  Serve with graceful shutdown ───────────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, handler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return srv.Shutdown(context.Background())
	})
	if err := g.Wait(); err != nil {
		logOut.Fatalw("http server", "err", err)
	}
}

// buildResolver opens the site-table pool when configured and wires the
// host resolver.  A missing DSN is fine; multisite then serves every
// host from the config-derived base Env.
func buildResolver(cfg *config.Config, logOut *zap.SugaredLogger) (*site.Resolver, error) {
	if cfg.Database.SiteDSN == "" {
		return site.NewResolver(cfg, nil)
	}
	dsn := cfg.Database.SiteDSN
	if cfg.Database.SitePassword != "" {
		// DSN templates carry one %s verb for the secret portion.
		dsn = fmt.Sprintf(dsn, cfg.Database.SitePassword)
	}
	db, err := database.Open(dsn)
	if err != nil {
		return nil, err
	}
	logOut.Infow("site table online")
	active, _ := site.AllActive(db)
	logOut.Infow("active sites", "count", len(active))
	return site.NewResolver(cfg, db)
}

/*──────────────────────────── demo handlers ────────────────────────────────*/

// listCookies dumps the inbound cookie map.
func listCookies(w http.ResponseWriter, r *http.Request) {
	m := cookie.FromContext(r.Context())
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(m.All())
}

// setCookie writes one cookie from form values.  value is required;
// scope=site|network picks the multisite preset.
func setCookie(w http.ResponseWriter, r *http.Request) {
	m := cookie.FromContext(r.Context())
	name := chi.URLParam(r, "name")
	value := r.FormValue("value")

	var err error
	switch r.FormValue("scope") {
	case "site":
		err = m.SetSiteCookie(name, value, cookie.Options{})
	case "network":
		err = m.SetNetworkCookie(name, value, cookie.Options{})
	default:
		err = m.SetSecure(name, value, cookie.Options{})
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteCookie expires one cookie at the caller's path/domain.
func deleteCookie(w http.ResponseWriter, r *http.Request) {
	m := cookie.FromContext(r.Context())
	err := m.Delete(chi.URLParam(r, "name"), r.FormValue("path"), r.FormValue("domain"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// login / logout / whoami exercise the session stub.
func login(w http.ResponseWriter, r *http.Request) {
	if err := session.LoginUser(r, r.FormValue("email")); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func logout(w http.ResponseWriter, r *http.Request) {
	if err := session.LogoutUser(r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func whoami(w http.ResponseWriter, r *http.Request) {
	email, ok := session.CurrentEmail(r)
	if !ok {
		http.Error(w, "not logged in", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"email": email})
}
