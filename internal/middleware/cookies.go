// internal/middleware/cookies.go
//
// HTTP middleware that binds a per-request cookie.Manager.
//
/*
Context
--------
This handler sits early in the chain, before anything that reads or
writes cookies.  For every request it:

  1. Wraps the ResponseWriter in chi's WrapResponseWriter, so the
     manager's headers-already-sent check can probe the status.
  2. Resolves the host's cookie.Env through site.Resolver (multisite
     lookups are cached; single-site is a constant).
  3. Constructs the Manager and stores it in request context under an
     unexported key, so handlers retrieve it with cookie.FromContext.

Notes
-----
  • The wrapped writer is passed downstream, so later middleware and
    handlers share the same status bookkeeping.
  • Oxford commas, two spaces after periods.
*/
package middleware

import (
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/arraypress/wp-cookie/internal/cookie"
	"github.com/arraypress/wp-cookie/internal/site"
)

// Cookies wraps next with per-request cookie management.
func Cookies(resolver *site.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww, ok := w.(chimw.WrapResponseWriter)
			if !ok {
				ww = chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			}

			env := resolver.EnvFor(r.Context(), stripPort(r.Host))
			m := cookie.New(ww, r, env)

			next.ServeHTTP(ww, r.WithContext(cookie.NewContext(r.Context(), m)))
		})
	}
}

// stripPort removes the :port suffix from Host when present.
func stripPort(h string) string {
	if i := strings.IndexByte(h, ':'); i != -1 {
		return h[:i]
	}
	return h
}
