// internal/cookie/cookie.go
//
// Request-scoped cookie manager.
//
/*
Context
--------
`Manager` wraps one request/response exchange and owns every cookie
operation during it: reads come from a name→value map parsed once from
the inbound Cookie header, writes go out as Set-Cookie directives with
hardened defaults (HttpOnly, Secure on TLS, SameSite=Strict).  A write
is mirrored into the inbound map immediately, so a `Get` later in the
same request observes the just-set value; the native header only
reaches us on the *next* request.

The manager is built once per request by middleware.Cookies and stored
in the request context (see context.go).  All state, including the
last-error slot, lives on the Manager, so concurrent requests never
share anything.

Instrumentation
---------------
  • Counters in internal/metrics (set, delete, errors by reason).
  • DEBUG spans via the global sugared logger, gated on Env.Debug.

Notes
-----
  • Values are percent-encoded on the wire and decoded on read, so
    structured payloads (JSON) survive the cookie-octet restrictions.
  • Oxford commas, two spaces after periods.
*/
package cookie

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/arraypress/wp-cookie/internal/metrics"
)

/*──────────────────────────── errors ───────────────────────────────────────*/

var (
	// ErrInvalidName rejects names outside the RFC 6265 token class.
	ErrInvalidName = errors.New("invalid cookie name")

	// ErrHeadersSent means the response status line is already out.
	ErrHeadersSent = errors.New("headers already sent")

	// ErrNotFound is returned by Delete when no such cookie came in.
	ErrNotFound = errors.New("cookie not found")

	// ErrEncode wraps JSON marshalling failures in SetJSON.
	ErrEncode = errors.New("cookie value encoding failed")
)

// nameRE is the RFC 6265 cookie-name token class.
var nameRE = regexp.MustCompile("^[A-Za-z0-9!#$%&'*+\\-.^_`|~]+$")

/*──────────────────────────── environment ──────────────────────────────────*/

// Env carries the deployment facts every request manager needs: base
// URLs, the multisite flag, and the debug flag that gates logging.  It
// is immutable and shared by all requests.
type Env struct {
	SiteURL    *url.URL // current site's base URL
	NetworkURL *url.URL // network root; equals SiteURL when single-site
	Multisite  bool
	Debug      bool
}

/*──────────────────────────── manager ──────────────────────────────────────*/

// Manager is created once per request.  Not safe for concurrent use,
// which matches its one-goroutine-per-request lifecycle.
type Manager struct {
	w       http.ResponseWriter
	env     Env
	https   bool              // TLS or trusted X-Forwarded-Proto
	inbound map[string]string // decoded request cookies + same-request writes
	raw     string            // unparsed Cookie header, for RemainingLifetime
	lastErr error
}

// New parses the request's cookies and binds a Manager to the exchange.
func New(w http.ResponseWriter, r *http.Request, env Env) *Manager {
	inbound := make(map[string]string, len(r.Cookies()))
	for _, c := range r.Cookies() {
		v := c.Value
		if dec, err := url.QueryUnescape(v); err == nil {
			v = dec
		}
		inbound[c.Name] = v
	}
	return &Manager{
		w:       w,
		env:     env,
		https:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
		inbound: inbound,
		raw:     r.Header.Get("Cookie"),
	}
}

/*──────────────────────────── writes ───────────────────────────────────────*/

// Set writes one cookie.  expire is an absolute Unix timestamp; zero
// means a session cookie.  SameSite is always Strict, regardless of the
// caller.  The sanitized value is mirrored into the inbound map so the
// rest of this request reads it back.
func (m *Manager) Set(name, value string, expire int64, path, domain string, secure, httpOnly bool) error {
	if !nameRE.MatchString(name) {
		return m.fail("invalid_name", fmt.Errorf("%w: %q", ErrInvalidName, name))
	}
	if m.headersSent() {
		return m.fail("headers_sent", ErrHeadersSent)
	}

	clean := StripTags(value)
	ck := &http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(clean),
		Path:     path,
		Domain:   domain,
		Secure:   secure,
		HttpOnly: httpOnly,
		SameSite: http.SameSiteStrictMode,
	}
	if expire != 0 {
		ck.Expires = time.Unix(expire, 0)
	}
	http.SetCookie(m.w, ck)

	m.inbound[name] = clean
	metrics.CookiesSetTotal.Inc()
	if m.env.Debug {
		zap.S().Debugw("cookie set",
			"name", name, "expire", expire, "path", path, "domain", domain,
			"secure", secure, "http_only", httpOnly,
		)
	}
	return nil
}

// Delete expires an existing cookie.  path and domain must match the
// original write or the browser silently keeps the cookie; that is the
// caller's contract, not validated here.
func (m *Manager) Delete(name, path, domain string) error {
	if !m.Exists(name) {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(m.inbound, name)

	if path == "" {
		path = "/"
	}
	http.SetCookie(m.w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		Domain:   domain,
		Expires:  time.Now().Add(-time.Hour),
		Secure:   m.https,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	metrics.CookiesDeletedTotal.Inc()
	if m.env.Debug {
		zap.S().Debugw("cookie deleted", "name", name, "path", path, "domain", domain)
	}
	return nil
}

/*──────────────────────────── reads ────────────────────────────────────────*/

// Get returns the inbound value for name, or def when absent.
func (m *Manager) Get(name, def string) string {
	if v, ok := m.inbound[name]; ok {
		return v
	}
	return def
}

// Exists reports whether name arrived with the request (or was set
// earlier in it).
func (m *Manager) Exists(name string) bool {
	_, ok := m.inbound[name]
	return ok
}

// All returns a snapshot copy of the inbound map.
func (m *Manager) All() map[string]string {
	out := make(map[string]string, len(m.inbound))
	for k, v := range m.inbound {
		out[k] = v
	}
	return out
}

// Secure reports whether the underlying connection is encrypted.  Used
// by the option-merging layer as the default for the Secure attribute.
func (m *Manager) Secure() bool { return m.https }

// LastError returns the most recent write-path failure for this
// request, or nil.  It is never cleared on success.
func (m *Manager) LastError() error { return m.lastErr }

/*──────────────────────────── internals ────────────────────────────────────*/

// headersSent probes the chi response-writer wrapper.  Status is zero
// until the first WriteHeader, so a non-zero status means the header
// block is already on the wire and Set-Cookie would be dropped.
func (m *Manager) headersSent() bool {
	if ww, ok := m.w.(chimw.WrapResponseWriter); ok {
		return ww.Status() != 0
	}
	return false
}

// fail records err in the last-error slot, counts it, and returns it.
func (m *Manager) fail(reason string, err error) error {
	m.lastErr = err
	metrics.CookieErrorsTotal.WithLabelValues(reason).Inc()
	if m.env.Debug {
		zap.S().Debugw("cookie error", "reason", reason, "err", err)
	}
	return err
}
