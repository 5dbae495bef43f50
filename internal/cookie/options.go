// internal/cookie/options.go
//
// Option merging, hardened presets, and batch operations.
//
// Context
//   SetSecure is the everyday write path: callers hand over a name, a
//   value, and whichever attributes they care about; everything else is
//   filled from hardened defaults (30-day expiry, site-wide path,
//   Secure on TLS, HttpOnly).  The site/network variants only differ in
//   a multisite deployment, where they pin the cookie to the current
//   site's path or to the network root domain.  SetPrefixed applies the
//   browser security-prefix naming convention on top.
//
//   Batch operations attempt every element and join the failures, so a
//   bad name in the middle never blocks the rest of the batch.
//
//------------------------------------------------------------------------------

package cookie

import (
	"errors"
)

// Name prefixes applied by SetPrefixed, outermost first.
const (
	PrefixHost   = "__Host-"
	PrefixSecure = "__Secure-"
	PrefixWP     = "wp_"
)

// Options are the caller-adjustable cookie attributes.  Zero values
// mean "use the default": nil Secure/HttpOnly pointers keep the merge
// from conflating "unset" with "false".
type Options struct {
	Expire   int64  // absolute Unix seconds; 0 → 30 days from now
	Path     string // "" → "/"
	Domain   string
	Secure   *bool // nil → true iff the connection is HTTPS
	HttpOnly *bool // nil → true
}

// Bool returns a pointer for literal option flags:  Options{Secure: cookie.Bool(true)}.
func Bool(v bool) *bool { return &v }

// SetSecure merges o over the hardened defaults and delegates to Set.
func (m *Manager) SetSecure(name, value string, o Options) error {
	expire := o.Expire
	if expire == 0 {
		expire = Days(30)
	}
	path := o.Path
	if path == "" {
		path = "/"
	}
	secure := m.https
	if o.Secure != nil {
		secure = *o.Secure
	}
	httpOnly := true
	if o.HttpOnly != nil {
		httpOnly = *o.HttpOnly
	}
	return m.Set(name, value, expire, path, o.Domain, secure, httpOnly)
}

// SetSiteCookie scopes the cookie to the current site.  Only multisite
// changes anything: the path narrows to the site URL's path component.
// Single-site deployments get plain SetSecure behavior.
func (m *Manager) SetSiteCookie(name, value string, o Options) error {
	if m.env.Multisite && m.env.SiteURL != nil {
		if p := m.env.SiteURL.Path; p != "" {
			o.Path = p
		} else {
			o.Path = "/"
		}
	}
	return m.SetSecure(name, value, o)
}

// SetNetworkCookie scopes the cookie to the whole network: root path,
// network host as domain.  Identical to SetSecure when single-site.
func (m *Manager) SetNetworkCookie(name, value string, o Options) error {
	if m.env.Multisite && m.env.NetworkURL != nil {
		o.Path = "/"
		o.Domain = m.env.NetworkURL.Hostname()
	}
	return m.SetSecure(name, value, o)
}

// SetPrefixed stores value under a convention-prefixed name:
//
//	wp_<name>                        always
//	__Secure-wp_<name>               when o.Secure is set true
//	__Host-__Secure-wp_<name>        when o.Domain is also non-empty
//
// The __Host- trigger is the *presence* of a domain option, mirroring
// the upstream convention.  Browsers additionally require __Host-
// cookies to omit Domain; that rule is the caller's to honor, not
// enforced here.
func (m *Manager) SetPrefixed(name, value string, o Options) error {
	prefixed := PrefixWP + name
	if o.Secure != nil && *o.Secure {
		prefixed = PrefixSecure + prefixed
	}
	if o.Domain != "" {
		prefixed = PrefixHost + prefixed
	}
	return m.SetSecure(prefixed, value, o)
}

// SetMultiple writes every name/value pair via SetSecure with expire
// merged into o.  Every pair is attempted; the return is nil only when
// all succeeded.
func (m *Manager) SetMultiple(values map[string]string, expire int64, o Options) error {
	var errs []error
	for name, value := range values {
		oo := o
		oo.Expire = expire
		if err := m.SetSecure(name, value, oo); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DeleteMultiple expires every named cookie using o.Path and o.Domain
// (defaults "/" and "").  Same all-attempted, joined-error semantics as
// SetMultiple.
func (m *Manager) DeleteMultiple(names []string, o Options) error {
	path := o.Path
	if path == "" {
		path = "/"
	}
	var errs []error
	for _, name := range names {
		if err := m.Delete(name, path, o.Domain); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
