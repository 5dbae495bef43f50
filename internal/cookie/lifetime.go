// internal/cookie/lifetime.go
//
// Best-effort remaining-lifetime introspection.
//
/*
Context
--------
RemainingLifetime re-parses the raw Cookie header looking for an
`expires` attribute next to the named cookie, and returns the seconds
left until that moment.

Known limitation, preserved on purpose: browsers never echo cookie
attributes back to the server.  A real request header is just
`name=value; other=value`, so the attribute lookup comes up empty and
the function reports false for any cookie lacking inline attribute
metadata.  Synthetic clients (tests, internal tooling) that do inline
attributes are the only callers that ever see a number here.  Do not
"fix" the parser to invent lifetimes from elsewhere.

Notes
-----
  • Attribute keys are matched case-insensitively against a fixed
    whitelist; anything else starts a new cookie entry.
  • Oxford commas, two spaces after periods.
*/
package cookie

import (
	"net/http"
	"strings"
	"time"
)

// attrWhitelist is the set of recognized attribute keys.  A segment
// whose key is outside this set is treated as the next cookie pair.
var attrWhitelist = map[string]bool{
	"expires":  true,
	"path":     true,
	"domain":   true,
	"secure":   true,
	"httponly": true,
	"samesite": true,
}

// headerCookie is one parsed cookie plus any attributes that followed
// it in the raw header string.
type headerCookie struct {
	value string
	attrs map[string]string
}

// RemainingLifetime returns the seconds until the named cookie's
// `expires` attribute, when one can be recovered from the raw header.
// ok is false when the cookie is absent, the raw header is empty, no
// expires attribute was found, the date does not parse, or the cookie
// is already expired.
func (m *Manager) RemainingLifetime(name string) (secs int64, ok bool) {
	if !m.Exists(name) || m.raw == "" {
		return 0, false
	}
	hc, found := parseCookieString(m.raw)[name]
	if !found {
		return 0, false
	}
	raw, found := hc.attrs["expires"]
	if !found {
		return 0, false
	}
	exp, err := http.ParseTime(raw)
	if err != nil {
		return 0, false
	}
	remaining := int64(time.Until(exp).Seconds())
	if remaining <= 0 {
		return 0, false
	}
	return remaining, true
}

// parseCookieString splits a raw `k=v; k=v` header line into cookies
// and their trailing whitelisted attributes.  Attribute segments are
// attached to the most recent cookie; flag attributes (Secure,
// HttpOnly) carry no "=" and record as "true".
func parseCookieString(raw string) map[string]headerCookie {
	out := make(map[string]headerCookie)
	var current string

	for _, seg := range strings.Split(raw, ";") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}

		key, value := seg, ""
		if i := strings.IndexByte(seg, '='); i != -1 {
			key, value = strings.TrimSpace(seg[:i]), strings.TrimSpace(seg[i+1:])
		}

		if lk := strings.ToLower(key); attrWhitelist[lk] {
			if current == "" {
				continue // attribute before any cookie; nothing to attach to
			}
			hc := out[current]
			if value == "" {
				value = "true"
			}
			hc.attrs[lk] = value
			out[current] = hc
			continue
		}

		current = key
		out[current] = headerCookie{value: value, attrs: make(map[string]string, 2)}
	}
	return out
}
