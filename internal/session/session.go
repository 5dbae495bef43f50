// internal/session/session.go
//
// Session stub built on the cookie manager.
//
// Context
//   Authentication requires persisting a “logged-in” flag between
//   requests.  This scaffold sets or clears a cookie named “wp_session”
//   that stores the user’s email address in plaintext.  It is **NOT**
//   production-ready, but it exercises the full write path: hardened
//   defaults, the same-request read mirror, and deletion scope rules.
//
//   Replace these helpers with a full session store backed by Redis,
//   JWT, or your preferred strategy.  Callers rely only on this tiny
//   API, so swapping the implementation is painless.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package session

import (
	"errors"
	"net/http"

	"github.com/arraypress/wp-cookie/internal/cookie"
)

const cookieName = "wp_session"

// ErrNoManager means middleware.Cookies has not run for this request.
var ErrNoManager = errors.New("session: no cookie manager in context")

// LoginUser sets a session cookie containing the user’s email.
//
// Callers typically invoke this after credential verification succeeds.
func LoginUser(r *http.Request, email string) error {
	m := cookie.FromContext(r.Context())
	if m == nil {
		return ErrNoManager
	}
	return m.SetSecure(cookieName, email, cookie.Options{ // TODO: encrypt + sign
		Expire: cookie.Days(14),
	})
}

// LogoutUser clears the session cookie.
func LogoutUser(r *http.Request) error {
	m := cookie.FromContext(r.Context())
	if m == nil {
		return ErrNoManager
	}
	return m.Delete(cookieName, "/", "")
}

// CurrentEmail returns the email stored in the session, if any.
//
// ok == false when the cookie is missing or empty.
func CurrentEmail(r *http.Request) (email string, ok bool) {
	m := cookie.FromContext(r.Context())
	if m == nil {
		return "", false
	}
	email = m.Get(cookieName, "")
	return email, email != ""
}
