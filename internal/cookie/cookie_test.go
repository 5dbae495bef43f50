// internal/cookie/cookie_test.go
//
// Unit-tests for the request-scoped Manager.
//
// Context
// -------
// Each test builds a Manager over an httptest recorder wrapped in chi's
// WrapResponseWriter (the same shape middleware.Cookies produces), then
// asserts on two surfaces: the in-request read mirror (Get / Exists /
// All) and the Set-Cookie headers actually written to the recorder.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
// • Lines ≤ 100 columns.

package cookie

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// newManager builds a Manager over fresh request/recorder pairs.  raw
// is the inbound Cookie header ("" for none).
func newManager(t *testing.T, raw string, env Env) (*Manager, *httptest.ResponseRecorder) {
	t.Helper()
	rr := httptest.NewRecorder()
	ww := chimw.NewWrapResponseWriter(rr, 1)
	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	if raw != "" {
		req.Header.Set("Cookie", raw)
	}
	return New(ww, req, env), rr
}

// setCookieHeaders returns every Set-Cookie line written so far.
func setCookieHeaders(rr *httptest.ResponseRecorder) []string {
	return rr.Header().Values("Set-Cookie")
}

func TestSet_ThenGet_SameRequest(t *testing.T) {
	m, rr := newManager(t, "", Env{})

	if err := m.Set("token", "abc123", 0, "/", "", true, true); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := m.Get("token", ""); got != "abc123" {
		t.Fatalf("Get = %q, want %q", got, "abc123")
	}

	hs := setCookieHeaders(rr)
	if len(hs) != 1 {
		t.Fatalf("Set-Cookie headers = %d, want 1", len(hs))
	}
	for _, want := range []string{"token=abc123", "Path=/", "HttpOnly", "Secure", "SameSite=Strict"} {
		if !strings.Contains(hs[0], want) {
			t.Fatalf("header %q missing %q", hs[0], want)
		}
	}
}

func TestSet_SessionCookie_NoExpires(t *testing.T) {
	m, rr := newManager(t, "", Env{})

	if err := m.Set("sess", "v", 0, "/", "", false, true); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if h := setCookieHeaders(rr)[0]; strings.Contains(h, "Expires=") {
		t.Fatalf("session cookie carries Expires: %q", h)
	}
}

func TestSet_InvalidName(t *testing.T) {
	m, rr := newManager(t, "", Env{})

	for _, name := range []string{"bad;name", "white space", "комета", "", "a=b"} {
		if err := m.Set(name, "v", 0, "/", "", true, true); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("Set(%q) err = %v, want ErrInvalidName", name, err)
		}
	}
	if hs := setCookieHeaders(rr); len(hs) != 0 {
		t.Fatalf("invalid names wrote %d header(s)", len(hs))
	}
	if err := m.LastError(); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("LastError = %v, want ErrInvalidName", err)
	}
}

func TestSet_HeadersAlreadySent(t *testing.T) {
	rr := httptest.NewRecorder()
	ww := chimw.NewWrapResponseWriter(rr, 1)
	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	m := New(ww, req, Env{})

	ww.WriteHeader(http.StatusOK)

	if err := m.Set("late", "v", 0, "/", "", true, true); !errors.Is(err, ErrHeadersSent) {
		t.Fatalf("Set err = %v, want ErrHeadersSent", err)
	}
	if !errors.Is(m.LastError(), ErrHeadersSent) {
		t.Fatalf("LastError = %v, want ErrHeadersSent", m.LastError())
	}
}

func TestSet_StripsMarkup(t *testing.T) {
	m, rr := newManager(t, "", Env{})

	if err := m.Set("note", `<b>hello</b><script>evil()</script>`, 0, "/", "", true, true); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := m.Get("note", ""); got != "hello" {
		t.Fatalf("Get = %q, want %q", got, "hello")
	}
	if h := setCookieHeaders(rr)[0]; strings.Contains(h, "script") || strings.Contains(h, "%3Cscript") {
		t.Fatalf("markup leaked into header: %q", h)
	}
}

func TestGet_DefaultAndExists(t *testing.T) {
	m, _ := newManager(t, "a=1; b=2", Env{})

	if got := m.Get("a", "x"); got != "1" {
		t.Fatalf("Get(a) = %q, want 1", got)
	}
	if got := m.Get("missing", "fallback"); got != "fallback" {
		t.Fatalf("Get(missing) = %q, want fallback", got)
	}
	if !m.Exists("b") || m.Exists("missing") {
		t.Fatal("Exists mismatch")
	}
}

func TestAll_SnapshotIsolation(t *testing.T) {
	m, _ := newManager(t, "a=1", Env{})

	snap := m.All()
	snap["a"] = "mutated"
	snap["new"] = "x"

	if got := m.Get("a", ""); got != "1" {
		t.Fatalf("snapshot mutation leaked: Get(a) = %q", got)
	}
	if m.Exists("new") {
		t.Fatal("snapshot insertion leaked")
	}
}

func TestDelete_Missing(t *testing.T) {
	m, rr := newManager(t, "", Env{})

	if err := m.Delete("ghost", "/", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete err = %v, want ErrNotFound", err)
	}
	if hs := setCookieHeaders(rr); len(hs) != 0 {
		t.Fatalf("missing delete wrote %d header(s)", len(hs))
	}
}

func TestDelete_Existing(t *testing.T) {
	m, rr := newManager(t, "sess=abc", Env{})

	if err := m.Delete("sess", "/", ""); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if m.Exists("sess") {
		t.Fatal("cookie still visible after Delete")
	}
	if got := m.Get("sess", "gone"); got != "gone" {
		t.Fatalf("Get after Delete = %q", got)
	}

	hs := setCookieHeaders(rr)
	if len(hs) != 1 {
		t.Fatalf("Set-Cookie headers = %d, want 1", len(hs))
	}
	ck, err := http.ParseSetCookie(hs[0])
	if err != nil {
		t.Fatalf("parse deletion header: %v", err)
	}
	if ck.Value != "" || !ck.Expires.Before(time.Now()) {
		t.Fatalf("deletion header not expiring: %q", hs[0])
	}
}

func TestSetSecure_Defaults(t *testing.T) {
	m, rr := newManager(t, "", Env{})

	before := Days(30) - 5 // tolerance window
	if err := m.SetSecure("pref", "v", Options{}); err != nil {
		t.Fatalf("SetSecure: %v", err)
	}
	after := Days(30) + 5

	ck, err := http.ParseSetCookie(setCookieHeaders(rr)[0])
	if err != nil {
		t.Fatalf("parse header: %v", err)
	}
	if ck.Path != "/" || !ck.HttpOnly {
		t.Fatalf("defaults not applied: %+v", ck)
	}
	// Plain-HTTP test request → Secure defaults to false.
	if ck.Secure {
		t.Fatal("Secure set on a plain-HTTP connection")
	}
	exp := ck.Expires.Unix()
	if exp < before || exp > after {
		t.Fatalf("expiry %d outside 30-day window [%d, %d]", exp, before, after)
	}
}

func TestSetSecure_HTTPSDefaultsSecure(t *testing.T) {
	rr := httptest.NewRecorder()
	ww := chimw.NewWrapResponseWriter(rr, 1)
	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	m := New(ww, req, Env{})

	if err := m.SetSecure("pref", "v", Options{}); err != nil {
		t.Fatalf("SetSecure: %v", err)
	}
	if h := setCookieHeaders(rr)[0]; !strings.Contains(h, "Secure") {
		t.Fatalf("Secure missing on forwarded-HTTPS connection: %q", h)
	}
}

func TestSiteAndNetworkCookies_Multisite(t *testing.T) {
	env := Env{
		SiteURL:    mustParse(t, "https://example.com/blog"),
		NetworkURL: mustParse(t, "https://example.com/"),
		Multisite:  true,
	}
	m, rr := newManager(t, "", env)

	if err := m.SetSiteCookie("site_pref", "v", Options{}); err != nil {
		t.Fatalf("SetSiteCookie: %v", err)
	}
	if err := m.SetNetworkCookie("net_pref", "v", Options{}); err != nil {
		t.Fatalf("SetNetworkCookie: %v", err)
	}

	hs := setCookieHeaders(rr)
	if !strings.Contains(hs[0], "Path=/blog") {
		t.Fatalf("site cookie path not narrowed: %q", hs[0])
	}
	if !strings.Contains(hs[1], "Path=/") || !strings.Contains(hs[1], "Domain=example.com") {
		t.Fatalf("network cookie scope wrong: %q", hs[1])
	}
}

func TestSiteAndNetworkCookies_SingleSite(t *testing.T) {
	env := Env{
		SiteURL:    mustParse(t, "https://example.com/"),
		NetworkURL: mustParse(t, "https://example.com/"),
	}
	m, rr := newManager(t, "", env)

	if err := m.SetSiteCookie("a", "v", Options{}); err != nil {
		t.Fatalf("SetSiteCookie: %v", err)
	}
	if err := m.SetNetworkCookie("b", "v", Options{}); err != nil {
		t.Fatalf("SetNetworkCookie: %v", err)
	}

	// Single-site: both behave exactly like SetSecure.
	for _, h := range setCookieHeaders(rr) {
		if !strings.Contains(h, "Path=/") || strings.Contains(h, "Domain=") {
			t.Fatalf("single-site scope altered: %q", h)
		}
	}
}

func TestSetPrefixed_FullStack(t *testing.T) {
	m, _ := newManager(t, "", Env{})

	err := m.SetPrefixed("x", "v", Options{Secure: Bool(true), Domain: "example.com"})
	if err != nil {
		t.Fatalf("SetPrefixed: %v", err)
	}
	if !m.Exists("__Host-__Secure-wp_x") {
		t.Fatalf("stored names = %v, want __Host-__Secure-wp_x", m.All())
	}
}

func TestSetPrefixed_WPOnly(t *testing.T) {
	m, _ := newManager(t, "", Env{})

	if err := m.SetPrefixed("x", "v", Options{}); err != nil {
		t.Fatalf("SetPrefixed: %v", err)
	}
	if !m.Exists("wp_x") {
		t.Fatalf("stored names = %v, want wp_x", m.All())
	}
}

func TestSetMultiple_PartialFailure(t *testing.T) {
	m, _ := newManager(t, "", Env{})

	err := m.SetMultiple(map[string]string{"a": "1", "bad name": "2"}, 0, Options{})
	if err == nil {
		t.Fatal("want aggregate error for invalid name")
	}
	if got := m.Get("a", ""); got != "1" {
		t.Fatalf("valid entry not set: Get(a) = %q", got)
	}
	if m.Exists("bad name") {
		t.Fatal("invalid entry stored")
	}
}

func TestDeleteMultiple_AllAttempted(t *testing.T) {
	m, rr := newManager(t, "a=1; b=2", Env{})

	err := m.DeleteMultiple([]string{"a", "ghost", "b"}, Options{})
	if err == nil {
		t.Fatal("want aggregate error for missing name")
	}
	if m.Exists("a") || m.Exists("b") {
		t.Fatal("existing cookies not deleted")
	}
	if hs := setCookieHeaders(rr); len(hs) != 2 {
		t.Fatalf("deletion headers = %d, want 2", len(hs))
	}
}

func TestStripTags(t *testing.T) {
	cases := []struct{ in, want string }{
		{"plain", "plain"},
		{"<b>bold</b>", "bold"},
		{"a <i>b</i> c", "a b c"},
		{"<script>alert(1)</script>ok", "ok"},
		{"<style>p{}</style>text", "text"},
		{"un<closed", "un"},
	}
	for _, c := range cases {
		if got := StripTags(c.in); got != c.want {
			t.Fatalf("StripTags(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}
