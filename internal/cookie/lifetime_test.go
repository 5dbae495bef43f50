// internal/cookie/lifetime_test.go
//
// Unit-tests for remaining-lifetime introspection and the raw-header
// parser behind it.  Real browsers never echo attributes, so the
// headline property is the negative one: a normal header yields false.

package cookie

import (
	"fmt"
	"testing"
	"time"
)

func TestRemainingLifetime_NoAttributeMetadata(t *testing.T) {
	// The real-world case: a plain name=value header.
	m, _ := newManager(t, "sess=abc; theme=dark", Env{})

	if secs, ok := m.RemainingLifetime("sess"); ok {
		t.Fatalf("got %d seconds from an attribute-free header", secs)
	}
}

func TestRemainingLifetime_AbsentCookie(t *testing.T) {
	m, _ := newManager(t, "sess=abc", Env{})

	if _, ok := m.RemainingLifetime("ghost"); ok {
		t.Fatal("ok for absent cookie")
	}
}

func TestRemainingLifetime_SyntheticAttributes(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).UTC()
	// RFC1123 uses "UTC"; cookie dates use "GMT".
	raw := fmt.Sprintf("sess=abc; expires=%s; path=/; secure",
		replaceUTC(exp.Format(time.RFC1123)))

	m, _ := newManager(t, raw, Env{})

	secs, ok := m.RemainingLifetime("sess")
	if !ok {
		t.Fatal("lifetime not recovered from synthetic header")
	}
	if secs < 7100 || secs > 7200 {
		t.Fatalf("remaining = %d, want ≈7200", secs)
	}
}

func TestRemainingLifetime_ExpiredAndMalformed(t *testing.T) {
	past := time.Now().Add(-time.Hour).UTC()
	cases := []string{
		"sess=abc; expires=" + replaceUTC(past.Format(time.RFC1123)),
		"sess=abc; expires=not-a-date",
	}
	for _, raw := range cases {
		m, _ := newManager(t, raw, Env{})
		if _, ok := m.RemainingLifetime("sess"); ok {
			t.Fatalf("ok for header %q", raw)
		}
	}
}

func TestParseCookieString_AttributeAttachment(t *testing.T) {
	raw := "a=1; expires=later; path=/x; b=2; secure; c=3"
	parsed := parseCookieString(raw)

	if len(parsed) != 3 {
		t.Fatalf("parsed %d cookies, want 3", len(parsed))
	}
	if parsed["a"].attrs["expires"] != "later" || parsed["a"].attrs["path"] != "/x" {
		t.Fatalf("a attrs = %v", parsed["a"].attrs)
	}
	// Flag attribute lands on the nearest preceding cookie.
	if parsed["b"].attrs["secure"] != "true" {
		t.Fatalf("b attrs = %v", parsed["b"].attrs)
	}
	if len(parsed["c"].attrs) != 0 {
		t.Fatalf("c attrs = %v, want none", parsed["c"].attrs)
	}
}

func TestParseCookieString_LeadingAttributeIgnored(t *testing.T) {
	parsed := parseCookieString("path=/orphan; a=1")
	if _, ok := parsed["path"]; ok {
		t.Fatal("whitelisted key parsed as a cookie name")
	}
	if parsed["a"].value != "1" {
		t.Fatalf("a = %q", parsed["a"].value)
	}
}

// replaceUTC converts Go's RFC1123 "UTC" zone suffix to the cookie
// convention "GMT" so http.ParseTime accepts it.
func replaceUTC(s string) string {
	if len(s) > 3 && s[len(s)-3:] == "UTC" {
		return s[:len(s)-3] + "GMT"
	}
	return s
}
