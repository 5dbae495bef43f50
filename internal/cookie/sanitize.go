// internal/cookie/sanitize.go
//
// Markup stripping for cookie values.
//
// Context
//   Every value that passes through Set is reduced to its text content
//   first: tags go away, and the bodies of script and style elements go
//   with them.  Uses the x/net/html tokenizer rather than a regex so
//   malformed markup cannot smuggle tags through.
//
//------------------------------------------------------------------------------

package cookie

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags returns s with all HTML markup removed.  Text inside
// <script> and <style> elements is dropped entirely.  Plain strings
// pass through untouched.
func StripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.StartTagToken:
			if name, _ := z.TagName(); isRawText(name) {
				skip++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); isRawText(name) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// isRawText reports whether the tag's contents should be discarded.
func isRawText(name []byte) bool {
	tag := string(name)
	return tag == "script" || tag == "style"
}
