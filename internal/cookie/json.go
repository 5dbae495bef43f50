// internal/cookie/json.go
//
// JSON-valued cookies.
//
// Context
//   SetJSON marshals an arbitrary value and stores the JSON text via
//   SetSecure; nothing is written when marshalling fails.  GetJSON is
//   the silent counterpart: absence, non-JSON content, and a shape
//   mismatch all look the same to the caller, who keeps whatever
//   default dest already held.  gjson.Valid gates the unmarshal so a
//   plain-string cookie never round-trips through a decode error.
//
//------------------------------------------------------------------------------

package cookie

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// SetJSON encodes v as JSON and stores it under name.  On encoding
// failure nothing is written and the error lands in the last-error
// slot.
func (m *Manager) SetJSON(name string, v any, o Options) error {
	b, err := json.Marshal(v)
	if err != nil {
		return m.fail("json_encode", fmt.Errorf("%w: %v", ErrEncode, err))
	}
	return m.SetSecure(name, string(b), o)
}

// GetJSON decodes the cookie's value into dest and reports success.
// dest is left untouched when the cookie is absent or its value is not
// valid JSON, so callers pre-load dest with their default.
func (m *Manager) GetJSON(name string, dest any) bool {
	raw, ok := m.inbound[name]
	if !ok || !gjson.Valid(raw) {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}
