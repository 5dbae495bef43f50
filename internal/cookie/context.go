// internal/cookie/context.go
//
// Request-context plumbing.  middleware.Cookies stores the per-request
// *Manager under an unexported key; handlers that only hold an
// *http.Request retrieve it with FromContext.
package cookie

import "context"

type ctxKey struct{} // unexported, collision-proof

// NewContext returns ctx with m attached.
func NewContext(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, ctxKey{}, m)
}

// FromContext returns the Manager stored by the middleware, or nil when
// the middleware has not run.
func FromContext(ctx context.Context) *Manager {
	m, _ := ctx.Value(ctxKey{}).(*Manager)
	return m
}
