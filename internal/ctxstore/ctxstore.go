// Package ctxstore wraps context value plumbing behind typed keys, so
// request-scoped state (trace id, authenticated user) is stored and
// fetched without repeating type assertions at every call site.
package ctxstore

import "context"

type Key string

func (k Key) String() string {
	return string(k)
}

func With[T any](ctx context.Context, key Key, value T) context.Context {
	return context.WithValue(ctx, key, value)
}

func From[T any](ctx context.Context, key Key) (T, bool) {
	value, ok := ctx.Value(key).(T)
	return value, ok
}

// MustFrom is for values a middleware is known to have stored earlier
// in the chain; a miss is a programming error.
func MustFrom[T any](ctx context.Context, key Key) T {
	value, ok := ctx.Value(key).(T)
	if !ok {
		panic("ctxstore: " + string(key) + " not found")
	}
	return value
}
