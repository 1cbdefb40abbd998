package api

import (
	"context"
	"net/http/httptrace"
)

type writtenKey struct{}

// WithWrittenHook returns a context whose request will call fn once the
// request has been written to the connection. Backends that do not go through
// net/http call RequestWritten themselves.
func WithWrittenHook(ctx context.Context, fn func()) context.Context {
	if fn == nil {
		return ctx
	}
	return context.WithValue(ctx, writtenKey{}, fn)
}

// RequestWritten fires the hook attached to ctx, if any.
func RequestWritten(ctx context.Context) {
	if fn, ok := ctx.Value(writtenKey{}).(func()); ok {
		fn()
	}
}

func traceWritten(ctx context.Context) context.Context {
	fn, ok := ctx.Value(writtenKey{}).(func())
	if !ok {
		return ctx
	}
	return httptrace.WithClientTrace(ctx, &httptrace.ClientTrace{
		WroteRequest: func(httptrace.WroteRequestInfo) {
			fn()
		},
	})
}
