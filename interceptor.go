package forge

import (
	"context"
)

// Handler represents the next stage in an interceptor chain: ultimately the
// transport's Perform call.
type Handler func(ctx context.Context, req *Request) (*RawResponse, error)

// UnaryInterceptor is a hook that wraps request dispatch.
//
// Interceptors can inspect or annotate the request before calling next,
// inspect the raw response afterwards, or short-circuit by returning an
// error without calling next. They run once per dispatch, after argument
// normalization (so they only ever see valid calls) and before error
// translation (so they see raw status codes).
//
//	func timing(ctx context.Context, req *forge.Request, next forge.Handler) (*forge.RawResponse, error) {
//	    start := time.Now()
//	    res, err := next(ctx, req)
//	    log.Printf("%s %s took %v", req.Verb, req.Path, time.Since(start))
//	    return res, err
//	}
type UnaryInterceptor func(ctx context.Context, req *Request, next Handler) (*RawResponse, error)

// chainInterceptors combines multiple interceptors into a single one.
// The first interceptor in the slice is the outer-most one (runs first).
func chainInterceptors(interceptors []UnaryInterceptor) UnaryInterceptor {
	if len(interceptors) == 0 {
		return nil
	}
	if len(interceptors) == 1 {
		return interceptors[0]
	}
	return func(ctx context.Context, req *Request, next Handler) (*RawResponse, error) {
		chain := next
		for i := len(interceptors) - 1; i >= 1; i-- {
			current := interceptors[i]
			inner := chain
			chain = func(ctx context.Context, req *Request) (*RawResponse, error) {
				return current(ctx, req, inner)
			}
		}
		return interceptors[0](ctx, req, chain)
	}
}
